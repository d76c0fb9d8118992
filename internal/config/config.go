// Package config loads the server configuration from YAML.
package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/alnah/pdftools-mcp/internal/fileutil"
	"github.com/alnah/pdftools-mcp/internal/yamlutil"
)

// AppName names the per-user config directory.
const AppName = "pdftools-mcp"

// Sentinel errors for config operations.
var (
	ErrConfigNotFound  = errors.New("config file not found")
	ErrEmptyConfigName = errors.New("config name cannot be empty")
	ErrConfigParse     = errors.New("failed to parse config")
	ErrFieldTooLong    = errors.New("field exceeds maximum length")
	ErrInvalidValue    = errors.New("invalid config value")
)

// Field length limits.
const (
	MaxPathLength = 4096 // PATH_MAX on Linux
	MaxAddrLength = 255  // host:port
)

// Transports.
const (
	TransportStdio = "stdio"
	TransportHTTP  = "http"
)

// Log formats.
const (
	LogFormatText = "text"
	LogFormatJSON = "json"
)

// Config holds all configuration for the server process.
type Config struct {
	Log     LogConfig     `yaml:"log"`
	Browser BrowserConfig `yaml:"browser"`
	Server  ServerConfig  `yaml:"server"`
	Output  OutputConfig  `yaml:"output"`
}

// LogConfig defines logging options.
type LogConfig struct {
	Level  string `yaml:"level"`  // "debug", "info", "warn", "error" (default: "info")
	Format string `yaml:"format"` // "text" or "json" (default: "text")
	File   string `yaml:"file"`   // Optional, appended to in addition to stderr
}

// BrowserConfig defines headless Chrome options.
type BrowserConfig struct {
	Bin       string `yaml:"bin"`       // Empty = let rod find or download Chrome
	NoSandbox bool   `yaml:"noSandbox"` // Required in most containers
}

// ServerConfig defines the MCP transport.
type ServerConfig struct {
	Transport string `yaml:"transport"` // "stdio" or "http" (default: "stdio")
	Addr      string `yaml:"addr"`      // Listen address for "http"
}

// OutputConfig defines output file handling.
type OutputConfig struct {
	CleanupOnFailure bool `yaml:"cleanupOnFailure"` // Remove partial PDFs (default: true)
}

// DefaultConfig returns the configuration used when no file is given.
func DefaultConfig() *Config {
	return &Config{
		Log:     LogConfig{Level: "info", Format: LogFormatText},
		Browser: BrowserConfig{},
		Server:  ServerConfig{Transport: TransportStdio, Addr: "127.0.0.1:8080"},
		Output:  OutputConfig{CleanupOnFailure: true},
	}
}

// Validate checks enumerated values and field lengths.
// Called by Load, but available for configs built in code.
func (c *Config) Validate() error {
	switch strings.ToLower(c.Log.Level) {
	case "debug", "info", "warn", "warning", "error":
	default:
		return fmt.Errorf("%w: log.level %q (must be debug, info, warn, or error)", ErrInvalidValue, c.Log.Level)
	}

	switch strings.ToLower(c.Log.Format) {
	case LogFormatText, LogFormatJSON:
	default:
		return fmt.Errorf("%w: log.format %q (must be text or json)", ErrInvalidValue, c.Log.Format)
	}

	if err := validateFieldLength("log.file", c.Log.File, MaxPathLength); err != nil {
		return err
	}
	if err := validateFieldLength("browser.bin", c.Browser.Bin, MaxPathLength); err != nil {
		return err
	}

	switch strings.ToLower(c.Server.Transport) {
	case TransportStdio:
	case TransportHTTP:
		if c.Server.Addr == "" {
			return fmt.Errorf("%w: server.addr required when transport is http", ErrInvalidValue)
		}
	default:
		return fmt.Errorf("%w: server.transport %q (must be stdio or http)", ErrInvalidValue, c.Server.Transport)
	}
	return validateFieldLength("server.addr", c.Server.Addr, MaxAddrLength)
}

// validateFieldLength checks if a field exceeds its maximum allowed length.
func validateFieldLength(fieldName, value string, maxLength int) error {
	if len(value) > maxLength {
		return fmt.Errorf("%w: %s (%d chars, max %d)", ErrFieldTooLong, fieldName, len(value), maxLength)
	}
	return nil
}

// Load loads configuration from a file path or config name, layered over
// DefaultConfig. If nameOrPath contains a path separator, it's treated as a
// file path. Otherwise it's searched in standard locations.
// Returns error if the file is not found (no silent fallback).
func Load(nameOrPath string) (*Config, error) {
	if nameOrPath == "" {
		return nil, ErrEmptyConfigName
	}

	configPath := nameOrPath
	if !isFilePath(nameOrPath) {
		var err error
		configPath, err = resolveConfigPath(nameOrPath)
		if err != nil {
			return nil, err
		}
	}

	cfg := DefaultConfig()
	if err := yamlutil.ReadFileStrict(configPath, cfg); err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return nil, fmt.Errorf("%w: %s", ErrConfigNotFound, configPath)
		}
		return nil, fmt.Errorf("%w: %v", ErrConfigParse, err)
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// isFilePath returns true if the string looks like a file path.
func isFilePath(s string) bool {
	return strings.ContainsAny(s, "/\\")
}

// resolveConfigPath returns the first existing file among SearchPaths(name).
func resolveConfigPath(name string) (string, error) {
	candidates := SearchPaths(name)
	for _, p := range candidates {
		if fileutil.FileExists(p) {
			return p, nil
		}
	}
	return "", fmt.Errorf("%w: tried %s", ErrConfigNotFound, strings.Join(candidates, ", "))
}

// SearchPaths lists where a config named name is looked up, in order:
// the current directory, then <UserConfigDir>/pdftools-mcp/, each with the
// .yaml and .yml extensions.
func SearchPaths(name string) []string {
	paths := []string{name + ".yaml", name + ".yml"}
	if dir, err := os.UserConfigDir(); err == nil {
		paths = append(paths,
			filepath.Join(dir, AppName, name+".yaml"),
			filepath.Join(dir, AppName, name+".yml"))
	}
	return paths
}
