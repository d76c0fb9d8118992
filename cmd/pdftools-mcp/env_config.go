package main

import (
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/alnah/pdftools-mcp/internal/config"
)

// envPrefix marks environment variables read by this program.
const envPrefix = "PDFTOOLS_"

// envConfig holds configuration from environment variables.
// Provides container-friendly overrides without requiring YAML files.
type envConfig struct {
	ConfigPath string // PDFTOOLS_CONFIG: config file name or path

	LogLevel  string // PDFTOOLS_LOG_LEVEL
	LogFormat string // PDFTOOLS_LOG_FORMAT
	LogFile   string // PDFTOOLS_LOG_FILE

	Transport string // PDFTOOLS_TRANSPORT: stdio or http
	Addr      string // PDFTOOLS_ADDR: listen address for http

	CleanupOnFailure *bool // PDFTOOLS_CLEANUP_ON_FAILURE: nil when unset

	// Shared with go-rod and the doctor command.
	BrowserBin string // ROD_BROWSER_BIN
	NoSandbox  bool   // ROD_NO_SANDBOX=1
}

// knownEnvVars lists valid PDFTOOLS_* environment variables.
// Used to detect typos and warn users about unknown variables.
var knownEnvVars = map[string]bool{
	"PDFTOOLS_CONFIG":             true,
	"PDFTOOLS_LOG_LEVEL":          true,
	"PDFTOOLS_LOG_FORMAT":         true,
	"PDFTOOLS_LOG_FILE":           true,
	"PDFTOOLS_TRANSPORT":          true,
	"PDFTOOLS_ADDR":               true,
	"PDFTOOLS_CLEANUP_ON_FAILURE": true,
}

// loadEnvConfig reads configuration from environment variables.
// Malformed booleans are ignored, the same way the config file default
// would apply.
func loadEnvConfig(getenv func(string) string) *envConfig {
	cfg := &envConfig{
		ConfigPath: getenv("PDFTOOLS_CONFIG"),
		LogLevel:   getenv("PDFTOOLS_LOG_LEVEL"),
		LogFormat:  getenv("PDFTOOLS_LOG_FORMAT"),
		LogFile:    getenv("PDFTOOLS_LOG_FILE"),
		Transport:  getenv("PDFTOOLS_TRANSPORT"),
		Addr:       getenv("PDFTOOLS_ADDR"),
		BrowserBin: getenv("ROD_BROWSER_BIN"),
		NoSandbox:  getenv("ROD_NO_SANDBOX") == "1",
	}

	if v := getenv("PDFTOOLS_CLEANUP_ON_FAILURE"); v != "" {
		if b, err := strconv.ParseBool(v); err == nil {
			cfg.CleanupOnFailure = &b
		}
	}

	return cfg
}

// warnUnknownEnvVars logs warnings for unrecognized PDFTOOLS_* variables.
// Helps catch typos like PDFTOOLS_LOGLEVEL instead of PDFTOOLS_LOG_LEVEL.
func warnUnknownEnvVars(w io.Writer, environ []string) {
	for _, env := range environ {
		if strings.HasPrefix(env, envPrefix) {
			name := strings.SplitN(env, "=", 2)[0]
			if !knownEnvVars[name] {
				fmt.Fprintf(w, "warning: unknown environment variable %s (typo?)\n", name)
			}
		}
	}
}

// applyEnvConfig overrides config values with those set in the environment.
// Precedence: CLI flags > env vars > config file > defaults
// (CLI flags are applied afterwards via applyFlags).
func applyEnvConfig(env *envConfig, cfg *config.Config) {
	if env.LogLevel != "" {
		cfg.Log.Level = env.LogLevel
	}
	if env.LogFormat != "" {
		cfg.Log.Format = env.LogFormat
	}
	if env.LogFile != "" {
		cfg.Log.File = env.LogFile
	}

	if env.Transport != "" {
		cfg.Server.Transport = env.Transport
	}
	if env.Addr != "" {
		cfg.Server.Addr = env.Addr
	}

	if env.CleanupOnFailure != nil {
		cfg.Output.CleanupOnFailure = *env.CleanupOnFailure
	}

	if env.BrowserBin != "" {
		cfg.Browser.Bin = env.BrowserBin
	}
	if env.NoSandbox {
		cfg.Browser.NoSandbox = true
	}
}

// applyFlags overrides config values with explicitly given flags.
func applyFlags(f *serveFlags, cfg *config.Config) {
	if f.log.level != "" {
		cfg.Log.Level = f.log.level
	}
	if f.log.verbose {
		cfg.Log.Level = "debug"
	}
	if f.log.format != "" {
		cfg.Log.Format = f.log.format
	}
	if f.log.file != "" {
		cfg.Log.File = f.log.file
	}

	if f.transport != "" {
		cfg.Server.Transport = f.transport
	}
	if f.addr != "" {
		cfg.Server.Addr = f.addr
	}

	if f.browserBin != "" {
		cfg.Browser.Bin = f.browserBin
	}
	if f.noSandbox {
		cfg.Browser.NoSandbox = true
	}
	if f.keepPartial {
		cfg.Output.CleanupOnFailure = false
	}
}

// resolveConfig builds the effective configuration from the config file
// (flag, then PDFTOOLS_CONFIG), the environment and the flags.
func resolveConfig(f *serveFlags, env *envConfig) (*config.Config, error) {
	cfg := config.DefaultConfig()

	name := f.config
	if name == "" {
		name = env.ConfigPath
	}
	if name != "" {
		loaded, err := config.Load(name)
		if err != nil {
			return nil, err
		}
		cfg = loaded
	}

	applyEnvConfig(env, cfg)
	applyFlags(f, cfg)

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}
