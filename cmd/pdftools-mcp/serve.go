package main

import (
	"context"
	"errors"
	"fmt"
	"log"
	"net/http"
	"strings"
	"time"

	"github.com/mark3labs/mcp-go/server"
	"github.com/sirupsen/logrus"

	pdftools "github.com/alnah/pdftools-mcp"
	"github.com/alnah/pdftools-mcp/internal/config"
	"github.com/alnah/pdftools-mcp/internal/hints"
)

// Sentinel errors for CLI operations.
var (
	ErrUsage          = errors.New("invalid usage")
	ErrUnexpectedArgs = errors.New("unexpected arguments")
	ErrServe          = errors.New("server stopped with error")
)

// shutdownTimeout bounds the graceful stop of the HTTP transport.
const shutdownTimeout = 10 * time.Second

// runServe starts the MCP server and blocks until ctx is canceled or the
// transport ends (stdin closed for stdio).
func runServe(ctx context.Context, args []string, env *Environment) error {
	flags, err := parseServeFlags(args, env.Stderr)
	if err != nil {
		return err
	}

	warnUnknownEnvVars(env.Stderr, env.Environ())
	envCfg := loadEnvConfig(env.Getenv)

	cfg, err := resolveConfig(flags, envCfg)
	if err != nil {
		if errors.Is(err, config.ErrConfigNotFound) {
			name := flags.config
			if name == "" {
				name = envCfg.ConfigPath
			}
			return fmt.Errorf("%w%s", err, hints.ForConfigNotFound(config.SearchPaths(name)))
		}
		return err
	}

	logger, closeLog, err := newLogger(cfg.Log, env.Stderr)
	if err != nil {
		return err
	}
	defer func() { _ = closeLog() }()

	d, err := newDispatcher(cfg, logger)
	if err != nil {
		return err
	}
	s := pdftools.NewServer(d)

	logger.WithFields(logrus.Fields{
		"version":   pdftools.Version,
		"transport": cfg.Server.Transport,
		"roots":     strings.Join(d.AllowedRoots(), ", "),
		"tools":     strings.Join(pdftools.ToolNames(), ", "),
	}).Info("starting " + pdftools.ServerName)

	if strings.EqualFold(cfg.Server.Transport, config.TransportHTTP) {
		return serveHTTP(ctx, s, cfg.Server.Addr, logger)
	}
	return serveStdio(ctx, s, env, logger)
}

// newDispatcher builds the dispatcher described by cfg.
func newDispatcher(cfg *config.Config, logger logrus.FieldLogger) (*pdftools.Dispatcher, error) {
	renderer := pdftools.NewRodRenderer(
		pdftools.WithBrowserBin(cfg.Browser.Bin),
		pdftools.WithNoSandbox(cfg.Browser.NoSandbox),
	)
	return pdftools.NewDispatcher(
		pdftools.WithHTMLRenderer(renderer),
		pdftools.WithLogger(logger),
		pdftools.WithCleanupOnFailure(cfg.Output.CleanupOnFailure),
	)
}

// serveStdio runs the protocol over env's stdin and stdout.
func serveStdio(ctx context.Context, s *server.MCPServer, env *Environment, logger *logrus.Logger) error {
	errWriter := logger.WriterLevel(logrus.ErrorLevel)
	defer func() { _ = errWriter.Close() }()

	stdio := server.NewStdioServer(s)
	stdio.SetErrorLogger(log.New(errWriter, "", 0))

	err := stdio.Listen(ctx, env.Stdin, env.Stdout)
	if err != nil && !errors.Is(err, context.Canceled) {
		return fmt.Errorf("%w: %v", ErrServe, err)
	}
	logger.Info("server stopped")
	return nil
}

// serveHTTP runs the streamable HTTP transport on addr until ctx ends.
func serveHTTP(ctx context.Context, s *server.MCPServer, addr string, logger *logrus.Logger) error {
	httpServer := server.NewStreamableHTTPServer(s, server.WithLogger(logger))

	errCh := make(chan error, 1)
	go func() {
		logger.WithField("addr", addr).Info("listening for streamable HTTP")
		errCh <- httpServer.Start(addr)
	}()

	select {
	case err := <-errCh:
		if err != nil && !errors.Is(err, http.ErrServerClosed) {
			return fmt.Errorf("%w: %v", ErrServe, err)
		}
		return nil
	case <-ctx.Done():
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	if err := httpServer.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("%w: shutdown: %v", ErrServe, err)
	}
	if err := <-errCh; err != nil && !errors.Is(err, http.ErrServerClosed) {
		return fmt.Errorf("%w: %v", ErrServe, err)
	}
	logger.Info("server stopped")
	return nil
}
