package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"os/signal"
	"runtime"
	"syscall"
	"time"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"

	"github.com/a3tai/mcp-seo-headings/internal/config"
	"github.com/a3tai/mcp-seo-headings/internal/mcp"
	"github.com/a3tai/mcp-seo-headings/internal/service"
)

var (
	version   = "dev"     // This will be set by build flags
	buildTime = "unknown" // This will be set by build flags
	gitCommit = "unknown" // This will be set by build flags
)

// setupLogging writes logs to stderr, leaving stdout to the MCP protocol.
// In stdio mode only warnings and errors are logged unless debug is enabled.
func setupLogging(cfg *config.Config, out io.Writer) zerolog.Logger {
	zerolog.TimeFieldFormat = time.RFC3339

	level := cfg.ZerologLevel()
	if cfg.IsStdioMode() && !cfg.IsDebug() && level < zerolog.WarnLevel {
		level = zerolog.WarnLevel
	}

	logger := zerolog.New(zerolog.ConsoleWriter{Out: out, TimeFormat: time.RFC3339}).
		Level(level).
		With().
		Timestamp().
		Logger()
	log.Logger = logger

	return logger
}

// runServerMode handles server mode execution with signal handling
func runServerMode(ctx context.Context, cancel context.CancelFunc, server *mcp.Server) error {
	signalCh := make(chan os.Signal, 1)
	signal.Notify(signalCh, syscall.SIGINT, syscall.SIGTERM, syscall.SIGHUP)
	defer signal.Stop(signalCh)

	serverErrCh := make(chan error, 1)
	go func() {
		serverErrCh <- server.Run(ctx)
	}()

	select {
	case sig := <-signalCh:
		log.Info().Str("signal", sig.String()).Msg("initiating graceful shutdown")
		cancel()

		if err := <-serverErrCh; err != nil {
			return fmt.Errorf("server shutdown with error: %w", err)
		}

	case err := <-serverErrCh:
		if err != nil {
			return fmt.Errorf("server error: %w", err)
		}
	}

	log.Info().Msg("server stopped successfully")
	return nil
}

// runStdioMode handles stdio mode execution. The parent process controls
// our lifecycle; we exit when stdin is closed.
func runStdioMode(ctx context.Context, server *mcp.Server) error {
	return server.Run(ctx)
}

func run() error {
	cfg, err := config.LoadFromFlags()
	if err != nil {
		if errors.Is(err, config.ErrVersionRequested) {
			printVersion(os.Stdout)
			return nil
		}
		return fmt.Errorf("failed to load configuration: %w", err)
	}

	logger := setupLogging(cfg, os.Stderr)

	// Set version if it was provided during build
	if version != "dev" {
		cfg.Version = version
	}

	logger.Debug().Str("config", cfg.String()).Msg("starting with configuration")

	svc, err := service.NewService(cfg.MaxFileSize, cfg.DocumentDirectory,
		service.WithEligibility(cfg.Eligibility),
		service.WithLogger(logger),
	)
	if err != nil {
		return fmt.Errorf("failed to create service: %w", err)
	}

	server, err := mcp.NewServer(cfg, svc, logger)
	if err != nil {
		return fmt.Errorf("failed to create MCP server: %w", err)
	}

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	if cfg.IsServerMode() {
		return runServerMode(ctx, cancel, server)
	}
	return runStdioMode(ctx, server)
}

func main() {
	if err := run(); err != nil {
		log.Error().Err(err).Msg("mcp-seo-headings failed")
		os.Exit(1)
	}
}

// printVersion prints version information
func printVersion(w io.Writer) {
	fmt.Fprintf(w, "MCP SEO Headings\n")
	fmt.Fprintf(w, "Version: %s\n", version)
	fmt.Fprintf(w, "Build Time: %s\n", buildTime)
	fmt.Fprintf(w, "Git Commit: %s\n", gitCommit)
	fmt.Fprintf(w, "Built with: %s\n", runtime.Version())
}
