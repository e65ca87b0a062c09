package main

import (
	"bytes"
	"context"
	"testing"
	"time"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/a3tai/mcp-seo-headings/internal/config"
	"github.com/a3tai/mcp-seo-headings/internal/mcp"
	"github.com/a3tai/mcp-seo-headings/internal/service"
)

func TestPrintVersion(t *testing.T) {
	oldVersion, oldBuildTime, oldGitCommit := version, buildTime, gitCommit
	defer func() {
		version, buildTime, gitCommit = oldVersion, oldBuildTime, oldGitCommit
	}()

	version = "1.2.3"
	buildTime = "2026-01-01_10:30:00"
	gitCommit = "abc123"

	var buf bytes.Buffer
	printVersion(&buf)

	output := buf.String()
	for _, expected := range []string{
		"MCP SEO Headings",
		"Version: 1.2.3",
		"Build Time: 2026-01-01_10:30:00",
		"Git Commit: abc123",
		"Built with:",
	} {
		assert.Contains(t, output, expected)
	}
}

func TestSetupLogging(t *testing.T) {
	tests := []struct {
		name      string
		mode      string
		logLevel  string
		wantLevel zerolog.Level
	}{
		{"stdio info is quiet", config.ModeStdio, "info", zerolog.WarnLevel},
		{"stdio debug", config.ModeStdio, "debug", zerolog.DebugLevel},
		{"stdio error", config.ModeStdio, "error", zerolog.ErrorLevel},
		{"server info", config.ModeServer, "info", zerolog.InfoLevel},
		{"server debug", config.ModeServer, "debug", zerolog.DebugLevel},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var buf bytes.Buffer
			logger := setupLogging(&config.Config{Mode: tt.mode, LogLevel: tt.logLevel}, &buf)
			assert.Equal(t, tt.wantLevel, logger.GetLevel())
		})
	}
}

func TestSetupLoggingWritesToGivenWriter(t *testing.T) {
	var buf bytes.Buffer
	logger := setupLogging(&config.Config{Mode: config.ModeServer, LogLevel: "info"}, &buf)

	logger.Info().Msg("hello")
	logger.Debug().Msg("hidden")

	assert.Contains(t, buf.String(), "hello")
	assert.NotContains(t, buf.String(), "hidden")
}

func TestRunServerMode_StopsOnServerError(t *testing.T) {
	dir := t.TempDir()
	cfg := config.DefaultConfig()
	cfg.Mode = config.ModeServer
	cfg.Host = "256.256.256.256" // not a valid address
	cfg.Port = 1
	cfg.DocumentDirectory = dir

	svc, err := service.NewService(cfg.MaxFileSize, dir)
	require.NoError(t, err)
	server, err := mcp.NewServer(cfg, svc, zerolog.Nop())
	require.NoError(t, err)

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	err = runServerMode(ctx, cancel, server)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "server error")
}
