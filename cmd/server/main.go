// Package main is the entry point for the growlog server.
//
// main stays minimal: build the logger, load configuration, hand both to
// the server package. Everything else lives in internal/.
package main

import (
	"log/slog"
	"os"

	"github.com/jaehyukc/growlog/internal/config"
	"github.com/jaehyukc/growlog/internal/server"
)

func main() {
	level := slog.LevelInfo
	if os.Getenv("ENV") != "production" {
		level = slog.LevelDebug
	}
	logger := slog.New(slog.NewTextHandler(os.Stdout, &slog.HandlerOptions{
		Level: level,
	}))

	cfg := config.Load()

	if cfg.DatabaseURL == "" {
		logger.Error("DATABASE_URL is required")
		os.Exit(1)
	}
	if cfg.GitHub.ClientID == "" || cfg.GitHub.ClientSecret == "" {
		logger.Warn("GITHUB_CLIENT_ID / GITHUB_CLIENT_SECRET not set; login will fail until configured")
	}

	srv, err := server.New(cfg, logger)
	if err != nil {
		logger.Error("failed to create server", slog.String("error", err.Error()))
		os.Exit(1)
	}

	// Start blocks until SIGINT/SIGTERM.
	if err := srv.Start(); err != nil {
		logger.Error("server error", slog.String("error", err.Error()))
		os.Exit(1)
	}
}
