// Package main implements the entry point for the GrocerHub API server,
// a versioned REST API for grocery store data backed by MongoDB.
package main

import (
	"context"
	"log"
	"log/slog"
	"time"

	"github.com/grocerhub/grocer-api/internal/config"
	"github.com/grocerhub/grocer-api/internal/platform/logger"
)

// startupTimeout bounds how long initialization may take, including the
// MongoDB connection and index creation.
const startupTimeout = 30 * time.Second

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}

	logger.Setup(cfg.Server)
	slog.Info("Server configuration loaded",
		"port", cfg.Server.Port,
		"log_level", cfg.Server.LogLevel,
		"database", cfg.Database.Name,
		"dev_mode", cfg.API.DevMode)

	ctx, cancel := context.WithTimeout(context.Background(), startupTimeout)
	app, err := newApplication(ctx, cfg)
	cancel()
	if err != nil {
		log.Fatalf("Failed to initialize application: %v", err)
	}

	if err := app.startHTTPServer(context.Background(), app.setupRouter()); err != nil {
		log.Fatalf("Server error: %v", err)
	}
}
