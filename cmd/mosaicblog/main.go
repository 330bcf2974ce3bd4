// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

// Package main is the entry point for the Mosaic blog front end.
// It loads configuration, connects to the optional page cache, sets up
// routing, and starts the HTTP server with graceful shutdown support.
package main

import (
	"context"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/joho/godotenv"

	"mosaicblog/internal/cache"
	"mosaicblog/internal/config"
	"mosaicblog/internal/handlers"
	"mosaicblog/internal/mosaic"
	"mosaicblog/internal/render"
	"mosaicblog/internal/router"
)

func main() {
	// Structured logger to stdout; debug level so cache hits and upstream
	// retries are visible during development.
	logger := slog.New(slog.NewTextHandler(os.Stdout, &slog.HandlerOptions{
		Level: slog.LevelDebug,
	}))
	slog.SetDefault(logger)

	// Load .env if present (local development convenience; real deployments
	// set the environment directly).
	if err := godotenv.Load(); err == nil {
		slog.Debug("loaded environment from .env")
	}

	// Load configuration from environment variables.
	cfg, err := config.Load()
	if err != nil {
		slog.Error("failed to load configuration", "error", err)
		os.Exit(1)
	}

	slog.Info("configuration loaded",
		"env", cfg.Env,
		"addr", cfg.Addr(),
		"api_url", cfg.APIURL,
		"authenticated", cfg.APIKey != "",
	)

	// Connect to Valkey for full-page caching. The cache is optional — a
	// missing VALKEY_HOST leaves pageCache nil and every request renders
	// fresh from the CMS.
	var pageCache *cache.PageCache
	if cfg.CacheEnabled() {
		valkeyClient, err := cache.ConnectValkey(cfg.ValkeyHost, cfg.ValkeyPort, cfg.ValkeyPassword)
		if err != nil {
			slog.Error("failed to connect to valkey", "error", err)
			os.Exit(1)
		}
		defer valkeyClient.Close()
		pageCache = cache.NewPageCache(valkeyClient, cache.DefaultPageTTL)
	} else {
		slog.Warn("valkey not configured — page caching disabled")
	}

	// Initialize the HTML template renderer.
	renderer, err := render.New("Mosaic")
	if err != nil {
		slog.Error("failed to initialize template renderer", "error", err)
		os.Exit(1)
	}

	// Initialize the Mosaic CMS API client.
	client := mosaic.New(mosaic.Config{
		BaseURL:          cfg.APIURL,
		APIKey:           cfg.APIKey,
		SiteDomain:       cfg.SiteDomain,
		AutoDetectRoutes: cfg.AutoDetectRoutes,
		Timeout:          cfg.HTTPTimeout,
	})

	// Create the public handler group with its dependencies.
	publicHandlers := handlers.NewPublic(client, renderer, pageCache)

	// Set up the Chi router with all middleware and routes.
	r := router.New(publicHandlers)

	// Create the HTTP server with sensible timeouts. WriteTimeout must
	// accommodate an upstream fetch plus one retry within HTTP_TIMEOUT.
	srv := &http.Server{
		Addr:         cfg.Addr(),
		Handler:      r,
		ReadTimeout:  5 * time.Second,
		WriteTimeout: 30 * time.Second,
		IdleTimeout:  120 * time.Second,
	}

	// Start the server in a goroutine so we can listen for shutdown signals.
	go func() {
		slog.Info("server starting", "addr", cfg.Addr())
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			slog.Error("server failed to start", "error", err)
			os.Exit(1)
		}
	}()

	// Graceful shutdown: wait for SIGINT or SIGTERM, then drain connections.
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	sig := <-quit
	slog.Info("shutdown signal received", "signal", sig)

	// Give active requests up to 30 seconds to complete.
	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	if err := srv.Shutdown(ctx); err != nil {
		slog.Error("server forced to shutdown", "error", err)
		os.Exit(1)
	}

	slog.Info("server stopped gracefully")
}
