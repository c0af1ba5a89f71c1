// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

// Package main is the entry point for the Groundwork web server.
// It loads configuration, connects to services, sets up routing, and starts
// the HTTP server with graceful shutdown support.
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

	"groundwork/internal/cache"
	"groundwork/internal/config"
	"groundwork/internal/database"
	"groundwork/internal/handlers"
	"groundwork/internal/middleware"
	"groundwork/internal/render"
	"groundwork/internal/router"
	"groundwork/internal/session"
	"groundwork/internal/storage"
	"groundwork/internal/store"
)

func main() {
	// Structured logger for the whole process.
	logger := slog.New(slog.NewTextHandler(os.Stdout, &slog.HandlerOptions{
		Level: slog.LevelDebug,
	}))
	slog.SetDefault(logger)

	// Local development reads a .env file; deployments set real env vars.
	if err := godotenv.Load(); err != nil {
		slog.Debug("no .env file found, using environment variables")
	}

	cfg, err := config.Load()
	if err != nil {
		slog.Error("failed to load configuration", "error", err)
		os.Exit(1)
	}

	slog.Info("configuration loaded",
		"env", cfg.Env,
		"addr", cfg.Addr(),
	)

	// Connect to PostgreSQL.
	db, err := database.Connect(cfg.DSN())
	if err != nil {
		slog.Error("failed to connect to database", "error", err)
		os.Exit(1)
	}
	defer db.Close()

	// Run pending migrations.
	if err := database.Migrate(db); err != nil {
		slog.Error("failed to run migrations", "error", err)
		os.Exit(1)
	}

	// Seed the Project Sites category and the initial admin account
	// (no-op when they already exist).
	if err := database.Seed(db); err != nil {
		slog.Error("failed to seed database", "error", err)
		os.Exit(1)
	}

	// Connect to Valkey (sessions + full-page HTML cache).
	valkeyClient, err := cache.ConnectValkey(cfg.ValkeyHost, cfg.ValkeyPort, cfg.ValkeyPassword)
	if err != nil {
		slog.Error("failed to connect to valkey", "error", err)
		os.Exit(1)
	}
	defer valkeyClient.Close()

	// In non-development environments, mark cookies Secure (HTTPS-only).
	secureCookies := !cfg.IsDev()
	sessionStore := session.NewStore(valkeyClient, secureCookies)

	// HTML renderer for the admin console and the public site.
	renderer, err := render.New(cfg.IsDev())
	if err != nil {
		slog.Error("failed to initialize template renderer", "error", err)
		os.Exit(1)
	}

	// Data stores.
	categoryStore := store.NewCategoryStore(db)
	projectStore := store.NewProjectStore(db)
	clientStore := store.NewClientStore(db)
	albumStore := store.NewAlbumStore(db)
	imageStore := store.NewGalleryImageStore(db)
	jobStore := store.NewJobStore(db)
	applicationStore := store.NewApplicationStore(db)
	contactStore := store.NewContactStore(db)
	userStore := store.NewAdminUserStore(db)
	equipmentStore := store.NewEquipmentStore(db)

	// Connect to S3-compatible object storage (optional — the site works
	// without it, with uploads disabled).
	var storageClient *storage.Client
	if cfg.S3Endpoint != "" && cfg.S3AccessKey != "" {
		storageClient, err = storage.New(
			cfg.S3Endpoint, cfg.S3Region, cfg.S3AccessKey, cfg.S3SecretKey,
			cfg.S3BucketPublic, cfg.S3BucketPrivate, cfg.S3PublicURL,
		)
		if err != nil {
			slog.Error("failed to initialize S3 storage", "error", err)
			os.Exit(1)
		}
		if storageClient != nil {
			slog.Info("s3 storage connected",
				"endpoint", cfg.S3Endpoint,
				"public_bucket", cfg.S3BucketPublic,
				"private_bucket", cfg.S3BucketPrivate,
			)
		}
	} else {
		slog.Warn("s3 storage not configured — uploads disabled")
	}

	// Full-page HTML cache for the public site.
	pageCache := cache.NewPageCache(valkeyClient, cache.DefaultPageTTL)

	// Handler groups.
	adminStores := handlers.AdminStores{
		Categories: categoryStore,
		Projects:   projectStore,
		Clients:    clientStore,
		Albums:     albumStore,
		Images:     imageStore,
		Jobs:       jobStore,
		Apps:       applicationStore,
		Contacts:   contactStore,
		Users:      userStore,
		Equipment:  equipmentStore,
	}
	publicStores := handlers.PublicStores{
		Categories: categoryStore,
		Projects:   projectStore,
		Clients:    clientStore,
		Albums:     albumStore,
		Images:     imageStore,
		Jobs:       jobStore,
		Apps:       applicationStore,
		Contacts:   contactStore,
		Equipment:  equipmentStore,
	}
	adminHandlers := handlers.NewAdmin(adminStores, storageClient, pageCache, renderer)
	authHandlers := handlers.NewAuth(sessionStore, userStore, renderer)
	publicHandlers := handlers.NewPublic(publicStores, storageClient, pageCache, renderer)

	// Throttle credential guessing on the login endpoint.
	loginLimiter := middleware.NewRateLimiter(10, time.Minute)
	defer loginLimiter.Stop()

	r := router.New(router.Options{
		Sessions:     sessionStore,
		Allow:        userStore,
		Auth:         authHandlers,
		Admin:        adminHandlers,
		Public:       publicHandlers,
		Secure:       secureCookies,
		LoginLimiter: loginLimiter,
	})

	// WriteTimeout accommodates multi-megabyte gallery uploads to S3.
	srv := &http.Server{
		Addr:         cfg.Addr(),
		Handler:      r,
		ReadTimeout:  30 * time.Second,
		WriteTimeout: 60 * time.Second,
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
