package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/wardrobelens/backend/config"
	"github.com/wardrobelens/backend/internal/bootstrap"
	httpDelivery "github.com/wardrobelens/backend/internal/delivery/http"
	"github.com/wardrobelens/backend/internal/logging"
)

// Version is set at build time
var Version = "1.0.0"

func main() {
	// Load configuration
	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to load configuration: %v\n", err)
		os.Exit(1)
	}

	bootstrap.InitLogging(cfg)

	logging.Info().
		Str("version", Version).
		Str("environment", cfg.Server.Environment).
		Str("port", cfg.Server.Port).
		Str("cache", cfg.Cache.Type).
		Bool("enrichment", cfg.Enrichment.Enabled).
		Msg("Starting Wardrobe backend")

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	app, err := bootstrap.New(ctx, cfg)
	if err != nil {
		logging.Fatal().Err(err).Msg("Failed to initialise application")
	}
	defer app.Close()

	// Host table is loaded once and never changes afterwards
	images := bootstrap.NewImageLoader(ctx, cfg)

	handler := httpDelivery.NewHandler(app.Capsules, images, httpDelivery.HandlerConfig{
		PublicBaseURL:    cfg.Server.PublicBaseURL,
		ImageContentType: images.ContentType(),
		Version:          Version,
	})

	// Per-IP limiter; idle client buckets are evicted in the background
	var limiter *httpDelivery.RateLimiter
	if cfg.RateLimit.PerIP > 0 {
		limiter = httpDelivery.NewRateLimiter(cfg.RateLimit.PerIP)
		limiter.Start(0)
		defer limiter.Stop()
	}

	router := httpDelivery.SetupRouter(cfg, handler, limiter)

	server := &http.Server{
		Addr:              fmt.Sprintf(":%s", cfg.Server.Port),
		Handler:           router,
		ReadHeaderTimeout: 10 * time.Second,
	}

	go func() {
		logging.Info().Str("addr", server.Addr).Msg("Server listening")
		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logging.Fatal().Err(err).Msg("Failed to start server")
		}
	}()

	<-ctx.Done()
	logging.Info().Msg("Shutting down")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 15*time.Second)
	defer cancel()
	if err := server.Shutdown(shutdownCtx); err != nil {
		logging.Error().Err(err).Msg("Graceful shutdown failed")
	}
}
