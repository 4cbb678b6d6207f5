package main

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"cantina-api/internal/config"
	"cantina-api/internal/handler"
	"cantina-api/internal/repository"
	"cantina-api/internal/router"
	"cantina-api/internal/service"
	"cantina-api/internal/watchdog"

	"github.com/joho/godotenv"
)

func main() {
	if err := run(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

func run() error {
	// A .env file is optional; the environment wins either way.
	_ = godotenv.Load()

	cfg, err := config.Load()
	if err != nil {
		return fmt.Errorf("failed to load configuration: %w", err)
	}

	logger := config.NewLogger(cfg.Logger)
	logger.Info().Msg("starting canteen API server")

	// Context for the application lifecycle; cancelling it stops the
	// watchdog.
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	repo := repository.NewProductRepository(cfg.Database, logger)

	// The watchdog owns database initialization: it probes the server,
	// initializes on first contact and re-initializes after an outage.
	wd := watchdog.New(repo, cfg.Watchdog.Interval, logger)
	go wd.Run(ctx)

	productService := service.NewProductService(repo, logger)
	productHandler := handler.NewProductHandler(productService, logger)
	testHandler := handler.NewTestHandler(wd.Reachable, logger)

	mux := router.New(productHandler, testHandler, wd.Reachable, cfg.Cooldown.TTL, logger)

	server := &http.Server{
		Addr:         cfg.Server.Address(),
		Handler:      mux,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 15 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	serverErrors := make(chan error, 1)

	go func() {
		logger.Info().
			Str("address", cfg.Server.Address()).
			Msg("HTTP server started")
		serverErrors <- server.ListenAndServe()
	}()

	shutdown := make(chan os.Signal, 1)
	signal.Notify(shutdown, os.Interrupt, syscall.SIGTERM)

	select {
	case err := <-serverErrors:
		return fmt.Errorf("server error: %w", err)

	case sig := <-shutdown:
		logger.Info().
			Str("signal", sig.String()).
			Msg("shutdown signal received, starting graceful shutdown")

		shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 30*time.Second)
		defer shutdownCancel()

		if err := server.Shutdown(shutdownCtx); err != nil {
			logger.Error().Err(err).Msg("failed to shutdown server gracefully")
			if closeErr := server.Close(); closeErr != nil {
				logger.Error().Err(closeErr).Msg("failed to close server")
			}
			return fmt.Errorf("server shutdown failed: %w", err)
		}

		logger.Info().Msg("server shutdown completed")
	}

	return nil
}
