// Package main is the HTTP entry point for the fund advisor.
package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/aristath/fundadvisor/internal/config"
	"github.com/aristath/fundadvisor/internal/di"
	"github.com/aristath/fundadvisor/internal/server"
	"github.com/aristath/fundadvisor/pkg/logger"
)

// main orchestrates startup:
// 1. Loads configuration from the environment (.env supported)
// 2. Initializes logging
// 3. Wires dependencies, loading the fund dataset (fatal if unavailable)
// 4. Starts the HTTP server
// 5. Waits for a shutdown signal and shuts down gracefully
func main() {
	cfg, err := config.Load()
	if err != nil {
		// Use fallback logger if config fails
		fallbackLog := logger.New(logger.Config{
			Level:  "info",
			Pretty: true,
		})
		fallbackLog.Fatal().Err(err).Msg("Failed to load configuration")
	}

	log := logger.New(logger.Config{
		Level:  cfg.LogLevel,
		Pretty: cfg.DevMode,
	})
	logger.SetGlobalLogger(log)

	log.Info().Msg("Starting fund advisor")

	// The dataset is loaded once here and never reloaded
	wireCtx, wireCancel := context.WithTimeout(context.Background(), 60*time.Second)
	container, err := di.Wire(wireCtx, cfg, log)
	wireCancel()
	if err != nil {
		log.Fatal().Err(err).Str("dataset", cfg.FundDataset).Msg("Failed to wire dependencies")
	}

	srv := server.New(server.Config{
		Log:         log,
		Port:        cfg.Port,
		DevMode:     cfg.DevMode,
		CORSOrigins: cfg.CORSOrigins,
		Container:   container,
	})

	go func() {
		if err := srv.Start(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Fatal().Err(err).Msg("Failed to start server")
		}
	}()

	log.Info().Int("port", cfg.Port).Msg("Server started successfully")

	// Wait for interrupt signal
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Info().Msg("Shutting down server...")

	// In-flight requests get up to 10 seconds to finish
	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer shutdownCancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		log.Error().Err(err).Msg("Server forced to shutdown")
	}

	log.Info().Msg("Server stopped")
}
