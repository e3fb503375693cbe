// Package main is the entry point for the covered-call strike service.
// It serves strike recommendations, timeframe comparisons and income
// projections over HTTP.
package main

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/aristath/covercall/internal/config"
	"github.com/aristath/covercall/internal/modules/strikes"
	"github.com/aristath/covercall/internal/server"
	"github.com/aristath/covercall/pkg/logger"
)

func main() {
	// Load configuration first to get log level
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
		Pretty: cfg.LogPretty,
	})
	logger.SetGlobalLogger(log)

	log.Info().Msg("Starting covercall")

	engine, err := strikes.NewEngine(cfg.Strikes, log)
	if err != nil {
		log.Fatal().Err(err).Msg("Failed to create strike engine")
	}

	srv := server.New(server.Config{
		Log:     log,
		Config:  cfg,
		Engine:  engine,
		Port:    cfg.Port,
		DevMode: cfg.DevMode,
	})

	go func() {
		if err := srv.Start(); err != nil && err != http.ErrServerClosed {
			log.Fatal().Err(err).Msg("Failed to start server")
		}
	}()

	log.Info().
		Int("port", cfg.Port).
		Float64("default_target_probability", cfg.Strikes.DefaultTargetProbability).
		Ints("default_horizons", cfg.Strikes.DefaultHorizons).
		Msg("Server started")

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
