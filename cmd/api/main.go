package main

import (
	"context"
	"net/http"
	"os"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"

	"otpstore/internal/config"
	"otpstore/internal/server"
	"otpstore/internal/services"
)

func main() {
	// Configure zerolog for better output
	log.Logger = log.Output(zerolog.ConsoleWriter{Out: os.Stderr})

	cfg := config.Load()
	level, err := zerolog.ParseLevel(cfg.LogLevel)
	if err != nil {
		log.Warn().Str("level", cfg.LogLevel).Msg("Invalid LOG_LEVEL, using info")
		level = zerolog.InfoLevel
	}
	zerolog.SetGlobalLevel(level)

	ctx := context.Background()

	otpRepo, closeStorage, err := newOTPRepository(ctx, cfg)
	if err != nil {
		log.Fatal().Err(err).Str("backend", cfg.StorageBackend).Msg("Failed to initialise OTP storage")
	}

	otpService := services.NewOTPService(ctx, otpRepo, services.OTPServiceConfig{
		Capacity:        cfg.OTPCapacity,
		DefaultTTL:      cfg.OTPDefaultTTL,
		CleanupInterval: cfg.CleanupInterval,
	})
	cleanup := otpService.StartCleanupInterval(ctx)

	s := server.NewServer(cfg.Port, otpRepo, otpService)

	done := make(chan bool, 1)

	go s.GracefulShutdown(done)

	err = s.Start()
	if err != nil && err != http.ErrServerClosed {
		log.Fatal().Err(err).Msg("HTTP server error")
	}

	<-done

	cleanup.Stop()
	otpService.Flush(ctx)
	if err := closeStorage(ctx); err != nil {
		log.Error().Err(err).Msg("Error closing OTP storage")
	}
	log.Info().Msg("Graceful shutdown complete.")
}
