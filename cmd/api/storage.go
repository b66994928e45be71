package main

import (
	"context"
	"fmt"

	"github.com/rs/zerolog/log"

	"otpstore/internal/config"
	"otpstore/internal/database"
	"otpstore/internal/repositories"
)

type closeFunc func(ctx context.Context) error

func newOTPRepository(ctx context.Context, cfg *config.Config) (repositories.OTPRepository, closeFunc, error) {
	log.Info().Str("backend", cfg.StorageBackend).Msg("Selecting OTP storage backend")

	switch cfg.StorageBackend {
	case config.BackendFile:
		return repositories.NewFileOTPRepository(cfg.StorageFile), func(context.Context) error { return nil }, nil
	case config.BackendMongo:
		db, err := database.New(ctx, cfg.MongoURI)
		if err != nil {
			return nil, nil, err
		}
		return repositories.NewMongoOTPRepository(db.Database(cfg.MongoDatabase), cfg.MongoCollection), db.Close, nil
	case config.BackendRedis:
		client, err := database.NewRedis(ctx, cfg.RedisURL)
		if err != nil {
			return nil, nil, err
		}
		return repositories.NewRedisOTPRepository(client, cfg.RedisKey), func(context.Context) error { return client.Close() }, nil
	default:
		return nil, nil, fmt.Errorf("unknown OTP_STORAGE_BACKEND %q", cfg.StorageBackend)
	}
}
