package repositories

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"

	"otpstore/internal/models"
)

const backendRedis = "redis"

type redisOTPRepository struct {
	client *redis.Client
	key    string
}

// NewRedisOTPRepository keeps the whole snapshot as one JSON value under key.
func NewRedisOTPRepository(client *redis.Client, key string) OTPRepository {
	return &redisOTPRepository{client: client, key: key}
}

func (r *redisOTPRepository) Load(ctx context.Context) (otps []models.OTP, err error) {
	defer func(start time.Time) { observe(backendRedis, "load", start, err) }(time.Now())

	data, err := r.client.Get(ctx, r.key).Bytes()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return nil, nil
		}
		return nil, fmt.Errorf("get %s: %w", r.key, err)
	}
	return decodeOTPs(data)
}

func (r *redisOTPRepository) Save(ctx context.Context, otps []models.OTP) (err error) {
	defer func(start time.Time) { observe(backendRedis, "save", start, err) }(time.Now())

	data, err := encodeOTPs(otps)
	if err != nil {
		return fmt.Errorf("encode otps: %w", err)
	}
	if err = r.client.Set(ctx, r.key, data, 0).Err(); err != nil {
		return fmt.Errorf("set %s: %w", r.key, err)
	}
	return nil
}

func (r *redisOTPRepository) Ping(ctx context.Context) error {
	return r.client.Ping(ctx).Err()
}
