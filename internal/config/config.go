package config

import (
	"os"
	"strconv"
	"time"

	_ "github.com/joho/godotenv/autoload"
	"github.com/rs/zerolog/log"
)

const (
	BackendFile  = "file"
	BackendMongo = "mongo"
	BackendRedis = "redis"
)

// Config holds all runtime configuration loaded from environment variables.
type Config struct {
	Port     int
	LogLevel string

	StorageBackend  string
	StorageFile     string
	MongoURI        string
	MongoDatabase   string
	MongoCollection string
	RedisURL        string
	RedisKey        string

	OTPCapacity     int
	OTPDefaultTTL   time.Duration
	CleanupInterval time.Duration
}

func Load() *Config {
	return &Config{
		Port:     getEnvInt("PORT", 8080),
		LogLevel: getEnv("LOG_LEVEL", "info"),

		StorageBackend:  getEnv("OTP_STORAGE_BACKEND", BackendFile),
		StorageFile:     getEnv("OTP_STORAGE_FILE", "otpStorage.json"),
		MongoURI:        getEnv("MONGO_URI", ""),
		MongoDatabase:   getEnv("MONGO_DATABASE", "otpstore"),
		MongoCollection: getEnv("MONGO_COLLECTION", "otps"),
		RedisURL:        getEnv("REDIS_URL", ""),
		RedisKey:        getEnv("REDIS_KEY", "otp:storage"),

		OTPCapacity:     getEnvInt("OTP_CAPACITY", 1000),
		OTPDefaultTTL:   getEnvDuration("OTP_DEFAULT_TTL", 5*time.Minute),
		CleanupInterval: getEnvDuration("OTP_CLEANUP_INTERVAL", time.Minute),
	}
}

func getEnv(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

func getEnvInt(key string, fallback int) int {
	v := os.Getenv(key)
	if v == "" {
		return fallback
	}
	n, err := strconv.Atoi(v)
	if err != nil || n <= 0 {
		log.Warn().Str("key", key).Str("value", v).Int("default", fallback).Msg("Invalid integer environment variable, using default")
		return fallback
	}
	return n
}

func getEnvDuration(key string, fallback time.Duration) time.Duration {
	v := os.Getenv(key)
	if v == "" {
		return fallback
	}
	d, err := time.ParseDuration(v)
	if err != nil || d <= 0 {
		log.Warn().Str("key", key).Str("value", v).Dur("default", fallback).Msg("Invalid duration environment variable, using default")
		return fallback
	}
	return d
}
