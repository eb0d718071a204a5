package config

import (
	"os"
	"strconv"
	"time"
)

type Config struct {
	AppEnv   string
	LogLevel string

	HTTPPort int

	// Persistence backend: memory, file or postgres.
	StoreDriver string
	DataDir     string
	PostgresDSN string

	// Allowed browser origins for the storefront client.
	CORSOrigin string

	// OTP challenge lifetime.
	OTPTTL time.Duration

	// Artificial latency applied to credential and OTP operations,
	// standing in for upstream auth/SMS providers.
	SimLatency time.Duration
}

func Load() Config {
	return Config{
		AppEnv:      getEnv("APP_ENV", "dev"),
		LogLevel:    getEnv("LOG_LEVEL", "info"),
		HTTPPort:    getEnvInt("HTTP_PORT", 8080),
		StoreDriver: getEnv("STORE_DRIVER", "file"),
		DataDir:     getEnv("DATA_DIR", "./data"),
		PostgresDSN: getEnv("POSTGRES_DSN", ""),
		CORSOrigin:  getEnv("CORS_ORIGIN", "http://localhost:5173"),
		OTPTTL:      getEnvDuration("OTP_TTL", 5*time.Minute),
		SimLatency:  getEnvDuration("SIM_LATENCY", 0),
	}
}

func getEnv(key, def string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return def
}

func getEnvInt(key string, def int) int {
	v := os.Getenv(key)

	if v == "" {
		return def
	}

	n, err := strconv.Atoi(v)
	if err != nil {
		return def
	}

	return n
}

func getEnvDuration(key string, def time.Duration) time.Duration {
	v := os.Getenv(key)

	if v == "" {
		return def
	}

	d, err := time.ParseDuration(v)
	if err != nil {
		return def
	}

	return d
}
