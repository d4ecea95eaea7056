package config

import (
	"os"
	"strconv"
)

type Config struct {
	DatabaseURL string
	HTTPAddr    string
	LogLevel    string
	Env         string // dev|prod
	SentryDSN   string
	JWTSecret   string
	PageSize    int
}

func Load() (*Config, error) {
	pageSize, err := strconv.Atoi(getenv("PAGE_SIZE", "10"))
	if err != nil || pageSize <= 0 {
		pageSize = 10
	}

	cfg := &Config{
		DatabaseURL: mustEnv("DATABASE_URL"),
		HTTPAddr:    getenv("HTTP_ADDR", ":8080"),
		LogLevel:    getenv("LOG_LEVEL", "info"),
		Env:         getenv("ENV", "dev"),
		SentryDSN:   os.Getenv("SENTRY_DSN"),
		JWTSecret:   getenv("JWT_SECRET", "dev-secret-change-in-production"),
		PageSize:    pageSize,
	}
	return cfg, nil
}

func mustEnv(k string) string {
	v := os.Getenv(k)
	if v == "" {
		panic("required env " + k + " is empty")
	}
	return v
}

func getenv(k, def string) string {
	if v := os.Getenv(k); v != "" {
		return v
	}
	return def
}
