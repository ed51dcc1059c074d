package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	_ "github.com/joho/godotenv/autoload"
)

type Config struct {
	Log struct {
		Level  string
		Format string
		Source bool
	}

	Server struct {
		Host string
		Port string
	}

	DB struct {
		DSN      string
		Host     string
		Port     string
		User     string
		Password string
		Name     string
		SSLMode  string
	}

	Redis struct {
		Addr     string
		Password string
		DB       int
	}

	JWT struct {
		Secret string
		TTL    time.Duration
	}

	RateLimit struct {
		API    WindowConfig
		Auth   WindowConfig
		Submit WindowConfig
		Vote   WindowConfig
	}

	Env string
}

// WindowConfig is a fixed-window budget: Max requests per Window.
type WindowConfig struct {
	Window time.Duration
	Max    int
}

func New() *Config {
	cfg := &Config{}

	cfg.Env = getEnvDefault("APP_ENV", "development")

	// Logger
	cfg.Log.Level = getEnvDefault("LOG_LEVEL", "info")
	cfg.Log.Format = getEnvDefault("LOG_FORMAT", "text")
	cfg.Log.Source = isTruthy(os.Getenv("LOG_SOURCE"))

	// HTTP server
	cfg.Server.Host = getEnvDefault("HOST", "0.0.0.0")
	cfg.Server.Port = getEnvDefault("PORT", "8080")

	// Database
	cfg.DB.DSN = os.Getenv("DATABASE_DSN")
	if cfg.DB.DSN == "" {
		cfg.DB.Host = getEnvDefault("DB_HOST", "localhost")
		cfg.DB.Port = getEnvDefault("DB_PORT", "5432")
		cfg.DB.User = getEnvDefault("DB_USER", "postgres")
		cfg.DB.Password = getEnvDefault("DB_PASSWORD", "postgres")
		cfg.DB.Name = getEnvDefault("DB_NAME", "genie")
		cfg.DB.SSLMode = getEnvDefault("DB_SSLMODE", "disable")

		cfg.DB.DSN = fmt.Sprintf(
			"host=%s user=%s password=%s dbname=%s port=%s sslmode=%s TimeZone=UTC",
			cfg.DB.Host, cfg.DB.User, cfg.DB.Password, cfg.DB.Name, cfg.DB.Port, cfg.DB.SSLMode,
		)
	}

	// Redis (optional; enables the shared rate limiter when set)
	cfg.Redis.Addr = os.Getenv("REDIS_ADDR")
	cfg.Redis.Password = getEnvDefault("REDIS_PASSWORD", "")
	if dbStr := getEnvDefault("REDIS_DB", "0"); dbStr != "" {
		if dbInt, err := strconv.Atoi(dbStr); err == nil {
			cfg.Redis.DB = dbInt
		}
	}

	// JWT
	cfg.JWT.Secret = getEnvDefault("JWT_SECRET", "dev-secret-change-me")
	cfg.JWT.TTL = getDurationDefault("JWT_TTL", 72*time.Hour)

	// Rate limits
	cfg.RateLimit.API = WindowConfig{
		Window: getDurationDefault("RATE_API_WINDOW", time.Minute),
		Max:    getIntDefault("RATE_API_MAX", 100),
	}
	cfg.RateLimit.Auth = WindowConfig{
		Window: getDurationDefault("RATE_AUTH_WINDOW", 15*time.Minute),
		Max:    getIntDefault("RATE_AUTH_MAX", 10),
	}
	cfg.RateLimit.Submit = WindowConfig{
		Window: getDurationDefault("RATE_SUBMIT_WINDOW", time.Hour),
		Max:    getIntDefault("RATE_SUBMIT_MAX", 10),
	}
	cfg.RateLimit.Vote = WindowConfig{
		Window: getDurationDefault("RATE_VOTE_WINDOW", time.Minute),
		Max:    getIntDefault("RATE_VOTE_MAX", 100),
	}

	return cfg
}

func getEnvDefault(k, def string) string {
	if v := strings.TrimSpace(os.Getenv(k)); v != "" {
		return v
	}
	return def
}

func getIntDefault(k string, def int) int {
	if v := strings.TrimSpace(os.Getenv(k)); v != "" {
		if n, err := strconv.Atoi(v); err == nil {
			return n
		}
	}
	return def
}

func getDurationDefault(k string, def time.Duration) time.Duration {
	if v := strings.TrimSpace(os.Getenv(k)); v != "" {
		if d, err := time.ParseDuration(v); err == nil {
			return d
		}
	}
	return def
}

func isTruthy(v string) bool {
	switch strings.ToLower(strings.TrimSpace(v)) {
	case "1", "true", "yes", "y", "on":
		return true
	}
	return false
}
