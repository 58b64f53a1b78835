package config

import (
	"errors"
	"fmt"
	"log/slog"
	"net/url"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

type Config struct {
	App     AppConfig
	Records RecordsConfig
	CORS    CORSConfig
	Session SessionConfig
	Clock   ClockConfig
}

// AppConfig holds application configuration
type AppConfig struct {
	Port     int
	Env      string
	LogLevel string
}

// RecordsConfig locates the record store the console talks to.
type RecordsConfig struct {
	BaseURL string
	// Timeout bounds each call; 0 means no timeout.
	Timeout time.Duration
}

type CORSConfig struct {
	AllowedOrigins []string
}

type SessionConfig struct {
	IdleTimeout   time.Duration
	SweepInterval time.Duration
}

type ClockConfig struct {
	Timezone string
}

func Load() (*Config, error) {
	// A missing .env is fine; the process environment still applies.
	if err := godotenv.Load(); err != nil && !errors.Is(err, os.ErrNotExist) {
		return nil, fmt.Errorf("failed to load .env: %w", err)
	}

	config := &Config{}

	// Application configuration
	appPort, err := strconv.Atoi(getEnv("APP_PORT", "8081"))
	if err != nil {
		return nil, fmt.Errorf("invalid APP_PORT: %w", err)
	}

	config.App = AppConfig{
		Port:     appPort,
		Env:      getEnv("APP_ENV", "development"),
		LogLevel: getEnv("LOG_LEVEL", "info"),
	}

	// Record store configuration
	recordTimeout, err := time.ParseDuration(getEnv("RECORD_API_TIMEOUT", "0s"))
	if err != nil {
		return nil, fmt.Errorf("invalid RECORD_API_TIMEOUT: %w", err)
	}

	config.Records = RecordsConfig{
		BaseURL: getEnv("RECORD_API_URL", "http://localhost:8080/api"),
		Timeout: recordTimeout,
	}

	config.CORS = CORSConfig{
		AllowedOrigins: getEnvSlice("CORS_ALLOWED_ORIGINS", "http://localhost:3000"),
	}

	// Session configuration
	idleTimeout, err := time.ParseDuration(getEnv("SESSION_IDLE_TIMEOUT", "30m"))
	if err != nil {
		return nil, fmt.Errorf("invalid SESSION_IDLE_TIMEOUT: %w", err)
	}
	sweepInterval, err := time.ParseDuration(getEnv("SESSION_SWEEP_INTERVAL", "5m"))
	if err != nil {
		return nil, fmt.Errorf("invalid SESSION_SWEEP_INTERVAL: %w", err)
	}

	config.Session = SessionConfig{
		IdleTimeout:   idleTimeout,
		SweepInterval: sweepInterval,
	}

	config.Clock = ClockConfig{
		Timezone: getEnv("CLOCK_TIMEZONE", "Local"),
	}

	// Validate required fields
	if err := config.Validate(); err != nil {
		return nil, fmt.Errorf("configuration validation failed: %w", err)
	}

	return config, nil
}

// Validate validates the configuration
func (c *Config) Validate() error {
	if c.Records.BaseURL == "" {
		return fmt.Errorf("RECORD_API_URL is required")
	}
	u, err := url.Parse(c.Records.BaseURL)
	if err != nil || !u.IsAbs() || u.Host == "" {
		return fmt.Errorf("RECORD_API_URL must be an absolute URL")
	}
	if c.Records.Timeout < 0 {
		return fmt.Errorf("RECORD_API_TIMEOUT must not be negative")
	}
	if c.Session.IdleTimeout <= 0 {
		return fmt.Errorf("SESSION_IDLE_TIMEOUT must be positive")
	}
	if c.Session.SweepInterval <= 0 {
		return fmt.Errorf("SESSION_SWEEP_INTERVAL must be positive")
	}
	if _, err := c.Location(); err != nil {
		return fmt.Errorf("invalid CLOCK_TIMEZONE: %w", err)
	}
	return nil
}

// Location returns the zone check-in and check-out timestamps are entered in.
func (c *Config) Location() (*time.Location, error) {
	return time.LoadLocation(c.Clock.Timezone)
}

// SlogLevel maps LOG_LEVEL to a slog level; unknown values fall back to info.
func (c *Config) SlogLevel() slog.Level {
	var level slog.Level
	if err := level.UnmarshalText([]byte(c.App.LogLevel)); err != nil {
		return slog.LevelInfo
	}
	return level
}

func getEnv(key, fallback string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return fallback
}

func getEnvSlice(env, fallback string) []string {
	value := getEnv(env, fallback)
	if value == "" {
		return []string{}
	}
	var result []string
	for _, part := range strings.Split(value, ",") {
		if part = strings.TrimSpace(part); part != "" {
			result = append(result, part)
		}
	}
	return result
}
