package config

import (
	"fmt"
	"os"
	"strconv"
	"time"
)

// Application settings
type Config struct {
	Server    ServerConfig
	Logging   LoggingConfig
	Database  DatabaseConfig
	Dashboard DashboardConfig
	Receipts  ReceiptConfig
}

// Server settings
type ServerConfig struct {
	Port            string
	RequestTimeout  time.Duration
	ShutdownTimeout time.Duration
}

type DatabaseConfig struct {
	Path string
}

// Dashboard settings. Timezone decides where calendar days begin.
type DashboardConfig struct {
	Timezone   string
	WorkerPool int
}

// Outbound mailer for receipts and order history. An empty URL disables mailing.
type ReceiptConfig struct {
	URL                string
	Secret             string
	Timeout            time.Duration
	RateLimitPerSecond int
}

// Logging settings
type LoggingConfig struct {
	Level string
}

func Load() (*Config, error) {
	config := &Config{
		Server: ServerConfig{
			Port:            getEnv("PORT", "8080"),
			RequestTimeout:  getDurationEnv("REQUEST_TIMEOUT", "30s"),
			ShutdownTimeout: getDurationEnv("SHUTDOWN_TIMEOUT", "15s"),
		},
		Database: DatabaseConfig{
			Path: getEnv("DATABASE_PATH", "storefront.db"),
		},
		Dashboard: DashboardConfig{
			Timezone:   getEnv("DASHBOARD_TIMEZONE", "UTC"),
			WorkerPool: getIntEnv("DASHBOARD_WORKERS", 4),
		},
		Receipts: ReceiptConfig{
			URL:                getEnv("RECEIPT_URL", ""),
			Secret:             getEnv("RECEIPT_SECRET", ""),
			Timeout:            getDurationEnv("RECEIPT_TIMEOUT", "10s"),
			RateLimitPerSecond: getIntEnv("RECEIPT_RATE_LIMIT_PER_SECOND", 10),
		},
		Logging: LoggingConfig{
			Level: getEnv("LOG_LEVEL", "info"),
		},
	}

	if _, err := config.Dashboard.Location(); err != nil {
		return nil, err
	}
	if config.Dashboard.WorkerPool < 1 {
		config.Dashboard.WorkerPool = 1
	}

	return config, nil
}

// Location resolves the configured dashboard timezone
func (d DashboardConfig) Location() (*time.Location, error) {
	loc, err := time.LoadLocation(d.Timezone)
	if err != nil {
		return nil, fmt.Errorf("invalid DASHBOARD_TIMEZONE %q: %w", d.Timezone, err)
	}
	return loc, nil
}

func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getIntEnv(key string, defaultValue int) int {
	if value := os.Getenv(key); value != "" {
		if intValue, err := strconv.Atoi(value); err == nil {
			return intValue
		}
	}
	return defaultValue
}

func getDurationEnv(key, defaultValue string) time.Duration {
	if value := os.Getenv(key); value != "" {
		if duration, err := time.ParseDuration(value); err == nil {
			return duration
		}
	}
	duration, _ := time.ParseDuration(defaultValue)
	return duration
}
