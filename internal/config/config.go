package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"
)

// Config holds all configuration for the application
type Config struct {
	// Server configuration
	Port  string
	Debug bool

	// App directory service
	PlayStoreAPIURL string
	Country         string
	MaxReviews      int

	// Analysis defaults (overridable per request)
	PosThreshold   float64
	NegThreshold   float64
	AlertThreshold float64

	// Watchlist rescans
	WatchedApps    []string
	RescanSchedule string // "daily" or "weekly"

	// Result archive
	StorageAccount   string
	StorageContainer string
	DataDir          string

	// Notification configuration
	NotificationEmail string
	SMTPHost          string
	SMTPPort          int
	SMTPUsername      string
	SMTPPassword      string
}

// Load loads configuration from environment variables
func Load() (*Config, error) {
	cfg := &Config{
		Port:  getEnv("PORT", "8080"),
		Debug: getBoolEnv("DEBUG", false),

		PlayStoreAPIURL: getEnv("PLAYSTORE_API_URL", "https://playstore-directory.lusule.com/v1"),
		Country:         getEnv("COUNTRY", "us"),
		MaxReviews:      getIntEnv("MAX_REVIEWS", 500),

		PosThreshold:   getFloatEnv("POS_THRESHOLD", 0.1),
		NegThreshold:   getFloatEnv("NEG_THRESHOLD", -0.1),
		AlertThreshold: getFloatEnv("ALERT_THRESHOLD", 30),

		WatchedApps:    getSliceEnv("WATCHED_APPS", nil),
		RescanSchedule: getEnv("RESCAN_SCHEDULE", "weekly"),

		StorageAccount:   getEnv("AZURE_STORAGE_ACCOUNT", ""),
		StorageContainer: getEnv("AZURE_STORAGE_CONTAINER", "analyses"),
		DataDir:          getEnv("DATA_DIR", "data"),

		NotificationEmail: getEnv("NOTIFICATION_EMAIL", ""),
		SMTPHost:          getEnv("SMTP_HOST", ""),
		SMTPPort:          getIntEnv("SMTP_PORT", 587),
		SMTPUsername:      getEnv("SMTP_USERNAME", ""),
		SMTPPassword:      getEnv("SMTP_PASSWORD", ""),
	}

	// Validate required configuration
	if err := cfg.validate(); err != nil {
		return nil, fmt.Errorf("configuration validation failed: %w", err)
	}

	return cfg, nil
}

func (c *Config) validate() error {
	if c.RescanSchedule != "daily" && c.RescanSchedule != "weekly" {
		return fmt.Errorf("RESCAN_SCHEDULE must be 'daily' or 'weekly'")
	}

	if c.MaxReviews <= 0 {
		return fmt.Errorf("MAX_REVIEWS must be a positive integer")
	}

	if c.PosThreshold < 0 || c.PosThreshold > 1 {
		return fmt.Errorf("POS_THRESHOLD must be within [0, 1]")
	}

	if c.NegThreshold < -1 || c.NegThreshold > 0 {
		return fmt.Errorf("NEG_THRESHOLD must be within [-1, 0]")
	}

	if c.AlertThreshold < 0 || c.AlertThreshold > 100 {
		return fmt.Errorf("ALERT_THRESHOLD must be within [0, 100]")
	}

	if c.NotificationEmail != "" {
		if c.SMTPHost == "" || c.SMTPUsername == "" || c.SMTPPassword == "" {
			return fmt.Errorf("SMTP configuration is required when NOTIFICATION_EMAIL is set")
		}
	}

	if len(c.WatchedApps) > 0 && c.NotificationEmail == "" {
		return fmt.Errorf("NOTIFICATION_EMAIL is required when WATCHED_APPS is set")
	}

	return nil
}

// Helper functions for environment variable parsing
func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getBoolEnv(key string, defaultValue bool) bool {
	if value := os.Getenv(key); value != "" {
		if parsed, err := strconv.ParseBool(value); err == nil {
			return parsed
		}
	}
	return defaultValue
}

func getIntEnv(key string, defaultValue int) int {
	if value := os.Getenv(key); value != "" {
		if parsed, err := strconv.Atoi(value); err == nil {
			return parsed
		}
	}
	return defaultValue
}

func getFloatEnv(key string, defaultValue float64) float64 {
	if value := os.Getenv(key); value != "" {
		if parsed, err := strconv.ParseFloat(value, 64); err == nil {
			return parsed
		}
	}
	return defaultValue
}

func getSliceEnv(key string, defaultValue []string) []string {
	if value := os.Getenv(key); value != "" {
		parts := strings.Split(value, ",")
		for i := range parts {
			parts[i] = strings.TrimSpace(parts[i])
		}
		return parts
	}
	return defaultValue
}
