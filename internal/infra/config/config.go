package config

import (
	"fmt"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/kelseyhightower/envconfig"
)

// AppConfig holds all configuration for the application.
type AppConfig struct {
	TelegramToken string        `envconfig:"TELEGRAM_TOKEN"`
	PollTimeout   time.Duration `envconfig:"POLL_TIMEOUT" default:"10s"`

	DatabaseURL    string `envconfig:"DATABASE_URL"`
	DBMaxOpenConns int    `envconfig:"DB_MAX_OPEN_CONNS" default:"25"`
	RedisAddr      string `envconfig:"REDIS_ADDR"` // empty: audit events are only logged
	RedisPassword  string `envconfig:"REDIS_PASSWORD"`
	RedisDB        int    `envconfig:"REDIS_DB" default:"0"`

	// One of the two is required; the hash wins when both are set.
	AdminPassword     string `envconfig:"ADMIN_PASSWORD"`
	AdminPasswordHash string `envconfig:"ADMIN_PASSWORD_HASH"`

	LogLevel    string `envconfig:"LOG_LEVEL" default:"info"`
	Environment string `envconfig:"ENVIRONMENT" default:"development"`

	SessionTTL       time.Duration `envconfig:"SESSION_TTL" default:"15m"`
	SessionSweepSpec string        `envconfig:"SESSION_SWEEP_SPEC" default:"@every 1m"`
	StoreTimeout     time.Duration `envconfig:"STORE_TIMEOUT" default:"5s"`
	AuditTimeout     time.Duration `envconfig:"AUDIT_TIMEOUT" default:"2s"`
	NewsLimit        int           `envconfig:"NEWS_LIMIT" default:"5"`
}

// Load reads configuration from environment variables and .env file (if present).
func Load() (*AppConfig, error) {
	// A missing .env is fine; existing environment variables are not overridden.
	_ = godotenv.Load()

	cfg := &AppConfig{}
	if err := envconfig.Process("", cfg); err != nil {
		return nil, fmt.Errorf("failed to process env: %w", err)
	}
	if err := Validate(cfg); err != nil {
		return nil, err
	}
	return cfg, nil
}

// Validate checks required settings and normalizes the rest.
func Validate(cfg *AppConfig) error {
	if cfg.TelegramToken == "" {
		return fmt.Errorf("TELEGRAM_TOKEN is not set")
	}
	if cfg.DatabaseURL == "" {
		return fmt.Errorf("DATABASE_URL is not set")
	}
	if cfg.AdminPassword == "" && cfg.AdminPasswordHash == "" {
		return fmt.Errorf("ADMIN_PASSWORD or ADMIN_PASSWORD_HASH must be set")
	}
	// Telegram trims messages, so a padded password could never be typed.
	if cfg.AdminPassword != strings.TrimSpace(cfg.AdminPassword) {
		return fmt.Errorf("ADMIN_PASSWORD must not start or end with whitespace")
	}
	if cfg.SessionTTL < 0 {
		return fmt.Errorf("SESSION_TTL must not be negative")
	}
	if cfg.StoreTimeout <= 0 {
		return fmt.Errorf("STORE_TIMEOUT must be positive")
	}
	if cfg.AuditTimeout <= 0 {
		return fmt.Errorf("AUDIT_TIMEOUT must be positive")
	}
	if cfg.NewsLimit <= 0 {
		return fmt.Errorf("NEWS_LIMIT must be positive")
	}
	if strings.TrimSpace(cfg.SessionSweepSpec) == "" {
		return fmt.Errorf("SESSION_SWEEP_SPEC must not be empty")
	}

	cfg.LogLevel = strings.ToLower(cfg.LogLevel)
	cfg.Environment = strings.ToLower(cfg.Environment)
	return nil
}

// Production reports whether logs should be machine readable.
func (c *AppConfig) Production() bool {
	return c.Environment == "production" || c.Environment == "staging"
}
