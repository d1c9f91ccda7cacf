package config

import (
	"fmt"
	"time"

	"github.com/spf13/viper"
)

// Config holds every runtime setting the service reads. Values come from
// environment variables with sensible defaults for local development.
type Config struct {
	HTTPAddr    string
	DatabaseURL string
	RedisAddr   string

	JWTSecret       string
	AccessTokenTTL  time.Duration
	RefreshTokenTTL time.Duration

	// StoreTimezone is the single timezone sale timestamps are recorded in,
	// regardless of where a terminal runs.
	StoreTimezone string

	AlertFrom        string
	AlertTo          string
	SMTPServer       string
	SMTPPort         string
	SMTPUser         string
	SMTPPassword     string
	SMTPAuthDisabled bool
}

func Load() (Config, error) {
	v := viper.New()
	v.AutomaticEnv()

	v.SetDefault("HTTP_ADDR", ":8080")
	v.SetDefault("REDIS_ADDR", "localhost:6379")
	v.SetDefault("ACCESS_TOKEN_TTL", "15m")
	v.SetDefault("REFRESH_TOKEN_TTL", "168h")
	v.SetDefault("STORE_TIMEZONE", "Asia/Manila")
	v.SetDefault("SMTP_PORT", "587")

	cfg := Config{
		HTTPAddr:         v.GetString("HTTP_ADDR"),
		DatabaseURL:      v.GetString("DATABASE_URL"),
		RedisAddr:        v.GetString("REDIS_ADDR"),
		JWTSecret:        v.GetString("JWT_SECRET"),
		AccessTokenTTL:   v.GetDuration("ACCESS_TOKEN_TTL"),
		RefreshTokenTTL:  v.GetDuration("REFRESH_TOKEN_TTL"),
		StoreTimezone:    v.GetString("STORE_TIMEZONE"),
		AlertFrom:        v.GetString("ALERT_FROM"),
		AlertTo:          v.GetString("ALERT_TO"),
		SMTPServer:       v.GetString("SMTP_SERVER"),
		SMTPPort:         v.GetString("SMTP_PORT"),
		SMTPUser:         v.GetString("SMTP_USER"),
		SMTPPassword:     v.GetString("SMTP_PASS"),
		SMTPAuthDisabled: v.GetString("SMTP_AUTH_DISABLED") != "",
	}

	if cfg.DatabaseURL == "" {
		return Config{}, fmt.Errorf("environment variable DATABASE_URL not found")
	}
	if cfg.JWTSecret == "" {
		return Config{}, fmt.Errorf("environment variable JWT_SECRET not found")
	}

	if _, err := time.LoadLocation(cfg.StoreTimezone); err != nil {
		return Config{}, fmt.Errorf("invalid STORE_TIMEZONE %q: %w", cfg.StoreTimezone, err)
	}

	return cfg, nil
}

// Location resolves the configured store timezone. Load already validated it.
func (c Config) Location() *time.Location {
	loc, err := time.LoadLocation(c.StoreTimezone)
	if err != nil {
		return time.UTC
	}
	return loc
}

// AlertsEnabled reports whether SMTP alerting is configured.
func (c Config) AlertsEnabled() bool {
	return c.SMTPServer != "" && c.AlertFrom != "" && c.AlertTo != ""
}
