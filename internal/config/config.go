package config

import (
	"errors"
	"fmt"
	"net/url"
	"os"
	"strconv"
	"time"

	"github.com/charmbracelet/log"
	"github.com/joho/godotenv"
)

const (
	defaultDriver         = "sqlite3"
	defaultLimit          = 100
	defaultMaxLimit       = 500
	defaultQueryTimeout   = 5 * time.Second
	defaultRefreshTimeout = 10 * time.Second
	defaultNotifyChannel  = "player_changes"
)

// Load reads configuration from environment variables and .env file.
func Load() Config {
	err := godotenv.Load()
	if err != nil {
		log.Info("No .env file found, reading from environment variables")
	}

	cfg, err := FromEnv(os.LookupEnv)
	if err != nil {
		log.Fatalf("Error: %v", err)
	}
	return cfg
}

// FromEnv builds a Config from lookup, which has the signature of os.LookupEnv.
func FromEnv(lookup func(string) (string, bool)) (Config, error) {
	var errs []error

	// A helper function to get a required env var.
	getEnv := func(key string) string {
		if value, ok := lookup(key); ok && value != "" {
			return value
		}
		errs = append(errs, fmt.Errorf("required environment variable %s is not set", key))
		return ""
	}
	getOptional := func(key, fallback string) string {
		if value, ok := lookup(key); ok && value != "" {
			return value
		}
		return fallback
	}
	getInt := func(key string, fallback int) int {
		value, ok := lookup(key)
		if !ok || value == "" {
			return fallback
		}
		n, err := strconv.Atoi(value)
		if err != nil || n <= 0 {
			errs = append(errs, fmt.Errorf("%s must be a positive integer, got %q", key, value))
			return fallback
		}
		return n
	}
	getDuration := func(key string, fallback time.Duration) time.Duration {
		value, ok := lookup(key)
		if !ok || value == "" {
			return fallback
		}
		d, err := time.ParseDuration(value)
		if err != nil || d <= 0 {
			errs = append(errs, fmt.Errorf("%s must be a positive duration, got %q", key, value))
			return fallback
		}
		return d
	}

	cfg := Config{
		Port: getEnv("PORT"),
		DB: DBConfig{
			Driver:        getOptional("DB_DRIVER", defaultDriver),
			NotifyChannel: getOptional("DB_NOTIFY_CHANNEL", defaultNotifyChannel),
		},
		Leaderboard: LeaderboardConfig{
			DefaultLimit:   getInt("LEADERBOARD_LIMIT", defaultLimit),
			MaxLimit:       getInt("LEADERBOARD_MAX_LIMIT", defaultMaxLimit),
			QueryTimeout:   getDuration("QUERY_TIMEOUT", defaultQueryTimeout),
			RefreshTimeout: getDuration("REFRESH_TIMEOUT", defaultRefreshTimeout),
		},
		PubSub: PubSubConfig{
			ProjectID:    getOptional("GCP_PROJECT", ""),
			Topic:        getOptional("PUBSUB_TOPIC", ""),
			Subscription: getOptional("PUBSUB_SUBSCRIPTION", ""),
		},
		Slack: SlackConfig{
			Token:         getOptional("SLACK_BOT_TOKEN", ""),
			ChannelID:     getOptional("SLACK_CHANNEL_ID", ""),
			SigningSecret: getOptional("SLACK_SIGNING_SECRET", ""),
		},
	}

	switch cfg.DB.Driver {
	case "sqlite3":
		cfg.DB.Name = getEnv("DB_NAME")
	case "libsql":
		cfg.Turso = TursoConfig{
			PrimaryURL: getEnv("TURSO_PRIMARY_URL"),
			AuthToken:  getOptional("TURSO_AUTH_TOKEN", ""),
		}
	case "postgres":
		cfg.DB.URL = getEnv("DATABASE_URL")
	default:
		errs = append(errs, fmt.Errorf("DB_DRIVER must be sqlite3, libsql or postgres, got %q", cfg.DB.Driver))
	}

	if cfg.Leaderboard.DefaultLimit > cfg.Leaderboard.MaxLimit {
		errs = append(errs, fmt.Errorf("LEADERBOARD_LIMIT (%d) exceeds LEADERBOARD_MAX_LIMIT (%d)",
			cfg.Leaderboard.DefaultLimit, cfg.Leaderboard.MaxLimit))
	}

	return cfg, errors.Join(errs...)
}

// DSN returns the connection string for the configured driver.
func (c Config) DSN() string {
	switch c.DB.Driver {
	case "libsql":
		if c.Turso.AuthToken == "" {
			return c.Turso.PrimaryURL
		}
		return c.Turso.PrimaryURL + "?authToken=" + url.QueryEscape(c.Turso.AuthToken)
	case "postgres":
		return c.DB.URL
	default:
		return c.DB.Name
	}
}
