package config

import "time"

// Config holds all configuration for the application.
type Config struct {
	Port        string
	DB          DBConfig
	Turso       TursoConfig
	Leaderboard LeaderboardConfig
	PubSub      PubSubConfig
	Slack       SlackConfig
}

type DBConfig struct {
	// Driver is one of sqlite3, libsql or postgres.
	Driver string
	// Name is the SQLite file, or ":memory:".
	Name string
	// URL is the Postgres connection string.
	URL string
	// NotifyChannel is the LISTEN/NOTIFY channel used with Postgres.
	NotifyChannel string
}

type TursoConfig struct {
	PrimaryURL string
	AuthToken  string
}

type LeaderboardConfig struct {
	DefaultLimit   int
	MaxLimit       int
	QueryTimeout   time.Duration
	RefreshTimeout time.Duration
}

type PubSubConfig struct {
	ProjectID    string
	Topic        string
	// Subscription is a prefix; each instance appends its own id.
	Subscription string
}

type SlackConfig struct {
	Token         string
	ChannelID     string
	SigningSecret string
}

// Enabled reports whether the Pub/Sub bridge is fully configured.
func (c PubSubConfig) Enabled() bool {
	return c.ProjectID != "" && c.Topic != "" && c.Subscription != ""
}

// NotificationsEnabled reports whether channel announcements can be posted.
func (c SlackConfig) NotificationsEnabled() bool {
	return c.Token != "" && c.ChannelID != ""
}
