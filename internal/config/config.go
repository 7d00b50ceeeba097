package config

import "time"

// Config holds all application configuration.
// It organizes settings into logical groups for better maintainability.
type Config struct {
	Server       ServerConfig       `mapstructure:"server" validate:"required"`
	Database     DatabaseConfig     `mapstructure:"database" validate:"required"`
	Auth         AuthConfig         `mapstructure:"auth" validate:"required"`
	Notification NotificationConfig `mapstructure:"notification"`
	Scheduler    SchedulerConfig    `mapstructure:"scheduler"`
	Seed         SeedConfig         `mapstructure:"seed"`
}

// ServerConfig contains all server-related configuration settings.
type ServerConfig struct {
	Port     int    `mapstructure:"port" validate:"required,gt=0,lt=65536"`
	LogLevel string `mapstructure:"log_level" validate:"required,oneof=debug info warn error"`
}

// DatabaseConfig contains all database-related configuration settings.
type DatabaseConfig struct {
	URL string `mapstructure:"url" validate:"required"`
}

// AuthConfig contains all authentication settings.
type AuthConfig struct {
	JWTSecret        string `mapstructure:"jwt_secret" validate:"required,min=32"`
	TokenLifetimeMin int    `mapstructure:"token_lifetime_minutes" validate:"required,gt=0"`
}

// NotificationConfig configures the outbound notification client.
// An empty URL disables delivery; streak checks still run and log.
type NotificationConfig struct {
	ServiceURL     string        `mapstructure:"service_url" validate:"omitempty,url"`
	RequestTimeout time.Duration `mapstructure:"request_timeout"`
	FailureMessage string        `mapstructure:"failure_message"`
}

// SchedulerConfig configures the periodic background jobs.
type SchedulerConfig struct {
	// CleanupRetention is how long workouts are kept before the daily
	// sweep deletes them together with their progress rows.
	CleanupRetention time.Duration `mapstructure:"cleanup_retention"`

	// NotificationHour is the local hour (0-23) at which the daily
	// streak notification job fires.
	NotificationHour int `mapstructure:"notification_hour" validate:"gte=0,lte=23"`
}

// SeedConfig controls demo-data seeding at startup.
type SeedConfig struct {
	Enabled   bool `mapstructure:"enabled"`
	DemoUsers int  `mapstructure:"demo_users" validate:"gte=0"`
}
