package config

// Config holds all application configuration.
// It organizes settings into logical groups for better maintainability.
type Config struct {
	Server    ServerConfig    `mapstructure:"server"    validate:"required"`
	Database  DatabaseConfig  `mapstructure:"database"  validate:"required"`
	Auth      AuthConfig      `mapstructure:"auth"      validate:"required"`
	Scheduler SchedulerConfig `mapstructure:"scheduler" validate:"required"`
	Push      PushConfig      `mapstructure:"push"`
}

// ServerConfig contains all HTTP server related configuration settings.
type ServerConfig struct {
	Port     int    `mapstructure:"port"      validate:"required,gt=0,lt=65536"`
	LogLevel string `mapstructure:"log_level" validate:"required,oneof=debug info warn error"`
}

// DatabaseConfig contains all database-related configuration settings.
type DatabaseConfig struct {
	URL string `mapstructure:"url" validate:"required"`
}

// AuthConfig contains all authentication and authorization settings.
type AuthConfig struct {
	JWTSecret                   string `mapstructure:"jwt_secret"                     validate:"required,min=32"`
	TokenLifetimeMinutes        int    `mapstructure:"token_lifetime_minutes"         validate:"required,gt=0"`
	RefreshTokenLifetimeMinutes int    `mapstructure:"refresh_token_lifetime_minutes" validate:"required,gt=0"`
}

// SchedulerConfig contains settings for the background scheduling subsystem.
//
// MaterializerSpec is a standard cron expression (minute hour dom month dow)
// controlling when recurring-task occurrences are materialized.
// ReminderScanMinutes controls how often the reminder scan runs. Both jobs
// additionally run once at startup when RunOnStart is set.
type SchedulerConfig struct {
	MaterializerSpec    string `mapstructure:"materializer_spec"     validate:"required"`
	ReminderScanMinutes int    `mapstructure:"reminder_scan_minutes" validate:"required,gt=0"`
	RunOnStart          bool   `mapstructure:"run_on_start"`
}

// PushConfig contains settings for the push-notification gateway.
// When Enabled is false, reminder dispatches are logged instead of delivered.
type PushConfig struct {
	Enabled    bool   `mapstructure:"enabled"`
	GatewayURL string `mapstructure:"gateway_url" validate:"required_if=Enabled true,omitempty,url"`
}
