package config

// Config holds all application configuration.
// It organizes settings into logical groups for better maintainability.
type Config struct {
	Server   ServerConfig   `mapstructure:"server" validate:"required"`
	Database DatabaseConfig `mapstructure:"database" validate:"required"`
	Training TrainingConfig `mapstructure:"training" validate:"required"`
}

// ServerConfig contains all server-related configuration settings.
type ServerConfig struct {
	Port     int    `mapstructure:"port"      validate:"required,gt=0,lt=65536"`
	LogLevel string `mapstructure:"log_level" validate:"required,oneof=debug info warn error"`

	// AllowedOrigins lists the browser origins permitted by CORS.
	AllowedOrigins []string `mapstructure:"allowed_origins"`
}

// DatabaseConfig contains all database-related configuration settings.
type DatabaseConfig struct {
	URL string `mapstructure:"url" validate:"required,url"`
}

// TrainingConfig contains the tunables of the training orchestration layer.
type TrainingConfig struct {
	// SecondsPerCard is the assumed answer time used to convert a session
	// duration budget into a card capacity.
	SecondsPerCard int `mapstructure:"seconds_per_card" validate:"required,gt=0"`

	// NewScopesActive decides whether a freshly created deck or category
	// starts with training enabled. Defaults to false: a new deck never
	// silently enlarges the general training queue.
	NewScopesActive bool `mapstructure:"new_scopes_active"`

	// Timezone is the learner's IANA timezone used for streak day
	// boundaries, e.g. "Europe/Berlin". Defaults to UTC.
	Timezone string `mapstructure:"timezone" validate:"required"`

	// StreakHorizonDays bounds how far back answer events are scanned
	// when computing the streak.
	StreakHorizonDays int `mapstructure:"streak_horizon_days" validate:"required,gt=0"`
}
