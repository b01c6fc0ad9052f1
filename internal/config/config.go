package config

import (
	"fmt"
	"time"

	"github.com/spf13/viper"
)

const defaultJWTSecret = "your-secret-key-change-in-production"

// Supported values for DATA_STORE
const (
	DataStorePostgres = "postgres"
	DataStoreREST     = "rest"
)

// Config holds all configuration for the application
type Config struct {
	Environment string `mapstructure:"ENVIRONMENT"`
	Port        string `mapstructure:"PORT"`
	LogLevel    string `mapstructure:"LOG_LEVEL"`

	// Database configuration
	DatabaseURL      string `mapstructure:"DATABASE_URL"`
	DatabaseHost     string `mapstructure:"DB_HOST"`
	DatabasePort     string `mapstructure:"DB_PORT"`
	DatabaseUser     string `mapstructure:"DB_USER"`
	DatabasePassword string `mapstructure:"DB_PASSWORD"`
	DatabaseName     string `mapstructure:"DB_NAME"`
	DatabaseSSLMode  string `mapstructure:"DB_SSL_MODE"`
	AutoMigrate      bool   `mapstructure:"DB_AUTO_MIGRATE"`

	// DataStore selects where tenants and profiles live: a directly reachable
	// Postgres, or the hosted REST API in front of it.
	DataStore   string        `mapstructure:"DATA_STORE"`
	RESTURL     string        `mapstructure:"REST_URL"`
	RESTAPIKey  string        `mapstructure:"REST_API_KEY"`
	RESTTimeout time.Duration `mapstructure:"REST_TIMEOUT"`

	// JWT configuration
	JWTSecret string        `mapstructure:"JWT_SECRET"`
	JWTIssuer string        `mapstructure:"JWT_ISSUER"`
	JWTTTL    time.Duration `mapstructure:"JWT_TTL"`

	// CORS configuration
	AllowedOrigins []string `mapstructure:"ALLOWED_ORIGINS"`

	// Bootstrap retry policy
	BootstrapMaxAttempts int           `mapstructure:"BOOTSTRAP_MAX_ATTEMPTS"`
	BootstrapBackoff     time.Duration `mapstructure:"BOOTSTRAP_BACKOFF"`
}

// Load reads configuration from environment variables and config files
func Load() (*Config, error) {
	viper.SetConfigName("config")
	viper.SetConfigType("yaml")
	viper.AddConfigPath(".")
	viper.AddConfigPath("./config")

	// Set default values
	setDefaults()

	// Read config file if it exists
	if err := viper.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
			return nil, fmt.Errorf("error reading config file: %w", err)
		}
	}

	// Override with environment variables
	viper.AutomaticEnv()

	var config Config
	if err := viper.Unmarshal(&config); err != nil {
		return nil, fmt.Errorf("error unmarshaling config: %w", err)
	}

	// Build database URL if not provided
	if config.DatabaseURL == "" {
		config.DatabaseURL = buildDatabaseURL(&config)
	}

	// Validate required fields
	if err := validate(&config); err != nil {
		return nil, fmt.Errorf("config validation failed: %w", err)
	}

	return &config, nil
}

func setDefaults() {
	viper.SetDefault("ENVIRONMENT", "development")
	viper.SetDefault("PORT", "7008")
	viper.SetDefault("LOG_LEVEL", "info")

	// Database defaults
	viper.SetDefault("DATABASE_URL", "")
	viper.SetDefault("DB_HOST", "localhost")
	viper.SetDefault("DB_PORT", "5432")
	viper.SetDefault("DB_USER", "postgres")
	viper.SetDefault("DB_PASSWORD", "postgres")
	viper.SetDefault("DB_NAME", "ecclesia")
	viper.SetDefault("DB_SSL_MODE", "disable")
	viper.SetDefault("DB_AUTO_MIGRATE", true)

	// Data store defaults
	viper.SetDefault("DATA_STORE", DataStorePostgres)
	viper.SetDefault("REST_URL", "")
	viper.SetDefault("REST_API_KEY", "")
	viper.SetDefault("REST_TIMEOUT", "15s")

	// JWT defaults
	viper.SetDefault("JWT_SECRET", defaultJWTSecret)
	viper.SetDefault("JWT_ISSUER", "")
	viper.SetDefault("JWT_TTL", "1h")

	// CORS defaults
	viper.SetDefault("ALLOWED_ORIGINS", []string{"http://localhost:3000", "http://localhost:5173"})

	// Bootstrap defaults mirror the hosted platform's schema propagation delay
	viper.SetDefault("BOOTSTRAP_MAX_ATTEMPTS", 15)
	viper.SetDefault("BOOTSTRAP_BACKOFF", "3s")
}

func buildDatabaseURL(config *Config) string {
	return fmt.Sprintf("postgres://%s:%s@%s:%s/%s?sslmode=%s",
		config.DatabaseUser,
		config.DatabasePassword,
		config.DatabaseHost,
		config.DatabasePort,
		config.DatabaseName,
		config.DatabaseSSLMode,
	)
}

func validate(config *Config) error {
	if config.Environment == "production" {
		if config.JWTSecret == defaultJWTSecret {
			return fmt.Errorf("JWT_SECRET must be set in production")
		}
	}

	switch config.DataStore {
	case DataStorePostgres:
		if config.DatabaseName == "" && config.DatabaseURL == "" {
			return fmt.Errorf("database name is required")
		}
	case DataStoreREST:
		if config.RESTURL == "" || config.RESTAPIKey == "" {
			return fmt.Errorf("REST_URL and REST_API_KEY are required when DATA_STORE=rest")
		}
	default:
		return fmt.Errorf("unknown DATA_STORE %q (expected %q or %q)", config.DataStore, DataStorePostgres, DataStoreREST)
	}

	if config.BootstrapMaxAttempts < 1 || config.BootstrapMaxAttempts > 50 {
		return fmt.Errorf("BOOTSTRAP_MAX_ATTEMPTS must be between 1 and 50, got %d", config.BootstrapMaxAttempts)
	}
	if config.BootstrapBackoff < 0 || config.BootstrapBackoff > time.Minute {
		return fmt.Errorf("BOOTSTRAP_BACKOFF must be between 0s and 1m, got %s", config.BootstrapBackoff)
	}

	return nil
}

// IsDevelopment returns true if the environment is development
func (c *Config) IsDevelopment() bool {
	return c.Environment == "development"
}

// IsProduction returns true if the environment is production
func (c *Config) IsProduction() bool {
	return c.Environment == "production"
}

// UsesREST reports whether tenants and profiles are served by the hosted REST API
func (c *Config) UsesREST() bool {
	return c.DataStore == DataStoreREST
}
