package config

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/kelseyhightower/envconfig"
)

const (
	// EnvironmentDevelopment enables debug logging
	EnvironmentDevelopment = "development"

	// EnvironmentProduction restricts logging to the info level and above
	EnvironmentProduction = "production"

	// StorageDriverMemory keeps snapshots in an in-memory go-memdb database
	StorageDriverMemory = "memory"

	// StorageDriverPostgres keeps snapshots in a PostgreSQL database
	StorageDriverPostgres = "postgres"
)

var (
	ErrInvalidEnvironment   = errors.New("the environment has to be either 'development' or 'production'")
	ErrInvalidStorageDriver = errors.New("the storage driver has to be either 'memory' or 'postgres'")
	ErrMissingPostgresDSN   = errors.New("the postgres storage driver requires a DSN")
	ErrInvalidCacheInterval = errors.New("the cache cleanup interval has to be positive while the cache is enabled")
)

// Config represents the application configuration structure
type Config struct {
	Environment string `default:"development"`

	ListenAddress string `default:":8080" split_words:"true"`
	AllowedOrigin string `default:"*" split_words:"true"`

	// DefaultCapacity is the slot capacity of arrays created without an explicit one
	DefaultCapacity int `default:"16" split_words:"true"`

	StorageDriver string `default:"memory" split_words:"true"`
	PostgresDSN   string `split_words:"true"`

	// CacheLifetime is how long snapshots stay in the in-memory cache in front of the storage driver.
	// A non-positive value disables the cache.
	CacheLifetime        time.Duration `default:"5m" split_words:"true"`
	CacheCleanupInterval time.Duration `default:"10s" split_words:"true"`

	// SnapshotInterval is the interval in which all arrays are snapshotted automatically.
	// A non-positive value disables automatic snapshots.
	SnapshotInterval time.Duration `split_words:"true"`
}

// LoadFromEnv loads a new configuration structure using environment variables and an optional .env file
func LoadFromEnv() (*Config, error) {
	// Load a .env file if it exists
	_ = godotenv.Overload()

	// Load a new configuration structure using environment variables
	config := new(Config)
	if err := envconfig.Process("sb", config); err != nil {
		return nil, err
	}
	if err := config.Validate(); err != nil {
		return nil, err
	}
	return config, nil
}

// Validate checks the enumerated and dependent configuration values
func (config *Config) Validate() error {
	config.Environment = strings.ToLower(strings.TrimSpace(config.Environment))
	if config.Environment != EnvironmentDevelopment && config.Environment != EnvironmentProduction {
		return fmt.Errorf("%w (got '%s')", ErrInvalidEnvironment, config.Environment)
	}

	config.StorageDriver = strings.ToLower(strings.TrimSpace(config.StorageDriver))
	switch config.StorageDriver {
	case StorageDriverMemory:
	case StorageDriverPostgres:
		if config.PostgresDSN == "" {
			return ErrMissingPostgresDSN
		}
	default:
		return fmt.Errorf("%w (got '%s')", ErrInvalidStorageDriver, config.StorageDriver)
	}

	if config.CacheLifetime > 0 && config.CacheCleanupInterval <= 0 {
		return ErrInvalidCacheInterval
	}
	return nil
}

// IsEnvProduction returns whether the application runs in production mode
func (config *Config) IsEnvProduction() bool {
	return config.Environment == EnvironmentProduction
}
