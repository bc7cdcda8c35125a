package config

import (
	"fmt"
	"os"
	"strings"

	"github.com/spf13/viper"
)

// ConfigLoader handles loading configuration from files.
type ConfigLoader interface {
	Load(path string) (*Config, error)
	LoadWithDefaults(path string) (*Config, error)
}

// viperConfigLoader implements ConfigLoader using Viper.
type viperConfigLoader struct {
	validator ConfigValidator
}

// NewConfigLoader creates a new ConfigLoader instance.
func NewConfigLoader(validator ConfigValidator) ConfigLoader {
	return &viperConfigLoader{
		validator: validator,
	}
}

// Load loads configuration from the specified file path.
// Returns an error if the file doesn't exist or cannot be parsed.
func (l *viperConfigLoader) Load(path string) (*Config, error) {
	v := newViper()
	v.SetConfigFile(path)
	v.SetConfigType("yaml")

	if err := v.ReadInConfig(); err != nil {
		return nil, fmt.Errorf("failed to read config file: %w", err)
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("failed to unmarshal config: %w", err)
	}

	if err := l.validator.Validate(&cfg); err != nil {
		return nil, fmt.Errorf("configuration validation failed: %w", err)
	}

	return &cfg, nil
}

// LoadWithDefaults loads configuration from the file if it exists, falling
// back to defaults for anything unset. A missing file is not an error;
// defaults (plus environment overrides) are used as-is.
func (l *viperConfigLoader) LoadWithDefaults(path string) (*Config, error) {
	v := newViper()
	setDefaults(v)

	if path != "" {
		if _, err := os.Stat(path); err == nil {
			v.SetConfigFile(path)
			v.SetConfigType("yaml")
			if err := v.ReadInConfig(); err != nil {
				return nil, fmt.Errorf("failed to read config file: %w", err)
			}
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("failed to unmarshal config: %w", err)
	}

	if err := l.validator.Validate(&cfg); err != nil {
		return nil, fmt.Errorf("configuration validation failed: %w", err)
	}

	return &cfg, nil
}

// newViper creates a Viper instance with environment variable overrides bound.
// SHOPGRAPH_NEO4J_PASSWORD overrides neo4j.password, and so on.
func newViper() *viper.Viper {
	v := viper.New()
	v.SetEnvPrefix("SHOPGRAPH")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()
	return v
}

// setDefaults registers the DefaultConfig values with Viper so that partial
// config files inherit the remaining defaults.
func setDefaults(v *viper.Viper) {
	def := DefaultConfig()

	v.SetDefault("neo4j.uri", def.Neo4j.URI)
	v.SetDefault("neo4j.username", def.Neo4j.Username)
	v.SetDefault("neo4j.password", def.Neo4j.Password)
	v.SetDefault("neo4j.database", def.Neo4j.Database)
	v.SetDefault("neo4j.max_connection_pool_size", def.Neo4j.MaxConnectionPoolSize)
	v.SetDefault("neo4j.connection_timeout", def.Neo4j.ConnectionTimeout)
	v.SetDefault("neo4j.max_transaction_retry_time", def.Neo4j.MaxTransactionRetryTime)
	v.SetDefault("ingest.dry_run", def.Ingest.DryRun)
	v.SetDefault("logging.level", def.Logging.Level)
	v.SetDefault("logging.format", def.Logging.Format)
}
