package config

import (
	"time"
)

// Config is the root configuration for shopgraph.
type Config struct {
	Neo4j   Neo4jConfig   `mapstructure:"neo4j" yaml:"neo4j" validate:"required"`
	Ingest  IngestConfig  `mapstructure:"ingest" yaml:"ingest"`
	Logging LoggingConfig `mapstructure:"logging" yaml:"logging"`
}

// Neo4jConfig contains graph store connection settings.
type Neo4jConfig struct {
	URI                     string        `mapstructure:"uri" yaml:"uri" validate:"required"`
	Username                string        `mapstructure:"username" yaml:"username" validate:"required"`
	Password                string        `mapstructure:"password" yaml:"password" validate:"required"`
	Database                string        `mapstructure:"database" yaml:"database"`
	MaxConnectionPoolSize   int           `mapstructure:"max_connection_pool_size" yaml:"max_connection_pool_size" validate:"min=1,max=1000"`
	ConnectionTimeout       time.Duration `mapstructure:"connection_timeout" yaml:"connection_timeout" validate:"min=1s"`
	MaxTransactionRetryTime time.Duration `mapstructure:"max_transaction_retry_time" yaml:"max_transaction_retry_time" validate:"min=1s"`
}

// IngestConfig contains ingestion pass settings.
type IngestConfig struct {
	// DryRun validates rows without issuing any store operations.
	DryRun bool `mapstructure:"dry_run" yaml:"dry_run"`
}

// LoggingConfig contains logging configuration.
type LoggingConfig struct {
	Level  string `mapstructure:"level" yaml:"level" validate:"omitempty,oneof=debug info warn error"`
	Format string `mapstructure:"format" yaml:"format" validate:"omitempty,oneof=text json"`
}
