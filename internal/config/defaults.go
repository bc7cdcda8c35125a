package config

import "time"

// DefaultConfig returns a Config with sensible default values for local development.
func DefaultConfig() *Config {
	return &Config{
		Neo4j: Neo4jConfig{
			URI:                     "bolt://localhost:7687",
			Username:                "neo4j",
			Password:                "password",
			Database:                "",
			MaxConnectionPoolSize:   50,
			ConnectionTimeout:       30 * time.Second,
			MaxTransactionRetryTime: 30 * time.Second,
		},
		Ingest: IngestConfig{
			DryRun: false,
		},
		Logging: LoggingConfig{
			Level:  "info",
			Format: "text",
		},
	}
}
