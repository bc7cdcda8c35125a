package graph

import (
	"context"
	"time"

	"github.com/shopgraph/shopgraph/internal/types"
)

// TxMode selects the transaction routing for a statement.
type TxMode string

const (
	// TxRead routes the statement through a read transaction.
	TxRead TxMode = "read"
	// TxWrite routes the statement through a write transaction.
	TxWrite TxMode = "write"
)

// GraphClient provides an interface for graph database operations.
// Implementations must be thread-safe for concurrent access.
type GraphClient interface {
	// Connect establishes a connection to the graph database.
	// Returns an error if connection fails.
	Connect(ctx context.Context) error

	// Close releases all resources and closes the database connection.
	// Should be called when the client is no longer needed.
	Close(ctx context.Context) error

	// Health returns the current health status of the graph database connection.
	Health(ctx context.Context) types.HealthStatus

	// Execute runs a parameterized Cypher statement in a transaction of the
	// given mode and returns the ordered result records. A statement that
	// matches nothing returns an empty result, not an error.
	Execute(ctx context.Context, statement string, params map[string]any, mode TxMode) (QueryResult, error)
}

// QueryResult represents the result of a Cypher statement execution.
type QueryResult struct {
	// Records contains the result rows as maps of column name to value,
	// in the order the store returned them.
	Records []map[string]any

	// Columns contains the names of the columns in the result set.
	Columns []string

	// Summary contains metadata about the statement execution.
	Summary QuerySummary
}

// Empty reports whether the statement matched nothing.
func (r QueryResult) Empty() bool {
	return len(r.Records) == 0
}

// QuerySummary provides metadata about statement execution.
type QuerySummary struct {
	// ExecutionTime is the duration of statement execution.
	ExecutionTime time.Duration

	// NodesCreated is the number of nodes created by the statement.
	NodesCreated int

	// RelationshipsCreated is the number of relationships created.
	RelationshipsCreated int

	// PropertiesSet is the number of properties set.
	PropertiesSet int
}

// ClientConfig contains configuration options for graph database clients.
type ClientConfig struct {
	// URI is the connection URI for the graph database.
	// For Neo4j, use:
	//   - "bolt://host:port" for unencrypted connections
	//   - "bolt+s://host:port" for TLS encrypted connections
	//   - "neo4j://" or "neo4j+s://" for routing
	URI string

	// Username for authentication.
	Username string

	// Password for authentication.
	Password string

	// Database name to connect to.
	// Empty string uses the default database.
	Database string

	// MaxConnectionPoolSize limits the number of connections in the pool.
	// Zero or negative values use the driver default.
	MaxConnectionPoolSize int

	// ConnectionTimeout is the maximum time to wait for a connection.
	ConnectionTimeout time.Duration

	// MaxTransactionRetryTime is the maximum time to retry failed transactions.
	MaxTransactionRetryTime time.Duration
}

// DefaultConfig returns a ClientConfig with sensible defaults for local development.
func DefaultConfig() ClientConfig {
	return ClientConfig{
		URI:                     "bolt://localhost:7687",
		Username:                "neo4j",
		Password:                "password",
		Database:                "",
		MaxConnectionPoolSize:   50,
		ConnectionTimeout:       30 * time.Second,
		MaxTransactionRetryTime: 30 * time.Second,
	}
}

// Validate checks if the configuration is valid.
func (c ClientConfig) Validate() error {
	if c.URI == "" {
		return types.NewError(ErrCodeGraphInvalidConfig, "URI cannot be empty")
	}
	if c.Username == "" {
		return types.NewError(ErrCodeGraphInvalidConfig, "Username cannot be empty")
	}
	if c.Password == "" {
		return types.NewError(ErrCodeGraphInvalidConfig, "Password cannot be empty")
	}
	if c.ConnectionTimeout <= 0 {
		return types.NewError(ErrCodeGraphInvalidConfig, "ConnectionTimeout must be positive")
	}
	if c.MaxTransactionRetryTime <= 0 {
		return types.NewError(ErrCodeGraphInvalidConfig, "MaxTransactionRetryTime must be positive")
	}
	return nil
}
