package db

import (
	"context"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/lexlib/lexdb/pkg/config"
)

// Operator defines the interface for basic database management operations.
// It provides connection lifecycle management and exposes the pgxpool.Pool
// for lifecycle components (SchemaManager, Importer, Purger, Normalizer,
// Indexer) to execute their own SQL.
//
// An Operator is created explicitly by the command that needs it and is
// released with Close on every exit path. There is no package-level
// connection.
type Operator interface {
	// Connect establishes a connection pool to the database.
	Connect(context.Context, *config.DatabaseConfig) error

	// Close closes the database connection pool.
	Close() error

	// Pool returns the underlying pgxpool.Pool. Components use it for
	// transactions, batched statements and streaming queries.
	Pool() *pgxpool.Pool

	// TableExists checks if a table exists in the database.
	TableExists(ctx context.Context, tableName string) (bool, error)

	// HasTables checks if the database has any tables in the public schema.
	// Used to determine if schema creation should prompt for confirmation.
	HasTables(ctx context.Context) (bool, error)

	// DropAllTables drops all tables in the public schema.
	DropAllTables(ctx context.Context) error
}
