package lifecycle

import (
	"context"

	"github.com/lexlib/lexdb/pkg/config"
)

// SchemaManager defines the interface for database schema management.
// It uses GORM AutoMigrate to create base tables. Schema management is
// idempotent - safe to run multiple times.
type SchemaManager interface {
	// Create creates base tables using GORM AutoMigrate.
	// Existing tables are handled by the caller via DropAllTables.
	Create(ctx context.Context, cfg *config.Config) error
}
