package iodb

import (
	"context"
	"log/slog"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

// VacuumAnalyze reclaims space of deleted or updated rows of a table
// and refreshes planner statistics.
//
// VACUUM cannot run inside a transaction block, call it after commit.
func VacuumAnalyze(ctx context.Context, pool *pgxpool.Pool, table string) error {
	if pool == nil {
		return NotConnectedError()
	}

	slog.Info("Running VACUUM ANALYZE", "table", table)
	timeStart := time.Now()

	_, err := pool.Exec(ctx, "VACUUM ANALYZE "+pgx.Identifier{table}.Sanitize())
	if err != nil {
		slog.Error("Failed to run VACUUM ANALYZE", "table", table, "error", err)
		return err
	}

	slog.Info("VACUUM ANALYZE completed",
		"table", table, "duration", time.Since(timeStart).String())
	return nil
}
