// Package iopurge deletes invalid judgments from PostgreSQL. This is an
// impure I/O package that implements lifecycle.Purger.
package iopurge

import (
	"context"
	"log/slog"

	"github.com/jackc/pgx/v5"
	"github.com/lexlib/lexdb/internal/iodb"
	"github.com/lexlib/lexdb/pkg/db"
	"github.com/lexlib/lexdb/pkg/lifecycle"
	"github.com/lexlib/lexdb/pkg/purge"
	"github.com/lexlib/lexdb/pkg/schema"
)

type purger struct {
	operator db.Operator
	criteria []purge.Criterion
}

// NewPurger creates a Purger that applies purge.Criteria in order.
func NewPurger(op db.Operator) lifecycle.Purger {
	return &purger{operator: op, criteria: purge.Criteria()}
}

// Purge runs one DELETE per criterion inside a single transaction.
// A row matching several criteria is counted under the first one,
// because later statements no longer see it.
func (p *purger) Purge(
	ctx context.Context,
	dryRun bool,
) (lifecycle.PurgeReport, error) {
	res := lifecycle.PurgeReport{DryRun: dryRun}

	pool := p.operator.Pool()
	if pool == nil {
		return res, NotConnectedError()
	}

	tx, err := pool.Begin(ctx)
	if err != nil {
		return res, TransactionError(err)
	}
	defer func() { _ = tx.Rollback(ctx) }()

	for _, c := range p.criteria {
		n, err := deleteWhere(ctx, tx, c)
		if err != nil {
			return lifecycle.PurgeReport{DryRun: dryRun},
				CriterionError(c.Label, err)
		}
		res.Counts = append(res.Counts,
			lifecycle.CriterionCount{Label: c.Label, Deleted: n})
		slog.Info("Purge criterion applied",
			"criterion", c.Label, "deleted", n, "dry_run", dryRun)
	}

	if dryRun {
		slog.Info("Dry run, purge rolled back", "total", res.Total())
		return res, nil
	}

	if err = tx.Commit(ctx); err != nil {
		return lifecycle.PurgeReport{}, TransactionError(err)
	}
	slog.Info("Purge committed", "total", res.Total())

	if res.Total() > 0 {
		// vacuum errors do not fail the purge
		table := schema.Judgment{}.TableName()
		if err = iodb.VacuumAnalyze(ctx, pool, table); err != nil {
			slog.Warn("Vacuum after purge failed", "error", err)
		}
	}
	return res, nil
}

func deleteWhere(
	ctx context.Context,
	tx pgx.Tx,
	c purge.Criterion,
) (int64, error) {
	q := "DELETE FROM " + schema.Judgment{}.TableName() +
		" WHERE (" + c.Where + ")"
	tag, err := tx.Exec(ctx, q, c.Args...)
	if err != nil {
		return 0, err
	}
	return tag.RowsAffected(), nil
}
