// Package ionormalize cleans stored judgment texts in PostgreSQL. This
// is an impure I/O package that implements lifecycle.Normalizer.
package ionormalize

import (
	"context"
	"log/slog"

	"github.com/jackc/pgx/v5"
	"github.com/lexlib/lexdb/internal/iodb"
	"github.com/lexlib/lexdb/pkg/db"
	"github.com/lexlib/lexdb/pkg/lifecycle"
	"github.com/lexlib/lexdb/pkg/schema"
	"github.com/lexlib/lexdb/pkg/textnorm"
)

// update is a cleaned text of one row.
type update struct {
	id   int64
	text string
}

type normalizer struct {
	operator db.Operator
	steps    []textnorm.Step
}

// NewNormalizer creates a Normalizer of judgment texts. Without steps
// it uses textnorm.Pipeline.
func NewNormalizer(op db.Operator, steps ...textnorm.Step) lifecycle.Normalizer {
	if len(steps) == 0 {
		steps = textnorm.Pipeline
	}
	return &normalizer{operator: op, steps: steps}
}

// Normalize reads all non-NULL texts, runs them through the cleaning
// steps and writes back changed ones. Reading and writing
// share one transaction.
func (n *normalizer) Normalize(
	ctx context.Context,
	dryRun bool,
) (lifecycle.NormalizeReport, error) {
	res := lifecycle.NormalizeReport{DryRun: dryRun}

	pool := n.operator.Pool()
	if pool == nil {
		return res, NotConnectedError()
	}

	tx, err := pool.Begin(ctx)
	if err != nil {
		return res, TransactionError(err)
	}
	defer func() { _ = tx.Rollback(ctx) }()

	table := schema.Judgment{}.TableName()
	rows, err := tx.Query(ctx,
		"SELECT id, text FROM "+table+" WHERE text IS NOT NULL ORDER BY id")
	if err != nil {
		return res, LoadError(err)
	}

	var updates []update
	var scanned int64
	var id int64
	var text string
	_, err = pgx.ForEachRow(rows, []any{&id, &text}, func() error {
		scanned++
		if clean := textnorm.Apply(text, n.steps); clean != text {
			updates = append(updates, update{id: id, text: clean})
		}
		return nil
	})
	if err != nil {
		return res, LoadError(err)
	}
	res.Scanned = scanned
	res.Changed = int64(len(updates))

	if len(updates) > 0 {
		if err = sendUpdates(ctx, tx, table, updates); err != nil {
			return lifecycle.NormalizeReport{DryRun: dryRun}, UpdateError(err)
		}
	}

	if dryRun {
		slog.Info("Dry run, normalization rolled back",
			"scanned", res.Scanned, "changed", res.Changed)
		return res, nil
	}

	if err = tx.Commit(ctx); err != nil {
		return lifecycle.NormalizeReport{}, TransactionError(err)
	}
	slog.Info("Texts normalized",
		"scanned", res.Scanned, "changed", res.Changed)

	if res.Changed > 0 {
		if err = iodb.VacuumAnalyze(ctx, pool, table); err != nil {
			slog.Warn("Vacuum after normalization failed", "error", err)
		}
	}
	return res, nil
}

// sendUpdates queues one UPDATE per changed row and sends them in a
// single round trip.
func sendUpdates(
	ctx context.Context,
	tx pgx.Tx,
	table string,
	updates []update,
) error {
	q := "UPDATE " + table + " SET text = $1 WHERE id = $2"
	b := &pgx.Batch{}
	for _, u := range updates {
		b.Queue(q, u.text, u.id)
	}
	return tx.SendBatch(ctx, b).Close()
}
