// Package ioimport loads judgments from CSV files and principles from
// JSON fixtures into PostgreSQL. This is an impure I/O package that
// implements lifecycle.Importer and lifecycle.PrinciplesImporter.
package ioimport

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"
	"time"

	"github.com/dustin/go-humanize"
	"github.com/gnames/gn"
	"github.com/gnames/gnfmt"
	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/lexlib/lexdb/pkg/batch"
	"github.com/lexlib/lexdb/pkg/config"
	"github.com/lexlib/lexdb/pkg/db"
	"github.com/lexlib/lexdb/pkg/lifecycle"
	"github.com/lexlib/lexdb/pkg/schema"
	"golang.org/x/sync/errgroup"
)

// batchSink stores one batch and returns the number of inserted rows.
type batchSink func(ctx context.Context, rows [][]any) (int64, error)

type importer struct {
	cfg      *config.Config
	operator db.Operator
	builder  batch.Builder
}

// NewImporter creates a CSV importer of judgments.
func NewImporter(cfg *config.Config, op db.Operator) lifecycle.Importer {
	return &importer{
		cfg:      cfg,
		operator: op,
		builder:  judgmentsBuilder(),
	}
}

func judgmentsBuilder() batch.Builder {
	return batch.Builder{
		Table:      schema.Judgment{}.TableName(),
		Columns:    schema.InsertColumns(schema.Judgment{}),
		Trailer:    []batch.Literal{batch.Now},
		OnConflict: "ON CONFLICT (case_id) DO NOTHING",
	}
}

// Import streams the CSV file at path into the judgments table.
func (im *importer) Import(
	ctx context.Context,
	path string,
) (lifecycle.ImportStats, error) {
	var stats lifecycle.ImportStats

	info, err := os.Stat(path)
	if err != nil || !info.Mode().IsRegular() {
		return stats, FileNotFoundError(path)
	}

	if im.operator.Pool() == nil {
		return stats, NotConnectedError()
	}

	f, err := os.Open(path)
	if err != nil {
		return stats, FileNotFoundError(path)
	}
	defer f.Close()

	size := im.batchSize()
	runID := uuid.NewString()
	start := time.Now()

	bar := newProgressBar(info.Size(), "Importing judgments: ")
	src, err := newCSVSource(bar.NewProxyReader(f), im.builder.Columns)
	if err != nil {
		bar.Finish()
		return stats, CSVHeaderError(path, err)
	}
	src.extract = im.cfg.Import.ExtractFields

	slog.Info("Import started",
		"run_id", runID,
		"file", path,
		"batch_size", size,
		"columns", src.mapped(),
		"extract_fields", src.extract,
	)

	stats, err = ingest(ctx, src, size, im.cfg.Import.SkipFailedBatches,
		im.insertBatch)
	bar.Finish()

	stats.RunID = runID
	stats.Duration = time.Since(start)

	var csvErr *csvError
	switch {
	case errors.As(err, &csvErr):
		err = CSVReadError(path, csvErr.err)
	case errors.Is(err, context.Canceled),
		errors.Is(err, context.DeadlineExceeded):
		err = CancelledError(stats.Inserted, err)
	}

	attrs := []any{
		"run_id", runID,
		"rows", stats.Rows,
		"inserted", stats.Inserted,
		"batches", stats.Batches,
		"failed_batches", stats.FailedBatches,
		"failed_rows", stats.FailedRows,
		"duration", gnfmt.TimeString(stats.Duration.Seconds()),
	}
	if err != nil {
		slog.Error("Import failed", append(attrs, "error", err)...)
		return stats, err
	}
	slog.Info("Import finished", attrs...)

	if stats.FailedBatches > 0 {
		gn.Warn("Skipped <em>%d</em> failed batches (%s rows)",
			stats.FailedBatches, humanize.Comma(stats.FailedRows))
	}
	return stats, nil
}

// batchSize clamps the configured size so that a statement stays under
// the bound-parameter limit of PostgreSQL.
func (im *importer) batchSize() int {
	size := im.cfg.Import.BatchSize
	limit := im.builder.MaxRows(batch.MaxParamsPostgres)
	if size > limit {
		slog.Warn("Batch size reduced to fit parameter limit",
			"configured", size, "used", limit)
		size = limit
	}
	return size
}

// insertBatch stores one batch in its own transaction.
func (im *importer) insertBatch(
	ctx context.Context,
	rows [][]any,
) (int64, error) {
	q, args, err := im.builder.Build(rows)
	if err != nil {
		return 0, err
	}

	var inserted int64
	err = pgx.BeginFunc(ctx, im.operator.Pool(), func(tx pgx.Tx) error {
		tag, err := tx.Exec(ctx, q, args...)
		if err != nil {
			return err
		}
		inserted = tag.RowsAffected()
		return nil
	})
	return inserted, err
}

// csvError marks errors of the reading stage.
type csvError struct {
	err error
}

func (e *csvError) Error() string { return e.err.Error() }
func (e *csvError) Unwrap() error { return e.err }

// ingest reads rows from src, groups them into batches of size rows
// and hands batches to sink in file order. The last batch can be
// shorter than size.
//
// Reading and inserting run as two stages joined by a channel. There is
// only one inserting stage, so batches are stored one at a time and in
// order. A failed batch stops the import unless skipFailed is set, in
// which case it is logged and counted.
func ingest(
	ctx context.Context,
	src *csvSource,
	size int,
	skipFailed bool,
	sink batchSink,
) (lifecycle.ImportStats, error) {
	var stats lifecycle.ImportStats
	var rowsRead int64

	if size <= 0 {
		return stats, fmt.Errorf("batch size must be positive, got %d", size)
	}

	g, ctx := errgroup.WithContext(ctx)
	ch := make(chan [][]any, 1)

	g.Go(func() error {
		defer close(ch)
		buf := make([][]any, 0, size)
		send := func() error {
			select {
			case ch <- buf:
				buf = make([][]any, 0, size)
				return nil
			case <-ctx.Done():
				return ctx.Err()
			}
		}

		for {
			row, err := src.next()
			if errors.Is(err, io.EOF) {
				break
			}
			if err != nil {
				return &csvError{err: err}
			}
			rowsRead++
			buf = append(buf, row)
			if len(buf) == size {
				if err = send(); err != nil {
					return err
				}
			}
		}

		if len(buf) > 0 {
			return send()
		}
		return nil
	})

	g.Go(func() error {
		for rows := range ch {
			if err := ctx.Err(); err != nil {
				return err
			}
			stats.Batches++
			n, err := sink(ctx, rows)
			if err != nil {
				if ctxErr := ctx.Err(); ctxErr != nil {
					return ctxErr
				}
				if !skipFailed {
					return BatchInsertError(stats.Batches, len(rows), err)
				}
				stats.FailedBatches++
				stats.FailedRows += int64(len(rows))
				slog.Error("Batch skipped",
					"batch", stats.Batches,
					"rows", len(rows),
					"error", err,
				)
				continue
			}
			stats.Inserted += n
			slog.Info("Batch inserted",
				"batch", stats.Batches,
				"rows", len(rows),
				"inserted", n,
				"total_inserted", stats.Inserted,
			)
		}
		return nil
	})

	err := g.Wait()
	stats.Rows = rowsRead
	return stats, err
}
