// Package iofts keeps a SQLite FTS5 index of PostgreSQL tables and
// searches it. This is an impure I/O package that implements
// lifecycle.Indexer.
package iofts

import (
	"context"
	"database/sql"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"time"

	"github.com/cheggaaa/pb/v3"
	"github.com/dustin/go-humanize"
	"github.com/gnames/gn"
	"github.com/gnames/gnfmt"
	"github.com/lexlib/lexdb/pkg/batch"
	"github.com/lexlib/lexdb/pkg/config"
	"github.com/lexlib/lexdb/pkg/db"
	"github.com/lexlib/lexdb/pkg/lifecycle"
	"github.com/lexlib/lexdb/pkg/schema"
	"github.com/lexlib/lexdb/pkg/textnorm"
	_ "modernc.org/sqlite"
)

// DefaultBatchSize is the number of rows in one index INSERT.
const DefaultBatchSize = 500

type indexer struct {
	path      string
	db        *sql.DB
	src       RowSource
	batchSize int
}

// NewIndexer opens the index file configured in cfg, creating it and
// its FTS5 tables when needed. The operator is used only by Rebuild, so
// it does not have to be connected for Search.
func NewIndexer(cfg *config.Config, op db.Operator) (lifecycle.Indexer, error) {
	return open(cfg.FTSPath(), NewPgxSource(op), cfg.Import.BatchSize)
}

func open(path string, src RowSource, batchSize int) (*indexer, error) {
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return nil, OpenError(path, err)
	}

	sqlDB, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, OpenError(path, err)
	}
	// one connection keeps a transaction and its statements together
	sqlDB.SetMaxOpenConns(1)

	pragmas := []string{
		"PRAGMA journal_mode = WAL",
		"PRAGMA busy_timeout = 5000",
	}
	for _, p := range pragmas {
		if _, err = sqlDB.Exec(p); err != nil {
			sqlDB.Close()
			return nil, OpenError(path, err)
		}
	}

	for _, m := range schema.Searchable() {
		if _, err = sqlDB.Exec(schema.FTSTableDDL(m)); err != nil {
			sqlDB.Close()
			return nil, SchemaError(schema.FTSTable(m), err)
		}
	}

	if batchSize <= 0 {
		batchSize = DefaultBatchSize
	}

	return &indexer{
		path:      path,
		db:        sqlDB,
		src:       src,
		batchSize: batchSize,
	}, nil
}

// Close releases the index file.
func (ix *indexer) Close() error {
	return ix.db.Close()
}

// Rebuild refills every full-text table from its base table.
func (ix *indexer) Rebuild(ctx context.Context) (lifecycle.ReindexReport, error) {
	var res lifecycle.ReindexReport
	start := time.Now()

	for _, m := range schema.Searchable() {
		n, err := ix.rebuildTable(ctx, m)
		if err != nil {
			return res, err
		}
		res.Tables = append(res.Tables,
			lifecycle.TableCount{Table: m.TableName(), Rows: n})
		gn.Info("Indexed <em>%s</em> rows of %s",
			humanize.Comma(n), m.TableName())
	}

	slog.Info("Search index rebuilt",
		"path", ix.path,
		"duration", gnfmt.TimeString(time.Since(start).Seconds()),
	)
	return res, nil
}

// rebuildTable replaces the content of one FTS table inside a single
// SQLite transaction.
func (ix *indexer) rebuildTable(
	ctx context.Context,
	m schema.Model,
) (int64, error) {
	table := m.TableName()
	ftsTable := schema.FTSTable(m)
	cols := schema.FTSColumns(m)

	total, err := ix.src.Count(ctx, table)
	if err != nil {
		return 0, SourceError(table, err)
	}

	b := batch.Builder{
		Table:       ftsTable,
		Columns:     append([]string{"rowid"}, cols...),
		Placeholder: batch.Question,
	}
	size := min(ix.batchSize, b.MaxRows(batch.MaxParamsSQLite))

	tx, err := ix.db.BeginTx(ctx, nil)
	if err != nil {
		return 0, RebuildError(ftsTable, err)
	}
	defer func() { _ = tx.Rollback() }()

	if _, err = tx.ExecContext(ctx, "DELETE FROM "+ftsTable); err != nil {
		return 0, RebuildError(ftsTable, err)
	}

	bar := newProgressBar(total, fmt.Sprintf("Indexing %s: ", table))
	defer bar.Finish()

	var count int64
	buf := make([][]any, 0, size)
	flush := func() error {
		if len(buf) == 0 {
			return nil
		}
		q, args, err := b.Build(buf)
		if err != nil {
			return err
		}
		if _, err = tx.ExecContext(ctx, q, args...); err != nil {
			return err
		}
		count += int64(len(buf))
		bar.Add(len(buf))
		buf = buf[:0]
		return nil
	}

	var insertErr error
	err = ix.src.Each(ctx, table, cols, func(id int64, vals []any) error {
		row := make([]any, 0, len(vals)+1)
		row = append(row, id)
		for _, v := range vals {
			if s, ok := v.(string); ok {
				v = textnorm.StripDiacritics(s)
			}
			row = append(row, v)
		}
		buf = append(buf, row)
		if len(buf) < size {
			return nil
		}
		if insertErr = flush(); insertErr != nil {
			return insertErr
		}
		return nil
	})
	switch {
	case insertErr != nil:
		return 0, RebuildError(ftsTable, insertErr)
	case err != nil:
		return 0, SourceError(table, err)
	}

	if err = flush(); err != nil {
		return 0, RebuildError(ftsTable, err)
	}
	if err = tx.Commit(); err != nil {
		return 0, RebuildError(ftsTable, err)
	}

	slog.Info("FTS table rebuilt", "table", ftsTable, "rows", count)
	return count, nil
}

func newProgressBar(total int64, prefix string) *pb.ProgressBar {
	bar := pb.Full.Start64(total)
	bar.Set("prefix", prefix)
	bar.Set(pb.CleanOnFinish, true)
	return bar
}
