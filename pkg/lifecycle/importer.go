package lifecycle

import (
	"context"
	"time"
)

// Importer loads judgments from a CSV file into the judgments table.
//
// Rows are read in file order, grouped into batches and each batch is
// inserted in its own transaction. A cancelled or failed import keeps
// batches that were already committed.
type Importer interface {
	Import(ctx context.Context, path string) (ImportStats, error)
}

// ImportStats summarizes a CSV import run.
type ImportStats struct {
	// RunID identifies the run in logs.
	RunID string

	// Rows is the number of data rows read from the file.
	Rows int64

	// Inserted is the number of rows stored. Rows with an already known
	// case id are not counted.
	Inserted int64

	// Batches is the number of batches sent to the database.
	Batches int

	// FailedBatches and FailedRows count batches skipped after an
	// insert error.
	FailedBatches int
	FailedRows    int64

	Duration time.Duration
}

// PrinciplesImporter replaces all principles with the content of JSON
// fixture files, one file per court section.
type PrinciplesImporter interface {
	Import(ctx context.Context, dir string) (PrinciplesStats, error)
}

// PrinciplesStats summarizes a principles import.
type PrinciplesStats struct {
	// Files is the number of section files found.
	Files int

	// Entries is the number of principles read from files.
	Entries int

	// Skipped counts entries without text.
	Skipped int

	// Duplicates counts entries that repeat the text of an earlier
	// entry of the same section. They are merged into that entry.
	Duplicates int

	// Deleted is the number of principles removed before inserting.
	Deleted int64

	Inserted int64
}
