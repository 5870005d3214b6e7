package lifecycle

import "context"

// Indexer maintains the full-text search index of base tables.
type Indexer interface {
	// Rebuild clears every full-text table and fills it again from
	// the current content of its base table.
	Rebuild(ctx context.Context) (ReindexReport, error)

	// Search returns best matches for a full-text query.
	Search(ctx context.Context, q SearchQuery) ([]SearchHit, error)

	// Close releases the index file.
	Close() error
}

// TableCount is the number of rows indexed for one table.
type TableCount struct {
	Table string
	Rows  int64
}

// ReindexReport lists indexed tables.
type ReindexReport struct {
	Tables []TableCount
}

// SearchQuery describes a full-text search request.
type SearchQuery struct {
	// Text is a query in FTS5 syntax.
	Text string

	// Table is the base table to search, "judgments" by default.
	Table string

	// Limit is the maximal number of hits.
	Limit int
}

// SearchHit is one search result.
type SearchHit struct {
	// ID is the row id in the base table.
	ID int64

	// Key is the case id of a judgment or the section of a principle.
	Key string

	// Snippet is a fragment of text with matches wrapped in [ and ].
	Snippet string
}
