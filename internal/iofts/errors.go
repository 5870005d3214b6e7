package iofts

import (
	"fmt"

	"github.com/gnames/gn"
	"github.com/lexlib/lexdb/pkg/errcode"
)

// NotConnectedError creates an error for when the index is rebuilt
// without database connection.
func NotConnectedError() error {
	msg := "Reindex attempted without database connection"

	return &gn.Error{
		Code: errcode.DBNotConnectedError,
		Msg:  msg,
		Err:  fmt.Errorf("not connected to database"),
	}
}

// OpenError is returned when the index file cannot be opened.
func OpenError(path string, err error) error {
	msg := "Cannot open search index <em>%s</em>"
	vars := []any{path}

	return &gn.Error{
		Code: errcode.FTSOpenError,
		Msg:  msg,
		Vars: vars,
		Err:  fmt.Errorf("open %s: %w", path, err),
	}
}

// SchemaError is returned when an FTS5 table cannot be created.
func SchemaError(table string, err error) error {
	msg := "Cannot create search table <em>%s</em>"
	vars := []any{table}

	return &gn.Error{
		Code: errcode.FTSSchemaError,
		Msg:  msg,
		Vars: vars,
		Err:  fmt.Errorf("create %s: %w", table, err),
	}
}

// SourceError is returned when rows of a base table cannot be read.
func SourceError(table string, err error) error {
	msg := "Cannot read <em>%s</em> for indexing"
	vars := []any{table}

	return &gn.Error{
		Code: errcode.FTSSourceError,
		Msg:  msg,
		Vars: vars,
		Err:  fmt.Errorf("read %s: %w", table, err),
	}
}

// RebuildError is returned when an FTS table cannot be refilled. The
// table keeps its previous content.
func RebuildError(table string, err error) error {
	msg := "Cannot rebuild search table <em>%s</em>, old index is kept"
	vars := []any{table}

	return &gn.Error{
		Code: errcode.FTSRebuildError,
		Msg:  msg,
		Vars: vars,
		Err:  fmt.Errorf("rebuild %s: %w", table, err),
	}
}

// SearchQueryError is returned for invalid or failed search queries.
func SearchQueryError(query string, err error) error {
	msg := `Cannot run search query <em>%s</em>

Queries use FTS5 syntax, put phrases in double quotes.`
	vars := []any{query}

	return &gn.Error{
		Code: errcode.FTSSearchQueryError,
		Msg:  msg,
		Vars: vars,
		Err:  fmt.Errorf("search %q: %w", query, err),
	}
}
