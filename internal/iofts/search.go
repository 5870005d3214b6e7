package iofts

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"slices"
	"strings"
	"unicode"

	"github.com/lexlib/lexdb/pkg/lifecycle"
	"github.com/lexlib/lexdb/pkg/schema"
	"github.com/lexlib/lexdb/pkg/textnorm"
)

const (
	// DefaultLimit is the number of hits returned when a query has no
	// limit.
	DefaultLimit = 10

	// SnippetTokens is the size of a snippet in tokens.
	SnippetTokens = 16
)

// Search runs an FTS5 MATCH query ordered by rank. Matched terms in
// snippets are wrapped in [ and ].
func (ix *indexer) Search(
	ctx context.Context,
	sq lifecycle.SearchQuery,
) ([]lifecycle.SearchHit, error) {
	m, err := searchModel(sq.Table)
	if err != nil {
		return nil, SearchQueryError(sq.Text, err)
	}

	match := matchQuery(sq.Text)
	if match == "" {
		return nil, SearchQueryError(sq.Text, errors.New("empty query"))
	}

	limit := sq.Limit
	if limit <= 0 {
		limit = DefaultLimit
	}

	ftsTable := schema.FTSTable(m)
	cols := schema.FTSColumns(m)
	q := fmt.Sprintf(
		"SELECT rowid, %s, snippet(%s, %d, '[', ']', '...', %d) "+
			"FROM %s WHERE %s MATCH ? ORDER BY rank LIMIT ?",
		cols[0], ftsTable, slices.Index(cols, "text"), SnippetTokens,
		ftsTable, ftsTable,
	)

	rows, err := ix.db.QueryContext(ctx, q, match, limit)
	if err != nil {
		return nil, SearchQueryError(sq.Text, err)
	}
	defer rows.Close()

	var res []lifecycle.SearchHit
	for rows.Next() {
		var hit lifecycle.SearchHit
		var key, snippet sql.NullString
		if err = rows.Scan(&hit.ID, &key, &snippet); err != nil {
			return nil, SearchQueryError(sq.Text, err)
		}
		hit.Key = key.String
		hit.Snippet = snippet.String
		res = append(res, hit)
	}
	if err = rows.Err(); err != nil {
		return nil, SearchQueryError(sq.Text, err)
	}
	return res, nil
}

// matchQuery turns user input into an FTS5 query where every word is a
// quoted string, so operators and punctuation in the input are matched
// as text. Words are joined with the implicit AND. Words without
// letters or digits are dropped.
func matchQuery(text string) string {
	words := strings.Fields(textnorm.StripDiacritics(text))
	terms := make([]string, 0, len(words))
	for _, w := range words {
		if strings.IndexFunc(w, isWordRune) < 0 {
			continue
		}
		terms = append(terms, `"`+strings.ReplaceAll(w, `"`, `""`)+`"`)
	}
	return strings.Join(terms, " ")
}

func isWordRune(r rune) bool {
	return unicode.IsLetter(r) || unicode.IsDigit(r)
}

// searchModel finds a searchable model by its table name. Empty name
// selects judgments.
func searchModel(table string) (schema.Model, error) {
	if table == "" {
		return schema.Judgment{}, nil
	}
	for _, m := range schema.Searchable() {
		if m.TableName() == table {
			return m, nil
		}
	}
	return nil, fmt.Errorf("table %q has no search index", table)
}
