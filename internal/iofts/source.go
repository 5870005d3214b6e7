package iofts

import (
	"context"
	"fmt"
	"strings"

	"github.com/jackc/pgx/v5"
	"github.com/lexlib/lexdb/pkg/db"
)

// RowSource streams rows of a base table that go to the full-text
// index.
type RowSource interface {
	// Count returns the number of rows in a table.
	Count(ctx context.Context, table string) (int64, error)

	// Each calls fn for every row of a table in id order. Values follow
	// the order of columns, NULL values are nil.
	Each(
		ctx context.Context,
		table string,
		columns []string,
		fn func(id int64, values []any) error,
	) error
}

// pgxSource reads base tables from PostgreSQL.
type pgxSource struct {
	operator db.Operator
}

// NewPgxSource creates a RowSource over the pool of an operator.
func NewPgxSource(op db.Operator) RowSource {
	return &pgxSource{operator: op}
}

func (s *pgxSource) Count(ctx context.Context, table string) (int64, error) {
	pool := s.operator.Pool()
	if pool == nil {
		return 0, NotConnectedError()
	}
	var res int64
	q := "SELECT count(*) FROM " + pgx.Identifier{table}.Sanitize()
	err := pool.QueryRow(ctx, q).Scan(&res)
	return res, err
}

func (s *pgxSource) Each(
	ctx context.Context,
	table string,
	columns []string,
	fn func(id int64, values []any) error,
) error {
	pool := s.operator.Pool()
	if pool == nil {
		return NotConnectedError()
	}

	cols := make([]string, 0, len(columns)+1)
	cols = append(cols, "id")
	for _, c := range columns {
		cols = append(cols, pgx.Identifier{c}.Sanitize())
	}
	q := fmt.Sprintf("SELECT %s FROM %s ORDER BY id",
		strings.Join(cols, ", "), pgx.Identifier{table}.Sanitize())

	rows, err := pool.Query(ctx, q)
	if err != nil {
		return err
	}
	defer rows.Close()

	var id int64
	vals := make([]*string, len(columns))
	dest := make([]any, 0, len(columns)+1)
	dest = append(dest, &id)
	for i := range vals {
		dest = append(dest, &vals[i])
	}

	for rows.Next() {
		if err = rows.Scan(dest...); err != nil {
			return err
		}
		row := make([]any, len(vals))
		for i, v := range vals {
			if v != nil {
				row[i] = *v
			}
		}
		if err = fn(id, row); err != nil {
			return err
		}
	}
	return rows.Err()
}
