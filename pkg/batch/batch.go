// Package batch builds parameterized multi-row INSERT statements.
//
// The package is pure: it only produces SQL text and the flat argument
// slice that goes with it. Executing statements belongs to the io
// packages. Row i, column j of a batch is bound to the parameter slot
// i*width+j+1, so slots grow strictly and never repeat within one
// statement.
package batch

import (
	"errors"
	"fmt"
	"strconv"
	"strings"
)

const (
	// MaxParamsPostgres is the bound-parameter limit of the
	// PostgreSQL wire protocol.
	MaxParamsPostgres = 65535

	// MaxParamsSQLite is the default SQLITE_MAX_VARIABLE_NUMBER.
	MaxParamsSQLite = 32766
)

var (
	// ErrNoRows is returned when a statement is requested for an empty
	// batch.
	ErrNoRows = errors.New("batch has no rows")

	// ErrNoColumns is returned when the builder has no bound columns.
	ErrNoColumns = errors.New("builder has no columns")
)

// Placeholder renders the n-th (1-based) bound parameter.
type Placeholder func(n int) string

// Dollar renders PostgreSQL placeholders: $1, $2, ...
func Dollar(n int) string {
	return "$" + strconv.Itoa(n)
}

// Question renders anonymous SQLite placeholders. Anonymous slots are
// bound in order of appearance, which matches the slot numbering.
func Question(int) string {
	return "?"
}

// Literal is a column whose value comes from an SQL expression instead
// of a bound parameter, for example a server-side timestamp.
type Literal struct {
	Column string
	Expr   string
}

// Now assigns the server time to the created_at column of each row.
var Now = Literal{Column: "created_at", Expr: "now()"}

// Builder describes the shape of multi-row INSERT statements for
// one table.
type Builder struct {
	// Table is the target table name.
	Table string

	// Columns are the bound columns, in the order of values in a row.
	Columns []string

	// Trailer holds columns filled by SQL expressions, appended after
	// the bound columns in every row.
	Trailer []Literal

	// OnConflict is an optional clause appended verbatim after
	// VALUES, e.g. "ON CONFLICT (case_id) DO NOTHING".
	OnConflict string

	// Placeholder renders parameter slots. Dollar is used when nil.
	Placeholder Placeholder
}

// Width returns the number of bound values each row must have.
func (b Builder) Width() int {
	return len(b.Columns)
}

// MaxRows returns the largest number of rows one statement can carry
// without going over the limit of bound parameters.
func (b Builder) MaxRows(limit int) int {
	w := b.Width()
	if w == 0 || limit < w {
		return 0
	}
	return limit / w
}

// Build returns a single INSERT statement for all rows together with
// the flattened arguments. Every row must have exactly Width values.
func (b Builder) Build(rows [][]any) (string, []any, error) {
	width := b.Width()
	if width == 0 {
		return "", nil, ErrNoColumns
	}
	if len(rows) == 0 {
		return "", nil, ErrNoRows
	}

	ph := b.Placeholder
	if ph == nil {
		ph = Dollar
	}

	cols := make([]string, 0, width+len(b.Trailer))
	cols = append(cols, b.Columns...)
	for _, l := range b.Trailer {
		cols = append(cols, l.Column)
	}

	var sb strings.Builder
	sb.WriteString("INSERT INTO ")
	sb.WriteString(b.Table)
	sb.WriteString(" (")
	sb.WriteString(strings.Join(cols, ", "))
	sb.WriteString(") VALUES ")

	args := make([]any, 0, len(rows)*width)
	for i, row := range rows {
		if len(row) != width {
			return "", nil, fmt.Errorf(
				"row %d has %d values, expected %d", i, len(row), width,
			)
		}
		if i > 0 {
			sb.WriteString(", ")
		}
		sb.WriteByte('(')
		for j := range row {
			if j > 0 {
				sb.WriteString(", ")
			}
			sb.WriteString(ph(i*width + j + 1))
		}
		for _, l := range b.Trailer {
			sb.WriteString(", ")
			sb.WriteString(l.Expr)
		}
		sb.WriteByte(')')
		args = append(args, row...)
	}

	if b.OnConflict != "" {
		sb.WriteByte(' ')
		sb.WriteString(b.OnConflict)
	}

	return sb.String(), args, nil
}

// Split partitions items into consecutive chunks of at most size
// elements. Order is kept and only the last chunk can be shorter.
func Split[T any](items []T, size int) [][]T {
	if size <= 0 || len(items) == 0 {
		return nil
	}
	res := make([][]T, 0, (len(items)+size-1)/size)
	for start := 0; start < len(items); start += size {
		end := min(start+size, len(items))
		res = append(res, items[start:end])
	}
	return res
}
