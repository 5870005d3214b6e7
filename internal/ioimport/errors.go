package ioimport

import (
	"errors"
	"fmt"
	"strings"

	"github.com/gnames/gn"
	"github.com/lexlib/lexdb/pkg/errcode"
)

var errEmptyFile = errors.New("file has no header row")

// headerError is returned by newCSVSource when no header is known.
type headerError struct {
	headers []string
}

func (e *headerError) Error() string {
	return fmt.Sprintf("no known columns in header [%s]",
		strings.Join(e.headers, ", "))
}

// NotConnectedError creates an error for when import
// is attempted without database connection.
func NotConnectedError() error {
	msg := "Import attempted without database connection"

	return &gn.Error{
		Code: errcode.DBNotConnectedError,
		Msg:  msg,
		Err:  fmt.Errorf("not connected to database"),
	}
}

// FileNotFoundError is returned when the CSV file does not exist.
func FileNotFoundError(path string) error {
	msg := `CSV file <em>%s</em> does not exist`
	vars := []any{path}

	return &gn.Error{
		Code: errcode.ImportFileNotFoundError,
		Msg:  msg,
		Vars: vars,
		Err:  fmt.Errorf("file not found: %s", path),
	}
}

// CSVHeaderError is returned when the header of a CSV file cannot be
// mapped to judgment columns.
func CSVHeaderError(path string, err error) error {
	msg := `Cannot use header of <em>%s</em>

<em>Recognized columns:</em>
  case_id (case, case_number, id), year (year_hijri), city,
  court_body (court, court_type), circuit_type (circuit, court_circuit),
  judgment_number, judgment_date (date), text (full_text, content)`
	vars := []any{path}

	return &gn.Error{
		Code: errcode.ImportCSVHeaderError,
		Msg:  msg,
		Vars: vars,
		Err:  fmt.Errorf("bad header in %s: %w", path, err),
	}
}

// CSVReadError is returned when a CSV record cannot be parsed.
func CSVReadError(path string, err error) error {
	msg := "Cannot read CSV file <em>%s</em>"
	vars := []any{path}

	return &gn.Error{
		Code: errcode.ImportCSVReadError,
		Msg:  msg,
		Vars: vars,
		Err:  fmt.Errorf("cannot parse %s: %w", path, err),
	}
}

// BatchInsertError is returned when a batch cannot be stored and
// failed batches are not skipped.
func BatchInsertError(batchNum, rows int, err error) error {
	msg := `Batch <em>%d</em> of %d rows was not inserted, import stopped

<em>Batches inserted before it stay in the database.</em>
Use <em>--skip-failed-batches</em> to log and skip failing batches.`
	vars := []any{batchNum, rows}

	return &gn.Error{
		Code: errcode.ImportBatchInsertError,
		Msg:  msg,
		Vars: vars,
		Err:  fmt.Errorf("batch %d (%d rows): %w", batchNum, rows, err),
	}
}

// CancelledError is returned when an import is interrupted.
func CancelledError(inserted int64, err error) error {
	msg := "Import interrupted, %d rows were committed before it stopped"
	vars := []any{inserted}

	return &gn.Error{
		Code: errcode.ImportCancelledError,
		Msg:  msg,
		Vars: vars,
		Err:  fmt.Errorf("import cancelled: %w", err),
	}
}

// PrinciplesDirError is returned when the fixtures directory is
// missing or has no section files.
func PrinciplesDirError(dir string, err error) error {
	msg := `No principle files found in <em>%s</em>

Expected files: civil.json, penalty.json, administrative.json, public.json`
	vars := []any{dir}

	return &gn.Error{
		Code: errcode.PrinciplesDirError,
		Msg:  msg,
		Vars: vars,
		Err:  fmt.Errorf("principles directory %s: %w", dir, err),
	}
}

// PrinciplesReadError is returned when a fixture file cannot be read.
func PrinciplesReadError(path string, err error) error {
	msg := "Cannot read <em>%s</em>"
	vars := []any{path}

	return &gn.Error{
		Code: errcode.PrinciplesReadError,
		Msg:  msg,
		Vars: vars,
		Err:  fmt.Errorf("cannot read %s: %w", path, err),
	}
}

// PrinciplesDecodeError is returned when a fixture is not a JSON array
// of principles.
func PrinciplesDecodeError(path string, err error) error {
	msg := "<em>%s</em> is not a JSON array of principles"
	vars := []any{path}

	return &gn.Error{
		Code: errcode.PrinciplesDecodeError,
		Msg:  msg,
		Vars: vars,
		Err:  fmt.Errorf("cannot decode %s: %w", path, err),
	}
}

// PrinciplesInsertError is returned when the replacement transaction
// fails. Nothing is changed in the database.
func PrinciplesInsertError(err error) error {
	msg := "Cannot replace principles, the transaction was rolled back"

	return &gn.Error{
		Code: errcode.PrinciplesInsertError,
		Msg:  msg,
		Err:  fmt.Errorf("principles transaction: %w", err),
	}
}
