package iodb

import (
	"fmt"
	"runtime"

	"github.com/gnames/gn"
	"github.com/lexlib/lexdb/pkg/errcode"
)

// ConnectionError is returned when the database cannot be reached.
// The password is never part of the message.
func ConnectionError(
	host string,
	port int,
	database, user string,
	err error,
) error {
	msg := `Cannot connect to PostgreSQL at <em>%s:%d/%s</em>

<em>Possible causes:</em>
  - PostgreSQL is not running
  - Connection settings are incorrect
  - Database <em>%s</em> does not exist

<em>How to fix:</em>
  1. Check the server: <em>pg_isready -h %s -p %d</em>
  2. Check LEXDB_DATABASE_URL or DATABASE_URL
  3. Review ~/.config/lexdb/config.yaml`

	vars := []any{host, port, database, database, host, port}
	pc, _, _, _ := runtime.Caller(1)
	fn := runtime.FuncForPC(pc)

	return &gn.Error{
		Code: errcode.DBConnectionError,
		Msg:  msg,
		Vars: vars,
		Err: fmt.Errorf("from %s: cannot connect to %s:%d/%s as %s: %w",
			fn.Name(), host, port, database, user, err),
	}
}

// NotConnectedError is returned when an operation is called before
// Connect.
func NotConnectedError() error {
	msg := "Database operation attempted without connection"

	return &gn.Error{
		Code: errcode.DBNotConnectedError,
		Msg:  msg,
		Err:  fmt.Errorf("not connected to database"),
	}
}

// TableCheckError is returned when checking for tables fails.
func TableCheckError(err error) error {
	msg := "Cannot verify database state"

	return &gn.Error{
		Code: errcode.DBTableCheckError,
		Msg:  msg,
		Err:  fmt.Errorf("failed to check database tables: %w", err),
	}
}

// TableExistsCheckError is returned when a table lookup fails.
func TableExistsCheckError(table string, err error) error {
	msg := "Cannot check if table <em>%s</em> exists"
	vars := []any{table}

	return &gn.Error{
		Code: errcode.DBTableExistsCheckError,
		Msg:  msg,
		Vars: vars,
		Err:  fmt.Errorf("failed to check table %s: %w", table, err),
	}
}

// EmptyDatabaseError is returned when required tables are missing.
func EmptyDatabaseError(database string) error {
	msg := `Database <em>%s</em> has no lexdb tables

<em>How to fix:</em>
  Run <em>lexdb create</em> first`
	vars := []any{database}

	return &gn.Error{
		Code: errcode.DBEmptyDatabaseError,
		Msg:  msg,
		Vars: vars,
		Err:  fmt.Errorf("database %s is not initialized", database),
	}
}

// QueryTablesError is returned when listing tables fails.
func QueryTablesError(err error) error {
	msg := "Cannot list database tables"

	return &gn.Error{
		Code: errcode.DBQueryTablesError,
		Msg:  msg,
		Err:  fmt.Errorf("failed to query tables: %w", err),
	}
}

// ScanTableError is returned when a table name cannot be read.
func ScanTableError(err error) error {
	msg := "Cannot read database table names"

	return &gn.Error{
		Code: errcode.DBScanTableError,
		Msg:  msg,
		Err:  fmt.Errorf("failed to scan table names: %w", err),
	}
}

// DropTableError is returned when a table cannot be dropped.
func DropTableError(table string, err error) error {
	msg := "Cannot drop table <em>%s</em>"
	vars := []any{table}

	return &gn.Error{
		Code: errcode.DBDropTableError,
		Msg:  msg,
		Vars: vars,
		Err:  fmt.Errorf("failed to drop table %s: %w", table, err),
	}
}
