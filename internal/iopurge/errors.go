package iopurge

import (
	"fmt"

	"github.com/gnames/gn"
	"github.com/lexlib/lexdb/pkg/errcode"
)

// NotConnectedError creates an error for when purge
// is attempted without database connection.
func NotConnectedError() error {
	msg := "Purge attempted without database connection"

	return &gn.Error{
		Code: errcode.DBNotConnectedError,
		Msg:  msg,
		Err:  fmt.Errorf("not connected to database"),
	}
}

// TransactionError is returned when the purge transaction cannot be
// started or committed.
func TransactionError(err error) error {
	msg := "Purge transaction failed, no judgments were deleted"

	return &gn.Error{
		Code: errcode.DBTransactionError,
		Msg:  msg,
		Err:  fmt.Errorf("purge transaction: %w", err),
	}
}

// CriterionError is returned when a delete statement of a criterion
// fails. The whole purge is rolled back.
func CriterionError(label string, err error) error {
	msg := `Purge by criterion <em>%s</em> failed, no judgments were deleted`
	vars := []any{label}

	return &gn.Error{
		Code: errcode.PurgeCriterionError,
		Msg:  msg,
		Vars: vars,
		Err:  fmt.Errorf("criterion %s: %w", label, err),
	}
}
