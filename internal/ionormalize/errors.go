package ionormalize

import (
	"fmt"

	"github.com/gnames/gn"
	"github.com/lexlib/lexdb/pkg/errcode"
)

// NotConnectedError creates an error for when normalization
// is attempted without database connection.
func NotConnectedError() error {
	msg := "Normalization attempted without database connection"

	return &gn.Error{
		Code: errcode.DBNotConnectedError,
		Msg:  msg,
		Err:  fmt.Errorf("not connected to database"),
	}
}

// TransactionError is returned when the normalization transaction
// cannot be started or committed.
func TransactionError(err error) error {
	msg := "Normalization transaction failed, no texts were changed"

	return &gn.Error{
		Code: errcode.DBTransactionError,
		Msg:  msg,
		Err:  fmt.Errorf("normalize transaction: %w", err),
	}
}

// LoadError is returned when texts cannot be read.
func LoadError(err error) error {
	msg := "Cannot read judgment texts"

	return &gn.Error{
		Code: errcode.NormalizeLoadError,
		Msg:  msg,
		Err:  fmt.Errorf("load texts: %w", err),
	}
}

// UpdateError is returned when cleaned texts cannot be written back.
func UpdateError(err error) error {
	msg := "Cannot update judgment texts, no texts were changed"

	return &gn.Error{
		Code: errcode.NormalizeUpdateError,
		Msg:  msg,
		Err:  fmt.Errorf("update texts: %w", err),
	}
}
