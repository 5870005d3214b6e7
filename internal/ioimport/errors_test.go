package ioimport

import (
	"errors"
	"testing"

	"github.com/gnames/gn"
	"github.com/lexlib/lexdb/pkg/errcode"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestErrors_Structure(t *testing.T) {
	cause := errors.New("unexpected EOF")

	tests := []struct {
		msg  string
		err  error
		code gn.ErrorCode
	}{
		{"header", CSVHeaderError("a.csv", cause), errcode.ImportCSVHeaderError},
		{"read", CSVReadError("a.csv", cause), errcode.ImportCSVReadError},
		{"batch", BatchInsertError(3, 1000, cause), errcode.ImportBatchInsertError},
		{"cancel", CancelledError(2000, cause), errcode.ImportCancelledError},
		{"dir", PrinciplesDirError("fx", cause), errcode.PrinciplesDirError},
		{"read fixture", PrinciplesReadError("fx/civil.json", cause),
			errcode.PrinciplesReadError},
		{"decode", PrinciplesDecodeError("fx/civil.json", cause),
			errcode.PrinciplesDecodeError},
		{"insert", PrinciplesInsertError(cause), errcode.PrinciplesInsertError},
	}

	for _, v := range tests {
		gnErr, ok := v.err.(*gn.Error)
		require.True(t, ok, v.msg)
		assert.Equal(t, v.code, gnErr.Code, v.msg)
		assert.NotEmpty(t, gnErr.Msg, v.msg)
		assert.ErrorIs(t, gnErr.Err, cause, v.msg)
	}

	gnErr := BatchInsertError(3, 1000, cause).(*gn.Error)
	assert.Equal(t, []any{3, 1000}, gnErr.Vars)

	gnErr = FileNotFoundError("missing.csv").(*gn.Error)
	assert.Equal(t, errcode.ImportFileNotFoundError, gnErr.Code)
	assert.Equal(t, []any{"missing.csv"}, gnErr.Vars)
}
