package ioschema_test

import (
	"context"
	"testing"

	"github.com/lexlib/lexdb/internal/iodb"
	"github.com/lexlib/lexdb/internal/ioschema"
	"github.com/lexlib/lexdb/internal/iotesting"
	"github.com/lexlib/lexdb/pkg/lifecycle"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// TestManager_ImplementsInterface verifies manager
// implements lifecycle.SchemaManager interface.
func TestManager_ImplementsInterface(t *testing.T) {
	var _ lifecycle.SchemaManager = ioschema.NewManager(iodb.NewPgxOperator())
}

// TestManager_NotConnected verifies Create fails without a pool.
func TestManager_NotConnected(t *testing.T) {
	mgr := ioschema.NewManager(iodb.NewPgxOperator())
	err := mgr.Create(context.Background(), iotesting.GetTestConfig())
	assert.Error(t, err)
}

// TestManager_Create verifies tables and unique indexes are created
// and that Create is idempotent.
func TestManager_Create(t *testing.T) {
	op := iotesting.ConnectOrSkip(t)
	ctx := context.Background()
	cfg := iotesting.GetTestConfig()

	require.NoError(t, op.DropAllTables(ctx))

	mgr := ioschema.NewManager(op)
	require.NoError(t, mgr.Create(ctx, cfg))
	require.NoError(t, mgr.Create(ctx, cfg), "Create should be idempotent")

	for _, table := range []string{"judgments", "principles"} {
		exists, err := op.TableExists(ctx, table)
		require.NoError(t, err)
		assert.True(t, exists, table)
	}

	pool := op.Pool()
	_, err := pool.Exec(ctx,
		"INSERT INTO judgments (case_id, text) VALUES ('1/1445', 'a'), (NULL, 'b'), (NULL, 'c')")
	require.NoError(t, err, "NULL case ids should not conflict")

	_, err = pool.Exec(ctx,
		"INSERT INTO judgments (case_id, text) VALUES ('1/1445', 'dup')")
	assert.Error(t, err, "case_id should be unique")
}
