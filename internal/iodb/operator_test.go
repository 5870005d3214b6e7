package iodb_test

import (
	"context"
	"testing"

	"github.com/lexlib/lexdb/internal/iodb"
	"github.com/lexlib/lexdb/internal/iotesting"
	"github.com/lexlib/lexdb/pkg/config"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// Note: These are integration tests that require PostgreSQL.
// The database name is always forced to "lexdb_test". Credentials can
// be set with LEXDB_TEST_DATABASE_USER and LEXDB_TEST_DATABASE_PASSWORD.
//
// Skip them with:
//   go test -short

func TestPgxOperator_NotConnected(t *testing.T) {
	op := iodb.NewPgxOperator()
	ctx := context.Background()

	_, err := op.TableExists(ctx, "judgments")
	assert.Error(t, err)
	_, err = op.HasTables(ctx)
	assert.Error(t, err)
	assert.Error(t, op.DropAllTables(ctx))
}

func TestPgxOperator_Connect(t *testing.T) {
	op := iotesting.ConnectOrSkip(t)
	ctx := context.Background()

	exists, err := op.TableExists(ctx, "nonexistent_table")
	assert.NoError(t, err, "Should be able to execute commands after Connect")
	assert.False(t, exists)
}

func TestPgxOperator_Connect_InvalidURL(t *testing.T) {
	op := iodb.NewPgxOperator()
	cfg := config.New()
	cfg.Update([]config.Option{config.OptDatabaseURL("postgres://%zz")})

	err := op.Connect(context.Background(), &cfg.Database)
	assert.Error(t, err, "Connect should fail with malformed URL")
}

func TestPgxOperator_DropAllTables(t *testing.T) {
	op := iotesting.ConnectOrSkip(t)
	ctx := context.Background()
	pool := op.Pool()

	_, err := pool.Exec(ctx, "CREATE TABLE IF NOT EXISTS iodb_drop_test (id INT)")
	require.NoError(t, err)

	exists, err := op.TableExists(ctx, "iodb_drop_test")
	require.NoError(t, err)
	assert.True(t, exists)

	require.NoError(t, op.DropAllTables(ctx))

	hasTables, err := op.HasTables(ctx)
	require.NoError(t, err)
	assert.False(t, hasTables, "All tables should be dropped")
}

func TestVacuumAnalyze(t *testing.T) {
	ctx := context.Background()
	assert.Error(t, iodb.VacuumAnalyze(ctx, nil, "judgments"))

	op := iotesting.ConnectOrSkip(t)
	pool := op.Pool()

	_, err := pool.Exec(ctx, "CREATE TABLE IF NOT EXISTS iodb_vacuum_test (id INT)")
	require.NoError(t, err)
	t.Cleanup(func() {
		_, _ = pool.Exec(context.Background(), "DROP TABLE IF EXISTS iodb_vacuum_test")
	})

	_, err = pool.Exec(ctx, "INSERT INTO iodb_vacuum_test SELECT generate_series(1, 100)")
	require.NoError(t, err)
	_, err = pool.Exec(ctx, "DELETE FROM iodb_vacuum_test WHERE id > 10")
	require.NoError(t, err)

	require.NoError(t, iodb.VacuumAnalyze(ctx, pool, "iodb_vacuum_test"))
	assert.Error(t, iodb.VacuumAnalyze(ctx, pool, "iodb_missing_table"))
}
