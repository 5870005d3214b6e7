package iologger

import (
	"bytes"
	"log/slog"
	"os"
	"path/filepath"
	"testing"

	"github.com/lexlib/lexdb/pkg/config"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// TestInit_File verifies logs go to the log file and append mode
// keeps earlier records.
func TestInit_File(t *testing.T) {
	dir := t.TempDir()
	cfg := config.LogConfig{Format: "json", Level: "info", Destination: "file"}
	defer slog.SetDefault(slog.Default())

	require.NoError(t, Init(dir, cfg, false))
	slog.Info("first record")

	require.NoError(t, Init(dir, cfg, true))
	slog.Info("second record")
	slog.Debug("hidden record")

	data, err := os.ReadFile(filepath.Join(dir, LogFile))
	require.NoError(t, err)
	assert.Contains(t, string(data), "first record")
	assert.Contains(t, string(data), "second record")
	assert.NotContains(t, string(data), "hidden record",
		"Debug records should be filtered at info level")
}

// TestInit_BadDir verifies a missing log directory is reported.
func TestInit_BadDir(t *testing.T) {
	cfg := config.LogConfig{Format: "json", Level: "info", Destination: "file"}
	err := Init(filepath.Join(t.TempDir(), "missing"), cfg, false)
	assert.Error(t, err)
}

// TestHandler_Formats verifies the handler chosen for each format.
func TestHandler_Formats(t *testing.T) {
	tests := []struct {
		format string
		want   string
	}{
		{"json", `"msg":"hello"`},
		{"text", "msg=hello"},
		{"tint", "hello"},
	}

	for _, v := range tests {
		var buf bytes.Buffer
		h := handler(&buf, config.LogConfig{Format: v.format, Level: "debug"})
		slog.New(h).Info("hello")
		assert.Contains(t, buf.String(), v.want, v.format)
	}
}

func TestParseLevel(t *testing.T) {
	assert.Equal(t, slog.LevelDebug, parseLevel("debug"))
	assert.Equal(t, slog.LevelWarn, parseLevel("warn"))
	assert.Equal(t, slog.LevelError, parseLevel("error"))
	assert.Equal(t, slog.LevelInfo, parseLevel("unknown"))
}
