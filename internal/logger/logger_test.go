package logger

import (
	"log/slog"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSetupWritesToLogFile(t *testing.T) {
	dir := filepath.Join(t.TempDir(), "logs")
	require.NoError(t, Setup(dir, "debug"))
	t.Cleanup(Close)

	Info("processing started", "file", "catalog.xlsx")
	Debug("row done", "row", 2)

	data, err := os.ReadFile(filepath.Join(dir, "sunseo.log"))
	require.NoError(t, err)
	assert.Contains(t, string(data), "processing started")
	assert.Contains(t, string(data), "file=catalog.xlsx")
	assert.Contains(t, string(data), "row=2")
}

func TestParseLevel(t *testing.T) {
	assert.Equal(t, slog.LevelDebug, parseLevel("DEBUG"))
	assert.Equal(t, slog.LevelWarn, parseLevel("warn"))
	assert.Equal(t, slog.LevelError, parseLevel("error"))
	assert.Equal(t, slog.LevelInfo, parseLevel(""))
}
