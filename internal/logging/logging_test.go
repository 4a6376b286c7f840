package logging

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"go.uber.org/zap/zaptest/observer"
)

func TestNewWritesJSONToFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "award-sync.log")

	logger, err := New(Config{Level: "debug", Format: "json", Output: path})
	require.NoError(t, err)

	logger.Debug("fetched routes", zap.Int("count", 3))
	require.NoError(t, logger.Sync())

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Contains(t, string(data), `"msg":"fetched routes"`)
	assert.Contains(t, string(data), `"count":3`)
}

func TestNewRejectsUnknownFormat(t *testing.T) {
	_, err := New(Config{Level: "info", Format: "xml", Output: "stderr"})
	assert.Error(t, err)
}

func TestOrFallsBackToGlobal(t *testing.T) {
	local := zap.NewNop()
	assert.Same(t, local, Or(local))
	assert.Same(t, Logger, Or(nil))
}

func TestLevelHelpersWriteToGlobal(t *testing.T) {
	saved := Logger
	t.Cleanup(func() { Logger = saved })

	core, logs := observer.New(zapcore.DebugLevel)
	Logger = zap.New(core)

	Debug("rendering", zap.Int("rows", 2))
	Info("starting award-sync server", zap.String("address", ":8080"))
	Warn("graceful shutdown incomplete")
	Error("server failed")

	entries := logs.All()
	require.Len(t, entries, 4)

	levels := make([]zapcore.Level, len(entries))
	for i, e := range entries {
		levels[i] = e.Level
	}
	assert.Equal(t, []zapcore.Level{zapcore.DebugLevel, zapcore.InfoLevel, zapcore.WarnLevel, zapcore.ErrorLevel}, levels)
	assert.Equal(t, ":8080", entries[1].ContextMap()["address"])
}
