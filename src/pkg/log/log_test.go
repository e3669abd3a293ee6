package log

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"treescape/local-app/src/pkg/model"
)

func newLogConfig(t *testing.T) *model.Config {
	t.Helper()
	return &model.Config{
		LogFolder:  t.TempDir(),
		CommandLog: "commands.log",
		ErrorLog:   "errors.log",
		InfoLog:    "info.log",
	}
}

func TestLoggerWritesToFiles(t *testing.T) {
	cfg := newLogConfig(t)
	logger, err := NewLogger(cfg, LevelDebug)
	require.NoError(t, err)

	ctx := context.Background()
	logger.LogCommand(ctx, "node add")
	logger.Error(ctx, "something failed", Fields{"error": "boom"})
	logger.Info(ctx, "hello", Fields{"answer": 42})

	// Close drains the worker before the files are read back
	require.NoError(t, logger.Close())

	commands, err := os.ReadFile(filepath.Join(cfg.LogFolder, cfg.CommandLog))
	require.NoError(t, err)
	assert.Contains(t, string(commands), "node add")

	errors, err := os.ReadFile(filepath.Join(cfg.LogFolder, cfg.ErrorLog))
	require.NoError(t, err)
	assert.Contains(t, string(errors), "something failed")
	assert.Contains(t, string(errors), "boom")

	info, err := os.ReadFile(filepath.Join(cfg.LogFolder, cfg.InfoLog))
	require.NoError(t, err)
	assert.Contains(t, string(info), "hello")
	assert.Contains(t, string(info), "42")
}

func TestLoggerLevelFilter(t *testing.T) {
	cfg := newLogConfig(t)
	logger, err := NewLogger(cfg, LevelInfo)
	require.NoError(t, err)

	logger.Debug(context.Background(), "too detailed", nil)
	require.NoError(t, logger.Close())

	info, err := os.ReadFile(filepath.Join(cfg.LogFolder, cfg.InfoLog))
	require.NoError(t, err)
	assert.NotContains(t, string(info), "too detailed")
}

func TestLogLevelString(t *testing.T) {
	assert.Equal(t, "COMMAND", LevelCommand.String())
	assert.Equal(t, "ERROR", LevelError.String())
	assert.Equal(t, "WARN", LevelWarn.String())
	assert.Equal(t, "INFO", LevelInfo.String())
	assert.Equal(t, "DEBUG", LevelDebug.String())
	assert.Equal(t, "UNKNOWN", LogLevel(99).String())
}
