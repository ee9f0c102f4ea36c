package logging

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

func TestNewWithoutPathIsNop(t *testing.T) {
	logger, err := New(Config{Level: "debug"})
	require.NoError(t, err)
	assert.False(t, logger.Core().Enabled(zapcore.ErrorLevel))
}

func TestNewWritesToFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "rctx.log")

	logger, err := New(Config{Level: "debug", Path: path})
	require.NoError(t, err)

	logger.Debug("collected file", zap.String("path", "/tmp/a.go"))
	_ = logger.Sync()

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Contains(t, string(data), "collected file")
	assert.Contains(t, string(data), "/tmp/a.go")
}

func TestNewRespectsLevel(t *testing.T) {
	path := filepath.Join(t.TempDir(), "rctx.log")

	logger, err := New(Config{Level: "warn", Path: path})
	require.NoError(t, err)
	assert.False(t, logger.Core().Enabled(zapcore.InfoLevel))
	assert.True(t, logger.Core().Enabled(zapcore.WarnLevel))
}

func TestParseLevel(t *testing.T) {
	level, err := ParseLevel("")
	require.NoError(t, err)
	assert.Equal(t, zapcore.InfoLevel, level)

	level, err = ParseLevel(" DEBUG ")
	require.NoError(t, err)
	assert.Equal(t, zapcore.DebugLevel, level)

	_, err = ParseLevel("chatty")
	assert.Error(t, err)
}
