package logging

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"go.uber.org/zap/zapcore"
	"go.uber.org/zap/zaptest/observer"
)

func TestNewLoggerLevels(t *testing.T) {
	assert.False(t, NewLogger(false).Desugar().Core().Enabled(zapcore.DebugLevel))
	assert.True(t, NewLogger(true).Desugar().Core().Enabled(zapcore.DebugLevel))
}

func TestNewWrapsCore(t *testing.T) {
	core, logs := observer.New(zapcore.InfoLevel)
	logger := New(core)

	logger.Infow("Parsed subtitle file", "nodes", 3)
	logger.Debugw("hidden")

	entries := logs.All()
	if assert.Len(t, entries, 1) {
		assert.Equal(t, "Parsed subtitle file", entries[0].Message)
		assert.Equal(t, int64(3), entries[0].ContextMap()["nodes"])
	}
}
