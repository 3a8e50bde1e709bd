package logging

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"go.uber.org/zap/zaptest/observer"
)

func TestSetAndNamed(t *testing.T) {
	core, logs := observer.New(zapcore.DebugLevel)
	Set(zap.New(core))
	t.Cleanup(func() { Set(nil) })

	Named("scan").Info("listed", zap.Int("files", 3))
	require.Equal(t, 1, logs.Len())
	entry := logs.All()[0]
	assert.Equal(t, "scan", entry.LoggerName)
	assert.Equal(t, int64(3), entry.ContextMap()["files"])
}

func TestInitAndSetLevel(t *testing.T) {
	t.Cleanup(func() { Set(nil) })
	require.NoError(t, Init(Config{Level: "warn", Format: "json", OutputPath: "stderr"}))
	assert.False(t, L().Core().Enabled(zapcore.InfoLevel))

	SetLevel("debug")
	assert.True(t, L().Core().Enabled(zapcore.DebugLevel))

	SetLevel("nonsense")
	assert.True(t, L().Core().Enabled(zapcore.DebugLevel))
}

func TestLFallsBackWhenUnset(t *testing.T) {
	Set(nil)
	assert.NotNil(t, L())
}
