package logging

import (
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"
	"go.uber.org/zap/zapcore"
)

func TestLevelFor(t *testing.T) {
	require.Equal(t, "info", LevelFor(true))
	require.Equal(t, "warn", LevelFor(false))
}

func TestNewHonoursLevel(t *testing.T) {
	out := filepath.Join(t.TempDir(), "log.txt")

	logger, atom, err := New(Config{Level: "warn", Format: "json", OutputPath: out})
	require.NoError(t, err)
	require.Equal(t, zapcore.WarnLevel, atom.Level())
	require.False(t, logger.Core().Enabled(zapcore.InfoLevel))
	require.True(t, logger.Core().Enabled(zapcore.WarnLevel))
}

func TestNewFallsBackToInfo(t *testing.T) {
	out := filepath.Join(t.TempDir(), "log.txt")

	_, atom, err := New(Config{Level: "loud", OutputPath: out})
	require.NoError(t, err)
	require.Equal(t, zapcore.InfoLevel, atom.Level())
}

func TestInitReplacesGlobal(t *testing.T) {
	tests := []struct {
		level    string
		disabled zapcore.Level
		enabled  zapcore.Level
	}{
		{LevelFor(false), zapcore.InfoLevel, zapcore.WarnLevel},
		{LevelFor(true), zapcore.DebugLevel, zapcore.InfoLevel},
		{"error", zapcore.WarnLevel, zapcore.ErrorLevel},
	}
	for _, tt := range tests {
		t.Run(tt.level, func(t *testing.T) {
			out := filepath.Join(t.TempDir(), "log.txt")
			require.NoError(t, Init(Config{Level: tt.level, OutputPath: out}))
			t.Cleanup(func() { globalLogger = nil })

			require.False(t, L().Core().Enabled(tt.disabled))
			require.True(t, L().Core().Enabled(tt.enabled))
		})
	}
}

func TestInitBadOutput(t *testing.T) {
	err := Init(Config{Level: "info", OutputPath: filepath.Join(t.TempDir(), "missing", "log.txt")})
	require.Error(t, err)
}
