package logging

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLevelFor(t *testing.T) {
	tests := []struct {
		verbosity int
		want      zerolog.Level
	}{
		{-1, zerolog.WarnLevel},
		{0, zerolog.WarnLevel},
		{1, zerolog.InfoLevel},
		{2, zerolog.DebugLevel},
		{3, zerolog.TraceLevel},
		{7, zerolog.TraceLevel},
	}

	for _, tt := range tests {
		assert.Equal(t, tt.want, LevelFor(tt.verbosity), "verbosity %d", tt.verbosity)
	}
}

func TestSetupLoggerWritesLogFile(t *testing.T) {
	prev := zerolog.GlobalLevel()
	t.Cleanup(func() { zerolog.SetGlobalLevel(prev) })

	state := t.TempDir()
	t.Setenv("XDG_STATE_HOME", state)

	SetupLogger(2)
	assert.Equal(t, zerolog.DebugLevel, zerolog.GlobalLevel())

	logPath := filepath.Join(state, "deps", "deps.log")
	data, err := os.ReadFile(logPath)
	require.NoError(t, err)
	assert.Contains(t, string(data), "Logger initialized")

	// a second setup reopens the same file in append mode
	SetupLogger(1)
	assert.Equal(t, zerolog.InfoLevel, zerolog.GlobalLevel())
	assert.FileExists(t, logPath)
}

func TestSetupLoggerWithoutLogFile(t *testing.T) {
	prev := zerolog.GlobalLevel()
	t.Cleanup(func() { zerolog.SetGlobalLevel(prev) })

	blocker := filepath.Join(t.TempDir(), "file")
	require.NoError(t, os.WriteFile(blocker, nil, 0644))
	t.Setenv("XDG_STATE_HOME", blocker)

	SetupLogger(0)
	assert.Equal(t, zerolog.WarnLevel, zerolog.GlobalLevel())
	assert.NoFileExists(t, filepath.Join(blocker, "deps", "deps.log"))
}

func TestLogFilePath(t *testing.T) {
	t.Run("XDG_STATE_HOME set", func(t *testing.T) {
		t.Setenv("XDG_STATE_HOME", filepath.FromSlash("/custom/state"))
		got := filepath.ToSlash(LogFilePath())
		assert.True(t, strings.HasSuffix(got, "/custom/state/deps/deps.log"), got)
	})

	t.Run("XDG_STATE_HOME unset", func(t *testing.T) {
		t.Setenv("XDG_STATE_HOME", "")
		got := filepath.ToSlash(LogFilePath())
		assert.True(t, strings.HasSuffix(got, "deps/deps.log"), got)
	})
}
