package logging

import (
	"bytes"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/goalpilot/goalpilot/internal/domain"
)

func TestParseLevel(t *testing.T) {
	tests := []struct {
		input    string
		expected slog.Level
	}{
		{"debug", slog.LevelDebug},
		{"DEBUG", slog.LevelDebug},
		{"info", slog.LevelInfo},
		{"warn", slog.LevelWarn},
		{"error", slog.LevelError},
		{"ERROR", slog.LevelError},
		{"unknown", slog.LevelInfo}, // default
		{"", slog.LevelInfo},        // default
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			assert.Equal(t, tt.expected, ParseLevel(tt.input))
		})
	}
}

func TestLogger_GoalScoped(t *testing.T) {
	dataDir := t.TempDir()
	logger := New(dataDir, slog.LevelInfo)
	defer func() { _ = logger.Close() }()

	logger.Info("g1", "goal", "goal created")

	content, err := os.ReadFile(domain.GlobalLogPath(dataDir))
	require.NoError(t, err)
	assert.Contains(t, string(content), "[INFO]")
	assert.Contains(t, string(content), "[goal-g1]")
	assert.Contains(t, string(content), "[goal]")
	assert.Contains(t, string(content), "goal created")

	goalContent, err := os.ReadFile(domain.GoalLogPath(dataDir, "g1"))
	require.NoError(t, err)
	assert.Contains(t, string(goalContent), "goal created")
}

func TestLogger_GlobalLogOnly(t *testing.T) {
	dataDir := t.TempDir()
	logger := New(dataDir, slog.LevelInfo)
	defer func() { _ = logger.Close() }()

	logger.Info("", "server", "listening")

	content, err := os.ReadFile(domain.GlobalLogPath(dataDir))
	require.NoError(t, err)
	assert.Contains(t, string(content), "[global]")

	entries, err := os.ReadDir(filepath.Join(dataDir, "logs"))
	require.NoError(t, err)
	assert.Len(t, entries, 1, "no goal log file for global entries")
}

func TestLogger_LevelFiltering(t *testing.T) {
	dataDir := t.TempDir()
	logger := New(dataDir, slog.LevelWarn)
	defer func() { _ = logger.Close() }()

	logger.Debug("g1", "llm", "debug message")
	logger.Info("g1", "llm", "info message")
	logger.Warn("g1", "llm", "warn message")
	logger.Error("g1", "llm", "error message")

	content, err := os.ReadFile(domain.GlobalLogPath(dataDir))
	require.NoError(t, err)
	assert.NotContains(t, string(content), "debug message")
	assert.NotContains(t, string(content), "info message")
	assert.Contains(t, string(content), "warn message")
	assert.Contains(t, string(content), "error message")
}

func TestLogger_DisabledWhenEmptyDataDir(t *testing.T) {
	logger := New("", slog.LevelDebug)
	defer func() { _ = logger.Close() }()

	assert.NotPanics(t, func() {
		logger.Info("g1", "goal", "m")
		logger.Error("", "goal", "m")
	})
}

func TestLogger_LogFormat(t *testing.T) {
	dataDir := t.TempDir()
	logger := New(dataDir, slog.LevelInfo)
	defer func() { _ = logger.Close() }()

	logger.Info("abc", "usecase", `goal created: "Learn Go"`)

	content, err := os.ReadFile(domain.GlobalLogPath(dataDir))
	require.NoError(t, err)

	lines := strings.Split(strings.TrimSpace(string(content)), "\n")
	require.Len(t, lines, 1)
	assert.Regexp(t, `^\[\d{4}-\d{2}-\d{2} \d{2}:\d{2}:\d{2}\] \[INFO\] \[goal-abc\] \[usecase\] goal created: "Learn Go"$`, lines[0])
}

func TestLogger_SeparateGoalFiles(t *testing.T) {
	dataDir := t.TempDir()
	logger := New(dataDir, slog.LevelInfo)

	logger.Info("a", "task", "message for a")
	logger.Info("b", "task", "message for b")
	require.NoError(t, logger.Close())

	aContent, err := os.ReadFile(domain.GoalLogPath(dataDir, "a"))
	require.NoError(t, err)
	assert.Contains(t, string(aContent), "message for a")
	assert.NotContains(t, string(aContent), "message for b")

	global, err := os.ReadFile(domain.GlobalLogPath(dataDir))
	require.NoError(t, err)
	assert.Contains(t, string(global), "message for a")
	assert.Contains(t, string(global), "message for b")
}

func TestNewSlog(t *testing.T) {
	var buf bytes.Buffer
	logger := NewSlog(&buf, "warn")

	logger.Info("hidden")
	logger.Warn("shown", "path", "/api/goals")

	out := buf.String()
	assert.NotContains(t, out, "hidden")
	assert.Contains(t, out, "msg=shown")
	assert.Contains(t, out, "path=/api/goals")
}

func TestLogger_RotatesGoalLog(t *testing.T) {
	dataDir := t.TempDir()
	logger := New(dataDir, slog.LevelInfo)
	logger.SetGoalLogLimit(150)

	logger.Info("g1", domain.LogCategoryTask, "first entry")
	logger.Info("g1", domain.LogCategoryTask, "second entry")
	logger.Info("g1", domain.LogCategoryTask, "third entry")
	require.NoError(t, logger.Close())

	current, err := os.ReadFile(domain.GoalLogPath(dataDir, "g1"))
	require.NoError(t, err)
	rotated, err := os.ReadFile(domain.GoalLogPath(dataDir, "g1") + ".1")
	require.NoError(t, err)

	assert.Contains(t, string(rotated), "second entry")
	assert.NotContains(t, string(rotated), "third entry")
	assert.Equal(t, 1, strings.Count(string(current), "\n"))
	assert.Contains(t, string(current), "third entry")

	global, err := os.ReadFile(domain.GlobalLogPath(dataDir))
	require.NoError(t, err)
	assert.Equal(t, 3, strings.Count(string(global), "\n"), "global log is not rotated")
}

func TestLogger_RotationCountsExistingFile(t *testing.T) {
	dataDir := t.TempDir()
	require.NoError(t, os.MkdirAll(filepath.Join(dataDir, "logs"), 0o750))
	require.NoError(t, os.WriteFile(domain.GoalLogPath(dataDir, "g1"), []byte(strings.Repeat("x", 200)+"\n"), 0o600))

	logger := New(dataDir, slog.LevelInfo)
	logger.SetGoalLogLimit(100)
	logger.Info("g1", domain.LogCategoryGoal, "after restart")
	require.NoError(t, logger.Close())

	current, err := os.ReadFile(domain.GoalLogPath(dataDir, "g1"))
	require.NoError(t, err)
	assert.NotContains(t, string(current), "xxx")
	assert.Contains(t, string(current), "after restart")
}

func TestLogger_RotationDisabled(t *testing.T) {
	dataDir := t.TempDir()
	logger := New(dataDir, slog.LevelInfo)
	logger.SetGoalLogLimit(0)

	for range 5 {
		logger.Info("g1", domain.LogCategoryCoach, "entry")
	}
	require.NoError(t, logger.Close())

	_, err := os.Stat(domain.GoalLogPath(dataDir, "g1") + ".1")
	assert.ErrorIs(t, err, os.ErrNotExist)
}
