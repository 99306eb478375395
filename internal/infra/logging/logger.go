// Package logging provides file-based logging for goalpilot.
// It outputs logs to both a global log file (.goalpilot/logs/goalpilot.log)
// and goal-specific log files (.goalpilot/logs/goal-<id>.log).
// A goal log that grows past its size limit is rotated to goal-<id>.log.1,
// keeping a single previous generation per goal.
package logging

import (
	"fmt"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"sync"
	"time"

	"github.com/goalpilot/goalpilot/internal/domain"
)

// Ensure Logger implements domain.Logger interface.
var _ domain.Logger = (*Logger)(nil)

// DefaultGoalLogLimit is the size at which a goal log is rotated.
const DefaultGoalLogLimit int64 = 1 << 20

// goalLog is an open goal log file and its current size.
type goalLog struct {
	file *os.File
	size int64
}

// Logger writes leveled entries to the global log and per-goal logs.
type Logger struct {
	globalFile   *os.File
	goalFiles    map[string]*goalLog
	dataDir      string
	goalLogLimit int64
	mu           sync.Mutex
	level        slog.Level
}

// New creates a new Logger that writes to the data log directory.
// If dataDir is empty, logging is disabled (returns a no-op logger).
func New(dataDir string, level slog.Level) *Logger {
	return &Logger{
		dataDir:      dataDir,
		level:        level,
		goalLogLimit: DefaultGoalLogLimit,
		goalFiles:    make(map[string]*goalLog),
	}
}

// SetGoalLogLimit changes the rotation size of goal logs. Zero disables rotation.
func (l *Logger) SetGoalLogLimit(limit int64) {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.goalLogLimit = limit
}

// ParseLevel parses a log level string into slog.Level.
func ParseLevel(levelStr string) slog.Level {
	switch levelStr {
	case "debug", "DEBUG":
		return slog.LevelDebug
	case "info", "INFO":
		return slog.LevelInfo
	case "warn", "WARN":
		return slog.LevelWarn
	case "error", "ERROR":
		return slog.LevelError
	default:
		return slog.LevelInfo
	}
}

// NewSlog returns a text slog.Logger on w at the given level name.
// It carries server lifecycle and request logs.
func NewSlog(w io.Writer, levelStr string) *slog.Logger {
	return slog.New(slog.NewTextHandler(w, &slog.HandlerOptions{Level: ParseLevel(levelStr)}))
}

// ensureLogsDir creates the logs directory if it doesn't exist.
func (l *Logger) ensureLogsDir() error {
	logsDir := filepath.Join(l.dataDir, "logs")
	return os.MkdirAll(logsDir, 0o750)
}

// ensureGlobalFile opens or returns the global log file.
func (l *Logger) ensureGlobalFile() (*os.File, error) {
	l.mu.Lock()
	defer l.mu.Unlock()

	if l.globalFile != nil {
		return l.globalFile, nil
	}

	if err := l.ensureLogsDir(); err != nil {
		return nil, fmt.Errorf("create logs directory: %w", err)
	}

	path := domain.GlobalLogPath(l.dataDir)
	f, err := os.OpenFile(path, os.O_CREATE|os.O_APPEND|os.O_WRONLY, 0o640) //nolint:gosec // Log file readable by owner and group
	if err != nil {
		return nil, fmt.Errorf("open global log file: %w", err)
	}
	l.globalFile = f
	return f, nil
}

// writeGoal appends entry to the goal log, rotating it first when the entry
// would push it past the limit.
func (l *Logger) writeGoal(goalID, entry string) error {
	l.mu.Lock()
	defer l.mu.Unlock()

	gl, ok := l.goalFiles[goalID]
	if !ok {
		var err error
		if gl, err = l.openGoalLog(goalID); err != nil {
			return err
		}
		l.goalFiles[goalID] = gl
	}

	if l.goalLogLimit > 0 && gl.size > 0 && gl.size+int64(len(entry)) > l.goalLogLimit {
		if err := l.rotateGoalLog(goalID, gl); err != nil {
			return err
		}
	}

	n, err := io.WriteString(gl.file, entry)
	gl.size += int64(n)
	return err
}

func (l *Logger) openGoalLog(goalID string) (*goalLog, error) {
	if err := l.ensureLogsDir(); err != nil {
		return nil, fmt.Errorf("create logs directory: %w", err)
	}

	path := domain.GoalLogPath(l.dataDir, goalID)
	f, err := os.OpenFile(path, os.O_CREATE|os.O_APPEND|os.O_WRONLY, 0o640) //nolint:gosec // Log file readable by owner and group
	if err != nil {
		return nil, fmt.Errorf("open goal log file: %w", err)
	}
	info, err := f.Stat()
	if err != nil {
		_ = f.Close()
		return nil, fmt.Errorf("stat goal log file: %w", err)
	}
	return &goalLog{file: f, size: info.Size()}, nil
}

// rotateGoalLog moves the current goal log to its .1 generation and reopens it empty.
func (l *Logger) rotateGoalLog(goalID string, gl *goalLog) error {
	delete(l.goalFiles, goalID)
	if err := gl.file.Close(); err != nil {
		return fmt.Errorf("close goal log file: %w", err)
	}
	path := domain.GoalLogPath(l.dataDir, goalID)
	if err := os.Rename(path, path+".1"); err != nil {
		return fmt.Errorf("rotate goal log file: %w", err)
	}
	fresh, err := l.openGoalLog(goalID)
	if err != nil {
		return err
	}
	l.goalFiles[goalID] = gl
	*gl = *fresh
	return nil
}

// Close closes all open log files.
func (l *Logger) Close() error {
	l.mu.Lock()
	defer l.mu.Unlock()

	var lastErr error
	if l.globalFile != nil {
		if err := l.globalFile.Close(); err != nil {
			lastErr = err
		}
		l.globalFile = nil
	}
	for id, gl := range l.goalFiles {
		if err := gl.file.Close(); err != nil {
			lastErr = err
		}
		delete(l.goalFiles, id)
	}
	return lastErr
}

// formatLog formats a log entry in the specified format.
// Format: [2025-12-30 09:32:51] [INFO] [goal-<id>] [category] message
func formatLog(t time.Time, level slog.Level, goalID, category, msg string) string {
	levelStr := levelToString(level)
	scope := "global"
	if goalID != "" {
		scope = "goal-" + goalID
	}
	return fmt.Sprintf("[%s] [%s] [%s] [%s] %s\n",
		t.Format("2006-01-02 15:04:05"),
		levelStr,
		scope,
		category,
		msg,
	)
}

func levelToString(level slog.Level) string {
	switch level {
	case slog.LevelDebug:
		return "DEBUG"
	case slog.LevelInfo:
		return "INFO"
	case slog.LevelWarn:
		return "WARN"
	case slog.LevelError:
		return "ERROR"
	default:
		return "INFO"
	}
}

// log writes a log entry to appropriate files based on goalID.
// An empty goalID logs only to the global log.
func (l *Logger) log(level slog.Level, goalID, category, msg string) {
	if l.dataDir == "" {
		return // Logging disabled
	}

	if level < l.level {
		return // Skip if below minimum level
	}

	now := time.Now()
	entry := formatLog(now, level, goalID, category, msg)

	// Write to global log
	if gf, err := l.ensureGlobalFile(); err == nil {
		_, _ = io.WriteString(gf, entry)
	}

	if goalID != "" {
		_ = l.writeGoal(goalID, entry)
	}
}

// Info logs an info message.
func (l *Logger) Info(goalID, category, msg string) {
	l.log(slog.LevelInfo, goalID, category, msg)
}

// Debug logs a debug message.
func (l *Logger) Debug(goalID, category, msg string) {
	l.log(slog.LevelDebug, goalID, category, msg)
}

// Warn logs a warning message.
func (l *Logger) Warn(goalID, category, msg string) {
	l.log(slog.LevelWarn, goalID, category, msg)
}

// Error logs an error message.
func (l *Logger) Error(goalID, category, msg string) {
	l.log(slog.LevelError, goalID, category, msg)
}
