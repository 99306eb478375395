package domain

import (
	"context"
	"time"
)

// StoreInitializer initializes the data store.
type StoreInitializer interface {
	// Initialize creates the store if it doesn't exist.
	Initialize() error
}

// GoalRepository owns goal records.
type GoalRepository interface {
	// Save creates or replaces a goal by ID.
	Save(goal *Goal) error

	// Get retrieves a goal by ID. Returns nil if not found.
	Get(id string) (*Goal, error)

	// List returns all goals in insertion order.
	List() ([]*Goal, error)

	// Delete removes a goal by ID. Tasks and progress are left in place.
	Delete(id string) error
}

// TaskRepository owns task records keyed by goal.
type TaskRepository interface {
	// ReplaceForGoal discards every task of goalID and stores tasks in its place.
	ReplaceForGoal(goalID string, tasks []*Task) error

	// List returns all tasks in insertion order.
	List() ([]*Task, error)

	// ListByGoal returns the tasks of goalID in insertion order.
	ListByGoal(goalID string) ([]*Task, error)

	// Get retrieves a task by ID. Returns nil if not found.
	Get(id string) (*Task, error)

	// SetCompleted updates the completed flag and stamps UpdatedAt.
	// Returns nil if the task does not exist.
	SetCompleted(id string, completed bool, at time.Time) (*Task, error)
}

// ProgressRepository is the per-goal progress log.
type ProgressRepository interface {
	// Save appends the snapshot, or replaces an existing one with the same ID.
	Save(progress *Progress) error

	// List returns all snapshots in insertion order.
	List() ([]*Progress, error)

	// ListByGoal returns the snapshots of goalID in insertion order.
	ListByGoal(goalID string) ([]*Progress, error)
}

// PlanGenerator decomposes a goal into a day-by-day plan.
// Malformed upstream output is absorbed into a fallback plan; only a failure
// to invoke the generator at all is returned as an error.
type PlanGenerator interface {
	GeneratePlan(ctx context.Context, goalText string, durationDays int) (*Plan, error)
}

// FeedbackGenerator produces coaching text. Implementations never fail:
// any upstream problem yields deterministic fallback content.
type FeedbackGenerator interface {
	GenerateFeedback(ctx context.Context, e Evaluation) Feedback
	GenerateReminder(ctx context.Context, goal *Goal, lastActivity time.Time) string
	GenerateWeeklyReport(ctx context.Context, s WeekSummary) string
}

// Log categories used with Logger.
const (
	LogCategoryGoal  = "goal"
	LogCategoryTask  = "task"
	LogCategoryCoach = "coach"
	LogCategoryLLM   = "llm"
)

// Logger records operational events, optionally scoped to a goal.
// An empty goalID logs to the global log only.
type Logger interface {
	Info(goalID, category, msg string)
	Debug(goalID, category, msg string)
	Warn(goalID, category, msg string)
	Error(goalID, category, msg string)
}

// ConfigLoader loads configuration from files.
type ConfigLoader interface {
	// Load returns the merged configuration (local + global + defaults).
	Load() (*Config, error)

	// LoadGlobal returns only the global configuration.
	LoadGlobal() (*Config, error)
}

// ConfigManager inspects and creates configuration files.
type ConfigManager interface {
	// GetLocalConfigInfo returns the data-dir config file.
	GetLocalConfigInfo() ConfigInfo

	// GetGlobalConfigInfo returns the global config file.
	GetGlobalConfigInfo() ConfigInfo

	// InitLocalConfig writes a commented config template into the data dir.
	InitLocalConfig(cfg *Config) error

	// InitGlobalConfig writes a commented config template into the global config dir.
	InitGlobalConfig(cfg *Config) error
}

// Clock provides time operations for testability.
type Clock interface {
	// Now returns the current time.
	Now() time.Time
}

// RealClock implements Clock using the system clock.
type RealClock struct{}

// Now returns the current time.
func (RealClock) Now() time.Time {
	return time.Now()
}
