// Package testutil provides shared test utilities and mock implementations.
package testutil

import (
	"context"
	"slices"
	"sync"
	"time"

	"github.com/goalpilot/goalpilot/internal/domain"
)

// MockClock is a test double for domain.Clock.
// When Step is set, every call to Now advances the clock by Step afterwards.
type MockClock struct {
	NowTime time.Time
	Step    time.Duration
	mu      sync.Mutex
}

// Now returns the configured time.
func (m *MockClock) Now() time.Time {
	m.mu.Lock()
	defer m.mu.Unlock()
	now := m.NowTime
	m.NowTime = m.NowTime.Add(m.Step)
	return now
}

// Advance moves the clock forward by d.
func (m *MockClock) Advance(d time.Duration) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.NowTime = m.NowTime.Add(d)
}

// MockGoalRepository is a test double for domain.GoalRepository.
type MockGoalRepository struct {
	SaveErr error
	GetErr  error
	ListErr error
	Goals   []*domain.Goal
	mu      sync.Mutex
}

// NewMockGoalRepository creates an empty MockGoalRepository.
func NewMockGoalRepository() *MockGoalRepository {
	return &MockGoalRepository{}
}

// Save creates or replaces a goal.
func (m *MockGoalRepository) Save(goal *domain.Goal) error {
	if m.SaveErr != nil {
		return m.SaveErr
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	cp := *goal
	if i := slices.IndexFunc(m.Goals, func(g *domain.Goal) bool { return g.ID == goal.ID }); i >= 0 {
		m.Goals[i] = &cp
		return nil
	}
	m.Goals = append(m.Goals, &cp)
	return nil
}

// Get retrieves a goal by ID.
func (m *MockGoalRepository) Get(id string) (*domain.Goal, error) {
	if m.GetErr != nil {
		return nil, m.GetErr
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	for _, g := range m.Goals {
		if g.ID == id {
			cp := *g
			return &cp, nil
		}
	}
	return nil, nil
}

// List returns all goals in insertion order.
func (m *MockGoalRepository) List() ([]*domain.Goal, error) {
	if m.ListErr != nil {
		return nil, m.ListErr
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	out := make([]*domain.Goal, 0, len(m.Goals))
	for _, g := range m.Goals {
		cp := *g
		out = append(out, &cp)
	}
	return out, nil
}

// Delete removes a goal by ID.
func (m *MockGoalRepository) Delete(id string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.Goals = slices.DeleteFunc(m.Goals, func(g *domain.Goal) bool { return g.ID == id })
	return nil
}

// MockTaskRepository is a test double for domain.TaskRepository.
type MockTaskRepository struct {
	ReplaceErr error
	GetErr     error
	ListErr    error
	UpdateErr  error
	Tasks      []*domain.Task
	mu         sync.Mutex
}

// NewMockTaskRepository creates an empty MockTaskRepository.
func NewMockTaskRepository() *MockTaskRepository {
	return &MockTaskRepository{}
}

// ReplaceForGoal discards the tasks of goalID and appends tasks.
func (m *MockTaskRepository) ReplaceForGoal(goalID string, tasks []*domain.Task) error {
	if m.ReplaceErr != nil {
		return m.ReplaceErr
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	m.Tasks = slices.DeleteFunc(m.Tasks, func(t *domain.Task) bool { return t.GoalID == goalID })
	for _, t := range tasks {
		cp := *t
		m.Tasks = append(m.Tasks, &cp)
	}
	return nil
}

// List returns all tasks.
func (m *MockTaskRepository) List() ([]*domain.Task, error) {
	return m.filter(func(*domain.Task) bool { return true })
}

// ListByGoal returns the tasks of goalID.
func (m *MockTaskRepository) ListByGoal(goalID string) ([]*domain.Task, error) {
	return m.filter(func(t *domain.Task) bool { return t.GoalID == goalID })
}

func (m *MockTaskRepository) filter(keep func(*domain.Task) bool) ([]*domain.Task, error) {
	if m.ListErr != nil {
		return nil, m.ListErr
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	out := []*domain.Task{}
	for _, t := range m.Tasks {
		if keep(t) {
			cp := *t
			out = append(out, &cp)
		}
	}
	return out, nil
}

// Get retrieves a task by ID.
func (m *MockTaskRepository) Get(id string) (*domain.Task, error) {
	if m.GetErr != nil {
		return nil, m.GetErr
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	for _, t := range m.Tasks {
		if t.ID == id {
			cp := *t
			return &cp, nil
		}
	}
	return nil, nil
}

// SetCompleted updates the completed flag of a task.
func (m *MockTaskRepository) SetCompleted(id string, completed bool, at time.Time) (*domain.Task, error) {
	if m.UpdateErr != nil {
		return nil, m.UpdateErr
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	for _, t := range m.Tasks {
		if t.ID == id {
			t.Completed = completed
			t.UpdatedAt = &at
			cp := *t
			return &cp, nil
		}
	}
	return nil, nil
}

// MockProgressRepository is a test double for domain.ProgressRepository.
type MockProgressRepository struct {
	SaveErr error
	ListErr error
	History []*domain.Progress
	mu      sync.Mutex
}

// NewMockProgressRepository creates an empty MockProgressRepository.
func NewMockProgressRepository() *MockProgressRepository {
	return &MockProgressRepository{}
}

// Save appends a snapshot or replaces one with the same ID.
func (m *MockProgressRepository) Save(p *domain.Progress) error {
	if m.SaveErr != nil {
		return m.SaveErr
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	cp := *p
	if i := slices.IndexFunc(m.History, func(h *domain.Progress) bool { return h.ID == p.ID }); i >= 0 {
		m.History[i] = &cp
		return nil
	}
	m.History = append(m.History, &cp)
	return nil
}

// List returns all snapshots.
func (m *MockProgressRepository) List() ([]*domain.Progress, error) {
	return m.ListByGoal("")
}

// ListByGoal returns the snapshots of goalID. An empty goalID returns all.
func (m *MockProgressRepository) ListByGoal(goalID string) ([]*domain.Progress, error) {
	if m.ListErr != nil {
		return nil, m.ListErr
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	out := []*domain.Progress{}
	for _, p := range m.History {
		if goalID == "" || p.GoalID == goalID {
			cp := *p
			out = append(out, &cp)
		}
	}
	return out, nil
}

// MockStoreInitializer is a test double for domain.StoreInitializer.
type MockStoreInitializer struct {
	InitErr     error
	Initialized bool
}

// Initialize records the call.
func (m *MockStoreInitializer) Initialize() error {
	if m.InitErr != nil {
		return m.InitErr
	}
	m.Initialized = true
	return nil
}

// MockPlanGenerator is a test double for domain.PlanGenerator.
type MockPlanGenerator struct {
	Plan         *domain.Plan
	Err          error
	LastGoalText string
	LastDays     int
	Calls        int
}

// GeneratePlan returns the configured plan or error.
func (m *MockPlanGenerator) GeneratePlan(_ context.Context, goalText string, durationDays int) (*domain.Plan, error) {
	m.Calls++
	m.LastGoalText = goalText
	m.LastDays = durationDays
	if m.Err != nil {
		return nil, m.Err
	}
	return m.Plan, nil
}

// MockFeedbackGenerator is a test double for domain.FeedbackGenerator.
type MockFeedbackGenerator struct {
	LastActivity   time.Time
	LastEvaluation *domain.Evaluation
	LastSummary    *domain.WeekSummary
	Feedback       domain.Feedback
	Reminder       string
	Report         string
}

// GenerateFeedback records e and returns the configured feedback.
func (m *MockFeedbackGenerator) GenerateFeedback(_ context.Context, e domain.Evaluation) domain.Feedback {
	m.LastEvaluation = &e
	return m.Feedback
}

// GenerateReminder records lastActivity and returns the configured reminder.
func (m *MockFeedbackGenerator) GenerateReminder(_ context.Context, _ *domain.Goal, lastActivity time.Time) string {
	m.LastActivity = lastActivity
	return m.Reminder
}

// GenerateWeeklyReport records s and returns the configured report.
func (m *MockFeedbackGenerator) GenerateWeeklyReport(_ context.Context, s domain.WeekSummary) string {
	m.LastSummary = &s
	return m.Report
}

// LogEntry is one call recorded by MockLogger.
type LogEntry struct {
	Level    string
	GoalID   string
	Category string
	Msg      string
}

// MockLogger is a test double for domain.Logger that records every call.
type MockLogger struct {
	Entries []LogEntry
	mu      sync.Mutex
}

func (m *MockLogger) record(level, goalID, category, msg string) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.Entries = append(m.Entries, LogEntry{Level: level, GoalID: goalID, Category: category, Msg: msg})
}

// Info records an info entry.
func (m *MockLogger) Info(goalID, category, msg string) { m.record("INFO", goalID, category, msg) }

// Debug records a debug entry.
func (m *MockLogger) Debug(goalID, category, msg string) { m.record("DEBUG", goalID, category, msg) }

// Warn records a warn entry.
func (m *MockLogger) Warn(goalID, category, msg string) { m.record("WARN", goalID, category, msg) }

// Error records an error entry.
func (m *MockLogger) Error(goalID, category, msg string) { m.record("ERROR", goalID, category, msg) }

// Count returns the number of entries at level.
func (m *MockLogger) Count(level string) int {
	m.mu.Lock()
	defer m.mu.Unlock()
	n := 0
	for _, e := range m.Entries {
		if e.Level == level {
			n++
		}
	}
	return n
}

// MockConfigManager is a test double for domain.ConfigManager.
type MockConfigManager struct {
	InitErr          error
	LocalConfigInfo  domain.ConfigInfo
	GlobalConfigInfo domain.ConfigInfo
	InitLocalCalled  bool
	InitGlobalCalled bool
}

// NewMockConfigManager creates a MockConfigManager with no config files.
func NewMockConfigManager() *MockConfigManager {
	return &MockConfigManager{}
}

// GetLocalConfigInfo returns the configured local info.
func (m *MockConfigManager) GetLocalConfigInfo() domain.ConfigInfo {
	return m.LocalConfigInfo
}

// GetGlobalConfigInfo returns the configured global info.
func (m *MockConfigManager) GetGlobalConfigInfo() domain.ConfigInfo {
	return m.GlobalConfigInfo
}

// InitLocalConfig records the call and fails when the file already exists.
func (m *MockConfigManager) InitLocalConfig(_ *domain.Config) error {
	m.InitLocalCalled = true
	if m.InitErr != nil {
		return m.InitErr
	}
	if m.LocalConfigInfo.Exists {
		return domain.ErrConfigExists
	}
	return nil
}

// InitGlobalConfig records the call and fails when the file already exists.
func (m *MockConfigManager) InitGlobalConfig(_ *domain.Config) error {
	m.InitGlobalCalled = true
	if m.InitErr != nil {
		return m.InitErr
	}
	if m.GlobalConfigInfo.Exists {
		return domain.ErrConfigExists
	}
	return nil
}

// MockConfigLoader is a test double for domain.ConfigLoader.
type MockConfigLoader struct {
	Config       *domain.Config
	GlobalConfig *domain.Config
	LoadErr      error
}

// NewMockConfigLoader creates a MockConfigLoader returning the default config.
func NewMockConfigLoader() *MockConfigLoader {
	return &MockConfigLoader{Config: domain.NewDefaultConfig()}
}

// Load returns the configured config or error.
func (m *MockConfigLoader) Load() (*domain.Config, error) {
	if m.LoadErr != nil {
		return nil, m.LoadErr
	}
	return m.Config, nil
}

// LoadGlobal returns the configured global config or error.
func (m *MockConfigLoader) LoadGlobal() (*domain.Config, error) {
	if m.LoadErr != nil {
		return nil, m.LoadErr
	}
	return m.GlobalConfig, nil
}

var (
	_ domain.ConfigManager      = (*MockConfigManager)(nil)
	_ domain.ConfigLoader       = (*MockConfigLoader)(nil)
	_ domain.Clock              = (*MockClock)(nil)
	_ domain.GoalRepository     = (*MockGoalRepository)(nil)
	_ domain.TaskRepository     = (*MockTaskRepository)(nil)
	_ domain.ProgressRepository = (*MockProgressRepository)(nil)
	_ domain.StoreInitializer   = (*MockStoreInitializer)(nil)
	_ domain.PlanGenerator      = (*MockPlanGenerator)(nil)
	_ domain.FeedbackGenerator  = (*MockFeedbackGenerator)(nil)
	_ domain.Logger             = (*MockLogger)(nil)
)
