// Package app provides the dependency injection container for the application.
package app

import (
	"errors"
	"io"
	"log/slog"
	"os"

	"github.com/goalpilot/goalpilot/internal/domain"
	"github.com/goalpilot/goalpilot/internal/infra/config"
	"github.com/goalpilot/goalpilot/internal/infra/jsonstore"
	"github.com/goalpilot/goalpilot/internal/infra/llm"
	"github.com/goalpilot/goalpilot/internal/infra/logging"
	"github.com/goalpilot/goalpilot/internal/infra/sqlitestore"
	"github.com/goalpilot/goalpilot/internal/usecase"
	"github.com/goalpilot/goalpilot/internal/usecase/shared"
)

// Config holds the application paths.
type Config struct {
	DataDir  string // Path to the .goalpilot directory
	StoreDir string // Directory holding goals/tasks/progress
}

// Container provides dependency injection for the application.
// It holds all port implementations and provides factory methods for use cases.
type Container struct {
	// Ports (interfaces bound to implementations)
	Goals            domain.GoalRepository
	Tasks            domain.TaskRepository
	Progress         domain.ProgressRepository
	StoreInitializer domain.StoreInitializer
	Planner          domain.PlanGenerator
	Coach            domain.FeedbackGenerator
	Clock            domain.Clock
	Logger           domain.Logger
	ConfigLoader     domain.ConfigLoader
	ConfigManager    domain.ConfigManager

	// Pointer fields
	Slog      *slog.Logger
	Locks     *shared.GoalLocks
	AppConfig *domain.Config

	closers []io.Closer

	// Configuration
	Config Config
}

// New creates a new Container rooted at dataDir.
// The store backend and generator settings come from the merged configuration.
func New(dataDir string) (*Container, error) {
	configLoader := config.NewLoader(dataDir)
	appConfig, err := configLoader.Load()
	if err != nil {
		return nil, err
	}

	cfg := Config{
		DataDir:  dataDir,
		StoreDir: appConfig.StoreDir(dataDir),
	}

	c := &Container{
		Clock:         domain.RealClock{},
		ConfigLoader:  configLoader,
		ConfigManager: config.NewManager(dataDir),
		Slog:          logging.NewSlog(os.Stderr, appConfig.Log.Level),
		Locks:         shared.NewGoalLocks(),
		AppConfig:     appConfig,
		Config:        cfg,
	}

	switch appConfig.Store.Backend {
	case domain.StoreSQLite:
		store, err := sqlitestore.Open(cfg.StoreDir)
		if err != nil {
			return nil, err
		}
		c.Goals, c.Tasks, c.Progress = store.Goals(), store.Tasks(), store.Progress()
		c.StoreInitializer = store
		c.closers = append(c.closers, store)
	default:
		store := jsonstore.New(cfg.StoreDir)
		c.Goals, c.Tasks, c.Progress = store.Goals(), store.Tasks(), store.Progress()
		c.StoreInitializer = store
	}

	fileLogger := logging.New(dataDir, logging.ParseLevel(appConfig.Log.Level))
	c.Logger = fileLogger
	c.closers = append(c.closers, fileLogger)

	for _, w := range appConfig.Warnings {
		c.Slog.Warn("config", "warning", w)
	}

	client := llm.NewClient(appConfig.LLM, c.Logger)
	if client.Offline() {
		c.Slog.Debug("no API key configured, generators use fallback content")
	}
	c.Planner = llm.NewPlanner(client, appConfig.LLM.PlanTemperature)
	c.Coach = llm.NewCoach(client, c.Clock, appConfig.LLM.FeedbackTemperature, appConfig.LLM.MessageTemperature)

	return c, nil
}

// Deps are the ports injected by NewWithDeps.
type Deps struct {
	Goals    domain.GoalRepository
	Tasks    domain.TaskRepository
	Progress domain.ProgressRepository
	Store    domain.StoreInitializer
	Planner  domain.PlanGenerator
	Coach    domain.FeedbackGenerator
	Clock    domain.Clock
	Logger   domain.Logger
}

// NewWithDeps creates a new Container with custom dependencies for testing.
func NewWithDeps(cfg Config, deps Deps, logger *slog.Logger) *Container {
	return &Container{
		Goals:            deps.Goals,
		Tasks:            deps.Tasks,
		Progress:         deps.Progress,
		StoreInitializer: deps.Store,
		Planner:          deps.Planner,
		Coach:            deps.Coach,
		Clock:            deps.Clock,
		Logger:           deps.Logger,
		ConfigLoader:     config.NewLoader(cfg.DataDir),
		ConfigManager:    config.NewManager(cfg.DataDir),
		Slog:             logger,
		Locks:            shared.NewGoalLocks(),
		AppConfig:        domain.NewDefaultConfig(),
		Config:           cfg,
	}
}

// Close releases the store and log files.
func (c *Container) Close() error {
	var errs []error
	for _, cl := range c.closers {
		errs = append(errs, cl.Close())
	}
	return errors.Join(errs...)
}

// UseCase factory methods

// InitStoreUseCase returns a new InitStore use case.
func (c *Container) InitStoreUseCase() *usecase.InitStore {
	return usecase.NewInitStore(c.StoreInitializer)
}

// CreateGoalUseCase returns a new CreateGoal use case.
func (c *Container) CreateGoalUseCase() *usecase.CreateGoal {
	return usecase.NewCreateGoal(c.Goals, c.Tasks, c.Progress, c.Planner, c.Clock, c.Logger)
}

// ListGoalsUseCase returns a new ListGoals use case.
func (c *Container) ListGoalsUseCase() *usecase.ListGoals {
	return usecase.NewListGoals(c.Goals, c.Progress)
}

// ShowGoalUseCase returns a new ShowGoal use case.
func (c *Container) ShowGoalUseCase() *usecase.ShowGoal {
	return usecase.NewShowGoal(c.Goals, c.Tasks, c.Progress)
}

// ListGoalTasksUseCase returns a new ListGoalTasks use case.
func (c *Container) ListGoalTasksUseCase() *usecase.ListGoalTasks {
	return usecase.NewListGoalTasks(c.Tasks)
}

// ListProgressUseCase returns a new ListProgress use case.
func (c *Container) ListProgressUseCase() *usecase.ListProgress {
	return usecase.NewListProgress(c.Progress)
}

// CompleteTaskUseCase returns a new CompleteTask use case.
// All instances share the container's per-goal locks.
func (c *Container) CompleteTaskUseCase() *usecase.CompleteTask {
	return usecase.NewCompleteTask(c.Tasks, c.Progress, c.Clock, c.Logger, c.Locks)
}

// EvaluateProgressUseCase returns a new EvaluateProgress use case.
func (c *Container) EvaluateProgressUseCase() *usecase.EvaluateProgress {
	return usecase.NewEvaluateProgress(c.Goals, c.Tasks, c.Coach, c.Clock, c.Logger)
}

// GenerateReminderUseCase returns a new GenerateReminder use case.
func (c *Container) GenerateReminderUseCase() *usecase.GenerateReminder {
	return usecase.NewGenerateReminder(c.Goals, c.Tasks, c.Coach, c.Clock)
}

// WeeklyReportUseCase returns a new WeeklyReport use case.
func (c *Container) WeeklyReportUseCase() *usecase.WeeklyReport {
	return usecase.NewWeeklyReport(c.Goals, c.Tasks, c.Coach)
}

// InitConfigUseCase returns a new InitConfig use case.
func (c *Container) InitConfigUseCase() *usecase.InitConfig {
	return usecase.NewInitConfig(c.ConfigManager)
}

// ShowConfigUseCase returns a new ShowConfig use case.
func (c *Container) ShowConfigUseCase() *usecase.ShowConfig {
	return usecase.NewShowConfig(c.ConfigManager, c.ConfigLoader)
}
