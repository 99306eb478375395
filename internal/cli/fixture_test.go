package cli

import (
	"bytes"
	"context"
	"io"
	"log/slog"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/goalpilot/goalpilot/internal/app"
	"github.com/goalpilot/goalpilot/internal/infra/llm"
	"github.com/goalpilot/goalpilot/internal/testutil"
)

type cliFixture struct {
	goals     *testutil.MockGoalRepository
	tasks     *testutil.MockTaskRepository
	progress  *testutil.MockProgressRepository
	planner   *testutil.MockPlanGenerator
	coach     *testutil.MockFeedbackGenerator
	clock     *testutil.MockClock
	container *app.Container
	dataDir   string
}

func newCLIFixture(t *testing.T) *cliFixture {
	t.Helper()
	t.Setenv("XDG_CONFIG_HOME", t.TempDir())
	f := &cliFixture{
		goals:    testutil.NewMockGoalRepository(),
		tasks:    testutil.NewMockTaskRepository(),
		progress: testutil.NewMockProgressRepository(),
		planner:  &testutil.MockPlanGenerator{Plan: llm.FallbackPlan(4)},
		coach:    &testutil.MockFeedbackGenerator{},
		clock:    &testutil.MockClock{NowTime: time.Date(2025, 3, 1, 9, 0, 0, 0, time.UTC), Step: time.Millisecond},
		dataDir:  filepath.Join(t.TempDir(), ".goalpilot"),
	}
	f.container = app.NewWithDeps(app.Config{DataDir: f.dataDir, StoreDir: f.dataDir}, app.Deps{
		Goals:    f.goals,
		Tasks:    f.tasks,
		Progress: f.progress,
		Store:    &testutil.MockStoreInitializer{},
		Planner:  f.planner,
		Coach:    f.coach,
		Clock:    f.clock,
		Logger:   &testutil.MockLogger{},
	}, slog.New(slog.NewTextHandler(io.Discard, nil)))
	return f
}

// run executes the root command with args and returns stdout and stderr.
func (f *cliFixture) run(args ...string) (string, string, error) {
	return f.runContext(context.Background(), args...)
}

func (f *cliFixture) runContext(ctx context.Context, args ...string) (string, string, error) {
	root := NewRootCommand(f.container, "test")
	var stdout, stderr bytes.Buffer
	root.SetOut(&stdout)
	root.SetErr(&stderr)
	root.SetArgs(args)
	err := root.ExecuteContext(ctx)
	return stdout.String(), stderr.String(), err
}

// seedGoal creates a four-day goal through the CLI and returns its id.
func (f *cliFixture) seedGoal(t *testing.T) string {
	t.Helper()
	_, _, err := f.run("goal", "new", "--title", "Learn Go", "--days", "4")
	require.NoError(t, err)
	require.Len(t, f.goals.Goals, 1)
	return f.goals.Goals[0].ID
}
