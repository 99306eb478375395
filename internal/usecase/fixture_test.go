package usecase_test

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/goalpilot/goalpilot/internal/domain"
	"github.com/goalpilot/goalpilot/internal/infra/llm"
	"github.com/goalpilot/goalpilot/internal/testutil"
	"github.com/goalpilot/goalpilot/internal/usecase"
	"github.com/goalpilot/goalpilot/internal/usecase/shared"
)

var baseTime = time.Date(2025, 3, 1, 9, 0, 0, 0, time.UTC)

// fixture wires every use case to shared in-memory repositories.
type fixture struct {
	goals    *testutil.MockGoalRepository
	tasks    *testutil.MockTaskRepository
	progress *testutil.MockProgressRepository
	planner  *testutil.MockPlanGenerator
	coach    *testutil.MockFeedbackGenerator
	clock    *testutil.MockClock
	logger   *testutil.MockLogger
	locks    *shared.GoalLocks
}

func newFixture() *fixture {
	return &fixture{
		goals:    testutil.NewMockGoalRepository(),
		tasks:    testutil.NewMockTaskRepository(),
		progress: testutil.NewMockProgressRepository(),
		planner:  &testutil.MockPlanGenerator{},
		coach:    &testutil.MockFeedbackGenerator{},
		clock:    &testutil.MockClock{NowTime: baseTime},
		logger:   &testutil.MockLogger{},
		locks:    shared.NewGoalLocks(),
	}
}

func (f *fixture) createGoal() *usecase.CreateGoal {
	return usecase.NewCreateGoal(f.goals, f.tasks, f.progress, f.planner, f.clock, f.logger)
}

func (f *fixture) completeTask() *usecase.CompleteTask {
	return usecase.NewCompleteTask(f.tasks, f.progress, f.clock, f.logger, f.locks)
}

// seedGoal creates a goal through CreateGoal using the deterministic fallback plan.
func (f *fixture) seedGoal(t *testing.T, title string, days int) *usecase.CreateGoalOutput {
	t.Helper()
	f.planner.Plan = llm.FallbackPlan(days)
	out, err := f.createGoal().Execute(context.Background(), usecase.CreateGoalInput{
		Title:        title,
		DurationDays: days,
	})
	require.NoError(t, err)
	return out
}

func (f *fixture) setCompleted(t *testing.T, taskID string, completed bool) *usecase.CompleteTaskOutput {
	t.Helper()
	out, err := f.completeTask().Execute(context.Background(), usecase.CompleteTaskInput{
		TaskID:    taskID,
		Completed: completed,
	})
	require.NoError(t, err)
	return out
}

func taskDays(tasks []*domain.Task) []int {
	days := make([]int, 0, len(tasks))
	for _, task := range tasks {
		days = append(days, task.Day)
	}
	return days
}
