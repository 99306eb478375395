package usecase_test

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/goalpilot/goalpilot/internal/domain"
	"github.com/goalpilot/goalpilot/internal/infra/llm"
	"github.com/goalpilot/goalpilot/internal/usecase"
)

func TestCreateGoal_Execute_PersistsGoalTasksAndProgress(t *testing.T) {
	f := newFixture()

	out := f.seedGoal(t, "  Learn Go  ", 7)

	// Goal
	assert.NotEmpty(t, out.Goal.ID)
	assert.Equal(t, "Learn Go", out.Goal.Title)
	assert.Equal(t, 7, out.Goal.DurationDays)
	assert.Equal(t, domain.StatusActive, out.Goal.Status)
	assert.Equal(t, baseTime, out.Goal.CreatedAt)
	assert.Equal(t, "Learn Go", f.planner.LastGoalText)
	assert.Equal(t, 7, f.planner.LastDays)

	stored, err := f.goals.Get(out.Goal.ID)
	require.NoError(t, err)
	require.NotNil(t, stored)
	assert.Equal(t, llm.FallbackPlan(7), stored.Plan)

	// Tasks
	assert.Equal(t, []int{1, 2, 3, 4, 5, 6, 7}, taskDays(out.Tasks))
	tasks, err := f.tasks.ListByGoal(out.Goal.ID)
	require.NoError(t, err)
	assert.Len(t, tasks, 7)
	for _, task := range tasks {
		assert.False(t, task.Completed)
		assert.Nil(t, task.UpdatedAt)
	}

	// Progress
	require.NotNil(t, out.Progress)
	assert.Equal(t, 0, out.Progress.CompletedTasks)
	assert.Equal(t, 7, out.Progress.TotalTasks)
	assert.Equal(t, 0, out.Progress.ProgressPercentage)
	assert.Len(t, f.progress.History, 1)
	assert.Equal(t, 1, f.logger.Count("INFO"))
}

func TestCreateGoal_Execute_FallbackPhases(t *testing.T) {
	f := newFixture()
	planner := llm.NewPlanner(llm.NewClient(domain.LLMConfig{}, f.logger), 0.7)
	uc := usecase.NewCreateGoal(f.goals, f.tasks, f.progress, planner, f.clock, f.logger)

	out, err := uc.Execute(context.Background(), usecase.CreateGoalInput{Title: "Learn X", DurationDays: 3})

	require.NoError(t, err)
	require.Len(t, out.Tasks, 3)
	assert.Contains(t, out.Tasks[0].Title, llm.PhaseFoundation)
	assert.Contains(t, out.Tasks[1].Title, llm.PhasePractice)
	assert.Contains(t, out.Tasks[2].Title, llm.PhaseMastery)
}

func TestCreateGoal_Execute_NilPlanYieldsNoTasks(t *testing.T) {
	f := newFixture()

	out, err := f.createGoal().Execute(context.Background(), usecase.CreateGoalInput{Title: "Learn X", DurationDays: 3})

	require.NoError(t, err)
	assert.Empty(t, out.Tasks)
	assert.Equal(t, 0, out.Progress.TotalTasks)
	assert.Equal(t, 0, out.Progress.ProgressPercentage)
}

func TestCreateGoal_Execute_ValidationErrors(t *testing.T) {
	tests := []struct {
		name  string
		title string
		days  int
	}{
		{"empty title", "", 3},
		{"blank title", "   ", 3},
		{"zero days", "Learn X", 0},
		{"negative days", "Learn X", -2},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			f := newFixture()

			_, err := f.createGoal().Execute(context.Background(), usecase.CreateGoalInput{Title: tt.title, DurationDays: tt.days})

			assert.ErrorIs(t, err, domain.ErrValidation)
			assert.ErrorIs(t, err, domain.ErrMissingGoalFields)
			assert.Equal(t, 0, f.planner.Calls, "generator must not be called")
			assert.Empty(t, f.goals.Goals)
		})
	}
}

func TestCreateGoal_Execute_UpstreamFailure(t *testing.T) {
	f := newFixture()
	f.planner.Err = errors.Join(domain.ErrUpstreamGeneration, assert.AnError)

	_, err := f.createGoal().Execute(context.Background(), usecase.CreateGoalInput{Title: "Learn X", DurationDays: 3})

	assert.ErrorIs(t, err, domain.ErrUpstreamGeneration)
	assert.Empty(t, f.goals.Goals)
	assert.Empty(t, f.tasks.Tasks)
	assert.Empty(t, f.progress.History)
}

func TestCreateGoal_Execute_StorageFailures(t *testing.T) {
	t.Run("goal save", func(t *testing.T) {
		f := newFixture()
		f.planner.Plan = llm.FallbackPlan(2)
		f.goals.SaveErr = domain.ErrStorage

		_, err := f.createGoal().Execute(context.Background(), usecase.CreateGoalInput{Title: "Learn X", DurationDays: 2})

		assert.ErrorIs(t, err, domain.ErrStorage)
		assert.Empty(t, f.tasks.Tasks)
	})

	t.Run("task save", func(t *testing.T) {
		f := newFixture()
		f.planner.Plan = llm.FallbackPlan(2)
		f.tasks.ReplaceErr = domain.ErrStorage

		_, err := f.createGoal().Execute(context.Background(), usecase.CreateGoalInput{Title: "Learn X", DurationDays: 2})

		assert.ErrorIs(t, err, domain.ErrStorage)
		assert.Len(t, f.goals.Goals, 1, "goal is kept; steps are not transactional")
		assert.Empty(t, f.progress.History)
	})

	t.Run("progress save", func(t *testing.T) {
		f := newFixture()
		f.planner.Plan = llm.FallbackPlan(2)
		f.progress.SaveErr = domain.ErrStorage

		_, err := f.createGoal().Execute(context.Background(), usecase.CreateGoalInput{Title: "Learn X", DurationDays: 2})

		assert.ErrorIs(t, err, domain.ErrStorage)
		assert.Len(t, f.tasks.Tasks, 2)
	})
}

func TestCreateGoal_Execute_OutOfRangeDaysKept(t *testing.T) {
	f := newFixture()
	f.planner.Plan = &domain.Plan{DailyTasks: []domain.DailyTask{
		{Day: 1, Title: "a"},
		{Day: 9, Title: "b"},
	}}

	out, err := f.createGoal().Execute(context.Background(), usecase.CreateGoalInput{Title: "Learn X", DurationDays: 2})

	require.NoError(t, err)
	assert.Equal(t, []int{1, 9}, taskDays(out.Tasks))
}
