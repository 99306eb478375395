package usecase_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/goalpilot/goalpilot/internal/domain"
	"github.com/goalpilot/goalpilot/internal/usecase"
)

func TestListGoals_Execute(t *testing.T) {
	f := newFixture()
	a := f.seedGoal(t, "Learn Go", 2)
	b := f.seedGoal(t, "Run 5k", 3)
	f.setCompleted(t, a.Tasks[0].ID, true)

	out, err := usecase.NewListGoals(f.goals, f.progress).Execute(context.Background(), usecase.ListGoalsInput{})

	require.NoError(t, err)
	require.Len(t, out.Goals, 2)
	assert.Equal(t, a.Goal.ID, out.Goals[0].ID)
	assert.Equal(t, b.Goal.ID, out.Goals[1].ID)
	require.NotNil(t, out.Goals[0].Progress)
	assert.Equal(t, 50, out.Goals[0].Progress.ProgressPercentage)
	require.NotNil(t, out.Goals[1].Progress)
	assert.Equal(t, 0, out.Goals[1].Progress.ProgressPercentage)
}

func TestListGoals_Execute_LatestIsLastInserted(t *testing.T) {
	f := newFixture()
	f.goals.Goals = []*domain.Goal{{ID: "g1", Title: "Learn Go", DurationDays: 2}}
	later := baseTime.Add(domain.Day)
	f.progress.History = []*domain.Progress{
		{ID: "p1", GoalID: "g1", ProgressPercentage: 50, Timestamp: later},
		{ID: "p2", GoalID: "g1", ProgressPercentage: 0, Timestamp: baseTime},
	}

	out, err := usecase.NewListGoals(f.goals, f.progress).Execute(context.Background(), usecase.ListGoalsInput{})

	require.NoError(t, err)
	require.Len(t, out.Goals, 1)
	assert.Equal(t, "p2", out.Goals[0].Progress.ID)
}

func TestListGoals_Execute_NoSnapshot(t *testing.T) {
	f := newFixture()
	f.goals.Goals = []*domain.Goal{{ID: "g1", Title: "Learn Go", DurationDays: 2}}

	out, err := usecase.NewListGoals(f.goals, f.progress).Execute(context.Background(), usecase.ListGoalsInput{})

	require.NoError(t, err)
	assert.Nil(t, out.Goals[0].Progress)
}

func TestListGoals_Execute_Empty(t *testing.T) {
	f := newFixture()

	out, err := usecase.NewListGoals(f.goals, f.progress).Execute(context.Background(), usecase.ListGoalsInput{})

	require.NoError(t, err)
	assert.NotNil(t, out.Goals)
	assert.Empty(t, out.Goals)
}

func TestListGoals_Execute_StorageError(t *testing.T) {
	f := newFixture()
	f.goals.ListErr = domain.ErrStorage

	_, err := usecase.NewListGoals(f.goals, f.progress).Execute(context.Background(), usecase.ListGoalsInput{})

	assert.ErrorIs(t, err, domain.ErrStorage)
}

func TestShowGoal_Execute(t *testing.T) {
	f := newFixture()
	seeded := f.seedGoal(t, "Learn Go", 3)
	f.setCompleted(t, seeded.Tasks[1].ID, true)

	out, err := usecase.NewShowGoal(f.goals, f.tasks, f.progress).Execute(context.Background(), usecase.ShowGoalInput{GoalID: seeded.Goal.ID})

	require.NoError(t, err)
	assert.Equal(t, seeded.Goal.ID, out.Goal.ID)
	assert.Equal(t, []int{1, 2, 3}, taskDays(out.Tasks))
	assert.True(t, out.Tasks[1].Completed)
	require.Len(t, out.Progress, 2)
	assert.Equal(t, 0, out.Progress[0].ProgressPercentage)
	assert.Equal(t, 33, out.Progress[1].ProgressPercentage)
}

func TestShowGoal_Execute_NotFound(t *testing.T) {
	f := newFixture()

	_, err := usecase.NewShowGoal(f.goals, f.tasks, f.progress).Execute(context.Background(), usecase.ShowGoalInput{GoalID: "missing"})

	assert.ErrorIs(t, err, domain.ErrGoalNotFound)
}

func TestShowGoal_Execute_DeletedGoalLeavesOrphans(t *testing.T) {
	f := newFixture()
	seeded := f.seedGoal(t, "Learn Go", 2)
	require.NoError(t, f.goals.Delete(seeded.Goal.ID))

	_, err := usecase.NewShowGoal(f.goals, f.tasks, f.progress).Execute(context.Background(), usecase.ShowGoalInput{GoalID: seeded.Goal.ID})
	assert.ErrorIs(t, err, domain.ErrGoalNotFound)

	tasks, err := usecase.NewListGoalTasks(f.tasks).Execute(context.Background(), usecase.ListGoalTasksInput{GoalID: seeded.Goal.ID})
	require.NoError(t, err)
	assert.Len(t, tasks.Tasks, 2)
}

func TestListGoalTasks_Execute(t *testing.T) {
	f := newFixture()
	a := f.seedGoal(t, "Learn Go", 2)
	f.seedGoal(t, "Run 5k", 3)

	out, err := usecase.NewListGoalTasks(f.tasks).Execute(context.Background(), usecase.ListGoalTasksInput{GoalID: a.Goal.ID})

	require.NoError(t, err)
	require.Len(t, out.Tasks, 2)
	for _, task := range out.Tasks {
		assert.Equal(t, a.Goal.ID, task.GoalID)
	}
}

func TestListGoalTasks_Execute_UnknownGoalIsEmpty(t *testing.T) {
	f := newFixture()

	out, err := usecase.NewListGoalTasks(f.tasks).Execute(context.Background(), usecase.ListGoalTasksInput{GoalID: "missing"})

	require.NoError(t, err)
	assert.NotNil(t, out.Tasks)
	assert.Empty(t, out.Tasks)
}

func TestListProgress_Execute(t *testing.T) {
	f := newFixture()
	seeded := f.seedGoal(t, "Learn Go", 2)
	f.setCompleted(t, seeded.Tasks[0].ID, true)
	f.setCompleted(t, seeded.Tasks[1].ID, true)

	out, err := usecase.NewListProgress(f.progress).Execute(context.Background(), usecase.ListProgressInput{GoalID: seeded.Goal.ID})

	require.NoError(t, err)
	require.Len(t, out.Progress, 3)
	assert.Equal(t, []int{0, 50, 100}, []int{
		out.Progress[0].ProgressPercentage,
		out.Progress[1].ProgressPercentage,
		out.Progress[2].ProgressPercentage,
	})
}

func TestListProgress_Execute_UnknownGoalIsEmpty(t *testing.T) {
	f := newFixture()

	out, err := usecase.NewListProgress(f.progress).Execute(context.Background(), usecase.ListProgressInput{GoalID: "missing"})

	require.NoError(t, err)
	assert.NotNil(t, out.Progress)
	assert.Empty(t, out.Progress)
}
