package sqlitestore

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/goalpilot/goalpilot/internal/domain"
)

func newTestStore(t *testing.T) *Store {
	t.Helper()
	store, err := Open(t.TempDir())
	require.NoError(t, err)
	t.Cleanup(func() { _ = store.Close() })
	return store
}

func TestGoals_RoundTrip(t *testing.T) {
	store := newTestStore(t)
	created := time.Date(2025, 1, 1, 9, 30, 0, 0, time.UTC)

	goal := &domain.Goal{
		ID:           "g1",
		Title:        "Learn Go",
		DurationDays: 3,
		Status:       domain.StatusActive,
		CreatedAt:    created,
		Plan: &domain.Plan{
			Milestones: []string{"basics"},
			DailyTasks: []domain.DailyTask{{Day: 1, Title: "Setup", Description: "Install"}},
		},
	}
	require.NoError(t, store.Goals().Save(goal))

	got, err := store.Goals().Get("g1")
	require.NoError(t, err)
	require.NotNil(t, got)
	assert.Equal(t, "Learn Go", got.Title)
	assert.Equal(t, 3, got.DurationDays)
	assert.Equal(t, domain.StatusActive, got.Status)
	assert.True(t, created.Equal(got.CreatedAt))
	require.NotNil(t, got.Plan)
	assert.Equal(t, goal.Plan.DailyTasks, got.Plan.DailyTasks)

	missing, err := store.Goals().Get("nope")
	require.NoError(t, err)
	assert.Nil(t, missing)
}

func TestGoals_ListKeepsInsertionOrderAcrossUpdates(t *testing.T) {
	store := newTestStore(t)
	now := time.Now()

	for _, id := range []string{"b", "a", "c"} {
		require.NoError(t, store.Goals().Save(&domain.Goal{ID: id, Title: id, DurationDays: 1, CreatedAt: now}))
	}
	require.NoError(t, store.Goals().Save(&domain.Goal{ID: "b", Title: "updated", DurationDays: 1, CreatedAt: now}))

	goals, err := store.Goals().List()
	require.NoError(t, err)
	require.Len(t, goals, 3)
	assert.Equal(t, []string{"b", "a", "c"}, []string{goals[0].ID, goals[1].ID, goals[2].ID})
	assert.Equal(t, "updated", goals[0].Title)
}

func TestGoals_NilPlan(t *testing.T) {
	store := newTestStore(t)
	require.NoError(t, store.Goals().Save(&domain.Goal{ID: "g1", Title: "x", DurationDays: 1, CreatedAt: time.Now()}))

	got, err := store.Goals().Get("g1")
	require.NoError(t, err)
	assert.Nil(t, got.Plan)
}

func TestTasks_ReplaceAndComplete(t *testing.T) {
	store := newTestStore(t)
	now := time.Date(2025, 1, 1, 0, 0, 0, 0, time.UTC)
	tasks := store.Tasks()

	require.NoError(t, tasks.ReplaceForGoal("g1", domain.MaterializeTasks("g1", []domain.DailyTask{
		{Day: 1, Title: "one"}, {Day: 2, Title: "two"},
	}, now)))
	require.NoError(t, tasks.ReplaceForGoal("g2", domain.MaterializeTasks("g2", []domain.DailyTask{
		{Day: 1, Title: "other"},
	}, now)))

	g1, err := tasks.ListByGoal("g1")
	require.NoError(t, err)
	require.Len(t, g1, 2)
	assert.Equal(t, "one", g1[0].Title)
	assert.Nil(t, g1[0].UpdatedAt)

	at := now.Add(time.Hour)
	updated, err := tasks.SetCompleted(g1[1].ID, true, at)
	require.NoError(t, err)
	require.NotNil(t, updated)
	assert.True(t, updated.Completed)
	require.NotNil(t, updated.UpdatedAt)
	assert.True(t, at.Equal(*updated.UpdatedAt))

	missing, err := tasks.SetCompleted("nope", true, at)
	require.NoError(t, err)
	assert.Nil(t, missing)

	require.NoError(t, tasks.ReplaceForGoal("g1", nil))
	g1, err = tasks.ListByGoal("g1")
	require.NoError(t, err)
	assert.Empty(t, g1)

	all, err := tasks.List()
	require.NoError(t, err)
	assert.Len(t, all, 1)
}

func TestProgress_AppendOrReplace(t *testing.T) {
	store := newTestStore(t)
	t0 := time.Date(2025, 1, 1, 0, 0, 0, 0, time.UTC)
	progress := store.Progress()

	first := domain.NewProgress("g1", 0, 2, t0)
	second := domain.RecomputeProgress("g1", []*domain.Task{{Completed: true}, {}}, t0.Add(time.Second))
	require.NoError(t, progress.Save(first))
	require.NoError(t, progress.Save(second))

	replaced := *first
	replaced.CompletedTasks = 2
	replaced.ProgressPercentage = 100
	require.NoError(t, progress.Save(&replaced))

	history, err := progress.ListByGoal("g1")
	require.NoError(t, err)
	require.Len(t, history, 2)
	assert.Equal(t, 100, history[0].ProgressPercentage)
	assert.Nil(t, history[0].UpdatedAt)
	assert.Equal(t, second.ID, domain.LatestProgress(history).ID)
	require.NotNil(t, history[1].UpdatedAt)

	empty, err := progress.ListByGoal("other")
	require.NoError(t, err)
	assert.NotNil(t, empty)
	assert.Empty(t, empty)
}

func TestStore_ReopenKeepsData(t *testing.T) {
	dir := t.TempDir()
	store, err := Open(dir)
	require.NoError(t, err)
	require.NoError(t, store.Goals().Save(&domain.Goal{ID: "g1", Title: "x", DurationDays: 1, CreatedAt: time.Now()}))
	require.NoError(t, store.Close())

	reopened, err := Open(dir)
	require.NoError(t, err)
	defer reopened.Close()

	goals, err := reopened.Goals().List()
	require.NoError(t, err)
	assert.Len(t, goals, 1)
}
