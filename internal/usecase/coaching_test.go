package usecase_test

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/goalpilot/goalpilot/internal/domain"
	"github.com/goalpilot/goalpilot/internal/usecase"
)

func (f *fixture) evaluate() *usecase.EvaluateProgress {
	return usecase.NewEvaluateProgress(f.goals, f.tasks, f.coach, f.clock, f.logger)
}

func TestEvaluateProgress_Execute(t *testing.T) {
	f := newFixture()
	seeded := f.seedGoal(t, "Learn Go", 10)
	f.setCompleted(t, seeded.Tasks[0].ID, true)
	f.setCompleted(t, seeded.Tasks[1].ID, true)
	f.coach.Feedback = domain.Feedback{Analysis: "a", Encouragement: "e", NextAction: "n", Tip: "t"}
	f.clock.NowTime = baseTime.Add(2*domain.Day + time.Hour)

	out, err := f.evaluate().Execute(context.Background(), usecase.EvaluateProgressInput{GoalID: seeded.Goal.ID})

	require.NoError(t, err)
	assert.Equal(t, f.coach.Feedback, out.Feedback)
	assert.Equal(t, 3, out.Evaluation.DaysElapsed, "partial days round up")
	assert.Equal(t, 2, out.Evaluation.CompletedTasks)
	assert.Equal(t, 10, out.Evaluation.TotalTasks)
	assert.InDelta(t, 20.0, out.Evaluation.CompletionRate, 0.001)
	assert.InDelta(t, 30.0, out.Evaluation.ExpectedRate, 0.001)
	assert.True(t, out.Evaluation.OnTrack, "within the ten point grace band")

	require.NotNil(t, f.coach.LastEvaluation)
	assert.Equal(t, out.Evaluation, *f.coach.LastEvaluation)
}

func TestEvaluateProgress_Execute_Behind(t *testing.T) {
	f := newFixture()
	seeded := f.seedGoal(t, "Learn Go", 10)
	f.setCompleted(t, seeded.Tasks[0].ID, true)
	f.clock.NowTime = baseTime.Add(5 * domain.Day)

	out, err := f.evaluate().Execute(context.Background(), usecase.EvaluateProgressInput{GoalID: seeded.Goal.ID})

	require.NoError(t, err)
	assert.Equal(t, 5, out.Evaluation.DaysElapsed)
	assert.False(t, out.Evaluation.OnTrack)
}

func TestEvaluateProgress_Execute_NoTasksIsNotOnTrack(t *testing.T) {
	f := newFixture()
	f.goals.Goals = []*domain.Goal{{ID: "g1", Title: "Learn Go", DurationDays: 5, CreatedAt: baseTime}}

	out, err := f.evaluate().Execute(context.Background(), usecase.EvaluateProgressInput{GoalID: "g1"})

	require.NoError(t, err)
	assert.Equal(t, 0, out.Evaluation.TotalTasks)
	assert.InDelta(t, 0.0, out.Evaluation.CompletionRate, 0.001)
	assert.False(t, out.Evaluation.OnTrack)
}

func TestEvaluateProgress_Execute_NotFound(t *testing.T) {
	f := newFixture()

	_, err := f.evaluate().Execute(context.Background(), usecase.EvaluateProgressInput{GoalID: "missing"})

	assert.ErrorIs(t, err, domain.ErrGoalNotFound)
	assert.Nil(t, f.coach.LastEvaluation)
}

func TestGenerateReminder_Execute_UsesLatestCompletion(t *testing.T) {
	f := newFixture()
	f.clock.Step = time.Hour
	seeded := f.seedGoal(t, "Learn Go", 5)
	f.setCompleted(t, seeded.Tasks[0].ID, true)
	latest := f.setCompleted(t, seeded.Tasks[2].ID, true)
	f.setCompleted(t, seeded.Tasks[1].ID, true)
	f.setCompleted(t, seeded.Tasks[1].ID, false)
	f.coach.Reminder = "Come back!"
	f.clock.NowTime = latest.Task.UpdatedAt.Add(4*domain.Day + time.Hour)
	f.clock.Step = 0

	uc := usecase.NewGenerateReminder(f.goals, f.tasks, f.coach, f.clock)
	out, err := uc.Execute(context.Background(), usecase.GenerateReminderInput{GoalID: seeded.Goal.ID})

	require.NoError(t, err)
	assert.Equal(t, "Come back!", out.Reminder)
	assert.Equal(t, *latest.Task.UpdatedAt, out.LastActivity, "uncompleted tasks are ignored")
	assert.Equal(t, *latest.Task.UpdatedAt, f.coach.LastActivity)
	assert.Equal(t, 4, out.DaysIdle)
}

func TestGenerateReminder_Execute_FallsBackToCreation(t *testing.T) {
	f := newFixture()
	seeded := f.seedGoal(t, "Learn Go", 5)

	uc := usecase.NewGenerateReminder(f.goals, f.tasks, f.coach, f.clock)
	out, err := uc.Execute(context.Background(), usecase.GenerateReminderInput{GoalID: seeded.Goal.ID})

	require.NoError(t, err)
	assert.Equal(t, seeded.Goal.CreatedAt, out.LastActivity)
}

func TestGenerateReminder_Execute_NotFound(t *testing.T) {
	f := newFixture()

	uc := usecase.NewGenerateReminder(f.goals, f.tasks, f.coach, f.clock)
	_, err := uc.Execute(context.Background(), usecase.GenerateReminderInput{GoalID: "missing"})

	assert.ErrorIs(t, err, domain.ErrGoalNotFound)
}

func TestWeeklyReport_Execute_ClipsWindowToDuration(t *testing.T) {
	f := newFixture()
	seeded := f.seedGoal(t, "Learn Go", 10)
	f.setCompleted(t, seeded.Tasks[6].ID, true) // day 7, outside week 2
	f.setCompleted(t, seeded.Tasks[7].ID, true) // day 8
	f.setCompleted(t, seeded.Tasks[9].ID, true) // day 10
	f.coach.Report = "Nice week."

	uc := usecase.NewWeeklyReport(f.goals, f.tasks, f.coach)
	out, err := uc.Execute(context.Background(), usecase.WeeklyReportInput{GoalID: seeded.Goal.ID, Week: 2})

	require.NoError(t, err)
	assert.Equal(t, "Nice week.", out.Report)
	assert.Equal(t, 2, out.Summary.Week)
	assert.Equal(t, 3, out.Summary.Total, "days 8..10")
	assert.Equal(t, 2, out.Summary.Completed)
	require.NotNil(t, f.coach.LastSummary)
	assert.Equal(t, out.Summary, *f.coach.LastSummary)
}

func TestWeeklyReport_Execute_FirstWeek(t *testing.T) {
	f := newFixture()
	seeded := f.seedGoal(t, "Learn Go", 10)

	uc := usecase.NewWeeklyReport(f.goals, f.tasks, f.coach)
	out, err := uc.Execute(context.Background(), usecase.WeeklyReportInput{GoalID: seeded.Goal.ID, Week: 1})

	require.NoError(t, err)
	assert.Equal(t, 7, out.Summary.Total)
	assert.Equal(t, 0, out.Summary.Completed)
}

func TestWeeklyReport_Execute_WeekPastEndIsEmpty(t *testing.T) {
	f := newFixture()
	seeded := f.seedGoal(t, "Learn Go", 10)

	uc := usecase.NewWeeklyReport(f.goals, f.tasks, f.coach)
	out, err := uc.Execute(context.Background(), usecase.WeeklyReportInput{GoalID: seeded.Goal.ID, Week: 3})

	require.NoError(t, err)
	assert.Equal(t, 0, out.Summary.Total)
	assert.InDelta(t, 0.0, out.Summary.Rate(), 0.001)
}

func TestWeeklyReport_Execute_InvalidWeek(t *testing.T) {
	f := newFixture()

	uc := usecase.NewWeeklyReport(f.goals, f.tasks, f.coach)
	for _, week := range []int{0, -1} {
		_, err := uc.Execute(context.Background(), usecase.WeeklyReportInput{GoalID: "missing", Week: week})
		assert.ErrorIs(t, err, domain.ErrInvalidWeek)
		assert.ErrorIs(t, err, domain.ErrValidation)
	}
}

func TestWeeklyReport_Execute_NotFound(t *testing.T) {
	f := newFixture()

	uc := usecase.NewWeeklyReport(f.goals, f.tasks, f.coach)
	_, err := uc.Execute(context.Background(), usecase.WeeklyReportInput{GoalID: "missing", Week: 1})

	assert.ErrorIs(t, err, domain.ErrGoalNotFound)
}
