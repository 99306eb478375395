package usecase

import (
	"context"
	"fmt"
	"time"

	"github.com/goalpilot/goalpilot/internal/domain"
	"github.com/goalpilot/goalpilot/internal/usecase/shared"
)

// GenerateReminderInput contains the parameters for a reminder.
type GenerateReminderInput struct {
	GoalID string
}

// GenerateReminderOutput contains the nudge text.
type GenerateReminderOutput struct {
	LastActivity time.Time
	Reminder     string
	DaysIdle     int
}

// GenerateReminder is the use case for nudging an idle goal.
type GenerateReminder struct {
	goals domain.GoalRepository
	tasks domain.TaskRepository
	coach domain.FeedbackGenerator
	clock domain.Clock
}

// NewGenerateReminder creates a new GenerateReminder use case.
func NewGenerateReminder(
	goals domain.GoalRepository,
	tasks domain.TaskRepository,
	coach domain.FeedbackGenerator,
	clock domain.Clock,
) *GenerateReminder {
	return &GenerateReminder{
		goals: goals,
		tasks: tasks,
		coach: coach,
		clock: clock,
	}
}

// Execute derives the last activity from completed tasks, falling back to
// the goal's creation time, and asks the coach for a reminder.
func (uc *GenerateReminder) Execute(ctx context.Context, in GenerateReminderInput) (*GenerateReminderOutput, error) {
	goal, err := shared.GetGoal(uc.goals, in.GoalID)
	if err != nil {
		return nil, err
	}

	tasks, err := uc.tasks.ListByGoal(goal.ID)
	if err != nil {
		return nil, fmt.Errorf("list tasks: %w", err)
	}

	last := domain.LastActivity(tasks, goal.CreatedAt)
	return &GenerateReminderOutput{
		Reminder:     uc.coach.GenerateReminder(ctx, goal, last),
		LastActivity: last,
		DaysIdle:     domain.DaysSince(last, uc.clock.Now()),
	}, nil
}
