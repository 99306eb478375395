package usecase

import (
	"context"
	"fmt"

	"github.com/goalpilot/goalpilot/internal/domain"
	"github.com/goalpilot/goalpilot/internal/usecase/shared"
)

// EvaluateProgressInput contains the parameters for evaluating a goal.
type EvaluateProgressInput struct {
	GoalID string
}

// EvaluateProgressOutput contains the coaching feedback and the numbers behind it.
type EvaluateProgressOutput struct {
	Feedback   domain.Feedback
	Evaluation domain.Evaluation
}

// EvaluateProgress is the use case for on-track analysis with coaching feedback.
type EvaluateProgress struct {
	goals  domain.GoalRepository
	tasks  domain.TaskRepository
	coach  domain.FeedbackGenerator
	clock  domain.Clock
	logger domain.Logger
}

// NewEvaluateProgress creates a new EvaluateProgress use case.
func NewEvaluateProgress(
	goals domain.GoalRepository,
	tasks domain.TaskRepository,
	coach domain.FeedbackGenerator,
	clock domain.Clock,
	logger domain.Logger,
) *EvaluateProgress {
	return &EvaluateProgress{
		goals:  goals,
		tasks:  tasks,
		coach:  coach,
		clock:  clock,
		logger: logger,
	}
}

// Execute compares the completion rate with the elapsed share of the goal's duration.
func (uc *EvaluateProgress) Execute(ctx context.Context, in EvaluateProgressInput) (*EvaluateProgressOutput, error) {
	goal, err := shared.GetGoal(uc.goals, in.GoalID)
	if err != nil {
		return nil, err
	}

	tasks, err := uc.tasks.ListByGoal(goal.ID)
	if err != nil {
		return nil, fmt.Errorf("list tasks: %w", err)
	}

	days := domain.DaysElapsed(goal.CreatedAt, uc.clock.Now())
	eval := domain.NewEvaluation(goal, domain.CountCompleted(tasks), len(tasks), days)
	feedback := uc.coach.GenerateFeedback(ctx, eval)

	uc.logger.Debug(goal.ID, domain.LogCategoryCoach, fmt.Sprintf("completion %.1f%% expected %.1f%% onTrack=%t", eval.CompletionRate, eval.ExpectedRate, eval.OnTrack))

	return &EvaluateProgressOutput{
		Feedback:   feedback,
		Evaluation: eval,
	}, nil
}
