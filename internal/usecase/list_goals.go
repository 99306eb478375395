package usecase

import (
	"context"
	"fmt"

	"github.com/goalpilot/goalpilot/internal/domain"
)

// ListGoalsInput contains the parameters for listing goals.
type ListGoalsInput struct{}

// ListGoalsOutput contains the goals with their latest progress attached.
type ListGoalsOutput struct {
	Goals []domain.GoalWithProgress
}

// ListGoals is the use case for listing every goal.
type ListGoals struct {
	goals    domain.GoalRepository
	progress domain.ProgressRepository
}

// NewListGoals creates a new ListGoals use case.
func NewListGoals(goals domain.GoalRepository, progress domain.ProgressRepository) *ListGoals {
	return &ListGoals{
		goals:    goals,
		progress: progress,
	}
}

// Execute returns all goals in insertion order. Each carries the last
// snapshot recorded for it, or nil when none exists.
func (uc *ListGoals) Execute(_ context.Context, _ ListGoalsInput) (*ListGoalsOutput, error) {
	goals, err := uc.goals.List()
	if err != nil {
		return nil, fmt.Errorf("list goals: %w", err)
	}

	history, err := uc.progress.List()
	if err != nil {
		return nil, fmt.Errorf("list progress: %w", err)
	}

	latest := make(map[string]*domain.Progress, len(goals))
	for _, p := range history {
		latest[p.GoalID] = p
	}

	out := make([]domain.GoalWithProgress, 0, len(goals))
	for _, g := range goals {
		out = append(out, domain.GoalWithProgress{
			Goal:     *g,
			Progress: latest[g.ID],
		})
	}

	return &ListGoalsOutput{Goals: out}, nil
}
