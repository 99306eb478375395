package usecase

import (
	"context"
	"fmt"

	"github.com/goalpilot/goalpilot/internal/domain"
)

// ListProgressInput contains the parameters for listing a goal's progress log.
type ListProgressInput struct {
	GoalID string
}

// ListProgressOutput contains the snapshots in insertion order.
type ListProgressOutput struct {
	Progress []*domain.Progress
}

// ListProgress is the use case for reading a goal's progress history.
// An unknown goal yields an empty list.
type ListProgress struct {
	progress domain.ProgressRepository
}

// NewListProgress creates a new ListProgress use case.
func NewListProgress(progress domain.ProgressRepository) *ListProgress {
	return &ListProgress{progress: progress}
}

// Execute returns the progress history of the goal.
func (uc *ListProgress) Execute(_ context.Context, in ListProgressInput) (*ListProgressOutput, error) {
	history, err := uc.progress.ListByGoal(in.GoalID)
	if err != nil {
		return nil, fmt.Errorf("list progress: %w", err)
	}
	if history == nil {
		history = []*domain.Progress{}
	}
	return &ListProgressOutput{Progress: history}, nil
}
