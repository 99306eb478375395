package shared

import (
	"fmt"
	"time"

	"github.com/goalpilot/goalpilot/internal/domain"
)

// RecordProgress recomputes the progress of goalID from its full task set
// and appends the snapshot to the progress log.
func RecordProgress(tasks domain.TaskRepository, progress domain.ProgressRepository, goalID string, now time.Time) (*domain.Progress, error) {
	goalTasks, err := tasks.ListByGoal(goalID)
	if err != nil {
		return nil, fmt.Errorf("list tasks: %w", err)
	}

	snapshot := domain.RecomputeProgress(goalID, goalTasks, now)
	if err := progress.Save(snapshot); err != nil {
		return nil, fmt.Errorf("save progress: %w", err)
	}
	return snapshot, nil
}
