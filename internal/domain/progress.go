package domain

import (
	"fmt"
	"math"
	"time"

	"github.com/google/uuid"
)

// Progress is a recorded count of completed/total tasks for a goal at a point in time.
// Snapshots form an append-only log per goal.
// Fields are ordered to minimize memory padding.
type Progress struct {
	Timestamp          time.Time  `json:"timestamp" yaml:"timestamp"`
	UpdatedAt          *time.Time `json:"updatedAt,omitempty" yaml:"updatedAt,omitempty"`
	ID                 string     `json:"id" yaml:"id"`
	GoalID             string     `json:"goalId" yaml:"goalId"`
	CompletedTasks     int        `json:"completedTasks" yaml:"completedTasks"`
	TotalTasks         int        `json:"totalTasks" yaml:"totalTasks"`
	ProgressPercentage int        `json:"progressPercentage" yaml:"progressPercentage"`
}

// ProgressID returns a fresh snapshot identifier: <goalId>-<unixNano>-<random>.
// The random suffix keeps snapshots taken at the same instant distinct.
func ProgressID(goalID string, at time.Time) string {
	return fmt.Sprintf("%s-%d-%s", goalID, at.UnixNano(), uuid.NewString()[:8])
}

// Percentage returns round(completed/total*100), or 0 when total is 0.
func Percentage(completed, total int) int {
	if total <= 0 {
		return 0
	}
	return int(math.Round(float64(completed) / float64(total) * 100))
}

// NewProgress builds a snapshot for goalID from the current task counts.
func NewProgress(goalID string, completed, total int, now time.Time) *Progress {
	return &Progress{
		ID:                 ProgressID(goalID, now),
		GoalID:             goalID,
		CompletedTasks:     completed,
		TotalTasks:         total,
		ProgressPercentage: Percentage(completed, total),
		Timestamp:          now,
	}
}

// RecomputeProgress derives a snapshot from the full task set of a goal.
// The result depends only on the tasks, never on earlier snapshots.
func RecomputeProgress(goalID string, tasks []*Task, now time.Time) *Progress {
	p := NewProgress(goalID, CountCompleted(tasks), len(tasks), now)
	p.UpdatedAt = &now
	return p
}

// LatestProgress returns the last snapshot in insertion order, or nil.
// Timestamps are deliberately ignored.
func LatestProgress(history []*Progress) *Progress {
	if len(history) == 0 {
		return nil
	}
	return history[len(history)-1]
}
