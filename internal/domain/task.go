package domain

import (
	"fmt"
	"time"
)

// Task represents one day's unit of work belonging to a goal.
// Fields are ordered to minimize memory padding.
type Task struct {
	CreatedAt   time.Time  `json:"createdAt" yaml:"createdAt"`                     // Set at bulk-save time
	UpdatedAt   *time.Time `json:"updatedAt,omitempty" yaml:"updatedAt,omitempty"` // Absent until first update
	ID          string     `json:"id" yaml:"id"`                                   // Unique across the whole store
	GoalID      string     `json:"goalId" yaml:"goalId"`                           // Weak back-reference to the owning goal
	Title       string     `json:"title" yaml:"title"`
	Description string     `json:"description" yaml:"description"`
	Day         int        `json:"day" yaml:"day"` // Intended to lie in [1, goal.DurationDays]; not enforced
	Completed   bool       `json:"completed" yaml:"completed"`
}

// TaskID derives a task identifier from the goal id, the ordinal index within
// the saved batch, and the save time.
// Format: <goalID>-<index>-<unix millis>
func TaskID(goalID string, index int, at time.Time) string {
	return fmt.Sprintf("%s-%d-%d", goalID, index, at.UnixMilli())
}

// MaterializeTasks turns plan entries into tasks owned by goalID.
func MaterializeTasks(goalID string, drafts []DailyTask, now time.Time) []*Task {
	tasks := make([]*Task, 0, len(drafts))
	for i, d := range drafts {
		tasks = append(tasks, &Task{
			ID:          TaskID(goalID, i, now),
			GoalID:      goalID,
			Day:         d.Day,
			Title:       d.Title,
			Description: d.Description,
			CreatedAt:   now,
		})
	}
	return tasks
}

// CountCompleted returns the number of completed tasks.
func CountCompleted(tasks []*Task) int {
	n := 0
	for _, t := range tasks {
		if t.Completed {
			n++
		}
	}
	return n
}

// LastActivity returns the update time of the most recently updated completed
// task, or fallback when no completed task carries an update time.
func LastActivity(tasks []*Task, fallback time.Time) time.Time {
	var latest *time.Time
	for _, t := range tasks {
		if !t.Completed || t.UpdatedAt == nil {
			continue
		}
		if latest == nil || t.UpdatedAt.After(*latest) {
			latest = t.UpdatedAt
		}
	}
	if latest == nil {
		return fallback
	}
	return *latest
}
