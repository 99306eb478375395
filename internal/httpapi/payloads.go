package httpapi

import "github.com/goalpilot/goalpilot/internal/domain"

type createGoalIn struct {
	Title        string `json:"title"`
	DurationDays int    `json:"durationDays"`
}

type createGoalOut struct {
	Goal    *domain.Goal   `json:"goal"`
	Message string         `json:"message"`
	Tasks   []*domain.Task `json:"tasks"`
}

// goalWithProgressOut flattens the goal and attaches its latest snapshot,
// or {} when the goal has none.
type goalWithProgressOut struct {
	*domain.Goal
	Progress any `json:"progress"`
}

type goalDetailOut struct {
	Goal     *domain.Goal       `json:"goal"`
	Tasks    []*domain.Task     `json:"tasks"`
	Progress []*domain.Progress `json:"progress"`
}

type patchTaskIn struct {
	Completed *bool `json:"completed"`
}

type reminderOut struct {
	Reminder string `json:"reminder"`
}

type weeklyReportIn struct {
	Week *int `json:"week"`
}

type weeklyReportOut struct {
	Report string `json:"report"`
}
