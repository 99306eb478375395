package domain

import (
	"math"
	"time"
)

// Day is the unit used for all elapsed-time calculations.
const Day = 24 * time.Hour

// OnTrackGrace is the percentage-point band a goal may lag behind schedule
// and still count as on track.
const OnTrackGrace = 10.0

// Feedback is the coaching payload returned by the feedback generator.
type Feedback struct {
	Analysis      string `json:"analysis" yaml:"analysis"`
	Encouragement string `json:"encouragement" yaml:"encouragement"`
	NextAction    string `json:"nextAction" yaml:"nextAction"`
	Tip           string `json:"tip" yaml:"tip"`
}

// Evaluation is the progress snapshot handed to the feedback generator.
// Fields are ordered to minimize memory padding.
type Evaluation struct {
	Goal           *Goal
	CompletionRate float64 // Percent of tasks completed, one decimal
	ExpectedRate   float64 // Percent of the duration elapsed
	CompletedTasks int
	TotalTasks     int
	DaysElapsed    int
	OnTrack        bool
}

// NewEvaluation computes the on-track determination for a goal.
// A goal with no tasks is never on track.
func NewEvaluation(goal *Goal, completed, total, daysElapsed int) Evaluation {
	e := Evaluation{
		Goal:           goal,
		CompletedTasks: completed,
		TotalTasks:     total,
		DaysElapsed:    daysElapsed,
	}
	if goal.DurationDays > 0 {
		e.ExpectedRate = float64(daysElapsed) / float64(goal.DurationDays) * 100
	}
	if total > 0 {
		e.CompletionRate = math.Round(float64(completed)/float64(total)*100*10) / 10
		e.OnTrack = e.CompletionRate >= e.ExpectedRate-OnTrackGrace
	}
	return e
}

// DaysElapsed returns the number of started days between since and now,
// rounding any partial day up.
func DaysElapsed(since, now time.Time) int {
	return int(math.Ceil(float64(now.Sub(since)) / float64(Day)))
}

// DaysSince returns the number of whole days between since and now.
func DaysSince(since, now time.Time) int {
	return int(math.Floor(float64(now.Sub(since)) / float64(Day)))
}

// WeekWindow is an inclusive range of task days.
type WeekWindow struct {
	Start int
	End   int
}

// NewWeekWindow returns the task-day window for a 1-based week of a goal,
// clipped to the goal's duration.
func NewWeekWindow(week, durationDays int) WeekWindow {
	return WeekWindow{
		Start: (week-1)*7 + 1,
		End:   min(week*7, durationDays),
	}
}

// Contains reports whether day lies within the window.
func (w WeekWindow) Contains(day int) bool {
	return day >= w.Start && day <= w.End
}

// Filter returns the tasks whose day lies within the window.
func (w WeekWindow) Filter(tasks []*Task) []*Task {
	var out []*Task
	for _, t := range tasks {
		if w.Contains(t.Day) {
			out = append(out, t)
		}
	}
	return out
}

// WeekSummary is the weekly task count handed to the feedback generator.
type WeekSummary struct {
	Goal      *Goal
	Week      int
	Completed int
	Total     int
}

// Rate returns the completed percentage of the week, one decimal, or 0 for an empty week.
func (s WeekSummary) Rate() float64 {
	if s.Total == 0 {
		return 0
	}
	return math.Round(float64(s.Completed)/float64(s.Total)*100*10) / 10
}
