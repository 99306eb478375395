// Package domain contains core business entities and interfaces.
package domain

import (
	"strings"
	"time"

	"github.com/google/uuid"
)

// GoalStatus represents the lifecycle state of a goal.
type GoalStatus string

// StatusActive is the only status assigned on creation.
const StatusActive GoalStatus = "active"

// MaxDurationDays bounds a goal to ten years of daily tasks.
const MaxDurationDays = 3650

// Goal represents a user-declared objective with a fixed duration and a generated plan.
// Fields are ordered to minimize memory padding.
type Goal struct {
	CreatedAt    time.Time  `json:"createdAt" yaml:"createdAt"`       // Set once at creation
	Plan         *Plan      `json:"plan" yaml:"plan"`                 // Stored verbatim from the plan generator
	ID           string     `json:"id" yaml:"id"`                     // Opaque, immutable
	Title        string     `json:"title" yaml:"title"`               // Non-empty
	Status       GoalStatus `json:"status" yaml:"status"`             // Always active in this scope
	DurationDays int        `json:"durationDays" yaml:"durationDays"` // Valid task days are [1, DurationDays]
}

// NewGoalID returns a fresh opaque goal identifier.
func NewGoalID() string {
	return uuid.NewString()
}

// ValidateGoalInput checks the user-supplied goal fields.
func ValidateGoalInput(title string, durationDays int) error {
	if strings.TrimSpace(title) == "" {
		return ErrMissingGoalFields
	}
	if durationDays <= 0 {
		return ErrMissingGoalFields
	}
	if durationDays > MaxDurationDays {
		return ErrDurationTooLong
	}
	return nil
}

// GoalWithProgress is a goal with its latest progress snapshot attached.
// Progress is nil when the goal has no snapshot yet.
type GoalWithProgress struct {
	Progress *Progress
	Goal
}
