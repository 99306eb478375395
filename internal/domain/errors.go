package domain

import (
	"errors"
	"fmt"
)

// Error categories. Callers match them with errors.Is.
var (
	ErrValidation         = errors.New("validation failed")
	ErrNotFound           = errors.New("not found")
	ErrUpstreamGeneration = errors.New("upstream generation failed")
	ErrStorage            = errors.New("storage failure")
)

// Domain errors.
var (
	ErrGoalNotFound      = fmt.Errorf("goal %w", ErrNotFound)
	ErrTaskNotFound      = fmt.Errorf("task %w", ErrNotFound)
	ErrMissingGoalFields = fmt.Errorf("%w: title and durationDays are required", ErrValidation)
	ErrDurationTooLong   = fmt.Errorf("%w: durationDays must be at most %d", ErrValidation, MaxDurationDays)
	ErrInvalidWeek       = fmt.Errorf("%w: week must be a positive integer", ErrValidation)
	ErrMissingCompleted  = fmt.Errorf("%w: completed is required", ErrValidation)
	ErrConfigExists      = errors.New("config file already exists")
	ErrUnknownStore      = errors.New("unknown store backend")
)
