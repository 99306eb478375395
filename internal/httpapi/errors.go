package httpapi

import (
	"errors"
	"fmt"
	"net/http"

	"github.com/goalpilot/goalpilot/internal/domain"
	"github.com/goalpilot/goalpilot/internal/httpapi/res"
)

// WriteErr maps a use case error onto a status code and message.
func WriteErr(w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, domain.ErrMissingGoalFields):
		res.Error(w, "Title and durationDays are required", http.StatusBadRequest)
	case errors.Is(err, domain.ErrDurationTooLong):
		res.Error(w, fmt.Sprintf("durationDays must be at most %d", domain.MaxDurationDays), http.StatusBadRequest)
	case errors.Is(err, domain.ErrInvalidWeek):
		res.Error(w, "week must be a positive integer", http.StatusBadRequest)
	case errors.Is(err, domain.ErrMissingCompleted):
		res.Error(w, "completed is required", http.StatusBadRequest)
	case errors.Is(err, domain.ErrValidation):
		res.Error(w, err.Error(), http.StatusBadRequest)
	case errors.Is(err, domain.ErrGoalNotFound):
		res.Error(w, "Goal not found", http.StatusNotFound)
	case errors.Is(err, domain.ErrTaskNotFound):
		res.Error(w, "Task not found", http.StatusNotFound)
	case errors.Is(err, domain.ErrNotFound):
		res.Error(w, "Not found", http.StatusNotFound)
	default:
		res.Error(w, err.Error(), http.StatusInternalServerError)
	}
}
