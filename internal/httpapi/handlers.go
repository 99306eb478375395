// Package httpapi exposes the goal, task and progress use cases over HTTP.
package httpapi

import (
	"context"
	"encoding/json"
	"log/slog"
	"net/http"
	"strings"
	"time"

	"github.com/goalpilot/goalpilot/internal/domain"
	"github.com/goalpilot/goalpilot/internal/httpapi/res"
	"github.com/goalpilot/goalpilot/internal/usecase"
)

// UseCases builds the use cases served by the API.
// *app.Container implements it.
type UseCases interface {
	CreateGoalUseCase() *usecase.CreateGoal
	ListGoalsUseCase() *usecase.ListGoals
	ShowGoalUseCase() *usecase.ShowGoal
	ListGoalTasksUseCase() *usecase.ListGoalTasks
	ListProgressUseCase() *usecase.ListProgress
	CompleteTaskUseCase() *usecase.CompleteTask
	EvaluateProgressUseCase() *usecase.EvaluateProgress
	GenerateReminderUseCase() *usecase.GenerateReminder
	WeeklyReportUseCase() *usecase.WeeklyReport
}

// Register mounts every route under basePath.
func Register(mux *http.ServeMux, log *slog.Logger, uc UseCases, basePath string, timeout time.Duration) {
	base := strings.TrimRight(basePath, "/")
	if timeout <= 0 {
		timeout = domain.DefaultServerTimeout
	}

	mux.Handle("GET "+base+"/health", NewHealthHandler())

	// goals
	mux.Handle("POST "+base+"/goals", NewCreateGoalHandler(log, uc.CreateGoalUseCase(), timeout))
	mux.Handle("GET "+base+"/goals", NewListGoalsHandler(log, uc.ListGoalsUseCase(), timeout))
	mux.Handle("GET "+base+"/goals/{id}", NewGetGoalHandler(log, uc.ShowGoalUseCase(), timeout))
	mux.Handle("GET "+base+"/goals/{id}/tasks", NewListGoalTasksHandler(log, uc.ListGoalTasksUseCase(), timeout))
	mux.Handle("GET "+base+"/goals/{id}/progress", NewListProgressHandler(log, uc.ListProgressUseCase(), timeout))

	// coaching
	mux.Handle("POST "+base+"/goals/{id}/evaluate", NewEvaluateHandler(log, uc.EvaluateProgressUseCase(), timeout))
	mux.Handle("POST "+base+"/goals/{id}/reminder", NewReminderHandler(log, uc.GenerateReminderUseCase(), timeout))
	mux.Handle("POST "+base+"/goals/{id}/weekly-report", NewWeeklyReportHandler(log, uc.WeeklyReportUseCase(), timeout))

	// tasks
	mux.Handle("PATCH "+base+"/tasks/{id}", NewPatchTaskHandler(log, uc.CompleteTaskUseCase(), timeout))
}

func NewHealthHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, _ *http.Request) {
		res.Json(w, map[string]any{"status": "ok"}, http.StatusOK)
	}
}

func NewCreateGoalHandler(log *slog.Logger, uc *usecase.CreateGoal, timeout time.Duration) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var in createGoalIn
		if err := json.NewDecoder(r.Body).Decode(&in); err != nil {
			res.Error(w, "invalid json", http.StatusBadRequest)
			return
		}

		ctx, cancel := context.WithTimeout(r.Context(), timeout)
		defer cancel()

		out, err := uc.Execute(ctx, usecase.CreateGoalInput{Title: in.Title, DurationDays: in.DurationDays})
		if err != nil {
			log.Error("create goal", "error", err)
			WriteErr(w, err)
			return
		}
		res.Json(w, createGoalOut{
			Goal:    out.Goal,
			Tasks:   out.Tasks,
			Message: "Goal created successfully!",
		}, http.StatusOK)
	}
}

func NewListGoalsHandler(_ *slog.Logger, uc *usecase.ListGoals, timeout time.Duration) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ctx, cancel := context.WithTimeout(r.Context(), timeout)
		defer cancel()

		out, err := uc.Execute(ctx, usecase.ListGoalsInput{})
		if err != nil {
			WriteErr(w, err)
			return
		}

		items := make([]goalWithProgressOut, 0, len(out.Goals))
		for i := range out.Goals {
			g := out.Goals[i]
			var progress any = struct{}{}
			if g.Progress != nil {
				progress = g.Progress
			}
			items = append(items, goalWithProgressOut{Goal: &g.Goal, Progress: progress})
		}
		res.Json(w, items, http.StatusOK)
	}
}

func NewGetGoalHandler(_ *slog.Logger, uc *usecase.ShowGoal, timeout time.Duration) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ctx, cancel := context.WithTimeout(r.Context(), timeout)
		defer cancel()

		out, err := uc.Execute(ctx, usecase.ShowGoalInput{GoalID: r.PathValue("id")})
		if err != nil {
			WriteErr(w, err)
			return
		}
		res.Json(w, goalDetailOut{Goal: out.Goal, Tasks: out.Tasks, Progress: out.Progress}, http.StatusOK)
	}
}

func NewListGoalTasksHandler(_ *slog.Logger, uc *usecase.ListGoalTasks, timeout time.Duration) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ctx, cancel := context.WithTimeout(r.Context(), timeout)
		defer cancel()

		out, err := uc.Execute(ctx, usecase.ListGoalTasksInput{GoalID: r.PathValue("id")})
		if err != nil {
			WriteErr(w, err)
			return
		}
		res.Json(w, out.Tasks, http.StatusOK)
	}
}

func NewListProgressHandler(_ *slog.Logger, uc *usecase.ListProgress, timeout time.Duration) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ctx, cancel := context.WithTimeout(r.Context(), timeout)
		defer cancel()

		out, err := uc.Execute(ctx, usecase.ListProgressInput{GoalID: r.PathValue("id")})
		if err != nil {
			WriteErr(w, err)
			return
		}
		res.Json(w, out.Progress, http.StatusOK)
	}
}

func NewPatchTaskHandler(log *slog.Logger, uc *usecase.CompleteTask, timeout time.Duration) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var in patchTaskIn
		if err := json.NewDecoder(r.Body).Decode(&in); err != nil {
			res.Error(w, "invalid json", http.StatusBadRequest)
			return
		}
		if in.Completed == nil {
			WriteErr(w, domain.ErrMissingCompleted)
			return
		}

		ctx, cancel := context.WithTimeout(r.Context(), timeout)
		defer cancel()

		out, err := uc.Execute(ctx, usecase.CompleteTaskInput{TaskID: r.PathValue("id"), Completed: *in.Completed})
		if err != nil {
			log.Error("update task", "task", r.PathValue("id"), "error", err)
			WriteErr(w, err)
			return
		}
		res.Json(w, out.Task, http.StatusOK)
	}
}

func NewEvaluateHandler(log *slog.Logger, uc *usecase.EvaluateProgress, timeout time.Duration) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ctx, cancel := context.WithTimeout(r.Context(), timeout)
		defer cancel()

		out, err := uc.Execute(ctx, usecase.EvaluateProgressInput{GoalID: r.PathValue("id")})
		if err != nil {
			log.Error("evaluate goal", "goal", r.PathValue("id"), "error", err)
			WriteErr(w, err)
			return
		}
		res.Json(w, out.Feedback, http.StatusOK)
	}
}

func NewReminderHandler(log *slog.Logger, uc *usecase.GenerateReminder, timeout time.Duration) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ctx, cancel := context.WithTimeout(r.Context(), timeout)
		defer cancel()

		out, err := uc.Execute(ctx, usecase.GenerateReminderInput{GoalID: r.PathValue("id")})
		if err != nil {
			log.Error("generate reminder", "goal", r.PathValue("id"), "error", err)
			WriteErr(w, err)
			return
		}
		res.Json(w, reminderOut{Reminder: out.Reminder}, http.StatusOK)
	}
}

func NewWeeklyReportHandler(log *slog.Logger, uc *usecase.WeeklyReport, timeout time.Duration) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var in weeklyReportIn
		if err := json.NewDecoder(r.Body).Decode(&in); err != nil {
			res.Error(w, "invalid json", http.StatusBadRequest)
			return
		}
		if in.Week == nil {
			WriteErr(w, domain.ErrInvalidWeek)
			return
		}

		ctx, cancel := context.WithTimeout(r.Context(), timeout)
		defer cancel()

		out, err := uc.Execute(ctx, usecase.WeeklyReportInput{GoalID: r.PathValue("id"), Week: *in.Week})
		if err != nil {
			log.Error("weekly report", "goal", r.PathValue("id"), "error", err)
			WriteErr(w, err)
			return
		}
		res.Json(w, weeklyReportOut{Report: out.Report}, http.StatusOK)
	}
}
