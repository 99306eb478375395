package llm

import (
	"fmt"
	"strconv"

	"github.com/goalpilot/goalpilot/internal/domain"
)

// Phase names of the fallback plan, one per third of the duration.
const (
	PhaseFoundation = "Foundation"
	PhasePractice   = "Practice"
	PhaseMastery    = "Mastery"
)

// FallbackPhase returns the phase of day within a plan of days days.
// Days up to ceil(days/3) are Foundation, up to ceil(2*days/3) Practice,
// the rest Mastery.
func FallbackPhase(day, days int) string {
	switch {
	case day <= ceilDiv(days, 3):
		return PhaseFoundation
	case day <= ceilDiv(2*days, 3):
		return PhasePractice
	default:
		return PhaseMastery
	}
}

// FallbackPlan returns the deterministic plan used when generation output
// cannot be used: exactly one task per day, numbered 1..days.
func FallbackPlan(days int) *domain.Plan {
	tasks := make([]domain.DailyTask, 0, max(days, 0))
	for day := 1; day <= days; day++ {
		phase := FallbackPhase(day, days)
		tasks = append(tasks, domain.DailyTask{
			Day:         day,
			Title:       fmt.Sprintf("%s - Day %d", phase, day),
			Description: "Complete today's learning objective for phase: " + phase,
		})
	}
	return &domain.Plan{
		DailyTasks:     tasks,
		Milestones:     []string{"Phase 1: Fundamentals", "Phase 2: Practice", "Phase 3: Mastery"},
		SuccessMetrics: []string{"Complete all daily tasks", "Understand core concepts", "Build portfolio project"},
	}
}

// FallbackFeedback returns the deterministic coaching payload for e.
func FallbackFeedback(e domain.Evaluation) domain.Feedback {
	return domain.Feedback{
		Analysis:      fmt.Sprintf("You've completed %s%% of your tasks.", formatRate(e.CompletionRate)),
		Encouragement: "Keep going! Every step counts.",
		NextAction:    "Review today's task and complete it step by step.",
		Tip:           "Break complex tasks into smaller subtasks.",
	}
}

// FallbackReminder returns the deterministic reminder for a gap of days days.
func FallbackReminder(days int) string {
	return fmt.Sprintf("Hey! It's been %d days. Let's get back on track with one small task today. You've got this! 💪", days)
}

// FallbackWeeklyReport returns the deterministic weekly summary for s.
func FallbackWeeklyReport(s domain.WeekSummary) string {
	return fmt.Sprintf("Great work this week! You completed %s%% of your tasks. Keep the momentum going! 🚀", formatRate(s.Rate()))
}

// formatRate renders a percentage with one decimal.
func formatRate(rate float64) string {
	return strconv.FormatFloat(rate, 'f', 1, 64)
}

func ceilDiv(a, b int) int {
	return (a + b - 1) / b
}
