package llm

import (
	"fmt"

	"github.com/goalpilot/goalpilot/internal/domain"
)

const (
	planSystemPrompt     = "You are an expert personal productivity coach and learning specialist. Create actionable, structured plans."
	feedbackSystemPrompt = "You are a supportive and smart productivity coach. Be encouraging but honest. Adapt your tone based on progress."
	reminderSystemPrompt = "You are a caring and non-judgmental productivity buddy."
	reportSystemPrompt   = "You are an experienced coach generating weekly progress reports. Be honest but uplifting."
)

func planPrompt(goalText string, days int) string {
	return fmt.Sprintf(`User wants to: %q within %d days.

Create a structured learning/execution plan with:
1. Main milestones for each week
2. Daily tasks (%d tasks total)
3. Success metrics
4. Potential challenges
5. Motivational approach

Return as JSON with this structure:
{
  "milestones": ["milestone 1", "milestone 2"],
  "dailyTasks": [{"day": 1, "title": "...", "description": "..."}],
  "successMetrics": ["metric 1", "metric 2"],
  "challenges": ["challenge 1"],
  "motivationalApproach": "..."
}`, goalText, days, days)
}

func feedbackPrompt(e domain.Evaluation) string {
	status := "BEHIND"
	if e.OnTrack {
		status = "ON TRACK"
	}
	return fmt.Sprintf(`Learning Goal: %q
Duration: %d days
Days Elapsed: %d
Tasks Completed: %d/%d (%s%%)
Expected Progress: %s%%
Status: %s

Generate:
1. Performance analysis
2. Specific encouragement or gentle nudge
3. Recommend next action (just 1-2 lines)
4. Weekly tips

Return as JSON:
{
  "analysis": "...",
  "encouragement": "...",
  "nextAction": "...",
  "tip": "..."
}`, e.Goal.Title, e.Goal.DurationDays, e.DaysElapsed, e.CompletedTasks, e.TotalTasks,
		formatRate(e.CompletionRate), formatRate(e.ExpectedRate), status)
}

func reminderPrompt(goal *domain.Goal, days int) string {
	return fmt.Sprintf(`User is learning: %q
Days since last task completion: %d

Generate a personalized reminder message that:
1. Acknowledges the hiatus positively
2. Motivates them to continue
3. Makes it easy to get back (1 simple next step)
4. Is warm but not judgmental

Keep it to 2-3 sentences.`, goal.Title, days)
}

func reportPrompt(s domain.WeekSummary) string {
	return fmt.Sprintf(`Weekly Progress Report
Goal: %q
Week: %d
Progress: %d/%d tasks (%s%%)

Generate a brief, motivating weekly summary with:
1. What went well
2. One area to improve
3. Preview of next week
4. Overall morale boost

Keep it encouraging and actionable.`, s.Goal.Title, s.Week, s.Completed, s.Total, formatRate(s.Rate()))
}
