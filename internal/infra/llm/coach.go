package llm

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/goalpilot/goalpilot/internal/domain"
)

// Coach implements domain.FeedbackGenerator. Every method degrades to the
// deterministic fallback text when the call or its output is unusable.
type Coach struct {
	client              *Client
	clock               domain.Clock
	feedbackTemperature float32
	messageTemperature  float32
}

// NewCoach creates a Coach. Feedback samples at feedbackTemp; reminders and
// reports at messageTemp.
func NewCoach(client *Client, clock domain.Clock, feedbackTemp, messageTemp float32) *Coach {
	return &Coach{
		client:              client,
		clock:               clock,
		feedbackTemperature: feedbackTemp,
		messageTemperature:  messageTemp,
	}
}

// GenerateFeedback returns the model's analysis of e, or FallbackFeedback.
func (c *Coach) GenerateFeedback(ctx context.Context, e domain.Evaluation) domain.Feedback {
	goalID := e.Goal.ID
	content, err := c.client.complete(ctx, feedbackSystemPrompt, feedbackPrompt(e), c.feedbackTemperature)
	if err != nil {
		c.fallbackNotice(goalID, "feedback", err)
		return FallbackFeedback(e)
	}

	var fb domain.Feedback
	if err := json.Unmarshal(extractJSON(content), &fb); err != nil {
		c.client.warn(goalID, fmt.Sprintf("feedback: unusable output (%v), using fallback", err))
		return FallbackFeedback(e)
	}
	return fb
}

// GenerateReminder returns a nudge for a goal idle since lastActivity.
func (c *Coach) GenerateReminder(ctx context.Context, goal *domain.Goal, lastActivity time.Time) string {
	days := domain.DaysSince(lastActivity, c.clock.Now())
	content, err := c.client.complete(ctx, reminderSystemPrompt, reminderPrompt(goal, days), c.messageTemperature)
	if err != nil || strings.TrimSpace(content) == "" {
		c.fallbackNotice(goal.ID, "reminder", err)
		return FallbackReminder(days)
	}
	return content
}

// GenerateWeeklyReport returns a summary of one week of a goal.
func (c *Coach) GenerateWeeklyReport(ctx context.Context, s domain.WeekSummary) string {
	content, err := c.client.complete(ctx, reportSystemPrompt, reportPrompt(s), c.messageTemperature)
	if err != nil || strings.TrimSpace(content) == "" {
		c.fallbackNotice(s.Goal.ID, "weekly report", err)
		return FallbackWeeklyReport(s)
	}
	return content
}

func (c *Coach) fallbackNotice(goalID, what string, err error) {
	switch {
	case errors.Is(err, errOffline):
		c.client.debug(goalID, what+": offline, using fallback")
	case err != nil:
		c.client.warn(goalID, fmt.Sprintf("%s: %v, using fallback", what, err))
	default:
		c.client.warn(goalID, what+": empty output, using fallback")
	}
}

var _ domain.FeedbackGenerator = (*Coach)(nil)
