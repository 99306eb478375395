package llm

import (
	"context"
	"errors"
	"fmt"

	"github.com/goalpilot/goalpilot/internal/domain"
)

// Planner implements domain.PlanGenerator.
type Planner struct {
	client      *Client
	temperature float32
}

// NewPlanner creates a Planner sampling at temperature.
func NewPlanner(client *Client, temperature float32) *Planner {
	return &Planner{client: client, temperature: temperature}
}

// GeneratePlan asks the model for a plan.
// Output that is not a JSON object yields FallbackPlan. A failed call is
// returned as ErrUpstreamGeneration; an offline client always falls back.
func (p *Planner) GeneratePlan(ctx context.Context, goalText string, durationDays int) (*domain.Plan, error) {
	if p.client.Offline() {
		p.client.debug("", "plan: offline, using fallback plan")
		return FallbackPlan(durationDays), nil
	}

	content, err := p.client.complete(ctx, planSystemPrompt, planPrompt(goalText, durationDays), p.temperature)
	if err != nil {
		if errors.Is(err, errEmptyCompletion) {
			p.client.warn("", "plan: empty completion, using fallback plan")
			return FallbackPlan(durationDays), nil
		}
		return nil, fmt.Errorf("%w: generate plan: %w", domain.ErrUpstreamGeneration, err)
	}

	plan, err := domain.ParsePlan(extractJSON(content))
	if err != nil {
		p.client.warn("", fmt.Sprintf("plan: unusable output (%v), using fallback plan", err))
		return FallbackPlan(durationDays), nil
	}
	return plan, nil
}

var _ domain.PlanGenerator = (*Planner)(nil)
