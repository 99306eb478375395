package domain

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"maps"
	"slices"
)

// ErrPlanNotObject is returned when a plan payload is not a JSON object.
var ErrPlanNotObject = errors.New("plan is not a JSON object")

// DailyTask is one plan entry: the work for a single day.
type DailyTask struct {
	Title       string `json:"title" yaml:"title"`
	Description string `json:"description" yaml:"description"`
	Day         int    `json:"day" yaml:"day"`
}

// Plan is the structured payload produced by the plan generator.
// Known fields are decoded leniently; anything else (or a known field with an
// unexpected shape) is kept in Extra so the payload round-trips verbatim.
type Plan struct {
	Extra                map[string]json.RawMessage `json:"-" yaml:"-"`
	MotivationalApproach string                     `json:"motivationalApproach,omitempty" yaml:"motivationalApproach,omitempty"`
	Milestones           []string                   `json:"milestones,omitempty" yaml:"milestones,omitempty"`
	DailyTasks           []DailyTask                `json:"dailyTasks,omitempty" yaml:"dailyTasks,omitempty"`
	SuccessMetrics       []string                   `json:"successMetrics,omitempty" yaml:"successMetrics,omitempty"`
	Challenges           []string                   `json:"challenges,omitempty" yaml:"challenges,omitempty"`
}

// planFields lists the typed plan keys in output order.
var planFields = []string{"milestones", "dailyTasks", "successMetrics", "challenges", "motivationalApproach"}

// ParsePlan decodes a plan payload. The only structural requirement is that
// the payload is a JSON object.
func ParsePlan(data []byte) (*Plan, error) {
	var p Plan
	if err := json.Unmarshal(data, &p); err != nil {
		return nil, err
	}
	return &p, nil
}

// UnmarshalJSON implements json.Unmarshaler.
func (p *Plan) UnmarshalJSON(data []byte) error {
	if !bytes.HasPrefix(bytes.TrimSpace(data), []byte("{")) {
		return ErrPlanNotObject
	}
	var raw map[string]json.RawMessage
	if err := json.Unmarshal(data, &raw); err != nil {
		return fmt.Errorf("decode plan: %w", err)
	}

	*p = Plan{}
	for key, value := range raw {
		var err error
		switch key {
		case "milestones":
			err = json.Unmarshal(value, &p.Milestones)
		case "dailyTasks":
			err = json.Unmarshal(value, &p.DailyTasks)
		case "successMetrics":
			err = json.Unmarshal(value, &p.SuccessMetrics)
		case "challenges":
			err = json.Unmarshal(value, &p.Challenges)
		case "motivationalApproach":
			err = json.Unmarshal(value, &p.MotivationalApproach)
		default:
			err = errKeepRaw
		}
		if err != nil {
			p.clearField(key)
			if p.Extra == nil {
				p.Extra = make(map[string]json.RawMessage)
			}
			p.Extra[key] = value
		}
	}
	return nil
}

var errKeepRaw = errors.New("keep raw")

// clearField drops a partially decoded typed field.
func (p *Plan) clearField(key string) {
	switch key {
	case "milestones":
		p.Milestones = nil
	case "dailyTasks":
		p.DailyTasks = nil
	case "successMetrics":
		p.SuccessMetrics = nil
	case "challenges":
		p.Challenges = nil
	case "motivationalApproach":
		p.MotivationalApproach = ""
	}
}

// MarshalJSON implements json.Marshaler.
func (p Plan) MarshalJSON() ([]byte, error) {
	var buf bytes.Buffer
	buf.WriteByte('{')
	first := true
	write := func(key string, value any) error {
		encoded, err := json.Marshal(value)
		if err != nil {
			return err
		}
		if !first {
			buf.WriteByte(',')
		}
		first = false
		k, _ := json.Marshal(key)
		buf.Write(k)
		buf.WriteByte(':')
		buf.Write(encoded)
		return nil
	}

	for _, key := range planFields {
		if raw, ok := p.Extra[key]; ok {
			if err := write(key, raw); err != nil {
				return nil, err
			}
			continue
		}
		var value any
		switch key {
		case "milestones":
			if p.Milestones != nil {
				value = p.Milestones
			}
		case "dailyTasks":
			if p.DailyTasks != nil {
				value = p.DailyTasks
			}
		case "successMetrics":
			if p.SuccessMetrics != nil {
				value = p.SuccessMetrics
			}
		case "challenges":
			if p.Challenges != nil {
				value = p.Challenges
			}
		case "motivationalApproach":
			if p.MotivationalApproach != "" {
				value = p.MotivationalApproach
			}
		}
		if value == nil {
			continue
		}
		if err := write(key, value); err != nil {
			return nil, err
		}
	}

	for _, key := range slices.Sorted(maps.Keys(p.Extra)) {
		if slices.Contains(planFields, key) {
			continue
		}
		if err := write(key, p.Extra[key]); err != nil {
			return nil, err
		}
	}
	buf.WriteByte('}')
	return buf.Bytes(), nil
}

// MarshalYAML renders the plan through its JSON form so Extra keys survive.
func (p Plan) MarshalYAML() (any, error) {
	data, err := p.MarshalJSON()
	if err != nil {
		return nil, err
	}
	var out map[string]any
	if err := json.Unmarshal(data, &out); err != nil {
		return nil, err
	}
	return out, nil
}
