package cli

import (
	"encoding/json"
	"fmt"
	"io"
	"time"

	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"

	"github.com/goalpilot/goalpilot/internal/domain"
)

// Output formats accepted by --format.
const (
	formatText = "text"
	formatJSON = "json"
	formatYAML = "yaml"
)

const timeLayout = "2006-01-02 15:04"

func addFormatFlag(cmd *cobra.Command, format *string) {
	cmd.Flags().StringVarP(format, "format", "o", formatText, "Output format: text, json or yaml")
}

// writeStructured encodes v as JSON or YAML.
// It reports false for the text format so the caller can print its own layout.
func writeStructured(w io.Writer, format string, v any) (bool, error) {
	switch format {
	case formatText, "":
		return false, nil
	case formatJSON:
		enc := json.NewEncoder(w)
		enc.SetIndent("", "  ")
		return true, enc.Encode(v)
	case formatYAML:
		enc := yaml.NewEncoder(w)
		enc.SetIndent(2)
		if err := enc.Encode(v); err != nil {
			return true, err
		}
		return true, enc.Close()
	default:
		return true, fmt.Errorf("unknown format %q (want text, json or yaml)", format)
	}
}

// goalView is a goal flattened with its latest progress snapshot.
type goalView struct {
	Progress    *domain.Progress `json:"progress" yaml:"progress"`
	domain.Goal `yaml:",inline"`
}

func newGoalViews(goals []domain.GoalWithProgress) []goalView {
	views := make([]goalView, len(goals))
	for i, g := range goals {
		views[i] = goalView{Goal: g.Goal, Progress: g.Progress}
	}
	return views
}

// progressText renders a snapshot as "50% (2/4)", or "-" when absent.
func progressText(p *domain.Progress) string {
	if p == nil {
		return "-"
	}
	return fmt.Sprintf("%d%% (%d/%d)", p.ProgressPercentage, p.CompletedTasks, p.TotalTasks)
}

func doneMark(completed bool) string {
	if completed {
		return "x"
	}
	return " "
}

func formatTime(t time.Time) string {
	if t.IsZero() {
		return "-"
	}
	return t.Local().Format(timeLayout)
}
