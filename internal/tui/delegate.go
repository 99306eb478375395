package tui

import (
	"fmt"
	"io"

	"github.com/charmbracelet/bubbles/list"
	"github.com/charmbracelet/bubbles/progress"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/mattn/go-runewidth"

	"github.com/goalpilot/goalpilot/internal/domain"
)

type goalItem struct {
	goal domain.GoalWithProgress
}

func (g goalItem) FilterValue() string {
	return g.goal.Title
}

type goalDelegate struct {
	styles Styles
	bar    progress.Model
}

func newGoalDelegate(styles Styles) goalDelegate {
	return goalDelegate{
		styles: styles,
		bar:    newProgressBar(24),
	}
}

func newProgressBar(width int) progress.Model {
	return progress.New(
		progress.WithGradient(string(Colors.Primary), string(Colors.Success)),
		progress.WithWidth(width),
		progress.WithoutPercentage(),
	)
}

func (d goalDelegate) Height() int {
	return 2
}

func (d goalDelegate) Spacing() int {
	return 1
}

func (d goalDelegate) Update(_ tea.Msg, _ *list.Model) tea.Cmd {
	return nil
}

func (d goalDelegate) Render(w io.Writer, m list.Model, index int, item list.Item) {
	gi, ok := item.(goalItem)
	if !ok {
		return
	}
	goal := gi.goal
	selected := index == m.Index()

	indicator := " "
	titleStyle := d.styles.GoalTitle
	if selected {
		indicator = ">"
		titleStyle = d.styles.GoalTitleSelected
	}

	maxTitleLen := m.Width() - 6
	if maxTitleLen < 10 {
		maxTitleLen = 10
	}
	title := goal.Title
	if runewidth.StringWidth(title) > maxTitleLen {
		title = runewidth.Truncate(title, maxTitleLen-3, "...")
	}

	_, _ = fmt.Fprintln(w, "  "+d.styles.SelectionIndicator.Render(indicator)+" "+titleStyle.Render(title))
	_, _ = fmt.Fprint(w, "    "+d.bar.ViewAs(progressRatio(goal.Progress))+" "+d.styles.GoalMeta.Render(progressLabel(goal.Progress, goal.DurationDays)))
}

// progressRatio returns the completed share in [0, 1]; nil means no snapshot yet.
func progressRatio(p *domain.Progress) float64 {
	if p == nil {
		return 0
	}
	return float64(p.ProgressPercentage) / 100
}

func progressLabel(p *domain.Progress, days int) string {
	if p == nil {
		return fmt.Sprintf("no progress yet · %d days", days)
	}
	return fmt.Sprintf("%3d%% (%d/%d) · %d days", p.ProgressPercentage, p.CompletedTasks, p.TotalTasks, days)
}
