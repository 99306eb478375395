package tui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/goalpilot/goalpilot/internal/domain"
)

// View renders the TUI.
func (m *Model) View() string {
	if m.width == 0 {
		return "Loading..."
	}

	var content string
	switch m.mode {
	case ModeHelp:
		content = m.viewHelp()
	case ModeDetail:
		content = m.viewDetail()
	case ModeGoals, ModeInputTitle, ModeInputDays:
		content = m.viewMain()
	}

	return m.styles.App.Render(content)
}

// viewMain renders the goal list with the new-goal form when active.
func (m *Model) viewMain() string {
	var b strings.Builder

	b.WriteString(m.viewHeader("Goals", fmt.Sprintf("%d goals", len(m.goals))))
	b.WriteString("\n\n")

	if len(m.goals) == 0 {
		b.WriteString(m.styles.Empty.Render("No goals yet. Press n to create one."))
		b.WriteString("\n")
	} else {
		b.WriteString(m.goalList.View())
		b.WriteString("\n")
	}

	switch m.mode {
	case ModeInputTitle:
		b.WriteString("\n")
		b.WriteString(m.styles.InputLabel.Render("Title: "))
		b.WriteString(m.titleInput.View())
		b.WriteString("\n")
	case ModeInputDays:
		b.WriteString("\n")
		b.WriteString(m.styles.InputLabel.Render("Title: ") + m.titleInput.Value() + "\n")
		b.WriteString(m.styles.InputLabel.Render("Days:  "))
		b.WriteString(m.daysInput.View())
		b.WriteString("\n")
	case ModeGoals, ModeDetail, ModeHelp:
	}

	b.WriteString(m.viewNotice())
	b.WriteString(m.viewError())
	b.WriteString("\n")
	b.WriteString(m.viewFooter())
	return b.String()
}

// viewDetail renders the open goal's tasks ordered by day.
func (m *Model) viewDetail() string {
	if m.detail == nil || m.detail.Goal == nil {
		return m.viewMain()
	}
	goal := m.detail.Goal

	var b strings.Builder
	b.WriteString(m.viewHeader(goal.Title, fmt.Sprintf("%d days", goal.DurationDays)))
	b.WriteString("\n\n")

	latest := domain.LatestProgress(m.detail.Progress)
	b.WriteString(m.bar.ViewAs(progressRatio(latest)))
	b.WriteString(" ")
	b.WriteString(m.styles.GoalMeta.Render(progressLabel(latest, goal.DurationDays)))
	b.WriteString("\n\n")

	if len(m.detail.Tasks) == 0 {
		b.WriteString(m.styles.Empty.Render("This goal has no tasks."))
		b.WriteString("\n")
	}
	for i, t := range m.detail.Tasks {
		indicator := " "
		if i == m.taskCursor {
			indicator = ">"
		}
		check := m.styles.TaskTodo.Render("[ ]")
		if t.Completed {
			check = m.styles.TaskDone.Render("[x]")
		}
		b.WriteString(m.styles.SelectionIndicator.Render(indicator) + " ")
		b.WriteString(check + " ")
		b.WriteString(m.styles.TaskDay.Render(fmt.Sprintf("Day %d", t.Day)))
		b.WriteString(m.styles.TaskTitle.Render(t.Title))
		b.WriteString("\n")
		if i == m.taskCursor && t.Description != "" {
			b.WriteString(m.styles.TaskDesc.Render(t.Description))
			b.WriteString("\n")
		}
	}

	b.WriteString(m.viewNotice())
	b.WriteString(m.viewError())
	b.WriteString("\n")
	b.WriteString(m.viewFooter())
	return b.String()
}

// viewHeader renders a title bar with right-aligned muted text.
func (m *Model) viewHeader(title, right string) string {
	left := m.styles.HeaderText.Render(title)
	rightText := lipgloss.NewStyle().Foreground(Colors.Muted).Render(right)

	headerWidth := m.width - 6
	if headerWidth < 40 {
		headerWidth = 40
	}
	spacing := headerWidth - lipgloss.Width(left) - lipgloss.Width(rightText)
	if spacing < 1 {
		spacing = 1
	}
	return m.styles.Header.Render(left + strings.Repeat(" ", spacing) + rightText)
}

func (m *Model) viewNotice() string {
	if m.notice == nil {
		return ""
	}
	width := m.width - 8
	if width < 30 {
		width = 30
	}
	body := m.styles.NoticeTitle.Render(m.notice.Title) + "\n" + m.notice.Text
	return "\n" + m.styles.Notice.Width(width).Render(body) + "\n"
}

func (m *Model) viewError() string {
	if m.err == nil {
		return ""
	}
	return "\n" + m.styles.Error.Render("Error: "+m.err.Error()) + "\n"
}

func (m *Model) viewFooter() string {
	return m.styles.Footer.Render(m.help.View(m.keys))
}

func (m *Model) viewHelp() string {
	var b strings.Builder
	b.WriteString(m.viewHeader("Help", "press any key to close"))
	b.WriteString("\n\n")
	b.WriteString(m.help.FullHelpView(m.keys.FullHelp()))
	b.WriteString("\n")
	return b.String()
}
