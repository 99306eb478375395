package tui

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
)

// Update handles messages and updates the model.
func (m *Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		return m.handleKeyMsg(msg)

	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.updateLayoutSizes()
		return m, nil

	case MsgGoalsLoaded:
		m.goals = msg.Goals
		m.updateGoalList()
		return m, nil

	case MsgGoalLoaded:
		m.detail = msg.Detail
		if m.taskCursor >= len(msg.Detail.Tasks) {
			m.taskCursor = 0
		}
		m.mode = ModeDetail
		return m, nil

	case MsgGoalCreated:
		m.mode = ModeGoals
		m.titleInput.Reset()
		m.daysInput.Reset()
		m.notice = &MsgCoachText{
			Title: "Goal created",
			Text:  fmt.Sprintf("%q: %d days planned.", msg.Goal.Title, msg.Goal.DurationDays),
		}
		return m, m.loadGoals()

	case MsgTaskToggled:
		if m.detail != nil {
			for i, t := range m.detail.Tasks {
				if t.ID == msg.Task.ID {
					m.detail.Tasks[i] = msg.Task
				}
			}
			m.detail.Progress = append(m.detail.Progress, msg.Progress)
		}
		return m, m.loadGoals()

	case MsgCoachText:
		m.notice = &msg
		return m, nil

	case MsgError:
		m.err = msg.Err
		if m.mode == ModeInputDays {
			m.daysInput.Focus()
		}
		return m, nil
	}

	return m, nil
}

// handleKeyMsg handles keyboard input.
func (m *Model) handleKeyMsg(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	// Clear error on any key press
	if m.err != nil {
		m.err = nil
	}

	if msg.Type == tea.KeyCtrlC {
		return m, tea.Quit
	}

	switch m.mode {
	case ModeGoals:
		return m.handleGoalsMode(msg)
	case ModeDetail:
		return m.handleDetailMode(msg)
	case ModeInputTitle:
		return m.handleInputTitleMode(msg)
	case ModeInputDays:
		return m.handleInputDaysMode(msg)
	case ModeHelp:
		return m.handleHelpMode(msg)
	}

	return m, nil
}

// handleGoalsMode handles keys on the goal list.
func (m *Model) handleGoalsMode(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case key.Matches(msg, m.keys.Quit):
		return m, tea.Quit

	case key.Matches(msg, m.keys.Up), key.Matches(msg, m.keys.Down):
		var cmd tea.Cmd
		m.goalList, cmd = m.goalList.Update(msg)
		return m, cmd

	case key.Matches(msg, m.keys.Open):
		goal := m.SelectedGoal()
		if goal == nil {
			return m, nil
		}
		m.taskCursor = 0
		m.notice = nil
		return m, m.loadGoal(goal.ID)

	case key.Matches(msg, m.keys.New):
		m.mode = ModeInputTitle
		m.notice = nil
		m.titleInput.Reset()
		m.daysInput.Reset()
		m.titleInput.Focus()
		return m, nil

	case key.Matches(msg, m.keys.Reload):
		return m, m.loadGoals()

	case key.Matches(msg, m.keys.Help):
		m.prevMode = m.mode
		m.mode = ModeHelp
		return m, nil

	case key.Matches(msg, m.keys.Back):
		m.notice = nil
		return m, nil
	}

	if cmd := m.handleCoachKeys(msg); cmd != nil {
		return m, cmd
	}
	return m, nil
}

// handleDetailMode handles keys on a goal's task list.
func (m *Model) handleDetailMode(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case key.Matches(msg, m.keys.Quit):
		return m, tea.Quit

	case key.Matches(msg, m.keys.Back):
		if m.notice != nil {
			m.notice = nil
			return m, nil
		}
		m.mode = ModeGoals
		m.detail = nil
		m.taskCursor = 0
		return m, m.loadGoals()

	case key.Matches(msg, m.keys.Up):
		if m.taskCursor > 0 {
			m.taskCursor--
		}
		return m, nil

	case key.Matches(msg, m.keys.Down):
		if m.detail != nil && m.taskCursor < len(m.detail.Tasks)-1 {
			m.taskCursor++
		}
		return m, nil

	case key.Matches(msg, m.keys.Toggle):
		task := m.SelectedTask()
		if task == nil {
			return m, nil
		}
		return m, m.toggleTask(task)

	case key.Matches(msg, m.keys.Reload):
		if goal := m.SelectedGoal(); goal != nil {
			return m, m.loadGoal(goal.ID)
		}
		return m, nil

	case key.Matches(msg, m.keys.Help):
		m.prevMode = m.mode
		m.mode = ModeHelp
		return m, nil
	}

	if cmd := m.handleCoachKeys(msg); cmd != nil {
		return m, cmd
	}
	return m, nil
}

// handleCoachKeys dispatches evaluate, remind and report for the selected goal.
func (m *Model) handleCoachKeys(msg tea.KeyMsg) tea.Cmd {
	goal := m.SelectedGoal()
	if goal == nil {
		return nil
	}
	switch {
	case key.Matches(msg, m.keys.Evaluate):
		return m.evaluate(goal.ID)
	case key.Matches(msg, m.keys.Remind):
		return m.remind(goal.ID)
	case key.Matches(msg, m.keys.Report):
		return m.report(goal.ID, m.currentWeek(goal))
	}
	return nil
}

// handleInputTitleMode handles keys while typing the goal title.
func (m *Model) handleInputTitleMode(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.Type {
	case tea.KeyEsc:
		m.cancelInput()
		return m, nil
	case tea.KeyEnter:
		if strings.TrimSpace(m.titleInput.Value()) == "" {
			m.err = fmt.Errorf("title is required")
			return m, nil
		}
		m.titleInput.Blur()
		m.mode = ModeInputDays
		m.daysInput.Focus()
		return m, nil
	}

	var cmd tea.Cmd
	m.titleInput, cmd = m.titleInput.Update(msg)
	return m, cmd
}

// handleInputDaysMode handles keys while typing the goal duration.
func (m *Model) handleInputDaysMode(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.Type {
	case tea.KeyEsc:
		m.cancelInput()
		return m, nil
	case tea.KeyEnter:
		days, err := strconv.Atoi(strings.TrimSpace(m.daysInput.Value()))
		if err != nil || days <= 0 {
			m.err = fmt.Errorf("duration must be a positive number of days")
			return m, nil
		}
		m.daysInput.Blur()
		return m, m.createGoal(strings.TrimSpace(m.titleInput.Value()), days)
	}

	var cmd tea.Cmd
	m.daysInput, cmd = m.daysInput.Update(msg)
	return m, cmd
}

// handleHelpMode closes the help overlay on any key.
func (m *Model) handleHelpMode(_ tea.KeyMsg) (tea.Model, tea.Cmd) {
	m.mode = m.prevMode
	return m, nil
}

func (m *Model) cancelInput() {
	m.titleInput.Blur()
	m.daysInput.Blur()
	m.titleInput.Reset()
	m.daysInput.Reset()
	m.mode = ModeGoals
}
