package tui

import (
	"context"
	"fmt"
	"math"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/list"
	"github.com/charmbracelet/bubbles/progress"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/goalpilot/goalpilot/internal/app"
	"github.com/goalpilot/goalpilot/internal/domain"
	"github.com/goalpilot/goalpilot/internal/usecase"
)

// Model is the main bubbletea model for the TUI.
type Model struct {
	// Dependencies (pointers first for alignment)
	container *app.Container
	err       error
	notice    *MsgCoachText
	detail    *usecase.ShowGoalOutput

	// State
	goals []domain.GoalWithProgress

	// Components
	keys       KeyMap
	styles     Styles
	help       help.Model
	goalList   list.Model
	bar        progress.Model
	titleInput textinput.Model
	daysInput  textinput.Model

	// Numeric state (smaller types last)
	mode       Mode
	prevMode   Mode
	taskCursor int
	width      int
	height     int
}

// New creates a new TUI Model with the given container.
func New(c *app.Container) *Model {
	ti := textinput.New()
	ti.Placeholder = "What do you want to achieve?"
	ti.CharLimit = 200

	di := textinput.New()
	di.Placeholder = "Number of days"
	di.CharLimit = 4

	styles := DefaultStyles()
	goalList := list.New([]list.Item{}, newGoalDelegate(styles), 0, 0)
	goalList.SetShowTitle(false)
	goalList.SetShowStatusBar(false)
	goalList.SetShowHelp(false)
	goalList.SetFilteringEnabled(false)
	goalList.DisableQuitKeybindings()

	return &Model{
		container:  c,
		mode:       ModeGoals,
		keys:       DefaultKeyMap(),
		styles:     styles,
		help:       help.New(),
		goalList:   goalList,
		bar:        newProgressBar(40),
		titleInput: ti,
		daysInput:  di,
	}
}

// Init initializes the model and returns the initial command.
func (m *Model) Init() tea.Cmd {
	return m.loadGoals()
}

// Mode returns the current UI mode.
func (m *Model) Mode() Mode {
	return m.mode
}

// SelectedGoal returns the goal under the cursor, or the open goal in detail mode.
func (m *Model) SelectedGoal() *domain.Goal {
	if m.mode == ModeDetail && m.detail != nil {
		return m.detail.Goal
	}
	item, ok := m.goalList.SelectedItem().(goalItem)
	if !ok {
		return nil
	}
	g := item.goal.Goal
	return &g
}

// SelectedTask returns the task under the cursor in detail mode.
func (m *Model) SelectedTask() *domain.Task {
	if m.detail == nil || m.taskCursor < 0 || m.taskCursor >= len(m.detail.Tasks) {
		return nil
	}
	return m.detail.Tasks[m.taskCursor]
}

// updateGoalList syncs the list component with the loaded goals.
func (m *Model) updateGoalList() {
	items := make([]list.Item, len(m.goals))
	for i, g := range m.goals {
		items[i] = goalItem{goal: g}
	}
	m.goalList.SetItems(items)
}

func (m *Model) updateLayoutSizes() {
	listHeight := m.height - 8
	if listHeight < 3 {
		listHeight = 3
	}
	m.goalList.SetSize(m.width-4, listHeight)
	m.help.Width = m.width
}

// currentWeek returns the 1-based week of goal as of now.
func (m *Model) currentWeek(goal *domain.Goal) int {
	days := domain.DaysElapsed(goal.CreatedAt, m.container.Clock.Now())
	week := int(math.Ceil(float64(days) / 7))
	if week < 1 {
		return 1
	}
	return week
}

// Commands

func (m *Model) loadGoals() tea.Cmd {
	return func() tea.Msg {
		out, err := m.container.ListGoalsUseCase().Execute(context.Background(), usecase.ListGoalsInput{})
		if err != nil {
			return MsgError{Err: err}
		}
		return MsgGoalsLoaded{Goals: out.Goals}
	}
}

func (m *Model) loadGoal(goalID string) tea.Cmd {
	return func() tea.Msg {
		out, err := m.container.ShowGoalUseCase().Execute(context.Background(), usecase.ShowGoalInput{GoalID: goalID})
		if err != nil {
			return MsgError{Err: err}
		}
		return MsgGoalLoaded{Detail: out}
	}
}

func (m *Model) createGoal(title string, days int) tea.Cmd {
	return func() tea.Msg {
		out, err := m.container.CreateGoalUseCase().Execute(context.Background(), usecase.CreateGoalInput{
			Title:        title,
			DurationDays: days,
		})
		if err != nil {
			return MsgError{Err: err}
		}
		return MsgGoalCreated{Goal: out.Goal}
	}
}

func (m *Model) toggleTask(task *domain.Task) tea.Cmd {
	return func() tea.Msg {
		out, err := m.container.CompleteTaskUseCase().Execute(context.Background(), usecase.CompleteTaskInput{
			TaskID:    task.ID,
			Completed: !task.Completed,
		})
		if err != nil {
			return MsgError{Err: err}
		}
		return MsgTaskToggled{Task: out.Task, Progress: out.Progress}
	}
}

func (m *Model) evaluate(goalID string) tea.Cmd {
	return func() tea.Msg {
		out, err := m.container.EvaluateProgressUseCase().Execute(context.Background(), usecase.EvaluateProgressInput{GoalID: goalID})
		if err != nil {
			return MsgError{Err: err}
		}
		fb := out.Feedback
		return MsgCoachText{
			Title: "Evaluation",
			Text:  fb.Analysis + "\n\n" + fb.Encouragement + "\n\nNext: " + fb.NextAction + "\nTip: " + fb.Tip,
		}
	}
}

func (m *Model) remind(goalID string) tea.Cmd {
	return func() tea.Msg {
		out, err := m.container.GenerateReminderUseCase().Execute(context.Background(), usecase.GenerateReminderInput{GoalID: goalID})
		if err != nil {
			return MsgError{Err: err}
		}
		return MsgCoachText{Title: "Reminder", Text: out.Reminder}
	}
}

func (m *Model) report(goalID string, week int) tea.Cmd {
	return func() tea.Msg {
		out, err := m.container.WeeklyReportUseCase().Execute(context.Background(), usecase.WeeklyReportInput{GoalID: goalID, Week: week})
		if err != nil {
			return MsgError{Err: err}
		}
		return MsgCoachText{Title: fmt.Sprintf("Week %d report", week), Text: out.Report}
	}
}
