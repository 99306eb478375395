package tui

import (
	"github.com/goalpilot/goalpilot/internal/domain"
	"github.com/goalpilot/goalpilot/internal/usecase"
)

// Msg is the sealed interface for all TUI messages.
//
// go-sumtype:decl Msg
type Msg interface {
	sealed()
}

// MsgGoalsLoaded is sent when the goal list is loaded.
type MsgGoalsLoaded struct {
	Goals []domain.GoalWithProgress
}

func (MsgGoalsLoaded) sealed() {}

// MsgGoalLoaded is sent when a goal's detail is loaded.
type MsgGoalLoaded struct {
	Detail *usecase.ShowGoalOutput
}

func (MsgGoalLoaded) sealed() {}

// MsgGoalCreated is sent when a new goal is created.
type MsgGoalCreated struct {
	Goal *domain.Goal
}

func (MsgGoalCreated) sealed() {}

// MsgTaskToggled is sent when a task's completion flag changes.
type MsgTaskToggled struct {
	Task     *domain.Task
	Progress *domain.Progress
}

func (MsgTaskToggled) sealed() {}

// MsgCoachText is sent when feedback, a reminder or a report arrives.
type MsgCoachText struct {
	Title string
	Text  string
}

func (MsgCoachText) sealed() {}

// MsgError is sent when an operation fails.
type MsgError struct {
	Err error
}

func (MsgError) sealed() {}
