// Package tui provides the terminal user interface for goalpilot.
package tui

// Mode represents the current UI mode.
type Mode int

const (
	ModeGoals      Mode = iota // Goal list (default)
	ModeDetail                 // Task list of the selected goal
	ModeInputTitle             // Title input (new goal)
	ModeInputDays              // Duration input (new goal)
	ModeHelp                   // Help overlay
)

// String returns the string representation of the mode.
func (m Mode) String() string {
	switch m {
	case ModeGoals:
		return "goals"
	case ModeDetail:
		return "detail"
	case ModeInputTitle:
		return "input_title"
	case ModeInputDays:
		return "input_days"
	case ModeHelp:
		return "help"
	default:
		return "unknown"
	}
}

// IsInputMode returns true if the mode accepts text input.
func (m Mode) IsInputMode() bool {
	switch m {
	case ModeInputTitle, ModeInputDays:
		return true
	case ModeGoals, ModeDetail, ModeHelp:
		return false
	}
	return false
}
