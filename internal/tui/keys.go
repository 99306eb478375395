package tui

import "github.com/charmbracelet/bubbles/key"

// KeyMap defines the keybindings for the TUI.
type KeyMap struct {
	// Navigation
	Up     key.Binding
	Down   key.Binding
	Open   key.Binding // Open goal detail
	Back   key.Binding // Back to goal list or cancel input
	Quit   key.Binding
	Help   key.Binding
	Reload key.Binding

	// Actions
	New      key.Binding // Create a goal
	Toggle   key.Binding // Toggle task completion
	Evaluate key.Binding // Request feedback
	Remind   key.Binding // Request a reminder
	Report   key.Binding // Weekly report for the current week
}

// DefaultKeyMap returns the default keybindings.
func DefaultKeyMap() KeyMap {
	return KeyMap{
		Up: key.NewBinding(
			key.WithKeys("up", "k"),
			key.WithHelp("↑/k", "up"),
		),
		Down: key.NewBinding(
			key.WithKeys("down", "j"),
			key.WithHelp("↓/j", "down"),
		),
		Open: key.NewBinding(
			key.WithKeys("enter"),
			key.WithHelp("enter", "open"),
		),
		Back: key.NewBinding(
			key.WithKeys("esc"),
			key.WithHelp("esc", "back"),
		),
		Quit: key.NewBinding(
			key.WithKeys("q", "ctrl+c"),
			key.WithHelp("q", "quit"),
		),
		Help: key.NewBinding(
			key.WithKeys("?"),
			key.WithHelp("?", "help"),
		),
		Reload: key.NewBinding(
			key.WithKeys("R"),
			key.WithHelp("R", "reload"),
		),
		New: key.NewBinding(
			key.WithKeys("n"),
			key.WithHelp("n", "new goal"),
		),
		Toggle: key.NewBinding(
			key.WithKeys(" "),
			key.WithHelp("space", "toggle done"),
		),
		Evaluate: key.NewBinding(
			key.WithKeys("e"),
			key.WithHelp("e", "evaluate"),
		),
		Remind: key.NewBinding(
			key.WithKeys("r"),
			key.WithHelp("r", "reminder"),
		),
		Report: key.NewBinding(
			key.WithKeys("w"),
			key.WithHelp("w", "weekly report"),
		),
	}
}

// ShortHelp returns keybindings for the short help view.
func (k KeyMap) ShortHelp() []key.Binding {
	return []key.Binding{k.Open, k.Toggle, k.New, k.Evaluate, k.Remind, k.Help, k.Quit}
}

// FullHelp returns keybindings for the full help view.
func (k KeyMap) FullHelp() [][]key.Binding {
	return [][]key.Binding{
		{k.Up, k.Down, k.Open, k.Back},
		{k.New, k.Toggle, k.Reload},
		{k.Evaluate, k.Remind, k.Report},
		{k.Help, k.Quit},
	}
}
