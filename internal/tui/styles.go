package tui

import "github.com/charmbracelet/lipgloss"

// Colors defines the color palette for the TUI.
var Colors = struct {
	Primary   lipgloss.Color
	Secondary lipgloss.Color
	Muted     lipgloss.Color
	Error     lipgloss.Color
	Success   lipgloss.Color
	Warning   lipgloss.Color

	TitleNormal   lipgloss.Color
	TitleSelected lipgloss.Color
	DescNormal    lipgloss.Color
}{
	Primary:   lipgloss.Color("#6C5CE7"), // Purple
	Secondary: lipgloss.Color("#A29BFE"), // Lavender
	Muted:     lipgloss.Color("#636E72"), // Gray
	Error:     lipgloss.Color("#D63031"), // Red
	Success:   lipgloss.Color("#00B894"), // Green
	Warning:   lipgloss.Color("#FDCB6E"), // Yellow

	TitleNormal:   lipgloss.Color("#DFE6E9"),
	TitleSelected: lipgloss.Color("#FFEAA7"),
	DescNormal:    lipgloss.Color("#636E72"),
}

// Styles contains all the lipgloss styles for the TUI.
type Styles struct {
	App        lipgloss.Style
	Header     lipgloss.Style
	HeaderText lipgloss.Style

	// Goal list
	SelectionIndicator lipgloss.Style
	GoalTitle          lipgloss.Style
	GoalTitleSelected  lipgloss.Style
	GoalMeta           lipgloss.Style

	// Task list
	TaskDay   lipgloss.Style
	TaskDone  lipgloss.Style
	TaskTodo  lipgloss.Style
	TaskTitle lipgloss.Style
	TaskDesc  lipgloss.Style

	// Panels
	Notice      lipgloss.Style
	NoticeTitle lipgloss.Style
	Error       lipgloss.Style
	InputLabel  lipgloss.Style
	Empty       lipgloss.Style
	Footer      lipgloss.Style
}

// DefaultStyles returns the default styles.
func DefaultStyles() Styles {
	return Styles{
		App: lipgloss.NewStyle().Padding(1, 2),
		Header: lipgloss.NewStyle().
			Foreground(lipgloss.Color("#FFFFFF")).
			Background(Colors.Primary).
			Padding(0, 1).
			Bold(true),
		HeaderText: lipgloss.NewStyle().Foreground(Colors.Secondary),

		SelectionIndicator: lipgloss.NewStyle().Foreground(Colors.Primary),
		GoalTitle:          lipgloss.NewStyle().Foreground(Colors.TitleNormal),
		GoalTitleSelected:  lipgloss.NewStyle().Foreground(Colors.TitleSelected).Bold(true),
		GoalMeta:           lipgloss.NewStyle().Foreground(Colors.DescNormal),

		TaskDay:   lipgloss.NewStyle().Foreground(Colors.Secondary).Width(8),
		TaskDone:  lipgloss.NewStyle().Foreground(Colors.Success),
		TaskTodo:  lipgloss.NewStyle().Foreground(Colors.Muted),
		TaskTitle: lipgloss.NewStyle().Foreground(Colors.TitleNormal),
		TaskDesc:  lipgloss.NewStyle().Foreground(Colors.DescNormal).PaddingLeft(14),

		Notice: lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(Colors.Secondary).
			Padding(0, 1),
		NoticeTitle: lipgloss.NewStyle().Foreground(Colors.Warning).Bold(true),
		Error:       lipgloss.NewStyle().Foreground(Colors.Error).Bold(true),
		InputLabel:  lipgloss.NewStyle().Foreground(Colors.Secondary).Bold(true),
		Empty:       lipgloss.NewStyle().Foreground(Colors.Muted).Italic(true),
		Footer:      lipgloss.NewStyle().MarginTop(1),
	}
}
