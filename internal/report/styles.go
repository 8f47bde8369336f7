package report

import "github.com/charmbracelet/lipgloss"

// Color palette - keeping it minimal and accessible.
var (
	ColorPrimary   = lipgloss.Color("39")  // Blue
	ColorSecondary = lipgloss.Color("245") // Gray
	ColorSuccess   = lipgloss.Color("34")  // Green
	ColorWarning   = lipgloss.Color("214") // Orange
	ColorMuted     = lipgloss.Color("240") // Dark gray
)

var (
	TitleStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(ColorPrimary)

	HeaderStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(ColorPrimary).
			Padding(0, 1)

	CellStyle = lipgloss.NewStyle().
			Padding(0, 1)

	TypeStyle = lipgloss.NewStyle().
			Foreground(ColorSuccess).
			Padding(0, 1)

	// WarnCellStyle marks columns stored as text or entirely empty.
	WarnCellStyle = lipgloss.NewStyle().
			Foreground(ColorWarning).
			Padding(0, 1)

	BorderStyle = lipgloss.NewStyle().
			Foreground(ColorMuted)
)
