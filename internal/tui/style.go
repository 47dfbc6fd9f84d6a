package tui

import "github.com/charmbracelet/lipgloss"

var (
	borderASCII = lipgloss.Border{
		Top:         "-",
		Bottom:      "-",
		Left:        "|",
		Right:       "|",
		TopLeft:     "+",
		TopRight:    "+",
		BottomLeft:  "+",
		BottomRight: "+",
	}

	titleStyle   = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("#cba6f7"))
	helpBarStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("244"))
	modalStyle   = lipgloss.NewStyle().Border(borderASCII).Padding(1, 2)

	rowStyle      = lipgloss.NewStyle().Foreground(lipgloss.Color("252"))
	selectedStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("230")).Background(lipgloss.Color("24"))
	doneStyle     = lipgloss.NewStyle().Foreground(lipgloss.Color("244")).Strikethrough(true)
	cursorStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("33")).Bold(true)

	tabActiveStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("230")).Background(lipgloss.Color("24")).Bold(true)
	tabInactiveStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("250"))

	progressFullStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("#a6e3a1"))
	progressEmptyStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("238"))

	pastDueStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("#f38ba8"))
	todayStyle    = lipgloss.NewStyle().Foreground(lipgloss.Color("#f9e2af"))
	tomorrowStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("#89dceb"))
	laterStyle    = lipgloss.NewStyle().Foreground(lipgloss.Color("244"))

	valueMuted         = lipgloss.NewStyle().Foreground(lipgloss.Color("244"))
	statusErrorStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("1"))
	statusSuccessStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("2"))
	selectedButton     = lipgloss.NewStyle().Foreground(lipgloss.Color("33"))
)

// chipStyle renders a tag in its palette colors.
func chipStyle(background, foreground string) lipgloss.Style {
	return lipgloss.NewStyle().
		Background(lipgloss.Color(background)).
		Foreground(lipgloss.Color(foreground))
}
