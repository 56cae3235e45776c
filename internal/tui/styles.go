package tui

import "github.com/charmbracelet/lipgloss"

// Table palette.
const (
	feltGreen = lipgloss.Color("#1E7B4F")
	chalk     = lipgloss.Color("#F4F1E8")
	brass     = lipgloss.Color("#E0B84C")
	cardRed   = lipgloss.Color("#E5484D")
	cardBlack = lipgloss.Color("#D8D8D8")
	mint      = lipgloss.Color("#5FD39A")
	slate     = lipgloss.Color("#6E7681")
	accent    = lipgloss.Color("#2FBF71")
)

var bold = lipgloss.NewStyle().Bold(true)

var (
	HeaderStyle     = bold.Foreground(chalk).Background(feltGreen).Padding(0, 1)
	PromptStyle     = bold.Foreground(brass)
	RedCardStyle    = bold.Foreground(cardRed)
	BlackCardStyle  = bold.Foreground(cardBlack)
	DealerStyle     = bold.Foreground(brass).Underline(true)
	ActiveSeatStyle = bold.Foreground(accent)
	ErrorStyle      = bold.Foreground(cardRed)

	GainStyle = lipgloss.NewStyle().Foreground(mint)
	LossStyle = lipgloss.NewStyle().Foreground(cardRed)
	InfoStyle = lipgloss.NewStyle().Foreground(slate)
)

func paneStyle(focused bool) lipgloss.Style {
	border := slate
	if focused {
		border = accent
	}
	return lipgloss.NewStyle().Border(lipgloss.RoundedBorder()).BorderForeground(border)
}
