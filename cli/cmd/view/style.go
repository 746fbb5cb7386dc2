package view

import "github.com/charmbracelet/lipgloss"

var (
	titleStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("6")).
			Bold(true)
	fileStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("4")).
			Bold(true)
	checkpointStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("3"))
	addrStyle       = lipgloss.NewStyle().Foreground(lipgloss.Color("5"))
	functionStyle   = lipgloss.NewStyle().
			Foreground(lipgloss.Color("8")).
			Italic(true)
	dimStyle      = lipgloss.NewStyle().Foreground(lipgloss.Color("8"))
	hintStyle     = lipgloss.NewStyle().Foreground(lipgloss.Color("8"))
	errorStyle    = lipgloss.NewStyle().Foreground(lipgloss.Color("1"))
	promptStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("6")).Bold(true)
	selectedStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("0")).
			Background(lipgloss.Color("4"))
)

// cell renders s with style, padded or truncated to exactly w cells.
func cell(style lipgloss.Style, s string, w int) string {
	if w <= 0 {
		return ""
	}

	return style.Inline(true).Width(w).MaxWidth(w).Render(s)
}
