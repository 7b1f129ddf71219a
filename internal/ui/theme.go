package ui

import "github.com/charmbracelet/lipgloss"

var (
	colorMantle   = lipgloss.Color("#181825")
	colorSurface1 = lipgloss.Color("#45475a")
	colorText     = lipgloss.Color("#cdd6f4")
	colorSubtext  = lipgloss.Color("#a6adc8")
	colorLavender = lipgloss.Color("#b4befe")
	colorSapphire = lipgloss.Color("#74c7ec")
	colorPeach    = lipgloss.Color("#fab387")

	paneStyle = lipgloss.NewStyle().
			BorderStyle(lipgloss.RoundedBorder()).
			BorderForeground(colorSurface1).
			Foreground(colorText).
			Padding(0, 1)

	paneActiveStyle = paneStyle.BorderForeground(colorLavender)

	titleStyle = lipgloss.NewStyle().Foreground(colorSapphire).Bold(true)
	mutedStyle = lipgloss.NewStyle().Foreground(colorSubtext)
	hotStyle   = lipgloss.NewStyle().Foreground(colorPeach).Bold(true)
	badgeStyle = lipgloss.NewStyle().Foreground(colorMantle).Background(colorPeach).Padding(0, 1)

	badgeActiveStyle = badgeStyle.Background(colorLavender).Bold(true)
)

// swatch renders a small block in a dataset colour
func swatch(hex string) string {
	if hex == "" {
		return " "
	}
	return lipgloss.NewStyle().Foreground(lipgloss.Color(hex)).Render("●")
}
