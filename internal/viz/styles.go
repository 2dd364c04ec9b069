package viz

import (
	"strings"

	"github.com/charmbracelet/lipgloss"
)

var (
	helpBox = lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(lipgloss.Color("#444466")).
		Padding(1, 2)

	graphStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("49")).Padding(1, 0)
)

func statusStyles(t Theme) (label, value, muted lipgloss.Style) {
	label = lipgloss.NewStyle().Foreground(t.Muted)
	value = lipgloss.NewStyle().Foreground(t.Primary).Bold(true)
	muted = lipgloss.NewStyle().Foreground(t.Muted).Italic(true)
	return label, value, muted
}

// field renders "label value" pairs separated by two spaces.
func field(label, value lipgloss.Style, pairs ...string) string {
	parts := make([]string, 0, len(pairs)/2)
	for i := 0; i+1 < len(pairs); i += 2 {
		parts = append(parts, label.Render(pairs[i])+" "+value.Render(pairs[i+1]))
	}
	return strings.Join(parts, "  ")
}

func hexColor(r, g, b int) string {
	return "#" + hexByte(r) + hexByte(g) + hexByte(b)
}

func hexByte(v int) string {
	if v < 0 {
		v = 0
	}
	if v > 255 {
		v = 255
	}
	const hex = "0123456789abcdef"
	return string(hex[v/16]) + string(hex[v%16])
}
