package tui

import (
	"strings"

	"github.com/charmbracelet/lipgloss"
)

// renderPlaceholder fills a panel body whose text is not measured yet.
func renderPlaceholder(width, height int, skin Skin) []string {
	if width <= 0 || height <= 0 {
		return nil
	}
	text := "…"
	if width >= 3 {
		text = "· · ·"
		if width < 5 {
			text = "···"
		}
	}
	block := lipgloss.Place(width, height, lipgloss.Center, lipgloss.Center, text)
	lines := strings.Split(block, "\n")
	for i, line := range lines {
		lines[i] = skin.Dim.Render(line)
	}
	return lines
}
