package tui

import (
	"github.com/charmbracelet/lipgloss"
)

// renderHelpModal renders the key binding overlay centred over the screen.
func (m *BoardModel) renderHelpModal(width, height int) string {
	accent := m.skin().Accent

	header := lipgloss.NewStyle().
		Foreground(accent).
		Bold(true).
		Render("Poker Clock Help")

	m.help.ShowAll = true
	m.help.Width = max(width-8, 0)
	body := m.help.FullHelpView(m.keys.FullHelp())
	m.help.ShowAll = false

	notes := lipgloss.NewStyle().
		Foreground(lipgloss.Color("245")).
		Render("Values scale to fill their panel. Shrink the terminal\nbelow a few rows per panel to fall back to plain text.")

	modal := lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(accent).
		Padding(1, 2).
		Render(lipgloss.JoinVertical(lipgloss.Left, header, "", body, "", notes))

	return lipgloss.Place(width, height, lipgloss.Center, lipgloss.Center, modal)
}
