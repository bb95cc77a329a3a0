package tui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/x/ansi"
)

// renderStatusLine renders the status/help line at the bottom of the screen
func (m *BoardModel) renderStatusLine(width int) string {
	skin := m.skin()
	baseStyle := skin.Status

	leftText := " " + skin.Name
	if problems := m.problemCount(); problems > 0 {
		noun := "problems"
		if problems == 1 {
			noun = "problem"
		}
		leftText += fmt.Sprintf(" │ %d layout %s (v)", problems, noun)
	}
	if m.showChart {
		leftText += " │ chart"
	}

	var rightText string
	if width >= 60 {
		m.help.Width = width - ansi.StringWidth(leftText) - 2
		rightText = m.help.ShortHelpView(m.keys.ShortHelp()) + " "
	}

	gap := width - ansi.StringWidth(leftText) - ansi.StringWidth(rightText)
	if gap < 1 {
		return baseStyle.Render(padRight(ansi.Truncate(leftText, width, "…"), width))
	}
	return baseStyle.Render(leftText + strings.Repeat(" ", gap) + rightText)
}

func (m *BoardModel) problemCount() int {
	r := m.report
	n := len(r.Unplaced) + len(r.Orphaned) + len(r.Duplicates) + len(r.UnknownKinds) +
		len(r.ExtraTitles) + len(r.MissingTickers) + len(r.MissingAnchors) + len(r.Payouts)
	if m.gridErr != nil {
		n++
	}
	return n
}

func padRight(s string, width int) string {
	if pad := width - ansi.StringWidth(s); pad > 0 {
		return s + strings.Repeat(" ", pad)
	}
	return s
}
