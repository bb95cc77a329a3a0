package tui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/tinytelemetry/pokerclock/internal/board"
)

// ReportPage lists every mismatch between the content and the layout.
type ReportPage struct {
	board *BoardModel
	keys  KeyMap
}

// NewReportPage shows the live report of b.
func NewReportPage(b *BoardModel) *ReportPage {
	return &ReportPage{board: b, keys: DefaultKeyMap()}
}

func (p *ReportPage) ID() string { return PageReport }

func (p *ReportPage) Init() tea.Cmd { return nil }

func (p *ReportPage) Update(msg tea.Msg) (tea.Cmd, *PageNav) {
	km, ok := msg.(tea.KeyMsg)
	if !ok {
		return nil, nil
	}
	switch {
	case key.Matches(km, p.keys.ForceQuit), key.Matches(km, p.keys.Quit):
		return tea.Quit, nil
	case key.Matches(km, p.keys.Escape), key.Matches(km, p.keys.Report):
		return nil, &PageNav{PageID: PageBoard}
	}
	return nil, nil
}

func (p *ReportPage) View(width, height int) string {
	skin := p.board.skin()
	title := lipgloss.NewStyle().Foreground(skin.Accent).Bold(true).Render("Layout report")
	lines := reportLines(p.board.Report(), p.board.LayoutErr())
	footer := lipgloss.NewStyle().Foreground(lipgloss.Color("245")).Render("esc/v: back │ q: quit")

	content := lipgloss.JoinVertical(lipgloss.Left, title, "", strings.Join(lines, "\n"), "", footer)
	return lipgloss.Place(width, height, lipgloss.Center, lipgloss.Center,
		lipgloss.NewStyle().Border(lipgloss.RoundedBorder()).BorderForeground(skin.Accent).Padding(1, 2).Render(content))
}

// reportLines formats a report for display, one problem per line.
func reportLines(r board.Report, layoutErr error) []string {
	var lines []string
	if layoutErr != nil {
		lines = append(lines, "layout: "+layoutErr.Error())
	}
	add := func(format string, keys []string) {
		for _, k := range keys {
			lines = append(lines, fmt.Sprintf(format, k))
		}
	}
	add("unplaced key:    %s", r.Unplaced)
	add("orphaned area:   %s", r.Orphaned)
	add("duplicate key:   %s", r.Duplicates)
	add("unknown kind:    %s", r.UnknownKinds)
	add("extra title:     %s", r.ExtraTitles)
	add("ticker missing:  %s", r.MissingTickers)
	add("anchor missing:  %s", r.MissingAnchors)
	for _, err := range r.Payouts {
		lines = append(lines, "payouts:         "+err.Error())
	}
	for _, w := range r.Warnings {
		lines = append(lines, "warning:         "+w)
	}
	if len(lines) == 0 {
		lines = append(lines, "Every content key has exactly one layout area.")
	}
	return lines
}
