package tui

import (
	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/tinytelemetry/pokerclock/internal/ticker"
)

// Update handles messages
func (m *BoardModel) Update(msg tea.Msg) (tea.Cmd, *PageNav) {
	switch msg := msg.(type) {
	case ticker.TickMsg:
		return m.handleTick(msg), nil

	case ContentMsg:
		return m.reconcile(msg.Content), nil

	case tea.KeyMsg:
		return m.handleKeyPress(msg)
	}
	return nil, nil
}

func (m *BoardModel) handleTick(msg ticker.TickMsg) tea.Cmd {
	key, ok := m.byTicker[msg.ID]
	if !ok {
		return nil
	}
	p, ok := m.panels[key]
	if !ok || p.ticker == nil {
		return nil
	}
	// A changed value reaches the fitter on the next View; unchanged values
	// hit the fitter's cache.
	_, cmd := p.ticker.Update(msg)
	return cmd
}

func (m *BoardModel) handleKeyPress(msg tea.KeyMsg) (tea.Cmd, *PageNav) {
	if m.showHelp {
		switch {
		case key.Matches(msg, m.keys.ForceQuit), key.Matches(msg, m.keys.Quit):
			return tea.Quit, nil
		case key.Matches(msg, m.keys.Help), key.Matches(msg, m.keys.Escape):
			m.showHelp = false
		}
		return nil, nil
	}

	switch {
	case key.Matches(msg, m.keys.ForceQuit), key.Matches(msg, m.keys.Quit):
		return tea.Quit, nil
	case key.Matches(msg, m.keys.Help):
		m.showHelp = true
	case key.Matches(msg, m.keys.ToggleChart):
		m.showChart = !m.showChart
	case key.Matches(msg, m.keys.ToggleLabels):
		m.showLabels = !m.showLabels
	case key.Matches(msg, m.keys.NextSkin):
		m.skinIdx = (m.skinIdx + 1) % len(m.skins)
	case key.Matches(msg, m.keys.Report):
		return nil, &PageNav{PageID: PageReport}
	}
	return nil, nil
}
