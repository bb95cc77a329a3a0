package tui

import "github.com/charmbracelet/bubbles/key"

// KeyMap defines all board key bindings with built-in help text.
type KeyMap struct {
	// Global
	Quit      key.Binding
	ForceQuit key.Binding
	Help      key.Binding
	Escape    key.Binding

	// Board
	ToggleChart  key.Binding
	ToggleLabels key.Binding
	NextSkin     key.Binding
	Report       key.Binding
}

// DefaultKeyMap returns the default key bindings.
func DefaultKeyMap() KeyMap {
	return KeyMap{
		Quit: key.NewBinding(
			key.WithKeys("q"),
			key.WithHelp("q", "quit"),
		),
		ForceQuit: key.NewBinding(
			key.WithKeys("ctrl+c"),
			key.WithHelp("ctrl+c", "force quit"),
		),
		Help: key.NewBinding(
			key.WithKeys("?", "h"),
			key.WithHelp("?/h", "help"),
		),
		Escape: key.NewBinding(
			key.WithKeys("escape", "esc"),
			key.WithHelp("esc", "close"),
		),

		ToggleChart: key.NewBinding(
			key.WithKeys("c"),
			key.WithHelp("c", "payout chart"),
		),
		ToggleLabels: key.NewBinding(
			key.WithKeys("l"),
			key.WithHelp("l", "toggle labels"),
		),
		NextSkin: key.NewBinding(
			key.WithKeys("s"),
			key.WithHelp("s", "next skin"),
		),
		Report: key.NewBinding(
			key.WithKeys("v"),
			key.WithHelp("v", "layout report"),
		),
	}
}

// ShortHelp implements help.KeyMap.
func (k KeyMap) ShortHelp() []key.Binding {
	return []key.Binding{k.Help, k.NextSkin, k.ToggleChart, k.Quit}
}

// FullHelp implements help.KeyMap.
func (k KeyMap) FullHelp() [][]key.Binding {
	return [][]key.Binding{
		{k.ToggleChart, k.ToggleLabels, k.NextSkin, k.Report},
		{k.Help, k.Escape, k.Quit, k.ForceQuit},
	}
}
