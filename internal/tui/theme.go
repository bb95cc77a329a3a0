package tui

import (
	"fmt"
	"os"
	"path/filepath"
	"sort"

	"github.com/charmbracelet/lipgloss"
	"gopkg.in/yaml.v3"
)

// Skin is a named colour scheme for the board.
type Skin struct {
	Name   string
	Panel  lipgloss.Style // panel background
	Label  lipgloss.Style // label strip above values
	Value  lipgloss.Style // fitted stat text
	Title  lipgloss.Style // fitted title text
	Ticker lipgloss.Style // fitted live values
	Dim    lipgloss.Style // placeholders, secondary text
	Status lipgloss.Style // bottom status line
	Accent lipgloss.Color // borders, chart bars, help
}

var Skins = map[string]Skin{
	"default": {
		Name:   "Default",
		Panel:  lipgloss.NewStyle().Background(lipgloss.Color("#D1FAE5")),
		Label:  lipgloss.NewStyle().Background(lipgloss.Color("#BFDBFE")).Foreground(lipgloss.Color("#1E3A8A")).Bold(true),
		Value:  lipgloss.NewStyle().Background(lipgloss.Color("#D1FAE5")).Foreground(lipgloss.Color("#111827")).Bold(true),
		Title:  lipgloss.NewStyle().Background(lipgloss.Color("#D1FAE5")).Foreground(lipgloss.Color("#1E3A8A")).Bold(true),
		Ticker: lipgloss.NewStyle().Background(lipgloss.Color("#D1FAE5")).Foreground(lipgloss.Color("#065F46")).Bold(true),
		Dim:    lipgloss.NewStyle().Background(lipgloss.Color("#D1FAE5")).Foreground(lipgloss.Color("#6B7280")).Italic(true),
		Status: lipgloss.NewStyle().Background(lipgloss.Color("#1E3A8A")).Foreground(lipgloss.Color("#F9FAFB")),
		Accent: lipgloss.Color("#2563EB"),
	},
	"casino": {
		Name:   "Casino",
		Panel:  lipgloss.NewStyle().Background(lipgloss.Color("22")),
		Label:  lipgloss.NewStyle().Background(lipgloss.Color("52")).Foreground(lipgloss.Color("220")).Bold(true),
		Value:  lipgloss.NewStyle().Background(lipgloss.Color("22")).Foreground(lipgloss.Color("230")).Bold(true),
		Title:  lipgloss.NewStyle().Background(lipgloss.Color("22")).Foreground(lipgloss.Color("220")).Bold(true),
		Ticker: lipgloss.NewStyle().Background(lipgloss.Color("22")).Foreground(lipgloss.Color("214")).Bold(true),
		Dim:    lipgloss.NewStyle().Background(lipgloss.Color("22")).Foreground(lipgloss.Color("108")).Italic(true),
		Status: lipgloss.NewStyle().Background(lipgloss.Color("52")).Foreground(lipgloss.Color("230")),
		Accent: lipgloss.Color("220"),
	},
	"mono": {
		Name:   "Mono",
		Panel:  lipgloss.NewStyle(),
		Label:  lipgloss.NewStyle().Reverse(true).Bold(true),
		Value:  lipgloss.NewStyle().Bold(true),
		Title:  lipgloss.NewStyle().Bold(true),
		Ticker: lipgloss.NewStyle().Bold(true),
		Dim:    lipgloss.NewStyle().Faint(true),
		Status: lipgloss.NewStyle().Reverse(true),
		Accent: lipgloss.Color("7"),
	},
	"night": {
		Name:   "Night",
		Panel:  lipgloss.NewStyle().Background(lipgloss.Color("#0F172A")),
		Label:  lipgloss.NewStyle().Background(lipgloss.Color("#1E293B")).Foreground(lipgloss.Color("#94A3B8")).Bold(true),
		Value:  lipgloss.NewStyle().Background(lipgloss.Color("#0F172A")).Foreground(lipgloss.Color("#E2E8F0")).Bold(true),
		Title:  lipgloss.NewStyle().Background(lipgloss.Color("#0F172A")).Foreground(lipgloss.Color("#F472B6")).Bold(true),
		Ticker: lipgloss.NewStyle().Background(lipgloss.Color("#0F172A")).Foreground(lipgloss.Color("#38BDF8")).Bold(true),
		Dim:    lipgloss.NewStyle().Background(lipgloss.Color("#0F172A")).Foreground(lipgloss.Color("#475569")).Italic(true),
		Status: lipgloss.NewStyle().Background(lipgloss.Color("#1E293B")).Foreground(lipgloss.Color("#E2E8F0")),
		Accent: lipgloss.Color("#38BDF8"),
	},
}

// SkinNames returns the skin keys with "default" first and the rest sorted.
func SkinNames() []string {
	names := make([]string, 0, len(Skins))
	for name := range Skins {
		if name != "default" {
			names = append(names, name)
		}
	}
	sort.Strings(names)
	return append([]string{"default"}, names...)
}

// LookupSkin returns the named skin, falling back to the default.
func LookupSkin(name string) (Skin, bool) {
	s, ok := Skins[name]
	if !ok {
		return Skins["default"], false
	}
	return s, true
}

// skinFile is the on-disk form of a user skin. Colours are lipgloss colour
// strings ("#RRGGBB" or an ANSI index).
type skinFile struct {
	Name     string `yaml:"name"`
	Panel    string `yaml:"panel"`
	LabelFG  string `yaml:"label-fg"`
	LabelBG  string `yaml:"label-bg"`
	Value    string `yaml:"value"`
	Title    string `yaml:"title"`
	Ticker   string `yaml:"ticker"`
	Dim      string `yaml:"dim"`
	StatusFG string `yaml:"status-fg"`
	StatusBG string `yaml:"status-bg"`
	Accent   string `yaml:"accent"`
}

func (f skinFile) skin(fallback Skin) Skin {
	s := fallback
	if f.Name != "" {
		s.Name = f.Name
	}
	bg := func(st lipgloss.Style) lipgloss.Style {
		if f.Panel == "" {
			return st
		}
		return st.Background(lipgloss.Color(f.Panel))
	}
	fg := func(st lipgloss.Style, c string) lipgloss.Style {
		if c == "" {
			return st
		}
		return st.Foreground(lipgloss.Color(c))
	}
	s.Panel = bg(s.Panel)
	s.Value = fg(bg(s.Value), f.Value)
	s.Title = fg(bg(s.Title), f.Title)
	s.Ticker = fg(bg(s.Ticker), f.Ticker)
	s.Dim = fg(bg(s.Dim), f.Dim)
	s.Label = fg(s.Label, f.LabelFG)
	if f.LabelBG != "" {
		s.Label = s.Label.Background(lipgloss.Color(f.LabelBG))
	}
	s.Status = fg(s.Status, f.StatusFG)
	if f.StatusBG != "" {
		s.Status = s.Status.Background(lipgloss.Color(f.StatusBG))
	}
	if f.Accent != "" {
		s.Accent = lipgloss.Color(f.Accent)
	}
	return s
}

// InitializeSkin makes name available. Built-in skins need nothing; any other
// name is read from <configDir>/skins/<name>.yaml and layered over the default
// skin.
func InitializeSkin(name, configDir string) error {
	if name == "" {
		return nil
	}
	if _, ok := Skins[name]; ok {
		return nil
	}
	path := filepath.Join(configDir, "skins", name+".yaml")
	data, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("reading skin %q: %w", name, err)
	}
	var f skinFile
	if err := yaml.Unmarshal(data, &f); err != nil {
		return fmt.Errorf("parsing skin %s: %w", path, err)
	}
	if f.Name == "" {
		f.Name = name
	}
	Skins[name] = f.skin(Skins["default"])
	return nil
}
