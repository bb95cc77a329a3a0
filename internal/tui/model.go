package tui

import (
	"time"

	"github.com/charmbracelet/bubbles/help"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/sirupsen/logrus"

	"github.com/tinytelemetry/pokerclock/internal/board"
	"github.com/tinytelemetry/pokerclock/internal/fit"
	"github.com/tinytelemetry/pokerclock/internal/model"
	"github.com/tinytelemetry/pokerclock/internal/ticker"
)

// Config holds board settings resolved by the command layer.
type Config struct {
	Face         *fit.Face
	Layout       model.Layout // used when the content carries no layout
	Skin         string
	TickInterval time.Duration
	ClockStyle   ticker.ClockStyle
	Clock        ticker.Clock // nil means the system clock
	Gap          int          // cells between grid tracks
	Logger       *logrus.Entry
}

// BoardModel is the board page: one mounted panel per placed content entry.
type BoardModel struct {
	cfg  Config
	keys KeyMap
	help help.Model
	log  *logrus.Entry

	content model.Content
	grid    board.Grid
	board   board.Board
	report  board.Report
	gridErr error

	panels   map[string]*panel
	byTicker map[int]string
	mounted  bool

	skins      []string
	skinIdx    int
	showLabels bool
	showChart  bool
	showHelp   bool
}

// NewBoardModel composes content onto the configured layout. Panels mount on Init.
func NewBoardModel(cfg Config, content model.Content) *BoardModel {
	if cfg.Logger == nil {
		cfg.Logger = logrus.NewEntry(logrus.StandardLogger())
	}
	if cfg.Gap < 0 {
		cfg.Gap = 0
	}
	m := &BoardModel{
		cfg:        cfg,
		keys:       DefaultKeyMap(),
		help:       help.New(),
		log:        cfg.Logger.WithField("component", "board"),
		panels:     make(map[string]*panel),
		byTicker:   make(map[int]string),
		skins:      SkinNames(),
		showLabels: true,
	}
	for i, name := range m.skins {
		if name == cfg.Skin {
			m.skinIdx = i
		}
	}
	if _, ok := Skins[cfg.Skin]; cfg.Skin != "" && !ok {
		m.log.WithField("skin", cfg.Skin).Warn("unknown skin; using default")
	}
	m.reconcile(content)
	return m
}

func (m *BoardModel) ID() string { return PageBoard }

// Init mounts every panel once and starts their tickers.
func (m *BoardModel) Init() tea.Cmd {
	if m.mounted {
		return nil
	}
	m.mounted = true
	cmds := make([]tea.Cmd, 0, len(m.panels))
	for _, p := range m.board.Panels {
		if mp, ok := m.panels[p.Key]; ok {
			cmds = append(cmds, mp.mount())
		}
	}
	return tea.Batch(cmds...)
}

// Close stops every ticker. The model must not be used afterwards.
func (m *BoardModel) Close() {
	for key, p := range m.panels {
		p.unmount()
		delete(m.panels, key)
	}
	m.byTicker = make(map[int]string)
	m.mounted = false
}

// Report returns the validation report of the current composition.
func (m *BoardModel) Report() board.Report { return m.report }

// Board returns the current composition.
func (m *BoardModel) Board() board.Board { return m.board }

// LayoutErr returns the error from parsing the effective layout, if any.
func (m *BoardModel) LayoutErr() error { return m.gridErr }

func (m *BoardModel) skin() Skin {
	s, _ := LookupSkin(m.skins[m.skinIdx])
	return s
}

func (m *BoardModel) viewContext() ViewContext {
	return ViewContext{
		Skin:       m.skin(),
		Face:       m.cfg.Face,
		ShowLabels: m.showLabels,
		ShowChart:  m.showChart,
	}
}

func (m *BoardModel) tickerOptions() []ticker.Option {
	opts := []ticker.Option{ticker.WithClockStyle(m.cfg.ClockStyle)}
	if m.cfg.TickInterval > 0 {
		opts = append(opts, ticker.WithInterval(m.cfg.TickInterval))
	}
	if m.cfg.Clock != nil {
		opts = append(opts, ticker.WithClock(m.cfg.Clock))
	}
	return opts
}

// reconcile recomposes the board for c. Panels whose placement and strategy
// are unchanged stay mounted and pick up new values; the rest are torn down
// and replaced by fresh panels. It returns the start commands of new panels.
func (m *BoardModel) reconcile(c model.Content) tea.Cmd {
	grid, err := board.ResolveLayout(c, m.cfg.Layout)
	if err != nil {
		m.gridErr = err
		m.log.WithError(err).Error("invalid layout; keeping previous board")
		return nil
	}
	m.gridErr = nil

	next, rep := board.Compose(c, grid)
	board.LogReport(m.log, rep)

	keep := make(map[string]bool, len(next.Panels))
	var cmds []tea.Cmd
	for _, spec := range next.Panels {
		keep[spec.Key] = true
		if old, ok := m.panels[spec.Key]; ok {
			if old.sameShape(spec) {
				old.retarget(spec)
				continue
			}
			m.drop(spec.Key)
		}
		p := newPanel(spec, m.cfg.Face, m.tickerOptions())
		m.panels[spec.Key] = p
		if p.ticker != nil {
			m.byTicker[p.ticker.ID()] = spec.Key
		}
		if m.mounted {
			cmds = append(cmds, p.mount())
		}
	}
	for key := range m.panels {
		if !keep[key] {
			m.drop(key)
		}
	}

	m.content, m.grid, m.board, m.report = c, grid, next, rep
	return tea.Batch(cmds...)
}

func (m *BoardModel) drop(key string) {
	p, ok := m.panels[key]
	if !ok {
		return
	}
	p.unmount()
	if p.ticker != nil {
		delete(m.byTicker, p.ticker.ID())
	}
	delete(m.panels, key)
}
