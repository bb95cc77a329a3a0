package board

import (
	"fmt"
	"strings"

	"github.com/tinytelemetry/pokerclock/internal/model"
)

// Panel is one positioned entry.
type Panel struct {
	Key     string
	Kind    model.Kind
	Label   string
	Text    string
	Ticker  *model.TickerSpec
	Payouts []model.PayoutEntry
	Area    Area
}

// ShowsLabel reports whether the panel draws its label above the value.
func (p Panel) ShowsLabel() bool {
	return p.Kind != model.KindTitle && p.Label != ""
}

// Signature identifies the panel's placement and render strategy.
func (p Panel) Signature() string {
	return fmt.Sprintf("%s:%s@%d,%d,%d,%d", p.Key, p.Kind, p.Area.Row, p.Area.Col, p.Area.RowSpan, p.Area.ColSpan)
}

// Board is the composed set of panels in content order.
type Board struct {
	Grid   Grid
	Panels []Panel
}

// Panel returns the panel for key.
func (b Board) Panel(key string) (Panel, bool) {
	for _, p := range b.Panels {
		if p.Key == key {
			return p, true
		}
	}
	return Panel{}, false
}

// Signature summarises panel count and per-key strategy.
func (b Board) Signature() string {
	parts := make([]string, 0, len(b.Panels))
	for _, p := range b.Panels {
		parts = append(parts, p.Signature())
	}
	return strings.Join(parts, ";")
}

// Equal reports whether two boards are structurally identical.
func (b Board) Equal(other Board) bool {
	return len(b.Panels) == len(other.Panels) && b.Signature() == other.Signature()
}

// Compose places every entry on the grid. Entries without an area, duplicate
// keys and entries of unknown kind are left out and listed in the report.
// Every area that ends up without a panel is reported as orphaned.
func Compose(content model.Content, g Grid) (Board, Report) {
	var rep Report
	board := Board{Grid: g, Panels: make([]Panel, 0, len(content.Entries))}
	seen := make(map[string]bool, len(content.Entries))
	placed := make(map[string]bool, len(content.Entries))
	titles := 0

	for _, e := range content.Entries {
		if seen[e.Key] {
			rep.Duplicates = append(rep.Duplicates, e.Key)
			continue
		}
		seen[e.Key] = true

		kind := e.EffectiveKind()
		if !kind.Valid() {
			rep.UnknownKinds = append(rep.UnknownKinds, e.Key)
			continue
		}
		checkEntry(&rep, e, kind, &titles)

		area, ok := g.Area(e.Key)
		if !ok {
			rep.Unplaced = append(rep.Unplaced, e.Key)
			continue
		}

		p := Panel{Key: e.Key, Kind: kind, Label: e.Label, Text: e.Text, Area: area}
		switch kind {
		case model.KindTitle:
			p.Label = ""
		case model.KindTicker:
			if e.Ticker != nil {
				spec := *e.Ticker
				p.Ticker = &spec
			}
		case model.KindPayouts:
			p.Payouts = append([]model.PayoutEntry(nil), e.Payouts...)
		}
		board.Panels = append(board.Panels, p)
		placed[e.Key] = true
	}

	for _, name := range g.Names() {
		if !placed[name] {
			rep.Orphaned = append(rep.Orphaned, name)
		}
	}
	return board, rep
}

// Validate runs the composition pass and returns only its report.
func Validate(content model.Content, g Grid) Report {
	_, rep := Compose(content, g)
	return rep
}
