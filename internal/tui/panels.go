package tui

import (
	"image"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/x/ansi"

	"github.com/tinytelemetry/pokerclock/internal/board"
	"github.com/tinytelemetry/pokerclock/internal/fit"
	"github.com/tinytelemetry/pokerclock/internal/model"
	"github.com/tinytelemetry/pokerclock/internal/payout"
	"github.com/tinytelemetry/pokerclock/internal/ticker"
)

// fitted is one fitted text slot: its fitter plus the raster and cell
// renderings of the last measured text.
type fitted struct {
	fitter *fit.Fitter

	mask   *image.Alpha
	masked string

	lines  []string
	lw, lh int
}

func newFitted(s fit.Surface) *fitted {
	return &fitted{fitter: fit.NewFitter(s)}
}

// render returns h lines of w cells, or nil while the text has no viewbox.
func (f *fitted) render(face *fit.Face, text string, w, h int) []string {
	vb := f.fitter.Fit(text)
	if !vb.Ready() || face == nil || w <= 0 || h <= 0 {
		return nil
	}
	measured := f.fitter.Text()
	if f.mask == nil || f.masked != measured {
		f.mask = face.Rasterize(measured, vb)
		f.masked = measured
		f.lines = nil
	}
	if f.lines != nil && f.lw == w && f.lh == h {
		return f.lines
	}

	p, ok := fit.Contain(vb, float64(w), float64(2*h))
	if !ok {
		return nil
	}
	var lines []string
	if legible(p) {
		lines, ok = halfBlock(f.mask, vb, w, h)
		if !ok {
			return nil
		}
	} else {
		lines = plainLines(measured, w, h)
	}
	f.lines, f.lw, f.lh = lines, w, h
	return lines
}

// plainLines centres text in a w x h block without scaling.
func plainLines(text string, w, h int) []string {
	text = ansi.Truncate(text, w, "…")
	return strings.Split(lipgloss.Place(w, h, lipgloss.Center, lipgloss.Center, text), "\n")
}

// panel is one mounted board panel. It owns its fit state and, for live
// values, its ticker.
type panel struct {
	spec    board.Panel
	surface *fit.FaceSurface
	value   *fitted
	rows    []*fitted
	ticker  *ticker.Ticker
}

func newPanel(spec board.Panel, face *fit.Face, opts []ticker.Option) *panel {
	s := fit.NewSurface(face)
	p := &panel{spec: spec, surface: s, value: newFitted(s)}
	if spec.Kind == model.KindTicker && spec.Ticker != nil {
		p.ticker = ticker.New(*spec.Ticker, opts...)
	}
	p.syncRows()
	return p
}

func (p *panel) syncRows() {
	if p.spec.Kind != model.KindPayouts {
		p.rows = nil
		return
	}
	n := len(p.spec.Payouts)
	for len(p.rows) < n {
		p.rows = append(p.rows, newFitted(p.surface))
	}
	p.rows = p.rows[:n]
}

// mount attaches the panel to the live view and starts its ticker.
func (p *panel) mount() tea.Cmd {
	p.surface.Attach()
	if p.ticker != nil {
		return p.ticker.Start()
	}
	return nil
}

// unmount stops the ticker and detaches the surface. A panel is never
// remounted; reconciliation creates a fresh one instead.
func (p *panel) unmount() {
	if p.ticker != nil {
		p.ticker.Stop()
	}
	p.surface.Detach()
}

// sameShape reports whether next can reuse this panel's mounted state.
func (p *panel) sameShape(next board.Panel) bool {
	if p.spec.Signature() != next.Signature() {
		return false
	}
	a, b := p.spec.Ticker, next.Ticker
	if (a == nil) != (b == nil) {
		return false
	}
	return a == nil || (a.Mode == b.Mode && a.Anchor.Equal(b.Anchor))
}

// retarget swaps in new static values for a panel of the same shape.
func (p *panel) retarget(next board.Panel) {
	p.spec = next
	p.syncRows()
}

// text is the value currently shown.
func (p *panel) text() string {
	if p.ticker != nil && p.ticker.Value() != "" {
		return p.ticker.Value()
	}
	return p.spec.Text
}

// render draws the panel as exactly h lines of w cells.
func (p *panel) render(ctx ViewContext, w, h int) []string {
	if w <= 0 || h <= 0 {
		return nil
	}
	out := make([]string, 0, h)
	if ctx.ShowLabels && p.spec.ShowsLabel() && h >= 2 {
		label := ansi.Truncate(strings.ToUpper(p.spec.Label), w, "…")
		out = append(out, ctx.Skin.Label.Width(w).Align(lipgloss.Center).Render(label))
	}
	bh := h - len(out)

	var body []string
	style := ctx.Skin.Value
	switch p.spec.Kind {
	case model.KindTitle:
		style = ctx.Skin.Title
		body = p.value.render(ctx.Face, p.text(), w, bh)
	case model.KindTicker:
		style = ctx.Skin.Ticker
		body = p.value.render(ctx.Face, p.text(), w, bh)
	case model.KindPayouts:
		if ctx.ShowChart {
			return append(out, fillLines(payoutChart(p.spec.Payouts, w, bh, ctx.Skin), w, bh, ctx.Skin.Panel)...)
		}
		body = p.renderRows(ctx.Face, w, bh)
	default:
		body = p.value.render(ctx.Face, p.text(), w, bh)
	}

	if body == nil {
		return append(out, renderPlaceholder(w, bh, ctx.Skin)...)
	}
	for _, line := range body {
		out = append(out, style.Render(line))
	}
	return out
}

// renderRows stacks one fitted row per payout bucket, in spot order.
func (p *panel) renderRows(face *fit.Face, w, h int) []string {
	rows := payout.Rows(p.spec.Payouts)
	if len(rows) == 0 {
		return nil
	}
	shown := len(rows)
	if shown > h {
		shown = h
	}
	per, extra := h/shown, h%shown

	lines := make([]string, 0, h)
	for i := 0; i < shown; i++ {
		rh := per
		if i < extra {
			rh++
		}
		rendered := p.rows[i].render(face, payoutRowText(rows[i]), w, rh)
		if rendered == nil {
			rendered = blankLines(w, rh)
		}
		lines = append(lines, rendered...)
	}
	return lines
}

func payoutRowText(r payout.Row) string {
	return r.Spot + ". " + r.Share
}

func blankLines(w, h int) []string {
	lines := make([]string, h)
	for i := range lines {
		lines[i] = strings.Repeat(" ", w)
	}
	return lines
}

// fillLines pads or cuts already styled lines to a w x h block.
func fillLines(lines []string, w, h int, bg lipgloss.Style) []string {
	out := make([]string, 0, h)
	for i := 0; i < h; i++ {
		if i >= len(lines) {
			out = append(out, bg.Render(strings.Repeat(" ", w)))
			continue
		}
		line := ansi.Truncate(lines[i], w, "")
		if pad := w - ansi.StringWidth(line); pad > 0 {
			line += bg.Render(strings.Repeat(" ", pad))
		}
		out = append(out, line)
	}
	return out
}
