// Package raster renders a composed board into a PNG snapshot.
package raster

import (
	"fmt"
	"io"
	"strings"

	"github.com/gogpu/gg"
	"github.com/gogpu/gg/text"

	"github.com/tinytelemetry/pokerclock/internal/board"
	"github.com/tinytelemetry/pokerclock/internal/fit"
	"github.com/tinytelemetry/pokerclock/internal/model"
	"github.com/tinytelemetry/pokerclock/internal/payout"
)

// Options controls image geometry.
type Options struct {
	Width       int
	Height      int
	Gap         int
	Padding     int
	LabelHeight int // 0 hides labels
	Palette     model.Palette
}

func (o Options) withDefaults() Options {
	if o.Width <= 0 {
		o.Width = model.DefaultRenderWidth
	}
	if o.Height <= 0 {
		o.Height = model.DefaultRenderHeight
	}
	if o.Gap < 0 {
		o.Gap = 0
	}
	if o.Padding < 0 {
		o.Padding = 0
	}
	if o.Palette == (model.Palette{}) {
		o.Palette = model.DefaultPalette
	}
	return o
}

// Renderer draws boards with gg. Values are measured with the shared face at
// its natural size and drawn at natural size times the fit scale.
type Renderer struct {
	face    *fit.Face
	source  *text.FontSource
	surface *fit.FaceSurface
	opts    Options
	fitters map[string]*fit.Fitter
}

// NewRenderer prepares a renderer drawing with face.
func NewRenderer(face *fit.Face, opts Options) (*Renderer, error) {
	src, err := text.NewFontSource(face.Data())
	if err != nil {
		return nil, fmt.Errorf("loading font %q for raster output: %w", face.Name(), err)
	}
	return &Renderer{
		face:    face,
		source:  src,
		surface: fit.NewSurfaceAttached(face),
		opts:    opts.withDefaults(),
		fitters: make(map[string]*fit.Fitter),
	}, nil
}

func (r *Renderer) fitter(slot string) *fit.Fitter {
	f, ok := r.fitters[slot]
	if !ok {
		f = fit.NewFitter(r.surface)
		r.fitters[slot] = f
	}
	return f
}

// Render draws b and encodes it as PNG to w. values overrides panel text by key.
func (r *Renderer) Render(w io.Writer, b board.Board, values map[string]string) error {
	dc := gg.NewContext(r.opts.Width, r.opts.Height)
	defer dc.Close()

	if err := r.draw(dc, b, values); err != nil {
		return err
	}
	if err := dc.EncodePNG(w); err != nil {
		return fmt.Errorf("encode png: %w", err)
	}
	return nil
}

func (r *Renderer) draw(dc *gg.Context, b board.Board, values map[string]string) error {
	o := r.opts
	if err := fillRect(dc, o.Palette.Background, 0, 0, o.Width, o.Height); err != nil {
		return err
	}

	areas := board.Geometry(b.Grid, o.Width-2*o.Padding, o.Height-2*o.Padding, o.Gap)
	for _, p := range b.Panels {
		area, ok := areas[p.Key]
		if !ok || area.Empty() {
			continue
		}
		area.X += o.Padding
		area.Y += o.Padding
		value := p.Text
		if v, ok := values[p.Key]; ok {
			value = v
		}
		if err := r.panel(dc, p, area, value); err != nil {
			return fmt.Errorf("panel %q: %w", p.Key, err)
		}
	}
	return nil
}

func (r *Renderer) panel(dc *gg.Context, p board.Panel, area board.Rect, value string) error {
	o := r.opts
	if err := fillRect(dc, o.Palette.Panel, area.X, area.Y, area.W, area.H); err != nil {
		return err
	}

	body := area
	if o.LabelHeight > 0 && p.ShowsLabel() && area.H > 2*o.LabelHeight {
		if err := fillRect(dc, o.Palette.LabelBG, area.X, area.Y, area.W, o.LabelHeight); err != nil {
			return err
		}
		dc.SetHexColor(o.Palette.LabelFG)
		dc.SetFont(r.source.Face(float64(o.LabelHeight) * 0.6))
		dc.DrawStringAnchored(strings.ToUpper(p.Label),
			float64(area.X)+float64(area.W)/2, float64(area.Y)+float64(o.LabelHeight)/2, 0.5, 0.35)
		body.Y += o.LabelHeight
		body.H -= o.LabelHeight
	}

	color := o.Palette.Text
	if p.Kind == model.KindTicker {
		color = o.Palette.Ticker
	}

	if p.Kind == model.KindPayouts {
		rows := payout.Rows(p.Payouts)
		for i, row := range rows {
			rh := body.H / len(rows)
			slot := board.Rect{X: body.X, Y: body.Y + i*rh, W: body.W, H: rh}
			r.drawFitted(dc, fmt.Sprintf("%s/%d", p.Key, i), row.Spot+". "+row.Share, slot, color)
		}
		return nil
	}
	r.drawFitted(dc, p.Key, value, body, color)
	return nil
}

// drawFitted draws value scaled to fit area. Values without a viewbox are skipped.
func (r *Renderer) drawFitted(dc *gg.Context, slot, value string, area board.Rect, color string) {
	vb := r.fitter(slot).Fit(value)
	pl, ok := fit.Contain(vb, float64(area.W), float64(area.H))
	if !ok {
		return
	}
	// The viewbox origin lands on the placement offset; the baseline origin
	// sits -vb.X, -vb.Y scaled units away from it.
	x := float64(area.X) + pl.X - float64(vb.X)*pl.Scale
	y := float64(area.Y) + pl.Y - float64(vb.Y)*pl.Scale

	dc.SetHexColor(color)
	dc.SetFont(r.source.Face(r.face.Size() * pl.Scale))
	dc.DrawString(value, x, y)
}

func fillRect(dc *gg.Context, color string, x, y, w, h int) error {
	dc.SetHexColor(color)
	dc.DrawRectangle(float64(x), float64(y), float64(w), float64(h))
	if err := dc.Fill(); err != nil {
		return fmt.Errorf("fill rectangle: %w", err)
	}
	return nil
}
