// Package svgout renders a composed board as a standalone SVG document.
// Each value is a nested <svg> whose viewBox is the rounded ink box of the
// text, stretched by the viewer to fill its panel.
package svgout

import (
	"encoding/xml"
	"fmt"
	"io"
	"strings"

	"github.com/tinytelemetry/pokerclock/internal/board"
	"github.com/tinytelemetry/pokerclock/internal/fit"
	"github.com/tinytelemetry/pokerclock/internal/model"
	"github.com/tinytelemetry/pokerclock/internal/payout"
)

// Options controls document geometry.
type Options struct {
	Width       int
	Height      int
	Gap         int
	Padding     int
	LabelHeight int // 0 hides labels
	FontFamily  string // labels only; values are drawn as glyph outlines
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
	if o.FontFamily == "" {
		o.FontFamily = "sans-serif"
	}
	if o.Palette == (model.Palette{}) {
		o.Palette = model.DefaultPalette
	}
	return o
}

type document struct {
	XMLName xml.Name `xml:"svg"`
	NS      string   `xml:"xmlns,attr"`
	Width   int      `xml:"width,attr"`
	Height  int      `xml:"height,attr"`
	ViewBox string   `xml:"viewBox,attr"`
	Items   []any
}

type group struct {
	XMLName xml.Name `xml:"g"`
	ID      string   `xml:"id,attr,omitempty"`
	Class   string   `xml:"class,attr,omitempty"`
	Items   []any
}

type rect struct {
	XMLName xml.Name `xml:"rect"`
	X       int      `xml:"x,attr"`
	Y       int      `xml:"y,attr"`
	Width   int      `xml:"width,attr"`
	Height  int      `xml:"height,attr"`
	Fill    string   `xml:"fill,attr"`
}

type text struct {
	XMLName    xml.Name `xml:"text"`
	X          float64  `xml:"x,attr"`
	Y          float64  `xml:"y,attr"`
	FontFamily string   `xml:"font-family,attr,omitempty"`
	FontSize   float64  `xml:"font-size,attr"`
	FontWeight string   `xml:"font-weight,attr,omitempty"`
	Anchor     string   `xml:"text-anchor,attr,omitempty"`
	Baseline   string   `xml:"dominant-baseline,attr,omitempty"`
	Fill       string   `xml:"fill,attr"`
	Body       string   `xml:",chardata"`
}

type path struct {
	XMLName xml.Name `xml:"path"`
	D       string   `xml:"d,attr"`
	Fill    string   `xml:"fill,attr"`
}

// fitted is a value drawn as the outlines of the face it was measured with,
// inside a viewport sized to the measured ink box.
type fitted struct {
	XMLName  xml.Name `xml:"svg"`
	X        int      `xml:"x,attr"`
	Y        int      `xml:"y,attr"`
	Width    int      `xml:"width,attr"`
	Height   int      `xml:"height,attr"`
	ViewBox  string   `xml:"viewBox,attr"`
	Preserve string   `xml:"preserveAspectRatio,attr"`
	Title    string   `xml:"title"`
	Path     path
}

type outline struct {
	text string
	d    string
}

// Renderer draws boards. It keeps one fitter per value slot, so rendering the
// same board again re-measures only the values whose text changed.
type Renderer struct {
	face    *fit.Face
	surface *fit.FaceSurface
	opts    Options
	fitters map[string]*fit.Fitter
	paths   map[string]outline
}

// NewRenderer measures with face.
func NewRenderer(face *fit.Face, opts Options) *Renderer {
	return &Renderer{
		face:    face,
		surface: fit.NewSurfaceAttached(face),
		opts:    opts.withDefaults(),
		fitters: make(map[string]*fit.Fitter),
		paths:   make(map[string]outline),
	}
}

// Measurements returns the total number of geometry queries issued.
func (r *Renderer) Measurements() int {
	n := 0
	for _, f := range r.fitters {
		n += f.Measurements()
	}
	return n
}

func (r *Renderer) fitter(slot string) *fit.Fitter {
	f, ok := r.fitters[slot]
	if !ok {
		f = fit.NewFitter(r.surface)
		r.fitters[slot] = f
	}
	return f
}

// Render writes b as an SVG document. values overrides panel text by key,
// which is how live ticker samples reach the document.
func (r *Renderer) Render(w io.Writer, b board.Board, values map[string]string) error {
	o := r.opts
	doc := document{
		NS:      "http://www.w3.org/2000/svg",
		Width:   o.Width,
		Height:  o.Height,
		ViewBox: fmt.Sprintf("0 0 %d %d", o.Width, o.Height),
	}
	doc.Items = append(doc.Items, rect{Width: o.Width, Height: o.Height, Fill: o.Palette.Background})

	inner := board.Geometry(b.Grid, o.Width-2*o.Padding, o.Height-2*o.Padding, o.Gap)
	for _, p := range b.Panels {
		area, ok := inner[p.Key]
		if !ok || area.Empty() {
			continue
		}
		area.X += o.Padding
		area.Y += o.Padding
		value := p.Text
		if v, ok := values[p.Key]; ok {
			value = v
		}
		doc.Items = append(doc.Items, r.panel(p, area, value))
	}

	if _, err := io.WriteString(w, xml.Header); err != nil {
		return fmt.Errorf("write svg header: %w", err)
	}
	enc := xml.NewEncoder(w)
	enc.Indent("", "  ")
	if err := enc.Encode(doc); err != nil {
		return fmt.Errorf("encode svg: %w", err)
	}
	if err := enc.Close(); err != nil {
		return fmt.Errorf("encode svg: %w", err)
	}
	_, err := io.WriteString(w, "\n")
	return err
}

func (r *Renderer) panel(p board.Panel, area board.Rect, value string) group {
	o := r.opts
	g := group{ID: p.Key, Class: string(p.Kind)}
	g.Items = append(g.Items, rect{X: area.X, Y: area.Y, Width: area.W, Height: area.H, Fill: o.Palette.Panel})

	body := area
	if o.LabelHeight > 0 && p.ShowsLabel() && area.H > 2*o.LabelHeight {
		g.Items = append(g.Items,
			rect{X: area.X, Y: area.Y, Width: area.W, Height: o.LabelHeight, Fill: o.Palette.LabelBG},
			text{
				X:          float64(area.X) + float64(area.W)/2,
				Y:          float64(area.Y) + float64(o.LabelHeight)/2,
				FontFamily: o.FontFamily,
				FontSize:   float64(o.LabelHeight) * 0.6,
				FontWeight: "bold",
				Anchor:     "middle",
				Baseline:   "central",
				Fill:       o.Palette.LabelFG,
				Body:       strings.ToUpper(p.Label),
			})
		body.Y += o.LabelHeight
		body.H -= o.LabelHeight
	}

	fill := o.Palette.Text
	if p.Kind == model.KindTicker {
		fill = o.Palette.Ticker
	}

	if p.Kind == model.KindPayouts {
		rows := payout.Rows(p.Payouts)
		for i, row := range rows {
			rh := body.H / len(rows)
			slot := board.Rect{X: body.X, Y: body.Y + i*rh, W: body.W, H: rh}
			if el, ok := r.fit(fmt.Sprintf("%s/%d", p.Key, i), row.Spot+". "+row.Share, slot, fill); ok {
				g.Items = append(g.Items, el)
			}
		}
		return g
	}

	if el, ok := r.fit(p.Key, value, body, fill); ok {
		g.Items = append(g.Items, el)
	}
	return g
}

// fit returns the nested svg for value, or false while it has no viewbox.
func (r *Renderer) fit(slot, value string, area board.Rect, fill string) (fitted, bool) {
	vb := r.fitter(slot).Fit(value)
	if !vb.Ready() || area.Empty() {
		return fitted{}, false
	}
	return fitted{
		X:        area.X,
		Y:        area.Y,
		Width:    area.W,
		Height:   area.H,
		ViewBox:  vb.String(),
		Preserve: "xMidYMid meet",
		Title:    value,
		Path:     path{D: r.outline(slot), Fill: fill},
	}, true
}

// outline returns the path data of the slot's measured text, tracing glyphs
// again only when that text changed.
func (r *Renderer) outline(slot string) string {
	measured := r.fitter(slot).Text()
	if o, ok := r.paths[slot]; ok && o.text == measured {
		return o.d
	}
	d := r.face.Outline(measured)
	r.paths[slot] = outline{text: measured, d: d}
	return d
}
