package fit

import (
	"fmt"
	"math"
)

// BBox is the measured extent of rendered content in a surface's local
// coordinate space. The text baseline origin sits at (0, 0) and y grows
// downward, so ascenders give a negative Y.
type BBox struct {
	X, Y, Width, Height float64
}

// Degenerate reports whether the box cannot be used to derive a viewport.
func (b BBox) Degenerate() bool {
	for _, v := range []float64{b.X, b.Y, b.Width, b.Height} {
		if math.IsNaN(v) || math.IsInf(v, 0) {
			return true
		}
	}
	return b.Width <= 0 || b.Height <= 0
}

// ViewBox is the integer viewport derived from a bounding box. The zero value
// is the "not ready" viewport.
type ViewBox struct {
	X, Y, Width, Height int
	ready               bool
}

// ViewBoxOf rounds every coordinate of b to the nearest integer unit.
// Rounding once here keeps the rasterised text from shifting by sub-pixel
// amounts when the host scales it by different factors.
func ViewBoxOf(b BBox) ViewBox {
	if b.Degenerate() {
		return ViewBox{}
	}
	vb := ViewBox{
		X:      int(math.Round(b.X)),
		Y:      int(math.Round(b.Y)),
		Width:  int(math.Round(b.Width)),
		Height: int(math.Round(b.Height)),
	}
	if vb.Width <= 0 || vb.Height <= 0 {
		return ViewBox{}
	}
	vb.ready = true
	return vb
}

// Ready reports whether the viewbox came from a successful measurement.
func (v ViewBox) Ready() bool { return v.ready }

// String formats the viewbox as an SVG viewBox attribute value, or "" when
// not ready.
func (v ViewBox) String() string {
	if !v.ready {
		return ""
	}
	return fmt.Sprintf("%d %d %d %d", v.X, v.Y, v.Width, v.Height)
}

// Placement is where a viewbox lands inside an allotted region after uniform
// scale-to-fit (SVG preserveAspectRatio "xMidYMid meet").
type Placement struct {
	Scale         float64
	X, Y          float64 // offset of the scaled viewbox inside the region
	Width, Height float64 // scaled viewbox size
}

// Contain scales vb uniformly so it fits a w x h region without clipping and
// centres it. It returns false when either side has nothing to place.
func Contain(vb ViewBox, w, h float64) (Placement, bool) {
	if !vb.Ready() || w <= 0 || h <= 0 {
		return Placement{}, false
	}
	scale := math.Min(w/float64(vb.Width), h/float64(vb.Height))
	p := Placement{
		Scale:  scale,
		Width:  float64(vb.Width) * scale,
		Height: float64(vb.Height) * scale,
	}
	p.X = (w - p.Width) / 2
	p.Y = (h - p.Height) / 2
	return p, true
}
