package tui

import (
	"image"
	"strings"

	"github.com/tinytelemetry/pokerclock/internal/fit"
)

// Each terminal cell carries two vertically stacked pixels.
const (
	blockFull  = '█'
	blockUpper = '▀'
	blockLower = '▄'
	blockEmpty = ' '

	inkThreshold = 0x60
)

// halfBlock scales mask, the rasterised viewbox vb, uniformly into a w x h
// cell region and returns exactly h lines of exactly w runes. ok is false when
// nothing can be placed.
func halfBlock(mask *image.Alpha, vb fit.ViewBox, w, h int) ([]string, bool) {
	p, ok := fit.Contain(vb, float64(w), float64(2*h))
	if !ok || mask == nil {
		return nil, false
	}

	ink := func(px, py int) bool {
		sx := int((float64(px) + 0.5 - p.X) / p.Scale)
		sy := int((float64(py) + 0.5 - p.Y) / p.Scale)
		if float64(px)+0.5 < p.X || float64(py)+0.5 < p.Y {
			return false
		}
		if sx < 0 || sy < 0 || sx >= vb.Width || sy >= vb.Height {
			return false
		}
		return mask.AlphaAt(sx, sy).A >= inkThreshold
	}

	lines := make([]string, h)
	var b strings.Builder
	for cy := 0; cy < h; cy++ {
		b.Reset()
		for cx := 0; cx < w; cx++ {
			top, bottom := ink(cx, 2*cy), ink(cx, 2*cy+1)
			switch {
			case top && bottom:
				b.WriteRune(blockFull)
			case top:
				b.WriteRune(blockUpper)
			case bottom:
				b.WriteRune(blockLower)
			default:
				b.WriteRune(blockEmpty)
			}
		}
		lines[cy] = b.String()
	}
	return lines, true
}

// legible reports whether a half-block rendering would be readable. Below a
// couple of cells of height glyphs collapse into noise, and plain text reads
// better.
func legible(p fit.Placement) bool {
	return p.Height >= 6
}
