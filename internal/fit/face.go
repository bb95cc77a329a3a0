package fit

import (
	"errors"
	"fmt"
	"image"
	"os"
	"strconv"
	"strings"
	"sync"

	"github.com/flopp/go-findfont"
	"github.com/golang/freetype/truetype"
	"golang.org/x/image/font"
	"golang.org/x/image/font/gofont/gobold"
	"golang.org/x/image/math/fixed"
)

// Face is a TrueType face at a fixed natural size. All measurement and
// rasterisation happens at that size; hosts scale the result.
// Face is safe for concurrent use.
type Face struct {
	mu   sync.Mutex
	ttf  *truetype.Font
	face font.Face
	glyf truetype.GlyphBuf
	data []byte
	size float64
	name string
}

// LoadFace loads the named font at size points. An empty name selects the
// embedded Go Bold face. Other names are tried as a path first and then looked
// up among the system fonts.
func LoadFace(name string, size float64) (*Face, error) {
	if size <= 0 {
		return nil, fmt.Errorf("font size must be positive, got %v", size)
	}
	if name == "" {
		return newFace("Go Bold", gobold.TTF, size)
	}

	path := name
	if _, err := os.Stat(path); err != nil {
		if !errors.Is(err, os.ErrNotExist) {
			return nil, fmt.Errorf("stat font %q: %w", name, err)
		}
		found, ferr := findfont.Find(name)
		if ferr != nil {
			return nil, fmt.Errorf("locating font %q: %w", name, ferr)
		}
		path = found
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading font %q: %w", path, err)
	}
	return newFace(name, data, size)
}

func newFace(name string, data []byte, size float64) (*Face, error) {
	ttf, err := truetype.Parse(data)
	if err != nil {
		return nil, fmt.Errorf("parsing font %q: %w", name, err)
	}
	return &Face{
		face: truetype.NewFace(ttf, &truetype.Options{
			Size:    size,
			DPI:     72,
			Hinting: font.HintingNone,
		}),
		data: data,
		size: size,
		name: name,
		ttf:  ttf,
	}, nil
}

// Name returns the name the face was loaded by.
func (f *Face) Name() string { return f.name }

// Size returns the natural size in points (one point per unit at 72 DPI).
func (f *Face) Size() float64 { return f.size }

// Data returns the raw font file, for hosts that parse it themselves.
func (f *Face) Data() []byte { return f.data }

// Bounds returns the ink bounding box of text. ok is false when nothing
// visible would be drawn.
func (f *Face) Bounds(text string) (BBox, bool) {
	if strings.TrimSpace(text) == "" {
		return BBox{}, false
	}

	f.mu.Lock()
	bounds, _ := font.BoundString(f.face, text)
	f.mu.Unlock()

	box := BBox{
		X:      fromFixed(bounds.Min.X),
		Y:      fromFixed(bounds.Min.Y),
		Width:  fromFixed(bounds.Max.X - bounds.Min.X),
		Height: fromFixed(bounds.Max.Y - bounds.Min.Y),
	}
	if box.Degenerate() {
		return BBox{}, false
	}
	return box, true
}

// Rasterize draws text into an alpha mask covering exactly vb, so pixel (0, 0)
// of the mask is local coordinate (vb.X, vb.Y).
func (f *Face) Rasterize(text string, vb ViewBox) *image.Alpha {
	if !vb.Ready() {
		return image.NewAlpha(image.Rectangle{})
	}
	dst := image.NewAlpha(image.Rect(0, 0, vb.Width, vb.Height))

	f.mu.Lock()
	defer f.mu.Unlock()
	d := font.Drawer{
		Dst:  dst,
		Src:  image.Opaque,
		Face: f.face,
		Dot:  fixed.Point26_6{X: fixed.I(-vb.X), Y: fixed.I(-vb.Y)},
	}
	d.DrawString(text)
	return dst
}

// Outline returns the glyph outlines of text as SVG path data, in the same
// frame as Bounds: baseline origin at (0, 0), y growing downward. Advances and
// kerning are the ones Bounds measured with.
func (f *Face) Outline(text string) string {
	f.mu.Lock()
	defer f.mu.Unlock()

	scale := fixed.Int26_6(0.5 + f.size*64)
	var b strings.Builder
	var dot fixed.Int26_6
	prev := rune(-1)
	for _, r := range text {
		if prev >= 0 {
			dot += f.face.Kern(prev, r)
		}
		if err := f.glyf.Load(f.ttf, scale, f.ttf.Index(r), font.HintingNone); err == nil {
			start := 0
			for _, end := range f.glyf.Ends {
				writeContour(&b, f.glyf.Points[start:end], dot)
				start = end
			}
		}
		adv, _ := f.face.GlyphAdvance(r)
		dot += adv
		prev = r
	}
	return strings.TrimSpace(b.String())
}

type outlinePoint struct {
	x, y fixed.Int26_6
	on   bool
}

// writeContour converts one closed quadratic TrueType contour to path data.
// Consecutive off-curve points imply an on-curve point at their midpoint.
func writeContour(b *strings.Builder, ps []truetype.Point, dx fixed.Int26_6) {
	if len(ps) == 0 {
		return
	}
	pts := make([]outlinePoint, 0, len(ps)+2)
	first := -1
	for i, p := range ps {
		if p.Flags&0x01 != 0 {
			first = i
			break
		}
	}
	conv := func(p truetype.Point) outlinePoint {
		return outlinePoint{x: p.X + dx, y: -p.Y, on: p.Flags&0x01 != 0}
	}
	if first < 0 {
		a, z := conv(ps[0]), conv(ps[len(ps)-1])
		pts = append(pts, outlinePoint{x: (a.x + z.x) / 2, y: (a.y + z.y) / 2, on: true})
		for _, p := range ps {
			pts = append(pts, conv(p))
		}
	} else {
		for _, p := range ps[first:] {
			pts = append(pts, conv(p))
		}
		for _, p := range ps[:first] {
			pts = append(pts, conv(p))
		}
	}
	pts = append(pts, pts[0])

	writeCmd(b, 'M', pts[0])
	var ctrl *outlinePoint
	for i := 1; i < len(pts); i++ {
		p := pts[i]
		switch {
		case p.on && ctrl == nil:
			writeCmd(b, 'L', p)
		case p.on:
			writeCmd(b, 'Q', *ctrl, p)
			ctrl = nil
		case ctrl != nil:
			writeCmd(b, 'Q', *ctrl, outlinePoint{x: (ctrl.x + p.x) / 2, y: (ctrl.y + p.y) / 2})
			ctrl = &pts[i]
		default:
			ctrl = &pts[i]
		}
	}
	b.WriteString("Z ")
}

func writeCmd(b *strings.Builder, cmd byte, pts ...outlinePoint) {
	b.WriteByte(cmd)
	for _, p := range pts {
		b.WriteByte(' ')
		b.WriteString(strconv.FormatFloat(fromFixed(p.x), 'f', -1, 64))
		b.WriteByte(' ')
		b.WriteString(strconv.FormatFloat(fromFixed(p.y), 'f', -1, 64))
	}
	b.WriteByte(' ')
}

func fromFixed(v fixed.Int26_6) float64 {
	return float64(v) / 64
}
