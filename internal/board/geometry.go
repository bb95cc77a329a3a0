package board

// Rect is an integer rectangle in host units (cells or pixels).
type Rect struct {
	X, Y, W, H int
}

// Empty reports whether the rectangle has no area.
func (r Rect) Empty() bool {
	return r.W <= 0 || r.H <= 0
}

// tracks splits total into n tracks separated by gap. Leftover units go to
// the leading tracks so the tracks always sum to total minus the gaps.
func tracks(total, n, gap int) (offsets, sizes []int) {
	offsets = make([]int, n)
	sizes = make([]int, n)
	if n == 0 {
		return offsets, sizes
	}
	avail := total - gap*(n-1)
	if avail < 0 {
		avail = 0
	}
	base, extra := avail/n, avail%n
	pos := 0
	for i := 0; i < n; i++ {
		sizes[i] = base
		if i < extra {
			sizes[i]++
		}
		offsets[i] = pos
		pos += sizes[i] + gap
	}
	return offsets, sizes
}

func span(offsets, sizes []int, start, n, gap int) (int, int) {
	size := gap * (n - 1)
	for i := start; i < start+n; i++ {
		size += sizes[i]
	}
	return offsets[start], size
}

// Geometry lays the grid out over a w x h region with gap units between tracks
// and returns each area's rectangle. Spanning areas include the gaps they cover.
func Geometry(g Grid, w, h, gap int) map[string]Rect {
	if gap < 0 {
		gap = 0
	}
	colOff, colSize := tracks(w, g.Cols, gap)
	rowOff, rowSize := tracks(h, g.Rows, gap)

	out := make(map[string]Rect, len(g.areas))
	for _, a := range g.areas {
		x, cw := span(colOff, colSize, a.Col, a.ColSpan, gap)
		y, rh := span(rowOff, rowSize, a.Row, a.RowSpan, gap)
		out[a.Name] = Rect{X: x, Y: y, W: cw, H: rh}
	}
	return out
}
