package fit

// Surface is a drawing surface that can host a text primitive at its natural
// size and report the primitive's bounding box.
type Surface interface {
	// Attached reports whether the surface is part of a live rendering tree.
	// Geometry read before that point is meaningless.
	Attached() bool
	// Measure returns the natural bounding box of text. ok is false when the
	// surface has nothing to report (empty text, blank glyphs).
	Measure(text string) (box BBox, ok bool)
}

// Fit measures text once on s and returns its viewbox. A detached surface
// yields the not-ready viewbox.
func Fit(text string, s Surface) ViewBox {
	if s == nil || !s.Attached() {
		return ViewBox{}
	}
	box, ok := s.Measure(text)
	if !ok {
		return ViewBox{}
	}
	return ViewBoxOf(box)
}

// Fitter keeps one panel's fit state. It re-measures only when the displayed
// text changes and defers measurement while its surface is detached.
type Fitter struct {
	surface      Surface
	text         string
	measured     bool
	view         ViewBox
	measurements int
}

// NewFitter creates a fitter bound to s.
func NewFitter(s Surface) *Fitter {
	return &Fitter{surface: s}
}

// Fit returns the viewbox for text, measuring only if text differs from the
// last measured text. While the surface is detached the previous viewbox is
// returned and the measurement is retried on the next call.
func (f *Fitter) Fit(text string) ViewBox {
	if f.measured && text == f.text {
		return f.view
	}
	if f.surface == nil || !f.surface.Attached() {
		return f.view
	}

	f.text = text
	f.measured = true
	f.measurements++

	box, ok := f.surface.Measure(text)
	if !ok {
		f.view = ViewBox{}
		return f.view
	}
	f.view = ViewBoxOf(box)
	return f.view
}

// View returns the last computed viewbox without measuring.
func (f *Fitter) View() ViewBox { return f.view }

// Text returns the last measured text.
func (f *Fitter) Text() string { return f.text }

// Measurements returns how many geometry queries the fitter has issued.
func (f *Fitter) Measurements() int { return f.measurements }
