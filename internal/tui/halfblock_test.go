package tui

import (
	"strings"
	"testing"
	"unicode/utf8"

	"github.com/tinytelemetry/pokerclock/internal/fit"
)

func TestHalfBlock_Dimensions(t *testing.T) {
	t.Parallel()

	face, err := fit.LoadFace("", 48)
	if err != nil {
		t.Fatalf("LoadFace: %v", err)
	}
	vb := fit.Fit("16:35", fit.NewSurfaceAttached(face))
	if !vb.Ready() {
		t.Fatal("viewbox not ready")
	}
	mask := face.Rasterize("16:35", vb)

	lines, ok := halfBlock(mask, vb, 40, 8)
	if !ok {
		t.Fatal("halfBlock failed")
	}
	if len(lines) != 8 {
		t.Fatalf("lines = %d, want 8", len(lines))
	}
	inked := false
	for i, line := range lines {
		if n := utf8.RuneCountInString(line); n != 40 {
			t.Fatalf("line %d has %d cells, want 40", i, n)
		}
		if strings.ContainsAny(line, "█▀▄") {
			inked = true
		}
	}
	if !inked {
		t.Fatal("no ink in rendering")
	}
}

func TestHalfBlock_NotReady(t *testing.T) {
	t.Parallel()

	if _, ok := halfBlock(nil, fit.ViewBox{}, 10, 4); ok {
		t.Fatal("not-ready viewbox rendered")
	}
}

func TestFitted_PlainFallbackWhenTiny(t *testing.T) {
	t.Parallel()

	face, err := fit.LoadFace("", 48)
	if err != nil {
		t.Fatalf("LoadFace: %v", err)
	}
	f := newFitted(fit.NewSurfaceAttached(face))
	lines := f.render(face, "985", 12, 1)
	if len(lines) != 1 || !strings.Contains(lines[0], "985") {
		t.Fatalf("lines = %q, want plain text", lines)
	}
	if f.fitter.Measurements() != 1 {
		t.Fatalf("measurements = %d, want 1", f.fitter.Measurements())
	}
	f.render(face, "985", 30, 10)
	if f.fitter.Measurements() != 1 {
		t.Fatal("resize re-measured unchanged text")
	}
}

func TestStitch_PadsGapsAndClips(t *testing.T) {
	t.Parallel()

	got := stitch([]segment{{x: 6, w: 3, text: "bbbb"}, {x: 0, w: 3, text: "aaa"}}, 10)
	if got != "aaa   bbb " {
		t.Fatalf("stitch = %q", got)
	}
}
