package raster

import (
	"bytes"
	"image/png"
	"testing"

	"github.com/tinytelemetry/pokerclock/internal/board"
	"github.com/tinytelemetry/pokerclock/internal/fit"
	"github.com/tinytelemetry/pokerclock/internal/model"
)

func TestRender_PNG(t *testing.T) {
	t.Parallel()

	face, err := fit.LoadFace("", 64)
	if err != nil {
		t.Fatalf("LoadFace: %v", err)
	}
	r, err := NewRenderer(face, Options{Width: 400, Height: 200, Gap: 4})
	if err != nil {
		t.Fatalf("NewRenderer: %v", err)
	}

	c := model.Content{Entries: []model.StatEntry{
		{Key: "left", Label: "Left", Text: "15"},
		{Key: "total", Label: "Total", Text: "985"},
	}}
	b, rep := board.Compose(c, board.MustParseLayout([]string{"left total"}))
	if err := rep.Err(); err != nil {
		t.Fatalf("compose: %v", err)
	}

	var buf bytes.Buffer
	if err := r.Render(&buf, b, nil); err != nil {
		t.Fatalf("Render: %v", err)
	}
	img, err := png.Decode(&buf)
	if err != nil {
		t.Fatalf("decode: %v", err)
	}
	if got := img.Bounds(); got.Dx() != 400 || got.Dy() != 200 {
		t.Fatalf("size = %v, want 400x200", got)
	}

	// The right panel holds "985" drawn in the dark text colour.
	dark := 0
	for y := 0; y < 200; y++ {
		for x := 202; x < 400; x++ {
			cr, cg, cb, _ := img.At(x, y).RGBA()
			if cr < 0x6000 && cg < 0x6000 && cb < 0x6000 {
				dark++
			}
		}
	}
	if dark == 0 {
		t.Fatal("no text ink in the right panel")
	}
}

func TestRender_ReusesMeasurements(t *testing.T) {
	t.Parallel()

	face, err := fit.LoadFace("", 32)
	if err != nil {
		t.Fatal(err)
	}
	r, err := NewRenderer(face, Options{Width: 120, Height: 60})
	if err != nil {
		t.Fatal(err)
	}
	c := model.Content{Entries: []model.StatEntry{{Key: "clock", Kind: model.KindTicker, Ticker: &model.TickerSpec{Mode: model.TickerClock}}}}
	b, _ := board.Compose(c, board.MustParseLayout([]string{"clock"}))

	for i := 0; i < 3; i++ {
		if err := r.Render(&bytes.Buffer{}, b, map[string]string{"clock": "16:03:08"}); err != nil {
			t.Fatal(err)
		}
	}
	if got := r.fitters["clock"].Measurements(); got != 1 {
		t.Fatalf("measurements = %d, want 1", got)
	}
}
