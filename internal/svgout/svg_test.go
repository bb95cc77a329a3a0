package svgout

import (
	"bytes"
	"encoding/xml"
	"math"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"testing"

	"golang.org/x/image/font/gofont/gomono"

	"github.com/tinytelemetry/pokerclock/internal/board"
	"github.com/tinytelemetry/pokerclock/internal/fit"
	"github.com/tinytelemetry/pokerclock/internal/model"
)

func testBoard(t *testing.T) board.Board {
	t.Helper()
	c := model.Content{Entries: []model.StatEntry{
		{Key: "title", Kind: model.KindTitle, Text: "Sunday Major"},
		{Key: "currentTime", Label: "Current time", Kind: model.KindTicker, Ticker: &model.TickerSpec{Mode: model.TickerClock}},
		{Key: "payouts", Label: "Payouts", Kind: model.KindPayouts, Payouts: []model.PayoutEntry{{Spot: 2, Percentage: 40}, {Spot: 1, Percentage: 60}}},
		{Key: "left", Label: "Left", Text: "15"},
		{Key: "total", Label: "Total", Text: "985"},
	}}
	g := board.MustParseLayout([]string{
		"title title currentTime",
		"left  total payouts",
	})
	b, rep := board.Compose(c, g)
	if err := rep.Err(); err != nil {
		t.Fatalf("compose: %v", err)
	}
	return b
}

func newRenderer(t *testing.T) (*Renderer, *fit.Face) {
	t.Helper()
	face, err := fit.LoadFace("", 64)
	if err != nil {
		t.Fatalf("LoadFace: %v", err)
	}
	return NewRenderer(face, Options{Width: 800, Height: 600, Gap: 8, LabelHeight: 24}), face
}

func TestRender_Document(t *testing.T) {
	t.Parallel()

	r, face := newRenderer(t)
	var buf bytes.Buffer
	if err := r.Render(&buf, testBoard(t), map[string]string{"currentTime": "16:03:08"}); err != nil {
		t.Fatalf("Render: %v", err)
	}
	out := buf.String()

	if !strings.Contains(out, `viewBox="0 0 800 600"`) {
		t.Fatal("root viewBox missing")
	}
	if got := strings.Count(out, "<g "); got != 5 {
		t.Fatalf("panels = %d, want 5", got)
	}
	want := fit.Fit("985", fit.NewSurfaceAttached(face)).String()
	if !strings.Contains(out, `viewBox="`+want+`"`) {
		t.Fatalf("fitted viewBox %q missing", want)
	}
	if !strings.Contains(out, `preserveAspectRatio="xMidYMid meet"`) {
		t.Fatal("nested svg does not scale to fit")
	}
	if !strings.Contains(out, ">16:03:08<") {
		t.Fatal("ticker value not rendered")
	}
	if !strings.Contains(out, ">1. 60.00%<") || !strings.Contains(out, ">2. 40.00%<") {
		t.Fatal("payout rows missing")
	}
	if strings.Index(out, "1. 60.00%") > strings.Index(out, "2. 40.00%") {
		t.Fatal("payout rows not in spot order")
	}
	if strings.Contains(out, ">TITLE<") {
		t.Fatal("title panel rendered a label")
	}
	if !strings.Contains(out, ">CURRENT TIME<") {
		t.Fatal("stat label missing")
	}
	if got := strings.Count(out, "<text "); got != 4 {
		t.Fatalf("text elements = %d, want only the 4 labels", got)
	}
	if !strings.Contains(out, `d="`+face.Outline("985")+`"`) {
		t.Fatal("value not drawn with the measuring face")
	}

	var doc struct {
		XMLName xml.Name `xml:"svg"`
	}
	if err := xml.Unmarshal(buf.Bytes(), &doc); err != nil {
		t.Fatalf("output is not well-formed XML: %v", err)
	}
}

func TestRender_RemeasuresOnlyChangedValues(t *testing.T) {
	t.Parallel()

	r, _ := newRenderer(t)
	b := testBoard(t)

	if err := r.Render(&bytes.Buffer{}, b, map[string]string{"currentTime": "16:03:08"}); err != nil {
		t.Fatal(err)
	}
	first := r.Measurements()
	if err := r.Render(&bytes.Buffer{}, b, map[string]string{"currentTime": "16:03:08"}); err != nil {
		t.Fatal(err)
	}
	if r.Measurements() != first {
		t.Fatalf("unchanged render measured %d more times", r.Measurements()-first)
	}
	if err := r.Render(&bytes.Buffer{}, b, map[string]string{"currentTime": "16:03:09"}); err != nil {
		t.Fatal(err)
	}
	if r.Measurements() != first+1 {
		t.Fatalf("measurements = %d, want %d", r.Measurements(), first+1)
	}
}

func TestRender_EscapesText(t *testing.T) {
	t.Parallel()

	r, _ := newRenderer(t)
	c := model.Content{Entries: []model.StatEntry{{Key: "title", Kind: model.KindTitle, Text: "A & B <Final>"}}}
	b, _ := board.Compose(c, board.MustParseLayout([]string{"title"}))

	var buf bytes.Buffer
	if err := r.Render(&buf, b, nil); err != nil {
		t.Fatal(err)
	}
	if !strings.Contains(buf.String(), "A &amp; B &lt;Final&gt;") {
		t.Fatalf("text not escaped:\n%s", buf.String())
	}
}

func TestFit_DrawsTheMeasuredFace(t *testing.T) {
	t.Parallel()

	r, face := newRenderer(t)
	el, ok := r.fit("wide", "WWWW", board.Rect{W: 300, H: 80}, "#000000")
	if !ok {
		t.Fatal("fit not ready")
	}
	if want := fit.Fit("WWWW", fit.NewSurfaceAttached(face)).String(); el.ViewBox != want {
		t.Fatalf("viewBox = %q, want %q", el.ViewBox, want)
	}
	if el.Path.D != face.Outline("WWWW") {
		t.Fatal("path is not the outline of the measured face")
	}

	vb := pathCoords(el.ViewBox)
	if len(vb) != 4 {
		t.Fatalf("viewBox %q has %d fields", el.ViewBox, len(vb))
	}
	vx, vy, vw, vh := vb[0], vb[1], vb[2], vb[3]
	coords := pathCoords(el.Path.D)
	if len(coords) == 0 {
		t.Fatal("empty outline")
	}
	for i := 0; i+1 < len(coords); i += 2 {
		x, y := coords[i], coords[i+1]
		if x < vx-1.5 || x > vx+vw+1.5 || y < vy-1.5 || y > vy+vh+1.5 {
			t.Fatalf("outline point (%v,%v) outside viewBox %s", x, y, el.ViewBox)
		}
	}
}

func TestFit_ReusesOutlineForSameText(t *testing.T) {
	t.Parallel()

	r, _ := newRenderer(t)
	area := board.Rect{W: 100, H: 40}
	first, _ := r.fit("slot", "12:00", area, "#000000")
	again, _ := r.fit("slot", "12:00", area, "#000000")
	if first.Path.D != again.Path.D || r.paths["slot"].text != "12:00" {
		t.Fatal("outline cache not reused")
	}
	next, _ := r.fit("slot", "12:01", area, "#000000")
	if next.Path.D == first.Path.D {
		t.Fatal("outline not traced again for new text")
	}
}

func pathCoords(d string) []float64 {
	var out []float64
	for _, tok := range strings.Fields(d) {
		if v, err := strconv.ParseFloat(tok, 64); err == nil && !math.IsNaN(v) {
			out = append(out, v)
		}
	}
	return out
}

func TestRender_ConfiguredFontIsTheDrawnFont(t *testing.T) {
	t.Parallel()

	path := filepath.Join(t.TempDir(), "mono.ttf")
	if err := os.WriteFile(path, gomono.TTF, 0o644); err != nil {
		t.Fatal(err)
	}
	mono, err := fit.LoadFace(path, 64)
	if err != nil {
		t.Fatalf("LoadFace(%s): %v", path, err)
	}
	bold, err := fit.LoadFace("", 64)
	if err != nil {
		t.Fatal(err)
	}

	c := model.Content{Entries: []model.StatEntry{{Key: "title", Kind: model.KindTitle, Text: "WWWW"}}}
	b, _ := board.Compose(c, board.MustParseLayout([]string{"title"}))
	var buf bytes.Buffer
	if err := NewRenderer(mono, Options{Width: 400, Height: 100}).Render(&buf, b, nil); err != nil {
		t.Fatal(err)
	}
	out := buf.String()

	want := fit.Fit("WWWW", fit.NewSurfaceAttached(mono)).String()
	if !strings.Contains(out, `viewBox="`+want+`"`) {
		t.Fatalf("viewBox %q missing", want)
	}
	if !strings.Contains(out, `d="`+mono.Outline("WWWW")+`"`) {
		t.Fatal("value not drawn with the configured face")
	}
	if strings.Contains(out, bold.Outline("WWWW")) || strings.Contains(out, "<text ") {
		t.Fatal("value drawn with a face other than the measuring one")
	}
}
