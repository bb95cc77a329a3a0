package model

import "time"

// Shared defaults used by the board, render and check commands.
const (
	DefaultTickInterval = time.Second
	MinTickInterval     = 100 * time.Millisecond
	DefaultSkin         = "default"
	DefaultClockStyle   = "24h"
	DefaultFontSize     = 64.0
	DefaultRenderWidth  = 1920
	DefaultRenderHeight = 1080

	// RenderGapPixels is the image-host width of one configured gap cell,
	// used for both the track gap and the outer padding.
	RenderGapPixels = 4

	// RenderLabelDivisor sets the label strip height to render height / divisor.
	RenderLabelDivisor = 36
)

// DefaultLayout is the board grid used when no layout is configured.
var DefaultLayout = []string{
	"title      title     title              title              currentTime",
	"left       level     remainingRoundTime remainingRoundTime payouts",
	"total      level     remainingRoundTime remainingRoundTime payouts",
	"unique     blind     blind              ante               payouts",
	"reentries  nextBlind nextBlind          nextAnte           payouts",
	"avgStack   nextLevel nextBreak          elapsedTime        payouts",
	"totalChips totalChips nextBreak         elapsedTime        payouts",
}

// Palette holds the colours used by the image hosts, as "#RRGGBB" strings.
type Palette struct {
	Background string
	Panel      string
	LabelBG    string
	LabelFG    string
	Text       string
	Ticker     string
}

// DefaultPalette mirrors the terminal default skin.
var DefaultPalette = Palette{
	Background: "#FFFFFF",
	Panel:      "#D1FAE5",
	LabelBG:    "#BFDBFE",
	LabelFG:    "#1E3A8A",
	Text:       "#111827",
	Ticker:     "#065F46",
}
