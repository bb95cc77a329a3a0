package content

import (
	"time"

	"github.com/tinytelemetry/pokerclock/internal/model"
)

// DefaultPayouts is the demo prize-pool distribution.
var DefaultPayouts = []model.PayoutEntry{
	{Spot: 1, Percentage: 35},
	{Spot: 2, Percentage: 22},
	{Spot: 3, Percentage: 15},
	{Spot: 4, Percentage: 11},
	{Spot: 5, Percentage: 9},
	{Spot: 6, Percentage: 8},
}

// Default returns the built-in demo tournament, with ticker anchors relative to now.
// It matches model.DefaultLayout.
func Default(now time.Time) model.Content {
	ticker := func(mode model.TickerMode, offset time.Duration) *model.TickerSpec {
		spec := &model.TickerSpec{Mode: mode}
		if mode.NeedsAnchor() {
			spec.Anchor = now.Add(offset)
		}
		return spec
	}

	return model.Content{Entries: []model.StatEntry{
		{Key: "title", Kind: model.KindTitle, Text: "JOKER 60.000 GTD Final"},
		{Key: "left", Label: "Left", Text: "15"},
		{Key: "total", Label: "Total", Text: "985"},
		{Key: "level", Label: "Level", Text: "38"},
		{Key: "blind", Label: "Blind", Text: "150.000/300.000"},
		{Key: "ante", Label: "Ante", Text: "300.000"},
		{Key: "currentTime", Label: "Current time", Text: "04:03:08", Kind: model.KindTicker,
			Ticker: ticker(model.TickerClock, 0)},
		{Key: "unique", Label: "Unique", Text: "428"},
		{Key: "reentries", Label: "Re-entries", Text: "557"},
		{Key: "nextLevel", Label: "Next level", Text: "BREAK"},
		{Key: "nextBlind", Label: "Next blind", Text: "350K/1.28M"},
		{Key: "nextAnte", Label: "Next ante", Text: "400K"},
		{Key: "elapsedTime", Label: "Elapsed time", Text: "12:43:25", Kind: model.KindTicker,
			Ticker: ticker(model.TickerElapsed, -(12*time.Hour + 43*time.Minute + 25*time.Second))},
		{Key: "payouts", Label: "Payouts", Kind: model.KindPayouts, Payouts: DefaultPayouts},
		{Key: "remainingRoundTime", Label: "Remaining round time", Text: "16:35", Kind: model.KindTicker,
			Ticker: ticker(model.TickerCountdown, 16*time.Minute+35*time.Second)},
		{Key: "nextBreak", Label: "Next break", Text: "02:46:35", Kind: model.KindTicker,
			Ticker: ticker(model.TickerCountdown, 2*time.Hour+46*time.Minute+35*time.Second)},
		{Key: "avgStack", Label: "Avg. stack", Text: "8.796.667"},
		{Key: "totalChips", Label: "Total chips", Text: "131.950.000"},
	}}
}
