package model

import "time"

// Kind is the explicit render strategy carried by every stat entry.
type Kind string

const (
	KindStat    Kind = "stat"    // label above fitted text
	KindTitle   Kind = "title"   // fitted text, no label
	KindTicker  Kind = "ticker"  // label above a live, periodically re-sampled value
	KindPayouts Kind = "payouts" // label above the payout distribution rows
)

// Kinds lists every known render strategy.
var Kinds = []Kind{KindStat, KindTitle, KindTicker, KindPayouts}

// Valid reports whether k is a known render strategy.
func (k Kind) Valid() bool {
	for _, known := range Kinds {
		if k == known {
			return true
		}
	}
	return false
}

// TickerMode selects what a ticker samples from the clock.
type TickerMode string

const (
	TickerClock     TickerMode = "clock"     // wall clock
	TickerCountdown TickerMode = "countdown" // time left until Anchor, clamped at zero
	TickerElapsed   TickerMode = "elapsed"   // time since Anchor
)

// NeedsAnchor reports whether the mode is relative to an anchor instant.
func (m TickerMode) NeedsAnchor() bool {
	return m == TickerCountdown || m == TickerElapsed
}

// TickerSpec describes a time-varying value.
type TickerSpec struct {
	Mode   TickerMode
	Anchor time.Time // zero for clock mode
}

// PayoutEntry is one finishing-position bucket of the prize pool.
// Spot is the starting rank of the bucket.
type PayoutEntry struct {
	Spot       int
	Percentage float64
}

// StatEntry is one named value on the board. Key doubles as the grid area name.
type StatEntry struct {
	Key     string
	Label   string
	Text    string
	Kind    Kind
	Ticker  *TickerSpec
	Payouts []PayoutEntry
}

// EffectiveKind returns the entry's kind, defaulting to KindStat.
func (e StatEntry) EffectiveKind() Kind {
	if e.Kind == "" {
		return KindStat
	}
	return e.Kind
}

// Content is the ordered set of entries supplied for one render pass.
// The core never mutates it.
type Content struct {
	Entries []StatEntry
	Layout  Layout // optional; empty means the configured layout applies
}

// Lookup returns the entry with the given key.
func (c Content) Lookup(key string) (StatEntry, bool) {
	for _, e := range c.Entries {
		if e.Key == key {
			return e, true
		}
	}
	return StatEntry{}, false
}

// Layout is a named-area grid description: one string per row, whitespace
// separated area names, "." for an empty cell.
type Layout struct {
	Areas []string
}

// Empty reports whether the layout declares no rows.
func (l Layout) Empty() bool {
	for _, row := range l.Areas {
		for _, r := range row {
			if r != ' ' && r != '\t' {
				return false
			}
		}
	}
	return true
}
