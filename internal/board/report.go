package board

import (
	"errors"
	"fmt"

	"github.com/sirupsen/logrus"

	"github.com/tinytelemetry/pokerclock/internal/model"
	"github.com/tinytelemetry/pokerclock/internal/payout"
)

var (
	ErrUnplacedKey    = errors.New("content key has no layout area")
	ErrOrphanedArea   = errors.New("layout area has no content")
	ErrDuplicateKey   = errors.New("duplicate content key")
	ErrUnknownKind    = errors.New("unknown entry kind")
	ErrMultipleTitles = errors.New("more than one title entry")
	ErrMissingTicker  = errors.New("ticker entry has no ticker settings")
	ErrMissingAnchor  = errors.New("ticker entry needs an anchor")
	ErrInvalidPayouts = errors.New("invalid payouts")
)

// Report lists every mismatch between content and layout.
type Report struct {
	Unplaced       []string
	Orphaned       []string
	Duplicates     []string
	UnknownKinds   []string
	ExtraTitles    []string
	MissingTickers []string
	MissingAnchors []string
	Payouts        []error
	Warnings       []string
}

// OK reports whether nothing is wrong. Warnings do not count.
func (r Report) OK() bool {
	return r.Err() == nil
}

// Err joins every problem into one error, or returns nil.
func (r Report) Err() error {
	var errs []error
	add := func(sentinel error, keys []string) {
		for _, k := range keys {
			errs = append(errs, fmt.Errorf("%w: %q", sentinel, k))
		}
	}
	add(ErrUnplacedKey, r.Unplaced)
	add(ErrOrphanedArea, r.Orphaned)
	add(ErrDuplicateKey, r.Duplicates)
	add(ErrUnknownKind, r.UnknownKinds)
	add(ErrMultipleTitles, r.ExtraTitles)
	add(ErrMissingTicker, r.MissingTickers)
	add(ErrMissingAnchor, r.MissingAnchors)
	errs = append(errs, r.Payouts...)
	return errors.Join(errs...)
}

// LogReport logs one warning per unplaced key, orphaned area and warning.
// The full report goes out at debug level.
func LogReport(log *logrus.Entry, rep Report) {
	for _, key := range rep.Unplaced {
		log.WithField("key", key).Warn("content key has no layout area; not drawn")
	}
	for _, area := range rep.Orphaned {
		log.WithField("area", area).Warn("layout area has no content")
	}
	for _, w := range rep.Warnings {
		log.Warn(w)
	}
	if err := rep.Err(); err != nil {
		log.WithError(err).Debug("board validation report")
	}
}

func checkEntry(rep *Report, e model.StatEntry, kind model.Kind, titles *int) {
	switch kind {
	case model.KindTitle:
		*titles++
		if *titles > 1 {
			rep.ExtraTitles = append(rep.ExtraTitles, e.Key)
		}
	case model.KindTicker:
		if e.Ticker == nil {
			rep.MissingTickers = append(rep.MissingTickers, e.Key)
			return
		}
		if e.Ticker.Mode.NeedsAnchor() && e.Ticker.Anchor.IsZero() {
			rep.MissingAnchors = append(rep.MissingAnchors, e.Key)
		}
	case model.KindPayouts:
		table := payout.FromEntries(e.Payouts)
		if err := table.Check(); err != nil {
			rep.Payouts = append(rep.Payouts, fmt.Errorf("%w: %q: %w", ErrInvalidPayouts, e.Key, err))
		}
		if table.Overallocated() {
			rep.Warnings = append(rep.Warnings, fmt.Sprintf("payouts %q total %.2f%% exceeds the pool", e.Key, table.Total()))
		}
	}
}
