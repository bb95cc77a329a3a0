// Package payout models the prize-pool distribution shown on the board.
package payout

import (
	"errors"
	"fmt"
	"sort"
	"strconv"

	"github.com/tinytelemetry/pokerclock/internal/model"
)

var (
	ErrInvalidSpot       = errors.New("payout spot must be >= 1")
	ErrDuplicateSpot     = errors.New("duplicate payout spot")
	ErrInvalidPercentage = errors.New("payout percentage must be within 0..100")
)

// Bucket is a finishing-position range sharing one percentage of the pool.
// Spot is the first rank of the range.
//
// The number of players sharing a bucket is not modelled; Percentage is the
// bucket's aggregate share.
type Bucket struct {
	Spot       int
	Percentage float64
}

// Table is an ordered list of buckets.
type Table []Bucket

// FromEntries converts content payout entries into a table.
func FromEntries(entries []model.PayoutEntry) Table {
	t := make(Table, 0, len(entries))
	for _, e := range entries {
		t = append(t, Bucket{Spot: e.Spot, Percentage: e.Percentage})
	}
	return t
}

// Row is one rendered bucket.
type Row struct {
	Spot  string
	Share string
}

// FormatShare renders a percentage with two decimals and a trailing %.
func FormatShare(pct float64) string {
	return strconv.FormatFloat(pct, 'f', 2, 64) + "%"
}

// Rows renders the table sorted by spot. The input is not modified.
func (t Table) Rows() []Row {
	sorted := t.Sorted()
	rows := make([]Row, 0, len(sorted))
	for _, b := range sorted {
		rows = append(rows, Row{Spot: strconv.Itoa(b.Spot), Share: FormatShare(b.Percentage)})
	}
	return rows
}

// Rows renders content payout entries.
func Rows(entries []model.PayoutEntry) []Row {
	return FromEntries(entries).Rows()
}

// Total sums every bucket's percentage.
func (t Table) Total() float64 {
	var sum float64
	for _, b := range t {
		sum += b.Percentage
	}
	return sum
}

// Overallocated reports whether the buckets hand out more than the whole pool.
func (t Table) Overallocated() bool {
	return t.Total() > 100+1e-9
}

// Check validates every bucket. An over-allocated pool is not an error;
// callers surface it through Overallocated.
func (t Table) Check() error {
	var errs []error
	seen := make(map[int]bool, len(t))
	for _, b := range t {
		if b.Spot < 1 {
			errs = append(errs, fmt.Errorf("%w: spot %d", ErrInvalidSpot, b.Spot))
		}
		if seen[b.Spot] {
			errs = append(errs, fmt.Errorf("%w: spot %d", ErrDuplicateSpot, b.Spot))
		}
		seen[b.Spot] = true
		if b.Percentage < 0 || b.Percentage > 100 || b.Percentage != b.Percentage {
			errs = append(errs, fmt.Errorf("%w: spot %d has %v", ErrInvalidPercentage, b.Spot, b.Percentage))
		}
	}
	return errors.Join(errs...)
}

// Sorted returns a copy of the table ordered by spot.
func (t Table) Sorted() Table {
	sorted := make(Table, len(t))
	copy(sorted, t)
	sort.SliceStable(sorted, func(i, j int) bool { return sorted[i].Spot < sorted[j].Spot })
	return sorted
}
