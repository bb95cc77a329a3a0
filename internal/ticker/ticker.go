package ticker

import (
	"context"
	"errors"
	"sync/atomic"
	"time"

	"github.com/tinytelemetry/pokerclock/internal/model"

	tea "github.com/charmbracelet/bubbletea"
)

// ErrStopped is returned when a stopped ticker is asked to run again.
var ErrStopped = errors.New("ticker: already stopped")

var lastID int64

func nextID() int {
	return int(atomic.AddInt64(&lastID, 1))
}

// Clock is the time source a ticker samples.
type Clock interface {
	Now() time.Time
}

// SystemClock reads the host clock.
type SystemClock struct{}

func (SystemClock) Now() time.Time { return time.Now() }

// TickMsg is delivered to the host on every scheduled tick. A ticker only
// accepts ticks carrying its own id and current generation.
type TickMsg struct {
	ID   int
	Time time.Time
	gen  int
}

// Ticker re-samples one time-varying value on a fixed cadence. It is bound to
// a single panel: Start when the panel mounts, Stop when it is torn down.
// A stopped ticker cannot be restarted; mount a new one instead.
type Ticker struct {
	id       int
	gen      int
	spec     model.TickerSpec
	style    ClockStyle
	interval time.Duration
	clock    Clock
	value    string
	running  bool
	stopped  bool
}

// Option configures a Ticker.
type Option func(*Ticker)

// WithInterval sets the tick cadence. Values below model.MinTickInterval are
// raised to it.
func WithInterval(d time.Duration) Option {
	return func(t *Ticker) {
		if d < model.MinTickInterval {
			d = model.MinTickInterval
		}
		t.interval = d
	}
}

// WithClock replaces the system clock.
func WithClock(c Clock) Option {
	return func(t *Ticker) { t.clock = c }
}

// WithClockStyle sets the wall-clock rendering.
func WithClockStyle(s ClockStyle) Option {
	return func(t *Ticker) { t.style = s }
}

// New creates a stopped-until-started ticker for spec.
func New(spec model.TickerSpec, opts ...Option) *Ticker {
	t := &Ticker{
		id:       nextID(),
		spec:     spec,
		style:    Clock24h,
		interval: model.DefaultTickInterval,
		clock:    SystemClock{},
	}
	for _, opt := range opts {
		opt(t)
	}
	return t
}

func (t *Ticker) ID() int                 { return t.id }
func (t *Ticker) Spec() model.TickerSpec  { return t.spec }
func (t *Ticker) Interval() time.Duration { return t.interval }
func (t *Ticker) Value() string           { return t.value }
func (t *Ticker) Running() bool           { return t.running }
func (t *Ticker) Stopped() bool           { return t.stopped }

// Start samples the clock immediately and schedules the first tick.
// It returns nil if the ticker is already running or was stopped.
func (t *Ticker) Start() tea.Cmd {
	if t.running || t.stopped {
		return nil
	}
	t.running = true
	t.value = t.sample()
	return t.schedule()
}

// Update applies a tick addressed to this ticker and schedules the next one.
// changed reports whether the displayed value differs from the previous one.
func (t *Ticker) Update(msg tea.Msg) (changed bool, cmd tea.Cmd) {
	tick, ok := msg.(TickMsg)
	if !ok || !t.running || tick.ID != t.id || tick.gen != t.gen {
		return false, nil
	}
	next := t.sample()
	changed = next != t.value
	t.value = next
	return changed, t.schedule()
}

// Stop cancels the schedule. Ticks already in flight are discarded when
// they arrive. Stop is safe to call more than once.
func (t *Ticker) Stop() {
	if t.stopped {
		return
	}
	t.stopped = true
	t.running = false
	t.gen++
}

// Run drives the ticker from a time.Ticker until ctx is done, calling emit
// with the first sample and then with every changed value. It is meant for
// hosts without a Bubble Tea loop; the ticker must not be read concurrently
// while Run is active.
func (t *Ticker) Run(ctx context.Context, emit func(string)) error {
	if t.stopped {
		return ErrStopped
	}
	t.running = true
	defer t.Stop()

	t.value = t.sample()
	emit(t.value)

	tk := time.NewTicker(t.interval)
	defer tk.Stop()

	for {
		select {
		case <-ctx.Done():
			return nil
		case <-tk.C:
			next := t.sample()
			if next == t.value {
				continue
			}
			t.value = next
			emit(next)
		}
	}
}

func (t *Ticker) sample() string {
	return Format(t.spec, t.style, t.clock.Now())
}

func (t *Ticker) schedule() tea.Cmd {
	id, gen := t.id, t.gen
	return tea.Tick(t.interval, func(now time.Time) tea.Msg {
		return TickMsg{ID: id, Time: now, gen: gen}
	})
}
