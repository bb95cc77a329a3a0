package ticker

import (
	"context"
	"testing"
	"time"

	"github.com/tinytelemetry/pokerclock/internal/model"
)

type fakeClock struct {
	now time.Time
}

func (c *fakeClock) Now() time.Time { return c.now }

func (c *fakeClock) Advance(d time.Duration) { c.now = c.now.Add(d) }

func newClock() *fakeClock {
	return &fakeClock{now: time.Date(2026, 10, 17, 16, 3, 8, 0, time.UTC)}
}

func TestTicker_StartSamplesImmediately(t *testing.T) {
	t.Parallel()

	clk := newClock()
	tk := New(model.TickerSpec{Mode: model.TickerClock}, WithClock(clk))

	if tk.Value() != "" {
		t.Fatalf("value before start = %q, want empty", tk.Value())
	}
	if cmd := tk.Start(); cmd == nil {
		t.Fatal("Start returned nil cmd")
	}
	if got := tk.Value(); got != "16:03:08" {
		t.Fatalf("value after start = %q, want 16:03:08", got)
	}
	if cmd := tk.Start(); cmd != nil {
		t.Fatal("second Start should not schedule another tick")
	}
}

func TestTicker_UpdateReportsChange(t *testing.T) {
	t.Parallel()

	clk := newClock()
	tk := New(model.TickerSpec{Mode: model.TickerClock}, WithClock(clk))
	tk.Start()

	changed, cmd := tk.Update(TickMsg{ID: tk.ID()})
	if changed {
		t.Fatal("value reported changed without clock movement")
	}
	if cmd == nil {
		t.Fatal("tick should reschedule")
	}

	clk.Advance(time.Second)
	changed, _ = tk.Update(TickMsg{ID: tk.ID()})
	if !changed {
		t.Fatal("value not reported changed after clock advanced")
	}
	if got := tk.Value(); got != "16:03:09" {
		t.Fatalf("value = %q, want 16:03:09", got)
	}
}

func TestTicker_IgnoresOtherTickers(t *testing.T) {
	t.Parallel()

	clk := newClock()
	a := New(model.TickerSpec{Mode: model.TickerClock}, WithClock(clk))
	b := New(model.TickerSpec{Mode: model.TickerClock}, WithClock(clk))
	a.Start()
	b.Start()

	clk.Advance(time.Second)
	if changed, cmd := a.Update(TickMsg{ID: b.ID()}); changed || cmd != nil {
		t.Fatal("ticker accepted a tick addressed to another ticker")
	}
	if a.Value() != "16:03:08" {
		t.Fatalf("value = %q, want unchanged", a.Value())
	}
}

func TestTicker_NoUpdatesAfterStop(t *testing.T) {
	t.Parallel()

	clk := newClock()
	tk := New(model.TickerSpec{Mode: model.TickerClock}, WithClock(clk))
	tk.Start()

	// A tick scheduled before teardown carries the old generation.
	inFlight := TickMsg{ID: tk.ID(), gen: tk.gen}
	tk.Stop()
	frozen := tk.Value()

	for i := 0; i < 10; i++ {
		clk.Advance(time.Second)
		if changed, cmd := tk.Update(inFlight); changed || cmd != nil {
			t.Fatalf("tick %d applied after stop", i)
		}
		if changed, cmd := tk.Update(TickMsg{ID: tk.ID(), gen: tk.gen}); changed || cmd != nil {
			t.Fatalf("tick %d with current generation applied after stop", i)
		}
	}
	if tk.Value() != frozen {
		t.Fatalf("value = %q after stop, want frozen %q", tk.Value(), frozen)
	}
}

func TestTicker_StopIsIdempotentAndFinal(t *testing.T) {
	t.Parallel()

	tk := New(model.TickerSpec{Mode: model.TickerClock}, WithClock(newClock()))
	tk.Start()
	tk.Stop()
	gen := tk.gen
	tk.Stop()

	if tk.gen != gen {
		t.Fatalf("second Stop bumped generation %d -> %d", gen, tk.gen)
	}
	if !tk.Stopped() || tk.Running() {
		t.Fatal("ticker should be stopped and not running")
	}
	if cmd := tk.Start(); cmd != nil {
		t.Fatal("stopped ticker restarted")
	}
}

func TestTicker_FreshInstanceDoesNotCarryOver(t *testing.T) {
	t.Parallel()

	clk := newClock()
	first := New(model.TickerSpec{Mode: model.TickerClock}, WithClock(clk))
	first.Start()
	first.Stop()

	clk.Advance(90 * time.Second)
	second := New(model.TickerSpec{Mode: model.TickerClock}, WithClock(clk))
	second.Start()

	if second.ID() == first.ID() {
		t.Fatal("tickers share an id")
	}
	if got := second.Value(); got != "16:04:38" {
		t.Fatalf("fresh ticker value = %q, want 16:04:38", got)
	}
}

func TestWithInterval_HasFloor(t *testing.T) {
	t.Parallel()

	tk := New(model.TickerSpec{Mode: model.TickerClock}, WithInterval(time.Millisecond))
	if tk.Interval() != model.MinTickInterval {
		t.Fatalf("interval = %v, want %v", tk.Interval(), model.MinTickInterval)
	}
}

func TestTicker_RunEmitsFirstSampleAndStops(t *testing.T) {
	t.Parallel()

	tk := New(model.TickerSpec{Mode: model.TickerClock}, WithClock(newClock()))
	ctx, cancel := context.WithCancel(context.Background())

	var got []string
	err := tk.Run(ctx, func(v string) {
		got = append(got, v)
		cancel()
	})
	if err != nil {
		t.Fatalf("Run: %v", err)
	}
	if len(got) != 1 || got[0] != "16:03:08" {
		t.Fatalf("emitted %v, want [16:03:08]", got)
	}
	if !tk.Stopped() {
		t.Fatal("Run should stop the ticker on return")
	}
	if err := tk.Run(context.Background(), func(string) {}); err != ErrStopped {
		t.Fatalf("second Run err = %v, want ErrStopped", err)
	}
}
