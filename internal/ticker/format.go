package ticker

import (
	"fmt"
	"math"
	"time"

	"github.com/tinytelemetry/pokerclock/internal/model"
)

// ClockStyle selects how wall-clock values are rendered.
type ClockStyle string

const (
	Clock24h ClockStyle = "24h" // 15:04:05
	Clock12h ClockStyle = "12h" // 03:04:05 PM
)

// ParseClockStyle validates a configured clock style.
func ParseClockStyle(s string) (ClockStyle, error) {
	switch ClockStyle(s) {
	case Clock24h, Clock12h:
		return ClockStyle(s), nil
	case "":
		return Clock24h, nil
	}
	return "", fmt.Errorf("unknown clock style %q (want 24h or 12h)", s)
}

// Format renders the value of spec at now.
func Format(spec model.TickerSpec, style ClockStyle, now time.Time) string {
	switch spec.Mode {
	case model.TickerCountdown:
		return formatCountdown(spec.Anchor.Sub(now))
	case model.TickerElapsed:
		return formatElapsed(now.Sub(spec.Anchor))
	default:
		if style == Clock12h {
			return now.Format("03:04:05 PM")
		}
		return now.Format("15:04:05")
	}
}

// formatCountdown shows mm:ss, growing an hour field when needed. Partial
// seconds round up so the display reaches 00:00 exactly at the deadline.
func formatCountdown(d time.Duration) string {
	if d < 0 {
		d = 0
	}
	secs := int64(math.Ceil(d.Seconds()))
	h, m, s := secs/3600, secs/60%60, secs%60
	if h > 0 {
		return fmt.Sprintf("%d:%02d:%02d", h, m, s)
	}
	return fmt.Sprintf("%02d:%02d", m, s)
}

func formatElapsed(d time.Duration) string {
	if d < 0 {
		d = 0
	}
	secs := int64(d / time.Second)
	return fmt.Sprintf("%02d:%02d:%02d", secs/3600, secs/60%60, secs%60)
}
