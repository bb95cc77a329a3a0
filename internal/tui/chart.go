package tui

import (
	"strings"

	"github.com/NimbleMarkets/ntcharts/barchart"
	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/x/ansi"

	"github.com/tinytelemetry/pokerclock/internal/model"
	"github.com/tinytelemetry/pokerclock/internal/payout"
)

// payoutChart draws one bar per bucket with the spot numbers underneath.
func payoutChart(entries []model.PayoutEntry, width, height int, skin Skin) []string {
	rows := payout.Rows(entries)
	if len(rows) == 0 || width < len(rows) || height < 3 {
		return renderPlaceholder(width, height, skin)
	}

	gap := 1
	if width < 2*len(rows)-1 {
		gap = 0
	}
	barWidth := (width - gap*(len(rows)-1)) / len(rows)
	if barWidth < 1 {
		barWidth = 1
	}

	bc := barchart.New(width, height-1,
		barchart.WithBarGap(gap),
		barchart.WithBarWidth(barWidth),
		barchart.WithNoAxis(),
	)
	barStyle := lipgloss.NewStyle().Foreground(skin.Accent)
	sorted := payout.FromEntries(entries).Sorted()
	for _, b := range sorted {
		bc.Push(barchart.BarData{
			Label: "",
			Values: []barchart.BarValue{
				{Name: payout.FormatShare(b.Percentage), Value: b.Percentage, Style: barStyle},
			},
		})
	}
	bc.Draw()

	lines := strings.Split(bc.View(), "\n")
	if len(lines) > height-1 {
		lines = lines[:height-1]
	}

	var labels strings.Builder
	for i, r := range rows {
		if i > 0 {
			labels.WriteString(strings.Repeat(" ", gap))
		}
		spot := ansi.Truncate(r.Spot, barWidth, "")
		labels.WriteString(lipgloss.PlaceHorizontal(barWidth, lipgloss.Center, spot))
	}
	lines = append(lines, skin.Label.Render(ansi.Truncate(labels.String(), width, "")))
	return lines
}
