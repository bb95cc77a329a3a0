package tui

import (
	"github.com/tinytelemetry/pokerclock/internal/fit"
	"github.com/tinytelemetry/pokerclock/internal/model"
)

// ViewContext provides read-only render settings to panels, replacing
// direct access to *BoardModel.
type ViewContext struct {
	Skin       Skin
	Face       *fit.Face
	ShowLabels bool
	ShowChart  bool // payouts as a bar chart instead of fitted rows
}

// ContentMsg carries a fresh content revision into the event loop.
type ContentMsg struct {
	Content model.Content
}
