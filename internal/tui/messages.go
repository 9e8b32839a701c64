package tui

import (
	"github.com/amterp/swatch/internal/model"
	"github.com/amterp/swatch/internal/reorder"
)

// SwatchMsg carries a RenderSwatch call.
type SwatchMsg struct {
	Current    model.Color
	Label      int
	LabelColor model.Color
}

// ListMsg carries a RenderList call.
type ListMsg struct {
	List    model.ListKind
	Entries []model.Entry
}

// VisibilityMsg carries a SetListVisibility call.
type VisibilityMsg struct {
	List    model.ListKind
	Visible bool
}

// dragStartedMsg reports the result of starting a drag.
type dragStartedMsg struct {
	source model.Target
	err    error
}

// dragEndedMsg reports how a drag ended.
type dragEndedMsg struct {
	outcome reorder.Outcome
}

// placeholderMsg reports a placeholder move.
type placeholderMsg struct {
	target model.Target
	moved  bool
}

// statusMsg replaces the status line.
type statusMsg string
