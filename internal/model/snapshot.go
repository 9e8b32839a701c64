package model

// Snapshot is the read model handed to views and API clients.
type Snapshot struct {
	Current    Color        `json:"current"`
	Contrast   *Color       `json:"contrast,omitempty"` // nil until the first color change, and after reset
	ClickCount int          `json:"click_count"`
	Undo       []Entry      `json:"undo"`
	Redo       []Entry      `json:"redo"`
	Visible    Visibility   `json:"visible"`
	Dragging   *DragSummary `json:"dragging,omitempty"`
}

// Visibility records which history lists are shown. At most one is shown at a
// time; the overlay is shown whenever either is.
type Visibility struct {
	Undo    bool `json:"undo"`
	Redo    bool `json:"redo"`
	Overlay bool `json:"overlay"`
}

// Of returns the visibility of the given list.
func (v Visibility) Of(kind ListKind) bool {
	if kind == Undo {
		return v.Undo
	}
	return v.Redo
}

// DragSummary describes an in-progress drag for rendering.
type DragSummary struct {
	Source      ListKind `json:"source"`
	SourceIndex int      `json:"source_index"`
	EntryID     string   `json:"entry_id"`
	Touch       bool     `json:"touch"`
	Placeholder *Target  `json:"placeholder,omitempty"`
}

// Target is a position in one of the history lists.
type Target struct {
	List  ListKind `json:"list"`
	Index int      `json:"index"`
}

// LabelColor returns the color the counter label should be drawn in, falling
// back to the contrast of the current color when no contrast is recorded.
func (s Snapshot) LabelColor() Color {
	if s.Contrast != nil {
		return *s.Contrast
	}
	return s.Current.Contrast()
}

// Entries returns the entries of the given list.
func (s Snapshot) Entries(kind ListKind) []Entry {
	if kind == Undo {
		return s.Undo
	}
	return s.Redo
}
