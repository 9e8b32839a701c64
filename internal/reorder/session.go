package reorder

import (
	"github.com/amterp/swatch/internal/model"
	"github.com/samber/mo"
)

// Session records one in-progress relocation gesture. It exists only between
// Start and the Drop, Cancel or EndTouch that releases it.
type Session struct {
	Source      model.ListKind
	SourceIndex int
	EntryID     string
	Touch       bool
	Placeholder mo.Option[model.Target]

	// Revision is the store revision at Start. A different revision at drop
	// time means the lists changed underneath the gesture.
	Revision uint64
}

// Summary converts the session into its read-model form.
func (s Session) Summary() *model.DragSummary {
	summary := &model.DragSummary{
		Source:      s.Source,
		SourceIndex: s.SourceIndex,
		EntryID:     s.EntryID,
		Touch:       s.Touch,
	}
	if p, ok := s.Placeholder.Get(); ok {
		summary.Placeholder = &p
	}
	return summary
}

// ItemRect locates a rendered list item horizontally.
type ItemRect struct {
	List  model.ListKind `json:"list"`
	Index int            `json:"index"`
	Left  float64        `json:"left"`
	Width float64        `json:"width"`
}

// Negative target indexes name a list without a position in it. Drop
// resolves both from the placeholder, or appends. Container additionally
// records that the gesture ended on the bare list container rather than on
// an item, which matters to EndTouch.
const (
	ListOnly  = -1
	Container = -2
)

// InList returns a target in list at the placeholder position.
func InList(list model.ListKind) model.Target {
	return model.Target{List: list, Index: ListOnly}
}

// InContainer returns a target on the list container itself.
func InContainer(list model.ListKind) model.Target {
	return model.Target{List: list, Index: Container}
}

// At returns a target at an explicit post-removal index. Negative indexes
// clamp to 0 and never collide with ListOnly or Container.
func At(list model.ListKind, index int) model.Target {
	return model.Target{List: list, Index: max(index, 0)}
}
