// Package reorder implements the drag-and-drop state machine that reorders
// entries within a history list and moves them between lists.
package reorder

import (
	"fmt"
	"math"

	swerr "github.com/amterp/swatch/internal/errors"
	"github.com/amterp/swatch/internal/model"
	"github.com/amterp/swatch/internal/store"
	"github.com/samber/lo"
	"github.com/samber/mo"
	log "github.com/sirupsen/logrus"
)

// State is the engine's position in a gesture.
type State int

const (
	Idle State = iota
	Dragging
	Committing
	Cancelling
)

func (s State) String() string {
	switch s {
	case Dragging:
		return "dragging"
	case Committing:
		return "committing"
	case Cancelling:
		return "cancelling"
	default:
		return "idle"
	}
}

// OutcomeKind says how a gesture ended.
type OutcomeKind int

const (
	// Ignored: there was no gesture to end.
	Ignored OutcomeKind = iota
	Committed
	Cancelled
	// Flicked: a touch released outside both lists on a narrow viewport
	// moved the entry to the end of the other list.
	Flicked
)

func (k OutcomeKind) String() string {
	switch k {
	case Committed:
		return "committed"
	case Cancelled:
		return "cancelled"
	case Flicked:
		return "flicked"
	default:
		return "ignored"
	}
}

// MarshalText implements encoding.TextMarshaler.
func (k OutcomeKind) MarshalText() ([]byte, error) {
	return []byte(k.String()), nil
}

// UnmarshalText implements encoding.TextUnmarshaler.
func (k *OutcomeKind) UnmarshalText(text []byte) error {
	for _, kind := range []OutcomeKind{Ignored, Committed, Cancelled, Flicked} {
		if kind.String() == string(text) {
			*k = kind
			return nil
		}
	}
	return swerr.InvalidField("outcome", fmt.Sprintf("unknown kind %q", text))
}

// Outcome reports the result of Drop, Cancel or EndTouch.
type Outcome struct {
	Kind   OutcomeKind   `json:"kind"`
	Entry  *model.Entry  `json:"entry,omitempty"`
	From   *model.Target `json:"from,omitempty"`
	To     *model.Target `json:"to,omitempty"`
	Reason string        `json:"reason,omitempty"`
}

// Changed reports whether the store was mutated.
func (o Outcome) Changed() bool {
	return o.Kind == Committed || o.Kind == Flicked
}

// Settings tunes drop-point resolution.
type Settings struct {
	Nudge      float64
	FlickWidth int
}

// SettingsFromConfig converts the [drag] config section.
func SettingsFromConfig(cfg model.DragConfig) Settings {
	return Settings{Nudge: cfg.Nudge, FlickWidth: cfg.FlickWidth}
}

// DefaultSettings returns the settings used without a config file.
func DefaultSettings() Settings {
	return SettingsFromConfig(model.DefaultConfig().Drag)
}

// Engine owns at most one Session at a time. The store is only mutated when
// a gesture commits.
//
// Not safe for concurrent use; service.Controller serializes access.
type Engine struct {
	store    store.StackStore
	settings Settings
	state    State
	session  mo.Option[Session]
}

// NewEngine creates an idle engine over the given store.
func NewEngine(s store.StackStore, settings Settings) *Engine {
	return &Engine{
		store:    s,
		settings: settings,
		session:  mo.None[Session](),
	}
}

// Settings returns the active settings.
func (e *Engine) Settings() Settings {
	return e.settings
}

// SetSettings replaces the settings. A gesture in progress picks them up on
// its next event.
func (e *Engine) SetSettings(settings Settings) {
	e.settings = settings
}

// State returns the current state.
func (e *Engine) State() State {
	return e.state
}

// Session returns the in-progress gesture, if any.
func (e *Engine) Session() mo.Option[Session] {
	return e.session
}

// Start begins dragging the entry at (list, index). A non-empty entryID must
// match the entry found there; a mismatch means the caller's view is stale.
// On error the engine is unchanged.
func (e *Engine) Start(list model.ListKind, index int, entryID string, touch bool) error {
	if e.session.IsPresent() {
		return swerr.ErrDragInProgress
	}
	if !list.Valid() {
		return swerr.ListNotFound(list.String())
	}
	entry, err := e.store.At(list, index)
	if err != nil {
		return err
	}
	if entryID != "" && entry.ID != entryID {
		return fmt.Errorf("%w: entry %s is not at %s[%d]", swerr.ErrStaleDragSession, entryID, list, index)
	}

	e.session = mo.Some(Session{
		Source:      list,
		SourceIndex: index,
		EntryID:     entry.ID,
		Touch:       touch,
		Placeholder: mo.None[model.Target](),
		Revision:    e.store.Revision(),
	})
	e.state = Dragging
	log.WithFields(log.Fields{
		"list":  list.String(),
		"index": index,
		"entry": entry.ID,
		"touch": touch,
	}).Debug("Drag started")
	return nil
}

// Over moves the placeholder next to the item under the pointer: before it
// when the pointer is left of the split point, after it otherwise. For
// pointer drags the split point is shifted right by floor(pointerX*nudge).
// The returned target is in pre-removal coordinates. Returns false when idle
// or when the item does not exist.
func (e *Engine) Over(pointerX float64, over ItemRect) (model.Target, bool) {
	sess, ok := e.session.Get()
	if !ok {
		return model.Target{}, false
	}
	if !over.List.Valid() || over.Index < 0 || over.Index >= e.store.Len(over.List) {
		return model.Target{}, false
	}

	split := over.Left + over.Width/2
	if !sess.Touch {
		split += math.Floor(pointerX * e.settings.Nudge)
	}
	target := model.Target{List: over.List, Index: over.Index}
	if pointerX >= split {
		target.Index++
	}

	sess.Placeholder = mo.Some(target)
	e.session = mo.Some(sess)
	return target, true
}

// OverEmpty places the placeholder in list when the list has no items.
func (e *Engine) OverEmpty(list model.ListKind) (model.Target, bool) {
	sess, ok := e.session.Get()
	if !ok || !list.Valid() || e.store.Len(list) != 0 {
		return model.Target{}, false
	}
	target := model.Target{List: list, Index: 0}
	sess.Placeholder = mo.Some(target)
	e.session = mo.Some(sess)
	return target, true
}

// Leave removes the placeholder if it is in list.
func (e *Engine) Leave(list model.ListKind) bool {
	sess, ok := e.session.Get()
	if !ok {
		return false
	}
	p, ok := sess.Placeholder.Get()
	if !ok || p.List != list {
		return false
	}
	sess.Placeholder = mo.None[model.Target]()
	e.session = mo.Some(sess)
	return true
}

// Drop commits the gesture at target. An absent or unknown target cancels.
// A negative target Index resolves to the placeholder when it is in the
// target list, and to the end of the list otherwise.
func (e *Engine) Drop(target mo.Option[model.Target]) Outcome {
	sess, ok := e.session.Get()
	if !ok {
		return Outcome{Kind: Ignored}
	}
	defer e.release()

	if sess.Revision != e.store.Revision() {
		return e.cancel(sess, swerr.ErrStaleDragSession)
	}
	t, ok := target.Get()
	if !ok {
		return e.cancel(sess, &swerr.UnresolvedDropTargetError{Reason: "outside both lists"})
	}
	if !t.List.Valid() {
		return e.cancel(sess, &swerr.UnresolvedDropTargetError{Reason: "unknown list " + t.List.String()})
	}
	return e.commit(sess, t.List, e.resolveIndex(sess, t), Committed)
}

// EndTouch finishes a touch gesture. On viewports no wider than the flick
// width, releasing outside both lists or over the redo list container moves
// the entry to the end of the other list. Otherwise it behaves like Drop.
func (e *Engine) EndTouch(target mo.Option[model.Target], viewportWidth int) Outcome {
	sess, ok := e.session.Get()
	if !ok {
		return Outcome{Kind: Ignored}
	}
	if viewportWidth > e.settings.FlickWidth || !isFlickTarget(target) {
		return e.Drop(target)
	}
	defer e.release()

	if sess.Revision != e.store.Revision() {
		return e.cancel(sess, swerr.ErrStaleDragSession)
	}
	other := sess.Source.Other()
	return e.commit(sess, other, e.store.Len(other), Flicked)
}

func isFlickTarget(target mo.Option[model.Target]) bool {
	t, ok := target.Get()
	if !ok {
		return true
	}
	return t.List == model.Redo && t.Index == Container
}

// Cancel abandons the gesture without touching the store.
func (e *Engine) Cancel() Outcome {
	sess, ok := e.session.Get()
	if !ok {
		return Outcome{Kind: Ignored}
	}
	defer e.release()
	return e.cancel(sess, nil)
}

func (e *Engine) resolveIndex(sess Session, t model.Target) int {
	if t.Index >= 0 {
		return t.Index
	}
	if p, ok := sess.Placeholder.Get(); ok && p.List == t.List {
		if p.List == sess.Source && p.Index > sess.SourceIndex {
			return p.Index - 1
		}
		return p.Index
	}
	// Pre-removal length: clamped to the end when the list is the source.
	return e.store.Len(t.List)
}

func (e *Engine) commit(sess Session, dst model.ListKind, index int, kind OutcomeKind) Outcome {
	e.state = Committing
	entry, err := e.store.MoveBetween(sess.Source, sess.SourceIndex, dst, index)
	if err != nil {
		return e.cancel(sess, err)
	}
	if sess.Source == model.Undo || dst == model.Undo {
		e.store.SetCurrentFromUndoTop()
	}

	from := model.Target{List: sess.Source, Index: sess.SourceIndex}
	to := model.Target{List: dst, Index: lo.Clamp(index, 0, e.store.Len(dst)-1)}
	log.WithFields(log.Fields{
		"entry": entry.ID,
		"from":  fmt.Sprintf("%s[%d]", from.List, from.Index),
		"to":    fmt.Sprintf("%s[%d]", to.List, to.Index),
		"kind":  kind.String(),
	}).Debug("Drag committed")
	return Outcome{Kind: kind, Entry: &entry, From: &from, To: &to}
}

func (e *Engine) cancel(sess Session, reason error) Outcome {
	e.state = Cancelling
	fields := log.Fields{"entry": sess.EntryID}
	out := Outcome{Kind: Cancelled}
	if reason != nil {
		fields["reason"] = reason.Error()
		out.Reason = reason.Error()
	}
	if reason != nil && !swerr.IsUnresolvedDropTarget(reason) {
		log.WithFields(fields).Warn("Drag cancelled")
	} else {
		log.WithFields(fields).Debug("Drag cancelled")
	}
	return out
}

func (e *Engine) release() {
	e.session = mo.None[Session]()
	e.state = Idle
}
