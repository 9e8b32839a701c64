package service

import (
	"sync"

	swerr "github.com/amterp/swatch/internal/errors"
	"github.com/amterp/swatch/internal/model"
	"github.com/amterp/swatch/internal/reorder"
	"github.com/amterp/swatch/internal/store"
	"github.com/samber/lo"
	"github.com/samber/mo"
	log "github.com/sirupsen/logrus"
)

// Controller owns the application state and exposes one method per user
// interaction. Every method holds the controller lock for its whole run, so
// events from several goroutines are applied one at a time, and committed
// mutations are rendered to every view before the method returns.
type Controller struct {
	mu      sync.Mutex
	store   store.StackStore
	engine  *reorder.Engine
	colors  ColorSource
	visible model.Visibility
	views   []View
}

// NewController creates a controller over the given store.
func NewController(s store.StackStore, colors ColorSource, settings reorder.Settings) *Controller {
	return &Controller{
		store:  s,
		engine: reorder.NewEngine(s, settings),
		colors: colors,
	}
}

// AddView registers v and renders the full state to it.
func (c *Controller) AddView(v View) {
	c.mu.Lock()
	defer c.mu.Unlock()

	c.views = append(c.views, v)
	c.renderTo(v)
	for _, kind := range model.ListKinds {
		v.SetListVisibility(kind, c.visible.Of(kind))
	}
}

// RemoveView unregisters v. Unknown views are ignored.
func (c *Controller) RemoveView(v View) {
	c.mu.Lock()
	defer c.mu.Unlock()

	c.views = lo.Without(c.views, v)
}

// ApplyClicked generates a color and makes it current.
func (c *Controller) ApplyClicked() model.Snapshot {
	c.mu.Lock()
	defer c.mu.Unlock()

	color, _ := c.colors.Generate()
	c.store.ApplyNewColor(color)
	log.WithFields(log.Fields{
		"color": color.Hex(),
		"count": c.store.ClickCount(),
	}).Debug("Applied new color")
	c.render()
	return c.snapshot()
}

// UndoClicked restores the previous color. An empty undo list is ignored.
func (c *Controller) UndoClicked() model.Snapshot {
	return c.shift(model.Undo, c.store.Undo)
}

// RedoClicked is the mirror of UndoClicked.
func (c *Controller) RedoClicked() model.Snapshot {
	return c.shift(model.Redo, c.store.Redo)
}

func (c *Controller) shift(from model.ListKind, op func() bool) model.Snapshot {
	c.mu.Lock()
	defer c.mu.Unlock()

	if !op() {
		log.WithField("reason", swerr.EmptyStack(from.String()).Error()).Debug("Ignored " + from.String())
		return c.snapshot()
	}
	c.render()
	return c.snapshot()
}

// ResetClicked clears the history. A gesture in progress is abandoned.
func (c *Controller) ResetClicked() model.Snapshot {
	c.mu.Lock()
	defer c.mu.Unlock()

	c.engine.Cancel()
	c.store.Reset()
	log.Debug("Reset")
	c.render()
	return c.snapshot()
}

// ToggleList shows a hidden list, hiding the other one, or hides a shown
// list. The overlay is visible while either list is.
func (c *Controller) ToggleList(kind model.ListKind) (model.Snapshot, error) {
	c.mu.Lock()
	defer c.mu.Unlock()

	if !kind.Valid() {
		return model.Snapshot{}, swerr.ListNotFound(kind.String())
	}

	show := !c.visible.Of(kind)
	c.setVisible(kind, show)
	if show {
		c.setVisible(kind.Other(), false)
	}
	c.visible.Overlay = c.visible.Undo || c.visible.Redo

	for _, v := range c.views {
		for _, k := range model.ListKinds {
			v.SetListVisibility(k, c.visible.Of(k))
		}
	}
	return c.snapshot(), nil
}

func (c *Controller) setVisible(kind model.ListKind, visible bool) {
	if kind == model.Undo {
		c.visible.Undo = visible
	} else {
		c.visible.Redo = visible
	}
}

// DragStart begins a pointer drag of the entry at (list, index).
func (c *Controller) DragStart(list model.ListKind, index int, entryID string) error {
	return c.start(list, index, entryID, false)
}

// TouchStart begins a touch drag of the entry at (list, index).
func (c *Controller) TouchStart(list model.ListKind, index int, entryID string) error {
	return c.start(list, index, entryID, true)
}

func (c *Controller) start(list model.ListKind, index int, entryID string, touch bool) error {
	c.mu.Lock()
	defer c.mu.Unlock()

	return c.engine.Start(list, index, entryID, touch)
}

// DragOver positions the placeholder relative to the item under the pointer.
func (c *Controller) DragOver(pointerX float64, over reorder.ItemRect) (model.Target, bool) {
	c.mu.Lock()
	defer c.mu.Unlock()

	return c.engine.Over(pointerX, over)
}

// TouchMove is DragOver for touch gestures. An absent item means the finger
// is over no list item and the placeholder stays where it is.
func (c *Controller) TouchMove(touchX float64, over mo.Option[reorder.ItemRect]) (model.Target, bool) {
	rect, ok := over.Get()
	if !ok {
		return model.Target{}, false
	}
	return c.DragOver(touchX, rect)
}

// DragOverEmpty puts the placeholder into an empty list.
func (c *Controller) DragOverEmpty(list model.ListKind) (model.Target, bool) {
	c.mu.Lock()
	defer c.mu.Unlock()

	return c.engine.OverEmpty(list)
}

// DragLeave removes the placeholder from list.
func (c *Controller) DragLeave(list model.ListKind) bool {
	c.mu.Lock()
	defer c.mu.Unlock()

	return c.engine.Leave(list)
}

// Drop ends a pointer drag over target, or outside both lists when target
// is absent.
func (c *Controller) Drop(target mo.Option[model.Target]) (reorder.Outcome, model.Snapshot) {
	c.mu.Lock()
	defer c.mu.Unlock()

	return c.finish(c.engine.Drop(target))
}

// TouchEnd ends a touch drag. See reorder.Engine.EndTouch.
func (c *Controller) TouchEnd(target mo.Option[model.Target], viewportWidth int) (reorder.Outcome, model.Snapshot) {
	c.mu.Lock()
	defer c.mu.Unlock()

	return c.finish(c.engine.EndTouch(target, viewportWidth))
}

// DragCancel abandons the gesture in progress.
func (c *Controller) DragCancel() (reorder.Outcome, model.Snapshot) {
	c.mu.Lock()
	defer c.mu.Unlock()

	return c.finish(c.engine.Cancel())
}

func (c *Controller) finish(out reorder.Outcome) (reorder.Outcome, model.Snapshot) {
	if out.Changed() {
		c.render()
	}
	return out, c.snapshot()
}

// UpdateDragSettings replaces the drop-point settings, typically after the
// config file changed.
func (c *Controller) UpdateDragSettings(settings reorder.Settings) {
	c.mu.Lock()
	defer c.mu.Unlock()

	c.engine.SetSettings(settings)
	log.WithFields(log.Fields{
		"nudge":       settings.Nudge,
		"flick_width": settings.FlickWidth,
	}).Info("Drag settings updated")
}

// DragSettings returns the active drop-point settings.
func (c *Controller) DragSettings() reorder.Settings {
	c.mu.Lock()
	defer c.mu.Unlock()

	return c.engine.Settings()
}

// Snapshot returns the full read model.
func (c *Controller) Snapshot() model.Snapshot {
	c.mu.Lock()
	defer c.mu.Unlock()

	return c.snapshot()
}

// ReadSnapshot calls fn with the current state while holding the lock, so
// no render can interleave with fn.
func (c *Controller) ReadSnapshot(fn func(model.Snapshot)) {
	c.mu.Lock()
	defer c.mu.Unlock()

	fn(c.snapshot())
}

func (c *Controller) snapshot() model.Snapshot {
	snap := c.store.Snapshot()
	snap.Visible = c.visible
	if sess, ok := c.engine.Session().Get(); ok {
		snap.Dragging = sess.Summary()
	}
	return snap
}

func (c *Controller) render() {
	for _, v := range c.views {
		c.renderTo(v)
	}
}

func (c *Controller) renderTo(v View) {
	snap := c.store.Snapshot()
	v.RenderSwatch(snap.Current, snap.ClickCount, snap.LabelColor())
	v.RenderList(model.Undo, snap.Undo)
	v.RenderList(model.Redo, snap.Redo)
}
