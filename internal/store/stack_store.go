package store

import (
	"slices"

	swerr "github.com/amterp/swatch/internal/errors"
	"github.com/amterp/swatch/internal/id"
	"github.com/amterp/swatch/internal/model"
	"github.com/samber/lo"
	"github.com/samber/mo"
)

// MemoryStackStore implements StackStore in process memory.
//
// Index convention: index 0 is the oldest entry and the last element is the
// active end, nearest the current color. Push and pop happen at the end.
//
// Not safe for concurrent use; callers serialize access (see service.Controller).
type MemoryStackStore struct {
	undo       []model.Entry
	redo       []model.Entry
	current    model.Entry
	contrast   mo.Option[model.Color]
	clickCount int
	revision   uint64
	newID      id.Func
}

// NewStackStore creates a store with empty lists and a white current color.
// A nil newID uses id.Generate.
func NewStackStore(newID id.Func) *MemoryStackStore {
	if newID == nil {
		newID = id.Generate
	}
	s := &MemoryStackStore{newID: newID}
	s.reset()
	return s
}

// ApplyNewColor makes color current. A non-empty redo list is discarded,
// since branching the history invalidates it, and the displaced current color
// is pushed onto undo.
func (s *MemoryStackStore) ApplyNewColor(color model.Color) {
	if len(s.redo) > 0 {
		s.redo = nil
	}
	s.undo = append(s.undo, s.current)
	s.setCurrent(model.Entry{ID: s.newID(), Color: color})
	s.clickCount++
	s.revision++
}

// Undo pops the top of undo into current and pushes the displaced current
// color onto redo. Returns false and changes nothing when undo is empty.
// The click count is unchanged: it counts newly applied colors only.
func (s *MemoryStackStore) Undo() bool {
	return s.shift(model.Undo)
}

// Redo is the mirror of Undo.
func (s *MemoryStackStore) Redo() bool {
	return s.shift(model.Redo)
}

func (s *MemoryStackStore) shift(from model.ListKind) bool {
	src := s.list(from)
	if len(*src) == 0 {
		return false
	}
	last := (*src)[len(*src)-1]
	*src = (*src)[:len(*src)-1]

	dst := s.list(from.Other())
	*dst = append(*dst, s.current)
	s.setCurrent(last)
	s.revision++
	return true
}

// RemoveAt removes and returns the entry at index.
func (s *MemoryStackStore) RemoveAt(list model.ListKind, index int) (model.Entry, error) {
	seq := s.list(list)
	if index < 0 || index >= len(*seq) {
		return model.Entry{}, swerr.IndexOutOfRange(list.String(), index, len(*seq))
	}
	entry := (*seq)[index]
	*seq = slices.Delete(*seq, index, index+1)
	s.revision++
	return entry, nil
}

// InsertAt inserts entry at index, clamped to [0, len]. An index equal to
// the length appends.
func (s *MemoryStackStore) InsertAt(list model.ListKind, index int, entry model.Entry) {
	seq := s.list(list)
	index = lo.Clamp(index, 0, len(*seq))
	*seq = slices.Insert(*seq, index, entry)
	s.revision++
}

// MoveBetween removes the entry at (src, srcIndex) and inserts it at
// (dst, dstIndex). dstIndex is interpreted after the removal. When the removal
// fails nothing is inserted and the store is unchanged.
func (s *MemoryStackStore) MoveBetween(src model.ListKind, srcIndex int, dst model.ListKind, dstIndex int) (model.Entry, error) {
	entry, err := s.RemoveAt(src, srcIndex)
	if err != nil {
		return model.Entry{}, err
	}
	s.InsertAt(dst, dstIndex, entry)
	return entry, nil
}

// SetCurrentFromUndoTop makes the last undo entry's color current, leaving
// the entry in place. Returns false and changes nothing when undo is empty.
func (s *MemoryStackStore) SetCurrentFromUndoTop() bool {
	if len(s.undo) == 0 {
		return false
	}
	top := s.undo[len(s.undo)-1]
	// Fresh identity: the same color now appears in undo and as current.
	s.setCurrent(model.Entry{ID: s.newID(), Color: top.Color})
	s.revision++
	return true
}

// Reset empties both lists, restores white and clears the counter.
func (s *MemoryStackStore) Reset() {
	s.reset()
	s.revision++
}

func (s *MemoryStackStore) reset() {
	s.undo = nil
	s.redo = nil
	s.current = model.Entry{ID: s.newID(), Color: model.White}
	s.contrast = mo.None[model.Color]()
	s.clickCount = 0
}

func (s *MemoryStackStore) setCurrent(entry model.Entry) {
	s.current = entry
	s.contrast = mo.Some(entry.Color.Contrast())
}

// Current returns the current color.
func (s *MemoryStackStore) Current() model.Color {
	return s.current.Color
}

// Contrast returns the label color, absent before any change and after reset.
func (s *MemoryStackStore) Contrast() mo.Option[model.Color] {
	return s.contrast
}

// ClickCount returns the number of colors applied since the last reset.
func (s *MemoryStackStore) ClickCount() int {
	return s.clickCount
}

// Revision increases on every mutation.
func (s *MemoryStackStore) Revision() uint64 {
	return s.revision
}

// Len returns the length of the given list.
func (s *MemoryStackStore) Len(list model.ListKind) int {
	return len(*s.list(list))
}

// At returns the entry at index.
func (s *MemoryStackStore) At(list model.ListKind, index int) (model.Entry, error) {
	seq := *s.list(list)
	if index < 0 || index >= len(seq) {
		return model.Entry{}, swerr.IndexOutOfRange(list.String(), index, len(seq))
	}
	return seq[index], nil
}

// Entries returns a copy of the given list.
func (s *MemoryStackStore) Entries(list model.ListKind) []model.Entry {
	seq := *s.list(list)
	out := make([]model.Entry, len(seq))
	copy(out, seq)
	return out
}

// Snapshot returns the store's part of the read model. Visibility and drag
// state are filled in by the caller.
func (s *MemoryStackStore) Snapshot() model.Snapshot {
	snap := model.Snapshot{
		Current:    s.current.Color,
		ClickCount: s.clickCount,
		Undo:       s.Entries(model.Undo),
		Redo:       s.Entries(model.Redo),
	}
	if c, ok := s.contrast.Get(); ok {
		snap.Contrast = &c
	}
	return snap
}

func (s *MemoryStackStore) list(kind model.ListKind) *[]model.Entry {
	if kind == model.Redo {
		return &s.redo
	}
	return &s.undo
}
