package store

import (
	"testing"

	swerr "github.com/amterp/swatch/internal/errors"
	"github.com/amterp/swatch/internal/id"
	"github.com/amterp/swatch/internal/model"
)

func newTestStackStore() *MemoryStackStore {
	return NewStackStore(id.Sequential("e"))
}

func hexes(entries []model.Entry) []string {
	out := make([]string, len(entries))
	for i, e := range entries {
		out[i] = e.Color.Hex()
	}
	return out
}

func assertList(t *testing.T, s *MemoryStackStore, list model.ListKind, want ...string) {
	t.Helper()
	got := hexes(s.Entries(list))
	if len(got) != len(want) {
		t.Fatalf("%s list = %v, want %v", list, got, want)
	}
	for i := range want {
		if got[i] != want[i] {
			t.Fatalf("%s list = %v, want %v", list, got, want)
		}
	}
}

var (
	c1 = model.MustParseHex("#112233")
	c2 = model.MustParseHex("#445566")
	c3 = model.MustParseHex("#778899")
)

func TestStackStore_InitialState(t *testing.T) {
	s := newTestStackStore()

	if s.Current() != model.White {
		t.Errorf("expected white, got %s", s.Current())
	}
	if s.ClickCount() != 0 {
		t.Errorf("expected click count 0, got %d", s.ClickCount())
	}
	if s.Contrast().IsPresent() {
		t.Error("expected no contrast before first change")
	}
	assertList(t, s, model.Undo)
	assertList(t, s, model.Redo)
}

func TestStackStore_ApplyNewColor(t *testing.T) {
	s := newTestStackStore()

	s.ApplyNewColor(c1)

	if s.Current() != c1 {
		t.Errorf("current = %s, want %s", s.Current(), c1)
	}
	if s.ClickCount() != 1 {
		t.Errorf("click count = %d, want 1", s.ClickCount())
	}
	contrast, ok := s.Contrast().Get()
	if !ok || contrast != c1.Contrast() {
		t.Errorf("contrast = %v (present %v), want %s", contrast, ok, c1.Contrast())
	}
	assertList(t, s, model.Undo, "#FFFFFF")
}

func TestStackStore_ResetApplyApplyUndoScenario(t *testing.T) {
	s := newTestStackStore()
	s.ApplyNewColor(c3)
	s.Reset()

	s.ApplyNewColor(c1)
	s.ApplyNewColor(c2)
	if !s.Undo() {
		t.Fatal("Undo returned false")
	}

	if s.Current() != c1 {
		t.Errorf("current = %s, want %s", s.Current(), c1)
	}
	assertList(t, s, model.Undo, "#FFFFFF")
	assertList(t, s, model.Redo, "#445566")
	if s.ClickCount() != 2 {
		t.Errorf("undo must not change click count, got %d", s.ClickCount())
	}
}

func TestStackStore_ApplyNThenUndoN(t *testing.T) {
	s := newTestStackStore()
	s.ApplyNewColor(c3)
	before := s.Current()
	undoBefore := s.Len(model.Undo)

	colors := []model.Color{c1, c2, c3, c1, c2}
	for _, c := range colors {
		s.ApplyNewColor(c)
	}
	for range colors {
		if !s.Undo() {
			t.Fatal("Undo returned false")
		}
	}

	if s.Current() != before {
		t.Errorf("current = %s, want %s", s.Current(), before)
	}
	if s.Len(model.Undo) != undoBefore {
		t.Errorf("undo length = %d, want %d", s.Len(model.Undo), undoBefore)
	}
	if s.Len(model.Redo) != len(colors) {
		t.Errorf("redo length = %d, want %d", s.Len(model.Redo), len(colors))
	}
}

func TestStackStore_UndoThenRedoIsIdentity(t *testing.T) {
	s := newTestStackStore()
	s.ApplyNewColor(c1)
	s.ApplyNewColor(c2)
	s.ApplyNewColor(c3)
	s.Undo()

	current := s.Current()
	undo := hexes(s.Entries(model.Undo))
	redo := hexes(s.Entries(model.Redo))

	s.Undo()
	s.Redo()

	if s.Current() != current {
		t.Errorf("current = %s, want %s", s.Current(), current)
	}
	assertList(t, s, model.Undo, undo...)
	assertList(t, s, model.Redo, redo...)
}

func TestStackStore_UndoRedoPreserveEntryIdentity(t *testing.T) {
	s := newTestStackStore()
	s.ApplyNewColor(c1)
	s.ApplyNewColor(c2)
	topID := s.Entries(model.Undo)[1].ID

	s.Undo()
	s.Undo()
	s.Redo()

	// c1 went undo -> current -> redo -> current; the white entry went
	// undo -> current -> undo.
	if got := s.Entries(model.Redo); len(got) != 1 || got[0].Color != c2 {
		t.Fatalf("unexpected redo list %v", hexes(got))
	}
	if s.current.ID != topID {
		t.Errorf("current ID = %q, want %q", s.current.ID, topID)
	}
}

func TestStackStore_EmptyUndoRedoAreNoOps(t *testing.T) {
	s := newTestStackStore()
	rev := s.Revision()

	if s.Undo() {
		t.Error("Undo on empty list should return false")
	}
	if s.Redo() {
		t.Error("Redo on empty list should return false")
	}
	if s.Revision() != rev {
		t.Error("no-op undo/redo must not bump revision")
	}
	if s.Current() != model.White {
		t.Errorf("current changed to %s", s.Current())
	}
}

func TestStackStore_ApplyClearsRedo(t *testing.T) {
	s := newTestStackStore()
	s.ApplyNewColor(c1)
	s.ApplyNewColor(c2)
	s.Undo()
	if s.Len(model.Redo) == 0 {
		t.Fatal("setup: redo should be non-empty")
	}

	s.ApplyNewColor(c3)

	if s.Len(model.Redo) != 0 {
		t.Errorf("redo length = %d, want 0", s.Len(model.Redo))
	}
	assertList(t, s, model.Undo, "#FFFFFF", "#112233")
}

func TestStackStore_RemoveAt(t *testing.T) {
	s := newTestStackStore()
	s.ApplyNewColor(c1)
	s.ApplyNewColor(c2)

	entry, err := s.RemoveAt(model.Undo, 0)
	if err != nil {
		t.Fatalf("RemoveAt failed: %v", err)
	}
	if entry.Color != model.White {
		t.Errorf("removed %s, want #FFFFFF", entry.Color)
	}
	assertList(t, s, model.Undo, "#112233")
}

func TestStackStore_RemoveAt_OutOfRange(t *testing.T) {
	s := newTestStackStore()
	s.ApplyNewColor(c1)

	for _, idx := range []int{-1, 1, 5} {
		rev := s.Revision()
		_, err := s.RemoveAt(model.Undo, idx)
		if !swerr.IsIndexOutOfRange(err) {
			t.Errorf("index %d: expected IndexOutOfRange, got %v", idx, err)
		}
		if s.Revision() != rev {
			t.Errorf("index %d: failed removal bumped revision", idx)
		}
	}
	assertList(t, s, model.Undo, "#FFFFFF")
}

func TestStackStore_InsertAt_Clamps(t *testing.T) {
	s := newTestStackStore()
	s.InsertAt(model.Redo, 0, model.Entry{ID: "a", Color: c1})
	s.InsertAt(model.Redo, 99, model.Entry{ID: "b", Color: c2})
	s.InsertAt(model.Redo, -4, model.Entry{ID: "c", Color: c3})
	s.InsertAt(model.Redo, 1, model.Entry{ID: "d", Color: model.White})

	assertList(t, s, model.Redo, "#778899", "#FFFFFF", "#112233", "#445566")
}

func TestStackStore_MoveBetween_Reclassify(t *testing.T) {
	s := newTestStackStore()
	s.ApplyNewColor(c1)
	s.ApplyNewColor(c2) // undo = [#FFFFFF, #112233]

	entry, err := s.MoveBetween(model.Undo, 0, model.Redo, s.Len(model.Redo))
	if err != nil {
		t.Fatalf("MoveBetween failed: %v", err)
	}
	if entry.Color != model.White {
		t.Errorf("moved %s, want #FFFFFF", entry.Color)
	}
	assertList(t, s, model.Undo, "#112233")
	assertList(t, s, model.Redo, "#FFFFFF")
}

func TestStackStore_MoveBetween_ReorderSameList(t *testing.T) {
	s := newTestStackStore()
	s.InsertAt(model.Undo, 99, model.Entry{ID: "a", Color: c1})
	s.InsertAt(model.Undo, 99, model.Entry{ID: "b", Color: c2})
	s.InsertAt(model.Undo, 99, model.Entry{ID: "c", Color: c3})

	if _, err := s.MoveBetween(model.Undo, 0, model.Undo, 2); err != nil {
		t.Fatalf("MoveBetween failed: %v", err)
	}
	assertList(t, s, model.Undo, "#445566", "#778899", "#112233")

	if _, err := s.MoveBetween(model.Undo, 2, model.Undo, 0); err != nil {
		t.Fatalf("MoveBetween failed: %v", err)
	}
	assertList(t, s, model.Undo, "#112233", "#445566", "#778899")
}

func TestStackStore_MoveBetween_FailureLeavesStoreUnchanged(t *testing.T) {
	s := newTestStackStore()
	s.ApplyNewColor(c1)
	rev := s.Revision()

	_, err := s.MoveBetween(model.Redo, 0, model.Undo, 0)
	if !swerr.IsIndexOutOfRange(err) {
		t.Fatalf("expected IndexOutOfRange, got %v", err)
	}
	if s.Revision() != rev {
		t.Error("failed move must not mutate the store")
	}
	assertList(t, s, model.Undo, "#FFFFFF")
	assertList(t, s, model.Redo)
}

func TestStackStore_MoveBetween_PreservesTotalCount(t *testing.T) {
	s := newTestStackStore()
	for _, c := range []model.Color{c1, c2, c3, c1, c2} {
		s.ApplyNewColor(c)
	}
	s.Undo()
	s.Undo()
	total := s.Len(model.Undo) + s.Len(model.Redo)

	moves := []struct {
		src    model.ListKind
		srcIdx int
		dst    model.ListKind
		dstIdx int
	}{
		{model.Undo, 0, model.Redo, 0},
		{model.Redo, 2, model.Undo, 1},
		{model.Undo, 1, model.Undo, 3},
		{model.Redo, 0, model.Redo, 9},
		{model.Undo, 2, model.Redo, 1},
	}
	for _, m := range moves {
		if _, err := s.MoveBetween(m.src, m.srcIdx, m.dst, m.dstIdx); err != nil {
			t.Fatalf("move %+v failed: %v", m, err)
		}
		if got := s.Len(model.Undo) + s.Len(model.Redo); got != total {
			t.Fatalf("after %+v total = %d, want %d", m, got, total)
		}
	}
}

func TestStackStore_SetCurrentFromUndoTop(t *testing.T) {
	s := newTestStackStore()
	if s.SetCurrentFromUndoTop() {
		t.Error("expected false with empty undo")
	}
	if s.Current() != model.White {
		t.Errorf("current changed to %s", s.Current())
	}

	s.ApplyNewColor(c1)
	s.ApplyNewColor(c2)
	if !s.SetCurrentFromUndoTop() {
		t.Fatal("expected true")
	}
	if s.Current() != c1 {
		t.Errorf("current = %s, want %s", s.Current(), c1)
	}
	if got, _ := s.Contrast().Get(); got != c1.Contrast() {
		t.Errorf("contrast = %s, want %s", got, c1.Contrast())
	}
	top, _ := s.At(model.Undo, 1)
	if top.ID == s.current.ID {
		t.Error("current must not share an ID with an undo entry")
	}
}

func TestStackStore_Reset(t *testing.T) {
	s := newTestStackStore()
	s.ApplyNewColor(c1)
	s.ApplyNewColor(c2)
	s.Undo()

	s.Reset()

	if s.Current() != model.White {
		t.Errorf("current = %s, want white", s.Current())
	}
	if s.ClickCount() != 0 {
		t.Errorf("click count = %d, want 0", s.ClickCount())
	}
	if s.Contrast().IsPresent() {
		t.Error("contrast should be cleared")
	}
	assertList(t, s, model.Undo)
	assertList(t, s, model.Redo)
}

func TestStackStore_EntriesReturnsCopy(t *testing.T) {
	s := newTestStackStore()
	s.ApplyNewColor(c1)

	entries := s.Entries(model.Undo)
	entries[0].Color = c3

	assertList(t, s, model.Undo, "#FFFFFF")
}

func TestStackStore_Snapshot(t *testing.T) {
	s := newTestStackStore()
	snap := s.Snapshot()
	if snap.Contrast != nil {
		t.Error("expected nil contrast in initial snapshot")
	}

	s.ApplyNewColor(c1)
	snap = s.Snapshot()
	if snap.Current != c1 || snap.ClickCount != 1 {
		t.Errorf("unexpected snapshot %+v", snap)
	}
	if snap.Contrast == nil || *snap.Contrast != c1.Contrast() {
		t.Errorf("unexpected contrast %v", snap.Contrast)
	}
	if len(snap.Undo) != 1 || len(snap.Redo) != 0 {
		t.Errorf("unexpected lists %v / %v", snap.Undo, snap.Redo)
	}
}
