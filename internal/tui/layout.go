package tui

import (
	"github.com/amterp/swatch/internal/model"
	"github.com/amterp/swatch/internal/reorder"
)

// Screen geometry. View draws the title on row 0, the swatch on rows 1-3
// and one row per history list. Each list row starts with a fixed-width
// label followed by one cell per entry: a gap column then a two-column
// block. The placeholder is drawn in the gap before its index.
const (
	swatchWidth  = 24
	swatchHeight = 3
	undoRow      = 1 + swatchHeight + 1
	redoRow      = undoRow + 1
	rowLabelW    = 6
	cellWidth    = 3
)

// rowList maps a screen row to the list drawn on it.
func rowList(y int) (model.ListKind, bool) {
	switch y {
	case undoRow:
		return model.Undo, true
	case redoRow:
		return model.Redo, true
	}
	return 0, false
}

// itemRect returns the screen rectangle of entry index in list.
func itemRect(list model.ListKind, index int) reorder.ItemRect {
	return reorder.ItemRect{
		List:  list,
		Index: index,
		Left:  float64(rowLabelW + index*cellWidth),
		Width: cellWidth,
	}
}

// hit describes what lies under a screen position.
type hit struct {
	list model.ListKind
	// index is the entry under the pointer, or -1 for the bare row.
	index int
}

// hitTest resolves a screen position against list rows of the given
// lengths. Hidden rows are not hit.
func hitTest(x, y int, lengths map[model.ListKind]int, visible map[model.ListKind]bool) (hit, bool) {
	list, ok := rowList(y)
	if !ok || !visible[list] {
		return hit{}, false
	}
	if x < rowLabelW {
		return hit{list: list, index: -1}, true
	}
	index := (x - rowLabelW) / cellWidth
	if index >= lengths[list] {
		return hit{list: list, index: -1}, true
	}
	return hit{list: list, index: index}, true
}
