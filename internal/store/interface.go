package store

import (
	"github.com/amterp/swatch/internal/model"
	"github.com/samber/mo"
)

// StackStore holds the undo and redo lists and the current color.
type StackStore interface {
	ApplyNewColor(color model.Color)
	Undo() bool
	Redo() bool
	RemoveAt(list model.ListKind, index int) (model.Entry, error)
	InsertAt(list model.ListKind, index int, entry model.Entry)
	MoveBetween(src model.ListKind, srcIndex int, dst model.ListKind, dstIndex int) (model.Entry, error)
	SetCurrentFromUndoTop() bool
	Reset()

	Current() model.Color
	Contrast() mo.Option[model.Color]
	ClickCount() int
	Revision() uint64
	Len(list model.ListKind) int
	At(list model.ListKind, index int) (model.Entry, error)
	Entries(list model.ListKind) []model.Entry
	Snapshot() model.Snapshot
}

// ConfigStore handles user config persistence.
type ConfigStore interface {
	Load() (*model.Config, error)
	Save(config *model.Config) error
	Exists() bool
	Path() string
}

var _ StackStore = (*MemoryStackStore)(nil)
