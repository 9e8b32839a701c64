package model

import (
	"strings"

	swerr "github.com/amterp/swatch/internal/errors"
)

// ListKind names one of the two history sequences.
type ListKind int

const (
	Undo ListKind = iota
	Redo
)

// ListKinds is every list in display order.
var ListKinds = []ListKind{Undo, Redo}

// String returns the lowercase wire name ("undo" or "redo").
func (k ListKind) String() string {
	switch k {
	case Undo:
		return "undo"
	case Redo:
		return "redo"
	}
	return "unknown"
}

// Other returns the opposite list.
func (k ListKind) Other() ListKind {
	if k == Undo {
		return Redo
	}
	return Undo
}

// Valid reports whether k is Undo or Redo.
func (k ListKind) Valid() bool {
	return k == Undo || k == Redo
}

// ParseListKind accepts "undo" or "redo", case-insensitively.
func ParseListKind(s string) (ListKind, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "undo":
		return Undo, nil
	case "redo":
		return Redo, nil
	}
	return 0, swerr.ListNotFound(s)
}

// MarshalText implements encoding.TextMarshaler.
func (k ListKind) MarshalText() ([]byte, error) {
	return []byte(k.String()), nil
}

// UnmarshalText implements encoding.TextUnmarshaler.
func (k *ListKind) UnmarshalText(text []byte) error {
	parsed, err := ParseListKind(string(text))
	if err != nil {
		return err
	}
	*k = parsed
	return nil
}

// Entry is one color held in a history list. The ID is the item's identity:
// relocating an entry moves it, it never copies it.
type Entry struct {
	ID    string `json:"id"`
	Color Color  `json:"color"`
}
