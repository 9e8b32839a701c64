package service

import "github.com/amterp/swatch/internal/model"

// View is implemented by anything that displays the swatch and its history:
// the web hub, the terminal UI, tests.
type View interface {
	// RenderSwatch draws the current color with the click count on it.
	RenderSwatch(current model.Color, label int, labelColor model.Color)
	RenderList(kind model.ListKind, entries []model.Entry)
	SetListVisibility(kind model.ListKind, visible bool)
}

// ColorSource produces new colors for ApplyClicked.
type ColorSource interface {
	Generate() (model.Color, model.Color)
}
