package cli

import (
	"github.com/amterp/swatch/internal/model"
)

// colorJson represents a generated color for JSON output.
type colorJson struct {
	Hex      string   `json:"hex"`
	Contrast string   `json:"contrast"`
	RGB      [3]uint8 `json:"rgb"`
}

func colorToJson(c model.Color) colorJson {
	return colorJson{
		Hex:      c.Hex(),
		Contrast: c.Contrast().Hex(),
		RGB:      [3]uint8{c.R, c.G, c.B},
	}
}

// ColorsOutput wraps generated colors for JSON output.
type ColorsOutput struct {
	Colors []colorJson `json:"colors"`
}

// NewColorsOutput creates a ColorsOutput from colors.
// Always returns an empty array (not null) when there are no colors.
func NewColorsOutput(colors []model.Color) ColorsOutput {
	result := make([]colorJson, 0, len(colors))
	for _, c := range colors {
		result = append(result, colorToJson(c))
	}
	return ColorsOutput{Colors: result}
}

// ConfigOutput wraps the effective config for JSON output.
type ConfigOutput struct {
	Path   string        `json:"path"`
	Exists bool          `json:"exists"`
	Config *model.Config `json:"config"`
}
