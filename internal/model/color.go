package model

import (
	"fmt"
	"strconv"
	"strings"

	swerr "github.com/amterp/swatch/internal/errors"
)

// Color is a 24-bit RGB value. The canonical text form is "#RRGGBB" in
// uppercase, which is also what it marshals to.
type Color struct {
	R, G, B uint8
}

// White is the initial swatch color and the color restored by Reset.
var White = Color{R: 255, G: 255, B: 255}

// Brightness and darkness thresholds for generated colors.
const (
	TooBrightAbove = 200
	TooDarkBelow   = 50
)

// ParseHex parses "#rrggbb" or "rrggbb" in either case.
func ParseHex(s string) (Color, error) {
	raw := strings.TrimPrefix(strings.TrimSpace(s), "#")
	if len(raw) != 6 {
		return Color{}, swerr.InvalidField("color", fmt.Sprintf("%q must be 6 hex digits", s))
	}
	v, err := strconv.ParseUint(raw, 16, 32)
	if err != nil {
		return Color{}, swerr.InvalidField("color", fmt.Sprintf("%q is not hexadecimal", s))
	}
	return Color{R: uint8(v >> 16), G: uint8(v >> 8), B: uint8(v)}, nil
}

// MustParseHex is ParseHex for literals known to be valid.
func MustParseHex(s string) Color {
	c, err := ParseHex(s)
	if err != nil {
		panic(err)
	}
	return c
}

// Hex returns the canonical "#RRGGBB" form.
func (c Color) Hex() string {
	return fmt.Sprintf("#%02X%02X%02X", c.R, c.G, c.B)
}

func (c Color) String() string {
	return c.Hex()
}

// Contrast returns the component-wise inverse, used as the label color
// drawn over the swatch. Contrast is its own inverse.
func (c Color) Contrast() Color {
	return Color{R: 255 - c.R, G: 255 - c.G, B: 255 - c.B}
}

// IsGray reports whether all three components are equal.
func (c Color) IsGray() bool {
	return c.R == c.G && c.G == c.B
}

// IsWhite reports whether the color is #FFFFFF.
func (c Color) IsWhite() bool {
	return c == White
}

// IsTooBright reports whether every component is above TooBrightAbove.
func (c Color) IsTooBright() bool {
	return c.R > TooBrightAbove && c.G > TooBrightAbove && c.B > TooBrightAbove
}

// IsTooDark reports whether every component is below TooDarkBelow.
func (c Color) IsTooDark() bool {
	return c.R < TooDarkBelow && c.G < TooDarkBelow && c.B < TooDarkBelow
}

// Acceptable reports whether the color passes every generator constraint.
func (c Color) Acceptable() bool {
	return !c.IsGray() && !c.IsTooBright() && !c.IsTooDark()
}

// MarshalText implements encoding.TextMarshaler.
func (c Color) MarshalText() ([]byte, error) {
	return []byte(c.Hex()), nil
}

// UnmarshalText implements encoding.TextUnmarshaler.
func (c *Color) UnmarshalText(text []byte) error {
	parsed, err := ParseHex(string(text))
	if err != nil {
		return err
	}
	*c = parsed
	return nil
}
