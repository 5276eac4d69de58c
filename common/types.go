// package common contains common types that are used throughout this engine. They are not interface-wrapped structs, just plain structs that express
// commonly used data-types.
package common

import (
	"errors"
	"fmt"
	"strconv"
	"strings"
)

// ErrInvalidColor is returned when a colour string cannot be parsed.
var ErrInvalidColor = errors.New("invalid color")

// Color is a linear RGB colour with components in [0, 1].
type Color struct {
	R, G, B float32
}

// ParseHexColor parses a colour in "#rrggbb" or "rrggbb" form, as delivered by HTML-style colour pickers.
//
// Parameters:
//   - s: the hex colour string
//
// Returns:
//   - Color: the parsed colour
//   - error: ErrInvalidColor (wrapped) if s is not a 6-digit hex colour
func ParseHexColor(s string) (Color, error) {
	hex := strings.TrimPrefix(strings.TrimSpace(s), "#")
	if len(hex) != 6 {
		return Color{}, fmt.Errorf("%w: %q must have 6 hex digits", ErrInvalidColor, s)
	}
	v, err := strconv.ParseUint(hex, 16, 32)
	if err != nil {
		return Color{}, fmt.Errorf("%w: %q: %v", ErrInvalidColor, s, err)
	}
	return Color{
		R: float32((v>>16)&0xff) / 255,
		G: float32((v>>8)&0xff) / 255,
		B: float32(v&0xff) / 255,
	}, nil
}

// MustParseHexColor is ParseHexColor for compile-time constants. It panics on malformed input.
func MustParseHexColor(s string) Color {
	c, err := ParseHexColor(s)
	if err != nil {
		panic(err)
	}
	return c
}

// Hex formats the colour as "#rrggbb". Components are clamped to [0, 1] and rounded.
func (c Color) Hex() string {
	toByte := func(v float32) uint8 {
		return uint8(Clamp(v, 0, 1)*255 + 0.5)
	}
	return fmt.Sprintf("#%02x%02x%02x", toByte(c.R), toByte(c.G), toByte(c.B))
}

// Mix linearly interpolates between c and other by t in [0, 1].
func (c Color) Mix(other Color, t float32) Color {
	t = Clamp(t, 0, 1)
	return Color{
		R: Lerp(c.R, other.R, t),
		G: Lerp(c.G, other.G, t),
		B: Lerp(c.B, other.B, t),
	}
}

// Array returns the colour as a 3-element array, the layout used by GPU uniforms.
func (c Color) Array() [3]float32 {
	return [3]float32{c.R, c.G, c.B}
}
