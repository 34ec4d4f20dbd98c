// Package wall implements the Magic Wall puzzle engine: color rules, grid and
// difference generation, the round state machine and level progression.
// It is UI-agnostic and deterministic for a given random source.
package wall

import "strings"

// Color represents the color of a single wall cell.
type Color uint8

const (
	ColorRed Color = iota
	ColorYellow
	ColorBlue
	ColorLimeGreen
	ColorOrange
	ColorWhite
	ColorBlack
	ColorCount // Sentinel value for iteration
)

// String returns the canonical name of the color.
// The names double as the persisted form in snapshots.
func (c Color) String() string {
	switch c {
	case ColorRed:
		return "Red"
	case ColorYellow:
		return "Yellow"
	case ColorBlue:
		return "Blue"
	case ColorLimeGreen:
		return "LimeGreen"
	case ColorOrange:
		return "Orange"
	case ColorWhite:
		return "White"
	case ColorBlack:
		return "Black"
	default:
		return "Unknown"
	}
}

// Char returns a single character representation for ASCII rendering.
func (c Color) Char() rune {
	switch c {
	case ColorRed:
		return 'R'
	case ColorYellow:
		return 'Y'
	case ColorBlue:
		return 'B'
	case ColorLimeGreen:
		return 'G'
	case ColorOrange:
		return 'O'
	case ColorWhite:
		return 'W'
	case ColorBlack:
		return 'K'
	default:
		return '?'
	}
}

// Valid reports whether c is one of the defined colors.
func (c Color) Valid() bool {
	return c < ColorCount
}

// ParseColor converts a name or single-letter code to a Color.
// Returns ColorRed and false if the string is not recognized.
func ParseColor(s string) (Color, bool) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "red", "r":
		return ColorRed, true
	case "yellow", "y":
		return ColorYellow, true
	case "blue", "b":
		return ColorBlue, true
	case "limegreen", "lime", "green", "g":
		return ColorLimeGreen, true
	case "orange", "o":
		return ColorOrange, true
	case "white", "w":
		return ColorWhite, true
	case "black", "k":
		return ColorBlack, true
	default:
		return ColorRed, false
	}
}

// Scheme identifies one of the two fixed palettes.
type Scheme string

const (
	// SchemeA is the default palette, with White as the sixth color.
	SchemeA Scheme = "a"
	// SchemeB swaps White for Black.
	SchemeB Scheme = "b"
)

var (
	paletteA = []Color{ColorRed, ColorYellow, ColorBlue, ColorLimeGreen, ColorOrange, ColorWhite}
	paletteB = []Color{ColorRed, ColorYellow, ColorBlue, ColorLimeGreen, ColorOrange, ColorBlack}
)

// Palette returns a copy of the colors in the scheme.
// Unknown schemes fall back to SchemeA.
func (s Scheme) Palette() []Color {
	src := paletteA
	if s == SchemeB {
		src = paletteB
	}
	out := make([]Color, len(src))
	copy(out, src)
	return out
}

// String returns the scheme identifier.
func (s Scheme) String() string {
	return string(s)
}

// ParseScheme accepts "a"/"b" or the name of the distinguishing color.
func ParseScheme(s string) (Scheme, bool) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "a", "1", "white", "":
		return SchemeA, true
	case "b", "2", "black":
		return SchemeB, true
	default:
		return SchemeA, false
	}
}
