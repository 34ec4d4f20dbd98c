package core

// Color is a terminal color slot used by Screen cells.
// The platform layer maps each slot to an actual terminal color.
type Color uint8

// Predefined colors. The first group mirrors the wall palette, the rest are
// interface colors.
const (
	ColorDefault Color = iota
	ColorRed
	ColorYellow
	ColorBlue
	ColorLime
	ColorOrange
	ColorWhite
	ColorBlack
	ColorGray
	ColorDim
	ColorAccent
	ColorHint
)
