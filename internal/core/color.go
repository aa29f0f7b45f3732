package core

// Color represents a foreground color for a screen cell.
// Frontends map it to ANSI codes or RGBA values.
type Color uint8

// Predefined colors for field elements.
const (
	ColorDefault Color = iota
	ColorGreen
	ColorBrightGreen
	ColorYellow
	ColorBrightYellow
	ColorRed
	ColorCyan
	ColorWhite
	ColorOrange
	ColorGray
)
