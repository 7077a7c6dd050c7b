package core

// Color represents a foreground color for a screen cell.
type Color uint8

// Predefined colors. The named ones match catalog classifications so the
// presentation layer can tint a glyph by its semantic color.
const (
	ColorDefault Color = iota
	ColorRed
	ColorGreen
	ColorYellow
	ColorBlue
	ColorPurple
	ColorOrange
	ColorCyan
	ColorGray
	ColorWhite
)

// ColorFor maps a classification name to a display color.
// Non-color classifications (even, vowel, ...) get ColorDefault.
func ColorFor(classification string) Color {
	switch classification {
	case "red":
		return ColorRed
	case "green":
		return ColorGreen
	case "yellow":
		return ColorYellow
	case "blue":
		return ColorBlue
	case "purple":
		return ColorPurple
	case "orange":
		return ColorOrange
	default:
		return ColorDefault
	}
}
