package core

import "strings"

// Color represents a foreground color for a screen cell.
// The platform maps each value onto an ANSI 256-color code.
type Color uint8

// Screen colors. Player cannons use the bright variants.
const (
	ColorDefault Color = iota
	ColorRed
	ColorGreen
	ColorYellow
	ColorBlue
	ColorMagenta
	ColorCyan
	ColorWhite
	ColorBrightRed
	ColorBrightGreen
	ColorBrightYellow
	ColorBrightBlue
	ColorBrightMagenta
	ColorBrightCyan
	ColorBrightWhite
	ColorOrange
	ColorGray
)

// playerColors maps the color tags a config may give a player.
var playerColors = map[string]Color{
	"blue":    ColorBrightBlue,
	"red":     ColorBrightRed,
	"green":   ColorBrightGreen,
	"yellow":  ColorBrightYellow,
	"magenta": ColorBrightMagenta,
	"purple":  ColorBrightMagenta,
	"cyan":    ColorBrightCyan,
	"orange":  ColorOrange,
	"white":   ColorBrightWhite,
	"gray":    ColorGray,
	"grey":    ColorGray,
}

// ParseColor maps a player color tag onto a screen color, ignoring case.
// ok is false for unknown tags.
func ParseColor(tag string) (c Color, ok bool) {
	c, ok = playerColors[strings.ToLower(strings.TrimSpace(tag))]
	return c, ok
}
