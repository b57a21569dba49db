package core

// Color is a foreground color for a screen cell. The platform layer maps
// it to an ANSI 256-color code with ANSI.
type Color uint8

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

	// NumColors is the size of the palette.
	NumColors
)

// Arena palette.
const (
	ColorHUD      = ColorBrightWhite
	ColorFrame    = ColorGray
	ColorTeamRed  = ColorBrightRed
	ColorTeamBlue = ColorBrightBlue
	ColorNeutral  = ColorYellow
	ColorShot     = ColorMagenta
	ColorMine     = ColorOrange
	ColorShield   = ColorCyan
)

var ansiCodes = [NumColors]int{
	ColorDefault:       -1,
	ColorRed:           1,
	ColorGreen:         2,
	ColorYellow:        3,
	ColorBlue:          4,
	ColorMagenta:       5,
	ColorCyan:          6,
	ColorWhite:         7,
	ColorBrightRed:     9,
	ColorBrightGreen:   10,
	ColorBrightYellow:  11,
	ColorBrightBlue:    12,
	ColorBrightMagenta: 13,
	ColorBrightCyan:    14,
	ColorBrightWhite:   15,
	ColorOrange:        208,
	ColorGray:          245,
}

// ANSI returns the 256-color code for c, or -1 for the terminal default.
// Colors outside the palette map to the default.
func (c Color) ANSI() int {
	if c >= NumColors {
		return -1
	}
	return ansiCodes[c]
}
