package proximity

type Color string

const (
	ColorNone    Color = ""
	ColorBlue    Color = "blue"
	ColorDarkRed Color = "dark_red"
	ColorRed     Color = "red"
	ColorGold    Color = "gold"
	ColorYellow  Color = "yellow"
	ColorAqua    Color = "aqua"
)

var legacyCodes = map[Color]string{
	ColorBlue:    "§9",
	ColorDarkRed: "§4",
	ColorRed:     "§c",
	ColorGold:    "§6",
	ColorYellow:  "§e",
	ColorAqua:    "§b",
}

// Code returns the legacy section-sign formatting code, or "" for ColorNone.
func (c Color) Code() string {
	return legacyCodes[c]
}

// Format prefixes text with the color code.
func (c Color) Format(text string) string {
	return c.Code() + text
}
