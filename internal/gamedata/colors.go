package gamedata

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/gdamore/tcell/v2"
)

// Palette holds the named tile colors presets and config may refer to.
var Palette = map[string]string{
	"bulgarian_rose":    "#480607",
	"caribbean_green":   "#00CC99",
	"deep_jungle_green": "#004B49",
	"white":             "#FFFFFF",
}

// ResolveColor accepts a palette name or a hex color string.
func ResolveColor(name string) (tcell.Color, error) {
	if hex, ok := Palette[strings.ToLower(name)]; ok {
		return ParseHexColor(hex)
	}
	return ParseHexColor(name)
}

// ParseHexColor converts a hex color string (e.g., "#FF0000" or "FF0000") to a tcell.Color.
func ParseHexColor(hex string) (tcell.Color, error) {
	hex = strings.TrimPrefix(hex, "#")
	if len(hex) != 6 {
		return tcell.ColorDefault, fmt.Errorf("invalid hex color length: %s", hex)
	}

	rgb, err := strconv.ParseUint(hex, 16, 32)
	if err != nil {
		return tcell.ColorDefault, fmt.Errorf("invalid hex color %s: %w", hex, err)
	}

	return tcell.NewHexColor(int32(rgb)), nil
}

// MustResolveColor resolves a color name, panicking on error.
func MustResolveColor(name string) tcell.Color {
	color, err := ResolveColor(name)
	if err != nil {
		panic(err)
	}
	return color
}
