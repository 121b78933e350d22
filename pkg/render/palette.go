package render

import (
	"fmt"
	"image/color"
	"sort"
	"strings"
)

// ColorTheme selects one of the built-in palettes.
type ColorTheme int

const (
	ThemeClassic ColorTheme = iota
	ThemeKiCad2020
	ThemeBlueTone
	ThemeEagle
	ThemeNord
)

// ThemeNames maps theme enum to display name
var ThemeNames = map[ColorTheme]string{
	ThemeClassic:   "Classic",
	ThemeKiCad2020: "KiCad 2020",
	ThemeBlueTone:  "Blue Tone",
	ThemeEagle:     "Eagle",
	ThemeNord:      "Nord",
}

func (t ColorTheme) String() string {
	if name, ok := ThemeNames[t]; ok {
		return name
	}
	return fmt.Sprintf("ColorTheme(%d)", int(t))
}

// Themes returns all built-in themes in enum order.
func Themes() []ColorTheme {
	themes := make([]ColorTheme, 0, len(ThemeNames))
	for t := range ThemeNames {
		themes = append(themes, t)
	}
	sort.Slice(themes, func(i, j int) bool { return themes[i] < themes[j] })
	return themes
}

// ParseTheme resolves a theme by display name, ignoring case, spaces and
// dashes ("kicad-2020" matches "KiCad 2020").
func ParseTheme(name string) (ColorTheme, error) {
	key := normalizeThemeName(name)
	for t, n := range ThemeNames {
		if normalizeThemeName(n) == key {
			return t, nil
		}
	}
	return ThemeClassic, fmt.Errorf("unknown theme %q", name)
}

func normalizeThemeName(s string) string {
	s = strings.ToLower(s)
	s = strings.ReplaceAll(s, " ", "")
	return strings.ReplaceAll(s, "-", "")
}

// Palette holds the shared default colours components fall back to when an
// instance does not override them.
type Palette struct {
	Fill       color.NRGBA // marker body
	Border     color.NRGBA // marker outline
	Selection  color.NRGBA // selected or dragged components
	Board      color.NRGBA // board substrate
	Background color.NRGBA // canvas behind the boards
}

var (
	White = color.NRGBA{R: 255, G: 255, B: 255, A: 255}
	Red   = color.NRGBA{R: 255, G: 0, B: 0, A: 255}
	Blue  = color.NRGBA{R: 0, G: 0, B: 255, A: 255}

	// ColorBoard is the classic light perfboard substrate.
	ColorBoard = color.NRGBA{R: 248, G: 235, B: 179, A: 255}
)

var palettes = map[ColorTheme]Palette{
	ThemeClassic: {
		Fill:       White,
		Border:     Red,
		Selection:  Blue,
		Board:      ColorBoard,
		Background: White,
	},
	ThemeKiCad2020: {
		Fill:       color.NRGBA{R: 242, G: 237, B: 161, A: 255},
		Border:     color.NRGBA{R: 179, G: 31, B: 31, A: 255},
		Selection:  color.NRGBA{R: 255, G: 255, B: 0, A: 255},
		Board:      color.NRGBA{R: 25, G: 95, B: 55, A: 255},
		Background: color.NRGBA{R: 0, G: 16, B: 35, A: 255},
	},
	ThemeBlueTone: {
		Fill:       color.NRGBA{R: 242, G: 242, B: 255, A: 255},
		Border:     color.NRGBA{R: 72, G: 72, B: 200, A: 255},
		Selection:  color.NRGBA{R: 91, G: 195, B: 235, A: 255},
		Board:      color.NRGBA{R: 20, G: 60, B: 90, A: 255},
		Background: color.NRGBA{R: 0, G: 16, B: 35, A: 255},
	},
	ThemeEagle: {
		Fill:       color.NRGBA{R: 255, G: 255, B: 255, A: 255},
		Border:     color.NRGBA{R: 204, G: 0, B: 0, A: 255},
		Selection:  color.NRGBA{R: 255, G: 255, B: 0, A: 255},
		Board:      color.NRGBA{R: 0, G: 0, B: 0, A: 255},
		Background: color.NRGBA{R: 32, G: 32, B: 32, A: 255},
	},
	ThemeNord: {
		Fill:       color.NRGBA{R: 236, G: 239, B: 244, A: 255}, // Nord6
		Border:     color.NRGBA{R: 191, G: 97, B: 106, A: 255},  // Nord11
		Selection:  color.NRGBA{R: 136, G: 192, B: 208, A: 255}, // Nord8
		Board:      color.NRGBA{R: 46, G: 52, B: 64, A: 255},    // Nord0
		Background: color.NRGBA{R: 59, G: 66, B: 82, A: 255},    // Nord1
	},
}

// PaletteFor returns the palette of a theme, falling back to Classic.
func PaletteFor(theme ColorTheme) Palette {
	if p, ok := palettes[theme]; ok {
		return p
	}
	return palettes[ThemeClassic]
}

// DefaultPalette returns the Classic palette.
func DefaultPalette() Palette {
	return palettes[ThemeClassic]
}
