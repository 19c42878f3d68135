package display

import (
	"fmt"
	"image/color"
	"strings"

	"github.com/thelolagemann/dmgcore/internal/ppu"
)

// Palette maps the four DMG shades to RGB colours.
type Palette [4]color.RGBA

const (
	// Greyscale is the default greyscale palette.
	Greyscale = iota
	// Green attempts to emulate the colours of the original
	// DMG screen.
	Green
	// Red is a red palette.
	Red
	// Yellow is a yellow palette.
	Yellow
)

// Palettes is a list of all available palettes.
var Palettes = []Palette{
	Greyscale: {
		{0xFF, 0xFF, 0xFF, 0xFF},
		{0xCC, 0xCC, 0xCC, 0xFF},
		{0x77, 0x77, 0x77, 0xFF},
		{0x00, 0x00, 0x00, 0xFF},
	},
	Green: {
		{0x9B, 0xBC, 0x0F, 0xFF},
		{0x8B, 0xAC, 0x0F, 0xFF},
		{0x30, 0x62, 0x30, 0xFF},
		{0x0F, 0x38, 0x0F, 0xFF},
	},
	Red: {
		{0xFF, 0x00, 0x00, 0xFF},
		{0xCC, 0x00, 0x00, 0xFF},
		{0x77, 0x00, 0x00, 0xFF},
		{0x00, 0x00, 0x00, 0xFF},
	},
	Yellow: {
		{0xFF, 0xFF, 0x00, 0xFF},
		{0xCC, 0xCC, 0x00, 0xFF},
		{0x77, 0x77, 0x00, 0xFF},
		{0x00, 0x00, 0x00, 0xFF},
	},
}

var paletteNames = []string{"greyscale", "green", "red", "yellow"}

// PaletteByName returns the named palette.
func PaletteByName(name string) (Palette, error) {
	for i, n := range paletteNames {
		if strings.EqualFold(n, name) {
			return Palettes[i], nil
		}
	}
	return Palette{}, fmt.Errorf("display: unknown palette %q (want one of %s)", name, strings.Join(paletteNames, ", "))
}

// Colour returns the RGB colour of shade c.
func (p Palette) Colour(c ppu.Colour) color.RGBA {
	return p[c&3]
}
