package ppu

import (
	"sort"

	"github.com/thelolagemann/dmgcore/internal/types"
)

// object is an OAM entry selected for the current line.
type object struct {
	index uint8 // position in OAM
	y, x  uint8
	tile  uint8

	// Bit 7 - OBJ-to-BG priority (1=OBJ Behind BG color 1-3)
	behindBG bool
	// Bit 6 - Y flip
	flipY bool
	// Bit 5 - X flip
	flipX bool
	// Bit 4 - Palette number (0=OBP0, 1=OBP1)
	palette1 bool
}

func (p *PPU) objectHeight() uint8 {
	if p.lcdc&types.Bit2 != 0 {
		return 16
	}
	return 8
}

// scanOAM selects up to 10 objects overlapping the current line, in
// OAM order, then orders them by drawing priority: lower X first,
// ties broken by the lower OAM index.
func (p *PPU) scanOAM() {
	p.objects = p.objects[:0]
	height := p.objectHeight()
	line := uint16(p.ly) + 16

	for i := uint8(0); i < 40 && len(p.objects) < maxLineObjects; i++ {
		entry := p.oam[uint16(i)*4:]
		y := uint16(entry[0])
		if line < y || line >= y+uint16(height) {
			continue
		}
		attr := entry[3]
		p.objects = append(p.objects, object{
			index:    i,
			y:        entry[0],
			x:        entry[1],
			tile:     entry[2],
			behindBG: attr&types.Bit7 != 0,
			flipY:    attr&types.Bit6 != 0,
			flipX:    attr&types.Bit5 != 0,
			palette1: attr&types.Bit4 != 0,
		})
	}

	sort.SliceStable(p.objects, func(i, j int) bool {
		return p.objects[i].x < p.objects[j].x
	})
}

// objectColourIndex returns the 2-bit colour of column col (0-7) of the
// object on the current line.
func (p *PPU) objectColourIndex(o object, col int) uint8 {
	height := p.objectHeight()
	row := p.ly + 16 - o.y
	if o.flipY {
		row = height - 1 - row
	}
	tile := o.tile
	if height == 16 {
		tile &^= 1
	}
	if o.flipX {
		col = 7 - col
	}
	return p.tileDataIndex(uint16(tile)*16+uint16(row)*2, col)
}
