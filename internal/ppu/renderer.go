package ppu

import (
	"github.com/thelolagemann/dmgcore/internal/types"
)

// Colour is one of the four DMG shades, after palette mapping.
type Colour uint8

const (
	White Colour = iota
	LightGrey
	DarkGrey
	Black
)

// Renderer receives each pixel as it is produced, in scan order.
// The last pixel of a frame is (ScreenWidth-1, ScreenHeight-1).
type Renderer interface {
	Render(x, y int, c Colour)
}

type nullRenderer struct{}

func (nullRenderer) Render(int, int, Colour) {}

// shade maps a 2-bit colour index through a DMG palette register.
func shade(palette, index uint8) Colour {
	return Colour(palette >> (index * 2) & 0b11)
}

// tileDataIndex reads the 2-bit colour at column col of the tile row
// starting at VRAM offset addr.
func (p *PPU) tileDataIndex(addr uint16, col int) uint8 {
	lo, hi := p.vRAM[addr&0x1FFF], p.vRAM[(addr+1)&0x1FFF]
	bit := uint(7 - col)
	return (lo>>bit)&1 | ((hi>>bit)&1)<<1
}

// mapIndex returns the background or window colour index at (x, y) of
// the 256x256 map selected by mapBit.
func (p *PPU) mapIndex(mapBit uint8, x, y uint8) uint8 {
	base := uint16(0x1800)
	if p.lcdc&mapBit != 0 {
		base = 0x1C00
	}
	tileNo := p.vRAM[base+uint16(y/8)*32+uint16(x/8)]

	// LCDC.4 selects unsigned addressing from 0x8000, or signed
	// addressing around 0x9000
	var addr uint16
	if p.lcdc&types.Bit4 != 0 {
		addr = uint16(tileNo) * 16
	} else {
		addr = uint16(0x1000 + int(int8(tileNo))*16)
	}
	return p.tileDataIndex(addr+uint16(y%8)*2, int(x%8))
}

// pixel works out the colour of pixel x on the current line from the
// background, the window and the selected objects.
func (p *PPU) pixel(x int) Colour {
	var bgIndex uint8
	if p.lcdc&types.Bit0 != 0 {
		winX := int(p.wx) - 7
		if p.winDrawn && x >= winX {
			bgIndex = p.mapIndex(types.Bit6, uint8(x-winX), p.wly)
		} else {
			bgIndex = p.mapIndex(types.Bit3, uint8(x)+p.scx, p.ly+p.scy)
		}
	}

	if p.lcdc&types.Bit1 != 0 {
		for _, o := range p.objects {
			col := x - (int(o.x) - 8)
			if col < 0 || col >= 8 {
				continue
			}
			index := p.objectColourIndex(o, col)
			if index == 0 {
				continue
			}
			// the first opaque object wins, even when hidden by the BG
			if o.behindBG && bgIndex != 0 {
				break
			}
			if o.palette1 {
				return shade(p.obp1, index)
			}
			return shade(p.obp0, index)
		}
	}

	return shade(p.bgp, bgIndex)
}
