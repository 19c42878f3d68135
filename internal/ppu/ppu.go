// Package ppu implements the Game Boy's (P)ixel (P)rocessing (U)nit
// and the OAM DMA controller that feeds it.
package ppu

import (
	"github.com/thelolagemann/dmgcore/internal/interrupts"
	"github.com/thelolagemann/dmgcore/internal/types"
)

const (
	// ScreenWidth is the width of the screen in pixels.
	ScreenWidth = 160
	// ScreenHeight is the height of the screen in pixels.
	ScreenHeight = 144

	// DotsPerLine is the number of dots (T-cycles) in a scanline.
	DotsPerLine = 456
	// LinesPerFrame includes the 10 lines of VBlank.
	LinesPerFrame = 154
	// DotsPerFrame is the length of a frame in T-cycles.
	DotsPerFrame = DotsPerLine * LinesPerFrame

	oamScanDots    = 80
	minDrawDots    = 172
	maxDrawDots    = 289
	objectPenalty  = 6
	windowPenalty  = 6
	maxLineObjects = 10
)

const (
	// ModeHBlank (Mode 0) - Horizontal Blanking Period
	//
	// 	Duration 87 - 204 dots (variable per line)
	//	- Allows CPU access to VRAM/OAM
	// 	- STAT interrupt available if enabled via STAT.3
	ModeHBlank = iota

	// ModeVBlank (Mode 1) - Vertical Blanking Period
	//
	//	Duration 4560 dots (10 lines)
	//	- Allows full CPU access to VRAM/OAM
	//	- VBlank interrupt requested on the first dot of LY 144
	//	- STAT interrupt available if enabled via STAT.4
	ModeVBlank

	// ModeOAM (Mode 2) - OAM Scan
	//
	//	Duration: 80 dots (fixed)
	//	- Locks OAM bus
	//	- STAT interrupt available if enabled via STAT.5
	ModeOAM

	// ModeVRAM (Mode 3) - Pixel Transfer
	//
	//	Duration: 172-289 dots (variable depending on SCX, objects and window)
	//	- Locks both OAM and VRAM buses
	//	- One pixel is sent to the Renderer per dot
	ModeVRAM
)

// PPU implements the DMG pixel processing unit. It is advanced one dot
// at a time by Tick, and pushes pixels to the attached Renderer in
// scan order.
//
// References:
//   - [Pan Docs](https://gbdev.io/pandocs/Graphics.html)
//   - [Hacktix GBEDG](https://hacktix.github.io/GBEDG/ppu/)
type PPU struct {
	// LCDC register
	lcdc    uint8
	enabled bool // LCDC.7 - LCD Enable

	status uint8 // STAT bits 3-6, the interrupt selects
	mode   uint8 // Mode reported to STAT register
	ly     uint8 // Current line (0-153)
	lyc    uint8 // LYC register value
	dot    uint16

	scy, scx uint8 // Background viewport position
	wy, wx   uint8 // Window Position

	bgp, obp0, obp1 uint8

	statLine bool // level of the combined STAT interrupt line

	// Window rendering state
	winTriggerWy bool  // WY matched LY at some point this frame
	winDrawn     bool  // the window covers part of the current line
	wly          uint8 // Window line counter

	drawDots uint16 // length of mode 3 on this line
	lx       int    // next pixel to send to the renderer
	objects  []object

	vRAM [0x2000]uint8
	oam  [0xA0]uint8

	renderer   Renderer
	irq        *interrupts.Service
	frameReady bool
}

// New returns a PPU in the state left by the boot ROM.
func New(irq *interrupts.Service) *PPU {
	p := &PPU{
		irq:      irq,
		renderer: nullRenderer{},
		objects:  make([]object, 0, maxLineObjects),
		bgp:      0xFC,
		mode:     ModeOAM,
	}
	p.writeLCDC(0x91)
	return p
}

// AttachRenderer sets the sink for produced pixels.
func (p *PPU) AttachRenderer(r Renderer) {
	if r == nil {
		r = nullRenderer{}
	}
	p.renderer = r
}

// Tick advances the PPU by a single dot.
func (p *PPU) Tick() {
	if !p.enabled {
		return
	}

	if p.ly < ScreenHeight {
		switch p.dot {
		case 0:
			p.checkWindowTriggerWY()
			p.scanOAM()
			p.setMode(ModeOAM)
		case oamScanDots:
			p.startDrawing()
		case oamScanDots + p.drawDots:
			if p.winDrawn {
				p.wly++
			}
			p.setMode(ModeHBlank)
		}
		if p.mode == ModeVRAM {
			p.drawDot()
		}
	}

	if p.dot++; p.dot < DotsPerLine {
		return
	}
	p.dot = 0
	p.ly++
	switch p.ly {
	case ScreenHeight:
		p.frameReady = true
		p.irq.Request(interrupts.VBlankFlag)
		p.mode = ModeVBlank
	case LinesPerFrame:
		p.ly = 0
		p.wly = 0
		p.winTriggerWy = false
	}
	p.statUpdate()
}

// TickM advances the PPU by 4 dots.
func (p *PPU) TickM() {
	for i := 0; i < 4; i++ {
		p.Tick()
	}
}

// startDrawing enters mode 3, working out how long it will last from
// the fine scroll, the objects on the line and the window.
func (p *PPU) startDrawing() {
	p.winDrawn = p.lcdc&types.Bit5 != 0 && p.winTriggerWy && p.wx <= 166
	p.drawDots = minDrawDots + uint16(p.scx&7)
	if p.lcdc&types.Bit1 != 0 {
		p.drawDots += objectPenalty * uint16(len(p.objects))
	}
	if p.winDrawn {
		p.drawDots += windowPenalty
	}
	if p.drawDots > maxDrawDots {
		p.drawDots = maxDrawDots
	}
	p.lx = 0
	p.setMode(ModeVRAM)
}

// drawDot sends the next pixel to the renderer once the fetch delay at
// the start of mode 3 has passed.
func (p *PPU) drawDot() {
	if int(p.dot-oamScanDots) < int(p.drawDots)-ScreenWidth {
		return
	}
	p.renderer.Render(p.lx, int(p.ly), p.pixel(p.lx))
	p.lx++
}

// checkWindowTriggerWY checks to see if the window should be triggered
// for the current LY position. The window stays triggered for the rest
// of the frame once WIN_EN was set whilst LY == WY.
func (p *PPU) checkWindowTriggerWY() {
	if p.lcdc&types.Bit5 != 0 && p.wy == p.ly {
		p.winTriggerWy = true
	}
}

func (p *PPU) setMode(mode uint8) {
	p.mode = mode
	p.statUpdate()
}

// statUpdate recomputes the STAT interrupt line, which is the OR of
// every selected source. An interrupt is requested only when the line
// goes from low to high.
func (p *PPU) statUpdate() {
	if !p.enabled {
		p.statLine = false
		return
	}

	line := (p.mode == ModeHBlank && p.status&types.Bit3 != 0) ||
		(p.mode == ModeVBlank && p.status&types.Bit4 != 0) ||
		(p.mode == ModeOAM && p.status&types.Bit5 != 0) ||
		(p.ly == p.lyc && p.status&types.Bit6 != 0)

	if line && !p.statLine {
		p.irq.Request(interrupts.LCDFlag)
	}
	p.statLine = line
}

// HasFrame reports whether VBlank has been entered since ClearFrame.
func (p *PPU) HasFrame() bool {
	return p.frameReady
}

// ClearFrame resets HasFrame.
func (p *PPU) ClearFrame() {
	p.frameReady = false
}

// Enabled reports whether the LCD is on.
func (p *PPU) Enabled() bool {
	return p.enabled
}

// Mode returns the current mode as reported in STAT.
func (p *PPU) Mode() uint8 {
	return p.mode
}

func (p *PPU) writeLCDC(v uint8) {
	wasEnabled := p.enabled
	p.lcdc = v
	p.enabled = v&types.Bit7 != 0

	switch {
	case wasEnabled && !p.enabled:
		// the PPU stops at LY 0 in mode 0
		p.ly, p.dot = 0, 0
		p.mode = ModeHBlank
		p.statLine = false
	case !wasEnabled && p.enabled:
		// restart at the OAM scan of line 0
		p.ly, p.dot = 0, 0
		p.mode = ModeOAM
		p.wly = 0
		p.winTriggerWy = false
		p.statUpdate()
	}
}

// Read returns the value of a PPU register.
func (p *PPU) Read(address uint16) uint8 {
	switch address {
	case types.LCDC:
		return p.lcdc
	case types.STAT:
		v := 0x80 | p.status | p.mode
		if p.ly == p.lyc {
			v |= types.Bit2
		}
		return v
	case types.SCY:
		return p.scy
	case types.SCX:
		return p.scx
	case types.LY:
		return p.ly
	case types.LYC:
		return p.lyc
	case types.BGP:
		return p.bgp
	case types.OBP0:
		return p.obp0
	case types.OBP1:
		return p.obp1
	case types.WY:
		return p.wy
	case types.WX:
		return p.wx
	}
	return 0xFF
}

// Write sets the value of a PPU register. LY is read only.
func (p *PPU) Write(address uint16, value uint8) {
	switch address {
	case types.LCDC:
		p.writeLCDC(value)
	case types.STAT:
		p.status = value & 0x78
		p.statUpdate()
	case types.SCY:
		p.scy = value
	case types.SCX:
		p.scx = value
	case types.LYC:
		p.lyc = value
		p.statUpdate()
	case types.BGP:
		p.bgp = value
	case types.OBP0:
		p.obp0 = value
	case types.OBP1:
		p.obp1 = value
	case types.WY:
		p.wy = value
	case types.WX:
		p.wx = value
	}
}

func (p *PPU) vramLocked() bool {
	return p.enabled && p.mode == ModeVRAM
}

func (p *PPU) oamLocked() bool {
	return p.enabled && (p.mode == ModeOAM || p.mode == ModeVRAM)
}

// ReadVRAM reads VRAM as seen by the CPU, 0xFF during mode 3.
func (p *PPU) ReadVRAM(address uint16) uint8 {
	if p.vramLocked() {
		return 0xFF
	}
	return p.vRAM[address&0x1FFF]
}

// WriteVRAM writes VRAM as seen by the CPU, dropped during mode 3.
func (p *PPU) WriteVRAM(address uint16, value uint8) {
	if !p.vramLocked() {
		p.vRAM[address&0x1FFF] = value
	}
}

// ReadOAM reads OAM as seen by the CPU, 0xFF during modes 2 and 3.
func (p *PPU) ReadOAM(address uint16) uint8 {
	i := address & 0xFF
	if p.oamLocked() || int(i) >= len(p.oam) {
		return 0xFF
	}
	return p.oam[i]
}

// WriteOAM writes OAM as seen by the CPU, dropped during modes 2 and 3.
func (p *PPU) WriteOAM(address uint16, value uint8) {
	i := address & 0xFF
	if !p.oamLocked() && int(i) < len(p.oam) {
		p.oam[i] = value
	}
}

// OAM returns the raw object attribute memory.
func (p *PPU) OAM() []uint8 {
	return p.oam[:]
}
