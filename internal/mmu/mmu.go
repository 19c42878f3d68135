// Package mmu provides a memory management unit for the Game Boy. The
// MMU decodes every address the CPU can see into the component that
// owns it, and enforces the bus lock held by an active OAM DMA.
package mmu

import (
	"github.com/thelolagemann/dmgcore/internal/boot"
	"github.com/thelolagemann/dmgcore/internal/cartridge"
	"github.com/thelolagemann/dmgcore/internal/interrupts"
	"github.com/thelolagemann/dmgcore/internal/joypad"
	"github.com/thelolagemann/dmgcore/internal/ppu"
	"github.com/thelolagemann/dmgcore/internal/ram"
	"github.com/thelolagemann/dmgcore/internal/types"
	"github.com/thelolagemann/dmgcore/pkg/log"
)

// IOBus is the interface that the MMU uses to communicate with the
// register mapped components.
type IOBus interface {
	Read(address uint16) uint8
	Write(address uint16, value uint8)
}

// MMU is the memory management unit for the Game Boy. It handles all
// memory reads and writes to the Game Boy's 64kB address space.
type MMU struct {
	// 0x0000 - 0x00FF - Boot ROM, until unmapped through types.BDIS
	Boot *boot.ROM

	// 0x0000 - 0x7FFF - ROM (32kB)
	// 0xA000 - 0xBFFF - External RAM (8kB)
	Cart *cartridge.Cartridge

	// 0x8000 - 0x9FFF - Video RAM (8kB)
	// 0xFE00 - 0xFE9F - Sprite Attribute Table (160B)
	// 0xFF40 - 0xFF4B - LCD registers
	Video *ppu.PPU
	DMA   *ppu.DMA

	// 0xC000 - 0xDFFF - Work RAM (8kB)
	// 0xE000 - 0xFDFF - Echo RAM (7.5kB)
	wRAM *WRAM

	// 0xFF00 - 0xFF7F - I/O Registers
	Joypad *joypad.State
	Serial IOBus
	Timer  IOBus
	Sound  IOBus

	// 0xFF80 - 0xFFFE - Zero Page RAM (127B)
	zRAM *ram.RAM

	// 0xFF0F & 0xFFFF - interrupt flag and enable registers
	IRQ *interrupts.Service

	Log log.Logger
}

// NewMMU returns a new MMU routing to the given components.
func NewMMU(cart *cartridge.Cartridge, video *ppu.PPU, dma *ppu.DMA, pad *joypad.State, serial, timer, sound IOBus, irq *interrupts.Service) *MMU {
	m := &MMU{
		Cart:   cart,
		Video:  video,
		DMA:    dma,
		wRAM:   NewWRAM(),
		Joypad: pad,
		Serial: serial,
		Timer:  timer,
		Sound:  sound,
		zRAM:   ram.NewRAM(0x80),
		IRQ:    irq,
		Log:    log.NewNullLogger(),
	}
	dma.AttachBus(m.ReadDirect)

	return m
}

// accessible reports whether the CPU may reach address while an OAM
// DMA is running: only HRAM and IE remain on their own bus.
func (m *MMU) accessible(address uint16) bool {
	return !m.DMA.Active() || address >= 0xFF80
}

// Read returns the value the CPU sees at the given address.
func (m *MMU) Read(address uint16) uint8 {
	if !m.accessible(address) {
		return 0xFF
	}
	return m.ReadDirect(address)
}

// Write sets the value at the given address on behalf of the CPU.
func (m *MMU) Write(address uint16, value uint8) {
	if !m.accessible(address) {
		return
	}

	switch {
	case address < 0x8000:
		m.Cart.WriteROM(address, value)
	case address < 0xA000:
		m.Video.WriteVRAM(address, value)
	case address < 0xC000:
		m.Cart.WriteRAM(address, value)
	case address < 0xFE00:
		m.wRAM.Write(address, value)
	case address < 0xFEA0:
		m.Video.WriteOAM(address, value)
	case address < 0xFF00:
		// prohibited
	case address < 0xFF80:
		m.writeIO(address, value)
	case address < 0xFFFF:
		m.zRAM.Write(address-0xFF80, value)
	default:
		m.IRQ.Enable = value
	}
}

// ReadDirect reads the given address without the DMA bus lock. The
// OAM DMA uses it to fetch its source bytes.
func (m *MMU) ReadDirect(address uint16) uint8 {
	switch {
	case address < 0x0100 && m.Boot != nil:
		return m.Boot.Read(address)
	case address < 0x8000:
		return m.Cart.ReadROM(address)
	case address < 0xA000:
		return m.Video.ReadVRAM(address)
	case address < 0xC000:
		return m.Cart.ReadRAM(address)
	case address < 0xFE00:
		return m.wRAM.Read(address)
	case address < 0xFEA0:
		return m.Video.ReadOAM(address)
	case address < 0xFF00:
		return 0xFF
	case address < 0xFF80:
		return m.readIO(address)
	case address < 0xFFFF:
		return m.zRAM.Read(address - 0xFF80)
	}
	return m.IRQ.Enable
}

func (m *MMU) readIO(address uint16) uint8 {
	switch {
	case address == types.P1:
		return m.Joypad.Read()
	case address == types.SB || address == types.SC:
		return m.Serial.Read(address)
	case address >= types.DIV && address <= types.TAC:
		return m.Timer.Read(address)
	case address == types.IF:
		return m.IRQ.ReadFlag()
	case address >= types.NR10 && address <= types.WaveRAMEnd:
		return m.Sound.Read(address)
	case address == types.DMA:
		return m.DMA.Value()
	case address >= types.LCDC && address <= types.WX:
		return m.Video.Read(address)
	}
	// unmapped, including the inert CGB registers
	return 0xFF
}

func (m *MMU) writeIO(address uint16, value uint8) {
	switch {
	case address == types.P1:
		m.Joypad.Write(value)
	case address == types.SB || address == types.SC:
		m.Serial.Write(address, value)
	case address >= types.DIV && address <= types.TAC:
		m.Timer.Write(address, value)
	case address == types.IF:
		m.IRQ.WriteFlag(value)
	case address >= types.NR10 && address <= types.WaveRAMEnd:
		m.Sound.Write(address, value)
	case address == types.DMA:
		m.DMA.Start(value)
	case address >= types.LCDC && address <= types.WX:
		m.Video.Write(address, value)
	case address == types.BDIS:
		if value != 0 && m.Boot != nil {
			m.Log.Debugf("boot rom unmapped")
			m.Boot = nil
		}
	default:
		m.Log.Debugf("dropped write to unmapped register %04X = %02X", address, value)
	}
}
