// Package cartridge decodes the cartridge header and emulates the
// memory bank controllers that map ROM and external RAM into the
// address space.
package cartridge

import (
	"fmt"
	"time"
)

// Cartridge is a parsed ROM image and its memory bank controller.
type Cartridge struct {
	header *Header
	mbc    MemoryBankController
}

// Opt configures a Cartridge.
type Opt func(*options)

type options struct {
	clock Clock
}

// WithClock sets the wall clock used by the real time clock on MBC3
// timer cartridges.
func WithClock(c Clock) Opt {
	return func(o *options) {
		o.clock = c
	}
}

// New parses the header of rom and constructs the matching controller.
func New(rom []byte, opts ...Opt) (*Cartridge, error) {
	o := &options{clock: time.Now}
	for _, opt := range opts {
		opt(o)
	}

	header, err := ParseHeader(rom)
	if err != nil {
		return nil, err
	}

	c := &Cartridge{header: header}
	switch header.CartridgeType.Controller() {
	case ControllerROM:
		c.mbc = NewROMCartridge(rom, header)
	case ControllerMBC1:
		c.mbc = NewMemoryBankedCartridge1(rom, header)
	case ControllerMBC2:
		c.mbc = NewMemoryBankedCartridge2(rom)
	case ControllerMBC3:
		c.mbc = NewMemoryBankedCartridge3(rom, header, o.clock)
	case ControllerMBC5:
		c.mbc = NewMemoryBankedCartridge5(rom, header)
	default:
		return nil, fmt.Errorf("loading %q: %w", header.Title, &UnsupportedControllerError{Code: header.CartridgeType})
	}
	return c, nil
}

func (c *Cartridge) Header() *Header {
	return c.header
}

// Title returns the cartridge title.
func (c *Cartridge) Title() string {
	return c.header.Title
}

// Controller returns the underlying memory bank controller.
func (c *Cartridge) Controller() MemoryBankController {
	return c.mbc
}

func (c *Cartridge) ReadROM(address uint16) uint8 {
	return c.mbc.ReadROM(address & 0x7FFF)
}

func (c *Cartridge) WriteROM(address uint16, value uint8) {
	c.mbc.WriteROM(address&0x7FFF, value)
}

func (c *Cartridge) ReadRAM(address uint16) uint8 {
	return c.mbc.ReadRAM(address & 0x1FFF)
}

func (c *Cartridge) WriteRAM(address uint16, value uint8) {
	c.mbc.WriteRAM(address&0x1FFF, value)
}

// RAM returns the external RAM, suitable for writing a save file.
func (c *Cartridge) RAM() []byte {
	return c.mbc.RAM()
}

// Battery reports whether the external RAM survives power off.
func (c *Cartridge) Battery() bool {
	return c.header.CartridgeType.Has(FeatureBattery)
}

// LoadRAM restores external RAM from a save. Extra bytes are ignored.
func (c *Cartridge) LoadRAM(data []byte) {
	copy(c.mbc.RAM(), data)
}
