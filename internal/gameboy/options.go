package gameboy

import (
	"github.com/thelolagemann/dmgcore/internal/apu"
	"github.com/thelolagemann/dmgcore/internal/cartridge"
	"github.com/thelolagemann/dmgcore/internal/ppu"
	"github.com/thelolagemann/dmgcore/internal/serial"
	"github.com/thelolagemann/dmgcore/pkg/log"
)

// Opt is a function that modifies a GameBoy
// instance before its components are created.
type Opt func(gb *GameBoy)

// WithLogger sets the logger used by the GameBoy and its components.
func WithLogger(log log.Logger) Opt {
	return func(gb *GameBoy) {
		gb.Logger = log
	}
}

// WithRenderer sets the sink for the pixels produced by the PPU.
func WithRenderer(r ppu.Renderer) Opt {
	return func(gb *GameBoy) {
		gb.renderer = r
	}
}

// WithAudioTerminal sets the sink for the frames produced by the APU.
func WithAudioTerminal(t apu.Terminal) Opt {
	return func(gb *GameBoy) {
		gb.terminal = t
	}
}

// NoAudio discards every audio frame.
func NoAudio() Opt {
	return func(gb *GameBoy) {
		gb.terminal = nil
	}
}

// WithSerialLink connects the serial port to l.
func WithSerialLink(l serial.Link) Opt {
	return func(gb *GameBoy) {
		gb.link = l
	}
}

// WithClock sets the wall clock read by cartridges with a real time
// clock.
func WithClock(c cartridge.Clock) Opt {
	return func(gb *GameBoy) {
		gb.clock = c
	}
}

// WithSaveRAM restores the cartridge RAM from a previous session.
func WithSaveRAM(b []byte) Opt {
	return func(gb *GameBoy) {
		gb.saveRAM = b
	}
}

// WithBootROM runs the given DMG boot ROM from 0x0000 before handing
// over to the cartridge, instead of starting at 0x0100.
func WithBootROM(b []byte) Opt {
	return func(gb *GameBoy) {
		gb.bootROM = b
	}
}
