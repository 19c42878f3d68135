// Package gameboy provides an emulation of a Nintendo Game Boy. It
// wires the components together and interleaves the CPU with the rest
// of the system one M-cycle at a time.
package gameboy

import (
	"context"
	"sync/atomic"

	"github.com/thelolagemann/dmgcore/internal/apu"
	"github.com/thelolagemann/dmgcore/internal/boot"
	"github.com/thelolagemann/dmgcore/internal/cartridge"
	"github.com/thelolagemann/dmgcore/internal/cpu"
	"github.com/thelolagemann/dmgcore/internal/interrupts"
	"github.com/thelolagemann/dmgcore/internal/joypad"
	"github.com/thelolagemann/dmgcore/internal/mmu"
	"github.com/thelolagemann/dmgcore/internal/ppu"
	"github.com/thelolagemann/dmgcore/internal/serial"
	"github.com/thelolagemann/dmgcore/internal/timer"
	"github.com/thelolagemann/dmgcore/pkg/log"
)

const (
	// ClockSpeed is the clock speed of the Game Boy.
	ClockSpeed = 4194304 // 4.194304 MHz
	// CyclesPerFrame is the number of clock cycles per frame.
	CyclesPerFrame = ppu.DotsPerFrame
)

// GameBoy represents a Game Boy. It contains all the components of the Game Boy.
// It is the main entry point for the emulator.
type GameBoy struct {
	CPU        *cpu.CPU
	MMU        *mmu.MMU
	PPU        *ppu.PPU
	DMA        *ppu.DMA
	APU        *apu.APU
	Joypad     *joypad.State
	Interrupts *interrupts.Service
	Timer      *timer.Controller
	Serial     *serial.Controller
	Cartridge  *cartridge.Cartridge

	log.Logger

	cycles  uint64
	buttons atomic.Pointer[joypad.ButtonState]

	// set by options before the components are created
	renderer ppu.Renderer
	terminal apu.Terminal
	link     serial.Link
	clock    cartridge.Clock
	saveRAM  []byte
	bootROM  []byte
}

// postBootSysClock is the system counter the DMG boot ROM leaves
// behind as it jumps to 0x0100.
const postBootSysClock = 0xABCC

// New returns a GameBoy about to execute the cartridge entry point,
// with the registers left as the DMG boot ROM leaves them.
func New(rom []byte, opts ...Opt) (*GameBoy, error) {
	g := &GameBoy{
		Logger: log.NewNullLogger(),
	}
	for _, opt := range opts {
		opt(g)
	}

	var cartOpts []cartridge.Opt
	if g.clock != nil {
		cartOpts = append(cartOpts, cartridge.WithClock(g.clock))
	}
	cart, err := cartridge.New(rom, cartOpts...)
	if err != nil {
		return nil, err
	}
	header := cart.Header()
	g.Infof("loaded %s", header)
	if !header.ChecksumValid() {
		g.Warnf("header checksum mismatch for %q", header.Title)
	}
	if g.saveRAM != nil {
		cart.LoadRAM(g.saveRAM)
	}

	g.Cartridge = cart
	g.Interrupts = interrupts.NewService()
	g.PPU = ppu.New(g.Interrupts)
	g.PPU.AttachRenderer(g.renderer)
	g.DMA = ppu.NewDMA(g.PPU)
	g.APU = apu.New()
	g.APU.AttachTerminal(g.terminal)
	g.Timer = timer.NewController(g.Interrupts)
	g.Serial = serial.NewController(g.Interrupts)
	g.Serial.Attach(g.link)
	g.Joypad = joypad.New(g.Interrupts)

	g.MMU = mmu.NewMMU(cart, g.PPU, g.DMA, g.Joypad, g.Serial, g.Timer, g.APU, g.Interrupts)
	g.MMU.Log = g.Logger
	g.CPU = cpu.NewCPU(g, g.Interrupts)
	g.CPU.Log = g.Logger

	if g.bootROM != nil {
		rom, err := boot.LoadBootROM(g.bootROM)
		if err != nil {
			return nil, err
		}
		g.Infof("running boot rom %s", rom.Model())
		g.MMU.Boot = rom
		g.CPU.PowerOn()
	} else {
		g.Timer.SetSysClock(postBootSysClock)
	}

	return g, nil
}

// Read implements cpu.Bus.
func (g *GameBoy) Read(address uint16) uint8 {
	return g.MMU.Read(address)
}

// Write implements cpu.Bus.
func (g *GameBoy) Write(address uint16, value uint8) {
	g.MMU.Write(address, value)
}

// TickM advances every component other than the CPU by 1 M-cycle.
func (g *GameBoy) TickM() {
	g.PPU.TickM()
	g.APU.TickM()
	g.Timer.TickM()
	g.Serial.TickM()
	g.DMA.TickM()
	g.cycles += 4
}

// SetButtonState stores the state of every button. It is safe to call
// from another goroutine, and takes effect at the start of the next
// Step.
func (g *GameBoy) SetButtonState(s joypad.ButtonState) {
	g.buttons.Store(&s)
}

// Step runs one CPU instruction, or a single M-cycle while the CPU is
// halted, and returns the number of M-cycles taken.
func (g *GameBoy) Step() uint8 {
	if s := g.buttons.Swap(nil); s != nil {
		g.Joypad.Set(*s)
	}
	return g.CPU.Step()
}

// AdvanceTo steps the system until Cycles reaches deadline. The
// context is checked between instructions.
func (g *GameBoy) AdvanceTo(ctx context.Context, deadline uint64) error {
	for g.cycles < deadline {
		if err := ctx.Err(); err != nil {
			return err
		}
		g.Step()
	}
	return nil
}

// Frame steps the system until the PPU has finished a frame. With the
// LCD off it returns after the time a frame would have taken.
func (g *GameBoy) Frame() {
	g.PPU.ClearFrame()
	limit := g.cycles + CyclesPerFrame
	for !g.PPU.HasFrame() && g.cycles < limit {
		g.Step()
	}
	g.PPU.ClearFrame()
}

// Cycles returns the number of T-cycles emulated so far.
func (g *GameBoy) Cycles() uint64 {
	return g.cycles
}

// RAM returns the cartridge RAM, for the host to persist.
func (g *GameBoy) RAM() []byte {
	return g.Cartridge.RAM()
}
