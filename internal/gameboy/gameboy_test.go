package gameboy

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/thelolagemann/dmgcore/internal/cartridge"
	"github.com/thelolagemann/dmgcore/internal/cpu"
	"github.com/thelolagemann/dmgcore/internal/interrupts"
	"github.com/thelolagemann/dmgcore/internal/joypad"
	"github.com/thelolagemann/dmgcore/internal/ppu"
	"github.com/thelolagemann/dmgcore/internal/serial/accessories"
	"github.com/thelolagemann/dmgcore/internal/types"
)

// testROM returns a ROM of the given cartridge type and size, with
// program placed at 0x0150 and every other byte 0 (NOP).
func testROM(typ cartridge.Type, size int, ramCode uint8, program ...uint8) []byte {
	rom := make([]byte, size)
	copy(rom[0x134:], "GAMEBOY")
	rom[0x147] = uint8(typ)
	for (32*1024)<<rom[0x148] < size {
		rom[0x148]++
	}
	rom[0x149] = ramCode
	var sum uint8
	for _, b := range rom[0x134:0x14D] {
		sum = sum - b - 1
	}
	rom[0x14D] = sum
	copy(rom[0x150:], program)
	return rom
}

// newTestGameBoy returns a GameBoy about to execute program at 0x0150.
func newTestGameBoy(t *testing.T, program ...uint8) *GameBoy {
	t.Helper()
	g, err := New(testROM(0x00, 0x8000, 0, program...))
	require.NoError(t, err)
	g.CPU.PC = 0x0150
	return g
}

func TestNew(t *testing.T) {
	t.Run("too small", func(t *testing.T) {
		_, err := New(make([]byte, 0x14F))
		assert.ErrorIs(t, err, cartridge.ErrHeaderTooSmall)
	})
	t.Run("unsupported", func(t *testing.T) {
		_, err := New(testROM(0xFC, 0x8000, 0))
		var unsupported *cartridge.UnsupportedControllerError
		require.ErrorAs(t, err, &unsupported)
		assert.Equal(t, cartridge.Type(0xFC), unsupported.Code)
	})
	t.Run("post boot", func(t *testing.T) {
		g, err := New(testROM(0x00, 0x8000, 0))
		require.NoError(t, err)
		assert.Equal(t, uint16(0x0100), g.CPU.PC)
		assert.Equal(t, uint8(0x91), g.Read(types.LCDC))
		assert.Equal(t, uint8(0xFC), g.Read(types.BGP))
		assert.Equal(t, uint8(0xF1), g.Read(types.NR52))
		assert.Equal(t, uint8(0xAB), g.Read(types.DIV))
		assert.True(t, g.PPU.Enabled())
		assert.True(t, g.APU.Enabled())
		assert.Equal(t, "GAMEBOY", g.Cartridge.Title())
	})
}

func TestFirstInstructions(t *testing.T) {
	rom := testROM(0x00, 0x8000, 0)
	copy(rom[0x100:], []byte{0x00, 0xC3, 0x50, 0x01})
	g, err := New(rom)
	require.NoError(t, err)

	cycles := int(g.Step()) + int(g.Step())
	assert.Equal(t, 1+4, cycles)
	assert.Equal(t, uint16(0x0150), g.CPU.PC)
	assert.Equal(t, uint16(0xFFFE), g.CPU.SP)
	assert.Equal(t, uint8(0x01), g.CPU.A)
	assert.Equal(t, uint64(5*4), g.Cycles())
}

func TestTimerInterrupt(t *testing.T) {
	setup := func(t *testing.T, ime bool) *GameBoy {
		g := newTestGameBoy(t)
		g.Write(types.DIV, 0x00)
		g.Write(types.TMA, 0x42)
		g.Write(types.TIMA, 0xFF)
		g.Write(types.TAC, 0x05)
		g.Write(types.IE, interrupts.TimerFlag)
		g.CPU.IME = ime

		// TIMA overflows on the 16th T-cycle after DIV is reset
		for i := 0; i < 4; i++ {
			g.Step()
		}
		assert.Equal(t, uint16(0x0154), g.CPU.PC)
		assert.Equal(t, uint8(0x00), g.Read(types.TIMA))
		assert.Zero(t, g.Interrupts.Flag&interrupts.TimerFlag)
		return g
	}

	t.Run("reload", func(t *testing.T) {
		g := setup(t, false)

		// and is reloaded an M-cycle later, raising IF
		assert.Equal(t, uint8(1), g.Step())
		assert.Equal(t, uint8(0x42), g.Read(types.TIMA))
		assert.Equal(t, interrupts.TimerFlag, g.Interrupts.Flag&interrupts.TimerFlag)
		assert.Equal(t, uint64(20), g.Cycles())
	})

	t.Run("dispatch", func(t *testing.T) {
		g := setup(t, true)

		// the timer keeps counting through the 5 M-cycle dispatch and
		// ticks once more at T32
		assert.Equal(t, uint8(1+5), g.Step())
		assert.Equal(t, uint16(0x0050), g.CPU.PC)
		assert.Equal(t, uint8(0x43), g.Read(types.TIMA))
		assert.Zero(t, g.Interrupts.Flag&interrupts.TimerFlag)
		assert.False(t, g.CPU.IME)
		assert.Equal(t, uint64(40), g.Cycles())
	})
}

func TestMBC1BankSelect(t *testing.T) {
	rom := testROM(0x01, 256*1024, 0)
	for bank := 1; bank < 16; bank++ {
		rom[bank*0x4000] = uint8(bank)
	}
	g, err := New(rom)
	require.NoError(t, err)

	g.Write(0x2100, 0x05)
	assert.Equal(t, rom[0x14000], g.Read(0x4000))
	assert.Equal(t, uint8(5), g.Read(0x4000))
}

func TestOAMDMA(t *testing.T) {
	g := newTestGameBoy(t)
	for i := uint16(0); i < 0xA0; i++ {
		g.Write(0xC000+i, uint8(i))
	}

	g.Write(types.DMA, 0xC0)
	for i := 0; i < 160; i++ {
		require.True(t, g.DMA.Active())
		g.TickM()
	}
	assert.False(t, g.DMA.Active())
	for i := 0; i < 0xA0; i++ {
		assert.Equal(t, uint8(i), g.PPU.OAM()[i])
	}

	t.Run("from hram", func(t *testing.T) {
		// LDH (FF00+46), A; LD A, 0x30; DEC A; JR NZ, -3; RET
		hram := []uint8{0xE0, 0x46, 0x3E, 0x30, 0x3D, 0x20, 0xFD, 0xC9}
		for i, b := range hram {
			g.Write(0xFF80+uint16(i), b)
		}
		for i := uint16(0); i < 0xA0; i++ {
			g.Write(0xC100+i, 0xFF-uint8(i))
		}
		// return to 0x0150 once the transfer is done
		g.Write(0xDFFE, 0x50)
		g.Write(0xDFFF, 0x01)
		g.CPU.SP = 0xDFFE
		g.CPU.A = 0xC1
		g.CPU.PC = 0xFF80

		for g.CPU.PC >= 0xFF80 {
			g.Step()
		}
		assert.Equal(t, uint16(0x0150), g.CPU.PC)
		for i := 0; i < 0xA0; i++ {
			assert.Equal(t, 0xFF-uint8(i), g.PPU.OAM()[i])
		}
	})
}

func TestJoypadInterrupt(t *testing.T) {
	g := newTestGameBoy(t)
	g.Write(types.P1, 0x20) // select directions

	g.SetButtonState(joypad.ButtonState{Down: true})
	assert.Zero(t, g.Interrupts.Flag&interrupts.JoypadFlag)
	g.Step()
	assert.NotZero(t, g.Interrupts.Flag&interrupts.JoypadFlag)
	assert.Equal(t, uint8(0xE7), g.Read(types.P1))

	t.Run("unselected column", func(t *testing.T) {
		g := newTestGameBoy(t)
		g.Write(types.P1, 0x10)
		g.SetButtonState(joypad.ButtonState{Down: true})
		g.Step()
		assert.Zero(t, g.Interrupts.Flag&interrupts.JoypadFlag)
	})
}

func TestLoopTiming(t *testing.T) {
	// NOP; JR -3
	g := newTestGameBoy(t, 0x00, 0x18, 0xFD)
	for i := 0; i < 100; i++ {
		g.Step()
		g.Step()
	}
	assert.Equal(t, uint64(100*16), g.Cycles())
	assert.Equal(t, uint16(0x0150), g.CPU.PC)
}

func TestVBlankOncePerFrame(t *testing.T) {
	g := newTestGameBoy(t, 0x00, 0x18, 0xFD)
	var at []uint64
	for g.Cycles() < 10*CyclesPerFrame {
		g.Step()
		if g.Interrupts.Flag&interrupts.VBlankFlag != 0 {
			g.Interrupts.Flag &^= interrupts.VBlankFlag
			at = append(at, g.Cycles())
		}
	}
	require.Len(t, at, 10)
	for i := 1; i < len(at); i++ {
		assert.InDelta(t, CyclesPerFrame, at[i]-at[i-1], 12)
	}
}

func TestHaltUntilVBlank(t *testing.T) {
	// EI; HALT; JR -3
	g := newTestGameBoy(t, 0xFB, 0x76, 0x18, 0xFD)
	g.Write(types.IE, interrupts.VBlankFlag)

	for g.CPU.PC != 0x0040 && g.Cycles() < 2*CyclesPerFrame {
		g.Step()
	}
	assert.Equal(t, uint16(0x0040), g.CPU.PC)
	assert.Equal(t, cpu.ModeNormal, g.CPU.Mode())
	assert.Equal(t, uint8(ppu.ScreenHeight), g.Read(types.LY))
}

type counter struct{ pixels int }

func (c *counter) Render(int, int, ppu.Colour) { c.pixels++ }

func TestFrame(t *testing.T) {
	c := &counter{}
	g, err := New(testROM(0x00, 0x8000, 0, 0x18, 0xFE), WithRenderer(c), NoAudio())
	require.NoError(t, err)
	g.CPU.PC = 0x0150

	g.Frame()
	assert.Equal(t, ppu.ScreenWidth*ppu.ScreenHeight, c.pixels)
	g.Frame()
	assert.Equal(t, 2*ppu.ScreenWidth*ppu.ScreenHeight, c.pixels)

	t.Run("lcd off", func(t *testing.T) {
		g.Write(types.LCDC, 0x00)
		start := g.Cycles()
		g.Frame()
		assert.GreaterOrEqual(t, g.Cycles()-start, uint64(CyclesPerFrame))
	})
}

func TestAdvanceTo(t *testing.T) {
	g := newTestGameBoy(t, 0x00, 0x18, 0xFD)
	require.NoError(t, g.AdvanceTo(context.Background(), 1000))
	assert.GreaterOrEqual(t, g.Cycles(), uint64(1000))
	assert.Less(t, g.Cycles(), uint64(1000+12))

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	before := g.Cycles()
	err := g.AdvanceTo(ctx, 1_000_000)
	assert.True(t, errors.Is(err, context.Canceled))
	assert.Equal(t, before, g.Cycles())
}

func TestSerialLink(t *testing.T) {
	capture := accessories.NewCapture(nil)
	g, err := New(testROM(0x00, 0x8000, 0), WithSerialLink(capture))
	require.NoError(t, err)
	g.CPU.PC = 0x0150

	g.Write(types.SB, 'A')
	g.Write(types.SC, 0x81)
	require.NoError(t, g.AdvanceTo(context.Background(), g.Cycles()+8*512+8))
	assert.Equal(t, "A", capture.String())
	assert.NotZero(t, g.Interrupts.Flag&interrupts.SerialFlag)
	assert.Equal(t, uint8(0xFF), g.Read(types.SB))
}

func TestSaveRAM(t *testing.T) {
	g, err := New(testROM(0x03, 0x8000, 0x02), WithSaveRAM([]byte{0x12, 0x34}))
	require.NoError(t, err)
	assert.True(t, g.Cartridge.Battery())

	g.Write(0x0000, 0x0A)
	assert.Equal(t, uint8(0x12), g.Read(0xA000))
	g.Write(0xA001, 0x56)
	assert.Equal(t, []byte{0x12, 0x56}, g.RAM()[:2])
}

func TestBootROM(t *testing.T) {
	bootROM := make([]byte, 256)
	// LD A, 0x01; JP 0x00FE; ...; LDH (BDIS), A
	copy(bootROM, []uint8{0x3E, 0x01, 0xC3, 0xFE, 0x00})
	copy(bootROM[0xFE:], []uint8{0xE0, 0x50})

	rom := testROM(0x00, 0x8000, 0)
	rom[0x0000] = 0xAB
	g, err := New(rom, WithBootROM(bootROM))
	require.NoError(t, err)
	assert.Equal(t, uint16(0x0000), g.CPU.PC)
	assert.Equal(t, uint8(0x3E), g.Read(0x0000))
	assert.Equal(t, rom[0x0100], g.Read(0x0100))

	g.Step()
	g.Step()
	assert.Equal(t, uint16(0x00FE), g.CPU.PC)
	assert.Equal(t, uint8(0x3E), g.Read(0x0000))
	g.Step()
	assert.Equal(t, uint16(0x0100), g.CPU.PC)
	assert.Equal(t, uint8(0xAB), g.Read(0x0000))
	assert.Equal(t, uint8(0x01), g.CPU.A)

	t.Run("invalid size", func(t *testing.T) {
		_, err := New(rom, WithBootROM(make([]byte, 100)))
		assert.Error(t, err)
	})
}
