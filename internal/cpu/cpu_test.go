package cpu

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/thelolagemann/dmgcore/internal/interrupts"
	"github.com/thelolagemann/dmgcore/internal/types"
)

// testBus is a flat 64kB memory with IF and IE mapped to an interrupt
// service. It counts the M-cycles the CPU spends.
type testBus struct {
	mem   [0x10000]uint8
	irq   *interrupts.Service
	ticks int

	// onTick is called once per M-cycle, when set
	onTick func()
}

func (b *testBus) Read(address uint16) uint8 {
	switch address {
	case types.IF:
		return b.irq.ReadFlag()
	case types.IE:
		return b.irq.Enable
	}
	return b.mem[address]
}

func (b *testBus) Write(address uint16, value uint8) {
	switch address {
	case types.IF:
		b.irq.WriteFlag(value)
	case types.IE:
		b.irq.Enable = value
	default:
		b.mem[address] = value
	}
}

func (b *testBus) TickM() {
	b.ticks++
	if b.onTick != nil {
		b.onTick()
	}
}

// newTestCPU returns a CPU executing program from 0xC000.
func newTestCPU(program ...uint8) (*CPU, *testBus) {
	b := &testBus{irq: interrupts.NewService()}
	copy(b.mem[0xC000:], program)
	c := NewCPU(b, b.irq)
	c.PC = 0xC000
	return c, b
}

func TestNewCPU(t *testing.T) {
	c, _ := newTestCPU()
	assert.Equal(t, uint16(0x01B0), c.AF())
	assert.Equal(t, uint16(0x0013), c.BC())
	assert.Equal(t, uint16(0x00D8), c.DE())
	assert.Equal(t, uint16(0x014D), c.HL())
	assert.Equal(t, uint16(0xFFFE), c.SP)
	assert.False(t, c.IME)
}

func TestInstruction_Timing(t *testing.T) {
	// conditional instructions are timed with their condition failing
	timings := []uint8{
		1, 3, 2, 2, 1, 1, 2, 1, 5, 2, 2, 2, 1, 1, 2, 1,
		0, 3, 2, 2, 1, 1, 2, 1, 3, 2, 2, 2, 1, 1, 2, 1,
		2, 3, 2, 2, 1, 1, 2, 1, 2, 2, 2, 2, 1, 1, 2, 1,
		2, 3, 2, 2, 3, 3, 3, 1, 2, 2, 2, 2, 1, 1, 2, 1,
		1, 1, 1, 1, 1, 1, 2, 1, 1, 1, 1, 1, 1, 1, 2, 1,
		1, 1, 1, 1, 1, 1, 2, 1, 1, 1, 1, 1, 1, 1, 2, 1,
		1, 1, 1, 1, 1, 1, 2, 1, 1, 1, 1, 1, 1, 1, 2, 1,
		2, 2, 2, 2, 2, 2, 0, 2, 1, 1, 1, 1, 1, 1, 2, 1,
		1, 1, 1, 1, 1, 1, 2, 1, 1, 1, 1, 1, 1, 1, 2, 1,
		1, 1, 1, 1, 1, 1, 2, 1, 1, 1, 1, 1, 1, 1, 2, 1,
		1, 1, 1, 1, 1, 1, 2, 1, 1, 1, 1, 1, 1, 1, 2, 1,
		1, 1, 1, 1, 1, 1, 2, 1, 1, 1, 1, 1, 1, 1, 2, 1,
		2, 3, 3, 4, 3, 4, 2, 4, 2, 4, 3, 0, 3, 6, 2, 4,
		2, 3, 3, 1, 3, 4, 2, 4, 2, 4, 3, 1, 3, 1, 2, 4,
		3, 3, 2, 1, 1, 4, 2, 4, 4, 1, 4, 1, 1, 1, 2, 4,
		3, 3, 2, 1, 1, 4, 2, 4, 3, 2, 4, 1, 1, 1, 2, 4,
	}
	for i, timing := range timings {
		if timing == 0 {
			continue
		}
		opcode := uint8(i)
		t.Run(InstructionSet[opcode].Name(), func(t *testing.T) {
			c, _ := newTestCPU(opcode)
			c.SP = 0xD000
			c.F = untaken(opcode)
			assert.Equal(t, timing, c.Step(), "%02X", opcode)
		})
	}

	cbTimings := [8]uint8{2, 2, 2, 2, 2, 2, 4, 2}
	for i := 0; i < 256; i++ {
		opcode := uint8(i)
		want := cbTimings[opcode&7]
		if opcode&7 == 6 && opcode >= 0x40 && opcode < 0x80 {
			want = 3
		}
		t.Run(InstructionSetCB[opcode].Name(), func(t *testing.T) {
			c, _ := newTestCPU(0xCB, opcode)
			c.SetHL(0xD000)
			assert.Equal(t, want, c.Step(), "CB %02X", opcode)
		})
	}
}

// untaken returns flags that fail the condition of a conditional
// instruction.
func untaken(opcode uint8) uint8 {
	if opcode&0x08 == 0 {
		// NZ and NC
		return FlagZero | FlagCarry
	}
	return 0
}

func TestInstruction_TimingTaken(t *testing.T) {
	for _, tt := range []struct {
		opcodes []uint8
		cycles  uint8
	}{
		{[]uint8{0x20, 0x28, 0x30, 0x38}, 3},
		{[]uint8{0xC0, 0xC8, 0xD0, 0xD8}, 5},
		{[]uint8{0xC2, 0xCA, 0xD2, 0xDA}, 4},
		{[]uint8{0xC4, 0xCC, 0xD4, 0xDC}, 6},
	} {
		for _, opcode := range tt.opcodes {
			t.Run(InstructionSet[opcode].Name(), func(t *testing.T) {
				c, _ := newTestCPU(opcode)
				c.SP = 0xD000
				c.F = untaken(opcode) ^ (FlagZero | FlagCarry)
				assert.Equal(t, tt.cycles, c.Step())
			})
		}
	}
}

func TestInstruction_Names(t *testing.T) {
	for _, tt := range []struct {
		cb     bool
		opcode uint8
		name   string
	}{
		{false, 0x00, "NOP"},
		{false, 0x41, "LD B, C"},
		{false, 0x36, "LD (HL), n"},
		{false, 0x22, "LD (HL+), A"},
		{false, 0xF0, "LD A, (FF00+n)"},
		{false, 0x86, "ADD A, (HL)"},
		{false, 0xFE, "CP A, n"},
		{false, 0xF5, "PUSH AF"},
		{false, 0x31, "LD SP, nn"},
		{false, 0x20, "JR NZ, e"},
		{false, 0xFF, "RST 38H"},
		{false, 0xD3, "disallowed"},
		{true, 0x37, "SWAP A"},
		{true, 0x7E, "BIT 7, (HL)"},
		{true, 0xC0, "SET 0, B"},
	} {
		set := InstructionSet
		if tt.cb {
			set = InstructionSetCB
		}
		assert.Equal(t, tt.name, set[tt.opcode].Name())
	}

	for i := 0; i < 256; i++ {
		require.NotNil(t, InstructionSet[i].fn, "%02X", i)
		require.NotNil(t, InstructionSetCB[i].fn, "CB %02X", i)
	}
}

func TestIllegalOpcode(t *testing.T) {
	for _, opcode := range disallowedOpcodes {
		c, _ := newTestCPU(opcode, 0x3C)
		a := c.A
		assert.Equal(t, uint8(1), c.Step())
		assert.Equal(t, uint16(0xC001), c.PC)
		assert.True(t, c.illegal[opcode])
		c.Step()
		assert.Equal(t, a+1, c.A)
	}
}

func TestInterruptDispatch(t *testing.T) {
	t.Run("priority", func(t *testing.T) {
		c, b := newTestCPU(0x00)
		c.IME = true
		b.irq.Enable = 0x1F
		b.irq.Flag = interrupts.TimerFlag | interrupts.SerialFlag

		assert.Equal(t, uint8(1+5), c.Step())
		assert.Equal(t, uint16(0x0050), c.PC)
		assert.False(t, c.IME)
		assert.Equal(t, interrupts.SerialFlag, b.irq.Flag)
		assert.Equal(t, uint16(0xFFFC), c.SP)
		assert.Equal(t, uint8(0xC0), b.mem[0xFFFD])
		assert.Equal(t, uint8(0x01), b.mem[0xFFFC])
	})
	t.Run("disabled", func(t *testing.T) {
		c, b := newTestCPU(0x00)
		c.IME = true
		b.irq.Flag = interrupts.VBlankFlag
		assert.Equal(t, uint8(1), c.Step())
		assert.Equal(t, uint16(0xC001), c.PC)
	})
	t.Run("ie overwritten", func(t *testing.T) {
		c, b := newTestCPU(0x00)
		c.IME = true
		c.SP = 0x0000
		b.irq.Enable = interrupts.JoypadFlag
		b.irq.Flag = interrupts.JoypadFlag

		// the high byte of PC (0xC0) lands on IE, disabling the joypad
		c.Step()
		assert.Equal(t, uint16(0x0000), c.PC)
		assert.Equal(t, interrupts.JoypadFlag, b.irq.Flag)
	})
	t.Run("ie overwritten keeps other", func(t *testing.T) {
		c, b := newTestCPU(0x00)
		c.IME = true
		c.SP = 0x0000
		b.irq.Enable = interrupts.JoypadFlag
		b.irq.Flag = interrupts.JoypadFlag

		c.PC = 0x4100
		b.mem[0x4100] = 0x00
		// 0x41 keeps VBlank enabled, so that is dispatched instead
		b.irq.Flag |= interrupts.VBlankFlag
		b.irq.Enable |= interrupts.VBlankFlag
		c.Step()
		assert.Equal(t, uint16(0x0040), c.PC)
	})
}

func TestEIDelay(t *testing.T) {
	// EI; INC A; INC A
	c, b := newTestCPU(0xFB, 0x3C, 0x3C)
	b.irq.Enable = interrupts.VBlankFlag
	b.irq.Flag = interrupts.VBlankFlag
	a := c.A

	c.Step()
	assert.False(t, c.IME)
	assert.Equal(t, uint16(0xC001), c.PC)

	// the instruction after EI runs before the dispatch
	c.Step()
	assert.Equal(t, a+1, c.A)
	assert.Equal(t, uint16(0x0040), c.PC)

	t.Run("di cancels", func(t *testing.T) {
		c, b := newTestCPU(0xFB, 0xF3, 0x00)
		b.irq.Enable = interrupts.VBlankFlag
		b.irq.Flag = interrupts.VBlankFlag
		c.Step()
		c.Step()
		c.Step()
		assert.False(t, c.IME)
		assert.Equal(t, uint16(0xC003), c.PC)
	})
	t.Run("reti", func(t *testing.T) {
		c, b := newTestCPU(0xD9)
		c.SP = 0xD000
		b.mem[0xD000], b.mem[0xD001] = 0x34, 0x12
		assert.Equal(t, uint8(4), c.Step())
		assert.True(t, c.IME)
		assert.Equal(t, uint16(0x1234), c.PC)
	})
}

func TestHalt(t *testing.T) {
	t.Run("wakes with ime", func(t *testing.T) {
		c, b := newTestCPU(0x76, 0x00)
		c.IME = true
		b.irq.Enable = interrupts.TimerFlag

		c.Step()
		require.Equal(t, ModeHalt, c.Mode())
		for i := 0; i < 10; i++ {
			assert.Equal(t, uint8(1), c.Step())
		}
		assert.Equal(t, uint16(0xC001), c.PC)

		b.irq.Request(interrupts.TimerFlag)
		assert.Equal(t, uint8(1+5), c.Step())
		assert.Equal(t, ModeNormal, c.Mode())
		assert.Equal(t, uint16(0x0050), c.PC)
		// the return address is the instruction after HALT
		assert.Equal(t, uint8(0x01), b.mem[c.SP])
	})
	t.Run("wakes without ime", func(t *testing.T) {
		c, b := newTestCPU(0x76, 0x3C)
		b.irq.Enable = interrupts.TimerFlag
		a := c.A

		c.Step()
		c.Step()
		require.Equal(t, ModeHalt, c.Mode())

		b.irq.Request(interrupts.TimerFlag)
		assert.Equal(t, uint8(1), c.Step())
		assert.Equal(t, ModeNormal, c.Mode())
		c.Step()
		assert.Equal(t, a+1, c.A)
		assert.Equal(t, uint16(0xC002), c.PC)
	})
	t.Run("halt bug", func(t *testing.T) {
		// HALT; INC A; with an interrupt already pending and IME clear
		c, b := newTestCPU(0x76, 0x3C, 0x00)
		b.irq.Enable = interrupts.TimerFlag
		b.irq.Flag = interrupts.TimerFlag
		a := c.A

		c.Step()
		assert.Equal(t, ModeNormal, c.Mode())
		c.Step()
		c.Step()
		// INC A is fetched twice
		assert.Equal(t, a+2, c.A)
		assert.Equal(t, uint16(0xC002), c.PC)
	})
}

func TestStop(t *testing.T) {
	c, b := newTestCPU(0x10, 0x00, 0x3C)
	a := c.A
	c.Step()
	assert.Equal(t, ModeStop, c.Mode())
	assert.Equal(t, uint16(0xC002), c.PC)

	for i := 0; i < 5; i++ {
		assert.Equal(t, uint8(1), c.Step())
	}
	assert.Equal(t, a, c.A)

	b.irq.Request(interrupts.JoypadFlag)
	c.Step()
	assert.Equal(t, ModeNormal, c.Mode())
	c.Step()
	assert.Equal(t, a+1, c.A)
}

func TestBusOrder(t *testing.T) {
	// LD A, (FF00+n) reads after the fetch and operand cycles
	c, b := newTestCPU(0xF0, 0x80)
	b.mem[0xFF80] = 0x11
	b.onTick = func() {
		if b.ticks == 3 {
			b.mem[0xFF80] = 0x22
		}
	}
	c.Step()
	assert.Equal(t, uint8(0x22), c.A)
	assert.Equal(t, 3, b.ticks)
}

func TestAddress(t *testing.T) {
	tests := []struct {
		operand operand8
		address uint16
		hl      uint16
		ticks   int
	}{
		{indHL, 0xC100, 0xC100, 0},
		{indBC, 0xC200, 0xC100, 0},
		{indDE, 0xC300, 0xC100, 0},
		{indHLI, 0xC100, 0xC101, 0},
		{indHLD, 0xC100, 0xC0FF, 0},
		{indHigh, 0xFF80, 0xC100, 1},
		{indHighC, 0xFF00, 0xC100, 0},
		{indAbs, 0x3480, 0xC100, 2},
		// register operands fall back to (HL)
		{regB, 0xC100, 0xC100, 0},
		{imm8, 0xC100, 0xC100, 0},
	}
	for _, tt := range tests {
		t.Run(tt.operand.String(), func(t *testing.T) {
			c, b := newTestCPU(0x80, 0x34)
			c.SetHL(0xC100)
			c.SetBC(0xC200)
			c.SetDE(0xC300)

			assert.Equal(t, tt.address, c.address(tt.operand))
			assert.Equal(t, tt.hl, c.HL())
			assert.Equal(t, tt.ticks, b.ticks)
		})
	}
}
