// Package cpu implements the Sharp SM83 processor found in the DMG.
// Instructions are decoded through two flat tables, and every memory
// access advances the rest of the system by one M-cycle through the
// Bus.
package cpu

import (
	"github.com/thelolagemann/dmgcore/internal/interrupts"
	"github.com/thelolagemann/dmgcore/pkg/log"
)

const (
	// ClockSpeed is the clock speed of the CPU in T-cycles per second.
	ClockSpeed = 4194304
)

// Bus is the view of the system the CPU has. TickM advances every
// other component by 1 M-cycle, and is called once before each memory
// access and once for each internal cycle.
type Bus interface {
	Read(address uint16) uint8
	Write(address uint16, value uint8)
	TickM()
}

type mode = uint8

const (
	// ModeNormal is the normal CPU mode.
	ModeNormal mode = iota
	// ModeHalt is entered by HALT, until an interrupt is pending.
	ModeHalt
	// ModeStop is entered by STOP, until a joypad interrupt is requested.
	ModeStop
)

// CPU represents the Gameboy CPU. It is responsible for executing instructions.
type CPU struct {
	// PC is the program counter, it points to the next instruction to be executed.
	PC uint16
	// SP is the stack pointer, it points to the top of the stack.
	SP uint16
	// Registers contains the 8-bit registers.
	Registers

	// IME is the interrupt master enable.
	IME bool
	// eiPending delays the effect of EI by one instruction.
	eiPending bool
	// haltBug suppresses the next PC increment.
	haltBug bool

	bus Bus
	irq *interrupts.Service

	mode         mode
	currentTicks uint8
	illegal      [256]bool

	Log log.Logger
}

// NewCPU returns a CPU in the state the DMG boot ROM leaves it in,
// about to execute the cartridge entry point.
func NewCPU(bus Bus, irq *interrupts.Service) *CPU {
	c := &CPU{
		PC:  0x0100,
		SP:  0xFFFE,
		bus: bus,
		irq: irq,
		Log: log.NewNullLogger(),
	}
	c.SetAF(0x01B0)
	c.SetBC(0x0013)
	c.SetDE(0x00D8)
	c.SetHL(0x014D)

	return c
}

// PowerOn clears the registers to their state at power on, for
// running a boot ROM from 0x0000.
func (c *CPU) PowerOn() {
	c.Registers = Registers{}
	c.PC, c.SP = 0, 0
	c.IME, c.eiPending, c.haltBug = false, false, false
	c.mode = ModeNormal
}

// Mode returns the current mode of the CPU.
func (c *CPU) Mode() mode {
	return c.mode
}

// Step executes one instruction, or waits one M-cycle while halted or
// stopped, dispatching any pending interrupt afterwards. It returns
// the number of M-cycles taken.
func (c *CPU) Step() uint8 {
	c.currentTicks = 0

	switch c.mode {
	case ModeHalt:
		c.wait()
		// any pending interrupt wakes the CPU, even with IME clear
		if c.irq.HasInterrupts() {
			c.mode = ModeNormal
		}
	case ModeStop:
		c.wait()
		if c.irq.Flag&interrupts.JoypadFlag != 0 {
			c.mode = ModeNormal
		}
	default:
		if c.eiPending {
			c.eiPending = false
			c.IME = true
		}
		c.runInstruction(c.readInstruction())
	}

	if c.mode == ModeNormal && c.IME && c.irq.HasInterrupts() {
		c.executeInterrupt()
	}

	return c.currentTicks
}

// wait idles the bus for 1 M-cycle.
func (c *CPU) wait() {
	c.bus.TickM()
	c.currentTicks++
}

// readInstruction reads the next opcode from memory.
func (c *CPU) readInstruction() uint8 {
	value := c.readByte(c.PC)
	if c.haltBug {
		c.haltBug = false
	} else {
		c.PC++
	}
	return value
}

// readOperand reads the next immediate byte.
func (c *CPU) readOperand() uint8 {
	value := c.readByte(c.PC)
	c.PC++
	return value
}

// readOperand16 reads the next little endian immediate word.
func (c *CPU) readOperand16() uint16 {
	low := c.readOperand()
	return uint16(c.readOperand())<<8 | uint16(low)
}

// readByte reads a byte from memory.
func (c *CPU) readByte(addr uint16) uint8 {
	c.wait()
	return c.bus.Read(addr)
}

// writeByte writes the given value to the given address.
func (c *CPU) writeByte(addr uint16, val uint8) {
	c.wait()
	c.bus.Write(addr, val)
}

// push pushes a 16-bit value onto the stack, after an internal cycle.
func (c *CPU) push(value uint16) {
	c.wait()
	c.SP--
	c.writeByte(c.SP, uint8(value>>8))
	c.SP--
	c.writeByte(c.SP, uint8(value))
}

// pop pops a 16-bit value off the stack.
func (c *CPU) pop() uint16 {
	low := c.readByte(c.SP)
	c.SP++
	high := c.readByte(c.SP)
	c.SP++
	return uint16(high)<<8 | uint16(low)
}

func (c *CPU) runInstruction(opcode uint8) {
	instruction := InstructionSet[opcode]
	if opcode == 0xCB {
		instruction = InstructionSetCB[c.readOperand()]
	}
	instruction.fn(c)
}

// executeInterrupt pushes PC and jumps to the vector of the highest
// priority pending interrupt, taking 5 M-cycles. The vector is chosen
// after the high byte is pushed, so a push that lands on IE can cancel
// the dispatch, leaving PC at 0x0000.
func (c *CPU) executeInterrupt() {
	c.IME = false
	c.wait()
	c.wait()

	c.SP--
	c.writeByte(c.SP, uint8(c.PC>>8))
	vector := c.irq.Vector()
	c.SP--
	c.writeByte(c.SP, uint8(c.PC))

	c.PC = vector
	c.wait()
}

// halt suspends the CPU until an interrupt is pending. If one already
// is, the CPU does not halt, and with IME clear fails to increment PC
// on the next fetch.
func (c *CPU) halt() {
	if c.irq.HasInterrupts() {
		c.haltBug = !c.IME
		return
	}
	c.mode = ModeHalt
}

// stop suspends the CPU until a button is pressed. The byte after STOP
// is skipped.
func (c *CPU) stop() {
	c.PC++
	if c.irq.Flag&interrupts.JoypadFlag == 0 {
		c.mode = ModeStop
	}
}

func (c *CPU) illegalOpcode(opcode uint8) {
	if !c.illegal[opcode] {
		c.illegal[opcode] = true
		c.Log.Warnf("illegal opcode %02X at %04X, treating as NOP", opcode, c.PC-1)
	}
}
