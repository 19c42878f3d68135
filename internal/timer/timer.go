// Package timer provides an implementation of the Game Boy
// timer. TIMA is incremented on the falling edge of a bit of
// the 16-bit system counter, selected by types.TAC.
package timer

import (
	"github.com/thelolagemann/dmgcore/internal/interrupts"
	"github.com/thelolagemann/dmgcore/internal/types"
)

// bits maps TAC bits 0-1 to the system counter bit whose falling
// edge increments TIMA (4096, 262144, 65536 and 16384 Hz).
var bits = [4]uint16{512, 8, 32, 128}

// Controller is the timer controller.
type Controller struct {
	sys uint16

	tima uint8
	tma  uint8
	tac  uint8

	lastSignal bool
	// reloadIn counts down the T-cycles between an overflow and
	// TIMA being reloaded from TMA.
	reloadIn uint8
	// reloading is set for the M-cycle in which the reload happened.
	reloading bool

	irq *interrupts.Service
}

// NewController returns a new timer controller.
func NewController(irq *interrupts.Service) *Controller {
	return &Controller{
		irq: irq,
	}
}

func (c *Controller) signal() bool {
	return c.tac&types.Bit2 != 0 && c.sys&bits[c.tac&0b11] != 0
}

// edge increments TIMA if the timer signal fell since the last call.
func (c *Controller) edge() {
	s := c.signal()
	if c.lastSignal && !s {
		c.tima++
		if c.tima == 0 {
			c.reloadIn = 4
		}
	}
	c.lastSignal = s
}

// Tick advances the timer by a single T-cycle.
func (c *Controller) Tick() {
	if c.reloadIn > 0 {
		c.reloadIn--
		if c.reloadIn == 0 {
			c.tima = c.tma
			c.reloading = true
			c.irq.Request(interrupts.TimerFlag)
		}
	}
	c.sys++
	c.edge()
}

// TickM ticks the timer controller by 1 M-Cycle (4 T-Cycles).
func (c *Controller) TickM() {
	c.reloading = false
	for i := 0; i < 4; i++ {
		c.Tick()
	}
}

// SysClock returns the full 16-bit system counter.
func (c *Controller) SysClock() uint16 {
	return c.sys
}

// SetSysClock sets the system counter without triggering an edge.
func (c *Controller) SetSysClock(v uint16) {
	c.sys = v
	c.lastSignal = c.signal()
}

func (c *Controller) Read(address uint16) uint8 {
	switch address {
	case types.DIV:
		return uint8(c.sys >> 8)
	case types.TIMA:
		return c.tima
	case types.TMA:
		return c.tma
	case types.TAC:
		return c.tac | 0xF8
	}
	return 0xFF
}

func (c *Controller) Write(address uint16, value uint8) {
	switch address {
	case types.DIV:
		// resetting the counter can produce a falling edge
		c.sys = 0
		c.edge()
	case types.TIMA:
		// writes are ignored in the cycle TIMA is reloaded, and
		// cancel the reload if made during the overflow window
		if c.reloading {
			return
		}
		c.reloadIn = 0
		c.tima = value
	case types.TMA:
		c.tma = value
		if c.reloading {
			c.tima = value
		}
	case types.TAC:
		// changing the selected bit or disabling the timer can
		// also produce a falling edge
		c.tac = value & types.Mask0To2
		c.edge()
	}
}
