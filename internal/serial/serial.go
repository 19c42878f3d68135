package serial

import (
	"github.com/thelolagemann/dmgcore/internal/interrupts"
	"github.com/thelolagemann/dmgcore/internal/types"
)

const (
	ticksPerBit = 512
)

// Controller is the serial controller.
// Before a transfer, data holds the next byte to be sent (types.SB).
// During a transfer, it has a mix of the incoming data and the outgoing data.
// Each clock, the leftmost bit of data is sent to the link, and the
// incoming bit is shifted in from the right.
//
//	Before : data = o7 o6 o5 o4 o3 o2 o1 o0
//	Cycle 1: data = o6 o5 o4 o3 o2 o1 o0 i0
//	...
//	Cycle 8: data = i0 i1 i2 i3 i4 i5 i6 i7
type Controller struct {
	data          uint8
	count         uint8 // the number of bits that have been transferred.
	ticks         uint16
	InternalClock bool // if true, this controller drives the clock.
	Transferring  bool // SC bit 7, cleared when the byte completes.

	link Link
	irq  *interrupts.Service
}

// NewController creates a new Controller, attached to a link that
// behaves as a disconnected cable.
func NewController(irq *interrupts.Service) *Controller {
	return &Controller{
		link: nullLink{},
		irq:  irq,
	}
}

// Attach attaches a Link to the Controller. A nil link disconnects it.
func (c *Controller) Attach(l Link) {
	if l == nil {
		l = nullLink{}
	}
	c.link = l
}

// Tick advances the controller by a single T-cycle. Only transfers
// using the internal clock are advanced.
func (c *Controller) Tick() {
	if !c.Transferring || !c.InternalClock {
		return
	}
	if c.ticks++; c.ticks == ticksPerBit {
		c.ticks = 0
		c.shift()
	}
}

// TickM ticks the controller by 1 M-Cycle (4 T-Cycles).
func (c *Controller) TickM() {
	for i := 0; i < 4; i++ {
		c.Tick()
	}
}

// ExternalClock shifts a single bit when the other end of the
// link drives the clock.
func (c *Controller) ExternalClock() {
	if c.Transferring && !c.InternalClock {
		c.shift()
	}
}

func (c *Controller) shift() {
	c.link.Send(c.data&types.Bit7 != 0)
	c.data <<= 1
	if c.link.Receive() {
		c.data |= 1
	}

	if c.count++; c.count == 8 {
		c.count = 0
		c.Transferring = false
		c.irq.Request(interrupts.SerialFlag)
	}
}

func (c *Controller) Read(address uint16) uint8 {
	switch address {
	case types.SB:
		return c.data
	case types.SC:
		v := uint8(0x7E) // bits 1-6 are unused on DMG
		if c.Transferring {
			v |= types.Bit7
		}
		if c.InternalClock {
			v |= types.Bit0
		}
		return v
	}
	return 0xFF
}

func (c *Controller) Write(address uint16, value uint8) {
	switch address {
	case types.SB:
		c.data = value
	case types.SC:
		c.InternalClock = value&types.Bit0 != 0
		c.Transferring = value&types.Bit7 != 0
		if c.Transferring {
			c.count = 0
			c.ticks = 0
		}
	}
}
