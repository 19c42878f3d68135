package serial

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/thelolagemann/dmgcore/internal/interrupts"
	"github.com/thelolagemann/dmgcore/internal/types"
)

// loopback records what was sent and answers with a fixed pattern.
type loopback struct {
	sent    []bool
	pattern uint8
	n       int
}

func (l *loopback) Send(bit bool) { l.sent = append(l.sent, bit) }

func (l *loopback) Receive() bool {
	bit := l.pattern&(0x80>>l.n) != 0
	l.n++
	return bit
}

func TestInternalTransfer(t *testing.T) {
	irq := interrupts.NewService()
	c := NewController(irq)
	l := &loopback{pattern: 0x3C}
	c.Attach(l)

	c.Write(types.SB, 0xA5)
	c.Write(types.SC, 0x81)
	assert.Equal(t, uint8(0xFF), c.Read(types.SC))

	for i := 0; i < 8*ticksPerBit-1; i++ {
		c.Tick()
	}
	assert.True(t, c.Transferring)
	assert.Zero(t, irq.Flag)

	c.Tick()
	assert.False(t, c.Transferring)
	assert.Equal(t, interrupts.SerialFlag, irq.Flag)
	assert.Equal(t, uint8(0x3C), c.Read(types.SB))
	assert.Equal(t, uint8(0x7F), c.Read(types.SC))
	assert.Equal(t, []bool{true, false, true, false, false, true, false, true}, l.sent)
}

func TestDisconnectedReceivesFF(t *testing.T) {
	c := NewController(interrupts.NewService())
	c.Write(types.SB, 0x00)
	c.Write(types.SC, 0x81)
	for i := 0; i < 8*ticksPerBit/4; i++ {
		c.TickM()
	}
	assert.Equal(t, uint8(0xFF), c.Read(types.SB))
}

func TestExternalClock(t *testing.T) {
	irq := interrupts.NewService()
	c := NewController(irq)
	c.Write(types.SB, 0x01)
	c.Write(types.SC, 0x80)

	// no clock from the other side, nothing happens
	for i := 0; i < 8*ticksPerBit; i++ {
		c.Tick()
	}
	assert.True(t, c.Transferring)

	for i := 0; i < 8; i++ {
		c.ExternalClock()
	}
	assert.False(t, c.Transferring)
	assert.Equal(t, interrupts.SerialFlag, irq.Flag)
}
