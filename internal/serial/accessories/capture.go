// Package accessories provides devices that can be plugged into the
// serial port.
package accessories

import (
	"strings"
	"sync"

	"github.com/thelolagemann/dmgcore/pkg/log"
)

// Capture collects the bytes a game sends over the serial port, as
// test ROMs do to report their results. Completed lines are logged.
type Capture struct {
	mu      sync.Mutex
	current uint8
	bits    int
	out     []byte
	line    strings.Builder

	log log.Logger
}

// NewCapture returns a Capture logging completed lines to l.
func NewCapture(l log.Logger) *Capture {
	if l == nil {
		l = log.NewNullLogger()
	}
	return &Capture{log: l}
}

// Send shifts in a bit from the console.
func (c *Capture) Send(bit bool) {
	c.mu.Lock()
	defer c.mu.Unlock()

	c.current <<= 1
	if bit {
		c.current |= 1
	}
	if c.bits++; c.bits < 8 {
		return
	}

	b := c.current
	c.bits, c.current = 0, 0
	c.out = append(c.out, b)
	if b == '\n' {
		c.log.Infof("serial: %s", c.line.String())
		c.line.Reset()
		return
	}
	c.line.WriteByte(b)
}

// Receive answers with a high line, as a disconnected cable would.
func (c *Capture) Receive() bool { return true }

// Bytes returns a copy of everything received so far.
func (c *Capture) Bytes() []byte {
	c.mu.Lock()
	defer c.mu.Unlock()
	return append([]byte(nil), c.out...)
}

// String returns everything received so far as text.
func (c *Capture) String() string {
	return string(c.Bytes())
}
