package apu

import (
	"github.com/thelolagemann/dmgcore/internal/types"
)

var noiseDivisors = [8]uint32{8, 16, 32, 48, 64, 80, 96, 112}

// noiseChannel outputs the low bit of a 15-bit (or 7-bit) linear
// feedback shift register.
type noiseChannel struct {
	volumeChannel

	clockShift  uint8
	widthMode   bool
	divisorCode uint8
	lfsr        uint16
	// divisor << shift does not fit in frequencyTimer
	timer uint32
}

func newNoiseChannel() noiseChannel {
	c := noiseChannel{}
	c.lengthMax = 64
	return c
}

func (c *noiseChannel) step() {
	if c.timer > 0 {
		c.timer--
	}
	if c.timer != 0 {
		return
	}
	c.timer = noiseDivisors[c.divisorCode] << c.clockShift

	xor := (c.lfsr & 1) ^ ((c.lfsr >> 1) & 1)
	c.lfsr = (c.lfsr >> 1) | (xor << 14)
	if c.widthMode {
		c.lfsr = c.lfsr&^(1<<6) | xor<<6
	}
}

func (c *noiseChannel) output() uint8 {
	if !c.isEnabled() || c.lfsr&1 != 0 {
		return 0
	}
	return c.currentVolume
}

func (c *noiseChannel) setNR41(v uint8) {
	c.lengthCounter = 64 - uint16(v&types.Mask0To5)
}

func (c *noiseChannel) setNR43(v uint8) {
	c.clockShift = v >> 4
	c.widthMode = v&types.Bit3 != 0
	c.divisorCode = v & types.Mask0To2
}

func (c *noiseChannel) setNR44(v uint8) {
	if !c.channel.setNRx4(v) {
		return
	}
	c.trigger()
	c.timer = noiseDivisors[c.divisorCode] << c.clockShift
	c.initVolumeEnvelope()
	c.lfsr = 0x7FFF
}
