package apu

import (
	"github.com/thelolagemann/dmgcore/internal/types"
)

// channel1Duty holds the waveforms for the 12.5%, 25%, 50% and 75%
// duty cycles.
var channel1Duty = [4][8]uint8{
	{0, 0, 0, 0, 0, 0, 0, 1},
	{1, 0, 0, 0, 0, 0, 0, 1},
	{1, 0, 0, 0, 0, 1, 1, 1},
	{0, 1, 1, 1, 1, 1, 1, 0},
}

// squareChannel is a pulse channel. Channel 1 additionally has a
// frequency sweep unit.
type squareChannel struct {
	volumeChannel

	// NRx1
	duty             uint8
	waveDutyPosition uint8

	// NR10
	hasSweep        bool
	sweepPeriod     uint8
	negate          bool
	shift           uint8
	sweepTimer      uint8
	sweepEnabled    bool
	shadowFrequency uint16
}

func newSquareChannel(sweep bool) squareChannel {
	c := squareChannel{hasSweep: sweep}
	c.lengthMax = 64
	return c
}

func (c *squareChannel) step() {
	if c.frequencyTimer > 0 {
		c.frequencyTimer--
	}
	if c.frequencyTimer == 0 {
		c.frequencyTimer = (2048 - c.frequency) * 4
		c.waveDutyPosition = (c.waveDutyPosition + 1) & 7
	}
}

func (c *squareChannel) dutyHigh() bool {
	return channel1Duty[c.duty][c.waveDutyPosition] == 1
}

func (c *squareChannel) output() uint8 {
	if !c.isEnabled() || !c.dutyHigh() {
		return 0
	}
	return c.currentVolume
}

func (c *squareChannel) setNR10(v uint8) {
	c.sweepPeriod = (v >> 4) & types.Mask0To2
	c.negate = v&types.Bit3 != 0
	c.shift = v & types.Mask0To2
}

func (c *squareChannel) setNRx1(v uint8) {
	c.duty = v >> 6
	c.lengthCounter = 64 - uint16(v&types.Mask0To5)
}

func (c *squareChannel) setNRx4(v uint8) {
	if !c.channel.setNRx4(v) {
		return
	}
	c.trigger()
	c.frequencyTimer = (2048 - c.frequency) * 4
	c.initVolumeEnvelope()

	if c.hasSweep {
		c.shadowFrequency = c.frequency
		c.reloadSweepTimer()
		c.sweepEnabled = c.sweepPeriod > 0 || c.shift > 0
		if c.shift > 0 {
			c.frequencyCalculation()
		}
	}
}

func (c *squareChannel) reloadSweepTimer() {
	if c.sweepPeriod > 0 {
		c.sweepTimer = c.sweepPeriod
	} else {
		c.sweepTimer = 8
	}
}

func (c *squareChannel) sweepClock() {
	if c.sweepTimer > 0 {
		c.sweepTimer--
	}
	if c.sweepTimer != 0 {
		return
	}
	c.reloadSweepTimer()
	if c.sweepEnabled && c.sweepPeriod > 0 {
		f := c.frequencyCalculation()
		if f <= 2047 && c.shift > 0 {
			c.frequency = f
			c.shadowFrequency = f
			// overflow is checked again with the new frequency
			c.frequencyCalculation()
		}
	}
}

// frequencyCalculation returns the next sweep frequency, disabling the
// channel if it overflows 11 bits.
func (c *squareChannel) frequencyCalculation() uint16 {
	delta := c.shadowFrequency >> c.shift
	f := c.shadowFrequency + delta
	if c.negate {
		f = c.shadowFrequency - delta
	}
	if f > 2047 {
		c.enabled = false
	}
	return f
}
