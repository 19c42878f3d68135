package apu

import (
	"github.com/thelolagemann/dmgcore/internal/types"
)

// volumeShift maps NR32 bits 5-6 to a right shift of the sample:
// mute, 100%, 50% and 25%.
var volumeShift = [4]uint8{4, 0, 1, 2}

// waveChannel plays the 32 4-bit samples stored in wave RAM.
type waveChannel struct {
	channel

	volumeCode uint8
	position   uint8
	sample     uint8
	waveRAM    [16]uint8
}

func newWaveChannel() waveChannel {
	c := waveChannel{}
	c.lengthMax = 256
	return c
}

func (c *waveChannel) step() {
	if c.frequencyTimer > 0 {
		c.frequencyTimer--
	}
	if c.frequencyTimer == 0 {
		c.frequencyTimer = (2048 - c.frequency) * 2
		c.position = (c.position + 1) & 31
		c.sample = c.readSample(c.position)
	}
}

// readSample returns sample i, high nibble first.
func (c *waveChannel) readSample(i uint8) uint8 {
	b := c.waveRAM[i/2]
	if i&1 == 0 {
		return b >> 4
	}
	return b & 0x0F
}

func (c *waveChannel) output() uint8 {
	if !c.isEnabled() {
		return 0
	}
	return c.sample >> volumeShift[c.volumeCode]
}

func (c *waveChannel) setNR30(v uint8) {
	c.dacEnabled = v&types.Bit7 != 0
	if !c.dacEnabled {
		c.enabled = false
	}
}

func (c *waveChannel) setNR31(v uint8) {
	c.lengthCounter = 256 - uint16(v)
}

func (c *waveChannel) setNR32(v uint8) {
	c.volumeCode = (v >> 5) & 0x03
}

func (c *waveChannel) setNR34(v uint8) {
	if !c.channel.setNRx4(v) {
		return
	}
	c.trigger()
	c.frequencyTimer = (2048 - c.frequency) * 2
	c.position = 0
}
