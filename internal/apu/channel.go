package apu

import (
	"github.com/thelolagemann/dmgcore/internal/types"
)

type channel struct {
	enabled    bool
	dacEnabled bool

	// NRx1
	lengthCounter uint16
	lengthMax     uint16

	// NRx3/NRx4
	frequency            uint16
	frequencyTimer       uint16
	lengthCounterEnabled bool
}

func (c *channel) isEnabled() bool {
	return c.enabled && c.dacEnabled
}

func (c *channel) setFrequencyLow(v uint8) {
	c.frequency = c.frequency&0x700 | uint16(v)
}

// setNRx4 updates the upper frequency bits and the length enable,
// returning whether the channel should be triggered.
func (c *channel) setNRx4(v uint8) bool {
	c.frequency = c.frequency&0xFF | uint16(v&types.Mask0To2)<<8
	c.lengthCounterEnabled = v&types.Bit6 != 0
	return v&types.Bit7 != 0
}

// trigger restarts the channel, reloading an expired length counter.
func (c *channel) trigger() {
	c.enabled = c.dacEnabled
	if c.lengthCounter == 0 {
		c.lengthCounter = c.lengthMax
	}
}

func (c *channel) lengthStep() {
	if c.lengthCounterEnabled && c.lengthCounter > 0 {
		c.lengthCounter--
		if c.lengthCounter == 0 {
			c.enabled = false
		}
	}
}

type volumeChannel struct {
	channel

	// NRx2
	startingVolume  uint8
	envelopeAddMode bool
	period          uint8

	volumeEnvelopeTimer uint8
	currentVolume       uint8
}

func (v *volumeChannel) volumeStep() {
	if v.period == 0 {
		return
	}
	if v.volumeEnvelopeTimer > 0 {
		v.volumeEnvelopeTimer--
	}
	if v.volumeEnvelopeTimer == 0 {
		v.volumeEnvelopeTimer = v.period
		if v.envelopeAddMode && v.currentVolume < 0xF {
			v.currentVolume++
		} else if !v.envelopeAddMode && v.currentVolume > 0 {
			v.currentVolume--
		}
	}
}

func (v *volumeChannel) setNRx2(v2 uint8) {
	v.startingVolume = v2 >> 4
	v.envelopeAddMode = v2&types.Bit3 != 0
	v.period = v2 & 0x7
	v.dacEnabled = v2&0xF8 > 0
	if !v.dacEnabled {
		v.enabled = false
	}
}

func (v *volumeChannel) initVolumeEnvelope() {
	v.volumeEnvelopeTimer = v.period
	v.currentVolume = v.startingVolume
}
