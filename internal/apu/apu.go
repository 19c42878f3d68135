// Package apu implements the Game Boy's audio processing unit. It
// comprises 4 channels: 2 pulse channels, a wave channel and a noise
// channel, mixed into a stereo pair once per M-cycle.
package apu

import (
	"github.com/thelolagemann/dmgcore/internal/types"
)

const (
	// SampleRate is the rate at which frames are sent to the Terminal,
	// one per M-cycle.
	SampleRate = 4194304 / 4

	frameSequencerRate   = 512
	frameSequencerPeriod = 4194304 / frameSequencerRate
)

// Frame is a single stereo sample. Each side is the sum of up to four
// 4-bit channel outputs, scaled by the master volume (1-8).
type Frame struct {
	Left, Right uint16
}

// MaxLevel is the largest value a Frame side can take.
const MaxLevel = 4 * 15 * 8

// Terminal receives every frame produced by the APU. Hosts decimate to
// their own device rate.
type Terminal interface {
	Output(f Frame)
}

type nullTerminal struct{}

func (nullTerminal) Output(Frame) {}

// readMasks holds the bits that always read as 1 for 0xFF10-0xFF26.
var readMasks = [0x17]uint8{
	0x80, 0x3F, 0x00, 0xFF, 0xBF, // NR10-NR14
	0xFF, 0x3F, 0x00, 0xFF, 0xBF, // unused, NR21-NR24
	0x7F, 0xFF, 0x9F, 0xFF, 0xBF, // NR30-NR34
	0xFF, 0xFF, 0x00, 0x00, 0xBF, // unused, NR41-NR44
	0x00, 0x00, 0x70, // NR50-NR52
}

// APU represents the Game Boy's audio processing unit.
//
// Channel 1 and 2 are both square channels. They can be used to play
// tones of different frequencies. Channel 3 is an arbitrary waveform
// channel that can be set in RAM. Channel 4 is a noise channel that
// can be used to play white noise.
type APU struct {
	enabled bool

	chan1 squareChannel
	chan2 squareChannel
	chan3 waveChannel
	chan4 noiseChannel

	frameSequencerCounter uint16
	frameSequencerStep    uint8

	// NR50/NR51
	volumeLeft, volumeRight uint8
	panning                 uint8

	registers [0x17]uint8

	terminal Terminal
}

// New returns an APU in the state left behind by the boot ROM.
func New() *APU {
	a := &APU{
		terminal: nullTerminal{},
	}
	a.reset()
	a.enabled = true

	for _, w := range []struct {
		addr  uint16
		value uint8
	}{
		{types.NR10, 0x80},
		{types.NR11, 0xBF},
		{types.NR12, 0xF3},
		{types.NR50, 0x77},
		{types.NR51, 0xF3},
	} {
		a.Write(w.addr, w.value)
	}
	// the boot chime leaves channel 1 on with its envelope run down
	a.chan1.enabled = true
	return a
}

// AttachTerminal sets the sink for produced frames.
func (a *APU) AttachTerminal(t Terminal) {
	if t == nil {
		t = nullTerminal{}
	}
	a.terminal = t
}

// reset clears every register except the length counters and wave RAM.
func (a *APU) reset() {
	l1, l2, l3, l4 := a.chan1.lengthCounter, a.chan2.lengthCounter, a.chan3.lengthCounter, a.chan4.lengthCounter
	wave := a.chan3.waveRAM

	a.chan1 = newSquareChannel(true)
	a.chan2 = newSquareChannel(false)
	a.chan3 = newWaveChannel()
	a.chan4 = newNoiseChannel()
	a.chan1.lengthCounter, a.chan2.lengthCounter, a.chan3.lengthCounter, a.chan4.lengthCounter = l1, l2, l3, l4
	a.chan3.waveRAM = wave

	a.volumeLeft, a.volumeRight, a.panning = 0, 0, 0
	a.registers = [0x17]uint8{}
	a.frameSequencerCounter = 0
	a.frameSequencerStep = 0
}

// Tick advances the APU by a single T-cycle.
func (a *APU) Tick() {
	if !a.enabled {
		return
	}

	if a.frameSequencerCounter++; a.frameSequencerCounter == frameSequencerPeriod {
		a.frameSequencerCounter = 0
		a.frameSequencerStep = (a.frameSequencerStep + 1) & 7
		a.clockSequencer()
	}

	a.chan1.step()
	a.chan2.step()
	a.chan3.step()
	a.chan4.step()
}

// TickM advances the APU by 1 M-cycle and sends a frame to the terminal.
func (a *APU) TickM() {
	for i := 0; i < 4; i++ {
		a.Tick()
	}
	a.terminal.Output(a.Sample())
}

// clockSequencer runs the 512 Hz frame sequencer step:
//
//	Step   Length Ctr  Vol Env     Sweep
//	0      Clock       -           -
//	2      Clock       -           Clock
//	4      Clock       -           -
//	6      Clock       -           Clock
//	7      -           Clock       -
func (a *APU) clockSequencer() {
	step := a.frameSequencerStep
	if step&1 == 0 {
		a.chan1.lengthStep()
		a.chan2.lengthStep()
		a.chan3.lengthStep()
		a.chan4.lengthStep()
	}
	if step == 2 || step == 6 {
		a.chan1.sweepClock()
	}
	if step == 7 {
		a.chan1.volumeStep()
		a.chan2.volumeStep()
		a.chan4.volumeStep()
	}
}

// Sample mixes the current channel outputs into a stereo frame.
func (a *APU) Sample() Frame {
	if !a.enabled {
		return Frame{}
	}

	outputs := [4]uint8{a.chan1.output(), a.chan2.output(), a.chan3.output(), a.chan4.output()}
	var f Frame
	for i, o := range outputs {
		if a.panning&(1<<(i+4)) != 0 {
			f.Left += uint16(o)
		}
		if a.panning&(1<<i) != 0 {
			f.Right += uint16(o)
		}
	}
	f.Left *= uint16(a.volumeLeft) + 1
	f.Right *= uint16(a.volumeRight) + 1
	return f
}

// Read returns the value of an APU register or wave RAM.
func (a *APU) Read(address uint16) uint8 {
	switch {
	case address >= types.WaveRAMStart && address <= types.WaveRAMEnd:
		return a.chan3.waveRAM[address-types.WaveRAMStart]
	case address == types.NR52:
		v := uint8(0x70)
		if a.enabled {
			v |= types.Bit7
		}
		for i, on := range []bool{a.chan1.enabled, a.chan2.enabled, a.chan3.enabled, a.chan4.enabled} {
			if on {
				v |= 1 << i
			}
		}
		return v
	case address >= types.NR10 && address < types.NR52:
		i := address - types.NR10
		return a.registers[i] | readMasks[i]
	}
	return 0xFF
}

// Write sets the value of an APU register or wave RAM. While powered
// off, only NR52, the length counters and wave RAM accept writes.
func (a *APU) Write(address uint16, value uint8) {
	switch {
	case address >= types.WaveRAMStart && address <= types.WaveRAMEnd:
		a.chan3.waveRAM[address-types.WaveRAMStart] = value
		return
	case address == types.NR52:
		a.writeNR52(value)
		return
	case address < types.NR10 || address > types.NR52:
		return
	}

	if !a.enabled {
		switch address {
		case types.NR11:
			a.chan1.lengthCounter = 64 - uint16(value&types.Mask0To5)
		case types.NR21:
			a.chan2.lengthCounter = 64 - uint16(value&types.Mask0To5)
		case types.NR31:
			a.chan3.setNR31(value)
		case types.NR41:
			a.chan4.setNR41(value)
		}
		return
	}

	a.registers[address-types.NR10] = value
	switch address {
	case types.NR10:
		a.chan1.setNR10(value)
	case types.NR11:
		a.chan1.setNRx1(value)
	case types.NR12:
		a.chan1.setNRx2(value)
	case types.NR13:
		a.chan1.setFrequencyLow(value)
	case types.NR14:
		a.chan1.setNRx4(value)
	case types.NR21:
		a.chan2.setNRx1(value)
	case types.NR22:
		a.chan2.setNRx2(value)
	case types.NR23:
		a.chan2.setFrequencyLow(value)
	case types.NR24:
		a.chan2.setNRx4(value)
	case types.NR30:
		a.chan3.setNR30(value)
	case types.NR31:
		a.chan3.setNR31(value)
	case types.NR32:
		a.chan3.setNR32(value)
	case types.NR33:
		a.chan3.setFrequencyLow(value)
	case types.NR34:
		a.chan3.setNR34(value)
	case types.NR41:
		a.chan4.setNR41(value)
	case types.NR42:
		a.chan4.setNRx2(value)
	case types.NR43:
		a.chan4.setNR43(value)
	case types.NR44:
		a.chan4.setNR44(value)
	case types.NR50:
		a.volumeLeft = (value >> 4) & types.Mask0To2
		a.volumeRight = value & types.Mask0To2
	case types.NR51:
		a.panning = value
	}
}

func (a *APU) writeNR52(value uint8) {
	on := value&types.Bit7 != 0
	switch {
	case a.enabled && !on:
		a.reset()
	case !a.enabled && on:
		a.frameSequencerCounter = 0
		a.frameSequencerStep = 0
	}
	a.enabled = on
}

// Enabled reports whether the APU is powered on.
func (a *APU) Enabled() bool {
	return a.enabled
}
