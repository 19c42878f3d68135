// Package audio adapts the APU's per M-cycle output to host sample
// rates, and records it for inspection.
package audio

import (
	"github.com/thelolagemann/dmgcore/internal/apu"
)

// Decimator forwards the frame nearest to each output sample
// period, dropping the rest, to bring the APU's rate down to
// that of a host device.
type Decimator struct {
	out  apu.Terminal
	rate int // output sample rate
	acc  int
}

// NewDecimator returns a Decimator forwarding to out at rate samples
// per second. rate must not exceed apu.SampleRate.
func NewDecimator(out apu.Terminal, rate int) *Decimator {
	if rate <= 0 || rate > apu.SampleRate {
		rate = apu.SampleRate
	}
	return &Decimator{out: out, rate: rate}
}

// Output implements apu.Terminal.
func (d *Decimator) Output(f apu.Frame) {
	// Bresenham style accumulator, so rates that don't divide the
	// APU rate still average out
	if d.acc += d.rate; d.acc >= apu.SampleRate {
		d.acc -= apu.SampleRate
		d.out.Output(f)
	}
}
