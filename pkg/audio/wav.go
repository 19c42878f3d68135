package audio

import (
	"io"
	"os"

	"github.com/go-audio/audio"
	"github.com/go-audio/wav"

	"github.com/thelolagemann/dmgcore/internal/apu"
)

const bitDepth = 16

// WAVRecorder buffers every frame it is given, to be written out as
// 16-bit stereo PCM once emulation is done.
type WAVRecorder struct {
	Rate    int
	samples []int // interleaved left, right
}

// NewWAVRecorder returns a recorder for frames arriving at rate.
func NewWAVRecorder(rate int) *WAVRecorder {
	return &WAVRecorder{Rate: rate}
}

// Output implements apu.Terminal.
func (w *WAVRecorder) Output(f apu.Frame) {
	w.samples = append(w.samples, pcm(f.Left), pcm(f.Right))
}

// pcm centres a mixer level on zero and scales it to 16 bits.
func pcm(level uint16) int {
	return int(level)*2*32767/apu.MaxLevel - 32767
}

// Len returns the number of frames recorded.
func (w *WAVRecorder) Len() int {
	return len(w.samples) / 2
}

// Channels returns the recorded left and right samples.
func (w *WAVRecorder) Channels() (left, right []int) {
	left = make([]int, w.Len())
	right = make([]int, w.Len())
	for i := range left {
		left[i] = w.samples[2*i]
		right[i] = w.samples[2*i+1]
	}
	return left, right
}

// Encode writes the recording to out as a WAV file.
func (w *WAVRecorder) Encode(out io.WriteSeeker) error {
	enc := wav.NewEncoder(out, w.Rate, bitDepth, 2, 1)
	buf := &audio.IntBuffer{
		Format:         &audio.Format{NumChannels: 2, SampleRate: w.Rate},
		Data:           w.samples,
		SourceBitDepth: bitDepth,
	}
	if err := enc.Write(buf); err != nil {
		return err
	}
	return enc.Close()
}

// WriteFile writes the recording to the named WAV file.
func (w *WAVRecorder) WriteFile(path string) error {
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	if err := w.Encode(f); err != nil {
		f.Close()
		return err
	}
	return f.Close()
}
