package audio

import (
	"gonum.org/v1/plot"
	"gonum.org/v1/plot/plotter"
	"gonum.org/v1/plot/plotutil"
	"gonum.org/v1/plot/vg"
)

// PlotWaveform draws the first n recorded frames of both channels to
// path. The image format follows the file extension.
func PlotWaveform(w *WAVRecorder, n int, path string) error {
	left, right := w.Channels()
	if n <= 0 || n > len(left) {
		n = len(left)
	}

	p := plot.New()
	p.Title.Text = "Waveform"
	p.X.Label.Text = "Sample"
	p.Y.Label.Text = "Amplitude"
	p.Y.Min, p.Y.Max = -32768, 32767

	if err := plotutil.AddLines(p,
		"Left", points(left[:n]),
		"Right", points(right[:n]),
	); err != nil {
		return err
	}

	return p.Save(10*vg.Inch, 4*vg.Inch, path)
}

func points(samples []int) plotter.XYs {
	xys := make(plotter.XYs, len(samples))
	for i, s := range samples {
		xys[i].X = float64(i)
		xys[i].Y = float64(s)
	}
	return xys
}
