package display

import (
	"image/png"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/thelolagemann/dmgcore/internal/ppu"
)

// fill renders a full frame where each pixel's shade is picked by fn.
func fill(f *FrameBuffer, fn func(x, y int) ppu.Colour) {
	for y := 0; y < ppu.ScreenHeight; y++ {
		for x := 0; x < ppu.ScreenWidth; x++ {
			f.Render(x, y, fn(x, y))
		}
	}
}

func TestFrameBuffer(t *testing.T) {
	f := NewFrameBuffer()
	stripes := func(x, _ int) ppu.Colour { return ppu.Colour(x % 4) }

	t.Run("partial frame hidden", func(t *testing.T) {
		f.Render(0, 0, ppu.Black)
		assert.Equal(t, ppu.White, f.Frame()[0])
		assert.Zero(t, f.Frames())
	})
	t.Run("complete frame", func(t *testing.T) {
		fill(f, stripes)
		frame := f.Frame()
		assert.Equal(t, uint64(1), f.Frames())
		assert.Equal(t, ppu.White, frame[0])
		assert.Equal(t, ppu.Black, frame[3])
		assert.Equal(t, ppu.LightGrey, frame[ppu.ScreenWidth+1])
	})
	t.Run("hash", func(t *testing.T) {
		h := f.Hash()
		fill(f, stripes)
		assert.Equal(t, h, f.Hash())
		fill(f, func(int, int) ppu.Colour { return ppu.DarkGrey })
		assert.NotEqual(t, h, f.Hash())
	})
}

func TestImage(t *testing.T) {
	f := NewFrameBuffer()
	f.Palette = Palettes[Green]
	fill(f, func(x, y int) ppu.Colour {
		if x == 10 && y == 20 {
			return ppu.Black
		}
		return ppu.White
	})

	img := f.Image()
	assert.Equal(t, Palettes[Green][3], img.RGBAAt(10, 20))
	assert.Equal(t, Palettes[Green][0], img.RGBAAt(0, 0))

	scaled := f.Scaled(3)
	assert.Equal(t, ppu.ScreenWidth*3, scaled.Bounds().Dx())
	for dy := 0; dy < 3; dy++ {
		for dx := 0; dx < 3; dx++ {
			assert.Equal(t, Palettes[Green][3], scaled.RGBAAt(30+dx, 60+dy))
		}
	}
	assert.Equal(t, Palettes[Green][0], scaled.RGBAAt(33, 60))

	t.Run("png", func(t *testing.T) {
		path := filepath.Join(t.TempDir(), "frame.png")
		require.NoError(t, f.WritePNG(path, 2))

		r, err := os.Open(path)
		require.NoError(t, err)
		defer r.Close()
		decoded, err := png.Decode(r)
		require.NoError(t, err)
		assert.Equal(t, ppu.ScreenWidth*2, decoded.Bounds().Dx())
		assert.Equal(t, ppu.ScreenHeight*2, decoded.Bounds().Dy())
	})
}

func TestPaletteByName(t *testing.T) {
	p, err := PaletteByName("GREEN")
	require.NoError(t, err)
	assert.Equal(t, Palettes[Green], p)

	_, err = PaletteByName("purple")
	assert.Error(t, err)
}
