package tests

import (
	"image/png"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/thelolagemann/dmgcore/internal/ppu"
)

// imageTest compares the screen after a number of frames with a
// reference screenshot. Reference images use the greyscale shades
// 0xFF, 0xAA, 0x55, 0x00, compared by their red component.
type imageTest struct {
	romPath       string
	expectedImage string
	frames        int
}

func (i *imageTest) Name() string {
	return filepath.Base(i.romPath)
}

func (i *imageTest) Run(t *testing.T) {
	g := load(t, i.romPath)
	f, err := os.Open(filepath.Join(romDir(), i.expectedImage))
	if os.IsNotExist(err) {
		t.Skipf("%s not found", i.expectedImage)
	}
	require.NoError(t, err)
	defer f.Close()
	expected, err := png.Decode(f)
	require.NoError(t, err)

	g.runUntil(i.frames, func() bool { return false })
	frame := g.screen.Frame()

	mismatched := 0
	for y := 0; y < ppu.ScreenHeight; y++ {
		for x := 0; x < ppu.ScreenWidth; x++ {
			r, _, _, _ := expected.At(x, y).RGBA()
			want := ppu.Colour(3 - (r>>8)/0x55)
			if frame[y*ppu.ScreenWidth+x] != want {
				mismatched++
			}
		}
	}
	assert.Zero(t, mismatched, "pixels differing from %s", i.expectedImage)
}

func TestAcid2(t *testing.T) {
	runSuite(t, []romTest{
		&imageTest{
			romPath:       "dmg-acid2/dmg-acid2.gb",
			expectedImage: "dmg-acid2/dmg-acid2-dmg.png",
			frames:        60,
		},
	})
}
