// Package tests runs the community test ROMs against the emulator.
// The ROMs are not distributed with the source; point GOBOY_TEST_ROMS
// at a directory laid out as
//
//	blargg/cpu_instrs/individual/*.gb
//	blargg/instr_timing/instr_timing.gb
//	mooneye/acceptance/{timer,bits,...}/*.gb
//	dmg-acid2/dmg-acid2.gb, dmg-acid2/dmg-acid2-dmg.png
//
// and every test without its ROM is skipped.
package tests

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/thelolagemann/dmgcore/internal/gameboy"
	"github.com/thelolagemann/dmgcore/internal/serial/accessories"
	"github.com/thelolagemann/dmgcore/pkg/display"
)

// romDir returns the root of the test ROMs.
func romDir() string {
	if dir := os.Getenv("GOBOY_TEST_ROMS"); dir != "" {
		return dir
	}
	return "roms"
}

// romTest is a single test ROM.
type romTest interface {
	Name() string
	Run(t *testing.T)
}

// machine is a GameBoy wired up to observe a test ROM.
type machine struct {
	*gameboy.GameBoy
	serial *accessories.Capture
	screen *display.FrameBuffer
}

// load loads the ROM at path, relative to romDir, skipping the test
// if it isn't there.
func load(t *testing.T, path string) *machine {
	t.Helper()
	rom, err := os.ReadFile(filepath.Join(romDir(), path))
	if os.IsNotExist(err) {
		t.Skipf("%s not found", path)
	}
	require.NoError(t, err)

	m := &machine{
		serial: accessories.NewCapture(nil),
		screen: display.NewFrameBuffer(),
	}
	m.GameBoy, err = gameboy.New(rom,
		gameboy.WithSerialLink(m.serial),
		gameboy.WithRenderer(m.screen),
		gameboy.NoAudio(),
	)
	require.NoError(t, err)
	return m
}

// runUntil runs whole frames until done reports true, or the frame
// limit is reached. It reports whether done was satisfied.
func (m *machine) runUntil(frames int, done func() bool) bool {
	for i := 0; i < frames; i++ {
		m.Frame()
		if done() {
			return true
		}
	}
	return false
}

// runSuite runs each test as a subtest.
func runSuite(t *testing.T, tests []romTest) {
	for _, test := range tests {
		t.Run(test.Name(), test.Run)
	}
}
