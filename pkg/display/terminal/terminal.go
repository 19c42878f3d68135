// Package terminal draws frames in a terminal, two pixels per cell
// using the upper half block.
package terminal

import (
	"fmt"
	"sync"

	"github.com/gdamore/tcell/v2"

	"github.com/thelolagemann/dmgcore/internal/ppu"
	"github.com/thelolagemann/dmgcore/pkg/display"
)

const halfBlock = '▀'

// Screen is a terminal showing the emulator output.
type Screen struct {
	screen  tcell.Screen
	palette [4]tcell.Color

	quit     chan struct{}
	quitOnce sync.Once
}

// New initialises the terminal.
func New(p display.Palette) (*Screen, error) {
	screen, err := tcell.NewScreen()
	if err != nil {
		return nil, fmt.Errorf("failed to initialize terminal: %w", err)
	}
	return NewWithScreen(screen, p)
}

// NewWithScreen wraps an existing tcell screen, initialising it.
func NewWithScreen(screen tcell.Screen, p display.Palette) (*Screen, error) {
	if err := screen.Init(); err != nil {
		return nil, fmt.Errorf("failed to initialize terminal: %w", err)
	}
	s := &Screen{
		screen: screen,
		quit:   make(chan struct{}),
	}
	for i, c := range p {
		s.palette[i] = tcell.NewRGBColor(int32(c.R), int32(c.G), int32(c.B))
	}
	screen.SetStyle(tcell.StyleDefault.Background(tcell.ColorBlack).Foreground(tcell.ColorWhite))
	screen.Clear()

	go s.handleEvents()
	return s, nil
}

// handleEvents watches for the window being resized or the user asking
// to quit. Game input is left to the host.
func (s *Screen) handleEvents() {
	for {
		switch ev := s.screen.PollEvent().(type) {
		case nil:
			// screen finalised
			return
		case *tcell.EventResize:
			s.screen.Sync()
		case *tcell.EventKey:
			if ev.Key() == tcell.KeyEscape || ev.Key() == tcell.KeyCtrlC || ev.Rune() == 'q' {
				s.quitOnce.Do(func() { close(s.quit) })
			}
		}
	}
}

// Quit is closed once the user asks to quit.
func (s *Screen) Quit() <-chan struct{} {
	return s.quit
}

// Draw shows frame on the terminal.
func (s *Screen) Draw(frame *display.Frame) {
	for y := 0; y < ppu.ScreenHeight; y += 2 {
		for x := 0; x < ppu.ScreenWidth; x++ {
			top := frame[y*ppu.ScreenWidth+x]
			bottom := frame[(y+1)*ppu.ScreenWidth+x]
			style := tcell.StyleDefault.
				Foreground(s.palette[top&3]).
				Background(s.palette[bottom&3])
			s.screen.SetContent(x, y/2, halfBlock, nil, style)
		}
	}
	s.screen.Show()
}

// Close restores the terminal.
func (s *Screen) Close() {
	s.screen.Fini()
}
