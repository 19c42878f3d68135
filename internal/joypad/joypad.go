// Package joypad provides an implementation of the Game Boy
// joypad. The joypad is used to read the state of the buttons
// and the direction keys.
package joypad

import (
	"github.com/thelolagemann/dmgcore/internal/interrupts"
	"github.com/thelolagemann/dmgcore/internal/types"
	"github.com/thelolagemann/dmgcore/pkg/bits"
)

// Button represents a physical button on the Game Boy.
type Button = uint8

const (
	ButtonA Button = iota
	ButtonB
	ButtonSelect
	ButtonStart
	ButtonRight
	ButtonLeft
	ButtonUp
	ButtonDown
)

// ButtonState is a snapshot of every button, true meaning pressed.
type ButtonState struct {
	Up, Down, Left, Right bool
	A, B, Start, Select   bool
}

// mask packs s into the same layout as State.pressed.
func (s ButtonState) mask() uint8 {
	var m uint8
	for i, p := range [8]bool{s.A, s.B, s.Select, s.Start, s.Right, s.Left, s.Up, s.Down} {
		if p {
			m = bits.Set(m, uint8(i))
		}
	}
	return m
}

// State represents the state of the joypad. Select either
// action or direction buttons by writing to the register,
// and then read out bits 0-3 to get the state of the buttons.
//
//	Bit 7 - Not used
//	Bit 6 - Not used
//	Bit 5 - P15 Select Button Keys      (0=Select)
//	Bit 4 - P14 Select Direction Keys   (0=Select)
//	Bit 3 - P13 Input Down  or Start    (0=Pressed) (Read Only)
//	Bit 2 - P12 Input Up    or Select   (0=Pressed) (Read Only)
//	Bit 1 - P11 Input Left  or Button B (0=Pressed) (Read Only)
//	Bit 0 - P10 Input Right or Button A (0=Pressed) (Read Only)
type State struct {
	// pressed holds the action buttons in the lower 4 bits and the
	// directions in the upper 4 bits. A 1 means the button is held.
	pressed uint8
	// selected holds bits 4-5 as last written.
	selected uint8

	irq *interrupts.Service
}

// New returns a new joypad state with nothing selected.
func New(irq *interrupts.Service) *State {
	return &State{
		selected: types.Bit4 | types.Bit5,
		irq:      irq,
	}
}

// lines returns the four input lines, 0 for pressed.
func (s *State) lines() uint8 {
	var d uint8
	if s.selected&types.Bit4 == 0 {
		d |= s.pressed >> 4
	}
	if s.selected&types.Bit5 == 0 {
		d |= s.pressed & types.Mask0To3
	}
	return ^d & types.Mask0To3
}

// update applies f and requests an interrupt if any input line fell.
func (s *State) update(f func()) {
	before := s.lines()
	f()
	if before&^s.lines() != 0 {
		s.irq.Request(interrupts.JoypadFlag)
	}
}

// Read returns the value of types.P1.
func (s *State) Read() uint8 {
	return 0xC0 | s.selected | s.lines()
}

// Write selects the action and/or direction column.
func (s *State) Write(v uint8) {
	s.update(func() {
		s.selected = v & (types.Bit4 | types.Bit5)
	})
}

// Set replaces the state of every button at once.
func (s *State) Set(state ButtonState) {
	s.update(func() {
		s.pressed = state.mask()
	})
}

// Press presses a button.
func (s *State) Press(button Button) {
	s.update(func() {
		s.pressed = bits.Set(s.pressed, button)
	})
}

// Release releases a button.
func (s *State) Release(button Button) {
	s.pressed = bits.Reset(s.pressed, button)
}

// Pressed reports whether any button is held.
func (s *State) Pressed() bool {
	return s.pressed != 0
}
