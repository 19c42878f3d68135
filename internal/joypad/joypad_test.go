package joypad

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/thelolagemann/dmgcore/internal/interrupts"
)

func TestRead(t *testing.T) {
	tests := []struct {
		name  string
		state ButtonState
		p1    uint8
		want  uint8
	}{
		{"nothing selected", ButtonState{A: true, Down: true}, 0x30, 0xFF},
		{"directions", ButtonState{Down: true, Right: true}, 0x20, 0xE6},
		{"actions", ButtonState{Start: true, B: true}, 0x10, 0xD5},
		{"both columns", ButtonState{A: true, Left: true}, 0x00, 0xCC},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s := New(interrupts.NewService())
			s.Set(tt.state)
			s.Write(tt.p1)
			assert.Equal(t, tt.want, s.Read())
		})
	}
}

func TestPressInterrupt(t *testing.T) {
	irq := interrupts.NewService()
	s := New(irq)
	s.Write(0x20)

	// action buttons are not selected
	s.Press(ButtonA)
	assert.Zero(t, irq.Flag)

	s.Set(ButtonState{Down: true})
	assert.Equal(t, uint8(0xE7), s.Read())
	assert.Equal(t, interrupts.JoypadFlag, irq.Flag)

	irq.Flag = 0
	s.Release(ButtonDown)
	assert.Zero(t, irq.Flag)
	assert.Equal(t, uint8(0xEF), s.Read())
}

func TestSelectInterrupt(t *testing.T) {
	irq := interrupts.NewService()
	s := New(irq)
	s.Press(ButtonStart)
	assert.Zero(t, irq.Flag)

	// selecting a column with a held button pulls its line low
	s.Write(0x10)
	assert.Equal(t, interrupts.JoypadFlag, irq.Flag)
	assert.True(t, s.Pressed())
}
