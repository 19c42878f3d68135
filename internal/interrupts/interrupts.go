package interrupts

import (
	"github.com/thelolagemann/dmgcore/internal/types"
)

const (
	// VBlankFlag is requested every time the PPU enters VBlank.
	VBlankFlag uint8 = types.Bit0
	// LCDFlag is requested on a rising edge of the STAT line.
	LCDFlag uint8 = types.Bit1
	// TimerFlag is requested when TIMA is reloaded after an overflow.
	TimerFlag uint8 = types.Bit2
	// SerialFlag is requested when a serial transfer completes.
	SerialFlag uint8 = types.Bit3
	// JoypadFlag is requested when any of P1 bits 0-3 go from
	// high to low while their column is selected.
	JoypadFlag uint8 = types.Bit4
)

// Service holds the interrupt request (IF) and enable (IE)
// registers. The master enable (IME) lives in the CPU, as it
// is not memory mapped.
type Service struct {
	Flag   uint8 // interrupt Flag (types.IF)
	Enable uint8 // interrupt Enable (types.IE)
}

// NewService returns a new Service.
func NewService() *Service {
	return &Service{}
}

// ReadFlag returns IF with the unused upper bits set.
func (s *Service) ReadFlag() uint8 {
	return s.Flag | 0xE0
}

// WriteFlag stores the lower 5 bits of v into IF.
func (s *Service) WriteFlag(v uint8) {
	s.Flag = v & types.Mask0To4
}

// HasInterrupts returns true if there are any interrupts
// that are requested and enabled.
func (s *Service) HasInterrupts() bool {
	return s.Enable&s.Flag&types.Mask0To4 != 0
}

// Request requests the specified interrupt, by setting
// the corresponding bit in the Flag register.
func (s *Service) Request(flag uint8) {
	s.Flag |= flag
}

// Vector returns the vector of the highest priority pending
// interrupt and clears its request bit, or 0 if nothing is
// pending.
func (s *Service) Vector() uint16 {
	for i := uint8(0); i < 5; i++ {
		flag := uint8(1 << i)
		if s.Flag&flag != 0 && s.Enable&flag != 0 {
			s.Flag &^= flag
			return uint16(0x0040 + i*8)
		}
	}

	return 0
}
