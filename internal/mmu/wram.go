package mmu

// WRAM is the 8kB of work RAM at 0xC000-0xDFFF, split into a fixed
// and a second bank. 0xE000-0xFDFF echoes it.
type WRAM struct {
	raw [2][0x1000]uint8
}

// NewWRAM returns zeroed work RAM.
func NewWRAM() *WRAM {
	return &WRAM{}
}

func (w *WRAM) bank(addr uint16) *[0x1000]uint8 {
	// bit 12 picks the bank for both 0xC000-0xDFFF and the echo
	return &w.raw[(addr>>12)&1]
}

// Read returns the value at addr, which may be in either the work RAM
// or its echo.
func (w *WRAM) Read(addr uint16) uint8 {
	return w.bank(addr)[addr&0xFFF]
}

// Write sets the value at addr, which may be in either the work RAM or
// its echo.
func (w *WRAM) Write(addr uint16, v uint8) {
	w.bank(addr)[addr&0xFFF] = v
}
