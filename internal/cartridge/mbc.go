package cartridge

import "time"

// MemoryBankController maps the cartridge address space onto ROM and
// RAM banks. ROM addresses are 0x0000-0x7FFF and RAM addresses are
// offsets into the 0xA000-0xBFFF window (0x0000-0x1FFF).
type MemoryBankController interface {
	ReadROM(address uint16) uint8
	WriteROM(address uint16, value uint8)
	ReadRAM(address uint16) uint8
	WriteRAM(address uint16, value uint8)
	// RAM returns the external RAM backing store, nil when there is none.
	RAM() []byte
}

// Clock is the wall clock used by the MBC3 real time clock.
type Clock func() time.Time

// banks is a view of a byte slice as fixed size banks, where the bank
// number is masked to the next power of two of the bank count.
type banks struct {
	data []byte
	size int
	mask int
}

func newBanks(data []byte, size int) banks {
	n := (len(data) + size - 1) / size
	return banks{data: data, size: size, mask: bankMask(n)}
}

// bankMask returns the next power of two at or above n, minus one.
func bankMask(n int) int {
	p := 1
	for p < n {
		p <<= 1
	}
	return p - 1
}

func (b banks) offset(bank int, address uint16) int {
	return (bank&b.mask)*b.size + int(address)%b.size
}

// read returns 0xFF for offsets beyond the backing slice.
func (b banks) read(bank int, address uint16) uint8 {
	o := b.offset(bank, address)
	if o >= len(b.data) {
		return 0xFF
	}
	return b.data[o]
}

func (b banks) write(bank int, address uint16, value uint8) {
	o := b.offset(bank, address)
	if o < len(b.data) {
		b.data[o] = value
	}
}
