// Package ram provides a fixed size block of byte addressable memory.
package ram

// RAM is a block of memory addressed from 0. Addresses past the end
// of the block wrap around.
type RAM struct {
	data []uint8
	mask uint16
}

// NewRAM returns a new zeroed RAM of size bytes. size must be a
// power of two.
func NewRAM(size uint32) *RAM {
	return &RAM{
		data: make([]uint8, size),
		mask: uint16(size - 1),
	}
}

// Read returns the value at the given address.
func (r *RAM) Read(address uint16) uint8 {
	return r.data[address&r.mask]
}

// Write writes the value to the given address.
func (r *RAM) Write(address uint16, value uint8) {
	r.data[address&r.mask] = value
}

// Len returns the size of the block in bytes.
func (r *RAM) Len() int {
	return len(r.data)
}
