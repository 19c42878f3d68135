package bits

// Val returns the value of the bit at the given index.
func Val(b uint8, i uint8) uint8 {
	return (b >> i) & 1
}

// Reset resets the bit at the given index.
func Reset(b, i uint8) uint8 {
	return b &^ (1 << i)
}

// Set sets the bit at the given index.
func Set(b, i uint8) uint8 {
	return b | (1 << i)
}

// Test tests the bit at the given index.
func Test(b, i uint8) bool {
	return (b>>i)&1 != 0
}

// Combine returns the 16-bit value formed by the high and low bytes.
func Combine(high, low uint8) uint16 {
	return uint16(high)<<8 | uint16(low)
}

// High returns the upper byte of v.
func High(v uint16) uint8 {
	return uint8(v >> 8)
}

// Low returns the lower byte of v.
func Low(v uint16) uint8 {
	return uint8(v)
}

// String decodes b as ASCII, stopping at the first NUL byte. Bytes
// outside the printable range are dropped.
func String(b []byte) string {
	out := make([]byte, 0, len(b))
	for _, c := range b {
		if c == 0 {
			break
		}
		if c >= 0x20 && c < 0x7F {
			out = append(out, c)
		}
	}
	return string(out)
}

// Bytes encodes s into exactly n bytes, truncating or padding with NUL.
func Bytes(s string, n int) []byte {
	out := make([]byte, n)
	copy(out, s)
	return out
}
