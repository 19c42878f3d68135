package types

// Single bit masks, used when testing register fields.
const (
	Bit0 = 1 << iota // 0b0000_0001
	Bit1             // 0b0000_0010
	Bit2             // 0b0000_0100
	Bit3             // 0b0000_1000
	Bit4             // 0b0001_0000
	Bit5             // 0b0010_0000
	Bit6             // 0b0100_0000
	Bit7             // 0b1000_0000
)

// Mask0To4 and friends select multi-bit register fields.
const (
	Mask0To2 = Bit0 | Bit1 | Bit2
	Mask0To3 = Mask0To2 | Bit3
	Mask0To4 = Mask0To3 | Bit4
	Mask0To5 = Mask0To4 | Bit5
)
