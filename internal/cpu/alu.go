package cpu

import (
	"github.com/thelolagemann/dmgcore/internal/types"
)

// The flag lines below list Z N H C in order: a letter for a flag
// computed from the result, 0 or 1 for a fixed value and - for a
// flag left untouched.

// and sets A to A & n.
//
//	AND n    Z 0 1 0
func (c *CPU) and(n uint8) {
	c.A &= n
	c.setFlags(c.A == 0, false, true, false)
}

// or sets A to A | n.
//
//	OR n     Z 0 0 0
func (c *CPU) or(n uint8) {
	c.A |= n
	c.setFlags(c.A == 0, false, false, false)
}

// xor sets A to A ^ n.
//
//	XOR n    Z 0 0 0
func (c *CPU) xor(n uint8) {
	c.A ^= n
	c.setFlags(c.A == 0, false, false, false)
}

// compare subtracts n from A for the flags only.
//
//	CP n     Z 1 H C
func (c *CPU) compare(n uint8) {
	a := c.A
	c.sub(n, false)
	c.A = a
}

// add sets A to A + n, plus the carry flag for ADC.
//
//	ADD A, n Z 0 H C
//	ADC A, n Z 0 H C
func (c *CPU) add(n uint8, withCarry bool) {
	var carryIn uint8
	if withCarry && c.isFlagSet(FlagCarry) {
		carryIn = 1
	}

	wide := uint16(c.A) + uint16(n) + uint16(carryIn)
	half := c.A&0x0F + n&0x0F + carryIn
	c.A = uint8(wide)
	c.setFlags(c.A == 0, false, half > 0x0F, wide > 0xFF)
}

// sub sets A to A - n, less the carry flag for SBC.
//
//	SUB A, n Z 1 H C
//	SBC A, n Z 1 H C
func (c *CPU) sub(n uint8, withCarry bool) {
	var borrowIn int
	if withCarry && c.isFlagSet(FlagCarry) {
		borrowIn = 1
	}

	wide := int(c.A) - int(n) - borrowIn
	half := int(c.A&0x0F) - int(n&0x0F) - borrowIn
	c.A = uint8(wide)
	c.setFlags(c.A == 0, true, half < 0, wide < 0)
}

// increment returns n + 1.
//
//	INC r    Z 0 H -
func (c *CPU) increment(n uint8) uint8 {
	c.setFlags(n == 0xFF, false, n&0x0F == 0x0F, c.isFlagSet(FlagCarry))
	return n + 1
}

// decrement returns n - 1.
//
//	DEC r    Z 1 H -
func (c *CPU) decrement(n uint8) uint8 {
	c.setFlags(n == 0x01, true, n&0x0F == 0x00, c.isFlagSet(FlagCarry))
	return n - 1
}

// addUint16 returns a + b, with the carries taken from bits 11 and 15.
//
//	ADD HL, rr - 0 H C
func (c *CPU) addUint16(a, b uint16) uint16 {
	c.setFlags(
		c.isFlagSet(FlagZero),
		false,
		a&0x0FFF+b&0x0FFF > 0x0FFF,
		uint32(a)+uint32(b) > 0xFFFF,
	)
	return a + b
}

// addSPSigned reads a signed immediate and returns it added to SP. The
// carries come from the unsigned addition of the low bytes.
//
//	ADD SP, e    0 0 H C
//	LD HL, SP+e  0 0 H C
func (c *CPU) addSPSigned() uint16 {
	e := c.readOperand()
	low := uint8(c.SP)
	c.setFlags(false, false, low&0x0F+e&0x0F > 0x0F, uint16(low)+uint16(e) > 0xFF)
	return c.SP + uint16(int8(e))
}

// decimalAdjust corrects A to packed BCD after an addition or
// subtraction of two BCD values, using N and H to tell which.
//
//	DAA      Z - 0 C
func (c *CPU) decimalAdjust() {
	subtract := c.isFlagSet(FlagSubtract)
	carry := c.isFlagSet(FlagCarry)

	var adjust uint8
	if c.isFlagSet(FlagHalfCarry) || (!subtract && c.A&0x0F > 0x09) {
		adjust = 0x06
	}
	if carry || (!subtract && c.A > 0x99) {
		adjust |= 0x60
		carry = true
	}

	if subtract {
		c.A -= adjust
	} else {
		c.A += adjust
	}
	c.setFlags(c.A == 0, subtract, false, carry)
}

// swap exchanges the nibbles of n.
//
//	SWAP r   Z 0 0 0
func (c *CPU) swap(n uint8) uint8 {
	c.setFlags(n == 0, false, false, false)
	return n>>4 | n<<4
}

// testBit sets Z if the bit selected by mask is clear in n.
//
//	BIT b, r Z 0 1 -
func (c *CPU) testBit(n, mask uint8) {
	c.setFlags(n&mask == 0, false, true, c.isFlagSet(FlagCarry))
}

// shiftResult sets the flags common to every rotate and shift, which
// only differ in the result and the bit moved out into C.
func (c *CPU) shiftResult(result uint8, out bool) uint8 {
	c.setFlags(result == 0, false, false, out)
	return result
}

// rotateLeftCarry rotates n left, bit 7 going to both C and bit 0.
//
//	RLC r    Z 0 0 C
func (c *CPU) rotateLeftCarry(n uint8) uint8 {
	return c.shiftResult(n<<1|n>>7, n&types.Bit7 != 0)
}

// rotateRightCarry rotates n right, bit 0 going to both C and bit 7.
//
//	RRC r    Z 0 0 C
func (c *CPU) rotateRightCarry(n uint8) uint8 {
	return c.shiftResult(n>>1|n<<7, n&types.Bit0 != 0)
}

// rotateLeftThroughCarry rotates n left through C, as a 9-bit value.
//
//	RL r     Z 0 0 C
func (c *CPU) rotateLeftThroughCarry(n uint8) uint8 {
	result := n << 1
	if c.isFlagSet(FlagCarry) {
		result |= types.Bit0
	}
	return c.shiftResult(result, n&types.Bit7 != 0)
}

// rotateRightThroughCarry rotates n right through C, as a 9-bit value.
//
//	RR r     Z 0 0 C
func (c *CPU) rotateRightThroughCarry(n uint8) uint8 {
	result := n >> 1
	if c.isFlagSet(FlagCarry) {
		result |= types.Bit7
	}
	return c.shiftResult(result, n&types.Bit0 != 0)
}

// shiftLeftArithmetic shifts n left, filling bit 0 with 0.
//
//	SLA r    Z 0 0 C
func (c *CPU) shiftLeftArithmetic(n uint8) uint8 {
	return c.shiftResult(n<<1, n&types.Bit7 != 0)
}

// shiftRightArithmetic shifts n right, keeping the sign in bit 7.
//
//	SRA r    Z 0 0 C
func (c *CPU) shiftRightArithmetic(n uint8) uint8 {
	return c.shiftResult(uint8(int8(n)>>1), n&types.Bit0 != 0)
}

// shiftRightLogical shifts n right, filling bit 7 with 0.
//
//	SRL r    Z 0 0 C
func (c *CPU) shiftRightLogical(n uint8) uint8 {
	return c.shiftResult(n>>1, n&types.Bit0 != 0)
}
