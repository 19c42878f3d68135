package cpu

import (
	"fmt"
)

// Instruction is a decoded opcode: its mnemonic and the operation
// that executes it, ticking the bus for every cycle it takes.
type Instruction struct {
	name string
	fn   func(*CPU)
}

// Name returns the mnemonic of the instruction.
func (i Instruction) Name() string {
	return i.name
}

var (
	// InstructionSet holds the unprefixed opcodes.
	InstructionSet [256]Instruction
	// InstructionSetCB holds the opcodes following the 0xCB prefix.
	InstructionSetCB [256]Instruction
)

// DefineInstruction defines the instruction for the given opcode in the
// InstructionSet.
func DefineInstruction(opcode uint8, name string, fn func(*CPU)) {
	InstructionSet[opcode] = Instruction{name: name, fn: fn}
}

// DefineInstructionCB defines the instruction for the given opcode in
// the InstructionSetCB.
func DefineInstructionCB(opcode uint8, name string, fn func(*CPU)) {
	InstructionSetCB[opcode] = Instruction{name: name, fn: fn}
}

var disallowedOpcodes = []uint8{
	0xD3, 0xDB, 0xDD, 0xE3, 0xE4, 0xEB, 0xEC, 0xED, 0xF4, 0xFC, 0xFD,
}

// alu operations in the order of opcode bits 3-5 of 0x80-0xBF.
var aluOperations = [8]struct {
	name string
	fn   func(c *CPU, n uint8)
}{
	{"ADD", func(c *CPU, n uint8) { c.add(n, false) }},
	{"ADC", func(c *CPU, n uint8) { c.add(n, true) }},
	{"SUB", func(c *CPU, n uint8) { c.sub(n, false) }},
	{"SBC", func(c *CPU, n uint8) { c.sub(n, true) }},
	{"AND", (*CPU).and},
	{"XOR", (*CPU).xor},
	{"OR", (*CPU).or},
	{"CP", (*CPU).compare},
}

// cb operations in the order of opcode bits 3-5 of 0x00-0x3F.
var cbOperations = [8]struct {
	name string
	fn   func(c *CPU, n uint8) uint8
}{
	{"RLC", (*CPU).rotateLeftCarry},
	{"RRC", (*CPU).rotateRightCarry},
	{"RL", (*CPU).rotateLeftThroughCarry},
	{"RR", (*CPU).rotateRightThroughCarry},
	{"SLA", (*CPU).shiftLeftArithmetic},
	{"SRA", (*CPU).shiftRightArithmetic},
	{"SWAP", (*CPU).swap},
	{"SRL", (*CPU).shiftRightLogical},
}

func init() {
	generateLoadInstructions()
	generateALUInstructions()
	generate16BitInstructions()
	generateJumpInstructions()
	generateControlInstructions()
	generateCBInstructions()

	for _, opcode := range disallowedOpcodes {
		opcode := opcode
		DefineInstruction(opcode, "disallowed", func(c *CPU) { c.illegalOpcode(opcode) })
	}
}

func generateLoadInstructions() {
	// 0x40 - 0x7F - LD r, r' (0x76 is HALT)
	for i := uint8(0x40); i < 0x80; i++ {
		if i == 0x76 {
			continue
		}
		dst, src := operand8(i>>3&7), operand8(i&7)
		DefineInstruction(i, fmt.Sprintf("LD %s, %s", dst, src), func(c *CPU) {
			c.set8(dst, c.get8(src))
		})
	}

	// 0x06 - 0x3E - LD r, n
	for j := uint8(0); j < 8; j++ {
		dst := operand8(j)
		DefineInstruction(0x06+j<<3, fmt.Sprintf("LD %s, n", dst), func(c *CPU) {
			c.set8(dst, c.readOperand())
		})
	}

	// indirect loads to and from A
	for _, l := range []struct {
		store, load uint8
		operand     operand8
	}{
		{0x02, 0x0A, indBC},
		{0x12, 0x1A, indDE},
		{0x22, 0x2A, indHLI},
		{0x32, 0x3A, indHLD},
		{0xE0, 0xF0, indHigh},
		{0xE2, 0xF2, indHighC},
		{0xEA, 0xFA, indAbs},
	} {
		operand := l.operand
		DefineInstruction(l.store, fmt.Sprintf("LD %s, A", operand), func(c *CPU) {
			c.set8(operand, c.A)
		})
		DefineInstruction(l.load, fmt.Sprintf("LD A, %s", operand), func(c *CPU) {
			c.A = c.get8(operand)
		})
	}
}

func generateALUInstructions() {
	for j, op := range aluOperations {
		fn := op.fn

		// 0x80 - 0xBF - ALU A, r
		for k := uint8(0); k < 8; k++ {
			src := operand8(k)
			DefineInstruction(0x80|uint8(j)<<3|k, fmt.Sprintf("%s A, %s", op.name, src), func(c *CPU) {
				fn(c, c.get8(src))
			})
		}

		// 0xC6 - 0xFE - ALU A, n
		DefineInstruction(0xC6|uint8(j)<<3, fmt.Sprintf("%s A, n", op.name), func(c *CPU) {
			fn(c, c.readOperand())
		})
	}

	// 0x04 - 0x3D - INC r, DEC r
	for j := uint8(0); j < 8; j++ {
		r := operand8(j)
		DefineInstruction(0x04+j<<3, fmt.Sprintf("INC %s", r), func(c *CPU) {
			c.modify8(r, c.increment)
		})
		DefineInstruction(0x05+j<<3, fmt.Sprintf("DEC %s", r), func(c *CPU) {
			c.modify8(r, c.decrement)
		})
	}

	DefineInstruction(0x07, "RLCA", func(c *CPU) {
		c.A = c.rotateLeftCarry(c.A)
		c.clearFlag(FlagZero)
	})
	DefineInstruction(0x0F, "RRCA", func(c *CPU) {
		c.A = c.rotateRightCarry(c.A)
		c.clearFlag(FlagZero)
	})
	DefineInstruction(0x17, "RLA", func(c *CPU) {
		c.A = c.rotateLeftThroughCarry(c.A)
		c.clearFlag(FlagZero)
	})
	DefineInstruction(0x1F, "RRA", func(c *CPU) {
		c.A = c.rotateRightThroughCarry(c.A)
		c.clearFlag(FlagZero)
	})
	DefineInstruction(0x27, "DAA", (*CPU).decimalAdjust)
	DefineInstruction(0x2F, "CPL", func(c *CPU) {
		c.A = 0xFF ^ c.A
		c.setFlag(FlagSubtract)
		c.setFlag(FlagHalfCarry)
	})
	DefineInstruction(0x37, "SCF", func(c *CPU) {
		c.setFlag(FlagCarry)
		c.clearFlag(FlagSubtract)
		c.clearFlag(FlagHalfCarry)
	})
	DefineInstruction(0x3F, "CCF", func(c *CPU) {
		c.F ^= FlagCarry
		c.clearFlag(FlagSubtract)
		c.clearFlag(FlagHalfCarry)
	})
}

func generate16BitInstructions() {
	for j := uint8(0); j < 4; j++ {
		rr := operand16(j)
		// 0x01 - 0x31 - LD rr, nn
		DefineInstruction(0x01+j<<4, fmt.Sprintf("LD %s, nn", rr), func(c *CPU) {
			c.set16(rr, c.readOperand16())
		})
		// 0x03 - 0x33 - INC rr
		DefineInstruction(0x03+j<<4, fmt.Sprintf("INC %s", rr), func(c *CPU) {
			c.set16(rr, c.get16(rr)+1)
			c.wait()
		})
		// 0x0B - 0x3B - DEC rr
		DefineInstruction(0x0B+j<<4, fmt.Sprintf("DEC %s", rr), func(c *CPU) {
			c.set16(rr, c.get16(rr)-1)
			c.wait()
		})
		// 0x09 - 0x39 - ADD HL, rr
		DefineInstruction(0x09+j<<4, fmt.Sprintf("ADD HL, %s", rr), func(c *CPU) {
			c.SetHL(c.addUint16(c.HL(), c.get16(rr)))
			c.wait()
		})

		// PUSH and POP use AF in place of SP
		stacked := rr
		if stacked == pairSP {
			stacked = pairAF
		}
		// 0xC1 - 0xF1 - POP rr
		DefineInstruction(0xC1+j<<4, fmt.Sprintf("POP %s", stacked), func(c *CPU) {
			c.set16(stacked, c.pop())
		})
		// 0xC5 - 0xF5 - PUSH rr
		DefineInstruction(0xC5+j<<4, fmt.Sprintf("PUSH %s", stacked), func(c *CPU) {
			c.push(c.get16(stacked))
		})
	}

	DefineInstruction(0x08, "LD (nn), SP", func(c *CPU) {
		address := c.readOperand16()
		c.writeByte(address, uint8(c.SP))
		c.writeByte(address+1, uint8(c.SP>>8))
	})
	DefineInstruction(0xE8, "ADD SP, e", func(c *CPU) {
		c.SP = c.addSPSigned()
		c.wait()
		c.wait()
	})
	DefineInstruction(0xF8, "LD HL, SP+e", func(c *CPU) {
		c.SetHL(c.addSPSigned())
		c.wait()
	})
	DefineInstruction(0xF9, "LD SP, HL", func(c *CPU) {
		c.SP = c.HL()
		c.wait()
	})
}

func generateJumpInstructions() {
	jumpRelative := func(c *CPU, taken bool) {
		offset := int8(c.readOperand())
		if taken {
			c.PC = uint16(int32(c.PC) + int32(offset))
			c.wait()
		}
	}
	jumpAbsolute := func(c *CPU, taken bool) {
		address := c.readOperand16()
		if taken {
			c.PC = address
			c.wait()
		}
	}
	call := func(c *CPU, taken bool) {
		address := c.readOperand16()
		if taken {
			c.push(c.PC)
			c.PC = address
		}
	}
	ret := func(c *CPU) {
		c.PC = c.pop()
		c.wait()
	}

	DefineInstruction(0x18, "JR e", func(c *CPU) { jumpRelative(c, true) })
	DefineInstruction(0xC3, "JP nn", func(c *CPU) { jumpAbsolute(c, true) })
	DefineInstruction(0xE9, "JP HL", func(c *CPU) { c.PC = c.HL() })
	DefineInstruction(0xCD, "CALL nn", func(c *CPU) { call(c, true) })
	DefineInstruction(0xC9, "RET", ret)
	DefineInstruction(0xD9, "RETI", func(c *CPU) {
		ret(c)
		c.IME = true
	})

	for j := uint8(0); j < 4; j++ {
		cc := condition(j)
		DefineInstruction(0x20+j<<3, fmt.Sprintf("JR %s, e", cc), func(c *CPU) {
			jumpRelative(c, c.test(cc))
		})
		DefineInstruction(0xC2+j<<3, fmt.Sprintf("JP %s, nn", cc), func(c *CPU) {
			jumpAbsolute(c, c.test(cc))
		})
		DefineInstruction(0xC4+j<<3, fmt.Sprintf("CALL %s, nn", cc), func(c *CPU) {
			call(c, c.test(cc))
		})
		DefineInstruction(0xC0+j<<3, fmt.Sprintf("RET %s", cc), func(c *CPU) {
			c.wait()
			if c.test(cc) {
				ret(c)
			}
		})
	}

	// 0xC7 - 0xFF - RST n
	for j := uint8(0); j < 8; j++ {
		vector := uint16(j) << 3
		DefineInstruction(0xC7+j<<3, fmt.Sprintf("RST %02XH", vector), func(c *CPU) {
			c.push(c.PC)
			c.PC = vector
		})
	}
}

func generateControlInstructions() {
	DefineInstruction(0x00, "NOP", func(c *CPU) {})
	DefineInstruction(0x10, "STOP", (*CPU).stop)
	DefineInstruction(0x76, "HALT", (*CPU).halt)
	DefineInstruction(0xF3, "DI", func(c *CPU) {
		c.IME = false
		c.eiPending = false
	})
	DefineInstruction(0xFB, "EI", func(c *CPU) {
		if !c.IME {
			c.eiPending = true
		}
	})
	DefineInstruction(0xCB, "PREFIX CB", func(c *CPU) {})
}

func generateCBInstructions() {
	for k := uint8(0); k < 8; k++ {
		r := operand8(k)

		// 0x00 - 0x3F - rotates, shifts and SWAP
		for j, op := range cbOperations {
			fn := op.fn
			DefineInstructionCB(uint8(j)<<3|k, fmt.Sprintf("%s %s", op.name, r), func(c *CPU) {
				c.modify8(r, func(v uint8) uint8 { return fn(c, v) })
			})
		}

		for b := uint8(0); b < 8; b++ {
			mask := uint8(1) << b
			// 0x40 - 0x7F - BIT b, r
			DefineInstructionCB(0x40|b<<3|k, fmt.Sprintf("BIT %d, %s", b, r), func(c *CPU) {
				c.testBit(c.get8(r), mask)
			})
			// 0x80 - 0xBF - RES b, r
			DefineInstructionCB(0x80|b<<3|k, fmt.Sprintf("RES %d, %s", b, r), func(c *CPU) {
				c.modify8(r, func(v uint8) uint8 { return v &^ mask })
			})
			// 0xC0 - 0xFF - SET b, r
			DefineInstructionCB(0xC0|b<<3|k, fmt.Sprintf("SET %d, %s", b, r), func(c *CPU) {
				c.modify8(r, func(v uint8) uint8 { return v | mask })
			})
		}
	}
}
