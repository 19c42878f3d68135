package cpu

// operand8 names an 8-bit source or destination. The first 8 follow
// the r encoding of the opcode table (bits 0-2 and 3-5).
type operand8 uint8

const (
	regB operand8 = iota
	regC
	regD
	regE
	regH
	regL
	indHL
	regA

	imm8     // n
	indBC    // (BC)
	indDE    // (DE)
	indHLI   // (HL+)
	indHLD   // (HL-)
	indHigh  // (FF00+n)
	indHighC // (FF00+C)
	indAbs   // (nn)
)

var operand8Names = [...]string{
	"B", "C", "D", "E", "H", "L", "(HL)", "A",
	"n", "(BC)", "(DE)", "(HL+)", "(HL-)", "(FF00+n)", "(FF00+C)", "(nn)",
}

func (o operand8) String() string {
	return operand8Names[o]
}

// address resolves an indirect operand, consuming any immediate bytes
// and applying the HL post increment or decrement. Operands that are
// not indirect resolve to (HL).
func (c *CPU) address(o operand8) uint16 {
	switch o {
	case indBC:
		return c.BC()
	case indDE:
		return c.DE()
	case indHLI:
		hl := c.HL()
		c.SetHL(hl + 1)
		return hl
	case indHLD:
		hl := c.HL()
		c.SetHL(hl - 1)
		return hl
	case indHigh:
		return 0xFF00 | uint16(c.readOperand())
	case indHighC:
		return 0xFF00 | uint16(c.C)
	case indAbs:
		return c.readOperand16()
	default:
		return c.HL()
	}
}

// get8 reads an operand, ticking the bus once per memory access.
func (c *CPU) get8(o operand8) uint8 {
	switch o {
	case regB:
		return c.B
	case regC:
		return c.C
	case regD:
		return c.D
	case regE:
		return c.E
	case regH:
		return c.H
	case regL:
		return c.L
	case regA:
		return c.A
	case imm8:
		return c.readOperand()
	}
	return c.readByte(c.address(o))
}

// set8 writes an operand, ticking the bus once per memory access.
func (c *CPU) set8(o operand8, v uint8) {
	switch o {
	case regB:
		c.B = v
	case regC:
		c.C = v
	case regD:
		c.D = v
	case regE:
		c.E = v
	case regH:
		c.H = v
	case regL:
		c.L = v
	case regA:
		c.A = v
	default:
		c.writeByte(c.address(o), v)
	}
}

// modify8 applies fn to a register or (HL) in place. (HL) costs a read
// and a write.
func (c *CPU) modify8(o operand8, fn func(uint8) uint8) {
	if o == indHL {
		hl := c.HL()
		c.writeByte(hl, fn(c.readByte(hl)))
		return
	}
	c.set8(o, fn(c.get8(o)))
}

// operand16 names a register pair. BC, DE, HL and SP follow the rr
// encoding of bits 4-5, with AF standing in for SP in PUSH and POP.
type operand16 uint8

const (
	pairBC operand16 = iota
	pairDE
	pairHL
	pairSP
	pairAF
)

var operand16Names = [...]string{"BC", "DE", "HL", "SP", "AF"}

func (o operand16) String() string {
	return operand16Names[o]
}

func (c *CPU) get16(o operand16) uint16 {
	switch o {
	case pairBC:
		return c.BC()
	case pairDE:
		return c.DE()
	case pairHL:
		return c.HL()
	case pairSP:
		return c.SP
	}
	return c.AF()
}

func (c *CPU) set16(o operand16, v uint16) {
	switch o {
	case pairBC:
		c.SetBC(v)
	case pairDE:
		c.SetDE(v)
	case pairHL:
		c.SetHL(v)
	case pairSP:
		c.SP = v
	default:
		c.SetAF(v)
	}
}

// condition is a branch condition, in the cc encoding of bits 3-4.
type condition uint8

const (
	condNZ condition = iota
	condZ
	condNC
	condC
)

var conditionNames = [...]string{"NZ", "Z", "NC", "C"}

func (cc condition) String() string {
	return conditionNames[cc]
}

func (c *CPU) test(cc condition) bool {
	switch cc {
	case condNZ:
		return !c.isFlagSet(FlagZero)
	case condZ:
		return c.isFlagSet(FlagZero)
	case condNC:
		return !c.isFlagSet(FlagCarry)
	}
	return c.isFlagSet(FlagCarry)
}
