package cpu

// Register is a single 8-bit CPU register.
type Register = uint8

// Registers holds the 8-bit registers. The 16-bit pairs are formed
// high:low as AF, BC, DE and HL.
type Registers struct {
	A Register
	F Register
	B Register
	C Register
	D Register
	E Register
	H Register
	L Register
}

func pair(high, low Register) uint16 {
	return uint16(high)<<8 | uint16(low)
}

// AF returns the AF register pair. The lower nibble of F always reads 0.
func (r *Registers) AF() uint16 { return pair(r.A, r.F&0xF0) }

// SetAF sets the AF register pair, discarding the lower nibble of F.
func (r *Registers) SetAF(v uint16) { r.A, r.F = uint8(v>>8), uint8(v)&0xF0 }

func (r *Registers) BC() uint16     { return pair(r.B, r.C) }
func (r *Registers) SetBC(v uint16) { r.B, r.C = uint8(v>>8), uint8(v) }
func (r *Registers) DE() uint16     { return pair(r.D, r.E) }
func (r *Registers) SetDE(v uint16) { r.D, r.E = uint8(v>>8), uint8(v) }
func (r *Registers) HL() uint16     { return pair(r.H, r.L) }
func (r *Registers) SetHL(v uint16) { r.H, r.L = uint8(v>>8), uint8(v) }
