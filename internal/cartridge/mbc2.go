package cartridge

// MemoryBankedCartridge2 supports up to 256 KiB of ROM and has 512
// half-bytes of built in RAM.
type MemoryBankedCartridge2 struct {
	rom     banks
	romBank uint8

	ram        [512]uint8
	ramEnabled bool
}

// NewMemoryBankedCartridge2 returns a new MemoryBankedCartridge2 cartridge.
func NewMemoryBankedCartridge2(rom []byte) *MemoryBankedCartridge2 {
	return &MemoryBankedCartridge2{
		rom:     newBanks(rom, 0x4000),
		romBank: 1,
	}
}

func (m *MemoryBankedCartridge2) ReadROM(address uint16) uint8 {
	if address < 0x4000 {
		return m.rom.read(0, address)
	}
	return m.rom.read(int(m.romBank), address)
}

// WriteROM uses bit 8 of the address to choose between the RAM enable
// and ROM bank registers.
func (m *MemoryBankedCartridge2) WriteROM(address uint16, value uint8) {
	if address >= 0x4000 {
		return
	}
	if address&0x0100 == 0 {
		m.ramEnabled = value&0x0F == 0x0A
		return
	}
	m.romBank = value & 0x0F
	if m.romBank == 0 {
		m.romBank = 1
	}
}

// ReadRAM returns the stored nibble with the upper bits set. The 512
// bytes are echoed through the whole RAM window.
func (m *MemoryBankedCartridge2) ReadRAM(address uint16) uint8 {
	if !m.ramEnabled {
		return 0xFF
	}
	return m.ram[address&0x01FF] | 0xF0
}

func (m *MemoryBankedCartridge2) WriteRAM(address uint16, value uint8) {
	if m.ramEnabled {
		m.ram[address&0x01FF] = value & 0x0F
	}
}

func (m *MemoryBankedCartridge2) RAM() []byte {
	return m.ram[:]
}
