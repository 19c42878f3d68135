package cartridge

// MemoryBankedCartridge1 supports up to 2 MiB of ROM and 32 KiB of RAM.
// The 2-bit secondary register either extends the ROM bank number or
// selects the RAM bank, depending on the banking mode.
type MemoryBankedCartridge1 struct {
	rom banks
	ram banks

	bank1      uint8 // 5 bits, never 0
	bank2      uint8 // 2 bits
	mode       bool  // false: simple, true: advanced
	ramEnabled bool
}

// NewMemoryBankedCartridge1 returns a new MemoryBankedCartridge1 cartridge.
func NewMemoryBankedCartridge1(rom []byte, header *Header) *MemoryBankedCartridge1 {
	return &MemoryBankedCartridge1{
		rom:   newBanks(rom, 0x4000),
		ram:   newBanks(make([]byte, header.RAMSize), 0x2000),
		bank1: 1,
	}
}

func (m *MemoryBankedCartridge1) ReadROM(address uint16) uint8 {
	if address < 0x4000 {
		bank := 0
		if m.mode {
			bank = int(m.bank2) << 5
		}
		return m.rom.read(bank, address)
	}
	return m.rom.read(int(m.bank2)<<5|int(m.bank1), address)
}

func (m *MemoryBankedCartridge1) WriteROM(address uint16, value uint8) {
	switch {
	case address < 0x2000:
		m.ramEnabled = value&0x0F == 0x0A
	case address < 0x4000:
		m.bank1 = value & 0x1F
		if m.bank1 == 0 {
			m.bank1 = 1
		}
	case address < 0x6000:
		m.bank2 = value & 0x03
	default:
		m.mode = value&0x01 == 0x01
	}
}

func (m *MemoryBankedCartridge1) ramBank() int {
	if m.mode {
		return int(m.bank2)
	}
	return 0
}

func (m *MemoryBankedCartridge1) ReadRAM(address uint16) uint8 {
	if !m.ramEnabled {
		return 0xFF
	}
	return m.ram.read(m.ramBank(), address)
}

func (m *MemoryBankedCartridge1) WriteRAM(address uint16, value uint8) {
	if m.ramEnabled {
		m.ram.write(m.ramBank(), address, value)
	}
}

func (m *MemoryBankedCartridge1) RAM() []byte {
	return m.ram.data
}
