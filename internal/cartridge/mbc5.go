package cartridge

// MemoryBankedCartridge5 supports up to 8 MiB of ROM through a 9-bit
// bank number and 128 KiB of RAM. Unlike the earlier controllers, ROM
// bank 0 may be mapped into the switchable window.
type MemoryBankedCartridge5 struct {
	rom     banks
	romBank uint16

	ram        banks
	ramBank    uint8
	ramEnabled bool

	hasRumble bool
	rumble    bool
}

// NewMemoryBankedCartridge5 returns a new MemoryBankedCartridge5 cartridge.
func NewMemoryBankedCartridge5(rom []byte, header *Header) *MemoryBankedCartridge5 {
	return &MemoryBankedCartridge5{
		rom:       newBanks(rom, 0x4000),
		romBank:   1,
		ram:       newBanks(make([]byte, header.RAMSize), 0x2000),
		hasRumble: header.CartridgeType.Has(FeatureRumble),
	}
}

func (m *MemoryBankedCartridge5) ReadROM(address uint16) uint8 {
	if address < 0x4000 {
		return m.rom.read(0, address)
	}
	return m.rom.read(int(m.romBank), address)
}

func (m *MemoryBankedCartridge5) WriteROM(address uint16, value uint8) {
	switch {
	case address < 0x2000:
		m.ramEnabled = value&0x0F == 0x0A
	case address < 0x3000:
		m.romBank = m.romBank&0x100 | uint16(value)
	case address < 0x4000:
		m.romBank = m.romBank&0xFF | uint16(value&0x01)<<8
	case address < 0x6000:
		if m.hasRumble {
			// bit 3 drives the motor on rumble carts
			m.rumble = value&0x08 != 0
			m.ramBank = value & 0x07
		} else {
			m.ramBank = value & 0x0F
		}
	}
}

func (m *MemoryBankedCartridge5) ReadRAM(address uint16) uint8 {
	if !m.ramEnabled {
		return 0xFF
	}
	return m.ram.read(int(m.ramBank), address)
}

func (m *MemoryBankedCartridge5) WriteRAM(address uint16, value uint8) {
	if m.ramEnabled {
		m.ram.write(int(m.ramBank), address, value)
	}
}

func (m *MemoryBankedCartridge5) RAM() []byte {
	return m.ram.data
}

// Rumble reports whether the rumble motor is currently driven.
func (m *MemoryBankedCartridge5) Rumble() bool {
	return m.rumble
}
