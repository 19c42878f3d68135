package cartridge

// MemoryBankedCartridge3 supports up to 2 MiB of ROM, 32 KiB of RAM
// and, on timer variants, a battery backed real time clock.
type MemoryBankedCartridge3 struct {
	rom     banks
	romBank uint8 // 7 bits, never 0

	ram        banks
	ramSelect  uint8
	ramEnabled bool

	rtc *RTC
}

// NewMemoryBankedCartridge3 returns a new MemoryBankedCartridge3 cartridge.
func NewMemoryBankedCartridge3(rom []byte, header *Header, clock Clock) *MemoryBankedCartridge3 {
	m := &MemoryBankedCartridge3{
		rom:     newBanks(rom, 0x4000),
		romBank: 1,
		ram:     newBanks(make([]byte, header.RAMSize), 0x2000),
	}
	if header.CartridgeType.Has(FeatureTimer) {
		m.rtc = newRTC(clock)
	}
	return m
}

func (m *MemoryBankedCartridge3) ReadROM(address uint16) uint8 {
	if address < 0x4000 {
		return m.rom.read(0, address)
	}
	return m.rom.read(int(m.romBank), address)
}

func (m *MemoryBankedCartridge3) WriteROM(address uint16, value uint8) {
	switch {
	case address < 0x2000:
		m.ramEnabled = value&0x0F == 0x0A
	case address < 0x4000:
		m.romBank = value & 0x7F
		if m.romBank == 0 {
			m.romBank = 1
		}
	case address < 0x6000:
		m.ramSelect = value
	default:
		if m.rtc != nil {
			m.rtc.writeLatch(value)
		}
	}
}

func (m *MemoryBankedCartridge3) rtcSelected() bool {
	return m.rtc != nil && m.ramSelect >= rtcSeconds && m.ramSelect <= rtcDaysHigh
}

func (m *MemoryBankedCartridge3) ReadRAM(address uint16) uint8 {
	switch {
	case !m.ramEnabled:
		return 0xFF
	case m.ramSelect <= 0x03:
		return m.ram.read(int(m.ramSelect), address)
	case m.rtcSelected():
		return m.rtc.read(m.ramSelect)
	}
	return 0xFF
}

func (m *MemoryBankedCartridge3) WriteRAM(address uint16, value uint8) {
	switch {
	case !m.ramEnabled:
	case m.ramSelect <= 0x03:
		m.ram.write(int(m.ramSelect), address, value)
	case m.rtcSelected():
		m.rtc.write(m.ramSelect, value)
	}
}

func (m *MemoryBankedCartridge3) RAM() []byte {
	return m.ram.data
}

// Clock returns the real time clock, nil on cartridges without one.
func (m *MemoryBankedCartridge3) Clock() *RTC {
	return m.rtc
}
