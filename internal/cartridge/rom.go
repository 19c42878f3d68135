package cartridge

// ROMCartridge is a cartridge without a controller: 32 KiB of ROM and
// optionally 8 KiB of RAM.
type ROMCartridge struct {
	rom banks
	ram []byte
}

// NewROMCartridge returns a new ROMCartridge.
func NewROMCartridge(rom []byte, header *Header) *ROMCartridge {
	c := &ROMCartridge{rom: newBanks(rom, 0x8000)}
	if header.CartridgeType.Has(FeatureRAM) && header.RAMSize > 0 {
		c.ram = make([]byte, 0x2000)
	}
	return c
}

func (c *ROMCartridge) ReadROM(address uint16) uint8 {
	return c.rom.read(0, address)
}

// WriteROM is ignored, there is nothing to switch.
func (c *ROMCartridge) WriteROM(uint16, uint8) {}

func (c *ROMCartridge) ReadRAM(address uint16) uint8 {
	if int(address) >= len(c.ram) {
		return 0xFF
	}
	return c.ram[address]
}

func (c *ROMCartridge) WriteRAM(address uint16, value uint8) {
	if int(address) < len(c.ram) {
		c.ram[address] = value
	}
}

func (c *ROMCartridge) RAM() []byte {
	return c.ram
}
