package cartridge

import (
	"fmt"

	"github.com/thelolagemann/dmgcore/pkg/bits"
)

// CGBFlag is the value of the colour compatibility byte at 0x0143.
type CGBFlag uint8

const (
	FlagOnlyDMG CGBFlag = iota
	FlagSupportsCGB
	FlagOnlyCGB
)

var ramSizes = map[uint8]uint{
	0x00: 0,
	0x02: 8 * 1024,
	0x03: 32 * 1024,
	0x04: 128 * 1024,
	0x05: 64 * 1024,
}

// Header represents the header of a cartridge, located at the address
// space 0x0100-0x014F. The header contains information about the
// cartridge itself, and the hardware it expects to run on.
type Header struct {
	// 0x0100-0x0103 - usually a NOP followed by a jump to the game code.
	EntryPoint [4]byte
	// 0x0104-0x0133 - the Nintendo logo bitmap.
	Logo [48]byte
	// 0x0134-0x0142 - Title of the game, truncated at the first NUL.
	Title string

	// 0x0143 - in older cartridges this byte was part of the title, later
	// models interpret it to determine colour compatibility.
	CGBMode CGBFlag

	// 0x0144-0x0145 - used when OldLicenseeCode is 0x33.
	NewLicenseeCode string
	SGBFlag         bool
	CartridgeType   Type
	ROMSizeCode     uint8
	RAMSizeCode     uint8
	// ROMSize and RAMSize are in bytes, zero when the code is unknown.
	ROMSize         uint
	RAMSize         uint
	Destination     uint8
	OldLicenseeCode uint8
	Version         uint8
	HeaderChecksum  uint8
	GlobalChecksum  uint16

	computedChecksum uint8
}

// ParseHeader decodes the cartridge header from rom. Unknown size and
// type codes are kept rather than rejected, so callers can decide what
// to do with them.
func ParseHeader(rom []byte) (*Header, error) {
	if len(rom) < 0x150 {
		return nil, fmt.Errorf("%w: got %d bytes", ErrHeaderTooSmall, len(rom))
	}

	h := &Header{}
	copy(h.EntryPoint[:], rom[0x100:0x104])
	copy(h.Logo[:], rom[0x104:0x134])

	switch rom[0x143] {
	case 0x80:
		h.CGBMode = FlagSupportsCGB
	case 0xC0:
		h.CGBMode = FlagOnlyCGB
	default:
		h.CGBMode = FlagOnlyDMG
	}

	h.Title = bits.String(rom[0x134:0x143])
	h.NewLicenseeCode = bits.String(rom[0x144:0x146])
	h.SGBFlag = rom[0x146] == 0x03
	h.CartridgeType = Type(rom[0x147])

	// ROM size is 32 KiB << n
	h.ROMSizeCode = rom[0x148]
	if h.ROMSizeCode <= 0x08 {
		h.ROMSize = (32 * 1024) << h.ROMSizeCode
	}
	h.RAMSizeCode = rom[0x149]
	h.RAMSize = ramSizes[h.RAMSizeCode]

	h.Destination = rom[0x14A]
	h.OldLicenseeCode = rom[0x14B]
	h.Version = rom[0x14C]
	h.HeaderChecksum = rom[0x14D]
	h.GlobalChecksum = bits.Combine(rom[0x14E], rom[0x14F])

	var sum uint8
	for _, b := range rom[0x134:0x14D] {
		sum = sum - b - 1
	}
	h.computedChecksum = sum

	return h, nil
}

// Licensee returns the licensee code, preferring the new two character
// code when the old code says to.
func (h *Header) Licensee() string {
	if h.OldLicenseeCode == 0x33 {
		return h.NewLicenseeCode
	}
	return fmt.Sprintf("%02X", h.OldLicenseeCode)
}

// ChecksumValid reports whether the header checksum at 0x014D matches
// the bytes 0x0134-0x014C. The boot ROM would refuse to start a
// cartridge with a mismatch; the emulator only reports it.
func (h *Header) ChecksumValid() bool {
	return h.computedChecksum == h.HeaderChecksum
}

func (h *Header) Hardware() string {
	switch h.CGBMode {
	case FlagOnlyDMG:
		return "DMG"
	case FlagSupportsCGB, FlagOnlyCGB:
		return "CGB"
	default:
		return "Unknown"
	}
}

func (h *Header) String() string {
	return fmt.Sprintf("%s (%s) | %s | ROM: %dkB | RAM: %dkB", h.Title, h.Hardware(), h.CartridgeType, h.ROMSize/1024, h.RAMSize/1024)
}
