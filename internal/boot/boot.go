// Package boot provides a boot ROM implementation for the Game Boy. Whilst
// this package is not strictly required for the emulator to function, it
// can be used to emulate the boot process of the Game Boy.
package boot

import (
	"crypto/md5"
	"encoding/hex"
	"fmt"
)

// Size is the size of a DMG boot ROM.
const Size = 256

// ROM represents a boot ROM for the Game Boy. When the Game Boy first
// powers on, the boot ROM is mapped to memory addresses 0x0000 -
// 0x00FF, over the cartridge.
//
// Once the boot ROM has scrolled the logo and checked the header, it
// unmaps itself by writing to types.BDIS, and falls through to the
// cartridge entry point at 0x0100.
type ROM struct {
	raw      []byte
	checksum string // MD5, hex encoded
}

// InvalidSizeError is returned for boot ROMs that are not 256 bytes.
type InvalidSizeError struct {
	Size int
}

func (e *InvalidSizeError) Error() string {
	return fmt.Sprintf("boot: invalid boot rom length %d, want %d", e.Size, Size)
}

// LoadBootROM loads a boot ROM, calculating its checksum to identify it.
func LoadBootROM(b []byte) (*ROM, error) {
	if len(b) != Size {
		return nil, &InvalidSizeError{Size: len(b)}
	}

	sum := md5.Sum(b)
	return &ROM{
		raw:      append([]byte(nil), b...),
		checksum: hex.EncodeToString(sum[:]),
	}, nil
}

// Read returns the byte at the given address.
func (b *ROM) Read(addr uint16) uint8 {
	return b.raw[addr&0xFF]
}

// Checksum returns the MD5 checksum of the boot rom.
func (b *ROM) Checksum() string {
	return b.checksum
}

// Model returns the model of the boot rom, determined by its checksum.
func (b *ROM) Model() string {
	if model, ok := knownBootROMChecksums[b.checksum]; ok {
		return model
	}
	return "unknown"
}

var knownBootROMChecksums = map[string]string{
	DMG0: "Game Boy (DMG-0)",
	DMG:  "Game Boy (DMG-01)",
	MGB:  "Game Boy Pocket",
	SGB:  "Super Game Boy",
	SGB2: "Super Game Boy 2",
}

const (
	// DMG0 is the checksum of the early DMG boot ROM, only sold in
	// Japan. It flashes the screen on a bad header instead of hanging.
	DMG0 = "a8f84a0ac44da5d3f0ee19f9cea80a8c"
	// DMG is the checksum of the DMG-01 boot ROM.
	DMG = "32fbbd84168d3482956eb3c5051637f5"
	// MGB differs from DMG by a single byte, leaving 0xFF in A.
	MGB = "71a378e71ff30b2d8a1f02bf5c7896aa"
	// SGB sends the header to the SNES instead of scrolling the logo.
	SGB = "d574d4f9c12f305074798f54c091a8b4"
	// SGB2 differs from SGB by a single byte, leaving 0xFF in A.
	SGB2 = "e0430bca9925fb9882148fd2dc2418c1"
)
