package ppu

// DMA copies 160 bytes from page XX00 into OAM, one byte per M-cycle,
// after a write of XX to types.DMA.
type DMA struct {
	active bool
	source uint16
	index  uint16
	value  uint8

	read func(address uint16) uint8
	oam  *[0xA0]uint8
}

// NewDMA returns a DMA controller writing into the OAM of p.
func NewDMA(p *PPU) *DMA {
	return &DMA{
		oam:  &p.oam,
		read: func(uint16) uint8 { return 0xFF },
	}
}

// AttachBus sets the function used to read source bytes. It must not
// be subject to the DMA bus lock.
func (d *DMA) AttachBus(read func(address uint16) uint8) {
	d.read = read
}

// Start begins a transfer from page v, restarting any in progress.
func (d *DMA) Start(v uint8) {
	d.value = v
	d.source = uint16(v) << 8
	d.index = 0
	d.active = true
}

// TickM copies the next byte of an active transfer.
func (d *DMA) TickM() {
	if !d.active {
		return
	}

	src := d.source + d.index
	// is a DMA trying to read from the OAM? if so, read the
	// echoed work RAM underneath instead
	if src >= 0xE000 {
		src &^= 0x2000
	}
	d.oam[d.index] = d.read(src)

	// 0xFE00-0xFE9F = 160 bytes = 160 M-cycles
	if d.index++; d.index == 0xA0 {
		d.active = false
	}
}

// Active reports whether a transfer is in progress.
func (d *DMA) Active() bool {
	return d.active
}

// Value returns the last value written to types.DMA.
func (d *DMA) Value() uint8 {
	return d.value
}
