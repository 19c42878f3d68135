package types

// HardwareAddress is the address of a memory mapped hardware
// register. IO is mapped to 0xFF00 - 0xFF7F & 0xFFFF.
type HardwareAddress = uint16

const (
	// P1 selects the joypad column and reads the button state.
	P1 HardwareAddress = 0xFF00
	// SB holds the byte being shifted through the serial port.
	SB HardwareAddress = 0xFF01
	// SC controls the serial port.
	SC HardwareAddress = 0xFF02
	// DIV exposes the upper byte of the 16-bit system counter.
	DIV HardwareAddress = 0xFF04
	// TIMA is incremented at the rate selected by TAC and
	// reloaded from TMA when it overflows.
	TIMA HardwareAddress = 0xFF05
	TMA  HardwareAddress = 0xFF06
	TAC  HardwareAddress = 0xFF07
	// IF is the interrupt request register.
	//
	//  Bit 0: V-Blank Interrupt Request (INT 40h)  (1=Request)
	//  Bit 1: LCD STAT Interrupt Request (INT 48h) (1=Request)
	//  Bit 2: Timer Interrupt Request (INT 50h)    (1=Request)
	//  Bit 3: Serial Interrupt Request (INT 58h)   (1=Request)
	//  Bit 4: Joypad Interrupt Request (INT 60h)   (1=Request)
	IF HardwareAddress = 0xFF0F

	NR10 HardwareAddress = 0xFF10
	NR11 HardwareAddress = 0xFF11
	NR12 HardwareAddress = 0xFF12
	NR13 HardwareAddress = 0xFF13
	NR14 HardwareAddress = 0xFF14
	NR21 HardwareAddress = 0xFF16
	NR22 HardwareAddress = 0xFF17
	NR23 HardwareAddress = 0xFF18
	NR24 HardwareAddress = 0xFF19
	NR30 HardwareAddress = 0xFF1A
	NR31 HardwareAddress = 0xFF1B
	NR32 HardwareAddress = 0xFF1C
	NR33 HardwareAddress = 0xFF1D
	NR34 HardwareAddress = 0xFF1E
	NR41 HardwareAddress = 0xFF20
	NR42 HardwareAddress = 0xFF21
	NR43 HardwareAddress = 0xFF22
	NR44 HardwareAddress = 0xFF23
	NR50 HardwareAddress = 0xFF24
	NR51 HardwareAddress = 0xFF25
	NR52 HardwareAddress = 0xFF26
	// WaveRAMStart to WaveRAMEnd holds the 32 4-bit samples
	// played by channel 3.
	WaveRAMStart HardwareAddress = 0xFF30
	WaveRAMEnd   HardwareAddress = 0xFF3F

	LCDC HardwareAddress = 0xFF40
	STAT HardwareAddress = 0xFF41
	SCY  HardwareAddress = 0xFF42
	SCX  HardwareAddress = 0xFF43
	// LY is the scanline currently being processed. Read only.
	LY  HardwareAddress = 0xFF44
	LYC HardwareAddress = 0xFF45
	// DMA starts an OAM transfer from the written page.
	DMA  HardwareAddress = 0xFF46
	BGP  HardwareAddress = 0xFF47
	OBP0 HardwareAddress = 0xFF48
	OBP1 HardwareAddress = 0xFF49
	WY   HardwareAddress = 0xFF4A
	WX   HardwareAddress = 0xFF4B

	// BDIS unmaps the boot ROM when written with a non-zero value.
	BDIS HardwareAddress = 0xFF50

	// The CGB registers below read 0xFF and ignore writes on DMG.
	KEY1 HardwareAddress = 0xFF4D
	VBK  HardwareAddress = 0xFF4F
	SVBK HardwareAddress = 0xFF70

	// IE is the interrupt enable register.
	IE HardwareAddress = 0xFFFF
)
