// Package hw wraps the memory-mapped hardware surface: the LSPC video
// controller with its batched VRAM port, palette RAM, controller and
// system I/O ports, the sound-coprocessor mailbox, BIOS RAM cells and
// the memory-card window. Higher layers never touch addresses directly;
// everything goes through a Bus so the same code runs against the real
// register file or a memory-backed test console.
package hw

// Bus is the MMIO access contract.
type Bus interface {
	Read8(addr uint32) uint8
	Write8(addr uint32, v uint8)
	Read16(addr uint32) uint16
	Write16(addr uint32, v uint16)
}

// LSPC register file.
const (
	LSPCAddr      = 0x3C0000 // VRAM address latch
	LSPCData      = 0x3C0002 // VRAM data port
	LSPCMod       = 0x3C0004 // VRAM address auto-increment
	LSPCMode      = 0x3C0006 // mode / timer control
	LSPCTimerHigh = 0x3C0008 // timer reload, high word
	LSPCTimerLow  = 0x3C000A // timer reload, low word
	LSPCIRQAck    = 0x3C000C // interrupt acknowledge
)

// VRAM regions (VRAM word addresses, latched through LSPCAddr).
const (
	VRAMSCB1 = 0x0000 // sprite tiles + attributes, 64 words per sprite
	VRAMFix  = 0x7000 // fix layer, column-major
	VRAMSCB2 = 0x8000 // shrink, 1 word per sprite
	VRAMSCB3 = 0x8200 // y position + height + sticky
	VRAMSCB4 = 0x8400 // x position
)

const (
	SCB1SpriteSize   = 64
	SCB1WordsPerTile = 2

	SpriteMax     = 381
	SpritePerLine = 96

	FixWidth  = 40
	FixHeight = 32

	TileSize = 16
)

// SCB field layout.
const (
	SCB1PaletteShift = 8
	SCB1VFlipBit     = 0x02
	SCB1HFlipBit     = 0x01

	SCB2FullSize = 0x0FFF

	SCB3StickyBit  = 0x40
	SCB3YShift     = 7
	SCB3HeightMask = 0x3F

	SCB4XShift = 7
)

// Visible raster.
const (
	ScreenWidth  = 320
	ScreenHeight = 224
)

// Palette RAM.
const (
	PalRAMBase   = 0x400000
	BackdropAddr = 0x401FFE

	PaletteSize  = 16
	PaletteCount = 256
)

// I/O ports. Controller ports are active-low.
const (
	IOP1       = 0x300000
	IOWatchdog = 0x300001
	IOSound    = 0x320000
	IOStatusA  = 0x320001
	IOP2       = 0x340000
	IOStatusB  = 0x380000
	IOCardStat = 0x380021
)

// Controller port bits (after inversion: 1 = pressed).
const (
	IOUp    = 0x01
	IODown  = 0x02
	IOLeft  = 0x04
	IORight = 0x08
	IOA     = 0x10
	IOB     = 0x20
	IOC     = 0x40
	IOD     = 0x80
)

// Status A bits.
const (
	IOCoin1   = 0x01
	IOCoin2   = 0x02
	IOService = 0x04
)

// Status B bits.
const (
	IOP1Start  = 0x01
	IOP1Select = 0x02
	IOP2Start  = 0x04
	IOP2Select = 0x08
)

// BIOS RAM cells.
const (
	BIOSSystemMode = 0x10FD80
	BIOSMVSFlag    = 0x10FD82 // 0 = home console, 1 = arcade
	BIOSCountry    = 0x10FD83 // 0 = Japan, 1 = USA, 2 = Europe
	BIOSVBlankFlag = 0x10FD8E // set by the vblank interrupt
)

// Memory card window. Only even bytes are wired (word-wide bus, upper
// byte), so logical byte n lives at MemcardBase + 2n.
const (
	MemcardBase = 0x800000
	MemcardMax  = 0x2000 // 8 KB

	CardPresentBit   = 0x01 // active-low
	CardWriteProtBit = 0x02 // active-low
)
