// Package console is a memory-backed model of the board, used by the
// front-end and by integration tests. It implements hw.Bus with the
// LSPC latch semantics, palette RAM, the coprocessor mailbox, and the
// memory-card window, and composites the video state into RGBA.
package console

import "github.com/manicakes/progearsdk/internal/hw"

// WatchdogLimit is how many frames may pass without a kick before the
// board declares a hang.
const WatchdogLimit = 8

// Console models the machine's memory map.
type Console struct {
	vram [0x8800]uint16
	addr uint16
	mod  uint16

	palRAM   [hw.PaletteCount * hw.PaletteSize]uint16
	backdrop uint16

	ram map[uint32]uint8

	p1, p2  uint8
	statusA uint8
	statusB uint8

	sound        uint8
	soundOK      bool
	soundLog     []uint8
	cardStat     uint8
	card         []byte
	cardInserted bool

	sinceKick int
	hung      bool

	Tiles TileSource
}

func New() *Console {
	c := &Console{
		mod:      1,
		ram:      make(map[uint32]uint8),
		p1:       0xFF,
		p2:       0xFF,
		statusA:  0xFF,
		statusB:  0xFF,
		cardStat: 0xFF,
		soundOK:  true,
		Tiles:    CheckerTiles{},
	}
	return c
}

func (c *Console) Read8(addr uint32) uint8 {
	switch addr {
	case hw.IOP1:
		return c.p1
	case hw.IOP2:
		return c.p2
	case hw.IOStatusA:
		return c.statusA
	case hw.IOStatusB:
		return c.statusB
	case hw.IOSound:
		return c.sound
	case hw.IOCardStat:
		return c.cardStat
	}
	if addr >= hw.MemcardBase && c.cardInserted {
		off := (addr - hw.MemcardBase) / 2
		if off < uint32(len(c.card)) && addr%2 == 0 {
			return c.card[off]
		}
		return 0
	}
	return c.ram[addr]
}

func (c *Console) Write8(addr uint32, v uint8) {
	switch addr {
	case hw.IOWatchdog:
		c.sinceKick = 0
		return
	case hw.IOSound:
		c.soundLog = append(c.soundLog, v)
		if c.soundOK {
			c.sound = v | hw.AckBit
		}
		return
	}
	if addr >= hw.MemcardBase && c.cardInserted {
		off := (addr - hw.MemcardBase) / 2
		if off < uint32(len(c.card)) && addr%2 == 0 && c.cardStat&hw.CardWriteProtBit != 0 {
			c.card[off] = v
		}
		return
	}
	c.ram[addr] = v
}

// vramIndex maps the latch address onto the backing array. The lower
// 32K words (SCB1 and the fix layer) index directly; the control bank
// above 0x8000 mirrors every 0x800 words.
func (c *Console) vramIndex() uint16 {
	if c.addr < 0x8000 {
		return c.addr
	}
	return 0x8000 + (c.addr & 0x7FF)
}

func (c *Console) Read16(addr uint32) uint16 {
	switch addr {
	case hw.LSPCData:
		return c.vram[c.vramIndex()]
	case hw.LSPCMod:
		return c.mod
	case hw.BackdropAddr:
		return c.backdrop
	}
	if addr >= hw.PalRAMBase && addr < hw.PalRAMBase+uint32(len(c.palRAM))*2 {
		return c.palRAM[(addr-hw.PalRAMBase)/2]
	}
	return 0
}

func (c *Console) Write16(addr uint32, v uint16) {
	switch addr {
	case hw.LSPCAddr:
		c.addr = v
		return
	case hw.LSPCData:
		c.vram[c.vramIndex()] = v
		c.addr += c.mod
		return
	case hw.LSPCMod:
		c.mod = v
		return
	case hw.BackdropAddr:
		c.backdrop = v
		return
	}
	if addr >= hw.PalRAMBase && addr < hw.PalRAMBase+uint32(len(c.palRAM))*2 {
		c.palRAM[(addr-hw.PalRAMBase)/2] = v
	}
}

// StepFrame advances board-level time by one video frame: the
// watchdog counts up and trips when starved.
func (c *Console) StepFrame() {
	c.sinceKick++
	if c.sinceKick > WatchdogLimit {
		c.hung = true
	}
}

// Hung reports a tripped watchdog.
func (c *Console) Hung() bool { return c.hung }

// SetPad1 sets player 1's held buttons as canonical (already inverted)
// direction/action bits.
func (c *Console) SetPad1(held uint8) { c.p1 = ^held }

// SetPad2 sets player 2's held buttons.
func (c *Console) SetPad2(held uint8) { c.p2 = ^held }

// SetSystemButtons sets the start/select lines, canonical bits per
// hw.IOP1Start and friends.
func (c *Console) SetSystemButtons(held uint8) { c.statusB = ^held }

// SetCoins sets the coin/service lines.
func (c *Console) SetCoins(held uint8) { c.statusA = ^held }

// SetCabinet programs the BIOS cells describing the hardware.
func (c *Console) SetCabinet(mvs bool, region uint8) {
	if mvs {
		c.ram[hw.BIOSMVSFlag] = 1
	} else {
		c.ram[hw.BIOSMVSFlag] = 0
	}
	c.ram[hw.BIOSCountry] = region
}

// SetSoundHealthy controls whether the modeled coprocessor
// acknowledges commands.
func (c *Console) SetSoundHealthy(ok bool) { c.soundOK = ok }

// SoundLog returns every command byte written to the mailbox.
func (c *Console) SoundLog() []uint8 { return c.soundLog }

// InsertCard puts a formattable card of the given size in the slot.
func (c *Console) InsertCard(size int, writable bool) {
	if size > hw.MemcardMax {
		size = hw.MemcardMax
	}
	c.card = make([]byte, size)
	c.cardInserted = true
	c.cardStat &^= hw.CardPresentBit
	if writable {
		c.cardStat |= hw.CardWriteProtBit
	} else {
		c.cardStat &^= hw.CardWriteProtBit
	}
}

// EjectCard empties the slot.
func (c *Console) EjectCard() {
	c.cardInserted = false
	c.card = nil
	c.cardStat |= hw.CardPresentBit
}
