// Package memcard accesses the backup memory card. The card sits on a
// word-wide bus with only the upper byte wired, so logical byte n
// lives at base + 2n.
package memcard

import "github.com/manicakes/progearsdk/internal/hw"

// Signature marks a formatted card.
var Signature = []byte("NEO-GEO")

// Card wraps the card window and status port.
type Card struct {
	bus hw.Bus
}

func New(bus hw.Bus) *Card {
	return &Card{bus: bus}
}

// Present reports whether a card is inserted. The status bit is
// active-low.
func (c *Card) Present() bool {
	return c.bus.Read8(hw.IOCardStat)&hw.CardPresentBit == 0
}

// WriteProtected reports the card's write-protect switch.
func (c *Card) WriteProtected() bool {
	if !c.Present() {
		return false
	}
	return c.bus.Read8(hw.IOCardStat)&hw.CardWriteProtBit == 0
}

// ReadByte reads logical byte offset. Out-of-range reads return 0.
func (c *Card) ReadByte(offset int) uint8 {
	if offset < 0 || offset >= hw.MemcardMax {
		return 0
	}
	return c.bus.Read8(hw.MemcardBase + uint32(offset)*2)
}

// WriteByte writes logical byte offset. Out-of-range or protected
// writes are dropped; the caller checks WriteProtected up front when
// it cares.
func (c *Card) WriteByte(offset int, v uint8) {
	if offset < 0 || offset >= hw.MemcardMax {
		return
	}
	c.bus.Write8(hw.MemcardBase+uint32(offset)*2, v)
}

// Read copies len(dst) bytes starting at offset. Returns the number of
// bytes actually read before the card end.
func (c *Card) Read(offset int, dst []byte) int {
	n := 0
	for i := range dst {
		if offset+i >= hw.MemcardMax {
			break
		}
		dst[i] = c.ReadByte(offset + i)
		n++
	}
	return n
}

// Write copies src to the card starting at offset. Returns the number
// of bytes written.
func (c *Card) Write(offset int, src []byte) int {
	n := 0
	for i, b := range src {
		if offset+i >= hw.MemcardMax {
			break
		}
		c.WriteByte(offset+i, b)
		n++
	}
	return n
}

// Formatted reports whether the card starts with the format signature.
func (c *Card) Formatted() bool {
	if !c.Present() {
		return false
	}
	for i, b := range Signature {
		if c.ReadByte(i) != b {
			return false
		}
	}
	return true
}

// Format writes the signature and zeroes the rest of the card. Returns
// false if no card is present or it is write-protected.
func (c *Card) Format() bool {
	if !c.Present() || c.WriteProtected() {
		return false
	}
	c.Write(0, Signature)
	for i := len(Signature); i < hw.MemcardMax; i++ {
		c.WriteByte(i, 0)
	}
	return true
}
