// Package palette manages the 256×16 color RAM. Sixteen-color writes
// are fully unrolled; the bus cycle budget during active display is
// tight and a counted loop costs too much.
package palette

import (
	"github.com/manicakes/progearsdk/internal/hw"
	"github.com/manicakes/progearsdk/internal/rgb"
)

// Bank is a 16-color palette snapshot, used for backup and restore.
type Bank [16]rgb.Color

// Manager writes palettes through the bus.
type Manager struct {
	bus hw.Bus
}

func New(bus hw.Bus) *Manager {
	return &Manager{bus: bus}
}

func colorAddr(pal uint8, index int) uint32 {
	return hw.PalRAMBase + (uint32(pal)*hw.PaletteSize+uint32(index))*2
}

// SetColor writes one color cell.
func (m *Manager) SetColor(pal uint8, index int, c rgb.Color) {
	if index < 0 || index >= hw.PaletteSize {
		return
	}
	m.bus.Write16(colorAddr(pal, index), uint16(c))
}

// Color reads one color cell back.
func (m *Manager) Color(pal uint8, index int) rgb.Color {
	if index < 0 || index >= hw.PaletteSize {
		return 0
	}
	return rgb.Color(m.bus.Read16(colorAddr(pal, index)))
}

// Set writes all sixteen colors of a palette.
func (m *Manager) Set(pal uint8, b *Bank) {
	base := colorAddr(pal, 0)
	m.bus.Write16(base, uint16(b[0]))
	m.bus.Write16(base+2, uint16(b[1]))
	m.bus.Write16(base+4, uint16(b[2]))
	m.bus.Write16(base+6, uint16(b[3]))
	m.bus.Write16(base+8, uint16(b[4]))
	m.bus.Write16(base+10, uint16(b[5]))
	m.bus.Write16(base+12, uint16(b[6]))
	m.bus.Write16(base+14, uint16(b[7]))
	m.bus.Write16(base+16, uint16(b[8]))
	m.bus.Write16(base+18, uint16(b[9]))
	m.bus.Write16(base+20, uint16(b[10]))
	m.bus.Write16(base+22, uint16(b[11]))
	m.bus.Write16(base+24, uint16(b[12]))
	m.bus.Write16(base+26, uint16(b[13]))
	m.bus.Write16(base+28, uint16(b[14]))
	m.bus.Write16(base+30, uint16(b[15]))
}

// Backup reads all sixteen colors into the caller's bank.
func (m *Manager) Backup(pal uint8, b *Bank) {
	base := colorAddr(pal, 0)
	b[0] = rgb.Color(m.bus.Read16(base))
	b[1] = rgb.Color(m.bus.Read16(base + 2))
	b[2] = rgb.Color(m.bus.Read16(base + 4))
	b[3] = rgb.Color(m.bus.Read16(base + 6))
	b[4] = rgb.Color(m.bus.Read16(base + 8))
	b[5] = rgb.Color(m.bus.Read16(base + 10))
	b[6] = rgb.Color(m.bus.Read16(base + 12))
	b[7] = rgb.Color(m.bus.Read16(base + 14))
	b[8] = rgb.Color(m.bus.Read16(base + 16))
	b[9] = rgb.Color(m.bus.Read16(base + 18))
	b[10] = rgb.Color(m.bus.Read16(base + 20))
	b[11] = rgb.Color(m.bus.Read16(base + 22))
	b[12] = rgb.Color(m.bus.Read16(base + 24))
	b[13] = rgb.Color(m.bus.Read16(base + 26))
	b[14] = rgb.Color(m.bus.Read16(base + 28))
	b[15] = rgb.Color(m.bus.Read16(base + 30))
}

// Restore writes a backed-up bank. Same operation as Set, named for
// intent at call sites.
func (m *Manager) Restore(pal uint8, b *Bank) {
	m.Set(pal, b)
}

// Copy duplicates one palette into another.
func (m *Manager) Copy(dst, src uint8) {
	var b Bank
	m.Backup(src, &b)
	m.Set(dst, &b)
}

// Clear resets a palette: color 0 to the transparent reference, the
// rest to black.
func (m *Manager) Clear(pal uint8) {
	var b Bank
	b[0] = rgb.Reference
	m.Set(pal, &b)
}

// Fill sets colors 1..15 to one color; color 0 stays reference.
func (m *Manager) Fill(pal uint8, c rgb.Color) {
	var b Bank
	b[0] = rgb.Reference
	for i := 1; i < hw.PaletteSize; i++ {
		b[i] = c
	}
	m.Set(pal, &b)
}

// Gradient fills colors 1..15 with a blend from c0 to c1.
func (m *Manager) Gradient(pal uint8, c0, c1 rgb.Color) {
	var b Bank
	b[0] = rgb.Reference
	for i := 1; i < hw.PaletteSize; i++ {
		b[i] = rgb.Blend(c0, c1, uint8((i-1)*255/14))
	}
	m.Set(pal, &b)
}

// ShadedRamp fills colors 1..15 with c darkened progressively, color 1
// brightest. Darken takes channel steps, so step by two per color for
// a 0..28 sweep across the ramp. Useful for depth-cued sprites.
func (m *Manager) ShadedRamp(pal uint8, c rgb.Color) {
	var b Bank
	b[0] = rgb.Reference
	for i := 1; i < hw.PaletteSize; i++ {
		b[i] = rgb.Darken(c, uint8((i-1)*2))
	}
	m.Set(pal, &b)
}

// GrayscaleRamp fills colors 1..15 from white down to black.
func (m *Manager) GrayscaleRamp(pal uint8) {
	var b Bank
	b[0] = rgb.Reference
	for i := 1; i < hw.PaletteSize; i++ {
		v := uint8(31 - (i-1)*31/14)
		b[i] = rgb.RGB(v, v, v)
	}
	m.Set(pal, &b)
}

// FadeToward writes a bank with every color of src (except color 0)
// blended toward c by ratio. At ratio 255 the palette is solid c.
func (m *Manager) FadeToward(pal uint8, src *Bank, c rgb.Color, ratio uint8) {
	var b Bank
	b[0] = src[0]
	for i := 1; i < hw.PaletteSize; i++ {
		b[i] = rgb.Blend(src[i], c, ratio)
	}
	m.Set(pal, &b)
}

// FadeToBlack dims a palette toward black by ratio, from the given
// snapshot.
func (m *Manager) FadeToBlack(pal uint8, src *Bank, ratio uint8) {
	m.FadeToward(pal, src, rgb.Black, ratio)
}

// SetBackdrop writes the border color cell.
func (m *Manager) SetBackdrop(c rgb.Color) {
	m.bus.Write16(hw.BackdropAddr, uint16(c))
}

// Backdrop reads the border color cell.
func (m *Manager) Backdrop() rgb.Color {
	return rgb.Color(m.bus.Read16(hw.BackdropAddr))
}

// Default is a general-purpose palette: reference, a grayscale ramp in
// the low colors, and primaries in the high colors.
var Default = Bank{
	rgb.Reference,
	rgb.White,
	rgb.RGB(24, 24, 24),
	rgb.RGB(16, 16, 16),
	rgb.RGB(8, 8, 8),
	rgb.Black,
	rgb.Red,
	rgb.Green,
	rgb.Blue,
	rgb.Yellow,
	rgb.Cyan,
	rgb.Magenta,
	rgb.RGB(31, 16, 0),
	rgb.RGB(16, 0, 31),
	rgb.RGB(0, 31, 16),
	rgb.RGB(31, 31, 16),
}
