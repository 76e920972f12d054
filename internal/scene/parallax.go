package scene

import (
	"github.com/manicakes/progearsdk/internal/fixmath"
	"github.com/manicakes/progearsdk/internal/hw"
)

// Parallax is a horizontally tiling background strip drawn before any
// actor. It scrolls at a fraction of the camera's movement; factor 0
// pins it to the screen, factor 1 scrolls with the world.
type Parallax struct {
	visual *Visual
	factor fixmath.Fixed
	y      int
}

// AddParallax appends a layer. Layers draw in the order added, so call
// back-to-front.
func (s *Scene) AddParallax(v *Visual, factor fixmath.Fixed, y int) *Parallax {
	l := &Parallax{visual: v, factor: factor, y: y}
	s.layers = append(s.layers, l)
	return l
}

// SetY moves the layer's screen row.
func (l *Parallax) SetY(y int) { l.y = y }

// draw writes enough copies of the strip to cover the screen width and
// returns the next free sprite slot.
func (l *Parallax) draw(lspc *hw.LSPC, slot, camX int, overflow *int) int {
	v := l.visual
	if v == nil || v.Width <= 0 {
		return slot
	}

	width := v.PixelWidth()
	scroll := fixmath.Mul(fixmath.FIX(camX), l.factor).Int()
	offset := -(scroll % width)
	if offset > 0 {
		offset -= width
	}

	tiles := make([]uint16, v.Height)
	attrs := make([]uint16, v.Height)
	attr := hw.SpriteAttr(v.Palette, false, false)

	for x := offset; x < hw.ScreenWidth; x += width {
		if slot+v.Width > hw.SpriteMax {
			*overflow += v.Width
			return slot
		}
		for c := 0; c < v.Width; c++ {
			for r := 0; r < v.Height; r++ {
				tiles[r] = v.TileBase + uint16(c*v.Height+r)
				attrs[r] = attr
			}
			lspc.SpriteWriteTiles(slot+c, tiles, attrs)
		}
		lspc.SpriteWriteShrink(slot, v.Width, ShrinkWord(16))
		lspc.SpriteWriteYChain(slot, v.Width, l.y, uint8(v.Height))
		lspc.SpriteWriteXChain(slot, v.Width, x, 16)
		slot += v.Width
	}
	return slot
}
