package ui

import (
	"golang.org/x/image/font/basicfont"
	"golang.org/x/image/math/fixed"

	"github.com/manicakes/progearsdk/internal/console"
)

// FontTiles is a tile source whose fix glyphs are rasterized from
// basicfont, so printed text is readable in the framebuffer. Sprite
// tiles fall through to the procedural checker source.
type FontTiles struct {
	sprites console.TileSource
	glyphs  [128][8]uint8 // per-row bitmasks, bit n = column n
}

func NewFontTiles() *FontTiles {
	ft := &FontTiles{sprites: console.CheckerTiles{}}
	face := basicfont.Face7x13
	for ch := rune('!'); ch <= '~'; ch++ {
		dr, mask, maskp, _, ok := face.Glyph(fixed.P(0, face.Ascent), ch)
		if !ok {
			continue
		}
		// Squeeze the 7x13 glyph into the 8x8 cell.
		for gy := 0; gy < dr.Dy(); gy++ {
			for gx := 0; gx < dr.Dx(); gx++ {
				_, _, _, a := mask.At(maskp.X+gx, maskp.Y+gy).RGBA()
				if a < 0x8000 {
					continue
				}
				sy := gy * 8 / dr.Dy()
				if gx < 8 && sy < 8 {
					ft.glyphs[ch][sy] |= 1 << uint(gx)
				}
			}
		}
	}
	return ft
}

func (ft *FontTiles) SpritePixel(tile uint16, x, y int) uint8 {
	return ft.sprites.SpritePixel(tile, x, y)
}

func (ft *FontTiles) FixPixel(tile uint16, x, y int) uint8 {
	ch := tile & 0xFF
	if ch >= 128 {
		return 0
	}
	if ft.glyphs[ch][y]&(1<<uint(x)) != 0 {
		return 1
	}
	return 0
}
