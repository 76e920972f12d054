package console

import (
	"github.com/manicakes/progearsdk/internal/hw"
	"github.com/manicakes/progearsdk/internal/rgb"
)

// Render composites the current video state into a 320×224 RGBA
// buffer: backdrop, then sprites in slot order, then the fix layer on
// top. The buffer layout matches what ebiten's WritePixels expects.
func (c *Console) Render() []byte {
	fb := make([]byte, hw.ScreenWidth*hw.ScreenHeight*4)

	c.fillBackdrop(fb)
	c.renderSprites(fb)
	c.renderFix(fb)

	return fb
}

func (c *Console) fillBackdrop(fb []byte) {
	r, g, b := expandColor(c.backdrop)
	for i := 0; i < len(fb); i += 4 {
		fb[i] = r
		fb[i+1] = g
		fb[i+2] = b
		fb[i+3] = 0xFF
	}
}

// expandColor converts a 15-bit packed color to 8-bit channels,
// honoring the dark bit.
func expandColor(w uint16) (uint8, uint8, uint8) {
	r := uint8(w>>10) & 0x1F
	g := uint8(w>>5) & 0x1F
	b := uint8(w) & 0x1F
	r8 := r<<3 | r>>2
	g8 := g<<3 | g>>2
	b8 := b<<3 | b>>2
	if w&uint16(rgb.DarkBit) != 0 {
		r8 >>= 1
		g8 >>= 1
		b8 >>= 1
	}
	return r8, g8, b8
}

func (c *Console) paletteColor(pal uint8, index uint8) (uint8, uint8, uint8) {
	return expandColor(c.palRAM[uint16(pal)*hw.PaletteSize+uint16(index)])
}

func (c *Console) putPixel(fb []byte, x, y int, pal, index uint8) {
	if index == 0 || x < 0 || x >= hw.ScreenWidth || y < 0 || y >= hw.ScreenHeight {
		return
	}
	r, g, b := c.paletteColor(pal, index)
	i := (y*hw.ScreenWidth + x) * 4
	fb[i] = r
	fb[i+1] = g
	fb[i+2] = b
	fb[i+3] = 0xFF
}

// renderSprites walks the SCB table in slot order. A sticky sprite
// chains to its predecessor: same Y, height, and shrink, X continuing
// where the previous column ended.
func (c *Console) renderSprites(fb []byte) {
	chainY := 0
	chainH := 0
	chainShrink := uint16(0)
	nextX := 0

	for s := 0; s < hw.SpriteMax; s++ {
		scb3 := c.vram[hw.VRAMSCB3+s]
		shrink := c.vram[hw.VRAMSCB2+s]

		var x int
		if scb3&hw.SCB3StickyBit != 0 {
			x = nextX
			shrink = chainShrink
		} else {
			chainY = int(scb3 >> hw.SCB3YShift)
			chainH = int(scb3 & hw.SCB3HeightMask)
			chainShrink = shrink
			x = signed9(int(c.vram[hw.VRAMSCB4+s] >> hw.SCB4XShift))
		}

		if chainH == 0 {
			nextX = x
			continue
		}

		width := int(shrink>>8&0x0F) + 1
		vshrink := int(shrink&0xFF) + 1
		nextX = x + width

		screenY := (496 - chainY) & 0x1FF
		if screenY >= 256 {
			screenY -= 512
		}
		fullH := chainH * 16
		dispH := fullH * vshrink / 256

		for dy := 0; dy < dispH; dy++ {
			srcY := dy * 256 / vshrink
			row := srcY / 16
			tile := c.vram[hw.VRAMSCB1+s*hw.SCB1SpriteSize+row*hw.SCB1WordsPerTile]
			attr := c.vram[hw.VRAMSCB1+s*hw.SCB1SpriteSize+row*hw.SCB1WordsPerTile+1]
			pal := uint8(attr >> hw.SCB1PaletteShift)

			ty := srcY % 16
			if attr&hw.SCB1VFlipBit != 0 {
				ty = 15 - ty
			}
			for dx := 0; dx < width; dx++ {
				tx := dx * 16 / width
				if attr&hw.SCB1HFlipBit == 0 {
					// Flip bit clear means mirrored output.
					tx = 15 - tx
				}
				index := c.Tiles.SpritePixel(tile, tx, ty)
				c.putPixel(fb, x+dx, screenY+dy, pal, index)
			}
		}
	}
}

// signed9 interprets a 9-bit field as -256..255.
func signed9(v int) int {
	v &= 0x1FF
	if v >= 256 {
		v -= 512
	}
	return v
}

func (c *Console) renderFix(fb []byte) {
	for cx := 0; cx < hw.FixWidth; cx++ {
		for cy := 0; cy < hw.FixHeight; cy++ {
			word := c.vram[hw.VRAMFix+cx*32+cy]
			if word == 0 {
				continue
			}
			tile := word & 0x0FFF
			pal := uint8(word >> 12)
			// The fix layer's visible rows start 16px above the
			// sprite plane origin.
			for py := 0; py < 8; py++ {
				for px := 0; px < 8; px++ {
					index := c.Tiles.FixPixel(tile, px, py)
					c.putPixel(fb, cx*8+px, cy*8+py-16, pal, index)
				}
			}
		}
	}
}
