package hw

// LSPC drives the video controller's batched VRAM port. Writes latch an
// address once via Setup, then stream words through Data while the
// hardware advances the cursor by the modifier register.
//
// Contract: every compound operation that changes the modifier restores
// it to 1 before returning. Callers using the raw Setup/Data primitives
// directly carry that obligation themselves.
type LSPC struct {
	bus Bus
}

func NewLSPC(bus Bus) *LSPC {
	return &LSPC{bus: bus}
}

// Addr latches the VRAM write cursor.
func (l *LSPC) Addr(a uint16) {
	l.bus.Write16(LSPCAddr, a)
}

// Mod sets the post-increment applied after each Data write.
func (l *LSPC) Mod(m uint16) {
	l.bus.Write16(LSPCMod, m)
}

// Setup latches cursor and modifier together.
func (l *LSPC) Setup(addr, mod uint16) {
	l.Addr(addr)
	l.Mod(mod)
}

// Data emits one word at the cursor; the cursor then advances by the
// modifier.
func (l *LSPC) Data(w uint16) {
	l.bus.Write16(LSPCData, w)
}

// ReadData reads the word at the cursor.
func (l *LSPC) ReadData() uint16 {
	return l.bus.Read16(LSPCData)
}

// Fill emits the same word count times.
func (l *LSPC) Fill(w uint16, count int) {
	for i := 0; i < count; i++ {
		l.Data(w)
	}
}

// Clear emits count zero words.
func (l *LSPC) Clear(count int) {
	l.Fill(0, count)
}

/*
 * Fix layer. Column-major: cell (x,y) lives at VRAMFix + x*32 + y, so a
 * horizontal run uses modifier 32 and a vertical run modifier 1. Each
 * cell word is (palette<<12) | (tile & 0x0FFF).
 */

// FixCellAddr returns the VRAM address of fix cell (x,y).
func FixCellAddr(x, y int) uint16 {
	return uint16(VRAMFix + (x << 5) + y)
}

// FixCellWord packs a palette/tile pair into a fix cell word.
func FixCellWord(tile uint16, palette uint8) uint16 {
	return uint16(palette)<<12 | (tile & 0x0FFF)
}

// FixPut writes one cell. Out-of-range coordinates are a no-op.
func (l *LSPC) FixPut(x, y int, tile uint16, palette uint8) {
	if x < 0 || y < 0 || x >= FixWidth || y >= FixHeight {
		return
	}
	l.Addr(FixCellAddr(x, y))
	l.Data(FixCellWord(tile, palette))
}

// FixClear zeroes a w×h cell rectangle, clipped to the layer.
func (l *LSPC) FixClear(x, y, w, h int) {
	if w <= 0 || h <= 0 || x >= FixWidth || y >= FixHeight {
		return
	}
	if x < 0 {
		w += x
		x = 0
	}
	if y < 0 {
		h += y
		y = 0
	}
	if w <= 0 || h <= 0 {
		return
	}

	count := w
	if x+count > FixWidth {
		count = FixWidth - x
	}

	for row := 0; row < h && y+row < FixHeight; row++ {
		l.Setup(FixCellAddr(x, y+row), 32)
		l.Clear(count)
	}

	l.Mod(1)
}

// FixClearAll zeroes the whole 40×32 layer.
func (l *LSPC) FixClearAll() {
	l.Setup(VRAMFix, 1)
	l.Clear(FixWidth * FixHeight)
}

// FixRow writes a horizontal run of tiles sharing one palette.
func (l *LSPC) FixRow(x, y int, tiles []uint16, palette uint8) {
	if x < 0 || y < 0 || x >= FixWidth || y >= FixHeight || len(tiles) == 0 {
		return
	}

	l.Setup(FixCellAddr(x, y), 32)

	pal := uint16(palette) << 12
	for i, t := range tiles {
		if x+i >= FixWidth {
			break
		}
		l.Data(pal | (t & 0x0FFF))
	}

	l.Mod(1)
}

// FixText renders an ASCII string starting at (x,y); character c maps to
// tile fontBase+c. The run clips at the right edge.
func (l *LSPC) FixText(x, y int, s string, palette uint8, fontBase uint16) int {
	if x < 0 || y < 0 || x >= FixWidth || y >= FixHeight || s == "" {
		return 0
	}

	l.Setup(FixCellAddr(x, y), 32)

	pal := uint16(palette) << 12
	count := 0
	for i := 0; i < len(s) && x+i < FixWidth; i++ {
		tile := fontBase + uint16(s[i])
		l.Data(pal | (tile & 0x0FFF))
		count++
	}

	l.Mod(1)
	return count
}

/*
 * Sprite control blocks.
 */

// SpriteWriteTiles writes tile/attribute pairs for one sprite column
// into SCB1 and zeroes the remaining rows so stale tiles never show.
func (l *LSPC) SpriteWriteTiles(sprite int, tiles, attrs []uint16) {
	l.Setup(uint16(VRAMSCB1+sprite*SCB1SpriteSize), 1)

	n := len(tiles)
	if n > 32 {
		n = 32
	}
	for row := 0; row < n; row++ {
		l.Data(tiles[row])
		l.Data(attrs[row])
	}
	for row := n; row < 32; row++ {
		l.Data(0)
		l.Data(0)
	}
}

// SpriteWriteTile updates a single SCB1 row.
func (l *LSPC) SpriteWriteTile(sprite, row int, tile, attr uint16) {
	l.Setup(uint16(VRAMSCB1+sprite*SCB1SpriteSize+row*SCB1WordsPerTile), 1)
	l.Data(tile)
	l.Data(attr)
}

// SpriteWriteShrink writes the same SCB2 shrink word for count sprites.
func (l *LSPC) SpriteWriteShrink(first, count int, shrink uint16) {
	if count <= 0 {
		return
	}
	l.Setup(uint16(VRAMSCB2+first), 1)
	l.Fill(shrink, count)
}

// SpriteWriteYChain writes SCB3 for a chain: the head sprite carries
// position and height, the rest only the sticky bit.
func (l *LSPC) SpriteWriteYChain(first, count int, y int, height uint8) {
	if count <= 0 {
		return
	}
	l.Setup(uint16(VRAMSCB3+first), 1)
	l.Data(PackSCB3(y, height))
	for i := 1; i < count; i++ {
		l.Data(SCB3StickyBit)
	}
}

// SpriteWriteXChain writes SCB4 X positions for a run of columns, each
// offset by 16 pixels scaled by zoom (16 = full size).
func (l *LSPC) SpriteWriteXChain(first, count int, x int, zoom uint8) {
	if count <= 0 {
		return
	}
	l.Setup(uint16(VRAMSCB4+first), 1)
	for col := 0; col < count; col++ {
		colX := x + (col*16*int(zoom))>>4
		l.Data(PackSCB4(colX))
	}
}

// SpriteHide zeroes SCB3 for a run of sprites (height 0 = invisible).
func (l *LSPC) SpriteHide(first, count int) {
	if count <= 0 {
		return
	}
	l.Setup(uint16(VRAMSCB3+first), 1)
	l.Clear(count)
}

// SpriteHideAll hides every hardware sprite.
func (l *LSPC) SpriteHideAll() {
	l.Setup(VRAMSCB3, 1)
	l.Clear(SpriteMax)
}

/*
 * Packing helpers. The hardware Y axis is inverted: hardware 496 is
 * screen top, values wrap in a 9-bit field.
 */

// ScreenToHWY converts a screen Y to the hardware coordinate.
func ScreenToHWY(screenY int) int {
	hwY := 496 - screenY
	if hwY < 0 {
		hwY += 512
	}
	return hwY & 0x1FF
}

// PackSCB3 packs screen Y and tile height into an SCB3 word.
func PackSCB3(screenY int, height uint8) uint16 {
	return uint16(ScreenToHWY(screenY))<<SCB3YShift | uint16(height&SCB3HeightMask)
}

// PackSCB4 packs a screen X into an SCB4 word.
func PackSCB4(screenX int) uint16 {
	return uint16(screenX&0x1FF) << SCB4XShift
}

// SpriteAttr builds an SCB1 attribute word. The hardware displays
// mirrored by default, so the H-flip bit is set when NOT flipping.
func SpriteAttr(palette uint8, hFlip, vFlip bool) uint16 {
	attr := uint16(palette) << SCB1PaletteShift
	if vFlip {
		attr |= SCB1VFlipBit
	}
	if !hFlip {
		attr |= SCB1HFlipBit
	}
	return attr
}

// AdjustedHeight returns the tile rows needed once vertical shrink is
// applied; shrunk sprites cover fewer rows.
func AdjustedHeight(rows int, vShrink uint8) uint8 {
	adjusted := (rows*int(vShrink) + 254) / 255
	if adjusted < 1 {
		adjusted = 1
	}
	if adjusted > 32 {
		adjusted = 32
	}
	return uint8(adjusted)
}
