package console

// TileSource supplies pixel data for tiles. Real character ROMs are
// outside the runtime's scope, so the front-end plugs in decoded data
// and tests use the procedural source.
type TileSource interface {
	// SpritePixel returns the palette index (0..15) of pixel (x,y) in
	// a 16×16 sprite tile. Index 0 is transparent.
	SpritePixel(tile uint16, x, y int) uint8

	// FixPixel returns the palette index of pixel (x,y) in an 8×8 fix
	// tile.
	FixPixel(tile uint16, x, y int) uint8
}

// CheckerTiles is a procedural source: each tile renders as a checker
// whose colors derive from the tile index. Fix tiles in the printable
// ASCII range render a crude glyph block so text is visible.
type CheckerTiles struct{}

func (CheckerTiles) SpritePixel(tile uint16, x, y int) uint8 {
	if (x/4+y/4)%2 == 0 {
		return uint8(tile%14) + 1
	}
	return uint8(tile%7) + 8
}

func (CheckerTiles) FixPixel(tile uint16, x, y int) uint8 {
	c := tile & 0xFF
	if c == 0 || c == ' ' {
		return 0
	}
	// A filled box with a one-pixel margin stands in for the glyph.
	if x == 0 || x == 7 || y == 0 || y == 7 {
		return 0
	}
	return 1
}
