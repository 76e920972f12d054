package scene

// Visual describes a sprite's tile layout. Tiles are stored
// column-major in character ROM: the tile at column c, row r is
// TileBase + c*Height + r. One hardware sprite renders one column.
type Visual struct {
	TileBase uint16
	Width    int // columns, 16px each
	Height   int // rows, 16px each
	Palette  uint8
}

// PixelWidth returns the unzoomed width in pixels.
func (v *Visual) PixelWidth() int { return v.Width * 16 }

// PixelHeight returns the unzoomed height in pixels.
func (v *Visual) PixelHeight() int { return v.Height * 16 }

// Anim is a tile-base cycle. Each frame value replaces the visual's
// TileBase, so animation cells must share the visual's layout.
type Anim struct {
	Frames []uint16
	Rate   uint8 // video frames per cell; 0 holds the first cell
	Loop   bool
}

type animState struct {
	anim *Anim
	cell int
	tick uint8
	done bool
}

func (s *animState) set(a *Anim) {
	s.anim = a
	s.cell = 0
	s.tick = 0
	s.done = a == nil || len(a.Frames) == 0
}

// advance steps one video frame; returns true when the visible cell
// changed.
func (s *animState) advance() bool {
	if s.done || s.anim.Rate == 0 {
		return false
	}
	s.tick++
	if s.tick < s.anim.Rate {
		return false
	}
	s.tick = 0
	s.cell++
	if s.cell >= len(s.anim.Frames) {
		if s.anim.Loop {
			s.cell = 0
		} else {
			s.cell = len(s.anim.Frames) - 1
			s.done = true
		}
	}
	return true
}

func (s *animState) tileBase(fallback uint16) uint16 {
	if s.anim == nil || len(s.anim.Frames) == 0 {
		return fallback
	}
	return s.anim.Frames[s.cell]
}
