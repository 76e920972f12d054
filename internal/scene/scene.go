// Package scene owns the actor table and turns it into hardware
// sprites every frame. Actors are drawn in ascending Z, ties broken by
// creation order, each visible actor claiming a run of consecutive
// sprite slots for its columns.
package scene

import (
	"sort"

	"github.com/manicakes/progearsdk/internal/fixmath"
	"github.com/manicakes/progearsdk/internal/hw"
)

// ActorMax is the actor table capacity. Fixed at build time; Create
// returns an invalid handle when the table is full.
const ActorMax = 96

// MaxY caps world Y at the hardware sprite-Y range.
const MaxY = 512

// Handle names an actor slot. A stale handle (slot since recycled) is
// detected by the generation counter and resolves to nil.
type Handle struct {
	index uint16
	gen   uint16
}

// NoHandle is the invalid handle; Create returns it on exhaustion.
var NoHandle = Handle{index: 0xFFFF}

// Valid reports whether the handle ever referred to an actor. It does
// not check staleness; Scene.Get does.
func (h Handle) Valid() bool { return h.index != 0xFFFF }

type actorState uint8

const (
	stateFree actorState = iota
	stateInactive
	stateActive
	stateHidden
)

// Actor is a positioned visual in the scene. Fields are mutated
// through methods so the draw pass can track dirtiness.
type Actor struct {
	X, Y fixmath.Fixed
	Z    int

	visual *Visual
	anim   animState
	flipH  bool
	flipV  bool

	screenSpace  bool
	sizeW, sizeH int // display dims in tiles, 0 = visual dims

	state actorState
	gen   uint16
	seq   uint32
	slot  int // sprite run claimed last draw, -1 when none
	dirty bool
}

// Scene is the actor table plus the camera and parallax layers.
type Scene struct {
	lspc *hw.LSPC

	actors [ActorMax]Actor
	free   []uint16
	seq    uint32

	Camera Camera

	layers []*Parallax

	usedSlots int // sprite run length of the previous draw
	overflow  int
}

func New(lspc *hw.LSPC) *Scene {
	s := &Scene{lspc: lspc}
	s.free = make([]uint16, 0, ActorMax)
	for i := ActorMax - 1; i >= 0; i-- {
		s.actors[i].slot = -1
		s.free = append(s.free, uint16(i))
	}
	s.Camera.init()
	return s
}

// Create allocates an actor in the Inactive state. Returns NoHandle
// when the table is full.
func (s *Scene) Create(v *Visual) Handle {
	if len(s.free) == 0 {
		return NoHandle
	}
	idx := s.free[len(s.free)-1]
	s.free = s.free[:len(s.free)-1]

	a := &s.actors[idx]
	gen := a.gen
	*a = Actor{visual: v, state: stateInactive, gen: gen, slot: -1, dirty: true}
	a.anim.set(nil)
	s.seq++
	a.seq = s.seq

	return Handle{index: idx, gen: gen}
}

// Get resolves a handle, or nil if it is invalid or stale.
func (s *Scene) Get(h Handle) *Actor {
	if h.index >= ActorMax {
		return nil
	}
	a := &s.actors[h.index]
	if a.state == stateFree || a.gen != h.gen {
		return nil
	}
	return a
}

// Destroy frees the slot. The sprites it held are released on the next
// draw. Stale handles are a no-op.
func (s *Scene) Destroy(h Handle) {
	a := s.Get(h)
	if a == nil {
		return
	}
	a.state = stateFree
	a.gen++
	s.free = append(s.free, h.index)
}

// AddToScene activates an Inactive actor. Active and Hidden actors are
// unaffected.
func (s *Scene) AddToScene(h Handle) {
	a := s.Get(h)
	if a == nil || a.state != stateInactive {
		return
	}
	a.state = stateActive
	a.dirty = true
}

// ActiveCount reports how many actors currently consume sprite slots
// when on screen.
func (s *Scene) ActiveCount() int {
	n := 0
	for i := range s.actors {
		if s.actors[i].state == stateActive {
			n++
		}
	}
	return n
}

// OverflowCount reports how many sprites were dropped on the last draw
// because the hardware table filled.
func (s *Scene) OverflowCount() int {
	return s.overflow
}

// SetPosition moves the actor in world space. Y is capped to the
// hardware range.
func (a *Actor) SetPosition(x, y fixmath.Fixed) {
	if y > fixmath.FIX(MaxY) {
		y = fixmath.FIX(MaxY)
	}
	a.X = x
	a.Y = y
}

// SetZ changes the draw layer. Takes effect on the next draw.
func (a *Actor) SetZ(z int) { a.Z = z }

// SetVisible toggles between Active and Hidden. Hidden actors keep
// their state but consume no sprites.
func (a *Actor) SetVisible(visible bool) {
	switch {
	case visible && a.state == stateHidden:
		a.state = stateActive
		a.dirty = true
	case !visible && a.state == stateActive:
		a.state = stateHidden
	}
}

// Visible reports whether the actor currently draws.
func (a *Actor) Visible() bool { return a.state == stateActive }

// SetVisual swaps the tile layout.
func (a *Actor) SetVisual(v *Visual) {
	a.visual = v
	a.dirty = true
}

// Visual returns the current tile layout.
func (a *Actor) Visual() *Visual { return a.visual }

// SetFlip mirrors the sprite horizontally and/or vertically.
func (a *Actor) SetFlip(h, v bool) {
	if a.flipH != h || a.flipV != v {
		a.flipH = h
		a.flipV = v
		a.dirty = true
	}
}

// SetScreenSpace pins the actor to screen coordinates. Screen-space
// actors ignore the camera position and zoom, so UI sprites hold still
// while the world scrolls.
func (a *Actor) SetScreenSpace(on bool) {
	a.screenSpace = on
}

// SetSize overrides the display dimensions in tiles. The visual's
// tiles repeat to fill the larger area. Zero restores the visual's own
// dimensions.
func (a *Actor) SetSize(cols, rows int) {
	if cols == a.sizeW && rows == a.sizeH {
		return
	}
	a.sizeW = cols
	a.sizeH = rows
	a.dirty = true
}

func (a *Actor) displayDims() (int, int) {
	w, h := a.visual.Width, a.visual.Height
	if a.sizeW > 0 {
		w = a.sizeW
	}
	if a.sizeH > 0 {
		h = a.sizeH
	}
	return w, h
}

// Play starts an animation; nil stops it and returns to the visual's
// base tiles.
func (a *Actor) Play(anim *Anim) {
	a.anim.set(anim)
	a.dirty = true
}

// AnimDone reports a non-looping animation having reached its last
// cell.
func (a *Actor) AnimDone() bool { return a.anim.done }

// Update advances animations and the camera. Call once per frame
// before Draw.
func (s *Scene) Update() {
	for i := range s.actors {
		a := &s.actors[i]
		if a.state != stateActive && a.state != stateHidden {
			continue
		}
		if a.anim.advance() {
			a.dirty = true
		}
	}
	s.Camera.update(s)
}

// Draw assigns sprite runs and writes the control blocks: parallax
// layers first, then actors in Z-then-creation order. Sprites past the
// hardware budget are dropped and counted.
func (s *Scene) Draw() {
	s.overflow = 0
	slot := 0

	camX := s.Camera.screenOriginX()
	camY := s.Camera.screenOriginY()

	for _, l := range s.layers {
		slot = l.draw(s.lspc, slot, camX, &s.overflow)
	}

	order := make([]*Actor, 0, ActorMax)
	for i := range s.actors {
		if s.actors[i].state == stateActive && s.actors[i].visual != nil {
			order = append(order, &s.actors[i])
		}
	}
	sort.SliceStable(order, func(i, j int) bool {
		if order[i].Z != order[j].Z {
			return order[i].Z < order[j].Z
		}
		return order[i].seq < order[j].seq
	})

	zoom := s.Camera.zoom
	shrink := ShrinkWord(zoom)

	for _, a := range order {
		dw, dh := a.displayDims()
		sx := a.X.Int()
		sy := a.Y.Int()
		azoom := zoom
		ashrink := shrink
		if a.screenSpace {
			azoom = 16
			ashrink = ShrinkWord(16)
		} else {
			sx -= camX
			sy -= camY
		}

		w := (dw * 16 * int(azoom)) >> 4
		h := (dh * 16 * int(azoom)) >> 4
		if sx+w < 0 || sx > hw.ScreenWidth || sy+h < 0 || sy > hw.ScreenHeight {
			if a.slot >= 0 {
				a.slot = -1
				a.dirty = true
			}
			continue
		}

		if slot+dw > hw.SpriteMax {
			s.overflow += dw
			if a.slot >= 0 {
				a.slot = -1
				a.dirty = true
			}
			continue
		}

		if a.dirty || a.slot != slot {
			s.writeTiles(a, slot)
			a.slot = slot
			a.dirty = false
		}

		height := hw.AdjustedHeight(dh, uint8(ashrink))
		s.lspc.SpriteWriteShrink(slot, dw, ashrink)
		s.lspc.SpriteWriteYChain(slot, dw, sy, height)
		s.lspc.SpriteWriteXChain(slot, dw, sx, azoom)

		slot += dw
	}

	// Release sprites the previous frame used but this one didn't.
	if slot < s.usedSlots {
		s.lspc.SpriteHide(slot, s.usedSlots-slot)
	}
	s.usedSlots = slot
}

func (s *Scene) writeTiles(a *Actor, slot int) {
	v := a.visual
	dw, dh := a.displayDims()
	base := a.anim.tileBase(v.TileBase)
	attr := hw.SpriteAttr(v.Palette, a.flipH, a.flipV)

	tiles := make([]uint16, dh)
	attrs := make([]uint16, dh)
	for c := 0; c < dw; c++ {
		col := c % v.Width
		if a.flipH {
			col = v.Width - 1 - col
		}
		for r := 0; r < dh; r++ {
			row := r % v.Height
			if a.flipV {
				row = v.Height - 1 - row
			}
			tiles[r] = base + uint16(col*v.Height+row)
			attrs[r] = attr
		}
		s.lspc.SpriteWriteTiles(slot+c, tiles, attrs)
	}
}

// ShrinkWord packs a 1..16 zoom into an SCB2 word: horizontal shrink
// in the high byte (0x0F = full), vertical in the low (0xFF = full).
func ShrinkWord(zoom uint8) uint16 {
	if zoom < 1 {
		zoom = 1
	}
	if zoom > 16 {
		zoom = 16
	}
	return uint16(zoom-1)<<8 | (uint16(zoom)*16 - 1)
}
