package main

import (
	"encoding/binary"

	"github.com/manicakes/progearsdk/internal/engine"
	"github.com/manicakes/progearsdk/internal/fixlayer"
	"github.com/manicakes/progearsdk/internal/fixmath"
	"github.com/manicakes/progearsdk/internal/input"
	"github.com/manicakes/progearsdk/internal/menu"
	"github.com/manicakes/progearsdk/internal/palette"
	"github.com/manicakes/progearsdk/internal/rgb"
	"github.com/manicakes/progearsdk/internal/scene"
)

// Tile indices line up with the built-in checker tile source; any
// tile set with the same layout works.
var (
	playerVisual = scene.Visual{TileBase: 0x010, Width: 2, Height: 2, Palette: 1}
	crateVisual  = scene.Visual{TileBase: 0x040, Width: 1, Height: 1, Palette: 2}
	skyVisual    = scene.Visual{TileBase: 0x060, Width: 4, Height: 2, Palette: 3}
	panelVisual  = scene.Visual{TileBase: 0x080, Width: 5, Height: 5, Palette: 2}
	cursorVisual = scene.Visual{TileBase: 0x0A0, Width: 1, Height: 1, Palette: 1}
)

var walkAnim = scene.Anim{
	Frames: []uint16{0x010, 0x014, 0x018, 0x014},
	Rate:   8,
	Loop:   true,
}

const (
	worldWidth = 640
	groundY    = 176
	walkSpeed  = 2
)

var (
	jumpImpulse = fixmath.FromFloat(-6.5)
	gravity     = fixmath.FromFloat(0.35)
)

// saveOffset is where the demo keeps its score on the memory card,
// past the format signature.
const saveOffset = 32

// demo is a small side-view walker that exercises the scene, camera,
// menu, audio, and memory card layers.
type demo struct {
	player   scene.Handle
	vy       fixmath.Fixed
	onGround bool
	walking  bool

	score   uint32
	credits int

	pause *menu.Menu
}

func loadPalettes(m *palette.Manager) {
	m.Set(0, &palette.Default)
	m.Gradient(1, rgb.RGB(4, 31, 8), rgb.RGB(0, 8, 2))
	m.Gradient(2, rgb.RGB(31, 18, 4), rgb.RGB(10, 4, 0))
	m.Gradient(3, rgb.RGB(8, 12, 31), rgb.RGB(2, 2, 12))
	m.SetBackdrop(rgb.RGB(1, 1, 6))
}

func newDemo(e *engine.Engine) *demo {
	d := &demo{onGround: true}

	e.Scene.AddParallax(&skyVisual, fixmath.FromFloat(0.5), 32)

	d.player = e.Scene.Create(&playerVisual)
	if a := e.Scene.Get(d.player); a != nil {
		a.SetPosition(fixmath.FIX(64), fixmath.FIX(groundY))
		a.SetZ(10)
	}
	e.Scene.AddToScene(d.player)

	for i := 0; i < 6; i++ {
		h := e.Scene.Create(&crateVisual)
		if a := e.Scene.Get(h); a != nil {
			a.SetPosition(fixmath.FIX(140+i*90), fixmath.FIX(groundY+16))
			a.SetZ(5)
		}
		e.Scene.AddToScene(h)
	}

	cam := &e.Scene.Camera
	cam.SetBounds(0, 0, fixmath.FIX(worldWidth-320), 0)
	cam.Track(d.player, fixmath.FIX(40), fixmath.FIX(200))

	d.pause = menu.New(menu.Config{
		Items: []menu.Item{
			{Label: "RESUME", OnConfirm: func(*engine.Engine) {}},
			{Separator: true},
			{Label: "MUSIC", OnConfirm: func(e *engine.Engine) {
				if e.Audio.MusicPlaying() {
					e.Audio.StopMusic()
				} else {
					e.Audio.PlayMusic(2)
				}
			}},
			{Label: "SFX TEST", OnConfirm: func(e *engine.Engine) {
				e.Audio.PlaySFX(7)
			}},
			{Label: "SAVE", OnConfirm: func(e *engine.Engine) {
				d.save(e)
			}},
		},
		CellX:         14,
		CellY:         10,
		TextPalette:   0,
		CursorPalette: 1,
		Panel:         &panelVisual,
		Cursor:        &cursorVisual,
		PanelZ:        100,
		DimPalettes:   []uint8{1, 2, 3},
		DimRatio:      150,
	})

	d.restore(e)
	return d
}

// frame is the per-frame game callback.
func (d *demo) frame(e *engine.Engine) {
	if e.Overlay() == nil {
		d.control(e)
	}
	d.hud(e)
}

func (d *demo) control(e *engine.Engine) {
	p := &e.Input.Players[0]
	a := e.Scene.Get(d.player)
	if a == nil {
		return
	}

	dx := p.AxisX()
	x := a.X + fixmath.FIX(dx*walkSpeed)
	x = fixmath.Clamp(x, 0, fixmath.FIX(worldWidth-playerVisual.PixelWidth()))
	if dx != 0 {
		a.SetFlip(dx < 0, false)
	}
	if walking := dx != 0 && d.onGround; walking != d.walking {
		d.walking = walking
		if walking {
			a.Play(&walkAnim)
		} else {
			a.Play(nil)
		}
	}

	if p.IsPressed(input.A) && d.onGround {
		d.vy = jumpImpulse
		d.onGround = false
		e.Audio.PlaySFX(1)
	}
	y := a.Y
	if !d.onGround {
		d.vy += gravity
		y += d.vy
		if y >= fixmath.FIX(groundY) {
			y = fixmath.FIX(groundY)
			d.vy = 0
			d.onGround = true
			e.Scene.Camera.Shake(fixmath.FIX(2))
		}
	}
	a.SetPosition(x, y)

	if p.IsPressed(input.B) {
		d.score += 100
		e.Audio.PlaySFX(3)
	}
	if p.IsPressed(input.C) {
		e.Scene.Camera.Shake(fixmath.FIX(4))
	}
	if p.IsPressed(input.Start) {
		d.pause.Open(e)
	}
	if e.Input.CoinPressed(input.Coin1) {
		d.credits++
		e.Audio.PlaySFX(5)
	}
}

func (d *demo) hud(e *engine.Engine) {
	e.Fix.Printf(fixlayer.SafeLeft, fixlayer.VisibleTop, 0, "SCORE %06d", d.score)
	e.Fix.Printf(fixlayer.SafeRight-8, fixlayer.VisibleTop, 0, "CREDIT %d", d.credits)
}

func (d *demo) save(e *engine.Engine) {
	if !e.Card.Present() || e.Card.WriteProtected() {
		return
	}
	if !e.Card.Formatted() && !e.Card.Format() {
		return
	}
	var buf [4]byte
	binary.LittleEndian.PutUint32(buf[:], d.score)
	e.Card.Write(saveOffset, buf[:])
}

func (d *demo) restore(e *engine.Engine) {
	if !e.Card.Present() || !e.Card.Formatted() {
		return
	}
	var buf [4]byte
	if e.Card.Read(saveOffset, buf[:]) == len(buf) {
		d.score = binary.LittleEndian.Uint32(buf[:])
	}
}
