// Package menu implements sprite-panel overlay menus. The cursor and
// the panel ride springs, so selection changes overshoot and settle
// instead of snapping, and the scene behind dims through a palette
// fade.
package menu

import (
	"github.com/manicakes/progearsdk/internal/engine"
	"github.com/manicakes/progearsdk/internal/fixmath"
	"github.com/manicakes/progearsdk/internal/input"
	"github.com/manicakes/progearsdk/internal/palette"
	"github.com/manicakes/progearsdk/internal/rgb"
	"github.com/manicakes/progearsdk/internal/scene"
	"github.com/manicakes/progearsdk/internal/spring"
)

// Item is one menu row. Separators render but cannot be selected.
type Item struct {
	Label     string
	Separator bool
	OnConfirm func(*engine.Engine)
}

// Config describes a menu's look and wiring.
type Config struct {
	Items []Item

	// Cell is the fix cell of the first row; rows stack downward.
	CellX, CellY int

	TextPalette   uint8
	CursorPalette uint8

	// Panel and Cursor are optional sprite visuals. The panel sits
	// behind the text, the cursor beside the selected row.
	Panel  *scene.Visual
	Cursor *scene.Visual
	PanelZ int

	// DimPalettes are faded while the menu is open.
	DimPalettes []uint8
	DimRatio    uint8

	OnCancel func(*engine.Engine)
}

type phase uint8

const (
	phaseEntering phase = iota
	phaseOpen
	phaseConfirming
	phaseExiting
)

const (
	blinkFrames = 24
	blinkPeriod = 4
	rowPixels   = 16
	enterOffset = 160 // panel slide-in distance
)

// Menu is an engine overlay. Install with engine.SetOverlay after
// Open.
type Menu struct {
	cfg Config

	selected int
	phase    phase
	blink    int

	slide  spring.Spring   // whole-group x offset, 0 when at rest
	cursor spring.Spring2D // cursor position in pixels

	panel  scene.Handle
	marker scene.Handle

	backup []byte // dimmed palettes, serialized little-endian
	dimmed bool
}

// New builds a menu; call Open to put it on screen.
func New(cfg Config) *Menu {
	m := &Menu{cfg: cfg, panel: scene.NoHandle, marker: scene.NoHandle}
	m.selected = m.firstSelectable()
	return m
}

func (m *Menu) firstSelectable() int {
	for i, it := range m.cfg.Items {
		if !it.Separator {
			return i
		}
	}
	return -1
}

// Selected returns the highlighted item index, -1 if nothing is
// selectable.
func (m *Menu) Selected() int { return m.selected }

// Open dims the background, spawns the panel sprites, and starts the
// slide-in. It installs itself as the engine overlay.
func (m *Menu) Open(e *engine.Engine) {
	m.phase = phaseEntering
	m.slide = spring.New(fixmath.FIX(-enterOffset))
	m.slide.SetTarget(0)

	cx, cy := m.cursorPixel(m.selected)
	m.cursor = spring.New2D(fixmath.FIX(cx), fixmath.FIX(cy))

	if m.cfg.Panel != nil {
		m.panel = e.Scene.Create(m.cfg.Panel)
		if a := e.Scene.Get(m.panel); a != nil {
			a.SetZ(m.cfg.PanelZ)
			a.SetScreenSpace(true)
			e.Scene.AddToScene(m.panel)
		}
	}
	if m.cfg.Cursor != nil {
		m.marker = e.Scene.Create(m.cfg.Cursor)
		if a := e.Scene.Get(m.marker); a != nil {
			a.SetZ(m.cfg.PanelZ + 1)
			a.SetScreenSpace(true)
			e.Scene.AddToScene(m.marker)
		}
	}

	m.dim(e)
	e.SetOverlay(m)
}

// dim backs the palettes up into the state arena, then fades them.
// The backup survives in arena memory until Close restores it.
func (m *Menu) dim(e *engine.Engine) {
	if len(m.cfg.DimPalettes) == 0 || m.cfg.DimRatio == 0 {
		return
	}
	buf := e.AllocState(len(m.cfg.DimPalettes) * 32)
	if buf == nil {
		return
	}
	m.backup = buf
	var bank palette.Bank
	for i, pal := range m.cfg.DimPalettes {
		e.Palette.Backup(pal, &bank)
		for c, col := range bank {
			buf[i*32+c*2] = uint8(col)
			buf[i*32+c*2+1] = uint8(col >> 8)
		}
		e.Palette.FadeToBlack(pal, &bank, m.cfg.DimRatio)
	}
	m.dimmed = true
}

func (m *Menu) undim(e *engine.Engine) {
	if !m.dimmed {
		return
	}
	var bank palette.Bank
	for i, pal := range m.cfg.DimPalettes {
		for c := range bank {
			bank[c] = rgb.Color(uint16(m.backup[i*32+c*2]) | uint16(m.backup[i*32+c*2+1])<<8)
		}
		e.Palette.Restore(pal, &bank)
	}
	m.dimmed = false
	m.backup = nil
}

// Close tears the menu down immediately: palettes restored, sprites
// destroyed, overlay removed.
func (m *Menu) Close(e *engine.Engine) {
	m.undim(e)
	for i, it := range m.cfg.Items {
		width := len(it.Label)
		if it.Separator {
			width = 8
		}
		e.Fix.Clear(m.cfg.CellX, m.cfg.CellY+i*rowPixels/8, width, 1)
	}
	e.Scene.Destroy(m.panel)
	e.Scene.Destroy(m.marker)
	m.panel = scene.NoHandle
	m.marker = scene.NoHandle
	if e.Overlay() == m {
		e.SetOverlay(nil)
	}
}

func (m *Menu) cursorPixel(row int) (int, int) {
	x := m.cfg.CellX*8 - 20
	y := m.cfg.CellY*8 + row*rowPixels
	return x, y
}

func (m *Menu) move(dir int) {
	if m.selected < 0 {
		return
	}
	next := m.selected
	for {
		next += dir
		if next < 0 || next >= len(m.cfg.Items) {
			return
		}
		if !m.cfg.Items[next].Separator {
			break
		}
	}
	m.selected = next
	cx, cy := m.cursorPixel(m.selected)
	m.cursor.SetTarget(fixmath.FIX(cx), fixmath.FIX(cy))
}

// Update handles navigation. Runs from the engine frame after the
// scene update.
func (m *Menu) Update(e *engine.Engine) {
	m.slide.Update()
	m.cursor.Update()

	switch m.phase {
	case phaseEntering:
		if m.slide.Settled() {
			m.phase = phaseOpen
		}
	case phaseOpen:
		p := &e.Input.Players[0]
		switch {
		case p.IsPressed(input.Up):
			m.move(-1)
		case p.IsPressed(input.Down):
			m.move(1)
		case p.IsPressed(input.A) && m.selected >= 0:
			m.phase = phaseConfirming
			m.blink = blinkFrames
		case p.IsPressed(input.B):
			m.startExit()
			if m.cfg.OnCancel != nil {
				m.cfg.OnCancel(e)
			}
		}
	case phaseConfirming:
		m.blink--
		if m.blink <= 0 {
			it := m.cfg.Items[m.selected]
			m.startExit()
			if it.OnConfirm != nil {
				it.OnConfirm(e)
			}
		}
	case phaseExiting:
		if m.slide.Settled() {
			m.Close(e)
		}
	}

	m.place(e)
}

func (m *Menu) startExit() {
	m.phase = phaseExiting
	m.slide.SetTarget(fixmath.FIX(-enterOffset))
}

// place positions the panel and cursor sprites off the springs.
func (m *Menu) place(e *engine.Engine) {
	off := m.slide.Value

	if a := e.Scene.Get(m.panel); a != nil {
		px := fixmath.FIX(m.cfg.CellX*8-8) + off
		a.SetPosition(px, fixmath.FIX(m.cfg.CellY*8-8))
	}
	if a := e.Scene.Get(m.marker); a != nil {
		a.SetPosition(m.cursor.X.Value+off, m.cursor.Y.Value)
		a.SetVisible(m.phase != phaseConfirming || (m.blink/blinkPeriod)%2 == 0)
	}
}

// Draw renders the labels. The confirm blink hides the selected label
// on alternating periods.
func (m *Menu) Draw(e *engine.Engine) {
	if m.phase == phaseExiting {
		return
	}
	for i, it := range m.cfg.Items {
		y := m.cfg.CellY + i*rowPixels/8
		if it.Separator {
			e.Fix.Text(m.cfg.CellX, y, m.cfg.TextPalette, "--------")
			continue
		}
		pal := m.cfg.TextPalette
		if i == m.selected {
			pal = m.cfg.CursorPalette
			if m.phase == phaseConfirming && (m.blink/blinkPeriod)%2 != 0 {
				e.Fix.Clear(m.cfg.CellX, y, len(it.Label), 1)
				continue
			}
		}
		e.Fix.Text(m.cfg.CellX, y, pal, it.Label)
	}
}
