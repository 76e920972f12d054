package menu

import (
	"testing"

	"github.com/manicakes/progearsdk/internal/engine"
	"github.com/manicakes/progearsdk/internal/hw"
	"github.com/manicakes/progearsdk/internal/rgb"
)

// menuBus is a full enough board model for overlay tests: LSPC latch
// over VRAM, palette RAM words, active-low input ports.
type menuBus struct {
	vram  [0x8800]uint16
	addr  uint16
	mod   uint16
	bytes map[uint32]uint8
	words map[uint32]uint16
}

func newMenuBus() *menuBus {
	return &menuBus{mod: 1, bytes: make(map[uint32]uint8), words: make(map[uint32]uint16)}
}

func (b *menuBus) Read8(addr uint32) uint8 {
	switch addr {
	case hw.IOP1, hw.IOP2, hw.IOStatusA, hw.IOStatusB:
		if v, ok := b.bytes[addr]; ok {
			return v
		}
		return 0xFF
	}
	return b.bytes[addr]
}

func (b *menuBus) Write8(addr uint32, v uint8) { b.bytes[addr] = v }

func (b *menuBus) Read16(addr uint32) uint16 {
	switch addr {
	case hw.LSPCData:
		return b.vram[b.addr]
	case hw.LSPCMod:
		return b.mod
	}
	return b.words[addr]
}

func (b *menuBus) Write16(addr uint32, v uint16) {
	switch addr {
	case hw.LSPCAddr:
		b.addr = v
	case hw.LSPCData:
		b.vram[b.addr] = v
		b.addr += b.mod
	case hw.LSPCMod:
		b.mod = v
	default:
		b.words[addr] = v
	}
}

func (b *menuBus) press(bits uint8) { b.bytes[hw.IOP1] = 0xFF &^ bits }
func (b *menuBus) release()         { b.bytes[hw.IOP1] = 0xFF }

func newMenuEngine() (*engine.Engine, *menuBus) {
	bus := newMenuBus()
	return engine.New(bus, engine.DefaultConfig()), bus
}

func step(e *engine.Engine) {
	e.ServiceVBlank()
	e.Frame(nil)
}

func testMenu(onConfirm, onCancel func(*engine.Engine)) *Menu {
	return New(Config{
		Items: []Item{
			{Label: "CONTINUE", OnConfirm: onConfirm},
			{Separator: true},
			{Label: "OPTIONS"},
			{Label: "QUIT"},
		},
		CellX:         10,
		CellY:         8,
		TextPalette:   1,
		CursorPalette: 2,
		DimPalettes:   []uint8{3},
		DimRatio:      128,
		OnCancel:      onCancel,
	})
}

func TestOpenInstallsOverlayAndDims(t *testing.T) {
	e, _ := newMenuEngine()

	e.Palette.Fill(3, rgb.RGB(20, 20, 20))
	before := e.Palette.Color(3, 1)

	m := testMenu(nil, nil)
	m.Open(e)

	if e.Overlay() != m {
		t.Fatalf("overlay not installed")
	}
	after := e.Palette.Color(3, 1)
	if after == before || after == rgb.Black {
		t.Fatalf("palette not half-dimmed: %04X -> %04X", before, after)
	}
}

func TestNavigationSkipsSeparators(t *testing.T) {
	e, bus := newMenuEngine()

	m := testMenu(nil, nil)
	m.Open(e)

	// Let the slide-in finish so input is accepted.
	for i := 0; i < 60; i++ {
		step(e)
	}

	if m.Selected() != 0 {
		t.Fatalf("initial selection = %d", m.Selected())
	}

	bus.press(hw.IODown)
	step(e)
	bus.release()
	step(e)

	// Row 1 is a separator; selection jumps to row 2.
	if m.Selected() != 2 {
		t.Fatalf("selection = %d, want 2", m.Selected())
	}

	bus.press(hw.IOUp)
	step(e)
	bus.release()
	step(e)
	if m.Selected() != 0 {
		t.Fatalf("selection = %d, want 0", m.Selected())
	}

	// Up from the top row stays put.
	bus.press(hw.IOUp)
	step(e)
	bus.release()
	if m.Selected() != 0 {
		t.Fatalf("selection escaped the list: %d", m.Selected())
	}
}

func TestConfirmBlinksThenFires(t *testing.T) {
	e, bus := newMenuEngine()

	confirmed := false
	m := testMenu(func(*engine.Engine) { confirmed = true }, nil)
	m.Open(e)

	for i := 0; i < 60; i++ {
		step(e)
	}

	bus.press(hw.IOA)
	step(e)
	bus.release()

	if confirmed {
		t.Fatalf("confirm fired before the blink")
	}

	for i := 0; i < 200 && e.Overlay() != nil; i++ {
		step(e)
	}
	if !confirmed {
		t.Fatalf("confirm never fired")
	}
	if e.Overlay() != nil {
		t.Fatalf("overlay still installed after confirm")
	}
}

func TestCancelRestoresPalette(t *testing.T) {
	e, bus := newMenuEngine()

	e.Palette.Fill(3, rgb.RGB(20, 20, 20))
	before := e.Palette.Color(3, 5)

	cancelled := false
	m := testMenu(nil, func(*engine.Engine) { cancelled = true })
	m.Open(e)

	for i := 0; i < 60; i++ {
		step(e)
	}

	bus.press(hw.IOB)
	step(e)
	bus.release()

	for i := 0; i < 200 && e.Overlay() != nil; i++ {
		step(e)
	}
	if !cancelled {
		t.Fatalf("cancel never fired")
	}
	if got := e.Palette.Color(3, 5); got != before {
		t.Fatalf("palette not restored: %04X, want %04X", got, before)
	}
}

func TestDimBackupLivesInStateArena(t *testing.T) {
	e, _ := newMenuEngine()

	e.Palette.Fill(3, rgb.RGB(20, 10, 5))
	want := e.Palette.Color(3, 5)

	m := testMenu(nil, nil)
	m.Open(e)

	if m.backup == nil {
		t.Fatalf("no backup allocated")
	}
	got := rgb.Color(uint16(m.backup[5*2]) | uint16(m.backup[5*2+1])<<8)
	if got != want {
		t.Fatalf("backup word = %04X, want %04X", got, want)
	}

	// undim decodes the serialized words, so an edit there must come
	// back on restore.
	swap := rgb.RGB(1, 2, 3)
	m.backup[3*2] = uint8(swap)
	m.backup[3*2+1] = uint8(swap >> 8)
	m.Close(e)

	if e.Palette.Color(3, 5) != want {
		t.Fatalf("color 5 = %04X, want %04X", e.Palette.Color(3, 5), want)
	}
	if e.Palette.Color(3, 3) != swap {
		t.Fatalf("color 3 = %04X, want %04X", e.Palette.Color(3, 3), swap)
	}
	if m.backup != nil {
		t.Fatalf("backup retained after close")
	}
}

func TestLabelsRenderOnFixLayer(t *testing.T) {
	e, _ := newMenuEngine()
	bus := e.Bus().(*menuBus)

	m := testMenu(nil, nil)
	m.Open(e)
	step(e)

	// First label's first character at cell (10,8).
	got := bus.vram[hw.VRAMFix+10*32+8]
	if got&0x0FFF != 'C' {
		t.Fatalf("label cell = %04X", got)
	}
	// Selected row uses the cursor palette.
	if got>>12 != 2 {
		t.Fatalf("selected row palette = %d", got>>12)
	}

	// Third row (cells move down two per item row) uses the
	// text palette.
	got = bus.vram[hw.VRAMFix+10*32+8+2*2]
	if got>>12 != 1 || got&0x0FFF != 'O' {
		t.Fatalf("unselected cell = %04X", got)
	}
}

func TestCloseClearsLabels(t *testing.T) {
	e, bus := newMenuEngine()

	m := testMenu(nil, nil)
	m.Open(e)
	step(e)
	if bus.vram[hw.VRAMFix+10*32+8]&0x0FFF != 'C' {
		t.Fatalf("label never rendered")
	}

	bus.press(hw.IOB)
	step(e)
	bus.release()
	for i := 0; i < 200 && e.Overlay() != nil; i++ {
		step(e)
	}

	if got := bus.vram[hw.VRAMFix+10*32+8]; got != 0 {
		t.Fatalf("label cell survived close: %04X", got)
	}
}
