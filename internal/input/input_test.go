package input

import (
	"testing"

	"github.com/manicakes/progearsdk/internal/hw"
)

// fakeBus serves controller ports. Unwritten ports read 0xFF, which is
// the idle level on the active-low lines.
type fakeBus struct {
	ports map[uint32]uint8
}

func newFakeBus() *fakeBus {
	return &fakeBus{ports: make(map[uint32]uint8)}
}

func (b *fakeBus) press(port uint32, bits uint8) {
	cur, ok := b.ports[port]
	if !ok {
		cur = 0xFF
	}
	b.ports[port] = cur &^ bits
}

func (b *fakeBus) release(port uint32, bits uint8) {
	cur, ok := b.ports[port]
	if !ok {
		cur = 0xFF
	}
	b.ports[port] = cur | bits
}

func (b *fakeBus) Read8(addr uint32) uint8 {
	if v, ok := b.ports[addr]; ok {
		return v
	}
	return 0xFF
}

func (b *fakeBus) Write8(addr uint32, v uint8)   { b.ports[addr] = v }
func (b *fakeBus) Read16(addr uint32) uint16     { return 0 }
func (b *fakeBus) Write16(addr uint32, v uint16) {}

func TestActiveLowInversion(t *testing.T) {
	bus := newFakeBus()
	s := New(bus)
	s.Init()

	bus.press(hw.IOP1, hw.IOA|hw.IOUp)
	s.Update()

	p := &s.Players[0]
	if p.Held != A|Up {
		t.Fatalf("held = %03X, want %03X", p.Held, A|Up)
	}
	if !p.IsHeld(A) || !p.IsHeld(Up) || p.IsHeld(B) {
		t.Fatalf("single-bit queries wrong")
	}
}

func TestEdgeDetection(t *testing.T) {
	bus := newFakeBus()
	s := New(bus)
	s.Init()

	bus.press(hw.IOP1, hw.IOB)
	s.Update()
	p := &s.Players[0]
	if !p.IsPressed(B) || p.IsReleased(B) {
		t.Fatalf("press edge missed")
	}

	// No hardware change: second update must show no edges.
	s.Update()
	if p.Pressed != 0 || p.Released != 0 {
		t.Fatalf("edges repeated without a transition")
	}
	if !p.IsHeld(B) {
		t.Fatalf("held lost")
	}

	bus.release(hw.IOP1, hw.IOB)
	s.Update()
	if !p.IsReleased(B) || p.IsPressed(B) {
		t.Fatalf("release edge missed")
	}
}

func TestMultiBitMaskRequiresAll(t *testing.T) {
	bus := newFakeBus()
	s := New(bus)
	s.Init()

	bus.press(hw.IOP1, hw.IOA)
	s.Update()
	p := &s.Players[0]
	if p.IsHeld(A | B) {
		t.Fatalf("partial mask reported held")
	}

	bus.press(hw.IOP1, hw.IOB)
	s.Update()
	if !p.IsHeld(A | B) {
		t.Fatalf("full mask not reported held")
	}
}

func TestHeldAndReleaseFrames(t *testing.T) {
	bus := newFakeBus()
	s := New(bus)
	s.Init()

	bus.press(hw.IOP1, hw.IOC)
	for i := 0; i < 3; i++ {
		s.Update()
	}
	p := &s.Players[0]
	if got := p.HeldFrames(C); got != 3 {
		t.Fatalf("held frames = %d, want 3", got)
	}
	if got := p.ReleaseFrames(C); got != 0 {
		t.Fatalf("release frames = %d while held", got)
	}

	bus.release(hw.IOP1, hw.IOC)
	for i := 0; i < 2; i++ {
		s.Update()
	}
	if got := p.HeldFrames(C); got != 0 {
		t.Fatalf("held frames = %d after release", got)
	}
	if got := p.ReleaseFrames(C); got != 2 {
		t.Fatalf("release frames = %d, want 2", got)
	}
}

func TestAxes(t *testing.T) {
	bus := newFakeBus()
	s := New(bus)
	s.Init()

	bus.press(hw.IOP1, hw.IOLeft|hw.IOUp)
	s.Update()
	p := &s.Players[0]
	if p.AxisX() != -1 || p.AxisY() != -1 {
		t.Fatalf("axes = %d,%d", p.AxisX(), p.AxisY())
	}

	// Opposing directions cancel.
	bus.press(hw.IOP1, hw.IORight|hw.IODown)
	s.Update()
	if p.AxisX() != 0 || p.AxisY() != 0 {
		t.Fatalf("opposing directions did not cancel")
	}
}

func TestStartSelectFromStatusPort(t *testing.T) {
	bus := newFakeBus()
	s := New(bus)
	s.Init()

	bus.press(hw.IOStatusB, hw.IOP1Start|hw.IOP2Select)
	s.Update()

	if !s.Players[0].IsPressed(Start) {
		t.Fatalf("p1 start not seen")
	}
	if !s.Players[1].IsPressed(Select) {
		t.Fatalf("p2 select not seen")
	}
	if s.Players[0].IsHeld(Select) || s.Players[1].IsHeld(Start) {
		t.Fatalf("status bits crossed players")
	}
}

func TestCoinEdges(t *testing.T) {
	bus := newFakeBus()
	s := New(bus)
	s.Init()

	bus.press(hw.IOStatusA, hw.IOCoin1)
	s.Update()
	if !s.CoinPressed(Coin1) {
		t.Fatalf("coin edge missed")
	}
	s.Update()
	if s.CoinPressed(Coin1) {
		t.Fatalf("coin edge repeated")
	}

	bus.press(hw.IOStatusA, hw.IOService)
	s.Update()
	if !s.ServiceHeld() {
		t.Fatalf("service not held")
	}
}

func TestInitClearsState(t *testing.T) {
	bus := newFakeBus()
	s := New(bus)

	bus.press(hw.IOP1, hw.IOD)
	s.Update()
	s.Update()

	s.Init()
	p := &s.Players[0]
	if p.Held != 0 || p.HeldFrames(D) != 0 {
		t.Fatalf("state survived Init")
	}

	// Still-held hardware reads as a fresh press after Init.
	s.Update()
	if !p.IsPressed(D) {
		t.Fatalf("held button not re-pressed after Init")
	}
}
