package hw

import "testing"

// testBus models just enough of the board for register-level tests:
// the LSPC latch/modifier pair in front of a VRAM word array, a byte
// space for I/O and BIOS cells, and an optional mailbox echo.
type testBus struct {
	vram    [0x8800]uint16
	addr    uint16
	mod     uint16
	bytes   map[uint32]uint8
	soundOK bool // echo commands with the ack bit set
}

func newTestBus() *testBus {
	return &testBus{mod: 1, bytes: make(map[uint32]uint8), soundOK: true}
}

func (b *testBus) Read8(addr uint32) uint8 { return b.bytes[addr] }

func (b *testBus) Write8(addr uint32, v uint8) {
	if addr == IOSound && b.soundOK {
		b.bytes[addr] = v | AckBit
		return
	}
	b.bytes[addr] = v
}

func (b *testBus) Read16(addr uint32) uint16 {
	switch addr {
	case LSPCData:
		return b.vram[b.addr]
	case LSPCMod:
		return b.mod
	}
	return 0
}

func (b *testBus) Write16(addr uint32, v uint16) {
	switch addr {
	case LSPCAddr:
		b.addr = v
	case LSPCData:
		b.vram[b.addr] = v
		b.addr += b.mod
	case LSPCMod:
		b.mod = v
	}
}

func TestLSPCDataAdvancesByModifier(t *testing.T) {
	bus := newTestBus()
	l := NewLSPC(bus)

	l.Setup(0x100, 32)
	l.Data(0xAAAA)
	l.Data(0xBBBB)

	if bus.vram[0x100] != 0xAAAA || bus.vram[0x120] != 0xBBBB {
		t.Fatalf("words not spaced by modifier: %04X %04X", bus.vram[0x100], bus.vram[0x120])
	}
}

func TestFixPut(t *testing.T) {
	bus := newTestBus()
	l := NewLSPC(bus)

	l.FixPut(5, 10, 0x123, 3)

	addr := VRAMFix + 5*32 + 10
	want := uint16(0x3123)
	if got := bus.vram[addr]; got != want {
		t.Fatalf("cell (5,10) = %04X, want %04X", got, want)
	}

	// Out of range must not touch VRAM.
	l.FixPut(40, 0, 0x111, 0)
	l.FixPut(0, 32, 0x111, 0)
}

func TestFixTextColumnMajor(t *testing.T) {
	bus := newTestBus()
	l := NewLSPC(bus)

	const fontBase = 0x300
	n := l.FixText(2, 4, "HI", 1, fontBase)
	if n != 2 {
		t.Fatalf("wrote %d cells, want 2", n)
	}

	h := bus.vram[VRAMFix+2*32+4]
	i := bus.vram[VRAMFix+3*32+4]
	if h != uint16(0x1000|(fontBase+'H')) {
		t.Fatalf("H cell = %04X", h)
	}
	if i != uint16(0x1000|(fontBase+'I')) {
		t.Fatalf("I cell = %04X", i)
	}

	// Modifier must be back to 1 after a compound op.
	if bus.mod != 1 {
		t.Fatalf("modifier left at %d", bus.mod)
	}
}

func TestFixTextClipsAtRightEdge(t *testing.T) {
	bus := newTestBus()
	l := NewLSPC(bus)

	n := l.FixText(38, 0, "ABCD", 0, 0)
	if n != 2 {
		t.Fatalf("wrote %d cells, want 2", n)
	}
}

func TestFixClearRestoresModifier(t *testing.T) {
	bus := newTestBus()
	l := NewLSPC(bus)

	for x := 0; x < 4; x++ {
		for y := 0; y < 4; y++ {
			l.FixPut(x, y, 0x0FF, 15)
		}
	}

	l.FixClear(1, 1, 2, 2)

	for x := 0; x < 4; x++ {
		for y := 0; y < 4; y++ {
			inRect := x >= 1 && x < 3 && y >= 1 && y < 3
			got := bus.vram[VRAMFix+x*32+y]
			if inRect && got != 0 {
				t.Fatalf("cell (%d,%d) not cleared: %04X", x, y, got)
			}
			if !inRect && got == 0 {
				t.Fatalf("cell (%d,%d) clobbered", x, y)
			}
		}
	}
	if bus.mod != 1 {
		t.Fatalf("modifier left at %d", bus.mod)
	}
}

func TestSpriteWriteTilesZeroesRemainder(t *testing.T) {
	bus := newTestBus()
	l := NewLSPC(bus)

	// Dirty the second sprite's SCB1 block first.
	l.Setup(uint16(VRAMSCB1+1*SCB1SpriteSize), 1)
	l.Fill(0xDEAD, SCB1SpriteSize)

	tiles := []uint16{0x100, 0x101}
	attrs := []uint16{0x0100, 0x0100}
	l.SpriteWriteTiles(1, tiles, attrs)

	base := VRAMSCB1 + 1*SCB1SpriteSize
	if bus.vram[base] != 0x100 || bus.vram[base+1] != 0x0100 {
		t.Fatalf("row 0 = %04X/%04X", bus.vram[base], bus.vram[base+1])
	}
	if bus.vram[base+2] != 0x101 {
		t.Fatalf("row 1 tile = %04X", bus.vram[base+2])
	}
	for row := 2; row < 32; row++ {
		if bus.vram[base+row*2] != 0 || bus.vram[base+row*2+1] != 0 {
			t.Fatalf("row %d not zeroed", row)
		}
	}
}

func TestSpriteWriteYChainStickyBits(t *testing.T) {
	bus := newTestBus()
	l := NewLSPC(bus)

	l.SpriteWriteYChain(10, 3, 48, 4)

	head := bus.vram[VRAMSCB3+10]
	want := uint16((496-48))<<SCB3YShift | 4
	if head != want {
		t.Fatalf("head SCB3 = %04X, want %04X", head, want)
	}
	for i := 1; i < 3; i++ {
		if bus.vram[VRAMSCB3+10+i] != SCB3StickyBit {
			t.Fatalf("chain sprite %d = %04X, want sticky", i, bus.vram[VRAMSCB3+10+i])
		}
	}
}

func TestSpriteWriteXChainZoomOffsets(t *testing.T) {
	bus := newTestBus()
	l := NewLSPC(bus)

	// Full-size columns sit 16 pixels apart.
	l.SpriteWriteXChain(0, 3, 100, 16)
	for col := 0; col < 3; col++ {
		want := uint16((100+col*16)&0x1FF) << SCB4XShift
		if bus.vram[VRAMSCB4+col] != want {
			t.Fatalf("col %d = %04X, want %04X", col, bus.vram[VRAMSCB4+col], want)
		}
	}

	// Half-size columns sit 8 apart.
	l.SpriteWriteXChain(0, 2, 100, 8)
	if bus.vram[VRAMSCB4+1] != uint16(108)<<SCB4XShift {
		t.Fatalf("half zoom col 1 = %04X", bus.vram[VRAMSCB4+1])
	}
}

func TestSpriteHideAll(t *testing.T) {
	bus := newTestBus()
	l := NewLSPC(bus)

	l.SpriteWriteYChain(0, SpriteMax, 0, 32)
	l.SpriteHideAll()

	for i := 0; i < SpriteMax; i++ {
		if bus.vram[VRAMSCB3+i] != 0 {
			t.Fatalf("sprite %d still visible", i)
		}
	}
}

func TestScreenToHWY(t *testing.T) {
	cases := []struct{ screen, hw int }{
		{0, 496},
		{16, 480},
		{496, 0},
		{500, 508}, // wraps through the 9-bit field
	}
	for _, c := range cases {
		if got := ScreenToHWY(c.screen); got != c.hw {
			t.Fatalf("ScreenToHWY(%d) = %d, want %d", c.screen, got, c.hw)
		}
	}
}

func TestSpriteAttrFlipSense(t *testing.T) {
	// The hardware mirrors by default, so not flipping sets the bit.
	if a := SpriteAttr(2, false, false); a != 0x0201 {
		t.Fatalf("unflipped attr = %04X", a)
	}
	if a := SpriteAttr(2, true, false); a != 0x0200 {
		t.Fatalf("flipped attr = %04X", a)
	}
	if a := SpriteAttr(0, true, true); a != SCB1VFlipBit {
		t.Fatalf("vflip attr = %04X", a)
	}
}

func TestAdjustedHeight(t *testing.T) {
	cases := []struct {
		rows   int
		shrink uint8
		want   uint8
	}{
		{4, 255, 4},
		{4, 128, 3}, // rounds up
		{4, 1, 1},   // never below one row
		{32, 255, 32},
	}
	for _, c := range cases {
		if got := AdjustedHeight(c.rows, c.shrink); got != c.want {
			t.Fatalf("AdjustedHeight(%d, %d) = %d, want %d", c.rows, c.shrink, got, c.want)
		}
	}
}

func TestWaitVBlankConsumesFlag(t *testing.T) {
	bus := newTestBus()
	s := NewSystem(bus)

	bus.bytes[BIOSVBlankFlag] = 1
	s.WaitVBlank()

	if bus.bytes[BIOSVBlankFlag] != 0 {
		t.Fatalf("flag not cleared after wait")
	}
	if s.VBlankPending() {
		t.Fatalf("flag still pending")
	}
}

func TestSystemCabinet(t *testing.T) {
	bus := newTestBus()
	s := NewSystem(bus)

	if s.IsMVS() {
		t.Fatalf("blank BIOS cell read as arcade")
	}
	bus.bytes[BIOSMVSFlag] = 1
	bus.bytes[BIOSCountry] = RegionEurope
	if !s.IsMVS() || s.Region() != RegionEurope {
		t.Fatalf("cabinet cells misread")
	}
}

func TestMailboxAck(t *testing.T) {
	bus := newTestBus()
	m := NewMailbox(bus)

	if !m.Command(0x21) {
		t.Fatalf("healthy coprocessor reported timeout")
	}
	if m.TimedOut() {
		t.Fatalf("TimedOut set after ack")
	}
	if m.Reply() != 0x21|AckBit {
		t.Fatalf("reply = %02X", m.Reply())
	}
}

func TestMailboxTimeout(t *testing.T) {
	bus := newTestBus()
	bus.soundOK = false
	m := NewMailbox(bus)

	if m.Command(0x21) {
		t.Fatalf("dead coprocessor reported ack")
	}
	if !m.TimedOut() {
		t.Fatalf("TimedOut not set")
	}

	// A later successful command clears the flag.
	bus.soundOK = true
	if !m.Command(0x30) || m.TimedOut() {
		t.Fatalf("recovery not reflected")
	}
}
