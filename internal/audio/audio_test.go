package audio

import (
	"testing"

	"github.com/manicakes/progearsdk/internal/hw"
)

// soundBus echoes mailbox commands with the ack bit and records every
// command written.
type soundBus struct {
	log  []uint8
	last uint8
	ack  bool
}

func newSoundBus() *soundBus { return &soundBus{ack: true} }

func (b *soundBus) Read8(addr uint32) uint8 {
	if addr == hw.IOSound {
		return b.last
	}
	return 0
}

func (b *soundBus) Write8(addr uint32, v uint8) {
	if addr == hw.IOSound {
		b.log = append(b.log, v)
		if b.ack {
			b.last = v | hw.AckBit
		}
	}
}

func (b *soundBus) Read16(addr uint32) uint16     { return 0 }
func (b *soundBus) Write16(addr uint32, v uint16) {}

func newTestHost() (*Host, *soundBus) {
	bus := newSoundBus()
	return NewHost(hw.NewMailbox(bus)), bus
}

func TestPlayMusicOpcodeAndState(t *testing.T) {
	h, bus := newTestHost()

	h.PlayMusic(5)
	if len(bus.log) != 1 || bus.log[0] != 0x25 {
		t.Fatalf("commands = %#v, want [0x25]", bus.log)
	}
	if h.Music() != 5 || !h.MusicPlaying() || h.MusicPaused() {
		t.Fatalf("state after play: music=%d playing=%v paused=%v",
			h.Music(), h.MusicPlaying(), h.MusicPaused())
	}

	// Tracks 16..31 use the high opcode range.
	h.PlayMusic(20)
	if bus.log[len(bus.log)-1] != 0x54 {
		t.Fatalf("high track opcode = %02X, want 54", bus.log[len(bus.log)-1])
	}
}

func TestPauseResumeStateMachine(t *testing.T) {
	h, bus := newTestHost()

	// Pause with nothing playing is a no-op.
	h.PauseMusic()
	if len(bus.log) != 0 {
		t.Fatalf("pause without music wrote %#v", bus.log)
	}

	h.PlayMusic(3)
	h.PauseMusic()
	if !h.MusicPaused() || h.MusicPlaying() {
		t.Fatalf("pause state wrong")
	}
	n := len(bus.log)

	// Second pause must not hit the mailbox.
	h.PauseMusic()
	if len(bus.log) != n {
		t.Fatalf("repeated pause wrote to mailbox")
	}

	h.ResumeMusic()
	if !h.MusicPlaying() || bus.log[len(bus.log)-1] != OpMusicResume {
		t.Fatalf("resume state or opcode wrong")
	}

	h.StopMusic()
	if h.MusicPlaying() || h.Music() != NoMusic {
		t.Fatalf("stop state wrong")
	}
	if bus.log[len(bus.log)-1] != OpMusicStop {
		t.Fatalf("stop opcode = %02X", bus.log[len(bus.log)-1])
	}
}

func TestSFXOpcodes(t *testing.T) {
	h, bus := newTestHost()

	h.PlaySFX(7)
	h.PlaySFX(16)
	h.StopSFX(2)
	h.PlaySFX(SFXMax) // out of range, dropped
	h.StopSFX(SFXChannels)

	want := []uint8{0x17, 0x40, 0x62}
	if len(bus.log) != len(want) {
		t.Fatalf("commands = %#v, want %#v", bus.log, want)
	}
	for i := range want {
		if bus.log[i] != want[i] {
			t.Fatalf("command %d = %02X, want %02X", i, bus.log[i], want[i])
		}
	}
}

func TestVolumeClamp(t *testing.T) {
	h, bus := newTestHost()

	h.SetVolume(40)
	if h.Volume() != VolumeMax {
		t.Fatalf("volume = %d, want %d", h.Volume(), VolumeMax)
	}
	if bus.log[0] != OpVolumeBase+VolumeMax {
		t.Fatalf("opcode = %02X", bus.log[0])
	}
}

func TestTimeoutAdvancesState(t *testing.T) {
	h, bus := newTestHost()
	bus.ack = false

	h.PlayMusic(2)
	if !h.TimedOut() {
		t.Fatalf("timeout not reported")
	}
	// The shadow state advances anyway.
	if h.Music() != 2 || !h.MusicPlaying() {
		t.Fatalf("state did not advance on timeout")
	}
}

func TestStopAll(t *testing.T) {
	h, bus := newTestHost()

	h.PlayMusic(1)
	h.StopAll()
	if h.Music() != NoMusic || h.MusicPlaying() {
		t.Fatalf("state after stop all")
	}
	if bus.log[len(bus.log)-1] != OpStopAll {
		t.Fatalf("opcode = %02X", bus.log[len(bus.log)-1])
	}
}

func TestPanForScreenX(t *testing.T) {
	if p := PanForScreenX(0); p != -128 {
		t.Fatalf("left edge pan = %d", p)
	}
	if p := PanForScreenX(319); p != 127 {
		t.Fatalf("right edge pan = %d", p)
	}
	if p := PanForScreenX(160); p < -5 || p > 5 {
		t.Fatalf("center pan = %d", p)
	}
	if p := PanForScreenX(-50); p != -128 {
		t.Fatalf("clamped pan = %d", p)
	}
}
