// Package audio drives the sound coprocessor through its one-byte
// command mailbox. The host keeps a shadow of what the coprocessor
// should be doing (current track, pause state, master volume) because
// the protocol has no query path.
package audio

import "github.com/manicakes/progearsdk/internal/hw"

// Command opcodes. Track and volume commands encode their operand in
// the low nibble.
const (
	OpNop        = 0x00
	OpSlotSwitch = 0x01
	OpEyecatcher = 0x02
	OpReset      = 0x03

	OpSFXBase       = 0x10 // effects 0..15
	OpMusicBase     = 0x20 // tracks 0..15
	OpMusicStop     = 0x30
	OpMusicPause    = 0x31
	OpMusicResume   = 0x32
	OpSFXBaseHigh   = 0x40 // effects 16..31
	OpMusicBaseHigh = 0x50 // tracks 16..31
	OpSFXStopBase   = 0x60 // stop channel 0..5
	OpStopAll       = 0x70
	OpVolumeBase    = 0x80 // volume 0..15
)

// NoMusic is the current-track value when nothing is playing.
const NoMusic = 0xFF

// MusicMax and SFXMax bound the track and effect indices the opcode
// ranges can express.
const (
	MusicMax = 32
	SFXMax   = 32

	SFXChannels = 6
	VolumeMax   = 15
)

// Host is the main-thread side of the audio protocol.
type Host struct {
	mbox *hw.Mailbox

	current uint8
	paused  bool
	volume  uint8
}

func NewHost(mbox *hw.Mailbox) *Host {
	return &Host{mbox: mbox, current: NoMusic, volume: VolumeMax}
}

// Command sends a raw opcode and waits for the acknowledge. State
// still advances on timeout; a wedged coprocessor costs sound, not
// gameplay.
func (h *Host) Command(cmd uint8) bool {
	return h.mbox.Command(cmd)
}

// CommandAsync sends a raw opcode without waiting. Fine for rapid
// effects where a dropped command is inaudible.
func (h *Host) CommandAsync(cmd uint8) {
	h.mbox.CommandAsync(cmd)
}

// TimedOut reports whether the most recent blocking command went
// unacknowledged.
func (h *Host) TimedOut() bool {
	return h.mbox.TimedOut()
}

func musicOpcode(track uint8) uint8 {
	if track < 16 {
		return OpMusicBase + track
	}
	return OpMusicBaseHigh + (track - 16)
}

func sfxOpcode(effect uint8) uint8 {
	if effect < 16 {
		return OpSFXBase + effect
	}
	return OpSFXBaseHigh + (effect - 16)
}

// PlayMusic starts a track and clears any pause. Out-of-range tracks
// are ignored.
func (h *Host) PlayMusic(track uint8) {
	if track >= MusicMax {
		return
	}
	h.current = track
	h.paused = false
	h.Command(musicOpcode(track))
}

// StopMusic stops playback and forgets the current track.
func (h *Host) StopMusic() {
	h.Command(OpMusicStop)
	h.current = NoMusic
	h.paused = false
}

// PauseMusic pauses only if a track is playing and not already paused.
func (h *Host) PauseMusic() {
	if h.current == NoMusic || h.paused {
		return
	}
	h.paused = true
	h.Command(OpMusicPause)
}

// ResumeMusic resumes only from the paused state.
func (h *Host) ResumeMusic() {
	if h.current == NoMusic || !h.paused {
		return
	}
	h.paused = false
	h.Command(OpMusicResume)
}

// Music returns the current track, or NoMusic.
func (h *Host) Music() uint8 {
	return h.current
}

// MusicPlaying reports a track actively sounding (not paused).
func (h *Host) MusicPlaying() bool {
	return h.current != NoMusic && !h.paused
}

// MusicPaused reports a track loaded but paused.
func (h *Host) MusicPaused() bool {
	return h.current != NoMusic && h.paused
}

// PlaySFX triggers an effect synchronously.
func (h *Host) PlaySFX(effect uint8) {
	if effect >= SFXMax {
		return
	}
	h.Command(sfxOpcode(effect))
}

// PlaySFXAsync triggers an effect without waiting for the acknowledge.
func (h *Host) PlaySFXAsync(effect uint8) {
	if effect >= SFXMax {
		return
	}
	h.CommandAsync(sfxOpcode(effect))
}

// StopSFX silences one effect channel.
func (h *Host) StopSFX(channel uint8) {
	if channel >= SFXChannels {
		return
	}
	h.Command(OpSFXStopBase + channel)
}

// StopAll silences music and every effect channel. The shadow track is
// forgotten.
func (h *Host) StopAll() {
	h.Command(OpStopAll)
	h.current = NoMusic
	h.paused = false
}

// SetVolume sets the master volume, clamped to 0..15.
func (h *Host) SetVolume(v uint8) {
	if v > VolumeMax {
		v = VolumeMax
	}
	h.volume = v
	h.Command(OpVolumeBase + v)
}

// Volume returns the shadow master volume.
func (h *Host) Volume() uint8 {
	return h.volume
}

// PanForScreenX maps a screen X to a stereo pan in -128..127 for the
// front-end mixer. The coprocessor protocol itself carries no pan, so
// this stays host-side.
func PanForScreenX(x int) int8 {
	if x < 0 {
		x = 0
	}
	if x > 319 {
		x = 319
	}
	return int8((x*255)/319 - 128)
}
