package ui

import (
	"math"
	"time"

	"github.com/gopxl/beep"
	"github.com/gopxl/beep/speaker"

	"github.com/manicakes/progearsdk/internal/audio"
)

const sampleRate = beep.SampleRate(48000)

// SoundSink turns mailbox command bytes into stand-in tones so the
// opcode stream is audible without the real coprocessor program.
type SoundSink struct {
	mixer  *beep.Mixer
	music  *beep.Ctrl
	cursor int
	volume float64
	ready  bool
}

func NewSoundSink() *SoundSink {
	return &SoundSink{mixer: &beep.Mixer{}, volume: 1}
}

// Start opens the speaker and begins pulling from the mixer.
func (s *SoundSink) Start() error {
	if s.ready {
		return nil
	}
	if err := speaker.Init(sampleRate, sampleRate.N(time.Millisecond*100)); err != nil {
		return err
	}
	speaker.Play(s.mixer)
	s.ready = true
	return nil
}

// Close silences everything. The speaker itself stays open.
func (s *SoundSink) Close() {
	if !s.ready {
		return
	}
	speaker.Lock()
	s.mixer.Clear()
	s.music = nil
	speaker.Unlock()
	s.ready = false
}

// Drain consumes command bytes appended to the mailbox log since the
// last call. The caller passes the full log every frame.
func (s *SoundSink) Drain(log []uint8) {
	cmds := log[s.cursor:]
	s.cursor = len(log)
	if !s.ready || len(cmds) == 0 {
		return
	}
	speaker.Lock()
	for _, cmd := range cmds {
		s.dispatch(cmd)
	}
	speaker.Unlock()
}

// dispatch runs under the speaker lock.
func (s *SoundSink) dispatch(cmd uint8) {
	switch {
	case cmd >= audio.OpSFXBase && cmd < audio.OpSFXBase+16:
		s.playEffect(cmd - audio.OpSFXBase)
	case cmd >= audio.OpSFXBaseHigh && cmd < audio.OpSFXBaseHigh+16:
		s.playEffect(16 + cmd - audio.OpSFXBaseHigh)
	case cmd >= audio.OpMusicBase && cmd < audio.OpMusicBase+16:
		s.startMusic(cmd - audio.OpMusicBase)
	case cmd >= audio.OpMusicBaseHigh && cmd < audio.OpMusicBaseHigh+16:
		s.startMusic(16 + cmd - audio.OpMusicBaseHigh)
	case cmd == audio.OpMusicStop:
		s.stopMusic()
	case cmd == audio.OpMusicPause:
		if s.music != nil {
			s.music.Paused = true
		}
	case cmd == audio.OpMusicResume:
		if s.music != nil {
			s.music.Paused = false
		}
	case cmd >= audio.OpVolumeBase && cmd < audio.OpVolumeBase+16:
		s.volume = float64(cmd-audio.OpVolumeBase) / float64(audio.VolumeMax)
	case cmd == audio.OpStopAll, cmd == audio.OpReset:
		s.mixer.Clear()
		s.music = nil
	}
}

func (s *SoundSink) playEffect(effect uint8) {
	freq := 220.0 * math.Pow(2, float64(effect)/12.0)
	s.mixer.Add(newTone(freq, time.Millisecond*120, 0.25*s.volume))
}

func (s *SoundSink) startMusic(track uint8) {
	s.stopMusic()
	freq := 110.0 * math.Pow(2, float64(track%12)/12.0)
	s.music = &beep.Ctrl{Streamer: newTone(freq, 0, 0.10*s.volume)}
	s.mixer.Add(s.music)
}

func (s *SoundSink) stopMusic() {
	if s.music == nil {
		return
	}
	// A nil streamer ends the stream, so the mixer drops it.
	s.music.Streamer = nil
	s.music = nil
}

// tone is a sine generator. A zero duration plays until stopped.
type tone struct {
	freq   float64
	gain   float64
	phase  float64
	remain int // samples left, -1 means endless
}

func newTone(freq float64, d time.Duration, gain float64) *tone {
	remain := -1
	if d > 0 {
		remain = sampleRate.N(d)
	}
	return &tone{freq: freq, gain: gain, remain: remain}
}

func (t *tone) Stream(samples [][2]float64) (int, bool) {
	for i := range samples {
		if t.remain == 0 {
			return i, false
		}
		v := t.gain * math.Sin(2*math.Pi*t.phase)
		samples[i][0] = v
		samples[i][1] = v
		t.phase += t.freq / float64(sampleRate)
		t.phase -= math.Floor(t.phase)
		if t.remain > 0 {
			t.remain--
		}
	}
	return len(samples), true
}

func (t *tone) Err() error { return nil }
