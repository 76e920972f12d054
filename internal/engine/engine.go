// Package engine ties the subsystems together and runs the frame loop.
// One Engine owns the bus, the three arenas, and every hardware-facing
// manager; games drive it one Frame at a time.
package engine

import (
	"github.com/manicakes/progearsdk/internal/arena"
	"github.com/manicakes/progearsdk/internal/audio"
	"github.com/manicakes/progearsdk/internal/fixlayer"
	"github.com/manicakes/progearsdk/internal/hw"
	"github.com/manicakes/progearsdk/internal/input"
	"github.com/manicakes/progearsdk/internal/memcard"
	"github.com/manicakes/progearsdk/internal/palette"
	"github.com/manicakes/progearsdk/internal/scene"
)

// LSPC mode register bits controlling the programmable timer.
const (
	TimerIRQEnable    = 0x10
	TimerReloadWrite  = 0x20
	TimerReloadVBlank = 0x40
	TimerReloadZero   = 0x80
)

// Config sizes the arenas and hooks optional generated assets.
type Config struct {
	PersistentSize int
	StateSize      int
	FrameSize      int

	FontBase uint16

	// LoadPalettes is called once during New when an asset pipeline
	// supplies palette data. Nil means no generated palettes.
	LoadPalettes func(*palette.Manager)
}

// DefaultConfig matches the work-RAM split the SDK ships with.
func DefaultConfig() Config {
	return Config{
		PersistentSize: 16 * 1024,
		StateSize:      32 * 1024,
		FrameSize:      8 * 1024,
		FontBase:       0,
	}
}

// UpdateFunc is the per-frame game callback. It runs between the input
// sample and the scene draw.
type UpdateFunc func(*Engine)

// Overlay is UI drawn over the scene at the end of every frame, the
// menu system being the usual implementation.
type Overlay interface {
	Update(*Engine)
	Draw(*Engine)
}

// Handler is an interrupt callback. Handlers must be short: set flags,
// bump counters, at most a one-shot palette or sprite write. No
// allocation, no input reads, no audio commands.
type Handler func(*Engine)

// Engine is the root of the SDK.
type Engine struct {
	bus hw.Bus

	persistent *arena.Arena
	state      *arena.Arena
	frame      *arena.Arena

	System  *hw.System
	LSPC    *hw.LSPC
	Input   *input.State
	Audio   *audio.Host
	Fix     *fixlayer.Writer
	Palette *palette.Manager
	Scene   *scene.Scene
	Card    *memcard.Card

	overlay Overlay

	vblankHandler Handler
	timerHandler  Handler

	mode       uint16
	frameCount uint32
}

// New wires every subsystem over the bus and clears the input state.
func New(bus hw.Bus, cfg Config) *Engine {
	lspc := hw.NewLSPC(bus)
	e := &Engine{
		bus:        bus,
		persistent: arena.New(cfg.PersistentSize),
		state:      arena.New(cfg.StateSize),
		frame:      arena.New(cfg.FrameSize),
		System:     hw.NewSystem(bus),
		LSPC:       lspc,
		Input:      input.New(bus),
		Audio:      audio.NewHost(hw.NewMailbox(bus)),
		Fix:        fixlayer.New(lspc, cfg.FontBase),
		Palette:    palette.New(bus),
		Scene:      scene.New(lspc),
		Card:       memcard.New(bus),
	}
	e.Input.Init()
	if cfg.LoadPalettes != nil {
		cfg.LoadPalettes(e.Palette)
	}
	return e
}

// Bus exposes the raw bus for platform code.
func (e *Engine) Bus() hw.Bus { return e.bus }

// PersistentArena, StateArena, and FrameArena expose the three tiers
// for callers needing marks or direct allocation.
func (e *Engine) PersistentArena() *arena.Arena { return e.persistent }
func (e *Engine) StateArena() *arena.Arena      { return e.state }
func (e *Engine) FrameArena() *arena.Arena      { return e.frame }

// Frame runs one full frame. The order is load-bearing: the frame
// arena resets after vblank so interrupt-time code never sees a
// half-reset arena, and input samples before game logic so the whole
// frame reads one snapshot.
func (e *Engine) Frame(update UpdateFunc) {
	e.System.WaitVBlank()
	e.System.KickWatchdog()
	e.frame.Reset()
	e.Input.Update()

	if update != nil {
		update(e)
	}
	e.Scene.Update()
	e.Scene.Draw()

	if o := e.overlay; o != nil {
		o.Update(e)
	}
	// Re-read: Update may have removed or replaced the overlay.
	if o := e.overlay; o != nil {
		o.Draw(e)
	}

	e.frameCount++
}

// FrameCount returns the number of completed frames since boot.
func (e *Engine) FrameCount() uint32 { return e.frameCount }

// AllocFrame allocates scratch living until the next frame starts.
func (e *Engine) AllocFrame(size int) []byte { return e.frame.Alloc(size) }

// AllocState allocates from the state arena, freed in bulk at scene
// transitions via ResetState.
func (e *Engine) AllocState(size int) []byte { return e.state.Alloc(size) }

// AllocPersistent allocates for the lifetime of the program.
func (e *Engine) AllocPersistent(size int) []byte { return e.persistent.Alloc(size) }

// ResetState drops everything in the state arena.
func (e *Engine) ResetState() { e.state.Reset() }

// SetOverlay installs the active overlay; nil removes it.
func (e *Engine) SetOverlay(o Overlay) { e.overlay = o }

// Overlay returns the active overlay, or nil.
func (e *Engine) Overlay() Overlay { return e.overlay }

// OnVBlank registers the vblank interrupt handler.
func (e *Engine) OnVBlank(h Handler) { e.vblankHandler = h }

// OnTimer registers the programmable-timer handler.
func (e *Engine) OnTimer(h Handler) { e.timerHandler = h }

// ServiceVBlank is the vblank interrupt entry, called by the platform
// layer. It raises the flag the frame loop waits on, then runs the
// user handler.
func (e *Engine) ServiceVBlank() {
	e.bus.Write8(hw.BIOSVBlankFlag, 1)
	if e.vblankHandler != nil {
		e.vblankHandler(e)
	}
}

// ServiceTimer is the timer interrupt entry.
func (e *Engine) ServiceTimer() {
	e.bus.Write16(hw.LSPCIRQAck, 2)
	if e.timerHandler != nil {
		e.timerHandler(e)
	}
}

// SetTimer programs the reload value and enables the timer interrupt.
// The reload is in pixel clocks; reloadMode picks when the counter
// refills.
func (e *Engine) SetTimer(reload uint32, reloadMode uint16) {
	e.bus.Write16(hw.LSPCTimerHigh, uint16(reload>>16))
	e.bus.Write16(hw.LSPCTimerLow, uint16(reload))
	e.mode = e.mode&0xFF0F | TimerIRQEnable | reloadMode
	e.System.SetMode(e.mode)
}

// StopTimer disables the timer interrupt.
func (e *Engine) StopTimer() {
	e.mode &^= TimerIRQEnable
	e.System.SetMode(e.mode)
}

// SetAutoAnimSpeed sets the hardware auto-animation period in frames.
func (e *Engine) SetAutoAnimSpeed(frames uint8) {
	e.mode = e.mode&0x00FF | uint16(frames)<<8
	e.System.SetMode(e.mode)
}
