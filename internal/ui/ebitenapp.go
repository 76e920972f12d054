package ui

import (
	"fmt"
	"image"
	"image/color"
	"image/png"
	"os"
	"time"

	"github.com/charmbracelet/log"
	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/inpututil"
	"github.com/hajimehoshi/ebiten/v2/text"
	"golang.org/x/image/font/basicfont"

	"github.com/manicakes/progearsdk/internal/console"
	"github.com/manicakes/progearsdk/internal/engine"
	"github.com/manicakes/progearsdk/internal/hw"
)

// App runs a program on a simulated console inside an Ebiten window.
type App struct {
	cfg    Config
	con    *console.Console
	eng    *engine.Engine
	update engine.UpdateFunc
	sink   *SoundSink
	tex    *ebiten.Image

	paused  bool
	fast    bool
	showHUD bool
}

func NewApp(cfg Config, con *console.Console, eng *engine.Engine, update engine.UpdateFunc) *App {
	cfg.Defaults()
	ebiten.SetWindowTitle(cfg.Title)
	ebiten.SetWindowSize(hw.ScreenWidth*cfg.Scale, hw.ScreenHeight*cfg.Scale)
	a := &App{cfg: cfg, con: con, eng: eng, update: update, showHUD: cfg.ShowHUD}
	if !cfg.Mute {
		a.sink = NewSoundSink()
		if err := a.sink.Start(); err != nil {
			log.Warn("audio unavailable", "err", err)
			a.sink = nil
		}
	}
	return a
}

func (a *App) Run() error {
	defer func() {
		if a.sink != nil {
			a.sink.Close()
		}
	}()
	return ebiten.RunGame(a)
}

func (a *App) Update() error {
	// Keyboard → controller
	var pad uint8
	if ebiten.IsKeyPressed(ebiten.KeyUp) {
		pad |= hw.IOUp
	}
	if ebiten.IsKeyPressed(ebiten.KeyDown) {
		pad |= hw.IODown
	}
	if ebiten.IsKeyPressed(ebiten.KeyLeft) {
		pad |= hw.IOLeft
	}
	if ebiten.IsKeyPressed(ebiten.KeyRight) {
		pad |= hw.IORight
	}
	if ebiten.IsKeyPressed(ebiten.KeyZ) {
		pad |= hw.IOA
	}
	if ebiten.IsKeyPressed(ebiten.KeyX) {
		pad |= hw.IOB
	}
	if ebiten.IsKeyPressed(ebiten.KeyC) {
		pad |= hw.IOC
	}
	if ebiten.IsKeyPressed(ebiten.KeyV) {
		pad |= hw.IOD
	}
	var sys uint8
	if ebiten.IsKeyPressed(ebiten.KeyEnter) {
		sys |= hw.IOP1Start
	}
	if ebiten.IsKeyPressed(ebiten.KeyShiftRight) {
		sys |= hw.IOP1Select
	}
	var coins uint8
	if ebiten.IsKeyPressed(ebiten.Key5) {
		coins |= hw.IOCoin1
	}
	if ebiten.IsKeyPressed(ebiten.Key6) {
		coins |= hw.IOCoin2
	}
	if ebiten.IsKeyPressed(ebiten.Key9) {
		coins |= hw.IOService
	}
	a.con.SetPad1(pad)
	a.con.SetSystemButtons(sys)
	a.con.SetCoins(coins)

	// Pause toggle (P)
	if inpututil.IsKeyJustPressed(ebiten.KeyP) {
		a.paused = !a.paused
	}

	// Fast-forward (Tab): while held, run multiple frames per Ebiten update
	a.fast = ebiten.IsKeyPressed(ebiten.KeyTab)

	if inpututil.IsKeyJustPressed(ebiten.KeyF1) {
		a.showHUD = !a.showHUD
	}

	// Screenshot (F12)
	if inpututil.IsKeyJustPressed(ebiten.KeyF12) {
		if err := a.saveScreenshot(); err != nil {
			log.Error("screenshot failed", "err", err)
		}
	}

	switch {
	case a.paused:
		// Frame-step when paused (N)
		if inpututil.IsKeyJustPressed(ebiten.KeyN) {
			a.stepFrame()
		}
	case a.fast:
		for i := 0; i < 5; i++ {
			a.stepFrame()
		}
	default:
		a.stepFrame()
	}

	if a.sink != nil {
		a.sink.Drain(a.con.SoundLog())
	}
	return nil
}

// stepFrame runs one console frame: vblank first so the frame loop
// sees the interrupt flag, then the program, then the watchdog check.
func (a *App) stepFrame() {
	a.eng.ServiceVBlank()
	a.eng.Frame(a.update)
	a.con.StepFrame()
}

func (a *App) Draw(screen *ebiten.Image) {
	if a.tex == nil {
		a.tex = ebiten.NewImage(hw.ScreenWidth, hw.ScreenHeight)
	}
	a.tex.WritePixels(a.con.Render())
	screen.DrawImage(a.tex, nil)

	if a.showHUD {
		a.drawHUD(screen)
	}
}

func (a *App) drawHUD(screen *ebiten.Image) {
	face := basicfont.Face7x13
	hud := fmt.Sprintf("frame %d", a.eng.FrameCount())
	if a.paused {
		hud += "  PAUSED"
	}
	if a.con.Hung() {
		hud += "  WATCHDOG"
	}
	text.Draw(screen, hud, face, 4, 12, color.RGBA{255, 255, 0, 255})
}

func (a *App) Layout(outW, outH int) (int, int) { return hw.ScreenWidth, hw.ScreenHeight }

func (a *App) saveScreenshot() error {
	fb := a.con.Render()
	img := &image.RGBA{
		Pix:    make([]byte, len(fb)),
		Stride: 4 * hw.ScreenWidth,
		Rect:   image.Rect(0, 0, hw.ScreenWidth, hw.ScreenHeight),
	}
	copy(img.Pix, fb)
	ts := time.Now().Format("20060102_150405")
	name := fmt.Sprintf("screenshot_%s.png", ts)
	f, err := os.Create(name)
	if err != nil {
		return err
	}
	defer f.Close()
	if err := png.Encode(f, img); err != nil {
		return err
	}
	log.Info("wrote screenshot", "file", name)
	return nil
}
