// progear runs SDK programs on a simulated console.
//
// Usage:
//
//	progear run                  - Open the showcase program in a window
//	progear headless             - Run without a window and report a frame checksum
//
// Global flags:
//
//	--config <path>  - YAML shell config (window, cabinet, memory card)
package main

import (
	"fmt"
	"os"

	"github.com/charmbracelet/log"
	"github.com/spf13/cobra"

	"github.com/manicakes/progearsdk/internal/console"
	"github.com/manicakes/progearsdk/internal/engine"
	"github.com/manicakes/progearsdk/internal/ui"
)

var flagConfig string

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

var rootCmd = &cobra.Command{
	Use:   "progear",
	Short: "ProGear SDK console shell",
	Long: `progear boots the showcase program on a simulated console.

Controls:
  Arrows     - Move
  Z/X/C/V    - Buttons A/B/C/D
  Enter      - Start (opens the pause menu)
  5          - Insert coin
  P          - Pause the shell, N steps one frame
  Tab        - Fast-forward
  F1         - Toggle HUD, F12 saves a screenshot`,
}

func init() {
	rootCmd.PersistentFlags().StringVar(&flagConfig, "config", "", "Path to shell config YAML")
	rootCmd.AddCommand(runCmd)
	rootCmd.AddCommand(headlessCmd)
}

// boot builds a console and an engine running the showcase program.
func boot(cfg ui.Config) (*console.Console, *engine.Engine, engine.UpdateFunc) {
	con := console.New()
	con.Tiles = ui.NewFontTiles()
	con.SetCabinet(cfg.MVS, uint8(cfg.Region))
	if cfg.CardSize > 0 {
		con.InsertCard(cfg.CardSize, !cfg.CardReadOnly)
	}

	engCfg := engine.DefaultConfig()
	engCfg.LoadPalettes = loadPalettes
	eng := engine.New(con, engCfg)

	d := newDemo(eng)
	return con, eng, d.frame
}

func loadShellConfig() ui.Config {
	cfg, err := ui.LoadConfig(flagConfig)
	if err != nil {
		log.Fatal("config", "err", err)
	}
	return cfg
}
