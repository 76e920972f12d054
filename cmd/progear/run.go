package main

import (
	"github.com/charmbracelet/log"
	"github.com/spf13/cobra"

	"github.com/manicakes/progearsdk/internal/ui"
)

var runCmd = &cobra.Command{
	Use:   "run",
	Short: "Open the showcase program in a window",
	Run:   runWindowed,
}

func runWindowed(cmd *cobra.Command, args []string) {
	cfg := loadShellConfig()
	con, eng, update := boot(cfg)

	log.Info("booting", "title", cfg.Title, "mvs", cfg.MVS, "region", cfg.Region)
	app := ui.NewApp(cfg, con, eng, update)
	if err := app.Run(); err != nil {
		log.Fatal("shell exited", "err", err)
	}
}
