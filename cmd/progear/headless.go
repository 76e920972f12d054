package main

import (
	"fmt"
	"hash/crc32"
	"image"
	"image/png"
	"os"
	"strings"
	"time"

	"github.com/charmbracelet/log"
	"github.com/spf13/cobra"

	"github.com/manicakes/progearsdk/internal/hw"
)

var (
	flagFrames int
	flagPNGOut string
	flagExpect string
)

var headlessCmd = &cobra.Command{
	Use:   "headless",
	Short: "Run without a window and report a frame checksum",
	RunE:  runHeadless,
}

func init() {
	headlessCmd.Flags().IntVar(&flagFrames, "frames", 300, "frames to run")
	headlessCmd.Flags().StringVar(&flagPNGOut, "outpng", "", "write last frame to PNG at path")
	headlessCmd.Flags().StringVar(&flagExpect, "expect", "", "assert frame CRC32 (hex)")
}

func runHeadless(cmd *cobra.Command, args []string) error {
	cfg := loadShellConfig()
	con, eng, update := boot(cfg)

	frames := flagFrames
	if frames <= 0 {
		frames = 1
	}

	start := time.Now()
	for i := 0; i < frames; i++ {
		eng.ServiceVBlank()
		eng.Frame(update)
		con.StepFrame()
	}
	dur := time.Since(start)

	fb := con.Render()
	crc := crc32.ChecksumIEEE(fb)
	fps := float64(frames) / dur.Seconds()

	log.Info("headless done",
		"frames", frames,
		"elapsed", dur.Truncate(time.Millisecond),
		"fps", fmt.Sprintf("%.1f", fps),
		"crc32", fmt.Sprintf("%08x", crc),
		"hung", con.Hung())

	if flagPNGOut != "" {
		if err := saveFramePNG(fb, flagPNGOut); err != nil {
			return fmt.Errorf("write PNG: %w", err)
		}
		log.Info("wrote frame", "file", flagPNGOut)
	}

	if flagExpect != "" {
		want := strings.TrimPrefix(strings.ToLower(flagExpect), "0x")
		got := fmt.Sprintf("%08x", crc)
		if got != want {
			return fmt.Errorf("checksum mismatch: got %s, want %s", got, want)
		}
	}
	return nil
}

func saveFramePNG(pix []byte, path string) error {
	img := &image.RGBA{
		Pix:    make([]byte, len(pix)),
		Stride: 4 * hw.ScreenWidth,
		Rect:   image.Rect(0, 0, hw.ScreenWidth, hw.ScreenHeight),
	}
	copy(img.Pix, pix)
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	defer f.Close()
	return png.Encode(f, img)
}
