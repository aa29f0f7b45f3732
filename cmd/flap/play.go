package main

import (
	"context"
	"fmt"
	"os"

	"github.com/adrg/xdg"
	"github.com/charmbracelet/log"
	"github.com/spf13/cobra"
	"golang.org/x/term"

	"github.com/vovakirdan/tui-flap/internal/config"
	"github.com/vovakirdan/tui-flap/internal/platform/tui"
)

var flagPlayRecord bool

var playCmd = &cobra.Command{
	Use:   "play",
	Short: "Play in the terminal",
	Long: `Start a run in the terminal.

Controls:
  Space/Up/Click  - Flap (restart after game over)
  P/Esc           - Pause
  Q/Ctrl+C        - Quit

Logs go to the XDG state directory so the screen stays clean.

Examples:
  flap play
  flap play --seed 42
  flap play --record
  flap play --config ./floaty.yaml`,
	Args: cobra.NoArgs,
	Run:  runPlay,
}

func init() {
	playCmd.Flags().BoolVar(&flagPlayRecord, "record", false, "Save the run as a replay on quit")
}

func runPlay(_ *cobra.Command, _ []string) {
	cfg := loadConfig()

	// Get terminal size
	width, height := 80, 24 // Defaults
	if w, h, termErr := term.GetSize(int(os.Stdout.Fd())); termErr == nil {
		width = w
		height = h
	}

	logger, closeLog := playLogger()
	defer closeLog()

	rec, err := tui.Run(tui.Options{
		Config:   cfg,
		Seed:     seed(),
		TickRate: flagFPS,
		Width:    width,
		Height:   height,
		Source:   "play",
		Logger:   logger,
	})
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error running game: %v\n", err)
		os.Exit(1)
	}

	fmt.Printf("Final score: %d\n", rec.Outcome.Score)

	if !flagPlayRecord || len(rec.Frames) == 0 {
		return
	}

	store, err := openStore()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Warning: could not open replay database: %v\n", err)
		return
	}
	defer store.Close()

	id, err := store.SaveReplay(context.Background(), rec)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Warning: could not save replay: %v\n", err)
		return
	}
	fmt.Printf("Saved replay #%d (%d frames). Verify with: flap replay %d\n", id, len(rec.Frames), id)
}

// playLogger logs to the XDG state file. It returns a nil logger when the
// file cannot be opened, since nothing may write to the alt screen.
func playLogger() (*log.Logger, func()) {
	path, err := xdg.StateFile(config.AppName + "/flap.log")
	if err == nil {
		f, openErr := os.OpenFile(path, os.O_CREATE|os.O_APPEND|os.O_WRONLY, 0o600)
		if openErr == nil {
			return newLogger(f), func() { f.Close() }
		}
	}
	return nil, func() {}
}
