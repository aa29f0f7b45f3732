// flap is a one-button side-scroller that runs in the terminal.
//
// Usage:
//
//	flap play               - Play in the terminal
//	flap sim                - Run a pilot headless and print the result
//	flap pilots             - List available pilots
//	flap replays            - Browse recorded runs
//	flap replay <id>        - Re-run a recording and verify its outcome
//	flap serve              - Start SSH server for remote play
//
// Global flags:
//
//	--fps <rate>         - Set redraw rate (default: 60)
//	--seed <value>       - Set RNG seed for reproducible obstacles
//	--config <path>      - Use a custom tuning YAML
//	--db <path>          - Set replay database path (default: XDG data dir)
//	--log-level <level>  - debug, info, warn or error
package main

import (
	"fmt"
	"io"
	"os"
	"time"

	"github.com/charmbracelet/log"
	"github.com/spf13/cobra"

	"github.com/vovakirdan/tui-flap/internal/config"
	// Import pilots to register them
	_ "github.com/vovakirdan/tui-flap/internal/pilots"
	"github.com/vovakirdan/tui-flap/internal/storage"
)

var (
	// Global flags
	flagFPS      int
	flagSeed     int64
	flagConfig   string
	flagDBPath   string
	flagLogLevel string
)

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

var rootCmd = &cobra.Command{
	Use:   "flap",
	Short: "Flap - a one-button side-scroller for your terminal",
	Long: `Flap is a one-button side-scroller. A body falls under gravity, every
tap throws it upward, and a pair of obstacles scrolls past with a gap to fly
through. Each pair that passes scores a point; touching one ends the run.

Available commands:
  play     - Play in the terminal
  sim      - Run an automated pilot headless
  pilots   - List automated pilots
  replays  - Browse recorded runs
  replay   - Verify a recorded run
  serve    - Start SSH server for remote play

Examples:
  flap play
  flap play --seed 42 --record
  flap sim --pilot auto --duration 1m
  flap replay 3
  flap serve --ssh :2222`,
}

func init() {
	// Global persistent flags
	rootCmd.PersistentFlags().IntVar(&flagFPS, "fps", 60, "Redraw rate (frames per second)")
	rootCmd.PersistentFlags().Int64Var(&flagSeed, "seed", 0, "RNG seed (0 = random based on time)")
	rootCmd.PersistentFlags().StringVar(&flagConfig, "config", "", "Path to custom tuning YAML")
	rootCmd.PersistentFlags().StringVar(&flagDBPath, "db", "", "Path to replay database (default: XDG data dir)")
	rootCmd.PersistentFlags().StringVar(&flagLogLevel, "log-level", "info", "Log level: debug, info, warn, error")

	// Add subcommands
	rootCmd.AddCommand(playCmd)
	rootCmd.AddCommand(simCmd)
	rootCmd.AddCommand(pilotsCmd)
	rootCmd.AddCommand(replaysCmd)
	rootCmd.AddCommand(replayCmd)
	rootCmd.AddCommand(serveCmd)
}

// newLogger builds the command logger writing to w.
func newLogger(w io.Writer) *log.Logger {
	level, err := log.ParseLevel(flagLogLevel)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Warning: %v, using info\n", err)
		level = log.InfoLevel
	}
	return log.NewWithOptions(w, log.Options{
		ReportTimestamp: true,
		TimeFormat:      time.TimeOnly,
		Prefix:          "flap",
		Level:           level,
	})
}

// loadConfig loads the tuning or exits.
func loadConfig() config.FlapConfig {
	cfg, err := config.Load(flagConfig)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
	return cfg
}

// seed returns the --seed value or a time-based one.
func seed() int64 {
	if flagSeed != 0 {
		return flagSeed
	}
	return time.Now().UnixNano()
}

// openStore opens the replay database at --db or the XDG default.
func openStore() (*storage.Store, error) {
	path := flagDBPath
	if path == "" {
		var err error
		if path, err = storage.DefaultPath(); err != nil {
			return nil, err
		}
	}
	return storage.Open(path)
}
