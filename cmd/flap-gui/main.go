// flap-gui opens the flap simulation in a desktop window.
//
// Controls: Space/Up/Click to flap, P to pause, Q/Esc to quit.
package main

import (
	"fmt"
	"os"
	"time"

	"github.com/charmbracelet/log"
	"github.com/spf13/cobra"

	"github.com/vovakirdan/tui-flap/internal/config"
	"github.com/vovakirdan/tui-flap/internal/platform/gui"
)

var (
	flagSeed     int64
	flagConfig   string
	flagLogLevel string
)

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

var rootCmd = &cobra.Command{
	Use:   "flap-gui",
	Short: "Flap in a desktop window",
	Args:  cobra.NoArgs,
	RunE: func(_ *cobra.Command, _ []string) error {
		cfg, err := config.Load(flagConfig)
		if err != nil {
			return err
		}

		level, err := log.ParseLevel(flagLogLevel)
		if err != nil {
			return err
		}
		logger := log.NewWithOptions(os.Stderr, log.Options{
			ReportTimestamp: true,
			Prefix:          "flap-gui",
			Level:           level,
		})

		seed := flagSeed
		if seed == 0 {
			seed = time.Now().UnixNano()
		}
		logger.Info("starting", "seed", seed, "field", fmt.Sprintf("%vx%v", cfg.Field.Width, cfg.Field.Height))

		return gui.Run(cfg, seed, logger)
	},
}

func init() {
	rootCmd.Flags().Int64Var(&flagSeed, "seed", 0, "RNG seed (0 = random based on time)")
	rootCmd.Flags().StringVar(&flagConfig, "config", "", "Path to custom tuning YAML")
	rootCmd.Flags().StringVar(&flagLogLevel, "log-level", "info", "Log level: debug, info, warn, error")
}
