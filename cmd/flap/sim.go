package main

import (
	"context"
	"fmt"
	"os"
	"time"

	"github.com/spf13/cobra"

	"github.com/vovakirdan/tui-flap/internal/registry"
	"github.com/vovakirdan/tui-flap/internal/replay"
	"github.com/vovakirdan/tui-flap/internal/sim"
)

var (
	flagSimPilot    string
	flagSimDuration time.Duration
	flagSimJitter   time.Duration
	flagSimRecord   bool
)

var simCmd = &cobra.Command{
	Use:   "sim",
	Short: "Run an automated pilot headless",
	Long: `Run a pilot against the simulation without a terminal UI and print how
the run ended. The clock is fixed at 1/fps per step, or jittered around it
with --jitter to exercise irregular frame times.

The run stops at the first crash or once --duration of simulated time has
passed.

Examples:
  flap sim
  flap sim --pilot metronome --duration 10s
  flap sim --pilot auto --jitter 8ms --seed 7 --record`,
	Args: cobra.NoArgs,
	Run:  runSim,
}

func init() {
	simCmd.Flags().StringVar(&flagSimPilot, "pilot", "auto", "Pilot ID (see 'flap pilots')")
	simCmd.Flags().DurationVar(&flagSimDuration, "duration", 30*time.Second, "Simulated time limit")
	simCmd.Flags().DurationVar(&flagSimJitter, "jitter", 0, "Random frame time jitter (0 = fixed steps)")
	simCmd.Flags().BoolVar(&flagSimRecord, "record", false, "Save the run as a replay")
}

// simResult is the summary printed after a headless run.
type simResult struct {
	Pilot     string
	Seed      int64
	Recording replay.Recording
	Snapshot  sim.Snapshot
}

func runSim(_ *cobra.Command, _ []string) {
	logger := newLogger(os.Stderr)
	cfg := loadConfig()

	pilot, err := registry.Create(flagSimPilot)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		fmt.Fprintln(os.Stderr, "Run 'flap pilots' to see available pilots.")
		os.Exit(1)
	}

	s := seed()
	step := time.Second / time.Duration(max(flagFPS, 1))
	var clock sim.Clock = sim.FixedClock{Step: step}
	if flagSimJitter > 0 {
		clock = sim.NewJitterClock(step, flagSimJitter, s)
	}

	res := simulate(pilot, replay.NewRecorder(cfg, s, "sim:"+pilot.ID()), clock, flagSimDuration,
		func(r sim.StepResult) {
			for _, e := range r.Events {
				if e.Kind != sim.EventJumped {
					logger.Debug(e.Kind.String(), "score", e.Score, "elapsed", r.Snapshot.Elapsed)
				}
			}
		})
	res.Seed = s

	snap := res.Snapshot
	fmt.Printf("Pilot:    %s\n", res.Pilot)
	fmt.Printf("Seed:     %d\n", res.Seed)
	fmt.Printf("Score:    %d\n", snap.Score)
	fmt.Printf("Elapsed:  %s (%d steps)\n", snap.Elapsed.Round(time.Millisecond), snap.Steps)
	if snap.Mode == sim.ModeGameOver {
		fmt.Printf("Result:   crashed (%s)\n", snap.Cause)
	} else {
		fmt.Println("Result:   survived")
	}

	if !flagSimRecord {
		return
	}

	store, err := openStore()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error opening replay database: %v\n", err)
		os.Exit(1)
	}
	defer store.Close()

	id, err := store.SaveReplay(context.Background(), res.Recording)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error saving replay: %v\n", err)
		os.Exit(1)
	}
	logger.Info("saved replay", "id", id, "frames", len(res.Recording.Frames))
}

// simulate lets pilot play through rec until the first crash or limit of
// simulated time. Every step result is passed to observe.
func simulate(pilot registry.Pilot, rec *replay.Recorder, clock sim.Clock, limit time.Duration, observe func(sim.StepResult)) simResult {
	session := rec.Session()
	pilot.Reset(rec.Recording().Seed)

	finite, _ := clock.(interface{ Remaining() int })

	var simulated time.Duration
	for simulated < limit && session.Mode() == sim.ModePlaying {
		if finite != nil && finite.Remaining() == 0 {
			break
		}
		if pilot.Decide(session.Snapshot()) {
			rec.Tap()
		}
		dt := clock.Tick()
		r := rec.Step(dt)
		if observe != nil {
			observe(r)
		}
		simulated += max(dt, 0)
	}

	return simResult{
		Pilot:     pilot.ID(),
		Recording: rec.Recording(),
		Snapshot:  session.Snapshot(),
	}
}
