package main

import (
	"context"
	"fmt"
	"os"
	"strconv"

	"github.com/spf13/cobra"

	"github.com/vovakirdan/tui-flap/internal/replay"
	"github.com/vovakirdan/tui-flap/internal/storage"
)

var flagReplayDelete bool

var replayCmd = &cobra.Command{
	Use:   "replay <id>",
	Short: "Verify a recorded run",
	Long: `Re-run a stored replay through a fresh simulation and check that it ends
exactly as recorded. A mismatch means the simulation is no longer
deterministic for that input.

Examples:
  flap replay 3
  flap replay 3 --delete`,
	Args: cobra.ExactArgs(1),
	Run:  runReplay,
}

func init() {
	replayCmd.Flags().BoolVar(&flagReplayDelete, "delete", false, "Delete the replay instead of verifying it")
}

func runReplay(_ *cobra.Command, args []string) {
	id, err := strconv.ParseInt(args[0], 10, 64)
	if err != nil || id <= 0 {
		fmt.Fprintf(os.Stderr, "Error: invalid replay id %q\n", args[0])
		os.Exit(1)
	}

	store, err := openStore()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error opening replay database: %v\n", err)
		os.Exit(1)
	}
	defer store.Close()

	ctx := context.Background()
	if flagReplayDelete {
		if err := store.DeleteReplay(ctx, id); err != nil {
			fmt.Fprintf(os.Stderr, "Error: %v\n", err)
			os.Exit(1)
		}
		fmt.Printf("Deleted replay #%d\n", id)
		return
	}

	if err := verifyReplay(ctx, store, id); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

// verifyReplay loads a replay, re-runs it and prints the result.
func verifyReplay(ctx context.Context, store *storage.Store, id int64) error {
	rec, err := store.Replay(ctx, id)
	if err != nil {
		return err
	}

	fmt.Printf("Replay #%d (%s, seed %d, %d frames)\n", rec.ID, rec.Source, rec.Seed, len(rec.Frames))
	fmt.Printf("  recorded: %s\n", rec.Outcome)

	got := replay.Play(rec)
	fmt.Printf("  replayed: %s\n", got)

	if got != rec.Outcome {
		return fmt.Errorf("%w for replay #%d", replay.ErrMismatch, id)
	}
	fmt.Println("  OK")
	return nil
}
