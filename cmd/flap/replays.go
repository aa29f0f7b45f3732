package main

import (
	"context"
	"fmt"
	"os"
	"time"

	"github.com/spf13/cobra"
	"golang.org/x/term"

	"github.com/vovakirdan/tui-flap/internal/platform/tui"
	"github.com/vovakirdan/tui-flap/internal/storage"
)

var (
	flagReplaysLimit int
	flagReplaysPlain bool
)

var replaysCmd = &cobra.Command{
	Use:   "replays",
	Short: "Browse recorded runs",
	Long: `List the most recent replays. On a terminal this opens an interactive
table; pressing enter verifies the selected replay. Use --plain (or pipe the
output) for a plain listing.

Examples:
  flap replays
  flap replays --limit 50 --plain`,
	Args: cobra.NoArgs,
	Run:  runReplays,
}

func init() {
	replaysCmd.Flags().IntVar(&flagReplaysLimit, "limit", 20, "Number of replays to list")
	replaysCmd.Flags().BoolVar(&flagReplaysPlain, "plain", false, "Print a plain listing instead of the table UI")
}

func runReplays(_ *cobra.Command, _ []string) {
	store, err := openStore()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error opening replay database: %v\n", err)
		os.Exit(1)
	}
	defer store.Close()

	ctx := context.Background()
	list, err := store.RecentReplays(ctx, flagReplaysLimit)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error retrieving replays: %v\n", err)
		os.Exit(1)
	}

	fd := int(os.Stdout.Fd())
	if flagReplaysPlain || !term.IsTerminal(fd) {
		printReplays(list)
		return
	}

	width, height := 80, 24
	if w, h, termErr := term.GetSize(fd); termErr == nil {
		width, height = w, h
	}

	id, err := tui.RunReplays(list, width, height)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
	if id == 0 {
		return
	}
	if err := verifyReplay(ctx, store, id); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

// printReplays writes a plain table of replay summaries to stdout.
func printReplays(list []storage.ReplaySummary) {
	if len(list) == 0 {
		fmt.Println("No replays recorded yet.")
		return
	}

	fmt.Printf("  %-6s  %-14s  %6s  %8s  %7s  %s\n", "ID", "Source", "Score", "Time", "Frames", "Date")
	fmt.Printf("  %-6s  %-14s  %6s  %8s  %7s  %s\n", "--", "------", "-----", "----", "------", "----")
	for _, r := range list {
		fmt.Printf("  %-6d  %-14s  %6d  %8s  %7d  %s\n",
			r.ID, r.Source, r.Score, r.Elapsed.Round(100*time.Millisecond), r.FrameCount,
			r.CreatedAt.Format("2006-01-02 15:04"))
	}
}
