package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/vovakirdan/tui-flap/internal/registry"
)

var pilotsCmd = &cobra.Command{
	Use:   "pilots",
	Short: "List all automated pilots",
	Long:  `Shows a list of all pilots that 'flap sim' can run.`,
	Args:  cobra.NoArgs,
	Run:   runPilots,
}

func runPilots(_ *cobra.Command, _ []string) {
	pilots := registry.List()

	if len(pilots) == 0 {
		fmt.Println("No pilots available.")
		return
	}

	fmt.Println("Available pilots:")
	fmt.Println()

	// Calculate column widths
	maxIDLen := 2 // "ID" header
	for _, p := range pilots {
		maxIDLen = max(maxIDLen, len(p.ID))
	}

	fmt.Printf("  %-*s  %s\n", maxIDLen, "ID", "Title")
	fmt.Printf("  %-*s  %s\n", maxIDLen, "--", "-----")

	for _, p := range pilots {
		fmt.Printf("  %-*s  %s\n", maxIDLen, p.ID, p.Title)
	}

	fmt.Println()
	fmt.Println("Run 'flap sim --pilot <id>' to watch one fly.")
}
