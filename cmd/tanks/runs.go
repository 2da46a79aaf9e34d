package main

import (
	"fmt"

	"github.com/dustin/go-humanize"
	"github.com/spf13/cobra"

	"github.com/vovakirdan/tui-tanks/internal/registry"
	"github.com/vovakirdan/tui-tanks/internal/storage"
)

var flagRunsLimit int

var runsCmd = &cobra.Command{
	Use:   "runs [mode]",
	Short: "Show recently finished runs",
	Long: `List the most recent finished runs, optionally for one mode.
A run records the stage reached, scores and kills per enemy tier.

Examples:
  tanks runs
  tanks runs tanks_duo --limit 5`,
	Args: cobra.MaximumNArgs(1),
	RunE: runRuns,
}

func init() {
	runsCmd.Flags().IntVar(&flagRunsLimit, "limit", 20, "Number of runs to show")
}

func runRuns(_ *cobra.Command, args []string) error {
	gameID := ""
	if len(args) > 0 {
		gameID = args[0]
		if !registry.Exists(gameID) {
			return fmt.Errorf("unknown mode %q, run 'tanks list' to see available modes", gameID)
		}
	}

	store, err := storage.Open(flagDBPath)
	if err != nil {
		return err
	}
	defer store.Close()

	runs, err := store.RecentRuns(gameID, flagRunsLimit)
	if err != nil {
		return err
	}
	if len(runs) == 0 {
		fmt.Println("No finished runs yet.")
		return nil
	}

	fmt.Printf("  %-8s  %-16s  %-9s  %5s  %9s  %-10s  %-8s  %s\n",
		"ID", "When", "Mode", "Stage", "Score", "Kills", "Time", "End")
	for _, r := range runs {
		fmt.Printf("  %-8s  %-16s  %-9s  %5d  %9s  %-10s  %-8s  %s\n",
			shortID(r.ID),
			humanize.Time(r.CreatedAt),
			r.GameID,
			r.Stage,
			humanize.Comma(int64(r.Total())),
			fmt.Sprintf("%d/%d/%d", r.Kills[0], r.Kills[1], r.Kills[2]),
			r.Duration,
			r.EndReason,
		)
	}
	return nil
}

func shortID(id string) string {
	if len(id) > 8 {
		return id[:8]
	}
	return id
}
