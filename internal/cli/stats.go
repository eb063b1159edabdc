package cli

import (
	"fmt"

	"github.com/dustin/go-humanize"
	"github.com/spf13/cobra"

	"github.com/rcliao/yournote/internal/store"
)

func init() {
	cmd := &cobra.Command{
		Use:   "stats",
		Short: "Show database statistics",
		Run:   runStats,
	}

	RootCmd.AddCommand(cmd)
}

func runStats(cmd *cobra.Command, args []string) {
	s, err := openStore()
	if err != nil {
		exitErr("open store", err)
	}
	defer s.Close()

	stats, err := store.CollectStats(cmd.Context(), s, getDBPath())
	if err != nil {
		exitErr("stats", err)
	}

	if jsonOutput() {
		printJSON(stats)
		return
	}
	fmt.Printf("Database:  %s (%s)\n", stats.DBPath, humanize.Bytes(uint64(stats.DBSizeBytes)))
	fmt.Printf("Notes:     %d\n", stats.Notes)
	fmt.Printf("Exams:     %d\n", stats.Exams)
	fmt.Printf("Results:   %d\n", stats.Results)
	if stats.Results > 0 {
		fmt.Printf("Average:   %.1f%%\n", stats.AveragePercentage)
		fmt.Printf("Best:      %.1f%%\n", stats.BestPercentage)
	}
}
