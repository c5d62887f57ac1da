package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/vovakirdan/combo-jump/internal/storage"
)

var flagClear bool

var statsCmd = &cobra.Command{
	Use:   "stats",
	Short: "Show statistics of the local scores database",
	Long: `Display aggregate statistics of the scores database used by 'play'
without a ranking URL, by 'serve' and by 'rankd'.

Examples:
  combojump stats
  combojump stats --db ./ranking.db
  combojump stats --clear`,
	Args: cobra.NoArgs,
	RunE: runStats,
}

func init() {
	statsCmd.Flags().BoolVar(&flagClear, "clear", false, "Delete every recorded score")
}

func runStats(cmd *cobra.Command, _ []string) error {
	store, err := storage.Open(dbPath(cmd))
	if err != nil {
		return err
	}
	defer store.Close() //nolint:errcheck // Best-effort close

	out := cmd.OutOrStdout()
	if flagClear {
		if err := store.ClearEntries(); err != nil {
			return err
		}
		fmt.Fprintln(out, "All scores deleted.")
		return nil
	}

	stats, err := store.GetStats()
	if err != nil {
		return err
	}
	if stats.Entries == 0 {
		fmt.Fprintln(out, "No scores recorded yet.")
		return nil
	}
	best, err := store.HighScore()
	if err != nil {
		return err
	}

	fmt.Fprintf(out, "Runs:         %d\n", stats.Entries)
	fmt.Fprintf(out, "Players:      %d\n", stats.Players)
	fmt.Fprintf(out, "Best:         %d\n", best)
	fmt.Fprintf(out, "Average:      %.1f\n", stats.AvgScore)
	if !stats.LastPlayed.IsZero() {
		fmt.Fprintf(out, "Last played:  %s\n", stats.LastPlayed.Local().Format("2006-01-02 15:04"))
	}
	return nil
}
