package main

import (
	"context"
	"errors"
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"golang.org/x/term"

	"github.com/vovakirdan/combo-jump/internal/platform/tui"
	"github.com/vovakirdan/combo-jump/internal/ranking"
)

var (
	flagScoresTUI bool
	flagWatch     bool
)

var scoresCmd = &cobra.Command{
	Use:   "scores",
	Short: "Show the ranking",
	Long: `Display the top scores from the ranking service, or from the local
scores database when no ranking URL is configured.

With --watch the ranking screen stays open and refreshes whenever the ranking
service accepts a new score (requires a ranking URL).

Examples:
  combojump scores
  combojump scores --tui
  COMBOJUMP_RANKING_URL=http://localhost:8080 combojump scores --watch`,
	Args: cobra.NoArgs,
	RunE: runScores,
}

func init() {
	scoresCmd.Flags().BoolVar(&flagScoresTUI, "tui", false, "Show the interactive ranking screen")
	scoresCmd.Flags().BoolVar(&flagWatch, "watch", false, "Keep the ranking screen open with live updates")
}

func runScores(cmd *cobra.Command, _ []string) error {
	cfg, err := loadGameConfig()
	if err != nil {
		return err
	}
	svc, release, err := openRanking(cmd, cfg, logger)
	if err != nil {
		return err
	}
	defer release()

	if flagWatch || flagScoresTUI {
		return runScoresScreen(cfg.Ranking.URL, svc)
	}

	ctx := cmd.Context()
	if cfg.Ranking.Timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, cfg.Ranking.Timeout)
		defer cancel()
	}
	records, err := svc.Leaderboard(ctx)
	if err != nil {
		return fmt.Errorf("could not load the ranking: %w", err)
	}

	out := cmd.OutOrStdout()
	fmt.Fprintln(out, "High Scores - Combo Jump")
	fmt.Fprintln(out)

	if len(records) == 0 {
		fmt.Fprintln(out, "No scores recorded yet.")
		fmt.Fprintln(out)
		fmt.Fprintln(out, "Play 'combojump play' to set the first high score!")
		return nil
	}

	fmt.Fprintf(out, "  %-4s  %-15s  %s\n", "Rank", "Player", "Score")
	fmt.Fprintf(out, "  %-4s  %-15s  %s\n", "----", "------", "-----")
	for i, r := range records {
		fmt.Fprintf(out, "  %-4d  %-15s  %d\n", i+1, r.Name, r.Score)
	}
	return nil
}

// runScoresScreen opens the ranking screen, subscribed to the live feed when
// --watch is set.
func runScoresScreen(endpoint string, svc ranking.Service) error {
	width, height := 80, 24
	if w, h, termErr := term.GetSize(int(os.Stdout.Fd())); termErr == nil {
		width = w
		height = h
	}

	if !flagWatch {
		return tui.RunScores(svc, nil, width, height)
	}
	if endpoint == "" {
		return errors.New("--watch needs a ranking URL (set COMBOJUMP_RANKING_URL)")
	}
	feedURL, err := ranking.WatchURL(endpoint)
	if err != nil {
		return err
	}

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	updates := make(chan []ranking.Record, 1)
	go func() {
		defer close(updates)
		err := ranking.Watch(ctx, feedURL, func(records []ranking.Record) {
			select {
			case updates <- records:
			case <-ctx.Done():
			}
		})
		if err != nil {
			logger.Debug("live feed stopped", "error", err)
		}
	}()

	return tui.RunScores(svc, updates, width, height)
}
