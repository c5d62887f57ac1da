package main

import (
	"context"
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"github.com/vovakirdan/combo-jump/internal/core"
	"github.com/vovakirdan/combo-jump/internal/games/jumper"
	"github.com/vovakirdan/combo-jump/internal/ranking"
)

var (
	flagLead     float64
	flagMaxTicks int
	flagSubmit   bool
)

var simulateCmd = &cobra.Command{
	Use:   "simulate",
	Short: "Run a headless game with an autopilot",
	Long: `Play a full run without a terminal UI. An autopilot jumps whenever an
obstacle is close, and the final state is printed when the clock runs out.

With --submit the result is handed to the ranking like a played run.

Examples:
  combojump simulate
  combojump simulate --seed 42 --lead 8
  combojump simulate --difficulty hard --submit --name bot`,
	Args: cobra.NoArgs,
	RunE: runSimulate,
}

func init() {
	simulateCmd.Flags().Float64Var(&flagLead, "lead", jumper.DefaultLead, "Autopilot lookahead in frames")
	simulateCmd.Flags().IntVar(&flagMaxTicks, "max-ticks", 60*60*60, "Stop after this many frames")
	simulateCmd.Flags().BoolVar(&flagSubmit, "submit", false, "Submit the result to the ranking")
	simulateCmd.Flags().StringVar(&flagName, "name", "", "Player name for --submit")
	simulateCmd.Flags().StringVar(&flagEmail, "email", "", "Player email for --submit")
}

func runSimulate(cmd *cobra.Command, _ []string) error {
	cfg, err := loadGameConfig()
	if err != nil {
		return err
	}

	seed := flagSeed
	if seed == 0 {
		seed = time.Now().UnixNano()
	}
	runtime := core.RuntimeConfig{
		ScreenW:  80,
		ScreenH:  24,
		TickRate: flagFPS,
		Seed:     seed,
	}

	game := jumper.New(cfg)
	res := jumper.Simulate(game, runtime, jumper.Autopilot{Lead: flagLead}, flagMaxTicks)
	logger.Debug("simulation finished", "seed", seed, "ticks", res.Ticks, "ended", res.Ended)

	out := cmd.OutOrStdout()
	fmt.Fprintf(out, "Seed:      %d\n", seed)
	fmt.Fprintf(out, "Score:     %d\n", res.State.Score)
	fmt.Fprintf(out, "Combo:     x%d\n", res.State.Combo)
	fmt.Fprintf(out, "Jumps:     %d\n", res.Jumps)
	fmt.Fprintf(out, "Frames:    %d\n", res.Ticks)
	fmt.Fprintf(out, "Survived:  %s\n", res.Elapsed.Round(time.Millisecond))
	if !res.Ended {
		fmt.Fprintf(out, "Stopped at the %d frame cap with %.1fs left\n", flagMaxTicks, res.State.TimeRemaining)
	}

	if !flagSubmit {
		return nil
	}

	svc, release, err := openRanking(cmd, cfg, logger)
	if err != nil {
		return err
	}
	defer release()

	sub := ranking.NewSubmission(flagName, flagEmail, res.State.Score, cfg.Ranking.MaxNameLength)
	outcome := ranking.Settle(context.Background(), svc, sub, cfg.Ranking.Timeout)
	if outcome.SubmitErr != nil {
		logger.Warn("score submission failed", "error", outcome.SubmitErr)
	}
	if outcome.FetchErr != nil {
		logger.Warn("ranking fetch failed", "error", outcome.FetchErr)
	}
	for _, n := range outcome.Notes() {
		fmt.Fprintln(out, n.Text)
	}
	if rank := outcome.Rank(); rank > 0 {
		fmt.Fprintf(out, "Ranked #%d as %s\n", rank, sub.Name)
	}
	return nil
}
