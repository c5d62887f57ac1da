package main

import (
	"io"
	"os"

	"github.com/charmbracelet/log"
	"github.com/spf13/cobra"
	"golang.org/x/term"

	"github.com/vovakirdan/combo-jump/internal/config"
	"github.com/vovakirdan/combo-jump/internal/core"
	"github.com/vovakirdan/combo-jump/internal/games/jumper"
	"github.com/vovakirdan/combo-jump/internal/platform/tui"
)

var (
	flagName  string
	flagEmail string
)

var playCmd = &cobra.Command{
	Use:   "play",
	Short: "Play a run",
	Long: `Start a Combo Jump run in the terminal.

Controls:
  Space/Up/W - Jump (again in the air with a double-jump charge)
  P          - Pause
  Enter      - Start / play again
  Esc        - Back to the start screen
  Ctrl+S     - Save a screenshot
  Q/Ctrl+C   - Quit

Coins:
  green   - +1s
  blue    - +2s and a speed boost (combo 3+)
  yellow  - +5s, speed boost and a double-jump charge (combo 6+)

When the clock runs out the score is submitted and the ranking is shown.
Scores go to the ranking service at COMBOJUMP_RANKING_URL (or ranking.url in
the config) and to the local scores database otherwise.

Examples:
  combojump play
  combojump play --name ana --email ana@example.com
  combojump play --difficulty easy
  combojump play --config ./my-jumper.yaml`,
	Args: cobra.NoArgs,
	RunE: runPlay,
}

func init() {
	playCmd.Flags().StringVar(&flagName, "name", "", "Player name for the ranking (default Anonymous)")
	playCmd.Flags().StringVar(&flagEmail, "email", "", "Player email sent with the score")
}

func runPlay(cmd *cobra.Command, _ []string) error {
	cfg, err := loadGameConfig()
	if err != nil {
		return err
	}

	width, height := 80, 24
	if w, h, termErr := term.GetSize(int(os.Stdout.Fd())); termErr == nil {
		width = w
		height = h
	}

	runtime := core.RuntimeConfig{
		ScreenW:  width,
		ScreenH:  height,
		TickRate: flagFPS,
		Seed:     flagSeed,
	}

	// The alternate screen owns stderr while playing.
	sessionLog, closeLog := openSessionLog()
	defer closeLog()

	opts := tui.Options{
		Player:  flagName,
		Email:   flagEmail,
		Timeout: cfg.Ranking.Timeout,
		MaxName: cfg.Ranking.MaxNameLength,
		Logger:  sessionLog,
	}

	svc, release, err := openRanking(cmd, cfg, sessionLog)
	if err != nil {
		logger.Warn("ranking unavailable, scores will not be saved", "error", err)
	} else {
		defer release()
		opts.Ranking = svc
	}

	return tui.Run(jumper.New(cfg), runtime, opts)
}

// openSessionLog returns a logger writing to ~/.combojump/combojump.log.
func openSessionLog() (*log.Logger, func()) {
	var w io.Writer = io.Discard
	closer := func() {}
	if path := config.UserPath("combojump.log"); path != "" {
		if err := os.MkdirAll(config.UserPath(), 0o755); err == nil {
			if f, err := os.OpenFile(path, os.O_CREATE|os.O_APPEND|os.O_WRONLY, 0o600); err == nil {
				w = f
				closer = func() { f.Close() } //nolint:errcheck // Best-effort close
			}
		}
	}
	l := log.NewWithOptions(w, log.Options{
		ReportTimestamp: true,
		Prefix:          "combojump",
		Level:           logger.GetLevel(),
	})
	return l, closer
}
