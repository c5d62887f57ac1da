// combojump is a terminal rendition of Combo Jump, a side-scrolling runner
// played against a countdown, with a shared score ranking.
//
// Usage:
//
//	combojump play              - Play a run in the terminal
//	combojump simulate          - Run a headless game with an autopilot
//	combojump scores            - Show the ranking
//	combojump presets           - List difficulty presets
//	combojump stats             - Show local scores database statistics
//	combojump serve             - Start SSH server for remote play
//	combojump rankd             - Start the ranking HTTP service
//
// Global flags:
//
//	--fps <rate>          - Set tick rate (default: 60)
//	--seed <value>        - Set RNG seed for reproducible gameplay
//	--db <path>           - Set database path (default: ~/.combojump/scores.db)
//	--config <path>       - Custom game config YAML
//	--difficulty <name>   - Difficulty preset: easy, normal, hard
//	--log-level <level>   - debug, info, warn or error
package main

import (
	"fmt"
	"os"
	"time"

	"github.com/charmbracelet/log"
	"github.com/spf13/cobra"

	"github.com/vovakirdan/combo-jump/internal/config"
	"github.com/vovakirdan/combo-jump/internal/ranking"
	"github.com/vovakirdan/combo-jump/internal/storage"
)

var (
	// Global flags
	flagFPS        int
	flagSeed       int64
	flagDBPath     string
	flagConfig     string
	flagDifficulty string
	flagLogLevel   string

	logger *log.Logger
)

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

var rootCmd = &cobra.Command{
	Use:   "combojump",
	Short: "Combo Jump - jump, collect coins, beat the clock",
	Long: `Combo Jump is a side-scrolling runner for the terminal.

Jump over obstacles and collect coins before the clock runs out. Every coin
adds time and grows your combo; the combo speeds the game up and makes your
jumps stronger. Hitting an obstacle costs time and resets the combo.

Available commands:
  play      - Play a run
  simulate  - Headless run with an autopilot
  scores    - View the ranking
  presets   - List difficulty presets
  stats     - Local scores database statistics
  serve     - Start SSH server for remote play
  rankd     - Start the ranking HTTP service

Examples:
  combojump play --name ana
  combojump play --difficulty hard
  combojump simulate --seed 42
  combojump serve --ssh :2222
  combojump rankd --addr :8080`,
	SilenceUsage:      true,
	PersistentPreRunE: setup,
}

func init() {
	rootCmd.PersistentFlags().IntVar(&flagFPS, "fps", 60, "Tick rate (frames per second)")
	rootCmd.PersistentFlags().Int64Var(&flagSeed, "seed", 0, "RNG seed (0 = random based on time)")
	rootCmd.PersistentFlags().StringVar(&flagDBPath, "db", "~/.combojump/scores.db", "Path to scores database")
	rootCmd.PersistentFlags().StringVar(&flagConfig, "config", "", "Path to custom game config YAML")
	rootCmd.PersistentFlags().StringVar(&flagDifficulty, "difficulty", "", "Difficulty preset: easy, normal, hard")
	rootCmd.PersistentFlags().StringVar(&flagLogLevel, "log-level", "info", "Log level: debug, info, warn, error")

	rootCmd.AddCommand(playCmd)
	rootCmd.AddCommand(simulateCmd)
	rootCmd.AddCommand(scoresCmd)
	rootCmd.AddCommand(presetsCmd)
	rootCmd.AddCommand(statsCmd)
	rootCmd.AddCommand(serveCmd)
	rootCmd.AddCommand(rankdCmd)
}

// setup builds the logger and loads the optional .env file.
func setup(_ *cobra.Command, _ []string) error {
	level, err := log.ParseLevel(flagLogLevel)
	if err != nil {
		return fmt.Errorf("invalid --log-level: %w", err)
	}
	logger = log.NewWithOptions(os.Stderr, log.Options{
		ReportTimestamp: true,
		Prefix:          "combojump",
		Level:           level,
	})
	return config.LoadEnv()
}

// loadGameConfig resolves the game tuning from file, preset and environment.
func loadGameConfig() (config.JumperConfig, error) {
	cfg, err := config.LoadJumper(flagConfig)
	if err != nil {
		return cfg, err
	}
	preset, err := config.ParsePreset(flagDifficulty)
	if err != nil {
		return cfg, err
	}
	config.ApplyJumperPreset(&cfg, preset)
	config.ApplyEnv(&cfg)
	return cfg, cfg.Validate()
}

// dbPath returns the --db flag, or the environment override when the flag
// was not given.
func dbPath(cmd *cobra.Command) string {
	if !cmd.Flags().Changed("db") {
		if v, ok := os.LookupEnv(config.EnvDBPath); ok && v != "" {
			return v
		}
	}
	return flagDBPath
}

// openRanking returns the remote ranking client when a URL is configured and
// the local scores database otherwise. The returned func releases it.
func openRanking(cmd *cobra.Command, cfg config.JumperConfig, l *log.Logger) (ranking.Service, func(), error) {
	rc := cfg.Ranking
	if rc.URL != "" {
		client, err := ranking.NewClient(rc.URL,
			ranking.WithRetries(rc.Retries, 300*time.Millisecond),
			ranking.WithLimits(rc.MaxNameLength, rc.TopN),
			ranking.WithLogger(l),
		)
		if err != nil {
			return nil, nil, err
		}
		return client, func() {}, nil
	}

	store, err := storage.Open(dbPath(cmd))
	if err != nil {
		return nil, nil, err
	}
	closer := func() {
		if err := store.Close(); err != nil {
			l.Warn("could not close scores database", "error", err)
		}
	}
	return ranking.NewLocalService(store, rc.MaxNameLength, rc.TopN), closer, nil
}
