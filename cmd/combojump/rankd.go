package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/vovakirdan/combo-jump/internal/ranking"
	"github.com/vovakirdan/combo-jump/internal/storage"
)

var flagHTTPAddr string

var rankdCmd = &cobra.Command{
	Use:   "rankd",
	Short: "Start the ranking HTTP service",
	Long: `Start the HTTP ranking service backed by the scores database.

Routes:
  GET /?nombre=<name>&email=<email>&puntaje=<score>  submit a score
  GET /                                              list the top scores as JSON
  GET /ws                                            live leaderboard (websocket)
  GET /healthz                                       liveness probe

Point players at it with COMBOJUMP_RANKING_URL or ranking.url in the config.

Examples:
  combojump rankd
  combojump rankd --addr :9000 --db ./ranking.db`,
	Args: cobra.NoArgs,
	RunE: runRankd,
}

func init() {
	rankdCmd.Flags().StringVar(&flagHTTPAddr, "addr", ":8080", "HTTP listen address")
}

func runRankd(cmd *cobra.Command, _ []string) error {
	cfg, err := loadGameConfig()
	if err != nil {
		return err
	}

	store, err := storage.Open(dbPath(cmd))
	if err != nil {
		return err
	}
	defer store.Close() //nolint:errcheck // Best-effort close on shutdown

	l := logger.WithPrefix("rankd")
	srv := ranking.NewServer(store, l, cfg.Ranking.MaxNameLength, cfg.Ranking.TopN)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()
	return srv.ListenAndServe(ctx, flagHTTPAddr)
}
