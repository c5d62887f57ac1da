package ranking

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/charmbracelet/log"
)

// Server is the ranking HTTP service. It speaks the same contract the
// Client consumes and pushes the leaderboard to websocket watchers after
// every accepted submission.
type Server struct {
	store   EntryStore
	hub     *Hub
	logger  *log.Logger
	maxName int
	topN    int
}

// NewServer creates a ranking server over the given store.
func NewServer(store EntryStore, logger *log.Logger, maxName, topN int) *Server {
	return &Server{
		store:   store,
		hub:     NewHub(logger),
		logger:  logger,
		maxName: maxName,
		topN:    topN,
	}
}

// Hub returns the server's websocket hub.
func (s *Server) Hub() *Hub { return s.hub }

// Handler returns the HTTP routes:
//
//	GET /?nombre=&email=&puntaje=  submit a run
//	GET /                          list the leaderboard
//	GET /ws                        live leaderboard feed
//	GET /healthz                   liveness
func (s *Server) Handler() http.Handler {
	mux := http.NewServeMux()
	mux.HandleFunc("GET /{$}", s.handleRanking)
	mux.HandleFunc("GET /ws", s.handleWatch)
	mux.HandleFunc("GET /healthz", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusNoContent)
	})
	return withCORS(mux)
}

// ListenAndServe runs the server until ctx is cancelled, then shuts down
// gracefully.
func (s *Server) ListenAndServe(ctx context.Context, addr string) error {
	srv := &http.Server{
		Addr:              addr,
		Handler:           s.Handler(),
		ReadHeaderTimeout: 5 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		s.logger.Info("ranking service listening", "addr", addr)
		errCh <- srv.ListenAndServe()
	}()

	select {
	case err := <-errCh:
		return err
	case <-ctx.Done():
	}

	s.logger.Info("shutting down ranking service")
	s.hub.Close()
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		return err
	}
	if err := <-errCh; err != nil && !errors.Is(err, http.ErrServerClosed) {
		return err
	}
	return nil
}

func (s *Server) handleRanking(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()
	if !q.Has("puntaje") {
		s.handleList(w)
		return
	}

	score, err := strconv.Atoi(strings.TrimSpace(q.Get("puntaje")))
	if err != nil || score < 0 {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "puntaje must be a non-negative integer"})
		return
	}
	sub := NewSubmission(q.Get("nombre"), q.Get("email"), score, s.maxName)

	id, err := s.store.SaveEntry(sub.Name, sub.Email, sub.Score)
	if err != nil {
		s.logger.Error("save entry", "err", err)
		writeJSON(w, http.StatusInternalServerError, map[string]string{"error": "could not save score"})
		return
	}
	s.logger.Info("score submitted", "name", sub.Name, "score", sub.Score, "id", id)

	if records, err := s.leaderboard(); err == nil {
		s.hub.Broadcast(records)
	} else {
		s.logger.Warn("leaderboard after submit", "err", err)
	}
	writeJSON(w, http.StatusOK, map[string]any{"status": "ok", "id": id})
}

func (s *Server) handleList(w http.ResponseWriter) {
	records, err := s.leaderboard()
	if err != nil {
		s.logger.Error("list leaderboard", "err", err)
		writeJSON(w, http.StatusInternalServerError, map[string]string{"error": "could not load ranking"})
		return
	}
	writeJSON(w, http.StatusOK, records)
}

func (s *Server) handleWatch(w http.ResponseWriter, r *http.Request) {
	records, err := s.leaderboard()
	if err != nil {
		s.logger.Warn("initial leaderboard for watcher", "err", err)
	}
	s.hub.Serve(w, r, records)
}

func (s *Server) leaderboard() ([]Record, error) {
	entries, err := s.store.TopEntries(s.topN)
	if err != nil {
		return nil, err
	}
	return recordsFrom(entries, s.maxName), nil
}

func withCORS(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Access-Control-Allow-Origin", "*")
		next.ServeHTTP(w, r)
	})
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	//nolint:errcheck // Client may have gone away
	json.NewEncoder(w).Encode(v)
}
