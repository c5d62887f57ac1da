package ranking

import (
	"context"
	"fmt"

	"github.com/vovakirdan/combo-jump/internal/storage"
)

// EntryStore is the persistence the local service and server need.
type EntryStore interface {
	SaveEntry(name, email string, score int) (int64, error)
	TopEntries(limit int) ([]storage.Entry, error)
}

// LocalService ranks runs in a local scores database. It is used when no
// remote ranking endpoint is configured.
type LocalService struct {
	store   EntryStore
	maxName int
	topN    int
}

// NewLocalService creates a service backed by the given store.
func NewLocalService(store EntryStore, maxName, topN int) *LocalService {
	return &LocalService{store: store, maxName: maxName, topN: topN}
}

// Submit saves the run.
func (s *LocalService) Submit(ctx context.Context, sub Submission) error {
	if err := ctx.Err(); err != nil {
		return fmt.Errorf("%w: %w", ErrSubmit, err)
	}
	if _, err := s.store.SaveEntry(CleanName(sub.Name, s.maxName), sub.Email, max(sub.Score, 0)); err != nil {
		return fmt.Errorf("%w: %w", ErrSubmit, err)
	}
	return nil
}

// Leaderboard lists the best stored runs.
func (s *LocalService) Leaderboard(ctx context.Context) ([]Record, error) {
	if err := ctx.Err(); err != nil {
		return nil, fmt.Errorf("%w: %w", ErrFetch, err)
	}
	entries, err := s.store.TopEntries(s.topN)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrFetch, err)
	}
	return recordsFrom(entries, s.maxName), nil
}

func recordsFrom(entries []storage.Entry, maxName int) []Record {
	records := make([]Record, 0, len(entries))
	for _, e := range entries {
		records = append(records, Record{Name: CleanName(e.Name, maxName), Score: e.Score})
	}
	return records
}
