package ranking

import (
	"context"
	"sync"
	"time"
)

// Outcome is the settled result of a game-over hand-off. Submission and
// leaderboard failures are recorded independently.
type Outcome struct {
	Submission Submission
	Records    []Record
	SubmitErr  error
	FetchErr   error
}

// Severity grades an outcome note.
type Severity int

const (
	SeverityInfo    Severity = iota
	SeverityWarning          // Partial failure
	SeverityError            // Nothing worked
)

// Note is a user-facing line explaining a degraded outcome.
type Note struct {
	Text     string
	Severity Severity
}

// Settle submits the run and fetches the leaderboard concurrently and waits
// for both to finish, successfully or not. The timeout bounds the whole
// hand-off so the caller is never blocked indefinitely.
func Settle(ctx context.Context, svc Service, sub Submission, timeout time.Duration) Outcome {
	if timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, timeout)
		defer cancel()
	}

	out := Outcome{Submission: sub}
	var wg sync.WaitGroup
	wg.Add(2)
	go func() {
		defer wg.Done()
		out.SubmitErr = svc.Submit(ctx, sub)
	}()
	go func() {
		defer wg.Done()
		out.Records, out.FetchErr = svc.Leaderboard(ctx)
	}()
	wg.Wait()

	return out
}

// Submitted reports whether the score was saved.
func (o Outcome) Submitted() bool { return o.SubmitErr == nil }

// Loaded reports whether the leaderboard is available.
func (o Outcome) Loaded() bool { return o.FetchErr == nil }

// Notes describes the outcome for each combination of submission and fetch
// success. A fully successful outcome has no notes.
func (o Outcome) Notes() []Note {
	switch {
	case o.Loaded() && o.Submitted():
		return nil
	case o.Loaded():
		return []Note{{"Note: your score could not be saved, but the ranking loaded.", SeverityWarning}}
	case o.Submitted():
		return []Note{
			{"Could not load the ranking. Check your connection.", SeverityInfo},
			{"Your score was sent, but the ranking is not available right now.", SeverityWarning},
		}
	default:
		return []Note{
			{"Could not load the ranking. Check your connection.", SeverityInfo},
			{"Your score could not be saved either.", SeverityError},
		}
	}
}

// Rank returns the 1-based leaderboard position of the submitted run, or 0
// if it is not on the board.
func (o Outcome) Rank() int {
	if !o.Submitted() {
		return 0
	}
	for i, r := range o.Records {
		if r.Name == o.Submission.Name && r.Score == o.Submission.Score {
			return i + 1
		}
	}
	return 0
}
