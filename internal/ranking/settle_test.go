package ranking

import (
	"context"
	"errors"
	"testing"
	"time"
)

type fakeService struct {
	submitErr error
	fetchErr  error
	records   []Record
	block     bool // Wait for ctx instead of answering
}

func (f *fakeService) Submit(ctx context.Context, sub Submission) error {
	if f.block {
		<-ctx.Done()
		return ctx.Err()
	}
	return f.submitErr
}

func (f *fakeService) Leaderboard(ctx context.Context) ([]Record, error) {
	if f.block {
		<-ctx.Done()
		return nil, ctx.Err()
	}
	if f.fetchErr != nil {
		return nil, f.fetchErr
	}
	return f.records, nil
}

func TestSettleOutcomes(t *testing.T) {
	board := []Record{{Name: "ana", Score: 90}, {Name: "me", Score: 40}}
	boom := errors.New("boom")

	tests := []struct {
		name      string
		svc       *fakeService
		submitted bool
		loaded    bool
		notes     int
		rank      int
	}{
		{"both succeed", &fakeService{records: board}, true, true, 0, 2},
		{"submit fails", &fakeService{submitErr: boom, records: board}, false, true, 1, 0},
		{"fetch fails", &fakeService{fetchErr: boom}, true, false, 2, 0},
		{"both fail", &fakeService{submitErr: boom, fetchErr: boom}, false, false, 2, 0},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			out := Settle(context.Background(), tc.svc, Submission{Name: "me", Score: 40}, time.Second)

			if out.Submitted() != tc.submitted || out.Loaded() != tc.loaded {
				t.Errorf("Submitted/Loaded = %v/%v, expected %v/%v", out.Submitted(), out.Loaded(), tc.submitted, tc.loaded)
			}
			if notes := out.Notes(); len(notes) != tc.notes {
				t.Errorf("Notes() = %+v, expected %d notes", notes, tc.notes)
			}
			if out.Rank() != tc.rank {
				t.Errorf("Rank() = %d, expected %d", out.Rank(), tc.rank)
			}
		})
	}
}

func TestSettleNotesDistinguishCases(t *testing.T) {
	boom := errors.New("boom")
	fetchFail := Outcome{FetchErr: boom}.Notes()
	bothFail := Outcome{FetchErr: boom, SubmitErr: boom}.Notes()

	if fetchFail[1].Text == bothFail[1].Text {
		t.Error("fetch-only and total failure should explain the submission differently")
	}
	if bothFail[1].Severity != SeverityError {
		t.Errorf("total failure severity = %v, expected SeverityError", bothFail[1].Severity)
	}
}

func TestSettleTimesOut(t *testing.T) {
	start := time.Now()
	out := Settle(context.Background(), &fakeService{block: true}, Submission{}, 20*time.Millisecond)

	if time.Since(start) > 2*time.Second {
		t.Fatal("Settle did not honor its timeout")
	}
	if !errors.Is(out.SubmitErr, context.DeadlineExceeded) || !errors.Is(out.FetchErr, context.DeadlineExceeded) {
		t.Errorf("expected both operations to time out, got %v / %v", out.SubmitErr, out.FetchErr)
	}
}
