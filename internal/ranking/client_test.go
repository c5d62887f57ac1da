package ranking

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"
	"time"
)

func newTestClient(t *testing.T, url string) *Client {
	t.Helper()
	c, err := NewClient(url, WithRetries(2, time.Millisecond))
	if err != nil {
		t.Fatalf("NewClient() failed: %v", err)
	}
	return c
}

func TestClientSubmit(t *testing.T) {
	var got map[string]string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodGet {
			t.Errorf("method = %s, expected GET", r.Method)
		}
		q := r.URL.Query()
		got = map[string]string{"nombre": q.Get("nombre"), "email": q.Get("email"), "puntaje": q.Get("puntaje")}
	}))
	defer srv.Close()

	c := newTestClient(t, srv.URL)
	if err := c.Submit(context.Background(), Submission{Name: "ana", Email: "ana@example.com", Score: 42}); err != nil {
		t.Fatalf("Submit() failed: %v", err)
	}

	if got["nombre"] != "ana" || got["email"] != "ana@example.com" || got["puntaje"] != "42" {
		t.Errorf("unexpected query %v", got)
	}
}

func TestClientLeaderboard(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.RawQuery != "" {
			t.Errorf("leaderboard request should carry no query, got %q", r.URL.RawQuery)
		}
		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`[{"nombre":"b","puntaje":"15"},{"nombre":"a","puntaje":30},{"nombre":"c","puntaje":-1}]`))
	}))
	defer srv.Close()

	records, err := newTestClient(t, srv.URL).Leaderboard(context.Background())
	if err != nil {
		t.Fatalf("Leaderboard() failed: %v", err)
	}

	if len(records) != 2 || records[0].Name != "a" || records[0].Score != 30 || records[1].Score != 15 {
		t.Errorf("unexpected records %+v", records)
	}
}

func TestClientRetriesServerErrors(t *testing.T) {
	var calls atomic.Int32
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if calls.Add(1) < 3 {
			w.WriteHeader(http.StatusServiceUnavailable)
			return
		}
		w.Write([]byte(`[]`))
	}))
	defer srv.Close()

	if _, err := newTestClient(t, srv.URL).Leaderboard(context.Background()); err != nil {
		t.Fatalf("Leaderboard() should succeed after retries: %v", err)
	}
	if calls.Load() != 3 {
		t.Errorf("expected 3 attempts, got %d", calls.Load())
	}
}

func TestClientGivesUpAfterRetries(t *testing.T) {
	var calls atomic.Int32
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		calls.Add(1)
		w.WriteHeader(http.StatusInternalServerError)
	}))
	defer srv.Close()

	_, err := newTestClient(t, srv.URL).Leaderboard(context.Background())
	if !errors.Is(err, ErrFetch) || !errors.Is(err, ErrBadStatus) {
		t.Errorf("expected ErrFetch wrapping ErrBadStatus, got %v", err)
	}
	if calls.Load() != 3 {
		t.Errorf("expected 1 attempt + 2 retries, got %d", calls.Load())
	}
}

func TestClientSubmitIsNotReplayed(t *testing.T) {
	tests := []struct {
		name      string
		respond   func(t *testing.T, w http.ResponseWriter)
		badStatus bool
	}{
		{
			name: "server error after save",
			respond: func(t *testing.T, w http.ResponseWriter) {
				w.WriteHeader(http.StatusInternalServerError)
			},
			badStatus: true,
		},
		{
			name: "connection dropped after save",
			respond: func(t *testing.T, w http.ResponseWriter) {
				hj, ok := w.(http.Hijacker)
				if !ok {
					t.Error("response writer cannot be hijacked")
					return
				}
				conn, _, err := hj.Hijack()
				if err != nil {
					t.Errorf("Hijack() failed: %v", err)
					return
				}
				conn.Close()
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var saves atomic.Int32
			srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				saves.Add(1)
				tt.respond(t, w)
			}))
			defer srv.Close()

			err := newTestClient(t, srv.URL).Submit(context.Background(), Submission{Name: "a", Score: 10})
			if !errors.Is(err, ErrSubmit) {
				t.Errorf("expected ErrSubmit, got %v", err)
			}
			if tt.badStatus && !errors.Is(err, ErrBadStatus) {
				t.Errorf("expected ErrBadStatus, got %v", err)
			}
			if saves.Load() != 1 {
				t.Errorf("run saved %d times, expected exactly once", saves.Load())
			}
		})
	}
}

func TestClientDoesNotRetryClientErrors(t *testing.T) {
	var calls atomic.Int32
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		calls.Add(1)
		w.WriteHeader(http.StatusBadRequest)
	}))
	defer srv.Close()

	err := newTestClient(t, srv.URL).Submit(context.Background(), Submission{Name: "a"})
	if !errors.Is(err, ErrBadStatus) {
		t.Errorf("expected ErrBadStatus, got %v", err)
	}
	if calls.Load() != 1 {
		t.Errorf("4xx should not be retried, got %d attempts", calls.Load())
	}
}

func TestClientBadJSON(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`{"not":"a list"`))
	}))
	defer srv.Close()

	if _, err := newTestClient(t, srv.URL).Leaderboard(context.Background()); !errors.Is(err, ErrFetch) {
		t.Errorf("expected ErrFetch, got %v", err)
	}
}

func TestNewClientRejectsBadEndpoint(t *testing.T) {
	for _, endpoint := range []string{"", "ftp://example.com", "://"} {
		if _, err := NewClient(endpoint); err == nil {
			t.Errorf("NewClient(%q) should fail", endpoint)
		}
	}
}
