// Package ranking is the score ranking collaborator: it submits finished
// runs, fetches the leaderboard and serves both over HTTP.
package ranking

import (
	"context"
	"errors"
	"strings"
	"unicode/utf8"
)

// DefaultName replaces empty player names.
const DefaultName = "Anonymous"

var (
	// ErrSubmit wraps every failed score submission.
	ErrSubmit = errors.New("ranking: submit failed")
	// ErrFetch wraps every failed leaderboard fetch.
	ErrFetch = errors.New("ranking: fetch failed")
	// ErrBadStatus reports a non-2xx response from the ranking service.
	ErrBadStatus = errors.New("ranking: unexpected status")
)

// Submission is a finished run sent to the ranking service.
type Submission struct {
	Name  string
	Email string
	Score int
}

// Record is one leaderboard line.
type Record struct {
	Name  string `json:"nombre"`
	Score int    `json:"puntaje"`
}

// Service submits scores and lists the leaderboard. The two operations are
// independent: either may fail without affecting the other.
type Service interface {
	Submit(ctx context.Context, sub Submission) error
	Leaderboard(ctx context.Context) ([]Record, error)
}

// NewSubmission normalizes player input: the name is trimmed and truncated
// to maxName runes, the email is lower-cased and negative scores become 0.
func NewSubmission(name, email string, score, maxName int) Submission {
	return Submission{
		Name:  CleanName(name, maxName),
		Email: strings.ToLower(strings.TrimSpace(email)),
		Score: max(score, 0),
	}
}

// CleanName trims a player name, substitutes DefaultName when empty and
// truncates it to maxName runes.
func CleanName(name string, maxName int) string {
	name = strings.TrimSpace(name)
	if name == "" {
		name = DefaultName
	}
	if maxName > 0 && utf8.RuneCountInString(name) > maxName {
		name = string([]rune(name)[:maxName])
	}
	return name
}
