package ranking

import (
	"encoding/json"
	"reflect"
	"strings"
	"testing"
)

func TestParseScore(t *testing.T) {
	tests := []struct {
		name     string
		in       any
		expected int
	}{
		{"nil", nil, 0},
		{"plain string", "120", 120},
		{"padded string", " 45 pts", 45},
		{"thousands separator", "1.250", 1250},
		{"json number", json.Number("300"), 300},
		{"float", 12.0, 12},
		{"int", 7, 7},
		{"negative", "-5", -5},
		{"garbage", "abc", 0},
		{"empty", "", 0},
		{"stray minus", "12-3", 12},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			if got := ParseScore(tc.in); got != tc.expected {
				t.Errorf("ParseScore(%v) = %d, expected %d", tc.in, got, tc.expected)
			}
		})
	}
}

func TestCleanName(t *testing.T) {
	tests := []struct {
		in, expected string
	}{
		{"  ana  ", "ana"},
		{"", DefaultName},
		{"   ", DefaultName},
		{"abcdefghijklmnopqrst", "abcdefghijklmno"},
		{"ñandúñandúñandúñandú", "ñandúñandúñandú"},
	}

	for _, tc := range tests {
		if got := CleanName(tc.in, 15); got != tc.expected {
			t.Errorf("CleanName(%q) = %q, expected %q", tc.in, got, tc.expected)
		}
	}
}

func TestNewSubmission(t *testing.T) {
	sub := NewSubmission(" Player One ", " Player@Example.COM ", -3, 15)

	expected := Submission{Name: "Player One", Email: "player@example.com", Score: 0}
	if sub != expected {
		t.Errorf("NewSubmission() = %+v, expected %+v", sub, expected)
	}
}

func TestSanitize(t *testing.T) {
	raw := []RawRecord{
		{Name: "low", Score: "10"},
		{Name: nil, Score: json.Number("50")},
		{Name: "cheater", Score: "-100"},
		{Name: strings.Repeat("x", 30), Score: "30"},
		{Name: "tie-first", Score: 20},
		{Name: "tie-second", Score: "20"},
	}

	got := Sanitize(raw, 15, 4)
	expected := []Record{
		{Name: DefaultName, Score: 50},
		{Name: strings.Repeat("x", 15), Score: 30},
		{Name: "tie-first", Score: 20},
		{Name: "tie-second", Score: 20},
	}

	if !reflect.DeepEqual(got, expected) {
		t.Errorf("Sanitize() = %+v, expected %+v", got, expected)
	}
}

func TestSanitizeEmpty(t *testing.T) {
	if got := Sanitize(nil, 15, 20); len(got) != 0 {
		t.Errorf("Sanitize(nil) = %+v, expected empty", got)
	}
}
