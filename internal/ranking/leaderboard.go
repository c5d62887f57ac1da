package ranking

import (
	"encoding/json"
	"fmt"
	"sort"
	"strconv"
	"strings"
)

// RawRecord is a leaderboard line as the service sends it. Both fields may
// arrive as strings or numbers.
type RawRecord struct {
	Name  any `json:"nombre"`
	Score any `json:"puntaje"`
}

// Sanitize turns raw records into a clean leaderboard: names are defaulted
// and truncated, scores are parsed leniently, negative scores are dropped,
// and the best topN are kept in descending order.
func Sanitize(raw []RawRecord, maxName, topN int) []Record {
	out := make([]Record, 0, len(raw))
	for _, r := range raw {
		score := ParseScore(r.Score)
		if score < 0 {
			continue
		}
		out = append(out, Record{Name: CleanName(nameString(r.Name), maxName), Score: score})
	}

	sort.SliceStable(out, func(i, j int) bool { return out[i].Score > out[j].Score })
	if topN > 0 && len(out) > topN {
		out = out[:topN]
	}
	return out
}

func nameString(v any) string {
	switch v := v.(type) {
	case nil:
		return ""
	case string:
		return v
	default:
		return fmt.Sprint(v)
	}
}

// ParseScore reads a score from a string or number. Everything except
// digits and minus signs is discarded, then the leading integer is taken.
// Unparseable values are 0.
func ParseScore(v any) int {
	var s string
	switch v := v.(type) {
	case nil:
		return 0
	case string:
		s = v
	case json.Number:
		s = v.String()
	case float64:
		s = strconv.FormatFloat(v, 'f', -1, 64)
	case int:
		return v
	default:
		s = fmt.Sprint(v)
	}

	var b strings.Builder
	for _, r := range s {
		if (r >= '0' && r <= '9') || r == '-' {
			b.WriteRune(r)
		}
	}
	kept := b.String()

	end := 0
	if strings.HasPrefix(kept, "-") {
		end = 1
	}
	for end < len(kept) && kept[end] >= '0' && kept[end] <= '9' {
		end++
	}

	n, err := strconv.Atoi(kept[:end])
	if err != nil {
		return 0
	}
	return n
}
