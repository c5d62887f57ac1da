package jumper

import (
	"math"
	"testing"

	"github.com/vovakirdan/combo-jump/internal/config"
	"github.com/vovakirdan/combo-jump/internal/core"
)

// scriptedRand replays a fixed sequence of values, cycling when exhausted.
type scriptedRand struct {
	vals []float64
	i    int
}

func (s *scriptedRand) Float64() float64 {
	if len(s.vals) == 0 {
		return 0
	}
	v := s.vals[s.i%len(s.vals)]
	s.i++
	return v
}

func newTestGame(t *testing.T, vals ...float64) *Game {
	t.Helper()
	if len(vals) == 0 {
		vals = []float64{0.5}
	}
	g := New(config.DefaultJumperConfig(), WithRandSource(&scriptedRand{vals: vals}))
	g.Reset(core.DefaultConfig())
	return g
}

func approx(a, b float64) bool {
	return math.Abs(a-b) < 1e-9
}
