package jumper

import (
	"time"

	"github.com/vovakirdan/combo-jump/internal/core"
)

// DefaultLead is the autopilot lookahead in frames.
const DefaultLead = 6

// Autopilot is a simple jump policy for headless runs: it jumps from the
// ground when an obstacle is within Lead frames of reaching the player.
type Autopilot struct {
	Lead float64
}

// ShouldJump reports whether the policy jumps on this frame.
func (a Autopilot) ShouldJump(f Frame) bool {
	if !f.Running || f.Paused || f.Player.Airborne {
		return false
	}
	front := f.Player.Box.MaxX()
	reach := f.HUD.Speed * a.Lead
	for _, o := range f.Obstacles {
		gap := o.Box.X - front
		if gap >= 0 && gap <= reach {
			return true
		}
	}
	return false
}

// Result summarizes a headless run.
type Result struct {
	State   core.GameState
	Ticks   int
	Jumps   int
	Elapsed time.Duration // Simulated time
	Ended   bool          // False when the tick cap stopped the run
}

// Simulate plays a full run driven by the autopilot, stopping when the run
// ends or after maxTicks frames.
func Simulate(g *Game, runtime core.RuntimeConfig, pilot Autopilot, maxTicks int) Result {
	g.Reset(runtime)

	var res Result
	in := core.NewInputFrame()
	for g.run.Clock.Ticks() < maxTicks {
		in.Clear()
		if pilot.ShouldJump(g.Frame()) {
			in.Set(core.ActionJump)
			res.Jumps++
		}
		if g.Step(in).Ended {
			res.Ended = true
			break
		}
	}

	res.State = g.State()
	res.Ticks = g.run.Clock.Ticks()
	res.Elapsed = g.run.Clock.Now()
	return res
}
