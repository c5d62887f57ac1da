// Package jumper implements Combo Jump, a side-scrolling runner where the
// player jumps over obstacles and collects coins against a countdown.
// Collecting coins grows a combo that speeds the game up, strengthens jumps
// and tightens obstacle spawning; hitting an obstacle costs time and resets
// the combo.
package jumper

import (
	"fmt"
	"math/rand"

	"github.com/vovakirdan/combo-jump/internal/config"
	"github.com/vovakirdan/combo-jump/internal/core"
)

// RunState is every piece of mutable state for one run. It is owned by the
// Game's update loop and replaced wholesale when a new run starts.
type RunState struct {
	Running  bool
	GameOver bool
	Paused   bool

	Clock     Clock
	Economy   Economy
	Player    PlayerBody
	Obstacles []Obstacle // Spawn order
	Coins     []Coin
	Spawner   *Spawner
	Effects   Effects
}

// Game implements the Combo Jump simulation.
type Game struct {
	cfg     config.JumperConfig
	runtime core.RuntimeConfig
	rng     RandSource
	seeded  bool // rng was injected and must survive resets
	quantum float64
	run     RunState
}

// Option configures a Game.
type Option func(*Game)

// WithRandSource injects the random source used for spawning.
func WithRandSource(r RandSource) Option {
	return func(g *Game) {
		g.rng = r
		g.seeded = true
	}
}

// New creates a game using the given tuning. Call Reset to start a run.
func New(cfg config.JumperConfig, opts ...Option) *Game {
	g := &Game{cfg: cfg}
	for _, opt := range opts {
		opt(g)
	}
	return g
}

// ID returns the unique identifier for this game.
func (g *Game) ID() string {
	return "jumper"
}

// Title returns the display name for this game.
func (g *Game) Title() string {
	return "Combo Jump"
}

// Config returns the tuning the game runs with.
func (g *Game) Config() config.JumperConfig {
	return g.cfg
}

// Reset cancels whatever run is in progress and starts a new one.
// Pending spawns are disarmed before any state is touched.
func (g *Game) Reset(runtime core.RuntimeConfig) {
	if g.run.Spawner != nil {
		g.run.Spawner.Stop()
	}
	g.end()

	g.runtime = runtime
	if runtime.TickRate <= 0 {
		g.runtime.TickRate = 60
	}
	g.quantum = 1 / float64(g.runtime.TickRate)
	if !g.seeded {
		g.rng = rand.New(rand.NewSource(runtime.Seed))
	}

	g.run = RunState{
		Running: true,
		Clock:   NewClock(g.runtime.TickRate),
		Economy: NewEconomy(g.cfg),
		Spawner: NewSpawner(g.cfg, g.rng),
		Effects: NewEffects(g.cfg.Effects),
	}
	g.run.Spawner.Start(g.run.Clock.Now(), g.run.Economy.Combo)
}

// Step advances the game by one tick, applying this frame's input first.
func (g *Game) Step(in core.InputFrame) core.StepResult {
	if !g.run.Running {
		return core.StepResult{State: g.State()}
	}

	if in.Count(core.ActionPause)%2 == 1 {
		g.run.Paused = !g.run.Paused
	}
	if g.run.Paused {
		return core.StepResult{State: g.State()}
	}

	for range in.Count(core.ActionJump) {
		g.Jump()
	}

	ended := g.Update()
	return core.StepResult{State: g.State(), Ended: ended}
}

// Jump requests a jump or double jump.
func (g *Game) Jump() JumpKind {
	if !g.run.Running {
		return JumpNone
	}
	kind := g.run.Player.Jump(g.cfg.Physics, g.run.Economy.Tier())
	if kind != JumpNone {
		g.run.Effects.Jumped(g.run.Clock.Now())
	}
	return kind
}

// Update runs one frame: drain time, end the run if it ran out, recompute
// speed, move the player, then obstacles, then coins, then spawn. It
// reports whether the run ended on this frame.
func (g *Game) Update() bool {
	r := &g.run
	if !r.Running {
		return false
	}

	now := r.Clock.Advance()
	if r.Economy.Drain(g.quantum) {
		g.end()
		return true
	}

	r.Economy.UpdateSpeed(now)
	r.Player.Step(g.cfg.Physics.Gravity)
	g.updateObstacles()
	g.updateCoins()

	obstacles, coins := r.Spawner.Advance(r.Clock.Frame(), now, r.Economy.Combo)
	r.Obstacles = append(r.Obstacles, obstacles...)
	r.Coins = append(r.Coins, coins...)

	r.Effects.Prune(now)
	return false
}

func (g *Game) updateObstacles() {
	r := &g.run
	player := g.playerBox()
	live := r.Obstacles[:0]
	for _, o := range r.Obstacles {
		o.X -= r.Economy.Speed
		if core.Overlaps(player, o.Box(), g.cfg.Collision.ObstacleMargin) {
			g.collide(o)
			continue
		}
		if o.X < -o.Width {
			r.Economy.OnDodge()
			continue
		}
		live = append(live, o)
	}
	r.Obstacles = live
}

func (g *Game) updateCoins() {
	r := &g.run
	player := g.playerBox()
	live := r.Coins[:0]
	for _, c := range r.Coins {
		c.X -= r.Economy.Speed
		if core.Overlaps(player, c.Box(), g.cfg.Collision.CoinMargin) {
			g.collect(c)
			continue
		}
		if c.X < -c.Width {
			continue
		}
		live = append(live, c)
	}
	r.Coins = live
}

// collide applies an obstacle hit to every component that reacts to it.
func (g *Game) collide(o Obstacle) {
	r := &g.run
	now := r.Clock.Now()
	penalty := g.cfg.Economy.HitPenalty

	r.Economy.OnCollision(penalty)
	r.Player.RevokeCharge()
	r.Spawner.ResetConsecutive()

	b := o.Box()
	r.Effects.Hit(now)
	r.Effects.Float(now, b.CenterX(), b.MaxY(), fmt.Sprintf("-%ds", penalty), false)
}

// collect applies a coin pickup and its kind-specific side effects.
func (g *Game) collect(c Coin) {
	r := &g.run
	now := r.Clock.Now()

	r.Economy.OnCollect(c.TimeBonus)
	if c.Kind == CoinBoosted || c.Kind == CoinEmpowered {
		r.Economy.ArmBoost(now)
	}
	if c.Kind == CoinEmpowered {
		r.Player.GrantCharge()
	}

	b := c.Box()
	r.Effects.Collected(now)
	r.Effects.Float(now, b.CenterX(), b.MaxY(), fmt.Sprintf("+%ds", c.TimeBonus), true)
}

// end moves the run to its terminal state. Calling it on a stopped run is a
// no-op.
func (g *Game) end() {
	if !g.run.Running {
		return
	}
	g.run.Running = false
	g.run.GameOver = true
	g.run.Paused = false
	g.run.Spawner.Stop()
}

func (g *Game) playerBox() core.Box {
	p := g.cfg.Player
	return core.NewBox(p.X, g.run.Player.Y, p.Width, p.Height)
}

// State returns the HUD-level summary of the current run.
func (g *Game) State() core.GameState {
	return core.GameState{
		Score:         g.run.Economy.Score,
		Combo:         g.run.Economy.Combo,
		TimeRemaining: g.run.Economy.TimeRemaining,
		Running:       g.run.Running,
		GameOver:      g.run.GameOver,
		Paused:        g.run.Paused,
	}
}
