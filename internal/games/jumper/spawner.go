package jumper

import (
	"math"
	"time"

	"github.com/vovakirdan/combo-jump/internal/config"
)

// RandSource is the randomness the spawner draws from. *rand.Rand satisfies
// it; tests inject scripted sequences.
type RandSource interface {
	Float64() float64
}

// Spawner schedules obstacles and coins with two independent countdowns.
// Each countdown computes its next delay from the economy when it re-arms,
// so intervals tighten as the combo grows.
type Spawner struct {
	cfg config.JumperConfig
	rng RandSource

	obstacleTimer Countdown
	coinTimer     Countdown

	lastObstacleAt time.Duration
	lastCoinAt     time.Duration
	obstacleSeen   bool // An obstacle has spawned since Start
	coinSeen       bool
	consecutive    int
}

// NewSpawner creates a stopped spawner.
func NewSpawner(cfg config.JumperConfig, rng RandSource) *Spawner {
	return &Spawner{cfg: cfg, rng: rng}
}

// Start arms both countdowns for a run beginning at now with the given combo.
func (s *Spawner) Start(now time.Duration, combo int) {
	s.Reset()
	s.obstacleTimer.Arm(s.ObstacleDelay(combo, s.sinceObstacle(now)))
	s.coinTimer.Arm(s.CoinDelay(combo, s.sinceCoin(now)))
}

// Stop disarms both countdowns. Pending spawns never fire after Stop.
func (s *Spawner) Stop() {
	s.obstacleTimer.Disarm()
	s.coinTimer.Disarm()
}

// Reset stops the spawner and forgets all spawn history.
func (s *Spawner) Reset() {
	s.Stop()
	s.lastObstacleAt = 0
	s.lastCoinAt = 0
	s.obstacleSeen = false
	s.coinSeen = false
	s.consecutive = 0
}

// Running reports whether any countdown is pending.
func (s *Spawner) Running() bool {
	return s.obstacleTimer.Armed() || s.coinTimer.Armed()
}

// Consecutive returns the obstacles spawned since the last breather.
func (s *Spawner) Consecutive() int { return s.consecutive }

// ResetConsecutive clears the consecutive obstacle count.
func (s *Spawner) ResetConsecutive() { s.consecutive = 0 }

// ObstacleDelay computes the delay before the next obstacle. The interval
// decays exponentially with the combo, a breather is forced after too many
// obstacles in a row, and time already elapsed since the last spawn is
// subtracted. The result never drops below the minimum gap.
func (s *Spawner) ObstacleDelay(combo int, elapsed time.Duration) time.Duration {
	oc := s.cfg.Obstacles
	interval := float64(oc.BaseInterval)
	if combo >= s.cfg.Economy.Tier1Combo {
		steps := min(oc.DecayCap, combo-s.cfg.Economy.Tier1Combo+1)
		interval *= math.Pow(oc.DecayFactor, float64(steps))
	}
	if s.consecutive >= oc.MaxConsecutive {
		interval *= oc.BreakMultiplier
		s.consecutive = 0
	}
	return floorDelay(interval, elapsed, oc.MinGap)
}

// CoinDelay computes the delay before the next coin.
func (s *Spawner) CoinDelay(combo int, elapsed time.Duration) time.Duration {
	cc := s.cfg.Coins
	interval := float64(cc.BaseInterval)
	if combo >= s.cfg.Economy.Tier2Combo {
		interval *= cc.Tier2Factor
	}
	interval += s.rng.Float64() * float64(cc.Randomness)
	return floorDelay(interval, elapsed, cc.MinGap)
}

func floorDelay(interval float64, elapsed, minGap time.Duration) time.Duration {
	d := time.Duration(math.Round(interval)) - elapsed
	return max(minGap, d)
}

func (s *Spawner) sinceObstacle(now time.Duration) time.Duration {
	if !s.obstacleSeen {
		return math.MaxInt64
	}
	return now - s.lastObstacleAt
}

func (s *Spawner) sinceCoin(now time.Duration) time.Duration {
	if !s.coinSeen {
		return math.MaxInt64
	}
	return now - s.lastCoinAt
}

// Advance ticks both countdowns by dt. Any countdown that fires spawns its
// entities at time now and re-arms from the current combo.
func (s *Spawner) Advance(dt, now time.Duration, combo int) ([]Obstacle, []Coin) {
	var obstacles []Obstacle
	var coins []Coin

	if s.obstacleTimer.Tick(dt) {
		obstacles = s.spawnObstacles(combo)
		s.lastObstacleAt = now
		s.obstacleSeen = true
		s.obstacleTimer.Arm(s.ObstacleDelay(combo, s.sinceObstacle(now)))
	}
	if s.coinTimer.Tick(dt) {
		coins = append(coins, s.spawnCoin(combo))
		s.lastCoinAt = now
		s.coinSeen = true
		s.coinTimer.Arm(s.CoinDelay(combo, s.sinceCoin(now)))
	}
	return obstacles, coins
}

// spawnObstacles creates one obstacle at the right edge, sometimes followed
// by a second one a short visual gap behind it.
func (s *Spawner) spawnObstacles(combo int) []Obstacle {
	oc := s.cfg.Obstacles
	tiered := combo >= s.cfg.Economy.Tier1Combo

	first := s.newObstacle(tiered, s.cfg.World.Width)
	out := []Obstacle{first}
	s.consecutive++

	if tiered && s.rng.Float64() < oc.DoubleChance && s.consecutive < oc.MaxConsecutive {
		second := s.newObstacle(tiered, 0)
		second.X = s.cfg.World.Width + first.Width + oc.MinVisualGap + s.rng.Float64()*oc.GapJitter
		out = append(out, second)
		s.consecutive++
	}
	return out
}

func (s *Spawner) newObstacle(tiered bool, x float64) Obstacle {
	oc := s.cfg.Obstacles
	o := Obstacle{X: x, Width: oc.Width, Height: oc.Height}
	if tiered && s.rng.Float64() < oc.LargeChance {
		o.Large = true
		o.Width = oc.LargeWidth
		o.Height = oc.LargeHeight
	}
	return o
}

// spawnCoin creates a coin whose kind follows the combo tier, placed in the
// band between the ground margin and the ceiling margin.
func (s *Spawner) spawnCoin(combo int) Coin {
	cc := s.cfg.Coins
	c := Coin{Width: cc.Width, Height: cc.Height}

	switch tierFor(combo, s.cfg.Economy) {
	case TierEmpowered:
		c.Kind, c.TimeBonus = CoinEmpowered, cc.EmpoweredBonus
	case TierBoosted:
		c.Kind, c.TimeBonus = CoinBoosted, cc.BoostedBonus
	default:
		c.Kind, c.TimeBonus = CoinBasic, cc.BasicBonus
	}

	h := s.cfg.World.Height
	ceiling := min(h*cc.CeilingRatio, h-cc.CeilingMargin)
	c.X = s.cfg.World.Width + s.rng.Float64()*cc.SpawnJitter
	c.Y = cc.MinY + s.rng.Float64()*(ceiling-cc.MinY)
	return c
}
