package jumper

import (
	"time"

	"github.com/vovakirdan/combo-jump/internal/config"
)

// Tier is the combo level that unlocks speed, jump and spawn modifiers.
type Tier int

const (
	TierBase Tier = iota
	TierBoosted
	TierEmpowered
)

// Boost is the temporary speed boost window.
type Boost struct {
	Active bool
	EndsAt time.Duration
}

// Economy holds score, combo, time and speed along with their transition rules.
// It performs no I/O; every mutation is deterministic given its inputs.
type Economy struct {
	Score         int
	Combo         int
	TimeRemaining float64
	Speed         float64
	Boost         Boost

	cfg config.JumperConfig
}

// NewEconomy creates the economy for a fresh run.
func NewEconomy(cfg config.JumperConfig) Economy {
	return Economy{
		TimeRemaining: cfg.Economy.InitialTime,
		Speed:         cfg.Speed.Base,
		cfg:           cfg,
	}
}

// Tier returns the current combo tier.
func (e Economy) Tier() Tier {
	return tierFor(e.Combo, e.cfg.Economy)
}

func tierFor(combo int, ec config.Economy) Tier {
	switch {
	case combo >= ec.Tier2Combo:
		return TierEmpowered
	case combo >= ec.Tier1Combo:
		return TierBoosted
	default:
		return TierBase
	}
}

// OnDodge rewards an obstacle leaving the playfield unharmed.
func (e *Economy) OnDodge() {
	e.Score++
}

// OnCollect applies a coin collection. The combo is incremented before it
// multiplies the score award.
func (e *Economy) OnCollect(bonus int) {
	e.Combo++
	e.TimeRemaining = min(e.cfg.Economy.MaxTime, e.TimeRemaining+float64(bonus))
	e.Score += e.cfg.Economy.CoinScoreUnit * e.Combo
}

// OnCollision applies an obstacle hit: time penalty floored at zero, combo
// reset and boost cancelled.
func (e *Economy) OnCollision(penalty int) {
	e.TimeRemaining = max(0, e.TimeRemaining-float64(penalty))
	e.Combo = 0
	e.Boost = Boost{}
}

// ArmBoost opens (or extends) the speed boost window starting at now.
func (e *Economy) ArmBoost(now time.Duration) {
	e.Boost = Boost{Active: true, EndsAt: now + e.cfg.Speed.BoostDuration}
}

// Drain removes dt seconds from the countdown. It reports whether time ran out.
func (e *Economy) Drain(dt float64) bool {
	e.TimeRemaining = max(0, e.TimeRemaining-dt)
	return e.TimeRemaining <= 0
}

// UpdateSpeed recomputes the scroll speed. An active boost wins until it
// expires; otherwise speed follows the combo tier.
func (e *Economy) UpdateSpeed(now time.Duration) float64 {
	sc := e.cfg.Speed
	if e.Boost.Active {
		if now >= e.Boost.EndsAt {
			e.Boost = Boost{}
		} else {
			e.Speed = sc.Base * sc.BoostMultiplier
			return e.Speed
		}
	}

	mult := 1.0
	switch e.Tier() {
	case TierEmpowered:
		mult = sc.Tier2Multiplier
	case TierBoosted:
		mult = sc.Tier1Multiplier
	}
	e.Speed = sc.Base * mult
	return e.Speed
}
