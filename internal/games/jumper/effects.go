package jumper

import (
	"time"

	"github.com/vovakirdan/combo-jump/internal/config"
)

// FloatingText is a transient "+Ns"/"-Ns" marker shown where an entity was
// collected or hit.
type FloatingText struct {
	X, Y      float64
	Text      string
	Positive  bool
	ExpiresAt time.Duration
}

// Effects tracks short-lived visual feedback. It never influences the
// simulation.
type Effects struct {
	Texts []FloatingText

	jumpUntil    time.Duration
	collectUntil time.Duration
	hitUntil     time.Duration

	cfg config.Effects
}

// NewEffects creates an empty effect tracker.
func NewEffects(cfg config.Effects) Effects {
	return Effects{cfg: cfg}
}

// Float adds a floating text that lives for the configured duration.
func (e *Effects) Float(now time.Duration, x, y float64, text string, positive bool) {
	e.Texts = append(e.Texts, FloatingText{
		X:         x,
		Y:         y + e.cfg.TextOffset,
		Text:      text,
		Positive:  positive,
		ExpiresAt: now + e.cfg.FloatingText,
	})
}

// Jumped flashes the jump animation.
func (e *Effects) Jumped(now time.Duration) { e.jumpUntil = now + e.cfg.JumpFlash }

// Collected flashes the collection animation.
func (e *Effects) Collected(now time.Duration) { e.collectUntil = now + e.cfg.CollectFlash }

// Hit flashes the collision animation.
func (e *Effects) Hit(now time.Duration) { e.hitUntil = now + e.cfg.HitFlash }

// Jumping reports whether the jump flash is showing.
func (e Effects) Jumping(now time.Duration) bool { return now < e.jumpUntil }

// Collecting reports whether the collection flash is showing.
func (e Effects) Collecting(now time.Duration) bool { return now < e.collectUntil }

// Hurt reports whether the collision flash is showing.
func (e Effects) Hurt(now time.Duration) bool { return now < e.hitUntil }

// Prune drops expired floating texts.
func (e *Effects) Prune(now time.Duration) {
	live := e.Texts[:0]
	for _, t := range e.Texts {
		if now < t.ExpiresAt {
			live = append(live, t)
		}
	}
	e.Texts = live
}

