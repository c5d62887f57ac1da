package jumper

import "github.com/vovakirdan/combo-jump/internal/config"

// JumpKind is the outcome of a jump request.
type JumpKind int

const (
	JumpNone   JumpKind = iota // Request ignored
	JumpSingle                 // Took off from the ground
	JumpDouble                 // Spent the double-jump charge mid-air
)

// PlayerBody is the player's vertical state. Y is the height above the
// ground, so Y == 0 means grounded with zero velocity.
type PlayerBody struct {
	Y          float64
	VY         float64
	Airborne   bool
	DoubleJump bool // Double-jump charge held
}

// Grounded reports whether the body rests on the ground.
func (p PlayerBody) Grounded() bool {
	return !p.Airborne && p.Y == 0
}

// Step applies one frame of gravity and clamps the body to the ground.
func (p *PlayerBody) Step(gravity float64) {
	p.VY -= gravity
	p.Y += p.VY
	if p.Y <= 0 {
		p.Y = 0
		p.VY = 0
		p.Airborne = false
	}
}

// Jump handles a jump request. From the ground it always succeeds; mid-air
// it consumes the double-jump charge if one is held, otherwise it is a no-op.
// The combo tier scales both jumps.
func (p *PlayerBody) Jump(ph config.Physics, tier Tier) JumpKind {
	strength := ph.JumpImpulse
	if tier >= TierBoosted {
		strength *= ph.ComboJumpBonus
	}

	switch {
	case p.Grounded():
		p.Airborne = true
		p.VY = strength
		return JumpSingle
	case p.Airborne && p.DoubleJump:
		p.VY = strength * ph.DoubleJumpFactor
		p.DoubleJump = false
		return JumpDouble
	default:
		return JumpNone
	}
}

// GrantCharge gives the body a double-jump charge.
func (p *PlayerBody) GrantCharge() { p.DoubleJump = true }

// RevokeCharge drops any held double-jump charge.
func (p *PlayerBody) RevokeCharge() { p.DoubleJump = false }
