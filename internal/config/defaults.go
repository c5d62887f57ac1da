package config

import (
	_ "embed"
	"time"
)

//go:embed defaults/jumper.yaml
var defaultJumperYAML []byte

// DefaultJumperConfig returns the built-in configuration. It mirrors
// defaults/jumper.yaml and is the last fallback when YAML cannot be parsed.
func DefaultJumperConfig() JumperConfig {
	return JumperConfig{
		World: World{
			Width:  1000,
			Height: 500,
		},
		Player: Player{
			X:      100,
			Width:  50,
			Height: 50,
		},
		Physics: Physics{
			Gravity:          0.65,
			JumpImpulse:      18,
			ComboJumpBonus:   1.15,
			DoubleJumpFactor: 1.1,
		},
		Speed: Speed{
			Base:            7,
			Tier1Multiplier: 1.2,
			Tier2Multiplier: 1.5,
			BoostMultiplier: 1.5,
			BoostDuration:   5 * time.Second,
		},
		Economy: Economy{
			InitialTime:   120,
			MaxTime:       150,
			HitPenalty:    1,
			CoinScoreUnit: 5,
			Tier1Combo:    3,
			Tier2Combo:    6,
		},
		Obstacles: Obstacles{
			BaseInterval:    1800 * time.Millisecond,
			MinGap:          120 * time.Millisecond,
			DecayFactor:     0.97,
			DecayCap:        10,
			MaxConsecutive:  3,
			BreakMultiplier: 1.5,
			Width:           62,
			Height:          62,
			LargeWidth:      74,
			LargeHeight:     74,
			LargeChance:     0.3,
			DoubleChance:    0.4,
			MinVisualGap:    100,
			GapJitter:       50,
		},
		Coins: Coins{
			BaseInterval:   2500 * time.Millisecond,
			MinGap:         1800 * time.Millisecond,
			Randomness:     1000 * time.Millisecond,
			Tier2Factor:    0.75,
			Width:          50,
			Height:         50,
			SpawnJitter:    100,
			MinY:           50,
			CeilingRatio:   0.7,
			CeilingMargin:  80,
			BasicBonus:     1,
			BoostedBonus:   2,
			EmpoweredBonus: 5,
		},
		Collision: Collision{
			ObstacleMargin: -10,
			CoinMargin:     5,
		},
		Effects: Effects{
			FloatingText: 1150 * time.Millisecond,
			TextOffset:   10,
			JumpFlash:    200 * time.Millisecond,
			CollectFlash: 200 * time.Millisecond,
			HitFlash:     300 * time.Millisecond,
		},
		Ranking: Ranking{
			Timeout:       8 * time.Second,
			Retries:       2,
			TopN:          20,
			MaxNameLength: 15,
		},
	}
}

// DefaultYAML returns the embedded default YAML, used by `presets --dump`.
func DefaultYAML() []byte {
	return defaultJumperYAML
}
