// Package config provides YAML-based game configuration loading, difficulty
// presets and environment overrides for Combo Jump.
package config

import (
	"errors"
	"fmt"
	"time"
)

// JumperConfig contains every tuning constant of the game.
type JumperConfig struct {
	World     World     `yaml:"world"`
	Player    Player    `yaml:"player"`
	Physics   Physics   `yaml:"physics"`
	Speed     Speed     `yaml:"speed"`
	Economy   Economy   `yaml:"economy"`
	Obstacles Obstacles `yaml:"obstacles"`
	Coins     Coins     `yaml:"coins"`
	Collision Collision `yaml:"collision"`
	Effects   Effects   `yaml:"effects"`
	Ranking   Ranking   `yaml:"ranking"`
}

// World defines the playfield size in world units (pixels of the 2:1 field).
type World struct {
	Width  float64 `yaml:"width"`
	Height float64 `yaml:"height"`
}

// Player defines the player sprite geometry.
type Player struct {
	X      float64 `yaml:"x"`
	Width  float64 `yaml:"width"`
	Height float64 `yaml:"height"`
}

// Physics defines gravity and jump parameters. Units are world units per frame.
type Physics struct {
	Gravity          float64 `yaml:"gravity"`
	JumpImpulse      float64 `yaml:"jump_impulse"`
	ComboJumpBonus   float64 `yaml:"combo_jump_bonus"`   // Jump multiplier from the first combo tier
	DoubleJumpFactor float64 `yaml:"double_jump_factor"` // Extra multiplier for the double jump
}

// Speed defines scroll speed policy. Base is world units per frame.
type Speed struct {
	Base            float64       `yaml:"base"`
	Tier1Multiplier float64       `yaml:"tier1_multiplier"`
	Tier2Multiplier float64       `yaml:"tier2_multiplier"`
	BoostMultiplier float64       `yaml:"boost_multiplier"`
	BoostDuration   time.Duration `yaml:"boost_duration"`
}

// Economy defines the time, score and combo rules.
type Economy struct {
	InitialTime   float64 `yaml:"initial_time"` // Seconds on the clock at run start
	MaxTime       float64 `yaml:"max_time"`     // Cap for accumulated time
	HitPenalty    int     `yaml:"hit_penalty"`  // Seconds lost per obstacle collision
	CoinScoreUnit int     `yaml:"coin_score_unit"`
	Tier1Combo    int     `yaml:"tier1_combo"` // Combo that unlocks the first tier
	Tier2Combo    int     `yaml:"tier2_combo"` // Combo that unlocks the second tier
}

// Obstacles defines obstacle geometry and the adaptive obstacle spawner.
type Obstacles struct {
	BaseInterval    time.Duration `yaml:"base_interval"`
	MinGap          time.Duration `yaml:"min_gap"`
	DecayFactor     float64       `yaml:"decay_factor"`
	DecayCap        int           `yaml:"decay_cap"`
	MaxConsecutive  int           `yaml:"max_consecutive"`
	BreakMultiplier float64       `yaml:"break_multiplier"`
	Width           float64       `yaml:"width"`
	Height          float64       `yaml:"height"`
	LargeWidth      float64       `yaml:"large_width"`
	LargeHeight     float64       `yaml:"large_height"`
	LargeChance     float64       `yaml:"large_chance"`
	DoubleChance    float64       `yaml:"double_chance"`
	MinVisualGap    float64       `yaml:"min_visual_gap"`
	GapJitter       float64       `yaml:"gap_jitter"`
}

// Coins defines coin geometry, rewards and the coin spawner.
type Coins struct {
	BaseInterval   time.Duration `yaml:"base_interval"`
	MinGap         time.Duration `yaml:"min_gap"`
	Randomness     time.Duration `yaml:"randomness"`
	Tier2Factor    float64       `yaml:"tier2_factor"`
	Width          float64       `yaml:"width"`
	Height         float64       `yaml:"height"`
	SpawnJitter    float64       `yaml:"spawn_jitter"`
	MinY           float64       `yaml:"min_y"`
	CeilingRatio   float64       `yaml:"ceiling_ratio"`
	CeilingMargin  float64       `yaml:"ceiling_margin"`
	BasicBonus     int           `yaml:"basic_bonus"`
	BoostedBonus   int           `yaml:"boosted_bonus"`
	EmpoweredBonus int           `yaml:"empowered_bonus"`
}

// Collision defines the hitbox margins. Negative margins forgive grazes,
// positive margins reward near misses.
type Collision struct {
	ObstacleMargin float64 `yaml:"obstacle_margin"`
	CoinMargin     float64 `yaml:"coin_margin"`
}

// Effects defines the lifetime of transient visual feedback.
type Effects struct {
	FloatingText time.Duration `yaml:"floating_text"`
	TextOffset   float64       `yaml:"text_offset"`
	JumpFlash    time.Duration `yaml:"jump_flash"`
	CollectFlash time.Duration `yaml:"collect_flash"`
	HitFlash     time.Duration `yaml:"hit_flash"`
}

// Ranking configures the remote ranking collaborator.
type Ranking struct {
	URL           string        `yaml:"url"` // Empty means the local scores database
	Timeout       time.Duration `yaml:"timeout"`
	Retries       int           `yaml:"retries"`
	TopN          int           `yaml:"top_n"`
	MaxNameLength int           `yaml:"max_name_length"`
}

// Validate reports configuration values the simulation cannot run with.
func (c JumperConfig) Validate() error {
	var errs []error
	if c.World.Width <= 0 || c.World.Height <= 0 {
		errs = append(errs, fmt.Errorf("world: size must be positive, got %gx%g", c.World.Width, c.World.Height))
	}
	if c.Player.Width <= 0 || c.Player.Height <= 0 {
		errs = append(errs, errors.New("player: size must be positive"))
	}
	if c.Physics.Gravity <= 0 {
		errs = append(errs, errors.New("physics: gravity must be positive"))
	}
	if c.Speed.Base <= 0 {
		errs = append(errs, errors.New("speed: base must be positive"))
	}
	if c.Economy.InitialTime <= 0 || c.Economy.MaxTime < c.Economy.InitialTime {
		errs = append(errs, errors.New("economy: need 0 < initial_time <= max_time"))
	}
	if c.Economy.Tier1Combo <= 0 || c.Economy.Tier2Combo < c.Economy.Tier1Combo {
		errs = append(errs, errors.New("economy: need 0 < tier1_combo <= tier2_combo"))
	}
	if c.Obstacles.MinGap <= 0 || c.Coins.MinGap <= 0 {
		errs = append(errs, errors.New("spawner: min gaps must be positive"))
	}
	if c.Obstacles.MaxConsecutive <= 0 {
		errs = append(errs, errors.New("obstacles: max_consecutive must be positive"))
	}
	if c.Obstacles.Width <= 0 || c.Obstacles.Height <= 0 || c.Coins.Width <= 0 || c.Coins.Height <= 0 {
		errs = append(errs, errors.New("entities: sizes must be positive"))
	}
	if c.Ranking.MaxNameLength <= 0 {
		errs = append(errs, errors.New("ranking: max_name_length must be positive"))
	}
	return errors.Join(errs...)
}
