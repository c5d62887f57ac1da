package config

import (
	"fmt"
	"time"
)

// DifficultyPreset represents a named difficulty level.
type DifficultyPreset string

const (
	DifficultyEasy   DifficultyPreset = "easy"
	DifficultyNormal DifficultyPreset = "normal"
	DifficultyHard   DifficultyPreset = "hard"
)

// PresetInfo describes a preset for listing.
type PresetInfo struct {
	Preset      DifficultyPreset
	Description string
}

// Presets returns all presets in display order.
func Presets() []PresetInfo {
	return []PresetInfo{
		{DifficultyEasy, "150s on the clock, slower obstacles, rare doubles"},
		{DifficultyNormal, "120s on the clock, the tuning from the config file"},
		{DifficultyHard, "90s on the clock, faster obstacles, frequent doubles"},
	}
}

// ParsePreset converts a flag value to a preset. Empty means normal.
func ParsePreset(s string) (DifficultyPreset, error) {
	switch DifficultyPreset(s) {
	case "", DifficultyNormal:
		return DifficultyNormal, nil
	case DifficultyEasy:
		return DifficultyEasy, nil
	case DifficultyHard:
		return DifficultyHard, nil
	default:
		return "", fmt.Errorf("unknown difficulty %q (want easy, normal or hard)", s)
	}
}

// ApplyJumperPreset modifies the config based on a difficulty preset.
func ApplyJumperPreset(cfg *JumperConfig, preset DifficultyPreset) {
	switch preset {
	case DifficultyEasy:
		cfg.Economy.InitialTime = 150
		cfg.Economy.MaxTime = 180
		cfg.Obstacles.BaseInterval = 2100 * time.Millisecond
		cfg.Obstacles.DoubleChance = 0.25
	case DifficultyHard:
		cfg.Economy.InitialTime = 90
		cfg.Economy.MaxTime = 120
		cfg.Obstacles.BaseInterval = 1500 * time.Millisecond
		cfg.Obstacles.DoubleChance = 0.55
		cfg.Obstacles.LargeChance = 0.45
	}
}
