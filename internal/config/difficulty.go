package config

import "fmt"

// DifficultyPreset represents a named difficulty level.
type DifficultyPreset string

const (
	DifficultyEasy   DifficultyPreset = "easy"
	DifficultyNormal DifficultyPreset = "normal"
	DifficultyHard   DifficultyPreset = "hard"
)

// ParseDifficulty converts a flag value into a preset.
// An empty string selects normal.
func ParseDifficulty(s string) (DifficultyPreset, error) {
	switch DifficultyPreset(s) {
	case "", DifficultyNormal:
		return DifficultyNormal, nil
	case DifficultyEasy, DifficultyHard:
		return DifficultyPreset(s), nil
	default:
		return "", fmt.Errorf("config: unknown difficulty %q (want easy, normal or hard)", s)
	}
}

// ApplyRunnerPreset modifies the config based on a difficulty preset.
// Presets only touch the reveal ability and how often forward fires are
// invisible; level geometry stays the same so every preset is reachable.
func ApplyRunnerPreset(cfg *RunnerConfig, preset DifficultyPreset) {
	switch preset {
	case DifficultyEasy:
		cfg.Ability.RevealSeconds = 20
		cfg.Ability.CooldownSeconds = 12
		cfg.Hazards.InvisibleChance = 0.10
	case DifficultyHard:
		cfg.Ability.RevealSeconds = 8
		cfg.Ability.CooldownSeconds = 30
		cfg.Hazards.InvisibleChance = 0.35
	}
}
