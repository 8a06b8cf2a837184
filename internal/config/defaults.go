package config

import (
	_ "embed"
)

//go:embed defaults/runner.yaml
var defaultRunnerYAML []byte

// DefaultRunnerConfig returns the hardcoded runner configuration.
// It mirrors defaults/runner.yaml and is the last fallback of the loader.
func DefaultRunnerConfig() RunnerConfig {
	return RunnerConfig{
		Screen: ScreenConfig{
			Width:     800,
			Height:    400,
			GroundTop: 354,
			FPS:       60,
		},
		Physics: PhysicsConfig{
			Gravity:   1,
			JumpSpeed: 15,
			MaxJumps:  2,
			BumpSpeed: 4,
		},
		Player: PlayerConfig{
			Size:        32,
			MaxHP:       3,
			StartOffset: 10,
		},
		World: WorldConfig{
			ScrollSpeed:     5,
			ScorePerTick:    1,
			TileW:           48,
			TileH:           64,
			WallBlockH:      48,
			WallExtraBlocks: 3,
			CullMargin:      50,
		},
		Generation: GenerationConfig{
			GroupBlocks: 4,
			LookAhead:   500,
			GroupGap:    250,
			MinY:        80,
			BaseLevels:  []int{220, 250, 280},
			RaiseMin:    5,
			RaiseMax:    80,
			InitialGroups: []GroupPos{
				{X: 150, Y: 280},
				{X: 400, Y: 250},
				{X: 650, Y: 220},
				{X: 900, Y: 250},
				{X: 1150, Y: 280},
			},
			EnforceReachable: true,
			LowerStep:        5,
		},
		Hazards: HazardConfig{
			Size:                   32,
			HitFrames:              30,
			MaxPerGroup:            2,
			CountWeights:           []int{30, 50, 20},
			InitialCountWeights:    []int{50, 40, 10},
			RefillWeights:          []int{80, 20},
			GroundChance:           0.18,
			InvisibleChance:        0.20,
			InitialInvisibleChance: 0.18,
			PlatformOffset:         40,
		},
		Heals: HealConfig{
			Size:           24,
			Chance:         0.28,
			Attempts:       4,
			Clearance:      80,
			PlatformOffset: 60,
		},
		Ability: AbilityConfig{
			RevealSeconds:   15,
			CooldownSeconds: 20,
		},
		Input: InputConfig{
			HoldMS: 180,
		},
	}
}

// DefaultRunnerYAML returns the embedded default YAML.
func DefaultRunnerYAML() []byte {
	return defaultRunnerYAML
}
