// Package config provides YAML-based runner configuration loading,
// difficulty presets and hot reload.
package config

import (
	"errors"
	"fmt"
)

// RunnerConfig contains all tunables of the runner simulation.
// Coordinates are in world pixels of an 800x400 playfield.
type RunnerConfig struct {
	Screen     ScreenConfig     `yaml:"screen"`
	Physics    PhysicsConfig    `yaml:"physics"`
	Player     PlayerConfig     `yaml:"player"`
	World      WorldConfig      `yaml:"world"`
	Generation GenerationConfig `yaml:"generation"`
	Hazards    HazardConfig     `yaml:"hazards"`
	Heals      HealConfig       `yaml:"heals"`
	Ability    AbilityConfig    `yaml:"ability"`
	Input      InputConfig      `yaml:"input"`
}

// ScreenConfig defines the logical playfield.
type ScreenConfig struct {
	Width     int `yaml:"width"`
	Height    int `yaml:"height"`
	GroundTop int `yaml:"ground_top"`
	FPS       int `yaml:"fps"`
}

// PhysicsConfig defines player physics.
type PhysicsConfig struct {
	Gravity   int `yaml:"gravity"`
	JumpSpeed int `yaml:"jump_speed"`
	MaxJumps  int `yaml:"max_jumps"`
	BumpSpeed int `yaml:"bump_speed"` // downward speed after hitting a platform underside
}

// PlayerConfig defines the player body.
type PlayerConfig struct {
	Size        int `yaml:"size"`
	MaxHP       int `yaml:"max_hp"`
	StartOffset int `yaml:"start_offset"` // distance right of the wall column
}

// WorldConfig defines scrolling and tile geometry.
type WorldConfig struct {
	ScrollSpeed     int `yaml:"scroll_speed"`
	ScorePerTick    int `yaml:"score_per_tick"`
	TileW           int `yaml:"tile_w"`
	TileH           int `yaml:"tile_h"`
	WallBlockH      int `yaml:"wall_block_h"`
	WallExtraBlocks int `yaml:"wall_extra_blocks"`
	CullMargin      int `yaml:"cull_margin"`
}

// GroupPos is a platform group start position.
type GroupPos struct {
	X int `yaml:"x"`
	Y int `yaml:"y"`
}

// GenerationConfig defines platform group generation.
type GenerationConfig struct {
	GroupBlocks      int        `yaml:"group_blocks"`
	LookAhead        int        `yaml:"look_ahead"`
	GroupGap         int        `yaml:"group_gap"`
	MinY             int        `yaml:"min_y"`
	BaseLevels       []int      `yaml:"base_levels"`
	RaiseMin         int        `yaml:"raise_min"`
	RaiseMax         int        `yaml:"raise_max"`
	InitialGroups    []GroupPos `yaml:"initial_groups"`
	EnforceReachable bool       `yaml:"enforce_reachable"`
	LowerStep        int        `yaml:"lower_step"`
}

// HazardConfig defines fire hazard seeding.
type HazardConfig struct {
	Size                   int     `yaml:"size"`
	HitFrames              int     `yaml:"hit_frames"`
	MaxPerGroup            int     `yaml:"max_per_group"`
	CountWeights           []int   `yaml:"count_weights"`         // over 0..len-1 fires
	InitialCountWeights    []int   `yaml:"initial_count_weights"` // same, for the starting groups
	RefillWeights          []int   `yaml:"refill_weights"`        // over 1..len fires after two empty groups
	GroundChance           float64 `yaml:"ground_chance"`
	InvisibleChance        float64 `yaml:"invisible_chance"`
	InitialInvisibleChance float64 `yaml:"initial_invisible_chance"`
	PlatformOffset         int     `yaml:"platform_offset"`
}

// HealConfig defines heal pickup seeding.
type HealConfig struct {
	Size           int     `yaml:"size"`
	Chance         float64 `yaml:"chance"`
	Attempts       int     `yaml:"attempts"`
	Clearance      int     `yaml:"clearance"`
	PlatformOffset int     `yaml:"platform_offset"`
}

// AbilityConfig defines the reveal ability timings.
type AbilityConfig struct {
	RevealSeconds   int `yaml:"reveal_seconds"`
	CooldownSeconds int `yaml:"cooldown_seconds"`
}

// InputConfig defines frontend input behavior.
type InputConfig struct {
	HoldMS int `yaml:"hold_ms"` // how long a terminal key press counts as held
}

// RevealTicks returns the reveal duration in ticks.
func (c RunnerConfig) RevealTicks() int {
	return c.Ability.RevealSeconds * c.Screen.FPS
}

// CooldownTicks returns the reveal cooldown in ticks.
func (c RunnerConfig) CooldownTicks() int {
	return c.Ability.CooldownSeconds * c.Screen.FPS
}

// Validate reports every value that would break the simulation.
func (c RunnerConfig) Validate() error {
	var errs []error
	positive := func(name string, v int) {
		if v <= 0 {
			errs = append(errs, fmt.Errorf("%s must be positive, got %d", name, v))
		}
	}
	probability := func(name string, p float64) {
		if p < 0 || p > 1 {
			errs = append(errs, fmt.Errorf("%s must be in [0,1], got %g", name, p))
		}
	}
	weights := func(name string, w []int, n int) {
		if len(w) != n {
			errs = append(errs, fmt.Errorf("%s needs %d weights, got %d", name, n, len(w)))
			return
		}
		total := 0
		for _, v := range w {
			if v < 0 {
				errs = append(errs, fmt.Errorf("%s has negative weight %d", name, v))
			}
			total += v
		}
		if total <= 0 {
			errs = append(errs, fmt.Errorf("%s weights sum to zero", name))
		}
	}

	positive("screen.width", c.Screen.Width)
	positive("screen.height", c.Screen.Height)
	positive("screen.ground_top", c.Screen.GroundTop)
	positive("screen.fps", c.Screen.FPS)
	positive("physics.gravity", c.Physics.Gravity)
	positive("physics.jump_speed", c.Physics.JumpSpeed)
	positive("physics.max_jumps", c.Physics.MaxJumps)
	positive("player.size", c.Player.Size)
	positive("player.max_hp", c.Player.MaxHP)
	positive("world.scroll_speed", c.World.ScrollSpeed)
	positive("world.tile_w", c.World.TileW)
	positive("world.tile_h", c.World.TileH)
	positive("world.wall_block_h", c.World.WallBlockH)
	positive("generation.group_blocks", c.Generation.GroupBlocks)
	positive("hazards.size", c.Hazards.Size)
	positive("hazards.hit_frames", c.Hazards.HitFrames)
	positive("heals.size", c.Heals.Size)
	positive("heals.attempts", c.Heals.Attempts)

	if c.Hazards.MaxPerGroup < 0 || c.Hazards.MaxPerGroup > c.Generation.GroupBlocks {
		errs = append(errs, fmt.Errorf("hazards.max_per_group must be within 0..%d, got %d",
			c.Generation.GroupBlocks, c.Hazards.MaxPerGroup))
	}
	weights("hazards.count_weights", c.Hazards.CountWeights, c.Hazards.MaxPerGroup+1)
	weights("hazards.initial_count_weights", c.Hazards.InitialCountWeights, c.Hazards.MaxPerGroup+1)
	weights("hazards.refill_weights", c.Hazards.RefillWeights, c.Hazards.MaxPerGroup)

	probability("hazards.ground_chance", c.Hazards.GroundChance)
	probability("hazards.invisible_chance", c.Hazards.InvisibleChance)
	probability("hazards.initial_invisible_chance", c.Hazards.InitialInvisibleChance)
	probability("heals.chance", c.Heals.Chance)

	if len(c.Generation.BaseLevels) == 0 {
		errs = append(errs, errors.New("generation.base_levels must not be empty"))
	}
	if c.Generation.RaiseMin > c.Generation.RaiseMax {
		errs = append(errs, fmt.Errorf("generation.raise_min %d exceeds raise_max %d",
			c.Generation.RaiseMin, c.Generation.RaiseMax))
	}
	if len(c.Generation.InitialGroups) == 0 {
		errs = append(errs, errors.New("generation.initial_groups must not be empty"))
	}
	if c.Generation.EnforceReachable && c.Generation.LowerStep <= 0 {
		errs = append(errs, fmt.Errorf("generation.lower_step must be positive when enforcing reachability, got %d",
			c.Generation.LowerStep))
	}
	if c.Ability.RevealSeconds < 0 || c.Ability.CooldownSeconds < 0 {
		errs = append(errs, errors.New("ability timings must not be negative"))
	}

	if len(errs) > 0 {
		return fmt.Errorf("config: invalid runner config: %w", errors.Join(errs...))
	}
	return nil
}
