// Package config provides YAML-based arena configuration loading and
// density presets.
package config

import (
	"errors"
	"fmt"
)

// ArenaConfig contains all tunables of a simulation run.
type ArenaConfig struct {
	World      WorldConfig      `yaml:"world"`
	Index      IndexConfig      `yaml:"index"`
	Forces     ForcesConfig     `yaml:"forces"`
	Physics    PhysicsConfig    `yaml:"physics"`
	Population PopulationConfig `yaml:"population"`
	Combat     CombatConfig     `yaml:"combat"`
}

// WorldConfig is the playable ground plane, in world units.
type WorldConfig struct {
	Width  float64 `yaml:"width"`
	Height float64 `yaml:"height"`
}

// IndexConfig tunes the spatial index.
type IndexConfig struct {
	Fanout   int `yaml:"fanout"`    // items per node before it splits
	MaxDepth int `yaml:"max_depth"` // deepest subdivision level
}

// ForcesConfig tunes the separation response.
type ForcesConfig struct {
	Stiffness      float64 `yaml:"stiffness"`
	SafetyMultiple float64 `yaml:"safety_multiple"`
	RandomPush     float64 `yaml:"random_push"`
}

// PhysicsConfig defines movement parameters shared by all entities.
type PhysicsConfig struct {
	Gravity     float64 `yaml:"gravity"`
	Restitution float64 `yaml:"restitution"` // wall bounce factor
	Drag        float64 `yaml:"drag"`        // velocity kept per second, 0..1
	MaxSpeed    float64 `yaml:"max_speed"`
}

// PopulationConfig is the number of entities of each kind spawned at reset.
type PopulationConfig struct {
	Tanks     int `yaml:"tanks"`
	Drones    int `yaml:"drones"`
	Shapes    int `yaml:"shapes"`
	Shields   int `yaml:"shields"`
	Sentries  int `yaml:"sentries"`
	Landmines int `yaml:"landmines"`
}

// CombatConfig defines damage and sensor parameters.
type CombatConfig struct {
	FriendlyFire   bool    `yaml:"friendly_fire"`
	BulletSpeed    float64 `yaml:"bullet_speed"`
	BulletDamage   float64 `yaml:"bullet_damage"`
	BulletLife     float64 `yaml:"bullet_life"`   // seconds
	FireInterval   float64 `yaml:"fire_interval"` // seconds between shots
	ContactDamage  float64 `yaml:"contact_damage"`
	ContactRepeat  float64 `yaml:"contact_repeat"` // suppression window of body contact
	PoisonValue    float64 `yaml:"poison_value"`
	PoisonDuration float64 `yaml:"poison_duration"`
	SentryRange    float64 `yaml:"sentry_range"`
	MineRadius     float64 `yaml:"mine_radius"`
	MineDamage     float64 `yaml:"mine_damage"`
	DropHeight     float64 `yaml:"drop_height"`
}

// Validation errors.
var (
	ErrWorldSize = errors.New("world size must be positive")
	ErrIndex     = errors.New("index fanout and max depth must be at least 1")
	ErrForces    = errors.New("forces safety multiple must be positive")
	ErrNegative  = errors.New("population counts must not be negative")
)

// Validate reports the first authoring error in cfg.
func (c ArenaConfig) Validate() error {
	switch {
	case c.World.Width <= 0 || c.World.Height <= 0:
		return fmt.Errorf("config: %w (got %gx%g)", ErrWorldSize, c.World.Width, c.World.Height)
	case c.Index.Fanout < 1 || c.Index.MaxDepth < 1:
		return fmt.Errorf("config: %w", ErrIndex)
	case c.Forces.SafetyMultiple <= 0:
		return fmt.Errorf("config: %w", ErrForces)
	}
	p := c.Population
	if min(p.Tanks, p.Drones, p.Shapes, p.Shields, p.Sentries, p.Landmines) < 0 {
		return fmt.Errorf("config: %w", ErrNegative)
	}
	return nil
}

// DensityPreset scales how crowded the arena is.
type DensityPreset string

const (
	DensitySparse DensityPreset = "sparse"
	DensityNormal DensityPreset = "normal"
	DensityDense  DensityPreset = "dense"
	DensityStress DensityPreset = "stress"
)

// ParseDensity validates a preset name. An empty name means normal.
func ParseDensity(s string) (DensityPreset, error) {
	switch p := DensityPreset(s); p {
	case "":
		return DensityNormal, nil
	case DensitySparse, DensityNormal, DensityDense, DensityStress:
		return p, nil
	default:
		return "", fmt.Errorf("config: unknown density %q (want sparse, normal, dense or stress)", s)
	}
}

// MultiplierForPreset returns the population multiplier of a preset.
func MultiplierForPreset(preset DensityPreset) float64 {
	switch preset {
	case DensitySparse:
		return 0.5
	case DensityDense:
		return 2
	case DensityStress:
		return 6
	default:
		return 1
	}
}

// ApplyDensity scales the population of cfg by the preset.
func ApplyDensity(cfg *ArenaConfig, preset DensityPreset) {
	m := MultiplierForPreset(preset)
	scale := func(n int) int {
		if n == 0 {
			return 0
		}
		return max(1, int(float64(n)*m+0.5))
	}
	p := &cfg.Population
	p.Tanks = scale(p.Tanks)
	p.Drones = scale(p.Drones)
	p.Shapes = scale(p.Shapes)
	p.Shields = scale(p.Shields)
	p.Sentries = scale(p.Sentries)
	p.Landmines = scale(p.Landmines)
}
