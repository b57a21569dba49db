package config

import (
	_ "embed"
)

//go:embed defaults/arena.yaml
var defaultArenaYAML []byte

// DefaultArenaConfig returns the built-in arena configuration.
func DefaultArenaConfig() ArenaConfig {
	return ArenaConfig{
		World: WorldConfig{
			Width:  160,
			Height: 90,
		},
		Index: IndexConfig{
			Fanout:   8,
			MaxDepth: 8,
		},
		Forces: ForcesConfig{
			Stiffness:      4,
			SafetyMultiple: 0.25,
			RandomPush:     2,
		},
		Physics: PhysicsConfig{
			Gravity:     30,
			Restitution: 0.6,
			Drag:        0.4,
			MaxSpeed:    40,
		},
		Population: PopulationConfig{
			Tanks:     6,
			Drones:    12,
			Shapes:    20,
			Shields:   2,
			Sentries:  2,
			Landmines: 8,
		},
		Combat: CombatConfig{
			FriendlyFire:   false,
			BulletSpeed:    45,
			BulletDamage:   10,
			BulletLife:     2.5,
			FireInterval:   0.6,
			ContactDamage:  4,
			ContactRepeat:  0.5,
			PoisonValue:    3,
			PoisonDuration: 2,
			SentryRange:    30,
			MineRadius:     4,
			MineDamage:     35,
			DropHeight:     12,
		},
	}
}
