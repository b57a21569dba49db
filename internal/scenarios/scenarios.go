// Package scenarios registers the built-in arena scenarios. Import it for
// its side effects.
package scenarios

import (
	"github.com/charmbracelet/log"

	"github.com/vovakirdan/tui-arena/internal/arena"
	"github.com/vovakirdan/tui-arena/internal/collision"
	"github.com/vovakirdan/tui-arena/internal/config"
	"github.com/vovakirdan/tui-arena/internal/registry"
)

func register(script arena.Script) {
	registry.Register(script.ID, script.Title, func(cfg config.ArenaConfig, logger *log.Logger) registry.Scenario {
		return arena.NewWorld(script, cfg, logger)
	})
}

// spawnTeams places n tanks split between red on the left half and blue on
// the right half, each with drones drones.
func spawnTeams(w *arena.World, n, drones int) error {
	ext := w.Extent()
	for i := range n {
		team := arena.Red
		if i%2 == 1 {
			team = arena.Blue
		}
		p := w.RandomPoint(arena.TankSize)
		p.X = p.X/2 + float64(team-arena.Red)*ext.W/2
		t, err := w.SpawnTank(team, p)
		if err != nil {
			return err
		}
		for range drones {
			w.SpawnDrone(t)
		}
	}
	return nil
}

// topUpShapes respawns shapes until n are alive.
func topUpShapes(w *arena.World, n int) error {
	for w.Count(collision.Shape) < n {
		sides := 3 + w.Rand().Intn(4)
		if _, err := w.SpawnShape(w.RandomPoint(arena.ShapeSize), sides); err != nil {
			return err
		}
	}
	return nil
}
