package scenarios

import (
	"github.com/vovakirdan/tui-arena/internal/arena"
	"github.com/vovakirdan/tui-arena/internal/collision"
)

// swarmSize is the crasher count for a population.
func swarmSize(w *arena.World) int {
	p := w.Config().Population
	return 4 * (p.Tanks + p.Drones + p.Shapes)
}

func init() {
	register(arena.Script{
		ID:    "swarm",
		Title: "Swarm",
		Populate: func(w *arena.World) error {
			for range swarmSize(w) {
				w.SpawnCrasher(w.RandomPoint(arena.CrasherSize))
			}
			return nil
		},
		Maintain: func(w *arena.World) error {
			for n := w.Count(collision.Crasher); n < swarmSize(w); n++ {
				w.SpawnCrasher(w.RandomPoint(arena.CrasherSize))
			}
			return nil
		},
		Wave: func(w *arena.World) error {
			// a burst from the center exercises the coincident-center push
			c := w.Extent().Center()
			for range 50 {
				w.SpawnCrasher(c)
			}
			return nil
		},
	})
}
