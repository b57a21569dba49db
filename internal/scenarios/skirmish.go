package scenarios

import (
	"github.com/vovakirdan/tui-arena/internal/arena"
)

func init() {
	register(arena.Script{
		ID:    "skirmish",
		Title: "Skirmish",
		Populate: func(w *arena.World) error {
			pop := w.Config().Population
			drones := 0
			if pop.Tanks > 0 {
				drones = pop.Drones / pop.Tanks
			}
			if err := spawnTeams(w, pop.Tanks, drones); err != nil {
				return err
			}
			return topUpShapes(w, pop.Shapes)
		},
		Maintain: func(w *arena.World) error {
			return topUpShapes(w, w.Config().Population.Shapes)
		},
		Wave: func(w *arena.World) error {
			return spawnTeams(w, 2, 1)
		},
	})
}
