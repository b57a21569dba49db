package scenarios

import (
	"github.com/vovakirdan/tui-arena/internal/arena"
	"github.com/vovakirdan/tui-arena/internal/collision"
)

func init() {
	register(arena.Script{
		ID:    "minefield",
		Title: "Minefield",
		Populate: func(w *arena.World) error {
			pop := w.Config().Population
			if err := spawnTeams(w, pop.Tanks, 0); err != nil {
				return err
			}
			for range pop.Landmines {
				w.SpawnMine(w.RandomPoint(arena.MineSize))
			}
			return nil
		},
		Maintain: func(w *arena.World) error {
			pop := w.Config().Population
			// one fresh drop per second while below the configured count
			if w.Count(collision.Landmine) < pop.Landmines {
				w.SpawnMine(w.RandomPoint(arena.MineSize))
			}
			if w.Count(collision.Tank) < 2 {
				return spawnTeams(w, 2, 0)
			}
			return nil
		},
		Wave: func(w *arena.World) error {
			for range 5 {
				w.SpawnMine(w.RandomPoint(arena.MineSize))
			}
			return nil
		},
	})
}
