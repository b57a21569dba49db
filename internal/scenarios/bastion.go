package scenarios

import (
	"math"

	"github.com/vovakirdan/tui-arena/internal/arena"
	"github.com/vovakirdan/tui-arena/internal/collision"
	"github.com/vovakirdan/tui-arena/internal/geom"
)

const shieldSize = 10.0

// bastionCrashers is the attacker count kept alive.
func bastionCrashers(w *arena.World) int {
	return 2 * w.Config().Population.Drones
}

// edgePoint returns a random point on the left or right wall strip.
func edgePoint(w *arena.World) geom.Vec2 {
	ext := w.Extent()
	p := w.RandomPoint(arena.CrasherSize)
	if w.Rand().Intn(2) == 0 {
		p.X = ext.X + arena.CrasherSize
	} else {
		p.X = ext.Right() - arena.CrasherSize
	}
	return p
}

func init() {
	register(arena.Script{
		ID:    "bastion",
		Title: "Bastion",
		Populate: func(w *arena.World) error {
			pop := w.Config().Population
			center := w.Extent().Center()

			for i := range pop.Shields {
				offset := geom.FromAngle(float64(i) * 2 * math.Pi / float64(pop.Shields)).Scale(shieldSize * 2)
				w.SpawnShield(center.Add(offset), shieldSize)
			}
			for i := range pop.Sentries {
				team := arena.Red
				if i%2 == 1 {
					team = arena.Blue
				}
				offset := geom.FromAngle(float64(i)*2*math.Pi/float64(pop.Sentries) + 0.5).Scale(shieldSize * 3.5)
				w.SpawnSentry(team, center.Add(offset))
			}
			if err := spawnTeams(w, pop.Tanks/2, 0); err != nil {
				return err
			}
			for range bastionCrashers(w) {
				w.SpawnCrasher(edgePoint(w))
			}
			return nil
		},
		Maintain: func(w *arena.World) error {
			for n := w.Count(collision.Crasher); n < bastionCrashers(w); n++ {
				w.SpawnCrasher(edgePoint(w))
			}
			return nil
		},
		Wave: func(w *arena.World) error {
			for range 20 {
				w.SpawnCrasher(edgePoint(w))
			}
			return nil
		},
	})
}
