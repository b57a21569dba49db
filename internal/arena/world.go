package arena

import (
	"fmt"
	"io"
	"math/rand"
	"slices"

	"github.com/charmbracelet/log"

	"github.com/vovakirdan/tui-arena/internal/collision"
	"github.com/vovakirdan/tui-arena/internal/config"
	"github.com/vovakirdan/tui-arena/internal/core"
	"github.com/vovakirdan/tui-arena/internal/forces"
	"github.com/vovakirdan/tui-arena/internal/geom"
)

// Script describes a scenario: what is spawned at reset and how the
// population is kept up while it runs.
type Script struct {
	ID       string
	Title    string
	Populate func(w *World) error
	Maintain func(w *World) error // optional; once per simulated second
	Wave     func(w *World) error // optional; on ActionSpawn
}

// Report summarizes a run.
type Report struct {
	Scenario      string
	Seed          int64
	Frames        uint64
	Elapsed       float64
	Spawned       int
	Hits          int
	Kills         int
	MineTriggers  int
	SentryShots   int
	Tests         int // narrow-phase tests, all frames
	Dispatches    int
	Notifications int
	PeakPairs     int // largest suppression table seen
	PeakIndexed   int
}

// squad is the units of one manager plus the live collider set it
// registered with the core.
type squad struct {
	units []*Unit
	set   collision.Set
}

func (s *squad) add(u *Unit, colliders ...*collision.Collider) {
	s.units = append(s.units, u)
	for _, c := range colliders {
		s.set.Add(c)
	}
}

// sweep drops dead units and their colliders.
func (s *squad) sweep() {
	s.units = slices.DeleteFunc(s.units, func(u *Unit) bool { return u.dead })
	s.set.RemoveFunc(func(c *collision.Collider) bool {
		e := c.Entity()
		return e != nil && !e.Active()
	})
}

func (s *squad) reset() {
	s.units = nil
	s.set.Clear()
}

// World is a running scenario. It is not safe for concurrent use.
type World struct {
	script Script
	cfg    config.ArenaConfig
	logger *log.Logger

	rng      *rand.Rand
	seed     int64
	dt       float64
	params   forces.Params
	extent   geom.Box
	resolver *collision.Resolver
	bodies   *collision.Registry
	sensors  *collision.Registry
	handles  []*collision.Handle

	tanks    squad
	bullets  squad
	drones   squad
	shapes   squad
	shields  squad
	sentries squad
	mines    squad
	crashers squad

	frame   uint64
	elapsed float64
	nextSec float64
	serial  int
	paused  bool
	overlay bool
	report  Report
}

// NewWorld creates a world for script. Call Reset before stepping it.
func NewWorld(script Script, cfg config.ArenaConfig, logger *log.Logger) *World {
	if logger == nil {
		logger = log.New(io.Discard)
	}
	return &World{
		script: script,
		cfg:    cfg,
		logger: logger.WithPrefix(script.ID),
		params: forces.Params{
			Stiffness:      cfg.Forces.Stiffness,
			SafetyMultiple: cfg.Forces.SafetyMultiple,
			RandomPush:     cfg.Forces.RandomPush,
		},
		extent: geom.Box{W: cfg.World.Width, H: cfg.World.Height},
	}
}

// ID returns the scenario identifier.
func (w *World) ID() string { return w.script.ID }

// Title returns the scenario display name.
func (w *World) Title() string { return w.script.Title }

// Config returns the arena configuration the world runs with.
func (w *World) Config() config.ArenaConfig { return w.cfg }

// Extent returns the playable area.
func (w *World) Extent() geom.Box { return w.extent }

// Rand returns the world's seeded random source.
func (w *World) Rand() *rand.Rand { return w.rng }

// Reset discards all units and runs the scenario's Populate again.
func (w *World) Reset(rc core.RuntimeConfig) error {
	for _, h := range w.handles {
		h.Dispose()
	}
	w.handles = w.handles[:0]
	for _, s := range w.squads() {
		s.reset()
	}

	w.seed = rc.Seed
	w.rng = rand.New(rand.NewSource(rc.Seed))
	w.dt = rc.Dt()
	w.frame, w.elapsed, w.nextSec, w.serial = 0, 0, 1, 0
	w.paused = false
	w.report = Report{Scenario: w.script.ID, Seed: rc.Seed}

	w.bodies = collision.NewRegistry("bodies", w.logger)
	w.sensors = collision.NewRegistry("sensors", w.logger)
	w.resolver = collision.NewResolver(collision.Options{
		Extent:       w.extent,
		Fanout:       w.cfg.Index.Fanout,
		MaxDepth:     w.cfg.Index.MaxDepth,
		FriendlyFire: w.cfg.Combat.FriendlyFire,
		Logger:       w.logger,
	}, w.bodies, w.sensors)

	for _, s := range []*squad{&w.tanks, &w.bullets, &w.drones, &w.shapes, &w.shields, &w.sentries, &w.crashers} {
		w.handles = append(w.handles, w.bodies.Register(s.set.All()))
	}
	w.handles = append(w.handles, w.sensors.Register(w.mines.set.All()))

	if w.script.Populate != nil {
		if err := w.script.Populate(w); err != nil {
			return fmt.Errorf("arena: %s: populate: %w", w.script.ID, err)
		}
	}
	w.logger.Debug("reset", "seed", rc.Seed, "alive", w.Alive())
	return nil
}

func (w *World) squads() []*squad {
	return []*squad{&w.tanks, &w.bullets, &w.drones, &w.shapes, &w.shields, &w.sentries, &w.mines, &w.crashers}
}

// Step handles viewer actions and, unless paused, advances one frame.
func (w *World) Step(in core.InputFrame) core.StepResult {
	if in.Has(core.ActionPause) {
		w.paused = !w.paused
	}
	if in.Has(core.ActionOverlay) {
		w.overlay = !w.overlay
	}
	if in.Has(core.ActionSpawn) && w.script.Wave != nil {
		if err := w.script.Wave(w); err != nil {
			w.logger.Error("wave", "err", err)
		}
	}

	advance := !w.paused || in.Has(core.ActionStep)
	if advance {
		w.Advance(w.dt)
	}
	return core.StepResult{State: w.State(), Advanced: advance}
}

// Advance simulates one frame of dt seconds:
// think, move, collide, then remove what died.
func (w *World) Advance(dt float64) {
	w.think(dt)
	w.move(dt)

	for _, s := range w.sentries.units {
		s.target, s.bestDist = nil, 0
	}
	w.resolver.Update(dt)
	w.collect()

	for _, s := range w.squads() {
		for _, u := range s.units {
			if u.spent {
				u.dead = true
			}
		}
		s.sweep()
	}

	w.frame++
	w.elapsed += dt
	w.report.Frames = w.frame
	w.report.Elapsed = w.elapsed
	if w.elapsed+1e-9 >= w.nextSec {
		w.nextSec++
		if w.script.Maintain != nil {
			if err := w.script.Maintain(w); err != nil {
				w.logger.Error("maintain", "err", err)
			}
		}
	}
}

func (w *World) collect() {
	st := w.resolver.Stats()
	w.report.Tests += st.Tests
	w.report.Dispatches += st.Dispatches
	w.report.Notifications += st.Notifications
	w.report.PeakPairs = max(w.report.PeakPairs, st.Suppressed)
	w.report.PeakIndexed = max(w.report.PeakIndexed, st.Indexed)
}

// State returns the current simulation state.
func (w *World) State() core.SimState {
	return core.SimState{
		Frame:   w.frame,
		Elapsed: w.elapsed,
		Alive:   w.Alive(),
		Paused:  w.paused,
		Overlay: w.overlay,
	}
}

// Stats returns the resolver counters of the last frame.
func (w *World) Stats() collision.Stats {
	if w.resolver == nil {
		return collision.Stats{}
	}
	return w.resolver.Stats()
}

// Report returns the run summary so far.
func (w *World) Report() Report {
	return w.report
}

// Alive returns the number of live units.
func (w *World) Alive() int {
	n := 0
	for _, s := range w.squads() {
		n += len(s.units)
	}
	return n
}

// Count returns the number of live units of one type.
func (w *World) Count(t collision.EntityType) int {
	n := 0
	for _, s := range w.squads() {
		for _, u := range s.units {
			if u.typ == t {
				n++
			}
		}
	}
	return n
}

// Units returns the live units of one type, in spawn order.
func (w *World) Units(t collision.EntityType) []*Unit {
	var out []*Unit
	for _, s := range w.squads() {
		for _, u := range s.units {
			if u.typ == t {
				out = append(out, u)
			}
		}
	}
	return out
}

// RandomPoint returns a uniformly random point at least margin away from
// the walls.
func (w *World) RandomPoint(margin float64) geom.Vec2 {
	margin = min(margin, w.extent.W/2, w.extent.H/2)
	return geom.V(
		w.extent.X+margin+w.rng.Float64()*(w.extent.W-2*margin),
		w.extent.Y+margin+w.rng.Float64()*(w.extent.H-2*margin),
	)
}

func (w *World) name(t collision.EntityType) string {
	w.serial++
	return fmt.Sprintf("%s#%d", t, w.serial)
}
