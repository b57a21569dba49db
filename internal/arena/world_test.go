package arena

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/vovakirdan/tui-arena/internal/collision"
	"github.com/vovakirdan/tui-arena/internal/config"
	"github.com/vovakirdan/tui-arena/internal/core"
	"github.com/vovakirdan/tui-arena/internal/geom"
)

const dt = 1.0 / 60

func newTestWorld(t *testing.T, script Script) *World {
	t.Helper()
	if script.ID == "" {
		script.ID, script.Title = "test", "Test"
	}
	w := NewWorld(script, config.DefaultArenaConfig(), nil)
	require.NoError(t, w.Reset(core.RuntimeConfig{TickRate: 60, Seed: 1}))
	return w
}

// pin keeps a unit in place: it still collides but is never integrated.
func pin(u *Unit) *Unit {
	u.pushable = false
	u.cooldown = 1e9
	return u
}

func run(w *World, frames int) {
	for range frames {
		w.Advance(dt)
	}
}

func TestBulletHitsEnemyNotShooter(t *testing.T) {
	w := newTestWorld(t, Script{})
	red, err := w.SpawnTank(Red, geom.V(50, 45))
	require.NoError(t, err)
	blue, err := w.SpawnTank(Blue, geom.V(70, 45))
	require.NoError(t, err)
	pin(red)
	pin(blue)

	w.SpawnBullet(red, geom.V(1, 0), collision.Damage{Value: 10})
	run(w, 60)

	assert.Equal(t, 100.0, red.Health(), "owner exemption")
	assert.Equal(t, 90.0, blue.Health())
	assert.Equal(t, 0, w.Count(collision.Bullet), "spent bullets are swept")
	assert.Equal(t, 1, w.Report().Hits)
}

func TestBulletLeavesArena(t *testing.T) {
	w := newTestWorld(t, Script{})
	tank, err := w.SpawnTank(Red, geom.V(150, 45))
	require.NoError(t, err)
	pin(tank)

	w.SpawnBullet(tank, geom.V(1, 0), collision.Damage{Value: 10})
	require.Equal(t, 1, w.Count(collision.Bullet))
	run(w, 30)
	assert.Equal(t, 0, w.Count(collision.Bullet))
}

func TestDroneIgnoresOwner(t *testing.T) {
	w := newTestWorld(t, Script{})
	tank, err := w.SpawnTank(Red, geom.V(50, 45))
	require.NoError(t, err)
	pin(tank)
	drone := w.SpawnDrone(tank)
	drone.pos = tank.pos

	w.Advance(dt)
	assert.Equal(t, 0, w.Stats().Dispatches)
	assert.Equal(t, 100.0, tank.Health())

	tank.Kill()
	w.Advance(dt)
	w.Advance(dt)
	assert.Equal(t, 0, w.Count(collision.Drone), "drones die with their owner")
}

func TestLandmineArmsAfterLanding(t *testing.T) {
	w := newTestWorld(t, Script{})
	victim, err := w.SpawnTank(Blue, geom.V(30, 30))
	require.NoError(t, err)
	pin(victim)
	mine := w.SpawnMine(geom.V(30, 30))

	run(w, 30) // still falling
	assert.Greater(t, mine.Elevation(), 0.0)
	assert.Equal(t, 0, w.Report().MineTriggers)
	assert.Equal(t, 100.0, victim.Health())

	run(w, 60)
	assert.Equal(t, 1, w.Report().MineTriggers)
	assert.Equal(t, 0, w.Count(collision.Landmine))
	assert.InDelta(t, 100-w.Config().Combat.MineDamage, victim.Health(), 1e-9)
}

func TestSentryTargetsNearestEnemy(t *testing.T) {
	w := newTestWorld(t, Script{})
	sentry := w.SpawnSentry(Red, geom.V(80, 45))
	friend, err := w.SpawnTank(Red, geom.V(80, 57))
	require.NoError(t, err)
	far, err := w.SpawnTank(Blue, geom.V(104, 45))
	require.NoError(t, err)
	near, err := w.SpawnTank(Blue, geom.V(80, 30))
	require.NoError(t, err)
	outside, err := w.SpawnTank(Blue, geom.V(140, 45))
	require.NoError(t, err)
	for _, u := range []*Unit{friend, far, near, outside} {
		pin(u)
	}

	w.Advance(dt)
	require.Same(t, near, sentry.target)

	run(w, 90)
	assert.GreaterOrEqual(t, w.Report().SentryShots, 1)
	assert.Less(t, near.Health(), 100.0)
	assert.Equal(t, 100.0, friend.Health())
	assert.Equal(t, 100.0, outside.Health())
}

func TestPoisonKeepsHurting(t *testing.T) {
	u := NewUnit("u", collision.Tank, geom.V(0, 0), 2)
	u.SetHealth(10)
	u.Hurt(collision.Damage{Value: 1, Poison: &collision.Poison{Value: 2, Duration: 1}})
	require.True(t, u.Poisoned())

	for range 120 {
		u.tickStatus(dt)
	}
	assert.False(t, u.Poisoned())
	assert.InDelta(t, 7, u.Health(), 1e-9)
	assert.True(t, u.Active())
}

func TestShieldIsImpenetrable(t *testing.T) {
	w := newTestWorld(t, Script{})
	shield := w.SpawnShield(geom.V(50, 45), 10)
	c := w.SpawnCrasher(geom.V(52, 45))

	w.Advance(dt)
	contact := (shield.Size() + c.Size()) / 2
	assert.GreaterOrEqual(t, c.pos.Sub(shield.pos).Len(), contact-1e-9)
	assert.Equal(t, geom.V(50, 45), shield.pos)
}

func TestCrowdStaysFinite(t *testing.T) {
	w := newTestWorld(t, Script{})
	for range 50 {
		w.SpawnCrasher(geom.V(80, 45)) // all on one point
	}
	run(w, 120)

	for _, u := range w.Units(collision.Crasher) {
		require.True(t, w.Extent().ContainsPoint(u.pos), "%s escaped to %v", u.name, u.pos)
	}
}

func TestDeterministicForSeed(t *testing.T) {
	script := Script{Populate: func(w *World) error {
		for i := range 4 {
			if _, err := w.SpawnTank(Team(1+i%2), w.RandomPoint(10)); err != nil {
				return err
			}
		}
		for range 10 {
			w.SpawnCrasher(w.RandomPoint(5))
			if _, err := w.SpawnShape(w.RandomPoint(5), 5); err != nil {
				return err
			}
		}
		return nil
	}}

	a, b := newTestWorld(t, script), newTestWorld(t, script)
	run(a, 240)
	run(b, 240)

	assert.Equal(t, a.Report(), b.Report())
	ua, ub := a.Units(collision.Tank), b.Units(collision.Tank)
	require.Equal(t, len(ua), len(ub))
	for i := range ua {
		assert.Equal(t, ua[i].pos, ub[i].pos)
	}
}

func TestMaintainRunsEverySecond(t *testing.T) {
	calls := 0
	w := newTestWorld(t, Script{Maintain: func(*World) error { calls++; return nil }})
	run(w, 120)
	assert.Equal(t, 2, calls)
	assert.Equal(t, uint64(120), w.Report().Frames)
}

func TestResetClearsUnits(t *testing.T) {
	populated := 0
	w := newTestWorld(t, Script{Populate: func(w *World) error {
		populated++
		w.SpawnCrasher(w.RandomPoint(2))
		return nil
	}})
	w.SpawnCrasher(geom.V(10, 10))
	run(w, 5)
	require.Equal(t, 2, w.Alive())

	require.NoError(t, w.Reset(core.RuntimeConfig{TickRate: 60, Seed: 2}))
	assert.Equal(t, 2, populated)
	assert.Equal(t, 1, w.Alive())
	assert.Equal(t, uint64(0), w.State().Frame)
}

func TestStepPauseAndSingleStep(t *testing.T) {
	w := newTestWorld(t, Script{})

	var in core.InputFrame
	in.Set(core.ActionPause)
	res := w.Step(in)
	assert.True(t, res.State.Paused)
	assert.False(t, res.Advanced)

	res = w.Step(core.NewInputFrame())
	assert.Equal(t, uint64(0), res.State.Frame)

	in.Clear()
	in.Set(core.ActionStep)
	res = w.Step(in)
	assert.True(t, res.Advanced)
	assert.Equal(t, uint64(1), res.State.Frame)
	assert.True(t, res.State.Paused)
}

func TestRender(t *testing.T) {
	w := newTestWorld(t, Script{})
	tank, err := w.SpawnTank(Red, geom.V(80, 45))
	require.NoError(t, err)
	pin(tank)
	w.SpawnShield(geom.V(20, 20), 12)
	w.Advance(dt)

	screen := core.NewScreen(80, 24)
	w.Render(screen)
	out := screen.String()

	assert.Contains(t, out, "T")
	assert.Contains(t, out, "░")
	assert.True(t, strings.HasPrefix(screen.Row(0), " Test  frame 1"))
	assert.Contains(t, screen.Row(23), "indexed 2")

	var in core.InputFrame
	in.Set(core.ActionOverlay)
	in.Set(core.ActionPause)
	w.Step(in)
	screen.Clear()
	w.Render(screen)
	assert.Contains(t, screen.String(), "·")
	assert.Contains(t, screen.Row(0), "[PAUSED]")
}
