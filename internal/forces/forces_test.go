package forces

import (
	"math"
	"math/rand"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/vovakirdan/tui-arena/internal/collision"
	"github.com/vovakirdan/tui-arena/internal/geom"
)

type body struct {
	typ       collision.EntityType
	size      float64
	mass      float64
	pos       geom.Vec2
	vel       geom.Vec2
	rotation  float64
	elevation float64
	climb     float64
}

func (b *body) DisplayName() string         { return b.typ.String() }
func (b *body) Type() collision.EntityType  { return b.typ }
func (b *body) Active() bool                { return true }
func (b *body) Size() float64               { return b.size }
func (b *body) Mass() float64               { return b.mass }
func (b *body) Damage() collision.Damage    { return collision.Damage{} }
func (b *body) Position() geom.Vec2         { return b.pos }
func (b *body) Elevation() float64          { return b.elevation }
func (b *body) Rotation() float64           { return b.rotation }
func (b *body) Scale() float64              { return 1 }
func (b *body) Velocity() geom.Vec2         { return b.vel }
func (b *body) Owner() collision.Entity     { return nil }
func (b *body) Attached() bool              { return false }
func (b *body) Impenetrable() bool          { return b.typ.Impenetrable() }
func (b *body) SetPosition(p geom.Vec2)     { b.pos = p }
func (b *body) SetVelocity(v geom.Vec2)     { b.vel = v }
func (b *body) SetElevation(h float64)      { b.elevation = h }
func (b *body) ElevationSpeed() float64     { return b.climb }
func (b *body) SetElevationSpeed(s float64) { b.climb = s }

func tank(x, y, size, mass float64) *body {
	return &body{typ: collision.Tank, size: size, mass: mass, pos: geom.V(x, y)}
}

func finite(v geom.Vec2) bool {
	return !math.IsNaN(v.X) && !math.IsNaN(v.Y) && !math.IsInf(v.X, 0) && !math.IsInf(v.Y, 0)
}

func TestSeparatePushesAway(t *testing.T) {
	a := tank(10, 10, 2, 1)
	b := tank(11, 10, 2, 1)
	rng := rand.New(rand.NewSource(1))

	dv := Separate(a, b, DefaultParams(), rng)

	assert.Less(t, dv.X, 0.0)
	assert.InDelta(t, 0, dv.Y, 1e-12)
	assert.Equal(t, dv, a.vel)
	assert.True(t, b.vel.IsZero(), "only the target changes")
}

func TestSeparateWeightsByMass(t *testing.T) {
	p := DefaultParams()
	rng := rand.New(rand.NewSource(1))

	light := tank(10, 10, 2, 1)
	heavy := tank(11, 10, 2, 9)
	lightDV := Separate(light, heavy, p, rng)
	heavyDV := Separate(heavy, light, p, rng)

	assert.InDelta(t, 9, lightDV.Len()/heavyDV.Len(), 1e-9)
}

func TestSeparateClampsNearZeroDistance(t *testing.T) {
	p := DefaultParams()
	rng := rand.New(rand.NewSource(1))

	a := tank(10, 10, 2, 1)
	b := tank(10+1e-12, 10, 2, 1)
	dv := Separate(a, b, p, rng)

	require.True(t, finite(dv))
	bound := p.Stiffness / p.SafetyMultiple
	assert.LessOrEqual(t, dv.Len(), bound+1e-9)
}

func TestSeparateCoincidentCentersIsFinite(t *testing.T) {
	p := DefaultParams()
	rng := rand.New(rand.NewSource(7))

	for range 100 {
		a := tank(5, 5, 3, 1)
		b := tank(5, 5, 3, 1)
		dv := Separate(a, b, p, rng)
		require.True(t, finite(dv))
		assert.InDelta(t, p.RandomPush*3, dv.Len(), 1e-9)
	}
}

func TestSeparateSubnormalOffset(t *testing.T) {
	a := tank(0, 0, 2, 1)
	b := tank(math.SmallestNonzeroFloat64, 0, 2, 1)
	dv := Separate(a, b, DefaultParams(), rand.New(rand.NewSource(1)))
	assert.True(t, finite(dv))
}

func TestSeparateDeterministicWithSeed(t *testing.T) {
	run := func() geom.Vec2 {
		a := tank(1, 1, 2, 1)
		return Separate(a, tank(1, 1, 2, 1), DefaultParams(), rand.New(rand.NewSource(42)))
	}
	assert.Equal(t, run(), run())
}

func TestImpenetrable(t *testing.T) {
	shield := &body{typ: collision.Shield, size: 4, mass: 100, pos: geom.V(10, 10)}
	a := tank(11, 10, 2, 1)

	require.True(t, Impenetrable(a, shield))
	assert.InDelta(t, 13, a.pos.X, 1e-9)
	assert.InDelta(t, 10, a.pos.Y, 1e-9)

	// already clear
	assert.False(t, Impenetrable(a, shield))

	// ordinary entities never correct position
	b := tank(11, 10, 2, 1)
	assert.False(t, Impenetrable(b, tank(10, 10, 2, 1)))
	assert.Equal(t, geom.V(11, 10), b.pos)
}

func TestImpenetrableCoincident(t *testing.T) {
	shield := &body{typ: collision.Lance, size: 2, pos: geom.V(0, 0), rotation: math.Pi / 2}
	a := tank(0, 0, 2, 1)

	require.True(t, Impenetrable(a, shield))
	assert.InDelta(t, 0, a.pos.X, 1e-9)
	assert.InDelta(t, 2, a.pos.Y, 1e-9)
}

func TestFallLands(t *testing.T) {
	b := tank(0, 0, 1, 1)
	b.elevation = 2

	landed := false
	frames := 0
	for !landed && frames < 1000 {
		landed = Fall(b, 9.8, 1.0/60)
		frames++
	}
	require.True(t, landed)
	assert.Equal(t, 0.0, b.elevation)
	assert.Equal(t, 0.0, b.climb)
	assert.True(t, collision.Grounded(b))

	assert.False(t, Fall(b, 9.8, 1.0/60), "a grounded body stays put")
}

func TestFallRisesFirst(t *testing.T) {
	b := tank(0, 0, 1, 1)
	b.climb = 5

	assert.False(t, Fall(b, 10, 0.1))
	assert.Greater(t, b.elevation, 0.0)
}

func TestClampToWalls(t *testing.T) {
	extent := geom.Box{W: 20, H: 10}

	tests := []struct {
		name    string
		pos     geom.Vec2
		vel     geom.Vec2
		wantPos geom.Vec2
		wantVel geom.Vec2
		hit     bool
	}{
		{"inside", geom.V(5, 5), geom.V(1, 1), geom.V(5, 5), geom.V(1, 1), false},
		{"left", geom.V(0, 5), geom.V(-4, 0), geom.V(1, 5), geom.V(2, 0), true},
		{"right", geom.V(25, 5), geom.V(4, 1), geom.V(19, 5), geom.V(-2, 1), true},
		{"top", geom.V(5, -3), geom.V(0, -2), geom.V(5, 1), geom.V(0, 1), true},
		{"corner", geom.V(30, 30), geom.V(2, 2), geom.V(19, 9), geom.V(-1, -1), true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			b := tank(tt.pos.X, tt.pos.Y, 2, 1)
			b.vel = tt.vel
			assert.Equal(t, tt.hit, ClampToWalls(b, extent, 0.5))
			assert.Equal(t, tt.wantPos, b.pos)
			assert.Equal(t, tt.wantVel, b.vel)
		})
	}
}
