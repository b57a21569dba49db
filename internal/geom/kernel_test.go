package geom

import (
	"math"
	"math/rand"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func square(center Vec2, side, rotation float64) []Vec2 {
	local := []Vec2{
		{X: -side / 2, Y: -side / 2},
		{X: side / 2, Y: -side / 2},
		{X: side / 2, Y: side / 2},
		{X: -side / 2, Y: side / 2},
	}
	out := make([]Vec2, len(local))
	Transform(out, local, center, rotation, 1)
	return out
}

func TestCircleCircleMatchesDistance(t *testing.T) {
	rng := rand.New(rand.NewSource(7))
	for i := 0; i < 5000; i++ {
		c0 := V(rng.Float64()*200-100, rng.Float64()*200-100)
		c1 := V(rng.Float64()*200-100, rng.Float64()*200-100)
		r0 := rng.Float64() * 40
		r1 := rng.Float64() * 40

		d := math.Hypot(c1.X-c0.X, c1.Y-c0.Y)
		want := d < r0+r1
		// Skip samples that sit on the boundary within float error.
		if math.Abs(d-(r0+r1)) < 1e-9 {
			continue
		}
		require.Equal(t, want, CircleCircle(c0, r0, c1, r1), "c0=%v r0=%v c1=%v r1=%v", c0, r0, c1, r1)
	}
}

func TestCircleCircleTouchingIsNotOverlap(t *testing.T) {
	assert.False(t, CircleCircle(V(0, 0), 1, V(2, 0), 1))
	assert.True(t, CircleCircle(V(0, 0), 1, V(1.999, 0), 1))
	assert.True(t, CircleCircle(V(3, 3), 0.5, V(3, 3), 0.5), "coincident centers overlap")
}

func TestPolygonPolygonAxisAlignedSquares(t *testing.T) {
	var k Kernel
	const side = 2.0
	tests := []struct {
		name string
		d    float64
		want bool
	}{
		{"coincident", 0, true},
		{"half overlap", 1, true},
		{"just inside", side - 0.001, true},
		{"just outside", side + 0.001, false},
		{"far apart", 10, false},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			a := square(V(0, 0), side, 0)
			b := square(V(tc.d, 0), side, 0)
			assert.Equal(t, tc.want, k.PolygonPolygon(a, b))
			assert.Equal(t, tc.want, k.PolygonPolygon(b, a), "symmetry")
		})
	}
}

func TestPolygonPolygonRotatedRegularPolygons(t *testing.T) {
	var k Kernel
	rng := rand.New(rand.NewSource(42))
	for i := 0; i < 2000; i++ {
		n := 3 + rng.Intn(8)
		m := 3 + rng.Intn(8)
		r0 := 0.5 + rng.Float64()*3
		r1 := 0.5 + rng.Float64()*3
		p := RegularPolygon(n, r0, rng.Float64()*2*math.Pi)
		q := RegularPolygon(m, r1, rng.Float64()*2*math.Pi)

		dir := FromAngle(rng.Float64() * 2 * math.Pi)

		// Circumcircles disjoint: the polygons share no point.
		far := dir.Scale(r0 + r1 + 0.01 + rng.Float64()*5)
		qFar := make([]Vec2, m)
		Transform(qFar, q, far, 0, 1)
		require.False(t, k.PolygonPolygon(p, qFar), "disjoint polygons reported overlapping (n=%d m=%d)", n, m)

		// Incircles overlap: the polygons must intersect.
		in0 := r0 * math.Cos(math.Pi/float64(n))
		in1 := r1 * math.Cos(math.Pi/float64(m))
		near := dir.Scale((in0 + in1) * 0.95 * rng.Float64())
		qNear := make([]Vec2, m)
		Transform(qNear, q, near, 0, 1)
		require.True(t, k.PolygonPolygon(p, qNear), "overlapping polygons reported disjoint (n=%d m=%d)", n, m)
	}
}

func TestCirclePolygon(t *testing.T) {
	var k Kernel
	sq := square(V(0, 0), 2, 0)
	tests := []struct {
		name   string
		center Vec2
		radius float64
		want   bool
	}{
		{"center inside", V(0.2, 0.1), 0.1, true},
		{"crossing edge", V(1.4, 0), 0.5, true},
		{"outside edge", V(1.6, 0), 0.5, false},
		{"near corner but outside", V(1.5, 1.5), 0.6, false},
		{"touching corner region", V(1.3, 1.3), 0.5, true},
		{"far", V(10, 10), 1, false},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			assert.Equal(t, tc.want, k.CirclePolygon(tc.center, tc.radius, sq))
		})
	}
}

func TestCirclePolygonCenterOnVertex(t *testing.T) {
	var k Kernel
	sq := square(V(0, 0), 2, 0)
	assert.True(t, k.CirclePolygon(V(1, 1), 0.1, sq))
}

func TestCirclePolygonMatchesSampling(t *testing.T) {
	var k Kernel
	rng := rand.New(rand.NewSource(3))
	tri := []Vec2{V(0, 0), V(4, 0), V(1, 3)}
	for i := 0; i < 2000; i++ {
		c := V(rng.Float64()*10-3, rng.Float64()*10-3)
		r := 0.1 + rng.Float64()*1.5
		got := k.CirclePolygon(c, r, tri)

		d := distToTriangle(c, tri)
		if math.Abs(d-r) < 1e-6 {
			continue
		}
		require.Equal(t, d < r || pointInConvex(c, tri), got, "center=%v r=%v", c, r)
	}
}

func distToTriangle(p Vec2, poly []Vec2) float64 {
	best := math.Inf(1)
	for i := range poly {
		a, b := poly[i], poly[(i+1)%len(poly)]
		ab := b.Sub(a)
		t := Clamp(p.Sub(a).Dot(ab)/ab.LenSq(), 0, 1)
		best = min(best, math.Sqrt(p.DistSq(a.Add(ab.Scale(t)))))
	}
	return best
}

func pointInConvex(p Vec2, poly []Vec2) bool {
	for i := range poly {
		a, b := poly[i], poly[(i+1)%len(poly)]
		if b.Sub(a).Cross(p.Sub(a)) < 0 {
			return false
		}
	}
	return true
}

func TestKernelRejectsDegenerate(t *testing.T) {
	var k Kernel
	line := []Vec2{V(0, 0), V(1, 0)}
	assert.False(t, k.PolygonPolygon(line, square(V(0, 0), 2, 0)))
	assert.False(t, k.CirclePolygon(V(0, 0), 1, line))
}
