package geom

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestConvexHullDropsInteriorAndCollinear(t *testing.T) {
	pts := []Vec2{
		V(0, 0), V(2, 0), V(4, 0), // collinear bottom edge
		V(4, 4), V(0, 4),
		V(1, 1), V(2, 2), V(3, 1), // interior
		V(0, 0), // duplicate
	}
	hull := ConvexHull(pts)
	require.Len(t, hull, 4)
	assert.ElementsMatch(t, []Vec2{V(0, 0), V(4, 0), V(4, 4), V(0, 4)}, hull)

	// counter-clockwise
	var area float64
	for i := range hull {
		area += hull[i].Cross(hull[(i+1)%len(hull)])
	}
	assert.Greater(t, area, 0.0)
}

func TestConvexHullDegenerate(t *testing.T) {
	assert.Len(t, ConvexHull([]Vec2{V(1, 1), V(1, 1)}), 1)
	assert.Len(t, ConvexHull(nil), 0)
}

func TestBoundingRadius(t *testing.T) {
	assert.InDelta(t, 5.0, BoundingRadius([]Vec2{V(3, 4), V(1, 0), V(-2, 2)}), 1e-12)
}

func TestTransform(t *testing.T) {
	local := []Vec2{V(1, 0)}
	dst := make([]Vec2, 1)
	Transform(dst, local, V(10, 10), math.Pi/2, 2)
	assert.InDelta(t, 10.0, dst[0].X, 1e-9)
	assert.InDelta(t, 12.0, dst[0].Y, 1e-9)
}

func TestBoxIntersects(t *testing.T) {
	a := Box{X: 0, Y: 0, W: 10, H: 10}
	tests := []struct {
		name string
		b    Box
		want bool
	}{
		{"overlap", Box{X: 5, Y: 5, W: 10, H: 10}, true},
		{"touching edge", Box{X: 10, Y: 0, W: 5, H: 5}, true},
		{"apart", Box{X: 10.1, Y: 0, W: 5, H: 5}, false},
		{"contained", Box{X: 2, Y: 2, W: 1, H: 1}, true},
		{"negative space", Box{X: -20, Y: -20, W: 5, H: 5}, false},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			assert.Equal(t, tc.want, a.Intersects(tc.b))
			assert.Equal(t, tc.want, tc.b.Intersects(a))
		})
	}
}
