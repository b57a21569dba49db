package geom

import (
	"math"
	"slices"
)

// ConvexHull returns the convex hull of points in counter-clockwise order,
// without collinear vertices. The input slice is not modified.
func ConvexHull(points []Vec2) []Vec2 {
	pts := slices.Clone(points)
	slices.SortFunc(pts, func(a, b Vec2) int {
		if a.X != b.X {
			if a.X < b.X {
				return -1
			}
			return 1
		}
		switch {
		case a.Y < b.Y:
			return -1
		case a.Y > b.Y:
			return 1
		}
		return 0
	})
	pts = slices.Compact(pts)
	if len(pts) < 3 {
		return pts
	}

	hull := make([]Vec2, 0, 2*len(pts))
	// lower
	for _, p := range pts {
		for len(hull) >= 2 && turn(hull[len(hull)-2], hull[len(hull)-1], p) <= 0 {
			hull = hull[:len(hull)-1]
		}
		hull = append(hull, p)
	}
	// upper
	lower := len(hull) + 1
	for i := len(pts) - 2; i >= 0; i-- {
		p := pts[i]
		for len(hull) >= lower && turn(hull[len(hull)-2], hull[len(hull)-1], p) <= 0 {
			hull = hull[:len(hull)-1]
		}
		hull = append(hull, p)
	}
	return hull[:len(hull)-1]
}

func turn(a, b, c Vec2) float64 {
	return b.Sub(a).Cross(c.Sub(a))
}

// BoundingRadius returns the largest distance from the origin to any point.
func BoundingRadius(points []Vec2) float64 {
	var r2 float64
	for _, p := range points {
		r2 = max(r2, p.LenSq())
	}
	return math.Sqrt(r2)
}

// RegularPolygon returns n vertices of a regular polygon centered on the
// origin with the given circumradius, starting at angle phase.
func RegularPolygon(n int, radius, phase float64) []Vec2 {
	out := make([]Vec2, n)
	for i := range out {
		a := phase + 2*math.Pi*float64(i)/float64(n)
		out[i] = FromAngle(a).Scale(radius)
	}
	return out
}

// Transform writes local points into dst after scaling, rotating and
// translating them. dst must be at least as long as local.
func Transform(dst, local []Vec2, pos Vec2, rotation, scale float64) {
	sin, cos := math.Sincos(rotation)
	for i, p := range local {
		x := p.X * scale
		y := p.Y * scale
		dst[i] = Vec2{X: pos.X + x*cos - y*sin, Y: pos.Y + x*sin + y*cos}
	}
}
