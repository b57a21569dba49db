package geom

import "fmt"

// MaxVertices is the largest polygon the kernel accepts.
const MaxVertices = 32

// CircleCircle reports whether two circles overlap.
// Circles that exactly touch do not overlap.
func CircleCircle(c0 Vec2, r0 float64, c1 Vec2, r1 float64) bool {
	rs := r0 + r1
	return c0.DistSq(c1) < rs*rs
}

// Kernel runs separating axis tests using a fixed scratch buffer of axes.
// A Kernel is not reentrant: it must not be shared between goroutines or
// used from inside one of its own calls. The zero value is ready to use.
type Kernel struct {
	axes [MaxVertices + 1]Vec2
}

// PolygonPolygon reports whether convex polygons p and q overlap.
// Vertices may be given in either winding order.
func (k *Kernel) PolygonPolygon(p, q []Vec2) bool {
	if len(p) < 3 || len(q) < 3 {
		return false
	}
	n := k.edgeNormals(p)
	if k.separated(n, p, q) {
		return false
	}
	n = k.edgeNormals(q)
	return !k.separated(n, p, q)
}

// CirclePolygon reports whether a circle overlaps convex polygon p.
// The candidate axes are the polygon's edge normals plus the axis from the
// circle center to the nearest vertex.
func (k *Kernel) CirclePolygon(center Vec2, radius float64, p []Vec2) bool {
	if len(p) < 3 {
		return false
	}
	n := k.edgeNormals(p)

	nearest := p[0]
	best := center.DistSq(nearest)
	for _, v := range p[1:] {
		if d := center.DistSq(v); d < best {
			best = d
			nearest = v
		}
	}
	k.axes[n] = nearest.Sub(center)
	n++

	for _, axis := range k.axes[:n] {
		if axis.IsZero() {
			continue
		}
		c := center.Dot(axis)
		reach := radius * axis.Len()
		pMin, pMax := project(p, axis)
		if !intervalsOverlap(c-reach, c+reach, pMin, pMax) {
			return false
		}
	}
	return true
}

// edgeNormals fills the scratch buffer with one normal per edge of p and
// returns the number written.
func (k *Kernel) edgeNormals(p []Vec2) int {
	if len(p) > MaxVertices {
		panic(fmt.Sprintf("geom: polygon has %d vertices, limit is %d", len(p), MaxVertices))
	}
	for i := range p {
		j := i + 1
		if j == len(p) {
			j = 0
		}
		k.axes[i] = p[j].Sub(p[i]).Perp()
	}
	return len(p)
}

func (k *Kernel) separated(n int, p, q []Vec2) bool {
	for _, axis := range k.axes[:n] {
		if axis.IsZero() {
			continue
		}
		pMin, pMax := project(p, axis)
		qMin, qMax := project(q, axis)
		if !intervalsOverlap(pMin, pMax, qMin, qMax) {
			return true
		}
	}
	return false
}

func project(p []Vec2, axis Vec2) (lo, hi float64) {
	lo = p[0].Dot(axis)
	hi = lo
	for _, v := range p[1:] {
		d := v.Dot(axis)
		lo = min(lo, d)
		hi = max(hi, d)
	}
	return lo, hi
}

// intervalsOverlap is inclusive: touching intervals overlap.
func intervalsOverlap(min1, max1, min2, max2 float64) bool {
	return max1 >= min2 && max2 >= min1
}
