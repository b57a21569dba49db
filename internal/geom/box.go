package geom

// Box is an axis-aligned bounding box on the ground plane.
// X, Y is the minimum corner.
type Box struct {
	X, Y float64
	W, H float64
}

// BoxAround returns the square box enclosing a circle.
func BoxAround(center Vec2, radius float64) Box {
	return Box{X: center.X - radius, Y: center.Y - radius, W: radius * 2, H: radius * 2}
}

// BoxOf returns the tightest box enclosing the given points.
// An empty slice yields the zero box.
func BoxOf(points []Vec2) Box {
	if len(points) == 0 {
		return Box{}
	}
	minX, minY := points[0].X, points[0].Y
	maxX, maxY := minX, minY
	for _, p := range points[1:] {
		minX = min(minX, p.X)
		minY = min(minY, p.Y)
		maxX = max(maxX, p.X)
		maxY = max(maxY, p.Y)
	}
	return Box{X: minX, Y: minY, W: maxX - minX, H: maxY - minY}
}

// Right returns the maximum x coordinate.
func (b Box) Right() float64 {
	return b.X + b.W
}

// Bottom returns the maximum y coordinate.
func (b Box) Bottom() float64 {
	return b.Y + b.H
}

// Center returns the center of the box.
func (b Box) Center() Vec2 {
	return Vec2{X: b.X + b.W/2, Y: b.Y + b.H/2}
}

// Intersects reports whether the boxes overlap. Touching edges count as
// overlap so that the broad phase never rejects a pair the narrow phase
// could accept.
func (b Box) Intersects(o Box) bool {
	return b.X <= o.Right() && o.X <= b.Right() &&
		b.Y <= o.Bottom() && o.Y <= b.Bottom()
}

// Contains reports whether o lies entirely inside b.
func (b Box) Contains(o Box) bool {
	return o.X >= b.X && o.Right() <= b.Right() &&
		o.Y >= b.Y && o.Bottom() <= b.Bottom()
}

// ContainsPoint reports whether p lies inside b, edges inclusive.
func (b Box) ContainsPoint(p Vec2) bool {
	return p.X >= b.X && p.X <= b.Right() && p.Y >= b.Y && p.Y <= b.Bottom()
}
