package collision

import (
	"errors"
	"fmt"
	"slices"

	"github.com/vovakirdan/tui-arena/internal/geom"
)

// Shape authoring errors. They indicate broken entity data and are meant
// to be fatal at load time.
var (
	ErrMissingNode     = errors.New("collision: mesh node not found")
	ErrBadIndex        = errors.New("collision: mesh index out of range")
	ErrDegenerate      = errors.New("collision: polygon has fewer than 3 hull vertices")
	ErrTooManyVertices = errors.New("collision: polygon exceeds vertex limit")
	ErrNoEntity        = errors.New("collision: polygon collider needs an entity")
)

// MeshCollider declares a polygon collider derived from a model: the named
// node's points, reduced to those listed in Indices.
type MeshCollider struct {
	Node    string
	Indices []int
}

// Meta is the per-entity collider declaration.
type Meta struct {
	Mesh *MeshCollider
}

// Model looks up local-space point sets by node name.
type Model interface {
	Node(name string) ([]geom.Vec2, bool)
}

// Nodes is a Model backed by a map.
type Nodes map[string][]geom.Vec2

// Node implements Model.
func (n Nodes) Node(name string) ([]geom.Vec2, bool) {
	pts, ok := n[name]
	return pts, ok
}

type transform struct {
	pos      geom.Vec2
	rotation float64
	scale    float64
}

type polygon struct {
	local  []geom.Vec2
	world  []geom.Vec2
	radius float64
	box    geom.Box
	last   transform
	dirty  bool
}

// refresh recomputes world points only when the entity transform changed
// since the last read or the polygon was invalidated.
func (p *polygon) refresh(e Entity) {
	tr := transform{pos: e.Position(), rotation: e.Rotation(), scale: e.Scale()}
	if !p.dirty && tr == p.last {
		return
	}
	geom.Transform(p.world, p.local, tr.pos, tr.rotation, tr.scale)
	p.box = geom.BoxOf(p.world)
	p.last = tr
	p.dirty = false
}

// NewPolygon returns a polygon collider over the convex hull of local.
func NewPolygon(e Entity, local []geom.Vec2, react Reaction) (*Collider, error) {
	if e == nil {
		return nil, ErrNoEntity
	}
	hull := geom.ConvexHull(local)
	if len(hull) < 3 {
		return nil, ErrDegenerate
	}
	if len(hull) > geom.MaxVertices {
		return nil, fmt.Errorf("%w: %d > %d", ErrTooManyVertices, len(hull), geom.MaxVertices)
	}
	return &Collider{
		id:        nextID(),
		kind:      KindPolygon,
		entity:    e,
		onCollide: react,
		poly: &polygon{
			local:  hull,
			world:  make([]geom.Vec2, len(hull)),
			radius: geom.BoundingRadius(hull),
			dirty:  true,
		},
	}, nil
}

// MeshPoints resolves a mesh declaration against a model.
func MeshPoints(model Model, mesh MeshCollider) ([]geom.Vec2, error) {
	if model == nil {
		return nil, fmt.Errorf("%w: %q (no model)", ErrMissingNode, mesh.Node)
	}
	pts, ok := model.Node(mesh.Node)
	if !ok {
		return nil, fmt.Errorf("%w: %q", ErrMissingNode, mesh.Node)
	}
	if len(mesh.Indices) == 0 {
		return slices.Clone(pts), nil
	}
	out := make([]geom.Vec2, 0, len(mesh.Indices))
	for _, i := range mesh.Indices {
		if i < 0 || i >= len(pts) {
			return nil, fmt.Errorf("%w: node %q index %d (len %d)", ErrBadIndex, mesh.Node, i, len(pts))
		}
		out = append(out, pts[i])
	}
	return out, nil
}

// FromEntity builds the collider an entity declares: a polygon when meta
// names a mesh collider, otherwise a circle sized from the entity.
func FromEntity(e Entity, meta Meta, model Model, react Reaction) (*Collider, error) {
	if meta.Mesh == nil {
		return NewCircle(e, react), nil
	}
	pts, err := MeshPoints(model, *meta.Mesh)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", e.DisplayName(), err)
	}
	c, err := NewPolygon(e, pts, react)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", e.DisplayName(), err)
	}
	return c, nil
}
