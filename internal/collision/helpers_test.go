package collision

import "github.com/vovakirdan/tui-arena/internal/geom"

type fakeEntity struct {
	name      string
	typ       EntityType
	inactive  bool
	size      float64
	mass      float64
	damage    Damage
	pos       geom.Vec2
	elevation float64
	rotation  float64
	scale     float64
	vel       geom.Vec2
	owner     *fakeEntity
}

func newFake(name string, x, y, size float64) *fakeEntity {
	return &fakeEntity{name: name, typ: Tank, size: size, mass: 1, pos: geom.V(x, y), scale: 1}
}

func (f *fakeEntity) DisplayName() string { return f.name }
func (f *fakeEntity) Type() EntityType    { return f.typ }
func (f *fakeEntity) Active() bool        { return !f.inactive }
func (f *fakeEntity) Size() float64       { return f.size }
func (f *fakeEntity) Mass() float64       { return f.mass }
func (f *fakeEntity) Damage() Damage      { return f.damage }
func (f *fakeEntity) Position() geom.Vec2 { return f.pos }
func (f *fakeEntity) Elevation() float64  { return f.elevation }
func (f *fakeEntity) Rotation() float64   { return f.rotation }
func (f *fakeEntity) Scale() float64      { return f.scale }
func (f *fakeEntity) Velocity() geom.Vec2 { return f.vel }
func (f *fakeEntity) Attached() bool      { return false }
func (f *fakeEntity) Impenetrable() bool  { return f.typ.Impenetrable() }
func (f *fakeEntity) Owner() Entity {
	if f.owner == nil {
		return nil
	}
	return f.owner
}

// hits counts reactions per ordered pair of display names.
type hits map[[2]string]int

func (h hits) reaction(window float64) Reaction {
	return func(self, other *Collider) float64 {
		h[[2]string{self.Entity().DisplayName(), other.Entity().DisplayName()}]++
		return window
	}
}

var testExtent = geom.Box{X: 0, Y: 0, W: 100, H: 100}

func newWorld(colliders ...*Collider) (*Resolver, *Set, *Registry) {
	reg := NewRegistry("test", nil)
	set := &Set{}
	for _, c := range colliders {
		set.Add(c)
	}
	reg.Register(set.All())
	return NewResolver(Options{Extent: testExtent, Fanout: 4, MaxDepth: 6}, reg), set, reg
}
