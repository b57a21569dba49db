package collision

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func collect(r *Registry) []*Collider {
	var out []*Collider
	for c := range r.All() {
		out = append(out, c)
	}
	return out
}

func TestRegistryDisposeIsIdempotent(t *testing.T) {
	reg := NewRegistry("test", nil)
	var a, b Set
	a.Add(NewCircle(newFake("a", 0, 0, 1), nil))
	b.Add(NewCircle(newFake("b", 0, 0, 1), nil))

	ha := reg.Register(a.All())
	reg.Register(b.All())
	assert.Equal(t, 2, reg.Len())

	assert.NotPanics(t, func() {
		ha.Dispose()
		ha.Dispose()
	})
	assert.True(t, ha.Disposed())
	assert.Equal(t, 1, reg.Len(), "second dispose must not remove another registration")
	assert.Len(t, collect(reg), 1)

	var nilHandle *Handle
	assert.NotPanics(t, nilHandle.Dispose)
}

func TestRegistryIsLiveView(t *testing.T) {
	reg := NewRegistry("test", nil)
	var s Set
	reg.Register(s.All())
	assert.Empty(t, collect(reg))

	c := NewCircle(newFake("a", 0, 0, 1), nil)
	s.Add(c)
	assert.Equal(t, []*Collider{c}, collect(reg))

	s.RemoveFunc(func(x *Collider) bool { return x == c })
	assert.Empty(t, collect(reg))
}

func TestSet(t *testing.T) {
	var s Set
	a := NewCircle(newFake("a", 0, 0, 1), nil)
	b := NewCircle(newFake("b", 0, 0, 1), nil)
	s.Add(a)
	s.Add(b)
	assert.Equal(t, 2, s.Len())
	assert.True(t, s.Remove(a))
	assert.False(t, s.Remove(a))
	s.Clear()
	assert.Zero(t, s.Len())
}
