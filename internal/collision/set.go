package collision

import (
	"iter"
	"slices"
)

// Set is a live, slice-backed collection of colliders owned by an entity
// manager. Registering Set.All hands the registry a view that always reads
// the current contents.
type Set struct {
	items []*Collider
}

// Add appends c.
func (s *Set) Add(c *Collider) {
	s.items = append(s.items, c)
}

// Remove deletes c, keeping order. It reports whether c was present.
func (s *Set) Remove(c *Collider) bool {
	i := slices.Index(s.items, c)
	if i < 0 {
		return false
	}
	s.items = slices.Delete(s.items, i, i+1)
	return true
}

// RemoveFunc deletes every collider for which drop returns true. Managers
// call it from their own cleanup pass, never during dispatch.
func (s *Set) RemoveFunc(drop func(*Collider) bool) {
	s.items = slices.DeleteFunc(s.items, drop)
}

// Len returns the number of colliders.
func (s *Set) Len() int {
	return len(s.items)
}

// Clear removes all colliders, keeping capacity.
func (s *Set) Clear() {
	clear(s.items)
	s.items = s.items[:0]
}

// All returns an iterator over the current contents.
func (s *Set) All() iter.Seq[*Collider] {
	return func(yield func(*Collider) bool) {
		for _, c := range s.items {
			if !yield(c) {
				return
			}
		}
	}
}
