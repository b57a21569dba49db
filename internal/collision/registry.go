package collision

import (
	"io"
	"iter"
	"slices"

	"github.com/charmbracelet/log"
)

// Registry merges the live collider collections of independent entity
// managers. It never copies or snapshots: every frame the resolver walks
// the current contents of each registered iterator.
type Registry struct {
	name    string
	entries []registration
	last    uint64
	logger  *log.Logger
}

type registration struct {
	id  uint64
	seq iter.Seq[*Collider]
}

// Handle removes a registration when disposed.
type Handle struct {
	reg      *Registry
	id       uint64
	disposed bool
}

// NewRegistry creates an empty registry. A nil logger discards output.
func NewRegistry(name string, logger *log.Logger) *Registry {
	if logger == nil {
		logger = log.New(io.Discard)
	}
	return &Registry{name: name, logger: logger}
}

// Name returns the registry's name.
func (r *Registry) Name() string {
	return r.name
}

// Register adds a live collection and returns the handle that removes it.
func (r *Registry) Register(colliders iter.Seq[*Collider]) *Handle {
	r.last++
	r.entries = append(r.entries, registration{id: r.last, seq: colliders})
	r.logger.Debug("collection registered", "registry", r.name, "handle", r.last, "collections", len(r.entries))
	return &Handle{reg: r, id: r.last}
}

// Len returns the number of live registrations.
func (r *Registry) Len() int {
	return len(r.entries)
}

// All iterates every collider of every registered collection.
func (r *Registry) All() iter.Seq[*Collider] {
	return func(yield func(*Collider) bool) {
		for _, e := range r.entries {
			for c := range e.seq {
				if !yield(c) {
					return
				}
			}
		}
	}
}

// Dispose removes the registration. Calling it again is a no-op.
func (h *Handle) Dispose() {
	if h == nil || h.disposed {
		return
	}
	h.disposed = true
	r := h.reg
	r.entries = slices.DeleteFunc(r.entries, func(e registration) bool {
		return e.id == h.id
	})
	r.logger.Debug("collection disposed", "registry", r.name, "handle", h.id, "collections", len(r.entries))
}

// Disposed reports whether Dispose has been called.
func (h *Handle) Disposed() bool {
	return h.disposed
}
