package collision

import (
	"io"
	"slices"

	"github.com/charmbracelet/log"

	"github.com/vovakirdan/tui-arena/internal/geom"
	"github.com/vovakirdan/tui-arena/internal/spatial"
)

// suppressionEpsilon absorbs float drift when timers are decayed by a
// fixed step that does not divide the window exactly.
const suppressionEpsilon = 1e-9

// Options configures a Resolver.
type Options struct {
	Extent       geom.Box // play-field size; entities outside it still collide
	Fanout       int
	MaxDepth     int
	FriendlyFire bool // when false, colliders sharing an owner never collide
	Logger       *log.Logger
}

// Stats are the counters of the most recent frame.
type Stats struct {
	Frame         uint64
	Indexed       int // solid colliders inserted into the index
	Sensors       int // active sensors queried
	Candidates    int // broad-phase results, self excluded
	Tests         int // narrow-phase tests run
	Dispatches    int // OnCollide calls
	Notifications int // sensor callbacks
	Suppressed    int // pairs in the suppression table after the frame
	Nodes         int // quadtree nodes
}

type pairKey struct {
	target, other ID
}

// Resolver owns the per-frame collision cycle: decay suppression timers,
// rebuild the index, run broad and narrow phases, dispatch reactions.
type Resolver struct {
	opts       Options
	logger     *log.Logger
	registries []*Registry
	index      *spatial.Quadtree
	kernel     geom.Kernel

	solids     []*Collider
	sensors    []*Collider
	candidates []int
	pairs      map[pairKey]float64
	peakPairs  int
	stats      Stats
}

// NewResolver creates a resolver over the given registries.
func NewResolver(opts Options, registries ...*Registry) *Resolver {
	logger := opts.Logger
	if logger == nil {
		logger = log.New(io.Discard)
	}
	return &Resolver{
		opts:       opts,
		logger:     logger,
		registries: registries,
		index:      spatial.New(opts.Extent, opts.Fanout, opts.MaxDepth),
		pairs:      make(map[pairKey]float64),
	}
}

// Attach adds a registry to the world the resolver sees.
func (r *Resolver) Attach(reg *Registry) {
	if slices.Contains(r.registries, reg) {
		return
	}
	r.registries = append(r.registries, reg)
	r.logger.Debug("registry attached", "registry", reg.Name())
}

// Detach removes a registry.
func (r *Resolver) Detach(reg *Registry) {
	r.registries = slices.DeleteFunc(r.registries, func(x *Registry) bool { return x == reg })
	r.logger.Debug("registry detached", "registry", reg.Name())
}

// Index exposes the spatial index for read-only inspection (debug overlays).
func (r *Resolver) Index() *spatial.Quadtree {
	return r.index
}

// Stats returns the counters of the last Update.
func (r *Resolver) Stats() Stats {
	return r.stats
}

// Suppressed returns the remaining suppression of the ordered pair
// (target, other), or 0 when the pair is free to trigger.
func (r *Resolver) Suppressed(target, other *Collider) float64 {
	return r.pairs[pairKey{target.id, other.id}]
}

// Update runs one frame. dt is the elapsed simulated time in seconds.
func (r *Resolver) Update(dt float64) {
	r.stats = Stats{Frame: r.stats.Frame + 1}
	r.decay(dt)
	r.rebuild()
	r.resolveSolids()
	r.resolveSensors()

	r.stats.Suppressed = len(r.pairs)
	r.stats.Nodes = r.index.NodeCount()
	if len(r.pairs) > r.peakPairs {
		r.peakPairs = len(r.pairs)
		r.logger.Debug("suppression table grew", "pairs", r.peakPairs, "frame", r.stats.Frame)
	}
}

func (r *Resolver) decay(dt float64) {
	for k, left := range r.pairs {
		left -= dt
		if left <= suppressionEpsilon {
			delete(r.pairs, k)
			continue
		}
		r.pairs[k] = left
	}
}

func (r *Resolver) rebuild() {
	clear(r.solids)
	clear(r.sensors)
	r.solids = r.solids[:0]
	r.sensors = r.sensors[:0]
	r.index.Clear()

	for _, reg := range r.registries {
		for c := range reg.All() {
			if !c.Active() {
				continue
			}
			if c.IsSensor() {
				r.sensors = append(r.sensors, c)
				continue
			}
			r.solids = append(r.solids, c)
			r.index.Insert(c.Box(), len(r.solids)-1)
		}
	}
	r.stats.Indexed = len(r.solids)
	r.stats.Sensors = len(r.sensors)
}

func (r *Resolver) resolveSolids() {
	for _, target := range r.solids {
		// An earlier reaction may have disposed the entity.
		if !target.Active() {
			continue
		}
		r.candidates = r.index.Query(target.Box(), r.candidates[:0])
		for _, j := range r.candidates {
			other := r.solids[j]
			if other == target {
				continue
			}
			r.stats.Candidates++
			if !other.Active() || r.exempt(target, other) {
				continue
			}
			key := pairKey{target.id, other.id}
			if _, held := r.pairs[key]; held {
				continue
			}
			r.stats.Tests++
			if !r.overlap(target, other) {
				continue
			}
			r.stats.Dispatches++
			if d := target.OnCollide(other); d > 0 {
				r.pairs[key] = d
			}
			if !target.Active() {
				break
			}
		}
	}
}

func (r *Resolver) resolveSensors() {
	for _, s := range r.sensors {
		if !s.Active() {
			continue
		}
		r.candidates = r.index.Query(s.Box(), r.candidates[:0])
		for _, j := range r.candidates {
			other := r.solids[j]
			r.stats.Candidates++
			if !other.Active() || sameEntity(s, other) || r.exempt(s, other) {
				continue
			}
			if s.kind == KindProximity && !s.considers(other) {
				continue
			}
			r.stats.Tests++
			if !r.overlap(s, other) {
				continue
			}
			r.stats.Notifications++
			s.fire(other)
			if !s.Active() {
				break
			}
		}
	}
}

func sameEntity(a, b *Collider) bool {
	return a.entity != nil && a.entity == b.entity
}

func (r *Resolver) exempt(a, b *Collider) bool {
	if sameEntity(a, b) {
		return true
	}
	return Related(a.entity, b.entity, r.opts.FriendlyFire)
}

// overlap runs the exact test for the shape pair.
func (r *Resolver) overlap(a, b *Collider) bool {
	aPoly := a.kind == KindPolygon
	bPoly := b.kind == KindPolygon
	switch {
	case !aPoly && !bPoly:
		return geom.CircleCircle(a.Center(), a.Radius(), b.Center(), b.Radius())
	case aPoly && bPoly:
		return r.kernel.PolygonPolygon(a.Points(), b.Points())
	case aPoly:
		a, b = b, a
	}
	// a is round, b is a polygon. Reject on bounding circles first.
	center, radius := a.Center(), a.Radius()
	if !geom.CircleCircle(center, radius, b.Center(), b.Radius()) {
		return false
	}
	return r.kernel.CirclePolygon(center, radius, b.Points())
}
