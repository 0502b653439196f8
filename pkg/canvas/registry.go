package canvas

import (
	"github.com/matzehuels/trustpane/pkg/errors"
	"github.com/matzehuels/trustpane/pkg/geom"
	"github.com/matzehuels/trustpane/pkg/observability"
)

// DefaultCapacity is the number of canvases a shell registry holds.
const DefaultCapacity = 32

// Registry maps canvas identifiers to canvases in a fixed-capacity arena.
// The zero value is not usable; create one with NewRegistry.
type Registry struct {
	slots []Canvas
}

// NewRegistry allocates a registry holding at most capacity canvases.
// A non-positive capacity falls back to DefaultCapacity.
func NewRegistry(capacity int) *Registry {
	if capacity <= 0 {
		capacity = DefaultCapacity
	}
	return &Registry{slots: make([]Canvas, 0, capacity)}
}

// Len returns the number of registered canvases.
func (r *Registry) Len() int { return len(r.slots) }

// Cap returns the fixed maximum number of canvases.
func (r *Registry) Cap() int { return cap(r.slots) }

// Free returns how many more canvases fit.
func (r *Registry) Free() int { return cap(r.slots) - len(r.slots) }

// Insert registers c under its own identifier.
func (r *Registry) Insert(c Canvas) error {
	return r.InsertAll(c)
}

// InsertAll registers every canvas or none of them. It fails with
// CAPACITY_EXCEEDED when the batch does not fit and with INVALID_INPUT when
// an identifier is already present or repeated within the batch.
func (r *Registry) InsertAll(cs ...Canvas) error {
	if len(cs) > r.Free() {
		observability.Registry().OnCapacityExceeded(len(cs), r.Cap())
		return errors.New(errors.ErrCodeCapacityExceeded,
			"registry holds %d of %d canvases, cannot add %d", r.Len(), r.Cap(), len(cs))
	}
	for i, c := range cs {
		if c.id == NilID {
			return errors.New(errors.ErrCodeInvalidInput, "canvas has no identifier")
		}
		if r.index(c.id) >= 0 {
			return errors.New(errors.ErrCodeInvalidInput, "canvas %s already registered", c.id.Short())
		}
		for _, prev := range cs[:i] {
			if prev.id == c.id {
				return errors.New(errors.ErrCodeInvalidInput, "canvas %s repeated in batch", c.id.Short())
			}
		}
	}
	r.slots = append(r.slots, cs...)
	observability.Registry().OnInsert(len(cs), r.Len())
	return nil
}

// Get returns a copy of the canvas registered under id. A NOT_FOUND error
// means an internally generated identifier went missing, which callers
// should treat as fatal.
func (r *Registry) Get(id ID) (Canvas, error) {
	i := r.index(id)
	if i < 0 {
		return Canvas{}, notFound(id)
	}
	return r.slots[i], nil
}

// SetClip replaces the clip rectangle of the canvas registered under id.
func (r *Registry) SetClip(id ID, clip geom.Rectangle) error {
	i := r.index(id)
	if i < 0 {
		return notFound(id)
	}
	r.slots[i].clip = clip
	return nil
}

// Has reports whether id is registered.
func (r *Registry) Has(id ID) bool { return r.index(id) >= 0 }

// IDs returns all registered identifiers in insertion order.
func (r *Registry) IDs() []ID {
	ids := make([]ID, len(r.slots))
	for i, c := range r.slots {
		ids[i] = c.id
	}
	return ids
}

// Snapshot returns a copy of every registered canvas in insertion order.
func (r *Registry) Snapshot() []Canvas {
	out := make([]Canvas, len(r.slots))
	copy(out, r.slots)
	return out
}

// CheckDisjoint verifies that the clip rectangles of the given canvases are
// pairwise non-overlapping.
func (r *Registry) CheckDisjoint(ids ...ID) error {
	cs := make([]Canvas, 0, len(ids))
	for _, id := range ids {
		c, err := r.Get(id)
		if err != nil {
			return err
		}
		cs = append(cs, c)
	}
	for i := range cs {
		for j := i + 1; j < len(cs); j++ {
			if cs[i].clip.Overlaps(cs[j].clip) {
				return errors.New(errors.ErrCodeInternal, "canvas %s %v overlaps canvas %s %v in %v",
					cs[i].id.Short(), cs[i].clip, cs[j].id.Short(), cs[j].clip, cs[i].clip.Intersect(cs[j].clip))
			}
		}
	}
	return nil
}

// index scans the arena; capacities are small enough that a linear probe
// beats hashing.
func (r *Registry) index(id ID) int {
	for i := range r.slots {
		if r.slots[i].id == id {
			return i
		}
	}
	return -1
}

func notFound(id ID) error {
	return errors.New(errors.ErrCodeNotFound, "canvas %s not in registry", id.Short())
}
