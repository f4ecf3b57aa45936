package model

import (
	"fmt"
	"sync/atomic"

	"github.com/Faultbox/crystal/internal/engine/queue"
)

// idSource allocates process-unique monotonic ids for one entity family.
// It is owned by the registry rather than being a package global so
// independent engine instances get independent id spaces.
type idSource struct {
	counter atomic.Uint64
}

func (s *idSource) next() uint64 {
	return s.counter.Add(1)
}

// Registry is the authoritative map from model id to registry entry,
// consumed by the renderer once per frame. Handles never touch the map
// directly; their lifecycle events queue up and are applied by Drain.
type Registry struct {
	refs  map[uint64]*Ref
	ids   idSource
	queue *queue.Queue[Message]
}

// NewRegistry creates an empty model registry.
func NewRegistry() *Registry {
	return &Registry{
		refs:  make(map[uint64]*Ref),
		queue: queue.New[Message](),
	}
}

// register inserts a freshly built model directly into the map and
// returns its handle. No message is involved: at construction time there
// is no prior entry to reconcile with. data.Groups is derived from the
// asset so the group-count invariant holds from the start.
func (r *Registry) register(asset *Asset, data Data) *Handle {
	id := r.ids.next()
	data.Groups = defaultGroups(len(asset.Groups))
	cell := newSharedData(data)

	r.refs[id] = &Ref{asset: asset, data: cell}

	return &Handle{
		id:    id,
		data:  cell,
		queue: r.queue,
		ids:   &r.ids,
	}
}

// Drain applies every buffered lifecycle message in FIFO order. It must
// run once per frame, before the renderer iterates the registry, so the
// map exactly matches the set of live handles.
func (r *Registry) Drain() {
	r.queue.Drain(r.apply)
}

func (r *Registry) apply(m Message) {
	switch m.kind {
	case msgDropped:
		delete(r.refs, m.id)
	case msgNew:
		old, ok := r.refs[m.oldID]
		if !ok {
			// A clone can only be produced from a live handle, so the
			// source entry must exist. Fail fast instead of rendering
			// from a corrupted registry.
			panic(fmt.Sprintf("model: clone of id %d arrived but source entry is gone", m.oldID))
		}
		r.refs[m.id] = old.withNewData(m.data)
	}
}

// Len returns the number of registered models.
func (r *Registry) Len() int { return len(r.refs) }

// Get returns the entry for id, if present.
func (r *Registry) Get(id uint64) (*Ref, bool) {
	ref, ok := r.refs[id]
	return ref, ok
}

// Each calls fn for every registered entry. Iteration order is
// unspecified.
func (r *Registry) Each(fn func(id uint64, ref *Ref)) {
	for id, ref := range r.refs {
		fn(id, ref)
	}
}

// Pending returns the number of undrained lifecycle messages. Intended
// for diagnostics.
func (r *Registry) Pending() int { return r.queue.Len() }
