package gui

import (
	"fmt"
	"sort"
	"sync/atomic"

	"github.com/Faultbox/crystal/internal/engine/gpu"
	"github.com/Faultbox/crystal/internal/engine/queue"
)

// idSource allocates monotonic ids for the GUI element family,
// independent of the model id space.
type idSource struct {
	counter atomic.Uint64
}

func (s *idSource) next() uint64 {
	return s.counter.Add(1)
}

// Registry is the authoritative map from element id to registry entry,
// consumed by the renderer once per frame. It also owns the z-index
// counter, so later-built elements draw on top by default.
type Registry struct {
	refs  map[uint64]*Ref
	ids   idSource
	zs    atomic.Uint32
	queue *queue.Queue[Message]
}

// NewRegistry creates an empty GUI registry.
func NewRegistry() *Registry {
	return &Registry{
		refs:  make(map[uint64]*Ref),
		queue: queue.New[Message](),
	}
}

// register inserts a freshly built element directly into the map and
// returns its handle. Mirrors the model registry: construction needs no
// message.
func (r *Registry) register(ref *Ref, device gpu.Device) *Element {
	id := r.ids.next()
	r.refs[id] = ref

	return &Element{
		id:     id,
		data:   ref.data,
		queue:  r.queue,
		ids:    &r.ids,
		device: device,
	}
}

// nextZIndex allocates the z-layer for a newly built element.
func (r *Registry) nextZIndex() uint32 {
	return r.zs.Add(1)
}

// Drain applies every buffered lifecycle message in FIFO order. Must run
// once per frame before the renderer reads the registry.
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
			panic(fmt.Sprintf("gui: clone of id %d arrived but source entry is gone", m.oldID))
		}
		r.refs[m.id] = &Ref{texture: old.texture, upload: old.upload, data: m.data}
	case msgSwap:
		old, ok := r.refs[m.oldID]
		if !ok {
			panic(fmt.Sprintf("gui: canvas update for id %d arrived but entry is gone", m.oldID))
		}
		if old.texture != nil {
			old.texture.Destroy()
		}
		delete(r.refs, m.oldID)
		r.refs[m.id] = &Ref{texture: m.texture, upload: m.upload, data: m.data}
	}
}

// Len returns the number of registered elements.
func (r *Registry) Len() int { return len(r.refs) }

// Get returns the entry for id, if present.
func (r *Registry) Get(id uint64) (*Ref, bool) {
	ref, ok := r.refs[id]
	return ref, ok
}

// Each calls fn for every registered entry. Iteration order is
// unspecified; use Sorted for drawing.
func (r *Registry) Each(fn func(id uint64, ref *Ref)) {
	for id, ref := range r.refs {
		fn(id, ref)
	}
}

// Sorted returns the entries ordered back to front: ascending z-index,
// ties broken by id so the order is stable across frames.
func (r *Registry) Sorted() []*Ref {
	type entry struct {
		id  uint64
		z   uint32
		ref *Ref
	}
	entries := make([]entry, 0, len(r.refs))
	for id, ref := range r.refs {
		entries = append(entries, entry{id: id, z: ref.Snapshot().ZIndex, ref: ref})
	}
	sort.Slice(entries, func(i, j int) bool {
		if entries[i].z != entries[j].z {
			return entries[i].z < entries[j].z
		}
		return entries[i].id < entries[j].id
	})

	out := make([]*Ref, len(entries))
	for i, e := range entries {
		out[i] = e.ref
	}
	return out
}

// Pending returns the number of undrained lifecycle messages.
func (r *Registry) Pending() int { return r.queue.Len() }
