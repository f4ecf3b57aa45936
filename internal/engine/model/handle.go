package model

import (
	"sync/atomic"

	"github.com/Faultbox/crystal/internal/engine/queue"
	"github.com/Faultbox/crystal/pkg/math"
)

type msgKind uint8

const (
	msgNew msgKind = iota
	msgDropped
)

// Message is a handle lifecycle event on its way to the registry. It only
// lives in the queue between emission and the next drain.
type Message struct {
	kind  msgKind
	oldID uint64
	id    uint64
	data  *sharedData
}

// Ref is the registry entry for one live model: the shared asset paired
// with the same data cell the handle mutates. The renderer iterates Refs.
type Ref struct {
	asset *Asset
	data  *sharedData
}

// Asset returns the shared immutable asset.
func (r *Ref) Asset() *Asset { return r.asset }

// Read runs cb with read access to the entry's data.
func (r *Ref) Read(cb func(*Data)) { r.data.read(cb) }

// Snapshot returns a deep copy of the entry's current data.
func (r *Ref) Snapshot() Data { return r.data.snapshot() }

// withNewData pairs this entry's asset with a different data cell. Used
// when a clone message is applied.
func (r *Ref) withNewData(data *sharedData) *Ref {
	return &Ref{asset: r.asset, data: data}
}

// Handle is the user-facing reference to a model in the world.
//
// Cloning the handle makes a second model appear on the next drain; both
// models are controlled independently but share the same GPU asset.
// Closing the handle makes the model disappear on the next drain. Every
// handle must be closed exactly once when no longer needed; Close is safe
// to call more than once.
type Handle struct {
	id     uint64
	data   *sharedData
	queue  *queue.Queue[Message]
	ids    *idSource
	closed atomic.Bool
}

// ID returns the handle's registry identity.
func (h *Handle) ID() uint64 { return h.id }

// Read runs cb with read-only access to the model's data. The result of
// the callback can be captured by closure.
func (h *Handle) Read(cb func(*Data)) {
	h.data.read(cb)
}

// Modify runs cb with exclusive access to the model's data. This is the
// only mutation path; the lock is released on every exit, including a
// panic inside cb.
func (h *Handle) Modify(cb func(*Data)) {
	h.data.modify(cb)
}

// Position returns the current position. Short for reading d.Position.
func (h *Handle) Position() math.Vec3 {
	var p math.Vec3
	h.Read(func(d *Data) { p = d.Position })
	return p
}

// Rotation returns the current rotation.
func (h *Handle) Rotation() math.Euler {
	var r math.Euler
	h.Read(func(d *Data) { r = d.Rotation })
	return r
}

// Scale returns the current scale.
func (h *Handle) Scale() float32 {
	var s float32
	h.Read(func(d *Data) { s = d.Scale })
	return s
}

// Translate moves the model by delta.
func (h *Handle) Translate(delta math.Vec3) {
	h.Modify(func(d *Data) { d.Position = d.Position.Add(delta) })
}

// RotateBy adds delta to the current rotation.
func (h *Handle) RotateBy(delta math.Euler) {
	h.Modify(func(d *Data) { d.Rotation = d.Rotation.Add(delta) })
}

// RotateTo sets the rotation.
func (h *Handle) RotateTo(rotation math.Euler) {
	h.Modify(func(d *Data) { d.Rotation = rotation })
}

// Clone creates a second, independently controllable model sharing this
// handle's asset. The new model's data starts as a snapshot of the
// current values. The registry picks up the new entry on its next drain.
func (h *Handle) Clone() *Handle {
	if h.closed.Load() {
		panic("model: Clone on closed handle")
	}

	newID := h.ids.next()
	data := newSharedData(h.data.snapshot())

	h.queue.Push(Message{
		kind:  msgNew,
		oldID: h.id,
		id:    newID,
		data:  data,
	})

	return &Handle{
		id:    newID,
		data:  data,
		queue: h.queue,
		ids:   h.ids,
	}
}

// Close retires the model. It disappears from the world on the next
// drain. Calling Close again is a no-op.
func (h *Handle) Close() {
	if !h.closed.CompareAndSwap(false, true) {
		return
	}
	h.queue.Push(Message{kind: msgDropped, id: h.id})
}
