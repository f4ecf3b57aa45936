// Package gui implements the handle, registry and lifecycle-message
// subsystem for 2D screen-space elements. It mirrors the model package:
// user code holds Element handles, the registry applies buffered
// lifecycle events once per frame, and the renderer draws the entries as
// textured quads sorted by z-index.
package gui

import (
	"sync"
	"sync/atomic"

	"github.com/Faultbox/crystal/internal/engine/gpu"
	"github.com/Faultbox/crystal/internal/engine/queue"
)

// Dimensions is an axis-aligned rectangle in window space. X and Y may be
// negative (partially off-screen elements).
type Dimensions struct {
	X, Y int32
	W, H uint32
}

// ElementData is the mutable state of one live GUI element.
type ElementData struct {
	Dimensions Dimensions

	// ZIndex orders elements front to back; higher draws on top. It is
	// assigned at construction and copied on clone, so a clone renders at
	// the same layer as its source until changed.
	ZIndex uint32
}

// sharedData is the cell referenced by both the handle and the registry
// entry. Same discipline as the model package: scoped locks only.
type sharedData struct {
	mu   sync.RWMutex
	data ElementData
}

func newSharedData(d ElementData) *sharedData {
	return &sharedData{data: d}
}

func (s *sharedData) read(cb func(*ElementData)) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	cb(&s.data)
}

func (s *sharedData) modify(cb func(*ElementData)) {
	s.mu.Lock()
	defer s.mu.Unlock()
	cb(&s.data)
}

func (s *sharedData) snapshot() ElementData {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.data
}

type msgKind uint8

const (
	msgNew msgKind = iota
	msgDropped
	msgSwap
)

// Message is an element lifecycle event on its way to the registry.
// msgSwap additionally carries a replacement texture from UpdateCanvas.
type Message struct {
	kind    msgKind
	oldID   uint64
	id      uint64
	data    *sharedData
	texture gpu.Texture
	upload  gpu.UploadFuture
}

// Ref is the registry entry for one live element: its texture paired with
// the same data cell the handle mutates.
type Ref struct {
	texture gpu.Texture
	upload  gpu.UploadFuture
	data    *sharedData
}

// Texture returns the element's current texture.
func (r *Ref) Texture() gpu.Texture { return r.texture }

// WaitUpload blocks until the texture upload has completed. Cheap no-op
// once resolved.
func (r *Ref) WaitUpload() {
	if r.upload != nil {
		r.upload.Wait()
		r.upload = nil
	}
}

// Read runs cb with read access to the entry's data.
func (r *Ref) Read(cb func(*ElementData)) { r.data.read(cb) }

// Snapshot returns a copy of the entry's current data.
func (r *Ref) Snapshot() ElementData { return r.data.snapshot() }

// Element is the user-facing reference to a GUI element. Clone and Close
// follow the model handle contract: changes become visible to the
// renderer on the registry's next drain, data mutations immediately.
type Element struct {
	id     uint64
	data   *sharedData
	queue  *queue.Queue[Message]
	ids    *idSource
	device gpu.Device
	closed atomic.Bool
}

// ID returns the element's current registry identity. UpdateCanvas issues
// a fresh identity, so callers should not cache this across frames.
func (e *Element) ID() uint64 { return e.id }

// Read runs cb with read-only access to the element's data.
func (e *Element) Read(cb func(*ElementData)) { e.data.read(cb) }

// Modify runs cb with exclusive access to the element's data.
func (e *Element) Modify(cb func(*ElementData)) { e.data.modify(cb) }

// Dimensions returns the current dimensions.
func (e *Element) Dimensions() Dimensions {
	var d Dimensions
	e.Read(func(ed *ElementData) { d = ed.Dimensions })
	return d
}

// MoveTo places the element's top-left corner at (x, y).
func (e *Element) MoveTo(x, y int32) {
	e.Modify(func(d *ElementData) {
		d.Dimensions.X = x
		d.Dimensions.Y = y
	})
}

// MoveBy shifts the element by (dx, dy).
func (e *Element) MoveBy(dx, dy int32) {
	e.Modify(func(d *ElementData) {
		d.Dimensions.X += dx
		d.Dimensions.Y += dy
	})
}

// Clone creates a second, independently controllable element sharing this
// element's texture. The clone keeps the source's z-index. The registry
// picks up the new entry on its next drain.
func (e *Element) Clone() *Element {
	if e.closed.Load() {
		panic("gui: Clone on closed element")
	}

	newID := e.ids.next()
	data := newSharedData(e.data.snapshot())

	e.queue.Push(Message{
		kind:  msgNew,
		oldID: e.id,
		id:    newID,
		data:  data,
	})

	return &Element{
		id:     newID,
		data:   data,
		queue:  e.queue,
		ids:    e.ids,
		device: e.device,
	}
}

// UpdateCanvas re-rasterizes the element with a new canvas description
// at its current size and swaps the resulting texture in place. The
// element keeps its data cell but is issued a fresh internal identity;
// the registry retires the old entry and inserts the new one in a single
// drain step, so exactly one entry stays live for this element.
func (e *Element) UpdateCanvas(c Canvas) error {
	if e.closed.Load() {
		panic("gui: UpdateCanvas on closed element")
	}

	dims := e.Dimensions()
	img := c.Render(dims.W, dims.H)
	tex, future, err := e.device.CreateTexture(dims.W, dims.H, img.Pix)
	if err != nil {
		return err
	}

	newID := e.ids.next()
	e.queue.Push(Message{
		kind:    msgSwap,
		oldID:   e.id,
		id:      newID,
		data:    e.data,
		texture: tex,
		upload:  future,
	})
	e.id = newID
	return nil
}

// Close retires the element. It disappears from the screen on the next
// drain. Calling Close again is a no-op.
func (e *Element) Close() {
	if !e.closed.CompareAndSwap(false, true) {
		return
	}
	e.queue.Push(Message{kind: msgDropped, id: e.id})
}
