// Package model implements the handle, registry and lifecycle-message
// subsystem for 3D models. User code holds lightweight handles, mutates
// their transform data at any point in the update step, and clones or
// closes them freely; the registry applies all buffered lifecycle events
// once per frame before the renderer reads it.
package model

import (
	"sync"

	"github.com/Faultbox/crystal/pkg/math"
)

// Data is the mutable state of one live model handle: where the model sits
// in the world and how its sub-parts are posed. Every handle (and its
// registry entry) shares one Data cell; mutation goes through
// Handle.Modify only.
type Data struct {
	// Position is the current position in the world.
	Position math.Vec3

	// Rotation of the model, in euler angles.
	Rotation math.Euler

	// Scale is the uniform scale factor.
	Scale float32

	// Groups holds one transform per asset group. If the model has
	// multiple parts they can be posed individually through this slice.
	// Its length always matches the asset's group count.
	Groups []GroupTransform
}

// GroupTransform poses one sub-part of a multi-part model.
type GroupTransform struct {
	Matrix math.Mat4
}

// Matrix computes the model's own world matrix:
// translation * rotation * scale. Per-group matrices multiply onto this.
func (d *Data) Matrix() math.Mat4 {
	return math.TranslateVec(d.Position).
		Mul(d.Rotation.Matrix()).
		Mul(math.UniformScale(d.Scale))
}

// defaultGroups returns n identity group transforms.
func defaultGroups(n int) []GroupTransform {
	groups := make([]GroupTransform, n)
	for i := range groups {
		groups[i].Matrix = math.Identity()
	}
	return groups
}

// sharedData is the cell referenced by both the handle and the registry
// entry, so the render side observes handle-side mutations without
// copying. Readers take the shared lock, the single writer the exclusive
// one; the lock is scoped to the callback and never held across anything
// else.
type sharedData struct {
	mu   sync.RWMutex
	data Data
}

func newSharedData(d Data) *sharedData {
	return &sharedData{data: d}
}

func (s *sharedData) read(cb func(*Data)) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	cb(&s.data)
}

func (s *sharedData) modify(cb func(*Data)) {
	s.mu.Lock()
	defer s.mu.Unlock()
	cb(&s.data)
}

// snapshot returns a deep copy of the current values, including the group
// slice.
func (s *sharedData) snapshot() Data {
	s.mu.RLock()
	defer s.mu.RUnlock()
	d := s.data
	d.Groups = make([]GroupTransform, len(s.data.Groups))
	copy(d.Groups, s.data.Groups)
	return d
}
