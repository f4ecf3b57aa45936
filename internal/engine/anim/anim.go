// Package anim animates model transforms with eased tweens on top of
// Handle.Modify. There is no global animation manager; callers step
// their tweens from the update callback each frame.
package anim

import (
	"github.com/tanema/gween"
	"github.com/tanema/gween/ease"

	"github.com/Faultbox/crystal/internal/engine/model"
	"github.com/Faultbox/crystal/pkg/math"
)

// Tween animates one model transform toward a target. Create one via
// MoveTo, RotateTo or ScaleTo and call Update(dt) each frame until Done.
type Tween struct {
	handle *model.Handle
	tweens []*gween.Tween
	apply  func(d *model.Data, vals []float32)
	Done   bool
}

// Update advances the tween by dt seconds and writes the eased values
// through the handle. No-op once Done.
func (t *Tween) Update(dt float32) {
	if t.Done {
		return
	}

	vals := make([]float32, len(t.tweens))
	allDone := true
	for i, tw := range t.tweens {
		v, finished := tw.Update(dt)
		vals[i] = v
		if !finished {
			allDone = false
		}
	}
	t.handle.Modify(func(d *model.Data) { t.apply(d, vals) })
	t.Done = allDone
}

// MoveTo animates the model's position to the target point.
func MoveTo(h *model.Handle, to math.Vec3, duration float32, fn ease.TweenFunc) *Tween {
	from := h.Position()
	return &Tween{
		handle: h,
		tweens: []*gween.Tween{
			gween.New(from.X, to.X, duration, fn),
			gween.New(from.Y, to.Y, duration, fn),
			gween.New(from.Z, to.Z, duration, fn),
		},
		apply: func(d *model.Data, vals []float32) {
			d.Position = math.Vec3{X: vals[0], Y: vals[1], Z: vals[2]}
		},
	}
}

// RotateTo animates the model's rotation to the target euler angles.
func RotateTo(h *model.Handle, to math.Euler, duration float32, fn ease.TweenFunc) *Tween {
	from := h.Rotation()
	return &Tween{
		handle: h,
		tweens: []*gween.Tween{
			gween.New(from.X, to.X, duration, fn),
			gween.New(from.Y, to.Y, duration, fn),
			gween.New(from.Z, to.Z, duration, fn),
		},
		apply: func(d *model.Data, vals []float32) {
			d.Rotation = math.Euler{X: vals[0], Y: vals[1], Z: vals[2]}
		},
	}
}

// ScaleTo animates the model's uniform scale to the target value.
func ScaleTo(h *model.Handle, to float32, duration float32, fn ease.TweenFunc) *Tween {
	return &Tween{
		handle: h,
		tweens: []*gween.Tween{
			gween.New(h.Scale(), to, duration, fn),
		},
		apply: func(d *model.Data, vals []float32) {
			d.Scale = vals[0]
		},
	}
}

// Group steps a set of tweens together and drops finished ones.
type Group struct {
	tweens []*Tween
}

// Add registers a tween with the group.
func (g *Group) Add(t *Tween) {
	g.tweens = append(g.tweens, t)
}

// Update steps all live tweens by dt and compacts out the finished ones.
func (g *Group) Update(dt float32) {
	live := g.tweens[:0]
	for _, t := range g.tweens {
		t.Update(dt)
		if !t.Done {
			live = append(live, t)
		}
	}
	g.tweens = live
}

// Len returns the number of unfinished tweens.
func (g *Group) Len() int { return len(g.tweens) }
