// Package lighting holds the light state exposed on the game state and
// consumed by the render pass.
package lighting

import (
	"github.com/Faultbox/crystal/internal/engine/gpu"
	"github.com/Faultbox/crystal/pkg/math"
)

// MaxLights caps each light kind. The mesh shaders declare fixed-size
// uniform arrays, so the cap must match what they can address.
const MaxLights = 100

// Color splits a light's contribution into the three classic phong
// terms. Each component is merged with the matching material factor.
type Color struct {
	Ambient  math.Vec3
	Diffuse  math.Vec3
	Specular math.Vec3
}

// Directional is a light shining in one direction from infinitely far
// away, like the sun. Sky light points down: direction (0, -1, 0).
type Directional struct {
	Direction math.Vec3
	Color     Color
}

// Attenuation controls how a point light decays over distance.
type Attenuation struct {
	// Constant always reduces the light, regardless of distance.
	Constant float32
	// Linear reduces the light proportionally to distance.
	Linear float32
	// Quadratic dominates at long range.
	Quadratic float32
}

// DefaultAttenuation covers a medium-range light.
func DefaultAttenuation() Attenuation {
	return Attenuation{Constant: 1.0, Linear: 0.09, Quadratic: 0.032}
}

// Point is a light shining equally in all directions from a position.
type Point struct {
	Position    math.Vec3
	Color       Color
	Attenuation Attenuation
}

// State is the set of lights in the world, owned by the game state and
// read by the renderer once per frame.
type State struct {
	directional []Directional
	point       []Point
}

// NewState creates an empty light state.
func NewState() *State {
	return &State{}
}

// AddDirectional adds a directional light. Returns false when the cap is
// reached.
func (s *State) AddDirectional(l Directional) bool {
	if len(s.directional) >= MaxLights {
		return false
	}
	s.directional = append(s.directional, l)
	return true
}

// AddPoint adds a point light. Returns false when the cap is reached.
func (s *State) AddPoint(l Point) bool {
	if len(s.point) >= MaxLights {
		return false
	}
	s.point = append(s.point, l)
	return true
}

// Directional returns the directional lights. The slice is owned by the
// state; callers may mutate elements but not grow it.
func (s *State) Directional() []Directional { return s.directional }

// Point returns the point lights.
func (s *State) Point() []Point { return s.point }

// Clear removes all lights.
func (s *State) Clear() {
	s.directional = s.directional[:0]
	s.point = s.point[:0]
}

// Uniforms folds the light state into the per-draw light uniforms. The
// current mesh pipeline supports a single directional contribution, so
// the first directional light wins; with no lights the scene is lit flat
// white so untextured bring-up scenes stay visible.
func (s *State) Uniforms() gpu.Lights {
	if len(s.directional) == 0 {
		return gpu.Lights{Ambient: [3]float32{1, 1, 1}}
	}
	l := s.directional[0]
	return gpu.Lights{
		Direction: [3]float32{l.Direction.X, l.Direction.Y, l.Direction.Z},
		Ambient:   [3]float32{l.Color.Ambient.X, l.Color.Ambient.Y, l.Color.Ambient.Z},
		Diffuse:   [3]float32{l.Color.Diffuse.X, l.Color.Diffuse.Y, l.Color.Diffuse.Z},
	}
}
