// Package game owns the per-frame state handed to user code: the model
// and GUI registries, the camera, keyboard and light state, plus the
// builder entry points that put new things on screen.
package game

import (
	"path/filepath"

	"github.com/Faultbox/crystal/internal/engine/gpu"
	"github.com/Faultbox/crystal/internal/engine/gui"
	"github.com/Faultbox/crystal/internal/engine/lighting"
	"github.com/Faultbox/crystal/internal/engine/model"
	"github.com/Faultbox/crystal/internal/engine/model/loader"
	"github.com/Faultbox/crystal/pkg/math"
)

// State is passed to Game.Init and Game.Update every frame. User code
// builds models and GUI elements through it and steers the camera and
// lights; the runner drains its registries and renders after each
// update.
type State struct {
	// Camera is the view matrix currently in use.
	Camera math.Mat4

	// Keyboard is the pressed-key state, updated before Keydown/Keyup
	// callbacks run.
	Keyboard Keyboard

	// Lights is the state of the lights in the world.
	Lights *lighting.State

	device    gpu.Device
	models    *model.Registry
	guis      *gui.Registry
	assetRoot string
	running   bool
}

// NewState creates a game state rendering through device. assetRoot is
// prepended to relative model and texture paths.
func NewState(device gpu.Device, assetRoot string) *State {
	return &State{
		Camera:    math.Identity(),
		Keyboard:  make(Keyboard),
		Lights:    lighting.NewState(),
		device:    device,
		models:    model.NewRegistry(),
		guis:      gui.NewRegistry(),
		assetRoot: assetRoot,
	}
}

// NewTriangle starts building a triangle at the origin of the world.
// Clone the returned handle to create a second instance sharing the
// same geometry.
func (s *State) NewTriangle() *model.Builder {
	return model.NewBuilder(s.models, s.device, loader.Triangle())
}

// NewRectangle starts building a rectangle at the origin of the world.
func (s *State) NewRectangle() *model.Builder {
	return model.NewBuilder(s.models, s.device, loader.Rectangle())
}

// NewModelFromFile starts building a model loaded from the given path,
// resolved against the asset root when relative.
func (s *State) NewModelFromFile(path string) *model.Builder {
	return model.NewBuilder(s.models, s.device, loader.File(s.assetPath(path)))
}

// NewGuiElement starts building a GUI element covering dims.
func (s *State) NewGuiElement(dims gui.Dimensions) *gui.Builder {
	return gui.NewBuilder(s.guis, s.device, dims)
}

// AssetPath resolves a relative asset path against the configured root.
func (s *State) AssetPath(path string) string { return s.assetPath(path) }

func (s *State) assetPath(path string) string {
	if s.assetRoot == "" || filepath.IsAbs(path) {
		return path
	}
	return filepath.Join(s.assetRoot, path)
}

// Models exposes the model registry to the render pass.
func (s *State) Models() *model.Registry { return s.models }

// GUI exposes the GUI registry to the render pass.
func (s *State) GUI() *gui.Registry { return s.guis }

// Drain applies all buffered lifecycle events on both registries. The
// runner calls this once per frame, after the update step and before
// the render pass.
func (s *State) Drain() {
	s.models.Drain()
	s.guis.Drain()
}

// Terminate exits the game loop at the end of the current frame. Once
// called it cannot be cancelled and does not consult Game.CanShutdown.
func (s *State) Terminate() {
	s.running = false
}

// Running reports whether the loop should keep going.
func (s *State) Running() bool { return s.running }

// start marks the loop live. Runner-side only.
func (s *State) start() { s.running = true }
