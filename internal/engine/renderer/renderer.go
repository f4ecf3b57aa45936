// Package renderer is the per-frame consumer of the model and GUI
// registries. It only reads the core: registries are drained by the
// caller before Frame, data is snapshotted under read locks, nothing is
// mutated.
package renderer

import (
	"github.com/Faultbox/crystal/internal/engine/gpu"
	"github.com/Faultbox/crystal/internal/engine/gui"
	"github.com/Faultbox/crystal/internal/engine/lighting"
	"github.com/Faultbox/crystal/internal/engine/model"
	"github.com/Faultbox/crystal/pkg/math"
)

// Renderer draws the world and GUI through a gpu.Device.
type Renderer struct {
	device gpu.Device

	// ClearColor fills the frame before drawing.
	ClearColor [4]float32

	// FOV is the vertical field of view in radians.
	FOV float32

	// Near and Far clip planes.
	Near, Far float32
}

// New creates a renderer with the standard projection settings.
func New(device gpu.Device) *Renderer {
	return &Renderer{
		device:     device,
		ClearColor: [4]float32{0.1, 0.1, 0.1, 1.0},
		FOV:        math.Pi / 4,
		Near:       0.1,
		Far:        1000,
	}
}

// Frame draws one frame: all model registry entries as lit meshes, then
// all GUI entries as screen-space quads ordered back to front. The
// registries must be drained before the call so the frame reflects every
// lifecycle event of the update step.
func (r *Renderer) Frame(width, height int32, camera math.Mat4, lights *lighting.State, models *model.Registry, guis *gui.Registry) {
	r.device.BeginFrame(width, height, r.ClearColor)

	aspect := float32(width) / float32(height)
	viewProj := math.Perspective(r.FOV, aspect, r.Near, r.Far).Mul(camera)
	lightUniforms := lights.Uniforms()

	models.Each(func(_ uint64, ref *model.Ref) {
		asset := ref.Asset()
		asset.WaitUploads()

		data := ref.Snapshot()
		base := data.Matrix()

		for i, group := range asset.Groups {
			world := base
			if i < len(data.Groups) {
				world = base.Mul(data.Groups[i].Matrix)
			}

			vertices := group.Vertices
			if vertices == nil {
				vertices = asset.Vertices
			}

			r.device.DrawMesh(gpu.MeshDraw{
				Vertices: vertices,
				Index:    group.Index,
				Texture:  group.Texture,
				MVP:      viewProj.Mul(world),
				Model:    world,
				Fallback: asset.Fallback,
				Lights:   lightUniforms,
			})
		}
	})

	for _, ref := range guis.Sorted() {
		ref.WaitUpload()
		d := ref.Snapshot().Dimensions
		r.device.DrawQuad(gpu.QuadDraw{
			Texture: ref.Texture(),
			X:       d.X,
			Y:       d.Y,
			W:       d.W,
			H:       d.H,
			ScreenW: uint32(width),
			ScreenH: uint32(height),
		})
	}

	r.device.EndFrame()
}
