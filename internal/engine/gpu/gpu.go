// Package gpu abstracts the graphics device behind the engine core.
// The core only creates buffers and textures through the Device interface
// and carries UploadFutures alongside assets; it never inspects them.
package gpu

import (
	"github.com/Faultbox/crystal/pkg/math"
)

// Vertex is the mesh vertex layout shared by all model pipelines.
type Vertex struct {
	Position [3]float32
	Normal   [3]float32
	TexCoord [2]float32
}

// VertexBuffer is GPU-resident vertex data.
type VertexBuffer interface {
	Len() int
	Destroy()
}

// IndexBuffer is GPU-resident index data.
type IndexBuffer interface {
	Len() int
	Destroy()
}

// Texture is a GPU-resident 2D RGBA image.
type Texture interface {
	Size() (width, height uint32)
	Destroy()
}

// UploadFuture resolves when an asynchronous upload has completed on the
// device. The renderer waits on these before drawing the owning asset.
type UploadFuture interface {
	Wait()
}

// Lights carries the per-frame light uniforms for mesh draws.
type Lights struct {
	Direction [3]float32
	Ambient   [3]float32
	Diffuse   [3]float32
}

// MeshDraw describes one mesh group draw call.
type MeshDraw struct {
	Vertices VertexBuffer
	Index    IndexBuffer // nil draws the vertex buffer as a triangle list
	Texture  Texture     // nil uses the fallback color
	MVP      math.Mat4
	Model    math.Mat4
	Fallback [3]float32
	Lights   Lights
}

// QuadDraw describes one screen-space textured quad (GUI) draw call.
type QuadDraw struct {
	Texture Texture
	X, Y    int32
	W, H    uint32
	ScreenW uint32
	ScreenH uint32
}

// Device is the graphics backend. The zero implementations are the GL
// device for on-screen rendering and the Null device for tests.
type Device interface {
	CreateVertexBuffer(verts []Vertex) (VertexBuffer, error)
	CreateIndexBuffer(indices []uint32) (IndexBuffer, error)
	CreateTexture(width, height uint32, rgba []byte) (Texture, UploadFuture, error)

	BeginFrame(width, height int32, clearColor [4]float32)
	DrawMesh(d MeshDraw)
	DrawQuad(d QuadDraw)
	EndFrame()

	Destroy()
}
