package model

import (
	"sync"

	"github.com/Faultbox/crystal/internal/engine/gpu"
	"github.com/Faultbox/crystal/internal/engine/model/loader"
)

// Asset is the immutable, GPU-resident part of a model: geometry,
// materials and textures. It is created once by a Builder and shared by
// reference among every handle cloned from the same source.
type Asset struct {
	// Vertices is the top-level vertex buffer. May be nil when every
	// group owns its own vertices.
	Vertices gpu.VertexBuffer

	// Groups are the drawable sub-parts. Always at least one.
	Groups []Group

	// Fallback is the flat color used by groups without a texture.
	Fallback [3]float32

	mu      sync.Mutex
	uploads []gpu.UploadFuture
}

// Group is one drawable sub-part of an asset.
type Group struct {
	// Vertices overrides the asset-level vertex buffer when set.
	Vertices gpu.VertexBuffer
	Index    gpu.IndexBuffer
	Material *loader.Material
	Texture  gpu.Texture
}

// drawable reports whether at least one vertex buffer exists somewhere,
// either asset-level or on a group.
func (a *Asset) drawable() bool {
	if a.Vertices != nil {
		return true
	}
	for _, g := range a.Groups {
		if g.Vertices != nil {
			return true
		}
	}
	return false
}

// WaitUploads blocks until all pending GPU uploads for this asset have
// completed. The renderer calls this before the first draw; subsequent
// calls are cheap no-ops.
func (a *Asset) WaitUploads() {
	a.mu.Lock()
	pending := a.uploads
	a.uploads = nil
	a.mu.Unlock()

	for _, f := range pending {
		f.Wait()
	}
}

// addUpload records a pending upload future. Builder-side only.
func (a *Asset) addUpload(f gpu.UploadFuture) {
	if f == nil {
		return
	}
	a.mu.Lock()
	a.uploads = append(a.uploads, f)
	a.mu.Unlock()
}

// hasTexture reports whether any group references tex.
func (a *Asset) hasTexture(tex gpu.Texture) bool {
	for _, g := range a.Groups {
		if g.Texture == tex {
			return true
		}
	}
	return false
}

// Destroy releases all GPU resources owned by the asset. A texture
// shared by several groups is destroyed once.
func (a *Asset) Destroy() {
	if a.Vertices != nil {
		a.Vertices.Destroy()
	}
	destroyed := make(map[gpu.Texture]bool)
	for _, g := range a.Groups {
		if g.Vertices != nil {
			g.Vertices.Destroy()
		}
		if g.Index != nil {
			g.Index.Destroy()
		}
		if g.Texture != nil && !destroyed[g.Texture] {
			destroyed[g.Texture] = true
			g.Texture.Destroy()
		}
	}
}
