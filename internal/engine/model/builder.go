package model

import (
	"errors"
	"fmt"

	"github.com/Faultbox/crystal/internal/engine/gpu"
	"github.com/Faultbox/crystal/internal/engine/model/loader"
	"github.com/Faultbox/crystal/internal/engine/texture"
	"github.com/Faultbox/crystal/pkg/math"
)

// ErrNoVertexBuffer reports a model source that produced neither a
// top-level vertex list nor any per-part vertices, so nothing could be
// drawn.
var ErrNoVertexBuffer = errors.New("model has no vertex data")

// Builder assembles a model: it parses the source, uploads geometry and
// textures through the device and registers the result, returning the
// handle. A Builder is single-use.
type Builder struct {
	registry *Registry
	device   gpu.Device
	source   loader.Source

	fallback    [3]float32
	texturePath string

	position math.Vec3
	rotation math.Euler
	scale    float32
}

// NewBuilder starts building a model from source. The model is placed at
// the origin with identity rotation and scale 1 unless overridden.
func NewBuilder(registry *Registry, device gpu.Device, source loader.Source) *Builder {
	return &Builder{
		registry: registry,
		device:   device,
		source:   source,
		fallback: [3]float32{1, 1, 1},
		scale:    1,
	}
}

// WithPosition sets the initial position.
func (b *Builder) WithPosition(p math.Vec3) *Builder {
	b.position = p
	return b
}

// WithRotation sets the initial rotation.
func (b *Builder) WithRotation(r math.Euler) *Builder {
	b.rotation = r
	return b
}

// WithScale sets the initial uniform scale.
func (b *Builder) WithScale(s float32) *Builder {
	b.scale = s
	return b
}

// WithFallbackColor sets the flat color used by groups without a texture.
func (b *Builder) WithFallbackColor(r, g, bl float32) *Builder {
	b.fallback = [3]float32{r, g, bl}
	return b
}

// WithTexture textures the whole model with the image at path. Parts that
// bring their own texture from the model file keep it.
func (b *Builder) WithTexture(path string) *Builder {
	b.texturePath = path
	return b
}

// Build uploads the model and registers it. The returned handle is live
// immediately; the renderer sees the model on the registry's next frame.
func (b *Builder) Build() (*Handle, error) {
	parsed, err := b.source.Parse()
	if err != nil {
		return nil, fmt.Errorf("building model from %s: %w", b.source, err)
	}

	asset := &Asset{Fallback: b.fallback}

	// fail releases everything uploaded so far; a failed build must not
	// leave GPU resources behind. The shared texture needs an explicit
	// destroy only until the first group references it.
	var shared gpu.Texture
	fail := func(err error) (*Handle, error) {
		if shared != nil && !asset.hasTexture(shared) {
			shared.Destroy()
		}
		asset.Destroy()
		return nil, err
	}

	if b.texturePath != "" {
		img, err := texture.Load(b.texturePath)
		if err != nil {
			return nil, err
		}
		bounds := img.Bounds()
		tex, future, err := b.device.CreateTexture(uint32(bounds.Dx()), uint32(bounds.Dy()), img.Pix)
		if err != nil {
			return nil, fmt.Errorf("uploading texture %q: %w", b.texturePath, err)
		}
		asset.addUpload(future)
		shared = tex
	}

	if len(parsed.Vertices) > 0 {
		vb, err := b.device.CreateVertexBuffer(parsed.Vertices)
		if err != nil {
			return fail(fmt.Errorf("uploading vertices for %s: %w", b.source, err))
		}
		asset.Vertices = vb
	}

	for i, part := range parsed.Parts {
		// Append first so a mid-group failure is covered by fail's
		// asset.Destroy.
		asset.Groups = append(asset.Groups, Group{Material: part.Material, Texture: shared})
		group := &asset.Groups[len(asset.Groups)-1]

		if len(part.Vertices) > 0 {
			vb, err := b.device.CreateVertexBuffer(part.Vertices)
			if err != nil {
				return fail(fmt.Errorf("uploading part %d vertices for %s: %w", i, b.source, err))
			}
			group.Vertices = vb
		}
		if len(part.Index) > 0 {
			ib, err := b.device.CreateIndexBuffer(part.Index)
			if err != nil {
				return fail(fmt.Errorf("uploading part %d indices for %s: %w", i, b.source, err))
			}
			group.Index = ib
		}
		if part.Texture != nil {
			tex, future, err := b.device.CreateTexture(part.Texture.Width, part.Texture.Height, part.Texture.RGBA)
			if err != nil {
				return fail(fmt.Errorf("uploading part %d texture for %s: %w", i, b.source, err))
			}
			asset.addUpload(future)
			group.Texture = tex
		}
	}

	// A partless model still needs one group so the renderer has
	// something to draw the shared vertex buffer with.
	if len(asset.Groups) == 0 {
		asset.Groups = append(asset.Groups, Group{Texture: shared})
	}

	if !asset.drawable() {
		return fail(fmt.Errorf("%w: %s", ErrNoVertexBuffer, b.source))
	}

	data := Data{
		Position: b.position,
		Rotation: b.rotation,
		Scale:    b.scale,
	}
	return b.registry.register(asset, data), nil
}
