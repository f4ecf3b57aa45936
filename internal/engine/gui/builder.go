package gui

import (
	"errors"
	"fmt"

	"github.com/Faultbox/crystal/internal/engine/gpu"
	"github.com/Faultbox/crystal/internal/engine/texture"
)

// ErrNoContent reports a builder with neither a texture file nor a
// canvas to draw.
var ErrNoContent = errors.New("gui element has no content")

// Builder assembles a GUI element: it produces the element's texture
// (from an image file or a rasterized canvas), uploads it through the
// device and registers the element. Single-use, like the model builder.
type Builder struct {
	registry *Registry
	device   gpu.Device
	dims     Dimensions

	texturePath string
	canvas      *Canvas
}

// NewBuilder starts building an element covering dims.
func NewBuilder(registry *Registry, device gpu.Device, dims Dimensions) *Builder {
	return &Builder{
		registry: registry,
		device:   device,
		dims:     dims,
	}
}

// WithTexture sources the element's surface from the image file at path.
func (b *Builder) WithTexture(path string) *Builder {
	b.texturePath = path
	return b
}

// WithCanvas draws the element's surface procedurally.
func (b *Builder) WithCanvas(c Canvas) *Builder {
	b.canvas = &c
	return b
}

// Build uploads the element's texture and registers it. The returned
// element is live immediately; the renderer sees it on the registry's
// next frame.
func (b *Builder) Build() (*Element, error) {
	var (
		width, height uint32
		pixels        []byte
	)
	switch {
	case b.canvas != nil:
		img := b.canvas.Render(b.dims.W, b.dims.H)
		width, height = b.dims.W, b.dims.H
		pixels = img.Pix
	case b.texturePath != "":
		img, err := texture.Load(b.texturePath)
		if err != nil {
			return nil, err
		}
		bounds := img.Bounds()
		width, height = uint32(bounds.Dx()), uint32(bounds.Dy())
		pixels = img.Pix
	default:
		return nil, ErrNoContent
	}

	tex, future, err := b.device.CreateTexture(width, height, pixels)
	if err != nil {
		return nil, fmt.Errorf("uploading gui texture: %w", err)
	}

	data := ElementData{
		Dimensions: b.dims,
		ZIndex:     b.registry.nextZIndex(),
	}
	ref := &Ref{
		texture: tex,
		upload:  future,
		data:    newSharedData(data),
	}
	return b.registry.register(ref, b.device), nil
}
