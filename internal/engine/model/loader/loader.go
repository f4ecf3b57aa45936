// Package loader turns model sources (built-in shapes, model files,
// pre-parsed descriptions) into the vertex/index/material tuples the
// model builder uploads to the GPU.
package loader

import (
	"errors"
	"fmt"
	"path/filepath"
	"strings"

	"github.com/Faultbox/crystal/internal/engine/gpu"
)

// ErrUnsupportedFormat reports a model file extension with no loader.
var ErrUnsupportedFormat = errors.New("unsupported model format")

// Parsed is a model description ready for GPU upload.
type Parsed struct {
	// Vertices is the shared top-level vertex list. May be empty when
	// every part carries its own vertices.
	Vertices []gpu.Vertex

	// Parts are the sub-meshes. A model without explicit parts draws its
	// vertex list as one triangle soup.
	Parts []Part
}

// Part is one sub-mesh: an index list into the shared vertices, or its
// own vertex list, with an optional material and texture.
type Part struct {
	Vertices []gpu.Vertex
	Index    []uint32
	Material *Material
	Texture  *Texture
}

// Material holds the lighting coefficients parsed from a model file.
type Material struct {
	Ambient   [3]float32
	Diffuse   [3]float32
	Specular  [3]float32
	Shininess float32
}

// Texture is decoded pixel data bundled with a model part.
type Texture struct {
	Width  uint32
	Height uint32
	RGBA   []byte
}

type sourceKind uint8

const (
	kindTriangle sourceKind = iota
	kindRectangle
	kindFile
	kindParsed
)

// Source describes where a model comes from.
type Source struct {
	kind   sourceKind
	path   string
	parsed *Parsed
}

// Triangle is the built-in single-triangle shape.
func Triangle() Source { return Source{kind: kindTriangle} }

// Rectangle is the built-in unit rectangle shape.
func Rectangle() Source { return Source{kind: kindRectangle} }

// File loads a model from the given path, dispatching on the extension.
func File(path string) Source { return Source{kind: kindFile, path: path} }

// FromParsed wraps an in-memory model description.
func FromParsed(p *Parsed) Source { return Source{kind: kindParsed, parsed: p} }

// Parse produces the model description for this source.
func (s Source) Parse() (*Parsed, error) {
	switch s.kind {
	case kindTriangle:
		return triangleShape(), nil
	case kindRectangle:
		return rectangleShape(), nil
	case kindParsed:
		return s.parsed, nil
	case kindFile:
		switch strings.ToLower(filepath.Ext(s.path)) {
		case ".obj":
			return LoadOBJ(s.path)
		default:
			return nil, fmt.Errorf("%w: %q", ErrUnsupportedFormat, s.path)
		}
	}
	panic(fmt.Sprintf("loader: unknown source kind %d", s.kind))
}

// String describes the source for error messages.
func (s Source) String() string {
	switch s.kind {
	case kindTriangle:
		return "triangle"
	case kindRectangle:
		return "rectangle"
	case kindFile:
		return s.path
	default:
		return "parsed model"
	}
}
