package loader

import "github.com/Faultbox/crystal/internal/engine/gpu"

// Built-in shapes face +Z so an untransformed camera at the origin sees
// them. Shape data is copied on every parse; callers own the slices.

func triangleShape() *Parsed {
	return &Parsed{
		Vertices: []gpu.Vertex{
			{Position: [3]float32{0.0, 0.5, 0.0}, Normal: [3]float32{0, 0, 1}, TexCoord: [2]float32{0.5, 0.0}},
			{Position: [3]float32{-0.5, -0.5, 0.0}, Normal: [3]float32{0, 0, 1}, TexCoord: [2]float32{0.0, 1.0}},
			{Position: [3]float32{0.5, -0.5, 0.0}, Normal: [3]float32{0, 0, 1}, TexCoord: [2]float32{1.0, 1.0}},
		},
	}
}

func rectangleShape() *Parsed {
	return &Parsed{
		Vertices: []gpu.Vertex{
			{Position: [3]float32{-0.5, -0.5, 0.0}, Normal: [3]float32{0, 0, 1}, TexCoord: [2]float32{0.0, 1.0}},
			{Position: [3]float32{0.5, -0.5, 0.0}, Normal: [3]float32{0, 0, 1}, TexCoord: [2]float32{1.0, 1.0}},
			{Position: [3]float32{0.5, 0.5, 0.0}, Normal: [3]float32{0, 0, 1}, TexCoord: [2]float32{1.0, 0.0}},
			{Position: [3]float32{-0.5, 0.5, 0.0}, Normal: [3]float32{0, 0, 1}, TexCoord: [2]float32{0.0, 0.0}},
		},
		Parts: []Part{
			{Index: []uint32{0, 1, 2, 0, 2, 3}},
		},
	}
}
