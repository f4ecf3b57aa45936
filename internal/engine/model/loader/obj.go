package loader

import (
	"bufio"
	"bytes"
	"fmt"
	"os"
	"strconv"
	"strings"

	"github.com/Faultbox/crystal/internal/engine/gpu"
)

// LoadOBJ parses a Wavefront OBJ file into a single-part model. Faces
// with more than three corners are fan-triangulated. Material libraries
// are ignored; textures come from the builder's texture option.
func LoadOBJ(path string) (*Parsed, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading model %q: %w", path, err)
	}
	parsed, err := ParseOBJ(data)
	if err != nil {
		return nil, fmt.Errorf("parsing model %q: %w", path, err)
	}
	return parsed, nil
}

// ParseOBJ parses OBJ data from memory.
func ParseOBJ(data []byte) (*Parsed, error) {
	var (
		positions [][3]float32
		normals   [][3]float32
		texCoords [][2]float32

		vertices []gpu.Vertex
		indices  []uint32
		// corner "v/vt/vn" string to emitted vertex index
		seen = make(map[string]uint32)
	)

	scanner := bufio.NewScanner(bytes.NewReader(data))
	lineNo := 0
	for scanner.Scan() {
		lineNo++
		line := strings.TrimSpace(scanner.Text())
		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}

		fields := strings.Fields(line)
		switch fields[0] {
		case "v":
			p, err := parseFloats3(fields[1:])
			if err != nil {
				return nil, fmt.Errorf("line %d: vertex: %w", lineNo, err)
			}
			positions = append(positions, p)

		case "vn":
			n, err := parseFloats3(fields[1:])
			if err != nil {
				return nil, fmt.Errorf("line %d: normal: %w", lineNo, err)
			}
			normals = append(normals, n)

		case "vt":
			if len(fields) < 3 {
				return nil, fmt.Errorf("line %d: texcoord needs 2 components", lineNo)
			}
			u, err1 := strconv.ParseFloat(fields[1], 32)
			v, err2 := strconv.ParseFloat(fields[2], 32)
			if err1 != nil || err2 != nil {
				return nil, fmt.Errorf("line %d: bad texcoord", lineNo)
			}
			// OBJ uses a bottom-left UV origin.
			texCoords = append(texCoords, [2]float32{float32(u), 1 - float32(v)})

		case "f":
			corners := fields[1:]
			if len(corners) < 3 {
				return nil, fmt.Errorf("line %d: face needs at least 3 corners", lineNo)
			}
			emitted := make([]uint32, len(corners))
			for i, corner := range corners {
				idx, ok := seen[corner]
				if !ok {
					v, err := cornerVertex(corner, positions, normals, texCoords)
					if err != nil {
						return nil, fmt.Errorf("line %d: %w", lineNo, err)
					}
					idx = uint32(len(vertices))
					vertices = append(vertices, v)
					seen[corner] = idx
				}
				emitted[i] = idx
			}
			// Fan-triangulate.
			for i := 2; i < len(emitted); i++ {
				indices = append(indices, emitted[0], emitted[i-1], emitted[i])
			}
		}
	}
	if err := scanner.Err(); err != nil {
		return nil, err
	}

	if len(vertices) == 0 {
		return nil, fmt.Errorf("no vertices")
	}

	return &Parsed{
		Vertices: vertices,
		Parts:    []Part{{Index: indices}},
	}, nil
}

// cornerVertex resolves one "v", "v/vt", "v//vn" or "v/vt/vn" face corner.
func cornerVertex(corner string, positions [][3]float32, normals [][3]float32, texCoords [][2]float32) (gpu.Vertex, error) {
	var v gpu.Vertex
	refs := strings.Split(corner, "/")

	pi, err := objIndex(refs[0], len(positions))
	if err != nil {
		return v, fmt.Errorf("position ref %q: %w", corner, err)
	}
	v.Position = positions[pi]

	if len(refs) > 1 && refs[1] != "" {
		ti, err := objIndex(refs[1], len(texCoords))
		if err != nil {
			return v, fmt.Errorf("texcoord ref %q: %w", corner, err)
		}
		v.TexCoord = texCoords[ti]
	}

	if len(refs) > 2 && refs[2] != "" {
		ni, err := objIndex(refs[2], len(normals))
		if err != nil {
			return v, fmt.Errorf("normal ref %q: %w", corner, err)
		}
		v.Normal = normals[ni]
	}

	return v, nil
}

// objIndex converts a 1-based (possibly negative, relative) OBJ index to
// a 0-based slice index.
func objIndex(s string, length int) (int, error) {
	n, err := strconv.Atoi(s)
	if err != nil {
		return 0, err
	}
	if n < 0 {
		n = length + n + 1
	}
	if n < 1 || n > length {
		return 0, fmt.Errorf("index %d out of range (1..%d)", n, length)
	}
	return n - 1, nil
}

func parseFloats3(fields []string) ([3]float32, error) {
	var out [3]float32
	if len(fields) < 3 {
		return out, fmt.Errorf("need 3 components, got %d", len(fields))
	}
	for i := 0; i < 3; i++ {
		f, err := strconv.ParseFloat(fields[i], 32)
		if err != nil {
			return out, err
		}
		out[i] = float32(f)
	}
	return out, nil
}
