package loader

import (
	"errors"
	"testing"
)

func TestTriangleSource(t *testing.T) {
	parsed, err := Triangle().Parse()
	if err != nil {
		t.Fatalf("Parse: %v", err)
	}
	if len(parsed.Vertices) != 3 {
		t.Fatalf("vertices = %d, want 3", len(parsed.Vertices))
	}
	if len(parsed.Parts) != 0 {
		t.Fatalf("parts = %d, want 0", len(parsed.Parts))
	}
}

func TestRectangleSource(t *testing.T) {
	parsed, err := Rectangle().Parse()
	if err != nil {
		t.Fatalf("Parse: %v", err)
	}
	if len(parsed.Vertices) != 4 {
		t.Fatalf("vertices = %d, want 4", len(parsed.Vertices))
	}
	if len(parsed.Parts) != 1 || len(parsed.Parts[0].Index) != 6 {
		t.Fatal("rectangle must have one indexed part with 6 indices")
	}
}

func TestFileSourceUnsupportedExtension(t *testing.T) {
	_, err := File("scene.gltf").Parse()
	if !errors.Is(err, ErrUnsupportedFormat) {
		t.Fatalf("err = %v, want ErrUnsupportedFormat", err)
	}
}

func TestSourceString(t *testing.T) {
	cases := []struct {
		src  Source
		want string
	}{
		{Triangle(), "triangle"},
		{Rectangle(), "rectangle"},
		{File("a/b.obj"), "a/b.obj"},
		{FromParsed(&Parsed{}), "parsed model"},
	}
	for _, tc := range cases {
		if got := tc.src.String(); got != tc.want {
			t.Errorf("String() = %q, want %q", got, tc.want)
		}
	}
}
