package texture

import (
	"errors"
	"image"
	"image/color"
	"image/png"
	"os"
	"path/filepath"
	"testing"
)

func writeTestPNG(t *testing.T, path string, w, h int) {
	t.Helper()
	img := image.NewRGBA(image.Rect(0, 0, w, h))
	for y := 0; y < h; y++ {
		for x := 0; x < w; x++ {
			img.Set(x, y, color.RGBA{R: uint8(x), G: uint8(y), B: 128, A: 255})
		}
	}
	f, err := os.Create(path)
	if err != nil {
		t.Fatalf("creating test image: %v", err)
	}
	defer f.Close()
	if err := png.Encode(f, img); err != nil {
		t.Fatalf("encoding test image: %v", err)
	}
}

func TestLoadPNG(t *testing.T) {
	path := filepath.Join(t.TempDir(), "tex.png")
	writeTestPNG(t, path, 8, 4)

	img, err := Load(path)
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if img.Bounds().Dx() != 8 || img.Bounds().Dy() != 4 {
		t.Errorf("decoded size = %v, want 8x4", img.Bounds())
	}
	// Spot-check a pixel survives the RGBA conversion.
	c := img.RGBAAt(3, 2)
	if c.R != 3 || c.G != 2 || c.B != 128 {
		t.Errorf("pixel (3,2) = %v, want {3 2 128 255}", c)
	}
}

func TestLoadMissingFile(t *testing.T) {
	_, err := Load(filepath.Join(t.TempDir(), "nope.png"))
	if err == nil {
		t.Fatal("expected error for missing file")
	}
	var derr *DecodeError
	if !errors.As(err, &derr) {
		t.Fatalf("expected *DecodeError, got %T", err)
	}
}

func TestDecodeBytesCorrupt(t *testing.T) {
	_, err := DecodeBytes([]byte("not an image"))
	if err == nil {
		t.Fatal("expected error for corrupt data")
	}
}

func TestToRGBAPassthrough(t *testing.T) {
	src := image.NewRGBA(image.Rect(0, 0, 2, 2))
	if got := ToRGBA(src); got != src {
		t.Error("ToRGBA should return *image.RGBA unchanged")
	}
}
