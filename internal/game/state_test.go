package game

import (
	"image/color"
	"path/filepath"
	"testing"

	"github.com/Faultbox/crystal/internal/engine/gpu"
	"github.com/Faultbox/crystal/internal/engine/gui"
	"github.com/Faultbox/crystal/internal/engine/renderer"
	"github.com/Faultbox/crystal/pkg/math"
)

func TestStateBuildersAndDrain(t *testing.T) {
	dev := gpu.NewNull()
	s := NewState(dev, "")

	tri, err := s.NewTriangle().WithPosition(math.Vec3{X: 1}).Build()
	if err != nil {
		t.Fatalf("NewTriangle: %v", err)
	}
	rect, err := s.NewRectangle().WithFallbackColor(0, 1, 0).Build()
	if err != nil {
		t.Fatalf("NewRectangle: %v", err)
	}
	panel, err := s.NewGuiElement(gui.Dimensions{X: 10, Y: 10, W: 50, H: 50}).
		WithCanvas(gui.Canvas{Background: color.RGBA{A: 255}}).
		Build()
	if err != nil {
		t.Fatalf("NewGuiElement: %v", err)
	}

	if s.Models().Len() != 2 || s.GUI().Len() != 1 {
		t.Fatalf("registries = %d models, %d gui", s.Models().Len(), s.GUI().Len())
	}

	// Clone and close across both families, one drain applies it all.
	tri2 := tri.Clone()
	rect.Close()
	panel2 := panel.Clone()
	s.Drain()

	if s.Models().Len() != 2 {
		t.Fatalf("models = %d after clone+close, want 2", s.Models().Len())
	}
	if s.GUI().Len() != 2 {
		t.Fatalf("gui = %d after clone, want 2", s.GUI().Len())
	}

	// Full frame through the renderer.
	r := renderer.New(dev)
	r.Frame(800, 600, s.Camera, s.Lights, s.Models(), s.GUI())
	if len(dev.Meshes) != 2 || len(dev.Quads) != 2 {
		t.Fatalf("frame drew %d meshes, %d quads", len(dev.Meshes), len(dev.Quads))
	}

	tri2.Close()
	panel2.Close()
}

func TestModifyVisibleToRegistryWithoutDrain(t *testing.T) {
	s := NewState(gpu.NewNull(), "")
	panel, err := s.NewGuiElement(gui.Dimensions{X: 10, Y: 10, W: 50, H: 50}).
		WithCanvas(gui.Canvas{Background: color.RGBA{A: 255}}).
		Build()
	if err != nil {
		t.Fatalf("NewGuiElement: %v", err)
	}

	panel.Modify(func(d *gui.ElementData) {
		d.Dimensions.X = 20
		d.Dimensions.Y = 20
	})

	if got := panel.Dimensions(); got != (gui.Dimensions{X: 20, Y: 20, W: 50, H: 50}) {
		t.Fatalf("Dimensions = %+v", got)
	}
}

func TestAssetPathResolution(t *testing.T) {
	s := NewState(gpu.NewNull(), "assets")
	if got := s.AssetPath("models/ship.obj"); got != filepath.Join("assets", "models", "ship.obj") {
		t.Fatalf("AssetPath = %q", got)
	}
	abs := string(filepath.Separator) + "data"
	if got := s.AssetPath(abs); got != abs {
		t.Fatalf("absolute path rewritten to %q", got)
	}
}

func TestTerminate(t *testing.T) {
	s := NewState(gpu.NewNull(), "")
	s.start()
	if !s.Running() {
		t.Fatal("not running after start")
	}
	s.Terminate()
	if s.Running() {
		t.Fatal("still running after Terminate")
	}
}

func TestKeyboard(t *testing.T) {
	k := make(Keyboard)
	k.press(42)
	if !k.IsPressed(42) {
		t.Fatal("key not pressed")
	}
	k.release(42)
	if k.IsPressed(42) {
		t.Fatal("key still pressed after release")
	}
	if k.IsPressed(7) {
		t.Fatal("unpressed key reported pressed")
	}
}
