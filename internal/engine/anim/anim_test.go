package anim

import (
	"testing"

	"github.com/tanema/gween/ease"

	"github.com/Faultbox/crystal/internal/engine/gpu"
	"github.com/Faultbox/crystal/internal/engine/model"
	"github.com/Faultbox/crystal/internal/engine/model/loader"
	"github.com/Faultbox/crystal/pkg/math"
)

func buildHandle(t *testing.T) *model.Handle {
	t.Helper()
	h, err := model.NewBuilder(model.NewRegistry(), gpu.NewNull(), loader.Triangle()).Build()
	if err != nil {
		t.Fatalf("Build: %v", err)
	}
	return h
}

func near(a, b float32) bool {
	d := a - b
	return d < 1e-4 && d > -1e-4
}

func TestMoveToReachesTarget(t *testing.T) {
	h := buildHandle(t)
	tw := MoveTo(h, math.Vec3{X: 10, Y: -2, Z: 4}, 1.0, ease.Linear)

	tw.Update(0.5)
	if tw.Done {
		t.Fatal("done at half duration")
	}
	p := h.Position()
	if !near(p.X, 5) || !near(p.Y, -1) || !near(p.Z, 2) {
		t.Fatalf("midpoint = %v", p)
	}

	tw.Update(0.5)
	if !tw.Done {
		t.Fatal("not done at full duration")
	}
	p = h.Position()
	if !near(p.X, 10) || !near(p.Y, -2) || !near(p.Z, 4) {
		t.Fatalf("endpoint = %v", p)
	}
}

func TestScaleAndRotate(t *testing.T) {
	h := buildHandle(t)

	st := ScaleTo(h, 3, 2.0, ease.Linear)
	st.Update(1.0)
	if !near(h.Scale(), 2) {
		t.Fatalf("scale = %v at half duration", h.Scale())
	}

	rt := RotateTo(h, math.Euler{Y: 1.0}, 1.0, ease.Linear)
	rt.Update(2.0) // overshoot clamps to target
	if !rt.Done || !near(h.Rotation().Y, 1.0) {
		t.Fatalf("rotation = %v, done = %v", h.Rotation(), rt.Done)
	}
}

func TestGroupCompactsFinished(t *testing.T) {
	h := buildHandle(t)
	var g Group
	g.Add(MoveTo(h, math.Vec3{X: 1}, 0.5, ease.Linear))
	g.Add(ScaleTo(h, 2, 5.0, ease.Linear))
	if g.Len() != 2 {
		t.Fatalf("Len = %d", g.Len())
	}

	g.Update(1.0)
	if g.Len() != 1 {
		t.Fatalf("Len = %d after first tween finished", g.Len())
	}
	if !near(h.Position().X, 1) {
		t.Fatalf("position = %v", h.Position())
	}
}
