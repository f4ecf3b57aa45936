package lighting

import (
	"testing"

	"github.com/Faultbox/crystal/pkg/math"
)

func TestUniformsNoLights(t *testing.T) {
	s := NewState()
	u := s.Uniforms()
	if u.Ambient != [3]float32{1, 1, 1} {
		t.Fatalf("ambient = %v, want flat white", u.Ambient)
	}
	if u.Direction != [3]float32{} {
		t.Fatalf("direction = %v, want zero", u.Direction)
	}
}

func TestUniformsFirstDirectionalWins(t *testing.T) {
	s := NewState()
	s.AddDirectional(Directional{
		Direction: math.Vec3{Y: -1},
		Color: Color{
			Ambient: math.Vec3{X: 0.1, Y: 0.1, Z: 0.1},
			Diffuse: math.Vec3{X: 0.8, Y: 0.8, Z: 0.7},
		},
	})
	s.AddDirectional(Directional{Direction: math.Vec3{X: 1}})

	u := s.Uniforms()
	if u.Direction != [3]float32{0, -1, 0} {
		t.Fatalf("direction = %v", u.Direction)
	}
	if u.Diffuse != [3]float32{0.8, 0.8, 0.7} {
		t.Fatalf("diffuse = %v", u.Diffuse)
	}
}

func TestLightCap(t *testing.T) {
	s := NewState()
	for i := 0; i < MaxLights; i++ {
		if !s.AddDirectional(Directional{}) {
			t.Fatalf("add %d rejected below cap", i)
		}
	}
	if s.AddDirectional(Directional{}) {
		t.Fatal("add above cap accepted")
	}
	if !s.AddPoint(Point{Attenuation: DefaultAttenuation()}) {
		t.Fatal("point light rejected with empty point list")
	}

	s.Clear()
	if len(s.Directional()) != 0 || len(s.Point()) != 0 {
		t.Fatal("Clear left lights behind")
	}
}

func TestSunDirection(t *testing.T) {
	near := func(a, b float32) bool {
		d := a - b
		return d < 1e-5 && d > -1e-5
	}

	// Noon sun straight overhead.
	d := SunDirection(0, 90)
	if !near(d.Y, 1) || !near(d.X, 0) || !near(d.Z, 0) {
		t.Fatalf("overhead sun direction = %v", d)
	}

	// Sunrise on the horizon along +Z.
	d = SunDirection(0, 0)
	if !near(d.Z, 1) || !near(d.Y, 0) {
		t.Fatalf("horizon sun direction = %v", d)
	}

	// The light itself shines the opposite way.
	l := Sun(0, 90)
	if !near(l.Direction.Y, -1) {
		t.Fatalf("sun light direction = %v", l.Direction)
	}
}
