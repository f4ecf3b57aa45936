package lighting

import (
	stdmath "math"

	"github.com/Faultbox/crystal/pkg/math"
)

// SunDirection converts longitude/latitude angles in degrees to a
// normalized direction pointing towards the sun. Longitude rotates
// around the Y axis (0-360), latitude is the elevation from the horizon
// (0-90). Negate the result for a Directional light shining down.
func SunDirection(longitude, latitude float32) math.Vec3 {
	lonRad := float64(longitude) * stdmath.Pi / 180.0
	latRad := float64(latitude) * stdmath.Pi / 180.0

	return math.Vec3{
		X: float32(stdmath.Cos(latRad) * stdmath.Sin(lonRad)),
		Y: float32(stdmath.Sin(latRad)),
		Z: float32(stdmath.Cos(latRad) * stdmath.Cos(lonRad)),
	}
}

// Sun builds a directional light for a sun at the given angles with the
// classic daylight color split.
func Sun(longitude, latitude float32) Directional {
	dir := SunDirection(longitude, latitude)
	return Directional{
		Direction: dir.Scale(-1),
		Color: Color{
			Ambient:  math.Vec3{X: 0.3, Y: 0.3, Z: 0.3},
			Diffuse:  math.Vec3{X: 0.8, Y: 0.8, Z: 0.75},
			Specular: math.Vec3{X: 0.5, Y: 0.5, Z: 0.5},
		},
	}
}
