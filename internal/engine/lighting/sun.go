package lighting

import (
	"github.com/chewxy/math32"

	"github.com/Faultbox/sceneview/pkg/math"
)

// Direction converts azimuth/elevation angles in degrees to a unit vector.
// Azimuth rotates around Y starting at +Z, elevation is measured from the
// horizon.
func Direction(azimuth, elevation float32) math.Vec3 {
	az := math.Radians(azimuth)
	el := math.Radians(elevation)

	return math.Vec3{
		X: math32.Cos(el) * math32.Sin(az),
		Y: math32.Sin(el),
		Z: math32.Cos(el) * math32.Cos(az),
	}
}

// FromAngles returns a light placed at distance along Direction(azimuth, elevation).
func FromAngles(name string, azimuth, elevation, distance float32, color math.Color) *Light {
	return &Light{
		Name:     name,
		Position: Direction(azimuth, elevation).Scale(distance),
		Color:    color,
	}
}
