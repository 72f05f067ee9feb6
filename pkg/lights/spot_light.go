package lights

import (
	"fmt"
	"math"

	"github.com/df07/go-whitted-raytracer/pkg/core"
)

// SpotLight is a point light restricted to a cone around Direction.
// Intensity falls off with the cosine between Direction and the ray from the light.
type SpotLight struct {
	PointLight
	Direction core.Vec3 // Direction the spot points
	cosCutoff float64   // Cosine of the cone half-angle
}

// NewSpotLight creates a spot light with the given cone half-angle in degrees
func NewSpotLight(position, direction, color core.Vec3, cutoffDegrees float64) *SpotLight {
	return &SpotLight{
		PointLight: PointLight{
			Position: position,
			Color:    color,
			Kc:       1,
		},
		Direction: direction.Normalize(),
		cosCutoff: math.Cos(cutoffDegrees * math.Pi / 180),
	}
}

// Type implements the Light interface
func (sl *SpotLight) Type() LightType {
	return LightTypeSpot
}

// Intensity implements the Light interface
func (sl *SpotLight) Intensity(point core.Vec3, rayToLight core.Ray) core.Vec3 {
	cosAngle := sl.Direction.Dot(rayToLight.Direction.Negate())
	if cosAngle <= 0 || cosAngle < sl.cosCutoff {
		return core.Vec3{X: 0, Y: 0, Z: 0}
	}
	return sl.PointLight.Intensity(point, rayToLight).Multiply(cosAngle)
}

func (sl *SpotLight) String() string {
	return fmt.Sprintf("SpotLight(position=%v, direction=%v, color=%v, cutoff=%.1f°)",
		sl.Position, sl.Direction, sl.Color, math.Acos(sl.cosCutoff)*180/math.Pi)
}
