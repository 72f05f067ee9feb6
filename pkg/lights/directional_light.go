package lights

import (
	"fmt"

	"github.com/df07/go-whitted-raytracer/pkg/core"
	"github.com/df07/go-whitted-raytracer/pkg/geometry"
)

// DirectionalLight is a light infinitely far away, shining along Direction
type DirectionalLight struct {
	Direction core.Vec3 // Direction the light travels
	Color     core.Vec3
}

// NewDirectionalLight creates a directional light
func NewDirectionalLight(direction, color core.Vec3) *DirectionalLight {
	return &DirectionalLight{
		Direction: direction.Normalize(),
		Color:     color,
	}
}

// Type implements the Light interface
func (dl *DirectionalLight) Type() LightType {
	return LightTypeDirectional
}

// RayToLight implements the Light interface
func (dl *DirectionalLight) RayToLight(point core.Vec3) core.Ray {
	return core.NewRay(point, dl.Direction.Negate().Normalize())
}

// Intensity implements the Light interface; there is no falloff
func (dl *DirectionalLight) Intensity(point core.Vec3, rayToLight core.Ray) core.Vec3 {
	return dl.Color
}

// Occludes implements the Light interface. Any finite hit blocks the light.
func (dl *DirectionalLight) Occludes(shape geometry.Shape, rayToLight core.Ray) bool {
	_, isHit := shape.Intersect(rayToLight)
	return isHit
}

func (dl *DirectionalLight) String() string {
	return fmt.Sprintf("DirectionalLight(direction=%v, color=%v)", dl.Direction, dl.Color)
}
