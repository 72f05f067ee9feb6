package lights

import (
	"fmt"

	"github.com/df07/go-whitted-raytracer/pkg/core"
	"github.com/df07/go-whitted-raytracer/pkg/geometry"
)

// PointLight emits in all directions from a single position with
// constant/linear/quadratic distance attenuation
type PointLight struct {
	Position core.Vec3
	Color    core.Vec3
	Kc       float64 // Constant attenuation
	Kl       float64 // Linear attenuation
	Kq       float64 // Quadratic attenuation
}

// NewPointLight creates a point light without distance falloff
func NewPointLight(position, color core.Vec3) *PointLight {
	return &PointLight{
		Position: position,
		Color:    color,
		Kc:       1,
	}
}

// WithAttenuation returns a copy with the given attenuation factors
func (pl *PointLight) WithAttenuation(kc, kl, kq float64) *PointLight {
	light := *pl
	light.Kc, light.Kl, light.Kq = kc, kl, kq
	return &light
}

// Type implements the Light interface
func (pl *PointLight) Type() LightType {
	return LightTypePoint
}

// RayToLight implements the Light interface
func (pl *PointLight) RayToLight(point core.Vec3) core.Ray {
	return core.NewRayThrough(point, pl.Position)
}

// Intensity implements the Light interface
func (pl *PointLight) Intensity(point core.Vec3, rayToLight core.Ray) core.Vec3 {
	d := pl.Position.Subtract(point).Length()
	attenuation := pl.Kc + pl.Kl*d + pl.Kq*d*d
	if attenuation <= 0 {
		return pl.Color
	}
	return pl.Color.Multiply(1 / attenuation)
}

// Occludes implements the Light interface. Only hits strictly between the
// ray origin and the light position count.
func (pl *PointLight) Occludes(shape geometry.Shape, rayToLight core.Ray) bool {
	hit, isHit := shape.Intersect(rayToLight)
	if !isHit {
		return false
	}
	return hit.T < pl.Position.Subtract(rayToLight.Origin).Length()
}

func (pl *PointLight) String() string {
	return fmt.Sprintf("PointLight(position=%v, color=%v, kc=%g, kl=%g, kq=%g)",
		pl.Position, pl.Color, pl.Kc, pl.Kl, pl.Kq)
}
