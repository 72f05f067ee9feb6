package lights

import (
	"github.com/df07/go-whitted-raytracer/pkg/core"
	"github.com/df07/go-whitted-raytracer/pkg/geometry"
)

type LightType string

const (
	LightTypePoint       LightType = "point"
	LightTypeDirectional LightType = "directional"
	LightTypeSpot        LightType = "spot"
)

// Light interface for sources used in local (Phong) illumination.
// Lights are shared read-only between render workers.
type Light interface {
	Type() LightType

	// RayToLight returns a ray FROM the shading point TOWARD the light, with a unit direction
	RayToLight(point core.Vec3) core.Ray

	// Intensity returns the light reaching point along rayToLight
	Intensity(point core.Vec3, rayToLight core.Ray) core.Vec3

	// Occludes reports whether shape blocks rayToLight before it reaches the light
	Occludes(shape geometry.Shape, rayToLight core.Ray) bool
}
