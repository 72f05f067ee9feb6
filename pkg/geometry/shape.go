package geometry

import (
	"fmt"

	"github.com/df07/go-whitted-raytracer/pkg/core"
	"github.com/df07/go-whitted-raytracer/pkg/material"
)

// Hit contains information about a ray-shape intersection
type Hit struct {
	T      float64   // Parameter t along the ray, always > core.Epsilon
	Normal core.Vec3 // Outward unit normal at the hit point
	Inside bool      // Whether the ray started inside the shape
}

// Shape interface for objects that can be hit by rays.
// Intersect returns the nearest forward hit with core.Epsilon < t < core.Infinity.
// Implementations must be safe for concurrent use.
type Shape interface {
	Intersect(ray core.Ray) (Hit, bool)
}

// Surface is a shape with the material it is rendered with
type Surface struct {
	Shape
	Material material.Material
}

// NewSurface creates a new surface
func NewSurface(shape Shape, mat material.Material) *Surface {
	return &Surface{Shape: shape, Material: mat}
}

// N1 returns the refractive index on the side the ray arrives from
func (s *Surface) N1(hit Hit) float64 {
	return s.Material.N1(hit.Inside)
}

// N2 returns the refractive index on the side the ray continues into
func (s *Surface) N2(hit Hit) float64 {
	return s.Material.N2(hit.Inside)
}

func (s *Surface) String() string {
	return fmt.Sprintf("%v %v", s.Shape, s.Material)
}

// SurfaceHit is a hit at scene level, tagged with the surface that produced it
type SurfaceHit struct {
	Hit
	Surface *Surface
}
