package geometry

import (
	"fmt"
	"math"

	"github.com/df07/go-whitted-raytracer/pkg/core"
)

// Sphere represents a sphere shape
type Sphere struct {
	Center core.Vec3
	Radius float64
}

// NewSphere creates a new sphere
func NewSphere(center core.Vec3, radius float64) *Sphere {
	return &Sphere{
		Center: center,
		Radius: radius,
	}
}

// Intersect tests if a ray intersects with the sphere.
// The ray direction is expected to be unit length, so t is a distance.
func (s *Sphere) Intersect(ray core.Ray) (Hit, bool) {
	// Vector from sphere center to ray origin
	oc := ray.Origin.Subtract(s.Center)

	// Quadratic equation coefficients: t² + bt + c = 0
	b := 2 * ray.Direction.Dot(oc)
	c := oc.Dot(oc) - s.Radius*s.Radius

	discriminant := b*b - 4*c
	if discriminant < 0 {
		return Hit{}, false
	}

	sqrtD := math.Sqrt(discriminant)

	// Try the closer intersection point first
	root := (-b - sqrtD) / 2
	inside := false
	if !inRange(root) {
		// Ray starts inside the sphere (or on it), try the far side
		root = (-b + sqrtD) / 2
		if !inRange(root) {
			return Hit{}, false
		}
		inside = true
	}

	normal := ray.At(root).Subtract(s.Center).Normalize()
	return Hit{T: root, Normal: normal, Inside: inside}, true
}

func (s *Sphere) String() string {
	return fmt.Sprintf("Sphere(center=%v, radius=%g)", s.Center, s.Radius)
}

// inRange reports whether t is a valid forward hit parameter
func inRange(t float64) bool {
	return t > core.Epsilon && t < core.Infinity
}
