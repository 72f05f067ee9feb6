package scene

import (
	"github.com/df07/go-whitted-raytracer/pkg/core"
	"github.com/df07/go-whitted-raytracer/pkg/geometry"
	"github.com/df07/go-whitted-raytracer/pkg/lights"
	"github.com/df07/go-whitted-raytracer/pkg/material"
	"github.com/df07/go-whitted-raytracer/pkg/renderer"
)

// NewDefaultScene creates a default scene with spheres, a box and a floor,
// lit by a point light and a weak directional fill light
func NewDefaultScene() *Scene {
	camera := renderer.NewPinholeCamera(
		core.NewVec3(0, 1, 6),      // Slightly above the floor
		core.NewVec3(0, -0.15, -1), // Looking a little down
		core.NewVec3(0, 1, 0),
		2,
	)

	s := NewScene().
		WithName("default").
		WithCamera(camera)

	// Create materials
	floorGray := material.NewMatte(core.NewVec3(0.6, 0.6, 0.6))
	shinyRed := material.NewShiny(core.NewVec3(0.8, 0.15, 0.1))
	shinyBlue := material.NewShiny(core.NewVec3(0.1, 0.2, 0.7))
	matteGreen := material.NewMatte(core.NewVec3(0.2, 0.6, 0.2))

	s.AddSurface(geometry.NewSurface(
		geometry.NewAxisAlignedBox(core.NewVec3(-5, -1.2, -5), core.NewVec3(5, -1, 3)),
		floorGray,
	))
	s.AddSurface(geometry.NewSurface(geometry.NewSphere(core.NewVec3(-1.2, 0, 0), 1), shinyRed))
	s.AddSurface(geometry.NewSurface(
		geometry.NewAxisAlignedBox(core.NewVec3(0.5, -1, -0.5), core.NewVec3(2, 0.5, 1)),
		matteGreen,
	))
	s.AddSurface(geometry.NewSurface(geometry.NewSphere(core.NewVec3(0.3, -0.6, 1.6), 0.4), shinyBlue))

	s.AddLight(lights.NewPointLight(core.NewVec3(-3, 5, 5), core.NewVec3(0.8, 0.8, 0.8)).
		WithAttenuation(1, 0.02, 0.001))
	s.AddLight(lights.NewDirectionalLight(core.NewVec3(1, -1, -1), core.NewVec3(0.3, 0.3, 0.3)))

	return s
}
