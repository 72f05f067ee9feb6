package scene

import (
	"github.com/df07/go-whitted-raytracer/pkg/core"
	"github.com/df07/go-whitted-raytracer/pkg/geometry"
	"github.com/df07/go-whitted-raytracer/pkg/lights"
	"github.com/df07/go-whitted-raytracer/pkg/material"
	"github.com/df07/go-whitted-raytracer/pkg/renderer"
)

// NewSpotlightScene creates a dim room with a box and a sphere under a single spot light
func NewSpotlightScene() *Scene {
	camera := renderer.NewPinholeCamera(
		core.NewVec3(0, 3, 7),
		core.NewVec3(0, -0.45, -1),
		core.NewVec3(0, 1, 0),
		2,
	)

	s := NewScene().
		WithName("spotlight").
		WithCamera(camera).
		WithAmbient(core.NewVec3(0.05, 0.05, 0.05)).
		WithBackgroundColor(core.NewVec3(0, 0, 0)).
		WithAntiAliasingFactor(2)

	s.AddSurface(geometry.NewSurface(
		geometry.NewAxisAlignedBox(core.NewVec3(-8, -1.2, -8), core.NewVec3(8, -1, 8)),
		material.NewMatte(core.NewVec3(0.7, 0.7, 0.7)),
	))
	s.AddSurface(geometry.NewSurface(
		geometry.NewAxisAlignedBox(core.NewVec3(-0.75, -1, -0.75), core.NewVec3(0.75, 0.5, 0.75)),
		material.NewShiny(core.NewVec3(0.2, 0.4, 0.8)),
	))
	s.AddSurface(geometry.NewSurface(
		geometry.NewSphere(core.NewVec3(1.8, -0.4, 1), 0.6),
		material.NewShiny(core.NewVec3(0.9, 0.5, 0.1)),
	))

	s.AddLight(lights.NewSpotLight(
		core.NewVec3(0, 6, 0),
		core.NewVec3(0, -1, 0),
		core.NewVec3(1, 1, 0.9),
		30,
	))

	return s
}
