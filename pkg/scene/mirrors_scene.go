package scene

import (
	"github.com/df07/go-whitted-raytracer/pkg/core"
	"github.com/df07/go-whitted-raytracer/pkg/geometry"
	"github.com/df07/go-whitted-raytracer/pkg/lights"
	"github.com/df07/go-whitted-raytracer/pkg/material"
	"github.com/df07/go-whitted-raytracer/pkg/renderer"
)

// NewMirrorsScene creates a room with a mirror floor and back wall, a red
// sphere and a glass sphere. Reflections and refractions are enabled.
func NewMirrorsScene() *Scene {
	camera := renderer.NewPinholeCamera(
		core.NewVec3(0, 0.5, 7),
		core.NewVec3(0, -0.1, -1),
		core.NewVec3(0, 1, 0),
		2,
	)

	s := NewScene().
		WithName("mirrors").
		WithCamera(camera).
		WithBackgroundColor(core.NewVec3(0.05, 0.05, 0.1)).
		WithMaxRecursionLevel(5).
		WithAntiAliasingFactor(2).
		WithReflections(true).
		WithRefractions(true)

	mirror := material.NewMirror(core.NewVec3(0.9, 0.9, 0.9))
	tintedMirror := material.NewMirror(core.NewVec3(0.7, 0.8, 1.0))
	glass := material.NewGlass(1.5)
	shinyRed := material.NewShiny(core.NewVec3(0.9, 0.1, 0.1))
	matteYellow := material.NewMatte(core.NewVec3(0.8, 0.7, 0.1)).WithReflection(core.NewVec3(0.2, 0.2, 0.2))

	// Floor and back wall
	s.AddSurface(geometry.NewSurface(
		geometry.NewAxisAlignedBox(core.NewVec3(-6, -1.2, -4), core.NewVec3(6, -1, 4)),
		mirror,
	))
	s.AddSurface(geometry.NewSurface(
		geometry.NewAxisAlignedBox(core.NewVec3(-6, -1, -4.2), core.NewVec3(6, 4, -4)),
		tintedMirror,
	))

	s.AddSurface(geometry.NewSurface(geometry.NewSphere(core.NewVec3(-1.5, 0, -1), 1), shinyRed))
	s.AddSurface(geometry.NewSurface(geometry.NewSphere(core.NewVec3(0.8, -0.2, 1), 0.8), glass))
	s.AddSurface(geometry.NewSurface(
		geometry.NewAxisAlignedBox(core.NewVec3(1.5, -1, -2.5), core.NewVec3(2.8, 0.3, -1.2)),
		matteYellow,
	))

	s.AddLight(lights.NewPointLight(core.NewVec3(0, 5, 4), core.NewVec3(0.9, 0.9, 0.9)).
		WithAttenuation(1, 0.01, 0.002))
	s.AddLight(lights.NewDirectionalLight(core.NewVec3(-1, -2, -1), core.NewVec3(0.2, 0.2, 0.2)))

	return s
}
