package renderer

import (
	"image/color"
	"math"

	"github.com/df07/go-whitted-raytracer/pkg/core"
	"github.com/df07/go-whitted-raytracer/pkg/geometry"
	"github.com/df07/go-whitted-raytracer/pkg/lights"
	"github.com/df07/go-whitted-raytracer/pkg/material"
)

// Scene interface to avoid circular imports
type Scene interface {
	GetName() string
	GetCamera() Camera
	GetAmbient() core.Vec3
	GetBackgroundColor() core.Vec3
	GetLights() []lights.Light
	GetSurfaces() []*geometry.Surface
	GetRenderConfig() core.RenderConfig
}

// Raytracer computes Whitted-style radiance for rays against a scene.
// It only reads the scene and is safe for concurrent use.
type Raytracer struct {
	surfaces   []*geometry.Surface
	lights     []lights.Light
	ambient    core.Vec3
	background core.Vec3
	config     core.RenderConfig
}

// NewRaytracer creates a raytracer over the scene's surfaces and lights
func NewRaytracer(scene Scene) *Raytracer {
	return &Raytracer{
		surfaces:   scene.GetSurfaces(),
		lights:     scene.GetLights(),
		ambient:    scene.GetAmbient(),
		background: scene.GetBackgroundColor(),
		config:     scene.GetRenderConfig(),
	}
}

// ClosestIntersection finds the nearest surface hit along the ray.
// On equal distances the surface listed first wins.
func (rt *Raytracer) ClosestIntersection(ray core.Ray) (geometry.SurfaceHit, bool) {
	var closest geometry.SurfaceHit
	closestSoFar := core.Infinity
	hitAnything := false

	for _, surface := range rt.surfaces {
		if hit, isHit := surface.Intersect(ray); isHit && hit.T < closestSoFar {
			hitAnything = true
			closestSoFar = hit.T
			closest = geometry.SurfaceHit{Hit: hit, Surface: surface}
		}
	}

	return closest, hitAnything
}

// IsLit reports whether no surface blocks the light as seen from point
func (rt *Raytracer) IsLit(point core.Vec3, light lights.Light) bool {
	rayToLight := light.RayToLight(point)
	for _, surface := range rt.surfaces {
		if light.Occludes(surface, rayToLight) {
			return false
		}
	}
	return true
}

// Shade returns the radiance arriving along ray. depth counts the bounces
// already taken; primary rays start at 0.
func (rt *Raytracer) Shade(ray core.Ray, depth int) core.Vec3 {
	hit, isHit := rt.ClosestIntersection(ray)
	if !isHit {
		return rt.background
	}

	surface := hit.Surface
	mat := surface.Material
	point := ray.At(hit.T)

	color := rt.ambient.MultiplyVec(mat.Ka)
	for _, light := range rt.lights {
		if !rt.IsLit(point, light) {
			continue
		}
		rayToLight := light.RayToLight(point)
		local := rt.diffuse(mat, hit.Normal, rayToLight).
			Add(rt.specular(mat, ray, hit.Normal, rayToLight))
		color = color.Add(local.MultiplyVec(light.Intensity(point, rayToLight)))
	}

	depth++
	if depth > rt.config.MaxRecursionLevel {
		return color
	}

	if rt.config.RenderReflections && mat.Reflecting {
		reflected := core.NewRay(point, core.Reflect(ray.Direction, hit.Normal).Normalize())
		color = color.Add(rt.Shade(reflected, depth).MultiplyVec(mat.Kr))
	}

	if rt.config.RenderRefractions && mat.Transparent {
		// Total internal reflection drops the transmitted term
		if direction, ok := core.Refract(ray.Direction, hit.Normal, surface.N1(hit.Hit), surface.N2(hit.Hit)); ok {
			refracted := core.NewRay(point, direction.Normalize())
			color = color.Add(rt.Shade(refracted, depth).MultiplyVec(mat.Kt))
		}
	}

	return color
}

// diffuse is Kd scaled by N·L. The dot product is not clamped, so a light
// behind the surface subtracts.
func (rt *Raytracer) diffuse(mat material.Material, normal core.Vec3, rayToLight core.Ray) core.Vec3 {
	l := rayToLight.Direction.Normalize()
	return mat.Kd.Multiply(normal.Dot(l))
}

// specular is the Phong term Ks·(V·R)^n, only where V·R > 0
func (rt *Raytracer) specular(mat material.Material, ray core.Ray, normal core.Vec3, rayToLight core.Ray) core.Vec3 {
	r := core.Reflect(rayToLight.Direction, normal)
	vr := ray.Direction.Normalize().Dot(r)
	if vr <= 0 {
		return core.Vec3{}
	}
	return mat.Ks.Multiply(math.Pow(vr, float64(mat.Shininess)))
}

// TracePixel averages an f x f grid of primary rays through pixel (x, y),
// f being the anti-aliasing factor
func (rt *Raytracer) TracePixel(camera Camera, x, y int) core.Vec3 {
	f := max(1, rt.config.AntiAliasingFactor)
	origin := camera.Position()

	var accum core.Vec3
	for i := 0; i < f; i++ {
		for j := 0; j < f; j++ {
			px := float64(x) + subpixelOffset(i, f)
			py := float64(y) + subpixelOffset(j, f)
			ray := core.NewRayThrough(origin, camera.MapPixelToPlanePoint(px, py))
			accum = accum.Add(rt.Shade(ray, 0))
		}
	}

	if f == 1 {
		return accum
	}
	return accum.Multiply(1.0 / float64(f*f))
}

// subpixelOffset centers sample i of f inside the pixel; f=1 gives 0
func subpixelOffset(i, f int) float64 {
	return (float64(i)+0.5)/float64(f) - 0.5
}

// vec3ToColor converts a radiance value to an 8-bit color, clamping to [0, 1]
func vec3ToColor(c core.Vec3) color.RGBA {
	c = c.Clamp(0, 1)
	return color.RGBA{
		R: uint8(255 * c.X),
		G: uint8(255 * c.Y),
		B: uint8(255 * c.Z),
		A: 255,
	}
}
