package scene

import (
	"fmt"
	"strings"

	"github.com/df07/go-whitted-raytracer/pkg/core"
	"github.com/df07/go-whitted-raytracer/pkg/geometry"
	"github.com/df07/go-whitted-raytracer/pkg/lights"
	"github.com/df07/go-whitted-raytracer/pkg/renderer"
)

// Scene contains all the elements needed for rendering
type Scene struct {
	Name       string
	Camera     renderer.Camera
	Ambient    core.Vec3 // Ambient light intensity
	Background core.Vec3 // Color returned by rays that hit nothing
	Lights     []lights.Light
	Surfaces   []*geometry.Surface
	Config     core.RenderConfig
}

// NewScene creates an empty scene: white-ish ambient light, a blue sky
// background and a camera at (0,0,5) looking down -z
func NewScene() *Scene {
	return &Scene{
		Name: "scene",
		Camera: renderer.NewPinholeCamera(
			core.NewVec3(0, 0, 5),
			core.NewVec3(0, 0, -1),
			core.NewVec3(0, 1, 0),
			2,
		),
		Ambient:    core.NewVec3(0.1, 0.1, 0.1),
		Background: core.NewVec3(0, 0.5, 1),
		Lights:     make([]lights.Light, 0),
		Surfaces:   make([]*geometry.Surface, 0),
		Config:     core.DefaultRenderConfig(),
	}
}

// WithName sets the scene name used in progress messages
func (s *Scene) WithName(name string) *Scene {
	s.Name = name
	return s
}

// WithCamera sets the camera
func (s *Scene) WithCamera(camera renderer.Camera) *Scene {
	s.Camera = camera
	return s
}

// WithAmbient sets the ambient light intensity
func (s *Scene) WithAmbient(ambient core.Vec3) *Scene {
	s.Ambient = ambient
	return s
}

// WithBackgroundColor sets the color of rays that escape the scene
func (s *Scene) WithBackgroundColor(background core.Vec3) *Scene {
	s.Background = background
	return s
}

// AddLight appends a light source
func (s *Scene) AddLight(light lights.Light) *Scene {
	s.Lights = append(s.Lights, light)
	return s
}

// AddSurface appends a surface. Order matters only for equal-distance hits.
func (s *Scene) AddSurface(surface *geometry.Surface) *Scene {
	s.Surfaces = append(s.Surfaces, surface)
	return s
}

func (s *Scene) WithMaxRecursionLevel(level int) *Scene {
	s.Config.MaxRecursionLevel = level
	return s
}

func (s *Scene) WithAntiAliasingFactor(factor int) *Scene {
	s.Config.AntiAliasingFactor = factor
	return s
}

func (s *Scene) WithReflections(enabled bool) *Scene {
	s.Config.RenderReflections = enabled
	return s
}

func (s *Scene) WithRefractions(enabled bool) *Scene {
	s.Config.RenderRefractions = enabled
	return s
}

// GetName implements the renderer.Scene interface
func (s *Scene) GetName() string {
	return s.Name
}

// GetCamera implements the renderer.Scene interface
func (s *Scene) GetCamera() renderer.Camera {
	return s.Camera
}

// GetAmbient implements the renderer.Scene interface
func (s *Scene) GetAmbient() core.Vec3 {
	return s.Ambient
}

// GetBackgroundColor implements the renderer.Scene interface
func (s *Scene) GetBackgroundColor() core.Vec3 {
	return s.Background
}

// GetLights implements the renderer.Scene interface
func (s *Scene) GetLights() []lights.Light {
	return s.Lights
}

// GetSurfaces implements the renderer.Scene interface
func (s *Scene) GetSurfaces() []*geometry.Surface {
	return s.Surfaces
}

// GetRenderConfig implements the renderer.Scene interface
func (s *Scene) GetRenderConfig() core.RenderConfig {
	return s.Config
}

// Validate checks that the scene can be rendered
func (s *Scene) Validate() error {
	if s.Camera == nil {
		return fmt.Errorf("scene %s: no camera", s.Name)
	}
	if pinhole, ok := s.Camera.(*renderer.PinholeCamera); ok {
		if err := pinhole.Valid(); err != nil {
			return fmt.Errorf("scene %s: %w", s.Name, err)
		}
	}
	if err := s.Config.Validate(); err != nil {
		return fmt.Errorf("scene %s: %w", s.Name, err)
	}
	for i, surface := range s.Surfaces {
		if surface == nil || surface.Shape == nil {
			return fmt.Errorf("scene %s: surface %d has no shape", s.Name, i)
		}
		if err := surface.Material.Validate(); err != nil {
			return fmt.Errorf("scene %s: surface %d: %w", s.Name, i, err)
		}
	}
	for i, light := range s.Lights {
		if light == nil {
			return fmt.Errorf("scene %s: light %d is nil", s.Name, i)
		}
	}
	return nil
}

// GetPrimitiveCount returns the number of surfaces in the scene
func (s *Scene) GetPrimitiveCount() int {
	return len(s.Surfaces)
}

func (s *Scene) String() string {
	var b strings.Builder
	fmt.Fprintf(&b, "Camera: %v\n", s.Camera)
	fmt.Fprintf(&b, "Ambient: %v\n", s.Ambient)
	fmt.Fprintf(&b, "Background Color: %v\n", s.Background)
	fmt.Fprintf(&b, "Max recursion level: %d\n", s.Config.MaxRecursionLevel)
	fmt.Fprintf(&b, "Anti aliasing factor: %d\n", s.Config.AntiAliasingFactor)
	fmt.Fprintf(&b, "Light sources:\n")
	for _, light := range s.Lights {
		fmt.Fprintf(&b, "  %v\n", light)
	}
	fmt.Fprintf(&b, "Surfaces:\n")
	for _, surface := range s.Surfaces {
		fmt.Fprintf(&b, "  %v\n", surface)
	}
	return b.String()
}
