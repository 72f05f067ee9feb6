package material

import (
	"fmt"

	"github.com/df07/go-whitted-raytracer/pkg/core"
)

// AirIndex is the refractive index used outside every surface
const AirIndex = 1.0

// Material holds the Phong coefficients of a surface and its recursive
// reflection/refraction weights
type Material struct {
	Ka        core.Vec3 // Ambient coefficient
	Kd        core.Vec3 // Diffuse coefficient
	Ks        core.Vec3 // Specular coefficient
	Shininess int       // Specular exponent

	Kr         core.Vec3 // Reflection weight, used when Reflecting
	Reflecting bool

	Kt              core.Vec3 // Transmission weight, used when Transparent
	Transparent     bool
	RefractionIndex float64 // Index of the material itself; the outside is air
}

// NewMaterial returns an opaque, non-reflecting material with default coefficients
func NewMaterial() Material {
	return Material{
		Ka:              core.NewVec3(0.1, 0.1, 0.1),
		Kd:              core.NewVec3(0.8, 0.8, 0.8),
		Ks:              core.NewVec3(0.7, 0.7, 0.7),
		Shininess:       10,
		Kr:              core.NewVec3(0.3, 0.3, 0.3),
		Kt:              core.NewVec3(0.6, 0.6, 0.6),
		RefractionIndex: 1.5,
	}
}

// NewMatte creates a dull material of the given color with no highlight
func NewMatte(color core.Vec3) Material {
	return NewMaterial().
		WithAmbient(color.Multiply(0.1)).
		WithDiffuse(color).
		WithSpecular(core.NewVec3(0, 0, 0))
}

// NewShiny creates a colored material with a tight white highlight
func NewShiny(color core.Vec3) Material {
	return NewMaterial().
		WithAmbient(color.Multiply(0.1)).
		WithDiffuse(color).
		WithShininess(50)
}

// NewMirror creates a mostly reflecting material tinted by the given color
func NewMirror(tint core.Vec3) Material {
	return NewMaterial().
		WithAmbient(core.NewVec3(0.02, 0.02, 0.02)).
		WithDiffuse(tint.Multiply(0.1)).
		WithShininess(100).
		WithReflection(tint.Multiply(0.9))
}

// NewGlass creates a clear, slightly reflecting transparent material
func NewGlass(refractionIndex float64) Material {
	return NewMaterial().
		WithAmbient(core.NewVec3(0, 0, 0)).
		WithDiffuse(core.NewVec3(0.05, 0.05, 0.05)).
		WithShininess(100).
		WithReflection(core.NewVec3(0.1, 0.1, 0.1)).
		WithTransmission(core.NewVec3(0.9, 0.9, 0.9), refractionIndex)
}

// WithAmbient returns a copy with Ka replaced
func (m Material) WithAmbient(ka core.Vec3) Material {
	m.Ka = ka
	return m
}

// WithDiffuse returns a copy with Kd replaced
func (m Material) WithDiffuse(kd core.Vec3) Material {
	m.Kd = kd
	return m
}

// WithSpecular returns a copy with Ks replaced
func (m Material) WithSpecular(ks core.Vec3) Material {
	m.Ks = ks
	return m
}

// WithShininess returns a copy with the specular exponent replaced
func (m Material) WithShininess(shininess int) Material {
	m.Shininess = shininess
	return m
}

// WithReflection returns a reflecting copy weighted by kr
func (m Material) WithReflection(kr core.Vec3) Material {
	m.Kr = kr
	m.Reflecting = true
	return m
}

// WithTransmission returns a transparent copy weighted by kt
func (m Material) WithTransmission(kt core.Vec3, refractionIndex float64) Material {
	m.Kt = kt
	m.RefractionIndex = refractionIndex
	m.Transparent = true
	return m
}

// Validate checks that the material can be shaded
func (m Material) Validate() error {
	if m.Shininess < 0 {
		return fmt.Errorf("shininess must be >= 0, got %d", m.Shininess)
	}
	if m.Transparent && m.RefractionIndex <= 0 {
		return fmt.Errorf("transparent material needs a positive refraction index, got %g", m.RefractionIndex)
	}
	return nil
}

// N1 returns the refractive index on the incident side of a hit
func (m Material) N1(inside bool) float64 {
	if inside {
		return m.RefractionIndex
	}
	return AirIndex
}

// N2 returns the refractive index on the transmitted side of a hit
func (m Material) N2(inside bool) float64 {
	if inside {
		return AirIndex
	}
	return m.RefractionIndex
}

func (m Material) String() string {
	return fmt.Sprintf("Material(Ka=%v, Kd=%v, Ks=%v, shininess=%d, reflecting=%t, transparent=%t)",
		m.Ka, m.Kd, m.Ks, m.Shininess, m.Reflecting, m.Transparent)
}
