package core

import "fmt"

// RenderConfig contains the scene-level rendering switches
type RenderConfig struct {
	MaxRecursionLevel  int  // Maximum number of secondary bounces per primary ray
	AntiAliasingFactor int  // Supersampling grid size per axis (1, 2 or 3)
	RenderReflections  bool // Trace reflected rays for reflecting surfaces
	RenderRefractions  bool // Trace refracted rays for transparent surfaces
}

// DefaultRenderConfig returns sensible default values
func DefaultRenderConfig() RenderConfig {
	return RenderConfig{
		MaxRecursionLevel:  1,
		AntiAliasingFactor: 1,
		RenderReflections:  false,
		RenderRefractions:  false,
	}
}

// Validate checks the configuration ranges
func (c RenderConfig) Validate() error {
	if c.MaxRecursionLevel < 0 {
		return fmt.Errorf("max recursion level must be >= 0, got %d", c.MaxRecursionLevel)
	}
	if c.AntiAliasingFactor < 1 || c.AntiAliasingFactor > 3 {
		return fmt.Errorf("anti-aliasing factor must be 1, 2 or 3, got %d", c.AntiAliasingFactor)
	}
	return nil
}

// RaysPerPixel returns the number of primary rays traced for one pixel
func (c RenderConfig) RaysPerPixel() int {
	return c.AntiAliasingFactor * c.AntiAliasingFactor
}
