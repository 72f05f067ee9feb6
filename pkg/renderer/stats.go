package renderer

import (
	"fmt"
	"time"
)

// RenderStats contains statistics about a finished render
type RenderStats struct {
	Width, Height int
	TotalPixels   int           // Number of pixels traced
	PrimaryRays   int           // Primary rays shot, pixels times samples per pixel
	Workers       int           // Size of the worker pool
	Duration      time.Duration // Wall time of the render
}

// RaysPerSecond returns the primary ray throughput
func (s RenderStats) RaysPerSecond() float64 {
	if s.Duration <= 0 {
		return 0
	}
	return float64(s.PrimaryRays) / s.Duration.Seconds()
}

func (s RenderStats) String() string {
	return fmt.Sprintf("%dx%d, %d rays, %d workers, %v (%.0f rays/s)",
		s.Width, s.Height, s.PrimaryRays, s.Workers, s.Duration.Round(time.Millisecond), s.RaysPerSecond())
}
