package renderer

import (
	"context"
	"fmt"
	"image"
	"math"
	"time"

	"github.com/df07/go-whitted-raytracer/pkg/core"
)

// SchedulerConfig contains configuration for the render scheduler
type SchedulerConfig struct {
	NumWorkers int // Number of parallel workers (0 = use CPU count)
}

// DefaultSchedulerConfig returns sensible default values
func DefaultSchedulerConfig() SchedulerConfig {
	return SchedulerConfig{
		NumWorkers: 0, // Auto-detect CPU count
	}
}

// RenderOptions describes a single render call
type RenderOptions struct {
	Width, Height int
	PlaneWidth    float64 // Width of the view plane in world units

	// OnProgress, if set, is called from the collecting goroutine
	// after every completed row's worth of pixels
	OnProgress func(RenderProgress)
}

// RenderProgress reports how far a render has come
type RenderProgress struct {
	Completed int
	Total     int
}

// Scheduler renders a scene by tracing every pixel on a worker pool
type Scheduler struct {
	scene  Scene
	config SchedulerConfig
	logger core.Logger
}

// NewScheduler creates a new scheduler. A nil logger discards output.
func NewScheduler(scene Scene, config SchedulerConfig, logger core.Logger) *Scheduler {
	if logger == nil {
		logger = NopLogger{}
	}
	return &Scheduler{
		scene:  scene,
		config: config,
		logger: logger,
	}
}

// validator is implemented by cameras that can check their own setup
type validator interface {
	Valid() error
}

// renderContext is the state of one render call. Each call builds its own
// so a scheduler can render the same scene repeatedly or concurrently.
type renderContext struct {
	name          string
	width, height int
	camera        Camera
	raytracer     *Raytracer
	numWorkers    int
	rays          int
}

// Render traces a width x height image of the scene
func (s *Scheduler) Render(ctx context.Context, width, height int, planeWidth float64) (*image.RGBA, RenderStats, error) {
	return s.RenderWithOptions(ctx, RenderOptions{Width: width, Height: height, PlaneWidth: planeWidth})
}

// RenderWithOptions traces an image with the given options. It returns an
// error without a partial image if any pixel fails or ctx is cancelled.
func (s *Scheduler) RenderWithOptions(ctx context.Context, options RenderOptions) (*image.RGBA, RenderStats, error) {
	rc, err := s.newRenderContext(ctx, options)
	if err != nil {
		return nil, RenderStats{}, err
	}

	start := time.Now()
	total := rc.width * rc.height

	s.logger.Printf("Initialize executor. Using %d threads to render %s\n", rc.numWorkers, rc.name)
	pool := NewWorkerPool(ctx, func(x, y int) core.Vec3 {
		return rc.raytracer.TracePixel(rc.camera, x, y)
	}, rc.numWorkers)

	s.logger.Printf("Starting to shoot %d rays over %s\n", rc.rays, rc.name)
	pool.Start(rc.width, rc.height)
	s.logger.Printf("Done shooting rays.\n")

	s.logger.Printf("Waiting for results...\n")
	img := image.NewRGBA(image.Rect(0, 0, rc.width, rc.height))
	collected := 0
	for {
		result, ok := pool.GetResult()
		if !ok {
			break
		}
		img.SetRGBA(result.X, result.Y, result.Color)
		collected++

		if options.OnProgress != nil && (collected%rc.width == 0 || collected == total) {
			options.OnProgress(RenderProgress{Completed: collected, Total: total})
		}
	}

	if err := pool.Stop(); err != nil {
		return nil, RenderStats{}, fmt.Errorf("render %s: %w", rc.name, err)
	}
	if collected != total {
		return nil, RenderStats{}, fmt.Errorf("worker pool closed unexpectedly: %d of %d pixels", collected, total)
	}

	stats := RenderStats{
		Width:       rc.width,
		Height:      rc.height,
		TotalPixels: total,
		PrimaryRays: rc.rays,
		Workers:     rc.numWorkers,
		Duration:    time.Since(start),
	}
	s.logger.Printf("Ray tracing of %s has been completed in %v\n", rc.name, stats.Duration.Round(time.Millisecond))

	return img, stats, nil
}

// newRenderContext validates the request and prepares per-call state
func (s *Scheduler) newRenderContext(ctx context.Context, options RenderOptions) (*renderContext, error) {
	if options.Width <= 0 || options.Height <= 0 {
		return nil, fmt.Errorf("%w: %dx%d", ErrInvalidDimensions, options.Width, options.Height)
	}
	if !(options.PlaneWidth > 0) || math.IsInf(options.PlaneWidth, 0) {
		return nil, fmt.Errorf("%w: plane width %g", ErrInvalidDimensions, options.PlaneWidth)
	}

	config := s.scene.GetRenderConfig()
	if err := config.Validate(); err != nil {
		return nil, fmt.Errorf("scene %s: %w", s.scene.GetName(), err)
	}

	camera := s.scene.GetCamera()
	if camera == nil {
		return nil, fmt.Errorf("scene %s has no camera", s.scene.GetName())
	}
	if v, ok := camera.(validator); ok {
		if err := v.Valid(); err != nil {
			return nil, fmt.Errorf("scene %s: %w", s.scene.GetName(), err)
		}
	}

	total := options.Width * options.Height
	return &renderContext{
		name:       s.scene.GetName(),
		width:      options.Width,
		height:     options.Height,
		camera:     camera.ConfigureResolution(options.Height, options.Width, options.PlaneWidth),
		raytracer:  NewRaytracer(s.scene),
		numWorkers: WorkerCount(ctx, s.config.NumWorkers),
		rays:       total * config.RaysPerPixel(),
	}, nil
}
