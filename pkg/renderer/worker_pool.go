package renderer

import (
	"context"
	"fmt"
	"image/color"

	"golang.org/x/sync/errgroup"

	"github.com/df07/go-whitted-raytracer/pkg/core"
)

// PixelTask represents one pixel to trace
type PixelTask struct {
	X, Y int
}

// PixelResult contains the traced color of one pixel
type PixelResult struct {
	X, Y  int
	Color color.RGBA
}

// PixelFunc traces the radiance of pixel (x, y)
type PixelFunc func(x, y int) core.Vec3

// WorkerPool traces pixels in parallel. The first failing worker cancels
// the rest; the failure is returned from Stop.
type WorkerPool struct {
	taskQueue   chan PixelTask
	resultQueue chan PixelResult
	workers     []*Worker
	numWorkers  int
	group       *errgroup.Group
	ctx         context.Context
	done        chan struct{}
	err         error
}

// Worker handles individual pixel tasks
type Worker struct {
	ID          int
	trace       PixelFunc
	ctx         context.Context
	taskQueue   <-chan PixelTask
	resultQueue chan<- PixelResult
}

// NewWorkerPool creates a worker pool with the specified number of workers.
// Cancelling ctx stops the pool.
func NewWorkerPool(ctx context.Context, trace PixelFunc, numWorkers int) *WorkerPool {
	numWorkers = max(1, numWorkers)
	group, groupCtx := errgroup.WithContext(ctx)

	wp := &WorkerPool{
		taskQueue:   make(chan PixelTask, numWorkers*4),
		resultQueue: make(chan PixelResult, numWorkers*4),
		numWorkers:  numWorkers,
		group:       group,
		ctx:         groupCtx,
		done:        make(chan struct{}),
	}

	for i := 0; i < numWorkers; i++ {
		wp.workers = append(wp.workers, &Worker{
			ID:          i,
			trace:       trace,
			ctx:         groupCtx,
			taskQueue:   wp.taskQueue,
			resultQueue: wp.resultQueue,
		})
	}

	return wp
}

// Start launches the workers and a producer submitting every pixel of a
// width x height image in row-major order. The result queue is closed once
// all goroutines have returned.
func (wp *WorkerPool) Start(width, height int) {
	wp.group.Go(func() error {
		return wp.submitAll(width, height)
	})
	for _, worker := range wp.workers {
		wp.group.Go(worker.run)
	}

	go func() {
		wp.err = wp.group.Wait()
		close(wp.resultQueue)
		close(wp.done)
	}()
}

func (wp *WorkerPool) submitAll(width, height int) error {
	defer close(wp.taskQueue)

	for y := 0; y < height; y++ {
		for x := 0; x < width; x++ {
			select {
			case wp.taskQueue <- PixelTask{X: x, Y: y}:
			case <-wp.ctx.Done():
				return wp.ctx.Err()
			}
		}
	}
	return nil
}

// GetResult gets the next result; ok is false once the pool has finished
func (wp *WorkerPool) GetResult() (PixelResult, bool) {
	result, ok := <-wp.resultQueue
	return result, ok
}

// Stop waits for every goroutine to exit and returns the first error
func (wp *WorkerPool) Stop() error {
	for range wp.resultQueue {
	}
	<-wp.done
	return wp.err
}

// GetNumWorkers returns the number of workers in the pool
func (wp *WorkerPool) GetNumWorkers() int {
	return wp.numWorkers
}

// run processes tasks until the queue drains or the pool is cancelled
func (w *Worker) run() error {
	for {
		select {
		case <-w.ctx.Done():
			return w.ctx.Err()
		case task, ok := <-w.taskQueue:
			if !ok {
				return nil
			}

			result, err := w.render(task)
			if err != nil {
				return err
			}

			select {
			case w.resultQueue <- result:
			case <-w.ctx.Done():
				return w.ctx.Err()
			}
		}
	}
}

// render traces one pixel, turning panics and non-finite radiance into errors
func (w *Worker) render(task PixelTask) (result PixelResult, err error) {
	defer func() {
		if r := recover(); r != nil {
			err = fmt.Errorf("%w: worker %d at pixel (%d, %d): %v", ErrWorkUnitPanic, w.ID, task.X, task.Y, r)
		}
	}()

	radiance := w.trace(task.X, task.Y)
	if !radiance.IsFinite() {
		return PixelResult{}, fmt.Errorf("%w: pixel (%d, %d) = %v", ErrNonFiniteRadiance, task.X, task.Y, radiance)
	}

	return PixelResult{X: task.X, Y: task.Y, Color: vec3ToColor(radiance)}, nil
}
