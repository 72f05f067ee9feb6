package renderer

import (
	"context"
	"runtime"
	"time"

	"github.com/shirou/gopsutil/v3/cpu"
)

// minWorkers is the smallest pool the scheduler runs with
const minWorkers = 2

// WorkerCount resolves the number of render workers. A positive request is
// used as given (but never below minWorkers); otherwise the logical CPU count
// reported by the OS is used, falling back to the Go runtime's view.
// Detection gives up when ctx is done.
func WorkerCount(ctx context.Context, requested int) int {
	if requested > 0 {
		return max(minWorkers, requested)
	}

	ctx, cancel := context.WithTimeout(ctx, time.Second)
	defer cancel()

	n, err := cpu.CountsWithContext(ctx, true)
	if err != nil || n <= 0 {
		n = runtime.NumCPU()
	}
	return max(minWorkers, n)
}
