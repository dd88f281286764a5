package renderer

import (
	"runtime"
	"sync"
	"sync/atomic"
)

// RowPool renders an image row by row on a fixed set of goroutines. Rows
// are claimed from a shared counter, so fast workers take more rows.
type RowPool struct {
	numWorkers int
}

// NewRowPool creates a pool of numWorkers goroutines; 0 or less uses
// every CPU
func NewRowPool(numWorkers int) *RowPool {
	if numWorkers <= 0 {
		numWorkers = runtime.NumCPU()
	}
	return &RowPool{numWorkers: numWorkers}
}

// NumWorkers returns the number of goroutines used by Run
func (p *RowPool) NumWorkers() int { return p.numWorkers }

// Run calls fn once for every row in [0, height) and returns when all rows
// are done. fn receives the index of the worker running it; calls with the
// same worker index never overlap.
func (p *RowPool) Run(height int, fn func(worker, row int)) {
	workers := min(p.numWorkers, height)
	if workers <= 1 {
		for row := 0; row < height; row++ {
			fn(0, row)
		}
		return
	}

	var next atomic.Int64
	var wg sync.WaitGroup
	for w := 0; w < workers; w++ {
		wg.Add(1)
		go func(worker int) {
			defer wg.Done()
			for {
				row := int(next.Add(1) - 1)
				if row >= height {
					return
				}
				fn(worker, row)
			}
		}(w)
	}
	wg.Wait()
}
