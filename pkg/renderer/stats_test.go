package renderer

import (
	"bytes"
	"strings"
	"sync"
	"testing"
	"time"
)

func TestRenderStats_Table(t *testing.T) {
	s := RenderStats{Kind: "eye", Width: 20, Height: 10, Samples: 4, Rays: 800, Duration: 2 * time.Second, Workers: 2}
	if s.RaysPerSecond() != 400 {
		t.Errorf("rays/s = %g, want 400", s.RaysPerSecond())
	}
	var buf bytes.Buffer
	s.Table(&buf)
	for _, want := range []string{"Pass", "eye", "20x10", "800", "400"} {
		if !strings.Contains(buf.String(), want) {
			t.Errorf("table missing %q:\n%s", want, buf.String())
		}
	}
	if (RenderStats{}).RaysPerSecond() != 0 {
		t.Error("zero duration should report zero throughput")
	}
}

func TestRowPool_Run(t *testing.T) {
	tests := []struct {
		name    string
		workers int
		height  int
	}{
		{"serial", 1, 17},
		{"parallel", 4, 100},
		{"more workers than rows", 16, 3},
		{"empty", 4, 0},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			pool := NewRowPool(tt.workers)
			var mu sync.Mutex
			seen := make([]int, tt.height)
			busy := make([]bool, tt.workers)
			pool.Run(tt.height, func(worker, row int) {
				mu.Lock()
				if worker < 0 || worker >= tt.workers {
					t.Errorf("worker index %d out of range", worker)
				}
				if busy[worker] {
					t.Errorf("worker %d ran two rows at once", worker)
				}
				busy[worker] = true
				seen[row]++
				mu.Unlock()

				time.Sleep(time.Microsecond)

				mu.Lock()
				busy[worker] = false
				mu.Unlock()
			})
			for row, n := range seen {
				if n != 1 {
					t.Errorf("row %d rendered %d times", row, n)
				}
			}
		})
	}
	if NewRowPool(0).NumWorkers() < 1 {
		t.Error("default pool should have at least one worker")
	}
}
