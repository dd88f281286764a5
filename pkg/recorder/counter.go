package recorder

import (
	"fmt"
	"io"
	"sync"

	"github.com/df07/go-spectral-raytracer/pkg/trace"
	"github.com/olekukonko/tablewriter"
)

// Counter tallies events and the energy leaving a campaign
type Counter struct {
	mu       sync.Mutex
	events   [trace.End + 1]int64
	reasons  [trace.Fault + 1]int64
	emitted  float64
	escaped  float64
	absorbed float64
	lost     float64
}

// NewCounter creates an empty counter
func NewCounter() *Counter {
	return &Counter{}
}

// Record implements trace.Recorder
func (c *Counter) Record(e trace.Event) {
	c.mu.Lock()
	defer c.mu.Unlock()

	if e.Kind >= 0 && int(e.Kind) < len(c.events) {
		c.events[e.Kind]++
	}
	switch e.Kind {
	case trace.Generate:
		c.emitted += e.Ray.Amplitude
	case trace.Escape:
		c.escaped += e.Ray.Amplitude
	case trace.Die:
		if e.Reason >= 0 && int(e.Reason) < len(c.reasons) {
			c.reasons[e.Reason]++
		}
		if e.Reason == trace.Absorbed {
			c.absorbed += e.Ray.Amplitude
		} else {
			c.lost += e.Ray.Amplitude
		}
	}
}

// Count returns how many events of kind were seen
func (c *Counter) Count(kind trace.EventKind) int64 {
	c.mu.Lock()
	defer c.mu.Unlock()
	if kind < 0 || int(kind) >= len(c.events) {
		return 0
	}
	return c.events[kind]
}

// Deaths returns how many rays died for reason
func (c *Counter) Deaths(reason trace.DieReason) int64 {
	c.mu.Lock()
	defer c.mu.Unlock()
	if reason < 0 || int(reason) >= len(c.reasons) {
		return 0
	}
	return c.reasons[reason]
}

// Energy returns the summed amplitude of emitted, escaped, absorbed and
// budget-terminated rays.
func (c *Counter) Energy() (emitted, escaped, absorbed, lost float64) {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.emitted, c.escaped, c.absorbed, c.lost
}

// Reset zeroes all counts
func (c *Counter) Reset() {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.events = [trace.End + 1]int64{}
	c.reasons = [trace.Fault + 1]int64{}
	c.emitted, c.escaped, c.absorbed, c.lost = 0, 0, 0, 0
}

// Table writes the counts as a text table
func (c *Counter) Table(w io.Writer) {
	c.mu.Lock()
	defer c.mu.Unlock()

	table := tablewriter.NewWriter(w)
	table.SetAutoFormatHeaders(false)
	table.SetAlignment(tablewriter.ALIGN_LEFT)
	table.SetHeader([]string{"Event", "Detail", "Count", "Energy"})
	for k := trace.Generate; k <= trace.End; k++ {
		energy := ""
		switch k {
		case trace.Generate:
			energy = fmt.Sprintf("%.4g", c.emitted)
		case trace.Escape:
			energy = fmt.Sprintf("%.4g", c.escaped)
		}
		table.Append([]string{k.String(), "", fmt.Sprintf("%d", c.events[k]), energy})
		if k != trace.Die {
			continue
		}
		for r := trace.Absorbed; r <= trace.Fault; r++ {
			energy := ""
			if r == trace.Absorbed {
				energy = fmt.Sprintf("%.4g", c.absorbed)
			}
			table.Append([]string{"", r.String(), fmt.Sprintf("%d", c.reasons[r]), energy})
		}
	}
	table.SetFooter([]string{"", "", "lost", fmt.Sprintf("%.4g", c.lost)})
	table.Render()
}
