package renderer

import (
	"bytes"
	"fmt"
	"io"
	"time"

	"github.com/df07/go-spectral-raytracer/pkg/log"
	"github.com/olekukonko/tablewriter"
)

var logger = log.New("renderer")

// RenderStats describes one rendering pass
type RenderStats struct {
	Kind     string // "eye" or "preview"
	Width    int
	Height   int
	Samples  int // per pixel
	Rays     int64
	Duration time.Duration
	Workers  int
}

// RaysPerSecond returns the tracing throughput
func (s RenderStats) RaysPerSecond() float64 {
	if s.Duration <= 0 {
		return 0
	}
	return float64(s.Rays) / s.Duration.Seconds()
}

// Table writes the statistics as a text table
func (s RenderStats) Table(w io.Writer) {
	table := tablewriter.NewWriter(w)
	table.SetAutoFormatHeaders(false)
	table.SetAutoWrapText(false)
	table.SetHeader([]string{"Pass", "Size", "Samples/px", "Rays", "Workers", "Render time", "Rays/s"})
	table.Append([]string{
		s.Kind,
		fmt.Sprintf("%dx%d", s.Width, s.Height),
		fmt.Sprintf("%d", s.Samples),
		fmt.Sprintf("%d", s.Rays),
		fmt.Sprintf("%d", s.Workers),
		s.Duration.Round(time.Millisecond).String(),
		fmt.Sprintf("%.0f", s.RaysPerSecond()),
	})
	table.Render()
}

// Log writes the statistics table at notice level
func (s RenderStats) Log() {
	var buf bytes.Buffer
	s.Table(&buf)
	logger.Noticef("%s statistics\n%s", s.Kind, buf.String())
}
