package screen

import (
	"encoding/csv"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/df07/go-spectral-raytracer/pkg/core"
)

var csvHeader = []string{"x", "y", "z", "direction_x", "direction_y", "direction_z", "amp", "freq"}

// SaveCSV writes the recorded rays to path. The file must have no
// extension or a .csv one.
func (s *Screen) SaveCSV(path string) error {
	switch strings.ToLower(filepath.Ext(path)) {
	case "", ".csv":
	default:
		return fmt.Errorf("%w: %q", ErrUnknownFormat, path)
	}
	file, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("failed to create screen file: %w", err)
	}
	if err := WriteCSV(file, s.Rays()); err != nil {
		file.Close()
		return fmt.Errorf("failed to write %s: %w", path, err)
	}
	return file.Close()
}

// WriteCSV writes one row per ray: hit point, direction, amplitude and
// wavelength
func WriteCSV(w io.Writer, rays []core.Ray) error {
	cw := csv.NewWriter(w)
	if err := cw.Write(csvHeader); err != nil {
		return err
	}
	f := func(v float64) string { return strconv.FormatFloat(v, 'g', -1, 64) }
	for _, r := range rays {
		row := []string{
			f(r.Origin.X), f(r.Origin.Y), f(r.Origin.Z),
			f(r.Direction.X), f(r.Direction.Y), f(r.Direction.Z),
			f(r.Amplitude), f(r.Wavelength),
		}
		if err := cw.Write(row); err != nil {
			return err
		}
	}
	cw.Flush()
	return cw.Error()
}
