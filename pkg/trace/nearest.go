package trace

import (
	"github.com/df07/go-spectral-raytracer/pkg/core"
	"github.com/df07/go-spectral-raytracer/pkg/geometry"
)

// Nearest returns the index of the device with the smallest Distance-mode
// hit. Hits within SMin of each other are ties; a tie goes to the hit that
// leaves its surface, so a ray crossing two coincident boundaries is first
// released from the solid it is in.
func Nearest(devices []geometry.Device, ray core.Ray) (int, geometry.Hit, bool) {
	best := -1
	var bestHit geometry.Hit
	for i, d := range devices {
		h, ok := d.Intersect(ray, geometry.DistanceMode)
		if !ok {
			continue
		}
		if best < 0 || closer(h, bestHit) {
			best, bestHit = i, h
		}
	}
	return best, bestHit, best >= 0
}

func closer(h, best geometry.Hit) bool {
	switch {
	case h.Distance < best.Distance-core.SMin:
		return true
	case h.Distance < best.Distance+core.SMin:
		if h.Exiting != best.Exiting {
			return h.Exiting
		}
		return h.Distance < best.Distance
	}
	return false
}
