package engine

import (
	"fmt"
	"math/rand/v2"
	"sync"
	"time"

	"github.com/df07/go-spectral-raytracer/pkg/core"
	"github.com/df07/go-spectral-raytracer/pkg/geometry"
	"github.com/df07/go-spectral-raytracer/pkg/log"
	"github.com/df07/go-spectral-raytracer/pkg/source"
	"github.com/df07/go-spectral-raytracer/pkg/trace"
)

var logger = log.New("engine")

// Handle identifies a device registered with an engine
type Handle int

// DefaultOptions returns the engine's tracing budget: deep trees and no
// amplitude cutoff.
func DefaultOptions() trace.Options {
	opts := trace.DefaultOptions()
	opts.MaxLevel = 1000
	opts.MinAmplitude = 0
	return opts
}

// Engine owns a scene: devices, sources and recorders. Registration is not
// safe for concurrent use; tracing calls may run while nothing is being
// registered.
type Engine struct {
	opts      trace.Options
	seed      uint64
	devices   []geometry.Device
	sources   []source.Source
	recorders []trace.Recorder
	previewer Previewer

	mu    sync.Mutex
	stats trace.Stats
}

// New creates an empty engine
func New(opts trace.Options) *Engine {
	return &Engine{opts: opts, seed: 1, previewer: DirectPreview{}}
}

// Options returns the tracing options
func (e *Engine) Options() trace.Options { return e.opts }

// SetSeed makes subsequent campaigns and renders reproducible
func (e *Engine) SetSeed(seed uint64) { e.seed = seed }

// SetPreviewer replaces the algorithm behind DevicesPicture
func (e *Engine) SetPreviewer(p Previewer) { e.previewer = p }

// AddDevice registers d and returns its handle
func (e *Engine) AddDevice(d geometry.Device) Handle {
	e.devices = append(e.devices, d)
	return Handle(len(e.devices) - 1)
}

// Device returns the device behind h, or nil for an unknown handle
func (e *Engine) Device(h Handle) geometry.Device {
	if h < 0 || int(h) >= len(e.devices) {
		return nil
	}
	return e.devices[h]
}

// FindDevice returns the first device registered under name
func (e *Engine) FindDevice(name string) (geometry.Device, bool) {
	for _, d := range e.devices {
		if d.Name() == name {
			return d, true
		}
	}
	return nil, false
}

// Devices returns the registered devices in registration order
func (e *Engine) Devices() []geometry.Device { return e.devices }

// AddSource registers a light source
func (e *Engine) AddSource(s source.Source) { e.sources = append(e.sources, s) }

// AddRecorder registers a recorder notified during campaigns
func (e *Engine) AddRecorder(r trace.Recorder) { e.recorders = append(e.recorders, r) }

// Stats returns the counters accumulated by every campaign and render
func (e *Engine) Stats() trace.Stats {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.stats
}

func (e *Engine) addStats(s trace.Stats) {
	e.mu.Lock()
	defer e.mu.Unlock()
	e.stats.Add(s)
}

func (e *Engine) tracer(opts trace.Options, random *rand.Rand) *trace.Tracer {
	return trace.NewTracer(e.devices, e.recorders, opts, random)
}

// Emit traces n rays drawn from the registered sources, each source chosen
// with probability proportional to its weight. Rays are numbered 0..n-1 and
// recorders see every event.
func (e *Engine) Emit(n int) error {
	if len(e.sources) == 0 {
		return ErrNoSources
	}
	sel, err := source.NewSelector(e.sources)
	if err != nil {
		return fmt.Errorf("emit: %w", err)
	}
	logger.Infof("emitting %d rays from %d sources into %d devices", n, len(e.sources), len(e.devices))
	e.emit(n, sel.Pick)
	return nil
}

// EmitRay traces a single recorded ray with id 0
func (e *Engine) EmitRay(ray core.Ray) {
	single := source.SingleRay{Ray: ray}
	e.emit(1, func(*rand.Rand) source.Source { return single })
}

func (e *Engine) emit(n int, pick func(*rand.Rand) source.Source) {
	opts := e.opts
	opts.Record = true
	random := core.NewRandom(e.seed)
	t := e.tracer(opts, random)

	start := time.Now()
	for id := 0; id < n; id++ {
		ray := pick(random).Generate(random)
		ray.ID = int64(id)
		t.Trace(ray)
	}
	s := t.Stats()
	e.addStats(s)
	logger.Infof("traced %d rays in %s: %d frames, %d escapes, %d deaths, %d faults",
		n, time.Since(start).Round(time.Millisecond), s.Frames, s.Escapes, s.Deaths, s.Faults)
}
