package recorder

import (
	"github.com/df07/go-spectral-raytracer/pkg/core"
	"github.com/df07/go-spectral-raytracer/pkg/log"
	"github.com/df07/go-spectral-raytracer/pkg/trace"
)

// Debug flags selecting which events a Logger prints
const (
	DebugRefract  = 1
	DebugReflect  = 2
	DebugLight    = 4
	DebugEscape   = 8
	DebugDie      = 16
	DebugScreen   = 32
	DebugGenerate = 64
	DebugEnd      = 128

	DebugAll = -1
)

var logger = log.New("recorder")

// Logger prints one line per selected event at debug level
type Logger struct {
	Flags int
	log   log.Logger
}

// NewLogger creates a logger printing the events selected by flags
func NewLogger(flags int) *Logger {
	return &Logger{Flags: flags, log: logger}
}

func (l *Logger) enabled(flag int) bool { return l.Flags&flag != 0 }

// Record implements trace.Recorder
func (l *Logger) Record(e trace.Event) {
	r := e.Ray
	switch e.Kind {
	case trace.Generate:
		if l.enabled(DebugGenerate) {
			l.log.Debugf("[%3d/%2d] %8s %8s r(% 8f % 8f % 8f) v(%f %f %f) %f",
				r.ID, e.Level, "generate", "", r.Origin.X, r.Origin.Y, r.Origin.Z,
				r.Direction.X, r.Direction.Y, r.Direction.Z, r.Wavelength)
		}
	case trace.Reflect, trace.Refract:
		flag := DebugReflect
		if e.Kind == trace.Refract {
			flag = DebugRefract
		}
		if l.enabled(flag) {
			side := "outer"
			if e.Hit != nil && e.Hit.Exiting {
				side = "inner"
			}
			l.log.Debugf("[%3d/%2d] %8s %8s r(% 8f % 8f % 8f) v(%f %f %f) %7s a=%g",
				r.ID, e.Level, e.Kind, deviceName(e), r.Origin.X, r.Origin.Y, r.Origin.Z,
				r.Direction.X, r.Direction.Y, r.Direction.Z, side, r.Amplitude)
		}
		l.light(e)
	case trace.Escape:
		if l.enabled(DebugEscape) {
			l.log.Debugf("[%3d/%2d] %8s %8s r(% 8f % 8f % 8f) v(%f %f %f)",
				r.ID, e.Level, "escape", "", r.Origin.X, r.Origin.Y, r.Origin.Z,
				r.Direction.X, r.Direction.Y, r.Direction.Z)
		}
	case trace.Die:
		if l.enabled(DebugDie) {
			p := r.Origin
			if e.Hit != nil {
				p = e.Hit.Point
			}
			l.log.Debugf("[%3d/%2d] %8s %8s r(% 8f % 8f % 8f) %s",
				r.ID, e.Level, "die", deviceName(e), p.X, p.Y, p.Z, e.Reason)
		}
		l.light(e)
	case trace.End:
		if l.enabled(DebugEnd) {
			l.log.Debugf("[%3d/  ] %8s", r.ID, "end")
		}
	}
}

// light reports hits on emissive surfaces. A hit can produce several
// Reflect/Refract events; only the first child (or the Die) reports it.
func (l *Logger) light(e trace.Event) {
	if !l.enabled(DebugLight) || e.Hit == nil || e.Hit.Material == nil || e.Hit.Material.Brightness <= 0 {
		return
	}
	p := e.Hit.Point
	l.log.Debugf("[%3d/%2d] %8s %8s r(% 8f % 8f % 8f) b=%g",
		e.Ray.ID, e.Level, "light", deviceName(e), p.X, p.Y, p.Z, e.Hit.Material.Brightness)
}

// ScreenHit reports a ray recorded by a screen
func (l *Logger) ScreenHit(name string, ray core.Ray, point core.Vec3) {
	if !l.enabled(DebugScreen) {
		return
	}
	l.log.Debugf("[%3d/  ] %8s %8s r(% 8f % 8f % 8f) v(%f %f %f) %f",
		ray.ID, "screen", name, point.X, point.Y, point.Z,
		ray.Direction.X, ray.Direction.Y, ray.Direction.Z, ray.Wavelength)
}

func deviceName(e trace.Event) string {
	if e.Hit == nil || e.Hit.Device == nil {
		return ""
	}
	return e.Hit.Device.Name()
}
