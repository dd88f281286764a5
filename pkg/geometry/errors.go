package geometry

import "errors"

var (
	ErrMissingRadius    = errors.New("geometry: missing radius")
	ErrMissingDirection = errors.New("geometry: missing direction")
	ErrMissingHeight    = errors.New("geometry: missing cone height")
	ErrMissingSemiAxis  = errors.New("geometry: missing spheroid semi-axis")
	ErrZeroNormal       = errors.New("geometry: zero-length normal")
	ErrUnknownShape     = errors.New("geometry: unknown shape")
	ErrNoMembers        = errors.New("geometry: convex has no member surfaces")
)
