package source

import "errors"

var (
	ErrZeroNormal      = errors.New("source: zero-length normal")
	ErrEmptySpectrum   = errors.New("source: empty spectrum table")
	ErrInvalidRange    = errors.New("source: invalid sampling range")
	ErrNoSources       = errors.New("source: no sources to select from")
	ErrNegativeWeight  = errors.New("source: negative weight")
	ErrMissingSampler  = errors.New("source: missing sampler")
	ErrBadTemperature  = errors.New("source: temperature must be positive")
	ErrMismatchedTable = errors.New("source: wavelength and weight tables differ in length")
)
