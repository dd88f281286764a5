package engine

import "errors"

var ErrNoSources = errors.New("engine: no sources registered")
