package scene

import "errors"

var (
	ErrUnknownScene   = errors.New("scene: unknown scene")
	ErrUnknownQuality = errors.New("scene: unknown quality")
)
