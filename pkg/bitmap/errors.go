package bitmap

import "errors"

var ErrUnknownFormat = errors.New("bitmap: unknown image format")
