package screen

import "errors"

var ErrUnknownFormat = errors.New("screen: unknown file format")
