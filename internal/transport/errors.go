package transport

import "errors"

var (
	errFrameTooLarge = errors.New("transport: frame exceeds MaxFrameSize")
	errNotBinary     = errors.New("transport: expected a binary websocket message")
)
