package transport

import "ciphera/internal/domain"

var (
	_ domain.FrameReadWriter = (*TCP)(nil)
	_ domain.FrameReadWriter = (*WebSocket)(nil)
	_ domain.FrameReadWriter = (*Pipe)(nil)
)
