package transport

import (
	"context"

	"github.com/gorilla/websocket"

	"ciphera/internal/e2eeerr"
)

const opWS = "transport.websocket"

// WebSocket implements domain.FrameReadWriter over a gorilla/websocket
// connection, sending and receiving each frame as a single binary message.
type WebSocket struct {
	conn *websocket.Conn
}

// NewWebSocket wraps an already-established connection.
func NewWebSocket(conn *websocket.Conn) *WebSocket {
	return &WebSocket{conn: conn}
}

func (w *WebSocket) SendFrame(ctx context.Context, b []byte) error {
	if dl, ok := ctx.Deadline(); ok {
		_ = w.conn.SetWriteDeadline(dl)
	}
	if err := w.conn.WriteMessage(websocket.BinaryMessage, b); err != nil {
		return e2eeerr.New(e2eeerr.Transport, opWS, err)
	}
	return nil
}

func (w *WebSocket) RecvFrame(ctx context.Context) ([]byte, error) {
	if dl, ok := ctx.Deadline(); ok {
		_ = w.conn.SetReadDeadline(dl)
	}
	typ, b, err := w.conn.ReadMessage()
	if err != nil {
		return nil, e2eeerr.New(e2eeerr.Transport, opWS, err)
	}
	if typ != websocket.BinaryMessage {
		return nil, e2eeerr.New(e2eeerr.Transport, opWS, errNotBinary)
	}
	return b, nil
}

func (w *WebSocket) Close() error { return w.conn.Close() }
