// Package transport provides concrete domain.FrameReadWriter implementations
// over TCP (4-byte big-endian length-prefixed) and WebSocket (native binary
// framing) connections.
package transport

import (
	"context"
	"encoding/binary"
	"io"
	"net"

	"ciphera/internal/e2eeerr"
)

// MaxFrameSize bounds a single frame to guard against a peer claiming an
// unreasonable length prefix.
const MaxFrameSize = 16 << 20 // 16 MiB

const opTCP = "transport.tcp"

// TCP implements domain.FrameReadWriter over a net.Conn using a 4-byte
// big-endian length prefix per frame.
type TCP struct {
	conn net.Conn
}

// NewTCP wraps an already-established connection.
func NewTCP(conn net.Conn) *TCP {
	return &TCP{conn: conn}
}

func (t *TCP) SendFrame(ctx context.Context, b []byte) error {
	if dl, ok := ctx.Deadline(); ok {
		_ = t.conn.SetWriteDeadline(dl)
	}
	var hdr [4]byte
	binary.BigEndian.PutUint32(hdr[:], uint32(len(b)))
	if _, err := t.conn.Write(hdr[:]); err != nil {
		return e2eeerr.New(e2eeerr.Transport, opTCP, err)
	}
	if _, err := t.conn.Write(b); err != nil {
		return e2eeerr.New(e2eeerr.Transport, opTCP, err)
	}
	return nil
}

func (t *TCP) RecvFrame(ctx context.Context) ([]byte, error) {
	if dl, ok := ctx.Deadline(); ok {
		_ = t.conn.SetReadDeadline(dl)
	}
	var hdr [4]byte
	if _, err := io.ReadFull(t.conn, hdr[:]); err != nil {
		return nil, e2eeerr.New(e2eeerr.Transport, opTCP, err)
	}
	n := binary.BigEndian.Uint32(hdr[:])
	if n > MaxFrameSize {
		return nil, e2eeerr.New(e2eeerr.Transport, opTCP, errFrameTooLarge)
	}
	buf := make([]byte, n)
	if _, err := io.ReadFull(t.conn, buf); err != nil {
		return nil, e2eeerr.New(e2eeerr.Transport, opTCP, err)
	}
	return buf, nil
}

func (t *TCP) Close() error { return t.conn.Close() }
