// Package relayserver implements a stateless, room-based WebSocket frame
// relay: every binary frame received from a connection in room R is
// rebroadcast verbatim to every other live connection in R. The relay never
// inspects or mutates frame contents; it only routes them.
package relayserver

import (
	"bufio"
	"fmt"
	"net"
	"net/http"
	"sync"
	"time"

	"github.com/gorilla/websocket"
	"github.com/rs/zerolog"
)

var upgrader = websocket.Upgrader{
	ReadBufferSize:  4096,
	WriteBufferSize: 4096,
	CheckOrigin:     func(r *http.Request) bool { return true },
}

// Server fans binary WebSocket frames out to other participants of the same
// room. The zero value is not usable; construct with New.
type Server struct {
	log zerolog.Logger

	mu    sync.RWMutex
	rooms map[string]map[*conn]struct{}
}

type conn struct {
	ws *websocket.Conn
	mu sync.Mutex // guards concurrent writes to ws
}

// New returns a Server that logs through log.
func New(log zerolog.Logger) *Server {
	return &Server{log: log, rooms: make(map[string]map[*conn]struct{})}
}

// Handler returns an http.Handler serving GET /health and the WebSocket
// upgrade at /ws?room=<name>, with a per-request access log.
func (s *Server) Handler() http.Handler {
	mux := http.NewServeMux()
	mux.HandleFunc("/health", s.handleHealth)
	mux.HandleFunc("/ws", s.handleWS)
	return accessLog(s.log, mux)
}

func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "text/plain")
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write([]byte("ok"))
}

func (s *Server) handleWS(w http.ResponseWriter, r *http.Request) {
	room := r.URL.Query().Get("room")
	if room == "" {
		room = "default"
	}

	ws, err := upgrader.Upgrade(w, r, nil)
	if err != nil {
		s.log.Warn().Err(err).Msg("websocket upgrade failed")
		return
	}
	c := &conn{ws: ws}
	s.join(room, c)
	defer s.leave(room, c)

	for {
		typ, data, err := ws.ReadMessage()
		if err != nil {
			return
		}
		if typ != websocket.BinaryMessage {
			continue
		}
		s.broadcast(room, c, data)
	}
}

func (s *Server) join(room string, c *conn) {
	s.mu.Lock()
	defer s.mu.Unlock()
	peers, ok := s.rooms[room]
	if !ok {
		peers = make(map[*conn]struct{})
		s.rooms[room] = peers
	}
	peers[c] = struct{}{}
}

func (s *Server) leave(room string, c *conn) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if peers, ok := s.rooms[room]; ok {
		delete(peers, c)
		if len(peers) == 0 {
			delete(s.rooms, room)
		}
	}
	_ = c.ws.Close()
}

func (s *Server) broadcast(room string, from *conn, data []byte) {
	s.mu.RLock()
	peers := make([]*conn, 0, len(s.rooms[room]))
	for p := range s.rooms[room] {
		if p != from {
			peers = append(peers, p)
		}
	}
	s.mu.RUnlock()

	for _, p := range peers {
		p.mu.Lock()
		err := p.ws.WriteMessage(websocket.BinaryMessage, data)
		p.mu.Unlock()
		if err != nil {
			s.log.Warn().Err(err).Str("room", room).Msg("broadcast write failed")
		}
	}
}

// statusWriter captures the response status for the access log.
type statusWriter struct {
	http.ResponseWriter
	status int
}

func (w *statusWriter) WriteHeader(code int) {
	w.status = code
	w.ResponseWriter.WriteHeader(code)
}

// Hijack lets the websocket upgrader take over the connection through our
// wrapper; without it every /ws request would fail the upgrade.
func (w *statusWriter) Hijack() (net.Conn, *bufio.ReadWriter, error) {
	hj, ok := w.ResponseWriter.(http.Hijacker)
	if !ok {
		return nil, nil, fmt.Errorf("relayserver: underlying ResponseWriter does not support hijacking")
	}
	return hj.Hijack()
}

func accessLog(log zerolog.Logger, next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		sw := &statusWriter{ResponseWriter: w, status: http.StatusOK}
		next.ServeHTTP(sw, r)
		log.Info().
			Str("method", r.Method).
			Str("path", r.URL.Path).
			Str("remote", r.RemoteAddr).
			Int("status", sw.status).
			Dur("duration", time.Since(start)).
			Msg("request")
	})
}
