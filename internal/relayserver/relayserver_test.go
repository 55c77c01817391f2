package relayserver_test

import (
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/gorilla/websocket"
	"github.com/rs/zerolog"

	"ciphera/internal/relayserver"
)

func dial(t *testing.T, url, room string) *websocket.Conn {
	t.Helper()
	wsURL := "ws" + strings.TrimPrefix(url, "http") + "/ws?room=" + room
	conn, _, err := websocket.DefaultDialer.Dial(wsURL, nil)
	if err != nil {
		t.Fatalf("dial %s: %v", wsURL, err)
	}
	t.Cleanup(func() { _ = conn.Close() })
	return conn
}

func TestRelay_BroadcastsToOtherRoomMembersOnly(t *testing.T) {
	srv := relayserver.New(zerolog.Nop())
	ts := httptest.NewServer(srv.Handler())
	defer ts.Close()

	a := dial(t, ts.URL, "lobby")
	b := dial(t, ts.URL, "lobby")
	c := dial(t, ts.URL, "other-room")

	time.Sleep(50 * time.Millisecond) // let joins register

	payload := []byte("frame-from-a")
	if err := a.WriteMessage(websocket.BinaryMessage, payload); err != nil {
		t.Fatalf("WriteMessage: %v", err)
	}

	b.SetReadDeadline(time.Now().Add(2 * time.Second))
	_, got, err := b.ReadMessage()
	if err != nil {
		t.Fatalf("b.ReadMessage: %v", err)
	}
	if string(got) != string(payload) {
		t.Fatalf("got %q, want %q", got, payload)
	}

	c.SetReadDeadline(time.Now().Add(200 * time.Millisecond))
	if _, _, err := c.ReadMessage(); err == nil {
		t.Fatal("want read timeout for member of a different room, got a message")
	}
}

func TestRelay_HealthEndpoint(t *testing.T) {
	srv := relayserver.New(zerolog.Nop())
	ts := httptest.NewServer(srv.Handler())
	defer ts.Close()

	resp, err := ts.Client().Get(ts.URL + "/health")
	if err != nil {
		t.Fatalf("GET /health: %v", err)
	}
	defer resp.Body.Close()
	if resp.StatusCode != 200 {
		t.Fatalf("got status %d, want 200", resp.StatusCode)
	}
}
