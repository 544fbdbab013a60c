package events

import (
	"encoding/json"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/gorilla/websocket"

	"github.com/water-iq/monitor/internal/store"
)

func testLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func dial(t *testing.T, srv *httptest.Server, origin string) (*websocket.Conn, *http.Response, error) {
	t.Helper()
	header := http.Header{}
	if origin != "" {
		header.Set("Origin", origin)
	}
	return websocket.DefaultDialer.Dial("ws"+strings.TrimPrefix(srv.URL, "http"), header)
}

func waitForClients(t *testing.T, h *Hub, want int) {
	t.Helper()
	deadline := time.Now().Add(2 * time.Second)
	for h.Clients() != want {
		if time.Now().After(deadline) {
			t.Fatalf("clients = %d, want %d", h.Clients(), want)
		}
		time.Sleep(10 * time.Millisecond)
	}
}

func TestHubBroadcastsChangeEvents(t *testing.T) {
	hub := NewHub(nil, testLogger())
	srv := httptest.NewServer(hub)
	defer srv.Close()

	conn, _, err := dial(t, srv, "")
	if err != nil {
		t.Fatalf("dial: %v", err)
	}
	defer conn.Close()
	waitForClients(t, hub, 1)

	hub.Listener()(store.ChangeEvent{Kind: store.ChangeDevicePower, ID: "d1", Actor: "admin@watermonitor.com"})

	_ = conn.SetReadDeadline(time.Now().Add(2 * time.Second))
	_, data, err := conn.ReadMessage()
	if err != nil {
		t.Fatalf("read: %v", err)
	}
	var msg struct {
		Type    string            `json:"type"`
		Payload store.ChangeEvent `json:"payload"`
	}
	if err := json.Unmarshal(data, &msg); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if msg.Type != "change" || msg.Payload.Kind != store.ChangeDevicePower || msg.Payload.ID != "d1" {
		t.Fatalf("unexpected message %s", data)
	}
}

func TestHubRejectsUnknownOrigin(t *testing.T) {
	hub := NewHub([]string{"http://dashboard.local"}, testLogger())
	srv := httptest.NewServer(hub)
	defer srv.Close()

	if _, resp, err := dial(t, srv, "http://evil.example"); err == nil {
		t.Fatalf("expected handshake failure")
	} else if resp == nil || resp.StatusCode != http.StatusForbidden {
		t.Fatalf("expected 403, got %v", resp)
	}

	conn, _, err := dial(t, srv, "http://dashboard.local")
	if err != nil {
		t.Fatalf("dial allowed origin: %v", err)
	}
	conn.Close()
}

func TestHubDropsSlowClient(t *testing.T) {
	hub := NewHub(nil, testLogger())
	slow := &client{send: make(chan []byte, 1)}
	hub.add(slow)

	hub.Broadcast("change", "first")
	hub.Broadcast("change", "second")

	if hub.Clients() != 0 {
		t.Fatalf("expected slow client to be dropped")
	}
	if _, ok := <-slow.send; !ok {
		t.Fatalf("expected the buffered message before close")
	}
	if _, ok := <-slow.send; ok {
		t.Fatalf("expected send channel closed")
	}
}

func TestHubCloseDisconnectsClients(t *testing.T) {
	hub := NewHub(nil, testLogger())
	srv := httptest.NewServer(hub)
	defer srv.Close()

	conn, _, err := dial(t, srv, "")
	if err != nil {
		t.Fatalf("dial: %v", err)
	}
	defer conn.Close()
	waitForClients(t, hub, 1)

	hub.Close()
	_ = conn.SetReadDeadline(time.Now().Add(2 * time.Second))
	if _, _, err := conn.ReadMessage(); err == nil {
		t.Fatalf("expected connection to close")
	}
	if hub.add(&client{send: make(chan []byte, 1)}) {
		t.Fatalf("closed hub accepted a client")
	}
}
