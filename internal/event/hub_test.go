package event

import (
	"encoding/json"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/gorilla/websocket"
)

func newHubServer(t *testing.T, hub *Hub) *httptest.Server {
	t.Helper()

	upgrader := websocket.Upgrader{CheckOrigin: func(r *http.Request) bool { return true }}
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		conn, err := upgrader.Upgrade(w, r, nil)
		if err != nil {
			t.Errorf("upgrade: %v", err)
			return
		}
		hub.Register(conn)
	}))
	t.Cleanup(srv.Close)
	return srv
}

func dialHub(t *testing.T, srv *httptest.Server) *websocket.Conn {
	t.Helper()

	url := "ws" + strings.TrimPrefix(srv.URL, "http")
	conn, _, err := websocket.DefaultDialer.Dial(url, nil)
	if err != nil {
		t.Fatalf("dial: %v", err)
	}
	t.Cleanup(func() { conn.Close() })
	return conn
}

func TestHubBroadcastReachesSubscribers(t *testing.T) {
	hub := NewHub(slog.Default())
	srv := newHubServer(t, hub)
	conn := dialHub(t, srv)

	deadline := time.Now().Add(2 * time.Second)
	for hub.SubscriberCount() == 0 {
		if time.Now().After(deadline) {
			t.Fatal("subscriber never registered")
		}
		time.Sleep(time.Millisecond)
	}

	regionID := "crystal_cave"
	hub.Broadcast(WorldEvent{
		Type:     TypeTravel,
		Source:   SourcePhysics,
		RegionID: &regionID,
		Payload:  map[string]interface{}{"character_id": 1},
	})

	conn.SetReadDeadline(time.Now().Add(2 * time.Second))
	_, data, err := conn.ReadMessage()
	if err != nil {
		t.Fatalf("read: %v", err)
	}

	var got WorldEvent
	if err := json.Unmarshal(data, &got); err != nil {
		t.Fatalf("unmarshal: %v", err)
	}
	if got.Type != TypeTravel || got.Source != SourcePhysics {
		t.Errorf("event = %+v", got)
	}
	if got.RegionID == nil || *got.RegionID != "crystal_cave" {
		t.Errorf("RegionID = %v, want crystal_cave", got.RegionID)
	}
}

func TestHubUnregisterStopsDelivery(t *testing.T) {
	hub := NewHub(slog.Default())
	srv := newHubServer(t, hub)
	dialHub(t, srv)

	deadline := time.Now().Add(2 * time.Second)
	for hub.SubscriberCount() == 0 {
		if time.Now().After(deadline) {
			t.Fatal("subscriber never registered")
		}
		time.Sleep(time.Millisecond)
	}

	hub.mu.Lock()
	var conn *websocket.Conn
	for c := range hub.clients {
		conn = c
	}
	hub.mu.Unlock()

	hub.Unregister(conn)
	if got := hub.SubscriberCount(); got != 0 {
		t.Errorf("SubscriberCount = %d, want 0", got)
	}

	// Broadcasting to an empty hub is a no-op.
	hub.Broadcast(WorldEvent{Type: TypeCollision, Source: SourcePhysics})
}

func TestHubDropsBrokenConnections(t *testing.T) {
	hub := NewHub(slog.Default())
	srv := newHubServer(t, hub)
	conn := dialHub(t, srv)

	deadline := time.Now().Add(2 * time.Second)
	for hub.SubscriberCount() == 0 {
		if time.Now().After(deadline) {
			t.Fatal("subscriber never registered")
		}
		time.Sleep(time.Millisecond)
	}

	conn.Close()

	// The write to a closed connection may not fail immediately; retry
	// until the hub notices and evicts the subscriber.
	deadline = time.Now().Add(2 * time.Second)
	for hub.SubscriberCount() > 0 {
		if time.Now().After(deadline) {
			t.Fatal("broken subscriber was never dropped")
		}
		hub.Broadcast(WorldEvent{Type: TypeCollision, Source: SourcePhysics})
		time.Sleep(10 * time.Millisecond)
	}
}
