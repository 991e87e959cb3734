package gateway

import (
	"testing"
	"time"
)

func testConnection(cm *ConnectionManager, sessionID, deviceID string) *Connection {
	conn := &Connection{
		ID:        deviceID + "-conn",
		DeviceID:  deviceID,
		SessionID: sessionID,
		Send:      make(chan []byte, 4),
		Manager:   cm,
	}
	cm.registerConnection(conn)
	return conn
}

func TestHandleBroadcastSkipsOriginDevice(t *testing.T) {
	cm := NewConnectionManager(DefaultConnectionConfig())
	origin := testConnection(cm, "sess-1", "dev-a")
	other := testConnection(cm, "sess-1", "dev-b")

	payload := []byte(`{"event":"playback.updated"}`)
	cm.handleBroadcast(BroadcastMessage{
		SessionID: "sess-1",
		Payload:   payload,
		UpdatedBy: "dev-a",
	})

	select {
	case got := <-other.Send:
		if string(got) != string(payload) {
			t.Errorf("payload = %s, want %s", got, payload)
		}
	default:
		t.Fatal("other device received nothing")
	}

	select {
	case <-origin.Send:
		t.Fatal("originating device received its own broadcast")
	default:
	}
}

func TestHandleBroadcastScopesBySession(t *testing.T) {
	cm := NewConnectionManager(DefaultConnectionConfig())
	inSession := testConnection(cm, "sess-1", "dev-a")
	otherSession := testConnection(cm, "sess-2", "dev-b")

	cm.handleBroadcast(BroadcastMessage{
		SessionID: "sess-1",
		Payload:   []byte("x"),
		UpdatedBy: "",
	})

	if len(inSession.Send) != 1 {
		t.Errorf("in-session device got %d messages, want 1", len(inSession.Send))
	}
	if len(otherSession.Send) != 0 {
		t.Error("device in another session received the broadcast")
	}
}

func TestHandleBroadcastDeliversToAllWhenNoOrigin(t *testing.T) {
	cm := NewConnectionManager(DefaultConnectionConfig())
	a := testConnection(cm, "sess-1", "dev-a")
	b := testConnection(cm, "sess-1", "dev-b")

	cm.handleBroadcast(BroadcastMessage{SessionID: "sess-1", Payload: []byte("x")})

	if len(a.Send) != 1 || len(b.Send) != 1 {
		t.Errorf("deliveries = %d/%d, want 1/1", len(a.Send), len(b.Send))
	}
}

func TestUnregisterConnection(t *testing.T) {
	cm := NewConnectionManager(DefaultConnectionConfig())
	conn := testConnection(cm, "sess-1", "dev-a")

	cm.unregisterConnection(conn)

	cm.handleBroadcast(BroadcastMessage{SessionID: "sess-1", Payload: []byte("x")})
	if len(conn.Send) != 0 {
		t.Error("unregistered connection received broadcast")
	}

	stats := cm.GetConnectionStats()
	if stats["total_connections"].(int) != 0 {
		t.Errorf("total_connections = %v, want 0", stats["total_connections"])
	}
}

func TestGetConnectionStats(t *testing.T) {
	cm := NewConnectionManager(DefaultConnectionConfig())
	testConnection(cm, "sess-1", "dev-a")
	testConnection(cm, "sess-1", "dev-b")
	testConnection(cm, "sess-2", "dev-c")

	stats := cm.GetConnectionStats()
	if stats["total_connections"].(int) != 3 {
		t.Errorf("total_connections = %v, want 3", stats["total_connections"])
	}
	if stats["active_sessions"].(int) != 2 {
		t.Errorf("active_sessions = %v, want 2", stats["active_sessions"])
	}
	counts := stats["session_connections"].(map[string]int)
	if counts["sess-1"] != 2 {
		t.Errorf("sess-1 connections = %d, want 2", counts["sess-1"])
	}
}

func TestBroadcastToSessionQueues(t *testing.T) {
	cm := NewConnectionManager(DefaultConnectionConfig())
	conn := testConnection(cm, "sess-1", "dev-b")

	cm.BroadcastToSession("sess-1", []byte("x"), "dev-a")

	select {
	case msg := <-cm.broadcastCh:
		cm.handleBroadcast(msg)
	case <-time.After(time.Second):
		t.Fatal("broadcast not queued")
	}

	if len(conn.Send) != 1 {
		t.Errorf("deliveries = %d, want 1", len(conn.Send))
	}
}
