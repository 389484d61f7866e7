//go:build unit
// +build unit

package realtime

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/Wetooa/mentara-sub026/internal/domain/notifications"
	"github.com/Wetooa/mentara-sub026/internal/pkg/testutil"

	"github.com/gorilla/websocket"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func setupHubServer(t *testing.T) (*Hub, string) {
	t.Helper()
	hub := NewHub(nil, testutil.SetupTestLogger(t))
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_ = hub.ServeWS(w, r, r.URL.Query().Get("user"))
	}))
	t.Cleanup(func() {
		hub.Close()
		server.Close()
	})
	return hub, "ws" + strings.TrimPrefix(server.URL, "http")
}

func dial(t *testing.T, url, userID string) *websocket.Conn {
	t.Helper()
	conn, _, err := websocket.DefaultDialer.Dial(url+"?user="+userID, nil)
	require.NoError(t, err)
	t.Cleanup(func() { _ = conn.Close() })
	return conn
}

func waitOnline(t *testing.T, hub *Hub, userID string) {
	t.Helper()
	require.Eventually(t, func() bool { return hub.IsOnline(userID) }, 2*time.Second, 10*time.Millisecond)
}

func TestHub_SendToUser(t *testing.T) {
	hub, url := setupHubServer(t)
	conn := dial(t, url, "user-1")
	waitOnline(t, hub, "user-1")

	require.NoError(t, hub.SendToUser("user-1", notifications.Envelope{Type: notifications.EnvelopeNotification, Data: map[string]string{"title": "hi"}}))

	_ = conn.SetReadDeadline(time.Now().Add(2 * time.Second))
	var got map[string]interface{}
	require.NoError(t, conn.ReadJSON(&got))
	assert.Equal(t, "notification", got["type"])
}

func TestHub_PingPong(t *testing.T) {
	hub, url := setupHubServer(t)
	conn := dial(t, url, "user-2")
	waitOnline(t, hub, "user-2")

	require.NoError(t, conn.WriteMessage(websocket.TextMessage, []byte(`{"type":"ping"}`)))

	_ = conn.SetReadDeadline(time.Now().Add(2 * time.Second))
	var got notifications.Envelope
	require.NoError(t, conn.ReadJSON(&got))
	assert.Equal(t, notifications.EnvelopePong, got.Type)
}

func TestHub_BroadcastAndDisconnect(t *testing.T) {
	hub, url := setupHubServer(t)
	a := dial(t, url, "user-a")
	b := dial(t, url, "user-b")
	waitOnline(t, hub, "user-a")
	waitOnline(t, hub, "user-b")
	assert.Equal(t, 2, hub.ConnectionCount())

	hub.Broadcast([]string{"user-a", "user-b", "user-a", "offline"}, notifications.Envelope{Type: notifications.EnvelopeMessage})

	for _, conn := range []*websocket.Conn{a, b} {
		_ = conn.SetReadDeadline(time.Now().Add(2 * time.Second))
		var got notifications.Envelope
		require.NoError(t, conn.ReadJSON(&got))
		assert.Equal(t, notifications.EnvelopeMessage, got.Type)
	}

	require.NoError(t, a.Close())
	require.Eventually(t, func() bool { return !hub.IsOnline("user-a") }, 2*time.Second, 10*time.Millisecond)
	assert.True(t, hub.IsOnline("user-b"))
}

func TestHub_SendToOfflineUser(t *testing.T) {
	hub := NewHub(nil, testutil.SetupTestLogger(t))
	assert.NoError(t, hub.SendToUser("nobody", notifications.Envelope{Type: notifications.EnvelopeNotification}))
}

func TestOriginChecker(t *testing.T) {
	check := originChecker([]string{"http://localhost:3000"})

	r := httptest.NewRequest(http.MethodGet, "/ws", nil)
	r.Header.Set("Origin", "http://localhost:3000")
	assert.True(t, check(r))

	r.Header.Set("Origin", "http://evil.example")
	assert.False(t, check(r))

	assert.True(t, originChecker([]string{"*"})(r))
}
