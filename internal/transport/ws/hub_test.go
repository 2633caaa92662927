package ws

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/gorilla/websocket"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"stakehub/internal/config"
	"stakehub/internal/service"
)

func receive(t *testing.T, conn *Connection) Message {
	t.Helper()
	select {
	case data := <-conn.Send:
		var msg Message
		require.NoError(t, json.Unmarshal(data, &msg))
		return msg
	case <-time.After(time.Second):
		t.Fatal("no message received")
		return Message{}
	}
}

func TestHub_BroadcastReachesOnlyOwner(t *testing.T) {
	hub := NewHub(zap.NewNop())
	defer hub.Close()

	tab1 := &Connection{OwnerID: "a", Send: make(chan []byte, 4), Hub: hub}
	tab2 := &Connection{OwnerID: "a", Send: make(chan []byte, 4), Hub: hub}
	other := &Connection{OwnerID: "b", Send: make(chan []byte, 4), Hub: hub}
	hub.Register(tab1)
	hub.Register(tab2)
	hub.Register(other)

	hub.BroadcastToOwner("a", service.EventStakeholderCreated, map[string]string{"id": "s1"})

	for _, c := range []*Connection{tab1, tab2} {
		msg := receive(t, c)
		assert.Equal(t, MessageType(service.EventStakeholderCreated), msg.Type)
		assert.JSONEq(t, `{"id":"s1"}`, string(msg.Payload))
	}
	assert.Empty(t, other.Send)
}

func TestHub_UnregisterClosesSend(t *testing.T) {
	hub := NewHub(zap.NewNop())
	defer hub.Close()

	conn := &Connection{OwnerID: "a", Send: make(chan []byte, 1), Hub: hub}
	hub.Register(conn)
	hub.Unregister(conn)

	_, open := <-conn.Send
	assert.False(t, open)
	assert.Eventually(t, func() bool { return hub.Connections("a") == 0 }, time.Second, 10*time.Millisecond)

	// a second unregister is a no-op
	hub.Unregister(conn)
}

func TestHub_CloseStopsBroadcasts(t *testing.T) {
	hub := NewHub(zap.NewNop())
	conn := &Connection{OwnerID: "a", Send: make(chan []byte, 1), Hub: hub}
	hub.Register(conn)
	hub.Close()

	_, open := <-conn.Send
	assert.False(t, open)

	// must not block once the hub is stopped
	hub.BroadcastToOwner("a", "x", nil)
	hub.Close()
}

func TestHandler_ActivityFeed(t *testing.T) {
	hub := NewHub(zap.NewNop())
	defer hub.Close()
	auth := service.NewAuthService(config.AuthConfig{Username: "admin", Password: "pw", JWTSecret: "secret"})
	login, err := auth.Login("admin", "pw")
	require.NoError(t, err)

	h := NewHandler(hub, auth, "*", zap.NewNop())
	srv := httptest.NewServer(http.HandlerFunc(h.ActivityWS))
	defer srv.Close()
	url := "ws" + strings.TrimPrefix(srv.URL, "http")

	_, resp, err := websocket.DefaultDialer.Dial(url+"?token=bogus", nil)
	require.Error(t, err)
	assert.Equal(t, http.StatusUnauthorized, resp.StatusCode)

	client, _, err := websocket.DefaultDialer.Dial(url+"?token="+login.Token, nil)
	require.NoError(t, err)
	defer client.Close()

	require.Eventually(t, func() bool { return hub.Connections(login.OwnerID) == 1 }, time.Second, 10*time.Millisecond)
	hub.BroadcastToOwner(login.OwnerID, service.EventEngagementCreated, map[string]string{"id": "e1"})

	client.SetReadDeadline(time.Now().Add(2 * time.Second))
	var msg Message
	require.NoError(t, client.ReadJSON(&msg))
	assert.Equal(t, MessageType(service.EventEngagementCreated), msg.Type)
}

func TestOriginChecker(t *testing.T) {
	check := originChecker("https://a.example, https://b.example")

	r := httptest.NewRequest("GET", "/", nil)
	assert.True(t, check(r))
	r.Header.Set("Origin", "https://b.example")
	assert.True(t, check(r))
	r.Header.Set("Origin", "https://evil.example")
	assert.False(t, check(r))

	assert.True(t, originChecker("*")(r))
}
