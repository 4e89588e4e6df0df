package websocket

import (
	"encoding/json"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestClient(hub *Hub) *Client {
	return &Client{
		hub:         hub,
		send:        make(chan []byte, 16),
		id:          "test-client",
		remoteAddr:  "127.0.0.1:0",
		connectedAt: time.Now(),
	}
}

func receive(t *testing.T, client *Client) Message {
	t.Helper()
	select {
	case data := <-client.send:
		var msg Message
		require.NoError(t, json.Unmarshal(data, &msg))
		return msg
	case <-time.After(2 * time.Second):
		t.Fatal("no message received")
		return Message{}
	}
}

func TestHubRegisterAndBroadcast(t *testing.T) {
	hub := NewHub(nil)
	hub.Start()
	defer hub.Stop()

	client := newTestClient(hub)
	hub.register <- client

	welcome := receive(t, client)
	assert.Equal(t, TypeConnection, welcome.Type)

	hub.BroadcastUpdate(TypeOperationProgress, "op-1", "load", map[string]interface{}{
		"progress": 50.0,
	})

	msg := receive(t, client)
	assert.Equal(t, TypeOperationProgress, msg.Type)
	assert.Equal(t, "op-1", msg.OperationID)
	assert.Equal(t, "load", msg.Step)
	assert.NotEmpty(t, msg.Timestamp)
}

func TestHubUnregister(t *testing.T) {
	hub := NewHub(nil)
	hub.Start()
	defer hub.Stop()

	client := newTestClient(hub)
	hub.register <- client
	receive(t, client)
	require.Eventually(t, func() bool { return hub.ClientCount() == 1 },
		time.Second, 10*time.Millisecond)

	hub.unregister <- client
	require.Eventually(t, func() bool { return hub.ClientCount() == 0 },
		time.Second, 10*time.Millisecond)

	_, open := <-client.send
	assert.False(t, open, "send channel is closed on unregister")
}

func TestHubBroadcastToMultipleClients(t *testing.T) {
	hub := NewHub(nil)
	hub.Start()
	defer hub.Stop()

	first := newTestClient(hub)
	second := newTestClient(hub)
	hub.register <- first
	hub.register <- second
	receive(t, first)
	receive(t, second)

	hub.BroadcastUpdate(TypeOperationComplete, "op-2", "", nil)

	assert.Equal(t, TypeOperationComplete, receive(t, first).Type)
	assert.Equal(t, TypeOperationComplete, receive(t, second).Type)
}

func TestHubStartIsIdempotent(t *testing.T) {
	hub := NewHub(nil)
	hub.Start()
	hub.Start()
	hub.Stop()
}
