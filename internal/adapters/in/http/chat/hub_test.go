package chat

import (
	"context"
	"encoding/json"
	"testing"
	"time"

	"ferryops/internal/core/domain/model/chat"
	"ferryops/internal/core/domain/model/kernel"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func newClient(id string, buffer int) *client {
	return &client{id: id, send: make(chan []byte, buffer)}
}

func newMessage(t *testing.T, room string) *chat.Message {
	t.Helper()
	msg, err := chat.NewMessage(kernel.NewUUID(), room, "supplier:1", "hello", time.Now())
	require.NoError(t, err)
	return msg
}

func TestHub_DeliverSkipsSenderAndOtherRooms(t *testing.T) {
	hub := NewHub(zap.NewNop())
	a, b, c := newClient("a", 1), newClient("b", 1), newClient("c", 1)
	hub.join(a, "dock")
	hub.join(b, "dock")
	hub.join(c, "yard")

	n := hub.Deliver(newMessage(t, "dock"), "a")

	assert.Equal(t, 1, n)
	assert.Empty(t, a.send)
	assert.Empty(t, c.send)
	require.Len(t, b.send, 1)

	var f Frame
	require.NoError(t, json.Unmarshal(<-b.send, &f))
	assert.Equal(t, "message", f.Type)
	assert.Equal(t, "dock", f.RoomID)
	assert.Equal(t, "hello", f.Message)
	assert.NotNil(t, f.Timestamp)
}

func TestHub_JoinMovesClientBetweenRooms(t *testing.T) {
	hub := NewHub(zap.NewNop())
	a := newClient("a", 1)

	hub.join(a, "dock")
	hub.join(a, "yard")

	assert.Equal(t, 0, hub.RoomSize("dock"))
	assert.Equal(t, 1, hub.RoomSize("yard"))

	hub.leave(a)
	assert.Equal(t, 0, hub.RoomSize("yard"))
	assert.Empty(t, a.room)
}

func TestHub_DropsForSlowClient(t *testing.T) {
	hub := NewHub(zap.NewNop())
	slow := newClient("slow", 1)
	hub.join(slow, "dock")

	require.Equal(t, 1, hub.Deliver(newMessage(t, "dock"), ""))
	assert.Equal(t, 0, hub.Deliver(newMessage(t, "dock"), ""))
	assert.Len(t, slow.send, 1)
}

func TestHub_Broadcast(t *testing.T) {
	hub := NewHub(zap.NewNop())
	a := newClient("a", 1)
	hub.join(a, "dock")

	err := hub.Broadcast(context.Background(), newMessage(t, "dock"), "")

	require.NoError(t, err)
	assert.Len(t, a.send, 1)
}
