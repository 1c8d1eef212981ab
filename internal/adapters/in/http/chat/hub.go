// Package chat serves the live side of the chat relay: a hub of websocket
// clients grouped by room, and the websocket endpoint that feeds it.
package chat

import (
	"context"
	"encoding/json"
	"sync"
	"time"

	"ferryops/internal/core/domain/model/chat"

	"go.uber.org/zap"
)

const sendBuffer = 32

// Frame is the JSON unit exchanged over the socket in both directions.
// Clients send "join" and "send"; the server sends "joined", "sent",
// "message" and "error".
type Frame struct {
	Type      string     `json:"type"`
	ID        string     `json:"id,omitempty"`
	RoomID    string     `json:"room_id,omitempty"`
	Sender    string     `json:"sender,omitempty"`
	Message   string     `json:"message,omitempty"`
	Timestamp *time.Time `json:"timestamp,omitempty"`
	Error     string     `json:"error,omitempty"`
}

func messageFrame(msg *chat.Message) Frame {
	ts := msg.SentAt()
	return Frame{
		Type:      "message",
		ID:        msg.ID().String(),
		RoomID:    msg.RoomID(),
		Sender:    msg.Sender(),
		Message:   msg.Body(),
		Timestamp: &ts,
	}
}

type client struct {
	id   string
	room string
	send chan []byte
}

// Hub tracks which clients of this instance are in which room.
type Hub struct {
	mu     sync.RWMutex
	rooms  map[string]map[*client]struct{}
	logger *zap.Logger
}

func NewHub(logger *zap.Logger) *Hub {
	return &Hub{rooms: make(map[string]map[*client]struct{}), logger: logger}
}

// join moves c into room, leaving the room it was in.
func (h *Hub) join(c *client, room string) {
	h.mu.Lock()
	defer h.mu.Unlock()

	h.removeLocked(c)
	members, ok := h.rooms[room]
	if !ok {
		members = make(map[*client]struct{})
		h.rooms[room] = members
	}
	members[c] = struct{}{}
	c.room = room
}

func (h *Hub) leave(c *client) {
	h.mu.Lock()
	defer h.mu.Unlock()
	h.removeLocked(c)
}

func (h *Hub) removeLocked(c *client) {
	if c.room == "" {
		return
	}
	if members, ok := h.rooms[c.room]; ok {
		delete(members, c)
		if len(members) == 0 {
			delete(h.rooms, c.room)
		}
	}
	c.room = ""
}

// Deliver pushes msg to every client in its room except excludeClient and
// returns how many got it. A client whose buffer is full misses the message.
func (h *Hub) Deliver(msg *chat.Message, excludeClient string) int {
	payload, err := json.Marshal(messageFrame(msg))
	if err != nil {
		h.logger.Error("failed to encode chat frame", zap.Error(err))
		return 0
	}

	h.mu.RLock()
	defer h.mu.RUnlock()

	n := 0
	for c := range h.rooms[msg.RoomID()] {
		if c.id == excludeClient {
			continue
		}
		select {
		case c.send <- payload:
			n++
		default:
			h.logger.Warn("chat client is not keeping up, message dropped",
				zap.String("room_id", msg.RoomID()),
				zap.String("client_id", c.id),
			)
		}
	}
	return n
}

// Broadcast implements ports.ChatBroadcaster for a single instance.
func (h *Hub) Broadcast(_ context.Context, msg *chat.Message, excludeClient string) error {
	h.Deliver(msg, excludeClient)
	return nil
}

// RoomSize reports how many local clients are in room.
func (h *Hub) RoomSize(room string) int {
	h.mu.RLock()
	defer h.mu.RUnlock()
	return len(h.rooms[room])
}
