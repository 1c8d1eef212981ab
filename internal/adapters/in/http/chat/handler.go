package chat

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"strings"
	"time"

	"ferryops/internal/adapters/in/http/auth"
	"ferryops/internal/core/application/usecases/commands"
	"ferryops/internal/core/domain/model/chat"
	"ferryops/internal/pkg/errs"

	"github.com/google/uuid"
	"github.com/gorilla/websocket"
	"github.com/labstack/echo/v4"
	"go.uber.org/zap"
)

const (
	writeWait      = 10 * time.Second
	pongWait       = 60 * time.Second
	pingPeriod     = pongWait * 9 / 10
	maxFrameLength = 16 * 1024
)

// Relay sends a message to the room and stores it.
type Relay interface {
	Handle(ctx context.Context, cmd commands.PostChatMessageCommand) (*chat.Message, error)
}

type Handler struct {
	hub      *Hub
	relay    Relay
	logger   *zap.Logger
	upgrader websocket.Upgrader
}

func NewHandler(hub *Hub, relay Relay, logger *zap.Logger) *Handler {
	return &Handler{
		hub:    hub,
		relay:  relay,
		logger: logger,
		upgrader: websocket.Upgrader{
			ReadBufferSize:  4096,
			WriteBufferSize: 4096,
			CheckOrigin: func(*http.Request) bool {
				return true
			},
		},
	}
}

// Serve upgrades the request. It must sit behind auth.RequireRole.
func (h *Handler) Serve(c echo.Context) error {
	identity, ok := auth.IdentityFrom(c)
	if !ok {
		return auth.ErrUnauthenticated
	}

	ws, err := h.upgrader.Upgrade(c.Response(), c.Request(), nil)
	if err != nil {
		// the upgrader has already replied
		h.logger.Warn("websocket upgrade failed", zap.Error(err))
		return nil
	}

	cl := &client{id: uuid.NewString(), send: make(chan []byte, sendBuffer)}
	sender := fmt.Sprintf("%s:%s", identity.Role, identity.ID)
	h.logger.Debug("chat client connected", zap.String("client_id", cl.id), zap.String("sender", sender))

	done := make(chan struct{})
	go h.writePump(ws, cl, done)
	h.readPump(c.Request().Context(), ws, cl, sender)

	h.hub.leave(cl)
	close(done)
	return nil
}

func (h *Handler) readPump(ctx context.Context, ws *websocket.Conn, cl *client, sender string) {
	defer ws.Close()

	ws.SetReadLimit(maxFrameLength)
	_ = ws.SetReadDeadline(time.Now().Add(pongWait))
	ws.SetPongHandler(func(string) error {
		return ws.SetReadDeadline(time.Now().Add(pongWait))
	})

	for {
		var in Frame
		if err := ws.ReadJSON(&in); err != nil {
			if websocket.IsUnexpectedCloseError(err, websocket.CloseGoingAway, websocket.CloseNormalClosure) {
				h.logger.Debug("chat client disconnected", zap.String("client_id", cl.id), zap.Error(err))
			}
			return
		}

		switch in.Type {
		case "join":
			room := strings.TrimSpace(in.RoomID)
			if room == "" {
				h.reply(cl, Frame{Type: "error", Error: "room_id is required"})
				continue
			}
			h.hub.join(cl, room)
			h.reply(cl, Frame{Type: "joined", RoomID: room})

		case "send":
			h.send(ctx, cl, sender, in)

		default:
			h.reply(cl, Frame{Type: "error", Error: fmt.Sprintf("unknown frame type %q", in.Type)})
		}
	}
}

func (h *Handler) send(ctx context.Context, cl *client, sender string, in Frame) {
	room := strings.TrimSpace(in.RoomID)
	if room == "" {
		h.hub.mu.RLock()
		room = cl.room
		h.hub.mu.RUnlock()
	}
	if room == "" {
		h.reply(cl, Frame{Type: "error", Error: "join a room first"})
		return
	}

	cmd, err := commands.NewPostChatMessageCommand(room, sender, in.Message, cl.id)
	if err == nil {
		var msg *chat.Message
		if msg, err = h.relay.Handle(ctx, cmd); err == nil {
			h.reply(cl, Frame{Type: "sent", ID: msg.ID().String(), RoomID: msg.RoomID()})
			return
		}
	}

	if errors.Is(err, errs.ErrValueIsRequired) || errors.Is(err, errs.ErrValueIsOutOfRange) ||
		errors.Is(err, errs.ErrValueIsInvalid) {
		h.reply(cl, Frame{Type: "error", Error: err.Error()})
		return
	}
	h.logger.Error("chat relay failed", zap.String("room_id", room), zap.Error(err))
	h.reply(cl, Frame{Type: "error", Error: "message could not be delivered"})
}

func (h *Handler) reply(cl *client, f Frame) {
	payload, err := json.Marshal(f)
	if err != nil {
		return
	}
	select {
	case cl.send <- payload:
	default:
		h.logger.Warn("chat client is not keeping up, reply dropped", zap.String("client_id", cl.id))
	}
}

func (h *Handler) writePump(ws *websocket.Conn, cl *client, done <-chan struct{}) {
	ticker := time.NewTicker(pingPeriod)
	defer func() {
		ticker.Stop()
		_ = ws.Close()
	}()

	for {
		select {
		case <-done:
			_ = ws.SetWriteDeadline(time.Now().Add(writeWait))
			_ = ws.WriteMessage(websocket.CloseMessage, websocket.FormatCloseMessage(websocket.CloseNormalClosure, ""))
			return
		case payload := <-cl.send:
			_ = ws.SetWriteDeadline(time.Now().Add(writeWait))
			if err := ws.WriteMessage(websocket.TextMessage, payload); err != nil {
				return
			}
		case <-ticker.C:
			_ = ws.SetWriteDeadline(time.Now().Add(writeWait))
			if err := ws.WriteMessage(websocket.PingMessage, nil); err != nil {
				return
			}
		}
	}
}
