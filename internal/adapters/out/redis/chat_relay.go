// Package redis fans chat messages out across service instances over Redis
// pub/sub. Every instance publishes to one channel and delivers what it
// receives, its own publishes included, to the sockets it holds.
package redis

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"ferryops/internal/core/domain/model/chat"
	"ferryops/internal/core/domain/model/kernel"
	"ferryops/internal/core/ports"

	"github.com/go-redis/redis/v8"
	"go.uber.org/zap"
)

const DefaultChatChannel = "ferryops:chat"

// LocalDeliverer hands a message to the subscribers connected to this
// instance.
type LocalDeliverer interface {
	Deliver(msg *chat.Message, excludeClient string) int
}

// ChatRelay implements ports.ChatBroadcaster.
type ChatRelay struct {
	client  *redis.Client
	channel string
	local   LocalDeliverer
	logger  *zap.Logger
}

var _ ports.ChatBroadcaster = (*ChatRelay)(nil)

type envelope struct {
	ID            string    `json:"id"`
	RoomID        string    `json:"room_id"`
	Sender        string    `json:"sender"`
	Message       string    `json:"message"`
	Timestamp     time.Time `json:"timestamp"`
	ExcludeClient string    `json:"exclude_client,omitempty"`
}

// NewClient connects and pings the server.
func NewClient(ctx context.Context, addr, password string, db int) (*redis.Client, error) {
	rdb := redis.NewClient(&redis.Options{
		Addr:         addr,
		Password:     password,
		DB:           db,
		PoolSize:     10,
		MinIdleConns: 2,
		DialTimeout:  5 * time.Second,
		ReadTimeout:  3 * time.Second,
		WriteTimeout: 3 * time.Second,
		MaxRetries:   3,
	})

	pingCtx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()
	if err := rdb.Ping(pingCtx).Err(); err != nil {
		_ = rdb.Close()
		return nil, fmt.Errorf("failed to connect to Redis at %s: %w", addr, err)
	}
	return rdb, nil
}

func NewChatRelay(client *redis.Client, channel string, local LocalDeliverer, logger *zap.Logger) *ChatRelay {
	if channel == "" {
		channel = DefaultChatChannel
	}
	return &ChatRelay{client: client, channel: channel, local: local, logger: logger}
}

// Broadcast publishes the message. Local subscribers get it once it comes back
// through Forward.
func (r *ChatRelay) Broadcast(ctx context.Context, msg *chat.Message, excludeClient string) error {
	payload, err := json.Marshal(envelope{
		ID:            msg.ID().String(),
		RoomID:        msg.RoomID(),
		Sender:        msg.Sender(),
		Message:       msg.Body(),
		Timestamp:     msg.SentAt(),
		ExcludeClient: excludeClient,
	})
	if err != nil {
		return err
	}
	return r.client.Publish(ctx, r.channel, payload).Err()
}

// Subscribe registers on the channel and waits for the server's confirmation,
// so nothing published after it returns is missed.
func (r *ChatRelay) Subscribe(ctx context.Context) (*redis.PubSub, error) {
	ps := r.client.Subscribe(ctx, r.channel)
	if _, err := ps.Receive(ctx); err != nil {
		_ = ps.Close()
		return nil, err
	}
	return ps, nil
}

// Forward delivers received messages locally until ctx is done. Malformed
// payloads are logged and skipped.
func (r *ChatRelay) Forward(ctx context.Context, ps *redis.PubSub) error {
	defer func() {
		_ = ps.Close()
	}()

	ch := ps.Channel()
	for {
		select {
		case <-ctx.Done():
			return nil
		case m, ok := <-ch:
			if !ok {
				return errors.New("redis subscription closed")
			}
			msg, exclude, err := decode(m.Payload)
			if err != nil {
				r.logger.Warn("dropping malformed chat payload", zap.String("channel", m.Channel), zap.Error(err))
				continue
			}
			r.local.Deliver(msg, exclude)
		}
	}
}

func decode(payload string) (*chat.Message, string, error) {
	var e envelope
	if err := json.Unmarshal([]byte(payload), &e); err != nil {
		return nil, "", err
	}
	id, err := kernel.UUIDFromString(e.ID)
	if err != nil {
		return nil, "", err
	}
	msg, err := chat.NewMessage(id, e.RoomID, e.Sender, e.Message, e.Timestamp)
	if err != nil {
		return nil, "", err
	}
	return msg, e.ExcludeClient, nil
}
