package ports

import (
	"context"

	"ferryops/internal/core/domain/model/chat"
)

// ChatMessageRepository stores chat history.
type ChatMessageRepository interface {
	Add(ctx context.Context, msg *chat.Message) error
}

// ChatBroadcaster delivers a message to the live subscribers of its room.
// excludeClient, when not empty, is skipped so senders do not receive their
// own frames back.
type ChatBroadcaster interface {
	Broadcast(ctx context.Context, msg *chat.Message, excludeClient string) error
}
