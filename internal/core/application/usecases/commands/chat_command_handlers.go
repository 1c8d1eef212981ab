package commands

import (
	"context"
	"time"

	"ferryops/internal/core/domain/model/chat"
	"ferryops/internal/core/domain/model/kernel"
	"ferryops/internal/core/ports"
	"ferryops/internal/pkg/metrics"

	"go.uber.org/zap"
)

// PostChatMessageCommandHandler stores a message and then pushes it to live
// subscribers. A failed push is logged; the stored message is still returned.
type PostChatMessageCommandHandler struct {
	uowFactory  ChatUoWFactory
	broadcaster ports.ChatBroadcaster
	logger      *zap.Logger
}

func NewPostChatMessageCommandHandler(
	uowFactory ChatUoWFactory,
	broadcaster ports.ChatBroadcaster,
	logger *zap.Logger,
) PostChatMessageCommandHandler {
	return PostChatMessageCommandHandler{uowFactory: uowFactory, broadcaster: broadcaster, logger: logger}
}

func (h PostChatMessageCommandHandler) Handle(ctx context.Context, cmd PostChatMessageCommand) (*chat.Message, error) {
	if err := cmd.Validate(); err != nil {
		return nil, err
	}

	msg, err := chat.NewMessage(kernel.NewUUID(), cmd.RoomID(), cmd.Sender(), cmd.Body(), time.Now())
	if err != nil {
		return nil, err
	}

	if err = persistChatMessage(ctx, h.uowFactory, msg); err != nil {
		return nil, err
	}

	if err = h.broadcaster.Broadcast(ctx, msg, cmd.ClientID()); err != nil {
		h.logger.Warn("chat broadcast failed", zap.String("room_id", msg.RoomID()), zap.Error(err))
	}
	metrics.ChatMessages.WithLabelValues("delivered").Inc()

	return msg, nil
}

// RelayChatMessageCommandHandler serves live connections: the message goes to
// the other subscribers of the room first and is persisted afterwards. A
// persistence failure is logged and does not undo the delivery, so such a
// message is missing from history.
type RelayChatMessageCommandHandler struct {
	uowFactory  ChatUoWFactory
	broadcaster ports.ChatBroadcaster
	logger      *zap.Logger
}

func NewRelayChatMessageCommandHandler(
	uowFactory ChatUoWFactory,
	broadcaster ports.ChatBroadcaster,
	logger *zap.Logger,
) RelayChatMessageCommandHandler {
	return RelayChatMessageCommandHandler{uowFactory: uowFactory, broadcaster: broadcaster, logger: logger}
}

// Handle returns an error only when the message is invalid or could not be
// broadcast.
func (h RelayChatMessageCommandHandler) Handle(ctx context.Context, cmd PostChatMessageCommand) (*chat.Message, error) {
	if err := cmd.Validate(); err != nil {
		return nil, err
	}

	msg, err := chat.NewMessage(kernel.NewUUID(), cmd.RoomID(), cmd.Sender(), cmd.Body(), time.Now())
	if err != nil {
		return nil, err
	}

	if err = h.broadcaster.Broadcast(ctx, msg, cmd.ClientID()); err != nil {
		return nil, err
	}

	if err = persistChatMessage(ctx, h.uowFactory, msg); err != nil {
		metrics.ChatMessages.WithLabelValues("persist_failed").Inc()
		h.logger.Error("chat message delivered but not persisted",
			zap.String("room_id", msg.RoomID()),
			zap.String("message_id", msg.ID().String()),
			zap.Error(err),
		)
		return msg, nil
	}

	metrics.ChatMessages.WithLabelValues("delivered").Inc()
	return msg, nil
}

func persistChatMessage(ctx context.Context, f ChatUoWFactory, msg *chat.Message) error {
	uow := f.Create()
	if err := uow.Begin(ctx); err != nil {
		return err
	}

	defer func() {
		_ = uow.Rollback(ctx)
	}()

	if err := uow.ChatMessageRepository().Add(ctx, msg); err != nil {
		return err
	}

	return uow.Commit(ctx)
}
