package commands

import (
	"errors"

	"ferryops/internal/pkg/guard"
)

var ErrPostChatMessageCommandIsNotConstructed = errors.New(
	"PostChatMessageCommand must be created via NewPostChatMessageCommand constructor",
)

// PostChatMessageCommand is a chat message sent by a supplier or inventory
// user. clientID identifies the sending connection for live relays and is
// empty for REST posts.
type PostChatMessageCommand struct { //nolint:recvcheck //using for validation
	roomID   string
	sender   string
	body     string
	clientID string

	guard guard.ConstructorGuard
}

// NewPostChatMessageCommand only builds the command; the message content is
// validated when the chat.Message is created.
func NewPostChatMessageCommand(roomID, sender, body, clientID string) (PostChatMessageCommand, error) {
	return PostChatMessageCommand{
		roomID:   roomID,
		sender:   sender,
		body:     body,
		clientID: clientID,
		guard:    guard.NewConstructorGuard(),
	}, nil
}

func (c PostChatMessageCommand) Validate() error {
	return c.guard.Validate(ErrPostChatMessageCommandIsNotConstructed)
}

func (c PostChatMessageCommand) RoomID() string   { return c.roomID }
func (c PostChatMessageCommand) Sender() string   { return c.sender }
func (c PostChatMessageCommand) Body() string     { return c.body }
func (c PostChatMessageCommand) ClientID() string { return c.clientID }
