// Package chat models messages exchanged between suppliers and inventory
// staff in a chat room.
package chat

import (
	"errors"
	"strings"
	"time"
	"unicode/utf8"

	"ferryops/internal/core/domain/model/kernel"
	"ferryops/internal/pkg/errs"
)

// MaxBodyLength bounds a single message, in characters.
const MaxBodyLength = 4000

type Message struct {
	id     kernel.UUID
	roomID string
	sender string
	body   string
	sentAt time.Time
}

// NewMessage validates and builds a message.
func NewMessage(id kernel.UUID, roomID, sender, body string, sentAt time.Time) (*Message, error) {
	roomID = strings.TrimSpace(roomID)
	sender = strings.TrimSpace(sender)

	var errList []error
	if err := id.Validate(); err != nil {
		errList = append(errList, err)
	}
	if roomID == "" {
		errList = append(errList, errs.NewValueIsRequiredError("room_id"))
	}
	if sender == "" {
		errList = append(errList, errs.NewValueIsRequiredError("sender"))
	}
	if strings.TrimSpace(body) == "" {
		errList = append(errList, errs.NewValueIsRequiredError("message"))
	} else if n := utf8.RuneCountInString(body); n > MaxBodyLength {
		errList = append(errList, errs.NewValueIsOutOfRangeErrorWithCause(
			"message length", n, 1, MaxBodyLength, errors.New("message is too long")))
	}
	if err := errors.Join(errList...); err != nil {
		return nil, err
	}

	return &Message{id: id, roomID: roomID, sender: sender, body: body, sentAt: sentAt.UTC()}, nil
}

func (m *Message) ID() kernel.UUID   { return m.id }
func (m *Message) RoomID() string    { return m.roomID }
func (m *Message) Sender() string    { return m.sender }
func (m *Message) Body() string      { return m.body }
func (m *Message) SentAt() time.Time { return m.sentAt }
