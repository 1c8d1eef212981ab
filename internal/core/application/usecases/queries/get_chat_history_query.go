package queries

import (
	"context"
	"errors"
	"strings"
	"time"

	"ferryops/internal/core/domain/model/kernel"
	"ferryops/internal/pkg/errs"
	"ferryops/internal/pkg/guard"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"
)

var ErrGetChatHistoryQueryIsNotConstructed = errors.New(
	"GetChatHistoryQuery must be created via NewGetChatHistoryQuery constructor",
)

// GetChatHistoryQuery returns the latest persisted messages of a room, at most
// limit of them, oldest first. Messages that were broadcast but failed to
// persist are not part of it.
type GetChatHistoryQuery struct {
	roomID string
	limit  int
	guard  guard.ConstructorGuard
}

// NewGetChatHistoryQuery defaults limit to MaxPageSize when it is zero.
func NewGetChatHistoryQuery(roomID string, limit int) (GetChatHistoryQuery, error) {
	var errList []error
	roomID = strings.TrimSpace(roomID)
	if roomID == "" {
		errList = append(errList, errs.NewValueIsRequiredError("room_id"))
	}
	if limit == 0 {
		limit = MaxPageSize
	}
	if limit < 1 || limit > MaxPageSize {
		errList = append(errList, errs.NewValueIsOutOfRangeError("limit", limit, 1, MaxPageSize))
	}
	if err := errors.Join(errList...); err != nil {
		return GetChatHistoryQuery{}, err
	}

	return GetChatHistoryQuery{roomID: roomID, limit: limit, guard: guard.NewConstructorGuard()}, nil
}

func (q GetChatHistoryQuery) Validate() error {
	return q.guard.Validate(ErrGetChatHistoryQueryIsNotConstructed)
}

func (q GetChatHistoryQuery) RoomID() string { return q.roomID }
func (q GetChatHistoryQuery) Limit() int     { return q.limit }

type ChatMessageView struct {
	ID        kernel.UUID
	RoomID    string
	Sender    string
	Message   string
	Timestamp time.Time
}

type GetChatHistoryQueryHandler struct {
	db *sqlx.DB
}

func NewGetChatHistoryQueryHandler(db *sqlx.DB) GetChatHistoryQueryHandler {
	return GetChatHistoryQueryHandler{db: db}
}

type chatRow struct {
	ID        uuid.UUID `db:"id"`
	RoomID    string    `db:"room_id"`
	Sender    string    `db:"sender"`
	Message   string    `db:"message"`
	Timestamp time.Time `db:"timestamp"`
}

func (h GetChatHistoryQueryHandler) Handle(ctx context.Context, query GetChatHistoryQuery) ([]ChatMessageView, error) {
	if err := query.Validate(); err != nil {
		return nil, err
	}

	var rows []chatRow
	q := h.db.Rebind(`SELECT id, room_id, sender, message, "timestamp" FROM (
			SELECT id, room_id, sender, message, "timestamp"
			FROM chat_messages WHERE room_id = ?
			ORDER BY "timestamp" DESC, id DESC
			LIMIT ?
		) latest
		ORDER BY "timestamp", id`)
	if err := h.db.SelectContext(ctx, &rows, q, query.RoomID(), query.Limit()); err != nil {
		return nil, err
	}

	views := make([]ChatMessageView, 0, len(rows))
	for _, r := range rows {
		id, err := toUUID(r.ID)
		if err != nil {
			return nil, err
		}
		views = append(views, ChatMessageView{
			ID:        id,
			RoomID:    r.RoomID,
			Sender:    r.Sender,
			Message:   r.Message,
			Timestamp: r.Timestamp.UTC(),
		})
	}
	return views, nil
}
