// Package chatrepo stores chat history.
package chatrepo

import (
	"context"
	"time"

	"ferryops/internal/core/domain/model/chat"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type MessageDTO struct {
	ID        uuid.UUID `gorm:"type:uuid;primaryKey"`
	RoomID    string    `gorm:"not null;index:idx_chat_room_time,priority:1"`
	Sender    string    `gorm:"not null"`
	Message   string    `gorm:"type:text;not null"`
	Timestamp time.Time `gorm:"not null;index:idx_chat_room_time,priority:2"`
}

func (MessageDTO) TableName() string {
	return "chat_messages"
}

type GormChatMessageRepository struct {
	db *gorm.DB
}

func NewGormChatMessageRepository(db *gorm.DB) *GormChatMessageRepository {
	return &GormChatMessageRepository{db: db}
}

func (r *GormChatMessageRepository) Add(ctx context.Context, msg *chat.Message) error {
	dto := MessageDTO{
		ID:        msg.ID().Bytes(),
		RoomID:    msg.RoomID(),
		Sender:    msg.Sender(),
		Message:   msg.Body(),
		Timestamp: msg.SentAt(),
	}
	return r.db.WithContext(ctx).Create(&dto).Error
}
