package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Message is a direct message between two users, optionally scoped to a
// project. ReceiverID and ProjectID are both nullable; the access layer
// requires a receiver on create but does not otherwise enforce exclusivity.
type Message struct {
	ID         uuid.UUID  `json:"id" db:"id" gorm:"type:uuid;primaryKey;not null"`
	SenderID   uuid.UUID  `json:"sender_id" db:"sender_id" gorm:"type:uuid;not null;index:idx_messages_sender_id"`
	ReceiverID *uuid.UUID `json:"receiver_id,omitempty" db:"receiver_id" gorm:"type:uuid;index:idx_messages_receiver_id"`
	ProjectID  *uuid.UUID `json:"project_id,omitempty" db:"project_id" gorm:"type:uuid"`
	Content    string     `json:"content" db:"content" gorm:"type:text;not null"`
	SentAt     time.Time  `json:"sent_at" db:"sent_at" gorm:"not null;index:idx_messages_sent_at"`
	IsRead     bool       `json:"is_read" db:"is_read" gorm:"not null;default:false"`

	Sender User `json:"sender,omitempty" gorm:"foreignKey:SenderID;references:ID"`
}

func (m *Message) BeforeCreate(tx *gorm.DB) error {
	if m.ID == uuid.Nil {
		m.ID = uuid.New()
	}
	return nil
}
