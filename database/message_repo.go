package database

import (
	"errors"
	"time"

	"github.com/collablab-app/backend/models"
	"github.com/google/uuid"
	"gorm.io/gorm"
)

type MessageRepo struct {
	db *gorm.DB
}

func NewMessageRepo(db *gorm.DB) *MessageRepo {
	return &MessageRepo{db}
}

// Create inserts a message with a server-stamped sent_at.
func (r *MessageRepo) Create(message *models.Message) error {
	message.SentAt = time.Now()
	return r.db.Create(message).Error
}

// FindByID returns a message by id, or (nil, nil) when absent.
func (r *MessageRepo) FindByID(id uuid.UUID) (*models.Message, error) {
	var message models.Message
	err := r.db.First(&message, "id = ?", id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &message, nil
}

// Conversation returns every message exchanged between two users in both
// directions, oldest first, optionally narrowed to a project. Symmetric in
// its two user arguments. No pagination; the full conversation is returned.
func (r *MessageRepo) Conversation(userA, userB uuid.UUID, projectID *uuid.UUID) ([]models.Message, error) {
	query := r.db.Where(
		r.db.Where("sender_id = ? AND receiver_id = ?", userA, userB).
			Or("sender_id = ? AND receiver_id = ?", userB, userA),
	)
	if projectID != nil {
		query = query.Where("project_id = ?", *projectID)
	}

	var messages []models.Message
	err := query.Order("sent_at asc").Find(&messages).Error
	return messages, err
}

// MarkRead flips the is_read flag on a message.
func (r *MessageRepo) MarkRead(id uuid.UUID, read bool) error {
	return r.db.Model(&models.Message{}).Where("id = ?", id).
		Update("is_read", read).Error
}

// Delete removes a message by id.
func (r *MessageRepo) Delete(id uuid.UUID) error {
	return r.db.Delete(&models.Message{}, "id = ?", id).Error
}
