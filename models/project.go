package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Project statuses
const (
	ProjectRecruiting = "recruiting"
	ProjectInProgress = "in_progress"
	ProjectCompleted  = "completed"
)

// Project represents a collaboration project posted by a user. Only the
// creator may change its status; that check lives in the access layer and is
// re-verified on every status update.
type Project struct {
	ID          uuid.UUID `json:"id" db:"id" gorm:"type:uuid;primaryKey;not null"`
	Title       string    `json:"title" db:"title" gorm:"type:text;not null"`
	Description string    `json:"description" db:"description" gorm:"type:text;not null"`
	Status      string    `json:"status" db:"status" gorm:"type:text;not null;default:recruiting"`
	Vacancies   int       `json:"vacancies" db:"vacancies" gorm:"not null;default:1"`
	Timeline    *string   `json:"timeline,omitempty" db:"timeline" gorm:"type:text"`
	CreatorID   uuid.UUID `json:"creator_id" db:"creator_id" gorm:"type:uuid;not null;index:idx_projects_creator_id"`
	CreatedAt   time.Time `json:"created_at" db:"created_at"`
	UpdatedAt   time.Time `json:"updated_at" db:"updated_at"`

	Creator *User `json:"creator,omitempty" gorm:"foreignKey:CreatorID;references:ID"`

	// Attached by the access layer's grouping pass over project_skills,
	// not by the ORM.
	Skills []ProjectSkill `json:"skills,omitempty" gorm:"-"`
}

func (p *Project) BeforeCreate(tx *gorm.DB) error {
	if p.ID == uuid.Nil {
		p.ID = uuid.New()
	}
	return nil
}
