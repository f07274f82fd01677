package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Application statuses. Accepted and rejected are terminal.
const (
	ApplicationPending  = "pending"
	ApplicationAccepted = "accepted"
	ApplicationRejected = "rejected"
)

// Application is a user's request to join a project. The message text may be
// edited while the application is still pending; status transitions are
// restricted to the project creator.
type Application struct {
	ID        uuid.UUID `json:"id" db:"id" gorm:"type:uuid;primaryKey;not null"`
	ProjectID uuid.UUID `json:"project_id" db:"project_id" gorm:"type:uuid;not null;index:idx_applications_project_id"`
	UserID    uuid.UUID `json:"user_id" db:"user_id" gorm:"type:uuid;not null;index:idx_applications_user_id"`
	Message   string    `json:"message" db:"message" gorm:"type:text;not null"`
	Status    string    `json:"status" db:"status" gorm:"type:text;not null;default:pending"`
	AppliedAt time.Time `json:"applied_at" db:"applied_at" gorm:"not null"`

	User    User    `json:"user,omitempty" gorm:"foreignKey:UserID;references:ID"`
	Project Project `json:"project,omitempty" gorm:"foreignKey:ProjectID;references:ID"`
}

func (a *Application) BeforeCreate(tx *gorm.DB) error {
	if a.ID == uuid.Nil {
		a.ID = uuid.New()
	}
	return nil
}
