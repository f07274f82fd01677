package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Membership roles
const (
	MembershipCreator = "creator"
	MembershipMember  = "member"
)

// UserProject records a user's membership in a project. A creator row is
// written when the project is created; member rows come from accepted
// applications or the direct-join path.
type UserProject struct {
	ID        uuid.UUID `json:"id" db:"id" gorm:"type:uuid;primaryKey;not null"`
	UserID    uuid.UUID `json:"user_id" db:"user_id" gorm:"type:uuid;not null;uniqueIndex:idx_user_project_unique"`
	ProjectID uuid.UUID `json:"project_id" db:"project_id" gorm:"type:uuid;not null;index:idx_user_project_project_id;uniqueIndex:idx_user_project_unique"`
	Role      string    `json:"role" db:"role" gorm:"type:text;not null;default:member"`
	JoinedAt  time.Time `json:"joined_at" db:"joined_at" gorm:"not null"`

	User    User    `json:"user,omitempty" gorm:"foreignKey:UserID;references:ID"`
	Project Project `json:"project,omitempty" gorm:"foreignKey:ProjectID;references:ID"`
}

func (up *UserProject) BeforeCreate(tx *gorm.DB) error {
	if up.ID == uuid.Nil {
		up.ID = uuid.New()
	}
	return nil
}
