package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// User roles
const (
	RoleStudent = "student"
	RoleAdmin   = "admin"
	RoleMentor  = "mentor"
)

// User represents a platform member. The external ID is the stable identifier
// issued by the identity provider and is the natural key for lookups.
type User struct {
	ID                 uuid.UUID `json:"id" db:"id" gorm:"type:uuid;primaryKey;not null"`
	ExternalID         string    `json:"external_id" db:"external_id" gorm:"type:text;not null;uniqueIndex:idx_users_external_id"`
	Email              string    `json:"email" db:"email" gorm:"type:text;not null"`
	Name               string    `json:"name" db:"name" gorm:"type:text;not null"`
	Bio                *string   `json:"bio,omitempty" db:"bio" gorm:"type:text"`
	LinkedinURL        *string   `json:"linkedin_url,omitempty" db:"linkedin_url" gorm:"type:text"`
	University         *string   `json:"university,omitempty" db:"university" gorm:"type:text"`
	Role               string    `json:"role" db:"role" gorm:"type:text;not null;default:student"`
	OnboardingComplete bool      `json:"onboarding_complete" db:"onboarding_complete" gorm:"not null"`
	CreatedAt          time.Time `json:"created_at" db:"created_at"`
	UpdatedAt          time.Time `json:"updated_at" db:"updated_at"`

	// Attached by the access layer via a secondary user_skills query,
	// not by the ORM.
	Skills []Skill `json:"skills,omitempty" gorm:"-"`
}

func (u *User) BeforeCreate(tx *gorm.DB) error {
	if u.ID == uuid.Nil {
		u.ID = uuid.New()
	}
	return nil
}
