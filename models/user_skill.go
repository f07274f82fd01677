package models

import (
	"github.com/google/uuid"
	"gorm.io/gorm"
)

// UserSkill associates one user with one skill. The unique index backs the
// at-most-one-row-per-(user,skill) convention the access layer checks for
// before inserting.
type UserSkill struct {
	ID      uuid.UUID `json:"id" db:"id" gorm:"type:uuid;primaryKey;not null"`
	UserID  uuid.UUID `json:"user_id" db:"user_id" gorm:"type:uuid;not null;index:idx_user_skill_user_id;uniqueIndex:idx_user_skill_unique;constraint:OnDelete:CASCADE"`
	SkillID uuid.UUID `json:"skill_id" db:"skill_id" gorm:"type:uuid;not null;uniqueIndex:idx_user_skill_unique"`

	User  User  `json:"user,omitempty" gorm:"foreignKey:UserID;references:ID"`
	Skill Skill `json:"skill,omitempty" gorm:"foreignKey:SkillID;references:ID"`
}

func (us *UserSkill) BeforeCreate(tx *gorm.DB) error {
	if us.ID == uuid.Nil {
		us.ID = uuid.New()
	}
	return nil
}
