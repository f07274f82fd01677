package models

import (
	"github.com/google/uuid"
	"gorm.io/gorm"
)

// ProjectSkill associates one project with one required skill.
type ProjectSkill struct {
	ID        uuid.UUID `json:"id" db:"id" gorm:"type:uuid;primaryKey;not null"`
	ProjectID uuid.UUID `json:"project_id" db:"project_id" gorm:"type:uuid;not null;index:idx_project_skill_project_id;constraint:OnDelete:CASCADE"`
	SkillID   uuid.UUID `json:"skill_id" db:"skill_id" gorm:"type:uuid;not null"`

	Skill Skill `json:"skill,omitempty" gorm:"foreignKey:SkillID;references:ID"`
}

func (ps *ProjectSkill) BeforeCreate(tx *gorm.DB) error {
	if ps.ID == uuid.Nil {
		ps.ID = uuid.New()
	}
	return nil
}
