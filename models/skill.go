package models

import (
	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Skill categories
const (
	CategoryFrontend    = "frontend"
	CategoryBackend     = "backend"
	CategoryDesign      = "design"
	CategoryDatabase    = "database"
	CategoryDevops      = "devops"
	CategoryMobile      = "mobile"
	CategoryAIML        = "ai_ml"
	CategoryDataScience = "data_science"
	CategorySoftSkills  = "soft_skills"
	CategoryOther       = "other"
)

// Skill is reference data shared by users and projects.
type Skill struct {
	ID       uuid.UUID `json:"id" db:"id" gorm:"type:uuid;primaryKey;not null"`
	Name     string    `json:"name" db:"name" gorm:"type:text;not null"`
	Category string    `json:"category" db:"category" gorm:"type:text;not null;default:other"`
}

func (s *Skill) BeforeCreate(tx *gorm.DB) error {
	if s.ID == uuid.Nil {
		s.ID = uuid.New()
	}
	return nil
}
