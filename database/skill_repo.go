package database

import (
	"errors"
	"strings"

	"github.com/collablab-app/backend/models"
	"github.com/google/uuid"
	"gorm.io/gorm"
)

type SkillRepo struct {
	db *gorm.DB
}

func NewSkillRepo(db *gorm.DB) *SkillRepo {
	return &SkillRepo{db}
}

// FindAll returns all skills.
func (r *SkillRepo) FindAll() ([]models.Skill, error) {
	var skills []models.Skill
	err := r.db.Order("name asc").Find(&skills).Error
	return skills, err
}

// FindByID returns a skill by id, or (nil, nil) when absent.
func (r *SkillRepo) FindByID(id uuid.UUID) (*models.Skill, error) {
	var skill models.Skill
	err := r.db.First(&skill, "id = ?", id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &skill, nil
}

// SearchByName returns skills whose name contains the given fragment,
// case-insensitively.
func (r *SkillRepo) SearchByName(name string) ([]models.Skill, error) {
	var skills []models.Skill
	pattern := "%" + strings.ToLower(name) + "%"
	err := r.db.Where("LOWER(name) LIKE ?", pattern).Order("name asc").Find(&skills).Error
	return skills, err
}

// Add inserts a new skill.
func (r *SkillRepo) Add(skill *models.Skill) error {
	return r.db.Create(skill).Error
}

// Update saves changes to an existing skill.
func (r *SkillRepo) Update(skill *models.Skill) error {
	return r.db.Save(skill).Error
}

// Delete removes a skill by id.
func (r *SkillRepo) Delete(id uuid.UUID) error {
	return r.db.Delete(&models.Skill{}, "id = ?", id).Error
}
