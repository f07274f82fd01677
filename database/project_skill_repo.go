package database

import (
	"github.com/collablab-app/backend/models"
	"github.com/google/uuid"
	"gorm.io/gorm"
)

type ProjectSkillRepo struct {
	db *gorm.DB
}

func NewProjectSkillRepo(db *gorm.DB) *ProjectSkillRepo {
	return &ProjectSkillRepo{db}
}

// Add inserts a project/skill link. Duplicate pairs are not checked here.
func (r *ProjectSkillRepo) Add(link *models.ProjectSkill) error {
	return r.db.Create(link).Error
}

// FindByProject returns the skill links for a project with skills joined.
func (r *ProjectSkillRepo) FindByProject(projectID uuid.UUID) ([]models.ProjectSkill, error) {
	var links []models.ProjectSkill
	err := r.db.Preload("Skill").Where("project_id = ?", projectID).Find(&links).Error
	return links, err
}

// UpdateSkill swaps the skill a link points at, keyed by project and the
// current skill id.
func (r *ProjectSkillRepo) UpdateSkill(projectID, skillID, newSkillID uuid.UUID) error {
	return r.db.Model(&models.ProjectSkill{}).
		Where("project_id = ? AND skill_id = ?", projectID, skillID).
		Update("skill_id", newSkillID).Error
}

// Delete removes the link between a project and a skill.
func (r *ProjectSkillRepo) Delete(projectID, skillID uuid.UUID) error {
	return r.db.Where("project_id = ? AND skill_id = ?", projectID, skillID).
		Delete(&models.ProjectSkill{}).Error
}
