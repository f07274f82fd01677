package database

import (
	"errors"
	"time"

	"github.com/collablab-app/backend/errs"
	"github.com/collablab-app/backend/models"
	"github.com/google/uuid"
	"golang.org/x/sync/errgroup"
	"gorm.io/gorm"
)

type ProjectRepo struct {
	db *gorm.DB
}

func NewProjectRepo(db *gorm.DB) *ProjectRepo {
	return &ProjectRepo{db}
}

// FindAllWithSkills returns all projects with their creator and required
// skills attached. Projects and project_skills are fetched as two collections
// and merged with a single grouping pass, since the skills aggregation cannot
// be expressed as one relational query through the ORM's preloading.
func (r *ProjectRepo) FindAllWithSkills() ([]*models.Project, error) {
	var projects []*models.Project
	if err := r.db.Preload("Creator").Order("created_at desc").Find(&projects).Error; err != nil {
		return nil, err
	}

	var links []models.ProjectSkill
	if err := r.db.Preload("Skill").Find(&links).Error; err != nil {
		return nil, err
	}

	skillsByProject := make(map[uuid.UUID][]models.ProjectSkill, len(projects))
	for _, link := range links {
		skillsByProject[link.ProjectID] = append(skillsByProject[link.ProjectID], link)
	}
	for _, project := range projects {
		project.Skills = skillsByProject[project.ID]
	}

	return projects, nil
}

// CreateWithSkills inserts a project, its required-skill links, and the
// creator membership row, in that order. The three steps are independent
// writes with no transaction: the skill links are issued concurrently and all
// awaited, and a failure in a later step leaves the earlier rows in place.
// Callers seeing a partial result should retry the missing step, not
// re-create the project.
func (r *ProjectRepo) CreateWithSkills(project *models.Project, skillIDs []uuid.UUID) error {
	if err := r.db.Create(project).Error; err != nil {
		return err
	}

	var group errgroup.Group
	for _, skillID := range skillIDs {
		group.Go(func() error {
			return r.db.Create(&models.ProjectSkill{
				ProjectID: project.ID,
				SkillID:   skillID,
			}).Error
		})
	}
	if err := group.Wait(); err != nil {
		return errs.NewDatabaseError("link skills to", "project", err)
	}

	membership := models.UserProject{
		UserID:    project.CreatorID,
		ProjectID: project.ID,
		Role:      models.MembershipCreator,
		JoinedAt:  time.Now(),
	}
	if err := r.db.Create(&membership).Error; err != nil {
		return errs.NewDatabaseError("create creator membership for", "project", err)
	}

	return nil
}

// CreatorID returns the creator of a project.
func (r *ProjectRepo) CreatorID(projectID uuid.UUID) (uuid.UUID, error) {
	var project models.Project
	err := r.db.Select("creator_id").First(&project, "id = ?", projectID).Error
	if err != nil {
		return uuid.Nil, err
	}
	return project.CreatorID, nil
}

// FindByIDWithCreator returns a project with its creator and skills attached,
// or (nil, nil) when absent.
func (r *ProjectRepo) FindByIDWithCreator(id uuid.UUID) (*models.Project, error) {
	var project models.Project
	err := r.db.Preload("Creator").First(&project, "id = ?", id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}

	var links []models.ProjectSkill
	if err := r.db.Preload("Skill").Where("project_id = ?", id).Find(&links).Error; err != nil {
		return nil, err
	}
	project.Skills = links

	return &project, nil
}

// Status returns the current status string of a project.
func (r *ProjectRepo) Status(projectID uuid.UUID) (string, error) {
	var project models.Project
	err := r.db.Select("status").First(&project, "id = ?", projectID).Error
	if err != nil {
		return "", err
	}
	return project.Status, nil
}

// FindByID returns a bare project row, or (nil, nil) when absent.
func (r *ProjectRepo) FindByID(id uuid.UUID) (*models.Project, error) {
	var project models.Project
	err := r.db.First(&project, "id = ?", id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &project, nil
}

// Delete removes the project row only. Skill links, memberships, and
// applications referencing it are left to the store's constraints.
func (r *ProjectRepo) Delete(id uuid.UUID) error {
	return r.db.Delete(&models.Project{}, "id = ?", id).Error
}

// UpdateStatus changes a project's status after verifying that the caller is
// the project's creator. The stored creator id is re-read on every call; the
// caller-supplied id is never trusted on its own.
func (r *ProjectRepo) UpdateStatus(projectID, callerID uuid.UUID, status string) error {
	creatorID, err := r.CreatorID(projectID)
	if err != nil {
		return err
	}
	if creatorID != callerID {
		return errs.NewForbiddenError("only the project creator can change its status")
	}

	return r.db.Model(&models.Project{}).
		Where("id = ?", projectID).
		Updates(map[string]any{"status": status, "updated_at": time.Now()}).Error
}
