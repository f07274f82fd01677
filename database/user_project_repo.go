package database

import (
	"errors"
	"time"

	"github.com/collablab-app/backend/errs"
	"github.com/collablab-app/backend/models"
	"github.com/google/uuid"
	"gorm.io/gorm"
)

type UserProjectRepo struct {
	db *gorm.DB
}

func NewUserProjectRepo(db *gorm.DB) *UserProjectRepo {
	return &UserProjectRepo{db}
}

// FindByUser returns a user's memberships with projects joined.
func (r *UserProjectRepo) FindByUser(userID uuid.UUID) ([]models.UserProject, error) {
	var memberships []models.UserProject
	err := r.db.Preload("Project").Where("user_id = ?", userID).Find(&memberships).Error
	return memberships, err
}

// FindByUserAndRole returns a user's memberships filtered by role
// (creator or member), with projects joined.
func (r *UserProjectRepo) FindByUserAndRole(userID uuid.UUID, role string) ([]models.UserProject, error) {
	var memberships []models.UserProject
	err := r.db.Preload("Project").
		Where("user_id = ? AND role = ?", userID, role).
		Find(&memberships).Error
	return memberships, err
}

// FindCompletedByUser returns the memberships whose project has reached
// completed status. Each project's status is read with its own lookup; fine
// at this system's scale, quadratic in request count beyond it.
func (r *UserProjectRepo) FindCompletedByUser(userID uuid.UUID) ([]models.UserProject, error) {
	memberships, err := r.FindByUser(userID)
	if err != nil {
		return nil, err
	}

	var completed []models.UserProject
	for _, membership := range memberships {
		var project models.Project
		err := r.db.Select("status").First(&project, "id = ?", membership.ProjectID).Error
		if errors.Is(err, gorm.ErrRecordNotFound) {
			// Orphaned membership from a deleted project.
			continue
		}
		if err != nil {
			return nil, err
		}
		if project.Status == models.ProjectCompleted {
			completed = append(completed, membership)
		}
	}

	return completed, nil
}

// Join inserts a membership row after checking that none exists for the
// (user, project) pair. The check and the insert are separate calls; the
// unique index on the pair is what actually closes the race.
func (r *UserProjectRepo) Join(userID, projectID uuid.UUID, role string) (*models.UserProject, error) {
	var count int64
	if err := r.db.Model(&models.UserProject{}).
		Where("user_id = ? AND project_id = ?", userID, projectID).
		Count(&count).Error; err != nil {
		return nil, err
	}
	if count > 0 {
		return nil, errs.NewAlreadyExists("membership")
	}

	membership := models.UserProject{
		UserID:    userID,
		ProjectID: projectID,
		Role:      role,
		JoinedAt:  time.Now(),
	}
	if err := r.db.Create(&membership).Error; err != nil {
		return nil, err
	}
	return &membership, nil
}

// Leave removes the membership row for a (user, project) pair.
func (r *UserProjectRepo) Leave(userID, projectID uuid.UUID) error {
	return r.db.Where("user_id = ? AND project_id = ?", userID, projectID).
		Delete(&models.UserProject{}).Error
}

// ProjectMembers returns the memberships of a project with users joined.
func (r *UserProjectRepo) ProjectMembers(projectID uuid.UUID) ([]models.UserProject, error) {
	var memberships []models.UserProject
	err := r.db.Preload("User").Where("project_id = ?", projectID).Find(&memberships).Error
	return memberships, err
}

// ProjectUsersWithDetails returns the full user rows for a project's members,
// one lookup per membership row.
func (r *UserProjectRepo) ProjectUsersWithDetails(projectID uuid.UUID) ([]models.User, error) {
	var memberships []models.UserProject
	if err := r.db.Where("project_id = ?", projectID).Find(&memberships).Error; err != nil {
		return nil, err
	}

	users := make([]models.User, 0, len(memberships))
	for _, membership := range memberships {
		var user models.User
		err := r.db.First(&user, "id = ?", membership.UserID).Error
		if errors.Is(err, gorm.ErrRecordNotFound) {
			continue
		}
		if err != nil {
			return nil, err
		}
		users = append(users, user)
	}

	return users, nil
}
