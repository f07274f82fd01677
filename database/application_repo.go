package database

import (
	"errors"
	"time"

	"github.com/collablab-app/backend/errs"
	"github.com/collablab-app/backend/models"
	"github.com/google/uuid"
	"gorm.io/gorm"
)

type ApplicationRepo struct {
	db *gorm.DB
}

func NewApplicationRepo(db *gorm.DB) *ApplicationRepo {
	return &ApplicationRepo{db}
}

// Create inserts a new application in pending status with a server-stamped
// applied_at.
func (r *ApplicationRepo) Create(application *models.Application) error {
	application.Status = models.ApplicationPending
	application.AppliedAt = time.Now()
	return r.db.Create(application).Error
}

// FindByID returns an application by id, or (nil, nil) when absent.
func (r *ApplicationRepo) FindByID(id uuid.UUID) (*models.Application, error) {
	var application models.Application
	err := r.db.First(&application, "id = ?", id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &application, nil
}

// FindByProject returns a project's applications with applicants joined.
func (r *ApplicationRepo) FindByProject(projectID uuid.UUID) ([]models.Application, error) {
	var applications []models.Application
	err := r.db.Preload("User").
		Where("project_id = ?", projectID).
		Order("applied_at desc").
		Find(&applications).Error
	return applications, err
}

// FindByProjectBare returns a project's applications without joins.
func (r *ApplicationRepo) FindByProjectBare(projectID uuid.UUID) ([]models.Application, error) {
	var applications []models.Application
	err := r.db.Where("project_id = ?", projectID).
		Order("applied_at desc").
		Find(&applications).Error
	return applications, err
}

// FindByUser returns a user's applications with projects joined.
func (r *ApplicationRepo) FindByUser(userID uuid.UUID) ([]models.Application, error) {
	var applications []models.Application
	err := r.db.Preload("Project").
		Where("user_id = ?", userID).
		Order("applied_at desc").
		Find(&applications).Error
	return applications, err
}

// UpdateStatus transitions an application after verifying the caller is the
// creator of the applied-to project, the same gate as project status updates.
// Accepting an application does not create a membership row; joining is a
// separate call.
func (r *ApplicationRepo) UpdateStatus(id, callerID uuid.UUID, status string) (*models.Application, error) {
	application, err := r.FindByID(id)
	if err != nil {
		return nil, err
	}
	if application == nil {
		return nil, nil
	}

	var project models.Project
	if err := r.db.Select("creator_id").First(&project, "id = ?", application.ProjectID).Error; err != nil {
		return nil, err
	}
	if project.CreatorID != callerID {
		return nil, errs.NewForbiddenError("only the project creator can decide applications")
	}

	if err := r.db.Model(application).Update("status", status).Error; err != nil {
		return nil, err
	}
	return application, nil
}

// UpdateMessage edits the application text. Applications are append-only once
// they reach a terminal status, so only pending rows can be edited.
func (r *ApplicationRepo) UpdateMessage(id uuid.UUID, message string) (*models.Application, error) {
	application, err := r.FindByID(id)
	if err != nil {
		return nil, err
	}
	if application == nil {
		return nil, nil
	}
	if application.Status != models.ApplicationPending {
		return nil, errs.NewConflictError("application is no longer pending")
	}

	if err := r.db.Model(application).Update("message", message).Error; err != nil {
		return nil, err
	}
	return application, nil
}

// Delete removes an application by id.
func (r *ApplicationRepo) Delete(id uuid.UUID) error {
	return r.db.Delete(&models.Application{}, "id = ?", id).Error
}
