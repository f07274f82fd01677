package database

import (
	"errors"
	"time"

	"github.com/collablab-app/backend/errs"
	"github.com/collablab-app/backend/models"
	"github.com/google/uuid"
	"github.com/rs/zerolog/log"
	"gorm.io/gorm"
)

type UserRepo struct {
	db *gorm.DB
}

func NewUserRepo(db *gorm.DB) *UserRepo {
	return &UserRepo{db}
}

// Mutable columns for partial updates. Everything else, notably external_id
// and created_at, is never patched.
var userPatchColumns = map[string]bool{
	"email":               true,
	"name":                true,
	"bio":                 true,
	"linkedin_url":        true,
	"university":          true,
	"role":                true,
	"onboarding_complete": true,
}

// GetOrCreate returns the existing user for the given external identity, or
// inserts a new one and reports that it did. Create is idempotent on
// external_id: a second call with the same identity returns the first row
// unchanged. When skillIDs are supplied, one user_skills row is linked per
// id; a failed link is logged and skipped without rolling back the user row.
func (r *UserRepo) GetOrCreate(user *models.User, skillIDs []uuid.UUID) (*models.User, bool, error) {
	var existing models.User
	err := r.db.Where("external_id = ?", user.ExternalID).First(&existing).Error
	if err == nil {
		return &existing, false, nil
	}
	if !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, false, err
	}

	if user.Role == "" {
		user.Role = models.RoleStudent
	}
	// New accounts start with the flag set; the onboarding flow flips it
	// through Update if the client runs one.
	user.OnboardingComplete = true

	if err := r.db.Create(user).Error; err != nil {
		return nil, false, err
	}

	for _, skillID := range skillIDs {
		if err := r.AddSkill(user.ID, skillID); err != nil {
			log.Error().Err(err).
				Str("userID", user.ID.String()).
				Str("skillID", skillID.String()).
				Msg("Failed to link skill during user creation")
		}
	}

	return user, true, nil
}

// FindByExternalID returns the user for the given external identity, with
// skills attached via a secondary query. Returns (nil, nil) when no row
// matches. A failure in the skills query fails the whole lookup.
func (r *UserRepo) FindByExternalID(externalID string) (*models.User, error) {
	var user models.User
	err := r.db.Where("external_id = ?", externalID).First(&user).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}

	skills, err := r.SkillsFor(user.ID)
	if err != nil {
		return nil, err
	}
	user.Skills = skills

	return &user, nil
}

// FindByID returns a user by primary key, or (nil, nil) when absent.
func (r *UserRepo) FindByID(id uuid.UUID) (*models.User, error) {
	var user models.User
	err := r.db.First(&user, "id = ?", id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &user, nil
}

// Update applies a partial patch of whitelisted columns and stamps
// updated_at. Returns (nil, nil) when the user does not exist.
func (r *UserRepo) Update(id uuid.UUID, fields map[string]any) (*models.User, error) {
	patch := make(map[string]any, len(fields)+1)
	for column, value := range fields {
		if userPatchColumns[column] {
			patch[column] = value
		}
	}
	patch["updated_at"] = time.Now()

	result := r.db.Model(&models.User{}).Where("id = ?", id).Updates(patch)
	if result.Error != nil {
		return nil, result.Error
	}
	if result.RowsAffected == 0 {
		return nil, nil
	}

	return r.FindByID(id)
}

// HasCompletedOnboarding reports the onboarding flag for an external
// identity. Unknown identities report false without an error.
func (r *UserRepo) HasCompletedOnboarding(externalID string) (bool, error) {
	var user models.User
	err := r.db.Select("onboarding_complete").Where("external_id = ?", externalID).First(&user).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return false, nil
	}
	if err != nil {
		return false, err
	}
	return user.OnboardingComplete, nil
}

// SkillsFor returns the skills linked to a user through user_skills.
func (r *UserRepo) SkillsFor(userID uuid.UUID) ([]models.Skill, error) {
	var links []models.UserSkill
	if err := r.db.Preload("Skill").Where("user_id = ?", userID).Find(&links).Error; err != nil {
		return nil, err
	}

	skills := make([]models.Skill, 0, len(links))
	for _, link := range links {
		skills = append(skills, link.Skill)
	}
	return skills, nil
}

// AddSkill links a skill to a user. The duplicate check is a separate read
// before the insert, so it is advisory; the unique index is the backstop.
func (r *UserRepo) AddSkill(userID, skillID uuid.UUID) error {
	var count int64
	if err := r.db.Model(&models.UserSkill{}).
		Where("user_id = ? AND skill_id = ?", userID, skillID).
		Count(&count).Error; err != nil {
		return err
	}
	if count > 0 {
		return errs.NewAlreadyExists("user skill")
	}

	return r.db.Create(&models.UserSkill{UserID: userID, SkillID: skillID}).Error
}

// RemoveSkill unlinks a skill from a user.
func (r *UserRepo) RemoveSkill(userID, skillID uuid.UUID) error {
	return r.db.Where("user_id = ? AND skill_id = ?", userID, skillID).
		Delete(&models.UserSkill{}).Error
}

// Delete removes a user row. Associated join rows are left to the store's
// constraints.
func (r *UserRepo) Delete(id uuid.UUID) error {
	return r.db.Delete(&models.User{}, "id = ?", id).Error
}
