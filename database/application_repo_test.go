package database

import (
	"testing"

	"github.com/collablab-app/backend/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCreateApplicationDefaultsToPending(t *testing.T) {
	db := newTestDB(t)
	repo := NewApplicationRepo(db)
	creator := seedUser(t, db, "ext-creator", "Creator")
	applicant := seedUser(t, db, "ext-applicant", "Applicant")
	project := seedProject(t, db, creator.ID, "Apply Test")

	application := &models.Application{
		ProjectID: project.ID,
		UserID:    applicant.ID,
		Message:   "I want to help",
		Status:    "accepted", // caller-supplied status is ignored
	}
	require.NoError(t, repo.Create(application))

	assert.Equal(t, models.ApplicationPending, application.Status)
	assert.False(t, application.AppliedAt.IsZero())
}

func TestUpdateStatusIsCreatorOnly(t *testing.T) {
	db := newTestDB(t)
	repo := NewApplicationRepo(db)
	creator := seedUser(t, db, "ext-creator", "Creator")
	applicant := seedUser(t, db, "ext-applicant", "Applicant")
	project := seedProject(t, db, creator.ID, "Decide Test")

	application := &models.Application{ProjectID: project.ID, UserID: applicant.ID, Message: "hi"}
	require.NoError(t, repo.Create(application))

	// The applicant cannot decide their own application.
	_, err := repo.UpdateStatus(application.ID, applicant.ID, models.ApplicationAccepted)
	require.Error(t, err)

	unchanged, err := repo.FindByID(application.ID)
	require.NoError(t, err)
	assert.Equal(t, models.ApplicationPending, unchanged.Status)

	accepted, err := repo.UpdateStatus(application.ID, creator.ID, models.ApplicationAccepted)
	require.NoError(t, err)
	assert.Equal(t, models.ApplicationAccepted, accepted.Status)

	// Accepting does not create a membership row.
	var memberships int64
	require.NoError(t, db.Model(&models.UserProject{}).
		Where("project_id = ? AND user_id = ?", project.ID, applicant.ID).
		Count(&memberships).Error)
	assert.EqualValues(t, 0, memberships)
}

func TestUpdateMessageOnlyWhilePending(t *testing.T) {
	db := newTestDB(t)
	repo := NewApplicationRepo(db)
	creator := seedUser(t, db, "ext-creator", "Creator")
	applicant := seedUser(t, db, "ext-applicant", "Applicant")
	project := seedProject(t, db, creator.ID, "Edit Test")

	application := &models.Application{ProjectID: project.ID, UserID: applicant.ID, Message: "v1"}
	require.NoError(t, repo.Create(application))

	edited, err := repo.UpdateMessage(application.ID, "v2")
	require.NoError(t, err)
	assert.Equal(t, "v2", edited.Message)

	_, err = repo.UpdateStatus(application.ID, creator.ID, models.ApplicationRejected)
	require.NoError(t, err)

	_, err = repo.UpdateMessage(application.ID, "v3")
	require.Error(t, err, "terminal applications are append-only")

	final, err := repo.FindByID(application.ID)
	require.NoError(t, err)
	assert.Equal(t, "v2", final.Message)
}

func TestFindByProjectJoinsApplicant(t *testing.T) {
	db := newTestDB(t)
	repo := NewApplicationRepo(db)
	creator := seedUser(t, db, "ext-creator", "Creator")
	applicant := seedUser(t, db, "ext-applicant", "Applicant")
	project := seedProject(t, db, creator.ID, "List Test")

	require.NoError(t, repo.Create(&models.Application{ProjectID: project.ID, UserID: applicant.ID, Message: "hi"}))

	applications, err := repo.FindByProject(project.ID)
	require.NoError(t, err)
	require.Len(t, applications, 1)
	assert.Equal(t, "Applicant", applications[0].User.Name)

	bare, err := repo.FindByProjectBare(project.ID)
	require.NoError(t, err)
	require.Len(t, bare, 1)
	assert.Empty(t, bare[0].User.Name)
}
