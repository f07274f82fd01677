package database

import (
	"testing"

	"github.com/collablab-app/backend/models"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFindAllWithSkillsGroupsPerProject(t *testing.T) {
	db := newTestDB(t)
	repo := NewProjectRepo(db)
	creator := seedUser(t, db, "ext-creator", "Creator")

	s1 := seedSkill(t, db, "Go", models.CategoryBackend)
	s2 := seedSkill(t, db, "React", models.CategoryFrontend)
	s3 := seedSkill(t, db, "Figma", models.CategoryDesign)

	p := seedProject(t, db, creator.ID, "CollabLab")
	p2 := seedProject(t, db, creator.ID, "Other")

	require.NoError(t, db.Create(&models.ProjectSkill{ProjectID: p.ID, SkillID: s1.ID}).Error)
	require.NoError(t, db.Create(&models.ProjectSkill{ProjectID: p.ID, SkillID: s2.ID}).Error)
	require.NoError(t, db.Create(&models.ProjectSkill{ProjectID: p2.ID, SkillID: s3.ID}).Error)

	projects, err := repo.FindAllWithSkills()
	require.NoError(t, err)
	require.Len(t, projects, 2)

	byID := make(map[uuid.UUID]*models.Project, len(projects))
	for _, project := range projects {
		byID[project.ID] = project
	}

	require.Len(t, byID[p.ID].Skills, 2)
	got := map[uuid.UUID]bool{}
	for _, link := range byID[p.ID].Skills {
		got[link.SkillID] = true
	}
	assert.True(t, got[s1.ID])
	assert.True(t, got[s2.ID])
	assert.False(t, got[s3.ID], "unrelated skill must not be attached")

	require.Len(t, byID[p2.ID].Skills, 1)
	assert.Equal(t, s3.ID, byID[p2.ID].Skills[0].SkillID)

	require.NotNil(t, byID[p.ID].Creator)
	assert.Equal(t, creator.ID, byID[p.ID].Creator.ID)
}

func TestCreateWithSkills(t *testing.T) {
	db := newTestDB(t)
	repo := NewProjectRepo(db)
	creator := seedUser(t, db, "ext-creator", "Creator")

	s1 := seedSkill(t, db, "Go", models.CategoryBackend)
	s2 := seedSkill(t, db, "SQL", models.CategoryDatabase)

	project := &models.Project{
		Title:       "Study Buddy",
		Description: "match students for study sessions",
		Status:      models.ProjectRecruiting,
		Vacancies:   2,
		CreatorID:   creator.ID,
	}
	require.NoError(t, repo.CreateWithSkills(project, []uuid.UUID{s1.ID, s2.ID}))

	var skillCount int64
	require.NoError(t, db.Model(&models.ProjectSkill{}).Where("project_id = ?", project.ID).Count(&skillCount).Error)
	assert.EqualValues(t, 2, skillCount)

	var membership models.UserProject
	require.NoError(t, db.Where("project_id = ? AND user_id = ?", project.ID, creator.ID).First(&membership).Error)
	assert.Equal(t, models.MembershipCreator, membership.Role)
	assert.False(t, membership.JoinedAt.IsZero())
}

func TestCreateWithSkillsPartialFailureLeavesEarlierRows(t *testing.T) {
	db := newTestDB(t)
	// Enforce the schema's foreign keys so an unknown skill id fails the
	// link insert.
	require.NoError(t, db.Exec("PRAGMA foreign_keys = ON").Error)
	repo := NewProjectRepo(db)
	creator := seedUser(t, db, "ext-creator", "Creator")
	valid := seedSkill(t, db, "Go", models.CategoryBackend)

	project := &models.Project{
		Title:       "Half Done",
		Description: "one of the skill links cannot be written",
		Status:      models.ProjectRecruiting,
		Vacancies:   1,
		CreatorID:   creator.ID,
	}
	err := repo.CreateWithSkills(project, []uuid.UUID{valid.ID, uuid.New()})
	require.Error(t, err)

	// The project row and the valid link survive; nothing is rolled back.
	found, findErr := repo.FindByID(project.ID)
	require.NoError(t, findErr)
	require.NotNil(t, found)

	var links []models.ProjectSkill
	require.NoError(t, db.Where("project_id = ?", project.ID).Find(&links).Error)
	require.Len(t, links, 1)
	assert.Equal(t, valid.ID, links[0].SkillID)

	// The failed link step stops the sequence before the membership write.
	var memberships int64
	require.NoError(t, db.Model(&models.UserProject{}).Where("project_id = ?", project.ID).Count(&memberships).Error)
	assert.EqualValues(t, 0, memberships)
}

func TestUpdateStatusRequiresCreator(t *testing.T) {
	db := newTestDB(t)
	repo := NewProjectRepo(db)
	creator := seedUser(t, db, "ext-creator", "Creator")
	outsider := seedUser(t, db, "ext-outsider", "Outsider")
	project := seedProject(t, db, creator.ID, "Gate Test")

	err := repo.UpdateStatus(project.ID, outsider.ID, models.ProjectCompleted)
	require.Error(t, err)

	status, statusErr := repo.Status(project.ID)
	require.NoError(t, statusErr)
	assert.Equal(t, models.ProjectRecruiting, status, "status unchanged after rejected update")

	require.NoError(t, repo.UpdateStatus(project.ID, creator.ID, models.ProjectInProgress))

	status, statusErr = repo.Status(project.ID)
	require.NoError(t, statusErr)
	assert.Equal(t, models.ProjectInProgress, status)
}

func TestDeleteLeavesReferencingRows(t *testing.T) {
	db := newTestDB(t)
	repo := NewProjectRepo(db)
	creator := seedUser(t, db, "ext-creator", "Creator")
	applicant := seedUser(t, db, "ext-applicant", "Applicant")
	skill := seedSkill(t, db, "Go", models.CategoryBackend)

	project := &models.Project{
		Title:       "Doomed",
		Description: "will be deleted",
		Status:      models.ProjectRecruiting,
		Vacancies:   1,
		CreatorID:   creator.ID,
	}
	require.NoError(t, repo.CreateWithSkills(project, []uuid.UUID{skill.ID}))

	applicationRepo := NewApplicationRepo(db)
	require.NoError(t, applicationRepo.Create(&models.Application{
		ProjectID: project.ID,
		UserID:    applicant.ID,
		Message:   "let me in",
	}))

	require.NoError(t, repo.Delete(project.ID))

	found, err := repo.FindByID(project.ID)
	require.NoError(t, err)
	assert.Nil(t, found)

	// The access layer performs no cascade; referencing rows survive.
	var skillLinks, memberships, applications int64
	require.NoError(t, db.Model(&models.ProjectSkill{}).Where("project_id = ?", project.ID).Count(&skillLinks).Error)
	require.NoError(t, db.Model(&models.UserProject{}).Where("project_id = ?", project.ID).Count(&memberships).Error)
	require.NoError(t, db.Model(&models.Application{}).Where("project_id = ?", project.ID).Count(&applications).Error)
	assert.EqualValues(t, 1, skillLinks)
	assert.EqualValues(t, 1, memberships)
	assert.EqualValues(t, 1, applications)
}
