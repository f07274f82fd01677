package api

import (
	"net/http"
	"testing"

	"github.com/collablab-app/backend/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCreateProjectAttachesCreatorAndSkills(t *testing.T) {
	router, db := newTestRouter(t)
	creator := signUp(t, router, "ext-creator", "Creator")

	goSkill := models.Skill{Name: "Go", Category: models.CategoryBackend}
	require.NoError(t, db.Create(&goSkill).Error)
	reactSkill := models.Skill{Name: "React", Category: models.CategoryFrontend}
	require.NoError(t, db.Create(&reactSkill).Error)

	recorder := doJSON(t, router, http.MethodPost, "/projects", "ext-creator", map[string]any{
		"title":       "Campus Marketplace",
		"description": "A marketplace for students",
		"vacancies":   3,
		"skill_ids":   []string{goSkill.ID.String(), reactSkill.ID.String()},
	})
	require.Equal(t, http.StatusCreated, recorder.Code, recorder.Body.String())

	project := decodeBody[models.Project](t, recorder)
	assert.Equal(t, models.ProjectRecruiting, project.Status)
	assert.Equal(t, creator.ID, project.CreatorID)
	require.NotNil(t, project.Creator)
	assert.Equal(t, "Creator", project.Creator.Name)

	// Creating a project also registers the creator as a member.
	var memberships []models.UserProject
	require.NoError(t, db.Where("project_id = ?", project.ID).Find(&memberships).Error)
	require.Len(t, memberships, 1)
	assert.Equal(t, models.MembershipCreator, memberships[0].Role)

	var links []models.ProjectSkill
	require.NoError(t, db.Where("project_id = ?", project.ID).Find(&links).Error)
	assert.Len(t, links, 2)
}

func TestCreateProjectRejectsUnknownStatus(t *testing.T) {
	router, _ := newTestRouter(t)
	signUp(t, router, "ext-creator", "Creator")

	recorder := doJSON(t, router, http.MethodPost, "/projects", "ext-creator", map[string]any{
		"title":       "Bad Status",
		"description": "should fail",
		"status":      "archived",
	})
	require.Equal(t, http.StatusBadRequest, recorder.Code)
}

func TestUpdateProjectStatusIsCreatorOnly(t *testing.T) {
	router, _ := newTestRouter(t)
	signUp(t, router, "ext-creator", "Creator")
	signUp(t, router, "ext-outsider", "Outsider")

	created := doJSON(t, router, http.MethodPost, "/projects", "ext-creator", map[string]any{
		"title":       "Guarded",
		"description": "status changes are creator-only",
	})
	require.Equal(t, http.StatusCreated, created.Code)
	project := decodeBody[models.Project](t, created)

	denied := doJSON(t, router, http.MethodPatch, "/projects/"+project.ID.String(), "ext-outsider", map[string]any{
		"status": models.ProjectCompleted,
	})
	require.Equal(t, http.StatusForbidden, denied.Code, denied.Body.String())

	allowed := doJSON(t, router, http.MethodPatch, "/projects/"+project.ID.String(), "ext-creator", map[string]any{
		"status": models.ProjectCompleted,
	})
	require.Equal(t, http.StatusOK, allowed.Code)
	updated := decodeBody[models.Project](t, allowed)
	assert.Equal(t, models.ProjectCompleted, updated.Status)
}

func TestListProjectsGroupsSkillsPerProject(t *testing.T) {
	router, db := newTestRouter(t)
	signUp(t, router, "ext-creator", "Creator")

	goSkill := models.Skill{Name: "Go", Category: models.CategoryBackend}
	require.NoError(t, db.Create(&goSkill).Error)

	first := doJSON(t, router, http.MethodPost, "/projects", "ext-creator", map[string]any{
		"title":       "With Skill",
		"description": "has one required skill",
		"skill_ids":   []string{goSkill.ID.String()},
	})
	require.Equal(t, http.StatusCreated, first.Code)

	second := doJSON(t, router, http.MethodPost, "/projects", "ext-creator", map[string]any{
		"title":       "Without Skill",
		"description": "no required skills",
	})
	require.Equal(t, http.StatusCreated, second.Code)

	recorder := doJSON(t, router, http.MethodGet, "/projects", "ext-creator", nil)
	require.Equal(t, http.StatusOK, recorder.Code)
	collection := decodeBody[ProjectCollection](t, recorder)
	require.Len(t, collection.Projects, 2)
	assert.Equal(t, 2, collection.Total)

	byTitle := map[string]*models.Project{}
	for _, p := range collection.Projects {
		byTitle[p.Title] = p
		require.NotNil(t, p.Creator)
	}
	require.Len(t, byTitle["With Skill"].Skills, 1)
	assert.Empty(t, byTitle["Without Skill"].Skills)
}

func TestDeleteProjectLeavesApplications(t *testing.T) {
	router, db := newTestRouter(t)
	signUp(t, router, "ext-creator", "Creator")
	applicant := signUp(t, router, "ext-applicant", "Applicant")

	created := doJSON(t, router, http.MethodPost, "/projects", "ext-creator", map[string]any{
		"title":       "Short Lived",
		"description": "will be deleted",
	})
	require.Equal(t, http.StatusCreated, created.Code)
	project := decodeBody[models.Project](t, created)

	applied := doJSON(t, router, http.MethodPost, "/applications", "ext-applicant", map[string]any{
		"project_id": project.ID,
		"message":    "let me in",
	})
	require.Equal(t, http.StatusCreated, applied.Code)

	deleted := doJSON(t, router, http.MethodDelete, "/projects/"+project.ID.String(), "ext-creator", nil)
	require.Equal(t, http.StatusOK, deleted.Code)

	missing := doJSON(t, router, http.MethodGet, "/projects/"+project.ID.String(), "ext-creator", nil)
	require.Equal(t, http.StatusNotFound, missing.Code)

	// The application row survives the project delete.
	var count int64
	require.NoError(t, db.Model(&models.Application{}).Where("user_id = ?", applicant.ID).Count(&count).Error)
	assert.EqualValues(t, 1, count)
}
