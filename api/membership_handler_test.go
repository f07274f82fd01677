package api

import (
	"net/http"
	"testing"

	"github.com/collablab-app/backend/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestJoinAndLeaveProject(t *testing.T) {
	router, _ := newTestRouter(t)
	signUp(t, router, "ext-creator", "Creator")
	member := signUp(t, router, "ext-member", "Member")
	project := createProjectFor(t, router, "ext-creator", "Open Door")

	joined := doJSON(t, router, http.MethodPost, "/projects/"+project.ID.String()+"/join", "ext-member", nil)
	require.Equal(t, http.StatusCreated, joined.Code, joined.Body.String())
	membership := decodeBody[models.UserProject](t, joined)
	assert.Equal(t, models.MembershipMember, membership.Role)
	assert.Equal(t, member.ID, membership.UserID)

	again := doJSON(t, router, http.MethodPost, "/projects/"+project.ID.String()+"/join", "ext-member", nil)
	require.Equal(t, http.StatusConflict, again.Code, again.Body.String())

	members := doJSON(t, router, http.MethodGet, "/projects/"+project.ID.String()+"/members", "ext-creator", nil)
	require.Equal(t, http.StatusOK, members.Code)
	require.Len(t, decodeBody[[]models.UserProject](t, members), 2)

	details := doJSON(t, router, http.MethodGet, "/projects/"+project.ID.String()+"/members?details=true", "ext-creator", nil)
	require.Equal(t, http.StatusOK, details.Code)
	users := decodeBody[[]models.User](t, details)
	require.Len(t, users, 2)
	names := []string{users[0].Name, users[1].Name}
	assert.Contains(t, names, "Creator")
	assert.Contains(t, names, "Member")

	left := doJSON(t, router, http.MethodDelete, "/projects/"+project.ID.String()+"/leave", "ext-member", nil)
	require.Equal(t, http.StatusOK, left.Code)

	members = doJSON(t, router, http.MethodGet, "/projects/"+project.ID.String()+"/members", "ext-creator", nil)
	require.Equal(t, http.StatusOK, members.Code)
	require.Len(t, decodeBody[[]models.UserProject](t, members), 1)
}

func TestGetUserProjectsFilters(t *testing.T) {
	router, _ := newTestRouter(t)
	signUp(t, router, "ext-user", "Builder")
	signUp(t, router, "ext-other", "Other")

	own := createProjectFor(t, router, "ext-user", "Own Project")
	joinedProject := createProjectFor(t, router, "ext-other", "Joined Project")

	joined := doJSON(t, router, http.MethodPost, "/projects/"+joinedProject.ID.String()+"/join", "ext-user", nil)
	require.Equal(t, http.StatusCreated, joined.Code)

	all := doJSON(t, router, http.MethodGet, "/users/me/projects", "ext-user", nil)
	require.Equal(t, http.StatusOK, all.Code)
	require.Len(t, decodeBody[[]models.UserProject](t, all), 2)

	created := doJSON(t, router, http.MethodGet, "/users/me/projects?role=creator", "ext-user", nil)
	require.Equal(t, http.StatusOK, created.Code)
	asCreator := decodeBody[[]models.UserProject](t, created)
	require.Len(t, asCreator, 1)
	assert.Equal(t, own.ID, asCreator[0].ProjectID)

	completed := doJSON(t, router, http.MethodGet, "/users/me/projects?completed=true", "ext-user", nil)
	require.Equal(t, http.StatusOK, completed.Code)
	require.Empty(t, decodeBody[[]models.UserProject](t, completed))

	finish := doJSON(t, router, http.MethodPatch, "/projects/"+own.ID.String(), "ext-user", map[string]any{
		"status": models.ProjectCompleted,
	})
	require.Equal(t, http.StatusOK, finish.Code)

	completed = doJSON(t, router, http.MethodGet, "/users/me/projects?completed=true", "ext-user", nil)
	require.Equal(t, http.StatusOK, completed.Code)
	finished := decodeBody[[]models.UserProject](t, completed)
	require.Len(t, finished, 1)
	assert.Equal(t, own.ID, finished[0].ProjectID)
}
