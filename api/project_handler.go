package api

import (
	"bytes"
	"encoding/json"
	"io"
	"net/http"

	"github.com/collablab-app/backend/database"
	"github.com/collablab-app/backend/errs"
	"github.com/collablab-app/backend/models"
	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
)

type projectHandler struct {
	responder   Responder
	logger      zerolog.Logger
	projectRepo *database.ProjectRepo
	userRepo    *database.UserRepo
}

func newProjectHandler(projectRepo *database.ProjectRepo, userRepo *database.UserRepo) projectHandler {
	logger := log.With().Str("handlerName", "projectHandler").Logger()

	return projectHandler{
		responder:   NewResponder(logger),
		logger:      logger,
		projectRepo: projectRepo,
		userRepo:    userRepo,
	}
}

// ProjectCollection represents multiple projects with creators and skills
type ProjectCollection struct {
	Projects []*models.Project `json:"projects"`
	Total    int               `json:"total,omitempty"`
}

// callerUser resolves the session identity to its user row.
func (h projectHandler) callerUser(r *http.Request) (*models.User, error) {
	externalID, err := ctxGetExternalID(r.Context())
	if err != nil {
		return nil, errs.Unauthorized
	}

	user, err := h.userRepo.FindByExternalID(externalID)
	if err != nil {
		return nil, wrapDatabaseError("find", "user", err)
	}
	if user == nil {
		return nil, errs.NewNotFoundError("no user record for caller identity")
	}
	return user, nil
}

func (h projectHandler) getAllProjects() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		projects, err := h.projectRepo.FindAllWithSkills()
		if err != nil {
			h.responder.WriteError(w, wrapDatabaseError("find", "projects", err))
			return
		}

		response := ProjectCollection{
			Projects: projects,
			Total:    len(projects),
		}

		h.responder.WriteJSON(w, response)
	}
}

func (h projectHandler) getProject() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		projectID, err := uuid.Parse(chi.URLParam(r, "projectID"))
		if err != nil {
			h.responder.WriteError(w, errs.NewBadRequestError("invalid projectID"))
			return
		}

		project, err := h.projectRepo.FindByIDWithCreator(projectID)
		if err != nil {
			h.responder.WriteError(w, wrapDatabaseError("find", "project", err))
			return
		}
		if project == nil {
			h.responder.WriteError(w, errs.NewNotFoundError("project not found"))
			return
		}

		h.responder.WriteJSON(w, project)
	}
}

// createProjectRequest carries a new project and its required-skill ids.
type createProjectRequest struct {
	Title       string      `json:"title"`
	Description string      `json:"description"`
	Status      string      `json:"status,omitempty"`
	Vacancies   int         `json:"vacancies"`
	Timeline    *string     `json:"timeline,omitempty"`
	SkillIDs    []uuid.UUID `json:"skill_ids,omitempty"`
}

// createProject inserts the project, its skill links, and the creator
// membership row. The steps are not transactional; a failure after the first
// step reports an error while earlier rows stay in place.
func (h projectHandler) createProject() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		caller, err := h.callerUser(r)
		if err != nil {
			h.responder.WriteError(w, err)
			return
		}

		bodyBytes, err := io.ReadAll(r.Body)
		if err != nil {
			h.logger.Error().Err(err).Msg("Failed to read request body")
			h.responder.WriteError(w, errs.NewBadRequestError("failed to read request body"))
			return
		}

		var req createProjectRequest
		if err := json.NewDecoder(bytes.NewReader(bodyBytes)).Decode(&req); err != nil {
			h.logger.Error().Err(err).Str("body", string(bodyBytes)).Msg("Failed to decode project request body")
			h.responder.WriteError(w, errs.NewBadRequestError("malformed request body"))
			return
		}

		if req.Title == "" {
			h.responder.WriteError(w, errs.NewMissingRequiredFieldError("title"))
			return
		}
		if req.Description == "" {
			h.responder.WriteError(w, errs.NewMissingRequiredFieldError("description"))
			return
		}
		if req.Status == "" {
			req.Status = models.ProjectRecruiting
		}
		if !validProjectStatus(req.Status) {
			h.responder.WriteError(w, errs.NewInvalidFieldError("status", "must be recruiting, in_progress, or completed"))
			return
		}
		if req.Vacancies < 0 {
			h.responder.WriteError(w, errs.NewInvalidFieldError("vacancies", "must not be negative"))
			return
		}

		project := models.Project{
			Title:       req.Title,
			Description: req.Description,
			Status:      req.Status,
			Vacancies:   req.Vacancies,
			Timeline:    req.Timeline,
			CreatorID:   caller.ID,
		}

		if err := h.projectRepo.CreateWithSkills(&project, req.SkillIDs); err != nil {
			h.responder.WriteError(w, wrapDatabaseError("create", "project", err))
			return
		}

		// Reload to pick up the creator and skill links
		createdProject, err := h.projectRepo.FindByIDWithCreator(project.ID)
		if err != nil {
			h.responder.WriteError(w, wrapDatabaseError("find created", "project", err))
			return
		}

		w.WriteHeader(http.StatusCreated)
		h.responder.WriteJSON(w, createdProject)
	}
}

// updateProjectStatus changes the project status. Only the creator may do
// this; the check runs server-side against the stored creator id.
func (h projectHandler) updateProjectStatus() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		caller, err := h.callerUser(r)
		if err != nil {
			h.responder.WriteError(w, err)
			return
		}

		projectID, err := uuid.Parse(chi.URLParam(r, "projectID"))
		if err != nil {
			h.responder.WriteError(w, errs.NewBadRequestError("invalid projectID"))
			return
		}

		var req struct {
			Status string `json:"status"`
		}
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			h.responder.WriteError(w, errs.NewBadRequestError("malformed request body"))
			return
		}
		if req.Status == "" {
			h.responder.WriteError(w, errs.NewMissingRequiredFieldError("status"))
			return
		}
		if !validProjectStatus(req.Status) {
			h.responder.WriteError(w, errs.NewInvalidFieldError("status", "must be recruiting, in_progress, or completed"))
			return
		}

		project, err := h.projectRepo.FindByID(projectID)
		if err != nil {
			h.responder.WriteError(w, wrapDatabaseError("find", "project", err))
			return
		}
		if project == nil {
			h.responder.WriteError(w, errs.NewNotFoundError("project not found"))
			return
		}

		if err := h.projectRepo.UpdateStatus(projectID, caller.ID, req.Status); err != nil {
			h.responder.WriteError(w, wrapDatabaseError("update status of", "project", err))
			return
		}

		updated, err := h.projectRepo.FindByID(projectID)
		if err != nil {
			h.responder.WriteError(w, wrapDatabaseError("find updated", "project", err))
			return
		}

		h.responder.WriteJSON(w, updated)
	}
}

// deleteProject removes the project row unconditionally. Rows in other
// tables referencing it are left to the store's constraints.
func (h projectHandler) deleteProject() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		projectID, err := uuid.Parse(chi.URLParam(r, "projectID"))
		if err != nil {
			h.responder.WriteError(w, errs.NewBadRequestError("invalid projectID"))
			return
		}

		project, err := h.projectRepo.FindByID(projectID)
		if err != nil {
			h.responder.WriteError(w, wrapDatabaseError("find", "project", err))
			return
		}
		if project == nil {
			h.responder.WriteError(w, errs.NewNotFoundError("project not found"))
			return
		}

		if err := h.projectRepo.Delete(projectID); err != nil {
			h.responder.WriteError(w, wrapDatabaseError("delete", "project", err))
			return
		}

		h.responder.WriteJSON(w, map[string]string{"status": "deleted"})
	}
}

func validProjectStatus(status string) bool {
	switch status {
	case models.ProjectRecruiting, models.ProjectInProgress, models.ProjectCompleted:
		return true
	}
	return false
}
