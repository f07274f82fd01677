package api

import (
	"encoding/json"
	"net/http"

	"github.com/collablab-app/backend/database"
	"github.com/collablab-app/backend/errs"
	"github.com/collablab-app/backend/models"
	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
)

type projectSkillHandler struct {
	responder        Responder
	logger           zerolog.Logger
	projectSkillRepo *database.ProjectSkillRepo
	projectRepo      *database.ProjectRepo
}

func newProjectSkillHandler(projectSkillRepo *database.ProjectSkillRepo, projectRepo *database.ProjectRepo) projectSkillHandler {
	logger := log.With().Str("handlerName", "projectSkillHandler").Logger()

	return projectSkillHandler{
		responder:        NewResponder(logger),
		logger:           logger,
		projectSkillRepo: projectSkillRepo,
		projectRepo:      projectRepo,
	}
}

func (h projectSkillHandler) parseProjectID(r *http.Request) (uuid.UUID, error) {
	projectID, err := uuid.Parse(chi.URLParam(r, "projectID"))
	if err != nil {
		return uuid.Nil, errs.NewBadRequestError("invalid projectID")
	}
	return projectID, nil
}

func (h projectSkillHandler) getProjectSkills() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		projectID, err := h.parseProjectID(r)
		if err != nil {
			h.responder.WriteError(w, err)
			return
		}

		links, err := h.projectSkillRepo.FindByProject(projectID)
		if err != nil {
			h.responder.WriteError(w, wrapDatabaseError("find skills for", "project", err))
			return
		}

		h.responder.WriteJSON(w, links)
	}
}

func (h projectSkillHandler) addProjectSkill() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		projectID, err := h.parseProjectID(r)
		if err != nil {
			h.responder.WriteError(w, err)
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

		var req struct {
			SkillID uuid.UUID `json:"skill_id"`
		}
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			h.responder.WriteError(w, errs.NewBadRequestError("malformed request body"))
			return
		}
		if req.SkillID == uuid.Nil {
			h.responder.WriteError(w, errs.NewMissingRequiredFieldError("skill_id"))
			return
		}

		link := models.ProjectSkill{ProjectID: projectID, SkillID: req.SkillID}
		if err := h.projectSkillRepo.Add(&link); err != nil {
			h.responder.WriteError(w, wrapDatabaseError("link skill to", "project", err))
			return
		}

		w.WriteHeader(http.StatusCreated)
		h.responder.WriteJSON(w, link)
	}
}

// updateProjectSkill swaps the linked skill: the path names the current
// skill, the body carries the replacement.
func (h projectSkillHandler) updateProjectSkill() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		projectID, err := h.parseProjectID(r)
		if err != nil {
			h.responder.WriteError(w, err)
			return
		}

		skillID, err := uuid.Parse(chi.URLParam(r, "skillID"))
		if err != nil {
			h.responder.WriteError(w, errs.NewBadRequestError("invalid skillID"))
			return
		}

		var req struct {
			SkillID uuid.UUID `json:"skill_id"`
		}
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			h.responder.WriteError(w, errs.NewBadRequestError("malformed request body"))
			return
		}
		if req.SkillID == uuid.Nil {
			h.responder.WriteError(w, errs.NewMissingRequiredFieldError("skill_id"))
			return
		}

		if err := h.projectSkillRepo.UpdateSkill(projectID, skillID, req.SkillID); err != nil {
			h.responder.WriteError(w, wrapDatabaseError("update skill link for", "project", err))
			return
		}

		h.responder.WriteJSON(w, map[string]string{"status": "updated"})
	}
}

func (h projectSkillHandler) removeProjectSkill() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		projectID, err := h.parseProjectID(r)
		if err != nil {
			h.responder.WriteError(w, err)
			return
		}

		skillID, err := uuid.Parse(chi.URLParam(r, "skillID"))
		if err != nil {
			h.responder.WriteError(w, errs.NewBadRequestError("invalid skillID"))
			return
		}

		if err := h.projectSkillRepo.Delete(projectID, skillID); err != nil {
			h.responder.WriteError(w, wrapDatabaseError("unlink skill from", "project", err))
			return
		}

		h.responder.WriteJSON(w, map[string]string{"status": "deleted"})
	}
}
