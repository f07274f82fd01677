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

type skillHandler struct {
	responder Responder
	logger    zerolog.Logger
	skillRepo *database.SkillRepo
}

func newSkillHandler(skillRepo *database.SkillRepo) skillHandler {
	logger := log.With().Str("handlerName", "skillHandler").Logger()

	return skillHandler{
		responder: NewResponder(logger),
		logger:    logger,
		skillRepo: skillRepo,
	}
}

func (h skillHandler) getAllSkills() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		skills, err := h.skillRepo.FindAll()
		if err != nil {
			h.responder.WriteError(w, wrapDatabaseError("find", "skills", err))
			return
		}

		h.responder.WriteJSON(w, skills)
	}
}

func (h skillHandler) getSkill() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		skillID, err := uuid.Parse(chi.URLParam(r, "skillID"))
		if err != nil {
			h.responder.WriteError(w, errs.NewBadRequestError("invalid skillID"))
			return
		}

		skill, err := h.skillRepo.FindByID(skillID)
		if err != nil {
			h.responder.WriteError(w, wrapDatabaseError("find", "skill", err))
			return
		}
		if skill == nil {
			h.responder.WriteError(w, errs.NewNotFoundError("skill not found"))
			return
		}

		h.responder.WriteJSON(w, skill)
	}
}

// searchSkills matches skill names case-insensitively on a substring, so
// "script" finds "TypeScript".
func (h skillHandler) searchSkills() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		name := chi.URLParam(r, "name")
		if name == "" {
			h.responder.WriteError(w, errs.NewBadRequestError("missing name"))
			return
		}

		skills, err := h.skillRepo.SearchByName(name)
		if err != nil {
			h.responder.WriteError(w, wrapDatabaseError("search", "skills", err))
			return
		}

		h.responder.WriteJSON(w, skills)
	}
}

func (h skillHandler) createSkill() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var skill models.Skill
		if err := json.NewDecoder(r.Body).Decode(&skill); err != nil {
			h.responder.WriteError(w, errs.NewBadRequestError("malformed request body"))
			return
		}

		if skill.Name == "" {
			h.responder.WriteError(w, errs.NewMissingRequiredFieldError("name"))
			return
		}
		if skill.Category == "" {
			skill.Category = models.CategoryOther
		}

		if err := h.skillRepo.Add(&skill); err != nil {
			h.responder.WriteError(w, wrapDatabaseError("create", "skill", err))
			return
		}

		w.WriteHeader(http.StatusCreated)
		h.responder.WriteJSON(w, skill)
	}
}

// updateSkill takes the full skill, id included, in the body.
func (h skillHandler) updateSkill() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var skill models.Skill
		if err := json.NewDecoder(r.Body).Decode(&skill); err != nil {
			h.responder.WriteError(w, errs.NewBadRequestError("malformed request body"))
			return
		}
		if skill.ID == uuid.Nil {
			h.responder.WriteError(w, errs.NewMissingRequiredFieldError("id"))
			return
		}

		existing, err := h.skillRepo.FindByID(skill.ID)
		if err != nil {
			h.responder.WriteError(w, wrapDatabaseError("find", "skill", err))
			return
		}
		if existing == nil {
			h.responder.WriteError(w, errs.NewNotFoundError("skill not found"))
			return
		}

		// A partial body keeps the stored value for whatever it omits, so
		// the full-row save below cannot blank a field.
		if skill.Name == "" {
			skill.Name = existing.Name
		}
		if skill.Category == "" {
			skill.Category = existing.Category
		}

		if err := h.skillRepo.Update(&skill); err != nil {
			h.responder.WriteError(w, wrapDatabaseError("update", "skill", err))
			return
		}

		h.responder.WriteJSON(w, skill)
	}
}

func (h skillHandler) deleteSkill() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req struct {
			ID uuid.UUID `json:"id"`
		}
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			h.responder.WriteError(w, errs.NewBadRequestError("malformed request body"))
			return
		}
		if req.ID == uuid.Nil {
			h.responder.WriteError(w, errs.NewMissingRequiredFieldError("id"))
			return
		}

		if err := h.skillRepo.Delete(req.ID); err != nil {
			h.responder.WriteError(w, wrapDatabaseError("delete", "skill", err))
			return
		}

		h.responder.WriteJSON(w, map[string]string{"status": "deleted"})
	}
}
