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

type userHandler struct {
	responder Responder
	logger    zerolog.Logger
	userRepo  *database.UserRepo
}

func newUserHandler(userRepo *database.UserRepo) userHandler {
	logger := log.With().Str("handlerName", "userHandler").Logger()

	return userHandler{
		responder: NewResponder(logger),
		logger:    logger,
		userRepo:  userRepo,
	}
}

// createUserRequest carries the profile fields for first sign-in. The
// external identity comes from the session, never from the body.
type createUserRequest struct {
	Email       string      `json:"email"`
	Name        string      `json:"name"`
	Bio         *string     `json:"bio,omitempty"`
	LinkedinURL *string     `json:"linkedin_url,omitempty"`
	University  *string     `json:"university,omitempty"`
	Role        string      `json:"role,omitempty"`
	SkillIDs    []uuid.UUID `json:"skill_ids,omitempty"`
}

// getOrCreateUser creates the caller's user record on first sign-in. Calling
// it again with the same identity returns the existing record unchanged.
func (h userHandler) getOrCreateUser() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		externalID, err := ctxGetExternalID(r.Context())
		if err != nil {
			h.responder.WriteError(w, errs.Unauthorized)
			return
		}

		bodyBytes, err := io.ReadAll(r.Body)
		if err != nil {
			h.logger.Error().Err(err).Msg("Failed to read request body")
			h.responder.WriteError(w, errs.NewBadRequestError("failed to read request body"))
			return
		}

		var req createUserRequest
		if err := json.NewDecoder(bytes.NewReader(bodyBytes)).Decode(&req); err != nil {
			h.logger.Error().Err(err).Str("body", string(bodyBytes)).Msg("Failed to decode user request body")
			h.responder.WriteError(w, errs.NewBadRequestError("malformed request body"))
			return
		}

		if req.Email == "" {
			h.responder.WriteError(w, errs.NewMissingRequiredFieldError("email"))
			return
		}
		if req.Name == "" {
			h.responder.WriteError(w, errs.NewMissingRequiredFieldError("name"))
			return
		}
		if req.Role != "" && !validUserRole(req.Role) {
			h.responder.WriteError(w, errs.NewInvalidFieldError("role", "must be student, admin, or mentor"))
			return
		}

		user := models.User{
			ExternalID:  externalID,
			Email:       req.Email,
			Name:        req.Name,
			Bio:         req.Bio,
			LinkedinURL: req.LinkedinURL,
			University:  req.University,
			Role:        req.Role,
		}

		created, inserted, err := h.userRepo.GetOrCreate(&user, req.SkillIDs)
		if err != nil {
			h.responder.WriteError(w, wrapDatabaseError("create", "user", err))
			return
		}

		if inserted {
			w.WriteHeader(http.StatusCreated)
		}
		h.responder.WriteJSON(w, created)
	}
}

func validUserRole(role string) bool {
	switch role {
	case models.RoleStudent, models.RoleAdmin, models.RoleMentor:
		return true
	}
	return false
}

// resolveUser maps the {userID} path segment to a user row. The literal "me"
// resolves through the caller's external identity.
func (h userHandler) resolveUser(r *http.Request) (*models.User, error) {
	userIDStr := chi.URLParam(r, "userID")
	if userIDStr == "" {
		return nil, errs.NewBadRequestError("missing userID")
	}

	if userIDStr == "me" {
		externalID, err := ctxGetExternalID(r.Context())
		if err != nil {
			return nil, errs.Unauthorized
		}
		user, err := h.userRepo.FindByExternalID(externalID)
		if err != nil {
			return nil, wrapDatabaseError("find", "user", err)
		}
		return user, nil
	}

	userID, err := uuid.Parse(userIDStr)
	if err != nil {
		return nil, errs.NewBadRequestError("invalid userID")
	}

	user, err := h.userRepo.FindByID(userID)
	if err != nil {
		return nil, wrapDatabaseError("find", "user", err)
	}
	return user, nil
}

func (h userHandler) getUser() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		user, err := h.resolveUser(r)
		if err != nil {
			h.responder.WriteError(w, err)
			return
		}
		if user == nil {
			h.responder.WriteError(w, errs.NewNotFoundError("user not found"))
			return
		}

		if user.Skills == nil {
			skills, err := h.userRepo.SkillsFor(user.ID)
			if err != nil {
				h.responder.WriteError(w, wrapDatabaseError("find skills for", "user", err))
				return
			}
			user.Skills = skills
		}

		h.responder.WriteJSON(w, user)
	}
}

func (h userHandler) updateUser() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		user, err := h.resolveUser(r)
		if err != nil {
			h.responder.WriteError(w, err)
			return
		}
		if user == nil {
			h.responder.WriteError(w, errs.NewNotFoundError("user not found"))
			return
		}

		var fields map[string]any
		if err := json.NewDecoder(r.Body).Decode(&fields); err != nil {
			h.responder.WriteError(w, errs.NewBadRequestError("malformed request body"))
			return
		}
		if role, ok := fields["role"]; ok {
			roleStr, isString := role.(string)
			if !isString || !validUserRole(roleStr) {
				h.responder.WriteError(w, errs.NewInvalidFieldError("role", "must be student, admin, or mentor"))
				return
			}
		}

		updated, err := h.userRepo.Update(user.ID, fields)
		if err != nil {
			h.responder.WriteError(w, wrapDatabaseError("update", "user", err))
			return
		}
		if updated == nil {
			h.responder.WriteError(w, errs.NewNotFoundError("user not found"))
			return
		}

		h.responder.WriteJSON(w, updated)
	}
}

func (h userHandler) deleteUser() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		user, err := h.resolveUser(r)
		if err != nil {
			h.responder.WriteError(w, err)
			return
		}
		if user == nil {
			h.responder.WriteError(w, errs.NewNotFoundError("user not found"))
			return
		}

		if err := h.userRepo.Delete(user.ID); err != nil {
			h.responder.WriteError(w, wrapDatabaseError("delete", "user", err))
			return
		}

		h.responder.WriteJSON(w, map[string]string{"status": "deleted"})
	}
}

func (h userHandler) getUserSkills() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		user, err := h.resolveUser(r)
		if err != nil {
			h.responder.WriteError(w, err)
			return
		}
		if user == nil {
			h.responder.WriteError(w, errs.NewNotFoundError("user not found"))
			return
		}

		skills, err := h.userRepo.SkillsFor(user.ID)
		if err != nil {
			h.responder.WriteError(w, wrapDatabaseError("find skills for", "user", err))
			return
		}

		h.responder.WriteJSON(w, skills)
	}
}

func (h userHandler) addUserSkill() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		user, err := h.resolveUser(r)
		if err != nil {
			h.responder.WriteError(w, err)
			return
		}
		if user == nil {
			h.responder.WriteError(w, errs.NewNotFoundError("user not found"))
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

		if err := h.userRepo.AddSkill(user.ID, req.SkillID); err != nil {
			h.responder.WriteError(w, wrapDatabaseError("link skill to", "user", err))
			return
		}

		w.WriteHeader(http.StatusCreated)
		h.responder.WriteJSON(w, map[string]string{"status": "created"})
	}
}

func (h userHandler) removeUserSkill() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		user, err := h.resolveUser(r)
		if err != nil {
			h.responder.WriteError(w, err)
			return
		}
		if user == nil {
			h.responder.WriteError(w, errs.NewNotFoundError("user not found"))
			return
		}

		skillID, err := uuid.Parse(chi.URLParam(r, "skillID"))
		if err != nil {
			h.responder.WriteError(w, errs.NewBadRequestError("invalid skillID"))
			return
		}

		if err := h.userRepo.RemoveSkill(user.ID, skillID); err != nil {
			h.responder.WriteError(w, wrapDatabaseError("unlink skill from", "user", err))
			return
		}

		h.responder.WriteJSON(w, map[string]string{"status": "deleted"})
	}
}

func (h userHandler) getOnboarding() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		user, err := h.resolveUser(r)
		if err != nil {
			h.responder.WriteError(w, err)
			return
		}
		if user == nil {
			h.responder.WriteError(w, errs.NewNotFoundError("user not found"))
			return
		}

		completed, err := h.userRepo.HasCompletedOnboarding(user.ExternalID)
		if err != nil {
			h.responder.WriteError(w, wrapDatabaseError("find onboarding flag for", "user", err))
			return
		}

		h.responder.WriteJSON(w, map[string]bool{"onboarding_complete": completed})
	}
}
