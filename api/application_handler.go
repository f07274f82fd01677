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

type applicationHandler struct {
	responder       Responder
	logger          zerolog.Logger
	applicationRepo *database.ApplicationRepo
	userRepo        *database.UserRepo
}

func newApplicationHandler(applicationRepo *database.ApplicationRepo, userRepo *database.UserRepo) applicationHandler {
	logger := log.With().Str("handlerName", "applicationHandler").Logger()

	return applicationHandler{
		responder:       NewResponder(logger),
		logger:          logger,
		applicationRepo: applicationRepo,
		userRepo:        userRepo,
	}
}

func (h applicationHandler) callerUser(r *http.Request) (*models.User, error) {
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

// listApplications lists by ?projectID= (applicant joined; &bare=true skips
// the join) or ?userID= (project joined). Without filters it lists the
// caller's own applications.
func (h applicationHandler) listApplications() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if projectIDStr := r.URL.Query().Get("projectID"); projectIDStr != "" {
			projectID, err := uuid.Parse(projectIDStr)
			if err != nil {
				h.responder.WriteError(w, errs.NewBadRequestError("invalid projectID"))
				return
			}

			var applications []models.Application
			if r.URL.Query().Get("bare") == "true" {
				applications, err = h.applicationRepo.FindByProjectBare(projectID)
			} else {
				applications, err = h.applicationRepo.FindByProject(projectID)
			}
			if err != nil {
				h.responder.WriteError(w, wrapDatabaseError("find applications for", "project", err))
				return
			}
			h.responder.WriteJSON(w, applications)
			return
		}

		if userIDStr := r.URL.Query().Get("userID"); userIDStr != "" {
			userID, err := uuid.Parse(userIDStr)
			if err != nil {
				h.responder.WriteError(w, errs.NewBadRequestError("invalid userID"))
				return
			}

			applications, err := h.applicationRepo.FindByUser(userID)
			if err != nil {
				h.responder.WriteError(w, wrapDatabaseError("find applications for", "user", err))
				return
			}
			h.responder.WriteJSON(w, applications)
			return
		}

		caller, err := h.callerUser(r)
		if err != nil {
			h.responder.WriteError(w, err)
			return
		}

		applications, err := h.applicationRepo.FindByUser(caller.ID)
		if err != nil {
			h.responder.WriteError(w, wrapDatabaseError("find applications for", "user", err))
			return
		}
		h.responder.WriteJSON(w, applications)
	}
}

func (h applicationHandler) getApplication() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		applicationID, err := uuid.Parse(chi.URLParam(r, "applicationID"))
		if err != nil {
			h.responder.WriteError(w, errs.NewBadRequestError("invalid applicationID"))
			return
		}

		application, err := h.applicationRepo.FindByID(applicationID)
		if err != nil {
			h.responder.WriteError(w, wrapDatabaseError("find", "application", err))
			return
		}
		if application == nil {
			h.responder.WriteError(w, errs.NewNotFoundError("application not found"))
			return
		}

		h.responder.WriteJSON(w, application)
	}
}

func (h applicationHandler) createApplication() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		caller, err := h.callerUser(r)
		if err != nil {
			h.responder.WriteError(w, err)
			return
		}

		var req struct {
			ProjectID uuid.UUID `json:"project_id"`
			Message   string    `json:"message"`
		}
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			h.responder.WriteError(w, errs.NewBadRequestError("malformed request body"))
			return
		}

		if req.ProjectID == uuid.Nil {
			h.responder.WriteError(w, errs.NewMissingRequiredFieldError("project_id"))
			return
		}
		if req.Message == "" {
			h.responder.WriteError(w, errs.NewMissingRequiredFieldError("message"))
			return
		}

		application := models.Application{
			ProjectID: req.ProjectID,
			UserID:    caller.ID,
			Message:   req.Message,
		}
		if err := h.applicationRepo.Create(&application); err != nil {
			h.responder.WriteError(w, wrapDatabaseError("create", "application", err))
			return
		}

		w.WriteHeader(http.StatusCreated)
		h.responder.WriteJSON(w, application)
	}
}

// updateApplication transitions the status (project creator only) and/or
// edits the message text (pending applications only). Accepting does not
// create a membership row; the applicant joins with a separate call.
func (h applicationHandler) updateApplication() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		caller, err := h.callerUser(r)
		if err != nil {
			h.responder.WriteError(w, err)
			return
		}

		applicationID, err := uuid.Parse(chi.URLParam(r, "applicationID"))
		if err != nil {
			h.responder.WriteError(w, errs.NewBadRequestError("invalid applicationID"))
			return
		}

		var req struct {
			Status  *string `json:"status,omitempty"`
			Message *string `json:"message,omitempty"`
		}
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			h.responder.WriteError(w, errs.NewBadRequestError("malformed request body"))
			return
		}
		if req.Status == nil && req.Message == nil {
			h.responder.WriteError(w, errs.NewBadRequestError("nothing to update"))
			return
		}

		var application *models.Application

		if req.Message != nil {
			if *req.Message == "" {
				h.responder.WriteError(w, errs.NewInvalidFieldError("message", "must not be empty"))
				return
			}
			application, err = h.applicationRepo.UpdateMessage(applicationID, *req.Message)
			if err != nil {
				h.responder.WriteError(w, wrapDatabaseError("update message of", "application", err))
				return
			}
			if application == nil {
				h.responder.WriteError(w, errs.NewNotFoundError("application not found"))
				return
			}
		}

		if req.Status != nil {
			if !validApplicationStatus(*req.Status) {
				h.responder.WriteError(w, errs.NewInvalidFieldError("status", "must be pending, accepted, or rejected"))
				return
			}
			application, err = h.applicationRepo.UpdateStatus(applicationID, caller.ID, *req.Status)
			if err != nil {
				h.responder.WriteError(w, wrapDatabaseError("update status of", "application", err))
				return
			}
			if application == nil {
				h.responder.WriteError(w, errs.NewNotFoundError("application not found"))
				return
			}
		}

		h.responder.WriteJSON(w, application)
	}
}

func (h applicationHandler) deleteApplication() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		applicationID, err := uuid.Parse(chi.URLParam(r, "applicationID"))
		if err != nil {
			h.responder.WriteError(w, errs.NewBadRequestError("invalid applicationID"))
			return
		}

		application, err := h.applicationRepo.FindByID(applicationID)
		if err != nil {
			h.responder.WriteError(w, wrapDatabaseError("find", "application", err))
			return
		}
		if application == nil {
			h.responder.WriteError(w, errs.NewNotFoundError("application not found"))
			return
		}

		if err := h.applicationRepo.Delete(applicationID); err != nil {
			h.responder.WriteError(w, wrapDatabaseError("delete", "application", err))
			return
		}

		h.responder.WriteJSON(w, map[string]string{"status": "deleted"})
	}
}

func validApplicationStatus(status string) bool {
	switch status {
	case models.ApplicationPending, models.ApplicationAccepted, models.ApplicationRejected:
		return true
	}
	return false
}
