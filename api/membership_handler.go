package api

import (
	"net/http"

	"github.com/collablab-app/backend/database"
	"github.com/collablab-app/backend/errs"
	"github.com/collablab-app/backend/models"
	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
)

type membershipHandler struct {
	responder       Responder
	logger          zerolog.Logger
	userProjectRepo *database.UserProjectRepo
	userRepo        *database.UserRepo
}

func newMembershipHandler(userProjectRepo *database.UserProjectRepo, userRepo *database.UserRepo) membershipHandler {
	logger := log.With().Str("handlerName", "membershipHandler").Logger()

	return membershipHandler{
		responder:       NewResponder(logger),
		logger:          logger,
		userProjectRepo: userProjectRepo,
		userRepo:        userRepo,
	}
}

func (h membershipHandler) callerUser(r *http.Request) (*models.User, error) {
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

// getUserProjects lists a user's memberships with projects joined. Optional
// filters: ?role=creator|member and ?completed=true (projects that reached
// completed status).
func (h membershipHandler) getUserProjects() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		userIDStr := chi.URLParam(r, "userID")

		var userID uuid.UUID
		if userIDStr == "me" {
			caller, err := h.callerUser(r)
			if err != nil {
				h.responder.WriteError(w, err)
				return
			}
			userID = caller.ID
		} else {
			parsed, err := uuid.Parse(userIDStr)
			if err != nil {
				h.responder.WriteError(w, errs.NewBadRequestError("invalid userID"))
				return
			}
			userID = parsed
		}

		var memberships []models.UserProject
		var err error
		switch {
		case r.URL.Query().Get("completed") == "true":
			memberships, err = h.userProjectRepo.FindCompletedByUser(userID)
		case r.URL.Query().Get("role") != "":
			role := r.URL.Query().Get("role")
			if role != models.MembershipCreator && role != models.MembershipMember {
				h.responder.WriteError(w, errs.NewInvalidFieldError("role", "must be creator or member"))
				return
			}
			memberships, err = h.userProjectRepo.FindByUserAndRole(userID, role)
		default:
			memberships, err = h.userProjectRepo.FindByUser(userID)
		}
		if err != nil {
			h.responder.WriteError(w, wrapDatabaseError("find memberships for", "user", err))
			return
		}

		h.responder.WriteJSON(w, memberships)
	}
}

// joinProject adds the caller as a member. This is the unmoderated direct
// path; accepted applications use it too, as a separate follow-up call.
func (h membershipHandler) joinProject() http.HandlerFunc {
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

		membership, err := h.userProjectRepo.Join(caller.ID, projectID, models.MembershipMember)
		if err != nil {
			h.responder.WriteError(w, wrapDatabaseError("create membership for", "project", err))
			return
		}

		w.WriteHeader(http.StatusCreated)
		h.responder.WriteJSON(w, membership)
	}
}

func (h membershipHandler) leaveProject() http.HandlerFunc {
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

		if err := h.userProjectRepo.Leave(caller.ID, projectID); err != nil {
			h.responder.WriteError(w, wrapDatabaseError("delete membership for", "project", err))
			return
		}

		h.responder.WriteJSON(w, map[string]string{"status": "deleted"})
	}
}

// getProjectMembers lists a project's memberships with users joined.
// ?details=true returns full user rows instead, one lookup per membership.
func (h membershipHandler) getProjectMembers() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		projectID, err := uuid.Parse(chi.URLParam(r, "projectID"))
		if err != nil {
			h.responder.WriteError(w, errs.NewBadRequestError("invalid projectID"))
			return
		}

		if r.URL.Query().Get("details") == "true" {
			users, err := h.userProjectRepo.ProjectUsersWithDetails(projectID)
			if err != nil {
				h.responder.WriteError(w, wrapDatabaseError("find members of", "project", err))
				return
			}
			h.responder.WriteJSON(w, users)
			return
		}

		memberships, err := h.userProjectRepo.ProjectMembers(projectID)
		if err != nil {
			h.responder.WriteError(w, wrapDatabaseError("find members of", "project", err))
			return
		}

		h.responder.WriteJSON(w, memberships)
	}
}
