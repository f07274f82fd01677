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

type messageHandler struct {
	responder   Responder
	logger      zerolog.Logger
	messageRepo *database.MessageRepo
}

func newMessageHandler(messageRepo *database.MessageRepo) messageHandler {
	logger := log.With().Str("handlerName", "messageHandler").Logger()

	return messageHandler{
		responder:   NewResponder(logger),
		logger:      logger,
		messageRepo: messageRepo,
	}
}

// getConversation returns all messages between ?userA= and ?userB=, both
// directions, oldest first, optionally narrowed by ?projectID=.
func (h messageHandler) getConversation() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		userA, err := uuid.Parse(r.URL.Query().Get("userA"))
		if err != nil {
			h.responder.WriteError(w, errs.NewInvalidFieldError("userA", "must be a valid id"))
			return
		}
		userB, err := uuid.Parse(r.URL.Query().Get("userB"))
		if err != nil {
			h.responder.WriteError(w, errs.NewInvalidFieldError("userB", "must be a valid id"))
			return
		}

		var projectID *uuid.UUID
		if projectIDStr := r.URL.Query().Get("projectID"); projectIDStr != "" {
			parsed, err := uuid.Parse(projectIDStr)
			if err != nil {
				h.responder.WriteError(w, errs.NewInvalidFieldError("projectID", "must be a valid id"))
				return
			}
			projectID = &parsed
		}

		messages, err := h.messageRepo.Conversation(userA, userB, projectID)
		if err != nil {
			h.responder.WriteError(w, wrapDatabaseError("find", "messages", err))
			return
		}

		h.responder.WriteJSON(w, messages)
	}
}

func (h messageHandler) getMessage() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		messageID, err := uuid.Parse(chi.URLParam(r, "messageID"))
		if err != nil {
			h.responder.WriteError(w, errs.NewBadRequestError("invalid messageID"))
			return
		}

		message, err := h.messageRepo.FindByID(messageID)
		if err != nil {
			h.responder.WriteError(w, wrapDatabaseError("find", "message", err))
			return
		}
		if message == nil {
			h.responder.WriteError(w, errs.NewNotFoundError("message not found"))
			return
		}

		h.responder.WriteJSON(w, message)
	}
}

// createMessage requires sender, receiver, and content; project is optional.
func (h messageHandler) createMessage() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req struct {
			SenderID   uuid.UUID  `json:"sender_id"`
			ReceiverID uuid.UUID  `json:"receiver_id"`
			ProjectID  *uuid.UUID `json:"project_id,omitempty"`
			Content    string     `json:"content"`
		}
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			h.responder.WriteError(w, errs.NewBadRequestError("malformed request body"))
			return
		}

		if req.SenderID == uuid.Nil {
			h.responder.WriteError(w, errs.NewMissingRequiredFieldError("sender_id"))
			return
		}
		if req.ReceiverID == uuid.Nil {
			h.responder.WriteError(w, errs.NewMissingRequiredFieldError("receiver_id"))
			return
		}
		if req.Content == "" {
			h.responder.WriteError(w, errs.NewMissingRequiredFieldError("content"))
			return
		}

		message := models.Message{
			SenderID:   req.SenderID,
			ReceiverID: &req.ReceiverID,
			ProjectID:  req.ProjectID,
			Content:    req.Content,
		}
		if err := h.messageRepo.Create(&message); err != nil {
			h.responder.WriteError(w, wrapDatabaseError("create", "message", err))
			return
		}

		w.WriteHeader(http.StatusCreated)
		h.responder.WriteJSON(w, message)
	}
}

// updateMessage flips the read flag.
func (h messageHandler) updateMessage() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		messageID, err := uuid.Parse(chi.URLParam(r, "messageID"))
		if err != nil {
			h.responder.WriteError(w, errs.NewBadRequestError("invalid messageID"))
			return
		}

		message, err := h.messageRepo.FindByID(messageID)
		if err != nil {
			h.responder.WriteError(w, wrapDatabaseError("find", "message", err))
			return
		}
		if message == nil {
			h.responder.WriteError(w, errs.NewNotFoundError("message not found"))
			return
		}

		var req struct {
			IsRead bool `json:"is_read"`
		}
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			h.responder.WriteError(w, errs.NewBadRequestError("malformed request body"))
			return
		}

		if err := h.messageRepo.MarkRead(messageID, req.IsRead); err != nil {
			h.responder.WriteError(w, wrapDatabaseError("update", "message", err))
			return
		}

		message.IsRead = req.IsRead
		h.responder.WriteJSON(w, message)
	}
}

func (h messageHandler) deleteMessage() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		messageID, err := uuid.Parse(chi.URLParam(r, "messageID"))
		if err != nil {
			h.responder.WriteError(w, errs.NewBadRequestError("invalid messageID"))
			return
		}

		message, err := h.messageRepo.FindByID(messageID)
		if err != nil {
			h.responder.WriteError(w, wrapDatabaseError("find", "message", err))
			return
		}
		if message == nil {
			h.responder.WriteError(w, errs.NewNotFoundError("message not found"))
			return
		}

		if err := h.messageRepo.Delete(messageID); err != nil {
			h.responder.WriteError(w, wrapDatabaseError("delete", "message", err))
			return
		}

		h.responder.WriteJSON(w, map[string]string{"status": "deleted"})
	}
}
