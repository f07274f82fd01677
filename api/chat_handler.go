package api

import (
	"encoding/json"
	"net/http"

	"github.com/collablab-app/backend/errs"
	"github.com/collablab-app/backend/services"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
)

type chatHandler struct {
	responder   Responder
	logger      zerolog.Logger
	chatService *services.ChatService
}

func newChatHandler(chatService *services.ChatService) chatHandler {
	logger := log.With().Str("handlerName", "chatHandler").Logger()

	return chatHandler{
		responder:   NewResponder(logger),
		logger:      logger,
		chatService: chatService,
	}
}

type chatRequest struct {
	Messages   []services.ChatMessage `json:"messages"`
	UserSkills []string               `json:"userSkills"`
}

type chatResponse struct {
	Message services.ChatMessage `json:"message"`
}

// chat forwards the conversation to the completion endpoint and returns the
// single reply. Upstream failures surface as 500s with the upstream text.
func (h chatHandler) chat() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req chatRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			h.responder.WriteError(w, errs.NewBadRequestError("malformed request body"))
			return
		}
		if len(req.Messages) == 0 {
			h.responder.WriteError(w, errs.NewMissingRequiredFieldError("messages"))
			return
		}

		if h.chatService == nil {
			h.responder.WriteError(w, errs.NewInternalError("chat service is not configured"))
			return
		}

		reply, err := h.chatService.Complete(r.Context(), req.Messages, req.UserSkills)
		if err != nil {
			h.responder.WriteError(w, errs.NewUpstreamError("chat completion", err))
			return
		}

		h.responder.WriteJSON(w, chatResponse{Message: reply})
	}
}
