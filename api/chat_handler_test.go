package api

import (
	"net/http"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestChatRejectsEmptyConversation(t *testing.T) {
	router, _ := newTestRouter(t)
	signUp(t, router, "ext-user", "Chatter")

	recorder := doJSON(t, router, http.MethodPost, "/chat", "ext-user", map[string]any{
		"messages": []any{},
	})
	require.Equal(t, http.StatusBadRequest, recorder.Code, recorder.Body.String())
}

func TestChatWithoutConfiguredServiceFails(t *testing.T) {
	router, _ := newTestRouter(t)
	signUp(t, router, "ext-user", "Chatter")

	recorder := doJSON(t, router, http.MethodPost, "/chat", "ext-user", map[string]any{
		"messages": []map[string]string{
			{"role": "user", "content": "suggest a project idea"},
		},
	})
	require.Equal(t, http.StatusInternalServerError, recorder.Code, recorder.Body.String())
}
