package services

import (
	"context"
	"fmt"
	"strings"

	"github.com/collablab-app/backend/config"
	"github.com/rs/zerolog/log"
	"github.com/tmc/langchaingo/llms"
	"github.com/tmc/langchaingo/llms/openai"
)

const (
	chatModel       = "gpt-4o-mini"
	chatTemperature = 0.7
	chatMaxTokens   = 800
)

// ChatMessage is one turn of the idea-suggestion conversation.
type ChatMessage struct {
	Role    string `json:"role"`
	Content string `json:"content"`
}

// ChatService proxies the project-idea conversation to the chat-completion
// endpoint. One call per request; no retry, no streaming, no state.
type ChatService struct {
	llm *openai.LLM
}

// NewChatService builds the completion client from OPENAI_API_KEY.
func NewChatService() (*ChatService, error) {
	cfg := config.New()

	apiKey := config.GetString(cfg, "OPENAI_API_KEY", "")
	if apiKey == "" {
		return nil, fmt.Errorf("OPENAI_API_KEY environment variable is required")
	}

	llm, err := openai.New(
		openai.WithToken(apiKey),
		openai.WithModel(config.GetString(cfg, "OPENAI_MODEL", chatModel)),
	)
	if err != nil {
		return nil, fmt.Errorf("failed to initialize completion client: %w", err)
	}

	return &ChatService{llm: llm}, nil
}

// SystemPrompt builds the instruction embedding the caller's skill names, or
// a generic instruction when none were supplied.
func SystemPrompt(userSkills []string) string {
	if len(userSkills) == 0 {
		return "You are a helpful assistant for a student collaboration platform. " +
			"Suggest concrete, scoped project ideas that a small student team could build together, " +
			"and answer follow-up questions about planning and teamwork."
	}

	return fmt.Sprintf(
		"You are a helpful assistant for a student collaboration platform. "+
			"The student has the following skills: %s. "+
			"Suggest concrete, scoped project ideas that make good use of these skills, "+
			"and answer follow-up questions about planning and teamwork.",
		strings.Join(userSkills, ", "),
	)
}

// Complete forwards the system instruction plus the message history and
// returns the single reply verbatim.
func (s *ChatService) Complete(ctx context.Context, history []ChatMessage, userSkills []string) (ChatMessage, error) {
	content := make([]llms.MessageContent, 0, len(history)+1)
	content = append(content, llms.TextParts(llms.ChatMessageTypeSystem, SystemPrompt(userSkills)))

	for _, message := range history {
		role := llms.ChatMessageTypeHuman
		if message.Role == "assistant" {
			role = llms.ChatMessageTypeAI
		}
		content = append(content, llms.TextParts(role, message.Content))
	}

	response, err := s.llm.GenerateContent(ctx, content,
		llms.WithTemperature(chatTemperature),
		llms.WithMaxTokens(chatMaxTokens),
	)
	if err != nil {
		return ChatMessage{}, fmt.Errorf("chat completion failed: %w", err)
	}
	if len(response.Choices) == 0 {
		return ChatMessage{}, fmt.Errorf("chat completion returned no choices")
	}

	reply := ChatMessage{Role: "assistant", Content: response.Choices[0].Content}
	log.Debug().Int("historyLen", len(history)).Int("replyLen", len(reply.Content)).Msg("Chat completion returned")

	return reply, nil
}
