package ai

import (
	"context"
	"errors"
	"fmt"
	"strings"

	openai "github.com/sashabaranov/go-openai"

	"github.com/carelane/carelane/backend/internal/config"
	"github.com/carelane/carelane/backend/internal/model/chat"
)

// ErrNoCredential is returned when the chat credential was never supplied.
var ErrNoCredential = errors.New("OPENAI_API_KEY is not set")

// Completer abstracts the chat-completion upstream so the chat service can
// be tested without network access.
type Completer interface {
	Complete(ctx context.Context, messages []chat.PromptMessage) (string, error)
}

// Service calls the OpenAI chat-completion API with a fixed model,
// temperature and output cap.
type Service struct {
	client *openai.Client
	cfg    config.OpenAIConfig
}

// NewService constructs the OpenAI-backed completer. A missing credential
// is tolerated here; Complete fails at call time instead so the rest of
// the service keeps operating.
func NewService(cfg config.OpenAIConfig) *Service {
	return &Service{
		client: openai.NewClient(cfg.APIKey),
		cfg:    cfg,
	}
}

// Complete sends the assembled messages and returns the reply text.
func (s *Service) Complete(ctx context.Context, messages []chat.PromptMessage) (string, error) {
	if !s.cfg.Enabled() {
		return "", ErrNoCredential
	}

	oaMsgs := make([]openai.ChatCompletionMessage, 0, len(messages))
	for _, m := range messages {
		oaMsgs = append(oaMsgs, openai.ChatCompletionMessage{Role: m.Role, Content: m.Content})
	}

	resp, err := s.client.CreateChatCompletion(ctx, openai.ChatCompletionRequest{
		Model:       s.cfg.Model,
		Messages:    oaMsgs,
		Temperature: s.cfg.Temperature,
		MaxTokens:   s.cfg.MaxTokens,
	})
	if err != nil {
		return "", fmt.Errorf("chat completion: %w", err)
	}
	if len(resp.Choices) == 0 {
		return "", fmt.Errorf("chat completion: empty response from model %s", s.cfg.Model)
	}
	return strings.TrimSpace(resp.Choices[0].Message.Content), nil
}
