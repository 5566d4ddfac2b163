package services

import (
	"context"
	"fmt"
	"net/http"
	"strings"

	"github.com/tmc/langchaingo/llms"
	"github.com/tmc/langchaingo/llms/openai"

	"github.com/placementflow/placementflow-backend/internal/config"
	"github.com/placementflow/placementflow-backend/internal/logger"
)

// CompletionUsage is the provider-reported token usage for one call.
// Zero fields mean the provider did not report and the caller should
// fall back to its own counter.
type CompletionUsage struct {
	PromptTokens     int
	CompletionTokens int
}

// LLMService performs one synchronous completion per call. No
// streaming, no internal retry: a failed call surfaces to the caller,
// who may re-run the whole workflow (re-checking the gate).
type LLMService interface {
	Complete(ctx context.Context, system, prompt string) (string, CompletionUsage, error)
	Model() string
}

type llmService struct {
	client llms.Model
	model  string
	log    *logger.Logger
}

func NewLLMService(log *logger.Logger, cfg config.Config) (LLMService, error) {
	if cfg.OpenAIAPIKey == "" {
		return nil, fmt.Errorf("missing OPENAI_API_KEY")
	}
	client, err := openai.New(
		openai.WithToken(cfg.OpenAIAPIKey),
		openai.WithModel(cfg.OpenAIModel),
		openai.WithHTTPClient(&http.Client{Timeout: cfg.OpenAITimeout}),
	)
	if err != nil {
		return nil, fmt.Errorf("create openai client: %w", err)
	}
	return &llmService{
		client: client,
		model:  cfg.OpenAIModel,
		log:    log.With("service", "LLMService"),
	}, nil
}

func (s *llmService) Complete(ctx context.Context, system, prompt string) (string, CompletionUsage, error) {
	resp, err := s.client.GenerateContent(ctx, []llms.MessageContent{
		llms.TextParts(llms.ChatMessageTypeSystem, system),
		llms.TextParts(llms.ChatMessageTypeHuman, prompt),
	})
	if err != nil {
		return "", CompletionUsage{}, fmt.Errorf("completion request: %w", err)
	}
	if len(resp.Choices) == 0 {
		return "", CompletionUsage{}, ErrEmptyCompletion
	}

	choice := resp.Choices[0]
	usage := CompletionUsage{
		PromptTokens:     generationInfoInt(choice.GenerationInfo, "PromptTokens"),
		CompletionTokens: generationInfoInt(choice.GenerationInfo, "CompletionTokens"),
	}

	text := strings.TrimSpace(choice.Content)
	if text == "" {
		return "", usage, ErrEmptyCompletion
	}
	return text, usage, nil
}

func (s *llmService) Model() string {
	return s.model
}

func generationInfoInt(info map[string]any, key string) int {
	if info == nil {
		return 0
	}
	switch v := info[key].(type) {
	case int:
		return v
	case int64:
		return int(v)
	case float64:
		return int(v)
	default:
		return 0
	}
}
