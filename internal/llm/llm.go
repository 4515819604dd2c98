// Package llm wraps the generative-text backends. Providers are tried in a
// fixed order with one attempt each, and every failure degrades to the
// deterministic offline composer, so callers never see a hard error.
package llm

import (
	"context"
	"time"

	openai "github.com/sashabaranov/go-openai"
	"go.uber.org/zap"

	"capbot/internal/payroll"
)

const (
	groqBaseURL = "https://api.groq.com/openai/v1"
	groqModel   = "llama-3.1-8b-instant"

	defaultOpenAIModel = "gpt-3.5-turbo"
	defaultTimeout     = 30 * time.Second
)

// Message is one turn of conversation history.
type Message struct {
	Role    string `json:"role"`
	Content string `json:"content"`
}

// Client is the generative backend contract consumed by the chat service.
// Offline reports that no backend credential is configured, so callers can
// prefer their own deterministic text over the canned composer.
type Client interface {
	Generate(ctx context.Context, userMessage string, history []Message, evidence []payroll.Evidence) (string, error)
	Offline() bool
}

type Config struct {
	GroqAPIKey   string
	OpenAIAPIKey string
	OpenAIModel  string
	Timeout      time.Duration
}

// Service chains Groq (preferred, OpenAI-compatible endpoint), then
// OpenAI, then the offline composer.
type Service struct {
	groq        *openai.Client
	oai         *openai.Client
	openaiModel string
	timeout     time.Duration
	demo        DemoComposer
}

func NewService(cfg Config) *Service {
	s := &Service{
		openaiModel: cfg.OpenAIModel,
		timeout:     cfg.Timeout,
	}
	if s.openaiModel == "" {
		s.openaiModel = defaultOpenAIModel
	}
	if s.timeout <= 0 {
		s.timeout = defaultTimeout
	}

	if cfg.GroqAPIKey != "" {
		groqCfg := openai.DefaultConfig(cfg.GroqAPIKey)
		groqCfg.BaseURL = groqBaseURL
		s.groq = openai.NewClientWithConfig(groqCfg)
	}
	if cfg.OpenAIAPIKey != "" {
		s.oai = openai.NewClient(cfg.OpenAIAPIKey)
	}

	return s
}

// Offline reports whether no generative backend is configured.
func (s *Service) Offline() bool {
	return s.groq == nil && s.oai == nil
}

// Generate produces the reply text. The error return exists to satisfy the
// contract; the chain always lands on the offline composer instead of
// propagating backend failures.
func (s *Service) Generate(ctx context.Context, userMessage string, history []Message, evidence []payroll.Evidence) (string, error) {
	if s.groq != nil {
		reply, err := s.complete(ctx, s.groq, groqModel, userMessage, history, evidence)
		if err == nil {
			return reply, nil
		}
		zap.L().Warn("groq request failed, falling back", zap.Error(err))
	}

	if s.oai != nil {
		reply, err := s.complete(ctx, s.oai, s.openaiModel, userMessage, history, evidence)
		if err == nil {
			return reply, nil
		}
		zap.L().Warn("openai request failed, falling back", zap.Error(err))
	}

	return s.demo.Compose(userMessage, evidence), nil
}

func (s *Service) complete(ctx context.Context, client *openai.Client, model, userMessage string, history []Message, evidence []payroll.Evidence) (string, error) {
	ctx, cancel := context.WithTimeout(ctx, s.timeout)
	defer cancel()

	resp, err := client.CreateChatCompletion(ctx, openai.ChatCompletionRequest{
		Model:       model,
		Messages:    buildMessages(userMessage, history, evidence),
		Temperature: 0.7,
		MaxTokens:   1000,
	})
	if err != nil {
		return "", err
	}
	if len(resp.Choices) == 0 {
		return "", ErrEmptyCompletion
	}

	return resp.Choices[0].Message.Content, nil
}
