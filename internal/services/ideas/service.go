// File: internal/services/ideas/service.go
package ideas

import (
	"context"
	"errors"
	"fmt"

	openai "github.com/sashabaranov/go-openai"
)

// Groq exposes an OpenAI-compatible API, so the standard client works with
// only a base URL swap.
const (
	DefaultBaseURL = "https://api.groq.com/openai/v1"
	DefaultModel   = "llama-3.3-70b-versatile"
)

// Logger interface for idea generation
type Logger interface {
	Info(msg string, keysAndValues ...interface{})
	Error(msg string, keysAndValues ...interface{})
	Debug(msg string, keysAndValues ...interface{})
	Warn(msg string, keysAndValues ...interface{})
}

type Config struct {
	APIKey  string
	BaseURL string
	Model   string
}

func (c *Config) Validate() error {
	if c.APIKey == "" {
		return fmt.Errorf("GROQ_API_KEY is required")
	}
	return nil
}

// Service generates and improves hackathon pitch ideas.
type Service struct {
	client *openai.Client
	model  string
	logger Logger
}

func NewService(cfg *Config, logger Logger) (*Service, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	clientConfig := openai.DefaultConfig(cfg.APIKey)
	clientConfig.BaseURL = cfg.BaseURL
	if clientConfig.BaseURL == "" {
		clientConfig.BaseURL = DefaultBaseURL
	}

	model := cfg.Model
	if model == "" {
		model = DefaultModel
	}

	return &Service{
		client: openai.NewClientWithConfig(clientConfig),
		model:  model,
		logger: logger,
	}, nil
}

// GenerateIdea produces a fresh pitch for the given theme or technologies.
func (s *Service) GenerateIdea(ctx context.Context, theme string) (string, error) {
	prompt := fmt.Sprintf(
		"You are helping a hackathon team brainstorm. Propose one concrete, buildable project idea for the theme %q. Include a short name, a two-sentence pitch, and the core technical approach.",
		theme)
	return s.complete(ctx, prompt)
}

// ImproveIdea sharpens an existing pitch, optionally against similar prior
// projects so the team can differentiate.
func (s *Service) ImproveIdea(ctx context.Context, idea string, priorArt []string) (string, error) {
	prompt := fmt.Sprintf(
		"Improve this hackathon pitch so it is clearer and more differentiated:\n\n%s", idea)
	if len(priorArt) > 0 {
		prompt += "\n\nSimilar past projects to differentiate from:"
		for _, p := range priorArt {
			prompt += "\n- " + p
		}
	}
	return s.complete(ctx, prompt)
}

func (s *Service) complete(ctx context.Context, prompt string) (string, error) {
	resp, err := s.client.CreateChatCompletion(ctx, openai.ChatCompletionRequest{
		Model: s.model,
		Messages: []openai.ChatCompletionMessage{
			{Role: openai.ChatMessageRoleUser, Content: prompt},
		},
	})
	if err != nil {
		s.logger.Error("completion failed", "model", s.model, "error", err.Error())
		return "", fmt.Errorf("idea generation failed: %w", err)
	}
	if len(resp.Choices) == 0 || resp.Choices[0].Message.Content == "" {
		return "", errors.New("language model returned empty reply")
	}
	return resp.Choices[0].Message.Content, nil
}
