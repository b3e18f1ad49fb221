package adapters

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/generative-ai-go/genai"
	"github.com/rs/zerolog"
	openai "github.com/sashabaranov/go-openai"
	"google.golang.org/api/option"
	"sojourn/internal/config"
)

// AIClient is the low-level completion gateway. OpenAI is the primary
// provider; when it is unconfigured or errors, the Gemini free tier takes
// over. Callers never see which provider answered.
type AIClient interface {
	Configured() bool
	Complete(ctx context.Context, systemPrompt, userPrompt string) (string, error)
}

type aiClient struct {
	openai      *openai.Client
	openaiModel string
	gemini      *genai.Client
	geminiModel string
	logger      zerolog.Logger
}

var errNoProvider = errors.New("no ai provider configured")

func NewAIClient(cfg *config.Config, logger zerolog.Logger) AIClient {
	c := &aiClient{
		openaiModel: openai.GPT4,
		geminiModel: "gemini-1.5-flash",
		logger:      logger,
	}

	if cfg.OpenAIAPIKey != "" {
		c.openai = openai.NewClient(cfg.OpenAIAPIKey)
	}
	if cfg.GeminiAPIKey != "" {
		gc, err := genai.NewClient(context.Background(), option.WithAPIKey(cfg.GeminiAPIKey))
		if err != nil {
			logger.Warn().Err(err).Msg("gemini client init failed, continuing without fallback")
		} else {
			c.gemini = gc
		}
	}
	return c
}

func (c *aiClient) Configured() bool {
	return c.openai != nil || c.gemini != nil
}

func (c *aiClient) Complete(ctx context.Context, systemPrompt, userPrompt string) (string, error) {
	if c.openai != nil {
		text, err := c.completeOpenAI(ctx, systemPrompt, userPrompt)
		if err == nil {
			return text, nil
		}
		c.logger.Warn().Err(err).Msg("openai completion failed")
		if c.gemini == nil {
			return "", err
		}
	}
	if c.gemini != nil {
		return c.completeGemini(ctx, systemPrompt, userPrompt)
	}
	return "", errNoProvider
}

func (c *aiClient) completeOpenAI(ctx context.Context, systemPrompt, userPrompt string) (string, error) {
	resp, err := c.openai.CreateChatCompletion(ctx, openai.ChatCompletionRequest{
		Model:       c.openaiModel,
		Temperature: 0.7,
		Messages: []openai.ChatCompletionMessage{
			{Role: openai.ChatMessageRoleSystem, Content: systemPrompt},
			{Role: openai.ChatMessageRoleUser, Content: userPrompt},
		},
	})
	if err != nil {
		return "", fmt.Errorf("openai completion: %w", err)
	}
	if len(resp.Choices) == 0 {
		return "", errors.New("openai returned no choices")
	}
	return resp.Choices[0].Message.Content, nil
}

func (c *aiClient) completeGemini(ctx context.Context, systemPrompt, userPrompt string) (string, error) {
	m := c.gemini.GenerativeModel(c.geminiModel)
	m.SetTemperature(0.7)
	m.SystemInstruction = &genai.Content{
		Parts: []genai.Part{genai.Text(systemPrompt)},
	}

	resp, err := m.GenerateContent(ctx, genai.Text(userPrompt))
	if err != nil {
		return "", fmt.Errorf("gemini completion: %w", err)
	}
	if len(resp.Candidates) == 0 || resp.Candidates[0].Content == nil {
		return "", errors.New("gemini returned no candidates")
	}

	var out string
	for _, part := range resp.Candidates[0].Content.Parts {
		if text, ok := part.(genai.Text); ok {
			out += string(text)
		}
	}
	if out == "" {
		return "", errors.New("gemini returned empty content")
	}
	return out, nil
}
