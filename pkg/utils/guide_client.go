package utils

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/google/generative-ai-go/genai"
	"github.com/sashabaranov/go-openai"
	"google.golang.org/api/option"
)

// GuideClientInterface answers a free-text travel question.
type GuideClientInterface interface {
	GenerateSuggestion(ctx context.Context, prompt string) (string, error)
	Close() error
}

var errNoContent = errors.New("no content generated")

// GeminiGuideClient implements GuideClientInterface using Google's Gemini models
type GeminiGuideClient struct {
	client *genai.Client
	model  string
}

func NewGeminiGuideClient(apiKey, model string) (*GeminiGuideClient, error) {
	if model == "" {
		model = "gemini-1.5-flash"
	}

	client, err := genai.NewClient(context.Background(), option.WithAPIKey(apiKey))
	if err != nil {
		return nil, fmt.Errorf("failed to create Gemini client: %w", err)
	}
	return &GeminiGuideClient{client: client, model: model}, nil
}

func (c *GeminiGuideClient) GenerateSuggestion(ctx context.Context, prompt string) (string, error) {
	model := c.client.GenerativeModel(c.model)
	model.SetTemperature(0.7)
	model.SetMaxOutputTokens(800)

	resp, err := model.GenerateContent(ctx, genai.Text(prompt))
	if err != nil {
		return "", fmt.Errorf("gemini API call failed: %w", err)
	}
	if len(resp.Candidates) == 0 || resp.Candidates[0].Content == nil {
		return "", errNoContent
	}

	var sb strings.Builder
	for _, part := range resp.Candidates[0].Content.Parts {
		if text, ok := part.(genai.Text); ok {
			sb.WriteString(string(text))
		}
	}
	answer := strings.TrimSpace(sb.String())
	if answer == "" {
		return "", errNoContent
	}
	return answer, nil
}

func (c *GeminiGuideClient) Close() error {
	return c.client.Close()
}

// OpenAIGuideClient implements GuideClientInterface with chat completions
type OpenAIGuideClient struct {
	client *openai.Client
	model  string
}

func NewOpenAIGuideClient(apiKey, model string) *OpenAIGuideClient {
	if model == "" {
		model = openai.GPT4oMini
	}
	return &OpenAIGuideClient{client: openai.NewClient(apiKey), model: model}
}

func (c *OpenAIGuideClient) GenerateSuggestion(ctx context.Context, prompt string) (string, error) {
	resp, err := c.client.CreateChatCompletion(ctx, openai.ChatCompletionRequest{
		Model: c.model,
		Messages: []openai.ChatCompletionMessage{
			{Role: openai.ChatMessageRoleUser, Content: prompt},
		},
		Temperature: 0.7,
	})
	if err != nil {
		return "", fmt.Errorf("openai API call failed: %w", err)
	}
	if len(resp.Choices) == 0 {
		return "", errNoContent
	}
	answer := strings.TrimSpace(resp.Choices[0].Message.Content)
	if answer == "" {
		return "", errNoContent
	}
	return answer, nil
}

func (c *OpenAIGuideClient) Close() error { return nil }

// NewGuideClient picks the provider. It returns nil, nil when the provider is
// "none" or has no API key; the guide then answers from its built-in rules.
func NewGuideClient(provider, apiKey, model string) (GuideClientInterface, error) {
	provider = strings.ToLower(strings.TrimSpace(provider))
	if provider == "" || provider == "none" || apiKey == "" {
		return nil, nil
	}

	switch provider {
	case "openai":
		return NewOpenAIGuideClient(apiKey, model), nil
	case "gemini":
		client, err := NewGeminiGuideClient(apiKey, model)
		if err != nil {
			return nil, err
		}
		return client, nil
	default:
		return nil, fmt.Errorf("%w: ai provider %q", ErrUnsupportedConfig, provider)
	}
}
