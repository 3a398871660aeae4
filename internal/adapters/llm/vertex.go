package llm

import (
	"context"
	"fmt"

	"google.golang.org/genai"

	"github.com/PabloGalante/dinacharya/internal/domain"
)

// Settings selects the Gemini backend. APIKey switches to the Gemini API;
// otherwise Vertex AI is used with Project and Location.
type Settings struct {
	Project   string
	Location  string
	APIKey    string
	ModelName string
}

type VertexClient struct {
	client    *genai.Client
	modelName string
}

// NewVertexClient creates an LLMClient backed by Gemini.
func NewVertexClient(ctx context.Context, s Settings) (*VertexClient, error) {
	cfg := &genai.ClientConfig{}
	switch {
	case s.APIKey != "":
		cfg.Backend = genai.BackendGeminiAPI
		cfg.APIKey = s.APIKey
	case s.Project != "" && s.Location != "":
		cfg.Backend = genai.BackendVertexAI
		cfg.Project = s.Project
		cfg.Location = s.Location
	default:
		return nil, fmt.Errorf("either an API key or a GCP project and location must be set")
	}

	modelName := s.ModelName
	if modelName == "" {
		modelName = "gemini-2.5-flash"
	}

	client, err := genai.NewClient(ctx, cfg)
	if err != nil {
		return nil, fmt.Errorf("creating genai client: %w", err)
	}

	return &VertexClient{
		client:    client,
		modelName: modelName,
	}, nil
}

// GenerateReply implements domain.LLMClient.
func (v *VertexClient) GenerateReply(
	ctx context.Context,
	userMessage string,
	pc domain.PlanContext,
) (string, error) {
	prompt := BuildPrompt(userMessage, pc)

	contents := []*genai.Content{
		genai.NewContentFromText(prompt.User, genai.RoleUser),
	}

	temp := float32(0.4)
	topP := float32(0.9)

	cfg := &genai.GenerateContentConfig{
		SystemInstruction: genai.NewContentFromText(prompt.System, genai.RoleUser),
		Temperature:       &temp,
		TopP:              &topP,
		MaxOutputTokens:   1024,
	}

	res, err := v.client.Models.GenerateContent(ctx, v.modelName, contents, cfg)
	if err != nil {
		return "", fmt.Errorf("genai generate content: %w", err)
	}

	text := res.Text()
	if text == "" {
		return "", fmt.Errorf("genai returned empty text")
	}

	return text, nil
}
