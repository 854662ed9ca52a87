package gemini

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"google.golang.org/genai"
)

const DefaultModel = "gemini-2.5-flash"

var ErrNotConfigured = errors.New("gemini api key not configured")

// models es el subconjunto de genai.Models que se usa (tests).
type models interface {
	GenerateContent(ctx context.Context, model string, contents []*genai.Content, config *genai.GenerateContentConfig) (*genai.GenerateContentResponse, error)
}

// Generator implementa textgen.Generator con Gemini.
type Generator struct {
	models  models
	model   string
	timeout time.Duration
}

func New(ctx context.Context, apiKey, model string, timeout time.Duration) (*Generator, error) {
	if strings.TrimSpace(apiKey) == "" {
		return nil, ErrNotConfigured
	}
	client, err := genai.NewClient(ctx, &genai.ClientConfig{
		APIKey:  apiKey,
		Backend: genai.BackendGeminiAPI,
	})
	if err != nil {
		return nil, fmt.Errorf("create genai client: %w", err)
	}
	return newGenerator(client.Models, model, timeout), nil
}

func newGenerator(m models, model string, timeout time.Duration) *Generator {
	if strings.TrimSpace(model) == "" {
		model = DefaultModel
	}
	return &Generator{models: m, model: model, timeout: timeout}
}

func (g *Generator) Generate(ctx context.Context, prompt string) (string, error) {
	if g.timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, g.timeout)
		defer cancel()
	}

	resp, err := g.models.GenerateContent(ctx, g.model, genai.Text(prompt), nil)
	if err != nil {
		return "", fmt.Errorf("gemini generate: %w", err)
	}
	if resp == nil {
		return "", errors.New("gemini generate: nil response")
	}
	return resp.Text(), nil
}
