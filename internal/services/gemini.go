package services

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"go.uber.org/zap"
	"google.golang.org/genai"

	"alfredoptarigan/resume-screener/internal/logger"
)

const defaultModel = "gemini-2.5-flash"

// GenerateRequest is one structured generation call.
type GenerateRequest struct {
	Operation string
	System    string
	Prompt    string
	Schema    *Schema
}

// GeminiService is the LLM capability: it sends a filled prompt plus a
// response schema and returns the raw reply text.
type GeminiService interface {
	Generate(ctx context.Context, req GenerateRequest) (string, error)
	Model() string
}

type geminiService struct {
	client      *genai.Client
	modelName   string
	temperature float32
	logger      *zap.Logger
}

func NewGeminiService(apiKey, model string, temperature float32, log *zap.Logger) (GeminiService, error) {
	apiKey = strings.TrimSpace(apiKey)
	if apiKey == "" {
		return nil, errors.New("gemini api key is required")
	}

	client, err := genai.NewClient(context.Background(), &genai.ClientConfig{
		APIKey:  apiKey,
		Backend: genai.BackendGeminiAPI,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to create gemini client: %w", err)
	}

	if model = strings.TrimSpace(model); model == "" {
		model = defaultModel
	}

	return &geminiService{
		client:      client,
		modelName:   model,
		temperature: temperature,
		logger:      logger.OrNop(log),
	}, nil
}

// Generate implements GeminiService.
func (g *geminiService) Generate(ctx context.Context, req GenerateRequest) (string, error) {
	temperature := g.temperature
	config := &genai.GenerateContentConfig{
		Temperature:      &temperature,
		ResponseMIMEType: "application/json",
	}
	if req.Schema != nil {
		config.ResponseSchema = req.Schema.GenaiSchema()
	}
	if strings.TrimSpace(req.System) != "" {
		config.SystemInstruction = genai.NewContentFromText(req.System, genai.RoleUser)
	}

	resp, err := g.client.Models.GenerateContent(ctx, g.modelName, genai.Text(req.Prompt), config)
	if err != nil {
		return "", fmt.Errorf("failed to generate content: %w", err)
	}
	if resp == nil {
		return "", errors.New("no response generated (nil response)")
	}

	text := strings.TrimSpace(resp.Text())
	if text == "" {
		reason := ""
		if len(resp.Candidates) > 0 && resp.Candidates[0] != nil {
			reason = string(resp.Candidates[0].FinishReason)
		}
		g.logger.Warn("gemini returned no text",
			zap.String("operation", req.Operation),
			zap.String("finish_reason", reason),
		)
		return "", errors.New("no text content in response")
	}

	if usage := resp.UsageMetadata; usage != nil {
		g.logger.Debug("gemini token usage",
			zap.String("operation", req.Operation),
			zap.Int32("input_tokens", usage.PromptTokenCount),
			zap.Int32("output_tokens", usage.CandidatesTokenCount),
		)
	}

	return text, nil
}

func (g *geminiService) Model() string {
	return g.modelName
}
