package services

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"
	"time"
	"unicode/utf8"

	"go.uber.org/zap"

	"alfredoptarigan/resume-screener/internal/logger"
)

const maxLogPreview = 200

// StructuredClient fills a prompt template, asks the LLM for a reply shaped
// by schema and decodes the validated reply into out.
type StructuredClient interface {
	Invoke(ctx context.Context, schema *Schema, tmpl PromptTemplate, vars map[string]string, out any) error
}

type structuredClient struct {
	gemini  GeminiService
	metrics *Metrics
	logger  *zap.Logger
}

func NewStructuredClient(gemini GeminiService, metrics *Metrics, log *zap.Logger) StructuredClient {
	return &structuredClient{
		gemini:  gemini,
		metrics: metrics,
		logger:  logger.OrNop(log),
	}
}

// Invoke implements StructuredClient. Provider failures come back as
// *LLMInvocationError, non-conforming replies as *SchemaValidationError.
func (s *structuredClient) Invoke(ctx context.Context, schema *Schema, tmpl PromptTemplate, vars map[string]string, out any) error {
	system, human, err := tmpl.Render(vars)
	if err != nil {
		return fmt.Errorf("failed to build %s prompt: %w", schema.Name, err)
	}

	log := s.logger.With(zap.String("schema", schema.Name))
	log.Debug("structured llm request",
		zap.Int("prompt_length", utf8.RuneCountInString(system)+utf8.RuneCountInString(human)),
		zap.String("prompt_preview", logger.TruncateForLog(human, maxLogPreview)),
	)

	start := time.Now()
	raw, err := s.gemini.Generate(ctx, GenerateRequest{
		Operation: schema.Name,
		System:    system,
		Prompt:    human,
		Schema:    schema,
	})
	elapsed := time.Since(start)
	if err != nil {
		s.metrics.ObserveLLM(schema.Name, "error", elapsed)
		log.Error("structured llm request failed", zap.Duration("duration", elapsed), zap.Error(err))
		return &LLMInvocationError{Operation: schema.Name, Cause: err}
	}

	log.Debug("structured llm response",
		zap.Duration("duration", elapsed),
		zap.Int("response_length", utf8.RuneCountInString(raw)),
		zap.String("response_preview", logger.TruncateForLog(raw, maxLogPreview)),
	)

	payload := []byte(extractJSON(raw))
	if err := schema.Validate(payload); err != nil {
		s.metrics.ObserveLLM(schema.Name, "invalid", elapsed)
		log.Warn("llm output failed schema validation", zap.Error(err))
		return err
	}

	if err := json.Unmarshal(payload, out); err != nil {
		s.metrics.ObserveLLM(schema.Name, "invalid", elapsed)
		return &SchemaValidationError{
			Schema: schema.Name,
			Details: []FieldError{{
				Field:   "(root)",
				Type:    "decode",
				Message: err.Error(),
			}},
		}
	}

	s.metrics.ObserveLLM(schema.Name, "ok", elapsed)
	return nil
}

// extractJSON tries to extract JSON from text that might contain markdown or other formatting
func extractJSON(text string) string {
	text = strings.ReplaceAll(text, "```json", "")
	text = strings.ReplaceAll(text, "```", "")

	startObj := strings.Index(text, "{")
	endObj := strings.LastIndex(text, "}")
	if startObj != -1 && endObj > startObj {
		return text[startObj : endObj+1]
	}

	return strings.TrimSpace(text)
}
