package services

import (
	"context"
	"fmt"
	"math"
	"strings"

	"go.uber.org/zap"

	"alfredoptarigan/resume-screener/internal/logger"
	"alfredoptarigan/resume-screener/internal/models"
)

const (
	technicalWeight  = 0.5
	experienceWeight = 0.3
	softskillsWeight = 0.2

	minComponentScore = 0
	maxComponentScore = 10
)

var ResumeScoreSchema = &Schema{
	Name:        "ResumeScore",
	Description: "Assessment of one resume against one job description.",
	Fields: []Field{
		{Name: "name", Type: FieldString, Description: "The name of the candidate found in the resume."},
		{Name: "technical_score", Type: FieldInteger, Description: "Score from 0–10 for technical skills.", Minimum: bound(0), Maximum: bound(10)},
		{Name: "technical_reason", Type: FieldString, Description: "A single, succinct sentence explaining the technical score."},
		{Name: "softskills_score", Type: FieldInteger, Description: "Score from 0–10 for soft skills.", Minimum: bound(0), Maximum: bound(10)},
		{Name: "softskills_reason", Type: FieldString, Description: "A single, succinct sentence explaining the soft skills score."},
		{Name: "experience_and_alignment_score", Type: FieldInteger, Description: "Score from 0–10 for relevant experience and alignment with employer needs.", Minimum: bound(0), Maximum: bound(10)},
		{Name: "experience_and_alignment_reason", Type: FieldString, Description: "A single, succinct sentence explaining the experience and alignment score."},
		{Name: "positive_highlights", Type: FieldString, Optional: true, Description: "A single sentence highlighting strengths based on 'Positive Factors'."},
		{Name: "negative_highlights", Type: FieldString, Optional: true, Description: "A single sentence highlighting weaknesses based on 'Negative Factors'."},
		{Name: "aggregate_score", Type: FieldNumber, Optional: true, Description: "Overall weighted aggregate score of the resume (0-10)."},
	},
}

var resumeScorePrompt = PromptTemplate{
	System: `You are an expert AI resume screener. Your task is to evaluate a resume against a job description with extreme conciseness to save tokens.

**Output Rules:**
- For all 'reason' and 'highlights' fields, you MUST provide a single, succinct sentence.
- Do not speculate or add any information not directly supported by the resume.
- Calculate a weighted aggregate score: Technical (50%), Experience & Alignment (30%), Soft Skills (20%).

**Evaluation Criteria:**
- **Strictness Level ({strictness_level}):** Apply this level of scrutiny.
- **Positive Factors to reward:** {positive_factors}
- **Negative Factors to penalize:** {negative_factors}

Provide your assessment in the specified JSON format.`,
	Human: `**Job Description:**
{job_description}
---
**Candidate Resume Text:**
{resume_text}
---
Evaluate the resume and provide the structured output, adhering strictly to the conciseness rules.`,
}

// ScoreInput is the request for one resume.
type ScoreInput struct {
	JobDescription  string
	ResumeBytes     []byte
	Source          string
	Strictness      string
	PositiveFactors string
	NegativeFactors string
}

type ScoringService interface {
	Score(ctx context.Context, input ScoreInput) (*models.ResumeScore, error)
}

type scoringService struct {
	extractor         TextExtractor
	client            StructuredClient
	defaultStrictness string
	logger            *zap.Logger
}

func NewScoringService(extractor TextExtractor, client StructuredClient, defaultStrictness string, log *zap.Logger) ScoringService {
	if strings.TrimSpace(defaultStrictness) == "" {
		defaultStrictness = "medium"
	}
	return &scoringService{
		extractor:         extractor,
		client:            client,
		defaultStrictness: defaultStrictness,
		logger:            logger.OrNop(log),
	}
}

// Score implements ScoringService.
func (s *scoringService) Score(ctx context.Context, input ScoreInput) (*models.ResumeScore, error) {
	if strings.TrimSpace(input.JobDescription) == "" {
		return nil, &MissingInputError{Field: "job_description"}
	}

	resumeText, err := ExtractOrFail(s.extractor, input.ResumeBytes, sourceName(input.Source))
	if err != nil {
		return nil, err
	}

	strictness := strings.TrimSpace(input.Strictness)
	if strictness == "" {
		strictness = s.defaultStrictness
	}

	var score models.ResumeScore
	err = s.client.Invoke(ctx, ResumeScoreSchema, resumeScorePrompt, map[string]string{
		"strictness_level": strictness,
		"job_description":  input.JobDescription,
		"resume_text":      resumeText,
		"positive_factors": OrPlaceholder(input.PositiveFactors, NoPositiveFactors),
		"negative_factors": OrPlaceholder(input.NegativeFactors, NoNegativeFactors),
	}, &score)
	if err != nil {
		return nil, fmt.Errorf("failed to score resume: %w", err)
	}

	if strings.TrimSpace(input.PositiveFactors) == "" {
		score.PositiveHighlights = nil
	}
	if strings.TrimSpace(input.NegativeFactors) == "" {
		score.NegativeHighlights = nil
	}

	score.TechnicalScore = ClampScore(score.TechnicalScore)
	score.SoftskillsScore = ClampScore(score.SoftskillsScore)
	score.ExperienceAndAlignmentScore = ClampScore(score.ExperienceAndAlignmentScore)

	llmAggregate := score.AggregateScore
	score.AggregateScore = AggregateScore(score.TechnicalScore, score.ExperienceAndAlignmentScore, score.SoftskillsScore)

	s.logger.Info("resume scored",
		zap.String("filename", input.Source),
		zap.Float64("aggregate_score", score.AggregateScore),
		zap.Float64("llm_aggregate_score", llmAggregate),
	)

	return &score, nil
}

// AggregateScore is the published weighted score, rounded to two decimals.
func AggregateScore(technical, experience, softskills int) float64 {
	weighted := technicalWeight*float64(technical) +
		experienceWeight*float64(experience) +
		softskillsWeight*float64(softskills)
	return math.Round(weighted*100) / 100
}

// ClampScore bounds a 0–10 component score.
func ClampScore(v int) int {
	return min(max(v, minComponentScore), maxComponentScore)
}

func sourceName(source string) string {
	if source == "" {
		return "resume"
	}
	return source
}
