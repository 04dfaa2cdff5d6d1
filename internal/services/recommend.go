package services

import (
	"context"
	"encoding/json"
	"fmt"
	"sort"
	"strconv"
	"strings"

	"go.uber.org/zap"

	"alfredoptarigan/resume-screener/internal/logger"
	"alfredoptarigan/resume-screener/internal/models"
)

var RecommendationListSchema = &Schema{
	Name:        "RecommendationList",
	Description: "Recommended candidates with reasons.",
	Fields: []Field{
		{
			Name:        "recommendations",
			Type:        FieldArray,
			Description: "List of recommended candidates.",
			Items: &Schema{
				Name:        "CandidateRecommendation",
				Description: "One recommended candidate.",
				Fields: []Field{
					{Name: "name", Type: FieldString, Description: "Name of the recommended candidate."},
					{Name: "score", Type: FieldNumber, Description: "Aggregate score of the candidate."},
					{Name: "reason", Type: FieldString, Description: "Reason for recommending this candidate."},
				},
			},
		},
	},
}

var recommendationPrompt = PromptTemplate{
	System: "You are an AI HR assistant. Based on the sorted list of candidates, provide exactly {num_recommendations} recommendations with concise reasons.",
	Human:  "Candidate Scores: {candidate_data}",
}

type RecommendationService interface {
	Recommend(ctx context.Context, candidates []map[string]any, count int) (*models.RecommendationList, error)
}

type recommendationService struct {
	client StructuredClient
	logger *zap.Logger
}

func NewRecommendationService(client StructuredClient, log *zap.Logger) RecommendationService {
	return &recommendationService{
		client: client,
		logger: logger.OrNop(log),
	}
}

// Recommend implements RecommendationService. Ranking and truncation happen
// here; the model only phrases reasons for the candidates it is shown.
func (r *recommendationService) Recommend(ctx context.Context, candidates []map[string]any, count int) (*models.RecommendationList, error) {
	top := TopCandidates(candidates, count)
	if len(top) == 0 {
		return &models.RecommendationList{Recommendations: []models.CandidateRecommendation{}}, nil
	}

	candidateData, err := json.MarshalIndent(top, "", "  ")
	if err != nil {
		return nil, fmt.Errorf("failed to serialize candidates: %w", err)
	}

	r.logger.Debug("requesting recommendations",
		zap.Int("candidates", len(candidates)),
		zap.Int("forwarded", len(top)),
		zap.Int("requested", count),
	)

	var out models.RecommendationList
	if err := r.client.Invoke(ctx, RecommendationListSchema, recommendationPrompt, map[string]string{
		"num_recommendations": strconv.Itoa(count),
		"candidate_data":      string(candidateData),
	}, &out); err != nil {
		return nil, fmt.Errorf("failed to generate recommendations: %w", err)
	}

	if len(out.Recommendations) > count {
		out.Recommendations = out.Recommendations[:count]
	}
	if out.Recommendations == nil {
		out.Recommendations = []models.CandidateRecommendation{}
	}

	return &out, nil
}

// TopCandidates keeps candidates with a numeric aggregate_score, sorts them
// by that score descending (ties keep their input order) and returns at most
// count of them.
func TopCandidates(candidates []map[string]any, count int) []map[string]any {
	if count <= 0 {
		return nil
	}

	type ranked struct {
		score     float64
		candidate map[string]any
	}

	scoreable := make([]ranked, 0, len(candidates))
	for _, c := range candidates {
		score, ok := aggregateOf(c)
		if !ok {
			continue
		}
		scoreable = append(scoreable, ranked{score: score, candidate: c})
	}

	sort.SliceStable(scoreable, func(i, j int) bool {
		return scoreable[i].score > scoreable[j].score
	})

	if len(scoreable) > count {
		scoreable = scoreable[:count]
	}

	top := make([]map[string]any, len(scoreable))
	for i, r := range scoreable {
		top[i] = r.candidate
	}
	return top
}

func aggregateOf(candidate map[string]any) (float64, bool) {
	raw, ok := candidate["aggregate_score"]
	if !ok {
		return 0, false
	}

	switch v := raw.(type) {
	case float64:
		return v, true
	case float32:
		return float64(v), true
	case int:
		return float64(v), true
	case int64:
		return float64(v), true
	case json.Number:
		f, err := v.Float64()
		return f, err == nil
	case string:
		f, err := strconv.ParseFloat(strings.TrimSpace(v), 64)
		return f, err == nil
	default:
		return 0, false
	}
}
