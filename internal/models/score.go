package models

// ResumeScore is the result of scoring one resume against one job description.
// AggregateScore is always computed server-side after the LLM call.
type ResumeScore struct {
	Name                         string  `json:"name"`
	TechnicalScore               int     `json:"technical_score"`
	TechnicalReason              string  `json:"technical_reason"`
	SoftskillsScore              int     `json:"softskills_score"`
	SoftskillsReason             string  `json:"softskills_reason"`
	ExperienceAndAlignmentScore  int     `json:"experience_and_alignment_score"`
	ExperienceAndAlignmentReason string  `json:"experience_and_alignment_reason"`
	PositiveHighlights           *string `json:"positive_highlights"`
	NegativeHighlights           *string `json:"negative_highlights"`
	AggregateScore               float64 `json:"aggregate_score"`
}

type CandidateRecommendation struct {
	Name   string  `json:"name"`
	Score  float64 `json:"score"`
	Reason string  `json:"reason"`
}

type RecommendationList struct {
	Recommendations []CandidateRecommendation `json:"recommendations"`
}
