package models

import (
	"github.com/go-playground/validator/v10"
)

var validate = validator.New()

// ScreenRequest carries the form fields shared by /screen and /batch_screen.
type ScreenRequest struct {
	JobDescription  string `form:"job_description" validate:"required"`
	Strictness      string `form:"strictness"`
	PositiveFactors string `form:"positive_factors"`
	NegativeFactors string `form:"negative_factors"`
}

func (r *ScreenRequest) Validate() error {
	return validate.Struct(r)
}

type RecommendRequest struct {
	CandidateScores    []map[string]any `json:"candidate_scores" validate:"required"`
	NumRecommendations *int             `json:"num_recommendations" validate:"required"`
}

func (r *RecommendRequest) Validate() error {
	return validate.Struct(r)
}

// ResumeContentRequest is the body of the resume-only analysis modules.
// ResumeContent holds the original document bytes, one character per byte.
type ResumeContentRequest struct {
	ResumeContent *string `json:"resume_content" validate:"required"`
}

func (r *ResumeContentRequest) Validate() error {
	return validate.Struct(r)
}

// JobResumeRequest is the body of the modules that also need the job description.
type JobResumeRequest struct {
	ResumeContent  *string `json:"resume_content" validate:"required"`
	JobDescription *string `json:"job_description" validate:"required"`
}

func (r *JobResumeRequest) Validate() error {
	return validate.Struct(r)
}

// BatchResult is one slot of the /batch_screen response. Exactly one of
// Score or Error is set.
type BatchResult struct {
	Filename      string       `json:"filename"`
	Score         *ResumeScore `json:"score,omitempty"`
	ResumeContent string       `json:"resume_content,omitempty"`
	Error         string       `json:"error,omitempty"`
	Details       any          `json:"details,omitempty"`
}

type ErrorResponse struct {
	Error   string `json:"error"`
	Details any    `json:"details,omitempty"`
}
