package services

import (
	"context"
	"fmt"
	"strings"

	"alfredoptarigan/resume-screener/internal/models"
)

var RedFlagsSchema = &Schema{
	Name:        "RedFlags",
	Description: "Red flags detected in a resume.",
	Fields: []Field{
		{Name: "red_flags_found", Type: FieldBoolean, Description: "True if any red flags were found, False otherwise."},
		{Name: "summary", Type: FieldString, Description: "A concise, single-paragraph summary (max 80 words) of any red flags detected, or a confirmation that none were found."},
	},
}

var SalaryEstimationSchema = &Schema{
	Name:        "SalaryEstimation",
	Description: "Estimated annual salary for a candidate in a given role.",
	Fields: []Field{
		{Name: "estimated_salary_range", Type: FieldString, Description: "Estimated annual salary range (e.g., '$70,000 - $90,000')."},
		{Name: "summary", Type: FieldString, Description: "A concise, single-paragraph summary (max 80 words) justifying the salary estimation based on the candidate's profile and job description."},
	},
}

var ConsistencyCheckSchema = &Schema{
	Name:        "ConsistencyCheck",
	Description: "Consistency of the candidate's stated background.",
	Fields: []Field{
		{Name: "inconsistencies_found", Type: FieldBoolean, Description: "True if any inconsistencies were found, False otherwise."},
		{Name: "summary", Type: FieldString, Description: "A concise, single-paragraph summary (max 80 words) of any background inconsistencies, or a confirmation of consistency."},
	},
}

var FitScoreSchema = &Schema{
	Name:        "FitScore",
	Description: "Role and culture fit of a candidate.",
	Fields: []Field{
		{Name: "role_fit_score", Type: FieldInteger, Description: "Score from 0-10 for role fit.", Minimum: bound(0), Maximum: bound(10)},
		{Name: "culture_fit_score", Type: FieldInteger, Description: "Score from 0-10 for culture fit.", Minimum: bound(0), Maximum: bound(10)},
		{Name: "summary", Type: FieldString, Description: "A concise, single-paragraph summary (max 80 words) assessing the candidate's overall fit for the role and culture."},
	},
}

var (
	redFlagsPrompt = PromptTemplate{
		System: "You are an HR compliance AI. Analyze the resume for red flags (job hopping, gaps, buzzwords, inconsistencies). Provide a boolean `red_flags_found` and a concise, single-paragraph summary (max 80 words) of your findings.",
		Human:  "Resume Text: {resume_text}",
	}
	salaryPrompt = PromptTemplate{
		System: "You are a salary estimation AI. Based on the job and resume, provide an estimated annual salary range in {salary_market}. Then, provide a concise, single-paragraph summary (max 80 words) justifying your estimate.",
		Human:  "Job Description: {job_description}\nResume Text: {resume_text}",
	}
	consistencyPrompt = PromptTemplate{
		System: "You are an HR verification AI. Analyze the resume for inconsistencies in education, job titles, and dates. Provide a boolean `inconsistencies_found` and a concise, single-paragraph summary (max 80 words) of your findings.",
		Human:  "Resume Text: {resume_text}",
	}
	fitPrompt = PromptTemplate{
		System: "You are a candidate fit AI. Provide a Role Fit score (0-10) and a Culture Fit score (0-10). Then, provide a concise, single-paragraph summary (max 80 words) explaining your overall assessment.",
		Human:  "Job Description: {job_description}\nResume Text: {resume_text}",
	}
)

// AnalysisService runs the four independent resume analysis modules. Each
// method is a pure function of the resume text and, where needed, the job
// description.
type AnalysisService interface {
	DetectRedFlags(ctx context.Context, resumeText string) (*models.RedFlags, error)
	EstimateSalary(ctx context.Context, jobDescription, resumeText string) (*models.SalaryEstimation, error)
	CheckBackgroundConsistency(ctx context.Context, resumeText string) (*models.ConsistencyCheck, error)
	CalculateFitScore(ctx context.Context, jobDescription, resumeText string) (*models.FitScore, error)
}

type analysisService struct {
	client       StructuredClient
	salaryMarket string
}

func NewAnalysisService(client StructuredClient, salaryMarket string) AnalysisService {
	if strings.TrimSpace(salaryMarket) == "" {
		salaryMarket = "India"
	}
	return &analysisService{
		client:       client,
		salaryMarket: salaryMarket,
	}
}

// DetectRedFlags implements AnalysisService.
func (a *analysisService) DetectRedFlags(ctx context.Context, resumeText string) (*models.RedFlags, error) {
	if err := RequireText(resumeText, "resume"); err != nil {
		return nil, err
	}

	var out models.RedFlags
	if err := a.client.Invoke(ctx, RedFlagsSchema, redFlagsPrompt, map[string]string{
		"resume_text": resumeText,
	}, &out); err != nil {
		return nil, fmt.Errorf("failed to detect red flags: %w", err)
	}
	return &out, nil
}

// EstimateSalary implements AnalysisService.
func (a *analysisService) EstimateSalary(ctx context.Context, jobDescription, resumeText string) (*models.SalaryEstimation, error) {
	if err := RequireText(resumeText, "resume"); err != nil {
		return nil, err
	}

	var out models.SalaryEstimation
	if err := a.client.Invoke(ctx, SalaryEstimationSchema, salaryPrompt, map[string]string{
		"salary_market":   a.salaryMarket,
		"job_description": jobDescription,
		"resume_text":     resumeText,
	}, &out); err != nil {
		return nil, fmt.Errorf("failed to estimate salary: %w", err)
	}
	return &out, nil
}

// CheckBackgroundConsistency implements AnalysisService.
func (a *analysisService) CheckBackgroundConsistency(ctx context.Context, resumeText string) (*models.ConsistencyCheck, error) {
	if err := RequireText(resumeText, "resume"); err != nil {
		return nil, err
	}

	var out models.ConsistencyCheck
	if err := a.client.Invoke(ctx, ConsistencyCheckSchema, consistencyPrompt, map[string]string{
		"resume_text": resumeText,
	}, &out); err != nil {
		return nil, fmt.Errorf("failed to check background consistency: %w", err)
	}
	return &out, nil
}

// CalculateFitScore implements AnalysisService.
func (a *analysisService) CalculateFitScore(ctx context.Context, jobDescription, resumeText string) (*models.FitScore, error) {
	if err := RequireText(resumeText, "resume"); err != nil {
		return nil, err
	}

	var out models.FitScore
	if err := a.client.Invoke(ctx, FitScoreSchema, fitPrompt, map[string]string{
		"job_description": jobDescription,
		"resume_text":     resumeText,
	}, &out); err != nil {
		return nil, fmt.Errorf("failed to calculate fit score: %w", err)
	}
	out.RoleFitScore = ClampScore(out.RoleFitScore)
	out.CultureFitScore = ClampScore(out.CultureFitScore)
	return &out, nil
}

// AnalyzeDocument extracts text from a raw document and hands it to run.
// Empty extraction fails with *ExtractionError before run is called.
func AnalyzeDocument[T any](extractor TextExtractor, data []byte, run func(resumeText string) (T, error)) (T, error) {
	var zero T
	text, err := ExtractOrFail(extractor, data, "resume")
	if err != nil {
		return zero, err
	}
	return run(text)
}
