package handlers

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"

	"alfredoptarigan/resume-screener/internal/models"
	"alfredoptarigan/resume-screener/internal/services"
)

const invalidModuleBody = "Invalid request body."

// ModuleHandler serves the analysis modules. Each takes the resume_content
// returned by /batch_screen rather than a fresh upload.
type ModuleHandler struct {
	base
	extractor services.TextExtractor
	analysis  services.AnalysisService
}

func NewModuleHandler(
	extractor services.TextExtractor,
	analysis services.AnalysisService,
	timeout time.Duration,
	log *zap.Logger,
) *ModuleHandler {
	return &ModuleHandler{
		base:      newBase(timeout, log),
		extractor: extractor,
		analysis:  analysis,
	}
}

// HandleRedFlags handles POST /module/red_flags
func (h *ModuleHandler) HandleRedFlags(c *fiber.Ctx) error {
	var req models.ResumeContentRequest
	if err := c.BodyParser(&req); err != nil || req.Validate() != nil {
		return errorJSON(c, fiber.StatusBadRequest, "Invalid request body. Expected 'resume_content'.")
	}

	return runModule(c, h, "red_flags", *req.ResumeContent, func(ctx context.Context, text string) (*models.RedFlags, error) {
		return h.analysis.DetectRedFlags(ctx, text)
	})
}

// HandleSalaryEstimation handles POST /module/salary_estimation
func (h *ModuleHandler) HandleSalaryEstimation(c *fiber.Ctx) error {
	var req models.JobResumeRequest
	if err := c.BodyParser(&req); err != nil || req.Validate() != nil {
		return errorJSON(c, fiber.StatusBadRequest, invalidModuleBody)
	}

	return runModule(c, h, "salary_estimation", *req.ResumeContent, func(ctx context.Context, text string) (*models.SalaryEstimation, error) {
		return h.analysis.EstimateSalary(ctx, *req.JobDescription, text)
	})
}

// HandleBackgroundConsistency handles POST /module/background_consistency
func (h *ModuleHandler) HandleBackgroundConsistency(c *fiber.Ctx) error {
	var req models.ResumeContentRequest
	if err := c.BodyParser(&req); err != nil || req.Validate() != nil {
		return errorJSON(c, fiber.StatusBadRequest, invalidModuleBody)
	}

	return runModule(c, h, "background_consistency", *req.ResumeContent, func(ctx context.Context, text string) (*models.ConsistencyCheck, error) {
		return h.analysis.CheckBackgroundConsistency(ctx, text)
	})
}

// HandleCandidateFit handles POST /module/candidate_fit
func (h *ModuleHandler) HandleCandidateFit(c *fiber.Ctx) error {
	var req models.JobResumeRequest
	if err := c.BodyParser(&req); err != nil || req.Validate() != nil {
		return errorJSON(c, fiber.StatusBadRequest, invalidModuleBody)
	}

	return runModule(c, h, "candidate_fit", *req.ResumeContent, func(ctx context.Context, text string) (*models.FitScore, error) {
		return h.analysis.CalculateFitScore(ctx, *req.JobDescription, text)
	})
}

func runModule[T any](c *fiber.Ctx, h *ModuleHandler, module, resumeContent string, run func(ctx context.Context, text string) (T, error)) error {
	data, err := services.DecodeResumeContent(resumeContent)
	if err != nil {
		return errorJSON(c, fiber.StatusBadRequest, invalidModuleBody)
	}

	ctx, cancel := h.requestContext(c)
	defer cancel()

	result, err := services.AnalyzeDocument(h.extractor, data, func(text string) (T, error) {
		return run(ctx, text)
	})
	if err != nil {
		var extractionErr *services.ExtractionError
		if errors.As(err, &extractionErr) {
			return errorJSON(c, fiber.StatusBadRequest, "Could not extract text.")
		}

		h.logger.Warn("analysis module failed", zap.String("module", module), zap.Error(err))
		return errorJSON(c, fiber.StatusInternalServerError, fmt.Sprintf("An error occurred: %v", err))
	}

	return c.Status(fiber.StatusOK).JSON(result)
}
