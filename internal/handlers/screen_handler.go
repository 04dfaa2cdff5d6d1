package handlers

import (
	"errors"
	"fmt"
	"time"

	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"

	"alfredoptarigan/resume-screener/internal/models"
	"alfredoptarigan/resume-screener/internal/services"
)

type ScreenHandler struct {
	base
	scoring services.ScoringService
	batch   services.BatchScreener
}

func NewScreenHandler(
	scoring services.ScoringService,
	batch services.BatchScreener,
	timeout time.Duration,
	log *zap.Logger,
) *ScreenHandler {
	return &ScreenHandler{
		base:    newBase(timeout, log),
		scoring: scoring,
		batch:   batch,
	}
}

// HandlePing handles GET /ping
func (h *ScreenHandler) HandlePing(c *fiber.Ctx) error {
	return c.Status(fiber.StatusOK).SendString("Server is alive!")
}

// HandleScreen handles POST /screen
func (h *ScreenHandler) HandleScreen(c *fiber.Ctx) error {
	resumeFile, err := c.FormFile("resume")
	if err != nil {
		return errorJSON(c, fiber.StatusBadRequest, "No resume file provided")
	}

	var req models.ScreenRequest
	if err := c.BodyParser(&req); err != nil || req.Validate() != nil {
		return errorJSON(c, fiber.StatusBadRequest, "No job description provided")
	}

	if resumeFile.Filename == "" {
		return errorJSON(c, fiber.StatusBadRequest, "No selected file")
	}

	data, err := readFormFile(resumeFile)
	if err != nil {
		return errorJSON(c, fiber.StatusInternalServerError, fmt.Sprintf("An error occurred during resume screening: %v", err))
	}

	ctx, cancel := h.requestContext(c)
	defer cancel()

	score, err := h.scoring.Score(ctx, services.ScoreInput{
		JobDescription:  req.JobDescription,
		ResumeBytes:     data,
		Source:          services.SecureFilename(resumeFile.Filename),
		Strictness:      req.Strictness,
		PositiveFactors: req.PositiveFactors,
		NegativeFactors: req.NegativeFactors,
	})
	if err != nil {
		h.logger.Warn("screening failed", zap.String("filename", resumeFile.Filename), zap.Error(err))

		var missingErr *services.MissingInputError
		var extractionErr *services.ExtractionError
		var schemaErr *services.SchemaValidationError
		switch {
		case errors.As(err, &missingErr):
			return errorJSON(c, fiber.StatusBadRequest, "No job description provided")
		case errors.As(err, &extractionErr):
			return errorJSON(c, fiber.StatusInternalServerError, "Could not extract text from the provided resume")
		case errors.As(err, &schemaErr):
			return c.Status(fiber.StatusInternalServerError).JSON(models.ErrorResponse{
				Error:   "Data validation error from LLM output",
				Details: schemaErr.Details,
			})
		default:
			return errorJSON(c, fiber.StatusInternalServerError, fmt.Sprintf("An error occurred during resume screening: %v", err))
		}
	}

	return c.Status(fiber.StatusOK).JSON(score)
}

// HandleBatchScreen handles POST /batch_screen
func (h *ScreenHandler) HandleBatchScreen(c *fiber.Ctx) error {
	form, err := c.MultipartForm()
	if err != nil {
		return errorJSON(c, fiber.StatusBadRequest, "No resume files provided")
	}

	resumeFiles := form.File["resumes[]"]
	if len(resumeFiles) == 0 {
		return errorJSON(c, fiber.StatusBadRequest, "No resume files provided")
	}

	var req models.ScreenRequest
	if err := c.BodyParser(&req); err != nil || req.Validate() != nil {
		return errorJSON(c, fiber.StatusBadRequest, "No job description provided")
	}

	jobs := make([]services.BatchJob, len(resumeFiles))
	for i, fh := range resumeFiles {
		data, err := readFormFile(fh)
		if err != nil {
			// An unreadable part is scored as an empty document and fails in place.
			h.logger.Warn("failed to read uploaded resume", zap.String("filename", fh.Filename), zap.Error(err))
		}
		jobs[i] = services.BatchJob{Filename: fh.Filename, Data: data}
	}

	ctx, cancel := h.requestContext(c)
	defer cancel()

	results := h.batch.ScreenAll(ctx, jobs, services.BatchInput{
		JobDescription:  req.JobDescription,
		Strictness:      req.Strictness,
		PositiveFactors: req.PositiveFactors,
		NegativeFactors: req.NegativeFactors,
	})

	return c.Status(fiber.StatusOK).JSON(results)
}
