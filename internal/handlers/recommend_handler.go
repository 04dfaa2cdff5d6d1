package handlers

import (
	"fmt"
	"time"

	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"

	"alfredoptarigan/resume-screener/internal/models"
	"alfredoptarigan/resume-screener/internal/services"
)

type RecommendHandler struct {
	base
	recommender services.RecommendationService
}

func NewRecommendHandler(recommender services.RecommendationService, timeout time.Duration, log *zap.Logger) *RecommendHandler {
	return &RecommendHandler{
		base:        newBase(timeout, log),
		recommender: recommender,
	}
}

// HandleRecommend handles POST /recommend
func (h *RecommendHandler) HandleRecommend(c *fiber.Ctx) error {
	var req models.RecommendRequest
	if err := c.BodyParser(&req); err != nil || req.Validate() != nil {
		return errorJSON(c, fiber.StatusBadRequest, "Invalid request body. Expected 'candidate_scores' and 'num_recommendations'.")
	}

	ctx, cancel := h.requestContext(c)
	defer cancel()

	recommendations, err := h.recommender.Recommend(ctx, req.CandidateScores, *req.NumRecommendations)
	if err != nil {
		h.logger.Warn("recommendation failed", zap.Error(err))
		return errorJSON(c, fiber.StatusInternalServerError, fmt.Sprintf("An error occurred during recommendation generation: %v", err))
	}

	return c.Status(fiber.StatusOK).JSON(recommendations)
}
