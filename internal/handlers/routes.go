package handlers

import "github.com/gofiber/fiber/v2"

// Register mounts every screening endpoint on router.
func Register(router fiber.Router, screen *ScreenHandler, recommend *RecommendHandler, module *ModuleHandler) {
	router.Get("/ping", screen.HandlePing)
	router.Post("/screen", screen.HandleScreen)
	router.Post("/batch_screen", screen.HandleBatchScreen)
	router.Post("/recommend", recommend.HandleRecommend)

	modules := router.Group("/module")
	modules.Post("/red_flags", module.HandleRedFlags)
	modules.Post("/salary_estimation", module.HandleSalaryEstimation)
	modules.Post("/background_consistency", module.HandleBackgroundConsistency)
	modules.Post("/candidate_fit", module.HandleCandidateFit)
}

// Endpoints lists the routes mounted by Register.
var Endpoints = []string{
	"GET /ping",
	"POST /screen",
	"POST /batch_screen",
	"POST /recommend",
	"POST /module/red_flags",
	"POST /module/salary_estimation",
	"POST /module/background_consistency",
	"POST /module/candidate_fit",
}
