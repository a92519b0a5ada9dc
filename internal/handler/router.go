package handler

import (
	"errors"

	"github.com/gofiber/fiber/v2"

	"github.com/ahmednasr/movie-motivator/server/internal/middleware"
	"github.com/ahmednasr/movie-motivator/server/internal/service"
)

func RegisterRoutes(app *fiber.App,
	recommendSvc service.RecommendationService,
	gens *service.GenerationTracker,
	apiToken string,
) {

	v1 := app.Group("/api/v1", middleware.BearerAuth(apiToken))
	NewRecommendHandler(recommendSvc, gens).Register(v1)
}

// ErrorHandler renders every error as {"error": "..."}.
func ErrorHandler(c *fiber.Ctx, err error) error {
	code := fiber.StatusInternalServerError
	var fe *fiber.Error
	if errors.As(err, &fe) {
		code = fe.Code
	}
	return c.Status(code).JSON(fiber.Map{"error": err.Error()})
}
