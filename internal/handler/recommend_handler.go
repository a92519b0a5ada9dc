package handler

import (
	"errors"
	"strings"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"

	"github.com/ahmednasr/movie-motivator/server/internal/models"
	"github.com/ahmednasr/movie-motivator/server/internal/service"
)

// RecommendHandler wires HTTP → RecommendationService.
type RecommendHandler struct {
	svc      service.RecommendationService
	gens     *service.GenerationTracker
	validate *validator.Validate
}

// NewRecommendHandler returns a struct pointer so you can call Register on it.
func NewRecommendHandler(svc service.RecommendationService, gens *service.GenerationTracker) *RecommendHandler {
	return &RecommendHandler{svc: svc, gens: gens, validate: validator.New()}
}

// Register mounts the /recommendations endpoints on the supplied router group.
func (h *RecommendHandler) Register(r fiber.Router) {
	r.Post("/recommendations", h.recommend)
	r.Get("/recommendations/history", h.history)
}

// recommend handles POST /recommendations  { "seed": "...", "session_id": "..." }
func (h *RecommendHandler) recommend(c *fiber.Ctx) error {
	var req models.RecommendRequest
	if err := c.BodyParser(&req); err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "invalid JSON body")
	}
	req.Seed = strings.TrimSpace(req.Seed)
	if err := h.validate.Struct(req); err != nil {
		return fiber.NewError(fiber.StatusBadRequest, validationMessage(err))
	}

	gen := h.gens.Begin(req.SessionID)

	// Delegate to service layer.
	set, err := h.svc.Recommend(c.UserContext(), req.Seed)
	switch {
	case errors.Is(err, service.ErrSeedInvalid):
		return fiber.NewError(fiber.StatusBadRequest, err.Error())
	case errors.Is(err, service.ErrCompletion):
		return fiber.NewError(fiber.StatusBadGateway, err.Error())
	case err != nil:
		return fiber.NewError(fiber.StatusInternalServerError, err.Error())
	}

	// A newer search from the same session has started; this answer is stale.
	if !h.gens.IsCurrent(req.SessionID, gen) {
		return c.Status(fiber.StatusConflict).JSON(fiber.Map{
			"error":      "superseded",
			"generation": gen,
		})
	}

	return c.JSON(models.RecommendResponse{RecommendationSet: set, Generation: gen})
}

// history handles GET /recommendations/history?limit=20
func (h *RecommendHandler) history(c *fiber.Ctx) error {
	var req models.HistoryRequest
	if err := c.QueryParser(&req); err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "limit must be an integer")
	}
	if err := h.validate.Struct(req); err != nil {
		return fiber.NewError(fiber.StatusBadRequest, validationMessage(err))
	}

	sets, err := h.svc.History(c.UserContext(), req.Limit)
	if err != nil {
		return fiber.NewError(fiber.StatusInternalServerError, err.Error())
	}

	return c.JSON(sets)
}

// validationMessage turns the first validator failure into a client message.
func validationMessage(err error) string {
	var verrs validator.ValidationErrors
	if !errors.As(err, &verrs) || len(verrs) == 0 {
		return err.Error()
	}

	fe := verrs[0]
	switch fe.Field() {
	case "Seed":
		if fe.Tag() == "required" {
			return service.ErrSeedInvalid.Error()
		}
		return "seed must be at most " + fe.Param() + " characters"
	case "SessionID":
		return "session_id must be a UUID"
	case "Limit":
		return "limit must be between 0 and 100"
	}
	return err.Error()
}
