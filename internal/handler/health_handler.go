package handler

import (
	"github.com/gofiber/fiber/v2"
	"go.mongodb.org/mongo-driver/mongo"

	"github.com/ahmednasr/movie-motivator/server/internal/database"
)

// BreakerReporter exposes a circuit breaker's state.
type BreakerReporter interface {
	BreakerState() string
}

type HealthHandler struct {
	db    *mongo.Client   // nil when history is disabled
	video BreakerReporter // nil when enrichment is disabled
}

func NewHealthHandler(db *mongo.Client, video BreakerReporter) *HealthHandler {
	return &HealthHandler{
		db:    db,
		video: video,
	}
}

func (h *HealthHandler) Register(r fiber.Router) {
	r.Get("/health", h.health)
}

func (h *HealthHandler) health(c *fiber.Ctx) error {
	videoState := "disabled"
	if h.video != nil {
		videoState = h.video.BreakerState()
	}

	return c.JSON(fiber.Map{
		"status": "ok",
		"db":     database.Status(c.UserContext(), h.db),
		"video":  videoState,
	})
}
