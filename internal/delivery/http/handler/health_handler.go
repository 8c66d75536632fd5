package handler

import (
	"github.com/gofiber/fiber/v3"

	"skill-match/internal/pkg/response"
	"skill-match/internal/usecase"
)

type HealthHandler struct {
	uc usecase.StatusUsecase
}

func NewHealthHandler(uc usecase.StatusUsecase) *HealthHandler {
	return &HealthHandler{uc: uc}
}

func (h *HealthHandler) RegisterRoutes(r fiber.Router) {
	if r == nil {
		return
	}
	r.Get("/health", h.Health)
}

// Health reports 503 while the database is unreachable. Redis is optional.
func (h *HealthHandler) Health(c fiber.Ctx) error {
	st := h.uc.Status(c.Context())
	if !st.DatabaseHealthy {
		return response.Error(c, fiber.StatusServiceUnavailable, "database unavailable", st)
	}
	return response.Success(c, fiber.StatusOK, response.MessageOK, st)
}
