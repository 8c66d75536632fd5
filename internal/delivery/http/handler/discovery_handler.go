package handler

import (
	"github.com/gofiber/fiber/v3"

	"skill-match/internal/delivery/http/dto"
	"skill-match/internal/pkg/response"
	"skill-match/internal/usecase"
)

type DiscoveryHandler struct {
	uc usecase.DiscoveryUsecase
}

func NewDiscoveryHandler(uc usecase.DiscoveryUsecase) *DiscoveryHandler {
	return &DiscoveryHandler{uc: uc}
}

func (h *DiscoveryHandler) RegisterRoutes(r fiber.Router) {
	if r == nil {
		return
	}
	r.Post("/discovery", h.Discover)
}

func (h *DiscoveryHandler) Discover(c fiber.Ctx) error {
	var req dto.DiscoveryRequest
	if err := bind(c, &req); err != nil {
		return err
	}
	out, err := h.uc.Discover(c.Context(), usecase.DiscoverInput{JDText: req.JDText, Max: req.Max})
	if err != nil {
		return mapUsecaseError(err)
	}
	return response.Success(c, fiber.StatusOK, response.MessageOK, out)
}
