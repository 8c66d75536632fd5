package handler

import (
	"github.com/gofiber/fiber/v3"
	"github.com/google/uuid"

	"skill-match/internal/delivery/http/dto"
	"skill-match/internal/delivery/http/middleware"
	"skill-match/internal/pkg/response"
	"skill-match/internal/usecase"
)

type MatchHandler struct {
	uc usecase.MatchingUsecase
}

func NewMatchHandler(uc usecase.MatchingUsecase) *MatchHandler {
	return &MatchHandler{uc: uc}
}

func (h *MatchHandler) RegisterRoutes(r fiber.Router) {
	if r == nil {
		return
	}
	r.Post("/match", h.Match)
	r.Get("/resumes/:id/match", h.MatchResume)
}

// Match scores raw skill tokens. An unscored outcome is still a 200 with the
// reason in the body.
func (h *MatchHandler) Match(c fiber.Ctx) error {
	var req dto.MatchRequest
	if err := bind(c, &req); err != nil {
		return err
	}
	out, err := h.uc.ScoreTokens(c.Context(), req.Role, req.Skills)
	if err != nil {
		return mapUsecaseError(err)
	}
	return response.Success(c, fiber.StatusOK, response.MessageOK, dto.NewMatchResponse(out))
}

func (h *MatchHandler) MatchResume(c fiber.Ctx) error {
	id, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return middleware.NewAppError(fiber.StatusBadRequest, "Invalid resume id", nil, err)
	}
	out, err := h.uc.ScoreResume(c.Context(), id)
	if err != nil {
		return mapUsecaseError(err)
	}
	return response.Success(c, fiber.StatusOK, response.MessageOK, dto.NewMatchResponse(out))
}
