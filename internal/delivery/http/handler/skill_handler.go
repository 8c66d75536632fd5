package handler

import (
	"strings"

	"github.com/gofiber/fiber/v3"

	"skill-match/internal/delivery/http/dto"
	"skill-match/internal/delivery/http/middleware"
	"skill-match/internal/domain/skill"
	"skill-match/internal/pkg/response"
	"skill-match/internal/usecase"
)

type SkillHandler struct {
	uc usecase.DictionaryUsecase
}

func NewSkillHandler(uc usecase.DictionaryUsecase) *SkillHandler {
	return &SkillHandler{uc: uc}
}

func (h *SkillHandler) RegisterRoutes(r fiber.Router, auth fiber.Handler) {
	if r == nil || auth == nil {
		return
	}
	r.Get("/skills", h.List)
	r.Post("/skills", auth, h.Append)
}

func (h *SkillHandler) List(c fiber.Ctx) error {
	var kind skill.Kind
	if raw := strings.TrimSpace(c.Query("kind")); raw != "" {
		k, ok := skill.ParseKind(raw)
		if !ok {
			return middleware.NewAppError(fiber.StatusBadRequest, "kind must be hard or soft", nil, nil)
		}
		kind = k
	}

	items, err := h.uc.List(c.Context(), kind)
	if err != nil {
		return mapUsecaseError(err)
	}
	return response.Success(c, fiber.StatusOK, response.MessageOK, dto.NewSkillResponses(items))
}

func (h *SkillHandler) Append(c fiber.Ctx) error {
	var req dto.AppendSkillsRequest
	if err := bind(c, &req); err != nil {
		return err
	}
	kind, _ := skill.ParseKind(req.Kind)

	added, err := h.uc.Append(c.Context(), kind, req.Tokens)
	if err != nil {
		return mapUsecaseError(err)
	}
	return response.Success(c, fiber.StatusOK, response.MessageOK, dto.AppendSkillsResponse{Kind: string(kind), Added: added})
}
