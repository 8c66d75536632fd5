package handler

import (
	"strconv"

	"github.com/gofiber/fiber/v3"
	"github.com/google/uuid"

	"skill-match/internal/delivery/http/dto"
	"skill-match/internal/delivery/http/middleware"
	"skill-match/internal/pkg/response"
	"skill-match/internal/usecase"
)

const (
	defaultRankingLimit = 50
	maxRankingLimit     = 500
)

type RoleHandler struct {
	keywords usecase.KeywordUsecase
	matching usecase.MatchingUsecase
}

func NewRoleHandler(keywords usecase.KeywordUsecase, matching usecase.MatchingUsecase) *RoleHandler {
	return &RoleHandler{keywords: keywords, matching: matching}
}

func (h *RoleHandler) RegisterRoutes(r fiber.Router, auth fiber.Handler) {
	if r == nil || auth == nil {
		return
	}
	r.Get("/roles", h.ListRoles)
	r.Get("/roles/:name/keywords", h.ListKeywords)
	r.Get("/roles/:name/ranking", h.Ranking)

	r.Put("/roles/:name", auth, h.SaveRole)
	r.Post("/keywords/derive", auth, h.Derive)
	r.Post("/roles/:name/keywords", auth, h.UpsertKeyword)
	r.Delete("/roles/:name/keywords/:id", auth, h.DeleteKeyword)
}

func (h *RoleHandler) ListRoles(c fiber.Ctx) error {
	items, err := h.keywords.ListRoles(c.Context())
	if err != nil {
		return mapUsecaseError(err)
	}
	out := make([]dto.RoleResponse, 0, len(items))
	for _, it := range items {
		out = append(out, dto.NewRoleResponse(it))
	}
	return response.Success(c, fiber.StatusOK, response.MessageOK, out)
}

func (h *RoleHandler) SaveRole(c fiber.Ctx) error {
	var req dto.RoleRequest
	if err := bind(c, &req); err != nil {
		return err
	}
	saved, err := h.keywords.SaveRole(c.Context(), c.Params("name"), req.JDText)
	if err != nil {
		return mapUsecaseError(err)
	}
	return response.Success(c, fiber.StatusOK, "Role saved", dto.NewRoleResponse(saved))
}

func (h *RoleHandler) ListKeywords(c fiber.Ctx) error {
	items, err := h.keywords.List(c.Context(), c.Params("name"))
	if err != nil {
		return mapUsecaseError(err)
	}
	out := make([]dto.KeywordResponse, 0, len(items))
	for _, it := range items {
		out = append(out, dto.NewKeywordResponse(it))
	}
	return response.Success(c, fiber.StatusOK, response.MessageOK, out)
}

func (h *RoleHandler) UpsertKeyword(c fiber.Ctx) error {
	var req dto.KeywordRequest
	if err := bind(c, &req); err != nil {
		return err
	}
	in := usecase.KeywordInput{Keyword: req.Keyword, Importance: req.Importance, Weight: req.Weight}
	if req.ID != "" {
		id, err := uuid.Parse(req.ID)
		if err != nil {
			return middleware.NewAppError(fiber.StatusBadRequest, "Invalid keyword id", nil, err)
		}
		in.ID = id
	}

	saved, err := h.keywords.Upsert(c.Context(), c.Params("name"), in)
	if err != nil {
		return mapUsecaseError(err)
	}
	return response.Success(c, fiber.StatusOK, "Keyword saved", dto.NewKeywordResponse(saved))
}

func (h *RoleHandler) DeleteKeyword(c fiber.Ctx) error {
	id, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return middleware.NewAppError(fiber.StatusBadRequest, "Invalid keyword id", nil, err)
	}
	if err := h.keywords.Delete(c.Context(), c.Params("name"), id); err != nil {
		return mapUsecaseError(err)
	}
	return response.Success(c, fiber.StatusOK, "Keyword deleted", nil)
}

func (h *RoleHandler) Ranking(c fiber.Ctx) error {
	limit := defaultRankingLimit
	if raw := c.Query("limit"); raw != "" {
		n, err := strconv.Atoi(raw)
		if err != nil || n <= 0 || n > maxRankingLimit {
			return middleware.NewAppError(fiber.StatusBadRequest, "limit must be between 1 and 500", nil, err)
		}
		limit = n
	}

	items, err := h.matching.RankRole(c.Context(), c.Params("name"), limit)
	if err != nil {
		return mapUsecaseError(err)
	}
	return response.Success(c, fiber.StatusOK, response.MessageOK, dto.NewMatchResponses(items))
}

func (h *RoleHandler) Derive(c fiber.Ctx) error {
	var req dto.DeriveRequest
	if err := bind(c, &req); err != nil {
		return err
	}
	rows, err := h.keywords.Derive(c.Context(), usecase.DeriveInput{
		Role: req.Role,
		URL:  req.URL,
		Text: req.Text,
		Max:  req.Max,
	})
	if err != nil {
		return mapUsecaseError(err)
	}
	return response.Success(c, fiber.StatusOK, response.MessageOK, dto.NewKeywordRowResponses(rows))
}
