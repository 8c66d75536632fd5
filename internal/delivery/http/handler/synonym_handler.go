package handler

import (
	"strings"

	"github.com/gofiber/fiber/v3"
	"github.com/google/uuid"

	"skill-match/internal/delivery/http/dto"
	"skill-match/internal/delivery/http/middleware"
	"skill-match/internal/pkg/response"
	"skill-match/internal/usecase"
)

type SynonymHandler struct {
	uc usecase.SynonymUsecase
}

func NewSynonymHandler(uc usecase.SynonymUsecase) *SynonymHandler {
	return &SynonymHandler{uc: uc}
}

// RegisterRoutes mounts the routes on r. Writes run behind auth.
func (h *SynonymHandler) RegisterRoutes(r fiber.Router, auth fiber.Handler) {
	if r == nil || auth == nil {
		return
	}
	r.Get("/synonyms", h.List)
	r.Get("/synonyms/resolve", h.Resolve)
	r.Post("/synonyms", auth, h.Create)
	r.Put("/synonyms/:id", auth, h.Update)
	r.Delete("/synonyms/:id", auth, h.Delete)
}

func (h *SynonymHandler) List(c fiber.Ctx) error {
	items, err := h.uc.List(c.Context())
	if err != nil {
		return mapUsecaseError(err)
	}
	out := make([]dto.SynonymResponse, 0, len(items))
	for _, it := range items {
		out = append(out, dto.NewSynonymResponse(it))
	}
	return response.Success(c, fiber.StatusOK, response.MessageOK, out)
}

// Resolve canonicalizes the comma separated tokens query parameter.
func (h *SynonymHandler) Resolve(c fiber.Ctx) error {
	raw := strings.TrimSpace(c.Query("tokens"))
	if raw == "" {
		return middleware.NewAppError(fiber.StatusBadRequest, "tokens query parameter is required", nil, nil)
	}
	got, err := h.uc.Resolve(c.Context(), strings.Split(raw, ","))
	if err != nil {
		return mapUsecaseError(err)
	}
	return response.Success(c, fiber.StatusOK, response.MessageOK, dto.ResolveResponse{Canonical: got})
}

func (h *SynonymHandler) Create(c fiber.Ctx) error {
	var req dto.SynonymRequest
	if err := bind(c, &req); err != nil {
		return err
	}
	created, err := h.uc.Create(c.Context(), usecase.SynonymInput{
		Token:     req.Token,
		ExpandsTo: req.ExpandsTo,
		Category:  req.Category,
	})
	if err != nil {
		return mapUsecaseError(err)
	}
	return response.Success(c, fiber.StatusCreated, "Synonym created", dto.NewSynonymResponse(created))
}

func (h *SynonymHandler) Update(c fiber.Ctx) error {
	id, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return middleware.NewAppError(fiber.StatusBadRequest, "Invalid synonym id", nil, err)
	}
	var req dto.SynonymRequest
	if err := bind(c, &req); err != nil {
		return err
	}
	updated, err := h.uc.Update(c.Context(), id, usecase.SynonymInput{
		Token:     req.Token,
		ExpandsTo: req.ExpandsTo,
		Category:  req.Category,
	})
	if err != nil {
		return mapUsecaseError(err)
	}
	return response.Success(c, fiber.StatusOK, "Synonym updated", dto.NewSynonymResponse(updated))
}

func (h *SynonymHandler) Delete(c fiber.Ctx) error {
	id, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return middleware.NewAppError(fiber.StatusBadRequest, "Invalid synonym id", nil, err)
	}
	if err := h.uc.Delete(c.Context(), id); err != nil {
		return mapUsecaseError(err)
	}
	return response.Success(c, fiber.StatusOK, "Synonym deleted", nil)
}
