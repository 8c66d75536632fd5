package v1

import (
	"github.com/gofiber/fiber/v3"

	"skill-match/internal/delivery/http/handler"
	"skill-match/internal/ws"
)

// Handlers groups everything mounted under /api/v1. Nil handlers are
// skipped.
type Handlers struct {
	Health    *handler.HealthHandler
	Synonyms  *handler.SynonymHandler
	Skills    *handler.SkillHandler
	Roles     *handler.RoleHandler
	Match     *handler.MatchHandler
	Discovery *handler.DiscoveryHandler
	Updates   *ws.Handler
}

func Register(r fiber.Router, h Handlers, auth fiber.Handler) {
	if r == nil {
		return
	}

	if h.Health != nil {
		h.Health.RegisterRoutes(r)
	}
	if h.Synonyms != nil {
		h.Synonyms.RegisterRoutes(r, auth)
	}
	if h.Skills != nil {
		h.Skills.RegisterRoutes(r, auth)
	}
	if h.Roles != nil {
		h.Roles.RegisterRoutes(r, auth)
	}
	if h.Match != nil {
		h.Match.RegisterRoutes(r)
	}
	if h.Discovery != nil {
		h.Discovery.RegisterRoutes(r)
	}
	if h.Updates != nil {
		r.Get("/ws", h.Updates.HandleUpdatesWS)
	}
}
