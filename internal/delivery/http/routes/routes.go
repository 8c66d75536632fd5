package routes

import (
	"github.com/gofiber/fiber/v3"

	v1 "skill-match/internal/delivery/http/routes/v1"
)

type Registry struct {
	handlers v1.Handlers
	auth     fiber.Handler
}

func NewRegistry(handlers v1.Handlers, auth fiber.Handler) *Registry {
	return &Registry{handlers: handlers, auth: auth}
}

func (r *Registry) Register(app *fiber.App) {
	if app == nil {
		return
	}

	r.registerHealth(app)
	r.registerAPI(app)
}

func (r *Registry) registerHealth(app *fiber.App) {
	if r.handlers.Health != nil {
		r.handlers.Health.RegisterRoutes(app)
	}
}

func (r *Registry) registerAPI(app *fiber.App) {
	api := app.Group("/api")
	v1.Register(api.Group("/v1"), r.handlers, r.auth)
}
