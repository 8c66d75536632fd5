package app

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/gofiber/fiber/v3"
	"go.uber.org/zap"

	"skill-match/internal/config"
	"skill-match/internal/database/migration"
	"skill-match/internal/delivery/http/handler"
	"skill-match/internal/delivery/http/middleware"
	"skill-match/internal/delivery/http/routes"
	v1 "skill-match/internal/delivery/http/routes/v1"
	"skill-match/internal/logger"
	"skill-match/internal/ws"
)

type App struct {
	Fiber     *fiber.App
	Container *Container
}

// New builds the HTTP application over a wired container.
func New(c *Container) *App {
	f := fiber.New(fiber.Config{AppName: c.Config.App.AppName})

	registerGlobalMiddleware(f, c.Logger)

	auth := middleware.NewAuthMiddleware(c.JWT)
	routes.NewRegistry(v1.Handlers{
		Health:    handler.NewHealthHandler(c.Status),
		Synonyms:  handler.NewSynonymHandler(c.Synonyms),
		Skills:    handler.NewSkillHandler(c.Dictionary),
		Roles:     handler.NewRoleHandler(c.Keywords, c.Matching),
		Match:     handler.NewMatchHandler(c.Matching),
		Discovery: handler.NewDiscoveryHandler(c.Discovery),
		Updates:   ws.NewHandler(c.Hub, logger.Named(c.Logger, "ws")),
	}, auth.Middleware()).Register(f)

	return &App{Fiber: f, Container: c}
}

// Bootstrap connects, migrates, warms the variant cache and starts the
// websocket hub. The returned cleanup stops the hub and closes connections.
func Bootstrap(cfg config.Config, log *zap.Logger) (*App, func() error, error) {
	c, err := NewContainer(cfg, log)
	if err != nil {
		return nil, nil, err
	}

	migCtx, migCancel := context.WithTimeout(context.Background(), 2*time.Minute)
	defer migCancel()
	runner := migration.Runner{FS: migration.Embedded(), Logger: logger.Named(log, "migration")}
	if err := runner.Run(migCtx, c.DB.SQLDB()); err != nil {
		_ = c.Close()
		return nil, nil, fmt.Errorf("migrate: %w", err)
	}

	warmCtx, warmCancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer warmCancel()
	if err := c.Variants.Refresh(warmCtx); err != nil {
		c.Logger.Warn("variant cache warm-up failed, serving empty map until the store answers", zap.Error(err))
	}

	hubCtx, stopHub := context.WithCancel(context.Background())
	go c.Hub.Run(hubCtx)

	cleanup := func() error {
		stopHub()
		return c.Close()
	}
	return New(c), cleanup, nil
}

func registerGlobalMiddleware(app *fiber.App, log *zap.Logger) {
	if app == nil {
		return
	}

	app.Use(middleware.NewAccessLogMiddleware(log).Middleware())
	app.Use(middleware.NewErrorMiddleware(log).Middleware())
}

func ListenAddr(port string) (string, error) {
	p := strings.TrimSpace(port)
	if p == "" {
		return "", fmt.Errorf("empty HTTP port")
	}
	if strings.HasPrefix(p, ":") {
		return p, nil
	}
	return ":" + p, nil
}
