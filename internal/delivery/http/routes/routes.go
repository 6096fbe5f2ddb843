package routes

import (
	"skill-gap/internal/delivery/http/handler"

	"github.com/gofiber/fiber/v3"
)

type Handlers struct {
	Health    *handler.HealthHandler
	Dashboard *handler.DashboardHandler
	Session   *handler.SessionHandler
	Dataset   *handler.DatasetHandler
	WS        fiber.Handler
}

type Registry struct {
	handlers Handlers
	session  fiber.Handler
}

// NewRegistry wires the handlers; session runs before every route except /health.
func NewRegistry(handlers Handlers, session fiber.Handler) *Registry {
	return &Registry{handlers: handlers, session: session}
}

func (r *Registry) Register(app *fiber.App) {
	if app == nil {
		return
	}

	r.registerHealth(app)
	if r.session != nil {
		app.Use(r.session)
	}
	r.registerPages(app)
	r.registerAPI(app)
}

func (r *Registry) registerHealth(app *fiber.App) {
	if r.handlers.Health == nil {
		return
	}
	r.handlers.Health.RegisterRoutes(app)
}

func (r *Registry) registerPages(app *fiber.App) {
	if r.handlers.Dashboard != nil {
		r.handlers.Dashboard.RegisterRoutes(app)
	}
	if r.handlers.WS != nil {
		app.Get("/ws", r.handlers.WS)
	}
}

func (r *Registry) registerAPI(app *fiber.App) {
	api := app.Group("/api")
	RegisterV1(api.Group("/v1"), r.handlers)
}
