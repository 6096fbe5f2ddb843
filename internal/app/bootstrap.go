package app

import (
	"fmt"
	"strings"
	"time"

	"skill-gap/internal/delivery/http/handler"
	"skill-gap/internal/delivery/http/middleware"
	"skill-gap/internal/delivery/http/routes"
	"skill-gap/internal/logger"
	"skill-gap/internal/ws"

	"github.com/gofiber/fiber/v3"
)

type App struct {
	Fiber *fiber.App
}

func New(c *Container) *App {
	f := fiber.New(fiber.Config{
		AppName:      c.Config.App.AppName,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 15 * time.Second,
		IdleTimeout:  60 * time.Second,
	})

	registerGlobalMiddleware(f, c)
	registerRoutes(f, c)

	return &App{Fiber: f}
}

func registerGlobalMiddleware(app *fiber.App, c *Container) {
	if app == nil {
		return
	}

	app.Use(middleware.NewAccessLogMiddleware(logger.Component("http")).Middleware())
	app.Use(middleware.NewErrorMiddleware(logger.Component("http")).Middleware())
}

func registerRoutes(app *fiber.App, c *Container) {
	if app == nil {
		return
	}

	val := handler.NewValidator()

	var dbPinger, redisPinger handler.Pinger
	if c.DB != nil {
		dbPinger = c.DB
	}
	if c.Redis != nil {
		redisPinger = c.Redis
	}

	sessionMw := middleware.NewSessionMiddleware(
		c.JWT,
		c.Config.Session.CookieName,
		c.Config.Session.TTL,
		!c.Config.App.IsDevelopment(),
		logger.Component("session"),
	)

	routes.NewRegistry(routes.Handlers{
		Health:    handler.NewHealthHandler(dbPinger, redisPinger, c.SessionBackend, c.Hub),
		Dashboard: handler.NewDashboardHandler(c.Dashboard, c.Hub),
		Session:   handler.NewSessionHandler(c.Dashboard, val, c.Hub),
		Dataset:   handler.NewDatasetHandler(c.DatasetsUC, val),
		WS:        ws.NewHandler(c.Hub, c.Dashboard, logger.Component("ws")).HandleSessionWS,
	}, sessionMw.Middleware()).Register(app)
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
