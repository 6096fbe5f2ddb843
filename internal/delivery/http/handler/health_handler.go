package handler

import (
	"context"
	"time"

	"skill-gap/internal/delivery/http/dto"
	"skill-gap/internal/pkg/response"

	"github.com/gofiber/fiber/v3"
)

type Pinger interface {
	Ping(ctx context.Context) error
}

type ClientCounter interface {
	ClientCount() int
}

const (
	healthUp       = "up"
	healthDown     = "down"
	healthDisabled = "disabled"
)

type HealthHandler struct {
	db       Pinger
	redis    Pinger
	sessions string
	ws       ClientCounter
}

// NewHealthHandler takes nil pingers for backends that are not configured.
func NewHealthHandler(db, redis Pinger, sessions string, ws ClientCounter) *HealthHandler {
	return &HealthHandler{db: db, redis: redis, sessions: sessions, ws: ws}
}

func (h *HealthHandler) RegisterRoutes(r fiber.Router) {
	if r == nil {
		return
	}
	r.Get("/health", h.Health)
}

func (h *HealthHandler) Health(c fiber.Ctx) error {
	ctx, cancel := context.WithTimeout(c.Context(), 2*time.Second)
	defer cancel()

	res := dto.HealthResponse{
		Database: probe(ctx, h.db),
		Redis:    probe(ctx, h.redis),
		Sessions: h.sessions,
	}
	if h.ws != nil {
		res.WSClients = h.ws.ClientCount()
	}

	// Redis being down only degrades sessions to process memory.
	status := fiber.StatusOK
	if res.Database == healthDown {
		status = fiber.StatusServiceUnavailable
	}
	return response.Success(c, status, "", res)
}

func probe(ctx context.Context, p Pinger) string {
	if p == nil {
		return healthDisabled
	}
	if err := p.Ping(ctx); err != nil {
		return healthDown
	}
	return healthUp
}
