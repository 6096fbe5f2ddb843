package ws

import (
	"net/http"

	"skill-gap/internal/delivery/http/middleware"
	"skill-gap/internal/usecase"

	"github.com/gofiber/fiber/v3"
	"github.com/gofiber/fiber/v3/middleware/adaptor"
	"github.com/gorilla/websocket"
	"github.com/rs/zerolog"
)

type Handler struct {
	hub    *Hub
	uc     usecase.DashboardUsecase
	logger zerolog.Logger
}

func NewHandler(hub *Hub, uc usecase.DashboardUsecase, logger zerolog.Logger) *Handler {
	return &Handler{hub: hub, uc: uc, logger: logger}
}

var upgrader = websocket.Upgrader{
	ReadBufferSize:  1024,
	WriteBufferSize: 1024,
	CheckOrigin: func(r *http.Request) bool {
		return true
	},
}

// HandleSessionWS upgrades the request and streams reports for the caller's session.
// The current report is sent as the first frame.
func (h *Handler) HandleSessionWS(c fiber.Ctx) error {
	if h == nil || h.hub == nil {
		return fiber.ErrServiceUnavailable
	}
	sessionID, err := middleware.SessionID(c)
	if err != nil {
		return err
	}
	view, err := h.uc.Open(c.Context(), sessionID)
	if err != nil {
		return middleware.NewAppError(fiber.StatusInternalServerError, "", nil, err)
	}

	fiberHandler := adaptor.HTTPHandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		conn, err := upgrader.Upgrade(w, r, nil)
		if err != nil {
			h.logger.Warn().Err(err).Msg("ws upgrade")
			return
		}

		client := NewClient(h.hub, conn, sessionID, h.uc, h.logger)
		if b, err := reportFrame(view); err == nil {
			client.send <- b
		}
		h.hub.Register(client)
		go client.WritePump()
		go client.ReadPump()
	})

	return fiberHandler(c)
}
