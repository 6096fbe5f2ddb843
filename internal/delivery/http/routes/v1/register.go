package v1

import (
	"skill-gap/internal/delivery/http/handler"

	"github.com/gofiber/fiber/v3"
)

func Register(r fiber.Router, session *handler.SessionHandler, datasets *handler.DatasetHandler) {
	if r == nil {
		return
	}

	if session != nil {
		session.RegisterRoutes(r)
	}
	if datasets != nil {
		datasets.RegisterRoutes(r)
	}
}
