package routes

import (
	v1 "skill-gap/internal/delivery/http/routes/v1"

	"github.com/gofiber/fiber/v3"
)

func RegisterV1(r fiber.Router, handlers Handlers) {
	if r == nil {
		return
	}

	v1.Register(r, handlers.Session, handlers.Dataset)
}
