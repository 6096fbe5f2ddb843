package middleware

import (
	"errors"
	"time"

	"skill-gap/internal/pkg/jwt"

	"github.com/gofiber/fiber/v3"
	"github.com/google/uuid"
	"github.com/rs/zerolog"
)

const CtxSessionIDKey = "session_id"

// SessionMiddleware binds every request to a dashboard session carried in a signed cookie.
// Requests without a valid cookie get a fresh session id and a new cookie.
type SessionMiddleware struct {
	jwt        jwt.Service
	cookieName string
	ttl        time.Duration
	secure     bool
	logger     zerolog.Logger
}

func NewSessionMiddleware(jwtSvc jwt.Service, cookieName string, ttl time.Duration, secure bool, logger zerolog.Logger) *SessionMiddleware {
	return &SessionMiddleware{jwt: jwtSvc, cookieName: cookieName, ttl: ttl, secure: secure, logger: logger}
}

func (m *SessionMiddleware) Middleware() fiber.Handler {
	return func(c fiber.Ctx) error {
		if raw := c.Cookies(m.cookieName); raw != "" {
			claims, err := m.jwt.ValidateToken(raw)
			if err == nil {
				c.Locals(CtxSessionIDKey, claims.SessionID)
				return c.Next()
			}
			if !errors.Is(err, jwt.ErrTokenExpired) {
				m.logger.Debug().Err(err).Msg("session cookie rejected")
			}
		}

		id := uuid.New()
		token, err := m.jwt.GenerateSessionToken(id)
		if err != nil {
			return NewAppError(fiber.StatusInternalServerError, "", nil, err)
		}
		c.Cookie(&fiber.Cookie{
			Name:     m.cookieName,
			Value:    token,
			Path:     "/",
			Expires:  time.Now().Add(m.ttl),
			HTTPOnly: true,
			Secure:   m.secure,
			SameSite: fiber.CookieSameSiteLaxMode,
		})
		c.Locals(CtxSessionIDKey, id)
		return c.Next()
	}
}

// SessionID returns the session bound by SessionMiddleware.
func SessionID(c fiber.Ctx) (uuid.UUID, error) {
	id, ok := c.Locals(CtxSessionIDKey).(uuid.UUID)
	if !ok || id == uuid.Nil {
		return uuid.Nil, NewAppError(fiber.StatusUnauthorized, "Session required", nil, nil)
	}
	return id, nil
}
