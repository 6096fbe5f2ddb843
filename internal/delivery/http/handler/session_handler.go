package handler

import (
	"net/url"
	"sort"

	"skill-gap/internal/delivery/http/dto"
	"skill-gap/internal/delivery/http/middleware"
	"skill-gap/internal/pkg/response"
	"skill-gap/internal/session"
	"skill-gap/internal/usecase"

	"github.com/gofiber/fiber/v3"
)

type SessionHandler struct {
	uc        usecase.DashboardUsecase
	validator *Validator
	notifier  Notifier
}

func NewSessionHandler(uc usecase.DashboardUsecase, validator *Validator, notifier Notifier) *SessionHandler {
	return &SessionHandler{uc: uc, validator: validator, notifier: notifier}
}

func (h *SessionHandler) RegisterRoutes(r fiber.Router) {
	if r == nil {
		return
	}

	grp := r.Group("/session")
	grp.Get("/", h.Get)
	grp.Delete("/", h.Reset)
	grp.Put("/levels", h.SetLevels)
	grp.Put("/levels/:skill", h.SetLevel)
}

func (h *SessionHandler) Get(c fiber.Ctx) error {
	id, err := middleware.SessionID(c)
	if err != nil {
		return err
	}

	view, err := h.uc.Open(c.Context(), id)
	if err != nil {
		return mapDashboardUsecaseError(err)
	}
	return response.Success(c, fiber.StatusOK, response.MessageOK, ToSessionResponse(view))
}

func (h *SessionHandler) SetLevel(c fiber.Ctx) error {
	id, err := middleware.SessionID(c)
	if err != nil {
		return err
	}

	name, err := url.PathUnescape(c.Params("skill"))
	if err != nil || name == "" {
		return middleware.NewAppError(fiber.StatusBadRequest, "Bad request", nil, err)
	}

	var req dto.SetLevelRequest
	if err := c.Bind().Body(&req); err != nil {
		return middleware.NewAppError(fiber.StatusBadRequest, "Bad request", nil, err)
	}
	if err := h.validator.Struct(req); err != nil {
		return err
	}

	view, err := h.uc.SetLevels(c.Context(), id, session.Update{Skill: name, Level: *req.Level})
	if err != nil {
		return mapDashboardUsecaseError(err)
	}
	h.publish(c, view)
	return response.Success(c, fiber.StatusOK, response.MessageOK, ToSessionResponse(view))
}

func (h *SessionHandler) SetLevels(c fiber.Ctx) error {
	id, err := middleware.SessionID(c)
	if err != nil {
		return err
	}

	var req dto.SetLevelsRequest
	if err := c.Bind().Body(&req); err != nil {
		return middleware.NewAppError(fiber.StatusBadRequest, "Bad request", nil, err)
	}
	if err := h.validator.Struct(req); err != nil {
		return err
	}

	names := make([]string, 0, len(req.Levels))
	for name := range req.Levels {
		names = append(names, name)
	}
	sort.Strings(names)

	updates := make([]session.Update, 0, len(names))
	for _, name := range names {
		updates = append(updates, session.Update{Skill: name, Level: req.Levels[name]})
	}

	view, err := h.uc.SetLevels(c.Context(), id, updates...)
	if err != nil {
		return mapDashboardUsecaseError(err)
	}
	h.publish(c, view)
	return response.Success(c, fiber.StatusOK, response.MessageOK, ToSessionResponse(view))
}

func (h *SessionHandler) Reset(c fiber.Ctx) error {
	id, err := middleware.SessionID(c)
	if err != nil {
		return err
	}

	view, err := h.uc.Reset(c.Context(), id)
	if err != nil {
		return mapDashboardUsecaseError(err)
	}
	h.publish(c, view)
	return response.Success(c, fiber.StatusOK, response.MessageOK, ToSessionResponse(view))
}

func (h *SessionHandler) publish(c fiber.Ctx, view usecase.DashboardView) {
	if h.notifier == nil {
		return
	}
	h.notifier.Publish(c.Context(), view.SessionID, view)
}
