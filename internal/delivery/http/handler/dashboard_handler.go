package handler

import (
	"bytes"
	"context"
	"embed"
	"errors"
	"html/template"

	"skill-gap/internal/chart"
	"skill-gap/internal/delivery/http/middleware"
	"skill-gap/internal/domain/skill"
	"skill-gap/internal/input"
	"skill-gap/internal/pkg/response"
	"skill-gap/internal/session"
	"skill-gap/internal/usecase"

	"github.com/gofiber/fiber/v3"
	"github.com/google/uuid"
)

//go:embed templates/dashboard.html
var templateFS embed.FS

var dashboardTmpl = template.Must(template.ParseFS(templateFS, "templates/dashboard.html"))

// DashboardCharts are the documents embedded in the page, in display order.
var DashboardCharts = []chart.Kind{chart.KindRadar, chart.KindGrouped, chart.KindDonut}

// Notifier pushes a fresh view to the session's live sockets.
type Notifier interface {
	Publish(ctx context.Context, sessionID uuid.UUID, view usecase.DashboardView)
}

type DashboardHandler struct {
	uc       usecase.DashboardUsecase
	notifier Notifier
}

type levelField struct {
	Name     string
	Level    int
	Required int
}

type dashboardPage struct {
	Job            string
	Min            int
	Max            int
	Fields         []levelField
	CompletionText string
	Charts         []chart.Kind
	Version        int
}

func NewDashboardHandler(uc usecase.DashboardUsecase, notifier Notifier) *DashboardHandler {
	return &DashboardHandler{uc: uc, notifier: notifier}
}

func (h *DashboardHandler) RegisterRoutes(r fiber.Router) {
	if r == nil {
		return
	}

	r.Get("/", h.Page)
	r.Post("/levels", h.SubmitLevels)
	r.Post("/reset", h.ResetForm)
	r.Get("/charts/:kind", h.Chart)
}

func (h *DashboardHandler) Page(c fiber.Ctx) error {
	id, err := middleware.SessionID(c)
	if err != nil {
		return err
	}

	view, err := h.uc.Open(c.Context(), id)
	if err != nil {
		return mapDashboardUsecaseError(err)
	}

	page := dashboardPage{
		Job:            view.Job,
		Min:            skill.DashboardMinUserLevel,
		Max:            skill.MaxLevel,
		CompletionText: view.CompletionText,
		Charts:         DashboardCharts,
		Version:        view.Version,
	}
	for _, r := range view.Records {
		page.Fields = append(page.Fields, levelField{Name: r.Skill, Level: r.UserLevel, Required: r.RequiredLevel})
	}

	var buf bytes.Buffer
	if err := dashboardTmpl.Execute(&buf, page); err != nil {
		return middleware.NewAppError(fiber.StatusInternalServerError, response.MessageInternalServerError, nil, err)
	}
	c.Set(fiber.HeaderContentType, fiber.MIMETextHTMLCharsetUTF8)
	return c.Send(buf.Bytes())
}

// SubmitLevels applies every submitted level at once and redirects back to the page.
func (h *DashboardHandler) SubmitLevels(c fiber.Ctx) error {
	id, err := middleware.SessionID(c)
	if err != nil {
		return err
	}

	updates := make([]session.Update, 0, len(h.uc.Skills()))
	var fields []response.FieldError
	for _, name := range h.uc.Skills() {
		raw := c.FormValue(name)
		if raw == "" {
			continue
		}
		lvl, err := input.ParseLevel(raw, skill.DashboardMinUserLevel, skill.MaxLevel)
		if err != nil {
			fields = append(fields, levelFieldError(name, err))
			continue
		}
		updates = append(updates, session.Update{Skill: name, Level: lvl})
	}
	if len(fields) > 0 {
		return middleware.NewAppError(fiber.StatusUnprocessableEntity, response.MessageValidationFailed, fields, nil)
	}

	view, err := h.uc.SetLevels(c.Context(), id, updates...)
	if err != nil {
		return mapDashboardUsecaseError(err)
	}
	h.publish(c, id, view)
	return c.Redirect().Status(fiber.StatusSeeOther).To("/")
}

func (h *DashboardHandler) ResetForm(c fiber.Ctx) error {
	id, err := middleware.SessionID(c)
	if err != nil {
		return err
	}

	view, err := h.uc.Reset(c.Context(), id)
	if err != nil {
		return mapDashboardUsecaseError(err)
	}
	h.publish(c, id, view)
	return c.Redirect().Status(fiber.StatusSeeOther).To("/")
}

func (h *DashboardHandler) Chart(c fiber.Ctx) error {
	id, err := middleware.SessionID(c)
	if err != nil {
		return err
	}

	view, err := h.uc.Open(c.Context(), id)
	if err != nil {
		return mapDashboardUsecaseError(err)
	}

	var buf bytes.Buffer
	if err := chart.Render(&buf, chart.Kind(c.Params("kind")), view.Job, view.Records); err != nil {
		if errors.Is(err, chart.ErrUnknownKind) {
			return middleware.NewAppError(fiber.StatusNotFound, "Unknown chart", nil, err)
		}
		return middleware.NewAppError(fiber.StatusInternalServerError, response.MessageInternalServerError, nil, err)
	}
	c.Set(fiber.HeaderContentType, fiber.MIMETextHTMLCharsetUTF8)
	c.Set(fiber.HeaderCacheControl, "no-store")
	return c.Send(buf.Bytes())
}

func (h *DashboardHandler) publish(c fiber.Ctx, id uuid.UUID, view usecase.DashboardView) {
	if h.notifier == nil {
		return
	}
	h.notifier.Publish(c.Context(), id, view)
}
