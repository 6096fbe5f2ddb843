package handler

import (
	"net/url"
	"strconv"

	"skill-gap/internal/delivery/http/dto"
	"skill-gap/internal/delivery/http/middleware"
	"skill-gap/internal/domain/skill"
	"skill-gap/internal/input"
	"skill-gap/internal/pkg/response"
	"skill-gap/internal/usecase"

	"github.com/gofiber/fiber/v3"
	"github.com/google/uuid"
)

type DatasetHandler struct {
	uc        usecase.DatasetUsecase
	validator *Validator
}

func NewDatasetHandler(uc usecase.DatasetUsecase, validator *Validator) *DatasetHandler {
	return &DatasetHandler{uc: uc, validator: validator}
}

func (h *DatasetHandler) RegisterRoutes(r fiber.Router) {
	if r == nil {
		return
	}

	grp := r.Group("/datasets")
	grp.Get("/", h.List)
	grp.Get("/:id/jobs", h.ListJobs)
	grp.Get("/:id/jobs/:job/gap", h.Gap)
}

func (h *DatasetHandler) List(c fiber.Ctx) error {
	limit, err := strconv.Atoi(c.Query("limit", "20"))
	if err != nil {
		return middleware.NewAppError(fiber.StatusBadRequest, "Invalid limit", nil, err)
	}

	items, err := h.uc.List(c.Context(), limit)
	if err != nil {
		return mapDatasetUsecaseError(err)
	}

	res := make([]dto.DatasetResponse, 0, len(items))
	for _, it := range items {
		res = append(res, toDataset(it))
	}
	return response.Success(c, fiber.StatusOK, response.MessageOK, res)
}

func (h *DatasetHandler) ListJobs(c fiber.Ctx) error {
	id, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return middleware.NewAppError(fiber.StatusBadRequest, "Invalid dataset id", nil, err)
	}

	var q dto.JobPageQuery
	if err := c.Bind().Query(&q); err != nil {
		return middleware.NewAppError(fiber.StatusBadRequest, "Bad request", nil, err)
	}
	if err := h.validator.Struct(q); err != nil {
		return err
	}

	page, err := h.uc.ListJobs(c.Context(), id, q.Limit, q.Offset)
	if err != nil {
		return mapDatasetUsecaseError(err)
	}
	return response.Success(c, fiber.StatusOK, response.MessageOK, dto.JobPageResponse{
		Jobs:   page.Jobs,
		Total:  page.Total,
		Limit:  page.Limit,
		Offset: page.Offset,
	})
}

// Gap reads the profile from the query string, one parameter per skill: ?Python=5&SQL=7.
func (h *DatasetHandler) Gap(c fiber.Ctx) error {
	id, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return middleware.NewAppError(fiber.StatusBadRequest, "Invalid dataset id", nil, err)
	}
	job, err := url.PathUnescape(c.Params("job"))
	if err != nil || job == "" {
		return middleware.NewAppError(fiber.StatusBadRequest, "Invalid job", nil, err)
	}

	profile := skill.Profile{}
	var fields []response.FieldError
	for name, raw := range c.Queries() {
		lvl, err := input.ParseLevel(raw, skill.DashboardMinUserLevel, skill.MaxLevel)
		if err != nil {
			fields = append(fields, levelFieldError(name, err))
			continue
		}
		profile[name] = lvl
	}
	if len(fields) > 0 {
		return middleware.NewAppError(fiber.StatusUnprocessableEntity, response.MessageValidationFailed, fields, nil)
	}

	rep, err := h.uc.Gap(c.Context(), id, job, profile)
	if err != nil {
		return mapDatasetUsecaseError(err)
	}
	return response.Success(c, fiber.StatusOK, response.MessageOK, toGapReport(rep))
}
