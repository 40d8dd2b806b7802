package handler

import (
	"github.com/gofiber/fiber/v2"
	"github.com/jobdeck/api/internal/dto"
	"github.com/jobdeck/api/internal/middleware"
	"github.com/jobdeck/api/internal/service"
	"github.com/jobdeck/api/internal/usecase"
	"github.com/jobdeck/api/internal/util"
)

type FilterHandler struct {
	filters  *usecase.FilterUsecase
	verifier service.AuthVerifier
}

func NewFilterHandler(filters *usecase.FilterUsecase, verifier service.AuthVerifier) *FilterHandler {
	return &FilterHandler{filters: filters, verifier: verifier}
}

func (h *FilterHandler) RegisterRoutes(app *fiber.App) {
	app.Get("/api/filters", h.Taxonomy)

	admin := app.Group("/api/admin/filters",
		middleware.RequireAuth(h.verifier),
		middleware.RequireCapability(service.CapModerate))
	admin.Post("/categories", h.CreateCategory)
	admin.Delete("/categories/:id", h.DeleteCategory)
	admin.Post("/values", h.CreateValue)
	admin.Delete("/values/:id", h.DeleteValue)
}

// Taxonomy returns every filter category with its values for the search UI.
func (h *FilterHandler) Taxonomy(c *fiber.Ctx) error {
	taxonomy, err := h.filters.Taxonomy(c.UserContext())
	if err != nil {
		return respondError(c, err, "failed to load filters")
	}
	return util.SuccessResponse(c, util.SuccessResponseFormat{
		Message: "filters",
		Data:    taxonomy,
	})
}

func (h *FilterHandler) CreateCategory(c *fiber.Ctx) error {
	var in dto.FilterCategoryInput
	if err := c.BodyParser(&in); err != nil {
		return util.ErrorResponse(c, util.ErrorResponseFormat{
			Code:    fiber.StatusBadRequest,
			Message: "invalid payload",
		}, err)
	}
	category, err := h.filters.CreateCategory(c.UserContext(), in)
	if err != nil {
		return respondError(c, err, "failed to create filter category")
	}
	return util.SuccessResponse(c, util.SuccessResponseFormat{
		Code:    fiber.StatusCreated,
		Message: "filter category saved",
		Data:    category,
	})
}

func (h *FilterHandler) DeleteCategory(c *fiber.Ctx) error {
	if err := h.filters.DeleteCategory(c.UserContext(), c.Params("id")); err != nil {
		return respondError(c, err, "failed to delete filter category")
	}
	return util.SuccessResponse(c, util.SuccessResponseFormat{
		Message: "filter category deleted",
	})
}

func (h *FilterHandler) CreateValue(c *fiber.Ctx) error {
	var in dto.FilterValueInput
	if err := c.BodyParser(&in); err != nil {
		return util.ErrorResponse(c, util.ErrorResponseFormat{
			Code:    fiber.StatusBadRequest,
			Message: "invalid payload",
		}, err)
	}
	value, err := h.filters.CreateValue(c.UserContext(), in)
	if err != nil {
		return respondError(c, err, "failed to create filter value")
	}
	return util.SuccessResponse(c, util.SuccessResponseFormat{
		Code:    fiber.StatusCreated,
		Message: "filter value saved",
		Data:    value,
	})
}

func (h *FilterHandler) DeleteValue(c *fiber.Ctx) error {
	if err := h.filters.DeleteValue(c.UserContext(), c.Params("id")); err != nil {
		return respondError(c, err, "failed to delete filter value")
	}
	return util.SuccessResponse(c, util.SuccessResponseFormat{
		Message: "filter value deleted",
	})
}
