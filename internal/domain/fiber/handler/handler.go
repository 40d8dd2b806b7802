package handler

import (
	"errors"

	"github.com/gofiber/fiber/v2"
	"github.com/jobdeck/api/internal/usecase"
	"github.com/jobdeck/api/internal/util"
	"gorm.io/gorm"
)

// respondError maps usecase errors onto the conventional status codes:
// validation → 400, authorization → 403, unknown id → 404, the rest → 500
// with a generic message plus the underlying error text (outside production).
func respondError(c *fiber.Ctx, err error, fallback string) error {
	var formErr *util.FormError
	switch {
	case errors.As(err, &formErr):
		return util.ErrorResponse(c, util.ErrorResponseFormat{
			Code:    fiber.StatusBadRequest,
			Message: formErr.Message,
			Details: formErr.Errors,
		})
	case errors.Is(err, gorm.ErrRecordNotFound):
		return util.ErrorResponse(c, util.ErrorResponseFormat{
			Code:    fiber.StatusNotFound,
			Message: "not found",
		})
	case errors.Is(err, usecase.ErrForbidden):
		return util.ErrorResponse(c, util.ErrorResponseFormat{
			Code:    fiber.StatusForbidden,
			Message: "not allowed",
		})
	case errors.Is(err, usecase.ErrNotPending):
		return util.ErrorResponse(c, util.ErrorResponseFormat{
			Code:    fiber.StatusBadRequest,
			Message: err.Error(),
		})
	default:
		return util.ErrorResponse(c, util.ErrorResponseFormat{
			Message: fallback,
		}, err)
	}
}
