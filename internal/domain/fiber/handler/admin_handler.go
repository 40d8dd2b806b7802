package handler

import (
	"github.com/gofiber/fiber/v2"
	"github.com/jobdeck/api/internal/dto"
	"github.com/jobdeck/api/internal/middleware"
	"github.com/jobdeck/api/internal/service"
	"github.com/jobdeck/api/internal/usecase"
	"github.com/jobdeck/api/internal/util"
)

// AdminHandler exposes moderation and user management. Every route requires
// a verified identity with the matching capability.
type AdminHandler struct {
	jobs      *usecase.JobUsecase
	users     *usecase.UserUsecase
	analytics *service.AnalyticsService
	verifier  service.AuthVerifier
}

func NewAdminHandler(jobs *usecase.JobUsecase, users *usecase.UserUsecase, analytics *service.AnalyticsService, verifier service.AuthVerifier) *AdminHandler {
	return &AdminHandler{jobs: jobs, users: users, analytics: analytics, verifier: verifier}
}

func (h *AdminHandler) RegisterRoutes(app *fiber.App) {
	admin := app.Group("/api/admin", middleware.RequireAuth(h.verifier))

	jobs := admin.Group("/jobs", middleware.RequireCapability(service.CapModerate))
	jobs.Get("/pending", h.ListPending)
	jobs.Post("/:id/approve", h.Approve)
	jobs.Post("/:id/reject", h.Reject)

	users := admin.Group("/users", middleware.RequireCapability(service.CapManageUsers))
	users.Post("/", h.CreateUser)
	users.Get("/", h.ListUsers)
	users.Delete("/:id", h.DeleteUser)

	admin.Get("/analytics/search-terms", middleware.RequireCapability(service.CapModerate), h.TopSearchTerms)
}

func (h *AdminHandler) ListPending(c *fiber.Ctx) error {
	jobs, err := h.jobs.ListPending(c.UserContext(), middleware.CurrentUser(c))
	if err != nil {
		return respondError(c, err, "failed to list pending jobs")
	}
	return util.SuccessResponse(c, util.SuccessResponseFormat{
		Message: "pending jobs",
		Data:    jobs,
	})
}

func (h *AdminHandler) Approve(c *fiber.Ctx) error {
	job, err := h.jobs.Approve(c.UserContext(), c.Params("id"), middleware.CurrentUser(c))
	if err != nil {
		return respondError(c, err, "failed to approve job")
	}
	return util.SuccessResponse(c, util.SuccessResponseFormat{
		Message: "job approved",
		Data:    job,
	})
}

func (h *AdminHandler) Reject(c *fiber.Ctx) error {
	var body struct {
		Reason string `json:"reason"`
	}
	if err := c.BodyParser(&body); err != nil && len(c.Body()) > 0 {
		return util.ErrorResponse(c, util.ErrorResponseFormat{
			Code:    fiber.StatusBadRequest,
			Message: "invalid payload",
		}, err)
	}
	job, err := h.jobs.Reject(c.UserContext(), c.Params("id"), body.Reason, middleware.CurrentUser(c))
	if err != nil {
		return respondError(c, err, "failed to reject job")
	}
	return util.SuccessResponse(c, util.SuccessResponseFormat{
		Message: "job rejected",
		Data:    job,
	})
}

func (h *AdminHandler) CreateUser(c *fiber.Ctx) error {
	var in dto.UserInput
	if err := c.BodyParser(&in); err != nil {
		return util.ErrorResponse(c, util.ErrorResponseFormat{
			Code:    fiber.StatusBadRequest,
			Message: "invalid payload",
		}, err)
	}
	user, err := h.users.Create(c.UserContext(), in, middleware.CurrentUser(c))
	if err != nil {
		return respondError(c, err, "failed to create user")
	}
	return util.SuccessResponse(c, util.SuccessResponseFormat{
		Code:    fiber.StatusCreated,
		Message: "user created",
		Data:    user,
	})
}

func (h *AdminHandler) ListUsers(c *fiber.Ctx) error {
	users, err := h.users.List(c.UserContext(), middleware.CurrentUser(c))
	if err != nil {
		return respondError(c, err, "failed to list users")
	}
	return util.SuccessResponse(c, util.SuccessResponseFormat{
		Message: "users",
		Data:    users,
	})
}

// TopSearchTerms reports the most-searched query terms, as of the last
// counter flush.
func (h *AdminHandler) TopSearchTerms(c *fiber.Ctx) error {
	terms, err := h.analytics.TopSearchTerms(c.UserContext(), c.QueryInt("limit", 20))
	if err != nil {
		return respondError(c, err, "failed to list search terms")
	}
	return util.SuccessResponse(c, util.SuccessResponseFormat{
		Message: "search terms",
		Data:    terms,
	})
}

func (h *AdminHandler) DeleteUser(c *fiber.Ctx) error {
	if err := h.users.Delete(c.UserContext(), c.Params("id"), middleware.CurrentUser(c)); err != nil {
		return respondError(c, err, "failed to delete user")
	}
	return util.SuccessResponse(c, util.SuccessResponseFormat{
		Message: "user deleted",
	})
}
