package handler

import (
	"strconv"
	"strings"

	"github.com/gofiber/fiber/v2"
	"github.com/jobdeck/api/internal/dto"
	"github.com/jobdeck/api/internal/middleware"
	"github.com/jobdeck/api/internal/service"
	"github.com/jobdeck/api/internal/usecase"
	"github.com/jobdeck/api/internal/util"
)

type JobHandler struct {
	jobs     *usecase.JobUsecase
	verifier service.AuthVerifier
}

func NewJobHandler(jobs *usecase.JobUsecase, verifier service.AuthVerifier) *JobHandler {
	return &JobHandler{jobs: jobs, verifier: verifier}
}

func (h *JobHandler) RegisterRoutes(app *fiber.App) {
	api := app.Group("/api")
	api.Get("/jobs", h.ListPublic)
	api.Get("/jobs/search", h.Search)
	api.Get("/jobs/:id", h.Get)

	authed := api.Group("", middleware.RequireAuth(h.verifier))
	authed.Post("/jobs", h.Create)
	authed.Put("/jobs/:id", h.Update)
	authed.Delete("/jobs/:id", h.Delete)
}

// ListPublic serves the paginated public listing with the restricted field
// subset. Published jobs only, newest first.
func (h *JobHandler) ListPublic(c *fiber.Ctx) error {
	page := c.QueryInt("page", 1)
	pageSize := c.QueryInt("page_size", 20)
	jobs, pagination, err := h.jobs.ListPublic(c.UserContext(), page, pageSize)
	if err != nil {
		return respondError(c, err, "failed to list jobs")
	}
	return util.SuccessResponse(c, util.SuccessResponseFormat{
		Message:    "jobs",
		Data:       jobs,
		Pagination: pagination,
	})
}

// Search maps query parameters straight onto the filter keys, runs the
// search and echoes the analytics session id in the response meta.
func (h *JobHandler) Search(c *fiber.Ctx) error {
	filters := map[string][]string{}
	for _, key := range usecase.FilterKeys() {
		raw := c.Query(key)
		if raw == "" {
			continue
		}
		filters[key] = splitMulti(raw)
	}

	limit, _ := strconv.Atoi(c.Query("limit"))
	jobs, session, err := h.jobs.Search(c.UserContext(), usecase.SearchParams{
		Query:     c.Query("q"),
		Filters:   filters,
		Limit:     limit,
		SessionID: c.Get("X-Session-ID"),
	})
	if err != nil {
		return respondError(c, err, "search failed")
	}

	var meta any
	if session.ID != "" {
		meta = fiber.Map{"session_id": session.ID, "session_expires_at": session.ExpiresAt}
	}
	return util.SuccessResponse(c, util.SuccessResponseFormat{
		Message: "search results",
		Data:    jobs,
		Meta:    meta,
	})
}

func (h *JobHandler) Get(c *fiber.Ctx) error {
	job, err := h.jobs.Get(c.UserContext(), c.Params("id"))
	if err != nil {
		return respondError(c, err, "failed to get job")
	}
	return util.SuccessResponse(c, util.SuccessResponseFormat{
		Message: "job",
		Data:    job,
	})
}

func (h *JobHandler) Create(c *fiber.Ctx) error {
	var in dto.JobInput
	if err := c.BodyParser(&in); err != nil {
		return util.ErrorResponse(c, util.ErrorResponseFormat{
			Code:    fiber.StatusBadRequest,
			Message: "invalid payload",
		}, err)
	}
	job, err := h.jobs.Create(c.UserContext(), in, middleware.CurrentUser(c))
	if err != nil {
		return respondError(c, err, "failed to create job")
	}
	return util.SuccessResponse(c, util.SuccessResponseFormat{
		Code:    fiber.StatusCreated,
		Message: "job created",
		Data:    job,
	})
}

func (h *JobHandler) Update(c *fiber.Ctx) error {
	var in dto.JobInput
	if err := c.BodyParser(&in); err != nil {
		return util.ErrorResponse(c, util.ErrorResponseFormat{
			Code:    fiber.StatusBadRequest,
			Message: "invalid payload",
		}, err)
	}
	job, err := h.jobs.Update(c.UserContext(), c.Params("id"), in, middleware.CurrentUser(c))
	if err != nil {
		return respondError(c, err, "failed to update job")
	}
	return util.SuccessResponse(c, util.SuccessResponseFormat{
		Message: "job updated",
		Data:    job,
	})
}

func (h *JobHandler) Delete(c *fiber.Ctx) error {
	if err := h.jobs.Delete(c.UserContext(), c.Params("id"), middleware.CurrentUser(c)); err != nil {
		return respondError(c, err, "failed to delete job")
	}
	return util.SuccessResponse(c, util.SuccessResponseFormat{
		Message: "job deleted",
	})
}

func splitMulti(raw string) []string {
	parts := strings.Split(raw, ",")
	out := make([]string, 0, len(parts))
	for _, p := range parts {
		if p = strings.TrimSpace(p); p != "" {
			out = append(out, p)
		}
	}
	return out
}
