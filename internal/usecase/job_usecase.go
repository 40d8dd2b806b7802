package usecase

import (
	"context"
	"errors"
	"sort"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/jobdeck/api/internal/dto"
	"github.com/jobdeck/api/internal/model"
	"github.com/jobdeck/api/internal/moderation"
	"github.com/jobdeck/api/internal/repository"
	"github.com/jobdeck/api/internal/response"
	"github.com/jobdeck/api/internal/service"
	"github.com/jobdeck/api/internal/util"
)

var (
	ErrForbidden  = errors.New("not allowed")
	ErrNotPending = errors.New("job is not pending")
)

// Relevance weights per matched query word. Fixed — no configuration.
const (
	scoreTitle       = 10
	scorePosition    = 8
	scoreDescription = 5
	scoreCompany     = 3
)

const defaultSearchLimit = 20

// filterColumns maps recognized single-value filter keys to job columns.
var filterColumns = map[string]string{
	"position":             "position",
	"country":              "country",
	"city":                 "city",
	"experienceLevel":      "experience_level",
	"teamManagement":       "team_management",
	"leadershipExperience": "leadership_experience",
	"sector":               "sector",
	"workOption":           "work_option",
	"functionalArea":       "functional_area",
	"travel":               "travel",
	"type":                 "type",
	"salaryCurrency":       "salary_currency",
	"payRange":             "pay_range",
	"company":              "company",
}

// arrayFilterColumns maps keys whose job field is a list; these use overlap
// conditions instead of equality.
var arrayFilterColumns = map[string]string{
	"education":    "education",
	"jobLanguages": "job_languages",
	"skills":       "keywords",
	"keywords":     "keywords",
}

// FilterKeys returns every query parameter the search endpoint recognizes.
func FilterKeys() []string {
	keys := make([]string, 0, len(filterColumns)+len(arrayFilterColumns))
	for k := range filterColumns {
		keys = append(keys, k)
	}
	for k := range arrayFilterColumns {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}

type SearchParams struct {
	Query     string
	Filters   map[string][]string
	Limit     int
	SessionID string
}

type JobUsecase struct {
	jobs    *repository.JobRepository
	tracker service.Tracker
}

// NewJobUsecase builds the job usecase. tracker may be nil; analytics then
// degrade to nothing.
func NewJobUsecase(jobs *repository.JobRepository, tracker service.Tracker) *JobUsecase {
	return &JobUsecase{jobs: jobs, tracker: tracker}
}

func validateJobInput(in dto.JobInput) error {
	fieldErrors := map[string]string{}
	required := map[string]string{
		"title":            in.Title,
		"position":         in.Position,
		"company":          in.Company,
		"country":          in.Country,
		"description":      in.Description,
		"experience_level": in.ExperienceLevel,
		"apply_url":        in.ApplyURL,
	}
	for field, value := range required {
		if strings.TrimSpace(value) == "" {
			fieldErrors[field] = "required"
		}
	}
	if len(fieldErrors) > 0 {
		return util.NewFormError("missing required job fields", fieldErrors)
	}
	return nil
}

// Create stores a new posting. Creators holding the auto-publish capability
// go straight to published; everyone else starts pending review.
func (uc *JobUsecase) Create(ctx context.Context, in dto.JobInput, creator *service.AuthUser) (*model.Job, error) {
	if !creator.Can(service.CapPostJobs) {
		return nil, ErrForbidden
	}
	if err := validateJobInput(in); err != nil {
		return nil, err
	}

	job := &model.Job{
		ID:           uuid.New(),
		CreatedBy:    creator.UID,
		CreatorEmail: creator.Email,
	}
	in.Apply(job)

	if creator.Can(service.CapAutoPublish) {
		now := time.Now()
		job.Status = moderation.StatusPublished
		job.IsApproved = true
		job.ApprovedBy = creator.Email
		job.ApprovedAt = &now
	} else {
		job.Status = moderation.StatusPending
	}

	if err := uc.jobs.Create(ctx, job); err != nil {
		return nil, err
	}
	return job, nil
}

func (uc *JobUsecase) Get(ctx context.Context, id string) (*model.Job, error) {
	return uc.jobs.FindByID(ctx, id)
}

// Update overwrites every mutable field. Only the creator or a moderator may
// edit. Moderation fields and provenance are untouched.
func (uc *JobUsecase) Update(ctx context.Context, id string, in dto.JobInput, actor *service.AuthUser) (*model.Job, error) {
	if err := validateJobInput(in); err != nil {
		return nil, err
	}
	job, err := uc.jobs.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if job.CreatorEmail != actor.Email && !actor.Can(service.CapModerate) {
		return nil, ErrForbidden
	}
	in.Apply(job)
	job.UpdatedAt = time.Now()
	if err := uc.jobs.Update(ctx, job); err != nil {
		return nil, err
	}
	return job, nil
}

func (uc *JobUsecase) Delete(ctx context.Context, id string, actor *service.AuthUser) error {
	job, err := uc.jobs.FindByID(ctx, id)
	if err != nil {
		return err
	}
	if job.CreatorEmail != actor.Email && !actor.Can(service.CapModerate) {
		return ErrForbidden
	}
	return uc.jobs.Delete(ctx, id)
}

// ListPublic returns a page of published jobs with the restricted field
// subset, newest first.
func (uc *JobUsecase) ListPublic(ctx context.Context, page, pageSize int) ([]dto.PublicJob, *response.Pagination, error) {
	if page < 1 {
		page = 1
	}
	if pageSize < 1 || pageSize > 100 {
		pageSize = 20
	}
	jobs, err := uc.jobs.ListByStatus(ctx, moderation.StatusPublished, pageSize, (page-1)*pageSize)
	if err != nil {
		return nil, nil, err
	}
	total, err := uc.jobs.CountByStatus(ctx, moderation.StatusPublished)
	if err != nil {
		return nil, nil, err
	}
	out := make([]dto.PublicJob, 0, len(jobs))
	for _, j := range jobs {
		out = append(out, dto.NewPublicJob(j))
	}
	return out, response.NewPagination(page, pageSize, total), nil
}

func (uc *JobUsecase) ListPending(ctx context.Context, actor *service.AuthUser) ([]model.Job, error) {
	if !actor.Can(service.CapModerate) {
		return nil, ErrForbidden
	}
	return uc.jobs.ListByStatus(ctx, moderation.StatusPending, 0, 0)
}

// Approve moves a pending job to published.
func (uc *JobUsecase) Approve(ctx context.Context, id string, actor *service.AuthUser) (*model.Job, error) {
	return uc.transition(ctx, id, actor, moderation.StatusPublished, "")
}

// Reject moves a pending job to rejected, recording the reason.
func (uc *JobUsecase) Reject(ctx context.Context, id, reason string, actor *service.AuthUser) (*model.Job, error) {
	return uc.transition(ctx, id, actor, moderation.StatusRejected, reason)
}

func (uc *JobUsecase) transition(ctx context.Context, id string, actor *service.AuthUser, to moderation.Status, reason string) (*model.Job, error) {
	if !actor.Can(service.CapModerate) {
		return nil, ErrForbidden
	}
	job, err := uc.jobs.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if !moderation.CanTransition(job.Status, to) {
		return nil, ErrNotPending
	}
	now := time.Now()
	job.Status = to
	switch to {
	case moderation.StatusPublished:
		job.IsApproved = true
		job.ApprovedBy = actor.Email
		job.ApprovedAt = &now
	case moderation.StatusRejected:
		job.IsApproved = false
		job.RejectedBy = actor.Email
		job.RejectedAt = &now
		job.RejectReason = reason
	}
	if err := uc.jobs.Update(ctx, job); err != nil {
		return nil, err
	}
	return job, nil
}

// Search translates the query string and filter selections into store
// conditions, fetches candidates newest-first, then narrows in memory:
//
//  1. filters become equality / membership / overlap conditions
//  2. fetch 2×limit so the in-memory passes have room
//  3. with a query, drop records whose lowercased title does not contain it
//  4. truncate to limit
//  5. with a query, score remaining records (10/8/5/3 per word per field),
//     drop zero scores, sort by score descending
//
// The title gate in (3) and the scorer in (5) are both kept: a record must
// pass both to be returned. Without a query, (3) and (5) are skipped and
// order is creation time descending.
func (uc *JobUsecase) Search(ctx context.Context, params SearchParams) ([]model.Job, service.Session, error) {
	limit := params.Limit
	if limit <= 0 {
		limit = defaultSearchLimit
	}

	conds := []repository.Condition{
		{Field: "status", Op: repository.OpEq, Value: moderation.StatusPublished},
	}
	applied := map[string][]string{}
	for key, values := range params.Filters {
		values = nonEmpty(values)
		if len(values) == 0 {
			continue
		}
		if column, ok := arrayFilterColumns[key]; ok {
			conds = append(conds, repository.Condition{Field: column, Op: repository.OpContainsAny, Value: values})
			applied[key] = values
			continue
		}
		column, ok := filterColumns[key]
		if !ok {
			continue
		}
		if len(values) == 1 {
			conds = append(conds, repository.Condition{Field: column, Op: repository.OpEq, Value: values[0]})
		} else {
			conds = append(conds, repository.Condition{Field: column, Op: repository.OpIn, Value: values})
		}
		applied[key] = values
	}

	jobs, err := uc.jobs.Query(ctx, repository.Query{
		Conditions: conds,
		OrderBy:    "created_at",
		Desc:       true,
		Limit:      2 * limit,
	})
	if err != nil {
		return nil, service.Session{}, err
	}

	query := strings.ToLower(strings.TrimSpace(params.Query))
	if query != "" {
		kept := jobs[:0]
		for _, j := range jobs {
			if strings.Contains(strings.ToLower(j.Title), query) {
				kept = append(kept, j)
			}
		}
		jobs = kept
	}

	if len(jobs) > limit {
		jobs = jobs[:limit]
	}

	if query != "" {
		jobs = rankByRelevance(jobs, query)
	}

	session := service.Session{ID: params.SessionID}
	if uc.tracker != nil {
		session = uc.tracker.EnsureSession(ctx, params.SessionID)
		go func() {
			trackCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
			defer cancel()
			uc.tracker.TrackSearch(trackCtx, session, query, applied)
		}()
	}

	return jobs, session, nil
}

// rankByRelevance accumulates the fixed word weights across fields, drops
// zero-score records and sorts descending. A word matching several fields
// adds every matching weight.
func rankByRelevance(jobs []model.Job, query string) []model.Job {
	words := strings.Fields(query)
	type scored struct {
		job   model.Job
		score int
	}
	ranked := make([]scored, 0, len(jobs))
	for _, j := range jobs {
		title := strings.ToLower(j.Title)
		position := strings.ToLower(j.Position)
		description := strings.ToLower(j.Description)
		company := strings.ToLower(j.Company)

		score := 0
		for _, w := range words {
			if strings.Contains(title, w) {
				score += scoreTitle
			}
			if strings.Contains(position, w) {
				score += scorePosition
			}
			if strings.Contains(description, w) {
				score += scoreDescription
			}
			if strings.Contains(company, w) {
				score += scoreCompany
			}
		}
		if score > 0 {
			ranked = append(ranked, scored{job: j, score: score})
		}
	}
	sort.SliceStable(ranked, func(i, k int) bool {
		return ranked[i].score > ranked[k].score
	})
	out := make([]model.Job, 0, len(ranked))
	for _, r := range ranked {
		out = append(out, r.job)
	}
	return out
}

func nonEmpty(values []string) []string {
	out := values[:0]
	for _, v := range values {
		if strings.TrimSpace(v) != "" {
			out = append(out, v)
		}
	}
	return out
}
