package usecase

import (
	"context"
	"errors"
	"path/filepath"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/jobdeck/api/internal/dto"
	"github.com/jobdeck/api/internal/model"
	"github.com/jobdeck/api/internal/moderation"
	"github.com/jobdeck/api/internal/repository"
	"github.com/jobdeck/api/internal/service"
	"github.com/jobdeck/api/internal/util"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
)

var (
	rootUser = &service.AuthUser{UID: "u-root", Email: "root@jobdeck.io", Name: "Root", Role: model.RoleSuperAdmin}
	poster   = &service.AuthUser{UID: "u-poster", Email: "poster@jobdeck.io", Name: "Poster", Role: model.RoleMember}
)

func newTestUsecase(t *testing.T) (*JobUsecase, *repository.JobRepository) {
	t.Helper()
	db, err := gorm.Open(sqlite.Open(filepath.Join(t.TempDir(), "test.db")), &gorm.Config{})
	if err != nil {
		t.Fatalf("open sqlite: %v", err)
	}
	if err := db.AutoMigrate(&model.Job{}); err != nil {
		t.Fatalf("auto migrate: %v", err)
	}
	repo := repository.NewJobRepository(db)
	return NewJobUsecase(repo, nil), repo
}

func validInput() dto.JobInput {
	return dto.JobInput{
		Title:           "Backend Engineer",
		Position:        "Engineer",
		Company:         "Acme",
		Country:         "Germany",
		City:            "Berlin",
		Description:     "Build services",
		ExperienceLevel: "Senior",
		Sector:          "Technology",
		ApplyURL:        "https://example.com/apply",
	}
}

func seedPublished(t *testing.T, repo *repository.JobRepository, job model.Job) model.Job {
	t.Helper()
	job.ID = uuid.New()
	job.Status = moderation.StatusPublished
	job.IsApproved = true
	job.SyncDerived()
	if err := repo.Create(context.Background(), &job); err != nil {
		t.Fatalf("seed job: %v", err)
	}
	return job
}

func TestCreateRequiresFields(t *testing.T) {
	t.Parallel()

	uc, _ := newTestUsecase(t)
	_, err := uc.Create(context.Background(), dto.JobInput{Title: "Only title"}, poster)

	var formErr *util.FormError
	if !errors.As(err, &formErr) {
		t.Fatalf("expected *util.FormError, got %v", err)
	}
	for _, field := range []string{"position", "company", "country", "description", "experience_level", "apply_url"} {
		if _, ok := formErr.Errors[field]; !ok {
			t.Errorf("expected field error for %s", field)
		}
	}
	if _, ok := formErr.Errors["title"]; ok {
		t.Error("title was provided, should not be reported")
	}
}

func TestCreatePendingForRegularPoster(t *testing.T) {
	t.Parallel()

	uc, _ := newTestUsecase(t)
	job, err := uc.Create(context.Background(), validInput(), poster)
	if err != nil {
		t.Fatalf("Create error: %v", err)
	}
	if job.Status != moderation.StatusPending {
		t.Fatalf("expected status pending, got %s", job.Status)
	}
	if job.IsApproved || job.ApprovedAt != nil {
		t.Fatal("regular poster's job must not be approved at creation")
	}
	if job.CreatorEmail != poster.Email {
		t.Fatalf("expected creator email recorded, got %q", job.CreatorEmail)
	}
}

func TestCreateAutoPublishesForSuperAdmin(t *testing.T) {
	t.Parallel()

	uc, _ := newTestUsecase(t)
	job, err := uc.Create(context.Background(), validInput(), rootUser)
	if err != nil {
		t.Fatalf("Create error: %v", err)
	}
	if job.Status != moderation.StatusPublished {
		t.Fatalf("expected status published, got %s", job.Status)
	}
	if !job.IsApproved || job.ApprovedAt == nil || job.ApprovedBy != rootUser.Email {
		t.Fatalf("expected approval fields set, got %+v", job)
	}
}

func TestCreateTitleLowerRoundTrip(t *testing.T) {
	t.Parallel()

	uc, _ := newTestUsecase(t)
	created, err := uc.Create(context.Background(), validInput(), rootUser)
	if err != nil {
		t.Fatalf("Create error: %v", err)
	}
	got, err := uc.Get(context.Background(), created.ID.String())
	if err != nil {
		t.Fatalf("Get error: %v", err)
	}
	if got.TitleLower != "backend engineer" {
		t.Fatalf("expected title_lower 'backend engineer', got %q", got.TitleLower)
	}
	if got.Location != "Berlin, Germany" {
		t.Fatalf("expected derived location, got %q", got.Location)
	}
}

func TestUpdateResyncsDerivedFields(t *testing.T) {
	t.Parallel()

	uc, _ := newTestUsecase(t)
	created, err := uc.Create(context.Background(), validInput(), poster)
	if err != nil {
		t.Fatalf("Create error: %v", err)
	}

	in := validInput()
	in.Title = "Staff Engineer"
	updated, err := uc.Update(context.Background(), created.ID.String(), in, poster)
	if err != nil {
		t.Fatalf("Update error: %v", err)
	}
	if updated.TitleLower != "staff engineer" {
		t.Fatalf("expected resynced title_lower, got %q", updated.TitleLower)
	}
}

func TestUpdateForbiddenForStranger(t *testing.T) {
	t.Parallel()

	uc, _ := newTestUsecase(t)
	created, err := uc.Create(context.Background(), validInput(), poster)
	if err != nil {
		t.Fatalf("Create error: %v", err)
	}

	stranger := &service.AuthUser{UID: "u-x", Email: "x@jobdeck.io", Role: model.RoleMember}
	if _, err := uc.Update(context.Background(), created.ID.String(), validInput(), stranger); !errors.Is(err, ErrForbidden) {
		t.Fatalf("expected ErrForbidden, got %v", err)
	}
	if err := uc.Delete(context.Background(), created.ID.String(), stranger); !errors.Is(err, ErrForbidden) {
		t.Fatalf("expected ErrForbidden on delete, got %v", err)
	}
}

func TestApproveAndRejectTransitions(t *testing.T) {
	t.Parallel()

	uc, _ := newTestUsecase(t)
	first, err := uc.Create(context.Background(), validInput(), poster)
	if err != nil {
		t.Fatalf("Create error: %v", err)
	}
	second, err := uc.Create(context.Background(), validInput(), poster)
	if err != nil {
		t.Fatalf("Create error: %v", err)
	}

	approved, err := uc.Approve(context.Background(), first.ID.String(), rootUser)
	if err != nil {
		t.Fatalf("Approve error: %v", err)
	}
	if approved.Status != moderation.StatusPublished || !approved.IsApproved || approved.ApprovedAt == nil {
		t.Fatalf("expected published job with approval fields, got %+v", approved)
	}

	rejected, err := uc.Reject(context.Background(), second.ID.String(), "duplicate posting", rootUser)
	if err != nil {
		t.Fatalf("Reject error: %v", err)
	}
	if rejected.Status != moderation.StatusRejected || rejected.RejectReason != "duplicate posting" || rejected.RejectedAt == nil {
		t.Fatalf("expected rejected job with reason, got %+v", rejected)
	}

	// terminal states have no exits
	if _, err := uc.Reject(context.Background(), first.ID.String(), "late", rootUser); !errors.Is(err, ErrNotPending) {
		t.Fatalf("expected ErrNotPending rejecting a published job, got %v", err)
	}
	if _, err := uc.Approve(context.Background(), second.ID.String(), rootUser); !errors.Is(err, ErrNotPending) {
		t.Fatalf("expected ErrNotPending approving a rejected job, got %v", err)
	}
}

func TestModerationRequiresCapability(t *testing.T) {
	t.Parallel()

	uc, _ := newTestUsecase(t)
	created, err := uc.Create(context.Background(), validInput(), poster)
	if err != nil {
		t.Fatalf("Create error: %v", err)
	}
	if _, err := uc.Approve(context.Background(), created.ID.String(), poster); !errors.Is(err, ErrForbidden) {
		t.Fatalf("expected ErrForbidden, got %v", err)
	}
	if _, err := uc.ListPending(context.Background(), poster); !errors.Is(err, ErrForbidden) {
		t.Fatalf("expected ErrForbidden, got %v", err)
	}
}

func TestSearchNeverExceedsLimit(t *testing.T) {
	t.Parallel()

	uc, repo := newTestUsecase(t)
	base := time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC)
	for i := 0; i < 30; i++ {
		seedPublished(t, repo, model.Job{
			Title:     "Backend Engineer",
			CreatedAt: base.Add(time.Duration(i) * time.Minute),
		})
	}

	jobs, _, err := uc.Search(context.Background(), SearchParams{Query: "engineer", Limit: 10})
	if err != nil {
		t.Fatalf("Search error: %v", err)
	}
	if len(jobs) > 10 {
		t.Fatalf("expected at most 10 results, got %d", len(jobs))
	}
}

func TestSearchTitleSubstringGate(t *testing.T) {
	t.Parallel()

	uc, repo := newTestUsecase(t)
	seedPublished(t, repo, model.Job{Title: "Backend Engineer"})
	seedPublished(t, repo, model.Job{Title: "Sales Manager", Description: "works with engineers daily"})

	jobs, _, err := uc.Search(context.Background(), SearchParams{Query: "engineer", Limit: 10})
	if err != nil {
		t.Fatalf("Search error: %v", err)
	}
	if len(jobs) != 1 {
		t.Fatalf("expected only the title match, got %d results", len(jobs))
	}
	if jobs[0].Title != "Backend Engineer" {
		t.Fatalf("unexpected result %q", jobs[0].Title)
	}
}

func TestSearchRanksByRelevanceScore(t *testing.T) {
	t.Parallel()

	uc, repo := newTestUsecase(t)
	base := time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC)
	// title only: 10 points; created later so creation order would put it first
	seedPublished(t, repo, model.Job{
		Title:     "Engineer",
		CreatedAt: base.Add(time.Hour),
	})
	// title + position + description + company: 10+8+5+3 = 26 points
	seedPublished(t, repo, model.Job{
		Title:       "Platform Engineer",
		Position:    "Engineer",
		Description: "Engineer on the platform team",
		Company:     "Engineering Works",
		CreatedAt:   base,
	})

	jobs, _, err := uc.Search(context.Background(), SearchParams{Query: "engineer", Limit: 10})
	if err != nil {
		t.Fatalf("Search error: %v", err)
	}
	if len(jobs) != 2 {
		t.Fatalf("expected 2 results, got %d", len(jobs))
	}
	if jobs[0].Title != "Platform Engineer" {
		t.Fatalf("expected the multi-field match ranked first, got %q", jobs[0].Title)
	}
}

func TestSearchEmptyQueryOrdersByCreatedAtDesc(t *testing.T) {
	t.Parallel()

	uc, repo := newTestUsecase(t)
	base := time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC)
	seedPublished(t, repo, model.Job{Title: "Oldest", CreatedAt: base})
	seedPublished(t, repo, model.Job{Title: "Middle", CreatedAt: base.Add(time.Hour)})
	seedPublished(t, repo, model.Job{Title: "Newest", CreatedAt: base.Add(2 * time.Hour)})

	jobs, _, err := uc.Search(context.Background(), SearchParams{Limit: 10})
	if err != nil {
		t.Fatalf("Search error: %v", err)
	}
	want := []string{"Newest", "Middle", "Oldest"}
	if len(jobs) != len(want) {
		t.Fatalf("expected %d results, got %d", len(want), len(jobs))
	}
	for i, title := range want {
		if jobs[i].Title != title {
			t.Fatalf("expected %q at position %d, got %q", title, i, jobs[i].Title)
		}
	}
}

func TestSearchSectorFilterExcludesTitleMatch(t *testing.T) {
	t.Parallel()

	uc, repo := newTestUsecase(t)
	base := time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC)
	seedPublished(t, repo, model.Job{Title: "Backend Engineer", Sector: "Technology", CreatedAt: base})
	seedPublished(t, repo, model.Job{Title: "Sales Engineer", Sector: "Sales", CreatedAt: base.Add(time.Hour)})

	jobs, _, err := uc.Search(context.Background(), SearchParams{
		Query:   "engineer",
		Filters: map[string][]string{"sector": {"Technology"}},
		Limit:   10,
	})
	if err != nil {
		t.Fatalf("Search error: %v", err)
	}
	if len(jobs) != 1 || jobs[0].Title != "Backend Engineer" {
		t.Fatalf("expected the sector filter to exclude the Sales job, got %+v", jobs)
	}
}

func TestSearchSkipsUnpublishedJobs(t *testing.T) {
	t.Parallel()

	uc, repo := newTestUsecase(t)
	seedPublished(t, repo, model.Job{Title: "Backend Engineer"})

	pending := model.Job{ID: uuid.New(), Title: "Pending Engineer", Status: moderation.StatusPending}
	pending.SyncDerived()
	if err := repo.Create(context.Background(), &pending); err != nil {
		t.Fatalf("seed pending job: %v", err)
	}

	jobs, _, err := uc.Search(context.Background(), SearchParams{Query: "engineer", Limit: 10})
	if err != nil {
		t.Fatalf("Search error: %v", err)
	}
	if len(jobs) != 1 || jobs[0].Title != "Backend Engineer" {
		t.Fatalf("expected pending jobs excluded, got %+v", jobs)
	}
}

func TestSearchArrayFilterOverlap(t *testing.T) {
	t.Parallel()

	uc, repo := newTestUsecase(t)
	seedPublished(t, repo, model.Job{Title: "A", JobLanguages: []string{"English", "German"}})
	seedPublished(t, repo, model.Job{Title: "B", JobLanguages: []string{"French"}})

	jobs, _, err := uc.Search(context.Background(), SearchParams{
		Filters: map[string][]string{"jobLanguages": {"German", "Spanish"}},
		Limit:   10,
	})
	if err != nil {
		t.Fatalf("Search error: %v", err)
	}
	if len(jobs) != 1 || jobs[0].Title != "A" {
		t.Fatalf("expected only the overlapping job, got %+v", jobs)
	}
}

func TestListPublicPagination(t *testing.T) {
	t.Parallel()

	uc, repo := newTestUsecase(t)
	base := time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC)
	for i := 0; i < 7; i++ {
		seedPublished(t, repo, model.Job{
			Title:     "Job",
			CreatedAt: base.Add(time.Duration(i) * time.Minute),
		})
	}

	page1, pagination, err := uc.ListPublic(context.Background(), 1, 5)
	if err != nil {
		t.Fatalf("ListPublic error: %v", err)
	}
	if len(page1) != 5 {
		t.Fatalf("expected 5 jobs on page 1, got %d", len(page1))
	}
	if pagination.TotalItems != 7 || pagination.TotalPages != 2 || !pagination.HasMore {
		t.Fatalf("unexpected pagination %+v", pagination)
	}

	page2, pagination, err := uc.ListPublic(context.Background(), 2, 5)
	if err != nil {
		t.Fatalf("ListPublic page 2 error: %v", err)
	}
	if len(page2) != 2 || pagination.HasMore {
		t.Fatalf("expected final page with 2 jobs, got %d (has_more=%v)", len(page2), pagination.HasMore)
	}
}
