package service

import (
	"context"
	"path/filepath"
	"testing"
	"time"

	"github.com/jobdeck/api/internal/model"
	"github.com/jobdeck/api/internal/repository"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
)

func newAnalytics(t *testing.T) (*AnalyticsService, *repository.FilterRepository) {
	t.Helper()
	db, err := gorm.Open(sqlite.Open(filepath.Join(t.TempDir(), "test.db")), &gorm.Config{})
	if err != nil {
		t.Fatalf("open sqlite: %v", err)
	}
	if err := db.AutoMigrate(&model.FilterCategory{}, &model.FilterValue{}, &model.SearchTerm{}); err != nil {
		t.Fatalf("auto migrate: %v", err)
	}
	filters := repository.NewFilterRepository(db)
	terms := repository.NewSearchTermRepository(db)
	// nil redis: term counting and session storage degrade to no-ops
	return NewAnalyticsService(nil, filters, terms), filters
}

func TestEnsureSessionMintsAndKeepsIDs(t *testing.T) {
	t.Parallel()

	svc, _ := newAnalytics(t)
	ctx := context.Background()

	minted := svc.EnsureSession(ctx, "")
	if minted.ID == "" {
		t.Fatal("expected a fresh session id")
	}
	if !minted.ExpiresAt.After(time.Now()) {
		t.Fatalf("expected an expiry in the future, got %v", minted.ExpiresAt)
	}

	kept := svc.EnsureSession(ctx, "existing-session")
	if kept.ID != "existing-session" {
		t.Fatalf("expected the provided id to be kept, got %q", kept.ID)
	}
}

func TestTrackSearchIncrementsFilterUsage(t *testing.T) {
	t.Parallel()

	svc, filters := newAnalytics(t)
	ctx := context.Background()

	if err := filters.UpsertValue(ctx, &model.FilterValue{ID: "technology", CategoryID: "sector", Label: "Technology"}); err != nil {
		t.Fatalf("UpsertValue error: %v", err)
	}

	session := svc.EnsureSession(ctx, "")
	svc.TrackSearch(ctx, session, "engineer", map[string][]string{
		"sector": {"Technology"},
	})
	// unknown filter values and missing redis must never fail the caller
	svc.TrackSearch(ctx, session, "", map[string][]string{
		"sector": {"Nonexistent Sector"},
	})

	values, err := filters.ListValues(ctx, "sector")
	if err != nil {
		t.Fatalf("ListValues error: %v", err)
	}
	if len(values) != 1 || values[0].UsageCount != 1 {
		t.Fatalf("expected usage count 1 for technology, got %+v", values)
	}
}

func TestFlushWithoutRedisIsNoOp(t *testing.T) {
	t.Parallel()

	svc, _ := newAnalytics(t)
	if err := svc.Flush(context.Background()); err != nil {
		t.Fatalf("Flush without redis should be a no-op, got %v", err)
	}
}
