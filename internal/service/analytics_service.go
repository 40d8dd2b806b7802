package service

import (
	"context"
	"log"
	"strconv"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/jobdeck/api/internal/model"
	"github.com/jobdeck/api/internal/repository"
	"github.com/jobdeck/api/internal/util"
	"github.com/redis/go-redis/v9"
)

const (
	sessionKeyPrefix = "session:"
	termKeyPrefix    = "search:term:"
)

// Session identifies one client browsing session. It is created explicitly
// with an expiry and passed into tracking calls — never ambient state.
type Session struct {
	ID        string    `json:"id"`
	ExpiresAt time.Time `json:"expires_at"`
}

// Tracker is the best-effort analytics surface. Implementations must never
// fail the caller: errors are logged and swallowed.
type Tracker interface {
	EnsureSession(ctx context.Context, id string) Session
	TrackSearch(ctx context.Context, session Session, term string, applied map[string][]string)
}

// AnalyticsService records filter usage and search terms. Counter bumps go
// to the filter_values table; raw term counts accumulate in redis until the
// flush job folds them into search_terms. A nil redis client degrades every
// redis-backed path to a no-op.
type AnalyticsService struct {
	rdb        *redis.Client
	filters    *repository.FilterRepository
	terms      *repository.SearchTermRepository
	sessionTTL time.Duration
}

func NewAnalyticsService(rdb *redis.Client, filters *repository.FilterRepository, terms *repository.SearchTermRepository) *AnalyticsService {
	return &AnalyticsService{
		rdb:        rdb,
		filters:    filters,
		terms:      terms,
		sessionTTL: 30 * time.Minute,
	}
}

// EnsureSession returns the session for the given id, minting a fresh one
// when the id is empty. The redis record only exists so the expiry survives
// across instances; losing it is harmless.
func (s *AnalyticsService) EnsureSession(ctx context.Context, id string) Session {
	if id == "" {
		id = uuid.NewString()
	}
	sess := Session{ID: id, ExpiresAt: time.Now().Add(s.sessionTTL)}
	if s.rdb != nil {
		if err := s.rdb.Set(ctx, sessionKeyPrefix+id, sess.ExpiresAt.Unix(), s.sessionTTL).Err(); err != nil {
			log.Printf("analytics: store session %s: %v", id, err)
		}
	}
	return sess
}

// TrackSearch records one executed search: a usage bump per applied filter
// value and a redis counter for the term. Synchronous; callers that must not
// block run it in a goroutine with a detached context.
func (s *AnalyticsService) TrackSearch(ctx context.Context, session Session, term string, applied map[string][]string) {
	for _, values := range applied {
		for _, v := range values {
			id := util.Slugify(v)
			if id == "" {
				continue
			}
			if err := s.filters.IncrementUsage(ctx, id); err != nil {
				log.Printf("analytics: session %s: increment %s: %v", session.ID, id, err)
			}
		}
	}

	term = strings.ToLower(strings.TrimSpace(term))
	if term == "" || s.rdb == nil {
		return
	}
	if err := s.rdb.Incr(ctx, termKeyPrefix+term).Err(); err != nil {
		log.Printf("analytics: session %s: count term %q: %v", session.ID, term, err)
	}
}

// TopSearchTerms returns the most-searched terms from the flushed table.
// Counters still sitting in redis are not included until the next flush.
func (s *AnalyticsService) TopSearchTerms(ctx context.Context, limit int) ([]model.SearchTerm, error) {
	return s.terms.Top(ctx, limit)
}

// Flush drains the redis term counters into the search_terms table. Called
// periodically by the scheduler.
func (s *AnalyticsService) Flush(ctx context.Context) error {
	if s.rdb == nil {
		return nil
	}
	iter := s.rdb.Scan(ctx, 0, termKeyPrefix+"*", 100).Iterator()
	for iter.Next(ctx) {
		key := iter.Val()
		raw, err := s.rdb.GetDel(ctx, key).Result()
		if err != nil {
			if err != redis.Nil {
				log.Printf("analytics: flush %s: %v", key, err)
			}
			continue
		}
		count, err := strconv.ParseInt(raw, 10, 64)
		if err != nil || count == 0 {
			continue
		}
		term := strings.TrimPrefix(key, termKeyPrefix)
		if err := s.terms.Add(ctx, term, count); err != nil {
			log.Printf("analytics: flush %s: %v", key, err)
		}
	}
	return iter.Err()
}
