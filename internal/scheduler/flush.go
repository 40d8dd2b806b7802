// Package scheduler wires up the cron job that periodically folds the redis
// analytics counters into Postgres.
package scheduler

import (
	"context"
	"log"
	"time"

	"github.com/jobdeck/api/internal/service"
	"github.com/robfig/cron/v3"
)

type Scheduler struct {
	cron      *cron.Cron
	analytics *service.AnalyticsService
	spec      string // cron spec, e.g. "@every 5m"
}

func New(analytics *service.AnalyticsService, spec string) *Scheduler {
	if spec == "" {
		spec = "@every 5m"
	}
	return &Scheduler{
		cron:      cron.New(),
		analytics: analytics,
		spec:      spec,
	}
}

// Start registers the flush job and starts the scheduler.
func (s *Scheduler) Start() error {
	_, err := s.cron.AddFunc(s.spec, func() {
		ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
		defer cancel()
		if err := s.analytics.Flush(ctx); err != nil {
			log.Printf("scheduler: flush analytics: %v", err)
		}
	})
	if err != nil {
		return err
	}
	s.cron.Start()
	return nil
}

// Stop halts the scheduler; running jobs finish.
func (s *Scheduler) Stop() {
	s.cron.Stop()
}
