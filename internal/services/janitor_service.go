package services

import (
	"fmt"
	"time"

	"github.com/robfig/cron/v3"
	"github.com/sirupsen/logrus"
)

// JanitorService runs the scheduled background jobs that keep the in-memory
// working set bounded. Draft layouts live in memory until saved; editors
// that abandon a draft would otherwise pin it forever.
type JanitorService struct {
	cron     *cron.Cron
	layouts  *LayoutService
	logger   *logrus.Logger
	draftTTL time.Duration
}

// NewJanitorService creates the janitor. draftTTL is how long an untouched
// draft survives before eviction.
func NewJanitorService(layouts *LayoutService, logger *logrus.Logger, draftTTL time.Duration) *JanitorService {
	return &JanitorService{
		cron:     cron.New(),
		layouts:  layouts,
		logger:   logger,
		draftTTL: draftTTL,
	}
}

// Start schedules the jobs and starts the scheduler
func (s *JanitorService) Start() error {
	_, err := s.cron.AddFunc("@every 1h", s.evictStaleDraftsJob)
	if err != nil {
		return fmt.Errorf("failed to schedule draft eviction job: %w", err)
	}

	s.cron.Start()
	s.logger.Infof("Janitor started, draft TTL %s", s.draftTTL)
	return nil
}

// Stop stops the scheduler and waits for a running job to finish
func (s *JanitorService) Stop() {
	ctx := s.cron.Stop()
	<-ctx.Done()
	s.logger.Info("Janitor stopped")
}

func (s *JanitorService) evictStaleDraftsJob() {
	start := time.Now()
	evicted := s.layouts.EvictStaleDrafts(s.draftTTL)
	if evicted > 0 {
		s.logger.WithFields(logrus.Fields{
			"evicted":     evicted,
			"duration_ms": time.Since(start).Milliseconds(),
		}).Info("Evicted stale draft layouts")
	}
}

// RunEvictionNow runs the eviction job immediately
func (s *JanitorService) RunEvictionNow() {
	s.evictStaleDraftsJob()
}

// JobStatus reports the scheduled jobs and their next run times
func (s *JanitorService) JobStatus() map[string]interface{} {
	entries := s.cron.Entries()

	jobs := make([]map[string]interface{}, 0, len(entries))
	for _, entry := range entries {
		jobs = append(jobs, map[string]interface{}{
			"id":       entry.ID,
			"next_run": entry.Next,
			"prev_run": entry.Prev,
		})
	}

	return map[string]interface{}{
		"running":   len(entries) > 0,
		"job_count": len(entries),
		"jobs":      jobs,
	}
}
