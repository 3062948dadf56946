package acquirer

import (
	"context"
	"time"

	"github.com/robfig/cron/v3"
	"github.com/ternarybob/arbor"
)

// Scheduler handles periodic directive re-acquisition
type Scheduler struct {
	service *Service
	cron    *cron.Cron
	logger  arbor.ILogger
}

// NewScheduler creates a new acquisition scheduler
func NewScheduler(service *Service, logger arbor.ILogger) *Scheduler {
	return &Scheduler{
		service: service,
		cron:    cron.New(cron.WithSeconds()),
		logger:  logger,
	}
}

// Start begins the scheduled re-acquisition
func (s *Scheduler) Start(schedule string) error {
	if schedule == "" {
		// Default: daily at 03:00
		schedule = "0 0 3 * * *"
	}

	_, err := s.cron.AddFunc(schedule, func() {
		s.runAcquisition()
	})
	if err != nil {
		return err
	}

	s.cron.Start()
	s.logger.Info().
		Str("schedule", schedule).
		Msg("Directive acquisition scheduler started")

	return nil
}

// Stop stops the scheduler
func (s *Scheduler) Stop() {
	s.cron.Stop()
	s.logger.Info().Msg("Directive acquisition scheduler stopped")
}

// RunNow triggers an immediate acquisition run
func (s *Scheduler) RunNow() {
	s.logger.Info().Msg("Triggering immediate acquisition run")
	go s.runAcquisition()
}

func (s *Scheduler) runAcquisition() {
	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Hour)
	defer cancel()

	s.logger.Info().Msg("Starting scheduled acquisition")

	results, err := s.service.AcquireAll(ctx)
	if err != nil {
		s.logger.Error().
			Err(err).
			Msg("Scheduled acquisition failed")
		return
	}

	var downloaded, skipped int
	for _, r := range results {
		downloaded += r.Downloaded
		skipped += r.Skipped
	}

	s.logger.Info().
		Int("series", len(results)).
		Int("downloaded", downloaded).
		Int("skipped", skipped).
		Msg("Scheduled acquisition completed")
}
