// Package scheduler runs the daily prediction and grading jobs on cron
// schedules.
package scheduler

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/robfig/cron/v3"
	"github.com/sirupsen/logrus"
	"github.com/yourusername/courtline/internal/service"
)

// jobTimeout bounds a single scheduled run. A full slate with cold caches
// takes a few minutes; anything past this is stuck.
const jobTimeout = 30 * time.Minute

// Scheduler manages the recurring analysis and grading jobs
type Scheduler struct {
	cron      *cron.Cron
	analyzer  *service.AnalyzerService
	results   *service.ResultsService
	log       *logrus.Entry
	mu        sync.RWMutex
	isRunning bool
	jobIDs    []cron.EntryID
	// Prediction schedules run against the Eastern-time slate date.
	location *time.Location
}

// NewScheduler creates a new scheduler
func NewScheduler(analyzer *service.AnalyzerService, results *service.ResultsService, baseLogger *logrus.Logger) *Scheduler {
	loc, err := time.LoadLocation("America/New_York")
	if err != nil {
		loc = time.UTC
	}

	return &Scheduler{
		cron:     cron.New(cron.WithLocation(loc)),
		analyzer: analyzer,
		results:  results,
		log:      baseLogger.WithField("component", "scheduler"),
		location: loc,
	}
}

// SchedulePredictions schedules the daily analysis run for today's slate
func (s *Scheduler) SchedulePredictions(cronExpression string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.isRunning {
		return fmt.Errorf("cannot schedule job while scheduler is running")
	}

	jobFunc := func() {
		ctx, cancel := context.WithTimeout(context.Background(), jobTimeout)
		defer cancel()

		date := time.Now().In(s.location).Format("2006-01-02")
		s.log.WithField("date", date).Info("starting scheduled analysis run")

		summary, err := s.analyzer.AnalyzeDate(ctx, date, false)
		if err != nil {
			s.log.WithError(err).Error("scheduled analysis run failed")
			return
		}
		s.log.WithFields(logrus.Fields{
			"date":      date,
			"games":     summary.Games,
			"saved":     summary.Saved,
			"best_bets": len(summary.BestBets),
		}).Info("scheduled analysis run complete")
	}

	entryID, err := s.cron.AddFunc(cronExpression, jobFunc)
	if err != nil {
		return fmt.Errorf("failed to add predictions job: %w", err)
	}

	s.jobIDs = append(s.jobIDs, entryID)
	s.log.WithField("cron", cronExpression).Info("scheduled predictions job")

	return nil
}

// ScheduleResults schedules the grading run. It grades both today's and
// yesterday's slates so late-night finals are not missed.
func (s *Scheduler) ScheduleResults(cronExpression string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.isRunning {
		return fmt.Errorf("cannot schedule job while scheduler is running")
	}

	jobFunc := func() {
		ctx, cancel := context.WithTimeout(context.Background(), jobTimeout)
		defer cancel()

		now := time.Now().In(s.location)
		for _, date := range []string{
			now.AddDate(0, 0, -1).Format("2006-01-02"),
			now.Format("2006-01-02"),
		} {
			summary, err := s.results.UpdateResults(ctx, date)
			if err != nil {
				s.log.WithError(err).WithField("date", date).Error("scheduled grading run failed")
				continue
			}
			if summary.Graded > 0 {
				s.log.WithFields(logrus.Fields{
					"date":   date,
					"graded": summary.Graded,
					"wins":   summary.Wins,
					"losses": summary.Losses,
				}).Info("scheduled grading run complete")
			}
		}
	}

	entryID, err := s.cron.AddFunc(cronExpression, jobFunc)
	if err != nil {
		return fmt.Errorf("failed to add results job: %w", err)
	}

	s.jobIDs = append(s.jobIDs, entryID)
	s.log.WithField("cron", cronExpression).Info("scheduled results job")

	return nil
}

// Start starts the scheduler
func (s *Scheduler) Start() error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.isRunning {
		return fmt.Errorf("scheduler is already running")
	}
	if len(s.jobIDs) == 0 {
		return fmt.Errorf("no jobs scheduled")
	}

	s.cron.Start()
	s.isRunning = true
	s.log.WithField("jobs", len(s.jobIDs)).Info("scheduler started")

	return nil
}

// Stop gracefully stops the scheduler, waiting for running jobs to finish
func (s *Scheduler) Stop() {
	s.mu.Lock()
	defer s.mu.Unlock()

	if !s.isRunning {
		return
	}

	<-s.cron.Stop().Done()
	s.isRunning = false
	s.log.Info("scheduler stopped")
}

// IsRunning returns whether the scheduler is currently running
func (s *Scheduler) IsRunning() bool {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.isRunning
}

// NextRun returns the time of the next scheduled job run
func (s *Scheduler) NextRun() time.Time {
	s.mu.RLock()
	defer s.mu.RUnlock()

	if !s.isRunning {
		return time.Time{}
	}

	var next time.Time
	for _, jobID := range s.jobIDs {
		entry := s.cron.Entry(jobID)
		if entry.Valid() && (next.IsZero() || entry.Next.Before(next)) {
			next = entry.Next
		}
	}
	return next
}
