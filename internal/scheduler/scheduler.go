// Package scheduler runs the periodic Torn API refresh jobs.
package scheduler

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/robfig/cron/v3"
	"github.com/sirupsen/logrus"

	"github.com/ndewijer/Item-Trade-Tracker-Backend/internal/apperrors"
	"github.com/ndewijer/Item-Trade-Tracker-Backend/internal/config"
	"github.com/ndewijer/Item-Trade-Tracker-Backend/internal/model"
)

// Syncer is a refresh job: the trade log and item services both satisfy it.
type Syncer interface {
	Sync(ctx context.Context) (model.SyncResult, error)
}

// jobTimeout bounds a single run so a hung request cannot block later runs forever.
const jobTimeout = 5 * time.Minute

// Scheduler runs the log and item syncs on cron schedules evaluated in UTC.
type Scheduler struct {
	cron   *cron.Cron
	logger logrus.FieldLogger
	ctx    context.Context
	cancel context.CancelFunc
}

// New registers the log and item sync jobs. Runs that would overlap a still running
// run of the same job are skipped.
func New(cfg config.SyncConfig, logs, items Syncer, logger logrus.FieldLogger) (*Scheduler, error) {
	cronLogger := cron.PrintfLogger(logger)
	c := cron.New(
		cron.WithLocation(time.UTC),
		cron.WithLogger(cronLogger),
		cron.WithChain(cron.Recover(cronLogger), cron.SkipIfStillRunning(cronLogger)),
	)

	ctx, cancel := context.WithCancel(context.Background())
	s := &Scheduler{
		cron:   c,
		logger: logger,
		ctx:    ctx,
		cancel: cancel,
	}

	if _, err := c.AddFunc(cfg.LogSchedule, s.job("logs", logs)); err != nil {
		cancel()
		return nil, fmt.Errorf("invalid log sync schedule %q: %w", cfg.LogSchedule, err)
	}
	if _, err := c.AddFunc(cfg.ItemSchedule, s.job("items", items)); err != nil {
		cancel()
		return nil, fmt.Errorf("invalid item sync schedule %q: %w", cfg.ItemSchedule, err)
	}

	return s, nil
}

func (s *Scheduler) job(name string, syncer Syncer) func() {
	return func() {
		ctx, cancel := context.WithTimeout(s.ctx, jobTimeout)
		defer cancel()

		log := s.logger.WithField("job", name)
		result, err := syncer.Sync(ctx)
		switch {
		case errors.Is(err, apperrors.ErrSyncInProgress):
			log.Debug("sync already running, skipped")
		case err != nil:
			log.WithError(err).Error("scheduled sync failed")
		default:
			log.WithFields(logrus.Fields{
				"fetched": result.Fetched,
				"stored":  result.Stored,
			}).Debug("scheduled sync finished")
		}
	}
}

// Start starts the scheduler in its own goroutine.
func (s *Scheduler) Start() {
	s.cron.Start()
}

// Stop cancels running jobs and waits for them to return or for ctx to expire.
func (s *Scheduler) Stop(ctx context.Context) error {
	s.cancel()
	done := s.cron.Stop()
	select {
	case <-done.Done():
		return nil
	case <-ctx.Done():
		return ctx.Err()
	}
}

// Entries returns the number of registered jobs.
func (s *Scheduler) Entries() int {
	return len(s.cron.Entries())
}
