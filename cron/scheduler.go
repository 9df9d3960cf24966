package cron

import (
	"context"
	"fmt"
	"time"

	robfig "github.com/robfig/cron/v3"
	"go.uber.org/zap"
)

// Scheduler arms the resetter on a cron schedule until stopped.
type Scheduler interface {
	Start() error
	Stop()
}

// CronScheduler fires the resetter in process with robfig/cron.
type CronScheduler struct {
	c        *robfig.Cron
	resetter *Resetter
	spec     string
	logger   *zap.Logger
}

func NewCronScheduler(resetter *Resetter, spec string, logger *zap.Logger) *CronScheduler {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &CronScheduler{
		c:        robfig.New(robfig.WithLocation(time.Local)),
		resetter: resetter,
		spec:     spec,
		logger:   logger,
	}
}

func (s *CronScheduler) Start() error {
	if _, err := s.c.AddFunc(s.spec, func() {
		s.resetter.Fire(context.Background())
	}); err != nil {
		return fmt.Errorf("invalid reset schedule %q: %w", s.spec, err)
	}
	s.c.Start()
	s.logger.Info("daily reset armed", zap.String("schedule", s.spec))
	return nil
}

// Stop waits for a running purge to finish.
func (s *CronScheduler) Stop() {
	<-s.c.Stop().Done()
}

// Next returns the upcoming firing time, zero if not started.
func (s *CronScheduler) Next() time.Time {
	entries := s.c.Entries()
	if len(entries) == 0 {
		return time.Time{}
	}
	return entries[0].Next
}
