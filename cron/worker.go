package cron

import (
	"context"
	"fmt"
	"time"

	"roombook/models"
	"roombook/services/tasks"

	"github.com/hibiken/asynq"
	"go.uber.org/zap"
)

// AsynqScheduler enqueues the reset task on schedule and runs the worker
// that consumes it. With several replicas only one purge runs per firing.
type AsynqScheduler struct {
	redisOpts asynq.RedisClientOpt
	spec      string
	resetter  *Resetter
	logger    *zap.Logger

	scheduler *asynq.Scheduler
	server    *asynq.Server
}

func NewAsynqScheduler(redisOpts asynq.RedisClientOpt, spec string, resetter *Resetter, logger *zap.Logger) *AsynqScheduler {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &AsynqScheduler{redisOpts: redisOpts, spec: spec, resetter: resetter, logger: logger}
}

func (s *AsynqScheduler) Start() error {
	task, opts, err := tasks.NewResetTask(models.ResetPayload{Source: "schedule"})
	if err != nil {
		return err
	}

	s.scheduler = asynq.NewScheduler(s.redisOpts, &asynq.SchedulerOpts{Location: time.Local})
	if _, err := s.scheduler.Register(s.spec, task, opts...); err != nil {
		return fmt.Errorf("invalid reset schedule %q: %w", s.spec, err)
	}

	s.server = asynq.NewServer(s.redisOpts, asynq.Config{
		Concurrency: 1,
		Queues:      map[string]int{"default": 1},
	})
	mux := asynq.NewServeMux()
	mux.HandleFunc(tasks.TypeBookingsReset, handleResetTask(s.resetter, s.logger))

	if err := s.server.Start(mux); err != nil {
		return fmt.Errorf("start reset worker: %w", err)
	}
	if err := s.scheduler.Start(); err != nil {
		s.server.Shutdown()
		return fmt.Errorf("start reset scheduler: %w", err)
	}
	s.logger.Info("daily reset armed on queue", zap.String("schedule", s.spec))
	return nil
}

func (s *AsynqScheduler) Stop() {
	if s.scheduler != nil {
		s.scheduler.Shutdown()
	}
	if s.server != nil {
		s.server.Shutdown()
	}
}

func handleResetTask(resetter *Resetter, logger *zap.Logger) asynq.HandlerFunc {
	if logger == nil {
		logger = zap.NewNop()
	}
	return func(ctx context.Context, task *asynq.Task) error {
		p, err := tasks.ParseResetPayload(task)
		if err != nil {
			logger.Error("invalid reset payload", zap.Error(err))
			return fmt.Errorf("decode payload: %v: %w", err, asynq.SkipRetry)
		}
		logger.Info("reset task received", zap.String("source", p.Source))
		resetter.Fire(ctx)
		return nil
	}
}
