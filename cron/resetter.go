package cron

import (
	"context"
	"errors"
	"sync/atomic"
	"time"

	"go.uber.org/zap"
)

// ResetState is the lifecycle of the daily purge.
type ResetState int32

const (
	StateArmed ResetState = iota
	StateFiring
)

func (s ResetState) String() string {
	if s == StateFiring {
		return "firing"
	}
	return "armed"
}

// Purger is the part of the availability engine the resetter drives.
// Reset clears the current day, ResetClosingDay the day a midnight
// firing is ending.
type Purger interface {
	Reset(ctx context.Context) (int64, error)
	ResetClosingDay(ctx context.Context) (int64, error)
}

// ErrResetInProgress is returned by Run while another purge is firing.
var ErrResetInProgress = errors.New("daily reset already running")

// Resetter runs one purge per firing. Failures are logged, never retried.
type Resetter struct {
	purger  Purger
	logger  *zap.Logger
	timeout time.Duration
	state   atomic.Int32
}

func NewResetter(purger Purger, logger *zap.Logger) *Resetter {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Resetter{purger: purger, logger: logger, timeout: time.Minute}
}

func (r *Resetter) State() ResetState {
	return ResetState(r.state.Load())
}

// Run purges today's bookings once and reports how many were removed.
func (r *Resetter) Run(ctx context.Context) (int64, error) {
	return r.run(ctx, r.purger.Reset)
}

func (r *Resetter) run(ctx context.Context, purge func(context.Context) (int64, error)) (int64, error) {
	if !r.state.CompareAndSwap(int32(StateArmed), int32(StateFiring)) {
		return 0, ErrResetInProgress
	}
	defer r.state.Store(int32(StateArmed))

	ctx, cancel := context.WithTimeout(ctx, r.timeout)
	defer cancel()
	return purge(ctx)
}

// Fire is the scheduled entry point and purges the closing day. It
// reports whether a purge ran; a firing that overlaps one still in
// progress is skipped.
func (r *Resetter) Fire(ctx context.Context) bool {
	n, err := r.run(ctx, r.purger.ResetClosingDay)
	switch {
	case errors.Is(err, ErrResetInProgress):
		r.logger.Warn("daily reset already running, skipping")
		return false
	case err != nil:
		r.logger.Error("daily reset failed", zap.Error(err))
	default:
		r.logger.Info("daily reset done", zap.Int64("removed", n))
	}
	return true
}
