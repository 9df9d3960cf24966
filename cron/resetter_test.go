package cron

import (
	"context"
	"errors"
	"testing"
	"time"

	"roombook/models"
	"roombook/services/tasks"
)

type fakePurger struct {
	calls   int
	closing int
	err     error
	block   chan struct{}
	started chan struct{}
}

func (f *fakePurger) ResetClosingDay(ctx context.Context) (int64, error) {
	f.closing++
	return f.Reset(ctx)
}

func (f *fakePurger) Reset(ctx context.Context) (int64, error) {
	f.calls++
	if f.started != nil {
		close(f.started)
	}
	if f.block != nil {
		<-f.block
	}
	return 3, f.err
}

func TestResetterReturnsToArmed(t *testing.T) {
	for _, failure := range []error{nil, errors.New("store down")} {
		p := &fakePurger{err: failure}
		r := NewResetter(p, nil)
		if !r.Fire(context.Background()) {
			t.Fatal("fire skipped")
		}
		if r.State() != StateArmed {
			t.Fatalf("state = %s after fire (err=%v)", r.State(), failure)
		}
		if p.calls != 1 {
			t.Fatalf("purge ran %d times, want exactly once", p.calls)
		}
	}
}

func TestResetterSkipsOverlappingFire(t *testing.T) {
	p := &fakePurger{block: make(chan struct{}), started: make(chan struct{})}
	r := NewResetter(p, nil)

	done := make(chan bool)
	go func() { done <- r.Fire(context.Background()) }()
	<-p.started
	if r.State() != StateFiring {
		t.Fatalf("state = %s while purging", r.State())
	}
	if r.Fire(context.Background()) {
		t.Fatal("second fire should be skipped")
	}
	close(p.block)
	if !<-done {
		t.Fatal("first fire reported skipped")
	}
	if p.calls != 1 {
		t.Fatalf("purge ran %d times", p.calls)
	}
}

func TestCronSchedulerRejectsBadSpec(t *testing.T) {
	s := NewCronScheduler(NewResetter(&fakePurger{}, nil), "not a schedule", nil)
	if err := s.Start(); err == nil {
		s.Stop()
		t.Fatal("expected error")
	}
}

func TestCronSchedulerArmsMidnight(t *testing.T) {
	s := NewCronScheduler(NewResetter(&fakePurger{}, nil), "0 0 * * *", nil)
	if err := s.Start(); err != nil {
		t.Fatal(err)
	}
	defer s.Stop()
	next := s.Next()
	if next.Hour() != 0 || next.Minute() != 0 || !next.After(time.Now()) {
		t.Fatalf("next firing %v", next)
	}
}

func TestHandleResetTaskFires(t *testing.T) {
	p := &fakePurger{}
	task, _, err := tasks.NewResetTask(models.ResetPayload{Source: "admin"})
	if err != nil {
		t.Fatal(err)
	}
	if err := handleResetTask(NewResetter(p, nil), nil)(context.Background(), task); err != nil {
		t.Fatal(err)
	}
	if p.calls != 1 {
		t.Fatalf("purge ran %d times", p.calls)
	}
}

func TestResetterRunReportsCount(t *testing.T) {
	r := NewResetter(&fakePurger{}, nil)
	n, err := r.Run(context.Background())
	if err != nil || n != 3 {
		t.Fatalf("Run = %d, %v", n, err)
	}
}

func TestResetterFirePurgesClosingDay(t *testing.T) {
	p := &fakePurger{}
	r := NewResetter(p, nil)
	r.Fire(context.Background())
	if p.closing != 1 {
		t.Fatalf("scheduled fire purged the closing day %d times, want 1", p.closing)
	}
	if _, err := r.Run(context.Background()); err != nil {
		t.Fatal(err)
	}
	if p.closing != 1 || p.calls != 2 {
		t.Fatalf("manual run must purge the current day: closing=%d calls=%d", p.closing, p.calls)
	}
}
