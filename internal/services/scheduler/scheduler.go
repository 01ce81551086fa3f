// Package scheduler runs the price refresh pipeline on a fixed interval as
// a supervised background goroutine with an explicit start/stop lifecycle.
package scheduler

import (
	"context"
	"log/slog"
	"sync"
	"time"
)

// Refresher is the pipeline invoked on every tick.
type Refresher interface {
	Refresh(ctx context.Context) error
}

// DefaultInterval between refresh cycles.
const DefaultInterval = 5 * time.Minute

// Scheduler owns the periodic refresh loop. A tick that fails (or panics)
// is logged and swallowed; the loop always continues to the next interval.
// Manual refreshes through the HTTP surface run the same pipeline
// concurrently; the store's idempotent upsert makes that race harmless.
type Scheduler struct {
	refresher Refresher
	interval  time.Duration

	startOnce sync.Once
	stopOnce  sync.Once
	done      chan struct{}
	wg        sync.WaitGroup
}

func New(refresher Refresher, interval time.Duration) *Scheduler {
	if interval <= 0 {
		interval = DefaultInterval
	}
	return &Scheduler{
		refresher: refresher,
		interval:  interval,
		done:      make(chan struct{}),
	}
}

// Start launches the background loop. Safe to call once; subsequent calls
// are no-ops.
func (s *Scheduler) Start() {
	s.startOnce.Do(func() {
		s.wg.Add(1)
		go s.run()
		slog.Info("price refresh scheduler started", "interval", s.interval.String())
	})
}

// Stop terminates the loop and waits for an in-flight tick to finish.
func (s *Scheduler) Stop() {
	s.stopOnce.Do(func() {
		close(s.done)
		s.wg.Wait()
		slog.Info("price refresh scheduler stopped")
	})
}

func (s *Scheduler) run() {
	defer s.wg.Done()

	ticker := time.NewTicker(s.interval)
	defer ticker.Stop()

	for {
		select {
		case <-s.done:
			return
		case <-ticker.C:
			s.tick()
		}
	}
}

func (s *Scheduler) tick() {
	defer func() {
		if r := recover(); r != nil {
			slog.Error("price refresh tick panicked", "panic", r)
		}
	}()

	ctx, cancel := context.WithTimeout(context.Background(), s.interval)
	defer cancel()

	if err := s.refresher.Refresh(ctx); err != nil {
		slog.Error("scheduled price refresh failed", "error", err)
	}
}
