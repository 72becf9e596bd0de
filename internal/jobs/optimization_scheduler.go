package jobs

import (
	"context"
	"log/slog"
	"sync"
	"time"

	"routekeeper/internal/core/application/usecases/commands"

	"golang.org/x/sync/singleflight"
)

const (
	// DefaultOptimizationDelay is the quiet period after the last Schedule
	// before a pass starts.
	DefaultOptimizationDelay = 800 * time.Millisecond

	optimizationTimeout = 60 * time.Second
)

// OptimizationScheduler debounces optimization requests. Each Schedule
// restarts the delay; when it elapses one pass runs. Passes never overlap:
// a timer that fires while a pass is in flight joins it and schedules a
// trailing pass so late additions are not left out.
type OptimizationScheduler struct {
	handler OptimizeRouteHandler
	delay   time.Duration
	group   singleflight.Group
	logger  *slog.Logger

	mu      sync.Mutex
	timer   *time.Timer
	stopped bool
	running sync.WaitGroup
}

// NewOptimizationScheduler uses DefaultOptimizationDelay when delay is not positive.
func NewOptimizationScheduler(handler OptimizeRouteHandler, delay time.Duration, logger *slog.Logger) *OptimizationScheduler {
	if delay <= 0 {
		delay = DefaultOptimizationDelay
	}
	if logger == nil {
		logger = slog.Default()
	}
	return &OptimizationScheduler{
		handler: handler,
		delay:   delay,
		logger:  logger.With("component", "optimization_scheduler"),
	}
}

// Schedule (re)starts the debounce timer. It is a no-op after Stop.
func (s *OptimizationScheduler) Schedule() {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.stopped {
		return
	}
	if s.timer != nil {
		s.timer.Stop()
	}
	s.timer = time.AfterFunc(s.delay, s.fire)
}

// Stop cancels a pending timer and waits for an in-flight pass to finish.
func (s *OptimizationScheduler) Stop() {
	s.mu.Lock()
	s.stopped = true
	if s.timer != nil {
		s.timer.Stop()
	}
	s.mu.Unlock()

	s.running.Wait()
	s.logger.InfoContext(context.Background(), "Optimization scheduler stopped")
}

func (s *OptimizationScheduler) fire() {
	s.mu.Lock()
	if s.stopped {
		s.mu.Unlock()
		return
	}
	s.running.Add(1)
	s.mu.Unlock()
	defer s.running.Done()

	executed := false
	_, _, _ = s.group.Do("optimize", func() (any, error) {
		executed = true
		s.run()
		return nil, nil
	})

	if !executed {
		s.Schedule()
	}
}

func (s *OptimizationScheduler) run() {
	ctx, cancel := context.WithTimeout(context.Background(), optimizationTimeout)
	defer cancel()

	result, err := s.handler.Handle(ctx, commands.NewOptimizeRouteCommand())
	if err != nil {
		s.logger.ErrorContext(ctx, "Optimization pass failed", "error", err)
		return
	}
	s.logger.DebugContext(ctx, "Optimization pass finished",
		"applied", result.Applied,
		"generation", result.Snapshot.Generation,
	)
}
