package jobs_test

import (
	"context"
	"errors"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"routekeeper/internal/core/application/store"
	"routekeeper/internal/core/application/usecases/commands"
	"routekeeper/internal/jobs"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

// countingOptimizer counts passes and can block until released.
type countingOptimizer struct {
	calls   atomic.Int32
	release chan struct{}
	started chan struct{}
	once    sync.Once
}

func (o *countingOptimizer) Handle(_ context.Context, _ commands.OptimizeRouteCommand) (commands.OptimizeRouteResult, error) {
	o.calls.Add(1)
	if o.started != nil {
		o.once.Do(func() { close(o.started) })
	}
	if o.release != nil {
		<-o.release
	}
	return commands.OptimizeRouteResult{Applied: true}, nil
}

type MockPruneHandler struct {
	mock.Mock
}

func (m *MockPruneHandler) Handle(ctx context.Context, cmd commands.PruneRouteCommand) (store.Snapshot, int, error) {
	args := m.Called(ctx, cmd)
	return args.Get(0).(store.Snapshot), args.Int(1), args.Error(2)
}

func TestOptimizationScheduler(t *testing.T) {
	t.Run("burst_of_schedules_runs_once", func(t *testing.T) {
		optimizer := &countingOptimizer{}
		s := jobs.NewOptimizationScheduler(optimizer, 30*time.Millisecond, nil)
		defer s.Stop()

		for range 5 {
			s.Schedule()
			time.Sleep(5 * time.Millisecond)
		}

		assert.Eventually(t, func() bool { return optimizer.calls.Load() == 1 }, time.Second, 5*time.Millisecond)
		time.Sleep(60 * time.Millisecond)
		assert.EqualValues(t, 1, optimizer.calls.Load())
	})

	t.Run("stop_cancels_pending_pass", func(t *testing.T) {
		optimizer := &countingOptimizer{}
		s := jobs.NewOptimizationScheduler(optimizer, 30*time.Millisecond, nil)

		s.Schedule()
		s.Stop()
		time.Sleep(60 * time.Millisecond)
		s.Schedule()
		time.Sleep(60 * time.Millisecond)

		assert.EqualValues(t, 0, optimizer.calls.Load())
	})

	t.Run("schedule_during_pass_runs_trailing_pass", func(t *testing.T) {
		optimizer := &countingOptimizer{release: make(chan struct{}), started: make(chan struct{})}
		s := jobs.NewOptimizationScheduler(optimizer, 10*time.Millisecond, nil)
		defer s.Stop()

		s.Schedule()
		<-optimizer.started
		s.Schedule()
		time.Sleep(40 * time.Millisecond)
		assert.EqualValues(t, 1, optimizer.calls.Load(), "passes must not overlap")

		close(optimizer.release)

		assert.Eventually(t, func() bool { return optimizer.calls.Load() == 2 }, time.Second, 5*time.Millisecond)
	})
}

func TestRetentionJob(t *testing.T) {
	t.Run("run_once_prunes", func(t *testing.T) {
		handler := &MockPruneHandler{}
		handler.On("Handle", mock.Anything, mock.AnythingOfType("commands.PruneRouteCommand")).
			Return(store.Snapshot{}, 2, nil).Once()
		job := jobs.NewRetentionJob(handler, "", nil)

		assert.Equal(t, 2, job.RunOnce(t.Context()))
		handler.AssertExpectations(t)
	})

	t.Run("run_once_survives_failure", func(t *testing.T) {
		handler := &MockPruneHandler{}
		handler.On("Handle", mock.Anything, mock.Anything).
			Return(store.Snapshot{}, 1, errors.New("disk full")).Once()
		job := jobs.NewRetentionJob(handler, "", nil)

		assert.Equal(t, 1, job.RunOnce(t.Context()))
		handler.AssertExpectations(t)
	})

	t.Run("invalid_schedule_fails_start", func(t *testing.T) {
		job := jobs.NewRetentionJob(&MockPruneHandler{}, "every now and then", nil)

		require.Error(t, job.Start())
	})

	t.Run("manager_starts_and_stops", func(t *testing.T) {
		scheduler := jobs.NewOptimizationScheduler(&countingOptimizer{}, time.Hour, nil)
		jm := jobs.NewJobManager(jobs.NewRetentionJob(&MockPruneHandler{}, "@every 1h", nil), scheduler)

		require.NoError(t, jm.StartAll())
		scheduler.Schedule()
		jm.StopAll()
	})
}
