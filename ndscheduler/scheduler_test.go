package ndscheduler

import (
	"errors"
	"runtime"
	"sync/atomic"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/sync/errgroup"
)

func TestWithSchedulerJoinsAllTasks(t *testing.T) {
	const n = 200
	var completed atomic.Int64

	_, err := WithScheduler(nil, func(s *Scheduler) (struct{}, error) {
		for i := 0; i < n; i++ {
			require.NoError(t, s.ScheduleWork(func() error {
				completed.Add(1)
				return nil
			}))
		}
		return struct{}{}, nil
	})

	require.NoError(t, err)
	assert.EqualValues(t, n, completed.Load())
}

func TestWithSchedulerEmptyWorkerIDsUsesAvailableCores(t *testing.T) {
	_, err := WithScheduler(nil, func(s *Scheduler) (struct{}, error) {
		assert.GreaterOrEqual(t, s.NumWorkers(), 1)
		return struct{}{}, nil
	})
	require.NoError(t, err)
}

func TestWithSchedulerExplicitWorkerCount(t *testing.T) {
	ids := []WorkerID{0, 1, 2}
	_, err := WithScheduler(ids, func(s *Scheduler) (struct{}, error) {
		assert.Equal(t, 3, s.NumWorkers())
		return struct{}{}, nil
	})
	require.NoError(t, err)
}

func TestWithSchedulerPropagatesFirstFailure(t *testing.T) {
	boom := errors.New("boom")
	var ran atomic.Int64

	_, err := WithScheduler([]WorkerID{0, 1}, func(s *Scheduler) (struct{}, error) {
		for i := 0; i < 20; i++ {
			i := i
			_ = s.ScheduleWork(func() error {
				ran.Add(1)
				if i == 5 {
					return boom
				}
				return nil
			})
		}
		return struct{}{}, nil
	})

	require.Error(t, err)
	assert.True(t, errors.Is(err, boom))
}

func TestScheduleWorkRefusesAfterFailure(t *testing.T) {
	boom := errors.New("boom")

	_, err := WithScheduler([]WorkerID{0}, func(s *Scheduler) (struct{}, error) {
		require.NoError(t, s.ScheduleWork(func() error { return boom }))
		// Give the single worker a chance to record the failure before we
		// try to submit more work.
		for s.Err() == nil {
			runtime.Gosched()
		}
		scheduleErr := s.ScheduleWork(func() error {
			t.Fatal("task dispatched after failure was recorded")
			return nil
		})
		assert.ErrorIs(t, scheduleErr, ErrSchedulerClosed)
		return struct{}{}, nil
	})
	require.ErrorIs(t, err, boom)
}

func TestSchedulerStateTransitions(t *testing.T) {
	var observed State
	_, err := WithScheduler(nil, func(s *Scheduler) (struct{}, error) {
		assert.NoError(t, s.ScheduleWork(func() error { return nil }))
		observed = s.State()
		return struct{}{}, nil
	})
	require.NoError(t, err)
	assert.Equal(t, StateRunning, observed)
}

func TestWithGroupFoldsSchedulerFailureIntoErrgroup(t *testing.T) {
	boom := errors.New("boom")
	var g errgroup.Group

	_, err := WithScheduler(nil, func(s *Scheduler) (struct{}, error) {
		s.WithGroup(&g)
		require.NoError(t, s.ScheduleWork(func() error { return boom }))
		return struct{}{}, nil
	})
	require.Error(t, err)

	assert.ErrorIs(t, g.Wait(), boom)
}
