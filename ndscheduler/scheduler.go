// Package ndscheduler implements the bounded worker pool and scope
// primitive the load engine submits row/plane tasks to: a scope that
// callers can submit arbitrary closures to, with bounded concurrency and
// first-failure capture, rather than a pool restricted to range-chunking
// callbacks.
package ndscheduler

import (
	"runtime"
	"sync"
	"sync/atomic"

	"github.com/google/uuid"
	"github.com/itohio/ndload/pkg/logger"
	"github.com/pkg/errors"
	"github.com/rs/zerolog"
)

var schedulerLog = logger.Component("ndscheduler")

// WorkerID names a worker slot a Parallel ComputeMode is pinned to. The
// scheduler does not currently pin goroutines to specific OS threads or
// affinities by WorkerID value; only the list's length is read, to size
// the pool, and the values themselves are not used or logged.
type WorkerID int

// ErrSchedulerClosed is returned by ScheduleWork once a scope has recorded
// a task failure and stopped accepting new dispatches.
var ErrSchedulerClosed = errors.New("ndscheduler: scope closed after failure")

// State is the scheduler scope's lifecycle:
// Idle -> Running(pending>0) -> Draining -> Done | Failed(e).
type State int32

const (
	StateIdle State = iota
	StateRunning
	StateDraining
	StateDone
	StateFailed
)

func (s State) String() string {
	switch s {
	case StateIdle:
		return "idle"
	case StateRunning:
		return "running"
	case StateDraining:
		return "draining"
	case StateDone:
		return "done"
	case StateFailed:
		return "failed"
	default:
		return "unknown"
	}
}

// Scheduler is one scope's worker pool: a bounded concurrency limiter plus
// a pending-task counter and a first-failure cell. A Scheduler must only be
// used from within the WithScheduler call that created it.
type Scheduler struct {
	id      uuid.UUID
	workers int
	sem     chan struct{}
	wg      sync.WaitGroup
	state   atomic.Int32

	mu  sync.Mutex
	err error

	log zerolog.Logger
}

// ID returns the scope's correlation identifier, used only for logging.
func (s *Scheduler) ID() uuid.UUID { return s.id }

// NumWorkers returns the scope's pool size, used by the loader to size
// chunks.
func (s *Scheduler) NumWorkers() int { return s.workers }

// State returns the scope's current lifecycle state.
func (s *Scheduler) State() State { return State(s.state.Load()) }

func normalizeWorkerCount(workerIDs []WorkerID) int {
	n := len(workerIDs)
	if n == 0 {
		n = runtime.GOMAXPROCS(0)
	}
	if n < 1 {
		n = 1
	}
	return n
}

func newScheduler(workerIDs []WorkerID) *Scheduler {
	n := normalizeWorkerCount(workerIDs)
	s := &Scheduler{
		id:      uuid.New(),
		workers: n,
		sem:     make(chan struct{}, n),
	}
	s.log = schedulerLog.With().Str("scope", s.id.String()).Int("workers", n).Logger()
	s.state.Store(int32(StateIdle))
	return s
}

// ScheduleWork submits task to the scope's worker pool. Tasks run on a
// worker, never on the caller. ScheduleWork does not block: each task
// waits for a free worker slot in its own goroutine. Submission from
// inside a running task targeting the same Scheduler is permitted (the
// pending count it adds is joined like any other). Once a failure has been
// recorded, ScheduleWork is a no-op that
// returns ErrSchedulerClosed — no new tasks are dispatched once a failure
// is recorded.
func (s *Scheduler) ScheduleWork(task func() error) error {
	if s.hasFailed() {
		return ErrSchedulerClosed
	}
	s.state.CompareAndSwap(int32(StateIdle), int32(StateRunning))
	s.wg.Add(1)
	go func() {
		defer s.wg.Done()
		s.sem <- struct{}{}
		defer func() { <-s.sem }()
		if s.hasFailed() {
			return
		}
		if err := task(); err != nil {
			s.recordFailure(err)
		}
	}()
	return nil
}

func (s *Scheduler) hasFailed() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.err != nil
}

func (s *Scheduler) recordFailure(err error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.err == nil {
		s.err = err
		s.log.Error().Err(err).Msg("task failed, scope will not dispatch further work")
	}
}

// Err returns the first failure recorded by any task in this scope, or nil.
func (s *Scheduler) Err() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.err
}

func (s *Scheduler) drain() error {
	s.state.Store(int32(StateDraining))
	s.wg.Wait()
	err := s.Err()
	if err != nil {
		s.state.Store(int32(StateFailed))
	} else {
		s.state.Store(int32(StateDone))
	}
	return err
}

// WithScheduler creates a fresh scope whose worker pool has
// max(1, len(workerIDs)) workers — an empty workerIDs means "use all
// available cores". scopeBody may call ScheduleWork any
// number of times; once scopeBody returns, WithScheduler blocks until every
// submitted task has settled, then returns scopeBody's result alongside
// either scopeBody's own error or — taking priority, since it reflects
// data processed rather than a setup-time failure — the first task failure
// observed.
func WithScheduler[T any](workerIDs []WorkerID, scopeBody func(s *Scheduler) (T, error)) (T, error) {
	s := newScheduler(workerIDs)
	s.log.Debug().Msg("scheduler scope starting")

	result, bodyErr := scopeBody(s)

	if taskErr := s.drain(); taskErr != nil {
		s.log.Error().Err(taskErr).Msg("scheduler scope failed")
		return result, errors.Wrap(taskErr, "ndscheduler: task failure")
	}
	s.log.Debug().Msg("scheduler scope done")
	if bodyErr != nil {
		return result, bodyErr
	}
	return result, nil
}
