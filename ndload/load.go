// Package ndload implements the sequential and parallel materialization of
// a windowed delayed array into a linear buffer. It is the leaf component
// of the module: ndindex supplies the index algebra, ndarray the data
// model, ndscheduler the worker pool, and ndload wires them into
// LoadSeq/LoadPar, rank-specialized, bottoming out at the rank-2
// UnrollAndJam kernel.
package ndload

import (
	"github.com/itohio/ndload/ndarray"
	"github.com/itohio/ndload/ndindex"
	"github.com/itohio/ndload/ndscheduler"
	"github.com/itohio/ndload/pkg/logger"
)

var loadLog = logger.Component("ndload")

// LoadSeq fills buffer[0, totalElem(wd.shape)) from wd by row-major linear
// index, running entirely on the calling goroutine. Every cell is written
// exactly once: border cells from wd.Base.At,
// interior cells (those inside [WinStart, WinStart+WinSize)) from wd.WinAt.
func LoadSeq[E any](wd ndarray.WindowedDelayedArray[E], buf LinearBuffer[E]) error {
	switch wd.Base.Shape.Rank() {
	case 0:
		return loadSeqRank0(wd, buf)
	case 1:
		return loadSeqRank1(wd, buf)
	case 2:
		return loadSeqRank2(wd, buf)
	default:
		return loadSeqRankN(wd, buf)
	}
}

func loadSeqRank0[E any](wd ndarray.WindowedDelayedArray[E], buf LinearBuffer[E]) error {
	if ndindex.TotalElem(wd.WinSize) > 0 {
		buf.Write(0, wd.WinAt(ndindex.Ix{}))
	} else {
		buf.Write(0, wd.Base.At(ndindex.Ix{}))
	}
	return nil
}

// LoadPar mirrors LoadSeq's decomposition but fans work out across a
// private scheduler scope it owns for the duration of the call. workerIDs
// is forwarded to ndscheduler.WithScheduler unchanged: an empty list means
// "use all available cores".
func LoadPar[E any](workerIDs []ndscheduler.WorkerID, wd ndarray.WindowedDelayedArray[E], buf LinearBuffer[E]) error {
	return LoadParWithOptions(wd, buf, WithWorkers(workerIDs...))
}

// LoadParWithOptions is LoadPar's functional-option form: opts composes
// worker selection, chunk sizing and an unroll-factor override (see
// WithWorkers, WithChunkSizer, WithUnrollHint) instead of a single bare
// worker-ID slice.
func LoadParWithOptions[E any](wd ndarray.WindowedDelayedArray[E], buf LinearBuffer[E], opts ...LoadOption) error {
	o := newLoadOptions(opts)
	rank := wd.Base.Shape.Rank()
	loadLog.Debug().Int("rank", rank).Int("workers", len(o.workers)).Msg("parallel load pool starting")
	_, err := ndscheduler.WithScopeOptions(func(s *ndscheduler.Scheduler) (struct{}, error) {
		return struct{}{}, loadParDispatch(s, wd, buf, o)
	}, ndscheduler.WithWorkers(o.workers...))
	if err != nil {
		loadLog.Error().Err(err).Int("rank", rank).Msg("parallel load pool failed")
		return err
	}
	loadLog.Debug().Int("rank", rank).Msg("parallel load pool done")
	return nil
}

// LoadParWithScheduler runs the parallel load against a scheduler scope the
// caller already owns, letting an upstream kernel share one scope across
// several loads or other scheduled work. Chunking and unroll hints use the
// package defaults; use LoadParWithSchedulerAndOptions to override them.
func LoadParWithScheduler[E any](s *ndscheduler.Scheduler, wd ndarray.WindowedDelayedArray[E], buf LinearBuffer[E]) error {
	return loadParDispatch(s, wd, buf, newLoadOptions(nil))
}

// LoadParWithSchedulerAndOptions is LoadParWithScheduler's functional-option
// form. Only the chunk-sizing and unroll-hint options are meaningful here;
// WithWorkers has no effect since the scope's pool size is already fixed by
// its owner.
func LoadParWithSchedulerAndOptions[E any](s *ndscheduler.Scheduler, wd ndarray.WindowedDelayedArray[E], buf LinearBuffer[E], opts ...LoadOption) error {
	return loadParDispatch(s, wd, buf, newLoadOptions(opts))
}

func loadParDispatch[E any](s *ndscheduler.Scheduler, wd ndarray.WindowedDelayedArray[E], buf LinearBuffer[E], o LoadOptions) error {
	switch wd.Base.Shape.Rank() {
	case 0:
		return loadSeqRank0(wd, buf)
	case 1:
		return loadParRank1(s, wd, buf, o)
	case 2:
		return loadParRank2(s, wd, buf, o)
	default:
		return loadParRankN(s, wd, buf)
	}
}
