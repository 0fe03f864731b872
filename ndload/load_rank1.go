package ndload

import (
	"github.com/itohio/ndload/ndarray"
	"github.com/itohio/ndload/ndindex"
	"github.com/itohio/ndload/nditer"
	"github.com/itohio/ndload/ndscheduler"
)

// writeRun1 fills buf[lo, hi) from at, reading the index as a rank-1 Ix.
func writeRun1[E any](lo, hi int, at func(ix ndindex.Ix) E, buf LinearBuffer[E]) error {
	return nditer.LoopM_(lo, nditer.Lt(hi), nditer.Asc, func(k int) error {
		buf.Write(k, at(ndindex.Ix1(k)))
		return nil
	})
}

// loadSeqRank1 fills buffer from a rank-1 WD in three contiguous runs:
// [0, winStart), [winStart, winEnd) and [winEnd, shape) — the first and
// third from base.At, the middle from WinAt.
func loadSeqRank1[E any](wd ndarray.WindowedDelayedArray[E], buf LinearBuffer[E]) error {
	shape := wd.Base.Shape[0]
	winStart := wd.WinStart[0]
	winEnd := winStart + wd.WinSize[0]

	if err := writeRun1(0, winStart, wd.Base.At, buf); err != nil {
		return err
	}
	if err := writeRun1(winStart, winEnd, wd.WinAt, buf); err != nil {
		return err
	}
	return writeRun1(winEnd, shape, wd.Base.At, buf)
}

// loadParRank1 mirrors loadSeqRank1's decomposition but submits each
// segment as a scheduler task. The window span is split by o's ChunkSizer
// (an equal split across NumWorkers by default) with the remainder
// submitted as one extra task; each border segment is one additional task.
func loadParRank1[E any](s *ndscheduler.Scheduler, wd ndarray.WindowedDelayedArray[E], buf LinearBuffer[E], o LoadOptions) error {
	shape := wd.Base.Shape[0]
	winStart := wd.WinStart[0]
	span := wd.WinSize[0]
	winEnd := winStart + span

	if winStart > 0 {
		if err := s.ScheduleWork(func() error {
			return writeRun1(0, winStart, wd.Base.At, buf)
		}); err != nil {
			return err
		}
	}
	if winEnd < shape {
		if err := s.ScheduleWork(func() error {
			return writeRun1(winEnd, shape, wd.Base.At, buf)
		}); err != nil {
			return err
		}
	}

	if span <= 0 {
		return nil
	}

	p := s.NumWorkers()
	chunk := o.chunkSizer(span, p)
	tailLo := winStart
	if chunk > 0 {
		err := nditer.LoopM_(0, nditer.Lt(p), nditer.Asc, func(w int) error {
			lo := winStart + w*chunk
			if lo >= winEnd {
				return nil
			}
			hi := lo + chunk
			if hi > winEnd {
				hi = winEnd
			}
			tailLo = hi
			return s.ScheduleWork(func() error {
				return writeRun1(lo, hi, wd.WinAt, buf)
			})
		})
		if err != nil {
			return err
		}
	}
	if tailLo < winEnd {
		if err := s.ScheduleWork(func() error {
			return writeRun1(tailLo, winEnd, wd.WinAt, buf)
		}); err != nil {
			return err
		}
	}
	return nil
}
