package ndload

import (
	"github.com/itohio/ndload/ndarray"
	"github.com/itohio/ndload/ndindex"
	"github.com/itohio/ndload/nditer"
	"github.com/itohio/ndload/ndscheduler"
)

// offsetBuffer shifts every write by a fixed base, giving a recursive
// call its own disjoint view of the shared output buffer.
type offsetBuffer[E any] struct {
	base int
	buf  LinearBuffer[E]
}

func (b offsetBuffer[E]) Write(k int, v E) { b.buf.Write(b.base+k, v) }

func dropOuter(ix *ndindex.Ix) *ndindex.Ix {
	if ix == nil {
		return nil
	}
	tail := (*ix)[1:].Clone()
	return &tail
}

// sliceAt rank-(r-1): build the rank-(r-1) WD fixing the outermost
// coordinate to i, shared by both the sequential and parallel recursive
// steps.
func sliceAt[E any](wd ndarray.WindowedDelayedArray[E], i int) ndarray.WindowedDelayedArray[E] {
	_, innerShape := ndindex.UnconsDim(wd.Base.Shape)
	_, winStartTail := ndindex.UnconsDim(wd.WinStart)
	_, winSizeTail := ndindex.UnconsDim(wd.WinSize)

	innerBase := wd.Base.At
	innerWinAt := wd.WinAt

	sliceBase := ndarray.DelayedArray[E]{
		Comp:  ndarray.Sequential(),
		Shape: innerShape,
		At:    func(ix ndindex.Ix) E { return innerBase(ndindex.ConsDim(i, ix)) },
	}

	slice := ndarray.WindowedDelayedArray[E]{
		Base:     sliceBase,
		WinStart: winStartTail,
		WinSize:  winSizeTail,
		WinAt:    func(ix ndindex.Ix) E { return innerWinAt(ndindex.ConsDim(i, ix)) },
	}
	if wd.StencilSize != nil {
		slice.StencilSize = dropOuter(wd.StencilSize)
	}
	return slice
}

// loadSeqRankN is the rank>=3 recursive case: write the two outer-border
// slabs directly, then recurse sequentially into each outer window
// coordinate's rank-(r-1) slice at its own buffer offset.
func loadSeqRankN[E any](wd ndarray.WindowedDelayedArray[E], buf LinearBuffer[E]) error {
	shape := wd.Base.Shape
	M := shape.Outer()
	t := wd.WinStart.Outer()
	W := wd.WinSize.Outer()
	_, innerShape := ndindex.UnconsDim(shape)
	innerStride := ndindex.TotalElem(innerShape)

	writeOuterSlab(wd, buf, 0, t, innerStride)
	writeOuterSlab(wd, buf, t+W, M, innerStride)

	return nditer.LoopM_(t, nditer.Lt(t+W), nditer.Asc, func(i int) error {
		slice := sliceAt(wd, i)
		view := offsetBuffer[E]{base: i * innerStride, buf: buf}
		return LoadSeq(slice, view)
	})
}

func writeOuterSlab[E any](wd ndarray.WindowedDelayedArray[E], buf LinearBuffer[E], outerLo, outerHi, innerStride int) {
	shape := wd.Base.Shape
	var scratch ndindex.Ix
	nditer.LoopM_(outerLo*innerStride, nditer.Lt(outerHi*innerStride), nditer.Asc, func(k int) error {
		scratch = ndindex.FromLinearIndexInto(scratch, shape, k)
		buf.Write(k, wd.Base.At(scratch))
		return nil
	})
}

// loadParRankN submits the two outer-border slabs as two tasks, then one
// task per outer window coordinate, each running the *sequential*
// rank-(r-1) loader on its slice. This gives W interior tasks plus 2
// border tasks for the scheduler's pool to absorb. Forcing the recursive
// inner load to Sequential even though the outer call is Parallel is
// deliberate: parallelism is already harvested over the outer window axis,
// and this call site is the one place that decision would change if
// measurement ever showed otherwise.
func loadParRankN[E any](s *ndscheduler.Scheduler, wd ndarray.WindowedDelayedArray[E], buf LinearBuffer[E]) error {
	shape := wd.Base.Shape
	M := shape.Outer()
	t := wd.WinStart.Outer()
	W := wd.WinSize.Outer()
	_, innerShape := ndindex.UnconsDim(shape)
	innerStride := ndindex.TotalElem(innerShape)

	if t > 0 {
		if err := s.ScheduleWork(func() error {
			writeOuterSlab(wd, buf, 0, t, innerStride)
			return nil
		}); err != nil {
			return err
		}
	}
	if t+W < M {
		if err := s.ScheduleWork(func() error {
			writeOuterSlab(wd, buf, t+W, M, innerStride)
			return nil
		}); err != nil {
			return err
		}
	}

	return nditer.LoopM_(t, nditer.Lt(t+W), nditer.Asc, func(i int) error {
		return s.ScheduleWork(func() error {
			slice := sliceAt(wd, i)
			view := offsetBuffer[E]{base: i * innerStride, buf: buf}
			return LoadSeq(slice, view)
		})
	})
}
