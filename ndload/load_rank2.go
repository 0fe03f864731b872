package ndload

import (
	"github.com/itohio/ndload/ndarray"
	"github.com/itohio/ndload/ndindex"
	"github.com/itohio/ndload/nditer"
	"github.com/itohio/ndload/ndscheduler"
)

// stencilRowHeight reads the row-block height a rank-2 stencil footprint
// hint implies: the outer (row) axis of the footprint's last two
// components, clamped to [1, MaxUnroll]. Absent hint -> scalar (1).
func stencilRowHeight(stencilSize *ndindex.Ix) int {
	if stencilSize == nil {
		return 1
	}
	s := *stencilSize
	if len(s) < 2 {
		return 1
	}
	return clampUnroll(s[len(s)-2])
}

// loadSeqRank2 fills buffer from a rank-2 WD via four border rectangles
// read through base.At plus one interior rectangle read through WinAt and
// written with UnrollAndJam.
func loadSeqRank2[E any](wd ndarray.WindowedDelayedArray[E], buf LinearBuffer[E]) error {
	m, n := wd.Base.Shape[0], wd.Base.Shape[1]
	it, jt := wd.WinStart[0], wd.WinStart[1]
	wm, wn := wd.WinSize[0], wd.WinSize[1]
	ib, jb := it+wm, jt+wn

	writeBaseRect(wd, buf, n, 0, it, 0, n)
	writeBaseRect(wd, buf, n, ib, m, 0, n)
	writeBaseRect(wd, buf, n, it, ib, 0, jt)
	writeBaseRect(wd, buf, n, it, ib, jb, n)

	h := stencilRowHeight(wd.StencilSize)
	UnrollAndJam(h, it, ib, jt, jb, func(i, j int) {
		buf.Write(i*n+j, wd.WinAt(ndindex.Ix2(i, j)))
	})
	return nil
}

func writeBaseRect[E any](wd ndarray.WindowedDelayedArray[E], buf LinearBuffer[E], n int, rowLo, rowHi, colLo, colHi int) {
	nditer.Iter(ndindex.Ix2(rowLo, colLo), ndindex.Ix2(rowHi, colHi), ndindex.Ix2(1, 1), func(ix ndindex.Ix) bool {
		buf.Write(ix[0]*n+ix[1], wd.Base.At(ix))
		return true
	})
}

// loadParRank2 submits the four border rectangles exactly as
// loadSeqRank2, then splits the interior by row-blocks: chunkHeight =
// wm/P, slackHeight = wm mod P with P = numWorkers. Each of the P tasks
// runs UnrollAndJam over its row-block; a slack task picks up any
// remainder. Row-based splitting is chosen because the inner axis is
// contiguous in memory, so each task writes a dense run of linear indices.
func loadParRank2[E any](s *ndscheduler.Scheduler, wd ndarray.WindowedDelayedArray[E], buf LinearBuffer[E], o LoadOptions) error {
	m, n := wd.Base.Shape[0], wd.Base.Shape[1]
	it, jt := wd.WinStart[0], wd.WinStart[1]
	wm, wn := wd.WinSize[0], wd.WinSize[1]
	ib, jb := it+wm, jt+wn

	borders := []struct{ rowLo, rowHi, colLo, colHi int }{
		{0, it, 0, n},
		{ib, m, 0, n},
		{it, ib, 0, jt},
		{it, ib, jb, n},
	}
	for _, b := range borders {
		if b.rowHi <= b.rowLo || b.colHi <= b.colLo {
			continue
		}
		b := b
		if err := s.ScheduleWork(func() error {
			writeBaseRect(wd, buf, n, b.rowLo, b.rowHi, b.colLo, b.colHi)
			return nil
		}); err != nil {
			return err
		}
	}

	if wm <= 0 || wn <= 0 {
		return nil
	}

	h := o.unroll(stencilRowHeight(wd.StencilSize))
	p := s.NumWorkers()
	chunkHeight := o.chunkSizer(wm, p)
	slackLo := it
	if chunkHeight > 0 {
		err := nditer.LoopM_(0, nditer.Lt(p), nditer.Asc, func(w int) error {
			rowLo := it + w*chunkHeight
			if rowLo >= ib {
				return nil
			}
			rowHi := rowLo + chunkHeight
			if rowHi > ib {
				rowHi = ib
			}
			slackLo = rowHi
			return s.ScheduleWork(func() error {
				UnrollAndJam(h, rowLo, rowHi, jt, jb, func(i, j int) {
					buf.Write(i*n+j, wd.WinAt(ndindex.Ix2(i, j)))
				})
				return nil
			})
		})
		if err != nil {
			return err
		}
	}
	if slackLo < ib {
		if err := s.ScheduleWork(func() error {
			UnrollAndJam(h, slackLo, ib, jt, jb, func(i, j int) {
				buf.Write(i*n+j, wd.WinAt(ndindex.Ix2(i, j)))
			})
			return nil
		}); err != nil {
			return err
		}
	}
	return nil
}
