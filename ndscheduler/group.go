package ndscheduler

import "golang.org/x/sync/errgroup"

// WithGroup registers this scope's completion with an external
// errgroup.Group, so a caller that already coordinates other concurrent
// work (network I/O, disk flushes) through errgroup can fold this scope's
// outcome into the same Wait() instead of joining it separately.
// WithGroup does not change how s itself dispatches work; it only lets
// g.Wait() observe s's first failure.
//
// Call WithGroup before scopeBody returns from WithScheduler — typically
// from within scopeBody itself — so g.Go's goroutine has a wg to wait on
// that is still being added to.
func (s *Scheduler) WithGroup(g *errgroup.Group) {
	g.Go(func() error {
		s.wg.Wait()
		return s.Err()
	})
}
