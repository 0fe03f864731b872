package ndload

import "github.com/itohio/ndload/ndscheduler"

// ChunkSizer computes the per-task chunk length for a span of the given
// total extent split across workers. The default is an equal split
// (total/workers, with any remainder picked up by one extra slack task);
// a caller whose interior kernel is unusually cheap or expensive per
// element can return a different size to trade task count for task size.
type ChunkSizer func(total, workers int) int

func defaultChunkSizer(total, workers int) int {
	if workers <= 0 {
		return total
	}
	return total / workers
}

// LoadOptions configures a parallel load beyond the bare worker ID list:
// chunk sizing for the rank-1/2 span splits, and an unroll-factor override
// for the rank-2 kernel.
type LoadOptions struct {
	workers    []ndscheduler.WorkerID
	chunkSizer ChunkSizer
	unrollHint int
}

// LoadOption mutates a LoadOptions under construction.
type LoadOption func(*LoadOptions)

// WithWorkers sets the explicit worker identities a parallel load runs
// against; an empty or absent list means "use all available cores".
func WithWorkers(ids ...ndscheduler.WorkerID) LoadOption {
	return func(o *LoadOptions) { o.workers = ids }
}

// WithChunkSizer overrides the equal-split chunk sizing a parallel load
// uses to carve a window span into tasks.
func WithChunkSizer(f ChunkSizer) LoadOption {
	return func(o *LoadOptions) { o.chunkSizer = f }
}

// WithUnrollHint overrides the stencil-derived row-block height the
// rank-2 kernel's UnrollAndJam call uses, clamped to [1, MaxUnroll]. A
// value <= 0 leaves the stencil-derived height (or the scalar default of
// 1 if no stencil hint is present) in effect.
func WithUnrollHint(h int) LoadOption {
	return func(o *LoadOptions) { o.unrollHint = h }
}

func newLoadOptions(opts []LoadOption) LoadOptions {
	o := LoadOptions{chunkSizer: defaultChunkSizer}
	for _, opt := range opts {
		opt(&o)
	}
	return o
}

// unroll resolves the row-block height a rank-2 load should unroll by: an
// explicit WithUnrollHint wins, otherwise the stencil-derived height
// already computed by the caller.
func (o LoadOptions) unroll(stencilHeight int) int {
	if o.unrollHint > 0 {
		return clampUnroll(o.unrollHint)
	}
	return stencilHeight
}
