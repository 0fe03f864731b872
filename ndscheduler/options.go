package ndscheduler

// SchedulerOption configures a scope under construction, in the same
// functional-option shape the generics worker pool uses for its
// WorkerPoolOption: a small set of With* constructors mutating a private
// config struct rather than a long constructor parameter list.
type SchedulerOption func(*schedulerConfig)

type schedulerConfig struct {
	workers []WorkerID
}

// WithWorkers sets the explicit worker identities a scope's pool is sized
// from; an empty or absent list means "use all available cores" (see
// normalizeWorkerCount).
func WithWorkers(ids ...WorkerID) SchedulerOption {
	return func(c *schedulerConfig) { c.workers = ids }
}

func newSchedulerConfig(opts []SchedulerOption) schedulerConfig {
	var c schedulerConfig
	for _, opt := range opts {
		opt(&c)
	}
	return c
}

// WithScopeOptions is WithScheduler's functional-option form: callers who
// only need to name workers can use WithScheduler directly, but a caller
// building up scope configuration programmatically (as ndload.LoadParWithOptions
// does) composes SchedulerOptions instead of assembling a []WorkerID by hand.
func WithScopeOptions[T any](scopeBody func(s *Scheduler) (T, error), opts ...SchedulerOption) (T, error) {
	cfg := newSchedulerConfig(opts)
	return WithScheduler(cfg.workers, scopeBody)
}
