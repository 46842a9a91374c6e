package dfkernel

// InputReactor is the external input reactor (§4.5): a clonable handle any
// goroutine outside the scheduler may hold to inject items into a handoff.
// It is the same cross-goroutine delivery shape taskBridge uses for task
// completions (Scheduler.Submit queues a closure, a single buffered wake
// nudges RunAsync out of its select), specialized to "give an item" instead
// of "deliver a task result": the scheduler drains the submitted closure on
// every idle transition and every pre-body step (Scheduler.drainExternal),
// strictly before the consumer it wakes can run.
//
// Order is preserved for Send/SendBatch calls made against a single
// InputReactor ("external-arrival order is preserved within a single
// source"); two reactors feeding the same handoff have no ordering
// guarantee relative to each other.
type InputReactor[T any] struct {
	sched *Scheduler
	key   HandoffKey[T]
}

// NewInputReactor binds an external input reactor to k. Its consumer is
// pre-scheduled immediately (§4.3.2: "every subgraph ... that is wired to
// an external input, is pre-scheduled in stratum 0 of tick 0"), since an
// external source has no handoff-dirty signal to rely on for its first run.
// Call this during graph setup, before the scheduler starts running: like
// NewScheduler itself, it touches scheduler state directly rather than
// through Submit. Send and SendBatch, by contrast, are safe from any
// goroutine at any time.
func NewInputReactor[T any](s *Scheduler, k HandoffKey[T]) *InputReactor[T] {
	h := s.graph.handoffs[index(k)].(*Handoff[T])
	if h.cons.valid() {
		s.requestSchedule(h.cons)
	}
	return &InputReactor[T]{sched: s, key: k}
}

// Send enqueues item for delivery into the bound handoff on the scheduler
// goroutine, waking its consumer if the handoff was empty. Safe to call
// from any goroutine. Returns ErrSchedulerTerminated once the scheduler has
// shut down.
func (r *InputReactor[T]) Send(item T) error {
	return r.sched.Submit(func(s *Scheduler) {
		Handle(&Context{sched: s}, r.key).Give(item)
	})
}

// SendBatch is Send for a batch of items delivered together, with at most
// one wake of the consumer regardless of batch size.
func (r *InputReactor[T]) SendBatch(items []T) error {
	return r.sched.Submit(func(s *Scheduler) {
		Handle(&Context{sched: s}, r.key).GiveIter(items)
	})
}

// DrainHandoff drains k directly, outside of any subgraph body. It is the
// host-side counterpart to InputReactor: a way to read a terminal output
// handoff's buffered items after a RunAvailable (or between RunAsync
// suspension points), without wiring a dedicated sink subgraph. Must only
// be called from the scheduler goroutine (e.g. after RunAvailable returns),
// the same single-threaded contract every Handoff method has.
func DrainHandoff[T any](s *Scheduler, k HandoffKey[T]) []T {
	return Handle(&Context{sched: s}, k).Drain()
}
