package dfkernel

type handoffTag[T any] struct{}

// HandoffKey addresses a Handoff[T] inside a Graph. The element type T is
// carried in the key itself so a HandoffKey[string] can never be used to
// retrieve a Handoff[int]; the type assertion inside Handle cannot fail for
// a key honestly obtained from AddHandoff.
type HandoffKey[T any] = Key[handoffTag[T]]

// HandoffBox is the type-erased interface every *Handoff[T] satisfies,
// letting the scheduler enumerate and wake handoffs without knowing their
// element type.
type HandoffBox interface {
	needsDrain() bool
	consumer() SubgraphKey
	producer() SubgraphKey
	setEndpoints(producer, consumer SubgraphKey)
}

// Handoff is a typed single-producer single-consumer buffer between two
// subgraphs. Producing into an empty Handoff marks it dirty and schedules
// its consumer; draining empties it and clears the dirty flag.
//
// The buffer is a double-buffer swap, the same shape as the event loop's
// auxJobs/auxJobsSpare queue: Give appends to the active slice; Drain swaps
// in the spare slice (truncated to zero length) and hands back everything
// that was buffered, in FIFO order.
type Handoff[T any] struct {
	buf   []T
	spare []T
	dirty bool

	prod, cons SubgraphKey
	onDirty    func(SubgraphKey) // wired by NewScheduler; nil until then
}

func newHandoff[T any]() *Handoff[T] {
	return &Handoff[T]{prod: invalidKey[subgraphTag](), cons: invalidKey[subgraphTag]()}
}

func (h *Handoff[T]) needsDrain() bool     { return h.dirty }
func (h *Handoff[T]) consumer() SubgraphKey { return h.cons }
func (h *Handoff[T]) producer() SubgraphKey { return h.prod }

func (h *Handoff[T]) setEndpoints(producer, consumer SubgraphKey) {
	h.prod, h.cons = producer, consumer
}

// Give appends a single item, FIFO. If the buffer was empty, it transitions
// needs_drain false→true and schedules the consumer subgraph.
func (h *Handoff[T]) Give(item T) {
	wasEmpty := len(h.buf) == 0 && !h.dirty
	h.buf = append(h.buf, item)
	h.dirty = true
	if wasEmpty && h.onDirty != nil && h.cons.valid() {
		h.onDirty(h.cons)
	}
}

// GiveIter appends every item from items, performing at most one wake-up
// regardless of how many items were given.
func (h *Handoff[T]) GiveIter(items []T) {
	if len(items) == 0 {
		return
	}
	wasEmpty := len(h.buf) == 0 && !h.dirty
	h.buf = append(h.buf, items...)
	h.dirty = true
	if wasEmpty && h.onDirty != nil && h.cons.valid() {
		h.onDirty(h.cons)
	}
}

// Drain returns every buffered item in FIFO order and empties the buffer.
// After Drain, IsEmpty is true and needs_drain is false.
func (h *Handoff[T]) Drain() []T {
	out := h.buf
	h.buf, h.spare = h.spare[:0], h.buf
	h.dirty = false
	return out
}

// IsEmpty reports whether the buffer currently holds no items.
func (h *Handoff[T]) IsEmpty() bool { return len(h.buf) == 0 }

// Len returns the number of buffered items.
func (h *Handoff[T]) Len() int { return len(h.buf) }
