package dfkernel

// DelayType declares whether an input port requires the scheduler to fully
// drain all lower strata before delivering items (§6.2 "Delay type
// semantics"). NoDelay means the consumer may see items as soon as they
// arrive; StratumDelayed means the producer's stratum must be strictly less
// than the consumer's, and the scheduler enforces the stratum barrier
// (§4.3.5) before running the consumer.
type DelayType int

const (
	NoDelay DelayType = iota
	StratumDelayed
)

// HandoffInput binds a handoff to a subgraph's input port together with its
// declared delay type.
type HandoffInput struct {
	box   HandoffBox
	delay DelayType
}

// Graph is a compiled, immutable dataflow graph: handoffs, subgraphs, loop
// blocks, and state cells allocated once at construction and never
// destroyed until the Scheduler running it is discarded (spec.md §3
// "Lifecycles").
type Graph struct {
	handoffs   []HandoffBox
	subgraphs  arena[subgraphTag, Subgraph]
	loops      arena[loopTag, LoopBlock]
	states     *StateRegistry
	strataCount int
}

// GraphBuilder accumulates handoffs, state cells, subgraphs, and loop blocks
// before Compile validates and freezes them into a Graph. Every
// construction call is numbered (in call order) for Diagnostic.Span.
type GraphBuilder struct {
	g         *Graph
	diags     Diagnostics
	callIndex int
}

// NewGraph starts a new graph under construction.
func NewGraph() *GraphBuilder {
	return &GraphBuilder{
		g: &Graph{states: NewStateRegistry()},
	}
}

// States returns the state registry backing this graph under construction,
// for operator constructors that need to attach lifespan hooks alongside
// AddState.
func (b *GraphBuilder) States() *StateRegistry {
	return b.g.states
}

func (b *GraphBuilder) nextSpan(operator string) Span {
	s := Span{CallIndex: b.callIndex, Operator: operator}
	b.callIndex++
	return s
}

// AddHandoff allocates a new typed handoff and returns its key. Graphs with
// feedback edges (spec.md §9 "Cyclic dataflow") call AddHandoff before the
// producing subgraph exists, then bind the producer later via AddSubgraph's
// outputs list: the placeholder is data (an arena slot), not a language
// cycle.
func AddHandoff[T any](b *GraphBuilder) HandoffKey[T] {
	b.nextSpan("")
	h := newHandoff[T]()
	b.g.handoffs = append(b.g.handoffs, h)
	return keyFromIndex[handoffTag[T]](len(b.g.handoffs) - 1)
}

// AddState allocates a new state cell with the given initial value.
func AddState[T any](b *GraphBuilder, initial T) StateKey[T] {
	b.nextSpan("")
	return Add(b.g.states, initial)
}

// Input binds a handoff key to a subgraph input port with the given delay
// type, for use in AddSubgraph's inputs list.
func Input[T any](b *GraphBuilder, k HandoffKey[T], delay DelayType) HandoffInput {
	return HandoffInput{box: b.g.handoffs[index(k)], delay: delay}
}

// Output resolves a handoff key to the boxed handle AddSubgraph's outputs
// list expects.
func Output[T any](b *GraphBuilder, k HandoffKey[T]) HandoffBox {
	return b.g.handoffs[index(k)]
}

// AddLoopBlock allocates a new loop block, optionally nested inside parent
// (invalid LoopKey for a top-level block), and returns its key.
func (b *GraphBuilder) AddLoopBlock(parent LoopKey) LoopKey {
	b.nextSpan("")
	return b.g.loops.insert(LoopBlock{parent: parent})
}

// AddSubgraph compiles a new subgraph: stratum is its priority (lower runs
// earlier within a tick); inputs/outputs bind its handoffs; lazy controls
// whether it is pre-scheduled at construction (Eager) or waits to be woken
// (Lazy); loopNest (invalid LoopKey if
// none) nests it inside a loop block; body is the fused operator chain.
func (b *GraphBuilder) AddSubgraph(stratum int, inputs []HandoffInput, outputs []HandoffBox, lazy Laziness, loopNest LoopKey, body SubgraphFunc) SubgraphKey {
	span := b.nextSpan("")
	if stratum < 0 {
		b.diags = append(b.diags, Diagnostic{Span: span, Message: "stratum must be >= 0"})
	}

	sg := Subgraph{
		stratum:  stratum,
		lazy:     lazy,
		loopNest: loopNest,
		body:     body,
		outputs:  outputs,
	}
	for _, in := range inputs {
		sg.inputs = append(sg.inputs, in.box)
	}

	key := b.g.subgraphs.insert(sg)
	if stratum+1 > b.g.strataCount {
		b.g.strataCount = stratum + 1
	}

	for _, out := range outputs {
		out.setEndpoints(key, out.consumer())
	}
	for _, in := range inputs {
		in.box.setEndpoints(in.box.producer(), key)
		if in.delay == StratumDelayed {
			// Deferred to Compile's revalidateStratumDelays: the producer may
			// not exist yet (a forward-referenced feedback edge resolved
			// later via BindProducer), so checking here would miss it.
			sg.delayedInputs = append(sg.delayedInputs, delayedInput{box: in.box, span: span})
		}
	}
	*b.g.subgraphs.get(key) = sg
	if loopNest.valid() {
		lb := b.g.loops.get(loopNest)
		lb.members = append(lb.members, key)
	}
	return key
}

// checkStratumDelay records a diagnostic if producer's stratum is not
// strictly less than consumer's, the invariant a StratumDelayed input
// requires (§6.2).
func (b *GraphBuilder) checkStratumDelay(span Span, producer, consumer SubgraphKey, consumerStratum int) {
	producerStratum := b.g.subgraphs.get(producer).stratum
	if producerStratum >= consumerStratum {
		b.diags = append(b.diags, Diagnostic{
			Span:    span,
			Message: "stratum-delayed input's producer is not in a strictly lower stratum",
			Cause:   &CycleError{Subgraphs: []int{int(index(producer)), int(index(consumer))}},
		})
	}
}

// SetStanding marks key as having a "standing schedule commitment" (§4.3.4
// step 4): the scheduler reschedules it at every tick boundary regardless
// of handoff state, not just once at construction. This is how an external
// stream source (§4.5) stays wired to run tick after tick, as opposed to a
// plain Eager subgraph, which is pre-scheduled only for tick 0.
func (b *GraphBuilder) SetStanding(key SubgraphKey) {
	b.g.subgraphs.get(key).standing = true
}

// BindProducer is used for forward-referenced handoffs (spec.md §9, feedback
// edges): call it once the subgraph that will give into h is known, if h was
// used as an Output before that subgraph existed in source order. In the Go
// API outputs are always bound at AddSubgraph time, so this is only needed
// when a handoff must be wired as an Output of a subgraph constructed after
// one that already consumes it as an Input; AddSubgraph already resolves
// producer/consumer symmetrically regardless of call order, so most graphs
// never need to call this explicitly.
func BindProducer[T any](b *GraphBuilder, k HandoffKey[T], producer SubgraphKey) {
	h := b.g.handoffs[index(k)]
	h.setEndpoints(producer, h.consumer())
}

// Compile freezes the graph under construction. If any construction errors
// were recorded, Compile returns an empty, safe-to-run fallback Graph
// alongside the Diagnostics (§7.1), so a host application can still execute
// downstream code.
func (b *GraphBuilder) Compile() (*Graph, Diagnostics) {
	b.revalidateStratumDelays()
	if b.diags.HasErrors() {
		return &Graph{states: NewStateRegistry()}, b.diags
	}
	return b.g, nil
}

// revalidateStratumDelays checks every StratumDelayed input recorded by
// AddSubgraph against its producer's stratum, once construction is
// finished and every BindProducer call has resolved. A forward-referenced
// feedback edge (spec.md §9: AddHandoff, then a consuming AddSubgraph, then
// the producing AddSubgraph, then BindProducer) has no producer yet at
// AddSubgraph time, so the check cannot run there; deferring it to Compile
// covers both construction orders uniformly.
func (b *GraphBuilder) revalidateStratumDelays() {
	b.g.subgraphs.iter(func(consumer SubgraphKey, sg *Subgraph) bool {
		for _, di := range sg.delayedInputs {
			if producer := di.box.producer(); producer.valid() {
				b.checkStratumDelay(di.span, producer, consumer, sg.stratum)
			}
		}
		return true
	})
}
