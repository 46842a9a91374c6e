package dfkernel

type subgraphTag struct{}

// SubgraphKey addresses a compiled Subgraph inside a Graph.
type SubgraphKey = Key[subgraphTag]

// Laziness controls whether a subgraph is pre-scheduled without any input
// ("eager") or runs only when woken by a dirty input handoff or an explicit
// schedule request ("lazy").
type Laziness int

const (
	// Lazy subgraphs run only when scheduled: a dirty input handoff, an
	// explicit RequestSchedule, or loop re-entry.
	Lazy Laziness = iota
	// Eager subgraphs are pre-scheduled once, at construction (tick 0),
	// regardless of input state, and again on each re-entry of a loop block
	// they belong to (sources with no predecessors typically register
	// eager). Tick boundaries do not reschedule them; that needs
	// GraphBuilder.SetStanding.
	Eager
)

// SubgraphFunc is the body of a compiled subgraph, fused at graph
// construction time from one or more operator templates into a single pull
// or push chain. It is a plain function value, mirroring the reference
// scheduler's blanket "a subgraph is anything callable as (context,
// handoffs)": there is no method-set contract beyond being callable.
type SubgraphFunc func(ctx *Context)

// Subgraph is a compiled, atomically-scheduled unit of fused operator code.
type Subgraph struct {
	stratum  int
	lazy     Laziness
	loopNest LoopKey // invalid if not nested in a loop block
	body     SubgraphFunc

	inputs  []HandoffBox
	outputs []HandoffBox

	// delayedInputs records, for each StratumDelayed input port, the handoff
	// and construction Span it was bound with, so Compile can validate the
	// producer/consumer stratum ordering once every forward-referenced
	// producer (bound later via BindProducer) has been resolved. AddSubgraph
	// itself does no stratum check: a feedback edge built in the
	// officially-supported forward-reference order (spec.md §9) has no
	// producer yet when its consumer is added.
	delayedInputs []delayedInput

	// standing marks a subgraph that is rescheduled automatically at every
	// tick boundary regardless of handoff state (external stream sources,
	// §4.3.4 step 4). Set via GraphBuilder.SetStanding; unlike Eager, which
	// only pre-schedules a subgraph once at construction (tick 0), standing
	// subgraphs keep being rescheduled tick after tick.
	standing bool
}

type delayedInput struct {
	box  HandoffBox
	span Span
}
