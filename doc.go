// Package dfkernel is the scheduling core of a dataflow runtime: a
// priority-driven, single-threaded cooperative executor for subgraphs
// connected by typed handoffs, a state registry with tick/stratum/loop
// lifespan hooks, and an async task bridge.
//
// # Architecture
//
// A [Graph] is compiled once via [GraphBuilder]: handoffs ([AddHandoff]),
// state cells ([AddState]), loop blocks ([GraphBuilder.AddLoopBlock]), and
// subgraphs ([GraphBuilder.AddSubgraph]) are allocated and wired together,
// then [GraphBuilder.Compile] freezes the result (or, if construction
// errors were recorded, returns an empty fallback graph alongside
// [Diagnostics]).
//
// A [Scheduler] runs a compiled [Graph]: while any subgraph is ready, it
// pops the lowest-stratum, most-recently-scheduled one and runs it exactly
// once, advancing strata and ticks as the ready set empties.
//
// # Clocks
//
// Two nested logical clocks govern execution: the tick (the outer clock,
// incremented once every full traversal of all strata) and the loop
// iteration (an inner clock scoped to a [LoopBlock], incremented each time
// its member subgraphs re-run within a tick). A [StateCell]'s contents can
// be tied to either clock, or to the stratum boundary within a tick, or
// left untouched forever ([Static]).
//
// # Concurrency
//
// Execution is single-threaded and cooperative: at most one subgraph body
// runs at a time, and a body never suspends mid-execution. The only
// asynchronous activity is [Scheduler.RequestTask], which runs a
// computation on its own goroutine and delivers the result back onto the
// scheduler goroutine, and [InputReactor], which lets an external source
// feed a handoff from any goroutine through the same delivery path.
//
// # Usage
//
//	b := dfkernel.NewGraph()
//	in := dfkernel.AddHandoff[int](b)
//	out := dfkernel.AddHandoff[int](b)
//	b.AddSubgraph(0, nil, []dfkernel.HandoffBox{dfkernel.Output(b, in)}, dfkernel.Eager, dfkernel.NoLoop, func(ctx *dfkernel.Context) {
//		// source: give values into `in`
//	})
//	graph, diags := b.Compile()
//	if diags.HasErrors() {
//		log.Fatal(diags)
//	}
//	sched, err := dfkernel.NewScheduler(graph)
//	if err != nil {
//		log.Fatal(err)
//	}
//	if err := sched.RunAvailable(); err != nil {
//		log.Fatal(err)
//	}
package dfkernel
