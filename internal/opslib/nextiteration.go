package opslib

import "github.com/joeycumines/dfkernel"

// NextIteration feeds items back to the start of a loop block, discarding
// anything that arrives during iteration 0. Iteration 0 is the carry-over
// from the loop's previous activation of that tick (or a fresh, empty
// activation): the reference compiler's next_iteration filters with the
// exact predicate `0 != context.loop_iter_count()` for this reason, and this
// is a direct port of that filter.
//
// Any item surviving the filter also votes to continue the loop block: it
// calls both AllowAnotherIteration and RescheduleLoopBlock, since the
// kernel's AND-semantics termination rule requires a subgraph to declare
// both willingness and actual pending work before the block re-enters.
func NextIteration[T any](b *dfkernel.GraphBuilder, stratum int, loop dfkernel.LoopKey, in dfkernel.HandoffKey[T]) dfkernel.HandoffKey[T] {
	out := dfkernel.AddHandoff[T](b)

	b.AddSubgraph(stratum,
		[]dfkernel.HandoffInput{dfkernel.Input(b, in, dfkernel.NoDelay)},
		[]dfkernel.HandoffBox{dfkernel.Output(b, out)},
		dfkernel.Lazy, loop,
		func(ctx *dfkernel.Context) {
			inH := dfkernel.Handle(ctx, in)
			outH := dfkernel.Handle(ctx, out)
			items := inH.Drain()
			if len(items) == 0 {
				return
			}
			if ctx.LoopIterCount() == 0 {
				return
			}
			for _, item := range items {
				outH.Give(item)
			}
			ctx.AllowAnotherIteration()
			ctx.RescheduleLoopBlock()
		},
	)
	return out
}
