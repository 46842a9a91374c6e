package opslib

import "github.com/joeycumines/dfkernel"

// Counter passes every item from in through to its output unchanged, while
// maintaining a running total (Static, never reset) and a per-tick count
// (reset every tick) for observability. Grounded on the reference
// compiler's `_counter` operator, minus its background polling goroutine:
// that operator's prologue spawns an unbounded sleep-and-print loop via the
// async executor, a shape the task bridge here deliberately does not
// support (RequestTask is one-shot request/response, not a recurring
// timer) — counts are exposed through CounterTotal/CounterTick instead, for
// a caller (or test) to sample on its own schedule.
func Counter[T any](b *dfkernel.GraphBuilder, stratum int, in dfkernel.HandoffKey[T]) (out dfkernel.HandoffKey[T], total, perTick dfkernel.StateKey[int]) {
	out = dfkernel.AddHandoff[T](b)
	total = dfkernel.AddState(b, 0)
	perTick = dfkernel.AddState(b, 0)
	dfkernel.SetTickHook(b.States(), perTick, func(n *int) {
		*n = 0
	})

	b.AddSubgraph(stratum,
		[]dfkernel.HandoffInput{dfkernel.Input(b, in, dfkernel.NoDelay)},
		[]dfkernel.HandoffBox{dfkernel.Output(b, out)},
		dfkernel.Lazy, dfkernel.NoLoop,
		func(ctx *dfkernel.Context) {
			inH := dfkernel.Handle(ctx, in)
			outH := dfkernel.Handle(ctx, out)
			items := inH.Drain()
			if len(items) == 0 {
				return
			}
			*dfkernel.Ref(ctx.State(), total) += len(items)
			*dfkernel.Ref(ctx.State(), perTick) += len(items)
			for _, item := range items {
				outH.Give(item)
			}
		},
	)
	return out, total, perTick
}

// CounterTotal reads the running total maintained by Counter.
func CounterTotal(r *dfkernel.StateRegistry, total dfkernel.StateKey[int]) int {
	return *dfkernel.Ref(r, total)
}

// CounterTick reads the current tick's count maintained by Counter.
func CounterTick(r *dfkernel.StateRegistry, perTick dfkernel.StateKey[int]) int {
	return *dfkernel.Ref(r, perTick)
}
