package opslib

import "github.com/joeycumines/dfkernel"

// Enumerated pairs a value with a monotonically increasing index, the
// output element type of Enumerate.
type Enumerated[T any] struct {
	Index int
	Item  T
}

// Enumerate pairs each item from in with its index: (0, x0), (1, x1), ...
// lifespan controls whether the counter resets ([dfkernel.Tick], the usual
// choice) or counts monotonically for the graph's lifetime
// ([dfkernel.Static]). Grounded on the reference compiler's `enumerate`
// operator (a prologue-allocated counter cell, reset by a lifespan hook).
func Enumerate[T any](b *dfkernel.GraphBuilder, stratum int, lifespan dfkernel.Lifespan, in dfkernel.HandoffKey[T]) dfkernel.HandoffKey[Enumerated[T]] {
	out := dfkernel.AddHandoff[Enumerated[T]](b)
	counter := dfkernel.AddState(b, 0)
	dfkernel.SetLifespanHook(b.States(), counter, lifespan, func(n *int) {
		*n = 0
	})

	b.AddSubgraph(stratum,
		[]dfkernel.HandoffInput{dfkernel.Input(b, in, dfkernel.NoDelay)},
		[]dfkernel.HandoffBox{dfkernel.Output(b, out)},
		dfkernel.Lazy, dfkernel.NoLoop,
		func(ctx *dfkernel.Context) {
			inH := dfkernel.Handle(ctx, in)
			outH := dfkernel.Handle(ctx, out)
			n := dfkernel.Ref(ctx.State(), counter)
			for _, item := range inH.Drain() {
				outH.Give(Enumerated[T]{Index: *n, Item: item})
				*n++
			}
		},
	)
	return out
}
