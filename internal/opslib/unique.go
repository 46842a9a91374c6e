// Package opslib is a small set of fused operators built directly on
// dfkernel's subgraph/handoff/state primitives, exercising the
// scheduler's operator-template contract (construction-time port
// binding, lifespan-scoped state, loop re-entry, the async task bridge)
// end to end.
//
// These are not a general-purpose dataflow operator library: each one
// covers exactly the shape this module's own tests need, grounded on the
// corresponding operator in the reference dataflow compiler.
package opslib

import "github.com/joeycumines/dfkernel"

// Unique drops duplicate values from in, holding a seen-set whose contents
// are reset according to lifespan ([dfkernel.Tick] restarts deduplication
// every tick, [dfkernel.Static] never resets). Grounded on the reference
// compiler's `unique` operator: state allocated once in the prologue, a
// lifespan hook clears it in place rather than reallocating.
func Unique[T comparable](b *dfkernel.GraphBuilder, stratum int, lifespan dfkernel.Lifespan, in dfkernel.HandoffKey[T]) dfkernel.HandoffKey[T] {
	out := dfkernel.AddHandoff[T](b)
	seen := dfkernel.AddState(b, make(map[T]struct{}))
	dfkernel.SetLifespanHook(b.States(), seen, lifespan, func(m *map[T]struct{}) {
		clear(*m)
	})

	b.AddSubgraph(stratum,
		[]dfkernel.HandoffInput{dfkernel.Input(b, in, dfkernel.NoDelay)},
		[]dfkernel.HandoffBox{dfkernel.Output(b, out)},
		dfkernel.Lazy, dfkernel.NoLoop,
		func(ctx *dfkernel.Context) {
			inH := dfkernel.Handle(ctx, in)
			outH := dfkernel.Handle(ctx, out)
			set := dfkernel.Ref(ctx.State(), seen)
			for _, item := range inH.Drain() {
				if _, dup := (*set)[item]; dup {
					continue
				}
				(*set)[item] = struct{}{}
				outH.Give(item)
			}
		},
	)
	return out
}
