package opslib

import "github.com/joeycumines/dfkernel"

// DifferenceMultiset forms the multiset difference of two streams of the
// same comparable type: every item read from pos that has no remaining
// match in neg is forwarded to the output, each neg item cancelling out
// exactly one matching pos item. Grounded on the reference compiler's
// `difference_multiset` operator, which marks its "neg" port stratum-
// delayed so the full negative side is available before any positive item
// is tested against it; this binds neg the same way (dfkernel.StratumDelayed).
//
// lifespan controls how long the neg-side multiset is remembered
// ([dfkernel.Tick] is the common case: only this tick's neg items cancel
// pos items).
func DifferenceMultiset[T comparable](b *dfkernel.GraphBuilder, stratum int, lifespan dfkernel.Lifespan, pos, neg dfkernel.HandoffKey[T]) dfkernel.HandoffKey[T] {
	out := dfkernel.AddHandoff[T](b)
	negCounts := dfkernel.AddState(b, make(map[T]int))
	dfkernel.SetLifespanHook(b.States(), negCounts, lifespan, func(m *map[T]int) {
		clear(*m)
	})

	b.AddSubgraph(stratum,
		[]dfkernel.HandoffInput{
			dfkernel.Input(b, neg, dfkernel.StratumDelayed),
			dfkernel.Input(b, pos, dfkernel.NoDelay),
		},
		[]dfkernel.HandoffBox{dfkernel.Output(b, out)},
		dfkernel.Lazy, dfkernel.NoLoop,
		func(ctx *dfkernel.Context) {
			negH := dfkernel.Handle(ctx, neg)
			posH := dfkernel.Handle(ctx, pos)
			outH := dfkernel.Handle(ctx, out)
			counts := dfkernel.Ref(ctx.State(), negCounts)

			for _, item := range negH.Drain() {
				(*counts)[item]++
			}
			for _, item := range posH.Drain() {
				if n := (*counts)[item]; n > 0 {
					(*counts)[item] = n - 1
					continue
				}
				outH.Give(item)
			}
		},
	)
	return out
}
