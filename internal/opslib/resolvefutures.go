package opslib

import "github.com/joeycumines/dfkernel"

// FutureResult carries the outcome of one dispatched computation.
type FutureResult[T any] struct {
	Value T
	Err   error
}

type futureSlot[T any] struct {
	done  bool
	value T
	err   error
}

// ResolveFuturesOrdered dispatches each function read from in onto the
// async task bridge and emits results in the same order the functions
// arrived, even though they may complete out of order: the output is
// always blocked on the oldest unresolved dispatch, exactly like the
// reference compiler's `resolve_futures_ordered` (backed there by
// FuturesOrdered::push_back). Multiple dispatches run concurrently; only
// delivery is serialized.
//
// Dispatches are submitted under a category scoped to this operator
// instance (its own subgraph key), so the async task bridge's sliding-window
// rate limit (dfkernel.Scheduler.RequestTaskCategory) throttles one
// ResolveFuturesOrdered instance's submission rate independently of every
// other instance or caller sharing the same bridge.
func ResolveFuturesOrdered[T any](b *dfkernel.GraphBuilder, stratum int, in dfkernel.HandoffKey[func() (T, error)]) dfkernel.HandoffKey[FutureResult[T]] {
	out := dfkernel.AddHandoff[FutureResult[T]](b)
	pending := dfkernel.AddState(b, []*futureSlot[T](nil))

	var key dfkernel.SubgraphKey
	key = b.AddSubgraph(stratum,
		[]dfkernel.HandoffInput{dfkernel.Input(b, in, dfkernel.NoDelay)},
		[]dfkernel.HandoffBox{dfkernel.Output(b, out)},
		dfkernel.Lazy, dfkernel.NoLoop,
		func(ctx *dfkernel.Context) {
			inH := dfkernel.Handle(ctx, in)
			outH := dfkernel.Handle(ctx, out)
			queue := dfkernel.Ref(ctx.State(), pending)

			for _, fn := range inH.Drain() {
				slot := &futureSlot[T]{}
				*queue = append(*queue, slot)

				fn := fn
				taskErr := ctx.RequestTaskCategory(
					key,
					func() (any, error) {
						v, err := fn()
						return v, err
					},
					func(v any, err error) {
						slot.done = true
						slot.err = err
						if err == nil {
							slot.value, _ = v.(T)
						}
						ctx.RequestSchedule(key)
					},
				)
				if taskErr != nil {
					slot.done = true
					slot.err = taskErr
				}
			}

			for len(*queue) > 0 && (*queue)[0].done {
				s := (*queue)[0]
				*queue = (*queue)[1:]
				outH.Give(FutureResult[T]{Value: s.value, Err: s.err})
			}
		},
	)
	return out
}
