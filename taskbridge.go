package dfkernel

import (
	"sync"
	"sync/atomic"
	"time"

	"github.com/joeycumines/go-catrate"
)

// taskBridge implements request_task (§4.6): it runs a user computation on
// its own goroutine and delivers the result back onto the scheduler
// goroutine via Scheduler.Submit, the same pattern eventloop's Promisify
// uses (spawn, recover panics and runtime.Goexit, resubmit onto the loop
// thread, track in-flight goroutines for shutdown).
//
// Backpressure (the "configurable cap" §4.6 requires) is two-layered:
//   - a hard ceiling on the number of in-flight tasks (backlogCap), and
//   - a sliding-window submission-rate limiter (catrate.Limiter) per
//     caller-supplied category, for callers that want to throttle a
//     specific kind of task (e.g. one category per network connection)
//     rather than the whole bridge.
type taskBridge struct {
	sched *Scheduler

	backlogCap int64
	inFlight   atomic.Int64

	limiter *catrate.Limiter

	wg sync.WaitGroup
}

func newTaskBridge(s *Scheduler, backlogCap int, rateWindow time.Duration) *taskBridge {
	return &taskBridge{
		sched:      s,
		backlogCap: int64(backlogCap),
		limiter: catrate.NewLimiter(map[time.Duration]int{
			rateWindow: backlogCap,
		}),
	}
}

// requestCategory submits fn to run on a new goroutine, additionally subject
// to the sliding-window rate limit for category (nil disables the
// per-category check, leaving only the backlog cap in force). deliver is
// invoked on the scheduler goroutine once fn returns, panics, or exits via
// runtime.Goexit (in which case deliver receives ErrTaskBridgeOverloaded's
// sibling, a TaskError wrapping ErrGoexit).
func (b *taskBridge) requestCategory(category any, fn func() (any, error), deliver func(any, error)) error {
	if !b.sched.state.canAcceptWork() {
		return ErrSchedulerTerminated
	}
	if b.inFlight.Load() >= b.backlogCap {
		return ErrTaskBridgeOverloaded
	}
	if category != nil {
		if _, ok := b.limiter.Allow(category); !ok {
			return ErrTaskBridgeOverloaded
		}
	}

	b.inFlight.Add(1)
	b.wg.Add(1)

	go func() {
		defer b.wg.Done()
		defer b.inFlight.Add(-1)

		completed := false
		defer func() {
			if r := recover(); r != nil {
				_ = b.sched.Submit(func(s *Scheduler) {
					deliver(nil, &TaskError{Cause: panicValueToError(r)})
				})
				return
			}
			if !completed {
				_ = b.sched.Submit(func(s *Scheduler) {
					deliver(nil, &TaskError{Cause: ErrGoexit})
				})
			}
		}()

		v, err := fn()
		completed = true
		_ = b.sched.Submit(func(s *Scheduler) {
			deliver(v, err)
		})
	}()

	return nil
}

// wait blocks until every in-flight task goroutine has returned, used by
// tests and graceful shutdown paths.
func (b *taskBridge) wait() {
	b.wg.Wait()
}

func panicValueToError(v any) error {
	if err, ok := v.(error); ok {
		return err
	}
	return ErrTaskPanic
}
