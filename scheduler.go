package dfkernel

import (
	"context"
	"sync"
)

// Scheduler is the priority-driven, single-threaded cooperative executor
// (§4.3) that runs a compiled Graph: it pops the lowest-stratum,
// most-recently-scheduled subgraph, runs it to completion, and advances
// strata and ticks as the ready set empties.
//
// Structurally this follows the event loop's own run()/tick() shape
// (timers → internal queue → external queue → microtasks → poll →
// microtasks → scavenge), collapsed onto this kernel's simpler contract:
// drain external events → pop+run one subgraph → handle loop re-entry →
// advance the tick when the ready set is exhausted.
type Scheduler struct {
	graph  *Graph
	states *StateRegistry

	ready  priorityStack[int, SubgraphKey]
	queued map[SubgraphKey]struct{}

	tick    int
	stratum int

	state *fastState

	extMu    sync.Mutex
	extQueue chunkedQueue[func(*Scheduler)]
	wakeCh   chan struct{}

	logger *Logger

	bridge *taskBridge
}

// NewScheduler constructs a Scheduler for g. Every eager or standing
// subgraph is pre-scheduled for tick 0, at its own stratum (§4.3.2).
func NewScheduler(g *Graph, opts ...Option) (*Scheduler, error) {
	cfg := defaultConfig()
	for _, o := range opts {
		o(&cfg)
	}

	s := &Scheduler{
		graph:  g,
		states: g.states,
		queued: make(map[SubgraphKey]struct{}),
		state:  newFastState(),
		wakeCh: make(chan struct{}, 1),
		logger: cfg.logger,
	}
	s.bridge = newTaskBridge(s, cfg.taskBacklogCap, cfg.taskRateWindow)

	for _, h := range g.handoffs {
		wireHandoffWake(h, s.requestSchedule)
	}

	g.subgraphs.iter(func(k SubgraphKey, sg *Subgraph) bool {
		if sg.lazy == Eager || sg.standing {
			s.requestSchedule(k)
		}
		return true
	})

	return s, nil
}

// States returns the state registry backing this scheduler's graph, for a
// host application to read back accumulated state (e.g. a running total
// maintained by an operator) once the scheduler has gone idle.
func (s *Scheduler) States() *StateRegistry { return s.states }

// wireHandoffWake is a tiny generic-erasure shim: HandoffBox does not expose
// a setter for onDirty directly, so this asserts the box to an interface
// with the setWake method every *Handoff[T] has. Every handoff ever minted
// by AddHandoff is a *Handoff[T] for some T, so the assertion cannot fail
// for honestly constructed graphs.
func wireHandoffWake(h HandoffBox, wake func(SubgraphKey)) {
	if w, ok := h.(interface{ setWake(func(SubgraphKey)) }); ok {
		w.setWake(wake)
	}
}

func (h *Handoff[T]) setWake(fn func(SubgraphKey)) { h.onDirty = fn }

// requestSchedule marks key schedulable, enforcing "at most one schedule per
// wake" (§8 invariant 4): a key already present in the ready set is not
// pushed again regardless of how many times requestSchedule is called
// before it runs. Must only be called from the scheduler goroutine.
func (s *Scheduler) requestSchedule(key SubgraphKey) {
	if _, already := s.queued[key]; already {
		return
	}
	s.queued[key] = struct{}{}
	sg := s.graph.subgraphs.get(key)
	s.ready.push(sg.stratum, key)
}

// RequestSchedule is the cross-goroutine-safe form of requestSchedule, for
// external input reactors (§4.5) running on their own goroutine.
func (s *Scheduler) RequestSchedule(key SubgraphKey) error {
	return s.Submit(func(s *Scheduler) { s.requestSchedule(key) })
}

// Submit queues fn to run on the scheduler goroutine at the next drain
// point, safe to call from any goroutine. This is the mechanism external
// input bridges and the task bridge use to deliver work back onto the
// single-threaded executor.
func (s *Scheduler) Submit(fn func(*Scheduler)) error {
	if !s.state.canAcceptWork() {
		return ErrSchedulerTerminated
	}
	s.extMu.Lock()
	s.extQueue.push(fn)
	s.extMu.Unlock()
	select {
	case s.wakeCh <- struct{}{}:
	default:
	}
	return nil
}

func (s *Scheduler) drainExternal() {
	for {
		s.extMu.Lock()
		fn, ok := s.extQueue.pop()
		s.extMu.Unlock()
		if !ok {
			return
		}
		fn(s)
	}
}

func (s *Scheduler) hasPendingExternal() bool {
	s.extMu.Lock()
	defer s.extMu.Unlock()
	return s.extQueue.len() > 0
}

// RunAvailable runs until the ready set is empty and no external event is
// pending, without waiting on real time or future external arrivals (§6.3),
// then crosses one tick boundary and returns. Standing subgraphs that the
// tick boundary reschedules run on the next call.
func (s *Scheduler) RunAvailable() error {
	if !s.state.transitionAny([]RunState{StateAwake, StateIdle}, StateRunning) {
		if s.state.load() == StateRunning {
			return ErrReentrantRun
		}
		return ErrSchedulerTerminated
	}
	defer s.state.tryTransition(StateRunning, StateIdle)

	for {
		s.drainReady()
		s.drainExternal()
		if !s.ready.isEmpty() {
			continue
		}
		s.tickBoundary()
		return nil
	}
}

// RunAsync runs until ctx is cancelled, yielding (blocking) whenever the
// ready set is empty and no external event is pending (§4.3.3, §5
// "Suspension points").
func (s *Scheduler) RunAsync(ctx context.Context) error {
	if !s.state.transitionAny([]RunState{StateAwake, StateIdle}, StateRunning) {
		if s.state.load() == StateRunning {
			return ErrReentrantRun
		}
		return ErrSchedulerTerminated
	}
	defer s.state.tryTransition(StateRunning, StateIdle)

	for {
		s.drainReady()
		s.drainExternal()
		if !s.ready.isEmpty() {
			continue
		}

		before := s.ready.len()
		s.tickBoundary()
		if s.ready.len() != before {
			if ctx.Err() != nil {
				return ctx.Err()
			}
			continue
		}

		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-s.wakeCh:
			continue
		}
	}
}

// Shutdown transitions the scheduler out of service: Submit and RequestTask
// begin refusing new work. In-flight tasks are allowed to complete (or are
// abandoned when the process exits); the core never force-kills a goroutine.
func (s *Scheduler) Shutdown() {
	if s.state.transitionAny([]RunState{StateAwake, StateIdle, StateRunning}, StateTerminating) {
		s.state.store(StateTerminated)
	}
}

func (s *Scheduler) drainReady() {
	for {
		stratum, key, ok := s.ready.popPriority()
		if !ok {
			return
		}
		delete(s.queued, key)
		s.runSubgraph(stratum, key)
		s.drainExternal()
	}
}

func (s *Scheduler) runSubgraph(stratum int, key SubgraphKey) {
	if !s.ready.isEmptyBelow(stratum) {
		panic("dfkernel: stratum barrier violated: a lower-stratum subgraph is still ready")
	}
	s.advanceStratum(stratum)

	sg := s.graph.subgraphs.get(key)
	ctx := &Context{
		sched:           s,
		tick:            s.tick,
		stratum:         s.stratum,
		currentSubgraph: key,
		currentLoop:     sg.loopNest,
	}

	if s.logger != nil {
		s.logger.Debug().Int("tick", s.tick).Int("stratum", stratum).Int("subgraph", int(index(key))).Log("run subgraph")
	}

	sg.body(ctx)

	if sg.loopNest.valid() {
		s.maybeReenterLoop(sg.loopNest)
	}
}

// advanceStratum runs stratum-boundary lifespan hooks exactly once per
// transition (§8 invariant 3), before any subgraph at the new, higher
// stratum observes its inputs. The priority stack already guarantees every
// subgraph at a strictly lower stratum has been popped and run before a
// higher-stratum subgraph is reachable (§4.3.5).
func (s *Scheduler) advanceStratum(newStratum int) {
	if newStratum > s.stratum {
		s.states.runStratumBoundary()
		s.stratum = newStratum
	}
}

func (s *Scheduler) loopHasPendingMembers(lb *LoopBlock) bool {
	for _, m := range lb.members {
		if _, ok := s.queued[m]; ok {
			return true
		}
	}
	return false
}

// maybeReenterLoop implements the per-iteration protocol (§4.3.6): once a
// loop block's member subgraphs are quiescent within this activation, the
// block re-enters only if some member called AllowAnotherIteration AND some
// member called RescheduleLoopBlock during the iteration just finished.
func (s *Scheduler) maybeReenterLoop(key LoopKey) {
	lb := s.graph.loops.get(key)
	if s.loopHasPendingMembers(lb) {
		return
	}
	if !lb.readyForNextIteration() {
		return
	}
	s.states.runIterBoundary()
	lb.iterationCount++
	for _, m := range lb.members {
		sg := s.graph.subgraphs.get(m)
		if sg.lazy == Eager {
			s.requestSchedule(m)
		}
	}
}

// tickBoundary runs tick-lifespan hooks, resets loop iteration counters,
// advances the tick, and reschedules every standing subgraph (§4.3.4 step
// 4: "Reschedule any 'static' sources and any subgraphs with standing
// schedule commitments"). Called only when the ready set is empty.
//
// Plain "eager" subgraphs are NOT rescheduled here: §4.3.2's pre-scheduling
// of eager subgraphs happens once, "at construction" (tick 0 only, see
// NewScheduler); §4.3.4 step 4 deliberately narrows ongoing, every-tick
// rescheduling to standing subgraphs (the construction-time API exposes
// this via GraphBuilder.SetStanding, e.g. for an external stream source
// that must keep running tick after tick). Treating every eager subgraph
// as standing here would make a bare eager subgraph with no handoff input
// run again at every tick.
func (s *Scheduler) tickBoundary() {
	s.states.runTickBoundary()
	s.graph.loops.iter(func(_ LoopKey, lb *LoopBlock) bool {
		lb.resetForTick()
		return true
	})
	s.tick++
	s.stratum = 0

	if s.logger != nil {
		s.logger.Debug().Int("tick", s.tick).Log("tick boundary")
	}

	s.graph.subgraphs.iter(func(k SubgraphKey, sg *Subgraph) bool {
		if sg.standing {
			s.requestSchedule(k)
		}
		return true
	})
}

// RequestTask submits fn to the async task bridge (§4.6), subject only to
// the bridge's backlog cap.
func (s *Scheduler) RequestTask(fn func() (any, error), deliver func(any, error)) error {
	return s.bridge.requestCategory(nil, fn, deliver)
}

// RequestTaskCategory is RequestTask, additionally subject to a
// sliding-window submission-rate limit scoped to category (§4.6's
// "configurable cap", via catrate.Limiter): repeated submissions under the
// same category within the configured WithTaskRateWindow are refused with
// ErrTaskBridgeOverloaded once the category's share of WithTaskBacklogCap is
// exhausted, independent of how many other tasks are in flight.
func (s *Scheduler) RequestTaskCategory(category any, fn func() (any, error), deliver func(any, error)) error {
	return s.bridge.requestCategory(category, fn, deliver)
}
