package dfkernel

import "sync/atomic"

// RunState is the lifecycle state of a Scheduler.
type RunState uint64

const (
	// StateAwake means the scheduler has been constructed but RunAvailable/
	// RunAsync has never been called.
	StateAwake RunState = iota
	// StateRunning means a run loop is actively executing subgraphs.
	StateRunning
	// StateIdle means a RunAvailable/RunAsync call has returned and the
	// scheduler may be run again. RunAsync stays in StateRunning while it
	// waits for an external event.
	StateIdle
	// StateTerminating is the transient state Shutdown passes through on its
	// way to StateTerminated.
	StateTerminating
	// StateTerminated is the terminal state.
	StateTerminated
)

func (s RunState) String() string {
	switch s {
	case StateAwake:
		return "Awake"
	case StateRunning:
		return "Running"
	case StateIdle:
		return "Idle"
	case StateTerminating:
		return "Terminating"
	case StateTerminated:
		return "Terminated"
	default:
		return "Unknown"
	}
}

// fastState is a lock-free state machine, ported from the event loop's
// FastState: pure atomic CAS, no mutex, cache-line padded to avoid false
// sharing between the scheduler goroutine and whichever goroutine calls
// Shutdown.
type fastState struct { // betteralign:ignore
	_ [64]byte
	v atomic.Uint64
	_ [56]byte
}

func newFastState() *fastState {
	s := &fastState{}
	s.v.Store(uint64(StateAwake))
	return s
}

func (s *fastState) load() RunState { return RunState(s.v.Load()) }

func (s *fastState) store(state RunState) { s.v.Store(uint64(state)) }

func (s *fastState) tryTransition(from, to RunState) bool {
	return s.v.CompareAndSwap(uint64(from), uint64(to))
}

func (s *fastState) transitionAny(validFrom []RunState, to RunState) bool {
	for _, from := range validFrom {
		if s.v.CompareAndSwap(uint64(from), uint64(to)) {
			return true
		}
	}
	return false
}

func (s *fastState) isTerminal() bool { return s.load() == StateTerminated }

func (s *fastState) canAcceptWork() bool {
	switch s.load() {
	case StateAwake, StateRunning, StateIdle:
		return true
	default:
		return false
	}
}
