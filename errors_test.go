package dfkernel

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestCycleError_Message(t *testing.T) {
	err := &CycleError{Subgraphs: []int{1, 2, 3}}
	require.Contains(t, err.Error(), "3 subgraphs")
}

func TestArityError_Message(t *testing.T) {
	err := &ArityError{Operator: "join", Port: "input", Got: 3, Min: 1, Max: 2}
	msg := err.Error()
	require.Contains(t, msg, "join")
	require.Contains(t, msg, "input")
}

func TestUnknownOperatorError_Message(t *testing.T) {
	err := &UnknownOperatorError{Name: "frobnicate"}
	require.Contains(t, err.Error(), "frobnicate")
}

func TestTaskError_UnwrapAndIs(t *testing.T) {
	cause := errors.New("boom")
	err := &TaskError{Cause: cause}
	require.ErrorIs(t, err, cause)
	require.Contains(t, err.Error(), "boom")
}

func TestTaskError_WrapsGoexitAndPanicSentinels(t *testing.T) {
	e1 := &TaskError{Cause: ErrGoexit}
	require.ErrorIs(t, e1, ErrGoexit)

	e2 := &TaskError{Cause: ErrTaskPanic}
	require.ErrorIs(t, e2, ErrTaskPanic)
}

func TestSentinelErrors_AreDistinct(t *testing.T) {
	sentinels := []error{
		ErrSchedulerTerminated,
		ErrReentrantRun,
		ErrTaskBridgeOverloaded,
		ErrStateAliased,
		ErrGoexit,
		ErrTaskPanic,
	}
	for i, a := range sentinels {
		for j, b := range sentinels {
			if i == j {
				continue
			}
			require.False(t, errors.Is(a, b), "sentinel %d and %d must be distinct", i, j)
		}
	}
}
