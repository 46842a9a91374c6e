package dfkernel

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestPriorityStack_LIFOWithinPriority(t *testing.T) {
	var p priorityStack[int, string]
	p.push(0, "a")
	p.push(0, "b")
	p.push(0, "c")

	v, ok := p.pop()
	require.True(t, ok)
	require.Equal(t, "c", v, "most recently pushed item within a priority pops first")

	v, ok = p.pop()
	require.True(t, ok)
	require.Equal(t, "b", v)

	v, ok = p.pop()
	require.True(t, ok)
	require.Equal(t, "a", v)

	_, ok = p.pop()
	require.False(t, ok)
}

func TestPriorityStack_LowerPriorityFirst(t *testing.T) {
	var p priorityStack[int, string]
	p.push(2, "high-stratum")
	p.push(0, "low-stratum")
	p.push(1, "mid-stratum")

	v, ok := p.pop()
	require.True(t, ok)
	require.Equal(t, "low-stratum", v)

	v, ok = p.pop()
	require.True(t, ok)
	require.Equal(t, "mid-stratum", v)

	v, ok = p.pop()
	require.True(t, ok)
	require.Equal(t, "high-stratum", v)
}

func TestPriorityStack_PopPriority(t *testing.T) {
	var p priorityStack[int, string]
	p.push(3, "x")

	pri, v, ok := p.popPriority()
	require.True(t, ok)
	require.Equal(t, 3, pri)
	require.Equal(t, "x", v)
}

func TestPriorityStack_PeekPriority(t *testing.T) {
	var p priorityStack[int, int]
	_, ok := p.peekPriority()
	require.False(t, ok)

	p.push(5, 1)
	pri, ok := p.peekPriority()
	require.True(t, ok)
	require.Equal(t, 5, pri)

	// peek must not remove.
	require.Equal(t, 1, p.len())
}

func TestPriorityStack_LenAndIsEmpty(t *testing.T) {
	var p priorityStack[int, int]
	require.True(t, p.isEmpty())
	require.Equal(t, 0, p.len())

	p.push(0, 1)
	p.push(2, 2)
	require.False(t, p.isEmpty())
	require.Equal(t, 2, p.len())

	p.pop()
	p.pop()
	require.True(t, p.isEmpty())
}

func TestPriorityStack_IsEmptyBelow(t *testing.T) {
	var p priorityStack[int, int]
	require.True(t, p.isEmptyBelow(3))

	p.push(2, 42)
	require.True(t, p.isEmptyBelow(2), "priority 2 is not strictly below 2")
	require.False(t, p.isEmptyBelow(3))

	require.True(t, p.isEmptyBelow(0))
}

func TestPriorityStack_IsEmptyBelowBeyondRange(t *testing.T) {
	var p priorityStack[int, int]
	p.push(0, 1)
	p.pop()
	require.True(t, p.isEmptyBelow(100), "a priority far beyond the allocated range must not index out of bounds")
}
