package opslib

import (
	"testing"

	"github.com/joeycumines/dfkernel"
	"github.com/stretchr/testify/require"
)

func TestDifferenceMultiset_CancelsMatchingItems(t *testing.T) {
	b := dfkernel.NewGraph()
	pos := dfkernel.AddHandoff[string](b)
	neg := dfkernel.AddHandoff[string](b)
	out := DifferenceMultiset(b, 0, dfkernel.Tick, pos, neg)

	g, diags := b.Compile()
	require.Nil(t, diags)
	s, err := dfkernel.NewScheduler(g)
	require.NoError(t, err)

	give(t, s, neg, "a", "a")
	give(t, s, pos, "a", "a", "a", "b")
	require.NoError(t, s.RunAvailable())

	require.Equal(t, []string{"a", "b"}, drain(t, s, out))
}

func TestDifferenceMultiset_TickLifespanResetsNegCounts(t *testing.T) {
	b := dfkernel.NewGraph()
	pos := dfkernel.AddHandoff[int](b)
	neg := dfkernel.AddHandoff[int](b)
	out := DifferenceMultiset(b, 0, dfkernel.Tick, pos, neg)

	g, diags := b.Compile()
	require.Nil(t, diags)
	s, err := dfkernel.NewScheduler(g)
	require.NoError(t, err)

	give(t, s, neg, 5)
	give(t, s, pos, 5)
	require.NoError(t, s.RunAvailable())
	require.Empty(t, drain(t, s, out))

	// Next tick: the neg-side multiset was cleared, so 5 is no longer
	// cancelled.
	give(t, s, pos, 5)
	require.NoError(t, s.RunAvailable())
	require.Equal(t, []int{5}, drain(t, s, out))
}
