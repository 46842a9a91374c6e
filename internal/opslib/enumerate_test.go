package opslib

import (
	"testing"

	"github.com/joeycumines/dfkernel"
	"github.com/stretchr/testify/require"
)

func TestEnumerate_TickLifespanResetsCounterEveryTick(t *testing.T) {
	b := dfkernel.NewGraph()
	in := dfkernel.AddHandoff[string](b)
	out := Enumerate(b, 0, dfkernel.Tick, in)

	g, diags := b.Compile()
	require.Nil(t, diags)
	s, err := dfkernel.NewScheduler(g)
	require.NoError(t, err)

	give(t, s, in, "a", "b")
	require.NoError(t, s.RunAvailable())
	require.Equal(t, []Enumerated[string]{{0, "a"}, {1, "b"}}, drain(t, s, out))

	give(t, s, in, "c")
	require.NoError(t, s.RunAvailable())
	require.Equal(t, []Enumerated[string]{{0, "c"}}, drain(t, s, out))
}

func TestEnumerate_StaticLifespanCountsAcrossTicks(t *testing.T) {
	b := dfkernel.NewGraph()
	in := dfkernel.AddHandoff[string](b)
	out := Enumerate(b, 0, dfkernel.Static, in)

	g, diags := b.Compile()
	require.Nil(t, diags)
	s, err := dfkernel.NewScheduler(g)
	require.NoError(t, err)

	give(t, s, in, "a", "b")
	require.NoError(t, s.RunAvailable())
	require.Equal(t, []Enumerated[string]{{0, "a"}, {1, "b"}}, drain(t, s, out))

	give(t, s, in, "c")
	require.NoError(t, s.RunAvailable())
	require.Equal(t, []Enumerated[string]{{2, "c"}}, drain(t, s, out))
}
