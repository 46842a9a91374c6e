package opslib

import (
	"testing"

	"github.com/joeycumines/dfkernel"
	"github.com/stretchr/testify/require"
)

// give injects items into k from outside any subgraph, the same path an
// external source would use, via dfkernel's input reactor.
func give[T any](t *testing.T, s *dfkernel.Scheduler, k dfkernel.HandoffKey[T], items ...T) {
	t.Helper()
	reactor := dfkernel.NewInputReactor(s, k)
	require.NoError(t, reactor.SendBatch(items))
}

// drain reads back everything buffered on k, after a RunAvailable.
func drain[T any](t *testing.T, s *dfkernel.Scheduler, k dfkernel.HandoffKey[T]) []T {
	t.Helper()
	return dfkernel.DrainHandoff(s, k)
}
