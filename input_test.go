package dfkernel

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

func TestInputReactor_SendWakesConsumer(t *testing.T) {
	b := NewGraph()
	in := AddHandoff[int](b)
	var got []int
	b.AddSubgraph(0, []HandoffInput{Input(b, in, NoDelay)}, nil, Lazy, NoLoop, func(ctx *Context) {
		got = append(got, Handle(ctx, in).Drain()...)
	})
	g, diags := b.Compile()
	require.Nil(t, diags)
	s, err := NewScheduler(g)
	require.NoError(t, err)

	reactor := NewInputReactor(s, in)
	require.NoError(t, reactor.Send(1))
	require.NoError(t, reactor.Send(2))

	require.NoError(t, s.RunAvailable())
	require.Equal(t, []int{1, 2}, got)
}

func TestInputReactor_SendBatchSingleWake(t *testing.T) {
	b := NewGraph()
	in := AddHandoff[string](b)
	var runs int
	var got []string
	b.AddSubgraph(0, []HandoffInput{Input(b, in, NoDelay)}, nil, Lazy, NoLoop, func(ctx *Context) {
		runs++
		got = append(got, Handle(ctx, in).Drain()...)
	})
	g, diags := b.Compile()
	require.Nil(t, diags)
	s, err := NewScheduler(g)
	require.NoError(t, err)

	reactor := NewInputReactor(s, in)
	require.NoError(t, reactor.SendBatch([]string{"a", "b", "c"}))

	require.NoError(t, s.RunAvailable())
	require.Equal(t, 1, runs)
	require.Equal(t, []string{"a", "b", "c"}, got)
}

// TestInputReactor_WakesRunAsync exercises the asynchronous delivery path:
// a reactor feeding a handoff from another goroutine must wake a blocked
// RunAsync the same way an external RequestSchedule does.
func TestInputReactor_WakesRunAsync(t *testing.T) {
	b := NewGraph()
	in := AddHandoff[int](b)
	done := make(chan int, 1)
	b.AddSubgraph(0, []HandoffInput{Input(b, in, NoDelay)}, nil, Lazy, NoLoop, func(ctx *Context) {
		items := Handle(ctx, in).Drain()
		if len(items) > 0 {
			done <- items[0]
		}
	})
	g, diags := b.Compile()
	require.Nil(t, diags)
	s, err := NewScheduler(g)
	require.NoError(t, err)

	reactor := NewInputReactor(s, in)

	ctx, cancel := context.WithTimeout(context.Background(), time.Second)
	defer cancel()
	runDone := make(chan error, 1)
	go func() { runDone <- s.RunAsync(ctx) }()

	time.Sleep(10 * time.Millisecond)
	require.NoError(t, reactor.Send(7))

	select {
	case v := <-done:
		require.Equal(t, 7, v)
	case <-time.After(time.Second):
		t.Fatal("consumer never ran after external Send")
	}
	cancel()
	<-runDone
}

func TestInputReactor_SendAfterShutdown(t *testing.T) {
	b := NewGraph()
	in := AddHandoff[int](b)
	b.AddSubgraph(0, []HandoffInput{Input(b, in, NoDelay)}, nil, Lazy, NoLoop, func(ctx *Context) {})
	g, diags := b.Compile()
	require.Nil(t, diags)
	s, err := NewScheduler(g)
	require.NoError(t, err)

	reactor := NewInputReactor(s, in)
	s.Shutdown()
	require.ErrorIs(t, reactor.Send(1), ErrSchedulerTerminated)
}
