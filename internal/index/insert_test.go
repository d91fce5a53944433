package index

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/go-sod/quadtree/internal/geom"
	"github.com/go-sod/quadtree/pkg/container/quadtree"
)

func TestIndex_InsertPanicReleasesLock(t *testing.T) {
	idx, err := New(&Config{Width: 100, Height: 100, Capacity: 1, MaxDepth: 48})
	require.NoError(t, err)
	idx.tree, err = quadtree.New(geom.NewRect(0, 0, 100, 100),
		quadtree.WithCapacity(1),
		quadtree.WithDivideHook(func(quadtree.Region) {
			panic("divide failed")
		}),
	)
	require.NoError(t, err)

	ctx := context.Background()
	require.True(t, idx.Insert(ctx, "test", geom.NewPoint(10, 10)))
	require.Panics(t, func() {
		idx.Insert(ctx, "test", geom.NewPoint(60, 60))
	})

	done := make(chan int)
	go func() {
		idx.Contains(geom.NewPoint(10, 10))
		idx.mtx.Lock()
		pending := len(idx.pending)
		idx.mtx.Unlock()
		done <- pending
	}()
	select {
	case pending := <-done:
		require.Zero(t, pending)
	case <-time.After(5 * time.Second):
		t.Fatal("index lock was not released after a panicking insert")
	}
}
