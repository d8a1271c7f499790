package pipeline_test

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"simhire-backend/internal/pipeline"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSnapshotStartsStale(t *testing.T) {
	snap := pipeline.NewSnapshot(func(context.Context) ([]int, error) { return []int{1, 2}, nil })

	assert.True(t, snap.Stale())
	assert.Empty(t, snap.Items())

	items, err := snap.Get(context.Background())
	require.NoError(t, err)
	assert.Equal(t, []int{1, 2}, items)
	assert.False(t, snap.Stale())
	assert.Equal(t, uint64(1), snap.Generation())
}

func TestSnapshotInvalidate(t *testing.T) {
	calls := 0
	snap := pipeline.NewSnapshot(func(context.Context) ([]int, error) {
		calls++
		return []int{calls}, nil
	})

	_, err := snap.Get(context.Background())
	require.NoError(t, err)
	_, err = snap.Get(context.Background())
	require.NoError(t, err)
	assert.Equal(t, 1, calls, "fresh snapshot must not refetch")

	snap.Invalidate()
	items, err := snap.Get(context.Background())
	require.NoError(t, err)
	assert.Equal(t, []int{2}, items)
}

func TestSnapshotItemsIsACopy(t *testing.T) {
	snap := pipeline.NewSnapshot(func(context.Context) ([]int, error) { return []int{1}, nil })
	_, err := snap.Refresh(context.Background())
	require.NoError(t, err)

	items := snap.Items()
	items[0] = 99

	assert.Equal(t, []int{1}, snap.Items())
}

func TestSnapshotDropsStaleResponse(t *testing.T) {
	release := make(chan struct{})
	var mu sync.Mutex
	call := 0

	snap := pipeline.NewSnapshot(func(context.Context) ([]string, error) {
		mu.Lock()
		call++
		n := call
		mu.Unlock()
		if n == 1 {
			<-release // the first request resolves last
			return []string{"old"}, nil
		}
		return []string{"new"}, nil
	})

	done := make(chan bool)
	go func() {
		stored, _ := snap.Refresh(context.Background())
		done <- stored
	}()

	// wait until the first refresh has started
	require.Eventually(t, func() bool {
		mu.Lock()
		defer mu.Unlock()
		return call == 1
	}, time.Second, time.Millisecond)

	stored, err := snap.Refresh(context.Background())
	require.NoError(t, err)
	assert.True(t, stored)

	close(release)
	assert.False(t, <-done, "late response must be dropped")
	assert.Equal(t, []string{"new"}, snap.Items())
	assert.Equal(t, uint64(2), snap.Generation())
}

func TestSnapshotInvalidateDuringRefresh(t *testing.T) {
	release := make(chan struct{})
	var mu sync.Mutex
	call := 0

	snap := pipeline.NewSnapshot(func(context.Context) ([]int, error) {
		mu.Lock()
		call++
		n := call
		mu.Unlock()
		if n == 1 {
			<-release
		}
		return []int{n}, nil
	})

	done := make(chan bool)
	go func() {
		stored, _ := snap.Refresh(context.Background())
		done <- stored
	}()

	require.Eventually(t, func() bool {
		mu.Lock()
		defer mu.Unlock()
		return call == 1
	}, time.Second, time.Millisecond)

	// a write lands while the first read is still in flight
	snap.Invalidate()
	close(release)

	t.Run("Should drop the response that started before the write", func(t *testing.T) {
		assert.False(t, <-done)
		assert.True(t, snap.Stale())
		assert.Empty(t, snap.Items())
	})

	t.Run("Should refetch on the next read", func(t *testing.T) {
		items, err := snap.Get(context.Background())
		require.NoError(t, err)
		assert.Equal(t, []int{2}, items)
		assert.False(t, snap.Stale())
		assert.Equal(t, uint64(2), snap.Generation())
	})
}

func TestSnapshotLoadError(t *testing.T) {
	snap := pipeline.NewSnapshot(func(context.Context) ([]int, error) { return nil, errors.New("offline") })

	_, err := snap.Get(context.Background())

	assert.EqualError(t, err, "offline")
	assert.True(t, snap.Stale())
}
