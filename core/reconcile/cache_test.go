package reconcile

import (
	"context"
	"errors"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCache_GetOrBuild(t *testing.T) {
	ctx := context.Background()
	c := NewCache[[]string](time.Minute)

	var builds int32
	build := func(context.Context) ([]string, error) {
		atomic.AddInt32(&builds, 1)
		return []string{"a"}, nil
	}

	v, err := c.GetOrBuild(ctx, "k", build)
	require.NoError(t, err)
	assert.Equal(t, []string{"a"}, v)

	_, err = c.GetOrBuild(ctx, "k", build)
	require.NoError(t, err)
	assert.Equal(t, int32(1), atomic.LoadInt32(&builds))

	c.Invalidate("k")
	_, err = c.GetOrBuild(ctx, "k", build)
	require.NoError(t, err)
	assert.Equal(t, int32(2), atomic.LoadInt32(&builds))
}

func TestCache_Expiry(t *testing.T) {
	now := time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC)
	c := NewCache[int](time.Minute)
	c.now = func() time.Time { return now }

	c.Set("k", 1)
	v, err := c.GetOrBuild(context.Background(), "k", func(context.Context) (int, error) { return 2, nil })
	require.NoError(t, err)
	assert.Equal(t, 1, v)

	now = now.Add(2 * time.Minute)
	v, err = c.GetOrBuild(context.Background(), "k", func(context.Context) (int, error) { return 2, nil })
	require.NoError(t, err)
	assert.Equal(t, 2, v)
}

func TestCache_ZeroTTLAlwaysBuilds(t *testing.T) {
	c := NewCache[int](0)
	n := 0
	build := func(context.Context) (int, error) { n++; return n, nil }

	v1, _ := c.GetOrBuild(context.Background(), "k", build)
	v2, _ := c.GetOrBuild(context.Background(), "k", build)
	assert.Equal(t, 1, v1)
	assert.Equal(t, 2, v2)
}

func TestCache_ErrorNotCached(t *testing.T) {
	c := NewCache[int](time.Minute)
	_, err := c.GetOrBuild(context.Background(), "k", func(context.Context) (int, error) { return 0, errors.New("down") })
	assert.EqualError(t, err, "down")

	v, err := c.GetOrBuild(context.Background(), "k", func(context.Context) (int, error) { return 7, nil })
	require.NoError(t, err)
	assert.Equal(t, 7, v)
}

func TestCache_Stampede(t *testing.T) {
	c := NewCache[int](time.Minute)
	var builds int32
	release := make(chan struct{})
	build := func(context.Context) (int, error) {
		atomic.AddInt32(&builds, 1)
		<-release
		return 42, nil
	}

	var wg sync.WaitGroup
	results := make([]int, 10)
	for i := range results {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			results[i], _ = c.GetOrBuild(context.Background(), "k", build)
		}(i)
	}
	time.Sleep(50 * time.Millisecond)
	close(release)
	wg.Wait()

	assert.Equal(t, int32(1), atomic.LoadInt32(&builds))
	for _, r := range results {
		assert.Equal(t, 42, r)
	}
}
