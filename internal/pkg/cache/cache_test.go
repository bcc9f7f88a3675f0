package cache

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

func counter(n *atomic.Int32, value string) func(context.Context) (string, error) {
	return func(context.Context) (string, error) {
		n.Add(1)
		return value, nil
	}
}

func TestKey(t *testing.T) {
	a := Key("leave-requests", map[string]string{"page": "0", "size": "10"}, "s1")
	b := Key("leave-requests", map[string]string{"size": "10", "page": "0"}, "s1")
	assert.Equal(t, a, b)
	assert.Len(t, a, 64)

	assert.NotEqual(t, a, Key("leave-requests", map[string]string{"page": "1", "size": "10"}, "s1"))
	assert.NotEqual(t, a, Key("leave-requests", map[string]string{"page": "0", "size": "10"}, "s2"))
	assert.NotEqual(t, a, Key("calendar", map[string]string{"page": "0", "size": "10"}, "s1"))
	assert.NotEqual(t, Key("r", map[string]string{"a": "b=c"}, ""), Key("r", map[string]string{"a=b": "c"}, ""))
}

func TestGetOrLoad_CachesWithinTTL(t *testing.T) {
	c := New(time.Minute)
	now := time.Date(2024, 6, 1, 12, 0, 0, 0, time.UTC)
	c.now = func() time.Time { return now }

	var loads atomic.Int32
	ctx := context.Background()

	v, err := GetOrLoad(ctx, c, "departments", nil, "s1", counter(&loads, "x"))
	require.NoError(t, err)
	assert.Equal(t, "x", v)

	v, err = GetOrLoad(ctx, c, "departments", nil, "s1", counter(&loads, "y"))
	require.NoError(t, err)
	assert.Equal(t, "x", v)
	assert.EqualValues(t, 1, loads.Load())

	now = now.Add(time.Minute)
	v, err = GetOrLoad(ctx, c, "departments", nil, "s1", counter(&loads, "z"))
	require.NoError(t, err)
	assert.Equal(t, "z", v)
	assert.EqualValues(t, 2, loads.Load())
}

func TestGetOrLoad_ScopesAreIsolated(t *testing.T) {
	c := New(time.Minute)
	var loads atomic.Int32
	ctx := context.Background()

	a, _ := GetOrLoad(ctx, c, "balances", nil, "alice", counter(&loads, "alice-data"))
	b, _ := GetOrLoad(ctx, c, "balances", nil, "bob", counter(&loads, "bob-data"))

	assert.Equal(t, "alice-data", a)
	assert.Equal(t, "bob-data", b)
	assert.EqualValues(t, 2, loads.Load())
}

func TestGetOrLoad_ErrorsAreNotCached(t *testing.T) {
	c := New(time.Minute)
	boom := errors.New("boom")
	ctx := context.Background()

	_, err := GetOrLoad(ctx, c, "calendar", nil, "s", func(context.Context) (int, error) { return 0, boom })
	assert.ErrorIs(t, err, boom)
	assert.Zero(t, c.Len())

	v, err := GetOrLoad(ctx, c, "calendar", nil, "s", func(context.Context) (int, error) { return 7, nil })
	require.NoError(t, err)
	assert.Equal(t, 7, v)
}

func TestGetOrLoad_CoalescesConcurrentLoads(t *testing.T) {
	c := New(time.Minute)
	var loads atomic.Int32
	release := make(chan struct{})

	load := func(context.Context) (string, error) {
		loads.Add(1)
		<-release
		return "shared", nil
	}

	const callers = 8
	var wg sync.WaitGroup
	results := make([]string, callers)
	for i := range callers {
		wg.Add(1)
		go func() {
			defer wg.Done()
			results[i], _ = GetOrLoad(context.Background(), c, "calendar", map[string]string{"month": "6"}, "s", load)
		}()
	}

	require.Eventually(t, func() bool { return loads.Load() == 1 }, time.Second, time.Millisecond)
	time.Sleep(20 * time.Millisecond)
	close(release)
	wg.Wait()

	assert.EqualValues(t, 1, loads.Load())
	for _, r := range results {
		assert.Equal(t, "shared", r)
	}
}

func TestInvalidate(t *testing.T) {
	c := New(time.Minute)
	ctx := context.Background()
	var loads atomic.Int32

	_, _ = GetOrLoad(ctx, c, "leave-requests", nil, "s1", counter(&loads, "a"))
	_, _ = GetOrLoad(ctx, c, "leave-requests", nil, "s2", counter(&loads, "a"))
	_, _ = GetOrLoad(ctx, c, "calendar", nil, "s1", counter(&loads, "b"))
	_, _ = GetOrLoad(ctx, c, "departments", nil, "s1", counter(&loads, "c"))
	require.Equal(t, 4, c.Len())

	c.Invalidate("leave-requests", "calendar")
	assert.Equal(t, 1, c.Len())

	v, _ := GetOrLoad(ctx, c, "leave-requests", nil, "s1", counter(&loads, "fresh"))
	assert.Equal(t, "fresh", v)
}

func TestInvalidate_DuringLoadDoesNotStoreStale(t *testing.T) {
	c := New(time.Minute)
	ctx := context.Background()

	v, err := GetOrLoad(ctx, c, "calendar", nil, "s", func(context.Context) (string, error) {
		c.Invalidate("calendar")
		return "stale", nil
	})
	require.NoError(t, err)
	assert.Equal(t, "stale", v)
	assert.Zero(t, c.Len())
}

func TestInvalidateScope(t *testing.T) {
	c := New(time.Minute)
	ctx := context.Background()
	var loads atomic.Int32

	_, _ = GetOrLoad(ctx, c, "balances", nil, "alice", counter(&loads, "a"))
	_, _ = GetOrLoad(ctx, c, "departments", nil, "alice", counter(&loads, "a"))
	_, _ = GetOrLoad(ctx, c, "balances", nil, "bob", counter(&loads, "b"))

	c.InvalidateScope("alice")
	assert.Equal(t, 1, c.Len())
}

func TestSweep(t *testing.T) {
	c := New(time.Minute)
	now := time.Date(2024, 6, 1, 12, 0, 0, 0, time.UTC)
	c.now = func() time.Time { return now }
	ctx := context.Background()
	var loads atomic.Int32

	_, _ = GetOrLoad(ctx, c, "a", nil, "s", counter(&loads, "1"))
	now = now.Add(30 * time.Second)
	_, _ = GetOrLoad(ctx, c, "b", nil, "s", counter(&loads, "2"))
	now = now.Add(45 * time.Second)

	assert.Equal(t, 1, c.Sweep())
	assert.Equal(t, 1, c.Len())
	assert.Zero(t, c.Sweep())
}

func TestZeroTTLDisablesStorage(t *testing.T) {
	c := New(0)
	var loads atomic.Int32
	ctx := context.Background()

	_, _ = GetOrLoad(ctx, c, "a", nil, "s", counter(&loads, "1"))
	_, _ = GetOrLoad(ctx, c, "a", nil, "s", counter(&loads, "1"))
	assert.EqualValues(t, 2, loads.Load())
	assert.Zero(t, c.Len())
}
