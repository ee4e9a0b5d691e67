package pod_test

import (
	"testing"

	"github.com/nvrthles/river-pod/pod"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// should re-track dependencies on every run and tear down edges that were
// not re-established
func TestDynamicDependencies(t *testing.T) {
	useLeft := pod.NewState(true)
	left := pod.NewState(1)
	right := pod.NewState(100)
	picked := pod.New(func(r *pod.Ref) (int, error) {
		ul, err := useLeft.Watch(r)
		if err != nil {
			return 0, err
		}
		if ul {
			return left.Watch(r)
		}
		return right.Watch(r)
	})
	c := pod.NewContainer()

	var got []int
	_, sub, err := pod.Listen(c, picked, func(v int) { got = append(got, v) })
	require.NoError(t, err)
	defer sub.Close()

	assert.Equal(t, 1, pod.DependentCount(c, left))
	assert.Equal(t, 0, pod.DependentCount(c, right))

	require.NoError(t, pod.Set(c, useLeft, false))
	c.Flush()
	assert.Equal(t, []int{100}, got)
	assert.Equal(t, 0, pod.DependentCount(c, left))
	assert.Equal(t, 1, pod.DependentCount(c, right))

	// The abandoned branch no longer triggers recomputation.
	require.NoError(t, pod.Set(c, left, 2))
	c.Flush()
	assert.Equal(t, []int{100}, got)
}

// should dispose a dependency that loses its last dependent in a re-track
func TestEdgeTeardownDisposes(t *testing.T) {
	useExpensive := pod.NewState(true)
	disposed := 0
	expensive := pod.New(func(r *pod.Ref) (int, error) {
		r.OnDispose(func() { disposed++ })
		return 99, nil
	})
	picked := pod.New(func(r *pod.Ref) (int, error) {
		ue, err := useExpensive.Watch(r)
		if err != nil {
			return 0, err
		}
		if ue {
			return expensive.Watch(r)
		}
		return 0, nil
	})
	c := pod.NewContainer()

	_, sub, err := pod.Listen(c, picked, func(int) {})
	require.NoError(t, err)
	defer sub.Close()
	assert.Equal(t, 0, disposed)

	require.NoError(t, pod.Set(c, useExpensive, false))
	c.Flush()
	assert.Equal(t, 1, disposed)
	assert.False(t, pod.HasListeners(c, expensive))
}

// should keep a KeepAlive element alive with no listeners or dependents
func TestKeepAlive(t *testing.T) {
	runs := 0
	cached := pod.New(func(r *pod.Ref) (int, error) {
		runs++
		return 5, nil
	}, pod.KeepAlive())
	c := pod.NewContainer()

	_, sub, err := pod.Listen(c, cached, func(int) {})
	require.NoError(t, err)
	sub.Close()

	_, err = pod.Read(c, cached)
	require.NoError(t, err)
	assert.Equal(t, 1, runs)
}

// should rebuild a disposed element from scratch on the next read
func TestDisposedElementRematerializes(t *testing.T) {
	runs := 0
	p := pod.New(func(r *pod.Ref) (int, error) {
		runs++
		return runs, nil
	})
	c := pod.NewContainer()

	v, sub, err := pod.Listen(c, p, func(int) {})
	require.NoError(t, err)
	assert.Equal(t, 1, v)
	sub.Close()

	v2, err := pod.Read(c, p)
	require.NoError(t, err)
	assert.Equal(t, 2, v2)
	assert.Equal(t, 2, runs)
}

// should abort a compute that closes a dependency cycle, keeping the
// prior value
func TestCyclicDependency(t *testing.T) {
	var aDef, bDef *pod.Definition[int]
	aDef = pod.New(func(r *pod.Ref) (int, error) {
		return bDef.Watch(r)
	}, pod.WithName("a"))
	bDef = pod.New(func(r *pod.Ref) (int, error) {
		return aDef.Watch(r)
	}, pod.WithName("b"))
	c := pod.NewContainer()

	_, err := pod.Read(c, aDef)
	require.Error(t, err)
	assert.ErrorIs(t, err, pod.ErrCyclicDependency)
	assert.Contains(t, err.Error(), "a -> b -> a")
}

// should keep the prior value when a recompute runs into a cycle
func TestCycleKeepsPriorValue(t *testing.T) {
	selfRefEnabled := pod.NewState(false)
	var p *pod.Definition[int]
	p = pod.New(func(r *pod.Ref) (int, error) {
		enabled, err := selfRefEnabled.Watch(r)
		if err != nil {
			return 0, err
		}
		if enabled {
			return p.Watch(r)
		}
		return 7, nil
	})

	var errs []error
	c := pod.NewContainer(pod.WithOnError(func(err error) { errs = append(errs, err) }))

	v, sub, err := pod.Listen(c, p, func(int) {})
	require.NoError(t, err)
	defer sub.Close()
	assert.Equal(t, 7, v)

	require.NoError(t, pod.Set(c, selfRefEnabled, true))
	c.Flush()

	require.NotEmpty(t, errs)
	assert.ErrorIs(t, errs[0], pod.ErrCyclicDependency)
	v2, err := pod.Read(c, p)
	require.NoError(t, err)
	assert.Equal(t, 7, v2)
}

// should not record an edge for a Peek
func TestPeekDoesNotTrack(t *testing.T) {
	count := pod.NewState(0)
	runs := 0
	snap := pod.New(func(r *pod.Ref) (int, error) {
		runs++
		return count.Peek(r)
	})
	c := pod.NewContainer()

	v, sub, err := pod.Listen(c, snap, func(int) {})
	require.NoError(t, err)
	defer sub.Close()
	assert.Equal(t, 0, v)

	require.NoError(t, pod.Set(c, count, 9))
	c.Flush()
	assert.Equal(t, 1, runs)
	assert.Equal(t, 0, pod.DependentCount(c, count))
}

// should run cleanups before each recompute, newest first
func TestCleanupsRunBeforeRecompute(t *testing.T) {
	count := pod.NewState(0)
	var order []string
	p := pod.New(func(r *pod.Ref) (int, error) {
		v, err := count.Watch(r)
		if err != nil {
			return 0, err
		}
		r.OnDispose(func() { order = append(order, "first") })
		r.OnDispose(func() { order = append(order, "second") })
		return v, nil
	})
	c := pod.NewContainer()

	_, sub, err := pod.Listen(c, p, func(int) {})
	require.NoError(t, err)
	defer sub.Close()
	assert.Empty(t, order)

	require.NoError(t, pod.Set(c, count, 1))
	c.Flush()
	assert.Equal(t, []string{"second", "first"}, order)
}

// should surface a factory error to the triggering reader and retry on
// the next read
func TestFactoryErrorPropagates(t *testing.T) {
	attempts := 0
	p := pod.New(func(r *pod.Ref) (int, error) {
		attempts++
		if attempts == 1 {
			return 0, assert.AnError
		}
		return 42, nil
	})
	c := pod.NewContainer()

	_, err := pod.Read(c, p)
	require.Error(t, err)
	assert.ErrorIs(t, err, assert.AnError)

	v, err := pod.Read(c, p)
	require.NoError(t, err)
	assert.Equal(t, 42, v)
}

// should use a custom equality contract for the short-circuit
func TestCustomEquality(t *testing.T) {
	count := pod.NewState(0)
	// Buckets of ten compare equal, so crossing within a bucket is silent.
	bucket := pod.Combine1(count, func(v int) int { return v },
		pod.WithEquals(func(prev, next int) bool { return prev/10 == next/10 }))
	c := pod.NewContainer()

	notified := 0
	_, sub, err := pod.Listen(c, bucket, func(int) { notified++ })
	require.NoError(t, err)
	defer sub.Close()

	require.NoError(t, pod.Set(c, count, 9))
	c.Flush()
	assert.Equal(t, 0, notified)

	require.NoError(t, pod.Set(c, count, 10))
	c.Flush()
	assert.Equal(t, 1, notified)
}
