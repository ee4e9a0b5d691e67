package pod_test

import (
	"fmt"
	"testing"

	"github.com/nvrthles/river-pod/pod"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// should not run a factory until the provider is first read
func TestLazyMaterialization(t *testing.T) {
	runs := 0
	p := pod.New(func(r *pod.Ref) (int, error) {
		runs++
		return 42, nil
	})

	c := pod.NewContainer()
	assert.Equal(t, 0, runs)

	v, err := pod.Read(c, p)
	require.NoError(t, err)
	assert.Equal(t, 42, v)
	assert.Equal(t, 1, runs)
}

// should run a factory once and cache the element per container
func TestReadMemoizes(t *testing.T) {
	runs := 0
	p := pod.New(func(r *pod.Ref) (string, error) {
		runs++
		return "hello", nil
	})

	c := pod.NewContainer()
	for i := 0; i < 5; i++ {
		v, err := pod.Read(c, p)
		require.NoError(t, err)
		assert.Equal(t, "hello", v)
	}
	assert.Equal(t, 1, runs)
}

// should deliver one direct notification per mutation, in issuance order,
// before the mutating call returns
func TestDirectChannelMultiplicityAndOrder(t *testing.T) {
	count := pod.NewState(0)
	c := pod.NewContainer()

	var got []int
	_, sub, err := pod.Listen(c, count, func(v int) {
		got = append(got, v)
	})
	require.NoError(t, err)
	defer sub.Close()

	for i := 1; i <= 4; i++ {
		require.NoError(t, pod.Set(c, count, i))
		// Synchronous: the i-th notification landed before Set returned.
		assert.Len(t, got, i)
	}
	assert.Equal(t, []int{1, 2, 3, 4}, got)
}

// should notify direct listeners in registration order
func TestDirectListenersRegistrationOrder(t *testing.T) {
	count := pod.NewState(0)
	c := pod.NewContainer()

	var order []string
	_, s1, err := pod.Listen(c, count, func(v int) {
		order = append(order, fmt.Sprintf("first:%d", v))
	})
	require.NoError(t, err)
	defer s1.Close()
	_, s2, err := pod.Listen(c, count, func(v int) {
		order = append(order, fmt.Sprintf("second:%d", v))
	})
	require.NoError(t, err)
	defer s2.Close()

	require.NoError(t, pod.Set(c, count, 7))
	assert.Equal(t, []string{"first:7", "second:7"}, order)
}

// should deliver every direct mutation, equal values included
func TestDirectChannelEqualValueDelivered(t *testing.T) {
	count := pod.NewState(3)
	c := pod.NewContainer()

	var seen []int
	_, sub, err := pod.Listen(c, count, func(v int) { seen = append(seen, v) })
	require.NoError(t, err)
	defer sub.Close()

	require.NoError(t, pod.Set(c, count, 7))
	require.NoError(t, pod.Set(c, count, 7))
	require.NoError(t, pod.Set(c, count, 7))
	assert.Equal(t, []int{7, 7, 7}, seen)

	v, err := pod.Read(c, count)
	require.NoError(t, err)
	assert.Equal(t, 7, v)
}

// should reject Set on a provider without mutable state
func TestSetOnDerivedFails(t *testing.T) {
	derived := pod.New(func(r *pod.Ref) (int, error) { return 1, nil })
	c := pod.NewContainer()

	err := pod.Set(c, derived, 9)
	assert.ErrorIs(t, err, pod.ErrNotState)
}

// should apply Update as read-modify-write on the current value
func TestUpdateReadModifyWrite(t *testing.T) {
	count := pod.NewState(10)
	c := pod.NewContainer()

	require.NoError(t, pod.Update(c, count, func(v int) int { return v * 3 }))
	v, err := pod.Read(c, count)
	require.NoError(t, err)
	assert.Equal(t, 30, v)
}

// should keep two containers built from the same definitions fully isolated
func TestContainerIsolation(t *testing.T) {
	count := pod.NewState(0)
	double := pod.Combine1(count, func(v int) int { return v * 2 })

	c1 := pod.NewContainer()
	c2 := pod.NewContainer()

	notified2 := 0
	_, sub2, err := pod.Listen(c2, double, func(int) { notified2++ })
	require.NoError(t, err)
	defer sub2.Close()

	require.NoError(t, pod.Set(c1, count, 5))
	c1.Flush()
	c2.Flush()

	assert.Equal(t, 0, notified2)
	v1, err := pod.Read(c1, double)
	require.NoError(t, err)
	assert.Equal(t, 10, v1)
	v2, err := pod.Read(c2, double)
	require.NoError(t, err)
	assert.Equal(t, 0, v2)
}

// should fail every operation after the container is torn down
func TestContainerDisposed(t *testing.T) {
	count := pod.NewState(1)
	c := pod.NewContainer()

	_, sub, err := pod.Listen(c, count, func(int) {})
	require.NoError(t, err)

	c.Dispose()
	assert.True(t, c.Disposed())

	_, err = pod.Read(c, count)
	assert.ErrorIs(t, err, pod.ErrContainerDisposed)
	assert.ErrorIs(t, pod.Set(c, count, 2), pod.ErrContainerDisposed)
	assert.ErrorIs(t, c.UpdateOverrides(pod.Override(count, 3)), pod.ErrContainerDisposed)

	// Closing a handle whose target died with the container stays safe.
	sub.Close()
	sub.Close()
}

// should run element cleanups when the container is disposed
func TestDisposeRunsCleanups(t *testing.T) {
	cleaned := false
	p := pod.New(func(r *pod.Ref) (int, error) {
		r.OnDispose(func() { cleaned = true })
		return 1, nil
	})

	c := pod.NewContainer()
	_, err := pod.Read(c, p)
	require.NoError(t, err)

	c.Dispose()
	assert.True(t, cleaned)
}

// should report listener and dependent counts for diagnostics
func TestDiagnosticCounts(t *testing.T) {
	count := pod.NewState(0)
	double := pod.Combine1(count, func(v int) int { return v * 2 })
	c := pod.NewContainer()

	assert.False(t, pod.HasListeners(c, count))

	_, sub, err := pod.Listen(c, double, func(int) {})
	require.NoError(t, err)

	assert.Equal(t, 1, pod.ListenerCount(c, double))
	assert.Equal(t, 1, pod.DependentCount(c, count))
	assert.True(t, pod.HasListeners(c, count))
	assert.True(t, pod.HasListeners(c, double))

	sub.Close()
	assert.False(t, pod.HasListeners(c, double))
	assert.False(t, pod.HasListeners(c, count))
}

// should snapshot container stats
func TestContainerStats(t *testing.T) {
	count := pod.NewState(0)
	double := pod.Combine1(count, func(v int) int { return v * 2 })
	c := pod.NewContainer()

	_, sub, err := pod.Listen(c, double, func(int) {})
	require.NoError(t, err)
	defer sub.Close()

	st := c.Stats()
	assert.Equal(t, 2, st.Elements)
	assert.Equal(t, 1, st.Listeners)

	require.NoError(t, pod.Set(c, count, 1))
	assert.Equal(t, 1, c.Stats().QueueLen)
	c.Flush()
	st = c.Stats()
	assert.Equal(t, 0, st.QueueLen)
	assert.Equal(t, uint64(1), st.Flushes)
}
