// Package pod is a reactive state-management runtime: a container builds a
// directed dependency graph of providers, tracks which consumers observe
// which providers, and propagates value changes under precise ordering and
// batching rules.
//
// # Providers
//
// A Definition is an identity plus a recipe for a value. Derived providers
// recompute from the providers they watch; state providers hold a value
// mutated through the direct channel:
//
//	count := pod.NewState(0, pod.WithName("count"))
//	double := pod.New(func(r *pod.Ref) (int, error) {
//	    v, err := count.Watch(r)
//	    return v * 2, err
//	}, pod.WithName("double"))
//
//	c := pod.NewContainer()
//	v, _ := pod.Read(c, double) // 0
//	pod.Set(c, count, 21)
//	c.Flush()
//	v, _ = pod.Read(c, double) // 42
//
// # The two channels
//
// A direct mutation (Set, Update, UpdateOverrides) synchronously stores
// the value and fires the target's listeners, in registration order,
// before the call returns. Providers that depend on the target are only
// marked dirty; they recompute at the next tick (Flush), notify once with
// the final value, and stop the cascade when the recomputed value equals
// the previous one. N mutations inside one tick therefore reach a direct
// listener N times but a derived provider's listener exactly once.
//
// Flush is driven by the host: install its deferred-task primitive with
// WithScheduler, or call Flush (or Batch) yourself.
//
// # Families
//
// A Family maps an argument to an independent provider instance per
// normalized argument key:
//
//	user := pod.NewFamily(func(r *pod.Ref, id int) (User, error) {
//	    return loadUser(id)
//	})
//	u, _ := pod.Read(c, user.Of(7))
//
// # Overrides
//
// UpdateOverrides swaps a provider's backing value or factory at runtime
// without breaking existing subscriptions; overriding a provider that was
// never materialized only changes what its first read produces.
package pod
