package pod

import "errors"

// OverrideEntry is one replacement rule: a definition (optionally a single
// family instance) bound to a replacement value or factory. At most one
// entry is active per target at a time; the most recently applied wins.
type OverrideEntry struct {
	key     elementKey
	name    string
	value   any
	factory func(*Ref) (any, error)
}

// Target reports the diagnostic name of the overridden provider.
func (e OverrideEntry) Target() string { return e.name }

// Override replaces the provider's backing value.
func Override[T any](def *Definition[T], v T) OverrideEntry {
	return OverrideEntry{key: def.a.key(), name: def.a.name, value: v}
}

// OverrideFactory replaces the provider's backing factory; the replacement
// runs under the same tracking rules as the original.
func OverrideFactory[T any](def *Definition[T], factory func(*Ref) (T, error)) OverrideEntry {
	return OverrideEntry{
		key:  def.a.key(),
		name: def.a.name,
		factory: func(r *Ref) (any, error) {
			return factory(r)
		},
	}
}

// OverrideArg replaces the backing value of a single family instance,
// leaving the family's other instances untouched.
func OverrideArg[T, A any](fam *Family[T, A], arg A, v T) OverrideEntry {
	return Override(fam.Of(arg), v)
}

// OverrideArgFactory replaces the backing factory of a single family
// instance.
func OverrideArgFactory[T, A any](fam *Family[T, A], arg A, factory func(*Ref) (T, error)) OverrideEntry {
	return OverrideFactory(fam.Of(arg), factory)
}

// UpdateOverrides applies replacement rules in order. A live target is
// recomputed synchronously against its new backing, so reads issued right
// after the call already observe the replacement; its listener
// notification is staged last-wins and delivered once at the next tick,
// so back-to-back overrides of one target produce a single notification
// carrying only the final value. Dependents go through the normal
// deferred channel. A target with no live element is simply re-bound: its
// first materialization produces the override's value.
// Every entry is applied even when an earlier one's recompute fails; the
// failures are joined into the returned error and the staged work of the
// successful entries is still handed to the scheduler.
func (c *Container) UpdateOverrides(entries ...OverrideEntry) error {
	if c.disposed {
		return ErrContainerDisposed
	}
	defer c.scheduleFlush()
	var errs []error
	for _, e := range entries {
		c.overrides[e.key] = e
		el, ok := c.elements[e.key]
		if !ok || !el.hasValue || el.disposed {
			continue
		}
		old := el.value
		if err := c.compute(el); err != nil {
			errs = append(errs, err)
			continue
		}
		el.dirty = false
		if el.a.equals(old, el.value) {
			continue
		}
		el.pendingNotify = true
		c.enqueue(el)
		c.markDependentsDirty(el)
	}
	return errors.Join(errs...)
}
