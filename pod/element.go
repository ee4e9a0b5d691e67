package pod

import (
	mapset "github.com/deckarep/golang-set/v2"
)

// element is the live per-(definition, argument) node inside a container:
// current value, dependency edges in both directions, external listeners
// and the dirty bookkeeping the scheduler works off.
type element struct {
	c *Container
	a *anchor

	value    any
	hasValue bool

	// deps are the elements this one watched during its last run;
	// dependents is the reverse edge set.
	deps       mapset.Set[*element]
	dependents mapset.Set[*element]

	// listeners is ordered: direct notifications go out in registration
	// order.
	listeners []*Subscription

	cleanups []func()

	dirty         bool
	queued        bool
	computing     bool
	disposed      bool
	pendingNotify bool
}

func newElement(c *Container, a *anchor) *element {
	return &element{
		c:          c,
		a:          a,
		deps:       mapset.NewThreadUnsafeSet[*element](),
		dependents: mapset.NewThreadUnsafeSet[*element](),
	}
}

// notify invokes every open listener, in registration order, with the
// element's current value. The slice is copied first: callbacks may close
// handles or subscribe new ones while being notified.
func (el *element) notify() {
	if len(el.listeners) == 0 {
		return
	}
	subs := make([]*Subscription, len(el.listeners))
	copy(subs, el.listeners)
	v := el.value
	for _, s := range subs {
		if s.closed {
			continue
		}
		s.fn(v)
	}
}

func (el *element) removeListener(s *Subscription) {
	for i, cur := range el.listeners {
		if cur == s {
			el.listeners = append(el.listeners[:i], el.listeners[i+1:]...)
			return
		}
	}
}

func (el *element) runCleanups() {
	if len(el.cleanups) == 0 {
		return
	}
	cleanups := el.cleanups
	el.cleanups = nil
	for i := len(cleanups) - 1; i >= 0; i-- {
		cleanups[i]()
	}
}

// unused reports whether nothing observes this element anymore.
func (el *element) unused() bool {
	return len(el.listeners) == 0 && el.dependents.Cardinality() == 0
}
