package pod

import (
	mapset "github.com/deckarep/golang-set/v2"
)

// Container owns the element map, the override registry and the deferred
// queue. It is the sole mutation entry point for the graph; all operations
// assume a single logical execution context (the host serializes calls),
// so no lock guards the element map.
type Container struct {
	elements  map[elementKey]*element
	overrides map[elementKey]OverrideEntry

	queue       []*element
	batchDepth  int
	directDepth int
	flushing    bool
	scheduled   bool
	flushes     uint64

	schedule func(flush func())
	onError  OnErrorFunc

	// activeRef is the tracking context of the innermost running factory;
	// stack holds the chain of computing elements for cycle reporting.
	activeRef *Ref
	stack     []*element

	disposed bool
}

// ContainerOption configures a container at construction time.
type ContainerOption func(c *Container)

// WithOnError routes errors raised during deferred flushes, where no
// caller is on the stack to return them to.
func WithOnError(fn OnErrorFunc) ContainerOption {
	return func(c *Container) { c.onError = fn }
}

// WithScheduler installs the host's next-tick primitive. Whenever the
// deferred queue goes from empty to non-empty outside a flush, schedule is
// invoked once with a flush callback the host must run at its next
// cooperative opportunity.
func WithScheduler(schedule func(flush func())) ContainerOption {
	return func(c *Container) { c.schedule = schedule }
}

// WithOverrides installs override entries before any element exists, so
// the very first read already observes the replacement.
func WithOverrides(entries ...OverrideEntry) ContainerOption {
	return func(c *Container) {
		for _, e := range entries {
			c.overrides[e.key] = e
		}
	}
}

// NewContainer creates an empty container.
func NewContainer(opts ...ContainerOption) *Container {
	c := &Container{
		elements:  map[elementKey]*element{},
		overrides: map[elementKey]OverrideEntry{},
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// resolve returns the live element for an anchor, materializing and
// computing it on first use and refreshing it when it is dirty, so a read
// mid-tick never observes a stale upstream value.
func (c *Container) resolve(a *anchor) (*element, error) {
	if c.disposed {
		return nil, ErrContainerDisposed
	}
	el, ok := c.elements[a.key()]
	if !ok {
		el = newElement(c, a)
		c.elements[a.key()] = el
	}
	if el.computing {
		return nil, c.cycleError(el)
	}
	if !el.hasValue {
		if err := c.compute(el); err != nil {
			return nil, err
		}
		el.dirty = false
	} else if el.dirty {
		if err := c.refresh(el); err != nil {
			return nil, err
		}
	}
	return el, nil
}

func (c *Container) cycleError(el *element) error {
	chain := make([]string, 0, len(c.stack)+1)
	for _, e := range c.stack {
		chain = append(chain, e.a.name)
	}
	return &CycleError{Chain: append(chain, el.a.name)}
}

// factoryFor picks the backing factory, honoring the active override for
// the element if one is registered.
func (c *Container) factoryFor(el *element) func(*Ref) (any, error) {
	if ov, ok := c.overrides[el.a.key()]; ok {
		if ov.factory != nil {
			return ov.factory
		}
		v := ov.value
		return func(*Ref) (any, error) { return v, nil }
	}
	return el.a.factory
}

// compute runs the element's factory under a fresh tracking context and
// diffs the recorded edges against the previous run's. On failure the
// prior value and edges are kept.
func (c *Container) compute(el *element) error {
	el.computing = true
	ref := &Ref{c: c, el: el, reads: mapset.NewThreadUnsafeSet[*element]()}
	prevRef := c.activeRef
	c.activeRef = ref
	c.stack = append(c.stack, el)

	el.runCleanups()
	v, err := c.factoryFor(el)(ref)

	c.stack = c.stack[:len(c.stack)-1]
	c.activeRef = prevRef
	el.computing = false

	if err != nil {
		// Tear down only the edges this aborted run added.
		for d := range ref.reads.Iter() {
			if !el.deps.Contains(d) {
				d.dependents.Remove(el)
				c.maybeDispose(d)
			}
		}
		return &ComputeError{Provider: el.a.name, Cause: err}
	}

	for d := range el.deps.Iter() {
		if !ref.reads.Contains(d) {
			d.dependents.Remove(el)
			c.maybeDispose(d)
		}
	}
	el.deps = ref.reads
	el.value = v
	el.hasValue = true
	return nil
}

// maybeDispose destroys the element once nothing observes it anymore,
// tearing down its own dependency edges, which may cascade.
func (c *Container) maybeDispose(el *element) {
	if el.disposed || el.computing || el.a.keepAlive || c.disposed {
		return
	}
	if !el.unused() {
		return
	}
	c.disposeElement(el)
}

func (c *Container) disposeElement(el *element) {
	el.disposed = true
	delete(c.elements, el.a.key())
	el.runCleanups()
	for _, s := range el.listeners {
		s.closed = true
	}
	el.listeners = nil
	for d := range el.deps.Iter() {
		d.dependents.Remove(el)
		c.maybeDispose(d)
	}
	el.deps.Clear()
}

// Dispose tears down the container: every element's cleanups run, every
// handle is closed, and all further operations fail ErrContainerDisposed.
func (c *Container) Dispose() {
	if c.disposed {
		return
	}
	c.disposed = true
	for _, el := range c.elements {
		el.disposed = true
		el.runCleanups()
		for _, s := range el.listeners {
			s.closed = true
		}
		el.listeners = nil
	}
	c.elements = nil
	c.overrides = nil
	c.queue = nil
}

// Disposed reports whether the container has been torn down.
func (c *Container) Disposed() bool { return c.disposed }

// Read materializes the provider if needed and returns its value without
// any tracking side effect.
func Read[T any](c *Container, def *Definition[T]) (T, error) {
	var zero T
	el, err := c.resolve(def.a)
	if err != nil {
		return zero, err
	}
	return el.value.(T), nil
}

// Watch materializes the provider and registers onChange for future
// updates, returning the current value and the caller-owned handle. When
// called from inside a running factory it additionally records a
// dependency edge, like Definition.Watch.
func Watch[T any](c *Container, def *Definition[T], onChange func(T)) (T, *Subscription, error) {
	var zero T
	el, err := c.resolve(def.a)
	if err != nil {
		return zero, nil, err
	}
	if r := c.activeRef; r != nil {
		r.reads.Add(el)
		el.dependents.Add(r.el)
	}
	sub := c.addListener(el, func(v any) { onChange(v.(T)) })
	return el.value.(T), sub, nil
}

// Listen is Watch for leaf consumers: it only stores a listener and never
// records a graph edge.
func Listen[T any](c *Container, def *Definition[T], onChange func(T)) (T, *Subscription, error) {
	var zero T
	el, err := c.resolve(def.a)
	if err != nil {
		return zero, nil, err
	}
	sub := c.addListener(el, func(v any) { onChange(v.(T)) })
	return el.value.(T), sub, nil
}

func (c *Container) addListener(el *element, fn func(any)) *Subscription {
	sub := &Subscription{el: el, fn: fn}
	el.listeners = append(el.listeners, sub)
	return sub
}

// Set applies a direct mutation to a state provider: the value is stored
// and every listener is notified, in registration order, before Set
// returns; dependents are marked dirty and handled at the next tick.
func Set[T any](c *Container, def *Definition[T], v T) error {
	if c.disposed {
		return ErrContainerDisposed
	}
	if def.a.kind != kindState {
		return ErrNotState
	}
	el, err := c.resolve(def.a)
	if err != nil {
		return err
	}
	c.setDirect(el, v)
	return nil
}

// Update is a read-modify-write Set.
func Update[T any](c *Container, def *Definition[T], fn func(T) T) error {
	if c.disposed {
		return ErrContainerDisposed
	}
	if def.a.kind != kindState {
		return ErrNotState
	}
	el, err := c.resolve(def.a)
	if err != nil {
		return err
	}
	c.setDirect(el, fn(el.value.(T)))
	return nil
}

// setDirect never compares against the previous value: a direct mutation
// is a caller-visible event and is delivered with the exact multiplicity
// it was issued, equal values included. The equality short-circuit belongs
// to the deferred channel only.
func (c *Container) setDirect(el *element, v any) {
	// Listeners may mutate other providers while being notified; that
	// nests setDirect. A mutual-notification loop would recurse without
	// bound, so it is cut off as a cascade overflow.
	if c.directDepth >= maxFlushPasses {
		c.fail(ErrCascadeOverflow)
		return
	}
	c.directDepth++
	defer func() { c.directDepth-- }()
	el.value = v
	el.hasValue = true
	// A direct notification supersedes any staged one for this element.
	el.pendingNotify = false
	el.notify()
	c.markDependentsDirty(el)
	c.scheduleFlush()
}

func (c *Container) markDependentsDirty(el *element) {
	for d := range el.dependents.Iter() {
		if d.disposed {
			continue
		}
		d.dirty = true
		c.enqueue(d)
	}
}

func (c *Container) enqueue(el *element) {
	if el.queued {
		return
	}
	el.queued = true
	c.queue = append(c.queue, el)
}

// HasListeners reports whether anything observes the provider's element:
// an external listener or a dependent provider. A never-materialized or
// disposed element has no listeners.
func HasListeners[T any](c *Container, def *Definition[T]) bool {
	if c.disposed {
		return false
	}
	el, ok := c.elements[def.a.key()]
	if !ok {
		return false
	}
	return !el.unused()
}

// ListenerCount reports the number of open external listeners on the
// provider's element.
func ListenerCount[T any](c *Container, def *Definition[T]) int {
	if c.disposed {
		return 0
	}
	el, ok := c.elements[def.a.key()]
	if !ok {
		return 0
	}
	return len(el.listeners)
}

// DependentCount reports the number of provider elements currently
// watching the provider.
func DependentCount[T any](c *Container, def *Definition[T]) int {
	if c.disposed {
		return 0
	}
	el, ok := c.elements[def.a.key()]
	if !ok {
		return 0
	}
	return el.dependents.Cardinality()
}

// ContainerStats is a point-in-time snapshot for diagnostics.
type ContainerStats struct {
	Elements  int
	QueueLen  int
	Flushes   uint64
	Listeners int
}

// Stats snapshots the container's bookkeeping.
func (c *Container) Stats() ContainerStats {
	st := ContainerStats{
		Elements: len(c.elements),
		QueueLen: len(c.queue),
		Flushes:  c.flushes,
	}
	for _, el := range c.elements {
		st.Listeners += len(el.listeners)
	}
	return st
}
