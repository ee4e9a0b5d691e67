package pod

import (
	mapset "github.com/deckarep/golang-set/v2"
)

// Ref is the tracking context handed to a provider factory for the
// duration of one run. Watching through it records a dependency edge into
// a fresh read set; at the end of the run the previous run's edges are
// diffed against it so conditional dependencies tear down cleanly.
type Ref struct {
	c     *Container
	el    *element
	reads mapset.Set[*element]
}

// Container exposes the owning container, e.g. to open listener
// subscriptions whose lifetime outlives the current run.
func (r *Ref) Container() *Container { return r.c }

// OnDispose registers a cleanup run before the next recompute of this
// provider and when its element is disposed. Cleanups run in reverse
// registration order.
func (r *Ref) OnDispose(fn func()) {
	r.el.cleanups = append(r.el.cleanups, fn)
}

// Watch reads the provider and records a dependency edge from the
// currently-computing element: when def's value changes, the watching
// provider is marked dirty and recomputed at the next tick.
func (d *Definition[T]) Watch(r *Ref) (T, error) {
	var zero T
	dep, err := r.c.resolve(d.a)
	if err != nil {
		return zero, err
	}
	r.reads.Add(dep)
	dep.dependents.Add(r.el)
	return dep.value.(T), nil
}

// Peek reads the provider without recording an edge: the watching provider
// will not recompute when def changes.
func (d *Definition[T]) Peek(r *Ref) (T, error) {
	var zero T
	dep, err := r.c.resolve(d.a)
	if err != nil {
		return zero, err
	}
	return dep.value.(T), nil
}
