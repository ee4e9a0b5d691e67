package pod

// State is a bound accessor for one provider in one container, convenient
// for consumers holding long-lived write access to a mutable provider.
type State[T any] struct {
	c   *Container
	def *Definition[T]
}

// Accessor binds a provider to a container.
func Accessor[T any](c *Container, def *Definition[T]) *State[T] {
	return &State[T]{c: c, def: def}
}

// Get resolves the current value, materializing the element if needed.
func (s *State[T]) Get() (T, error) {
	return Read(s.c, s.def)
}

// Peek returns the cached value without materializing or refreshing; the
// second result reports whether a value was present.
func (s *State[T]) Peek() (T, bool) {
	var zero T
	if s.c.disposed {
		return zero, false
	}
	el, ok := s.c.elements[s.def.a.key()]
	if !ok || !el.hasValue {
		return zero, false
	}
	return el.value.(T), true
}

// Set applies a direct mutation; only valid for NewState providers.
func (s *State[T]) Set(v T) error {
	return Set(s.c, s.def, v)
}

// Update applies a read-modify-write mutation.
func (s *State[T]) Update(fn func(T) T) error {
	return Update(s.c, s.def, fn)
}

// Invalidate marks the element dirty so it recomputes at the next tick,
// without mutating it now. A no-op for never-materialized elements.
func (s *State[T]) Invalidate() {
	if s.c.disposed {
		return
	}
	el, ok := s.c.elements[s.def.a.key()]
	if !ok || el.disposed {
		return
	}
	el.dirty = true
	s.c.enqueue(el)
	s.c.scheduleFlush()
}
