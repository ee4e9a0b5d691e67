package pod

// Subscription is the caller-owned token for one listener registration.
// The core never closes it on its own except when the target element is
// permanently disposed.
type Subscription struct {
	el     *element
	fn     func(any)
	closed bool
}

// Close removes the listener from its target. Idempotent, and a no-op when
// the target element has already been disposed.
func (s *Subscription) Close() {
	if s == nil || s.closed {
		return
	}
	s.closed = true
	el := s.el
	if el == nil || el.disposed {
		return
	}
	el.removeListener(s)
	el.c.maybeDispose(el)
}

// Closed reports whether the subscription has been released.
func (s *Subscription) Closed() bool {
	return s == nil || s.closed
}
