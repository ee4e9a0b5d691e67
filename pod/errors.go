package pod

import (
	"errors"
	"fmt"
	"strings"
)

var (
	// ErrContainerDisposed is returned by any operation on a container that
	// has already been torn down.
	ErrContainerDisposed = errors.New("pod: container disposed")

	// ErrCyclicDependency is returned when a provider transitively watches
	// itself during a compute. The offending recompute is aborted and the
	// element keeps its prior value.
	ErrCyclicDependency = errors.New("pod: cyclic dependency")

	// ErrCascadeOverflow is raised when a deferred flush fails to settle
	// within the pass bound, which indicates a mis-specified graph.
	ErrCascadeOverflow = errors.New("pod: cascade overflow")

	// ErrNotState is returned when Set or Update is called on a provider
	// that has no mutable state of its own.
	ErrNotState = errors.New("pod: provider is not a state provider")
)

// OnErrorFunc receives errors raised while the container is draining its
// deferred queue, where no caller is on the stack to return them to.
type OnErrorFunc func(err error)

// CycleError wraps ErrCyclicDependency with the chain of provider names
// that closed the cycle.
type CycleError struct {
	Chain []string
}

func (e *CycleError) Error() string {
	return fmt.Sprintf("pod: cyclic dependency: %s", strings.Join(e.Chain, " -> "))
}

func (e *CycleError) Unwrap() error {
	return ErrCyclicDependency
}

// ComputeError wraps a factory failure with the name of the provider whose
// compute failed.
type ComputeError struct {
	Provider string
	Cause    error
}

func (e *ComputeError) Error() string {
	return fmt.Sprintf("pod: computing %s: %v", e.Provider, e.Cause)
}

func (e *ComputeError) Unwrap() error {
	return e.Cause
}
