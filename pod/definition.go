package pod

import (
	"fmt"
	"reflect"
	"sync/atomic"

	"github.com/cespare/xxhash/v2"
)

type providerKind uint8

const (
	kindDerived providerKind = iota
	kindValue
	kindState
)

var defSeq atomic.Uint64

// anchor is the type-erased identity of a provider declaration. Exactly one
// anchor exists per declaration site (or per family instance), and the
// container keys its element map off it.
type anchor struct {
	id        uint64
	argKey    uint64
	name      string
	kind      providerKind
	keepAlive bool
	factory   func(*Ref) (any, error)
	equals    func(prev, next any) bool
}

func (a *anchor) key() elementKey {
	return elementKey{def: a.id, arg: a.argKey}
}

// elementKey identifies one live element: the definition id plus the
// normalized family argument key (zero for non-family providers).
type elementKey struct {
	def uint64
	arg uint64
}

func newAnchor(name string, kind providerKind) *anchor {
	seq := defSeq.Add(1)
	if name == "" {
		name = fmt.Sprintf("provider#%d", seq)
	}
	return &anchor{
		id:     xxhash.Sum64String(fmt.Sprintf("%s#%d", name, seq)),
		name:   name,
		kind:   kind,
		equals: reflect.DeepEqual,
	}
}

// Definition is the immutable identity of a provider: how to produce its
// value plus its equality contract. It holds no state itself; every
// container materializes its own element for it.
type Definition[T any] struct {
	a *anchor
}

// ProviderOption configures a definition at declaration time.
type ProviderOption interface {
	applyProvider(a *anchor)
}

type nameOption string

func (o nameOption) applyProvider(a *anchor) { a.name = string(o) }

// WithName gives the provider a stable diagnostic name.
func WithName(name string) ProviderOption { return nameOption(name) }

type keepAliveOption struct{}

func (keepAliveOption) applyProvider(a *anchor) { a.keepAlive = true }

// KeepAlive prevents an element of this provider from being disposed when
// its last listener and dependent go away.
func KeepAlive() ProviderOption { return keepAliveOption{} }

type equalsOption struct {
	eq func(prev, next any) bool
}

func (o equalsOption) applyProvider(a *anchor) { a.equals = o.eq }

// WithEquals replaces the default reflect.DeepEqual comparison used for the
// equality short-circuit on the deferred channel.
func WithEquals[T any](eq func(prev, next T) bool) ProviderOption {
	return equalsOption{eq: func(prev, next any) bool {
		p, pok := prev.(T)
		n, nok := next.(T)
		return pok && nok && eq(p, n)
	}}
}

// New declares a derived provider. The factory re-runs under a fresh
// tracking context whenever one of its tracked dependencies changes.
func New[T any](factory func(*Ref) (T, error), opts ...ProviderOption) *Definition[T] {
	a := newAnchor("", kindDerived)
	a.factory = func(r *Ref) (any, error) {
		return factory(r)
	}
	for _, opt := range opts {
		opt.applyProvider(a)
	}
	return &Definition[T]{a: a}
}

// NewValue declares a provider holding a constant.
func NewValue[T any](v T, opts ...ProviderOption) *Definition[T] {
	a := newAnchor("", kindValue)
	a.factory = func(*Ref) (any, error) {
		return v, nil
	}
	for _, opt := range opts {
		opt.applyProvider(a)
	}
	return &Definition[T]{a: a}
}

// NewState declares a mutable provider. Its setter is the direct channel:
// listeners are notified synchronously within the Set call, dependents go
// through the deferred queue.
func NewState[T any](initial T, opts ...ProviderOption) *Definition[T] {
	a := newAnchor("", kindState)
	a.factory = func(*Ref) (any, error) {
		return initial, nil
	}
	for _, opt := range opts {
		opt.applyProvider(a)
	}
	return &Definition[T]{a: a}
}

// Name reports the diagnostic name of the provider.
func (d *Definition[T]) Name() string { return d.a.name }
