package pod

import (
	"fmt"
	"reflect"
	"sync"

	"github.com/cespare/xxhash/v2"
)

// Family is a provider parameterized by an argument. Arguments that
// normalize to the same key resolve to the same Definition, and therefore
// to the same element within any given container; distinct keys yield
// fully independent instances with their own listeners and lifecycle.
type Family[T, A any] struct {
	name      string
	kind      providerKind
	keepAlive bool
	keyFn     func(A) string
	equals    func(prev, next any) bool
	factory   func(*Ref, A) (T, error)

	mu        sync.Mutex
	id        uint64
	instances map[uint64]*Definition[T]
}

// FamilyOption configures a family at declaration time.
type FamilyOption[A any] interface {
	applyFamily(cfg *familyConfig[A])
}

type familyConfig[A any] struct {
	name      string
	keepAlive bool
	keyFn     func(A) string
	equals    func(prev, next any) bool
}

type familyNameOption[A any] struct{ name string }

func (o familyNameOption[A]) applyFamily(cfg *familyConfig[A]) { cfg.name = o.name }

// WithFamilyName gives the family a stable diagnostic name; instances are
// reported as name(key).
func WithFamilyName[A any](name string) FamilyOption[A] {
	return familyNameOption[A]{name: name}
}

type familyKeepAliveOption[A any] struct{}

func (familyKeepAliveOption[A]) applyFamily(cfg *familyConfig[A]) { cfg.keepAlive = true }

// FamilyKeepAlive applies KeepAlive to every instance of the family.
func FamilyKeepAlive[A any]() FamilyOption[A] { return familyKeepAliveOption[A]{} }

type keyFnOption[A any] struct{ fn func(A) string }

func (o keyFnOption[A]) applyFamily(cfg *familyConfig[A]) { cfg.keyFn = o.fn }

// WithKeyFn replaces the default argument normalization. Two arguments map
// to the same instance exactly when their keys are equal.
func WithKeyFn[A any](fn func(A) string) FamilyOption[A] {
	return keyFnOption[A]{fn: fn}
}

type familyEqualsOption[A any] struct {
	eq func(prev, next any) bool
}

func (o familyEqualsOption[A]) applyFamily(cfg *familyConfig[A]) { cfg.equals = o.eq }

// WithFamilyEquals sets the value-equality contract for every instance.
func WithFamilyEquals[T, A any](eq func(prev, next T) bool) FamilyOption[A] {
	return familyEqualsOption[A]{eq: func(prev, next any) bool {
		p, pok := prev.(T)
		n, nok := next.(T)
		return pok && nok && eq(p, n)
	}}
}

func defaultKeyFn[A any](arg A) string {
	return fmt.Sprintf("%#v", arg)
}

func newFamily[T, A any](kind providerKind, factory func(*Ref, A) (T, error), opts []FamilyOption[A]) *Family[T, A] {
	cfg := &familyConfig[A]{
		keyFn:  defaultKeyFn[A],
		equals: reflect.DeepEqual,
	}
	for _, opt := range opts {
		opt.applyFamily(cfg)
	}
	seq := defSeq.Add(1)
	name := cfg.name
	if name == "" {
		name = fmt.Sprintf("family#%d", seq)
	}
	return &Family[T, A]{
		name:      name,
		kind:      kind,
		keepAlive: cfg.keepAlive,
		keyFn:     cfg.keyFn,
		equals:    cfg.equals,
		factory:   factory,
		id:        xxhash.Sum64String(fmt.Sprintf("%s#%d", name, seq)),
		instances: map[uint64]*Definition[T]{},
	}
}

// NewFamily declares a derived family provider.
func NewFamily[T, A any](factory func(*Ref, A) (T, error), opts ...FamilyOption[A]) *Family[T, A] {
	return newFamily(kindDerived, factory, opts)
}

// NewStateFamily declares a mutable family provider; initial produces the
// starting value for each instance.
func NewStateFamily[T, A any](initial func(A) T, opts ...FamilyOption[A]) *Family[T, A] {
	return newFamily(kindState, func(_ *Ref, arg A) (T, error) {
		return initial(arg), nil
	}, opts)
}

// Of resolves the instance Definition for an argument, creating it on
// first use. Instances are shared across containers; each container still
// materializes its own element for them.
func (f *Family[T, A]) Of(arg A) *Definition[T] {
	key := f.keyFn(arg)
	argKey := xxhash.Sum64String(key)

	f.mu.Lock()
	defer f.mu.Unlock()
	if d, ok := f.instances[argKey]; ok {
		return d
	}

	a := &anchor{
		id:        f.id,
		argKey:    argKey,
		name:      fmt.Sprintf("%s(%s)", f.name, key),
		kind:      f.kind,
		keepAlive: f.keepAlive,
		equals:    f.equals,
	}
	a.factory = func(r *Ref) (any, error) {
		return f.factory(r, arg)
	}
	d := &Definition[T]{a: a}
	f.instances[argKey] = d
	return d
}

// Name reports the diagnostic name of the family.
func (f *Family[T, A]) Name() string { return f.name }
