package digo

import "sync/atomic"

// Owned is an exclusively owned value. Casting moves the value into a new
// handle and leaves the source empty.
type Owned[T any] struct {
	value T
	moved bool
}

// NewOwned wraps v in an owned handle.
func NewOwned[T any](v T) *Owned[T] {
	return &Owned[T]{value: v}
}

// Get returns the owned value, or the zero value once moved.
func (o *Owned[T]) Get() T {
	return o.value
}

// Take moves the value out of the handle.
func (o *Owned[T]) Take() (T, error) {
	var zero T
	if o.moved {
		return zero, ErrOwnedMoved
	}
	v := o.value
	o.value = zero
	o.moved = true
	return v, nil
}

// Moved reports whether the value has been moved out.
func (o *Owned[T]) Moved() bool {
	return o.moved
}

// Shared is a handle to a value owned jointly by every handle cloned or cast
// from the same origin. All of them share one reference count.
type Shared[T any] struct {
	value    T
	refs     *atomic.Int64
	released atomic.Bool
}

// NewShared wraps v in a shared handle with a reference count of one.
func NewShared[T any](v T) *Shared[T] {
	refs := new(atomic.Int64)
	refs.Store(1)
	return &Shared[T]{value: v, refs: refs}
}

// Get returns the shared value.
func (s *Shared[T]) Get() T {
	return s.value
}

// Clone returns a new handle to the same value.
func (s *Shared[T]) Clone() *Shared[T] {
	return alias(s.value, s.refs)
}

// Release drops this handle's reference. Releasing twice is a no-op.
func (s *Shared[T]) Release() {
	if s.released.CompareAndSwap(false, true) {
		s.refs.Add(-1)
	}
}

// Refs returns the number of live handles sharing the value.
func (s *Shared[T]) Refs() int64 {
	return s.refs.Load()
}

// SameShared reports whether two handles alias the same allocation.
func SameShared[A, B any](a *Shared[A], b *Shared[B]) bool {
	if a == nil || b == nil {
		return false
	}
	return a.refs == b.refs
}

func alias[T any](v T, refs *atomic.Int64) *Shared[T] {
	refs.Add(1)
	return &Shared[T]{value: v, refs: refs}
}

// SomePtr is the result of a resolution: a transient value, a shared
// singleton handle or a factory, depending on the binding's scope.
type SomePtr[I any] struct {
	key       InterfaceKey
	kind      ProviderKind
	transient *Owned[I]
	singleton *Shared[I]
	factory   I
}

// Kind reports which accessor holds the value.
func (p SomePtr[I]) Kind() ProviderKind {
	return p.kind
}

// Transient returns the freshly built instance. Ownership passes to the caller.
func (p SomePtr[I]) Transient() (I, error) {
	var zero I
	if p.kind != TransientKind || p.transient == nil {
		return zero, p.wrongKind(TransientKind)
	}
	return p.transient.Take()
}

// Singleton returns a handle to the shared instance.
func (p SomePtr[I]) Singleton() (*Shared[I], error) {
	if p.kind != SingletonKind || p.singleton == nil {
		return nil, p.wrongKind(SingletonKind)
	}
	return p.singleton, nil
}

// Factory returns the bound callable.
func (p SomePtr[I]) Factory() (I, error) {
	var zero I
	if p.kind != FactoryKind {
		return zero, p.wrongKind(FactoryKind)
	}
	return p.factory, nil
}

func (p SomePtr[I]) wrongKind(expected ProviderKind) error {
	return &WrongPtrKindError{
		Interface: p.key.String(),
		Expected:  expected,
		Found:     p.kind,
	}
}
