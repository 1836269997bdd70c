package digo

import (
	"reflect"
	"sync"
)

// CastFunc reinterprets a concrete value as an interface. The boolean is false
// when the value does not satisfy the target.
type CastFunc func(v any) (any, bool)

type casterKey struct {
	concrete reflect.Type
	iface    reflect.Type
}

// CasterRegistry maps (concrete type, interface type) pairs to cast functions.
// It is written during startup and read concurrently afterwards.
type CasterRegistry struct {
	mu      sync.RWMutex
	casters map[casterKey]CastFunc
	locked  bool
}

var defaultCasters = NewCasterRegistry()

// NewCasterRegistry returns an empty registry.
func NewCasterRegistry() *CasterRegistry {
	return &CasterRegistry{casters: make(map[casterKey]CastFunc, 32)}
}

// DefaultCasters returns the process-wide registry used by containers unless
// WithCasterRegistry says otherwise.
func DefaultCasters() *CasterRegistry {
	return defaultCasters
}

// Register stores fn for the (concrete, iface) pair. Re-registering a pair
// replaces its function.
func (r *CasterRegistry) Register(concrete, iface reflect.Type, fn CastFunc) error {
	if concrete == nil || iface == nil {
		return &InvalidDeclarationError{Concrete: typeString(concrete), Interface: typeString(iface)}
	}
	if !concrete.AssignableTo(iface) {
		return &InvalidDeclarationError{Concrete: typeString(concrete), Interface: typeString(iface)}
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	if r.locked {
		return ErrCasterRegistryLocked
	}
	r.casters[casterKey{concrete: concrete, iface: iface}] = fn
	return nil
}

// Lookup returns the cast function registered for the pair.
func (r *CasterRegistry) Lookup(concrete, iface reflect.Type) (CastFunc, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	fn, ok := r.casters[casterKey{concrete: concrete, iface: iface}]
	return fn, ok
}

// Lock freezes the registry. Usually called once startup wiring is done.
func (r *CasterRegistry) Lock() {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.locked = true
}

// Unlock allows declarations again.
func (r *CasterRegistry) Unlock() {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.locked = false
}

// IsLocked reports whether the registry rejects declarations.
func (r *CasterRegistry) IsLocked() bool {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return r.locked
}

// Len returns the number of registered pairs.
func (r *CasterRegistry) Len() int {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return len(r.casters)
}

// Reset clears the registry and unlocks it (tests only).
func (r *CasterRegistry) Reset() {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.casters = make(map[casterKey]CastFunc, 32)
	r.locked = false
}

// DeclareInterface records in the default registry that C implements I.
// It must run before any resolution retrieves a C through I.
func DeclareInterface[C, I any]() error {
	return DeclareInterfaceIn[C, I](defaultCasters)
}

// DeclareInterfaceIn records in r that C implements I.
func DeclareInterfaceIn[C, I any](r *CasterRegistry) error {
	return r.Register(TypeOf[C](), TypeOf[I](), func(v any) (any, bool) {
		i, ok := v.(I)
		return i, ok
	})
}

// MustDeclareInterface is DeclareInterface that panics on error.
func MustDeclareInterface[C, I any]() {
	if err := DeclareInterface[C, I](); err != nil {
		panic(err)
	}
}

// cast converts v to To using r. The lookup is keyed by the dynamic type of v,
// so a value held through one interface can be cast to another one its
// concrete type declared.
func cast[To any](r *CasterRegistry, v any) (To, error) {
	var zero To
	to := TypeOf[To]()
	if v == nil {
		return zero, &CastFailedError{From: "<nil>", To: typeString(to)}
	}

	from := reflect.TypeOf(v)
	if from == to || (to.Kind() == reflect.Interface && to.NumMethod() == 0) {
		return v.(To), nil
	}

	fn, ok := r.Lookup(from, to)
	if !ok {
		return zero, &CastFailedError{From: typeString(from), To: typeString(to)}
	}
	out, ok := fn(v)
	if !ok {
		return zero, &CastFailedError{From: typeString(from), To: typeString(to)}
	}
	typed, ok := out.(To)
	if !ok {
		return zero, &CastFailedError{From: typeString(from), To: typeString(to)}
	}
	return typed, nil
}

// CastOwned moves the value of o into a handle typed as To. o is left moved.
func CastOwned[To, From any](o *Owned[From]) (*Owned[To], error) {
	return castOwned[To](defaultCasters, o)
}

// CastShared returns a handle typed as To that aliases the value and reference
// count of s. s stays valid.
func CastShared[To, From any](s *Shared[From]) (*Shared[To], error) {
	return castShared[To](defaultCasters, s)
}

func castOwned[To, From any](r *CasterRegistry, o *Owned[From]) (*Owned[To], error) {
	if o.Moved() {
		return nil, ErrOwnedMoved
	}
	out, err := cast[To](r, any(o.value))
	if err != nil {
		return nil, err
	}
	if _, err := o.Take(); err != nil {
		return nil, err
	}
	return NewOwned(out), nil
}

func castShared[To, From any](r *CasterRegistry, s *Shared[From]) (*Shared[To], error) {
	out, err := cast[To](r, any(s.value))
	if err != nil {
		return nil, err
	}
	return alias(out, s.refs), nil
}
