package digo

import (
	"errors"
	"fmt"
)

var (
	// ErrOwnedMoved is returned when an owned handle is used after its value moved out.
	ErrOwnedMoved = errors.New("digo: owned value already moved")

	// ErrCasterRegistryLocked is returned when declaring a cast on a locked registry.
	ErrCasterRegistryLocked = errors.New("digo: caster registry is locked")

	// ErrAsyncOnlyProvider is returned by the synchronous container for providers
	// that can only be resolved by an AsyncContainer.
	ErrAsyncOnlyProvider = errors.New("digo: provider requires an async container")
)

// BindingAlreadyExistsError represents an attempt to bind an interface twice.
type BindingAlreadyExistsError struct {
	Interface string
}

func (e *BindingAlreadyExistsError) Error() string {
	return fmt.Sprintf("binding already exists for interface '%s'", e.Interface)
}

// BindingNotFoundError represents a missing binding error.
type BindingNotFoundError struct {
	Interface string
	Name      string
}

func (e *BindingNotFoundError) Error() string {
	if e.Name == "" {
		return fmt.Sprintf("no binding exists for interface '%s'", e.Interface)
	}
	return fmt.Sprintf("no binding exists for interface '%s' with name '%s'", e.Interface, e.Name)
}

// CycleDetectedError represents a circular dependency. History ends with the
// key that closed the cycle.
type CycleDetectedError struct {
	History DependencyHistory
}

func (e *CycleDetectedError) Error() string {
	return fmt.Sprintf("circular dependency detected: %s", e.History)
}

// CastFailedError represents a missing or failing cast registration.
type CastFailedError struct {
	From string
	To   string
}

func (e *CastFailedError) Error() string {
	return fmt.Sprintf("failed to cast from %s to %s", e.From, e.To)
}

// SingletonResolveFailedError represents a singleton that could not be built or found.
type SingletonResolveFailedError struct {
	Interface string
	Err       error
}

func (e *SingletonResolveFailedError) Error() string {
	return fmt.Sprintf("resolving the singleton for interface '%s' failed: %v", e.Interface, e.Err)
}

func (e *SingletonResolveFailedError) Unwrap() error {
	return e.Err
}

// BindingResolveFailedError wraps a failure raised while building a binding.
type BindingResolveFailedError struct {
	Interface string
	Err       error
}

func (e *BindingResolveFailedError) Error() string {
	return fmt.Sprintf("failed to resolve binding for interface '%s': %v", e.Interface, e.Err)
}

func (e *BindingResolveFailedError) Unwrap() error {
	return e.Err
}

// WrongPtrKindError represents a scope mismatch between a binding and its accessor.
type WrongPtrKindError struct {
	Interface string
	Expected  ProviderKind
	Found     ProviderKind
}

func (e *WrongPtrKindError) Error() string {
	return fmt.Sprintf("wrong pointer kind for interface '%s': expected %s, found %s",
		e.Interface, e.Expected, e.Found)
}

// InterfaceNotAsyncError represents a binding that an AsyncContainer cannot resolve.
type InterfaceNotAsyncError struct {
	Interface string
}

func (e *InterfaceNotAsyncError) Error() string {
	return fmt.Sprintf("interface '%s' has not been bound for async resolution", e.Interface)
}

// InvalidDeclarationError represents a cast declaration between unrelated types.
type InvalidDeclarationError struct {
	Concrete  string
	Interface string
}

func (e *InvalidDeclarationError) Error() string {
	return fmt.Sprintf("type %s does not implement %s", e.Concrete, e.Interface)
}
