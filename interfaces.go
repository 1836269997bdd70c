package digo

import "context"

// Package digo provides a dependency injection container with explicit bindings,
// lifetime scopes and interface casting.

// ProviderKind defines the lifetime and sharing behavior of a binding.
type ProviderKind int

// Available provider kinds
const (
	// TransientKind creates a new instance for each resolution
	TransientKind ProviderKind = iota
	// SingletonKind shares a single instance built at bind time
	SingletonKind
	// FactoryKind hands out a callable instead of an instance
	FactoryKind
)

func (k ProviderKind) String() string {
	switch k {
	case TransientKind:
		return "transient"
	case SingletonKind:
		return "singleton"
	case FactoryKind:
		return "factory"
	default:
		return "unknown"
	}
}

// Provider produces instances for a bound interface.
// Implementations are created with the New*Provider constructors.
type Provider interface {
	// Kind reports the scope of the values the provider yields.
	Kind() ProviderKind

	// IsAsync reports whether the provider can be resolved by an AsyncContainer.
	IsAsync() bool
}

// Constructor builds an implementation, resolving its own dependencies through r.
type Constructor[T any] func(r *Resolver) (T, error)

// AsyncConstructor builds an implementation for an AsyncContainer.
// It may block on nested resolutions and should honour ctx.
type AsyncConstructor[T any] func(ctx context.Context, r *AsyncResolver) (T, error)
