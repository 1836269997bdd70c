package digo

import (
	"context"
	"reflect"
)

// transientProvider builds a new implementation on every resolution.
type transientProvider struct {
	impl  reflect.Type
	build func(r *Resolver) (any, error)
}

// NewTransientProvider returns a provider that calls ctor on every resolution.
func NewTransientProvider[T any](ctor Constructor[T]) Provider {
	return &transientProvider{
		impl: TypeOf[T](),
		build: func(r *Resolver) (any, error) {
			return ctor(r)
		},
	}
}

func (p *transientProvider) Kind() ProviderKind { return TransientKind }
func (p *transientProvider) IsAsync() bool      { return false }

// asyncTransientProvider is the AsyncContainer counterpart of transientProvider.
type asyncTransientProvider struct {
	impl  reflect.Type
	build func(ctx context.Context, r *AsyncResolver) (any, error)
}

// NewAsyncTransientProvider returns a provider that calls ctor on every async resolution.
func NewAsyncTransientProvider[T any](ctor AsyncConstructor[T]) Provider {
	return &asyncTransientProvider{
		impl: TypeOf[T](),
		build: func(ctx context.Context, r *AsyncResolver) (any, error) {
			return ctor(ctx, r)
		},
	}
}

func (p *asyncTransientProvider) Kind() ProviderKind { return TransientKind }
func (p *asyncTransientProvider) IsAsync() bool      { return true }

// singletonProvider holds a handle to an instance built at bind time.
// It is shared by both container front-ends.
type singletonProvider struct {
	instance *Shared[any]
}

// NewSingletonProvider returns a provider serving instance. The provider keeps
// its own handle to the value.
func NewSingletonProvider[T any](instance *Shared[T]) Provider {
	return &singletonProvider{instance: alias[any](instance.value, instance.refs)}
}

func (p *singletonProvider) Kind() ProviderKind { return SingletonKind }
func (p *singletonProvider) IsAsync() bool      { return true }

func (p *singletonProvider) release() {
	p.instance.Release()
}

// factoryProvider stores a callable. For dynamic values the callable is
// invoked at resolution and the result handed out as a transient.
type factoryProvider struct {
	dynamic bool
	produce func(c *Container) (any, error)
}

// NewFactoryProvider returns a provider handing out the callable built by fn.
func NewFactoryProvider[F any](fn func(c *Container) F) Provider {
	return &factoryProvider{
		produce: func(c *Container) (any, error) { return fn(c), nil },
	}
}

// NewDynamicValueProvider returns a provider that calls the function built by
// fn on each resolution and yields the result as a transient.
func NewDynamicValueProvider[I any](fn func(c *Container) func() (I, error)) Provider {
	return &factoryProvider{
		dynamic: true,
		produce: func(c *Container) (any, error) { return fn(c)() },
	}
}

func (p *factoryProvider) Kind() ProviderKind {
	if p.dynamic {
		return TransientKind
	}
	return FactoryKind
}

func (p *factoryProvider) IsAsync() bool { return false }

// asyncFactoryProvider is the AsyncContainer counterpart of factoryProvider.
type asyncFactoryProvider struct {
	dynamic bool
	produce func(ctx context.Context, c *AsyncContainer) (any, error)
}

// NewAsyncFactoryProvider returns a provider handing out the callable built by fn.
func NewAsyncFactoryProvider[F any](fn func(c *AsyncContainer) F) Provider {
	return &asyncFactoryProvider{
		produce: func(_ context.Context, c *AsyncContainer) (any, error) {
			return fn(c), nil
		},
	}
}

// NewAsyncDynamicValueProvider returns a provider that calls the function built
// by fn with the resolution context and yields the result as a transient.
func NewAsyncDynamicValueProvider[I any](fn func(c *AsyncContainer) func(ctx context.Context) (I, error)) Provider {
	return &asyncFactoryProvider{
		dynamic: true,
		produce: func(ctx context.Context, c *AsyncContainer) (any, error) {
			return fn(c)(ctx)
		},
	}
}

func (p *asyncFactoryProvider) Kind() ProviderKind {
	if p.dynamic {
		return TransientKind
	}
	return FactoryKind
}

func (p *asyncFactoryProvider) IsAsync() bool { return true }

// releaser is implemented by providers holding shared references.
type releaser interface {
	release()
}
