package digo

import (
	"context"
	"sync"

	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"
)

// AsyncContainer is the concurrent dependency injection container.
//
// Resolutions take a context and may run from many goroutines at once.
// Binding operations are serialised with each other; a singleton is fully
// built before its binding becomes visible to resolvers.
type AsyncContainer struct {
	id       string
	logger   *zap.Logger
	casters  *CasterRegistry
	bindings *BindingRegistry

	// bindMu serialises binding operations. Resolutions never take it.
	bindMu sync.Mutex
}

// NewAsync creates an empty async container.
func NewAsync(opts ...Option) *AsyncContainer {
	o := buildOptions(opts)
	return &AsyncContainer{
		id:       o.id,
		logger:   o.logger.With(zap.String("container_id", o.id), zap.Bool("async", true)),
		casters:  o.casters,
		bindings: NewBindingRegistry(),
	}
}

// ID returns the container id reported in logs.
func (c *AsyncContainer) ID() string {
	return c.id
}

// HasBinding reports whether key is bound.
func (c *AsyncContainer) HasBinding(key InterfaceKey) bool {
	return c.bindings.Has(key)
}

// GetBinding returns the provider bound to key.
func (c *AsyncContainer) GetBinding(key InterfaceKey) (Provider, bool) {
	return c.bindings.Get(key)
}

// SetBinding binds p to key, replacing any existing binding.
// It performs no validation; prefer the BindAsync builder.
func (c *AsyncContainer) SetBinding(key InterfaceKey, p Provider) {
	c.bindMu.Lock()
	defer c.bindMu.Unlock()
	c.bindings.Set(key, p)
}

// RemoveBinding unbinds key and returns the provider it held.
func (c *AsyncContainer) RemoveBinding(key InterfaceKey) (Provider, bool) {
	c.bindMu.Lock()
	defer c.bindMu.Unlock()
	return c.bindings.Remove(key)
}

// Keys returns the bound keys (order is unspecified).
func (c *AsyncContainer) Keys() []InterfaceKey {
	return c.bindings.Keys()
}

// Reset removes every binding.
func (c *AsyncContainer) Reset() {
	c.bindMu.Lock()
	defer c.bindMu.Unlock()
	c.bindings.Clear()
}

// AsyncResolver resolves the dependencies of one implementation built by an
// AsyncContainer. It is immutable and safe to share between goroutines.
type AsyncResolver struct {
	c       *AsyncContainer
	history DependencyHistory
}

// Container returns the container performing the resolution.
func (r *AsyncResolver) Container() *AsyncContainer {
	return r.c
}

// History returns the keys visited so far, ending with the key being built.
func (r *AsyncResolver) History() DependencyHistory {
	return r.history
}

// Concurrently runs fns in parallel and returns the first error. The context
// passed to each fn is cancelled as soon as one of them fails.
//
//	err := r.Concurrently(ctx,
//		func(ctx context.Context, r *digo.AsyncResolver) (err error) {
//			db, err = digo.InjectAsync[Database](ctx, r)
//			return err
//		},
//		func(ctx context.Context, r *digo.AsyncResolver) (err error) {
//			cache, err = digo.InjectAsync[Cache](ctx, r)
//			return err
//		},
//	)
func (r *AsyncResolver) Concurrently(ctx context.Context, fns ...func(ctx context.Context, r *AsyncResolver) error) error {
	g, gctx := errgroup.WithContext(ctx)
	for _, fn := range fns {
		fn := fn
		g.Go(func() error {
			return fn(gctx, r)
		})
	}
	return g.Wait()
}

// GetAsync resolves the unnamed binding for I.
func GetAsync[I any](ctx context.Context, c *AsyncContainer) (SomePtr[I], error) {
	return GetNamedAsync[I](ctx, c, "")
}

// GetNamedAsync resolves the binding for I registered under name.
func GetNamedAsync[I any](ctx context.Context, c *AsyncContainer, name string) (SomePtr[I], error) {
	key := NamedKeyOf[I](name)
	ptr, err := resolveAsyncAs[I](ctx, c, key, NewDependencyHistory())
	if err != nil {
		c.logger.Warn("resolution failed", zap.Stringer("interface", key), zap.Error(err))
		return SomePtr[I]{}, err
	}
	c.logger.Debug("resolved", zap.Stringer("interface", key), zap.Stringer("kind", ptr.Kind()))
	return ptr, nil
}

// InjectAsync resolves a dependency of the implementation being built by r.
func InjectAsync[I any](ctx context.Context, r *AsyncResolver) (SomePtr[I], error) {
	return resolveAsyncAs[I](ctx, r.c, KeyOf[I](), r.history)
}

// InjectNamedAsync resolves a named dependency of the implementation being built by r.
func InjectNamedAsync[I any](ctx context.Context, r *AsyncResolver, name string) (SomePtr[I], error) {
	return resolveAsyncAs[I](ctx, r.c, NamedKeyOf[I](name), r.history)
}

func resolveAsyncAs[I any](ctx context.Context, c *AsyncContainer, key InterfaceKey, history DependencyHistory) (SomePtr[I], error) {
	res, err := c.resolve(ctx, key, history)
	if err != nil {
		return SomePtr[I]{}, err
	}
	return toSomePtr[I](c.casters, key, res)
}

func (c *AsyncContainer) resolve(ctx context.Context, key InterfaceKey, history DependencyHistory) (resolved, error) {
	if err := ctx.Err(); err != nil {
		return resolved{}, err
	}
	if history.Contains(key) {
		return resolved{}, &CycleDetectedError{History: history.Push(key)}
	}
	history = history.Push(key)

	p, ok := c.bindings.Get(key)
	if !ok {
		return resolved{}, &BindingNotFoundError{Interface: key.TypeName(), Name: key.Name}
	}

	switch p := p.(type) {
	case *asyncTransientProvider:
		v, err := p.build(ctx, &AsyncResolver{c: c, history: history})
		if err != nil {
			return resolved{}, &BindingResolveFailedError{Interface: key.String(), Err: err}
		}
		return transientResult(v), nil
	case *singletonProvider:
		return singletonResult(p), nil
	case *asyncFactoryProvider:
		v, err := p.produce(ctx, c)
		if err != nil {
			return resolved{}, &BindingResolveFailedError{Interface: key.String(), Err: err}
		}
		return factoryResult(v, p.dynamic), nil
	default:
		return resolved{}, &InterfaceNotAsyncError{Interface: key.String()}
	}
}
