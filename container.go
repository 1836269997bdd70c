package digo

import (
	"go.uber.org/zap"
)

// Container is the synchronous dependency injection container.
//
// Binding is a setup phase: bind everything first, then resolve. Resolutions
// run to completion on the calling goroutine; use AsyncContainer when bindings
// and resolutions must interleave across goroutines.
type Container struct {
	id       string
	logger   *zap.Logger
	casters  *CasterRegistry
	bindings *BindingRegistry
}

// New creates an empty container.
func New(opts ...Option) *Container {
	o := buildOptions(opts)
	return &Container{
		id:       o.id,
		logger:   o.logger.With(zap.String("container_id", o.id)),
		casters:  o.casters,
		bindings: NewBindingRegistry(),
	}
}

// ID returns the container id reported in logs.
func (c *Container) ID() string {
	return c.id
}

// HasBinding reports whether key is bound.
func (c *Container) HasBinding(key InterfaceKey) bool {
	return c.bindings.Has(key)
}

// GetBinding returns the provider bound to key.
func (c *Container) GetBinding(key InterfaceKey) (Provider, bool) {
	return c.bindings.Get(key)
}

// SetBinding binds p to key, replacing any existing binding.
// It performs no validation; prefer the Bind builder.
func (c *Container) SetBinding(key InterfaceKey, p Provider) {
	c.bindings.Set(key, p)
}

// RemoveBinding unbinds key and returns the provider it held.
func (c *Container) RemoveBinding(key InterfaceKey) (Provider, bool) {
	return c.bindings.Remove(key)
}

// Keys returns the bound keys (order is unspecified).
func (c *Container) Keys() []InterfaceKey {
	return c.bindings.Keys()
}

// Reset removes every binding.
func (c *Container) Reset() {
	c.bindings.Clear()
}

// Resolver resolves the dependencies of one implementation. It carries the
// dependency history of the resolution that is building the implementation.
type Resolver struct {
	c       *Container
	history DependencyHistory
}

// Container returns the container performing the resolution.
func (r *Resolver) Container() *Container {
	return r.c
}

// History returns the keys visited so far, ending with the key being built.
func (r *Resolver) History() DependencyHistory {
	return r.history
}

// Get resolves the unnamed binding for I.
func Get[I any](c *Container) (SomePtr[I], error) {
	return GetNamed[I](c, "")
}

// GetNamed resolves the binding for I registered under name.
func GetNamed[I any](c *Container, name string) (SomePtr[I], error) {
	key := NamedKeyOf[I](name)
	ptr, err := resolveAs[I](c, key, NewDependencyHistory())
	if err != nil {
		c.logger.Warn("resolution failed", zap.Stringer("interface", key), zap.Error(err))
		return SomePtr[I]{}, err
	}
	c.logger.Debug("resolved", zap.Stringer("interface", key), zap.Stringer("kind", ptr.Kind()))
	return ptr, nil
}

// Inject resolves a dependency of the implementation being built by r.
func Inject[I any](r *Resolver) (SomePtr[I], error) {
	return resolveAs[I](r.c, KeyOf[I](), r.history)
}

// InjectNamed resolves a named dependency of the implementation being built by r.
func InjectNamed[I any](r *Resolver, name string) (SomePtr[I], error) {
	return resolveAs[I](r.c, NamedKeyOf[I](name), r.history)
}

func resolveAs[I any](c *Container, key InterfaceKey, history DependencyHistory) (SomePtr[I], error) {
	res, err := c.resolve(key, history)
	if err != nil {
		return SomePtr[I]{}, err
	}
	return toSomePtr[I](c.casters, key, res)
}

func (c *Container) resolve(key InterfaceKey, history DependencyHistory) (resolved, error) {
	if history.Contains(key) {
		return resolved{}, &CycleDetectedError{History: history.Push(key)}
	}
	history = history.Push(key)

	p, ok := c.bindings.Get(key)
	if !ok {
		return resolved{}, &BindingNotFoundError{Interface: key.TypeName(), Name: key.Name}
	}

	switch p := p.(type) {
	case *transientProvider:
		v, err := p.build(&Resolver{c: c, history: history})
		if err != nil {
			return resolved{}, &BindingResolveFailedError{Interface: key.String(), Err: err}
		}
		return transientResult(v), nil
	case *singletonProvider:
		return singletonResult(p), nil
	case *factoryProvider:
		v, err := p.produce(c)
		if err != nil {
			return resolved{}, &BindingResolveFailedError{Interface: key.String(), Err: err}
		}
		return factoryResult(v, p.dynamic), nil
	default:
		return resolved{}, &BindingResolveFailedError{Interface: key.String(), Err: ErrAsyncOnlyProvider}
	}
}
