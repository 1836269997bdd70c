package digo

import (
	"context"

	"go.uber.org/zap"
)

// AsyncBindingBuilder starts a binding for I in an AsyncContainer.
type AsyncBindingBuilder[I any] struct {
	c   *AsyncContainer
	key InterfaceKey
}

// BindAsync begins a binding for I.
func BindAsync[I any](c *AsyncContainer) *AsyncBindingBuilder[I] {
	return &AsyncBindingBuilder[I]{c: c, key: KeyOf[I]()}
}

// ToAsync binds I to the implementation built by ctor, in transient scope
// until a scope method says otherwise.
func ToAsync[I, T any](b *AsyncBindingBuilder[I], ctor AsyncConstructor[T]) (*AsyncScopeConfigurator[I, T], error) {
	b.c.bindMu.Lock()
	defer b.c.bindMu.Unlock()

	if b.c.bindings.Has(b.key) {
		return nil, &BindingAlreadyExistsError{Interface: b.key.String()}
	}
	sc := &AsyncScopeConfigurator[I, T]{c: b.c, key: b.key, ctor: ctor}
	sc.setInTransientScope()
	return sc, nil
}

// ToFactory binds I to the callable returned by fn.
func (b *AsyncBindingBuilder[I]) ToFactory(fn func(c *AsyncContainer) I) (*AsyncWhenConfigurator[I], error) {
	return b.install(NewAsyncFactoryProvider(fn), FactoryKind.String())
}

// ToDynamicValue binds I to a function invoked with the resolution context on
// every resolution; each result is handed out as a transient.
func (b *AsyncBindingBuilder[I]) ToDynamicValue(fn func(c *AsyncContainer) func(ctx context.Context) (I, error)) (*AsyncWhenConfigurator[I], error) {
	return b.install(NewAsyncDynamicValueProvider(fn), "dynamic")
}

func (b *AsyncBindingBuilder[I]) install(p Provider, kind string) (*AsyncWhenConfigurator[I], error) {
	b.c.bindMu.Lock()
	defer b.c.bindMu.Unlock()

	if b.c.bindings.Has(b.key) {
		return nil, &BindingAlreadyExistsError{Interface: b.key.String()}
	}
	b.c.bindings.Set(b.key, p)
	b.c.logger.Debug("binding registered", zap.Stringer("interface", b.key), zap.String("kind", kind))
	return &AsyncWhenConfigurator[I]{c: b.c, key: b.key}, nil
}

// AsyncScopeConfigurator chooses the scope of a binding from I to T.
type AsyncScopeConfigurator[I, T any] struct {
	c           *AsyncContainer
	key         InterfaceKey
	ctor        AsyncConstructor[T]
	provisional Provider
}

// InTransientScope builds a new T on every resolution. This is the default.
func (s *AsyncScopeConfigurator[I, T]) InTransientScope() *AsyncWhenConfigurator[I] {
	s.c.bindMu.Lock()
	defer s.c.bindMu.Unlock()

	s.setInTransientScope()
	return &AsyncWhenConfigurator[I]{c: s.c, key: s.key}
}

// InSingletonScope builds T now and serves that instance to every
// resolution. Construction may block on nested resolutions; I stays unbound
// until it succeeded, so concurrent resolutions of I fail with
// BindingNotFoundError instead of building a second T. Constructors must not
// bind.
func (s *AsyncScopeConfigurator[I, T]) InSingletonScope(ctx context.Context) (*AsyncWhenConfigurator[I], error) {
	s.c.bindMu.Lock()
	defer s.c.bindMu.Unlock()

	s.withdraw()
	v, err := s.ctor(ctx, &AsyncResolver{c: s.c, history: NewDependencyHistory().Push(s.key)})
	if err != nil {
		return nil, s.fail(err)
	}

	s.c.bindings.Set(s.key, &singletonProvider{instance: NewShared[any](v)})
	s.c.logger.Debug("singleton constructed", zap.Stringer("interface", s.key), zap.Stringer("implementation", TypeOf[T]()))
	return &AsyncWhenConfigurator[I]{c: s.c, key: s.key}, nil
}

// InSingletonScopeFromExisting serves the singleton already bound for T
// under I as well, so both keys share one instance.
func (s *AsyncScopeConfigurator[I, T]) InSingletonScopeFromExisting(ctx context.Context) (*AsyncWhenConfigurator[I], error) {
	s.c.bindMu.Lock()
	defer s.c.bindMu.Unlock()

	if err := ctx.Err(); err != nil {
		return nil, s.fail(err)
	}
	instance, err := existingSingleton[T](s.c.bindings)
	if err != nil {
		return nil, s.fail(err)
	}

	s.c.bindings.Set(s.key, &singletonProvider{instance: instance})
	s.c.logger.Debug("singleton aliased", zap.Stringer("interface", s.key), zap.Stringer("source", KeyOf[T]()))
	return &AsyncWhenConfigurator[I]{c: s.c, key: s.key}, nil
}

// setInTransientScope expects bindMu to be held.
func (s *AsyncScopeConfigurator[I, T]) setInTransientScope() {
	s.provisional = NewAsyncTransientProvider(s.ctor)
	s.c.bindings.Set(s.key, s.provisional)
	s.c.logger.Debug("binding registered", zap.Stringer("interface", s.key), zap.Stringer("kind", TransientKind))
}

// withdraw removes the provisional transient binding if it is still
// installed. It expects bindMu to be held.
func (s *AsyncScopeConfigurator[I, T]) withdraw() {
	if p, ok := s.c.bindings.Get(s.key); ok && p == s.provisional {
		s.c.bindings.Remove(s.key)
	}
}

// fail expects bindMu to be held.
func (s *AsyncScopeConfigurator[I, T]) fail(err error) error {
	s.withdraw()
	s.c.logger.Warn("singleton resolution failed", zap.Stringer("interface", s.key), zap.Error(err))
	return &SingletonResolveFailedError{Interface: s.key.String(), Err: err}
}

// AsyncWhenConfigurator attaches conditions to a finished async binding.
type AsyncWhenConfigurator[I any] struct {
	c   *AsyncContainer
	key InterfaceKey
}

// WhenNamed moves the binding under name.
func (w *AsyncWhenConfigurator[I]) WhenNamed(name string) error {
	w.c.bindMu.Lock()
	defer w.c.bindMu.Unlock()

	if !w.c.bindings.rename(w.key, w.key.WithName(name)) {
		return &BindingNotFoundError{Interface: w.key.TypeName(), Name: w.key.Name}
	}
	w.c.logger.Debug("binding named", zap.Stringer("interface", w.key), zap.String("name", name))
	w.key = w.key.WithName(name)
	return nil
}
