package digo

import (
	"go.uber.org/zap"
)

// BindingBuilder starts a binding for I in a Container.
type BindingBuilder[I any] struct {
	c   *Container
	key InterfaceKey
}

// Bind begins a binding for I.
func Bind[I any](c *Container) *BindingBuilder[I] {
	return &BindingBuilder[I]{c: c, key: KeyOf[I]()}
}

func (b *BindingBuilder[I]) ensureFree() error {
	if b.c.bindings.Has(b.key) {
		return &BindingAlreadyExistsError{Interface: b.key.String()}
	}
	return nil
}

// To binds I to the implementation built by ctor, in transient scope until a
// scope method says otherwise.
//
//	digo.MustDeclareInterface[*Dog, IDog]()
//	digo.To(digo.Bind[IDog](c), NewDog)
func To[I, T any](b *BindingBuilder[I], ctor Constructor[T]) (*ScopeConfigurator[I, T], error) {
	if err := b.ensureFree(); err != nil {
		return nil, err
	}
	sc := &ScopeConfigurator[I, T]{c: b.c, key: b.key, ctor: ctor}
	sc.setInTransientScope()
	return sc, nil
}

// ToFactory binds I to the callable returned by fn. I is normally a func type;
// resolving the binding hands out the callable without invoking it.
func (b *BindingBuilder[I]) ToFactory(fn func(c *Container) I) (*WhenConfigurator[I], error) {
	if err := b.ensureFree(); err != nil {
		return nil, err
	}
	b.c.bindings.Set(b.key, NewFactoryProvider(fn))
	b.c.logger.Debug("binding registered", zap.Stringer("interface", b.key), zap.Stringer("kind", FactoryKind))
	return &WhenConfigurator[I]{c: b.c, key: b.key}, nil
}

// ToDynamicValue binds I to a function invoked on every resolution; each
// result is handed out as a transient. An error from the function fails the
// resolution.
func (b *BindingBuilder[I]) ToDynamicValue(fn func(c *Container) func() (I, error)) (*WhenConfigurator[I], error) {
	if err := b.ensureFree(); err != nil {
		return nil, err
	}
	b.c.bindings.Set(b.key, NewDynamicValueProvider(fn))
	b.c.logger.Debug("binding registered", zap.Stringer("interface", b.key), zap.String("kind", "dynamic"))
	return &WhenConfigurator[I]{c: b.c, key: b.key}, nil
}

// ScopeConfigurator chooses the scope of a binding from I to T.
type ScopeConfigurator[I, T any] struct {
	c           *Container
	key         InterfaceKey
	ctor        Constructor[T]
	provisional Provider
}

// InTransientScope builds a new T on every resolution. This is the default.
func (s *ScopeConfigurator[I, T]) InTransientScope() *WhenConfigurator[I] {
	s.setInTransientScope()
	return &WhenConfigurator[I]{c: s.c, key: s.key}
}

// InSingletonScope builds T now, with its whole dependency graph, and serves
// that instance to every resolution. I stays unbound while T is built.
func (s *ScopeConfigurator[I, T]) InSingletonScope() (*WhenConfigurator[I], error) {
	s.withdraw()
	v, err := s.ctor(&Resolver{c: s.c, history: NewDependencyHistory().Push(s.key)})
	if err != nil {
		return nil, s.fail(err)
	}

	s.c.bindings.Set(s.key, &singletonProvider{instance: NewShared[any](v)})
	s.c.logger.Debug("singleton constructed", zap.Stringer("interface", s.key), zap.Stringer("implementation", TypeOf[T]()))
	return &WhenConfigurator[I]{c: s.c, key: s.key}, nil
}

// InSingletonScopeFromExisting serves the singleton already bound for T
// under I as well, so both keys share one instance.
func (s *ScopeConfigurator[I, T]) InSingletonScopeFromExisting() (*WhenConfigurator[I], error) {
	instance, err := existingSingleton[T](s.c.bindings)
	if err != nil {
		return nil, s.fail(err)
	}

	s.c.bindings.Set(s.key, &singletonProvider{instance: instance})
	s.c.logger.Debug("singleton aliased", zap.Stringer("interface", s.key), zap.Stringer("source", KeyOf[T]()))
	return &WhenConfigurator[I]{c: s.c, key: s.key}, nil
}

func (s *ScopeConfigurator[I, T]) setInTransientScope() {
	s.provisional = NewTransientProvider(s.ctor)
	s.c.bindings.Set(s.key, s.provisional)
	s.c.logger.Debug("binding registered", zap.Stringer("interface", s.key), zap.Stringer("kind", TransientKind))
}

// withdraw removes the provisional transient binding if it is still installed.
func (s *ScopeConfigurator[I, T]) withdraw() {
	if p, ok := s.c.bindings.Get(s.key); ok && p == s.provisional {
		s.c.bindings.Remove(s.key)
	}
}

// fail drops the provisional transient binding so a failed scope change
// leaves nothing installed.
func (s *ScopeConfigurator[I, T]) fail(err error) error {
	s.withdraw()
	s.c.logger.Warn("singleton resolution failed", zap.Stringer("interface", s.key), zap.Error(err))
	return &SingletonResolveFailedError{Interface: s.key.String(), Err: err}
}

// existingSingleton returns a new handle to the unnamed singleton bound for T.
func existingSingleton[T any](bindings *BindingRegistry) (*Shared[any], error) {
	src := KeyOf[T]()
	p, ok := bindings.Get(src)
	if !ok {
		return nil, &BindingNotFoundError{Interface: src.TypeName()}
	}
	sp, ok := p.(*singletonProvider)
	if !ok {
		return nil, &WrongPtrKindError{Interface: src.String(), Expected: SingletonKind, Found: p.Kind()}
	}
	return sp.instance.Clone(), nil
}

// WhenConfigurator attaches conditions to a finished binding.
type WhenConfigurator[I any] struct {
	c   *Container
	key InterfaceKey
}

// WhenNamed moves the binding under name. Resolving it afterwards requires
// GetNamed with the same name.
func (w *WhenConfigurator[I]) WhenNamed(name string) error {
	if !w.c.bindings.rename(w.key, w.key.WithName(name)) {
		return &BindingNotFoundError{Interface: w.key.TypeName(), Name: w.key.Name}
	}
	w.c.logger.Debug("binding named", zap.Stringer("interface", w.key), zap.String("name", name))
	w.key = w.key.WithName(name)
	return nil
}
